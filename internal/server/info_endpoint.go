package server

import (
	"net/http"

	"github.com/bokysan/b64/internal/codec"
	"github.com/go-chi/chi"
)

// AlphabetInfo describes an alphabet preset. Pad is empty for alphabets without padding.
type AlphabetInfo struct {
	Name    string `json:"name"`
	Symbols string `json:"symbols"`
	Pad     string `json:"pad,omitempty"`
}

// EngineInfo describes an engine preset
type EngineInfo struct {
	Name     string       `json:"name"`
	Alphabet string       `json:"alphabet"`
	Pad      string       `json:"pad,omitempty"`
	Config   codec.Config `json:"config"`
}

func alphabetInfo(name string, a *codec.Alphabet) AlphabetInfo {
	info := AlphabetInfo{Name: name, Symbols: a.String()}
	if pad, ok := a.Pad(); ok {
		info.Pad = string(pad)
	}
	return info
}

func AlphabetsHandler(w http.ResponseWriter, r *http.Request) {
	res := make([]AlphabetInfo, 0)
	for _, name := range codec.AlphabetPresetNames() {
		a, _ := codec.AlphabetPreset(name)
		res = append(res, alphabetInfo(name, a))
	}
	writeJSON(w, http.StatusOK, res)
}

func AlphabetHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	a, err := codec.AlphabetPreset(name)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, alphabetInfo(name, a))
}

func EnginesHandler(w http.ResponseWriter, r *http.Request) {
	res := make([]EngineInfo, 0)
	for _, name := range codec.EnginePresetNames() {
		e, _ := codec.EnginePreset(name)
		a := alphabetInfo(name, e.Alphabet())
		res = append(res, EngineInfo{
			Name:     e.Name(),
			Alphabet: a.Symbols,
			Pad:      a.Pad,
			Config:   e.Config(),
		})
	}
	writeJSON(w, http.StatusOK, res)
}
