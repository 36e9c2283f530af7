package codec

import (
	"sort"

	"github.com/pkg/errors"
)

// Preset alphabets
const (
	StandardSymbols  = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	URLSafeSymbols   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	CryptSymbols     = "./0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	BcryptSymbols    = "./ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	IMAPMUTF7Symbols = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+,"
	BinHexSymbols    = "!\"#$%&'()*+,-012345689@ABCDEFGHIJKLMNPQRSTUVXYZ[`abcdefhijklmpqr"
)

var (
	StandardAlphabet  = mustAlphabet(StandardSymbols)
	URLSafeAlphabet   = mustAlphabet(URLSafeSymbols)
	CryptAlphabet     = mustAlphabet(CryptSymbols)
	BcryptAlphabet    = mustAlphabet(BcryptSymbols)
	IMAPMUTF7Alphabet = mustAlphabet(IMAPMUTF7Symbols)
	BinHexAlphabet    = mustAlphabet(BinHexSymbols)
)

var (
	Standard      = NewEngine(StandardAlphabet, DefaultConfig).Named("standard")
	StandardNoPad = NewEngine(StandardAlphabet, NoPadConfig).Named("standard_no_pad")
	URLSafe       = NewEngine(URLSafeAlphabet, DefaultConfig).Named("url_safe")
	URLSafeNoPad  = NewEngine(URLSafeAlphabet, NoPadConfig).Named("url_safe_no_pad")
)

var alphabetPresets = map[string]*Alphabet{
	"standard":   StandardAlphabet,
	"url_safe":   URLSafeAlphabet,
	"crypt":      CryptAlphabet,
	"bcrypt":     BcryptAlphabet,
	"imap_mutf7": IMAPMUTF7Alphabet,
	"bin_hex":    BinHexAlphabet,
}

var enginePresets = map[string]*Engine{
	Standard.Name():      Standard,
	StandardNoPad.Name(): StandardNoPad,
	URLSafe.Name():       URLSafe,
	URLSafeNoPad.Name():  URLSafeNoPad,
}

func mustAlphabet(symbols string) *Alphabet {
	a, err := NewAlphabet(symbols)
	if err != nil {
		panic(err)
	}
	return a
}

// AlphabetPreset returns one of the named alphabets
func AlphabetPreset(name string) (*Alphabet, error) {
	if a, ok := alphabetPresets[name]; ok {
		return a, nil
	}
	return nil, errors.Wrapf(ErrUnknownPreset, "alphabet %q", name)
}

// EnginePreset returns one of the named engines
func EnginePreset(name string) (*Engine, error) {
	if e, ok := enginePresets[name]; ok {
		return e, nil
	}
	return nil, errors.Wrapf(ErrUnknownPreset, "engine %q", name)
}

// AlphabetPresetNames lists the alphabet presets in sorted order
func AlphabetPresetNames() []string {
	res := make([]string, 0, len(alphabetPresets))
	for k := range alphabetPresets {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// EnginePresetNames lists the engine presets in sorted order
func EnginePresetNames() []string {
	res := make([]string, 0, len(enginePresets))
	for k := range enginePresets {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}
