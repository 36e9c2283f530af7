package args

import (
	"testing"

	"github.com/bokysan/b64/internal/codec"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func Test_EngineOptions_Preset(t *testing.T) {
	o := &EngineOptions{}
	e, err := o.Resolve()
	require.NoError(t, err)
	require.Same(t, codec.Standard, e)

	o = &EngineOptions{Engine: "url_safe_no_pad"}
	e, err = o.Resolve()
	require.NoError(t, err)
	require.Same(t, codec.URLSafeNoPad, e)

	o = &EngineOptions{Engine: "url"}
	_, err = o.Resolve()
	require.True(t, errors.Is(err, codec.ErrUnknownPreset))
}

func Test_EngineOptions_Custom(t *testing.T) {
	o := &EngineOptions{
		Engine:        "standard",
		Alphabet:      "bcrypt",
		EncodePadding: "no",
		PaddingMode:   "indifferent",
	}
	e, err := o.Resolve()
	require.NoError(t, err)
	require.Equal(t, codec.CustomEngineName, e.Name())
	require.Equal(t, codec.BcryptSymbols, e.Alphabet().String())
	require.Equal(t, codec.NewConfig(false, false, codec.PaddingIndifferent), e.Config())
}

func Test_EngineOptions_CustomSymbols(t *testing.T) {
	o := &EngineOptions{
		Alphabet: codec.CryptSymbols,
		PadChar:  "~",
	}
	e, err := o.Resolve()
	require.NoError(t, err)
	pad, ok := e.Alphabet().Pad()
	require.True(t, ok)
	require.Equal(t, byte('~'), pad)
	require.Equal(t, "NU~~", e.Encode([]byte("f")))

	o = &EngineOptions{PadChar: "none"}
	e, err = o.Resolve()
	require.NoError(t, err)
	require.Equal(t, "Zg", e.Encode([]byte("f")))
}

func Test_EngineOptions_Invalid(t *testing.T) {
	tests := []struct {
		Options EngineOptions
		Kind    error
	}{
		{EngineOptions{Alphabet: "too short"}, codec.ErrInvalidAlphabet},
		{EngineOptions{PadChar: "=="}, codec.ErrInvalidAlphabet},
		{EngineOptions{PadChar: "A"}, codec.ErrInvalidAlphabet},
		{EngineOptions{PaddingMode: "strict"}, codec.ErrUnknownPaddingMode},
	}

	for _, test := range tests {
		_, err := test.Options.Resolve()
		require.True(t, errors.Is(err, test.Kind), "Options %+v: %v", test.Options, err)
	}
}
