package codec

import (
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var encoderTest = []byte("\000\000\000\000\377\377\377\377\125\125\125\125\252\252\252\252" +
	"\201\143\310\322\307\174\262\027\137\117\316\311\111\055\122\041" +
	"\141\251\161\040\045\263\006\163\346\330\104\060\171\120\127\277")

var rfc4648 = []struct {
	Plain   string
	Encoded string
}{
	{"", ""},
	{"f", "Zg=="},
	{"fo", "Zm8="},
	{"foo", "Zm9v"},
	{"foob", "Zm9vYg=="},
	{"fooba", "Zm9vYmE="},
	{"foobar", "Zm9vYmFy"},
}

func randomBytes(t *testing.T, n int) []byte {
	buf := make([]byte, n)
	_, err := rand.Read(buf)
	require.NoError(t, err)
	return buf
}

func allConfigs() []Config {
	res := make([]Config, 0)
	for _, pad := range []bool{true, false} {
		for _, trailing := range []bool{true, false} {
			for _, mode := range []PaddingMode{PaddingIndifferent, PaddingCanonical, PaddingNone} {
				res = append(res, NewConfig(pad, trailing, mode))
			}
		}
	}
	return res
}

// symmetric reports whether data encoded with c can be decoded with c
func symmetric(c Config) bool {
	if c.EncodePadding {
		return c.DecodePaddingMode != PaddingNone
	}
	return c.DecodePaddingMode != PaddingCanonical
}

func Test_Engine_RFC4648(t *testing.T) {
	for _, v := range rfc4648 {
		require.Equal(t, v.Encoded, Standard.Encode([]byte(v.Plain)))

		decoded, err := Standard.Decode(v.Encoded)
		require.NoError(t, err)
		require.Equal(t, v.Plain, string(decoded))

		noPad := base64.RawStdEncoding.EncodeToString([]byte(v.Plain))
		require.Equal(t, noPad, StandardNoPad.Encode([]byte(v.Plain)))

		decoded, err = StandardNoPad.Decode(noPad)
		require.NoError(t, err)
		require.Equal(t, v.Plain, string(decoded))
	}
}

func Test_Engine_MatchesStdlib(t *testing.T) {
	data := randomBytes(t, 1021)

	for _, name := range AlphabetPresetNames() {
		a, err := AlphabetPreset(name)
		require.NoError(t, err)
		std := base64.NewEncoding(a.String())

		for n := 0; n < 64; n++ {
			padded := NewEngine(a, DefaultConfig)
			require.Equal(t, std.EncodeToString(data[:n]), padded.Encode(data[:n]), "Alphabet %v, length %d", name, n)

			raw := NewEngine(a, NoPadConfig)
			require.Equal(t, std.WithPadding(base64.NoPadding).EncodeToString(data[:n]), raw.Encode(data[:n]))
		}
		require.Equal(t, std.EncodeToString(data), NewEngine(a, DefaultConfig).Encode(data))
	}
}

func Test_Engine_RoundTrip(t *testing.T) {
	inputs := [][]byte{nil, {}, {0}, {0xFF, 0xFF}, encoderTest, randomBytes(t, 4099)}

	for _, name := range AlphabetPresetNames() {
		a, err := AlphabetPreset(name)
		require.NoError(t, err)
		for _, c := range allConfigs() {
			if !symmetric(c) {
				continue
			}
			e := NewEngine(a, c)
			for _, in := range inputs {
				decoded, err := e.Decode(e.Encode(in))
				require.NoError(t, err, "Engine %v", e)
				require.Equal(t, len(in), len(decoded))
				if len(in) > 0 {
					require.Equal(t, in, decoded)
				}
			}
		}
	}
}

func Test_Engine_LengthLaw(t *testing.T) {
	data := randomBytes(t, 100)
	for n := 0; n <= len(data); n++ {
		padded := Standard.Encode(data[:n])
		require.Len(t, padded, 4*((n+2)/3))
		require.Equal(t, len(padded), Standard.EncodedLen(n))

		expected := 4 * (n / 3)
		if n%3 != 0 {
			expected += n%3 + 1
		}
		raw := StandardNoPad.Encode(data[:n])
		require.Len(t, raw, expected)
		require.Equal(t, len(raw), StandardNoPad.EncodedLen(n))
		require.True(t, Standard.DecodedLen(len(raw)) >= n)
	}
}

func Test_Engine_PaddingIndifferent(t *testing.T) {
	e := NewEngine(StandardAlphabet, DefaultConfig.WithDecodePaddingMode(PaddingIndifferent))

	for _, in := range []string{"SGVsbG8=", "SGVsbG8"} {
		decoded, err := e.Decode(in)
		require.NoError(t, err)
		require.Equal(t, "Hello", string(decoded))
	}

	// A short but consistent run of pad characters is fine as well
	decoded, err := e.Decode("Zg=")
	require.NoError(t, err)
	require.Equal(t, "f", string(decoded))
}

func Test_Engine_DecodeErrors(t *testing.T) {
	indifferent := NewEngine(StandardAlphabet, DefaultConfig.WithDecodePaddingMode(PaddingIndifferent))

	tests := []struct {
		Name   string
		Engine *Engine
		Input  string
		Kind   error
		Offset int64
	}{
		{"missing padding", Standard, "SGVsbG8", ErrInvalidPadding, 7},
		{"short padding", Standard, "Zg=", ErrInvalidPadding, 2},
		{"invalid character", Standard, "!", ErrInvalidCharacter, 0},
		{"invalid character inside", Standard, "SGVs!G8=", ErrInvalidCharacter, 4},
		{"whitespace", Standard, "SGVs bG8=", ErrInvalidCharacter, 4},
		{"single symbol", Standard, "A", ErrInvalidLength, 0},
		{"single trailing symbol", StandardNoPad, "QUJDR", ErrInvalidLength, 4},
		{"single symbol padded", indifferent, "QUJDR===", ErrInvalidLength, 4},
		{"padding not allowed", StandardNoPad, "Zg==", ErrInvalidPadding, 2},
		{"padding at group start", indifferent, "Zm9v=", ErrInvalidPadding, 4},
		{"only padding", indifferent, "====", ErrInvalidPadding, 0},
		{"data after padding", indifferent, "Zg==Zg==", ErrInvalidPadding, 4},
		{"data inside padding", indifferent, "Zg=g", ErrInvalidPadding, 3},
		{"too much padding", indifferent, "Zg===", ErrInvalidPadding, 4},
		{"trailing bits in 2 symbols", Standard, "Zh==", ErrInvalidTrailingBits, 1},
		{"trailing bits in 3 symbols", Standard, "Zm9=", ErrInvalidTrailingBits, 2},
		{"trailing bits unpadded", StandardNoPad, "Zm9", ErrInvalidTrailingBits, 2},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			res, err := test.Engine.Decode(test.Input)
			require.Nil(t, res)
			require.Error(t, err)
			require.True(t, errors.Is(err, test.Kind), "Expected %v, got %v", test.Kind, err)

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr))
			require.Equal(t, test.Offset, decodeErr.Offset, "Unexpected offset: %v", err)
		})
	}
}

func Test_Engine_AllowTrailingBits(t *testing.T) {
	e := NewEngine(StandardAlphabet, DefaultConfig.WithDecodeAllowTrailingBits(true))

	decoded, err := e.Decode("Zh==")
	require.NoError(t, err)
	require.Equal(t, "f", string(decoded))

	decoded, err = e.Decode("Zm9=")
	require.NoError(t, err)
	require.Equal(t, "fo", string(decoded))
}

func Test_Engine_WithoutPad(t *testing.T) {
	a, err := NewAlphabet(StandardSymbols, WithoutPad())
	require.NoError(t, err)

	// Canonical padding cannot be required from an alphabet without a pad character
	e := NewEngine(a, DefaultConfig)
	decoded, err := e.Decode("Zg")
	require.NoError(t, err)
	require.Equal(t, "f", string(decoded))

	_, err = e.Decode("Zg==")
	require.True(t, errors.Is(err, ErrInvalidCharacter))
}

func Test_Engine_CustomPad(t *testing.T) {
	a, err := NewAlphabet(URLSafeSymbols, WithPad('~'))
	require.NoError(t, err)
	e := NewEngine(a, DefaultConfig)

	encoded := e.Encode([]byte{0xFB, 0xFF})
	require.Equal(t, "-_8~", encoded)

	decoded, err := e.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, []byte{0xFB, 0xFF}, decoded)

	_, err = e.Decode("-_8=")
	require.True(t, errors.Is(err, ErrInvalidCharacter))
}

func Test_Engine_AppendEncode(t *testing.T) {
	dst := []byte("prefix:")
	dst = Standard.AppendEncode(dst, []byte("foob"))
	require.Equal(t, "prefix:Zm9vYg==", string(dst))
}

func Test_Engine_DecodeBytes(t *testing.T) {
	decoded, err := URLSafeNoPad.DecodeBytes([]byte("-_8"))
	require.NoError(t, err)
	require.Equal(t, []byte{0xFB, 0xFF}, decoded)
}

func Test_EnginePresets(t *testing.T) {
	require.Equal(t, []string{"standard", "standard_no_pad", "url_safe", "url_safe_no_pad"}, EnginePresetNames())

	for _, name := range EnginePresetNames() {
		e, err := EnginePreset(name)
		require.NoError(t, err)
		require.Equal(t, name, e.Name())
		require.Equal(t, 3, e.BlocksizeRaw())
		require.Equal(t, 4, e.BlocksizeEncoded())
	}

	require.Equal(t, "_-8=", URLSafe.Encode([]byte{0xFF, 0xEF}))
	require.Equal(t, "_-8", URLSafeNoPad.Encode([]byte{0xFF, 0xEF}))

	e, err := EnginePreset("standard_nopad")
	require.Nil(t, e)
	require.True(t, errors.Is(err, ErrUnknownPreset))
}

func Test_Engine_Named(t *testing.T) {
	e := NewEngine(CryptAlphabet, DefaultConfig)
	require.Equal(t, CustomEngineName, e.Name())

	named := e.Named("crypt")
	require.Equal(t, "crypt", named.Name())
	require.Equal(t, CustomEngineName, e.Name())
	require.True(t, named.Alphabet().Equal(e.Alphabet()))
	require.Equal(t, e.Config(), named.Config())
}
