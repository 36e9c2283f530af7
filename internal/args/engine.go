package args

import (
	"github.com/bokysan/b64/internal/codec"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// EngineOptions selects the engine used by a command. The engine preset provides the defaults; any
// of the other options, when set, turns the preset into a custom engine.
type EngineOptions struct {
	Engine            string `yaml:"engine"              short:"e" long:"engine"              env:"B64_ENGINE"              description:"Engine preset: standard, standard_no_pad, url_safe or url_safe_no_pad" default:"standard"`
	Alphabet          string `yaml:"alphabet"            short:"a" long:"alphabet"            env:"B64_ALPHABET"            description:"Alphabet preset (standard, url_safe, bcrypt, bin_hex, crypt, imap_mutf7) or 64 custom characters"`
	PadChar           string `yaml:"pad_char"                      long:"pad-char"            env:"B64_PAD_CHAR"            description:"Pad character of a custom alphabet. Set to 'none' for an alphabet without padding"`
	EncodePadding     string `yaml:"encode_padding"                long:"encode-padding"      env:"B64_ENCODE_PADDING"      description:"Pad the encoded output" choice:"yes" choice:"no"`
	AllowTrailingBits bool   `yaml:"allow_trailing_bits"           long:"allow-trailing-bits" env:"B64_ALLOW_TRAILING_BITS" description:"Accept non-zero unused bits in the last symbol when decoding"`
	PaddingMode       string `yaml:"padding_mode"                  long:"padding-mode"        env:"B64_PADDING_MODE"        description:"Padding check when decoding: indifferent, canonical or none"`
}

// Resolve builds the engine described by the options
func (o *EngineOptions) Resolve() (*codec.Engine, error) {
	name := o.Engine
	if name == "" {
		name = codec.Standard.Name()
	}
	engine, err := codec.EnginePreset(name)
	if err != nil {
		return nil, err
	}

	if o.Alphabet == "" && o.PadChar == "" && o.EncodePadding == "" && !o.AllowTrailingBits && o.PaddingMode == "" {
		return engine, nil
	}

	alphabet := engine.Alphabet()
	if o.Alphabet != "" || o.PadChar != "" {
		if alphabet, err = o.alphabet(alphabet); err != nil {
			return nil, err
		}
	}

	config := engine.Config()
	switch o.EncodePadding {
	case "yes":
		config = config.WithEncodePadding(true)
	case "no":
		config = config.WithEncodePadding(false)
	}
	if o.AllowTrailingBits {
		config = config.WithDecodeAllowTrailingBits(true)
	}
	if o.PaddingMode != "" {
		mode, err := codec.ParsePaddingMode(o.PaddingMode)
		if err != nil {
			return nil, err
		}
		config = config.WithDecodePaddingMode(mode)
	}

	res := codec.NewEngine(alphabet, config)
	log.Tracef("Custom engine: %v", spew.Sdump(config))
	return res, nil
}

// alphabet resolves the alphabet option: first as a preset name, then as a list of 64 symbols.
func (o *EngineOptions) alphabet(base *codec.Alphabet) (*codec.Alphabet, error) {
	symbols := base.String()
	if o.Alphabet != "" {
		if preset, err := codec.AlphabetPreset(o.Alphabet); err == nil {
			symbols = preset.String()
		} else {
			symbols = o.Alphabet
		}
	}

	var opts []codec.AlphabetOption
	switch {
	case o.PadChar == "":
		if pad, ok := base.Pad(); ok {
			opts = append(opts, codec.WithPad(pad))
		} else {
			opts = append(opts, codec.WithoutPad())
		}
	case o.PadChar == "none":
		opts = append(opts, codec.WithoutPad())
	case len(o.PadChar) == 1:
		opts = append(opts, codec.WithPad(o.PadChar[0]))
	default:
		return nil, errors.Wrapf(codec.ErrInvalidAlphabet, "pad character must be a single character, got %q", o.PadChar)
	}

	return codec.NewAlphabet(symbols, opts...)
}
