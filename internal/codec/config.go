package codec

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// PaddingMode defines how strictly the pad characters are checked when decoding
type PaddingMode int

const (
	// PaddingIndifferent accepts padded and unpadded input alike, as long as the padding that is
	// present is internally consistent.
	PaddingIndifferent PaddingMode = iota
	// PaddingCanonical requires exactly the pad characters needed to reach a multiple of 4.
	PaddingCanonical
	// PaddingNone rejects any pad character.
	PaddingNone
)

var paddingModeNames = map[PaddingMode]string{
	PaddingIndifferent: "indifferent",
	PaddingCanonical:   "canonical",
	PaddingNone:        "none",
}

var paddingModes = map[string]PaddingMode{
	"indifferent": PaddingIndifferent,
	"canonical":   PaddingCanonical,
	"none":        PaddingNone,
}

// ParsePaddingMode resolves one of "indifferent", "canonical" or "none"
func ParsePaddingMode(name string) (PaddingMode, error) {
	if m, ok := paddingModes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m, nil
	}
	return PaddingIndifferent, errors.Wrapf(ErrUnknownPaddingMode, "%q", name)
}

func (m PaddingMode) String() string {
	if n, ok := paddingModeNames[m]; ok {
		return n
	}
	return fmt.Sprintf("PaddingMode(%d)", int(m))
}

// MarshalText allows the padding mode to be written to JSON and YAML by name
func (m PaddingMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText is the reverse of MarshalText
func (m *PaddingMode) UnmarshalText(text []byte) error {
	v, err := ParsePaddingMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Config bundles the padding policy of an engine. All combinations are valid.
type Config struct {
	EncodePadding           bool        `json:"encode_padding"             yaml:"encode_padding"`
	DecodeAllowTrailingBits bool        `json:"decode_allow_trailing_bits" yaml:"decode_allow_trailing_bits"`
	DecodePaddingMode       PaddingMode `json:"decode_padding_mode"        yaml:"decode_padding_mode"`
}

// DefaultConfig pads on encode, rejects trailing bits and requires canonical padding on decode
var DefaultConfig = Config{
	EncodePadding:           true,
	DecodeAllowTrailingBits: false,
	DecodePaddingMode:       PaddingCanonical,
}

// NoPadConfig neither writes nor accepts padding
var NoPadConfig = Config{
	EncodePadding:           false,
	DecodeAllowTrailingBits: false,
	DecodePaddingMode:       PaddingNone,
}

// NewConfig builds a Config from its three settings
func NewConfig(encodePadding, decodeAllowTrailingBits bool, decodePaddingMode PaddingMode) Config {
	return Config{
		EncodePadding:           encodePadding,
		DecodeAllowTrailingBits: decodeAllowTrailingBits,
		DecodePaddingMode:       decodePaddingMode,
	}
}

// WithEncodePadding returns a copy with encode padding switched on or off
func (c Config) WithEncodePadding(padding bool) Config {
	c.EncodePadding = padding
	return c
}

// WithDecodeAllowTrailingBits returns a copy which accepts or rejects non-zero trailing bits
func (c Config) WithDecodeAllowTrailingBits(allow bool) Config {
	c.DecodeAllowTrailingBits = allow
	return c
}

// WithDecodePaddingMode returns a copy with the given padding mode
func (c Config) WithDecodePaddingMode(mode PaddingMode) Config {
	c.DecodePaddingMode = mode
	return c
}

func (c Config) String() string {
	return fmt.Sprintf("encode_padding=%v decode_allow_trailing_bits=%v decode_padding_mode=%v",
		c.EncodePadding, c.DecodeAllowTrailingBits, c.DecodePaddingMode)
}
