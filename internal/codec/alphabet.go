package codec

import (
	"unicode/utf8"

	"github.com/pkg/errors"
)

const (
	// AlphabetSize is the number of data symbols in every alphabet
	AlphabetSize = 64

	// DefaultPad is the pad character used unless the alphabet is built with WithPad or WithoutPad
	DefaultPad byte = '='

	invalidIndex = 0xFF
)

// Alphabet maps 6-bit values to printable characters and back. It is immutable once built and
// may be shared between any number of engines.
type Alphabet struct {
	symbols [AlphabetSize]byte
	decode  [256]byte
	pad     byte
	hasPad  bool
}

// AlphabetOption changes how NewAlphabet builds the alphabet
type AlphabetOption func(a *Alphabet)

// WithPad sets the pad character
func WithPad(pad byte) AlphabetOption {
	return func(a *Alphabet) {
		a.pad = pad
		a.hasPad = true
	}
}

// WithoutPad builds an alphabet that has no pad character at all. Engines using such an alphabet
// never emit padding and treat any pad-looking character as an ordinary invalid character.
func WithoutPad() AlphabetOption {
	return func(a *Alphabet) {
		a.pad = 0
		a.hasPad = false
	}
}

// NewAlphabet builds an alphabet from exactly 64 unique printable ASCII characters. The position
// of each character is the 6-bit value it represents.
func NewAlphabet(symbols string, opts ...AlphabetOption) (*Alphabet, error) {
	if n := utf8.RuneCountInString(symbols); n != AlphabetSize {
		return nil, errors.Wrapf(ErrInvalidAlphabet, "expected %d symbols, got %d", AlphabetSize, n)
	}

	a := &Alphabet{
		pad:    DefaultPad,
		hasPad: true,
	}
	for _, opt := range opts {
		opt(a)
	}

	for i := range a.decode {
		a.decode[i] = invalidIndex
	}

	// The rune count matches, so a multi-byte rune would make the byte length exceed 64 and is
	// caught by the printable check below.
	for i, r := range symbols {
		if !isPrintable(r) {
			return nil, errors.Wrapf(ErrInvalidAlphabet, "symbol %q at position %d is not printable ASCII", r, i)
		}
		c := byte(r)
		if a.decode[c] != invalidIndex {
			return nil, errors.Wrapf(ErrInvalidAlphabet, "symbol %q appears more than once", r)
		}
		a.symbols[i] = c
		a.decode[c] = byte(i)
	}

	if a.hasPad {
		if !isPrintable(rune(a.pad)) {
			return nil, errors.Wrapf(ErrInvalidAlphabet, "pad character %q is not printable ASCII", a.pad)
		}
		if a.decode[a.pad] != invalidIndex {
			return nil, errors.Wrapf(ErrInvalidAlphabet, "pad character %q is also a data symbol", a.pad)
		}
	}

	return a, nil
}

func isPrintable(r rune) bool {
	return r >= ' ' && r <= '~'
}

// Symbol returns the character for the 6-bit value i. Only the low 6 bits of i are used.
func (a *Alphabet) Symbol(i int) byte {
	return a.symbols[i&0x3F]
}

// Index returns the 6-bit value of c, if c is one of the 64 data symbols.
func (a *Alphabet) Index(c byte) (int, bool) {
	v := a.decode[c]
	if v == invalidIndex {
		return 0, false
	}
	return int(v), true
}

// Pad returns the pad character and whether the alphabet has one
func (a *Alphabet) Pad() (byte, bool) {
	return a.pad, a.hasPad
}

// Equal reports whether both alphabets have the same symbols and pad character
func (a *Alphabet) Equal(o *Alphabet) bool {
	if a == nil || o == nil {
		return a == o
	}
	return a.symbols == o.symbols && a.hasPad == o.hasPad && a.pad == o.pad
}

// String renders the 64 symbols in order
func (a *Alphabet) String() string {
	return string(a.symbols[:])
}
