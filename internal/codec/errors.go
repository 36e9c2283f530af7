package codec

import (
	"fmt"

	"github.com/pkg/errors"
)

// Declare the error kinds returned by the codec. Use errors.Is to classify a returned error.
var (
	ErrInvalidAlphabet     = errors.New("invalid alphabet")
	ErrUnknownPreset       = errors.New("unknown preset")
	ErrUnknownPaddingMode  = errors.New("unknown padding mode")
	ErrInvalidCharacter    = errors.New("invalid character")
	ErrInvalidPadding      = errors.New("invalid padding")
	ErrInvalidLength       = errors.New("invalid length")
	ErrInvalidTrailingBits = errors.New("invalid trailing bits")
	ErrIO                  = errors.New("i/o error")
)

// DecodeError describes where decoding failed. Offset is the position of the offending byte in
// the complete input, counted from zero. AtEOF is set when the input ended where more symbols
// were required; Byte is meaningless in that case.
type DecodeError struct {
	Kind   error
	Offset int64
	Byte   byte
	AtEOF  bool
}

func newDecodeError(kind error, offset int64, b byte) *DecodeError {
	return &DecodeError{
		Kind:   kind,
		Offset: offset,
		Byte:   b,
	}
}

func (e *DecodeError) Error() string {
	if e.AtEOF {
		return fmt.Sprintf("%v: unexpected end of input at offset %d", e.Kind, e.Offset)
	}
	if e.Kind == ErrInvalidLength {
		return fmt.Sprintf("%v: lone symbol %q at offset %d", e.Kind, e.Byte, e.Offset)
	}
	return fmt.Sprintf("%v: %q at offset %d", e.Kind, e.Byte, e.Offset)
}

// Unwrap returns the error kind, so that errors.Is(err, ErrInvalidPadding) works
func (e *DecodeError) Unwrap() error {
	return e.Kind
}

// Cause implements the pkg/errors causer
func (e *DecodeError) Cause() error {
	return e.Kind
}

// StreamError is returned when the underlying reader or writer of a stream operation fails.
type StreamError struct {
	Op  string
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

func (e *StreamError) Cause() error {
	return e.Err
}

// Is reports every StreamError as ErrIO
func (e *StreamError) Is(target error) bool {
	return target == ErrIO
}

// ItemError ties a failure to a position within a batch
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}
