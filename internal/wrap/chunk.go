// Package wrap splits encoded text into fixed-width lines and puts it back together.
package wrap

import (
	"strings"

	"github.com/bokysan/b64/internal/codec"
	"github.com/pkg/errors"
)

// ErrInvalidWidth is returned when the width is not a positive multiple of 4
var ErrInvalidWidth = errors.New("invalid width")

// NullChunks is the chunked form of one batch position. Absent positions stay absent.
type NullChunks struct {
	Chunks []string
	Valid  bool
}

// ValidateWidth succeeds for positive multiples of 4, so that no 4-symbol group is ever split
// between two lines.
func ValidateWidth(width int) error {
	if width <= 0 || width%4 != 0 {
		return errors.Wrapf(ErrInvalidWidth, "width must be a positive multiple of 4, got %d", width)
	}
	return nil
}

// Chunk splits the encoded string into chunks of `width` characters. Only the last chunk may be
// shorter. Empty input gives an empty slice.
func Chunk(encoded string, width int) ([]string, error) {
	if err := ValidateWidth(width); err != nil {
		return nil, err
	}
	return chunk(encoded, width), nil
}

func chunk(encoded string, width int) []string {
	res := make([]string, 0, (len(encoded)+width-1)/width)
	for len(encoded) > width {
		res = append(res, encoded[:width])
		encoded = encoded[width:]
	}
	if len(encoded) > 0 {
		res = append(res, encoded)
	}
	return res
}

// ChunkBatch chunks every valid position of the batch. The width is checked once, before any
// position is processed.
func ChunkBatch(in []codec.NullString, width int) ([]NullChunks, error) {
	if err := ValidateWidth(width); err != nil {
		return nil, err
	}
	out := make([]NullChunks, len(in))
	for i, item := range in {
		if item.Valid {
			out[i] = NullChunks{Chunks: chunk(item.String, width), Valid: true}
		}
	}
	return out, nil
}

// Join puts the separator between (not after) the chunks
func Join(chunks []string, sep string) string {
	return strings.Join(chunks, sep)
}

// JoinBatch joins every valid position of the batch
func JoinBatch(in []NullChunks, sep string) []codec.NullString {
	out := make([]codec.NullString, len(in))
	for i, item := range in {
		if item.Valid {
			out[i] = codec.String(Join(item.Chunks, sep))
		}
	}
	return out
}

// Unwrap will remove the separators from the given string
func Unwrap(s, sep string) string {
	if sep == "" {
		return s
	}
	return strings.ReplaceAll(s, sep, "")
}
