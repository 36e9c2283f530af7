package wrap

import (
	"io"

	"github.com/emersion/go-textwrapper"
)

// NewWriter returns a writer which inserts sep after every `width` characters written through it.
// A separator is only written when more data follows, the same way Join does it.
func NewWriter(w io.Writer, width int, sep string) (io.Writer, error) {
	if err := ValidateWidth(width); err != nil {
		return nil, err
	}
	return textwrapper.New(w, sep, width), nil
}

// LineBreakStripper drops CR and LF characters from the wrapped reader, so that line-wrapped text
// can be fed to a decoder.
type LineBreakStripper struct {
	r io.Reader
}

func NewLineBreakStripper(r io.Reader) *LineBreakStripper {
	return &LineBreakStripper{r: r}
}

func (s *LineBreakStripper) Read(p []byte) (int, error) {
	for {
		n, err := s.r.Read(p)
		j := 0
		for _, c := range p[:n] {
			if c != '\r' && c != '\n' {
				p[j] = c
				j++
			}
		}
		// Don't report an empty read for a block which consisted only of line breaks
		if j > 0 || err != nil || n == 0 {
			return j, err
		}
	}
}
