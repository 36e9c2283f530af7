package codec

import (
	"io"

	log "github.com/sirupsen/logrus"
)

const (
	// DefaultBufferSize is the default size of the blocks read by the StreamCodec
	DefaultBufferSize = 12 * 1024

	// blockAlign is divisible by both the raw (3) and the encoded (4) group size
	blockAlign = 12
)

// StreamCodec encodes and decodes streams without loading them into memory. It reads the source
// front to back exactly once and never seeks.
type StreamCodec struct {
	engine     *Engine
	bufferSize int
}

// StreamOption configures a StreamCodec
type StreamOption func(s *StreamCodec)

// WithBufferSize sets the size of the read buffer. The size is rounded up to a multiple of 12.
func WithBufferSize(size int) StreamOption {
	return func(s *StreamCodec) {
		if size < blockAlign {
			size = blockAlign
		}
		s.bufferSize = (size + blockAlign - 1) / blockAlign * blockAlign
	}
}

// NewStreamCodec creates a codec for the engine with a DefaultBufferSize read buffer unless an
// option says otherwise
func NewStreamCodec(engine *Engine, opts ...StreamOption) *StreamCodec {
	s := &StreamCodec{
		engine:     engine,
		bufferSize: DefaultBufferSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *StreamCodec) Engine() *Engine {
	return s.engine
}

// Encode reads src until EOF and writes its encoding to dst. The output is identical to
// Engine.Encode of the complete input. It returns the number of bytes written to dst.
func (s *StreamCodec) Encode(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, s.bufferSize)
	out := make([]byte, 0, s.engine.EncodedLen(s.bufferSize))
	var written int64

	for {
		n, err := io.ReadFull(src, buf)
		final := err == io.EOF || err == io.ErrUnexpectedEOF
		if err != nil && !final {
			return written, &StreamError{Op: "read", Err: err}
		}

		if n > 0 {
			// Only the last block may end with a partial group, so padding is only ever written there
			out = s.engine.appendEncode(out[:0], buf[:n], final && s.engine.padsOutput())
			w, err := dst.Write(out)
			written += int64(w)
			if err != nil {
				return written, &StreamError{Op: "write", Err: err}
			}
			log.Tracef("[%v] Encoded block of %d bytes into %d symbols", s.engine.name, n, len(out))
		}

		if final {
			return written, nil
		}
	}
}

// Decode reads symbols from src until EOF and writes the decoded bytes to dst. Invalid characters
// and misplaced padding fail as soon as they are read; length, padding and trailing bit checks
// which depend on the end of the input fail once src is exhausted. Bytes decoded from a block that
// failed are not written.
func (s *StreamCodec) Decode(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, s.bufferSize)
	out := make([]byte, 0, s.engine.DecodedLen(s.bufferSize)+3)
	d := s.engine.newDecoder()
	var written int64

	flush := func() error {
		if len(out) == 0 {
			return nil
		}
		w, err := dst.Write(out)
		written += int64(w)
		if err != nil {
			return &StreamError{Op: "write", Err: err}
		}
		return nil
	}

	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			var err error
			if out, err = d.write(out[:0], buf[:n]); err != nil {
				return written, err
			}
			if err := flush(); err != nil {
				return written, err
			}
			log.Tracef("[%v] Decoded block of %d symbols into %d bytes", s.engine.name, n, len(out))
		}

		if readErr == io.EOF {
			break
		} else if readErr != nil {
			return written, &StreamError{Op: "read", Err: readErr}
		}
	}

	var err error
	if out, err = d.close(out[:0]); err != nil {
		return written, err
	}
	if err := flush(); err != nil {
		return written, err
	}
	return written, nil
}
