package streams

import (
	"io"
)

// NamedReader implements the io.ReadCloser interface as well as fmt.Stringer. It allows the caller to setup
// a name for the stream which will be returned when outputing the stream with `%v`.
// It also makes sure that `Close()` can be called safely multiple times. Calling `Close()` on a closed object
// will simply succeed without an error.
type NamedReader struct {
	io.ReadCloser
	name   string
	closed bool
}

func NewNamedReader(wrapped io.ReadCloser, name string) *NamedReader {
	if nr, ok := wrapped.(*NamedReader); ok && nr.name == name {
		return nr
	}
	return &NamedReader{
		ReadCloser: wrapped,
		name:       name,
	}
}

func (nr *NamedReader) String() string {
	return nr.name
}

// Close will close the underlying stream. If the Close has already been called, it will do nothing
func (nr *NamedReader) Close() error {
	if nr.closed {
		return nil
	}
	nr.closed = true
	return LogClose(nr.ReadCloser)
}

func (nr *NamedReader) Closed() bool {
	return nr.closed
}

// NamedWriter is the io.WriteCloser counterpart of NamedReader
type NamedWriter struct {
	io.WriteCloser
	name   string
	closed bool
}

func NewNamedWriter(wrapped io.WriteCloser, name string) *NamedWriter {
	if nw, ok := wrapped.(*NamedWriter); ok && nw.name == name {
		return nw
	}
	return &NamedWriter{
		WriteCloser: wrapped,
		name:        name,
	}
}

func (nw *NamedWriter) String() string {
	return nw.name
}

// Close will close the underlying stream. If the Close has already been called, it will do nothing
func (nw *NamedWriter) Close() error {
	if nw.closed {
		return nil
	}
	nw.closed = true
	return LogClose(nw.WriteCloser)
}

func (nw *NamedWriter) Closed() bool {
	return nw.closed
}
