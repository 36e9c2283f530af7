package streams

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/bokysan/b64/internal/codec"
	"github.com/pkg/errors"
)

// StandardStream is the file name which selects stdin or stdout instead of a file
const StandardStream = "-"

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

// OpenInput opens the named file for reading. StandardStream (or an empty name) selects stdin, which
// is never closed by the returned reader. Failures are reported as a codec.StreamError.
func OpenInput(name string) (*NamedReader, error) {
	if name == "" || name == StandardStream {
		return NewNamedReader(ioutil.NopCloser(os.Stdin), "stdin"), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.WithStack(&codec.StreamError{Op: "open", Err: err})
	}
	return NewNamedReader(f, name), nil
}

// OpenOutput creates or truncates the named file. StandardStream (or an empty name) selects stdout,
// which is never closed by the returned writer.
func OpenOutput(name string) (*NamedWriter, error) {
	if name == "" || name == StandardStream {
		return NewNamedWriter(nopWriteCloser{os.Stdout}, "stdout"), nil
	}
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return nil, errors.WithStack(&codec.StreamError{Op: "create", Err: err})
	}
	return NewNamedWriter(f, name), nil
}

// Process opens the input and output and runs fn over them. The output is closed even if fn fails,
// so that partial results are flushed to the file.
func Process(input, output string, fn func(dst io.Writer, src io.Reader) (int64, error)) (int64, error) {
	in, err := OpenInput(input)
	if err != nil {
		return 0, err
	}
	defer TryClose(in)

	out, err := OpenOutput(output)
	if err != nil {
		return 0, err
	}

	n, err := fn(out, in)
	if closeErr := LogClose(out); err == nil && closeErr != nil {
		err = errors.WithStack(&codec.StreamError{Op: "close", Err: closeErr})
	}
	return n, err
}
