package chunk

import (
	"io"
	"io/ioutil"

	"github.com/bokysan/b64/internal/args"
	"github.com/bokysan/b64/internal/codec"
	"github.com/bokysan/b64/internal/logging"
	"github.com/bokysan/b64/internal/streams"
	"github.com/bokysan/b64/internal/wrap"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Command splits already encoded text into lines. Existing line breaks are removed first.
type Command struct {
	args.WrapOptions `yaml:",inline"`

	Input  string `yaml:"input"  short:"i" long:"input"  env:"B64_INPUT"  description:"Input file, '-' for stdin"  default:"-"`
	Output string `yaml:"output" short:"o" long:"output" env:"B64_OUTPUT" description:"Output file, '-' for stdout" default:"-"`
}

func NewCommand() *Command {
	return &Command{
		WrapOptions: args.WrapOptions{Separator: "lf"},
		Input:       streams.StandardStream,
		Output:      streams.StandardStream,
	}
}

func (c *Command) Execute(args []string) error {
	logging.SetupLogging()

	// Checked before the output is created, so that a bad width leaves an existing file alone
	if err := wrap.ValidateWidth(c.Width); err != nil {
		return err
	}

	var lines int
	_, err := streams.Process(c.Input, c.Output, func(dst io.Writer, src io.Reader) (int64, error) {
		encoded, err := ioutil.ReadAll(wrap.NewLineBreakStripper(src))
		if err != nil {
			return 0, errors.WithStack(&codec.StreamError{Op: "read", Err: err})
		}
		chunks, err := wrap.Chunk(string(encoded), c.Width)
		if err != nil {
			return 0, err
		}
		lines = len(chunks)
		if lines == 0 {
			return 0, nil
		}
		n, err := io.WriteString(dst, wrap.Join(chunks, c.LineSeparator())+c.LineSeparator())
		if err != nil {
			return int64(n), errors.WithStack(&codec.StreamError{Op: "write", Err: err})
		}
		return int64(n), nil
	})
	if err != nil {
		return err
	}

	log.Debugf("Split %v into %d lines", c.Input, lines)
	return nil
}
