package encode

import (
	"io"

	"github.com/bokysan/b64/internal/args"
	"github.com/bokysan/b64/internal/codec"
	"github.com/bokysan/b64/internal/logging"
	"github.com/bokysan/b64/internal/streams"
	"github.com/bokysan/b64/internal/wrap"
	log "github.com/sirupsen/logrus"
)

// Command encodes a file or stdin
type Command struct {
	args.EngineOptions `yaml:",inline"`
	args.WrapOptions   `yaml:",inline"`

	Input      string `yaml:"input"       short:"i" long:"input"       env:"B64_INPUT"       description:"Input file, '-' for stdin"  default:"-"`
	Output     string `yaml:"output"      short:"o" long:"output"      env:"B64_OUTPUT"      description:"Output file, '-' for stdout" default:"-"`
	Newline    bool   `yaml:"newline"     short:"n" long:"newline"     env:"B64_NEWLINE"     description:"Terminate the output with the line separator"`
	BufferSize int    `yaml:"buffer_size"           long:"buffer-size" env:"B64_BUFFER_SIZE" description:"Size of the read buffer" default:"12288"`
}

func NewCommand() *Command {
	return &Command{
		Input:      streams.StandardStream,
		Output:     streams.StandardStream,
		BufferSize: codec.DefaultBufferSize,
	}
}

func (c *Command) Execute(args []string) error {
	logging.SetupLogging()

	engine, err := c.Resolve()
	if err != nil {
		return err
	}
	if c.Width != 0 {
		if err := wrap.ValidateWidth(c.Width); err != nil {
			return err
		}
	}

	s := codec.NewStreamCodec(engine, codec.WithBufferSize(c.BufferSize))
	n, err := streams.Process(c.Input, c.Output, func(dst io.Writer, src io.Reader) (int64, error) {
		out := dst
		if c.Width > 0 {
			w, err := wrap.NewWriter(dst, c.Width, c.LineSeparator())
			if err != nil {
				return 0, err
			}
			out = w
		}
		n, err := s.Encode(out, src)
		if err == nil && c.Newline {
			_, err = io.WriteString(dst, c.LineSeparator())
		}
		return n, err
	})
	if err != nil {
		return err
	}

	log.Debugf("[%v] Encoded %v into %d symbols", engine.Name(), c.Input, n)
	return nil
}
