package decode

import (
	"io"

	"github.com/bokysan/b64/internal/args"
	"github.com/bokysan/b64/internal/codec"
	"github.com/bokysan/b64/internal/logging"
	"github.com/bokysan/b64/internal/streams"
	"github.com/bokysan/b64/internal/wrap"
	log "github.com/sirupsen/logrus"
)

// Command decodes a file or stdin
type Command struct {
	args.EngineOptions `yaml:",inline"`

	Input            string `yaml:"input"              short:"i" long:"input"              env:"B64_INPUT"              description:"Input file, '-' for stdin"  default:"-"`
	Output           string `yaml:"output"             short:"o" long:"output"             env:"B64_OUTPUT"             description:"Output file, '-' for stdout" default:"-"`
	IgnoreLineBreaks bool   `yaml:"ignore_line_breaks" short:"b" long:"ignore-line-breaks" env:"B64_IGNORE_LINE_BREAKS" description:"Skip CR and LF characters in the input"`
	BufferSize       int    `yaml:"buffer_size"                  long:"buffer-size"        env:"B64_BUFFER_SIZE"        description:"Size of the read buffer" default:"12288"`
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

	s := codec.NewStreamCodec(engine, codec.WithBufferSize(c.BufferSize))
	n, err := streams.Process(c.Input, c.Output, func(dst io.Writer, src io.Reader) (int64, error) {
		if c.IgnoreLineBreaks {
			src = wrap.NewLineBreakStripper(src)
		}
		return s.Decode(dst, src)
	})
	if err != nil {
		return err
	}

	log.Debugf("[%v] Decoded %v into %d bytes", engine.Name(), c.Input, n)
	return nil
}
