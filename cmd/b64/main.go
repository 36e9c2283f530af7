package main

import (
	"fmt"
	"os"
	"path"

	"github.com/bokysan/b64/internal/args"
	"github.com/bokysan/b64/internal/commands/alphabet"
	"github.com/bokysan/b64/internal/commands/chunk"
	"github.com/bokysan/b64/internal/commands/decode"
	"github.com/bokysan/b64/internal/commands/encode"
	"github.com/bokysan/b64/internal/commands/serve"
	"github.com/bokysan/b64/internal/commands/version"
	b64Flags "github.com/bokysan/b64/internal/flags"
	"github.com/bokysan/b64/internal/util"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	// ErrConfigFileDoesNotExist is raised when configuration file cannot be found
	ErrConfigFileDoesNotExist = flags.ErrInvalidTag + 1
)

// B64 is the main executable
type B64 struct {
	parser *flags.Parser
}

// NewB64 will create a new instance of B64 and initialize the parser
func NewB64() *B64 {
	executablePath := path.Base(os.Args[0])

	b := &B64{
		parser: flags.NewNamedParser(executablePath, flags.HelpFlag|flags.PrintErrors),
	}

	b.setupGeneral()
	b.addCommand("version", "Print the version", "Print the application version and exit", &version.Command{})
	b.addCommand("encode", "Encode data", "Encode a file or stdin into Base64 text", encode.NewCommand())
	b.addCommand("decode", "Decode data", "Decode Base64 text from a file or stdin", decode.NewCommand())
	b.addCommand("chunk", "Wrap encoded text", "Split encoded text into lines of fixed width", chunk.NewCommand())
	b.addCommand("alphabet", "Show alphabets", "Print the symbols of the alphabet presets", alphabet.NewCommand())
	b.addCommand("serve", "Run the server", "Run the HTTP and websocket encoding service", serve.NewCommand())

	return b
}

// setupGeneral will configure general options
func (b *B64) setupGeneral() {
	if _, err := b.parser.AddGroup("General", "General options", &args.General); err != nil {
		util.MustErrorNilOrExit(errors.WithStack(err))
	}
}

func (b *B64) addCommand(name, short, long string, cmd interface{}) {
	_, err := b.parser.AddCommand(name, short, long, cmd)
	util.MustErrorNilOrExit(err)
}

// main parses the command line, reads the configuration file and runs the selected command
func main() {
	b := NewB64()
	args.General.ConfigurationFile = func(file string) error {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			util.MustErrorNilOrExit(&flags.Error{
				Type:    ErrConfigFileDoesNotExist,
				Message: fmt.Sprintf("Configuration file %s does not exist.", file),
			})
		}

		args.General.ConfigurationFilePath = file
		return b64Flags.NewYamlParser(b.parser).ParseFile(file)
	}

	_, err := b.parser.Parse()
	util.MustErrorNilOrExit(err)
}
