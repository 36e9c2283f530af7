package alphabet

import (
	"fmt"
	"io"

	"github.com/bokysan/b64/internal/codec"
	"github.com/k0kubun/go-ansi"
)

const (
	Bold     = "\x1b[1m"
	Reset    = "\x1b[0m"
	DarkGray = "\x1b[90m"
	White    = "\x1b[97m"
	Cyan     = "\x1b[36m"
)

// Command renders the alphabet presets
type Command struct {
	Args struct {
		Names []string `positional-arg-name:"name" description:"Alphabet presets to show. All of them, if none given."`
	} `positional-args:"yes"`

	out io.Writer
}

func NewCommand() *Command {
	return &Command{}
}

func (c *Command) writer() io.Writer {
	if c.out != nil {
		return c.out
	}
	return ansi.NewAnsiStdout()
}

func (c *Command) Execute(args []string) error {
	names := c.Args.Names
	if len(names) == 0 {
		names = codec.AlphabetPresetNames()
	}

	// Resolve everything first, so that an unknown name prints nothing
	alphabets := make([]*codec.Alphabet, len(names))
	for i, name := range names {
		a, err := codec.AlphabetPreset(name)
		if err != nil {
			return err
		}
		alphabets[i] = a
	}

	w := c.writer()
	for i, a := range alphabets {
		pad := "none"
		if p, ok := a.Pad(); ok {
			pad = string(p)
		}
		if _, err := fmt.Fprintf(w, Bold+White+"%-11s"+Reset+" "+Cyan+"%s"+Reset+" "+DarkGray+"pad: "+White+"%s"+Reset+"\n", names[i], a.String(), pad); err != nil {
			return err
		}
	}
	return nil
}
