package version

import (
	"fmt"
	"io"
	"os"

	"github.com/bokysan/b64/internal/version"
	"github.com/k0kubun/go-ansi"
)

const (
	Bold           = "\x1b[1m"
	Reset          = "\x1b[0m"
	LightGray      = "\x1b[37m"
	DarkGray       = "\x1b[90m"
	White          = "\x1b[97m"
	BackgroundBlue = "\x1b[44m"
)

// Command prints the version and build details
type Command struct {
	out io.Writer
}

func (i *Command) String() string {
	return "Version details"
}

func (i *Command) writer() io.Writer {
	if i.out != nil {
		return i.out
	}
	return ansi.NewAnsiStdout()
}

//goland:noinspection GoUnhandledErrorResult
func (i *Command) Execute(args []string) error {
	w := i.writer()
	PrintVersion(w)
	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, DarkGray+" %-11s "+White+"%+v"+Reset+"\n", label, value)
		}
	}
	line("Git tag", version.GitTag)
	line("Git branch", version.GitBranch)
	line("Git state", version.GitState)
	line("Go version", version.GoVersion)
	if i.out == nil {
		os.Exit(0)
	}
	return nil
}

// PrintVersion prints the banner with the application version
//
//goland:noinspection GoUnhandledErrorResult
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, Bold+BackgroundBlue+
		LightGray+" B64 - configurable Base64 codec "+White+"%s"+LightGray+" "+Reset+"\n"+
		DarkGray+" Built on    "+White+"%+v\n"+
		DarkGray+" Git version "+White+"%+v"+Reset+"\n",
		version.AppVersion(), version.BuildDate, version.GitCommit)
}
