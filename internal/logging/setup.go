package logging

import (
	"os"
	"strings"

	"github.com/bokysan/b64/internal/args"
	"github.com/bokysan/b64/internal/util"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// SetupLogging configures the standard logrus logger from the general command line options
func SetupLogging() {
	SetVerbosity(args.General.Verbose)

	if args.General.LogReportCaller {
		log.AddHook(&ContextHook{})
	}

	log.SetFormatter(NewFormatter(args.General.LogFormat, args.General.LogColor, args.General.LogFullTimestamp))
	log.SetReportCaller(args.General.LogReportCaller)
	log.Debugf("Verbosity level: %v", VerbosityName())

	if args.General.LogFile != nil && len(*args.General.LogFile) > 0 && *args.General.LogFile != "-" {
		f, err := os.OpenFile(*args.General.LogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		util.MustErrorNilOrExit(errors.WithStack(err))
		log.SetOutput(f)
	}
}

// NewFormatter returns the JSON formatter for format "json" and the text formatter otherwise
func NewFormatter(format, color string, fullTimestamp bool) log.Formatter {
	if format == "json" {
		return &log.JSONFormatter{
			FieldMap: log.FieldMap{
				log.FieldKeyTime:  "timestamp",
				log.FieldKeyLevel: "@level",
				log.FieldKeyMsg:   "message",
				log.FieldKeyFunc:  "@caller",
			},
		}
	}

	return &log.TextFormatter{
		ForceColors:   ColorForced(color),
		DisableColors: ColorDisabled(color),
		FullTimestamp: fullTimestamp,
	}
}

func ColorForced(color string) bool {
	color = strings.TrimSpace(strings.ToLower(color))
	return color == "yes" || color == "true" || color == "1"
}

func ColorDisabled(color string) bool {
	color = strings.TrimSpace(strings.ToLower(color))
	return color == "no" || color == "false" || color == "0"
}
