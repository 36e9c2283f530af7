package util

import (
	"os"

	"github.com/bokysan/b64/internal/codec"
	"github.com/bokysan/b64/internal/wrap"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Exit codes, following the BSD sysexits convention where one applies
const (
	ErrUsage   = 64
	ErrData    = 65
	ErrIO      = 74
	ErrGeneric = 99
)

// ExitCode maps an error to the process exit code. Errors of the flags package keep their own type
// as the exit code.
func ExitCode(err error) int {
	var flagsError *flags.Error
	switch {
	case errors.As(err, &flagsError):
		return int(flagsError.Type)
	case errors.Is(err, codec.ErrIO):
		return ErrIO
	case errors.Is(err, codec.ErrInvalidCharacter),
		errors.Is(err, codec.ErrInvalidPadding),
		errors.Is(err, codec.ErrInvalidLength),
		errors.Is(err, codec.ErrInvalidTrailingBits):
		return ErrData
	case errors.Is(err, codec.ErrInvalidAlphabet),
		errors.Is(err, codec.ErrUnknownPreset),
		errors.Is(err, codec.ErrUnknownPaddingMode),
		errors.Is(err, wrap.ErrInvalidWidth):
		return ErrUsage
	default:
		return ErrGeneric
	}
}

// MustErrorNilOrExit will check the provided argument. If it's `nil` it will simply return. If it's
// not `nil`, it will log the error as `log.FatalLevel` and exit immediately with the code from ExitCode.
// Requests for help (`-h`) exit with 0.
func MustErrorNilOrExit(err error) {
	if err == nil {
		return
	}

	var flagsError *flags.Error
	if errors.As(err, &flagsError) && flagsError.Type == flags.ErrHelp {
		os.Exit(0)
		return
	}

	log.StandardLogger().WithError(err).Logf(log.FatalLevel, "Error: %+v", err)
	log.Exit(ExitCode(err))
}
