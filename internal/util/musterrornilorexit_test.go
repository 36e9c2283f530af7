package util

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"bou.ke/monkey"
	"github.com/bokysan/b64/internal/codec"
	"github.com/bokysan/b64/internal/streams"
	"github.com/bokysan/b64/internal/wrap"
	"github.com/jessevdk/go-flags"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// seqMutex makes sure that we are executing the code sequentially, as we are monkey-patching the code in-memory.
// This is not thread safe or safe in any kind of way
var seqMutex sync.Mutex

// patchExit replaces os.Exit and returns a pointer to the last code and a function to undo the patch
func patchExit() (*int, func()) {
	seqMutex.Lock()
	exitCode := -1
	patch := monkey.Patch(os.Exit, func(i int) {
		exitCode = i
	})
	return &exitCode, func() {
		patch.Unpatch()
		seqMutex.Unlock()
	}
}

func Test_MustErrorNilOrExit_NilError(t *testing.T) {
	exitCode, undo := patchExit()
	defer undo()

	MustErrorNilOrExit(nil)

	require.Equal(t, -1, *exitCode, "MustErrorNilOrExit existed the program and it shouldn't have done so.")
}

func Test_MustErrorNilOrExit_FlagsError(t *testing.T) {
	exitCode, undo := patchExit()
	defer undo()

	err := &flags.Error{
		Type:    flags.ErrShortNameTooLong,
		Message: "Short name too long",
	}

	MustErrorNilOrExit(err)

	require.Equal(t, int(flags.ErrShortNameTooLong), *exitCode, "MustErrorNilOrExit did not return a proper exit code")
}

func Test_MustErrorNilOrExit_Help(t *testing.T) {
	exitCode, undo := patchExit()
	defer undo()

	MustErrorNilOrExit(&flags.Error{Type: flags.ErrHelp})

	require.Equal(t, 0, *exitCode)
}

func Test_MustErrorNilOrExit_GenericError(t *testing.T) {
	exitCode, undo := patchExit()
	defer undo()

	MustErrorNilOrExit(errors.New("demo"))

	require.Equal(t, ErrGeneric, *exitCode, "MustErrorNilOrExit did not return a proper exit code")
}

func Test_ExitCode(t *testing.T) {
	_, err := codec.Standard.Decode("SGVsbG8")
	require.Equal(t, ErrData, ExitCode(err))

	_, err = codec.EnginePreset("nope")
	require.Equal(t, ErrUsage, ExitCode(err))

	_, err = wrap.Chunk("", 3)
	require.Equal(t, ErrUsage, ExitCode(err))

	err = pkgerrors.WithStack(&codec.StreamError{Op: "read", Err: errors.New("broken pipe")})
	require.Equal(t, ErrIO, ExitCode(err))

	_, err = streams.OpenInput(filepath.Join(t.TempDir(), "missing.b64"))
	require.Equal(t, ErrIO, ExitCode(err))

	_, err = streams.OpenOutput(filepath.Join(t.TempDir(), "missing", "out.b64"))
	require.Equal(t, ErrIO, ExitCode(err))
}
