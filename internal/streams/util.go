package streams

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// BufferSize is the size of the copy buffers used by the streams in this package
const BufferSize = 32 * 1024

// TryClose closes the stream and just reports to log if it fails
func TryClose(closer io.Closer) {
	if closer == nil {
		return
	}

	if c, ok := closer.(Closed); ok {
		if c.Closed() {
			return
		}
	}

	if err := closer.Close(); err != nil && !strings.Contains(err.Error(), " use of closed network connection") {
		err = errors.WithStack(err)
		log.WithError(err).Errorf("Could not close stream: %v", err)
	}
}

// LogClose closes the stream, logs the error if it fails and returns it
func LogClose(closer io.Closer) error {
	if closer == nil {
		return nil
	}

	if c, ok := closer.(Closed); ok {
		if c.Closed() {
			return nil
		}
	}

	if err := closer.Close(); err != nil {
		err = errors.WithStack(err)
		log.WithError(err).Errorf("Could not close: %v", err)
		return err
	}
	return nil
}
