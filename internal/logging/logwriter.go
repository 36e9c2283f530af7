package logging

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ChiLogWriter forwards the output of chi's default request logger to logrus at debug level
type ChiLogWriter struct {
}

func (lw *ChiLogWriter) Print(a ...interface{}) {
	logrus.Debug(fmt.Sprint(a...))
}
