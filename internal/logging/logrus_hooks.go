package logging

import (
	"path"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// ContextHook will add go source information (file, line, func)
type ContextHook struct{}

// Levels defines which logging levels fire the hook. In our case, all levels.
func (hook ContextHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire is the method that's executed when logging event is logged. This method will go back the call stack
// and find the first frame outside of logrus: that's the method which executed the call.
func (hook ContextHook) Fire(entry *logrus.Entry) error {
	pcs := make([]uintptr, 16)
	frames := runtime.CallersFrames(pcs[:runtime.Callers(2, pcs)])
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.Function, "sirupsen/logrus") && !strings.HasSuffix(frame.Function, "ContextHook.Fire") {
			entry.Data["file"] = path.Base(frame.File)
			entry.Data["line"] = frame.Line
			entry.Data["func"] = path.Base(frame.Function)
			break
		}
		if !more {
			break
		}
	}

	return nil
}
