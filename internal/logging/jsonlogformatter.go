package logging

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/sirupsen/logrus"
)

// JSONLogFormatter formats chi request logs as structured logrus entries
type JSONLogFormatter struct {
	ServerAddress string
}

// JSONLogEntry prepares the Logrus context
type JSONLogEntry struct {
	request       *http.Request
	serverAddress string
}

// NewLogEntry creates a new entry for the Logrus log
func (j *JSONLogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &JSONLogEntry{
		request:       r,
		serverAddress: j.ServerAddress,
	}
}

func (j *JSONLogEntry) fields() logrus.Fields {
	r := j.request
	return logrus.Fields{
		"hostname":              r.Host,
		"remote_addr":           r.RemoteAddr,
		"request":               fmt.Sprintf("%s %s %s", r.Method, r.RequestURI, r.Proto),
		"request_id":            middleware.GetReqID(r.Context()),
		"request_method":        r.Method,
		"request_uri":           r.RequestURI,
		"query_string":          r.URL.RawQuery,
		"server_address":        j.serverAddress,
		"received_length":       r.ContentLength,
		"received_content_type": r.Header.Get("Content-Type"),
		"app":                   "b64",
		"type":                  "access",
		"user_agent":            r.UserAgent(),
	}
}

// Write outputs the log entry into the log
func (j *JSONLogEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra interface{}) {
	f := j.fields()
	f["request_time"] = elapsed.Seconds()
	f["status"] = status
	f["sent_bytes"] = bytes
	f["sent_content_type"] = header.Get("Content-Type")
	f["extra"] = extra
	logrus.WithFields(f).Debug()
}

// Panic outputs the log entry into the log
func (j *JSONLogEntry) Panic(v interface{}, stack []byte) {
	f := j.fields()
	f["error"] = v
	f["stack"] = string(stack)
	logrus.WithFields(f).Errorf("%+v", v)
}
