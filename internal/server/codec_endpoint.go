package server

import (
	"bufio"
	"io"
	"net/http"
	"time"

	"github.com/bokysan/b64/internal/codec"
	"github.com/bokysan/b64/internal/util/cert"
	"github.com/bokysan/b64/internal/wrap"
	log "github.com/sirupsen/logrus"
)

// ErrorTrailer carries the error of a response which failed after the body was started
const ErrorTrailer = "X-B64-Error"

func (ws *HttpServer) EncodeHandler(w http.ResponseWriter, r *http.Request) {
	ws.streamHandler(w, r, "encode", "text/plain; charset=us-ascii")
}

func (ws *HttpServer) DecodeHandler(w http.ResponseWriter, r *http.Request) {
	ws.streamHandler(w, r, "decode", "application/octet-stream")
}

func (ws *HttpServer) streamHandler(w http.ResponseWriter, r *http.Request, op, contentType string) {
	cert.LogPeerCertificate(r.TLS)
	start := time.Now()

	engine, err := requestEngine(r)
	if err != nil {
		httpError(w, err)
		return
	}

	// Output is held back for one buffer, so that errors in short inputs still get a proper status
	rw := &countingWriter{w: w}
	bw := bufio.NewWriterSize(rw, ws.BufferSize)
	var out io.Writer = bw
	var in io.Reader = r.Body

	if op == "encode" {
		width, sep, err := requestWrap(r)
		if err != nil {
			httpError(w, err)
			return
		}
		if width > 0 {
			if out, err = wrap.NewWriter(bw, width, sep); err != nil {
				httpError(w, err)
				return
			}
		}
	} else {
		// Encoded input may be line-wrapped
		in = wrap.NewLineBreakStripper(r.Body)
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Trailer", ErrorTrailer)

	s := codec.NewStreamCodec(engine, codec.WithBufferSize(ws.BufferSize))
	if op == "encode" {
		_, err = s.Encode(out, in)
	} else {
		_, err = s.Decode(out, in)
	}
	if err == nil || rw.n > 0 {
		if flushErr := bw.Flush(); flushErr != nil {
			log.WithError(flushErr).Debugf("Could not send the response: %v", flushErr)
		}
	}
	ws.observer.Operation(op, engine.Name(), rw.n, err, time.Since(start))

	if err == nil {
		return
	}
	log.WithError(err).Debugf("[%v] %v failed after %d bytes: %v", engine.Name(), op, rw.n, err)
	if rw.n == 0 {
		w.Header().Del("Trailer")
		httpError(w, err)
		return
	}
	w.Header().Set(ErrorTrailer, err.Error())
}

func httpError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusFor(err))
}
