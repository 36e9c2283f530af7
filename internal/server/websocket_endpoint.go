package server

import (
	"io"
	"net/http"
	"time"

	"github.com/bokysan/b64/internal/codec"
	"github.com/bokysan/b64/internal/streams"
	"github.com/bokysan/b64/internal/wrap"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// maxCloseReason is the longest reason which fits into a close frame
const maxCloseReason = 123

// WebsocketEncodeHandler streams the payload of the incoming messages through the encoder. The
// client ends the input with an empty message; the server answers with text messages followed by
// a close frame.
func (ws *HttpServer) WebsocketEncodeHandler(w http.ResponseWriter, r *http.Request) {
	ws.websocketHandler(w, r, "encode", websocket.TextMessage)
}

// WebsocketDecodeHandler is the decoding counterpart of WebsocketEncodeHandler. Output is sent as
// binary messages.
func (ws *HttpServer) WebsocketDecodeHandler(w http.ResponseWriter, r *http.Request) {
	ws.websocketHandler(w, r, "decode", websocket.BinaryMessage)
}

func (ws *HttpServer) websocketHandler(w http.ResponseWriter, r *http.Request, op string, messageType int) {
	start := time.Now()

	engine, err := requestEngine(r)
	if err != nil {
		httpError(w, err)
		return
	}
	width, sep, err := requestWrap(r)
	if err != nil {
		httpError(w, err)
		return
	}

	c, err := ws.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already replied to the client
		log.WithError(err).Debugf("Socket upgrade failed: %v", err)
		return
	}
	log.Debugf("[%v] New websocket %v client", engine.Name(), op)

	stream := streams.NewWebsocketReadWriteCloser(c, messageType)
	counter := &countingWriter{w: stream}
	var out io.Writer = counter
	var in io.Reader = stream

	s := codec.NewStreamCodec(engine, codec.WithBufferSize(ws.BufferSize))
	if op == "encode" {
		if width > 0 {
			out, err = wrap.NewWriter(counter, width, sep)
		}
		if err == nil {
			_, err = s.Encode(out, in)
		}
	} else {
		_, err = s.Decode(out, wrap.NewLineBreakStripper(in))
	}
	ws.observer.Operation("ws_"+op, engine.Name(), counter.n, err, time.Since(start))

	if err == nil {
		streams.TryClose(stream)
		return
	}

	log.WithError(err).Debugf("[%v] Websocket %v failed: %v", engine.Name(), op, err)
	code := websocket.CloseInvalidFramePayloadData
	if errors.Is(err, codec.ErrIO) {
		code = websocket.CloseInternalServerErr
	}
	reason := err.Error()
	if len(reason) > maxCloseReason {
		reason = reason[:maxCloseReason]
	}
	if err := stream.CloseWithError(code, reason); err != nil {
		log.WithError(err).Debugf("Could not close websocket: %v", err)
	}
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
