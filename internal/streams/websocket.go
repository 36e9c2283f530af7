package streams

import (
	"io"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// WebsocketReadWriteCloser implements a ReadWriteCloser over a websocket connection. Reads return
// the payload of incoming messages back to back, regardless of the message boundaries. An empty
// message or a close frame from the peer ends the stream with io.EOF.
type WebsocketReadWriteCloser struct {
	conn        *websocket.Conn
	messageType int
	pending     []byte
	eof         bool
}

// NewWebsocketReadWriteCloser creates a new stream. Every Write is sent as messages of the given type
// (websocket.TextMessage or websocket.BinaryMessage).
func NewWebsocketReadWriteCloser(conn *websocket.Conn, messageType int) *WebsocketReadWriteCloser {
	return &WebsocketReadWriteCloser{
		conn:        conn,
		messageType: messageType,
	}
}

func (wsc *WebsocketReadWriteCloser) Read(p []byte) (int, error) {
	for len(wsc.pending) == 0 {
		if wsc.eof {
			return 0, io.EOF
		}
		_, message, err := wsc.conn.ReadMessage()
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			wsc.eof = true
			return 0, io.EOF
		} else if err != nil {
			return 0, errors.WithStack(err)
		}
		if len(message) == 0 {
			wsc.eof = true
		}
		wsc.pending = message
	}

	n := copy(p, wsc.pending)
	wsc.pending = wsc.pending[n:]
	return n, nil
}

// Write will take a stream of bytes and send it over a websocket connection.
func (wsc *WebsocketReadWriteCloser) Write(p []byte) (int, error) {
	written := 0
	for len(p) > 0 {
		size := len(p)
		if size > BufferSize {
			size = BufferSize
		}
		if err := wsc.conn.WriteMessage(wsc.messageType, p[:size]); err != nil {
			return written, errors.WithStack(err)
		}
		written += size
		p = p[size:]
	}
	return written, nil
}

// CloseWithError sends a close frame carrying the reason and closes the connection.
func (wsc *WebsocketReadWriteCloser) CloseWithError(code int, reason string) error {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = wsc.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return wsc.conn.Close()
}

func (wsc *WebsocketReadWriteCloser) Close() error {
	return wsc.CloseWithError(websocket.CloseNormalClosure, "")
}
