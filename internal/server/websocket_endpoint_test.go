package server

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bokysan/b64/internal/codec"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, url string) *websocket.Conn {
	c, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(url, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = c.Close()
	})
	return c
}

// exchange sends the messages followed by the empty end-of-input message and collects the answer
// until the server closes the connection
func exchange(t *testing.T, c *websocket.Conn, messages ...string) ([]byte, error) {
	for _, m := range append(messages, "") {
		// The server may hang up early on invalid input
		if err := c.WriteMessage(websocket.BinaryMessage, []byte(m)); err != nil {
			break
		}
	}

	res := &bytes.Buffer{}
	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			return res.Bytes(), err
		}
		res.Write(message)
	}
}

func Test_WebsocketEncode(t *testing.T) {
	_, srv := newTestServer(t)

	c := dial(t, srv.URL+"/ws/encode/standard")
	res, err := exchange(t, c, "Hel", "lo ", "world")
	require.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "Unexpected error: %v", err)
	require.Equal(t, "SGVsbG8gd29ybGQ=", string(res))
}

func Test_WebsocketEncode_Wrapped(t *testing.T) {
	_, srv := newTestServer(t)

	c := dial(t, srv.URL+"/ws/encode/url_safe_no_pad?width=8&sep=%0A")
	res, err := exchange(t, c, "Hello world")
	require.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "Unexpected error: %v", err)
	require.Equal(t, "SGVsbG8g\nd29ybGQ", string(res))
}

func Test_WebsocketDecode(t *testing.T) {
	_, srv := newTestServer(t)

	data := bytes.Repeat([]byte{0, 1, 2, 0xfe, 0xff}, 1000)
	encoded := codec.Standard.Encode(data)

	c := dial(t, srv.URL+"/ws/decode/standard")
	res, err := exchange(t, c, encoded[:101], encoded[101:2000], encoded[2000:])
	require.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "Unexpected error: %v", err)
	require.Equal(t, data, res)
}

func Test_WebsocketDecode_Error(t *testing.T) {
	_, srv := newTestServer(t)

	c := dial(t, srv.URL+"/ws/decode/standard")
	_, err := exchange(t, c, "SGVs", "b!==")
	require.True(t, websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData), "Unexpected error: %v", err)

	closeErr, ok := err.(*websocket.CloseError)
	require.True(t, ok)
	require.Contains(t, closeErr.Text, codec.ErrInvalidCharacter.Error())
}

func Test_Websocket_UnknownEngine(t *testing.T) {
	_, srv := newTestServer(t)

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/encode/base32", nil)
	require.Error(t, err)
	require.Equal(t, 404, resp.StatusCode)
}

func Test_Websocket_InvalidWidth(t *testing.T) {
	_, srv := newTestServer(t)

	// The width is rejected before the upgrade
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/encode/standard?width=10", nil)
	require.Error(t, err)
	require.Equal(t, 400, resp.StatusCode)
}
