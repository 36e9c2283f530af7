package wrap

import (
	"bytes"
	"io/ioutil"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/bokysan/b64/internal/codec"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const lorem = "TG9yZW0gaXBzdW0gZG9sb3Igc2l0IGFtZXQsIGNvbnNlY3RldHVyIGFkaXBpc2NpbmcgZWxpdC4="

func Test_Chunk(t *testing.T) {
	chunks, err := Chunk(lorem, 16)
	require.NoError(t, err)
	require.Len(t, chunks, 5)
	for _, c := range chunks[:4] {
		require.Len(t, c, 16)
	}
	require.Len(t, chunks[4], len(lorem)%16)
	require.Equal(t, lorem, Join(chunks, ""))
}

func Test_Chunk_EvenlyDivisible(t *testing.T) {
	chunks, err := Chunk("Zm9vYmFy", 4)
	require.NoError(t, err)
	require.Equal(t, []string{"Zm9v", "YmFy"}, chunks)

	chunks, err = Chunk("Zm9vYmFy", 64)
	require.NoError(t, err)
	require.Equal(t, []string{"Zm9vYmFy"}, chunks)
}

func Test_Chunk_Empty(t *testing.T) {
	chunks, err := Chunk("", 76)
	require.NoError(t, err)
	require.NotNil(t, chunks)
	require.Empty(t, chunks)
}

func Test_Chunk_InvalidWidth(t *testing.T) {
	for _, width := range []int{-4, 0, 1, 3, 5, 75} {
		chunks, err := Chunk(lorem, width)
		require.Nil(t, chunks)
		require.True(t, errors.Is(err, ErrInvalidWidth), "Width %d: %v", width, err)
	}
}

func Test_ChunkJoinIdentity(t *testing.T) {
	for n := 0; n < 200; n++ {
		s := codec.Standard.Encode(bytes.Repeat([]byte{'x'}, n))
		for _, width := range []int{4, 8, 64, 76} {
			chunks, err := Chunk(s, width)
			require.NoError(t, err)
			require.Equal(t, (len(s)+width-1)/width, len(chunks))
			require.Equal(t, s, Join(chunks, ""))

			joined := Join(chunks, "\r\n")
			require.False(t, strings.HasSuffix(joined, "\r\n"))
			require.Equal(t, s, Unwrap(joined, "\r\n"))
		}
	}
}

func Test_ChunkBatch(t *testing.T) {
	in := []codec.NullString{codec.String("Zm9vYmFy"), {}, codec.String("")}

	out, err := ChunkBatch(in, 4)
	require.NoError(t, err)
	require.Equal(t, []NullChunks{
		{Chunks: []string{"Zm9v", "YmFy"}, Valid: true},
		{},
		{Chunks: []string{}, Valid: true},
	}, out)

	require.Equal(t, []codec.NullString{codec.String("Zm9v\nYmFy"), {}, codec.String("")}, JoinBatch(out, "\n"))

	// Width errors fail the whole call
	out, err = ChunkBatch(in, 6)
	require.Nil(t, out)
	require.True(t, errors.Is(err, ErrInvalidWidth))
}

func Test_Unwrap_EmptySeparator(t *testing.T) {
	require.Equal(t, "Zm9v", Unwrap("Zm9v", ""))
}

func Test_Writer(t *testing.T) {
	for n := 0; n < 100; n++ {
		s := codec.Standard.Encode(bytes.Repeat([]byte{'y'}, n))
		chunks, err := Chunk(s, 8)
		require.NoError(t, err)

		out := &bytes.Buffer{}
		w, err := NewWriter(out, 8, "\n")
		require.NoError(t, err)

		// Write in uneven pieces
		rest := s
		for len(rest) > 0 {
			l := 3
			if len(rest) < l {
				l = len(rest)
			}
			_, err := w.Write([]byte(rest[:l]))
			require.NoError(t, err)
			rest = rest[l:]
		}

		require.Equal(t, s, Unwrap(out.String(), "\n"))
		require.Equal(t, len(chunks), len(strings.Split(out.String(), "\n"))-boolToInt(s == ""))
	}

	_, err := NewWriter(&bytes.Buffer{}, 10, "\n")
	require.True(t, errors.Is(err, ErrInvalidWidth))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func Test_LineBreakStripper(t *testing.T) {
	in := "Zm9v\r\nYmFy\n\n\nZg==\n"

	res, err := ioutil.ReadAll(NewLineBreakStripper(strings.NewReader(in)))
	require.NoError(t, err)
	require.Equal(t, "Zm9vYmFyZg==", string(res))

	res, err = ioutil.ReadAll(NewLineBreakStripper(iotest.OneByteReader(strings.NewReader(in))))
	require.NoError(t, err)
	require.Equal(t, "Zm9vYmFyZg==", string(res))
}

func Test_LineBreakStripper_StreamDecode(t *testing.T) {
	data := bytes.Repeat([]byte("The quick brown fox jumps over the lazy dog. "), 50)
	chunks, err := Chunk(codec.Standard.Encode(data), 76)
	require.NoError(t, err)
	wrapped := Join(chunks, "\r\n") + "\r\n"

	out := &bytes.Buffer{}
	_, err = codec.NewStreamCodec(codec.Standard, codec.WithBufferSize(100)).Decode(out, NewLineBreakStripper(strings.NewReader(wrapped)))
	require.NoError(t, err)
	require.Equal(t, data, out.Bytes())
}
