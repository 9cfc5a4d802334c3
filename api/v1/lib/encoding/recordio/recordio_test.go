package recordio

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteThenReadFrame(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteFrame([]byte("hello")))
	require.NoError(t, w.WriteFrame([]byte("")))
	require.NoError(t, w.WriteFrame([]byte("world")))

	r := NewReader(&buf)
	frame, err := r.ReadFrame()
	require.NoError(t, err)
	require.Equal(t, "hello", string(frame))

	frame, err = r.ReadFrame()
	require.NoError(t, err)
	require.Equal(t, "", string(frame))

	frame, err = r.ReadFrame()
	require.NoError(t, err)
	require.Equal(t, "world", string(frame))

	_, err = r.ReadFrame()
	require.ErrorIs(t, err, io.EOF)
}

func TestReadFrameInvalidLengthPrefix(t *testing.T) {
	r := NewReader(bytes.NewBufferString("not-a-number\nabc"))
	_, err := r.ReadFrame()
	require.Error(t, err)
}

func TestReadFrameShortBody(t *testing.T) {
	r := NewReader(bytes.NewBufferString("10\nabc"))
	_, err := r.ReadFrame()
	require.Error(t, err)
}

func TestReadFrameNegativeLength(t *testing.T) {
	r := NewReader(bytes.NewBufferString("-1\n"))
	_, err := r.ReadFrame()
	require.Error(t, err)
}
