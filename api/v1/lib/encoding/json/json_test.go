package json

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesos/mesos-go/api/v1/lib/encoding"
)

type sample struct {
	Name string `json:"name"`
}

func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newEncoder(&buf).Encode(&sample{Name: "framework-1"}))

	var got sample
	require.NoError(t, newDecoder(&buf).Decode(&got))
	require.Equal(t, "framework-1", got.Name)
}

func TestRegisteredUnderJSON(t *testing.T) {
	c, err := encoding.CodecFor("json")
	require.NoError(t, err)
	require.Equal(t, ContentType, c.Type)
}
