package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodecForUnknown(t *testing.T) {
	_, err := CodecFor("xml")
	require.Error(t, err)
}

func TestRegisterAndLookup(t *testing.T) {
	Register(Codec{Name: "test-codec", Type: "application/test"})
	c, err := CodecFor("test-codec")
	require.NoError(t, err)
	require.Equal(t, "application/test", c.Type)
}

func TestEncoderFuncAdapts(t *testing.T) {
	var got interface{}
	var e Encoder = EncoderFunc(func(m interface{}) error {
		got = m
		return nil
	})
	require.NoError(t, e.Encode(42))
	require.Equal(t, 42, got)
}
