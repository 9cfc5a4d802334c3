package proto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesos/mesos-go/api/v1/lib/scheduler"
)

func TestRoundTripScalarOnlyMessage(t *testing.T) {
	var buf bytes.Buffer
	call := &scheduler.Call{Type: scheduler.Call_REVIVE}
	require.NoError(t, newEncoder(&buf).Encode(call))

	var got scheduler.Call
	require.NoError(t, newDecoder(&buf).Decode(&got))
	require.Equal(t, scheduler.Call_REVIVE, got.Type)
}

func TestEncodeRejectsNonProtoMessage(t *testing.T) {
	var buf bytes.Buffer
	err := newEncoder(&buf).Encode("not a proto message")
	require.Error(t, err)
}
