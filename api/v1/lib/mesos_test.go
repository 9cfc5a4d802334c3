package mesos

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrameworkIDGetValueNilSafe(t *testing.T) {
	var fid *FrameworkID
	require.Equal(t, "", fid.GetValue())

	fid = &FrameworkID{Value: "fw-1"}
	require.Equal(t, "fw-1", fid.GetValue())
}

func TestFrameworkInfoJSONRoundTrip(t *testing.T) {
	role := "*"
	info := FrameworkInfo{
		User: "root",
		Name: "example",
		Role: &role,
		Capabilities: []FrameworkInfo_Capability{
			{Type: CapabilityPartitionAware},
		},
	}

	b, err := json.Marshal(&info)
	require.NoError(t, err)

	var got FrameworkInfo
	require.NoError(t, json.Unmarshal(b, &got))
	require.Equal(t, "root", got.User)
	require.Equal(t, "*", *got.Role)
	require.Len(t, got.Capabilities, 1)
	require.Equal(t, CapabilityPartitionAware, got.Capabilities[0].Type)
}
