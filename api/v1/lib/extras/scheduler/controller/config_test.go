package controller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBuildConfigDefaults(t *testing.T) {
	cfg, err := BuildConfig(nil)
	require.NoError(t, err)
	require.Equal(t, []string{"localhost:5050"}, cfg.MasterHosts)
	require.Equal(t, 5000*time.Millisecond, cfg.HeartbeatTimeoutWindow)
	require.Equal(t, 1, cfg.MaxNumResubscribe)
	require.Equal(t, time.Duration(0), cfg.ResubscribeInterval)
	require.Equal(t, "json", cfg.DataFormat)
}

func TestBuildConfigAcceptsSingleHostString(t *testing.T) {
	cfg, err := BuildConfig(map[string]interface{}{"master_hosts": "mesos1:5050"})
	require.NoError(t, err)
	require.Equal(t, []string{"mesos1:5050"}, cfg.MasterHosts)
}

func TestBuildConfigAcceptsHostSlice(t *testing.T) {
	cfg, err := BuildConfig(map[string]interface{}{
		"master_hosts": []interface{}{"mesos1:5050", "mesos2:5050"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"mesos1:5050", "mesos2:5050"}, cfg.MasterHosts)
}

func TestBuildConfigRejectsEmptyHosts(t *testing.T) {
	_, err := BuildConfig(map[string]interface{}{"master_hosts": []interface{}{}})
	require.Error(t, err)
	badOpt, ok := err.(*BadOptionError)
	require.True(t, ok)
	require.Equal(t, "master_hosts", badOpt.Option)
}

func TestBuildConfigRejectsNonStringHost(t *testing.T) {
	_, err := BuildConfig(map[string]interface{}{"master_hosts": []interface{}{42}})
	require.Error(t, err)
	require.IsType(t, &BadOptionError{}, err)
}

func TestBuildConfigAcceptsInfiniteResubscribe(t *testing.T) {
	cfg, err := BuildConfig(map[string]interface{}{"max_num_resubscribe": "infinite"})
	require.NoError(t, err)
	require.Equal(t, Infinite, cfg.MaxNumResubscribe)
}

func TestBuildConfigRejectsNegativeResubscribe(t *testing.T) {
	_, err := BuildConfig(map[string]interface{}{"max_num_resubscribe": -1})
	require.Error(t, err)
}

func TestBuildConfigFirstOffendingOptionWins(t *testing.T) {
	_, err := BuildConfig(map[string]interface{}{
		"master_hosts":         []interface{}{},
		"heartbeat_timeout_window": -1,
	})
	require.Error(t, err)
	badOpt, ok := err.(*BadOptionError)
	require.True(t, ok)
	require.Equal(t, "master_hosts", badOpt.Option)
}

func TestBuildConfigSubscribeReqOptionsDropsReservedHeaders(t *testing.T) {
	cfg, err := BuildConfig(map[string]interface{}{
		"subscribe_req_options": map[string]interface{}{
			"Content-Type": "text/plain",
			"X-Custom":     "value",
		},
	})
	require.NoError(t, err)
	require.Len(t, cfg.SubscribeReqOptions, 1)
}

func TestBuildConfigIsIdempotent(t *testing.T) {
	raw := map[string]interface{}{"master_hosts": "mesos1:5050", "max_num_resubscribe": 3}
	cfg1, err := BuildConfig(raw)
	require.NoError(t, err)
	cfg2, err := BuildConfig(raw)
	require.NoError(t, err)
	require.Equal(t, cfg1, cfg2)
}
