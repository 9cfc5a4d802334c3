package httpsched

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesos/mesos-go/api/v1/lib/encoding"
	_ "github.com/mesos/mesos-go/api/v1/lib/encoding/json"
	"github.com/mesos/mesos-go/api/v1/lib/httpcli"
	"github.com/mesos/mesos-go/api/v1/lib/scheduler"
	"github.com/mesos/mesos-go/api/v1/lib/scheduler/calls"
)

func TestBuildNewEndpointRewritesHostOnly(t *testing.T) {
	endpoint, ok := buildNewEndpoint("//mesos2:5050", "http://mesos1:5050/api/v1/scheduler")
	require.True(t, ok)
	require.Equal(t, "http://mesos2:5050/api/v1/scheduler", endpoint)
}

func TestBuildNewEndpointRejectsEmptyLocation(t *testing.T) {
	_, ok := buildNewEndpoint("", "http://mesos1:5050/api/v1/scheduler")
	require.False(t, ok)
}

func TestCallerEchoesStreamIDOnSubsequentCalls(t *testing.T) {
	var sawStreamID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var call scheduler.Call
		codec, err := encoding.CodecFor("json")
		require.NoError(t, err)
		require.NoError(t, codec.NewDecoder(r.Body).Decode(&call))

		switch call.Type {
		case scheduler.Call_SUBSCRIBE:
			w.Header().Set("Mesos-Stream-Id", "stream-abc")
			w.WriteHeader(http.StatusOK)
		default:
			sawStreamID = r.Header.Get("Mesos-Stream-Id")
			w.WriteHeader(http.StatusAccepted)
		}
	}))
	defer srv.Close()

	codec, err := encoding.CodecFor("json")
	require.NoError(t, err)

	cl := httpcli.New(httpcli.Endpoint(srv.URL), httpcli.Codec(codec))
	caller := NewCaller(cl)

	resp, err := caller.Call(calls.Subscribe(nil, nil, false))
	require.NoError(t, err)
	if resp != nil {
		resp.Close()
	}

	resp, err = caller.Call(calls.Revive())
	require.NoError(t, err)
	if resp != nil {
		resp.Close()
	}

	require.Equal(t, "stream-abc", sawStreamID)
}

func TestCallerFollowsRedirectToNewLeader(t *testing.T) {
	var leaderHits int
	leader := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		leaderHits++
		w.WriteHeader(http.StatusAccepted)
	}))
	defer leader.Close()

	follower := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "//"+leader.Listener.Addr().String())
		w.WriteHeader(http.StatusTemporaryRedirect)
	}))
	defer follower.Close()

	codec, err := encoding.CodecFor("json")
	require.NoError(t, err)

	cl := httpcli.New(httpcli.Endpoint(follower.URL), httpcli.Codec(codec))
	caller := NewCaller(cl, MaxRedirects(1))

	resp, err := caller.Call(calls.Revive())
	require.NoError(t, err)
	if resp != nil {
		resp.Close()
	}
	require.Equal(t, 1, leaderHits)
}
