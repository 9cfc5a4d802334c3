package calls

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	mesos "github.com/mesos/mesos-go/api/v1/lib"
	"github.com/mesos/mesos-go/api/v1/lib/scheduler"
)

func TestSubscribeWithoutFrameworkIDLeavesCallUnset(t *testing.T) {
	info := &mesos.FrameworkInfo{User: "root", Name: "test"}
	call := Subscribe(info, nil, true)
	require.Equal(t, scheduler.Call_SUBSCRIBE, call.Type)
	require.Nil(t, call.FrameworkID)
	require.True(t, call.Subscribe.Force)
}

func TestSubscribeWithFrameworkIDEchoesItOnCallAndInfo(t *testing.T) {
	info := &mesos.FrameworkInfo{User: "root", Name: "test"}
	fid := &mesos.FrameworkID{Value: "fw-1"}
	call := Subscribe(info, fid, false)
	require.Same(t, fid, call.FrameworkID)
	require.Same(t, fid, info.ID)
}

func TestDeclineBuildsOfferIDs(t *testing.T) {
	call := Decline("offer-1", "offer-2")
	require.Equal(t, scheduler.Call_DECLINE, call.Type)
	require.Equal(t, []string{"offer-1", "offer-2"}, call.Decline.OfferIDs)
}

func TestAcknowledgeBuildsCall(t *testing.T) {
	call := Acknowledge("agent-1", "task-1", []byte{1, 2, 3})
	require.Equal(t, scheduler.Call_ACKNOWLEDGE, call.Type)
	require.Equal(t, "agent-1", call.Acknowledge.AgentID)
	require.Equal(t, []byte{1, 2, 3}, call.Acknowledge.UUID)
}

type fakeCaller struct {
	resp mesos.Response
	err  error
}

func (f *fakeCaller) Call(*scheduler.Call) (mesos.Response, error) { return f.resp, f.err }

func TestCallNoDataClosesResponseAndDiscardsIt(t *testing.T) {
	resp := &closeTrackingResponse{}
	caller := &fakeCaller{resp: resp}
	err := CallNoData(context.Background(), caller, Revive())
	require.NoError(t, err)
	require.True(t, resp.closed)
}

type closeTrackingResponse struct{ closed bool }

func (r *closeTrackingResponse) Read(p []byte) (int, error) { return 0, nil }
func (r *closeTrackingResponse) Close() error                { r.closed = true; return nil }
