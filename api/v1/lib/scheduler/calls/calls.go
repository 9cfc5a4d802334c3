// Package calls provides builder functions for scheduler.Call messages and
// the Caller interface used to send them.
package calls

import (
	"context"

	mesos "github.com/mesos/mesos-go/api/v1/lib"
	"github.com/mesos/mesos-go/api/v1/lib/scheduler"
)

// Caller sends a scheduler Call and returns the master's response.
type Caller interface {
	Call(call *scheduler.Call) (mesos.Response, error)
}

// CallNoData invokes caller with call and discards any response body,
// returning only the error. Most non-SUBSCRIBE calls (ACCEPT, KILL,
// ACKNOWLEDGE, ...) expect an empty 202 response, so call sites that don't
// care about the body use this instead of handling mesos.Response
// themselves.
func CallNoData(_ context.Context, caller Caller, call *scheduler.Call) error {
	resp, err := caller.Call(call)
	if resp != nil {
		defer resp.Close()
	}
	return err
}

// Subscribe builds a SUBSCRIBE call. When fid is non-nil the call echoes a
// previously-assigned framework id (resubscribe); force is only meaningful
// when fid is nil.
func Subscribe(info *mesos.FrameworkInfo, fid *mesos.FrameworkID, force bool) *scheduler.Call {
	c := &scheduler.Call{
		Type: scheduler.Call_SUBSCRIBE,
		Subscribe: &scheduler.Call_Subscribe{
			FrameworkInfo: info,
			Force:         force,
		},
	}
	if fid != nil {
		c.FrameworkID = fid
		info.ID = fid
	}
	return c
}

// Accept builds an ACCEPT call for the given offers.
func Accept(offerIDs ...string) *scheduler.Call {
	return &scheduler.Call{
		Type:   scheduler.Call_ACCEPT,
		Accept: &scheduler.Call_Accept{OfferIDs: offerIDs},
	}
}

// Decline builds a DECLINE call for the given offers.
func Decline(offerIDs ...string) *scheduler.Call {
	return &scheduler.Call{
		Type:    scheduler.Call_DECLINE,
		Decline: &scheduler.Call_Decline{OfferIDs: offerIDs},
	}
}

// Revive builds a REVIVE call, asking the master to resume offering
// resources previously suppressed or declined-with-filter.
func Revive() *scheduler.Call {
	return &scheduler.Call{Type: scheduler.Call_REVIVE}
}

// Suppress builds a SUPPRESS call, asking the master to stop sending offers
// until the next REVIVE.
func Suppress() *scheduler.Call {
	return &scheduler.Call{Type: scheduler.Call_SUPPRESS}
}

// Kill builds a KILL call for the given task.
func Kill(taskID, agentID string) *scheduler.Call {
	return &scheduler.Call{
		Type: scheduler.Call_KILL,
		Kill: &scheduler.Call_Kill{TaskID: taskID, AgentID: agentID},
	}
}

// Acknowledge builds an ACKNOWLEDGE call for a status update, required
// whenever the originating TaskStatus carries a UUID.
func Acknowledge(agentID, taskID string, uuid []byte) *scheduler.Call {
	return &scheduler.Call{
		Type: scheduler.Call_ACKNOWLEDGE,
		Acknowledge: &scheduler.Call_Acknowledge{
			AgentID: agentID,
			TaskID:  taskID,
			UUID:    uuid,
		},
	}
}

// Message builds a framework MESSAGE call addressed to a running executor.
func Message(agentID, executorID string, data []byte) *scheduler.Call {
	return &scheduler.Call{
		Type: scheduler.Call_MESSAGE,
		Message: &scheduler.Call_Message{
			AgentID:    agentID,
			ExecutorID: executorID,
			Data:       data,
		},
	}
}

// Reconcile builds a RECONCILE call for the given tasks; an empty list asks
// the master to reconcile all tasks known to this framework.
func Reconcile(tasks ...scheduler.Call_Reconcile_Task) *scheduler.Call {
	return &scheduler.Call{
		Type:      scheduler.Call_RECONCILE,
		Reconcile: &scheduler.Call_Reconcile{Tasks: tasks},
	}
}
