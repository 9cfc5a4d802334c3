package controller

import (
	mesos "github.com/mesos/mesos-go/api/v1/lib"
	"github.com/mesos/mesos-go/api/v1/lib/scheduler"
	"github.com/mesos/mesos-go/api/v1/lib/scheduler/calls"
)

// Info is an immutable snapshot of session identity passed to every user
// callback: the negotiated wire format, the master currently in use,
// (once assigned) the framework id, and the Caller a callback sends
// outbound calls (ACCEPT, DECLINE, KILL, ACKNOWLEDGE, ...) back through.
// Caller already carries the session's Mesos-Stream-Id bookkeeping and
// redirect-following, so a callback never needs its own transport.
type Info struct {
	DataFormat  string
	MasterHost  string
	FrameworkID mesos.FrameworkID
	Caller      calls.Caller
}

// Result is returned by every scheduler callback: Stop requests session
// termination with {shutdown, callback_requested}; otherwise UserState
// becomes the session's new threaded-through state.
type Result struct {
	UserState interface{}
	Stop      bool
}

// Continue is a convenience constructor for the common case.
func Continue(userState interface{}) Result { return Result{UserState: userState} }

// Stop is a convenience constructor for a callback that wants to end the
// session.
func Stop(userState interface{}) Result { return Result{UserState: userState, Stop: true} }

// Scheduler is the capability set a user module must implement to drive a
// session. Init seeds the session; the master tells it where to go via
// redirect, so there is no leader-election concern here (out of scope per
// spec). An error from Init fails startup with that error as the reason.
type Scheduler interface {
	Init(userOptions map[string]interface{}) (info *mesos.FrameworkInfo, force bool, userState interface{}, err error)
	Registered(info Info, sub *scheduler.Event_Subscribed, userState interface{}) Result
	Reregistered(info Info, userState interface{}) Result
	Disconnected(info Info, userState interface{}) Result
	Error(info Info, ev *scheduler.Event_Error, userState interface{}) Result
}

// The following are optional extensions to Scheduler: a session forwards
// OFFERS/RESCIND/UPDATE/MESSAGE/FAILURE events to whichever of these the
// user scheduler additionally implements, and silently drops them
// otherwise (matching the source's "log and continue" treatment of
// unmapped events).

type OfferScheduler interface {
	Offers(info Info, ev *scheduler.Event_Offers, userState interface{}) Result
}

type RescindScheduler interface {
	Rescind(info Info, ev *scheduler.Event_Rescind, userState interface{}) Result
}

type UpdateScheduler interface {
	Update(info Info, ev *scheduler.Event_Update, userState interface{}) Result
}

type MessageScheduler interface {
	Message(info Info, ev *scheduler.Event_Message, userState interface{}) Result
}

type FailureScheduler interface {
	Failure(info Info, ev *scheduler.Event_Failure, userState interface{}) Result
}

// FrameworkIDStore is an optional persistence seam (spec treats
// persistence across process restarts as a Non-goal for the core itself;
// this interface exists purely so an embedder can opt in). A nil store is
// a no-op: Load returns (nil, nil) and Save does nothing.
type FrameworkIDStore interface {
	Load() (*mesos.FrameworkID, error)
	Save(id *mesos.FrameworkID) error
}
