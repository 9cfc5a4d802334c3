// Package scheduler defines the Call and Event message types exchanged
// with a Mesos master's HTTP Scheduler API (v1), and their sub-messages.
package scheduler

import (
	"fmt"

	mesos "github.com/mesos/mesos-go/api/v1/lib"
)

// Call_Type names the kind of scheduler call being sent.
type Call_Type int32

const (
	Call_UNKNOWN Call_Type = iota
	Call_SUBSCRIBE
	Call_TEARDOWN
	Call_ACCEPT
	Call_DECLINE
	Call_REVIVE
	Call_SUPPRESS
	Call_KILL
	Call_SHUTDOWN
	Call_ACKNOWLEDGE
	Call_RECONCILE
	Call_MESSAGE
	Call_REQUEST
)

func (t Call_Type) String() string {
	switch t {
	case Call_SUBSCRIBE:
		return "SUBSCRIBE"
	case Call_TEARDOWN:
		return "TEARDOWN"
	case Call_ACCEPT:
		return "ACCEPT"
	case Call_DECLINE:
		return "DECLINE"
	case Call_REVIVE:
		return "REVIVE"
	case Call_SUPPRESS:
		return "SUPPRESS"
	case Call_KILL:
		return "KILL"
	case Call_SHUTDOWN:
		return "SHUTDOWN"
	case Call_ACKNOWLEDGE:
		return "ACKNOWLEDGE"
	case Call_RECONCILE:
		return "RECONCILE"
	case Call_MESSAGE:
		return "MESSAGE"
	case Call_REQUEST:
		return "REQUEST"
	default:
		return "UNKNOWN"
	}
}

// Call is the envelope for every outbound scheduler request. Exactly the
// field matching Type should be populated.
type Call struct {
	FrameworkID  *mesos.FrameworkID `protobuf:"bytes,1,opt,name=framework_id" json:"framework_id,omitempty"`
	Type         Call_Type          `protobuf:"varint,2,opt,name=type" json:"type"`
	Subscribe    *Call_Subscribe    `protobuf:"bytes,3,opt,name=subscribe" json:"subscribe,omitempty"`
	Accept       *Call_Accept       `protobuf:"bytes,4,opt,name=accept" json:"accept,omitempty"`
	Decline      *Call_Decline      `protobuf:"bytes,5,opt,name=decline" json:"decline,omitempty"`
	Kill         *Call_Kill         `protobuf:"bytes,6,opt,name=kill" json:"kill,omitempty"`
	Acknowledge  *Call_Acknowledge  `protobuf:"bytes,7,opt,name=acknowledge" json:"acknowledge,omitempty"`
	Message      *Call_Message      `protobuf:"bytes,8,opt,name=message" json:"message,omitempty"`
	Reconcile    *Call_Reconcile    `protobuf:"bytes,9,opt,name=reconcile" json:"reconcile,omitempty"`
}

func (m *Call) Reset()         { *m = Call{} }
func (m *Call) String() string { return fmt.Sprintf("%+v", *m) }
func (*Call) ProtoMessage()    {}

// Call_Subscribe carries the framework's self-description on (re)subscribe.
// Force is only meaningful pre-registration (i.e. FrameworkID is unset on
// the enclosing Call): it tells the master to evict any other scheduler
// instance already registered under the same framework.
type Call_Subscribe struct {
	FrameworkInfo *mesos.FrameworkInfo `protobuf:"bytes,1,req,name=framework_info" json:"framework_info"`
	Force         bool                 `protobuf:"varint,2,opt,name=force" json:"force,omitempty"`
}

type Call_Accept struct {
	OfferIDs   []string `protobuf:"bytes,1,rep,name=offer_ids" json:"offer_ids,omitempty"`
	Operations []byte   `protobuf:"bytes,2,opt,name=operations" json:"operations,omitempty"`
}

type Call_Decline struct {
	OfferIDs []string `protobuf:"bytes,1,rep,name=offer_ids" json:"offer_ids,omitempty"`
}

type Call_Kill struct {
	TaskID  string `protobuf:"bytes,1,req,name=task_id" json:"task_id"`
	AgentID string `protobuf:"bytes,2,opt,name=agent_id" json:"agent_id,omitempty"`
}

type Call_Acknowledge struct {
	AgentID string `protobuf:"bytes,1,req,name=agent_id" json:"agent_id"`
	TaskID  string `protobuf:"bytes,2,req,name=task_id" json:"task_id"`
	UUID    []byte `protobuf:"bytes,3,req,name=uuid" json:"uuid"`
}

type Call_Message struct {
	AgentID    string `protobuf:"bytes,1,req,name=agent_id" json:"agent_id"`
	ExecutorID string `protobuf:"bytes,2,req,name=executor_id" json:"executor_id"`
	Data       []byte `protobuf:"bytes,3,req,name=data" json:"data"`
}

type Call_Reconcile struct {
	Tasks []Call_Reconcile_Task `protobuf:"bytes,1,rep,name=tasks" json:"tasks,omitempty"`
}

type Call_Reconcile_Task struct {
	TaskID  string `protobuf:"bytes,1,req,name=task_id" json:"task_id"`
	AgentID string `protobuf:"bytes,2,opt,name=agent_id" json:"agent_id,omitempty"`
}

// Event_Type classifies an inbound scheduler event.
type Event_Type int32

const (
	Event_UNKNOWN Event_Type = iota
	Event_SUBSCRIBED
	Event_OFFERS
	Event_RESCIND
	Event_UPDATE
	Event_MESSAGE
	Event_FAILURE
	Event_ERROR
	Event_HEARTBEAT
)

func (t Event_Type) String() string {
	switch t {
	case Event_SUBSCRIBED:
		return "SUBSCRIBED"
	case Event_OFFERS:
		return "OFFERS"
	case Event_RESCIND:
		return "RESCIND"
	case Event_UPDATE:
		return "UPDATE"
	case Event_MESSAGE:
		return "MESSAGE"
	case Event_FAILURE:
		return "FAILURE"
	case Event_ERROR:
		return "ERROR"
	case Event_HEARTBEAT:
		return "HEARTBEAT"
	default:
		return "UNKNOWN"
	}
}

// Event is the envelope for every inbound master event. Exactly the field
// matching Type is populated, mirroring Call above.
type Event struct {
	Type       Event_Type       `protobuf:"varint,1,opt,name=type" json:"type"`
	Subscribed *Event_Subscribed `protobuf:"bytes,2,opt,name=subscribed" json:"subscribed,omitempty"`
	Offers     *Event_Offers     `protobuf:"bytes,3,opt,name=offers" json:"offers,omitempty"`
	Rescind    *Event_Rescind    `protobuf:"bytes,4,opt,name=rescind" json:"rescind,omitempty"`
	Update     *Event_Update     `protobuf:"bytes,5,opt,name=update" json:"update,omitempty"`
	Message    *Event_Message    `protobuf:"bytes,6,opt,name=message" json:"message,omitempty"`
	Failure    *Event_Failure    `protobuf:"bytes,7,opt,name=failure" json:"failure,omitempty"`
	Error      *Event_Error      `protobuf:"bytes,8,opt,name=error" json:"error,omitempty"`
}

func (m *Event) Reset()         { *m = Event{} }
func (m *Event) String() string { return fmt.Sprintf("%+v", *m) }
func (*Event) ProtoMessage()    {}

// Event_Subscribed carries the assigned framework id and the master's
// chosen heartbeat interval, in seconds (the wire unit; the session
// converts to milliseconds).
type Event_Subscribed struct {
	FrameworkID              mesos.FrameworkID `protobuf:"bytes,1,req,name=framework_id" json:"framework_id"`
	HeartbeatIntervalSeconds *float64          `protobuf:"fixed64,2,opt,name=heartbeat_interval_seconds" json:"heartbeat_interval_seconds,omitempty"`
}

type Event_Offers struct {
	Offers []Offer `protobuf:"bytes,1,rep,name=offers" json:"offers,omitempty"`
}

// Offer is intentionally thin: the core forwards offers verbatim to user
// code without inspecting resource internals (spec Non-goal: no offer
// accounting in the core itself).
type Offer struct {
	ID          string `protobuf:"bytes,1,req,name=id" json:"id"`
	FrameworkID string `protobuf:"bytes,2,req,name=framework_id" json:"framework_id"`
	AgentID     string `protobuf:"bytes,3,req,name=agent_id" json:"agent_id"`
	Hostname    string `protobuf:"bytes,4,opt,name=hostname" json:"hostname,omitempty"`
}

type Event_Rescind struct {
	OfferID string `protobuf:"bytes,1,req,name=offer_id" json:"offer_id"`
}

type Event_Update struct {
	Status TaskStatus `protobuf:"bytes,1,req,name=status" json:"status"`
}

type TaskStatus struct {
	TaskID  string `protobuf:"bytes,1,req,name=task_id" json:"task_id"`
	State   string `protobuf:"bytes,2,req,name=state" json:"state"`
	AgentID string `protobuf:"bytes,3,opt,name=agent_id" json:"agent_id,omitempty"`
	UUID    []byte `protobuf:"bytes,4,opt,name=uuid" json:"uuid,omitempty"`
}

type Event_Message struct {
	AgentID    string `protobuf:"bytes,1,req,name=agent_id" json:"agent_id"`
	ExecutorID string `protobuf:"bytes,2,req,name=executor_id" json:"executor_id"`
	Data       []byte `protobuf:"bytes,3,req,name=data" json:"data"`
}

type Event_Failure struct {
	AgentID    *string `protobuf:"bytes,1,opt,name=agent_id" json:"agent_id,omitempty"`
	ExecutorID *string `protobuf:"bytes,2,opt,name=executor_id" json:"executor_id,omitempty"`
	Status     *int32  `protobuf:"varint,3,opt,name=status" json:"status,omitempty"`
}

type Event_Error struct {
	Message string `protobuf:"bytes,1,req,name=message" json:"message"`
}
