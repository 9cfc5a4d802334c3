// Package mesos holds the wire-level value types shared by the scheduler
// HTTP client and its supporting packages: framework identity, credentials,
// and the streaming Response contract that every HTTP adapter must satisfy.
package mesos

import "io"

// FrameworkID identifies a framework as assigned by a Mesos master upon its
// first successful SUBSCRIBE call. It is echoed back on later SUBSCRIBE
// calls so the master can recognize a reconnecting framework; the other
// call builders in scheduler/calls do not set it.
type FrameworkID struct {
	Value string `json:"value"`
}

// GetValue is nil-safe so callers may hold a *FrameworkID that hasn't been
// assigned yet.
func (f *FrameworkID) GetValue() string {
	if f == nil {
		return ""
	}
	return f.Value
}

// Label is a single key/value annotation attached to a FrameworkInfo or
// other Mesos entity.
type Label struct {
	Key   string  `json:"key"`
	Value *string `json:"value,omitempty"`
}

// Labels is an ordered set of Label values.
type Labels struct {
	Labels []Label `json:"labels,omitempty"`
}

// Credential carries the principal/secret pair used for framework
// authentication against the master.
type Credential struct {
	Principal string  `json:"principal"`
	Secret    *string `json:"secret,omitempty"`
}

// Address names a reachable host:port pair, e.g. for a framework's webui.
type Address struct {
	Hostname *string `json:"hostname,omitempty"`
	IP       *string `json:"ip,omitempty"`
	Port     int32   `json:"port"`
}

// FrameworkInfo is the framework's self-description, sent on every
// subscribe attempt.
type FrameworkInfo struct {
	User            string      `json:"user"`
	Name            string      `json:"name"`
	ID              *FrameworkID `json:"id,omitempty"`
	FailoverTimeout *float64    `json:"failover_timeout,omitempty"`
	Checkpoint      *bool       `json:"checkpoint,omitempty"`
	Role            *string     `json:"role,omitempty"`
	Roles           []string    `json:"roles,omitempty"`
	Hostname        *string     `json:"hostname,omitempty"`
	Principal       *string     `json:"principal,omitempty"`
	WebUIURL        *string     `json:"webui_url,omitempty"`
	Capabilities    []FrameworkInfo_Capability `json:"capabilities,omitempty"`
	Labels          *Labels     `json:"labels,omitempty"`
}

// FrameworkInfo_Capability names an optional framework capability, e.g. GPU
// resource support or partition-awareness. Named with the generated-protobuf
// underscore convention to match the rest of this value's upstream type
// family.
type FrameworkInfo_Capability struct {
	Type string `json:"type"`
}

const (
	CapabilityGPUResources        = "GPU_RESOURCES"
	CapabilityTaskKillingState    = "TASK_KILLING_STATE"
	CapabilityPartitionAware      = "PARTITION_AWARE"
	CapabilityRevocableResources  = "REVOCABLE_RESOURCES"
	CapabilityMultiRole           = "MULTI_ROLE"
)

// Response is satisfied by every HTTP adapter's result: callers read
// framed event bytes off of it and must Close it exactly once to release
// the underlying connection.
type Response interface {
	io.Reader
	Close() error
}
