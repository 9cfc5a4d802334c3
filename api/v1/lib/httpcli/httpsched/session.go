package httpsched

import (
	"sync"

	"github.com/mesos/mesos-go/api/v1/lib"
	"github.com/mesos/mesos-go/api/v1/lib/encoding"
	"github.com/mesos/mesos-go/api/v1/lib/httpcli"
	"github.com/mesos/mesos-go/api/v1/lib/scheduler"
)

// streamFn tracks whether this Caller currently believes itself subscribed.
// Call records the transition on every call; whether a Mesos-Stream-Id
// header is sent depends only on whether a stream id has been captured.
// disconnectedFn is the zero-value starting state referenced by NewCaller.
type streamFn func(callType scheduler.Call_Type) streamFn

func disconnectedFn(callType scheduler.Call_Type) streamFn {
	if callType == scheduler.Call_SUBSCRIBE {
		return subscribedFn
	}
	return disconnectedFn
}

func subscribedFn(callType scheduler.Call_Type) streamFn {
	if callType == scheduler.Call_TEARDOWN {
		return disconnectedFn
	}
	return subscribedFn
}

// state decorates a *client with Mesos-Stream-Id bookkeeping: the id a
// master assigns on a successful SUBSCRIBE response must be echoed on
// every subsequent non-SUBSCRIBE call on this connection.
type state struct {
	mu       sync.Mutex
	client   *client
	fn       streamFn
	streamID string
}

var _ callerInternal = (*state)(nil)

// Call implements calls.Caller. Concurrent calls are serialized.
func (s *state) Call(call *scheduler.Call) (resp mesos.Response, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fn = s.fn(call.Type)
	var opts []httpcli.RequestOpt
	if s.streamID != "" && call.Type != scheduler.Call_SUBSCRIBE {
		opts = append(opts, httpcli.Header("Mesos-Stream-Id", s.streamID))
	}
	resp, err = s.client.httpDo(call, opts...)
	if err == nil && call.Type == scheduler.Call_SUBSCRIBE {
		if hr, ok := resp.(*httpcli.Response); ok {
			if id := hr.Header.Get("Mesos-Stream-Id"); id != "" {
				s.streamID = id
			}
		}
	}
	return resp, err
}

// httpDo implements Caller; it does not affect stream-id tracking since
// only Call (and thus SUBSCRIBE) goes through that path.
func (s *state) httpDo(m encoding.Marshaler, opt ...httpcli.RequestOpt) (mesos.Response, error) {
	return s.client.httpDo(m, opt...)
}

// WithTemporary implements callerInternal.
func (s *state) WithTemporary(opt httpcli.Opt, f func() error) error {
	return s.client.WithTemporary(opt, f)
}
