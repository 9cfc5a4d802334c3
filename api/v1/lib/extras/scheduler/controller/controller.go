// Package controller implements the scheduler subscribe session: the
// long-lived state machine that maintains a subscribed stream to a Mesos
// master in the presence of redirects, transient errors, silent
// disconnection, and master failover, dispatching decoded events to a
// user-supplied Scheduler.
//
// The session is a single-threaded cooperative actor: Run's calling
// goroutine is the only one that ever touches session state or invokes a
// Scheduler callback. Other goroutines exist only to fire timers (the
// heartbeat watchdog and the resubscribe interval) and to react to ctx
// cancellation. The watchdog and the cancellation hook communicate with the
// session exclusively by closing the current response body — never by
// touching session fields — so that the blocked Decode call in the main
// goroutine is what actually observes and reacts to them.
package controller

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	mesos "github.com/mesos/mesos-go/api/v1/lib"
	"github.com/mesos/mesos-go/api/v1/lib/encoding"
	"github.com/mesos/mesos-go/api/v1/lib/extras/metrics"
	"github.com/mesos/mesos-go/api/v1/lib/extras/scheduler/callrules"
	"github.com/mesos/mesos-go/api/v1/lib/extras/scheduler/eventrules"
	"github.com/mesos/mesos-go/api/v1/lib/httpcli"
	"github.com/mesos/mesos-go/api/v1/lib/httpcli/apierrors"
	"github.com/mesos/mesos-go/api/v1/lib/httpcli/httpsched"
	"github.com/mesos/mesos-go/api/v1/lib/scheduler"
	"github.com/mesos/mesos-go/api/v1/lib/scheduler/calls"
	"github.com/mesos/mesos-go/api/v1/lib/scheduler/events"
)

// MaxRedirect bounds the number of 307 redirects consumed while trying to
// establish a single subscription; exceeding it fails over to the next
// candidate master instead of looping.
const MaxRedirect = 5

// SubscribeState names a point in the subscribe state machine. It only
// ever advances forward within a single subscription attempt.
type SubscribeState int

const (
	AwaitingStatus SubscribeState = iota
	AwaitingHeaders
	AwaitingBody
	Subscribed
)

func (s SubscribeState) String() string {
	switch s {
	case AwaitingHeaders:
		return "awaiting_headers"
	case AwaitingBody:
		return "awaiting_body"
	case Subscribed:
		return "subscribed"
	default:
		return "awaiting_status"
	}
}

// errShutdown wraps a terminal reason, matching spec's {shutdown, reason}.
type errShutdown struct{ reason string }

func (e *errShutdown) Error() string { return fmt.Sprintf("shutdown: %s", e.reason) }

var (
	errBadHosts             = &errShutdown{"subscribe: no master hosts left to try"}
	errMaxAttemptsExceeded  = &errShutdown{"subscribe: max_attempts_exceeded"}
	errCallbackRequestedStop = &errShutdown{"callback_requested"}
)

// Option configures a session beyond its Config.
type Option func(*session)

// WithCodec overrides the wire codec; defaults to the codec registered
// under Config.DataFormat.
func WithCodec(c encoding.Codec) Option {
	return func(s *session) { s.codec = c }
}

// WithLogger overrides the session's logger; defaults to logrus.StandardLogger().
func WithLogger(log *logrus.Entry) Option {
	return func(s *session) { s.log = log }
}

// WithFrameworkIDStore installs an optional persistence seam (spec §4.6);
// the default is a no-op store so framework-id persistence remains the
// Non-goal the spec describes unless an embedder opts in.
func WithFrameworkIDStore(store FrameworkIDStore) Option {
	return func(s *session) { s.store = store }
}

// WithHTTPClient overrides the *http.Client used for every subscribe
// attempt; defaults to an http.Client that does not follow redirects, so
// that 307s are handled by httpsched.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *session) { s.httpClient = hc }
}

// WithMetrics attaches a metrics harness that the event/call rule
// pipelines record one observation through per event received and per call
// sent; the default is a nil harness, which is a no-op (extras/metrics.
// Harness.Observe tolerates a nil receiver).
func WithMetrics(h *metrics.Harness) Option {
	return func(s *session) { s.metrics = h }
}

type session struct {
	cfg     Config
	sched   Scheduler
	codec   encoding.Codec
	log     *logrus.Entry
	store   FrameworkIDStore
	metrics *metrics.Harness

	httpClient    *http.Client
	httpcliClient *httpcli.Client
	caller        calls.Caller
	eventHandler  events.Handler

	userState         interface{}
	frameworkInfo     *mesos.FrameworkInfo
	force             bool
	masterHostsQueue  []string
	masterHost        string
	resp              mesos.Response
	subscribeState    SubscribeState
	frameworkID       *mesos.FrameworkID
	numResubscribe    int
	heartbeatInterval time.Duration
	heartbeatTimer    *time.Timer
	resubscribeTimer  *time.Timer
}

func newSession(cfg Config, sched Scheduler, opts ...Option) (*session, error) {
	codec, err := encoding.CodecFor(cfg.DataFormat)
	if err != nil {
		return nil, &BadOptionError{"data_format", cfg.DataFormat}
	}
	s := &session{
		cfg:        cfg,
		sched:      sched,
		codec:      codec,
		log:        logrus.NewEntry(logrus.StandardLogger()),
		httpClient: &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }},
	}
	for _, o := range opts {
		if o != nil {
			o(s)
		}
	}
	s.httpcliClient = httpcli.New(
		httpcli.Codec(s.codec),
		httpcli.HTTPClient(s.httpClient),
		httpcli.DefaultRequestOpts(cfg.SubscribeReqOptions...),
	)
	s.caller = callrules.New(callrules.Metrics(s.metrics, nil)).Caller(
		httpsched.NewCaller(s.httpcliClient, httpsched.MaxRedirects(MaxRedirect)),
	)
	s.eventHandler = s.buildEventPipeline()
	return s, nil
}

// buildEventPipeline routes each decoded event to the matching Scheduler
// callback (falling back to a debug log for event kinds the user scheduler
// doesn't implement), wrapped in an eventrules chain so cross-cutting
// concerns (currently: metrics) run around every dispatch regardless of
// event kind.
func (s *session) buildEventPipeline() events.Handler {
	handlers := events.NewHandlers(map[scheduler.Event_Type]events.Handler{
		scheduler.Event_SUBSCRIBED: events.HandlerFunc(func(_ context.Context, ev *scheduler.Event) error {
			return s.onSubscribed(ev.Subscribed)
		}),
		scheduler.Event_HEARTBEAT: events.HandlerFunc(func(_ context.Context, ev *scheduler.Event) error {
			s.armHeartbeat()
			return nil
		}),
		scheduler.Event_ERROR: events.HandlerFunc(func(_ context.Context, ev *scheduler.Event) error {
			return s.onError(ev.Error)
		}),
		scheduler.Event_OFFERS: events.HandlerFunc(func(_ context.Context, ev *scheduler.Event) error {
			if es, ok := s.sched.(OfferScheduler); ok {
				return s.applyResult(es.Offers(s.info(), ev.Offers, s.userState))
			}
			return nil
		}),
		scheduler.Event_RESCIND: events.HandlerFunc(func(_ context.Context, ev *scheduler.Event) error {
			if es, ok := s.sched.(RescindScheduler); ok {
				return s.applyResult(es.Rescind(s.info(), ev.Rescind, s.userState))
			}
			return nil
		}),
		scheduler.Event_UPDATE: events.HandlerFunc(func(_ context.Context, ev *scheduler.Event) error {
			if es, ok := s.sched.(UpdateScheduler); ok {
				return s.applyResult(es.Update(s.info(), ev.Update, s.userState))
			}
			return nil
		}),
		scheduler.Event_MESSAGE: events.HandlerFunc(func(_ context.Context, ev *scheduler.Event) error {
			if es, ok := s.sched.(MessageScheduler); ok {
				return s.applyResult(es.Message(s.info(), ev.Message, s.userState))
			}
			return nil
		}),
		scheduler.Event_FAILURE: events.HandlerFunc(func(_ context.Context, ev *scheduler.Event) error {
			if es, ok := s.sched.(FailureScheduler); ok {
				return s.applyResult(es.Failure(s.info(), ev.Failure, s.userState))
			}
			return nil
		}),
	})
	handlers.NotFound = events.HandlerFunc(func(_ context.Context, ev *scheduler.Event) error {
		s.log.WithField("type", ev.Type.String()).Debug("ignoring unrecognized event")
		return nil
	})
	return eventrules.New(eventrules.Metrics(s.metrics, nil)).Handle(handlers)
}

// Run drives a session to completion: it seeds state from sched.Init,
// subscribes, and alternates between reading the event stream and
// resubscribing until a terminal condition is reached. It blocks until the
// session shuts down (by callback request, resubscribe exhaustion, bad
// options, or ctx cancellation) and returns the shutdown reason.
func Run(ctx context.Context, cfg Config, sched Scheduler, opts ...Option) error {
	s, err := newSession(cfg, sched, opts...)
	if err != nil {
		return err
	}
	return s.run(ctx)
}

func (s *session) run(ctx context.Context) error {
	info, force, userState, err := s.sched.Init(nil)
	if err != nil {
		return errors.Wrap(err, "controller: scheduler init requested stop")
	}
	s.frameworkInfo = info
	s.force = force
	s.userState = userState

	if s.store != nil {
		if fid, lerr := s.store.Load(); lerr == nil && fid != nil && fid.Value != "" {
			s.frameworkID = fid
		}
	}

	s.masterHostsQueue = append([]string{}, s.cfg.MasterHosts...)

	err = s.subscribeLoop(ctx)
	for err == nil {
		err = s.resubscribe(ctx)
	}

	s.closeStream()
	s.cancelTimers()
	return err
}

// subscribeLoop pops masters off the queue, trying each in turn, until one
// yields a live 200 stream (which it then reads to completion) or the
// queue is exhausted.
func (s *session) subscribeLoop(ctx context.Context) error {
	for {
		if len(s.masterHostsQueue) == 0 {
			return errBadHosts
		}
		host := s.masterHostsQueue[0]
		s.masterHostsQueue = s.masterHostsQueue[1:]
		s.masterHost = host
		s.subscribeState = AwaitingStatus

		endpoint := fmt.Sprintf("http://%s/api/v1/scheduler", host)
		s.httpcliClient.With(httpcli.Endpoint(endpoint))

		call := s.buildSubscribeCall()
		resp, err := s.caller.Call(call)
		if err != nil {
			if apiErr, ok := err.(*apierrors.Error); ok && apiErr.Code == apierrors.CodeNotLeader {
				// A 307 redirect chain is already followed inside s.caller
				// (httpsched.Caller, with its own backoff), so what arrives
				// here is a 503: this candidate is a dead end for now, so
				// move on to the next one. A redirect chain longer than
				// MaxRedirect surfaces as a different error and takes the
				// generic branch below, which also moves on.
				s.log.Debug("no leader reachable on this master, trying next master")
				continue
			}
			s.log.WithError(err).Warn("subscribe attempt failed, trying next master")
			continue
		}

		s.subscribeState = AwaitingHeaders
		s.resp = resp
		return s.readEvents(ctx)
	}
}

// readEvents decodes events off the current stream one at a time until the
// stream ends (EOF, error, or the heartbeat watchdog closing it out from
// under us), a callback requests termination, or ctx is cancelled.
func (s *session) readEvents(ctx context.Context) error {
	s.subscribeState = AwaitingBody
	resp := s.resp
	stop := context.AfterFunc(ctx, func() { resp.Close() })
	defer stop()
	dec := s.codec.NewDecoder(s.resp)
	for {
		var ev scheduler.Event
		if err := dec.Decode(&ev); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return nil // non-fatal: resubscribe path takes over
		}
		if shutdownErr := s.eventHandler.HandleEvent(ctx, &ev); shutdownErr != nil {
			return shutdownErr
		}
	}
}

func (s *session) applyResult(r Result) error {
	s.userState = r.UserState
	if r.Stop {
		return errCallbackRequestedStop
	}
	return nil
}

func (s *session) onSubscribed(sub *scheduler.Event_Subscribed) error {
	if sub == nil {
		return nil
	}
	first := s.frameworkID == nil
	if first {
		fid := sub.FrameworkID
		s.frameworkID = &fid
		if s.store != nil {
			if err := s.store.Save(&fid); err != nil {
				s.log.WithError(err).Warn("failed to persist framework id")
			}
		}
	}
	s.numResubscribe = 0
	s.heartbeatInterval = 5 * time.Second
	if sub.HeartbeatIntervalSeconds != nil {
		s.heartbeatInterval = time.Duration(*sub.HeartbeatIntervalSeconds * float64(time.Second))
	}
	s.subscribeState = Subscribed
	s.armHeartbeat()

	var result Result
	if first {
		result = s.sched.Registered(s.info(), sub, s.userState)
	} else {
		result = s.sched.Reregistered(s.info(), s.userState)
	}
	return s.applyResult(result)
}

func (s *session) onError(ev *scheduler.Event_Error) error {
	result := s.sched.Error(s.info(), ev, s.userState)
	return s.applyResult(result)
}

// armHeartbeat (re)arms the watchdog for heartbeat_interval +
// heartbeat_timeout_window. Firing closes the current stream, which is
// the only cross-goroutine interaction the watchdog performs; all state
// transitions happen back in the reading goroutine once Decode observes
// the resulting error.
func (s *session) armHeartbeat() {
	if s.heartbeatTimer != nil {
		s.heartbeatTimer.Stop()
	}
	timeout := s.heartbeatInterval + s.cfg.HeartbeatTimeoutWindow
	resp := s.resp
	s.heartbeatTimer = time.AfterFunc(timeout, func() {
		if resp != nil {
			resp.Close()
		}
	})
}

// resubscribe runs the post-disconnect recovery loop: notify the user
// scheduler once, then repeatedly wait out the backoff interval and retry
// the full master queue until one candidate accepts the subscribe or
// max_num_resubscribe is exhausted. A queue-exhausted subscribeLoop result
// here is just one more failed round, not the startup-only bad_hosts
// terminal error (at startup, run returns errBadHosts from its first
// subscribeLoop call as is) - it's absorbed and counted against
// max_num_resubscribe like any other failed attempt, and only escalates to
// errMaxAttemptsExceeded once that counter runs out.
func (s *session) resubscribe(ctx context.Context) error {
	s.closeStream()

	if s.subscribeState == Subscribed {
		result := s.sched.Disconnected(s.info(), s.userState)
		if err := s.applyResult(result); err != nil {
			return err
		}
	}
	s.subscribeState = AwaitingStatus
	if s.heartbeatTimer != nil {
		s.heartbeatTimer.Stop()
		s.heartbeatTimer = nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.cfg.MaxNumResubscribe != Infinite && s.numResubscribe >= s.cfg.MaxNumResubscribe {
			return errMaxAttemptsExceeded
		}
		s.numResubscribe++
		s.masterHostsQueue = append([]string{}, s.cfg.MasterHosts...)

		if s.cfg.ResubscribeInterval > 0 {
			done := make(chan struct{})
			s.resubscribeTimer = time.AfterFunc(s.cfg.ResubscribeInterval, func() { close(done) })
			select {
			case <-done:
			case <-ctx.Done():
				return ctx.Err()
			}
			s.resubscribeTimer = nil
		}

		err := s.subscribeLoop(ctx)
		if err == errBadHosts {
			s.log.Warn("resubscribe attempt exhausted master_hosts queue, retrying")
			continue
		}
		return err
	}
}

func (s *session) closeStream() {
	if s.resp != nil {
		s.resp.Close()
		s.resp = nil
	}
}

func (s *session) cancelTimers() {
	if s.heartbeatTimer != nil {
		s.heartbeatTimer.Stop()
		s.heartbeatTimer = nil
	}
	if s.resubscribeTimer != nil {
		s.resubscribeTimer.Stop()
		s.resubscribeTimer = nil
	}
}

func (s *session) buildSubscribeCall() *scheduler.Call {
	return calls.Subscribe(s.frameworkInfo, s.frameworkID, s.force)
}

func (s *session) info() Info {
	info := Info{DataFormat: s.cfg.DataFormat, MasterHost: s.masterHost, Caller: s.caller}
	if s.frameworkID != nil {
		info.FrameworkID = *s.frameworkID
	}
	return info
}
