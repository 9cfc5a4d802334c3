package controller

import (
	"fmt"
	"strings"
	"time"

	"github.com/mesos/mesos-go/api/v1/lib/httpcli"
)

// Infinite is the sentinel value for Config.MaxNumResubscribe meaning
// "never give up resubscribing".
const Infinite = -1

// reservedHeaders are always set by the controller itself on a subscribe
// request and may not be overridden via SubscribeReqOptions.
var reservedHeaders = map[string]bool{
	"content-type": true,
	"accept":       true,
	"connection":   true,
}

// Config is the session's immutable configuration, built once by
// BuildConfig from a raw option map and never mutated afterward.
type Config struct {
	MasterHosts            []string
	SubscribeReqOptions    []httpcli.RequestOpt
	HeartbeatTimeoutWindow time.Duration
	MaxNumResubscribe      int
	ResubscribeInterval    time.Duration
	DataFormat             string
}

// BadOptionError names the first offending raw option BuildConfig
// encountered, matching spec's {bad_<option>, offending_value} shape.
type BadOptionError struct {
	Option string
	Value  interface{}
}

func (e *BadOptionError) Error() string {
	return fmt.Sprintf("controller: bad option %q: %#v", e.Option, e.Value)
}

// BuildConfig validates a raw option map into a Config, running validators
// in a fixed order (master_hosts, subscribe_req_options,
// heartbeat_timeout_window, max_num_resubscribe, resubscribe_interval) so
// that the first offending option is always the one reported. Missing
// options take their documented defaults. BuildConfig is idempotent:
// calling it again on an already-built Config's equivalent raw map yields
// an identical Config.
func BuildConfig(raw map[string]interface{}) (Config, error) {
	cfg := Config{
		MasterHosts:            []string{"localhost:5050"},
		HeartbeatTimeoutWindow: 5000 * time.Millisecond,
		MaxNumResubscribe:      1,
		ResubscribeInterval:    0,
		DataFormat:             "json",
	}

	if v, ok := raw["master_hosts"]; ok {
		hosts, err := toStringSlice(v)
		if err != nil || len(hosts) == 0 {
			return Config{}, &BadOptionError{"master_hosts", v}
		}
		cfg.MasterHosts = hosts
	}

	if v, ok := raw["subscribe_req_options"]; ok {
		opts, err := toRequestOpts(v)
		if err != nil {
			return Config{}, &BadOptionError{"subscribe_req_options", v}
		}
		cfg.SubscribeReqOptions = opts
	}

	if v, ok := raw["heartbeat_timeout_window"]; ok {
		ms, err := toNonNegInt(v)
		if err != nil {
			return Config{}, &BadOptionError{"heartbeat_timeout_window", v}
		}
		cfg.HeartbeatTimeoutWindow = time.Duration(ms) * time.Millisecond
	}

	if v, ok := raw["max_num_resubscribe"]; ok {
		if s, ok := v.(string); ok && s == "infinite" {
			cfg.MaxNumResubscribe = Infinite
		} else {
			n, err := toNonNegInt(v)
			if err != nil {
				return Config{}, &BadOptionError{"max_num_resubscribe", v}
			}
			cfg.MaxNumResubscribe = n
		}
	}

	if v, ok := raw["resubscribe_interval"]; ok {
		ms, err := toNonNegInt(v)
		if err != nil {
			return Config{}, &BadOptionError{"resubscribe_interval", v}
		}
		cfg.ResubscribeInterval = time.Duration(ms) * time.Millisecond
	}

	return cfg, nil
}

func toStringSlice(v interface{}) ([]string, error) {
	switch t := v.(type) {
	case string:
		return []string{t}, nil
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out, nil
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("non-string element %#v", e)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

func toNonNegInt(v interface{}) (int, error) {
	var n int
	switch t := v.(type) {
	case int:
		n = t
	case int32:
		n = int(t)
	case int64:
		n = int(t)
	case float64:
		n = int(t)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative value %d", n)
	}
	return n, nil
}

func toRequestOpts(v interface{}) ([]httpcli.RequestOpt, error) {
	m, ok := v.(map[string]string)
	if !ok {
		if mi, ok2 := v.(map[string]interface{}); ok2 {
			m = make(map[string]string, len(mi))
			for k, val := range mi {
				s, ok3 := val.(string)
				if !ok3 {
					return nil, fmt.Errorf("non-string header value for %q", k)
				}
				m[k] = s
			}
		} else {
			return nil, fmt.Errorf("unsupported type %T", v)
		}
	}
	opts := make([]httpcli.RequestOpt, 0, len(m))
	for k, val := range m {
		if reservedHeaders[strings.ToLower(k)] {
			continue // adapter-level streaming headers always win, per spec
		}
		opts = append(opts, httpcli.Header(k, val))
	}
	return opts, nil
}
