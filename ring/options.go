// File: ring/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ring

import (
	"log/slog"
	"reflect"

	"github.com/momentics/hioload-ring/api"
)

// Option configures a CircularBuffer at construction.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	observer api.RingObserver
}

func defaultOptions() options {
	return options{logger: slog.Default()}
}

// WithLogger sets the logger used for resize events (emitted at Debug).
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver attaches an observer notified on every write, read, resize
// and failed operation. A nil observer, including a typed nil pointer,
// leaves the buffer unobserved.
func WithObserver(obs api.RingObserver) Option {
	return func(o *options) {
		if isNil(obs) {
			obs = nil
		}
		o.observer = obs
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
