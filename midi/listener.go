package midi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/cwbudde/algo-vis/control"
)

const (
	// DefaultMaxBackoff caps the idle backoff counter.
	DefaultMaxBackoff = 10
	// DefaultBackoffStep is the sleep per backoff unit.
	DefaultBackoffStep = 10 * time.Millisecond
)

// Port is a non-blocking MIDI input. ReadMessage returns ok == false with a
// nil error when no message is waiting.
type Port interface {
	ReadMessage() (msg gomidi.Message, ok bool, err error)
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// ListenerOption configures a Listener.
type ListenerOption func(*Listener)

// WithLogger sets the logger. slog.Default is used otherwise.
func WithLogger(l *slog.Logger) ListenerOption {
	return func(li *Listener) {
		if l != nil {
			li.log = l
		}
	}
}

// WithSleep replaces the idle sleep.
func WithSleep(fn SleepFunc) ListenerOption {
	return func(li *Listener) {
		if fn != nil {
			li.sleep = fn
		}
	}
}

// WithMaxBackoff sets the backoff ceiling.
func WithMaxBackoff(n int) ListenerOption {
	return func(li *Listener) {
		if n > 0 {
			li.maxBackoff = n
		}
	}
}

// WithBackoffStep sets the sleep per backoff unit.
func WithBackoffStep(d time.Duration) ListenerOption {
	return func(li *Listener) {
		if d > 0 {
			li.step = d
		}
	}
}

// Listener polls a Port and applies decoded events to a control.Store.
// Run must be called from a single goroutine.
type Listener struct {
	port   Port
	store  *control.Store
	routes Routes
	log    *slog.Logger

	sleep      SleepFunc
	maxBackoff int
	step       time.Duration
	backoff    int
}

// NewListener validates routes and returns a Listener. The routes are
// copied and never change afterwards.
func NewListener(port Port, store *control.Store, routes Routes, opts ...ListenerOption) (*Listener, error) {
	if port == nil || store == nil {
		return nil, fmt.Errorf("midi: listener needs a port and a store")
	}
	if err := routes.Validate(); err != nil {
		return nil, err
	}

	l := &Listener{
		port:       port,
		store:      store,
		routes:     routes,
		log:        slog.Default(),
		sleep:      sleepContext,
		maxBackoff: DefaultMaxBackoff,
		step:       DefaultBackoffStep,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l, nil
}

// Backoff returns the current idle backoff counter.
func (l *Listener) Backoff() int { return l.backoff }

// Run polls until the port fails or ctx is done. A read error ends the
// listener only; the store keeps its last state.
func (l *Listener) Run(ctx context.Context) error {
	l.log.Info("midi listener started", "max_backoff", l.maxBackoff, "step", l.step)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		msg, ok, err := l.port.ReadMessage()
		if err != nil {
			l.log.Error("midi read failed, listener stopped", "err", err)
			return fmt.Errorf("midi: read: %w", err)
		}

		if !ok {
			if l.backoff < l.maxBackoff {
				l.backoff++
			}
			if err := l.sleep(ctx, time.Duration(l.backoff)*l.step); err != nil {
				return err
			}
			continue
		}

		l.backoff = 0
		l.Handle(msg)
	}
}

// Handle decodes msg and applies it. Non control-change messages are ignored.
func (l *Listener) Handle(msg gomidi.Message) {
	ev, ok := Decode(msg)
	if !ok {
		l.log.Debug("midi message ignored", "msg", msg.String())
		return
	}
	l.Apply(ev)
}

// Apply runs every route matching ev in a single store update and reports
// the number of routes that fired.
func (l *Listener) Apply(ev Event) int {
	matched := 0
	st := l.store.Update(func(st *control.State) {
		if !st.AcceptsChannel(ev.MIDIChannel) {
			return
		}
		matched = l.routes.apply(st, ev)
	})

	if matched > 0 {
		l.log.Debug("midi event applied",
			"channel", ev.Channel, "value", ev.Value, "routes", matched,
			"mode", st.Mode.String(), "intensity", st.Intensity, "dilation", st.Dilation,
			"reset", st.Reset)
	}
	return matched
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
