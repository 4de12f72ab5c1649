package hakoniwa

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// LifecycleState is the progression stage of a managed component.
type LifecycleState uint8

const (
	// StateUninitialized is the state before Awake has completed.
	StateUninitialized LifecycleState = iota
	// StateAwake means Awake completed and Start has not.
	StateAwake
	// StateEnabled means the component receives Update ticks.
	StateEnabled
	// StateDisabled means Start completed but the component is switched off.
	StateDisabled
	// StateDestroyed is terminal.
	StateDestroyed
)

// String implements fmt.Stringer.
func (s LifecycleState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateAwake:
		return "awake"
	case StateEnabled:
		return "enabled"
	case StateDisabled:
		return "disabled"
	case StateDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("LifecycleState(%d)", uint8(s))
	}
}

// Lifecycle drives a component through
// uninitialized -> awake -> enabled <-> disabled -> destroyed.
//
// Awake and Start hooks may block; the transition waits for them and commits
// the new state only when the hook returns nil. A failed hook leaves the
// state exactly where it was, so the caller decides whether to retry or
// abort. Transitions are idempotent by state check: calling Awake twice, or
// from two goroutines, runs the hook once.
//
// Update is synchronous dispatch and never propagates hook failures: a
// panicking component is logged and suppressed so one bad actor cannot halt
// the frame loop.
type Lifecycle struct {
	mu        sync.Mutex
	component Component
	state     LifecycleState
	enabled   bool
	cleanups  []func()
	logger    *slog.Logger
}

// NewLifecycle wraps a component. The enabled flag starts true, so Start
// transitions straight into the enabled state.
func NewLifecycle(c Component) *Lifecycle {
	return &Lifecycle{component: c, enabled: true, logger: slog.Default()}
}

// SetLogger replaces the logger used when suppressing Update failures.
func (l *Lifecycle) SetLogger(logger *slog.Logger) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = logger
}

// Component returns the wrapped component.
func (l *Lifecycle) Component() Component { return l.component }

// State returns the current lifecycle state.
func (l *Lifecycle) State() LifecycleState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Enabled returns the enabled flag.
func (l *Lifecycle) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

// Awake runs the component's Awake hook and moves to the awake state. It is
// a no-op once the component has passed uninitialized. On hook failure the
// state is unchanged and the error is returned.
func (l *Lifecycle) Awake(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != StateUninitialized {
		return nil
	}
	if a, ok := l.component.(Awaker); ok {
		if err := a.Awake(ctx); err != nil {
			return err
		}
	}
	l.state = StateAwake
	return nil
}

// Start runs the component's Start hook, then OnEnable when the enabled flag
// is set, and commits the enabled state. Calling Start before Awake has
// completed is an ordering error. On hook failure the state remains awake.
func (l *Lifecycle) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch l.state {
	case StateEnabled, StateDisabled:
		return nil
	case StateUninitialized:
		return fmt.Errorf("hakoniwa: Start before Awake (state %s)", l.state)
	case StateDestroyed:
		return fmt.Errorf("hakoniwa: Start on destroyed component")
	}
	if s, ok := l.component.(Starter); ok {
		if err := s.Start(ctx); err != nil {
			return err
		}
	}
	if l.enabled {
		if o, ok := l.component.(EnableObserver); ok {
			if err := o.OnEnable(); err != nil {
				return err
			}
		}
		l.state = StateEnabled
	} else {
		l.state = StateDisabled
	}
	return nil
}

// SetEnabled toggles the enabled flag, firing OnEnable/OnDisable when the
// component has reached the enabled stage. Mutating a destroyed component is
// a programming error and panics. A failed hook leaves both the flag and the
// state unchanged.
func (l *Lifecycle) SetEnabled(enabled bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == StateDestroyed {
		panic("hakoniwa: SetEnabled on destroyed component")
	}
	if l.enabled == enabled {
		return nil
	}
	if l.state == StateEnabled || l.state == StateDisabled {
		if o, ok := l.component.(EnableObserver); ok {
			var err error
			if enabled {
				err = o.OnEnable()
			} else {
				err = o.OnDisable()
			}
			if err != nil {
				return err
			}
		}
		if enabled {
			l.state = StateEnabled
		} else {
			l.state = StateDisabled
		}
	}
	l.enabled = enabled
	return nil
}

// Update dispatches the component's Update hook when the component is in the
// enabled state with the flag set. Panics from the hook are recovered and
// logged, never propagated.
func (l *Lifecycle) Update(dt float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != StateEnabled || !l.enabled {
		return
	}
	u, ok := l.component.(Updater)
	if !ok {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("component update failed", "component", fmt.Sprintf("%T", l.component), "panic", r)
		}
	}()
	u.Update(dt)
}

// AddCleanup registers a task run on destruction. Tasks run in reverse
// registration order, before OnDestroy.
func (l *Lifecycle) AddCleanup(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cleanups = append(l.cleanups, fn)
}

// Destroy moves the component to the terminal state from any state, running
// registered cleanups LIFO and then the OnDestroy hook. Destroying twice is
// a no-op the second time.
func (l *Lifecycle) Destroy() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == StateDestroyed {
		return
	}
	l.state = StateDestroyed
	for i := len(l.cleanups) - 1; i >= 0; i-- {
		l.cleanups[i]()
	}
	l.cleanups = nil
	if d, ok := l.component.(Destroyer); ok {
		d.OnDestroy()
	}
}

// Reset returns a component to uninitialized so the awake/start sequence can
// run again. On a destroyed component Reset is a documented no-op.
func (l *Lifecycle) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == StateDestroyed {
		return
	}
	l.state = StateUninitialized
	l.enabled = true
	l.cleanups = nil
}

// Validate runs the component's Validate hook, if implemented.
func (l *Lifecycle) Validate() error {
	if v, ok := l.component.(Validator); ok {
		return v.Validate()
	}
	return nil
}
