package schema

import (
	"context"

	"github.com/pkg/errors"
)

// Event identifies a point in a create or drop pass.
type Event int

const (
	BeforeCreate Event = iota
	AfterCreate
	BeforeDrop
	AfterDrop
)

func (e Event) String() string {
	switch e {
	case BeforeCreate:
		return "before_create"
	case AfterCreate:
		return "after_create"
	case BeforeDrop:
		return "before_drop"
	case AfterDrop:
		return "after_drop"
	}
	return "unknown"
}

// Hook is an action attached to an Event. Hooks fired by CreateAll and
// DropAll can read the pass's check-first setting with CheckFirstFromContext.
type Hook func(ctx context.Context, conn Conn) error

type checkFirstKey struct{}

// WithCheckFirst returns a copy of ctx carrying a pass's check-first setting.
func WithCheckFirst(ctx context.Context, checkFirst bool) context.Context {
	return context.WithValue(ctx, checkFirstKey{}, checkFirst)
}

// CheckFirstFromContext reports whether the pass that fired a hook skips
// existing (or missing) relations.
func CheckFirstFromContext(ctx context.Context) bool {
	checkFirst, _ := ctx.Value(checkFirstKey{}).(bool)
	return checkFirst
}

// Events holds ordered hook lists per event. The zero value is ready to use.
type Events struct {
	hooks map[Event][]Hook
}

// Listen appends hook to the actions run when ev fires.
func (e *Events) Listen(ev Event, hook Hook) {
	if e.hooks == nil {
		e.hooks = make(map[Event][]Hook)
	}
	e.hooks[ev] = append(e.hooks[ev], hook)
}

// Hooks returns the hooks registered for ev in registration order.
func (e *Events) Hooks(ev Event) []Hook {
	return e.hooks[ev]
}

// Fire runs the hooks for ev in registration order, stopping at the first
// error.
func (e *Events) Fire(ctx context.Context, ev Event, conn Conn) error {
	for i, hook := range e.hooks[ev] {
		if err := hook(ctx, conn); err != nil {
			return errors.Wrapf(err, "%s hook %d failed", ev, i)
		}
	}
	return nil
}
