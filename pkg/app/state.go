package app

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/glasskit/glasskit/pkg/bus"
	"github.com/glasskit/glasskit/pkg/ecs"
)

// Context carries everything a state needs to run a frame. One Context is
// shared by all states of a machine.
type Context struct {
	World  *ecs.World
	Events *bus.Bus[Event]
	Logger *slog.Logger

	// window size in pixels, updated before OnResize fires
	Width  int
	Height int
}

// Transition tells the state machine what to do after a state callback.
// The zero value keeps the current state.
type Transition struct {
	kind  transitionKind
	state State
}

type transitionKind int

const (
	transitionNone transitionKind = iota
	transitionPop
	transitionPush
	transitionSwitch
	transitionQuit
)

// None keeps the active state.
func None() Transition { return Transition{} }

// Pop removes the active state. Popping the last state stops the machine.
func Pop() Transition { return Transition{kind: transitionPop} }

// Push pauses the active state and starts next on top of it.
func Push(next State) Transition { return Transition{kind: transitionPush, state: next} }

// Switch stops the active state and starts next in its place.
func Switch(next State) Transition { return Transition{kind: transitionSwitch, state: next} }

// Quit stops every state and halts the machine.
func Quit() Transition { return Transition{kind: transitionQuit} }

// State is one screen of an application: a menu, a loading screen, the game
// itself. Lifecycle hooks never return transitions, input and update hooks do.
type State interface {
	Label() string

	OnStart(ctx context.Context, c *Context) error
	OnPause(ctx context.Context, c *Context) error
	OnResume(ctx context.Context, c *Context) error
	OnStop(ctx context.Context, c *Context) error

	Update(ctx context.Context, c *Context) (Transition, error)
	OnResize(ctx context.Context, c *Context, width, height int) (Transition, error)
	OnKey(ctx context.Context, c *Context, key Key, pressed bool) (Transition, error)
	OnMouse(ctx context.Context, c *Context, button MouseButton, pressed bool) (Transition, error)
	OnFileDropped(ctx context.Context, c *Context, path string) (Transition, error)
}

// BaseState answers every State method with a no-op, so concrete states only
// override what they care about.
type BaseState struct{}

func (BaseState) Label() string { return "unlabeled state" }

func (BaseState) OnStart(context.Context, *Context) error  { return nil }
func (BaseState) OnPause(context.Context, *Context) error  { return nil }
func (BaseState) OnResume(context.Context, *Context) error { return nil }
func (BaseState) OnStop(context.Context, *Context) error   { return nil }

func (BaseState) Update(context.Context, *Context) (Transition, error) {
	return None(), nil
}

func (BaseState) OnResize(context.Context, *Context, int, int) (Transition, error) {
	return None(), nil
}

func (BaseState) OnKey(context.Context, *Context, Key, bool) (Transition, error) {
	return None(), nil
}

func (BaseState) OnMouse(context.Context, *Context, MouseButton, bool) (Transition, error) {
	return None(), nil
}

func (BaseState) OnFileDropped(context.Context, *Context, string) (Transition, error) {
	return None(), nil
}

var _ State = BaseState{}

// StateMachine runs a stack of states. The top of the stack is the active
// state and the only one receiving callbacks.
type StateMachine struct {
	running bool
	states  []State
}

func NewStateMachine(initial State) *StateMachine {
	return &StateMachine{
		states: []State{initial},
	}
}

// IsRunning reports whether the machine has been started and not yet stopped.
func (m *StateMachine) IsRunning() bool {
	return m.running
}

// ActiveLabel returns the label of the active state, or false when the
// machine is not running.
func (m *StateMachine) ActiveLabel() (string, bool) {
	if !m.running || len(m.states) == 0 {
		return "", false
	}

	return m.states[len(m.states)-1].Label(), true
}

// Start marks the machine running and starts the active state. Starting a
// running machine is a no-op.
func (m *StateMachine) Start(ctx context.Context, c *Context) error {
	if m.running {
		return nil
	}
	m.running = true

	active, err := m.active()
	if err != nil {
		return err
	}

	return errors.Wrap(active.OnStart(ctx, c), active.Label())
}

// Update runs one frame of the active state and applies its transition.
func (m *StateMachine) Update(ctx context.Context, c *Context) error {
	return m.dispatch(ctx, c, func(active State) (Transition, error) {
		return active.Update(ctx, c)
	})
}

// Resize forwards a window resize to the active state.
func (m *StateMachine) Resize(ctx context.Context, c *Context, width, height int) error {
	return m.dispatch(ctx, c, func(active State) (Transition, error) {
		return active.OnResize(ctx, c, width, height)
	})
}

// Key forwards a key press or release to the active state.
func (m *StateMachine) Key(ctx context.Context, c *Context, key Key, pressed bool) error {
	return m.dispatch(ctx, c, func(active State) (Transition, error) {
		return active.OnKey(ctx, c, key, pressed)
	})
}

// Mouse forwards a mouse button press or release to the active state.
func (m *StateMachine) Mouse(ctx context.Context, c *Context, button MouseButton, pressed bool) error {
	return m.dispatch(ctx, c, func(active State) (Transition, error) {
		return active.OnMouse(ctx, c, button, pressed)
	})
}

// FileDropped forwards a dropped file path to the active state.
func (m *StateMachine) FileDropped(ctx context.Context, c *Context, path string) error {
	return m.dispatch(ctx, c, func(active State) (Transition, error) {
		return active.OnFileDropped(ctx, c, path)
	})
}

// Stop pops and stops every state and halts the machine. Stopping a stopped
// machine is a no-op.
func (m *StateMachine) Stop(ctx context.Context, c *Context) error {
	if !m.running {
		return nil
	}

	for len(m.states) > 0 {
		state := m.states[len(m.states)-1]
		m.states = m.states[:len(m.states)-1]
		if err := state.OnStop(ctx, c); err != nil {
			m.running = false
			return errors.Wrap(err, state.Label())
		}
	}
	m.running = false

	return nil
}

func (m *StateMachine) dispatch(ctx context.Context, c *Context, call func(State) (Transition, error)) error {
	if !m.running {
		return nil
	}

	active, err := m.active()
	if err != nil {
		return err
	}

	transition, err := call(active)
	if err != nil {
		return errors.Wrap(err, active.Label())
	}

	return m.transition(ctx, c, transition)
}

func (m *StateMachine) active() (State, error) {
	if len(m.states) == 0 {
		return nil, ErrNoStates
	}

	return m.states[len(m.states)-1], nil
}

func (m *StateMachine) transition(ctx context.Context, c *Context, t Transition) error {
	switch t.kind {
	case transitionNone:
		return nil
	case transitionPop:
		return m.pop(ctx, c)
	case transitionPush:
		return m.push(ctx, c, t.state)
	case transitionSwitch:
		return m.switchTo(ctx, c, t.state)
	case transitionQuit:
		return m.Stop(ctx, c)
	}

	return nil
}

func (m *StateMachine) pop(ctx context.Context, c *Context) error {
	state := m.states[len(m.states)-1]
	m.states = m.states[:len(m.states)-1]
	if err := state.OnStop(ctx, c); err != nil {
		return errors.Wrap(err, state.Label())
	}

	if len(m.states) == 0 {
		m.running = false
		return nil
	}

	next := m.states[len(m.states)-1]

	return errors.Wrap(next.OnResume(ctx, c), next.Label())
}

func (m *StateMachine) push(ctx context.Context, c *Context, next State) error {
	active := m.states[len(m.states)-1]
	if err := active.OnPause(ctx, c); err != nil {
		return errors.Wrap(err, active.Label())
	}

	m.states = append(m.states, next)

	return errors.Wrap(next.OnStart(ctx, c), next.Label())
}

func (m *StateMachine) switchTo(ctx context.Context, c *Context, next State) error {
	active := m.states[len(m.states)-1]
	m.states = m.states[:len(m.states)-1]
	if err := active.OnStop(ctx, c); err != nil {
		return errors.Wrap(err, active.Label())
	}

	m.states = append(m.states, next)

	return errors.Wrap(next.OnStart(ctx, c), next.Label())
}
