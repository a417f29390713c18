package lifecycle

import "fmt"

// StateMachine tracks the current state and validates transitions
type StateMachine interface {
	// State returns the current state
	State() State

	// CanFire returns true if the trigger is permitted in the current state
	CanFire(trigger Trigger) bool

	// Fire executes the trigger, transitioning to the new state if allowed
	Fire(trigger Trigger) error
}

type stateMachine struct {
	current     State
	transitions map[State]map[Trigger]State
}

// State returns the current state
func (m *stateMachine) State() State {
	return m.current
}

// CanFire returns true if the trigger is permitted in the current state
func (m *stateMachine) CanFire(trigger Trigger) bool {
	_, ok := m.transitions[m.current][trigger]
	return ok
}

// Fire executes the trigger, transitioning to the new state if allowed
func (m *stateMachine) Fire(trigger Trigger) error {
	next, ok := m.transitions[m.current][trigger]
	if !ok {
		return fmt.Errorf("%w: cannot fire trigger %s from state %s", ErrInvalidTransition, trigger, m.current)
	}
	m.current = next
	return nil
}

// NewRunMachine returns the machine that governs a single dispatcher:
// IDLE -> RUNNING -> COMPLETED | ABORTED, with re-runs going straight back
// to RUNNING.
func NewRunMachine() StateMachine {
	b := NewBuilder()

	b.Configure(StateIdle).
		Permit(TriggerStart, StateRunning)

	b.Configure(StateRunning).
		Permit(TriggerFinish, StateCompleted).
		Permit(TriggerAbort, StateAborted)

	b.Configure(StateCompleted).
		Permit(TriggerStart, StateRunning)

	b.Configure(StateAborted).
		Permit(TriggerStart, StateRunning)

	return b.Build(StateIdle)
}
