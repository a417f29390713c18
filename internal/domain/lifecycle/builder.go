package lifecycle

import "fmt"

// Builder collects transitions and builds independent state machines
type Builder interface {
	// Configure returns the configuration for the given source state
	Configure(state State) Configuration

	// Build creates a new state machine starting in initial
	Build(initial State) StateMachine
}

// Configuration declares the transitions leaving one state
type Configuration interface {
	// Permit allows trigger to move the machine to target
	Permit(trigger Trigger, target State) Configuration
}

type configuration struct {
	transitions map[Trigger]State
}

type builder struct {
	configurations map[State]*configuration
}

// NewBuilder creates a new state machine builder
func NewBuilder() Builder {
	return &builder{
		configurations: make(map[State]*configuration),
	}
}

// Configure returns the configuration for the given source state
func (b *builder) Configure(state State) Configuration {
	if !state.IsValid() {
		panic(fmt.Sprintf("%v: %s", ErrInvalidState, state))
	}

	cfg, exists := b.configurations[state]
	if !exists {
		cfg = &configuration{
			transitions: make(map[Trigger]State),
		}
		b.configurations[state] = cfg
	}

	return cfg
}

// Build creates a new state machine starting in initial
func (b *builder) Build(initial State) StateMachine {
	if !initial.IsValid() {
		panic(fmt.Sprintf("%v: initial %s", ErrInvalidState, initial))
	}

	// Machines built from the same builder never share transition tables
	transitions := make(map[State]map[Trigger]State, len(b.configurations))
	for state, cfg := range b.configurations {
		copied := make(map[Trigger]State, len(cfg.transitions))
		for trigger, target := range cfg.transitions {
			copied[trigger] = target
		}
		transitions[state] = copied
	}

	return &stateMachine{
		current:     initial,
		transitions: transitions,
	}
}

// Permit allows trigger to move the machine to target
func (c *configuration) Permit(trigger Trigger, target State) Configuration {
	if !target.IsValid() {
		panic(fmt.Sprintf("%v: target %s", ErrInvalidState, target))
	}

	c.transitions[trigger] = target
	return c
}
