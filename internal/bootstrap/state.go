package bootstrap

import (
	"errors"
	"fmt"
)

// State is a stage of a single bootstrap run
type State int

const (
	StateIdle State = iota
	StateProvisioning
	StateLinking
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateProvisioning:
		return "provisioning"
	case StateLinking:
		return "linking"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no transition can leave s
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// ErrIllegalTransition is returned when a run attempts a move the table does not allow
var ErrIllegalTransition = errors.New("illegal bootstrap state transition")

// transitions lists the allowed moves. Idle may fail directly when the
// session guard rejects the caller before provisioning starts.
var transitions = map[State][]State{
	StateIdle:         {StateProvisioning, StateFailed},
	StateProvisioning: {StateProvisioning, StateLinking, StateFailed},
	StateLinking:      {StateDone, StateFailed},
}

// CanTransition reports whether from -> to is allowed
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// machine tracks the current state of one run and every state it entered
type machine struct {
	current State
	history []State
}

func newMachine() *machine {
	return &machine{current: StateIdle, history: []State{StateIdle}}
}

func (m *machine) to(next State) error {
	if !CanTransition(m.current, next) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, m.current, next)
	}
	m.current = next
	m.history = append(m.history, next)
	return nil
}

func (m *machine) states() []State {
	out := make([]State, len(m.history))
	copy(out, m.history)
	return out
}
