// Package finitestate provides the finite state machine that tracks a config
// restore transaction through its lifecycle.
//
// Restore lifecycle:
//  1. created - transaction constructed around a candidate config
//  2. validating / validated - candidate parsed and checked
//  3. backingup / backedup - current config snapshotted
//  4. replacing / replaced - candidate written over the live store
//  5. completed - terminal success
//
// Failure states:
//   - invalid - candidate failed validation (terminal)
//   - failed - backup or replace failed after validation (terminal)
package finitestate

import (
	"context"
	"log/slog"

	"github.com/robbyt/go-fsm"
)

const (
	StateCreated = "created"

	StateValidating = "validating"
	StateValidated  = "validated"
	StateInvalid    = "invalid"

	StateBackingUp = "backingup"
	StateBackedUp  = "backedup"

	StateReplacing = "replacing"
	StateReplaced  = "replaced"

	StateCompleted = "completed"
	StateFailed    = "failed"
)

// RestoreTransitions defines the valid state transitions for a restore.
var RestoreTransitions = map[string][]string{
	StateCreated:    {StateValidating, StateFailed},
	StateValidating: {StateValidated, StateInvalid, StateFailed},
	StateValidated:  {StateBackingUp, StateFailed},
	StateInvalid:    {}, // terminal

	StateBackingUp: {StateBackedUp, StateFailed},
	StateBackedUp:  {StateReplacing, StateFailed},

	StateReplacing: {StateReplaced, StateFailed},
	StateReplaced:  {StateCompleted, StateFailed},

	StateCompleted: {}, // terminal
	StateFailed:    {}, // terminal
}

// Machine defines the interface for the state machine tracking a restore.
type Machine interface {
	// Transition attempts to transition the state machine to the specified state.
	Transition(state string) error

	// TransitionBool attempts to transition the state machine to the specified state.
	TransitionBool(state string) bool

	// TransitionIfCurrentState attempts to transition the state machine to the specified state
	TransitionIfCurrentState(currentState, newState string) error

	// GetState returns the current state of the state machine.
	GetState() string

	// GetStateChan returns a channel that emits the state machine's state whenever it changes.
	// The channel is closed when the provided context is canceled.
	GetStateChan(ctx context.Context) <-chan string
}

// New creates a restore state machine starting in the created state.
func New(handler slog.Handler) (Machine, error) {
	return fsm.New(handler, StateCreated, RestoreTransitions)
}
