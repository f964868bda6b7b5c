package finitestate

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMachine(t *testing.T) Machine {
	t.Helper()
	m, err := New(slog.Default().Handler())
	require.NoError(t, err)
	return m
}

func TestNew(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)
	assert.Equal(t, StateCreated, m.GetState())
}

func TestHappyPath(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)
	for _, state := range []string{
		StateValidating, StateValidated,
		StateBackingUp, StateBackedUp,
		StateReplacing, StateReplaced,
		StateCompleted,
	} {
		require.NoError(t, m.Transition(state))
	}
	assert.Equal(t, StateCompleted, m.GetState())
}

func TestInvalidIsTerminal(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)
	require.NoError(t, m.Transition(StateValidating))
	require.NoError(t, m.Transition(StateInvalid))

	assert.False(t, m.TransitionBool(StateValidated))
	assert.False(t, m.TransitionBool(StateFailed))
	assert.Equal(t, StateInvalid, m.GetState())
}

func TestNoSkippingStates(t *testing.T) {
	t.Parallel()

	m := newTestMachine(t)
	err := m.Transition(StateReplacing)
	require.Error(t, err)
	assert.Equal(t, StateCreated, m.GetState())
}

func TestFailureReachableFromEveryWorkingState(t *testing.T) {
	t.Parallel()

	working := []string{
		StateCreated, StateValidating, StateValidated,
		StateBackingUp, StateBackedUp, StateReplacing, StateReplaced,
	}
	for _, state := range working {
		next, ok := RestoreTransitions[state]
		require.True(t, ok, "state %s missing from transition table", state)
		assert.Contains(t, next, StateFailed, "state %s cannot fail", state)
	}
}
