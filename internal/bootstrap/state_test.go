package bootstrap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	allowed := [][2]State{
		{StateIdle, StateProvisioning},
		{StateIdle, StateFailed},
		{StateProvisioning, StateProvisioning},
		{StateProvisioning, StateLinking},
		{StateProvisioning, StateFailed},
		{StateLinking, StateDone},
		{StateLinking, StateFailed},
	}
	for _, tr := range allowed {
		assert.True(t, CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	forbidden := [][2]State{
		{StateIdle, StateLinking},
		{StateIdle, StateDone},
		{StateProvisioning, StateDone},
		{StateLinking, StateProvisioning},
		{StateLinking, StateLinking},
		{StateDone, StateFailed},
		{StateFailed, StateIdle},
	}
	for _, tr := range forbidden {
		assert.False(t, CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}
}

func TestMachine(t *testing.T) {
	m := newMachine()
	require.NoError(t, m.to(StateProvisioning))
	require.NoError(t, m.to(StateProvisioning))
	require.NoError(t, m.to(StateLinking))

	err := m.to(StateProvisioning)
	assert.True(t, errors.Is(err, ErrIllegalTransition))
	assert.Equal(t, StateLinking, m.current)

	require.NoError(t, m.to(StateDone))
	assert.True(t, m.current.Terminal())
	assert.Equal(t, []State{StateIdle, StateProvisioning, StateProvisioning, StateLinking, StateDone}, m.states())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "provisioning", StateProvisioning.String())
	assert.Equal(t, "state(42)", State(42).String())
	assert.Equal(t, "unknown_backend_error", KindUnknown.String())
	assert.Equal(t, "transient_schema_error", KindTransientSchema.String())
}
