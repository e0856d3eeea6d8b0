package process

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/memsim/internal/clock"
)

func TestNew(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	clock.NowFunc = func() time.Time { return fixed }
	defer func() { clock.NowFunc = time.Now }()

	unnamed := New(7, "", 128, 3)
	assert.Equal(t, "Process-7", unnamed.Name)
	assert.Equal(t, StateSubmitted, unnamed.GetState())
	assert.Equal(t, fixed, unnamed.CreatedAt)
	assert.Equal(t, "Process-7 (PID: 7)", unnamed.String())

	named := New(8, "backup", 64, 0)
	assert.Equal(t, "backup", named.Name)
	assert.Equal(t, 3*time.Millisecond, unnamed.Duration(time.Millisecond))
	assert.Equal(t, time.Duration(0), named.Duration(time.Second))
}

func TestProcess_Transition(t *testing.T) {
	testCases := []struct {
		name      string
		path      []State
		expectErr bool
	}{
		{name: "admitted then completed", path: []State{StateRunning, StateCompleted}},
		{name: "queued then admitted", path: []State{StateWaiting, StateRunning, StateCompleted}},
		{name: "queued then withdrawn", path: []State{StateWaiting, StateInterrupted}},
		{name: "running interrupted", path: []State{StateRunning, StateInterrupted}},
		{name: "rejected", path: []State{StateRejected}},
		{name: "complete without running", path: []State{StateCompleted}, expectErr: true},
		{name: "terminal is final", path: []State{StateRunning, StateCompleted, StateRunning}, expectErr: true},
		{name: "double admission", path: []State{StateRunning, StateRunning}, expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := New(1, "", 10, 1)
			var err error
			for _, next := range tc.path {
				if err = p.Transition(next); err != nil {
					break
				}
			}
			if tc.expectErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.path[len(tc.path)-1], p.GetState())
			assert.NotNil(t, p.FinishedAt)
		})
	}
}

func TestProcess_Clone(t *testing.T) {
	p := New(3, "clone", 10, 1)
	require.NoError(t, p.Transition(StateRunning))
	clone := p.Clone()
	require.NoError(t, p.Transition(StateCompleted))
	assert.Equal(t, StateRunning, clone.GetState())
	assert.NotNil(t, clone.StartedAt)
	assert.Nil(t, clone.FinishedAt)
}

func TestParseState(t *testing.T) {
	state, ok := ParseState("waiting")
	assert.True(t, ok)
	assert.Equal(t, StateWaiting, state)
	_, ok = ParseState("sleeping")
	assert.False(t, ok)
	assert.True(t, StateRejected.IsTerminal())
	assert.False(t, StateWaiting.IsTerminal())
}

func TestProcess_DurationOverflow(t *testing.T) {
	p := New(1, "", 1, 9999999999)
	assert.Equal(t, time.Duration(math.MaxInt64), p.Duration(time.Second))
	assert.Equal(t, 9999999999*time.Millisecond, p.Duration(time.Millisecond))
	assert.Equal(t, time.Duration(0), New(2, "", 1, 5).Duration(0))
}
