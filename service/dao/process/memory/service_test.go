package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/memsim/model/process"
	"github.com/viant/memsim/service/dao"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	srv := New()

	running := process.New(2, "", 100, 1)
	require.NoError(t, running.Transition(process.StateRunning))
	waiting := process.New(1, "", 2000, 1)
	require.NoError(t, waiting.Transition(process.StateWaiting))
	completed := process.New(3, "", 10, 1)
	require.NoError(t, completed.Transition(process.StateRunning))
	require.NoError(t, completed.Transition(process.StateCompleted))
	for _, p := range []*process.Process{running, waiting, completed} {
		require.NoError(t, srv.Save(ctx, p))
	}

	assert.ErrorIs(t, srv.Save(ctx, nil), dao.ErrNilEntity)
	assert.ErrorIs(t, srv.Save(ctx, &process.Process{}), dao.ErrInvalidID)

	loaded, err := srv.Load(ctx, 2)
	require.NoError(t, err)
	assert.Same(t, running, loaded)
	_, err = srv.Load(ctx, 42)
	assert.ErrorIs(t, err, dao.ErrNotFound)

	testCases := []struct {
		name       string
		parameters []*dao.Parameter
		expect     []int
	}{
		{name: "all ordered by PID", expect: []int{1, 2, 3}},
		{name: "single state", parameters: []*dao.Parameter{dao.NewParameter("State", "running")}, expect: []int{2}},
		{name: "many states", parameters: []*dao.Parameter{dao.NewParameter("State", "waiting", "completed")}, expect: []int{1, 3}},
		{name: "no match", parameters: []*dao.Parameter{dao.NewParameter("State", "rejected")}, expect: []int{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			list, err := srv.List(ctx, tc.parameters...)
			require.NoError(t, err)
			ids := make([]int, 0, len(list))
			for _, p := range list {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tc.expect, ids)
		})
	}

	require.NoError(t, srv.Delete(ctx, 3))
	assert.ErrorIs(t, srv.Delete(ctx, 3), dao.ErrNotFound)
}
