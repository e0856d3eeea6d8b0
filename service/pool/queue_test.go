package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/memsim/model/process"
)

func TestWaitQueue_Drain(t *testing.T) {
	testCases := []struct {
		name         string
		memory       []int
		budget       int
		expectIDs    []int
		expectRemain []int
	}{
		{
			name:         "empty queue",
			budget:       100,
			expectRemain: []int{},
		},
		{
			name:         "head fits, rest kept in order",
			memory:       []int{40, 80, 70},
			budget:       100,
			expectIDs:    []int{1},
			expectRemain: []int{2, 3},
		},
		{
			name:         "scan continues past a blocked head",
			memory:       []int{60, 50, 30},
			budget:       100,
			expectIDs:    []int{1, 3},
			expectRemain: []int{2},
		},
		{
			name:         "nothing fits",
			memory:       []int{200, 300},
			budget:       100,
			expectRemain: []int{1, 2},
		},
		{
			name:         "everything fits",
			memory:       []int{10, 20, 30},
			budget:       100,
			expectIDs:    []int{1, 2, 3},
			expectRemain: []int{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			queue := NewWaitQueue()
			for i, mb := range tc.memory {
				queue.Push(process.New(i+1, "", mb, 1))
			}
			budget := tc.budget
			admitted := queue.Drain(func(p *process.Process) bool {
				if p.MemoryMB > budget {
					return false
				}
				budget -= p.MemoryMB
				return true
			})
			var ids []int
			for _, p := range admitted {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tc.expectIDs, ids)
			assert.Equal(t, tc.expectRemain, queue.IDs())
		})
	}
}

func TestWaitQueue_Remove(t *testing.T) {
	queue := NewWaitQueue()
	for i := 1; i <= 3; i++ {
		queue.Push(process.New(i, "", 10, 1))
	}
	removed := queue.Remove(2)
	if assert.NotNil(t, removed) {
		assert.Equal(t, 2, removed.ID)
	}
	assert.Nil(t, queue.Remove(2))
	assert.Equal(t, []int{1, 3}, queue.IDs())
	assert.Equal(t, 2, queue.Len())
}

func TestWaitQueue_DrainVisitsEachEntryOnce(t *testing.T) {
	queue := NewWaitQueue()
	for i := 1; i <= 3; i++ {
		queue.Push(process.New(i, "", 10, 1))
	}
	visits := map[int]int{}
	queue.Drain(func(p *process.Process) bool {
		visits[p.ID]++
		return false
	})
	assert.Equal(t, map[int]int{1: 1, 2: 1, 3: 1}, visits)
}
