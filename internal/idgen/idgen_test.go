package idgen

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequence_Next(t *testing.T) {
	seq := &Sequence{}
	assert.Equal(t, 0, seq.Last())
	assert.Equal(t, 1, seq.Next())
	assert.Equal(t, 2, seq.Next())
	assert.Equal(t, 2, seq.Last())
}

func TestSequence_Concurrent(t *testing.T) {
	seq := &Sequence{}
	const workers, perWorker = 8, 100
	seen := make(map[int]bool)
	var mux sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				id := seq.Next()
				mux.Lock()
				seen[id] = true
				mux.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, workers*perWorker)
	assert.Equal(t, workers*perWorker, seq.Last())
}

func TestNewID(t *testing.T) {
	prev := NewFunc
	defer func() { NewFunc = prev }()
	NewFunc = func() string { return "fixed" }
	assert.Equal(t, "fixed", NewID())
}
