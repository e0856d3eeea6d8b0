package memory

import (
	"github.com/viant/memsim/model/process"
	"github.com/viant/memsim/service/dao"
	"github.com/viant/memsim/service/dao/store"
)

// Service implements an in-memory, thread-safe registry of processes keyed by
// PID. List supports a "State" parameter.
type Service struct {
	*store.MemoryStore[int, process.Process]
}

var _ dao.Service[int, process.Process] = (*Service)(nil)

func New() *Service {
	return &Service{MemoryStore: store.NewMemoryStore[int, process.Process](keyOf, filterByState)}
}

func keyOf(p *process.Process) int {
	return p.ID
}

func filterByState(p *process.Process, parameters []*dao.Parameter) bool {
	state := string(p.GetState())
	for _, parameter := range parameters {
		if parameter.Name == "State" && !parameter.Matches(state) {
			return false
		}
	}
	return true
}
