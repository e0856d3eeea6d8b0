// Package host reads physical memory figures of the machine running the
// simulator.
package host

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/mem"
)

const mb = 1024 * 1024

// Memory holds host memory figures in MB
type Memory struct {
	TotalMB     int     `json:"totalMB"`
	AvailableMB int     `json:"availableMB"`
	UsedPercent float64 `json:"usedPercent"`
}

// VirtualMemoryFunc is overridden in tests
var VirtualMemoryFunc = mem.VirtualMemoryWithContext

// ReadMemory returns current host memory figures
func ReadMemory(ctx context.Context) (*Memory, error) {
	vm, err := VirtualMemoryFunc(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read host memory: %w", err)
	}
	return &Memory{
		TotalMB:     int(vm.Total / mb),
		AvailableMB: int(vm.Available / mb),
		UsedPercent: vm.UsedPercent,
	}, nil
}

// CapacityMB returns fraction of the host total memory, at least 1 MB
func CapacityMB(ctx context.Context, fraction float64) (int, error) {
	if fraction <= 0 || fraction > 1 {
		return 0, fmt.Errorf("invalid host fraction: %v", fraction)
	}
	memory, err := ReadMemory(ctx)
	if err != nil {
		return 0, err
	}
	capacity := int(float64(memory.TotalMB) * fraction)
	if capacity < 1 {
		capacity = 1
	}
	return capacity, nil
}
