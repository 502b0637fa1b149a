// Package sysmon samples host CPU and memory usage for the details view.
package sysmon

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// limbBytes is the storage size of one limb.
const limbBytes = 8

// Stats holds one snapshot of host resource usage.
type Stats struct {
	CPUPercent   float64 // 0.0 .. 100.0, since the previous call
	MemPercent   float64 // 0.0 .. 100.0
	MemTotal     uint64  // bytes
	MemAvailable uint64  // bytes
	LogicalCPUs  int
}

// Sample collects one host snapshot. CPU uses interval 0, the delta since
// the previous call. Fields that cannot be read stay zero.
func Sample() Stats {
	s := Stats{LogicalCPUs: runtime.NumCPU()}
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
		s.MemTotal = vmem.Total
		s.MemAvailable = vmem.Available
	}
	return s
}

// LimbCapacity is the number of limbs that fit in the available memory, or
// zero when it is unknown.
func (s Stats) LimbCapacity() uint64 {
	return s.MemAvailable / limbBytes
}
