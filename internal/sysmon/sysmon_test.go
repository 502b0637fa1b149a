package sysmon

import "testing"

func TestSampleReturnsValidRanges(t *testing.T) {
	s := Sample()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
	if s.LogicalCPUs < 1 {
		t.Errorf("LogicalCPUs = %d, want at least 1", s.LogicalCPUs)
	}
}

func TestSampleReadsMemory(t *testing.T) {
	s := Sample()
	if s.MemTotal == 0 {
		t.Skip("host memory is not readable here")
	}
	if s.MemAvailable > s.MemTotal {
		t.Errorf("available %d exceeds total %d", s.MemAvailable, s.MemTotal)
	}
}

func TestLimbCapacity(t *testing.T) {
	t.Parallel()
	tests := []struct {
		available uint64
		want      uint64
	}{
		{0, 0},
		{7, 0},
		{8, 1},
		{1 << 30, 1 << 27},
	}
	for _, tt := range tests {
		if got := (Stats{MemAvailable: tt.available}).LimbCapacity(); got != tt.want {
			t.Errorf("LimbCapacity(%d) = %d, want %d", tt.available, got, tt.want)
		}
	}
}
