package sim

import "fmt"

// ServerTable tracks, for every stage, the absolute simulated instant at
// which that stage's single server becomes free. It is indexed by stage
// position and needs no locking: customers are processed strictly in
// arrival order, so reservations never overlap.
type ServerTable struct {
	busyUntil []float64
}

// NewServerTable creates a table with every server free at t=0.
func NewServerTable(stages int) *ServerTable {
	return &ServerTable{busyUntil: make([]float64, stages)}
}

// Len returns the number of stages tracked.
func (t *ServerTable) Len() int {
	return len(t.busyUntil)
}

// BusyUntil returns the instant stage's server becomes free.
func (t *ServerTable) BusyUntil(stage int) float64 {
	return t.busyUntil[stage]
}

// Reserve occupies stage's server over [start, end]. This is the only write
// to the table. Panics if the reservation would move busy-until backwards
// or start before the server is free.
func (t *ServerTable) Reserve(stage int, start, end float64) {
	if start < t.busyUntil[stage] {
		panic(fmt.Sprintf("Reserve: stage %d start %v precedes busy-until %v", stage, start, t.busyUntil[stage]))
	}
	if end < start {
		panic(fmt.Sprintf("Reserve: stage %d end %v precedes start %v", stage, end, start))
	}
	t.busyUntil[stage] = end
}

// Snapshot returns a copy of every stage's busy-until instant.
func (t *ServerTable) Snapshot() []float64 {
	out := make([]float64, len(t.busyUntil))
	copy(out, t.busyUntil)
	return out
}
