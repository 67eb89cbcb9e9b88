package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalReservations int
	TotalAbandonments int
	AbandonsByReason  map[AbandonReason]int
	StageBusyTime     map[int]float64 // stage index → summed reservation length
	StageIdleTime     map[int]float64 // stage index → summed gaps the server waited for customers
	MonotonicStages   bool            // every stage's reservation ends are non-decreasing
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		AbandonsByReason: make(map[AbandonReason]int),
		StageBusyTime:    make(map[int]float64),
		StageIdleTime:    make(map[int]float64),
		MonotonicStages:  true,
	}
	if st == nil {
		return summary
	}

	summary.TotalAbandonments = len(st.Abandonments)
	for _, a := range st.Abandonments {
		summary.AbandonsByReason[a.Reason]++
	}

	summary.TotalReservations = len(st.Reservations)
	lastEnd := make(map[int]float64)
	for _, r := range st.Reservations {
		summary.StageBusyTime[r.Stage] += r.End - r.Start
		if r.Start > r.BusyBefore {
			summary.StageIdleTime[r.Stage] += r.Start - r.BusyBefore
		}
		if prev, seen := lastEnd[r.Stage]; seen && r.End < prev {
			summary.MonotonicStages = false
		}
		lastEnd[r.Stage] = r.End
	}

	return summary
}
