// Tracks per-customer records, per-hour aggregates and the run-wide
// wait-time totals that make up the final SimulationReport.

package sim

import (
	"fmt"
	"io"
)

// CustomerRecord is the complete, immutable history of one arrival.
// Times are absolute simulated minutes since the start of the run.
type CustomerRecord struct {
	ID            int     `json:"customer_id" yaml:"customer_id"`
	HourArrived   int     `json:"hour_arrived" yaml:"hour_arrived"`
	ArrivalTime   float64 `json:"arrival_time_abs" yaml:"arrival_time_abs"`
	ArrivalMinute float64 `json:"arrival_minute" yaml:"arrival_minute"` // offset within the arrival hour
	StartTime     float64 `json:"start_time" yaml:"start_time"`         // entry into the first stage
	EndTime       float64 `json:"end_time" yaml:"end_time"`
	TotalDuration float64 `json:"total_duration" yaml:"total_duration"`
	WaitTime      float64 `json:"wait_time" yaml:"wait_time"`
	IdleTime      float64 `json:"idle_time" yaml:"idle_time"` // server idle time that ended when this customer started

	StageDurations  []float64 `json:"stage_durations,omitempty" yaml:"stage_durations,omitempty"`
	StageStartTimes []float64 `json:"stage_start_times,omitempty" yaml:"stage_start_times,omitempty"`
	StageEndTimes   []float64 `json:"stage_end_times,omitempty" yaml:"stage_end_times,omitempty"`

	Left      bool `json:"left" yaml:"left"`
	Pending   bool `json:"pending" yaml:"pending"`
	Satisfied bool `json:"satisfied" yaml:"satisfied"`
}

// HourRecord aggregates the customers that arrived during one simulated hour.
type HourRecord struct {
	HourIndex         int              `json:"hour_index" yaml:"hour_index"` // 1-based
	EstimatedArrivals int              `json:"estimated_arrivals" yaml:"estimated_arrivals"`
	ServedCount       int              `json:"served_count" yaml:"served_count"`
	PendingCount      int              `json:"pending_count" yaml:"pending_count"`
	LeftCount         int              `json:"left_count" yaml:"left_count"`
	Customers         []CustomerRecord `json:"customers,omitempty" yaml:"customers,omitempty"`
}

// SimulationReport is the externally visible result of one run.
type SimulationReport struct {
	RunID          string       `json:"run_id" yaml:"run_id"`
	Seed           int64        `json:"seed" yaml:"seed"`
	StageNames     []string     `json:"stage_names" yaml:"stage_names"`
	Hours          []HourRecord `json:"hours" yaml:"hours"`
	TotalCustomers int          `json:"total_customers" yaml:"total_customers"`
	AvgWaitTime    float64      `json:"avg_wait_time" yaml:"avg_wait_time"`
	MaxWaitTime    float64      `json:"max_wait_time" yaml:"max_wait_time"`
}

// Metrics accumulates hour records and global wait statistics while a
// run is in progress.
type Metrics struct {
	TotalCustomers int     // Number of arrivals recorded
	TotalWaitTime  float64 // Sum of wait over every customer, abandoned ones included
	MaxWaitTime    float64 // Largest single wait

	hours   []HourRecord
	current *HourRecord
}

// NewMetrics returns an empty accumulator.
func NewMetrics() *Metrics {
	return &Metrics{hours: make([]HourRecord, 0)}
}

// OpenHour starts collecting customers for the given 1-based hour.
// Panics if the previous hour was not sealed.
func (m *Metrics) OpenHour(index int) {
	if m.current != nil {
		panic(fmt.Sprintf("OpenHour(%d): hour %d still open", index, m.current.HourIndex))
	}
	m.current = &HourRecord{HourIndex: index}
}

// Record classifies c into the open hour and updates the global totals.
func (m *Metrics) Record(c CustomerRecord) {
	if m.current == nil {
		panic("Record: no open hour")
	}
	h := m.current
	h.EstimatedArrivals++
	switch {
	case c.Left:
		h.LeftCount++
	case c.Pending:
		h.PendingCount++
	case c.Satisfied:
		h.ServedCount++
	}
	h.Customers = append(h.Customers, c)

	m.TotalCustomers++
	m.TotalWaitTime += c.WaitTime
	if c.WaitTime > m.MaxWaitTime {
		m.MaxWaitTime = c.WaitTime
	}
}

// SealHour closes the open hour; its counts are final afterwards.
func (m *Metrics) SealHour() HourRecord {
	if m.current == nil {
		panic("SealHour: no open hour")
	}
	h := *m.current
	m.hours = append(m.hours, h)
	m.current = nil
	return h
}

// AvgWaitTime returns the mean wait across every customer, 0 if none.
func (m *Metrics) AvgWaitTime() float64 {
	if m.TotalCustomers == 0 {
		return 0
	}
	return m.TotalWaitTime / float64(m.TotalCustomers)
}

// Report assembles the final report from the sealed hours.
func (m *Metrics) Report(runID string, seed int64, stageNames []string) *SimulationReport {
	return &SimulationReport{
		RunID:          runID,
		Seed:           seed,
		StageNames:     stageNames,
		Hours:          m.hours,
		TotalCustomers: m.TotalCustomers,
		AvgWaitTime:    m.AvgWaitTime(),
		MaxWaitTime:    m.MaxWaitTime,
	}
}

// Totals sums the per-hour outcome counts.
func (r *SimulationReport) Totals() (served, pending, left int) {
	for _, h := range r.Hours {
		served += h.ServedCount
		pending += h.PendingCount
		left += h.LeftCount
	}
	return served, pending, left
}

// Customers returns every customer record in arrival order.
func (r *SimulationReport) Customers() []CustomerRecord {
	out := make([]CustomerRecord, 0, r.TotalCustomers)
	for _, h := range r.Hours {
		out = append(out, h.Customers...)
	}
	return out
}

// Print writes a human-readable summary of the report.
func (r *SimulationReport) Print(w io.Writer) {
	served, pending, left := r.Totals()
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Run ID               : %s\n", r.RunID)
	fmt.Fprintf(w, "Seed                 : %d\n", r.Seed)
	fmt.Fprintf(w, "Stages               : %v\n", r.StageNames)
	fmt.Fprintf(w, "Total Customers      : %d\n", r.TotalCustomers)
	fmt.Fprintf(w, "Served / Pending / Left : %d / %d / %d\n", served, pending, left)
	fmt.Fprintf(w, "Average Wait         : %.2f min\n", r.AvgWaitTime)
	fmt.Fprintf(w, "Max Wait             : %.2f min\n", r.MaxWaitTime)
	fmt.Fprintln(w, "=== Per Hour ===")
	for _, h := range r.Hours {
		fmt.Fprintf(w, "Hour %3d: arrivals=%d served=%d pending=%d left=%d\n",
			h.HourIndex, h.EstimatedArrivals, h.ServedCount, h.PendingCount, h.LeftCount)
	}
}
