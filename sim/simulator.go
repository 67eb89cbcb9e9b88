// sim/simulator.go
package sim

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stagesim/stagesim/sim/trace"
	"github.com/stagesim/stagesim/sim/workload"
)

// ErrAlreadyRun is returned when Run is called twice on one Simulator.
var ErrAlreadyRun = errors.New("simulator already ran; build a new one per run")

// Simulator is the core object that holds simulated time, the server
// table and the hour-by-hour loop. One Simulator executes one run.
type Simulator struct {
	Clock   float64 // instant of the most recent arrival, in minutes
	Horizon float64 // hours * 60
	Config  SimulationConfig
	Servers *ServerTable
	Metrics *Metrics
	// Trace is nil unless decision tracing was requested.
	Trace *trace.SimulationTrace

	rng        *PartitionedRNG
	arrivals   *workload.ArrivalStream
	stages     []workload.Sampler
	stageRNGs  []*rand.Rand
	abandonRNG *rand.Rand
	nextID     int
	ran        bool
}

// NewSimulator validates cfg and prepares every sampler once. No
// simulation state is allocated when validation fails.
func NewSimulator(cfg *SimulationConfig, key SimulationKey, traceCfg trace.TraceConfig) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stages := make([]workload.Sampler, len(cfg.Stages))
	for i, s := range cfg.Stages {
		sampler, err := workload.NewServiceSampler(s.DistSpec)
		if err != nil {
			return nil, invalid(fmt.Sprintf("stages[%d] (%s)", i, s.Name), "%v", err)
		}
		stages[i] = sampler
	}
	arrivalSampler, err := workload.NewPoissonSampler(cfg.ArrivalRatePerHour)
	if err != nil {
		return nil, invalid("arrival_rate_per_hour", "%v", err)
	}

	rng := NewPartitionedRNG(key)
	stageRNGs := make([]*rand.Rand, len(stages))
	for i := range stages {
		stageRNGs[i] = rng.ForSubsystem(SubsystemStage(i))
	}

	s := &Simulator{
		Horizon:    cfg.Horizon(),
		Config:     *cfg,
		Servers:    NewServerTable(len(stages)),
		Metrics:    NewMetrics(),
		rng:        rng,
		stages:     stages,
		stageRNGs:  stageRNGs,
		abandonRNG: rng.ForSubsystem(SubsystemAbandon),
	}
	s.arrivals = workload.NewArrivalStream(arrivalSampler, rng.ForSubsystem(SubsystemArrivals), s.Horizon)
	if traceCfg.Enabled() {
		s.Trace = trace.NewSimulationTrace(traceCfg)
	}
	return s, nil
}

// Run validates cfg, seeds from cfg.Seed (or fresh entropy) and executes
// one complete run.
func Run(cfg *SimulationConfig) (*SimulationReport, error) {
	if cfg == nil {
		return nil, ErrEmptyInput
	}
	key := EntropyKey()
	if cfg.Seed != nil {
		key = NewSimulationKey(*cfg.Seed)
	}
	s, err := NewSimulator(cfg, key, trace.TraceConfig{Level: trace.TraceLevelNone})
	if err != nil {
		return nil, err
	}
	return s.Run()
}

// Run drives arrivals hour by hour until the horizon and returns the report.
func (sim *Simulator) Run() (*SimulationReport, error) {
	if sim.ran {
		return nil, ErrAlreadyRun
	}
	sim.ran = true

	for h := 0; h < sim.Config.Hours; h++ {
		hourStart := float64(h) * workload.MinutesPerHour
		hourEnd := hourStart + workload.MinutesPerHour
		sim.Metrics.OpenHour(h + 1)

		for !sim.arrivals.Done() && sim.arrivals.Peek() < hourEnd {
			sim.Clock = sim.arrivals.Next()
			c := sim.admit(sim.Clock, hourStart, hourEnd, h+1)
			sim.Metrics.Record(c)
		}

		rec := sim.Metrics.SealHour()
		logrus.Debugf("hour %d sealed: arrivals=%d served=%d pending=%d left=%d busy-until=%v",
			rec.HourIndex, rec.EstimatedArrivals, rec.ServedCount, rec.PendingCount, rec.LeftCount, sim.Servers.Snapshot())
	}

	report := sim.Metrics.Report(uuid.NewString(), int64(sim.rng.Key()), sim.stageNames())
	logrus.Infof("simulation finished: %d customers over %d hours, avg wait %.3f min, max wait %.3f min",
		report.TotalCustomers, sim.Config.Hours, report.AvgWaitTime, report.MaxWaitTime)
	return report, nil
}

// admit takes one arrival through entry, abandonment and every stage.
func (sim *Simulator) admit(arrival, hourStart, hourEnd float64, hour int) CustomerRecord {
	sim.nextID++
	c := CustomerRecord{
		ID:            sim.nextID,
		HourArrived:   hour,
		ArrivalTime:   arrival,
		ArrivalMinute: arrival - hourStart,
	}

	candidate := math.Max(arrival, sim.Servers.BusyUntil(0))
	expectedWait := candidate - arrival

	if reason, leaves := sim.abandons(candidate, expectedWait, hourEnd); leaves {
		c.Left = true
		c.StartTime = arrival
		c.EndTime = arrival
		c.WaitTime = expectedWait
		if sim.Trace != nil {
			sim.Trace.RecordAbandonment(trace.AbandonmentRecord{
				CustomerID:   c.ID,
				Clock:        arrival,
				ExpectedWait: expectedWait,
				Reason:       reason,
			})
		}
		logrus.Tracef("customer %d left at %.3f (%s, expected wait %.3f)", c.ID, arrival, reason, expectedWait)
		return c
	}

	n := len(sim.stages)
	c.StageDurations = make([]float64, 0, n)
	c.StageStartTimes = make([]float64, 0, n)
	c.StageEndTimes = make([]float64, 0, n)

	current := candidate
	wait := expectedWait
	idle := 0.0
	for i, sampler := range sim.stages {
		free := sim.Servers.BusyUntil(i)
		start := math.Max(current, free)
		if start > free {
			idle += start - free
		}
		if start > current {
			wait += start - current
		}
		duration := sampler.Sample(sim.stageRNGs[i])
		end := start + duration
		sim.Servers.Reserve(i, start, end)
		if sim.Trace != nil {
			sim.Trace.RecordReservation(trace.ReservationRecord{
				CustomerID: c.ID,
				Stage:      i,
				BusyBefore: free,
				Start:      start,
				End:        end,
			})
		}

		c.StageDurations = append(c.StageDurations, duration)
		c.StageStartTimes = append(c.StageStartTimes, start)
		c.StageEndTimes = append(c.StageEndTimes, end)
		current = end
	}

	c.StartTime = candidate
	c.EndTime = current
	c.TotalDuration = current - arrival
	c.WaitTime = wait
	c.IdleTime = idle
	if current <= hourEnd {
		c.Satisfied = true
	} else {
		c.Pending = true
	}
	logrus.Tracef("customer %d arrived %.3f, served %.3f-%.3f (wait %.3f)", c.ID, arrival, candidate, current, wait)
	return c
}

// abandons decides whether a customer leaves before entering stage 1.
// Entry is exclusive at the hour boundary: a customer who could not start
// before the hour ends always leaves. Otherwise an impatient customer
// leaves with the configured probability.
func (sim *Simulator) abandons(candidate, expectedWait, hourEnd float64) (trace.AbandonReason, bool) {
	if candidate >= hourEnd {
		return trace.ReasonBoundary, true
	}
	if expectedWait > sim.Config.ToleranceMinutes && sim.abandonRNG.Float64() < sim.Config.AbandonProbability {
		return trace.ReasonImpatience, true
	}
	return "", false
}

func (sim *Simulator) stageNames() []string {
	names := make([]string, len(sim.Config.Stages))
	for i, s := range sim.Config.Stages {
		names[i] = s.Name
	}
	return names
}
