package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every reservation and abandonment.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether records should be collected.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelDecisions
}

// SimulationTrace collects decision records during a simulation run.
type SimulationTrace struct {
	Config       TraceConfig
	Abandonments []AbandonmentRecord
	Reservations []ReservationRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:       config,
		Abandonments: make([]AbandonmentRecord, 0),
		Reservations: make([]ReservationRecord, 0),
	}
}

// RecordAbandonment appends an abandonment record.
func (st *SimulationTrace) RecordAbandonment(record AbandonmentRecord) {
	st.Abandonments = append(st.Abandonments, record)
}

// RecordReservation appends a server reservation record.
func (st *SimulationTrace) RecordReservation(record ReservationRecord) {
	st.Reservations = append(st.Reservations, record)
}
