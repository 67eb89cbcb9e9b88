// Package trace provides decision-trace recording for pipeline analysis.
// This package has no dependencies on sim/ and stores pure data types.
package trace

// AbandonReason explains why a customer left before entering service.
type AbandonReason string

const (
	// ReasonBoundary means the earliest possible entry fell at or after the
	// end of the customer's arrival hour.
	ReasonBoundary AbandonReason = "boundary"
	// ReasonImpatience means the expected wait exceeded the tolerance and
	// the abandonment draw succeeded.
	ReasonImpatience AbandonReason = "impatience"
)

// AbandonmentRecord captures a single abandonment decision.
type AbandonmentRecord struct {
	CustomerID   int
	Clock        float64
	ExpectedWait float64
	Reason       AbandonReason
}

// ReservationRecord captures one server reservation: a customer occupying
// a stage's server from Start to End.
type ReservationRecord struct {
	CustomerID int
	Stage      int
	BusyBefore float64 // server busy-until at the moment the customer arrived at the stage
	Start      float64
	End        float64
}
