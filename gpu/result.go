package gpu

// PollResult is the tri-state outcome of Context.Poll.
type PollResult int

const (
	// Ready means the device has been acquired (or no acquisition is
	// needed) and GPU-backed canvases may be created.
	Ready PollResult = iota

	// Failed means adapter or device negotiation was rejected.
	// The failure is sticky until Term is called.
	Failed

	// Pending means a negotiation step is still in flight.
	// The caller should poll again later.
	Pending
)

// String returns the result name.
func (r PollResult) String() string {
	switch r {
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	case Pending:
		return "pending"
	}
	return "unknown"
}
