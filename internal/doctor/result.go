package doctor

// Status classifies a check outcome.
type Status int

const (
	// StatusOK marks a passing check.
	StatusOK Status = iota
	// StatusWarn marks a degraded but survivable condition.
	StatusWarn
	// StatusFail marks a condition that breaks dispatching.
	StatusFail
)

// String returns the lowercase label for a status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	}
	return "unknown"
}

// Result is one finding from a health check.
type Result struct {
	Status         Status
	CheckName      string
	Message        string
	Recommendation string
}
