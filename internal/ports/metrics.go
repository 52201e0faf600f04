package ports

import "time"

// Recognition outcomes, one per error class plus success.
const (
	OutcomeOK       = "ok"
	OutcomeConfig   = "config"
	OutcomeClient   = "client"
	OutcomeProvider = "provider"
	OutcomeUnknown  = "unknown"
)

type RecognitionMetrics interface {
	Observe(outcome string)
	ObserveDuration(d time.Duration)
}
