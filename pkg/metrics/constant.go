package metrics

// Label values shared by the recorders.
const (
	StatusOK    = "ok"
	StatusError = "error"

	DecisionNotified  = "notified"
	DecisionIgnored   = "ignored"
	DecisionDuplicate = "duplicate"
	DecisionFailed    = "failed"
)
