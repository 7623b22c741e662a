package notify

// EventPayload is the loosely typed body posted to /notify. Repository, sender and
// PR number each accept more than one shape.
type EventPayload map[string]interface{}

// Outcome classifies what the pipeline did with an event.
type Outcome string

const (
	OutcomeDelivered      Outcome = "delivered"
	OutcomeIgnored        Outcome = "ignored"
	OutcomeDuplicate      Outcome = "ignored-duplicate"
	OutcomeDeliveryFailed Outcome = "delivery-failed"
)

// Decision is the result of OnEvent. Status is the text returned to the caller.
type Decision struct {
	Outcome   Outcome
	Status    string
	EventType string
	Repo      string
	PRNumber  *int
	Message   string
}

// --- Interaction ---

type InteractionInput struct {
	ActionID string
	Value    string
	User     string
}

type InteractionOutput struct {
	Text string
}

// Options tunes the pipeline.
type Options struct {
	// AllowedPRActions limits which pull_request actions are delivered. Empty allows all.
	AllowedPRActions []string
	// UsePlanner routes delivery through the dispatch loop instead of calling the tool directly.
	UsePlanner bool
}
