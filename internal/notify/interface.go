package notify

import "context"

//go:generate mockery --name UseCase
type UseCase interface {
	// OnEvent filters, deduplicates, formats and delivers one forwarded event.
	OnEvent(ctx context.Context, payload EventPayload) (Decision, error)
	// OnInteraction maps a Slack button click onto a pull request action.
	OnInteraction(ctx context.Context, input InteractionInput) (InteractionOutput, error)
}
