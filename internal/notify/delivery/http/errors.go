package http

import (
	"errors"
	"net/http"

	"repo-event-relay/internal/notify"
	"repo-event-relay/pkg/slack"
)

// mapError translates use-case errors into a status code and the message sent to Slack.
func (h *handler) mapError(err error) (int, string) {
	switch {
	case errors.Is(err, notify.ErrInvalidPRNumber),
		errors.Is(err, notify.ErrUnknownAction),
		errors.Is(err, notify.ErrNoPayload),
		errors.Is(err, notify.ErrInvalidPayload):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, slack.ErrInvalidSignature):
		return http.StatusUnauthorized, err.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
