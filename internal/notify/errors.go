package notify

import "errors"

var (
	ErrInvalidPRNumber = errors.New("Invalid or missing PR number")
	ErrUnknownAction   = errors.New("unknown action")
	ErrNoPayload       = errors.New("No payload received")
	ErrInvalidPayload  = errors.New("invalid payload")
	ErrNoDispatcher    = errors.New("dispatcher is required")
	ErrNotDelivered    = errors.New("planner finished without calling the notification tool")
)
