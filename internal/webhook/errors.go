package webhook

import "errors"

var (
	ErrInvalidPayload    = errors.New("invalid webhook payload")
	ErrInvalidSignature  = errors.New("invalid webhook signature")
	ErrIPNotAllowed      = errors.New("source ip not allowed")
	ErrRateLimited       = errors.New("rate limit exceeded")
	ErrNotifyURLRequired = errors.New("notify url is required")
	ErrNotifyRejected    = errors.New("notify endpoint rejected event")
)
