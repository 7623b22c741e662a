package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"repo-event-relay/internal/model"
	"repo-event-relay/pkg/datemath"
	pkgLog "repo-event-relay/pkg/log"
)

// Notifier hands a stored event to the notification service.
type Notifier interface {
	Forward(ctx context.Context, event model.Event) error
}

// Forwarder posts events to the /notify endpoint of the notification service.
type Forwarder struct {
	url        string
	httpClient *http.Client
	l          pkgLog.Logger
}

// NewForwarder builds a Forwarder. A zero timeout uses 10s.
func NewForwarder(url string, timeout time.Duration, l pkgLog.Logger) (*Forwarder, error) {
	if url == "" {
		return nil, ErrNotifyURLRequired
	}
	if timeout <= 0 {
		timeout = defaultForwardTimeout
	}
	return &Forwarder{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		l:          l,
	}, nil
}

// Forward sends one event. Any non-2xx answer is an error; the caller decides whether to retry.
func (f *Forwarder) Forward(ctx context.Context, event model.Event) error {
	body, err := json.Marshal(ToNotifyPayload(event))
	if err != nil {
		return fmt.Errorf("marshal notify payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post notify: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d: %s", ErrNotifyRejected, resp.StatusCode, bytes.TrimSpace(respBody))
	}

	f.l.Debugf(ctx, "%s: %s", LogPrefixForward, bytes.TrimSpace(respBody))
	return nil
}

// ToNotifyPayload converts an Event to the /notify wire form with a UTC timestamp.
func ToNotifyPayload(event model.Event) model.NotifyPayload {
	return model.NotifyPayload{
		EventType:   event.DisplayType(),
		Action:      event.Action,
		Repository:  model.NotifyRepository{FullName: event.RepositoryFullName},
		PRNumber:    event.PRNumber,
		Title:       event.Title,
		Description: event.Description,
		Sender:      event.Sender,
		Timestamp:   datemath.ToUTC(event.Timestamp),
	}
}
