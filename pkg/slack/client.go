package slack

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	slackapi "github.com/slack-go/slack"
)

// Client posts messages to a Slack incoming webhook.
type Client struct {
	webhookURL string
	httpClient *http.Client
}

// NewClient creates a Slack webhook client. An empty webhookURL yields an unconfigured client.
func NewClient(webhookURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetWebhookURL overrides the webhook URL for testing purposes.
func (c *Client) SetWebhookURL(url string) {
	c.webhookURL = url
}

// Configured reports whether a webhook URL is present.
func (c *Client) Configured() bool {
	return c.webhookURL != ""
}

// Post delivers msg. Non-200 responses surface as *StatusError carrying Slack's reply,
// which also matches slackapi.StatusCodeError.
func (c *Client) Post(ctx context.Context, msg *slackapi.WebhookMessage) error {
	if !c.Configured() {
		return ErrWebhookNotConfigured
	}

	var reply string
	hc := &http.Client{
		Timeout:   c.httpClient.Timeout,
		Transport: replyRecorder{base: c.httpClient.Transport, reply: &reply},
	}

	err := slackapi.PostWebhookCustomHTTPContext(ctx, c.webhookURL, hc, msg)
	if err == nil {
		return nil
	}

	var sce slackapi.StatusCodeError
	if errors.As(err, &sce) {
		return fmt.Errorf("slack webhook: %w", &StatusError{StatusCodeError: sce, Body: reply})
	}
	return fmt.Errorf("slack webhook: %w", err)
}

// StatusError is a non-200 webhook answer. Body is Slack's reason, e.g. "invalid_blocks".
type StatusError struct {
	slackapi.StatusCodeError
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return e.StatusCodeError.Error()
	}
	return fmt.Sprintf("%s: %s", e.StatusCodeError.Error(), e.Body)
}

func (e *StatusError) Unwrap() error {
	return e.StatusCodeError
}

// Reason is Slack's reply body, or the HTTP status line when the body was empty.
func (e *StatusError) Reason() string {
	if e.Body != "" {
		return e.Body
	}
	return e.Status
}

// replyRecorder keeps the body of a non-200 response, which slack-go discards.
type replyRecorder struct {
	base  http.RoundTripper
	reply *string
}

func (r replyRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	base := r.base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	if err != nil || resp.StatusCode == http.StatusOK {
		return resp, err
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	resp.Body.Close()
	*r.reply = strings.TrimSpace(string(body))
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}
