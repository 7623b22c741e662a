package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"repo-event-relay/internal/notify"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

type mockUseCase struct {
	decision notify.Decision
	output   notify.InteractionOutput
	err      error
	panics   bool

	gotPayload notify.EventPayload
	gotInput   notify.InteractionInput
}

func (m *mockUseCase) OnEvent(ctx context.Context, payload notify.EventPayload) (notify.Decision, error) {
	m.gotPayload = payload
	return m.decision, m.err
}

func (m *mockUseCase) OnInteraction(ctx context.Context, input notify.InteractionInput) (notify.InteractionOutput, error) {
	if m.panics {
		panic("nil pointer somewhere")
	}
	m.gotInput = input
	return m.output, m.err
}

func newTestRouter(uc notify.UseCase, secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, New(&mockLogger{}, uc, secret))
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json body %q: %v", w.Body.String(), err)
	}
	return out
}

func postNotify(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/notify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postInteract(r http.Handler, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/slack/interact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestNotify(t *testing.T) {
	t.Run("returns the decision status", func(t *testing.T) {
		uc := &mockUseCase{decision: notify.Decision{Outcome: notify.OutcomeDelivered, Status: notify.StatusNotified}}
		w := postNotify(newTestRouter(uc, ""), `{"event_type":"pull_request","action":"opened","pr_number":42,"repository":{"full_name":"org/repo"}}`)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		if got := decode(t, w)["status"]; got != "notified and send to slack" {
			t.Errorf("status body = %q", got)
		}
		if uc.gotPayload["event_type"] != "pull_request" {
			t.Errorf("payload not passed through: %v", uc.gotPayload)
		}
	})

	t.Run("ignored is still 200", func(t *testing.T) {
		uc := &mockUseCase{decision: notify.Decision{Outcome: notify.OutcomeDuplicate, Status: "ignored duplicate pull request #42"}}
		w := postNotify(newTestRouter(uc, ""), `{"pr_number":42}`)
		if w.Code != http.StatusOK || decode(t, w)["status"] != "ignored duplicate pull request #42" {
			t.Errorf("unexpected response %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("bad json", func(t *testing.T) {
		w := postNotify(newTestRouter(&mockUseCase{}, ""), `{oops`)
		if w.Code != http.StatusBadRequest || decode(t, w)["error"] == "" {
			t.Errorf("unexpected response %d %s", w.Code, w.Body.String())
		}
	})
}

func TestInteract(t *testing.T) {
	mergePayload := `{"actions":[{"action_id":"merge_action","value":"{\"repo\":\"org/repo\",\"pr_number\":\"42\"}"}],"user":{"username":"alice"}}`
	form := url.Values{"payload": {mergePayload}}.Encode()

	t.Run("merge", func(t *testing.T) {
		uc := &mockUseCase{output: notify.InteractionOutput{Text: "✅ Successfully merged PR #42 in org/repo."}}
		w := postInteract(newTestRouter(uc, ""), form, nil)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d body %s", w.Code, w.Body.String())
		}
		if got := decode(t, w)["text"]; got != "✅ Successfully merged PR #42 in org/repo." {
			t.Errorf("text = %q", got)
		}
		if uc.gotInput.ActionID != "merge_action" || uc.gotInput.User != "alice" ||
			uc.gotInput.Value != `{"repo":"org/repo","pr_number":"42"}` {
			t.Errorf("unexpected input %+v", uc.gotInput)
		}
	})

	tests := []struct {
		name     string
		body     string
		uc       *mockUseCase
		wantCode int
		wantErr  string
	}{
		{
			name:     "missing payload",
			body:     "",
			uc:       &mockUseCase{},
			wantCode: http.StatusBadRequest,
			wantErr:  "No payload received",
		},
		{
			name:     "payload is not json",
			body:     url.Values{"payload": {"{nope"}}.Encode(),
			uc:       &mockUseCase{},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "no actions",
			body:     url.Values{"payload": {`{"actions":[]}`}}.Encode(),
			uc:       &mockUseCase{},
			wantCode: http.StatusBadRequest,
			wantErr:  "unknown action",
		},
		{
			name:     "invalid pr number",
			body:     form,
			uc:       &mockUseCase{err: notify.ErrInvalidPRNumber},
			wantCode: http.StatusBadRequest,
			wantErr:  "Invalid or missing PR number",
		},
		{
			name:     "unknown action",
			body:     form,
			uc:       &mockUseCase{err: notify.ErrUnknownAction},
			wantCode: http.StatusBadRequest,
			wantErr:  "unknown action",
		},
		{
			name:     "unexpected error",
			body:     form,
			uc:       &mockUseCase{err: errors.New("github exploded")},
			wantCode: http.StatusInternalServerError,
			wantErr:  "github exploded",
		},
		{
			name:     "panic",
			body:     form,
			uc:       &mockUseCase{panics: true},
			wantCode: http.StatusInternalServerError,
			wantErr:  "nil pointer somewhere",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postInteract(newTestRouter(tt.uc, ""), tt.body, nil)
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantCode, w.Body.String())
			}
			got := decode(t, w)["error"]
			if got == "" || (tt.wantErr != "" && got != tt.wantErr) {
				t.Errorf("error = %q, want %q", got, tt.wantErr)
			}
		})
	}
}

func TestInteract_Signature(t *testing.T) {
	const secret = "signing-secret"
	form := url.Values{"payload": {`{"actions":[{"action_id":"merge_action","value":"{}"}]}`}}.Encode()

	sign := func(ts, body string) string {
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write([]byte("v0:" + ts + ":" + body))
		return "v0=" + hex.EncodeToString(mac.Sum(nil))
	}

	t.Run("valid", func(t *testing.T) {
		ts := strconv.FormatInt(time.Now().Unix(), 10)
		uc := &mockUseCase{output: notify.InteractionOutput{Text: "ok"}}
		w := postInteract(newTestRouter(uc, secret), form, map[string]string{
			"X-Slack-Request-Timestamp": ts,
			"X-Slack-Signature":         sign(ts, form),
		})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d body %s", w.Code, w.Body.String())
		}
	})

	t.Run("invalid", func(t *testing.T) {
		ts := strconv.FormatInt(time.Now().Unix(), 10)
		w := postInteract(newTestRouter(&mockUseCase{}, secret), form, map[string]string{
			"X-Slack-Request-Timestamp": ts,
			"X-Slack-Signature":         sign(ts, "tampered"),
		})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
	})
}
