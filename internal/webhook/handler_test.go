package webhook

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
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"repo-event-relay/internal/model"
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

type mockStore struct {
	mu     sync.Mutex
	events []model.Event
	err    error
}

func (m *mockStore) Append(ctx context.Context, event model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockStore) List(ctx context.Context) ([]model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Event(nil), m.events...), m.err
}

type mockNotifier struct {
	events []model.Event
	err    error
}

func (m *mockNotifier) Forward(ctx context.Context, event model.Event) error {
	m.events = append(m.events, event)
	return m.err
}

const prOpened = `{"action":"opened","number":42,"pull_request":{"number":42,"title":"Add feature","body":"desc"},"repository":{"full_name":"org/repo"},"sender":{"login":"alice"}}`

// testRemoteAddr is the peer address httptest.NewRequest assigns.
const testRemoteAddr = "192.0.2.1"

func newTestRouter(t *testing.T, store *mockStore, notifier Notifier, sec SecurityConfig) *gin.Engine {
	t.Helper()
	return newProxiedRouter(t, store, notifier, sec, nil)
}

// newProxiedRouter serves the webhook behind the given trusted proxies.
func newProxiedRouter(t *testing.T, store *mockStore, notifier Notifier, sec SecurityConfig, proxies []string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewHandler(newTestNormalizer(t), store, notifier, sec, nil, &mockLogger{})
	r := gin.New()
	if err := r.SetTrustedProxies(proxies); err != nil {
		t.Fatalf("SetTrustedProxies error: %v", err)
	}
	RegisterRoutes(r, h)
	return r
}

func doWebhook(r http.Handler, eventType, contentType, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook/github", strings.NewReader(body))
	req.Header.Set(HeaderEvent, eventType)
	req.Header.Set("Content-Type", contentType)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sign(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestHandleGitHubWebhook(t *testing.T) {
	t.Run("stores and forwards", func(t *testing.T) {
		store := &mockStore{}
		notifier := &mockNotifier{}
		r := newTestRouter(t, store, notifier, SecurityConfig{})

		w := doWebhook(r, "pull_request", "application/json", prOpened, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		var resp map[string]string
		json.Unmarshal(w.Body.Bytes(), &resp)
		if resp["status"] != StatusReceived {
			t.Errorf("unexpected response %v", resp)
		}
		if len(store.events) != 1 || store.events[0].PRNumber == nil || *store.events[0].PRNumber != 42 {
			t.Fatalf("unexpected stored events: %+v", store.events)
		}
		if len(notifier.events) != 1 || notifier.events[0].Title != "Add feature" {
			t.Errorf("unexpected forwarded events: %+v", notifier.events)
		}
	})

	t.Run("form encoded payload", func(t *testing.T) {
		store := &mockStore{}
		r := newTestRouter(t, store, nil, SecurityConfig{})

		form := url.Values{"payload": {prOpened}}.Encode()
		w := doWebhook(r, "pull_request", "application/x-www-form-urlencoded", form, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
		if len(store.events) != 1 {
			t.Fatalf("expected one stored event, got %d", len(store.events))
		}
	})

	t.Run("forward failure still acknowledges", func(t *testing.T) {
		store := &mockStore{}
		notifier := &mockNotifier{err: errors.New("connection refused")}
		r := newTestRouter(t, store, notifier, SecurityConfig{})

		w := doWebhook(r, "push", "application/json", `{"commits":[{"message":"x"}]}`, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		if len(store.events) != 1 {
			t.Errorf("expected event to be stored")
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		store := &mockStore{}
		r := newTestRouter(t, store, nil, SecurityConfig{})

		w := doWebhook(r, "push", "application/json", `{broken`, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
		var resp map[string]string
		json.Unmarshal(w.Body.Bytes(), &resp)
		if resp["error"] == "" {
			t.Errorf("expected error body, got %s", w.Body.String())
		}
		if len(store.events) != 0 {
			t.Errorf("nothing should be stored")
		}
	})

	t.Run("store failure", func(t *testing.T) {
		store := &mockStore{err: errors.New("disk full")}
		notifier := &mockNotifier{}
		r := newTestRouter(t, store, notifier, SecurityConfig{})

		w := doWebhook(r, "push", "application/json", `{}`, nil)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", w.Code)
		}
		if len(notifier.events) != 0 {
			t.Errorf("unstored event must not be forwarded")
		}
	})
}

func TestHandleGitHubWebhook_Security(t *testing.T) {
	t.Run("valid signature", func(t *testing.T) {
		store := &mockStore{}
		r := newTestRouter(t, store, nil, SecurityConfig{Secret: "s3cret"})
		w := doWebhook(r, "pull_request", "application/json", prOpened, map[string]string{HeaderSignature: sign("s3cret", prOpened)})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
		}
	})

	t.Run("bad signature", func(t *testing.T) {
		store := &mockStore{}
		r := newTestRouter(t, store, nil, SecurityConfig{Secret: "s3cret"})
		w := doWebhook(r, "pull_request", "application/json", prOpened, map[string]string{HeaderSignature: sign("other", prOpened)})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
		if len(store.events) != 0 {
			t.Errorf("nothing should be stored")
		}
	})

	t.Run("ip allow-list behind a trusted proxy", func(t *testing.T) {
		r := newProxiedRouter(t, &mockStore{}, nil, SecurityConfig{AllowedIPs: []string{"10.0.0.0/8"}}, []string{testRemoteAddr})

		w := doWebhook(r, "push", "application/json", `{}`, map[string]string{"X-Forwarded-For": "10.1.2.3"})
		if w.Code != http.StatusOK {
			t.Errorf("allowed ip: status = %d", w.Code)
		}
		w = doWebhook(r, "push", "application/json", `{}`, map[string]string{"X-Forwarded-For": "192.168.1.1"})
		if w.Code != http.StatusForbidden {
			t.Errorf("blocked ip: status = %d, want 403", w.Code)
		}
	})

	t.Run("forwarded headers from an untrusted peer are ignored", func(t *testing.T) {
		store := &mockStore{}
		r := newTestRouter(t, store, nil, SecurityConfig{AllowedIPs: []string{"140.82.112.0/20"}})

		for _, headers := range []map[string]string{
			{"X-Forwarded-For": "140.82.115.1, 6.6.6.6"},
			{"X-Real-IP": "140.82.115.1"},
		} {
			w := doWebhook(r, "push", "application/json", `{}`, headers)
			if w.Code != http.StatusForbidden {
				t.Errorf("headers %v: status = %d, want 403", headers, w.Code)
			}
		}
		if len(store.events) != 0 {
			t.Errorf("nothing should be stored, got %d", len(store.events))
		}
	})

	t.Run("spoofed hops before the trusted proxy are not trusted", func(t *testing.T) {
		r := newProxiedRouter(t, &mockStore{}, nil, SecurityConfig{AllowedIPs: []string{"140.82.112.0/20"}}, []string{testRemoteAddr})

		// The proxy appends the real peer; the client-supplied entry stays on the left.
		w := doWebhook(r, "push", "application/json", `{}`, map[string]string{"X-Forwarded-For": "140.82.115.1, 6.6.6.6"})
		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})

	t.Run("rate limit per source", func(t *testing.T) {
		r := newProxiedRouter(t, &mockStore{}, nil, SecurityConfig{RateLimitPerMin: 1}, []string{testRemoteAddr})

		first := doWebhook(r, "push", "application/json", `{}`, map[string]string{"X-Forwarded-For": "1.1.1.1"})
		second := doWebhook(r, "push", "application/json", `{}`, map[string]string{"X-Forwarded-For": "1.1.1.1"})
		other := doWebhook(r, "push", "application/json", `{}`, map[string]string{"X-Forwarded-For": "2.2.2.2"})
		if first.Code != http.StatusOK || other.Code != http.StatusOK {
			t.Errorf("first=%d other=%d, want 200", first.Code, other.Code)
		}
		if second.Code != http.StatusTooManyRequests {
			t.Errorf("second = %d, want 429", second.Code)
		}
	})

	t.Run("rotating forwarded headers share the peer's bucket", func(t *testing.T) {
		r := newTestRouter(t, &mockStore{}, nil, SecurityConfig{RateLimitPerMin: 1})

		first := doWebhook(r, "push", "application/json", `{}`, map[string]string{"X-Forwarded-For": "1.1.1.1"})
		second := doWebhook(r, "push", "application/json", `{}`, map[string]string{"X-Forwarded-For": "2.2.2.2"})
		if first.Code != http.StatusOK || second.Code != http.StatusTooManyRequests {
			t.Errorf("first=%d second=%d, want 200 then 429", first.Code, second.Code)
		}
	})
}

func TestHandleGitHubWebhook_DeliveryBurst(t *testing.T) {
	const workflowJob = `{"action":"completed","workflow_job":{"name":"build","status":"completed","conclusion":"success"},"repository":{"full_name":"org/repo"},"sender":{"login":"ci"}}`

	for _, sec := range []SecurityConfig{{}, {RateLimitPerMin: 60}} {
		store := &mockStore{}
		r := newProxiedRouter(t, store, nil, sec, []string{testRemoteAddr})

		for i := 0; i < 10; i++ {
			w := doWebhook(r, "workflow_job", "application/json", workflowJob, map[string]string{"X-Forwarded-For": "140.82.115.1"})
			if w.Code != http.StatusOK {
				t.Fatalf("rate %d/min: delivery %d status = %d", sec.RateLimitPerMin, i, w.Code)
			}
		}
		if len(store.events) != 10 {
			t.Errorf("rate %d/min: stored %d of 10 deliveries", sec.RateLimitPerMin, len(store.events))
		}
	}
}

func TestSecurityValidator_RateLimitDisabled(t *testing.T) {
	v := NewSecurityValidator(SecurityConfig{})
	for i := 0; i < 100; i++ {
		if err := v.CheckRateLimit(testRemoteAddr); err != nil {
			t.Fatalf("request %d rejected: %v", i, err)
		}
	}
}
