package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	notifyHTTP "repo-event-relay/internal/notify/delivery/http"
	"repo-event-relay/internal/webhook"
	"repo-event-relay/pkg/log"
	"repo-event-relay/pkg/metrics"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	service     string
	metrics     *metrics.Metrics

	// Notification pipeline (/notify, /slack/interact)
	notifyHandler notifyHTTP.Handler

	// GitHub listener (/webhook/github)
	webhookHandler *webhook.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string
	// Service names the process in health responses.
	Service string
	Metrics *metrics.Metrics
	// TrustedProxies may set X-Forwarded-For / X-Real-IP. Empty trusts none and
	// the client IP is the connection's remote address.
	TrustedProxies []string

	NotifyHandler  notifyHTTP.Handler
	WebhookHandler *webhook.Handler
}

// New creates a new HTTPServer instance with every route mapped.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:              logger,
		gin:            gin.New(),
		port:           cfg.Port,
		mode:           cfg.Mode,
		environment:    cfg.Environment,
		service:        cfg.Service,
		metrics:        cfg.Metrics,
		notifyHandler:  cfg.NotifyHandler,
		webhookHandler: cfg.WebhookHandler,
	}
	if srv.service == "" {
		srv.service = ServiceName
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.gin.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

// Handler exposes the router, mainly for tests.
func (srv HTTPServer) Handler() http.Handler {
	return srv.gin
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}
