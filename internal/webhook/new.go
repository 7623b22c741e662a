package webhook

import (
	"repo-event-relay/internal/event/repository"
	pkgLog "repo-event-relay/pkg/log"
	"repo-event-relay/pkg/metrics"
)

type Handler struct {
	normalizer *Normalizer
	store      repository.Repository
	notifier   Notifier
	security   *SecurityValidator
	metrics    *metrics.Metrics
	l          pkgLog.Logger
}

// NewHandler wires the listener. notifier may be nil to only store events.
func NewHandler(
	normalizer *Normalizer,
	store repository.Repository,
	notifier Notifier,
	securityConfig SecurityConfig,
	m *metrics.Metrics,
	l pkgLog.Logger,
) *Handler {
	return &Handler{
		normalizer: normalizer,
		store:      store,
		notifier:   notifier,
		security:   NewSecurityValidator(securityConfig),
		metrics:    m,
		l:          l,
	}
}
