package usecase

import (
	"repo-event-relay/internal/agent/orchestrator"
	"repo-event-relay/internal/notify"
	"repo-event-relay/pkg/datemath"
	"repo-event-relay/pkg/log"
	"repo-event-relay/pkg/metrics"
)

// implUseCase is the private implementation of notify.UseCase.
type implUseCase struct {
	dispatcher     orchestrator.Dispatcher
	clock          *datemath.Converter
	handled        *handledSet
	allowedActions map[string]struct{}
	usePlanner     bool
	metrics        *metrics.Metrics
	l              log.Logger
}

// New creates the notification pipeline. The dedup set starts empty.
func New(dispatcher orchestrator.Dispatcher, clock *datemath.Converter, m *metrics.Metrics, l log.Logger, opts notify.Options) (*implUseCase, error) {
	if dispatcher == nil {
		return nil, notify.ErrNoDispatcher
	}
	if clock == nil {
		clock = datemath.MustUTC()
	}

	allowed := make(map[string]struct{}, len(opts.AllowedPRActions))
	for _, a := range opts.AllowedPRActions {
		allowed[a] = struct{}{}
	}

	return &implUseCase{
		dispatcher:     dispatcher,
		clock:          clock,
		handled:        newHandledSet(),
		allowedActions: allowed,
		usePlanner:     opts.UsePlanner,
		metrics:        m,
		l:              l,
	}, nil
}
