package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"repo-event-relay/pkg/log"
)

const logPrefixGenerate = "pkg.llmprovider.Manager.GenerateContent"

// Config tunes the Manager. RetryAttempts below 1 means a single attempt per provider.
type Config struct {
	FallbackEnabled bool
	RetryAttempts   int
	RetryDelay      time.Duration // attempt n waits n*RetryDelay
	MaxTotalTimeout time.Duration // bounds the whole chain, 0 for none
}

// Manager asks providers in priority order until one answers.
type Manager struct {
	providers []Provider
	config    Config
	l         log.Logger
}

func NewManager(providers []Provider, config *Config, l log.Logger) *Manager {
	m := &Manager{providers: providers, l: l}
	if config != nil {
		m.config = *config
	}
	if m.config.RetryAttempts < 1 {
		m.config.RetryAttempts = 1
	}
	return m
}

// GenerateContent returns the first successful answer. Without fallback only the
// highest-priority provider is tried. The error lists every provider that failed.
func (m *Manager) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	if m.config.MaxTotalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.config.MaxTotalTimeout)
		defer cancel()
	}

	providers := m.providers
	if !m.config.FallbackEnabled {
		providers = providers[:1]
	}

	var errs []error
	for _, p := range providers {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		resp, err := m.attempt(ctx, p, req)
		if err == nil {
			if resp.ProviderName == "" {
				resp.ProviderName = p.Name()
			}
			in, out := resp.tokens()
			m.l.Infof(ctx, "%s: %s/%s answered (tokens in=%d out=%d)", logPrefixGenerate, p.Name(), p.Model(), in, out)
			return resp, nil
		}

		m.l.Warnf(ctx, "%s: %s/%s failed: %v", logPrefixGenerate, p.Name(), p.Model(), err)
		errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
	}

	return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, errors.Join(errs...))
}

// attempt calls one provider up to RetryAttempts times.
func (m *Manager) attempt(ctx context.Context, p Provider, req *Request) (*Response, error) {
	var err error
	for n := 0; n < m.config.RetryAttempts; n++ {
		if n > 0 {
			select {
			case <-time.After(time.Duration(n) * m.config.RetryDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		var resp *Response
		resp, err = p.GenerateContent(ctx, req)
		if err == nil && resp == nil {
			err = ErrEmptyResponse
		}
		if err == nil {
			return resp, nil
		}
	}
	return nil, err
}

func (r *Response) tokens() (in, out int) {
	if r.Usage == nil {
		return 0, 0
	}
	return r.Usage.InputTokens, r.Usage.OutputTokens
}
