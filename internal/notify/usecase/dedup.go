package usecase

import (
	"context"
	"sync"

	"repo-event-relay/internal/event/repository"
	"repo-event-relay/internal/model"
	"repo-event-relay/internal/notify"
)

// handledSet holds the PR numbers already notified during this process lifetime.
type handledSet struct {
	mu  sync.Mutex
	prs map[int]struct{}
}

func newHandledSet() *handledSet {
	return &handledSet{prs: make(map[int]struct{})}
}

// Admit adds n and reports whether it was new.
func (s *handledSet) Admit(n int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.prs[n]; ok {
		return false
	}
	s.prs[n] = struct{}{}
	return true
}

func (s *handledSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prs)
}

// SeedFromStore marks every pull request already in the event store as handled,
// so a restart does not re-announce them. It returns how many numbers were added.
func (uc *implUseCase) SeedFromStore(ctx context.Context, store repository.Repository) (int, error) {
	events, err := store.List(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "%s: %v", notify.LogPrefixSeed, err)
		return 0, err
	}

	added := 0
	for _, ev := range events {
		if ev.EventType != model.EventTypePullRequest || ev.PRNumber == nil {
			continue
		}
		if uc.handled.Admit(*ev.PRNumber) {
			added++
		}
	}
	uc.l.Infof(ctx, "%s: seeded %d pull request(s)", notify.LogPrefixSeed, added)
	return added, nil
}
