package service

import (
	"context"
	"time"

	"kakeibo/internal/logger"
	"kakeibo/internal/repository"
)

// SessionJanitor periodically purges expired sessions.
type SessionJanitor struct {
	repo repository.SessionRepo
	log  *logger.Logger
	now  func() time.Time
}

func NewSessionJanitor(repo repository.SessionRepo, log *logger.Logger) *SessionJanitor {
	return &SessionJanitor{repo: repo, log: log, now: time.Now}
}

var _ Janitor = (*SessionJanitor)(nil)

// Run ticks at the given interval until ctx is canceled.
func (j *SessionJanitor) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := j.Sweep(ctx)
			if err != nil {
				if j.log != nil && ctx.Err() == nil {
					j.log.Errorw("session_sweep_failed", "error", err)
				}
				continue
			}
			if n > 0 && j.log != nil {
				j.log.Debugw("session_sweep", "deleted", n)
			}
		}
	}
}

// Sweep deletes every session expired as of now.
func (j *SessionJanitor) Sweep(ctx context.Context) (int64, error) {
	return j.repo.DeleteExpired(ctx, j.now())
}
