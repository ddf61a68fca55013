package usecase

import (
	"context"
	"sort"
	"time"

	"go-jobportal-backend/pkg/logger"

	"go.uber.org/zap"
)

// Pinger reports whether a backing service answers.
type Pinger func(ctx context.Context) error

type HealthUsecase interface {
	// Check pings every dependency and reports "ok" or "down" per name plus an
	// overall status. healthy is false when any dependency is down.
	Check(ctx context.Context) (status map[string]string, healthy bool)
}

type healthUsecase struct {
	checks  map[string]Pinger
	timeout time.Duration
}

// NewHealthUsecase takes the dependencies to ping, keyed by display name.
// Nil pingers are skipped.
func NewHealthUsecase(checks map[string]Pinger, timeout time.Duration) HealthUsecase {
	active := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			active[name] = p
		}
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &healthUsecase{checks: active, timeout: timeout}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	names := make([]string, 0, len(u.checks))
	for name := range u.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := map[string]string{"status": "ok"}
	healthy := true
	for _, name := range names {
		if err := u.checks[name](ctx); err != nil {
			logger.Log.Warn("health check failed", zap.String("dependency", name), zap.Error(err))
			status[name] = "down"
			healthy = false
			continue
		}
		status[name] = "ok"
	}
	if !healthy {
		status["status"] = "degraded"
	}
	return status, healthy
}
