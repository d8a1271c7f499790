package usecase

import (
	"context"
	"time"
)

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}

// HealthCheck pings one dependency
type HealthCheck func(ctx context.Context) error

type healthUsecase struct {
	checks map[string]HealthCheck
}

func NewHealthUsecase(checks map[string]HealthCheck) HealthUsecase {
	return &healthUsecase{checks: checks}
}

// Check reports "ok" or "down" per dependency. The bool is false when any required
// dependency ("database") is down; other dependencies only degrade the status.
func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := map[string]string{"status": "ok"}
	healthy := true
	for name, check := range u.checks {
		if err := check(ctx); err != nil {
			status[name] = "down"
			if name == "database" {
				healthy = false
				status["status"] = "unavailable"
			} else if healthy {
				status["status"] = "degraded"
			}
			continue
		}
		status[name] = "ok"
	}
	return status, healthy
}
