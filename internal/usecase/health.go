package usecase

import (
	"context"
	"sort"
	"time"
)

// HealthCheck pings one dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthReport struct {
	Status string            `json:"status"` // ok | degraded
	Checks map[string]string `json:"checks"`
}

type HealthUsecase interface {
	Check(ctx context.Context) HealthReport
}

type healthUsecase struct {
	checks  []HealthCheck
	timeout time.Duration
}

func NewHealthUsecase(checks ...HealthCheck) HealthUsecase {
	sorted := append([]HealthCheck(nil), checks...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return &healthUsecase{checks: sorted, timeout: 2 * time.Second}
}

func (u *healthUsecase) Check(ctx context.Context) HealthReport {
	report := HealthReport{Status: "ok", Checks: make(map[string]string, len(u.checks))}
	for _, hc := range u.checks {
		checkCtx, cancel := context.WithTimeout(ctx, u.timeout)
		err := hc.Check(checkCtx)
		cancel()
		if err != nil {
			report.Status = "degraded"
			report.Checks[hc.Name] = "unavailable"
			continue
		}
		report.Checks[hc.Name] = "ok"
	}
	return report
}
