package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/LARRYDMO/Job-portal-website/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("dial tcp: connection refused") }

	t.Run("Should report ok when every dependency answers", func(t *testing.T) {
		report := usecase.NewHealthUsecase(usecase.HealthCheck{Name: "database", Check: ok}).Check(context.Background())
		assert.Equal(t, "ok", report.Status)
		assert.Equal(t, map[string]string{"database": "ok"}, report.Checks)
	})

	t.Run("Should report degraded without leaking the error", func(t *testing.T) {
		report := usecase.NewHealthUsecase(
			usecase.HealthCheck{Name: "database", Check: ok},
			usecase.HealthCheck{Name: "redis", Check: down},
		).Check(context.Background())
		assert.Equal(t, "degraded", report.Status)
		assert.Equal(t, "unavailable", report.Checks["redis"])
		assert.Equal(t, "ok", report.Checks["database"])
	})
}
