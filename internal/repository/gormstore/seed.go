package gormstore

import (
	"context"
	"time"

	"github.com/LARRYDMO/Job-portal-website/internal/domain"
	"github.com/LARRYDMO/Job-portal-website/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeedSampleJobs inserts two ownerless jobs when the jobs table is empty.
func SeedSampleJobs(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.Job{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	jobs := []domain.Job{
		{
			ID:           uuid.NewString(),
			Title:        "Frontend Developer",
			Description:  "Build UI",
			Location:     "Remote",
			EmployerName: "Acme Inc.",
			PostedDate:   now,
		},
		{
			ID:           uuid.NewString(),
			Title:        "Backend Developer",
			Description:  "Build APIs",
			Location:     "New York",
			EmployerName: "Beta LLC",
			PostedDate:   now.Add(-time.Second),
		},
	}
	if err := db.WithContext(ctx).Create(&jobs).Error; err != nil {
		return err
	}
	logger.Log.Info("Seeded sample jobs", "count", len(jobs))
	return nil
}
