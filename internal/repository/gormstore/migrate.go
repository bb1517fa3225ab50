package gormstore

import (
	"fmt"

	"github.com/LARRYDMO/Job-portal-website/internal/domain"

	"gorm.io/gorm"
)

// Migrate creates or updates every table, including the unique indexes on
// users(email), applications(job_id, candidate_id) and saved_jobs(user_id, job_id).
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.User{},
		&domain.Job{},
		&domain.Application{},
		&domain.Question{},
		&domain.Answer{},
		&domain.Resume{},
		&domain.SavedJob{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}
