package domain

import (
	"context"
	"time"
)

type SavedJob struct {
	ID      string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID  string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_saved_jobs_user_job" json:"userId"`
	JobID   string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_saved_jobs_user_job;index" json:"jobId"`
	SavedAt time.Time `json:"savedAt"`
}

type SavedJobView struct {
	ID      string    `json:"id"`
	Job     Job       `json:"job"`
	SavedAt time.Time `json:"savedAt"`
}

type SavedJobRepository interface {
	Find(ctx context.Context, userID, jobID string) (*SavedJob, error)
	Create(ctx context.Context, s *SavedJob) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]SavedJobView, error)
}

type SavedJobUsecase interface {
	Toggle(ctx context.Context, jobID string, caller Identity) (bool, error)
	IsSaved(ctx context.Context, jobID string, caller Identity) (bool, error)
	ListMine(ctx context.Context, caller Identity) ([]SavedJobView, error)
}
