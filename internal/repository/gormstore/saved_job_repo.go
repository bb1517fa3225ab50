package gormstore

import (
	"context"
	"time"

	"github.com/LARRYDMO/Job-portal-website/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type savedJobRepo struct {
	db *gorm.DB
}

func NewSavedJobRepository(db *gorm.DB) domain.SavedJobRepository {
	return &savedJobRepo{db: db}
}

func (r *savedJobRepo) Find(ctx context.Context, userID, jobID string) (*domain.SavedJob, error) {
	var saved domain.SavedJob
	err := r.db.WithContext(ctx).Where("user_id = ? AND job_id = ?", userID, jobID).First(&saved).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &saved, nil
}

func (r *savedJobRepo) Create(ctx context.Context, s *domain.SavedJob) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.SavedAt.IsZero() {
		s.SavedAt = time.Now().UTC()
	}
	return translateError(r.db.WithContext(ctx).Create(s).Error)
}

func (r *savedJobRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.SavedJob{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByUser returns saved jobs newest first. Rows whose job is gone are skipped.
func (r *savedJobRepo) ListByUser(ctx context.Context, userID string) ([]domain.SavedJobView, error) {
	var rows []domain.SavedJob
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("saved_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]domain.SavedJobView, 0, len(rows))
	if len(rows) == 0 {
		return views, nil
	}

	jobIDs := make([]string, 0, len(rows))
	for _, s := range rows {
		jobIDs = append(jobIDs, s.JobID)
	}
	var jobs []domain.Job
	if err := r.db.WithContext(ctx).Where("id IN ?", jobIDs).Find(&jobs).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Job, len(jobs))
	for _, j := range jobs {
		byID[j.ID] = j
	}

	for _, s := range rows {
		job, ok := byID[s.JobID]
		if !ok {
			continue
		}
		views = append(views, domain.SavedJobView{ID: s.ID, Job: job, SavedAt: s.SavedAt})
	}
	return views, nil
}
