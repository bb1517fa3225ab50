package gormstore

import (
	"context"
	"time"

	"github.com/LARRYDMO/Job-portal-website/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type applicationRepo struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *gorm.DB) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts a new application. A second application for the same
// (job, candidate) pair yields domain.ErrDuplicate.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.AppliedAt.IsZero() {
		app.AppliedAt = time.Now().UTC()
	}
	if app.Status == "" {
		app.Status = domain.StatusApplied
	}
	return translateError(r.db.WithContext(ctx).Create(app).Error)
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	var app domain.Application
	if err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &app, nil
}

func (r *applicationRepo) Exists(ctx context.Context, jobID, candidateID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Application{}).
		Where("job_id = ? AND candidate_id = ?", jobID, candidateID).
		Count(&count).Error
	return count > 0, err
}

// ListForJob returns the applicants of a job with candidate name and email
func (r *applicationRepo) ListForJob(ctx context.Context, jobID string) ([]domain.ApplicationView, error) {
	views := []domain.ApplicationView{}
	err := r.db.WithContext(ctx).
		Table("applications AS a").
		Select(`a.id, a.job_id, a.candidate_id,
			COALESCE(u.name, '') AS candidate_name,
			COALESCE(u.email, '') AS candidate_email,
			a.applied_at AS applied_date, a.status, a.resume_path`).
		Joins("LEFT JOIN users u ON u.id = a.candidate_id").
		Where("a.job_id = ?", jobID).
		Order("a.applied_at DESC").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

// ListForCandidate returns a candidate's applications with job details
func (r *applicationRepo) ListForCandidate(ctx context.Context, candidateID string) ([]domain.ApplicationView, error) {
	views := []domain.ApplicationView{}
	err := r.db.WithContext(ctx).
		Table("applications AS a").
		Select(`a.id, a.job_id, a.candidate_id,
			COALESCE(j.title, '') AS job_title,
			COALESCE(j.location, '') AS job_location,
			COALESCE(j.employer_name, '') AS employer_name,
			a.applied_at AS applied_date, a.status, a.resume_path`).
		Joins("LEFT JOIN jobs j ON j.id = a.job_id").
		Where("a.candidate_id = ?", candidateID).
		Order("a.applied_at DESC").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.Application{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
