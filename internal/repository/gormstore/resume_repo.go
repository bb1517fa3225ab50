package gormstore

import (
	"context"
	"time"

	"github.com/LARRYDMO/Job-portal-website/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type resumeRepo struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) domain.ResumeRepository {
	return &resumeRepo{db: db}
}

func (r *resumeRepo) Create(ctx context.Context, resume *domain.Resume) error {
	if resume.ID == "" {
		resume.ID = uuid.NewString()
	}
	if resume.UploadedAt.IsZero() {
		resume.UploadedAt = time.Now().UTC()
	}
	return translateError(r.db.WithContext(ctx).Create(resume).Error)
}

func (r *resumeRepo) ListByUser(ctx context.Context, userID string) ([]domain.Resume, error) {
	resumes := []domain.Resume{}
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("uploaded_at DESC").Find(&resumes).Error
	return resumes, err
}
