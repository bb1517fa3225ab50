package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/LARRYDMO/Job-portal-website/internal/domain"
	"github.com/LARRYDMO/Job-portal-website/pkg/apperror"
	"github.com/LARRYDMO/Job-portal-website/pkg/logger"
)

type resumeUsecase struct {
	resumeRepo domain.ResumeRepository
	storage    domain.FileStorage
}

func NewResumeUsecase(resumeRepo domain.ResumeRepository, storage domain.FileStorage) domain.ResumeUsecase {
	return &resumeUsecase{resumeRepo: resumeRepo, storage: storage}
}

func (u *resumeUsecase) Upload(ctx context.Context, file *domain.Upload, caller domain.Identity) (*domain.Resume, error) {
	if !caller.IsAuthenticated() {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if file.IsEmpty() {
		return nil, apperror.BadRequest("File required")
	}

	stored, err := u.storage.Save(ctx, file.Reader, file.FileName)
	if err != nil {
		if errors.Is(err, domain.ErrFileTooLarge) {
			return nil, apperror.BadRequest("File is too large")
		}
		return nil, apperror.Internal(err)
	}

	resume := &domain.Resume{
		UserID:     caller.ID,
		FileName:   file.FileName,
		FilePath:   stored.Key,
		UploadedAt: time.Now().UTC(),
	}
	if err := u.resumeRepo.Create(ctx, resume); err != nil {
		if delErr := u.storage.Delete(context.WithoutCancel(ctx), stored.Key); delErr != nil {
			logger.Log.Error("Failed to remove orphaned upload", "key", stored.Key, "error", delErr)
		}
		return nil, apperror.Internal(err)
	}
	return resume, nil
}

func (u *resumeUsecase) ListMine(ctx context.Context, caller domain.Identity) ([]domain.Resume, error) {
	if !caller.IsAuthenticated() {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	resumes, err := u.resumeRepo.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return resumes, nil
}
