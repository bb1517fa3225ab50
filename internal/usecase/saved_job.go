package usecase

import (
	"context"
	"errors"

	"github.com/LARRYDMO/Job-portal-website/internal/domain"
	"github.com/LARRYDMO/Job-portal-website/pkg/apperror"
)

type savedJobUsecase struct {
	savedRepo domain.SavedJobRepository
	jobRepo   domain.JobRepository
}

func NewSavedJobUsecase(savedRepo domain.SavedJobRepository, jobRepo domain.JobRepository) domain.SavedJobUsecase {
	return &savedJobUsecase{savedRepo: savedRepo, jobRepo: jobRepo}
}

// Toggle removes an existing bookmark or creates one. It reports whether the
// job is saved afterwards.
func (u *savedJobUsecase) Toggle(ctx context.Context, jobID string, caller domain.Identity) (bool, error) {
	if !caller.IsAuthenticated() {
		return false, apperror.Unauthorized("User not authenticated")
	}

	existing, err := u.savedRepo.Find(ctx, caller.ID, jobID)
	switch {
	case err == nil:
		if err := u.savedRepo.Delete(ctx, existing.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return false, apperror.Internal(err)
		}
		return false, nil
	case !errors.Is(err, domain.ErrNotFound):
		return false, apperror.Internal(err)
	}

	if _, err := u.jobRepo.GetByID(ctx, jobID); err != nil {
		return false, jobLookupError(err)
	}
	if err := u.savedRepo.Create(ctx, &domain.SavedJob{UserID: caller.ID, JobID: jobID}); err != nil {
		// a concurrent toggle already saved it
		if errors.Is(err, domain.ErrDuplicate) {
			return true, nil
		}
		return false, apperror.Internal(err)
	}
	return true, nil
}

func (u *savedJobUsecase) IsSaved(ctx context.Context, jobID string, caller domain.Identity) (bool, error) {
	if !caller.IsAuthenticated() {
		return false, nil
	}
	_, err := u.savedRepo.Find(ctx, caller.ID, jobID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	return false, apperror.Internal(err)
}

func (u *savedJobUsecase) ListMine(ctx context.Context, caller domain.Identity) ([]domain.SavedJobView, error) {
	if !caller.IsAuthenticated() {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	views, err := u.savedRepo.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return views, nil
}
