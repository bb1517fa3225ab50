package usecase

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/LARRYDMO/Job-portal-website/internal/domain"
	"github.com/LARRYDMO/Job-portal-website/pkg/apperror"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxOffset bounds (page-1)*pageSize; pages beyond it are simply empty.
	MaxOffset = math.MaxInt32
)

type jobUsecase struct {
	jobRepo domain.JobRepository
}

func NewJobUsecase(jobRepo domain.JobRepository) domain.JobUsecase {
	return &jobUsecase{jobRepo: jobRepo}
}

// ClampPage normalises pagination input: pageSize in [1, MaxPageSize] and
// page in [1, MaxOffset/pageSize+1].
func ClampPage(page, pageSize int) (int, int) {
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page < 1 {
		page = 1
	}
	if maxPage := MaxOffset/pageSize + 1; page > maxPage {
		page = maxPage
	}
	return page, pageSize
}

func (u *jobUsecase) List(ctx context.Context, filter domain.JobFilter, page, pageSize int) (*domain.JobPage, error) {
	page, pageSize = ClampPage(page, pageSize)
	offset := (page - 1) * pageSize

	items, total, err := u.jobRepo.List(ctx, filter, pageSize, offset)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.JobPage{Total: total, Page: page, PageSize: pageSize, Data: items}, nil
}

func (u *jobUsecase) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, jobLookupError(err)
	}
	return job, nil
}

func (u *jobUsecase) Create(ctx context.Context, input domain.JobInput, caller domain.Identity) (*domain.Job, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperror.BadRequest("Title is required")
	}

	job := &domain.Job{PostedDate: time.Now().UTC()}
	input.Apply(job)
	if caller.IsAuthenticated() {
		id := caller.ID
		job.EmployerID = &id
		if strings.TrimSpace(job.EmployerName) == "" {
			job.EmployerName = caller.Name
		}
	}

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}
	return job, nil
}

// Update replaces the editable fields. Any authenticated caller may edit.
func (u *jobUsecase) Update(ctx context.Context, id string, input domain.JobInput, _ domain.Identity) (*domain.Job, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperror.BadRequest("Title is required")
	}
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, jobLookupError(err)
	}

	input.Apply(job)
	if err := u.jobRepo.Update(ctx, job); err != nil {
		return nil, jobLookupError(err)
	}
	return job, nil
}

func (u *jobUsecase) Delete(ctx context.Context, id string, _ domain.Identity) error {
	if err := u.jobRepo.Delete(ctx, id); err != nil {
		return jobLookupError(err)
	}
	return nil
}

func (u *jobUsecase) ListMine(ctx context.Context, caller domain.Identity) ([]domain.JobListItem, error) {
	if !caller.IsAuthenticated() {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	items, err := u.jobRepo.ListOwnedBy(ctx, caller)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return items, nil
}

func jobLookupError(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound("Job not found")
	}
	return apperror.Internal(err)
}
