package usecase_test

import (
	"context"
	"testing"

	"github.com/LARRYDMO/Job-portal-website/internal/domain"
	"github.com/LARRYDMO/Job-portal-website/internal/usecase"
	"github.com/LARRYDMO/Job-portal-website/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newQuestionUsecase(t *testing.T) (domain.QuestionUsecase, *MockQuestionRepo, *MockJobRepo) {
	t.Helper()
	questions := new(MockQuestionRepo)
	jobs := new(MockJobRepo)
	uc, err := usecase.NewQuestionUsecase(questions, jobs)
	require.NoError(t, err)
	return uc, questions, jobs
}

func TestCommonQuestions(t *testing.T) {
	uc, _, _ := newQuestionUsecase(t)

	catalog := uc.CommonQuestions()
	require.Len(t, catalog, 15)
	assert.Equal(t, "Describe your relevant experience.", catalog[0].Text)
	assert.Equal(t, domain.QuestionText, catalog[0].Type)
	assert.Nil(t, catalog[0].Options)

	last := catalog[14]
	assert.Equal(t, domain.QuestionMCQ, last.Type)
	require.NotNil(t, last.Options)
	assert.Equal(t, "Immediately,2 weeks,1 month,More than 1 month", *last.Options)

	// callers get a copy
	catalog[0].Text = "changed"
	assert.Equal(t, "Describe your relevant experience.", uc.CommonQuestions()[0].Text)
}

func TestCreateQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("Should let the owner add a question with default type", func(t *testing.T) {
		uc, questions, jobs := newQuestionUsecase(t)
		jobs.On("GetByID", mock.Anything, "job-1").Return(ownedJob(), nil)
		questions.On("Create", mock.Anything, mock.AnythingOfType("*domain.Question")).Return(nil)

		q, err := uc.CreateForJob(ctx, "job-1", domain.QuestionInput{Text: "Why us?"}, acme)
		require.NoError(t, err)
		assert.Equal(t, domain.QuestionText, q.Type)
		assert.Equal(t, "job-1", q.JobID)
		jobs.AssertNotCalled(t, "ClaimOwnership", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should claim an ownerless job for the first author", func(t *testing.T) {
		uc, questions, jobs := newQuestionUsecase(t)
		jobs.On("GetByID", mock.Anything, "seed").Return(&domain.Job{ID: "seed", EmployerName: "Beta LLC"}, nil)
		jobs.On("ClaimOwnership", mock.Anything, "seed", "acme-id", "Acme").Return(true, nil)
		questions.On("Create", mock.Anything, mock.Anything).Return(nil)

		_, err := uc.CreateForJob(ctx, "seed", domain.QuestionInput{Text: "Relocate?", Type: "mcq", Options: strPtr("Yes,No")}, acme)
		require.NoError(t, err)
		jobs.AssertExpectations(t)
	})

	t.Run("Should re-check ownership after losing the claim", func(t *testing.T) {
		uc, _, jobs := newQuestionUsecase(t)
		jobs.On("GetByID", mock.Anything, "seed").Return(&domain.Job{ID: "seed"}, nil).Once()
		jobs.On("ClaimOwnership", mock.Anything, "seed", "other-id", "Other").Return(false, nil)
		jobs.On("GetByID", mock.Anything, "seed").Return(&domain.Job{ID: "seed", EmployerID: strPtr("acme-id"), EmployerName: "Acme"}, nil).Once()

		_, err := uc.CreateForJob(ctx, "seed", domain.QuestionInput{Text: "Why?"}, stranger)
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	})

	t.Run("Should forbid non-owners", func(t *testing.T) {
		uc, questions, jobs := newQuestionUsecase(t)
		jobs.On("GetByID", mock.Anything, "job-1").Return(ownedJob(), nil)

		_, err := uc.CreateForJob(ctx, "job-1", domain.QuestionInput{Text: "Why?"}, stranger)
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
		questions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should validate type and options", func(t *testing.T) {
		uc, _, jobs := newQuestionUsecase(t)
		jobs.On("GetByID", mock.Anything, "job-1").Return(ownedJob(), nil)

		_, err := uc.CreateForJob(ctx, "job-1", domain.QuestionInput{Text: "Pick", Type: "mcq"}, acme)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

		_, err = uc.CreateForJob(ctx, "job-1", domain.QuestionInput{Text: "Essay", Type: "essay"}, acme)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

		_, err = uc.CreateForJob(ctx, "job-1", domain.QuestionInput{Text: "  "}, acme)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("Should report a missing job", func(t *testing.T) {
		uc, _, jobs := newQuestionUsecase(t)
		jobs.On("GetByID", mock.Anything, "nope").Return(nil, domain.ErrNotFound)

		_, err := uc.CreateForJob(ctx, "nope", domain.QuestionInput{Text: "Why?"}, acme)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}
