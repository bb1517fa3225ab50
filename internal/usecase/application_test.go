package usecase_test

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/LARRYDMO/Job-portal-website/internal/domain"
	"github.com/LARRYDMO/Job-portal-website/internal/usecase"
	"github.com/LARRYDMO/Job-portal-website/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type appFixture struct {
	apps      *MockApplicationRepo
	jobs      *MockJobRepo
	questions *MockQuestionRepo
	answers   *MockAnswerRepo
	storage   *MockStorage
	events    *MockPublisher
	uc        domain.ApplicationUsecase
}

func newAppFixture() *appFixture {
	f := &appFixture{
		apps:      new(MockApplicationRepo),
		jobs:      new(MockJobRepo),
		questions: new(MockQuestionRepo),
		answers:   new(MockAnswerRepo),
		storage:   new(MockStorage),
		events:    new(MockPublisher),
	}
	f.uc = usecase.NewApplicationUsecase(f.apps, f.jobs, f.questions, f.answers, f.storage, f.events, nopSecurityLogger())
	return f
}

var (
	bob      = domain.Identity{ID: "bob-id", Name: "Bob", Role: domain.RoleCandidate}
	acme     = domain.Identity{ID: "acme-id", Name: "Acme", Role: domain.RoleEmployer}
	stranger = domain.Identity{ID: "other-id", Name: "Other", Role: domain.RoleEmployer}
)

func ownedJob() *domain.Job {
	return &domain.Job{ID: "job-1", Title: "Backend Developer", EmployerName: "Acme", EmployerID: strPtr("acme-id")}
}

func resume() *domain.Upload {
	return &domain.Upload{Reader: strings.NewReader("%PDF"), FileName: "cv.pdf", Size: 4}
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("Should fail with job not found before touching storage", func(t *testing.T) {
		f := newAppFixture()
		f.jobs.On("GetByID", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

		_, err := f.uc.Apply(ctx, domain.ApplyInput{JobID: "missing", Resume: resume()}, bob)
		assert.Equal(t, apperror.KindJobNotFound, apperror.KindOf(err))
		f.storage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should require a resume", func(t *testing.T) {
		f := newAppFixture()
		f.jobs.On("GetByID", mock.Anything, "job-1").Return(ownedJob(), nil)

		_, err := f.uc.Apply(ctx, domain.ApplyInput{JobID: "job-1"}, bob)
		assert.Equal(t, apperror.KindResumeRequired, apperror.KindOf(err))

		_, err = f.uc.Apply(ctx, domain.ApplyInput{JobID: "job-1", Resume: &domain.Upload{Reader: strings.NewReader(""), FileName: "empty.pdf"}}, bob)
		assert.Equal(t, apperror.KindResumeRequired, apperror.KindOf(err))
		f.apps.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject a second application", func(t *testing.T) {
		f := newAppFixture()
		f.jobs.On("GetByID", mock.Anything, "job-1").Return(ownedJob(), nil)
		f.apps.On("Exists", mock.Anything, "job-1", "bob-id").Return(true, nil)

		_, err := f.uc.Apply(ctx, domain.ApplyInput{JobID: "job-1", Resume: resume()}, bob)
		assert.Equal(t, apperror.KindDuplicateApplication, apperror.KindOf(err))
		f.storage.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should remove the stored file when the insert loses a race", func(t *testing.T) {
		f := newAppFixture()
		f.jobs.On("GetByID", mock.Anything, "job-1").Return(ownedJob(), nil)
		f.apps.On("Exists", mock.Anything, "job-1", "bob-id").Return(false, nil)
		f.storage.On("Save", mock.Anything, mock.Anything, "cv.pdf").Return(domain.StoredFile{Key: "k_cv.pdf", Size: 4}, nil)
		f.apps.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicate)
		f.storage.On("Delete", mock.Anything, "k_cv.pdf").Return(nil)

		_, err := f.uc.Apply(ctx, domain.ApplyInput{JobID: "job-1", Resume: resume()}, bob)
		assert.Equal(t, apperror.KindDuplicateApplication, apperror.KindOf(err))
		f.storage.AssertCalled(t, "Delete", mock.Anything, "k_cv.pdf")
	})

	t.Run("Should create the application and keep only known answers", func(t *testing.T) {
		f := newAppFixture()
		f.jobs.On("GetByID", mock.Anything, "job-1").Return(ownedJob(), nil)
		f.apps.On("Exists", mock.Anything, "job-1", "bob-id").Return(false, nil)
		f.storage.On("Save", mock.Anything, mock.Anything, "cv.pdf").Return(domain.StoredFile{Key: "k_cv.pdf", Size: 4}, nil)
		f.apps.On("Create", mock.Anything, mock.AnythingOfType("*domain.Application")).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Application).ID = "app-1"
		})
		f.questions.On("ListByJob", mock.Anything, "job-1").Return([]domain.Question{{ID: "q1", JobID: "job-1"}}, nil)
		f.answers.On("CreateBatch", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			answers := args.Get(1).([]domain.Answer)
			require.Len(t, answers, 1)
			assert.Equal(t, "q1", answers[0].QuestionID)
			assert.Equal(t, "app-1", answers[0].ApplicationID)
			assert.Equal(t, "bob-id", answers[0].CandidateID)
		})
		f.events.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.ApplicationEvent) bool {
			return e.Type == domain.EventApplicationSubmitted && e.ApplicationID == "app-1"
		})).Return(nil)

		app, err := f.uc.Apply(ctx, domain.ApplyInput{
			JobID:       "job-1",
			Resume:      resume(),
			AnswersJSON: `[{"questionId":"q1","response":"5 years"},{"questionId":"foreign","response":"x"}]`,
		}, bob)
		require.NoError(t, err)
		assert.Equal(t, "bob-id", app.CandidateID)
		assert.Equal(t, "k_cv.pdf", app.ResumePath)
		assert.Equal(t, domain.StatusApplied, app.Status)
		f.answers.AssertExpectations(t)
		f.events.AssertExpectations(t)
	})

	t.Run("Should ignore malformed answers and publish failures", func(t *testing.T) {
		f := newAppFixture()
		f.jobs.On("GetByID", mock.Anything, "job-1").Return(ownedJob(), nil)
		f.apps.On("Exists", mock.Anything, "job-1", "bob-id").Return(false, nil)
		f.storage.On("Save", mock.Anything, mock.Anything, "cv.pdf").Return(domain.StoredFile{Key: "k_cv.pdf"}, nil)
		f.apps.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.events.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

		app, err := f.uc.Apply(ctx, domain.ApplyInput{JobID: "job-1", Resume: resume(), AnswersJSON: "{not json"}, bob)
		require.NoError(t, err)
		assert.NotNil(t, app)
		f.answers.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	})

	t.Run("Should require an authenticated caller", func(t *testing.T) {
		f := newAppFixture()
		_, err := f.uc.Apply(ctx, domain.ApplyInput{JobID: "job-1", Resume: resume()}, domain.Identity{})
		assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
	})
}

func TestListForJobOwnership(t *testing.T) {
	ctx := context.Background()
	views := []domain.ApplicationView{{ID: "app-1", CandidateName: "Bob", Status: domain.StatusApplied}}

	t.Run("Should allow the owner by id", func(t *testing.T) {
		f := newAppFixture()
		f.jobs.On("GetByID", mock.Anything, "job-1").Return(ownedJob(), nil)
		f.apps.On("ListForJob", mock.Anything, "job-1").Return(views, nil)

		got, err := f.uc.ListForJob(ctx, "job-1", acme)
		require.NoError(t, err)
		assert.Equal(t, views, got)
	})

	t.Run("Should allow a legacy owner by name", func(t *testing.T) {
		f := newAppFixture()
		f.jobs.On("GetByID", mock.Anything, "job-2").Return(&domain.Job{ID: "job-2", EmployerName: "Acme"}, nil)
		f.apps.On("ListForJob", mock.Anything, "job-2").Return(views, nil)

		_, err := f.uc.ListForJob(ctx, "job-2", domain.Identity{ID: "any-id", Name: "Acme"})
		assert.NoError(t, err)
	})

	t.Run("Should forbid everyone else", func(t *testing.T) {
		f := newAppFixture()
		f.jobs.On("GetByID", mock.Anything, "job-1").Return(ownedJob(), nil)

		_, err := f.uc.ListForJob(ctx, "job-1", stranger)
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

		// Same display name does not help once the job has an owner id
		_, err = f.uc.ListForJob(ctx, "job-1", domain.Identity{ID: "impostor", Name: "Acme"})
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	})

	t.Run("Should report a missing job", func(t *testing.T) {
		f := newAppFixture()
		f.jobs.On("GetByID", mock.Anything, "nope").Return(nil, domain.ErrNotFound)
		_, err := f.uc.ListForJob(ctx, "nope", acme)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	setup := func() *appFixture {
		f := newAppFixture()
		f.apps.On("GetByID", mock.Anything, "app-1").Return(&domain.Application{ID: "app-1", JobID: "job-1", CandidateID: "bob-id", Status: domain.StatusApplied}, nil)
		f.jobs.On("GetByID", mock.Anything, "job-1").Return(ownedJob(), nil)
		f.apps.On("UpdateStatus", mock.Anything, "app-1", mock.Anything).Return(nil)
		f.events.On("Publish", mock.Anything, mock.Anything).Return(nil)
		return f
	}

	t.Run("Should accept every case variant", func(t *testing.T) {
		for _, in := range []string{"accepted", "ACCEPTED", "Accepted", " aCcEpTeD "} {
			f := setup()
			status, err := f.uc.UpdateStatus(ctx, "app-1", in, acme)
			require.NoError(t, err, in)
			assert.Equal(t, domain.StatusAccepted, status)
			f.apps.AssertCalled(t, "UpdateStatus", mock.Anything, "app-1", domain.StatusAccepted)
		}
	})

	t.Run("Should reject unknown statuses", func(t *testing.T) {
		for _, in := range []string{"", "Hired", "3", "in review"} {
			f := setup()
			_, err := f.uc.UpdateStatus(ctx, "app-1", in, acme)
			assert.Equal(t, apperror.KindInvalidStatus, apperror.KindOf(err), in)
			f.apps.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("Should check ownership before the status value", func(t *testing.T) {
		f := setup()
		_, err := f.uc.UpdateStatus(ctx, "app-1", "bogus", stranger)
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	})

	t.Run("Should not publish when the status is unchanged", func(t *testing.T) {
		f := setup()
		status, err := f.uc.UpdateStatus(ctx, "app-1", "applied", acme)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusApplied, status)
		f.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("Should report a missing application", func(t *testing.T) {
		f := newAppFixture()
		f.apps.On("GetByID", mock.Anything, "nope").Return(nil, domain.ErrNotFound)
		_, err := f.uc.UpdateStatus(ctx, "nope", "Accepted", acme)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

func TestExportForJob(t *testing.T) {
	ctx := context.Background()
	applied := time.Date(2025, 10, 8, 14, 30, 0, 0, time.UTC)
	views := []domain.ApplicationView{{ID: "app-1", CandidateName: "Bob, Jr.", CandidateEmail: "bob@example.com", AppliedDate: applied, Status: domain.StatusInterview, ResumePath: "k_cv.pdf"}}

	t.Run("Should render csv", func(t *testing.T) {
		f := newAppFixture()
		f.jobs.On("GetByID", mock.Anything, "job-1").Return(ownedJob(), nil)
		f.apps.On("ListForJob", mock.Anything, "job-1").Return(views, nil)

		file, err := f.uc.ExportForJob(ctx, "job-1", "csv", acme)
		require.NoError(t, err)
		assert.Equal(t, "text/csv", file.ContentType)
		assert.True(t, strings.HasSuffix(file.Name, ".csv"))

		records, err := csv.NewReader(strings.NewReader(string(file.Data))).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, []string{"Bob, Jr.", "bob@example.com", "2025-10-08 14:30", "Interview", "k_cv.pdf"}, records[1])
	})

	t.Run("Should render xlsx by default", func(t *testing.T) {
		f := newAppFixture()
		f.jobs.On("GetByID", mock.Anything, "job-1").Return(ownedJob(), nil)
		f.apps.On("ListForJob", mock.Anything, "job-1").Return(views, nil)

		file, err := f.uc.ExportForJob(ctx, "job-1", "", acme)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(file.Name, ".xlsx"))
		// xlsx is a zip archive
		assert.Equal(t, "PK", string(file.Data[:2]))
	})

	t.Run("Should reject unknown formats and strangers", func(t *testing.T) {
		f := newAppFixture()
		_, err := f.uc.ExportForJob(ctx, "job-1", "pdf", acme)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

		f.jobs.On("GetByID", mock.Anything, "job-1").Return(ownedJob(), nil)
		_, err = f.uc.ExportForJob(ctx, "job-1", "csv", stranger)
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	})
}
