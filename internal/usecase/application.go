package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/LARRYDMO/Job-portal-website/internal/domain"
	"github.com/LARRYDMO/Job-portal-website/pkg/apperror"
	"github.com/LARRYDMO/Job-portal-website/pkg/logger"
	"github.com/LARRYDMO/Job-portal-website/pkg/security"
)

type applicationUsecase struct {
	appRepo      domain.ApplicationRepository
	jobRepo      domain.JobRepository
	questionRepo domain.QuestionRepository
	answerRepo   domain.AnswerRepository
	storage      domain.FileStorage
	events       domain.EventPublisher
	secLogger    *security.SecurityLogger
	now          func() time.Time
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	questionRepo domain.QuestionRepository,
	answerRepo domain.AnswerRepository,
	storage domain.FileStorage,
	events domain.EventPublisher,
	secLogger *security.SecurityLogger,
) domain.ApplicationUsecase {
	if secLogger == nil {
		secLogger = security.DefaultLogger()
	}
	return &applicationUsecase{
		appRepo:      appRepo,
		jobRepo:      jobRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		storage:      storage,
		events:       events,
		secLogger:    secLogger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Apply submits the caller's application to a job. The candidate is always
// the authenticated caller.
func (u *applicationUsecase) Apply(ctx context.Context, input domain.ApplyInput, caller domain.Identity) (*domain.Application, error) {
	if !caller.IsAuthenticated() {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	job, err := u.jobRepo.GetByID(ctx, input.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.JobNotFound()
		}
		return nil, apperror.Internal(err)
	}
	if input.Resume.IsEmpty() {
		return nil, apperror.ResumeRequired()
	}

	exists, err := u.appRepo.Exists(ctx, job.ID, caller.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.DuplicateApplication()
	}

	stored, err := u.storage.Save(ctx, input.Resume.Reader, input.Resume.FileName)
	if err != nil {
		if errors.Is(err, domain.ErrFileTooLarge) {
			return nil, apperror.BadRequest("Resume file is too large")
		}
		return nil, apperror.Internal(err)
	}

	app := &domain.Application{
		JobID:       job.ID,
		CandidateID: caller.ID,
		ResumePath:  stored.Key,
		AppliedAt:   u.now(),
		Status:      domain.StatusApplied,
	}
	if err := u.appRepo.Create(ctx, app); err != nil {
		u.discard(ctx, stored.Key)
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.DuplicateApplication()
		}
		return nil, apperror.Internal(err)
	}

	u.saveAnswers(ctx, app, input.AnswersJSON)
	u.publish(ctx, domain.EventApplicationSubmitted, app)
	return app, nil
}

// saveAnswers stores the optional answers. Failures are logged and ignored;
// the application itself has already been recorded.
func (u *applicationUsecase) saveAnswers(ctx context.Context, app *domain.Application, raw string) {
	if strings.TrimSpace(raw) == "" {
		return
	}

	var submissions []domain.AnswerSubmission
	if err := json.Unmarshal([]byte(raw), &submissions); err != nil {
		logger.Log.Warn("Ignoring malformed answers", "application_id", app.ID, "error", err)
		return
	}
	if len(submissions) == 0 {
		return
	}

	questions, err := u.questionRepo.ListByJob(ctx, app.JobID)
	if err != nil {
		logger.Log.Warn("Failed to load questions for answers", "application_id", app.ID, "error", err)
		return
	}
	known := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		known[q.ID] = struct{}{}
	}

	answers := make([]domain.Answer, 0, len(submissions))
	for _, s := range submissions {
		if _, ok := known[s.QuestionID]; !ok {
			continue
		}
		answers = append(answers, domain.Answer{
			ApplicationID: app.ID,
			QuestionID:    s.QuestionID,
			CandidateID:   app.CandidateID,
			Response:      s.Response,
		})
	}
	if err := u.answerRepo.CreateBatch(ctx, answers); err != nil {
		logger.Log.Warn("Failed to save answers", "application_id", app.ID, "error", err)
	}
}

func (u *applicationUsecase) discard(ctx context.Context, key string) {
	if err := u.storage.Delete(context.WithoutCancel(ctx), key); err != nil {
		logger.Log.Error("Failed to remove orphaned upload", "key", key, "error", err)
	}
}

func (u *applicationUsecase) publish(ctx context.Context, eventType domain.EventType, app *domain.Application) {
	if u.events == nil {
		return
	}
	event := domain.ApplicationEvent{
		Type:          eventType,
		ApplicationID: app.ID,
		JobID:         app.JobID,
		CandidateID:   app.CandidateID,
		Status:        app.Status,
		OccurredAt:    u.now(),
	}
	if err := u.events.Publish(ctx, event); err != nil {
		logger.Log.Warn("Failed to publish application event", "type", eventType, "application_id", app.ID, "error", err)
	}
}

// ownedJob loads a job and checks the caller owns it.
func (u *applicationUsecase) ownedJob(ctx context.Context, jobID string, caller domain.Identity) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, jobLookupError(err)
	}
	if !domain.IsOwner(job, caller) {
		return nil, apperror.Forbidden("Only the job owner can access its applications")
	}
	return job, nil
}

func (u *applicationUsecase) ListForJob(ctx context.Context, jobID string, caller domain.Identity) ([]domain.ApplicationView, error) {
	if _, err := u.ownedJob(ctx, jobID, caller); err != nil {
		return nil, err
	}
	views, err := u.appRepo.ListForJob(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return views, nil
}

func (u *applicationUsecase) ListMine(ctx context.Context, caller domain.Identity) ([]domain.ApplicationView, error) {
	if !caller.IsAuthenticated() {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	views, err := u.appRepo.ListForCandidate(ctx, caller.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return views, nil
}

func (u *applicationUsecase) HasApplied(ctx context.Context, jobID string, caller domain.Identity) (bool, error) {
	if !caller.IsAuthenticated() {
		return false, nil
	}
	exists, err := u.appRepo.Exists(ctx, jobID, caller.ID)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return exists, nil
}

// ownedApplication loads an application whose job the caller owns.
func (u *applicationUsecase) ownedApplication(ctx context.Context, applicationID string, caller domain.Identity) (*domain.Application, error) {
	app, err := u.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}
	if _, err := u.ownedJob(ctx, app.JobID, caller); err != nil {
		return nil, err
	}
	return app, nil
}

// UpdateStatus sets any recognised status. Repeating the same value is a no-op.
func (u *applicationUsecase) UpdateStatus(ctx context.Context, applicationID, status string, caller domain.Identity) (domain.ApplicationStatus, error) {
	app, err := u.ownedApplication(ctx, applicationID, caller)
	if err != nil {
		return "", err
	}

	parsed, ok := domain.ParseApplicationStatus(status)
	if !ok {
		return "", apperror.InvalidStatus()
	}

	if err := u.appRepo.UpdateStatus(ctx, app.ID, parsed); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", apperror.NotFound("Application not found")
		}
		return "", apperror.Internal(err)
	}

	if app.Status != parsed {
		app.Status = parsed
		u.publish(ctx, domain.EventApplicationStatusChanged, app)
	}
	return parsed, nil
}

func (u *applicationUsecase) ListAnswers(ctx context.Context, applicationID string, caller domain.Identity) ([]domain.AnswerView, error) {
	app, err := u.ownedApplication(ctx, applicationID, caller)
	if err != nil {
		return nil, err
	}
	answers, err := u.answerRepo.ListByApplication(ctx, app.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return answers, nil
}
