package usecase

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/LARRYDMO/Job-portal-website/internal/domain"
	"github.com/LARRYDMO/Job-portal-website/pkg/apperror"
	"github.com/LARRYDMO/Job-portal-website/pkg/logger"

	"gopkg.in/yaml.v3"
)

//go:embed common_questions.yaml
var commonQuestionsYAML []byte

// LoadCommonQuestions parses the built-in question catalog.
func LoadCommonQuestions() ([]domain.QuestionTemplate, error) {
	var templates []domain.QuestionTemplate
	if err := yaml.Unmarshal(commonQuestionsYAML, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse common questions: %w", err)
	}
	for i := range templates {
		qt, ok := domain.ParseQuestionType(string(templates[i].Type))
		if !ok {
			return nil, fmt.Errorf("common question %d: unknown type %q", i, templates[i].Type)
		}
		templates[i].Type = qt
	}
	return templates, nil
}

type questionUsecase struct {
	questionRepo domain.QuestionRepository
	jobRepo      domain.JobRepository
	catalog      []domain.QuestionTemplate
}

func NewQuestionUsecase(questionRepo domain.QuestionRepository, jobRepo domain.JobRepository) (domain.QuestionUsecase, error) {
	catalog, err := LoadCommonQuestions()
	if err != nil {
		return nil, err
	}
	return &questionUsecase{
		questionRepo: questionRepo,
		jobRepo:      jobRepo,
		catalog:      catalog,
	}, nil
}

// CreateForJob adds a question to a job. The first authenticated caller to
// add a question to an ownerless job becomes its owner.
func (u *questionUsecase) CreateForJob(ctx context.Context, jobID string, input domain.QuestionInput, caller domain.Identity) (*domain.Question, error) {
	if !caller.IsAuthenticated() {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, jobLookupError(err)
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, apperror.BadRequest("Question text is required")
	}
	qType, ok := domain.ParseQuestionType(input.Type)
	if !ok {
		return nil, apperror.BadRequest("Question type must be text or mcq")
	}
	q := &domain.Question{JobID: job.ID, Text: text, Type: qType}
	if qType == domain.QuestionMCQ {
		q.Options = input.Options
		if len(q.OptionList()) == 0 {
			return nil, apperror.BadRequest("Multiple choice questions need options")
		}
	} else if input.Options != nil && strings.TrimSpace(*input.Options) != "" {
		q.Options = input.Options
	}

	if err := u.authorize(ctx, job, caller); err != nil {
		return nil, err
	}

	if err := u.questionRepo.Create(ctx, q); err != nil {
		return nil, apperror.Internal(err)
	}
	logger.Log.Info("Question created", "question_id", q.ID, "job_id", job.ID, "user_id", caller.ID)
	return q, nil
}

// authorize claims an ownerless job for caller or checks ownership.
func (u *questionUsecase) authorize(ctx context.Context, job *domain.Job, caller domain.Identity) error {
	if job.EmployerID == nil || *job.EmployerID == "" {
		claimed, err := u.jobRepo.ClaimOwnership(ctx, job.ID, caller.ID, caller.Name)
		if err != nil {
			return apperror.Internal(err)
		}
		if claimed {
			logger.Log.Info("Job claimed by first question author", "job_id", job.ID, "user_id", caller.ID)
			return nil
		}
		// Lost the race; judge against the winner
		job, err = u.jobRepo.GetByID(ctx, job.ID)
		if err != nil {
			return jobLookupError(err)
		}
	}
	if !domain.IsOwner(job, caller) {
		logger.Log.Warn("Question rejected for non-owner", "job_id", job.ID, "user_id", caller.ID)
		return apperror.Forbidden("Only the job owner can add questions")
	}
	return nil
}

func (u *questionUsecase) ListForJob(ctx context.Context, jobID string) ([]domain.Question, error) {
	questions, err := u.questionRepo.ListByJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.Question{}, nil
		}
		return nil, apperror.Internal(err)
	}
	return questions, nil
}

// CommonQuestions returns a copy of the catalog.
func (u *questionUsecase) CommonQuestions() []domain.QuestionTemplate {
	out := make([]domain.QuestionTemplate, len(u.catalog))
	copy(out, u.catalog)
	return out
}
