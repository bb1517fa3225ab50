package gormstore

import (
	"context"

	"github.com/LARRYDMO/Job-portal-website/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type questionRepo struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) domain.QuestionRepository {
	return &questionRepo{db: db}
}

func (r *questionRepo) Create(ctx context.Context, q *domain.Question) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return translateError(r.db.WithContext(ctx).Create(q).Error)
}

func (r *questionRepo) ListByJob(ctx context.Context, jobID string) ([]domain.Question, error) {
	questions := []domain.Question{}
	err := r.db.WithContext(ctx).Where("job_id = ?", jobID).Order("created_at ASC").Find(&questions).Error
	return questions, err
}

type answerRepo struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) domain.AnswerRepository {
	return &answerRepo{db: db}
}

// CreateBatch inserts answers in one statement
func (r *answerRepo) CreateBatch(ctx context.Context, answers []domain.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	for i := range answers {
		if answers[i].ID == "" {
			answers[i].ID = uuid.NewString()
		}
	}
	return translateError(r.db.WithContext(ctx).Create(&answers).Error)
}

// ListByApplication joins answers with their question text
func (r *answerRepo) ListByApplication(ctx context.Context, applicationID string) ([]domain.AnswerView, error) {
	views := []domain.AnswerView{}
	err := r.db.WithContext(ctx).
		Table("answers AS a").
		Select("a.question_id, COALESCE(q.text, '') AS question_text, COALESCE(q.type, 'text') AS question_type, a.response").
		Joins("LEFT JOIN questions q ON q.id = a.question_id").
		Where("a.application_id = ?", applicationID).
		Order("q.created_at ASC").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}
