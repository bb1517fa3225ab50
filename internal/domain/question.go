package domain

import (
	"context"
	"strings"
	"time"
)

type QuestionType string

const (
	QuestionText QuestionType = "text"
	QuestionMCQ  QuestionType = "mcq"
)

// ParseQuestionType defaults an empty value to text.
func ParseQuestionType(s string) (QuestionType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(QuestionText):
		return QuestionText, true
	case string(QuestionMCQ):
		return QuestionMCQ, true
	}
	return "", false
}

type Question struct {
	ID      string       `gorm:"type:varchar(36);primaryKey" json:"id"`
	JobID   string       `gorm:"type:varchar(36);not null;index" json:"jobId"`
	Text    string       `gorm:"type:text;not null" json:"text"`
	Type    QuestionType `gorm:"size:10;not null;default:text" json:"type"`
	Options *string      `gorm:"type:text" json:"options"` // comma-separated, mcq only

	CreatedAt time.Time `json:"-"`
}

// OptionList splits the comma-separated options.
func (q *Question) OptionList() []string {
	if q.Options == nil {
		return nil
	}
	var out []string
	for _, o := range strings.Split(*q.Options, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

type Answer struct {
	ID            string `gorm:"type:varchar(36);primaryKey" json:"id"`
	ApplicationID string `gorm:"type:varchar(36);index" json:"applicationId"`
	QuestionID    string `gorm:"type:varchar(36);not null;index" json:"questionId"`
	CandidateID   string `gorm:"type:varchar(36);not null;index" json:"candidateId"`
	Response      string `gorm:"type:text" json:"response"`
}

// AnswerView is an answer joined with its question.
type AnswerView struct {
	QuestionID   string       `json:"questionId"`
	QuestionText string       `json:"questionText"`
	QuestionType QuestionType `json:"questionType"`
	Response     string       `json:"response"`
}

// QuestionTemplate is a suggested question from the built-in catalog.
type QuestionTemplate struct {
	Text    string       `yaml:"text" json:"text"`
	Type    QuestionType `yaml:"type" json:"type"`
	Options *string      `yaml:"options" json:"options"`
}

type QuestionInput struct {
	Text    string
	Type    string
	Options *string
}

type QuestionRepository interface {
	Create(ctx context.Context, q *Question) error
	ListByJob(ctx context.Context, jobID string) ([]Question, error)
}

type AnswerRepository interface {
	CreateBatch(ctx context.Context, answers []Answer) error
	ListByApplication(ctx context.Context, applicationID string) ([]AnswerView, error)
}

type QuestionUsecase interface {
	CreateForJob(ctx context.Context, jobID string, input QuestionInput, caller Identity) (*Question, error)
	ListForJob(ctx context.Context, jobID string) ([]Question, error)
	CommonQuestions() []QuestionTemplate
}
