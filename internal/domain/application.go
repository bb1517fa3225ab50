package domain

import (
	"context"
	"io"
	"strings"
	"time"
)

type ApplicationStatus string

// Application status values, in workflow order.
const (
	StatusApplied   ApplicationStatus = "Applied"
	StatusInReview  ApplicationStatus = "InReview"
	StatusInterview ApplicationStatus = "Interview"
	StatusOffer     ApplicationStatus = "Offer"
	StatusRejected  ApplicationStatus = "Rejected"
	StatusAccepted  ApplicationStatus = "Accepted"
)

var applicationStatuses = []ApplicationStatus{
	StatusApplied, StatusInReview, StatusInterview, StatusOffer, StatusRejected, StatusAccepted,
}

// ApplicationStatuses lists every recognised status.
func ApplicationStatuses() []ApplicationStatus {
	out := make([]ApplicationStatus, len(applicationStatuses))
	copy(out, applicationStatuses)
	return out
}

// ParseApplicationStatus matches s against the status names ignoring case.
func ParseApplicationStatus(s string) (ApplicationStatus, bool) {
	s = strings.TrimSpace(s)
	for _, st := range applicationStatuses {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}

// Label is the candidate-facing wording of a status.
func (s ApplicationStatus) Label() string {
	switch s {
	case StatusApplied, StatusInReview:
		return "Under Review"
	case "":
		return "Unknown"
	}
	return string(s)
}

type Application struct {
	ID          string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	JobID       string            `gorm:"type:varchar(36);not null;uniqueIndex:idx_applications_job_candidate" json:"jobId"`
	CandidateID string            `gorm:"type:varchar(36);not null;uniqueIndex:idx_applications_job_candidate;index" json:"candidateId"`
	ResumePath  string            `gorm:"size:400;not null" json:"resumePath"`
	AppliedAt   time.Time         `json:"appliedAt"`
	Status      ApplicationStatus `gorm:"size:20;not null;default:Applied" json:"status"`
}

// ApplicationView is an application joined with either its candidate
// (employer listing) or its job (candidate listing).
type ApplicationView struct {
	ID             string            `json:"id"`
	JobID          string            `json:"jobId"`
	CandidateID    string            `json:"candidateId"`
	CandidateName  string            `json:"candidateName,omitempty"`
	CandidateEmail string            `json:"candidateEmail,omitempty"`
	JobTitle       string            `json:"jobTitle,omitempty"`
	JobLocation    string            `json:"jobLocation,omitempty"`
	EmployerName   string            `json:"employerName,omitempty"`
	AppliedDate    time.Time         `json:"appliedDate"`
	Status         ApplicationStatus `json:"status"`
	ResumePath     string            `json:"resumePath"`
}

// Upload is a client-supplied file.
type Upload struct {
	Reader   io.Reader
	FileName string
	Size     int64
}

func (u *Upload) IsEmpty() bool {
	return u == nil || u.Reader == nil || u.Size <= 0
}

type ApplyInput struct {
	JobID       string
	Resume      *Upload
	AnswersJSON string
}

// AnswerSubmission is one element of the answersJson form field.
type AnswerSubmission struct {
	QuestionID string `json:"questionId"`
	Response   string `json:"response"`
}

// ExportFile is a generated download.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	Exists(ctx context.Context, jobID, candidateID string) (bool, error)
	ListForJob(ctx context.Context, jobID string) ([]ApplicationView, error)
	ListForCandidate(ctx context.Context, candidateID string) ([]ApplicationView, error)
	UpdateStatus(ctx context.Context, id string, status ApplicationStatus) error
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, input ApplyInput, caller Identity) (*Application, error)
	ListForJob(ctx context.Context, jobID string, caller Identity) ([]ApplicationView, error)
	ListMine(ctx context.Context, caller Identity) ([]ApplicationView, error)
	HasApplied(ctx context.Context, jobID string, caller Identity) (bool, error)
	UpdateStatus(ctx context.Context, applicationID, status string, caller Identity) (ApplicationStatus, error)
	ListAnswers(ctx context.Context, applicationID string, caller Identity) ([]AnswerView, error)
	ExportForJob(ctx context.Context, jobID, format string, caller Identity) (*ExportFile, error)
}
