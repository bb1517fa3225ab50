package domain

import (
	"context"
	"time"
)

type Job struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Location     string    `gorm:"size:200" json:"location"`
	EmployerName string    `gorm:"size:200;index" json:"employerName"`
	EmployerID   *string   `gorm:"type:varchar(36);index" json:"employerId"`
	SalaryRange  *string   `gorm:"size:100" json:"salaryRange"`
	JobType      *string   `gorm:"size:50" json:"jobType"`  // Full-time, Part-time, Contract
	WorkMode     *string   `gorm:"size:50" json:"workMode"` // Onsite, Remote, Hybrid
	Skills       *string   `gorm:"size:500" json:"skills"`  // comma-separated tags
	PostedDate   time.Time `gorm:"index" json:"postedDate"`
}

// JobInput is the client-editable part of a job.
type JobInput struct {
	Title        string
	Description  string
	Location     string
	EmployerName string
	SalaryRange  *string
	JobType      *string
	WorkMode     *string
	Skills       *string
}

// Apply copies the editable fields onto j. Ownership is never touched.
func (in JobInput) Apply(j *Job) {
	j.Title = in.Title
	j.Description = in.Description
	j.Location = in.Location
	j.EmployerName = in.EmployerName
	j.SalaryRange = in.SalaryRange
	j.JobType = in.JobType
	j.WorkMode = in.WorkMode
	j.Skills = in.Skills
}

type JobFilter struct {
	Search   string // substring of title or description
	Location string // substring of location
	JobType  string // exact
	WorkMode string // exact
}

// JobListItem is a job annotated with its live applicant count.
type JobListItem struct {
	Job
	ApplicantCount int64 `json:"applicantCount"`
}

type JobPage struct {
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
	Data     []JobListItem `json:"data"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	List(ctx context.Context, filter JobFilter, limit, offset int) ([]JobListItem, int64, error)
	ListOwnedBy(ctx context.Context, caller Identity) ([]JobListItem, error)
	Update(ctx context.Context, job *Job) error
	Delete(ctx context.Context, id string) error
	// ClaimOwnership sets the employer of an ownerless job. It reports false
	// when the job already had an owner.
	ClaimOwnership(ctx context.Context, jobID, employerID, employerName string) (bool, error)
}

type JobUsecase interface {
	List(ctx context.Context, filter JobFilter, page, pageSize int) (*JobPage, error)
	GetByID(ctx context.Context, id string) (*Job, error)
	Create(ctx context.Context, input JobInput, caller Identity) (*Job, error)
	Update(ctx context.Context, id string, input JobInput, caller Identity) (*Job, error)
	Delete(ctx context.Context, id string, caller Identity) error
	ListMine(ctx context.Context, caller Identity) ([]JobListItem, error)
}
