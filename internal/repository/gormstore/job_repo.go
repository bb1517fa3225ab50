package gormstore

import (
	"context"
	"strings"
	"time"

	"github.com/LARRYDMO/Job-portal-website/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const applicantCountColumn = "(SELECT COUNT(*) FROM applications WHERE applications.job_id = jobs.id) AS applicant_count"

type jobRepo struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.PostedDate.IsZero() {
		job.PostedDate = time.Now().UTC()
	}
	return translateError(r.db.WithContext(ctx).Create(job).Error)
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	var job domain.Job
	if err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &job, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching term literally as a substring.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// applyFilter narrows a jobs query. Search and location are substring
// matches; job type and work mode are exact.
func applyFilter(q *gorm.DB, f domain.JobFilter) *gorm.DB {
	if f.Search != "" {
		like := containsPattern(f.Search)
		q = q.Where(`(jobs.title LIKE ? ESCAPE '\' OR jobs.description LIKE ? ESCAPE '\')`, like, like)
	}
	if f.Location != "" {
		q = q.Where(`jobs.location LIKE ? ESCAPE '\'`, containsPattern(f.Location))
	}
	if f.JobType != "" {
		q = q.Where("jobs.job_type = ?", f.JobType)
	}
	if f.WorkMode != "" {
		q = q.Where("jobs.work_mode = ?", f.WorkMode)
	}
	return q
}

func (r *jobRepo) List(ctx context.Context, filter domain.JobFilter, limit, offset int) ([]domain.JobListItem, int64, error) {
	var total int64
	countQuery := applyFilter(r.db.WithContext(ctx).Model(&domain.Job{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := make([]domain.JobListItem, 0, limit)
	err := applyFilter(r.db.WithContext(ctx).Model(&domain.Job{}), filter).
		Select("jobs.*, " + applicantCountColumn).
		Order("jobs.posted_date DESC").
		Limit(limit).
		Offset(offset).
		Scan(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListOwnedBy returns the jobs IsOwner would grant to caller.
func (r *jobRepo) ListOwnedBy(ctx context.Context, caller domain.Identity) ([]domain.JobListItem, error) {
	items := []domain.JobListItem{}
	if !caller.IsAuthenticated() {
		return items, nil
	}

	q := r.db.WithContext(ctx).Model(&domain.Job{}).Select("jobs.*, " + applicantCountColumn)
	if caller.Name != "" {
		q = q.Where("jobs.employer_id = ? OR ((jobs.employer_id IS NULL OR jobs.employer_id = '') AND jobs.employer_name = ?)", caller.ID, caller.Name)
	} else {
		q = q.Where("jobs.employer_id = ?", caller.ID)
	}
	if err := q.Order("jobs.posted_date DESC").Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update writes the editable columns. Ownership columns are left alone.
func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	res := r.db.WithContext(ctx).Model(&domain.Job{}).
		Where("id = ?", job.ID).
		Select("title", "description", "location", "employer_name", "salary_range", "job_type", "work_mode", "skills").
		Updates(job)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the job together with its questions, answers,
// applications and saved-job rows.
func (r *jobRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		questionIDs := tx.Model(&domain.Question{}).Select("id").Where("job_id = ?", id)
		applicationIDs := tx.Model(&domain.Application{}).Select("id").Where("job_id = ?", id)

		if err := tx.Where("question_id IN (?) OR application_id IN (?)", questionIDs, applicationIDs).
			Delete(&domain.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id = ?", id).Delete(&domain.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id = ?", id).Delete(&domain.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id = ?", id).Delete(&domain.SavedJob{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&domain.Job{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// ClaimOwnership is a compare-and-set on employer_id. The display name is
// only filled in when the job has none.
func (r *jobRepo) ClaimOwnership(ctx context.Context, jobID, employerID, employerName string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Job{}).
		Where("id = ? AND (employer_id IS NULL OR employer_id = '')", jobID).
		Updates(map[string]any{
			"employer_id":   employerID,
			"employer_name": gorm.Expr("COALESCE(NULLIF(employer_name, ''), ?)", employerName),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
