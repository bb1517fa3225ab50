package web

import (
	"net/http"

	"github.com/LARRYDMO/Job-portal-website/internal/delivery/http/middleware"
	"github.com/LARRYDMO/Job-portal-website/internal/delivery/http/response"
	"github.com/LARRYDMO/Job-portal-website/internal/domain"

	"github.com/gin-gonic/gin"
)

type JobsQuery struct {
	Search     string `form:"search"`
	Location   string `form:"location"`
	JobType    string `form:"jobType"`
	WorkMode   string `form:"workMode"`
	PageNumber int    `form:"pageNumber"`
}

type JobsPage struct {
	Jobs       []domain.JobListItem `json:"jobs"`
	Search     string               `json:"search"`
	Location   string               `json:"location"`
	JobType    string               `json:"jobType"`
	WorkMode   string               `json:"workMode"`
	PageNumber int                  `json:"pageNumber"`
	Total      int64                `json:"total"`
	HasMore    bool                 `json:"hasMore"`
}

type JobDetailPage struct {
	Job       *domain.Job       `json:"job"`
	Questions []domain.Question `json:"questions"`
	SignedIn  bool              `json:"signedIn"`
	Saved     bool              `json:"saved"`
	Applied   bool              `json:"applied"`
	CanManage bool              `json:"canManage"`
}

// ApplicationRow is an application with its candidate-facing status label.
type ApplicationRow struct {
	domain.ApplicationView
	StatusLabel string `json:"statusLabel"`
}

type CandidateDashboardPage struct {
	Applications []ApplicationRow `json:"applications"`
	Resumes      []domain.Resume  `json:"resumes"`
}

type EmployerDashboardPage struct {
	CompanyName *string              `json:"companyName"`
	Jobs        []domain.JobListItem `json:"jobs"`
}

type SavedJobsPage struct {
	SavedJobs []domain.SavedJobView `json:"savedJobs"`
}

func (h *PageHandler) Jobs(c *gin.Context) {
	query := JobsQuery{PageNumber: 1}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.Error(response.BindError(err, "Invalid form"))
		return
	}

	result, err := h.JobUC.List(c.Request.Context(), domain.JobFilter{
		Search:   query.Search,
		Location: query.Location,
		JobType:  query.JobType,
		WorkMode: query.WorkMode,
	}, query.PageNumber, JobsPageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, JobsPage{
		Jobs:       response.List(result.Data),
		Search:     query.Search,
		Location:   query.Location,
		JobType:    query.JobType,
		WorkMode:   query.WorkMode,
		PageNumber: result.Page,
		Total:      result.Total,
		HasMore:    int64(result.Page*result.PageSize) < result.Total,
	})
}

func (h *PageHandler) JobDetail(c *gin.Context) {
	ctx := c.Request.Context()
	job, err := h.JobUC.GetByID(ctx, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	questions, err := h.QuestionUC.ListForJob(ctx, job.ID)
	if err != nil {
		c.Error(err)
		return
	}

	page := JobDetailPage{Job: job, Questions: response.List(questions)}
	if who := middleware.Identity(c); who.IsAuthenticated() {
		page.SignedIn = true
		page.CanManage = domain.IsOwner(job, who)
		if page.Saved, err = h.SavedJobUC.IsSaved(ctx, job.ID, who); err != nil {
			c.Error(err)
			return
		}
		if page.Applied, err = h.ApplicationUC.HasApplied(ctx, job.ID, who); err != nil {
			c.Error(err)
			return
		}
	}

	response.Success(c, http.StatusOK, page)
}

func (h *PageHandler) CandidateDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	who := middleware.Identity(c)

	apps, err := h.ApplicationUC.ListMine(ctx, who)
	if err != nil {
		c.Error(err)
		return
	}
	resumes, err := h.ResumeUC.ListMine(ctx, who)
	if err != nil {
		c.Error(err)
		return
	}

	rows := make([]ApplicationRow, 0, len(apps))
	for _, a := range apps {
		rows = append(rows, ApplicationRow{ApplicationView: a, StatusLabel: a.Status.Label()})
	}
	response.Success(c, http.StatusOK, CandidateDashboardPage{Applications: rows, Resumes: response.List(resumes)})
}

func (h *PageHandler) EmployerDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	who := middleware.Identity(c)

	user, err := h.AuthUC.Me(ctx, who)
	if err != nil {
		c.Error(err)
		return
	}
	jobs, err := h.JobUC.ListMine(ctx, who)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, EmployerDashboardPage{CompanyName: user.CompanyName, Jobs: response.List(jobs)})
}

func (h *PageHandler) SavedJobs(c *gin.Context) {
	saved, err := h.SavedJobUC.ListMine(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, SavedJobsPage{SavedJobs: response.List(saved)})
}
