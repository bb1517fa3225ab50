package v1

import (
	"net/http"

	"github.com/LARRYDMO/Job-portal-website/internal/delivery/http/response"
	"github.com/LARRYDMO/Job-portal-website/internal/domain"
	"github.com/LARRYDMO/Job-portal-website/internal/usecase"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// PUBLIC routes - no authentication required
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.List)
		publicJobs.GET("/:id", handler.GetDetails)
	}

	// PROTECTED routes - any authenticated caller
	protectedJobs := protected.Group("/jobs")
	{
		protectedJobs.GET("/mine", handler.ListMine)
		protectedJobs.POST("", handler.Create)
		protectedJobs.PUT("/:id", handler.Update)
		protectedJobs.DELETE("/:id", handler.Delete)
	}
}

// JobRequest is the body of create and update. Ownership fields are not
// accepted from clients.
type JobRequest struct {
	Title        string  `json:"title" binding:"required,max=200"`
	Description  string  `json:"description"`
	Location     string  `json:"location" binding:"max=200"`
	EmployerName string  `json:"employerName" binding:"max=200"`
	SalaryRange  *string `json:"salaryRange" binding:"omitempty,max=100"`
	JobType      *string `json:"jobType" binding:"omitempty,max=50"`
	WorkMode     *string `json:"workMode" binding:"omitempty,max=50"`
	Skills       *string `json:"skills" binding:"omitempty,max=500"`
}

func (r JobRequest) input() domain.JobInput {
	return domain.JobInput{
		Title:        r.Title,
		Description:  r.Description,
		Location:     r.Location,
		EmployerName: r.EmployerName,
		SalaryRange:  r.SalaryRange,
		JobType:      r.JobType,
		WorkMode:     r.WorkMode,
		Skills:       r.Skills,
	}
}

type ListJobsQuery struct {
	Search   string `form:"search"`
	Location string `form:"location"`
	JobType  string `form:"jobType"`
	WorkMode string `form:"workMode"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// List godoc
// @Summary      Search jobs
// @Description  Filter, paginate and sort jobs by posted date (newest first)
// @Tags         jobs
// @Produce      json
// @Param        search    query  string  false  "Substring of title or description"
// @Param        location  query  string  false  "Substring of location"
// @Param        jobType   query  string  false  "Exact job type"
// @Param        workMode  query  string  false  "Exact work mode"
// @Param        page      query  int     false  "Page number (default 1)"
// @Param        pageSize  query  int     false  "Page size (default 20, max 100)"
// @Success      200  {object}  domain.JobPage
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	query := ListJobsQuery{Page: 1, PageSize: usecase.DefaultPageSize}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.Error(bindError(err))
		return
	}

	page, err := h.jobUC.List(c.Request.Context(), domain.JobFilter{
		Search:   query.Search,
		Location: query.Location,
		JobType:  query.JobType,
		WorkMode: query.WorkMode,
	}, query.Page, query.PageSize)
	if err != nil {
		c.Error(err)
		return
	}
	page.Data = response.List(page.Data)

	response.Success(c, http.StatusOK, page)
}

// GetDetails godoc
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  domain.Job
// @Failure      404  {object}  response.ErrorResponse
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	job, err := h.jobUC.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, job)
}

// Create godoc
// @Summary      Create a new job
// @Description  The caller becomes the owner of the job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      JobRequest  true  "Job JSON"
// @Success      201  {object}  domain.Job
// @Failure      400  {object}  response.ErrorResponse
// @Failure      401  {object}  response.ErrorResponse
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	job, err := h.jobUC.Create(c.Request.Context(), req.input(), caller(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, job)
}

// Update godoc
// @Summary      Update a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      string      true  "Job ID"
// @Param        job  body      JobRequest  true  "Job JSON"
// @Success      200  {object}  domain.Job
// @Failure      400  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	job, err := h.jobUC.Update(c.Request.Context(), c.Param("id"), req.input(), caller(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, job)
}

// Delete godoc
// @Summary      Delete a job
// @Description  Removes the job with its questions, answers, applications and saved entries
// @Tags         jobs
// @Param        id   path      string  true  "Job ID"
// @Success      204
// @Failure      404  {object}  response.ErrorResponse
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.jobUC.Delete(c.Request.Context(), c.Param("id"), caller(c)); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMine godoc
// @Summary      Jobs owned by the caller
// @Tags         jobs
// @Produce      json
// @Success      200  {array}  domain.JobListItem
// @Router       /jobs/mine [get]
// @Security     BearerAuth
func (h *JobHandler) ListMine(c *gin.Context) {
	jobs, err := h.jobUC.ListMine(c.Request.Context(), caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, response.List(jobs))
}
