package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/LARRYDMO/Job-portal-website/internal/delivery/http/response"
	"github.com/LARRYDMO/Job-portal-website/internal/domain"
	"github.com/LARRYDMO/Job-portal-website/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// multipartOverhead is the room left for form fields next to the file.
const multipartOverhead = 1 << 20

type ApplicationHandler struct {
	applicationUC  domain.ApplicationUsecase
	maxUploadBytes int64
}

// NewApplicationHandler registers application routes
func NewApplicationHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase, maxUploadBytes int64, uploadLimiter gin.HandlerFunc) {
	handler := &ApplicationHandler{applicationUC: applicationUC, maxUploadBytes: maxUploadBytes}

	applications := protected.Group("/applications")
	{
		// Candidate routes
		applications.POST("", uploadLimiter, handler.Apply)
		applications.GET("/my", handler.ListMine)

		// Employer routes (job owner)
		applications.GET("/job/:jobId", handler.ListForJob)
		applications.GET("/job/:jobId/export", handler.Export)
		applications.PUT("/:id/status", handler.UpdateStatus)
		applications.GET("/:id/answers", handler.ListAnswers)
	}
}

type ApplyResponse struct {
	Message     string              `json:"message"`
	Application *domain.Application `json:"application"`
}

type UpdateStatusResponse struct {
	Message string                   `json:"message"`
	Status  domain.ApplicationStatus `json:"status"`
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Multipart form with jobId, a resume file and optional answersJson
// @Tags         applications
// @Accept       multipart/form-data
// @Produce      json
// @Param        jobId        formData  string  true   "Job ID"
// @Param        resume       formData  file    true   "Resume file"
// @Param        answersJson  formData  string  false  "JSON array of {questionId, response}"
// @Success      200  {object}  ApplyResponse
// @Failure      400  {object}  response.ErrorResponse
// @Failure      401  {object}  response.ErrorResponse
// @Failure      409  {object}  response.ErrorResponse
// @Router       /applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	upload, closeFile, err := openFormFile(c, "resume", h.maxUploadBytes)
	if err != nil {
		c.Error(err)
		return
	}
	defer closeFile()

	app, err := h.applicationUC.Apply(c.Request.Context(), domain.ApplyInput{
		JobID:       c.PostForm("jobId"),
		Resume:      upload,
		AnswersJSON: c.PostForm("answersJson"),
	}, caller(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, ApplyResponse{Message: "Application submitted", Application: app})
}

// openFormFile opens an optional multipart file. A missing file yields a nil
// upload so the usecase decides how to answer.
func openFormFile(c *gin.Context, field string, maxUploadBytes int64) (*domain.Upload, func(), error) {
	noop := func() {}
	if maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes+multipartOverhead)
	}

	header, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return nil, noop, apperror.New(http.StatusRequestEntityTooLarge, apperror.KindValidation,
				fmt.Sprintf("File exceeds the %d MB limit", maxUploadBytes>>20), err)
		case errors.Is(err, http.ErrMissingFile):
			return nil, noop, nil
		case errors.Is(err, http.ErrNotMultipart), errors.Is(err, multipart.ErrMessageTooLarge):
			return nil, noop, apperror.BadRequest("Expected a multipart/form-data request")
		}
		return nil, noop, apperror.BadRequest("Invalid multipart form")
	}

	f, err := header.Open()
	if err != nil {
		return nil, noop, apperror.Internal(err)
	}
	return &domain.Upload{Reader: f, FileName: header.Filename, Size: header.Size}, func() { _ = f.Close() }, nil
}

// ListForJob godoc
// @Summary      Applicants of a job
// @Tags         applications
// @Produce      json
// @Param        jobId  path      string  true  "Job ID"
// @Success      200    {array}   domain.ApplicationView
// @Failure      403    {object}  response.ErrorResponse
// @Failure      404    {object}  response.ErrorResponse
// @Router       /applications/job/{jobId} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	apps, err := h.applicationUC.ListForJob(c.Request.Context(), c.Param("jobId"), caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, response.List(apps))
}

// ListMine godoc
// @Summary      The caller's applications
// @Tags         applications
// @Produce      json
// @Success      200  {array}  domain.ApplicationView
// @Router       /applications/my [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	apps, err := h.applicationUC.ListMine(c.Request.Context(), caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, response.List(apps))
}

// UpdateStatus godoc
// @Summary      Change an application's status
// @Description  Body is a JSON string ("Accepted") or {"status":"Accepted"}; names are case-insensitive
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  UpdateStatusResponse
// @Failure      400  {object}  response.ErrorResponse
// @Failure      403  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /applications/{id}/status [put]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, 4096))
	if err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	status, err := h.applicationUC.UpdateStatus(c.Request.Context(), c.Param("id"), parseStatusBody(raw), caller(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, UpdateStatusResponse{Message: "Status updated", Status: status})
}

// parseStatusBody accepts "Accepted", {"status":"Accepted"} or bare text.
// Anything else yields "" which the usecase rejects after its ownership checks.
func parseStatusBody(raw []byte) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return ""
	}

	var s string
	if err := json.Unmarshal([]byte(trimmed), &s); err == nil {
		return s
	}
	var obj struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
		return obj.Status
	}
	if strings.ContainsAny(trimmed, `{}[]":,`) {
		return ""
	}
	return trimmed
}

// ListAnswers godoc
// @Summary      Screening answers of an application
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {array}   domain.AnswerView
// @Failure      403  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /applications/{id}/answers [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListAnswers(c *gin.Context) {
	answers, err := h.applicationUC.ListAnswers(c.Request.Context(), c.Param("id"), caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, response.List(answers))
}

// Export godoc
// @Summary      Download a job's applicants
// @Tags         applications
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Param        jobId   path   string  true   "Job ID"
// @Param        format  query  string  false  "xlsx (default) or csv"
// @Success      200
// @Failure      400  {object}  response.ErrorResponse
// @Failure      403  {object}  response.ErrorResponse
// @Router       /applications/job/{jobId}/export [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Export(c *gin.Context) {
	file, err := h.applicationUC.ExportForJob(c.Request.Context(), c.Param("jobId"), c.Query("format"), caller(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
