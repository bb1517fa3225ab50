package v1

import (
	"net/http"

	"github.com/LARRYDMO/Job-portal-website/internal/delivery/http/response"
	"github.com/LARRYDMO/Job-portal-website/internal/domain"

	"github.com/gin-gonic/gin"
)

type ResumeHandler struct {
	resumeUC       domain.ResumeUsecase
	maxUploadBytes int64
}

func NewResumeHandler(protected *gin.RouterGroup, resumeUC domain.ResumeUsecase, maxUploadBytes int64, uploadLimiter gin.HandlerFunc) {
	handler := &ResumeHandler{resumeUC: resumeUC, maxUploadBytes: maxUploadBytes}

	resumes := protected.Group("/resumes")
	{
		resumes.POST("/upload", uploadLimiter, handler.Upload)
		resumes.GET("/mine", handler.ListMine)
	}
}

// Upload godoc
// @Summary      Upload a resume
// @Tags         resumes
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Resume file"
// @Success      200  {object}  domain.Resume
// @Failure      400  {object}  response.ErrorResponse
// @Failure      401  {object}  response.ErrorResponse
// @Router       /resumes/upload [post]
// @Security     BearerAuth
func (h *ResumeHandler) Upload(c *gin.Context) {
	upload, closeFile, err := openFormFile(c, "file", h.maxUploadBytes)
	if err != nil {
		c.Error(err)
		return
	}
	defer closeFile()

	resume, err := h.resumeUC.Upload(c.Request.Context(), upload, caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, resume)
}

// ListMine godoc
// @Summary      The caller's resumes
// @Tags         resumes
// @Produce      json
// @Success      200  {array}  domain.Resume
// @Router       /resumes/mine [get]
// @Security     BearerAuth
func (h *ResumeHandler) ListMine(c *gin.Context) {
	resumes, err := h.resumeUC.ListMine(c.Request.Context(), caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, response.List(resumes))
}
