package v1

import (
	"net/http"

	"github.com/LARRYDMO/Job-portal-website/internal/delivery/http/response"
	"github.com/LARRYDMO/Job-portal-website/internal/domain"

	"github.com/gin-gonic/gin"
)

type SavedJobHandler struct {
	savedJobUC domain.SavedJobUsecase
}

func NewSavedJobHandler(protected *gin.RouterGroup, savedJobUC domain.SavedJobUsecase) {
	handler := &SavedJobHandler{savedJobUC: savedJobUC}

	saved := protected.Group("/saved-jobs")
	{
		saved.POST("/toggle/:jobId", handler.Toggle)
		saved.GET("/mine", handler.ListMine)
	}
}

type ToggleSavedResponse struct {
	Saved bool `json:"saved"`
}

// Toggle godoc
// @Summary      Save or unsave a job
// @Tags         saved-jobs
// @Produce      json
// @Param        jobId  path      string  true  "Job ID"
// @Success      200    {object}  ToggleSavedResponse
// @Failure      401    {object}  response.ErrorResponse
// @Router       /saved-jobs/toggle/{jobId} [post]
// @Security     BearerAuth
func (h *SavedJobHandler) Toggle(c *gin.Context) {
	saved, err := h.savedJobUC.Toggle(c.Request.Context(), c.Param("jobId"), caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, ToggleSavedResponse{Saved: saved})
}

// ListMine godoc
// @Summary      The caller's saved jobs
// @Tags         saved-jobs
// @Produce      json
// @Success      200  {array}  domain.SavedJobView
// @Router       /saved-jobs/mine [get]
// @Security     BearerAuth
func (h *SavedJobHandler) ListMine(c *gin.Context) {
	saved, err := h.savedJobUC.ListMine(c.Request.Context(), caller(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, response.List(saved))
}
