package v1

import (
	"net/http"

	"github.com/LARRYDMO/Job-portal-website/internal/delivery/http/response"
	"github.com/LARRYDMO/Job-portal-website/internal/domain"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionUC domain.QuestionUsecase
}

func NewQuestionHandler(public *gin.RouterGroup, protected *gin.RouterGroup, questionUC domain.QuestionUsecase) {
	handler := &QuestionHandler{questionUC: questionUC}

	publicQuestions := public.Group("/questions")
	{
		publicQuestions.GET("/common", handler.Common)
		publicQuestions.GET("/job/:jobId", handler.ListForJob)
	}

	protectedQuestions := protected.Group("/questions")
	{
		protectedQuestions.POST("/job/:jobId", handler.Create)
	}
}

type CreateQuestionRequest struct {
	Text    string  `json:"text" binding:"required,max=1000"`
	Type    string  `json:"type" binding:"question_type"`
	Options *string `json:"options" binding:"omitempty,max=2000"`
}

// Create godoc
// @Summary      Add a screening question to a job
// @Description  Only the job owner may add questions. An ownerless job is claimed by the caller.
// @Tags         questions
// @Accept       json
// @Produce      json
// @Param        jobId     path      string                 true  "Job ID"
// @Param        question  body      CreateQuestionRequest  true  "Question"
// @Success      200  {object}  domain.Question
// @Failure      400  {object}  response.ErrorResponse
// @Failure      403  {object}  response.ErrorResponse
// @Failure      404  {object}  response.ErrorResponse
// @Router       /questions/job/{jobId} [post]
// @Security     BearerAuth
func (h *QuestionHandler) Create(c *gin.Context) {
	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	q, err := h.questionUC.CreateForJob(c.Request.Context(), c.Param("jobId"), domain.QuestionInput{
		Text:    req.Text,
		Type:    req.Type,
		Options: req.Options,
	}, caller(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, q)
}

// ListForJob godoc
// @Summary      Screening questions of a job
// @Tags         questions
// @Produce      json
// @Param        jobId  path   string  true  "Job ID"
// @Success      200    {array}  domain.Question
// @Router       /questions/job/{jobId} [get]
func (h *QuestionHandler) ListForJob(c *gin.Context) {
	questions, err := h.questionUC.ListForJob(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, response.List(questions))
}

// Common godoc
// @Summary      Suggested question templates
// @Tags         questions
// @Produce      json
// @Success      200  {array}  domain.QuestionTemplate
// @Router       /questions/common [get]
func (h *QuestionHandler) Common(c *gin.Context) {
	response.Success(c, http.StatusOK, h.questionUC.CommonQuestions())
}
