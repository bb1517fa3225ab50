// Package web serves the page view models of the server-side site. Pages
// authenticate with the auth cookie set by /account/login and /account/register.
package web

import (
	"net/http"
	"time"

	"github.com/LARRYDMO/Job-portal-website/internal/delivery/http/middleware"
	"github.com/LARRYDMO/Job-portal-website/internal/delivery/http/response"
	"github.com/LARRYDMO/Job-portal-website/internal/domain"

	"github.com/gin-gonic/gin"
)

// JobsPageSize is the page size of the job list page.
const JobsPageSize = 10

type Deps struct {
	AuthUC        domain.AuthUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	QuestionUC    domain.QuestionUsecase
	ResumeUC      domain.ResumeUsecase
	SavedJobUC    domain.SavedJobUsecase

	CookieName   string
	CookieTTL    time.Duration
	SecureCookie bool
}

type PageHandler struct {
	Deps
}

func NewPageHandler(r *gin.RouterGroup, deps Deps, authLimiter gin.HandlerFunc) {
	handler := &PageHandler{Deps: deps}

	account := r.Group("/account")
	{
		account.POST("/register", authLimiter, handler.Register)
		account.POST("/login", authLimiter, handler.Login)
		account.POST("/logout", handler.Logout)
	}

	r.GET("/jobs", handler.Jobs)
	r.GET("/jobs/:id", handler.JobDetail)

	signedIn := r.Group("")
	signedIn.Use(middleware.RequireAuth())
	{
		signedIn.GET("/candidate/dashboard", handler.CandidateDashboard)
		signedIn.GET("/employer/dashboard", handler.EmployerDashboard)
		signedIn.GET("/saved-jobs", handler.SavedJobs)
	}
}

type RegisterForm struct {
	Name        string  `form:"name" json:"name" binding:"required,max=200,no_emoji"`
	Email       string  `form:"email" json:"email" binding:"required,email,max=320"`
	Password    string  `form:"password" json:"password" binding:"required,min=6,max=128"`
	Role        string  `form:"role" json:"role" binding:"omitempty,role"`
	CompanyName *string `form:"companyName" json:"companyName" binding:"omitempty,max=200"`
}

type LoginForm struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// SessionPage answers the account forms.
type SessionPage struct {
	User     *domain.UserSummary `json:"user,omitempty"`
	Redirect string              `json:"redirect"`
}

func (h *PageHandler) Register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		c.Error(response.BindError(err, "Invalid form"))
		return
	}
	// The page form preselects Candidate
	if form.Role == "" {
		form.Role = string(domain.RoleCandidate)
	}

	result, err := h.AuthUC.Register(c.Request.Context(), domain.RegisterInput{
		Name:        form.Name,
		Email:       form.Email,
		Password:    form.Password,
		Role:        form.Role,
		CompanyName: form.CompanyName,
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.setSession(c, result.Token)
	response.Success(c, http.StatusOK, SessionPage{User: &result.User, Redirect: "/jobs"})
}

func (h *PageHandler) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.Error(response.BindError(err, "Invalid form"))
		return
	}

	result, err := h.AuthUC.Login(c.Request.Context(), domain.LoginAttempt{
		Email:     form.Email,
		Password:  form.Password,
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		RequestID: response.RequestID(c),
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.setSession(c, result.Token)
	response.Success(c, http.StatusOK, SessionPage{User: &result.User, Redirect: "/jobs"})
}

func (h *PageHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.CookieName, "", -1, "/", "", h.SecureCookie, true)
	response.Success(c, http.StatusOK, SessionPage{Redirect: "/jobs"})
}

func (h *PageHandler) setSession(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.CookieName, token, int(h.CookieTTL.Seconds()), "/", "", h.SecureCookie, true)
}
