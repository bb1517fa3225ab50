package v1

import (
	"bufio"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/LARRYDMO/Job-portal-website/config"
	"github.com/LARRYDMO/Job-portal-website/internal/delivery/http/middleware"
	"github.com/LARRYDMO/Job-portal-website/internal/delivery/http/response"
	"github.com/LARRYDMO/Job-portal-website/internal/delivery/http/web"
	"github.com/LARRYDMO/Job-portal-website/internal/domain"
	"github.com/LARRYDMO/Job-portal-website/internal/usecase"
	"github.com/LARRYDMO/Job-portal-website/pkg/apperror"
	"github.com/LARRYDMO/Job-portal-website/pkg/logger"
	"github.com/LARRYDMO/Job-portal-website/pkg/security"
	"github.com/LARRYDMO/Job-portal-website/internal/storage"
	"github.com/LARRYDMO/Job-portal-website/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	QuestionUC    domain.QuestionUsecase
	ResumeUC      domain.ResumeUsecase
	SavedJobUC    domain.SavedJobUsecase
	HealthUC      usecase.HealthUsecase

	Tokens         middleware.TokenParser
	Storage        domain.FileStorage
	SecurityLogger *security.SecurityLogger
	Config         *config.Config
}

// fieldRules are the domain-backed binding tags used by request DTOs.
var fieldRules = map[string]func(string) bool{
	"role": func(s string) bool {
		_, ok := domain.ParseRole(s)
		return ok
	},
	"question_type": func(s string) bool {
		_, ok := domain.ParseQuestionType(s)
		return ok
	},
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v, fieldRules)
	}

	cfg := deps.Config
	r := gin.New()
	r.MaxMultipartMemory = 8 << 20
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Log.Warn("Ignoring invalid TRUSTED_PROXIES", "error", err)
		_ = r.SetTrustedProxies(nil)
	}

	// Global Middlewares
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.FrontendURLs))
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	r.Use(middleware.ErrorHandler(deps.SecurityLogger))
	r.Use(middleware.Authenticate(deps.Tokens, cfg.AuthCookieName))

	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	authLimit := middleware.AuthRateLimitConfig(cfg.RateLimitAuthThreshold, window)
	authLimit.Logger = deps.SecurityLogger
	uploadLimit := middleware.UploadRateLimitConfig(cfg.RateLimitUploadThreshold, window)
	uploadLimit.Logger = deps.SecurityLogger
	authLimiter := middleware.RateLimitMiddleware(authLimit)
	uploadLimiter := middleware.RateLimitMiddleware(uploadLimit)
	maxUploadBytes := int64(cfg.MaxUploadMB) << 20

	api := r.Group("/api")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		report := deps.HealthUC.Check(c.Request.Context())
		code := http.StatusOK
		if report.Status != "ok" {
			code = http.StatusServiceUnavailable
		}
		response.Success(c, code, report)
	})

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.RequireAuth())
	{
		NewAuthHandler(api, protected, deps.AuthUC, authLimiter)
		NewJobHandler(api, protected, deps.JobUC)
		NewApplicationHandler(protected, deps.ApplicationUC, maxUploadBytes, uploadLimiter)
		NewQuestionHandler(api, protected, deps.QuestionUC)
		NewResumeHandler(protected, deps.ResumeUC, maxUploadBytes, uploadLimiter)
		NewSavedJobHandler(protected, deps.SavedJobUC)
	}

	// Stored uploads
	r.GET("/uploads/:key", serveUpload(deps.Storage))

	// Server-side pages
	web.NewPageHandler(r.Group(""), web.Deps{
		AuthUC:        deps.AuthUC,
		JobUC:         deps.JobUC,
		ApplicationUC: deps.ApplicationUC,
		QuestionUC:    deps.QuestionUC,
		ResumeUC:      deps.ResumeUC,
		SavedJobUC:    deps.SavedJobUC,
		CookieName:    cfg.AuthCookieName,
		CookieTTL:     cfg.JWTTTL,
		SecureCookie:  cfg.IsProduction(),
	}, authLimiter)

	return r
}

// serveUpload streams a stored file by key.
func serveUpload(files domain.FileStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("key")
		if err := storage.ValidateKey(key); err != nil {
			c.Error(apperror.NotFound("File not found"))
			return
		}

		rc, err := files.Open(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				c.Error(apperror.NotFound("File not found"))
				return
			}
			c.Error(apperror.Internal(err))
			return
		}
		defer rc.Close()

		br := bufio.NewReader(rc)
		head, _ := br.Peek(security.SniffLen)
		contentType, inline := security.ServedContentType(key, head)
		c.Header("Content-Type", contentType)
		if !inline {
			c.Header("Content-Disposition", "attachment")
		}
		c.Status(http.StatusOK)
		if _, err := io.Copy(c.Writer, br); err != nil {
			logger.Log.Warn("Upload stream interrupted", "key", key, "error", err)
		}
	}
}
