package middleware

import (
	"errors"
	"net/http"

	"github.com/LARRYDMO/Job-portal-website/internal/delivery/http/response"
	"github.com/LARRYDMO/Job-portal-website/internal/domain"
	"github.com/LARRYDMO/Job-portal-website/pkg/apperror"
	"github.com/LARRYDMO/Job-portal-website/pkg/logger"
	"github.com/LARRYDMO/Job-portal-website/pkg/security"
	"github.com/LARRYDMO/Job-portal-website/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorHandler renders the last error pushed with c.Error as the JSON error
// envelope. Denied requests are also reported to the security log.
func ErrorHandler(secLogger *security.SecurityLogger) gin.HandlerFunc {
	if secLogger == nil {
		secLogger = security.DefaultLogger()
	}
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		var validationErrs validator.ValidationErrors
		switch {
		case errors.As(err, &appErr):
		case errors.As(err, &validationErrs):
			appErr = apperror.BadRequest(validation.Message(validationErrs))
		default:
			appErr = apperror.Internal(err)
		}

		switch appErr.Kind {
		case apperror.KindInternal:
			// Never expose internal error details to clients
			logger.Log.Error("request failed",
				"error", appErr.Err,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"request_id", response.RequestID(c),
			)
		case apperror.KindForbidden:
			secLogger.LogAccessDenied(c.Request.Context(), security.EventForbiddenAccess,
				c.GetString(string(domain.KeyUserID)), c.ClientIP(), response.RequestID(c), c.FullPath())
		case apperror.KindUnauthorized:
			secLogger.LogAccessDenied(c.Request.Context(), security.EventUnauthorizedAccess,
				"", c.ClientIP(), response.RequestID(c), c.FullPath())
		}

		if c.Writer.Written() {
			return
		}
		code := appErr.Code
		if code == 0 {
			code = http.StatusInternalServerError
		}
		response.Error(c, code, appErr.Kind, appErr.Message)
	}
}
