package apperror

import (
	"errors"
	"net/http"
)

// Kind is the stable, machine-usable error category sent to clients.
type Kind string

const (
	KindValidation           Kind = "validation"
	KindInvalidCredentials   Kind = "invalid_credentials"
	KindUnauthorized         Kind = "unauthorized"
	KindForbidden            Kind = "forbidden"
	KindNotFound             Kind = "not_found"
	KindJobNotFound          Kind = "job_not_found"
	KindResumeRequired       Kind = "resume_required"
	KindDuplicateApplication Kind = "duplicate_application"
	KindEmailExists          Kind = "email_exists"
	KindInvalidStatus        Kind = "invalid_status"
	KindRateLimited          Kind = "rate_limited"
	KindInternal             Kind = "internal"
)

type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, kind Kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, KindValidation, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, KindUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, KindForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, KindNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, KindDuplicateApplication, message, nil)
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, KindRateLimited, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, KindInternal, "Internal Server Error", err)
}

// Domain-specific constructors used by the usecases.

func InvalidCredentials() *AppError {
	return New(http.StatusUnauthorized, KindInvalidCredentials, "Invalid credentials", nil)
}

func EmailExists() *AppError {
	return New(http.StatusBadRequest, KindEmailExists, "Email already exists", nil)
}

func JobNotFound() *AppError {
	return New(http.StatusBadRequest, KindJobNotFound, "Job not found", nil)
}

func ResumeRequired() *AppError {
	return New(http.StatusBadRequest, KindResumeRequired, "Resume required", nil)
}

func DuplicateApplication() *AppError {
	return New(http.StatusConflict, KindDuplicateApplication, "You have already applied to this job", nil)
}

func InvalidStatus() *AppError {
	return New(http.StatusBadRequest, KindInvalidStatus, "Invalid status", nil)
}

// KindOf reports the kind of err, or KindInternal when err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
