package response

import (
	"errors"

	"github.com/LARRYDMO/Job-portal-website/pkg/apperror"
	"github.com/LARRYDMO/Job-portal-website/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Success   bool          `json:"success"`
	Kind      apperror.Kind `json:"kind"`
	Message   string        `json:"message"`
	RequestID string        `json:"request_id,omitempty"`
}

// MessageResponse is the body of calls that only confirm an action.
type MessageResponse struct {
	Message string `json:"message"`
}

// RequestID returns the id assigned by the RequestID middleware.
func RequestID(c *gin.Context) string {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string)
	return idStr
}

// Success sends data as the JSON body
func Success(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// Message sends {"message": message}
func Message(c *gin.Context, code int, message string) {
	c.JSON(code, MessageResponse{Message: message})
}

// Error sends an error response
func Error(c *gin.Context, code int, kind apperror.Kind, message string) {
	c.JSON(code, ErrorResponse{
		Success:   false,
		Kind:      kind,
		Message:   message,
		RequestID: RequestID(c),
	})
}

// List keeps empty results encoded as [] instead of null.
func List[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// BindError turns a binding failure into a 400 with readable field messages.
// Bodies that could not be decoded at all get fallback as their message.
func BindError(err error, fallback string) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return apperror.BadRequest(validation.Message(validationErrs))
	}
	return apperror.BadRequest(fallback)
}
