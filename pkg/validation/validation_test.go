package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerForm struct {
	Name     string `validate:"required,max=100,no_emoji"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Role     string `validate:"required,role"`
}

type questionForm struct {
	Text string `validate:"required"`
	Type string `validate:"question_type"`
}

func oneOfFold(allowed ...string) func(string) bool {
	return func(s string) bool {
		for _, a := range allowed {
			if strings.EqualFold(a, s) {
				return true
			}
		}
		return false
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	RegisterValidators(v, map[string]func(string) bool{
		"role":          oneOfFold("Candidate", "Employer"),
		"question_type": oneOfFold("", "text", "mcq"),
	})
	return v
}

func TestCustomValidators(t *testing.T) {
	v := newValidator()

	t.Run("Should accept role in any case", func(t *testing.T) {
		err := v.Struct(registerForm{Name: "Bob", Email: "bob@example.com", Password: "secret1", Role: "employer"})
		assert.NoError(t, err)
	})

	t.Run("Should reject unknown role with readable message", func(t *testing.T) {
		err := v.Struct(registerForm{Name: "Bob", Email: "bob@example.com", Password: "secret1", Role: "Admin"})
		require.Error(t, err)
		assert.Equal(t, []string{"Role must be Candidate or Employer"}, FormatValidationErrors(err))
	})

	t.Run("Should default empty question type and reject others", func(t *testing.T) {
		assert.NoError(t, v.Struct(questionForm{Text: "Why us?"}))
		assert.NoError(t, v.Struct(questionForm{Text: "Relocate?", Type: "MCQ"}))

		err := v.Struct(questionForm{Text: "Essay", Type: "essay"})
		require.Error(t, err)
		assert.Equal(t, "Question type must be text or mcq", Message(err))
	})

	t.Run("Should reject emoji in names", func(t *testing.T) {
		err := v.Struct(registerForm{Name: "Bob 🚀", Email: "bob@example.com", Password: "secret1", Role: "Candidate"})
		require.Error(t, err)
		assert.Contains(t, Message(err), "emoji")
	})
}

func TestFormatValidationErrors(t *testing.T) {
	v := newValidator()
	err := v.Struct(registerForm{})
	require.Error(t, err)

	msgs := FormatValidationErrors(err)
	assert.Contains(t, msgs, "Name is required")
	assert.Contains(t, msgs, "Email is required")
	assert.Contains(t, msgs, "Password is required")
	assert.Contains(t, msgs, "Role is required")

	assert.Equal(t, []string{"boom"}, FormatValidationErrors(errors.New("boom")))
}
