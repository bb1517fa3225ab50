package validation

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators registers no_emoji plus one string validator per entry
// of rules, keyed by its tag name.
func RegisterValidators(v *validator.Validate, rules map[string]func(string) bool) {
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	for tag, accept := range rules {
		_ = v.RegisterValidation(tag, StringRule(accept))
	}
}

// StringRule adapts a string predicate to a field validator.
func StringRule(accept func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return accept(fl.Field().String())
	}
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		// Most emojis are in the supplementary planes
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}
