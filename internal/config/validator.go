package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aleister1102/livereload/internal/common/errorwrapper"
	"github.com/go-playground/validator/v10"
)

// enumTags are custom validator tags that accept a fixed set of
// case-insensitive values. The empty string always passes so defaults apply.
var enumTags = map[string][]string{
	"loglevel":  {"trace", "debug", "info", "warn", "error", "fatal", "panic"},
	"logformat": {"console", "text", "json"},
	"driver":    {DriverBrowser, DriverStatic},
}

func newValidator() *validator.Validate {
	validate := validator.New()
	for tag, allowed := range enumTags {
		_ = validate.RegisterValidation(tag, oneOfFold(allowed))
	}
	return validate
}

func oneOfFold(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		for _, a := range allowed {
			if strings.EqualFold(value, a) {
				return true
			}
		}
		return false
	}
}

// ValidateConfig checks every section and lists all failing fields at once.
func ValidateConfig(cfg *GlobalConfig) error {
	err := newValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return errorwrapper.WrapError(err, "configuration validation error")
	}

	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		line := fmt.Sprintf("%s: failed '%s'", e.Namespace(), e.Tag())
		if e.Param() != "" {
			line += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		if v := e.Value(); v != nil && v != "" {
			line += fmt.Sprintf(", got '%v'", v)
		}
		if allowed, ok := enumTags[e.Tag()]; ok {
			line += fmt.Sprintf(", allowed: %s", strings.Join(allowed, "|"))
		}
		lines = append(lines, line)
	}
	return fmt.Errorf("%w:\n  %s", errorwrapper.ErrInvalidConfiguration, strings.Join(lines, "\n  "))
}
