package validator_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formwizard/pkg/validator"
)

func mockTranslate(translations map[string]string) validator.TranslateFunc {
	return func(key string, values map[string]any) string {
		tmpl, ok := translations[key]
		if !ok {
			return key
		}
		for k, v := range values {
			tmpl = strings.ReplaceAll(tmpl, "{{"+k+"}}", fmt.Sprint(v))
		}
		return tmpl
	}
}

func TestValidationError_Translate(t *testing.T) {
	t.Parallel()

	translate := mockTranslate(map[string]string{
		"fields.name.label":         "Full Name",
		"validation.name.required":  "Enter your {{label}}",
		"validation.maxlength":      "{{label}} must be at most {{maxlength}} characters",
		"validation.email.default":  "Check the email address",
		"validation.past":           "You must be at least {{age}} old",
		"validation.default":        "Something is wrong with {{label}}",
		"fields.dob.legend":         "Date Of Birth",
		"validation.dob.after":      "{{legend}} must be after {{after}}",
		"validation.intro.required": "{{service}} needs this",
	})

	tests := []struct {
		name string
		err  *validator.ValidationError
		want string
	}{
		{
			name: "field and type",
			err:  validator.NewValidationError("name", validator.WithType("required")),
			want: "Enter your full name",
		},
		{
			name: "type with first argument",
			err:  validator.NewValidationError("name", validator.WithType("maxlength"), validator.WithArguments(10)),
			want: "full name must be at most 10 characters",
		},
		{
			name: "field default",
			err:  validator.NewValidationError("email", validator.WithType("email")),
			want: "Check the email address",
		},
		{
			name: "past joins arguments into age",
			err:  validator.NewValidationError("dob", validator.WithType("past"), validator.WithArguments(18, "years")),
			want: "You must be at least 18 years old",
		},
		{
			name: "legend placeholder",
			err:  validator.NewValidationError("dob", validator.WithType("after"), validator.WithArguments("2000-01-01")),
			want: "date of birth must be after 2000-01-01",
		},
		{
			name: "global default",
			err:  validator.NewValidationError("name", validator.WithType("regex")),
			want: "Something is wrong with full name",
		},
		{
			name: "locals are placeholders",
			err:  validator.NewValidationError("intro", validator.WithType("required")),
			want: "Passport service needs this",
		},
		{
			name: "explicit message is kept",
			err:  validator.NewValidationError("name", validator.WithType("required"), validator.WithMessage("custom")),
			want: "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.err.Translate(translate, map[string]any{"service": "Passport service"})
			assert.Equal(t, tt.want, tt.err.GetMessage())
		})
	}

	t.Run("falls back to generic texts", func(t *testing.T) {
		t.Parallel()

		ve := validator.NewValidationError("x")
		ve.Translate(mockTranslate(nil), nil)
		assert.Equal(t, "Error", ve.GetMessage())
		assert.Equal(t, "Oops, something went wrong", ve.GetTitle())
		assert.Equal(t, validator.DefaultType, ve.Type)
	})

	t.Run("nil func is no-op", func(t *testing.T) {
		t.Parallel()

		ve := validator.NewValidationError("x")
		ve.Translate(nil, nil)
		assert.Empty(t, ve.Message)
	})

	t.Run("lookup chain order", func(t *testing.T) {
		t.Parallel()

		ve := validator.NewValidationError("name", validator.WithType("required"))
		assert.Equal(t, []string{
			"validation.name.required",
			"validation.name.default",
			"validation.required",
			"validation.default",
		}, ve.MessageKeys())
	})
}

func TestErrors(t *testing.T) {
	t.Parallel()

	t.Run("translate fills every entry", func(t *testing.T) {
		t.Parallel()

		errs := validator.Errors{
			"a": validator.NewValidationError("a", validator.WithType("required")),
			"b": validator.NewValidationError("b", validator.WithType("required")),
		}
		errs.Translate(mockTranslate(map[string]string{"validation.required": "Required"}), nil)
		for _, ve := range errs.ValidationErrors() {
			assert.Equal(t, "Required", ve.Message)
		}
	})

	t.Run("keys and list are sorted", func(t *testing.T) {
		t.Parallel()

		errs := validator.Errors{
			"b": validator.NewValidationError("b"),
			"a": validator.NewValidationError("a"),
		}
		assert.Equal(t, []string{"a", "b"}, errs.Keys())
		list := errs.ValidationErrors()
		require.Len(t, list, 2)
		assert.Equal(t, "a", list[0].Key)
		assert.Contains(t, errs.Error(), "a: default; b: default")
	})

	t.Run("map round trip", func(t *testing.T) {
		t.Parallel()

		errs := validator.Errors{"a": validator.NewValidationError("a", validator.WithRedirect("/exit"))}
		assert.Equal(t, errs, validator.FromMap(errs.Map()))
		assert.Nil(t, validator.FromMap(nil))
	})

	t.Run("deprecation notice", func(t *testing.T) {
		t.Parallel()

		notice, ok := validator.NewValidationError("a", validator.WithDeprecation("use b")).Deprecated()
		assert.True(t, ok)
		assert.Equal(t, "use b", notice)

		_, ok = validator.NewValidationError("a").Deprecated()
		assert.False(t, ok)
	})
}

func TestIsValidationError(t *testing.T) {
	t.Parallel()

	ve := validator.NewValidationError("a")

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"empty errors", validator.Errors{}, false},
		{"plain error", errors.New("db down"), false},
		{"only validation errors", validator.Errors{"a": ve}, true},
		{"wrapped errors", fmt.Errorf("step: %w", validator.Errors{"a": ve}), true},
		{"mixed errors", validator.Errors{"a": ve, "b": errors.New("db down")}, false},
		{"single validation error", ve, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, validator.IsValidationError(tt.err))
		})
	}
}
