package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formwizard/pkg/field"
	"github.com/dmitrymomot/formwizard/pkg/validator"
)

func TestNewEngine(t *testing.T) {
	t.Parallel()

	t.Run("undefined validator", func(t *testing.T) {
		t.Parallel()

		_, err := validator.NewEngine(field.Fields{
			{Key: "name", Validate: field.Rules{{Type: "required"}, {Type: "nope"}}},
		}, nil)
		require.ErrorIs(t, err, validator.ErrUndefinedValidator)
		assert.Contains(t, err.Error(), "nope")
	})

	t.Run("anonymous custom rule", func(t *testing.T) {
		t.Parallel()

		_, err := validator.NewEngine(field.Fields{
			{Key: "name", Validate: field.Rules{field.Custom("", func(any) bool { return true })}},
		}, nil)
		require.ErrorIs(t, err, validator.ErrAnonymousValidator)
	})

	t.Run("options add an equal rule", func(t *testing.T) {
		t.Parallel()

		var fields field.Fields
		require.NoError(t, yaml.Unmarshal([]byte(`
choice:
  validate: required
  options: [one, {value: two}, three]
`), &fields))

		engine, err := validator.NewEngine(fields, nil)
		require.NoError(t, err)

		rules := engine.Rules("choice")
		require.Len(t, rules, 2)
		assert.Equal(t, "equal", rules[1].Type)
		assert.Equal(t, []any{"one", "two", "three"}, rules[1].Arguments)
		assert.Len(t, fields[0].Validate, 1, "input fields are not modified")
	})
}

func TestEngine_ValidateField(t *testing.T) {
	t.Parallel()

	t.Run("first failure wins", func(t *testing.T) {
		t.Parallel()

		calls := map[string]int{}
		reg := validator.NewRegistry()
		for _, name := range []string{"first", "second", "third"} {
			require.NoError(t, reg.Register(name, func(any, ...any) bool {
				calls[name]++
				return name == "first"
			}))
		}

		engine, err := validator.NewEngine(field.Fields{
			{Key: "f", Validate: field.Rules{{Type: "first"}, {Type: "second"}, {Type: "third"}}},
		}, reg)
		require.NoError(t, err)

		ve := engine.ValidateField("f", "x", map[string]any{"f": "x"}, "")
		require.NotNil(t, ve)
		assert.Equal(t, "second", ve.Type)
		assert.Equal(t, map[string]int{"first": 1, "second": 1}, calls)
	})

	t.Run("error carries rule details", func(t *testing.T) {
		t.Parallel()

		engine, err := validator.NewEngine(field.Fields{
			{Key: "name", Validate: field.Rules{
				{Type: "maxlength", Arguments: []any{3}, Group: "person", Redirect: "/exit"},
			}},
		}, nil)
		require.NoError(t, err)

		ve := engine.ValidateField("name", "abcd", nil, "")
		require.NotNil(t, ve)
		assert.Equal(t, &validator.ValidationError{
			Key:       "name",
			Type:      "maxlength",
			Arguments: []any{3},
			Group:     "person",
			Redirect:  "/exit",
		}, ve)
	})

	t.Run("custom rule uses its name", func(t *testing.T) {
		t.Parallel()

		isFoo := func(v any) bool { return v == "foo" }
		engine, err := validator.NewEngine(field.Fields{
			{Key: "name", Validate: field.Rules{field.Custom("isFoo", isFoo)}},
		}, nil)
		require.NoError(t, err)

		assert.Nil(t, engine.ValidateField("name", "foo", nil, ""))
		ve := engine.ValidateField("name", "bar", nil, "")
		require.NotNil(t, ve)
		assert.Equal(t, "isFoo", ve.Type)
	})

	t.Run("field func sees all values", func(t *testing.T) {
		t.Parallel()

		reg := validator.NewRegistry()
		require.NoError(t, reg.RegisterFieldFunc("same-as", func(v any, values map[string]any, args ...any) bool {
			return values[args[0].(string)] == v
		}))
		engine, err := validator.NewEngine(field.Fields{
			{Key: "password"},
			{Key: "confirm", Validate: field.Rules{{Type: "same-as", Arguments: []any{"password"}}}},
		}, reg)
		require.NoError(t, err)

		values := map[string]any{"password": "secret", "confirm": "secret"}
		assert.Nil(t, engine.ValidateField("confirm", "secret", values, ""))
		assert.NotNil(t, engine.ValidateField("confirm", "other", values, ""))
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		engine, err := validator.NewEngine(nil, nil)
		require.NoError(t, err)
		assert.Nil(t, engine.ValidateField("missing", "", nil, ""))
	})
}

func TestEngine_Dependent(t *testing.T) {
	t.Parallel()

	fields := field.Fields{
		{Key: "has-phone"},
		{Key: "phone", Dependent: &field.Condition{Field: "has-phone", Value: "yes"}, Validate: field.Rules{{Type: "required"}}},
		{Key: "contact", Dependent: &field.Condition{Field: "methods", Value: "email"}, Validate: field.Rules{{Type: "required"}}},
		{Key: "methods"},
		{Key: "orphan", Dependent: field.When("not-configured"), Validate: field.Rules{{Type: "required"}}},
		{Key: "agree", Dependent: field.When("has-phone"), Validate: field.Rules{{Type: "required"}}},
	}
	engine, err := validator.NewEngine(fields, nil)
	require.NoError(t, err)

	t.Run("unmet condition resets value and skips rules", func(t *testing.T) {
		t.Parallel()

		values := map[string]any{"has-phone": "no", "phone": "stale"}
		assert.Nil(t, engine.ValidateField("phone", "stale", values, "EMPTY"))
		assert.Equal(t, "EMPTY", values["phone"])
	})

	t.Run("met condition validates", func(t *testing.T) {
		t.Parallel()

		values := map[string]any{"has-phone": "yes", "phone": ""}
		ve := engine.ValidateField("phone", "", values, "")
		require.NotNil(t, ve)
		assert.Equal(t, "required", ve.Type)
	})

	t.Run("membership in a list value", func(t *testing.T) {
		t.Parallel()

		values := map[string]any{"methods": []string{"sms", "email"}}
		assert.NotNil(t, engine.ValidateField("contact", "", values, ""))

		values = map[string]any{"methods": []string{"sms"}}
		assert.Nil(t, engine.ValidateField("contact", "", values, ""))
	})

	t.Run("condition on unknown field always holds", func(t *testing.T) {
		t.Parallel()

		assert.NotNil(t, engine.ValidateField("orphan", "", map[string]any{}, ""))
	})

	t.Run("shorthand matches the string true", func(t *testing.T) {
		t.Parallel()

		assert.NotNil(t, engine.ValidateField("agree", "", map[string]any{"has-phone": "true"}, ""))
		assert.NotNil(t, engine.ValidateField("agree", "", map[string]any{"has-phone": true}, ""))
		assert.Nil(t, engine.ValidateField("agree", "", map[string]any{"has-phone": "false"}, ""))
	})
}

func TestEngine_Validate(t *testing.T) {
	t.Parallel()

	t.Run("no errors returns nil", func(t *testing.T) {
		t.Parallel()

		engine, err := validator.NewEngine(field.Fields{{Key: "a", Validate: field.Rules{{Type: "required"}}}}, nil)
		require.NoError(t, err)
		assert.Nil(t, engine.Validate(map[string]any{"a": "x"}, nil))
	})

	t.Run("keys errors by field", func(t *testing.T) {
		t.Parallel()

		engine, err := validator.NewEngine(field.Fields{
			{Key: "email", Validate: field.Rules{{Type: "required"}, {Type: "email"}}},
		}, nil)
		require.NoError(t, err)

		errs := engine.Validate(map[string]any{"email": "foo"}, nil)
		require.Len(t, errs, 1)
		ve, ok := errs["email"].(*validator.ValidationError)
		require.True(t, ok)
		assert.Equal(t, "email", ve.Type)
		assert.Equal(t, "email", ve.Key)
		assert.True(t, validator.IsValidationError(errs))
	})

	t.Run("groups collapse to one entry", func(t *testing.T) {
		t.Parallel()

		rules := field.Rules{{Type: "required", Group: "dob"}}
		engine, err := validator.NewEngine(field.Fields{
			{Key: "day", Validate: rules},
			{Key: "month", Validate: rules},
			{Key: "year", Validate: rules},
		}, nil)
		require.NoError(t, err)

		errs := engine.Validate(map[string]any{"day": "", "month": "", "year": "2000"}, nil)
		require.Len(t, errs, 1)
		ve := errs["dob"].(*validator.ValidationError)
		assert.Equal(t, "month", ve.Key, "last failing field of the group wins")
	})

	t.Run("skipped dependent gets empty value", func(t *testing.T) {
		t.Parallel()

		engine, err := validator.NewEngine(field.Fields{
			{Key: "toggle"},
			{Key: "detail", Dependent: field.When("toggle"), Validate: field.Rules{{Type: "required"}, {Type: "email"}}},
		}, nil)
		require.NoError(t, err)

		values := map[string]any{"toggle": "false", "detail": "not an email"}
		errs := engine.Validate(values, func(key string) any { return "empty:" + key })
		assert.Empty(t, errs)
		assert.Equal(t, "empty:detail", values["detail"])
	})
}
