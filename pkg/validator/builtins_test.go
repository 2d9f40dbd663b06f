package validator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formwizard/pkg/validator"
)

func fixedClock() time.Time {
	return time.Date(2014, time.November, 5, 15, 9, 0, 0, time.UTC)
}

type check struct {
	value any
	args  []any
}

func runChecks(t *testing.T, reg *validator.Registry, name string, valid, invalid []check) {
	t.Helper()
	for _, c := range valid {
		ok, err := reg.Check(name, c.value, c.args...)
		require.NoError(t, err)
		assert.True(t, ok, "%s(%#v, %v) should be valid", name, c.value, c.args)
	}
	for _, c := range invalid {
		ok, err := reg.Check(name, c.value, c.args...)
		require.NoError(t, err)
		assert.False(t, ok, "%s(%#v, %v) should be invalid", name, c.value, c.args)
	}
}

func vals(values ...any) []check {
	out := make([]check, len(values))
	for i, v := range values {
		out[i] = check{value: v}
	}
	return out
}

func TestBuiltins(t *testing.T) {
	t.Parallel()

	reg := validator.NewRegistry(validator.WithClock(fixedClock))

	tests := []struct {
		name    string
		valid   []check
		invalid []check
	}{
		{
			name:    "required",
			valid:   vals(true, false, 1, 0, "a"),
			invalid: vals(nil, ""),
		},
		{
			name:    "string",
			valid:   vals("", "a"),
			invalid: vals(nil, 1, true),
		},
		{
			name: "regex",
			valid: []check{
				{"abc", []any{"^[a-c]+$"}},
				{"", []any{"^$"}},
			},
			invalid: []check{
				{"abd", []any{"^[a-c]+$"}},
				{1, []any{"1"}},
				{"a", []any{"("}},
				{"a", nil},
			},
		},
		{
			name: "minlength",
			valid: []check{
				{"", []any{5}},
				{"abc", []any{3}},
				{"ééé", []any{3}},
				{"abcd", []any{"3"}},
			},
			invalid: []check{
				{"ab", []any{3}},
				{nil, []any{1}},
			},
		},
		{
			name:    "maxlength",
			valid:   []check{{"", []any{0}}, {"abc", []any{3}}, {"ééé", []any{3}}},
			invalid: []check{{"abcd", []any{3}}, {1, []any{3}}},
		},
		{
			name:    "exactlength",
			valid:   []check{{"", []any{2}}, {"ab", []any{2}}},
			invalid: []check{{"a", []any{2}}, {"abc", []any{2}}},
		},
		{
			name:    "alphanum",
			valid:   vals("", "abc123", "ABC"),
			invalid: vals(nil, 9, "-.", "a b"),
		},
		{
			name:    "numeric",
			valid:   vals("", "0123"),
			invalid: vals("1.5", "a", 1),
		},
		{
			name:    "email",
			valid:   vals("", "jane@example.com", "JANE.DOE+tag@sub.example.co.uk"),
			invalid: vals("foo", "foo@bar", "@example.com", nil),
		},
		{
			name:    "url",
			valid:   vals("", "example.com", "https://www.example.com/path?q=1"),
			invalid: vals("not a url", nil),
		},
		{
			name:    "phonenumber",
			valid:   vals("", "+447900000000", "(01234)567890", "01234-567890"),
			invalid: vals("01234 567890 ext", "0123456789012345678"),
		},
		{
			name:    "ukmobilephone",
			valid:   vals("", "07900000000"),
			invalid: vals("01234567890", "0790000000", "+447900000000"),
		},
		{
			name:    "postcode",
			valid:   vals("", "SW1A 1AA", "sw1a1aa", "M1 1AE", "CR2 6XH"),
			invalid: vals("123", "SW1A 1A", "QQ1 1AA AA"),
		},
		{
			name: "equal",
			valid: []check{
				{"one", []any{"one", "two"}},
				{"", []any{"one"}},
				{[]string{"one", "two"}, []any{"one", "two", "three"}},
				{[]any{"", "two"}, []any{"two"}},
				{true, []any{"true"}},
			},
			invalid: []check{
				{"four", []any{"one", "two"}},
				{[]string{"one", "four"}, []any{"one", "two"}},
				{"one", nil},
			},
		},
		{
			name:    "date",
			valid:   vals("", "2014-11-05", "2012-02-29"),
			invalid: vals("2013-02-29", "2014-13-01", "05/11/2014", "2014-1-5", nil),
		},
		{
			name:    "date-year",
			valid:   vals("2014", "0001"),
			invalid: vals("14", "20145", "abcd"),
		},
		{
			name:    "date-month",
			valid:   vals("01", "12"),
			invalid: vals("00", "13", "1"),
		},
		{
			name:    "date-day",
			valid:   vals("01", "28", "31"),
			invalid: vals("00", "32", "1"),
		},
		{
			name: "before",
			valid: []check{
				{"", nil},
				{"1980-02-29", nil},
				{"2014-11-05", []any{"2017-01-01"}},
				{"2014-11-04", []any{1, "day"}},
				{"1993-11-05", []any{21, "years"}},
				{"2013-07-01", []any{1, "year", 3, "months"}},
				{"2016-01-01", []any{-1, "year", -3, "months"}},
				{"1993-11-05", []any{21}},
			},
			invalid: []check{
				{"2014-11-06", nil},
				{"2017-11-05", []any{"2016-01-01"}},
				{"2014-11-05", []any{1, "day"}},
				{"1993-11-06", []any{21, "years"}},
				{"2013-09-01", []any{1, "year", 3, "months"}},
				{"2016-03-01", []any{-1, "year", -3, "months"}},
				{"2014-11-04", []any{1, "fortnights"}},
				{"not a date", nil},
			},
		},
		{
			name: "after",
			valid: []check{
				{"", []any{"2014-12-15"}},
				{"2014-12-16", []any{"2014-12-15"}},
				{"2014-11-05", []any{1, "day"}},
				{"1993-11-06", []any{21, "years"}},
				{"2013-09-01", []any{1, "year", 3, "months"}},
				{"2016-03-01", []any{-1, "year", -3, "months"}},
			},
			invalid: []check{
				{"2014-11-05", nil},
				{"2014-12-16", []any{"2014-12-16"}},
				{"2013-12-15", []any{"2013-12-16"}},
				{"2014-11-04", []any{1, "day"}},
				{"1993-11-05", []any{21, "years"}},
				{"2013-07-01", []any{1, "year", 3, "months"}},
				{"2016-01-01", []any{-1, "year", -3, "months"}},
			},
		},
		{
			name:    "alpha",
			valid:   vals("", "abc"),
			invalid: vals("abc1", 1),
		},
		{
			name:    "uuid",
			valid:   vals("", "6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
			invalid: vals("6ba7b810"),
		},
		{
			name:    "ip",
			valid:   vals("", "127.0.0.1", "::1"),
			invalid: vals("256.0.0.1"),
		},
		{
			name:    "json",
			valid:   vals("", `{"a":1}`),
			invalid: vals("{a:1}"),
		},
		{
			name:    "int",
			valid:   vals("", "-12", "42"),
			invalid: vals("4.2"),
		},
		{
			name:    "hexcolor",
			valid:   vals("", "#fff", "a0b1c2"),
			invalid: vals("#ggg"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			runChecks(t, reg, tt.name, tt.valid, tt.invalid)
		})
	}
}

func TestBuiltins_EmptyPasses(t *testing.T) {
	t.Parallel()

	reg := validator.NewRegistry(validator.WithClock(fixedClock))
	args := map[string][]any{
		"regex":       {"^$"},
		"minlength":   {10},
		"maxlength":   {0},
		"exactlength": {3},
		"equal":       {"x"},
		"before":      {"2000-01-01"},
		"after":       {"2100-01-01"},
	}
	skip := map[string]bool{
		"required": true, "string": true,
		"date-year": true, "date-month": true, "date-day": true,
	}

	for _, name := range reg.Names() {
		if skip[name] {
			continue
		}
		ok, err := reg.Check(name, "", args[name]...)
		require.NoError(t, err)
		assert.True(t, ok, "%s should accept the empty string", name)
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("check unknown validator", func(t *testing.T) {
		t.Parallel()

		reg := validator.NewRegistry()
		_, err := reg.Check("nope", "x")
		require.ErrorIs(t, err, validator.ErrUndefinedValidator)
		assert.Contains(t, err.Error(), "nope")
	})

	t.Run("register custom validator", func(t *testing.T) {
		t.Parallel()

		reg := validator.NewRegistry()
		require.NoError(t, reg.Register("even", func(v any, _ ...any) bool {
			s, _ := v.(string)
			return len(s)%2 == 0
		}))

		assert.True(t, reg.Has("even"))
		ok, err := reg.Check("even", "ab")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("register field func", func(t *testing.T) {
		t.Parallel()

		reg := validator.NewRegistry()
		require.NoError(t, reg.RegisterFieldFunc("matches", func(v any, values map[string]any, args ...any) bool {
			return values[args[0].(string)] == v
		}))
		assert.True(t, reg.Has("matches"))
	})

	t.Run("rejects empty name and nil func", func(t *testing.T) {
		t.Parallel()

		reg := validator.NewRegistry()
		require.ErrorIs(t, reg.Register("", func(any, ...any) bool { return true }), validator.ErrEmptyName)
		require.ErrorIs(t, reg.Register("x", nil), validator.ErrNilFunc)
		require.ErrorIs(t, reg.RegisterFieldFunc("x", nil), validator.ErrNilFunc)
	})

	t.Run("registries are independent", func(t *testing.T) {
		t.Parallel()

		a := validator.NewRegistry()
		b := validator.NewRegistry()
		require.NoError(t, a.Register("custom", func(any, ...any) bool { return true }))
		assert.False(t, b.Has("custom"))
	})
}
