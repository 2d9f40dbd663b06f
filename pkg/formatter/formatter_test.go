package formatter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formwizard/pkg/field"
	"github.com/dmitrymomot/formwizard/pkg/formatter"
)

func TestBuiltins(t *testing.T) {
	t.Parallel()

	reg := formatter.NewRegistry()

	tests := []struct {
		name  string
		fn    string
		input any
		want  any
	}{
		{"trim removes surrounding whitespace", "trim", "  value \t", "value"},
		{"trim ignores non strings", "trim", 42, 42},
		{"boolean true string", "boolean", "true", true},
		{"boolean true bool", "boolean", true, true},
		{"boolean false string", "boolean", "false", false},
		{"boolean false bool", "boolean", false, false},
		{"boolean other string", "boolean", "yes", nil},
		{"boolean empty string", "boolean", "", nil},
		{"uppercase", "uppercase", "abc Straße", "ABC STRASSE"},
		{"lowercase", "lowercase", "ABC", "abc"},
		{"removespaces", "removespaces", " a b\tc\n", "abc"},
		{"singlespaces", "singlespaces", "a  b\t\tc", "a b c"},
		{"hyphens replaces dash runs", "hyphens", "a–b—c——d", "a-b-c-d"},
		{"removeroundbrackets", "removeroundbrackets", "(01) 234", "01 234"},
		{"removehyphens", "removehyphens", "a-b-c", "abc"},
		{"removeslashes", "removeslashes", `a/b\c`, "abc"},
		{"ukphoneprefix plain", "ukphoneprefix", "+447900000000", "07900000000"},
		{"ukphoneprefix bracketed zero", "ukphoneprefix", "+44(0)7900000000", "07900000000"},
		{"ukphoneprefix leaves local numbers", "ukphoneprefix", "07900000000", "07900000000"},
		{"base64decode", "base64decode", "aGVsbG8gd29ybGQ=", "hello world"},
		{"base64decode unpadded", "base64decode", "aGVsbG8", "hello"},
		{"striphtml", "striphtml", "<b>bold</b> text", "bold text"},
		{"sanitize keeps formatting", "sanitize", "<b>bold</b><script>x</script>", "<b>bold</b>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, formatter.Format(reg, []string{tt.fn}, tt.input))
		})
	}
}

func TestBuiltins_Idempotent(t *testing.T) {
	t.Parallel()

	reg := formatter.NewRegistry()
	inputs := []string{"  Mixed  Case – text (1)/2 ", "+44(0)7900 000000", "", "plain"}
	names := []string{
		"trim", "uppercase", "lowercase", "removespaces", "singlespaces", "hyphens",
		"removeroundbrackets", "removehyphens", "removeslashes", "ukphoneprefix", "striphtml",
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			for _, in := range inputs {
				once := formatter.Format(reg, []string{name}, in)
				twice := formatter.Format(reg, []string{name}, once)
				assert.Equal(t, once, twice, "input %q", in)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	reg := formatter.NewRegistry()

	t.Run("applies names in order", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "ABC", formatter.Format(reg, []string{"removespaces", "uppercase"}, " a b c "))
	})

	t.Run("skips unknown names", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "value", formatter.Format(reg, []string{"missing", "trim"}, " value "))
	})

	t.Run("no names returns value", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, " v ", formatter.Format(reg, nil, " v "))
	})
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("registers custom transform", func(t *testing.T) {
		t.Parallel()

		reg := formatter.NewRegistry()
		require.NoError(t, reg.Register("reverse", func(v any) any {
			s, ok := v.(string)
			if !ok {
				return v
			}
			r := []rune(s)
			for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
				r[i], r[j] = r[j], r[i]
			}
			return string(r)
		}))

		assert.Equal(t, "cba", formatter.Format(reg, []string{"reverse"}, "abc"))
		assert.Contains(t, reg.Names(), "reverse")
	})

	t.Run("registries are independent", func(t *testing.T) {
		t.Parallel()

		a := formatter.NewRegistry()
		b := formatter.NewRegistry()
		require.NoError(t, a.Register("shout", func(v any) any { return strings.ToUpper(v.(string)) + "!" }))

		_, ok := b.Lookup("shout")
		assert.False(t, ok)
	})

	t.Run("rejects empty name and nil func", func(t *testing.T) {
		t.Parallel()

		reg := formatter.NewRegistry()
		require.ErrorIs(t, reg.Register("", func(v any) any { return v }), formatter.ErrEmptyName)
		require.ErrorIs(t, reg.Register("x", nil), formatter.ErrNilFunc)
	})
}

func TestEngine(t *testing.T) {
	t.Parallel()

	fields := field.Fields{
		{Key: "name", Formatter: field.Names{"uppercase"}},
		{Key: "raw", IgnoreDefaults: true, Formatter: field.Names{"lowercase"}},
		{Key: "agree", Formatter: field.Names{"boolean"}},
		{Key: "tags"},
	}
	engine := formatter.New(fields, formatter.DefaultNames, nil)

	t.Run("runs defaults then field transforms", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "JANE DOE", engine.Format("name", "  jane   doe "))
	})

	t.Run("ignores defaults when the field opts out", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "  a  b ", engine.Format("raw", "  A  B "))
	})

	t.Run("unknown keys get defaults only", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "a b", engine.Format("other", " a   b "))
	})

	t.Run("maps over lists", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"a", "b c"}, engine.Format("tags", []string{" a ", "b   c"}))
	})

	t.Run("unwraps single element lists", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "JANE", engine.Format("name", []string{" jane "}))
		assert.Equal(t, "x", engine.Format("tags", []any{" x "}))
	})

	t.Run("keeps mixed lists as any", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []any{true, nil}, engine.Format("agree", []string{"true", "maybe"}))
	})

	t.Run("empty value uses the field chain", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", engine.Empty("name"))
		assert.Nil(t, engine.Empty("agree"))
	})

	t.Run("does not modify the input list", func(t *testing.T) {
		t.Parallel()
		in := []any{" a ", " b "}
		engine.Format("tags", in)
		assert.Equal(t, []any{" a ", " b "}, in)
	})

	t.Run("without defaults", func(t *testing.T) {
		t.Parallel()
		e := formatter.New(fields, nil, nil)
		assert.Equal(t, "  JANE ", e.Format("name", "  jane "))
	})
}
