package view_test

import (
	"bytes"
	"context"
	"html/template"
	"io"
	"testing"
	"testing/fstest"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formwizard/pkg/view"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("renders a registered component with locals", func(t *testing.T) {
		t.Parallel()

		r, err := view.New(view.WithView("name", func(locals map[string]any) templ.Component {
			return text("hello " + locals["who"].(string))
		}))
		require.NoError(t, err)

		c, err := r.Component("name", map[string]any{"who": "jane"})
		require.NoError(t, err)
		assert.Equal(t, "hello jane", render(t, c))
	})

	t.Run("unknown template", func(t *testing.T) {
		t.Parallel()

		r, err := view.New()
		require.NoError(t, err)
		_, err = r.Component("missing", nil)
		require.ErrorIs(t, err, view.ErrTemplateNotFound)
	})

	t.Run("fallback template", func(t *testing.T) {
		t.Parallel()

		r, err := view.New(
			view.WithView("step", view.Static(text("generic step"))),
			view.WithFallback("step"),
		)
		require.NoError(t, err)
		c, err := r.Component("anything", nil)
		require.NoError(t, err)
		assert.Equal(t, "generic step", render(t, c))
	})

	t.Run("duplicate and empty names", func(t *testing.T) {
		t.Parallel()

		_, err := view.New(
			view.WithView("a", view.Static(text("1"))),
			view.WithView("a", view.Static(text("2"))),
		)
		require.ErrorIs(t, err, view.ErrDuplicate)

		_, err = view.New(view.WithView("", view.Static(text("1"))))
		require.ErrorIs(t, err, view.ErrEmptyName)
	})

	t.Run("names are sorted", func(t *testing.T) {
		t.Parallel()

		r, err := view.New(
			view.WithView("b", view.Static(text(""))),
			view.WithView("a", view.Static(text(""))),
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, r.Names())
	})
}

func TestHTMLTemplates(t *testing.T) {
	t.Parallel()

	t.Run("from a template set", func(t *testing.T) {
		t.Parallel()

		set := template.Must(template.New("").Parse(`{{define "name"}}<h1>{{.title}}</h1>{{end}}`))
		r, err := view.New(view.WithTemplates(set))
		require.NoError(t, err)

		c, err := r.Component("name", map[string]any{"title": "<Your name>"})
		require.NoError(t, err)
		assert.Equal(t, "<h1>&lt;Your name&gt;</h1>", render(t, c))
	})

	t.Run("from a file system", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"confirm.html": {Data: []byte(`{{define "confirm"}}{{range .fields}}{{.}};{{end}}{{end}}`)},
		}
		r, err := view.New(view.WithFS(fsys, "*.html"))
		require.NoError(t, err)

		c, err := r.Component("confirm", map[string]any{"fields": []string{"name", "age"}})
		require.NoError(t, err)
		assert.Equal(t, "name;age;", render(t, c))
	})

	t.Run("parse error", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{"bad.html": {Data: []byte(`{{define "bad"}}{{.x`)}}
		_, err := view.New(view.WithFS(fsys, "*.html"))
		require.ErrorIs(t, err, view.ErrParse)
	})
}
