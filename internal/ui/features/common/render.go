// Package common provides shared rendering utilities for the window
// features. Views are html/template fragments wrapped as templ components
// so handlers can patch them over SSE.
package common

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

// Fragment wraps a named template execution as a templ component.
// Templates are parsed once at package init; execution errors surface as
// render errors on the component.
func Fragment(t *template.Template, name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return t.ExecuteTemplate(w, name, data)
	})
}

// pageShell is the document frame shared by every window.
var pageShell = template.Must(template.New("shell").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} - Modyard</title>
<link rel="stylesheet" href="/static/app.css">
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"></script>
</head>
<body>
<main id="window-root" data-init data-on-load="@get('{{.UpdatePath}}')">
`))

const pageShellEnd = `</main>
</body>
</html>
`

// pageData feeds the shell template.
type pageData struct {
	Title      string
	UpdatePath string
}

// Page wraps a body component in the shared document frame. UpdatePath is
// the window's SSE endpoint, opened on load.
func Page(title, updatePath string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := pageShell.Execute(w, pageData{Title: title, UpdatePath: updatePath}); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, pageShellEnd)
		return err
	})
}

// Render writes a component as a full HTTP response body.
func Render(w io.Writer, c templ.Component) error {
	return c.Render(context.Background(), w)
}
