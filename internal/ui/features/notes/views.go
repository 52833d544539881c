package notes

import (
	"html/template"

	"github.com/a-h/templ"

	"github.com/farmhand-tools/modyard/internal/ui/features/common"
)

var views = template.Must(template.New("notes").Parse(`
{{define "form"}}
<div id="notes-form">
  <header class="window-header">
    <h1>{{.Title}}</h1>
    <p class="subtitle">{{.Collection}}</p>
  </header>

  {{if not .HasData}}
  <p class="empty">No collection loaded.</p>
  {{else}}
  <div class="note-fields">
    {{range .Fields}}
    <label class="note-field" for="note-{{.Name}}">{{.Label}}
      {{if .Long}}
      <textarea id="note-{{.Name}}" rows="6"
        data-on-change="$field = '{{.Name}}'; $value = evt.target.value; @post('/notes/field')">{{.Value}}</textarea>
      {{else}}
      <input id="note-{{.Name}}" type="text" value="{{.Value}}"
        data-on-change="$field = '{{.Name}}'; $value = evt.target.value; @post('/notes/field')">
      {{end}}
    </label>
    {{end}}
  </div>
  {{end}}
</div>
{{end}}
`))

// formComponent renders the notes form container, replaced wholesale on
// every collection push.
func formComponent(data ViewData) templ.Component {
	return common.Fragment(views, "form", data)
}
