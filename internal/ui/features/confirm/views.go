package confirm

import (
	"html/template"

	"github.com/a-h/templ"

	"github.com/farmhand-tools/modyard/internal/ui/features/common"
)

var views = template.Must(template.New("confirm").Parse(`
{{define "dialog"}}
<div id="confirm-dialog">
  <header class="window-header">
    <h1>{{.Title}}</h1>
    <p class="subtitle">{{.Destination}}</p>
  </header>

  {{if not .HasData}}
  <p class="empty">Nothing to copy.</p>
  {{else}}
  <table class="file-table">
    <tbody>
    {{range .Files}}
      <tr>
        <td class="file-name">
          <a href="#" data-on-click="$name = '{{.Name}}'; @post('/confirm/link')">{{.Name}}</a>
        </td>
        <td class="file-source">{{.Source}}</td>
        <td class="file-size">{{.Size}}</td>
      </tr>
    {{end}}
    </tbody>
  </table>

  <footer class="dialog-buttons">
    <button class="primary" data-on-click="@post('/confirm/accept')">Copy</button>
    <button data-on-click="@post('/confirm/cancel')">Cancel</button>
  </footer>
  {{end}}
</div>
{{end}}
`))

// dialogComponent renders the confirm dialog container, replaced wholesale
// on every push.
func dialogComponent(data ViewData) templ.Component {
	return common.Fragment(views, "dialog", data)
}
