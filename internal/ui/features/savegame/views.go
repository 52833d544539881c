package savegame

import (
	"html/template"

	"github.com/a-h/templ"

	"github.com/farmhand-tools/modyard/internal/ui/features/common"
)

var views = template.Must(template.New("savegame").Parse(`
{{define "list"}}
<div id="mod-list">
  <header class="window-header">
    <h1>{{.Title}}</h1>
    <p class="subtitle">{{.Collection}}{{if .SaveName}} / {{.SaveName}}{{end}}</p>
  </header>

  {{if not .HasSave}}
  <p class="empty">No savegame loaded.</p>
  {{else}}

  {{range .Errors}}
  <p class="save-error">{{.}}</p>
  {{end}}

  <div class="filter-row">
    {{range .Counters}}
    <label class="filter badge-{{.Name}}">
      <input type="checkbox" data-bind="{{.Name}}" data-on-change="@post('/savegame/filter')"{{if .Checked}} checked{{end}}>
      {{.Label}} <span class="count">{{.Count}}</span>
    </label>
    {{end}}
  </div>

  <table class="mod-table">
    <tbody>
    {{range .Rows}}
      <tr class="{{.ColorClass}}">
        <td class="mod-title">{{.Title}}<span class="mod-name">{{.Name}}</span></td>
        <td class="mod-version">{{.Version}}</td>
        <td class="mod-badges">
          {{range .Badges}}<span class="badge badge-{{.Name}}">{{.Label}}</span>{{end}}
        </td>
        {{if not $.SingleFarm}}<td class="mod-farms">{{.Farms}}</td>{{end}}
      </tr>
    {{end}}
    </tbody>
  </table>

  <footer class="list-footer">
    <span id="select-status"></span>
    <span class="shown">{{.Shown}} / {{.Total}}</span>
    <div class="select-buttons">
      <button data-on-click="$list = 'unused'; @post('/savegame/select')">Select unused ({{.SelectUnused}})</button>
      <button data-on-click="$list = 'inactive'; @post('/savegame/select')">Select inactive ({{.SelectInactive}})</button>
      <button data-on-click="$list = 'nohub'; @post('/savegame/select')">Select non-hub ({{.SelectNoHub}})</button>
      <button data-on-click="$list = 'active'; @post('/savegame/select')">Select active ({{.SelectActive}})</button>
    </div>
  </footer>
  {{end}}
</div>
{{end}}

{{define "select-status"}}
<span id="select-status">{{.}}</span>
{{end}}
`))

// listComponent renders the whole mod list container. The container is
// replaced wholesale on every push; rows carry no client state.
func listComponent(data ViewData) templ.Component {
	return common.Fragment(views, "list", data)
}

func selectStatusComponent(text string) templ.Component {
	return common.Fragment(views, "select-status", text)
}
