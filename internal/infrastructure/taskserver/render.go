package taskserver

import (
	"html/template"
	"strings"

	"taskwatch/internal/domain/entity"
)

var fragmentTmpl = template.Must(template.New("task_message").Parse(
	`<div id="{{.MsgID}}" class="task-message {{.StatusTag}}{{if .Failed}} ` + entity.MarkerFailed + `{{end}}" ` +
		`data-task_id="{{.ID}}" data-checksum="{{.Checksum}}">` +
		`<span class="task-name">{{.Name}}</span> <span class="task-status">{{.State}}</span>` +
		`{{if .Running}} <span class="task-progress">{{.Progress}}%</span>{{end}}` +
		`{{if .Result}} <span class="task-result">{{.Result}}</span>{{end}}` +
		`</div>`))

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><title>Tasks</title></head>
<body>
<table id="result_list">
{{- range .}}
<tr class="` + entity.DefaultRowClass + ` {{.Level}}"><td>{{.HTML}}</td></tr>
{{- end}}
</table>
</body>
</html>
`))

type fragmentView struct {
	ID        string
	MsgID     string
	Name      string
	State     State
	StatusTag string
	Failed    bool
	Running   bool
	Progress  int
	Result    string
	Checksum  string
}

type rowView struct {
	Level string
	HTML  template.HTML
}

// Fragment renders the replacement markup of one task message.
func (r *Registry) Fragment(t Task) (string, error) {
	var sb strings.Builder
	err := fragmentTmpl.Execute(&sb, fragmentView{
		ID:        t.ID,
		MsgID:     t.MsgID(),
		Name:      r.displayName(t.Name),
		State:     t.State,
		StatusTag: t.State.StatusTag(),
		Failed:    t.State.Propagates(),
		Running:   t.State == StateStarted,
		Progress:  t.Progress,
		Result:    r.displayResult(t),
		Checksum:  t.Checksum(),
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Page renders the admin list page with one row per task.
func (r *Registry) Page() (string, error) {
	tasks := r.List()
	rows := make([]rowView, 0, len(tasks))
	for _, t := range tasks {
		frag, err := r.Fragment(t)
		if err != nil {
			return "", err
		}
		rows = append(rows, rowView{Level: t.State.Level(), HTML: template.HTML(frag)})
	}

	var sb strings.Builder
	if err := pageTmpl.Execute(&sb, rows); err != nil {
		return "", err
	}
	return sb.String(), nil
}
