package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/datngo2103/mombot/internal/minutes"
)

var minutesTemplate = template.Must(template.New("minutes").Funcs(template.FuncMap{
	"inc":   func(i int) int { return i + 1 },
	"upper": strings.ToUpper,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
  body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; }
  .header { background: #667eea; color: white; padding: 20px; border-radius: 8px 8px 0 0; }
  h2 { color: #667eea; border-bottom: 2px solid #667eea; padding-bottom: 8px; }
  .summary { background-color: #f8f9ff; padding: 15px; border-left: 4px solid #667eea; }
  .item { border: 1px solid #e0e0e0; padding: 12px; margin: 10px 0; border-radius: 4px; }
  .decision { border-left: 4px solid #10b981; }
  .action { border-left: 4px solid #f59e0b; }
  .question { border-left: 4px solid #ef4444; }
  .detail { color: #666; font-size: 14px; margin-left: 20px; }
  .priority-high { color: #ef4444; font-weight: bold; }
  .priority-medium { color: #f59e0b; }
  .priority-low { color: #10b981; }
  .attendee { display: inline-block; background-color: #f0f0f0; padding: 5px 12px; border-radius: 20px; margin: 2px; font-size: 14px; }
  .footer { margin-top: 40px; border-top: 1px solid #e0e0e0; text-align: center; color: #666; font-size: 12px; }
  pre { background-color: #f8f8f8; padding: 15px; white-space: pre-wrap; }
</style>
</head>
<body>
<div class="header">
  <h1>Minutes of Meeting</h1>
  <div>{{.Title}} &mdash; generated on {{.Date}}</div>
</div>

{{if .M.Attendees}}
<h2>Attendees</h2>
<div>{{range .M.Attendees}}<span class="attendee">{{.}}</span>{{end}}</div>
{{end}}

<h2>Summary</h2>
<div class="summary">{{.M.Summary}}</div>

{{if .M.KeyPoints}}
<h2>Key Discussion Points</h2>
<ul>{{range .M.KeyPoints}}<li>{{.}}</li>{{end}}</ul>
{{end}}

{{if .M.Decisions}}
<h2>Decisions Made</h2>
{{range $i, $d := .M.Decisions}}
<div class="item decision">
  <div><strong>{{inc $i}}. {{$d.Decision}}</strong></div>
  <div class="detail">Decided by: {{or $d.MadeBy "Team"}}</div>
  {{if $d.Timestamp}}<div class="detail">Time: {{$d.Timestamp}}</div>{{end}}
</div>
{{end}}
{{end}}

{{if .M.ActionItems}}
<h2>Action Items</h2>
{{range $i, $a := .M.ActionItems}}
<div class="item action">
  <div><strong>{{inc $i}}. {{$a.Task}}</strong></div>
  <div class="detail">Owner: {{or $a.Owner "Unassigned"}}</div>
  <div class="detail">Deadline: {{or $a.Deadline "Not specified"}}</div>
  <div class="detail">Priority: <span class="priority-{{or $a.Priority "medium"}}">{{upper (or $a.Priority "medium")}}</span></div>
</div>
{{end}}
{{end}}

{{if .M.Questions}}
<h2>Open Questions</h2>
{{range $i, $q := .M.Questions}}
<div class="item question"><strong>{{inc $i}}. {{$q}}</strong></div>
{{end}}
{{end}}

{{if .M.NextSteps}}
<h2>Next Steps</h2>
<div class="summary">{{.M.NextSteps}}</div>
{{end}}

{{if .Transcript}}
<h2>Full Transcript</h2>
<pre>{{.Transcript}}</pre>
{{end}}

<div class="footer">
  <p>This MOM was automatically generated by MOM Bot</p>
</div>
</body>
</html>`))

type templateData struct {
	Title      string
	Date       string
	M          *minutes.Minutes
	Transcript string
}

// renderHTML builds the HTML body for a minutes email.
func renderHTML(title string, m *minutes.Minutes, transcript string) (string, error) {
	data := templateData{
		Title:      title,
		Date:       m.Metadata.GeneratedAt.Format("2006-01-02"),
		M:          m,
		Transcript: transcript,
	}
	if data.Date == "0001-01-01" {
		data.Date = time.Now().Format("2006-01-02")
	}

	var buf bytes.Buffer
	if err := minutesTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render minutes email: %w", err)
	}
	return buf.String(), nil
}

// renderPlainText builds the fallback text body.
func renderPlainText(title string, m *minutes.Minutes) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Minutes of Meeting: %s\n\n", title)
	fmt.Fprintf(&b, "Summary:\n%s\n\n", m.Summary)
	b.WriteString("Please view this email in HTML format for the full formatted MOM.\n")
	return b.String()
}
