// internal/ticketing/note.go
package ticketing

import (
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"hr-service-agent/internal/actions"
	"hr-service-agent/internal/intent"
)

// noteTemplate renders the HTML note posted back onto the ticket. Inline
// styles only; the service-desk note widget strips stylesheets.
var noteTemplate = template.Must(template.New("note").Parse(`
<div style="font-family: Arial, sans-serif; padding: 20px; background: #f8f9fa; border-radius: 8px;">
    <h3 style="color: #333; margin-top: 0; border-bottom: 2px solid #007bff; padding-bottom: 10px;">
        HR Service Agent - Automated Response
    </h3>

    <table style="width: 100%; border-collapse: collapse; margin-bottom: 15px;">
        <tr>
            <td style="padding: 8px; border-bottom: 1px solid #dee2e6; width: 150px;"><strong>Intent Detected</strong></td>
            <td style="padding: 8px; border-bottom: 1px solid #dee2e6;">{{.Intent}}</td>
        </tr>
        <tr>
            <td style="padding: 8px; border-bottom: 1px solid #dee2e6;"><strong>Confidence</strong></td>
            <td style="padding: 8px; border-bottom: 1px solid #dee2e6;">{{.Confidence}}</td>
        </tr>
        <tr>
            <td style="padding: 8px; border-bottom: 1px solid #dee2e6;"><strong>Status</strong></td>
            <td style="padding: 8px; border-bottom: 1px solid #dee2e6;">
                <span style="color: {{.StatusColor}}; font-weight: bold;">{{.StatusIcon}} {{.Status}}</span>
            </td>
        </tr>
    </table>

    <div style="background: white; padding: 15px; border-radius: 4px; margin-bottom: 15px;">
        <h4 style="margin-top: 0; color: #495057;">Action Taken</h4>
        <p style="margin-bottom: 0;">{{.Message}}</p>
    </div>
{{- if .Entities}}

    <div style="background: white; padding: 15px; border-radius: 4px; margin-bottom: 15px;">
        <h4 style="margin-top: 0; color: #495057;">Extracted Information</h4>
        <ul style="margin-bottom: 0; padding-left: 20px;">
{{- range .Entities}}
            <li><strong>{{.Key}}:</strong> {{.Value}}</li>
{{- end}}
        </ul>
    </div>
{{- end}}
{{- if .Details}}

    <div style="background: white; padding: 15px; border-radius: 4px; margin-bottom: 15px;">
        <h4 style="margin-top: 0; color: #495057;">Details</h4>
        <ul style="margin-bottom: 0; padding-left: 20px;">
{{- range .Details}}
            <li><strong>{{.Key}}:</strong> {{.Value}}</li>
{{- end}}
        </ul>
    </div>
{{- end}}
{{- if .DownloadURL}}

    <div style="background: #e7f3ff; padding: 15px; border-radius: 4px; margin-bottom: 15px;">
        <h4 style="margin-top: 0; color: #0056b3;">Download</h4>
        <p style="margin-bottom: 0;">
            <a href="{{.DownloadURL}}" style="color: #007bff; text-decoration: none;">
                Click here to download the generated document
            </a>
        </p>
    </div>
{{- end}}

    <p style="color: #6c757d; font-size: 11px; margin-bottom: 0; text-align: right;">
        Processed by HR Service Agent | {{.ProcessedAt}}
    </p>
</div>
`))

type noteRow struct {
	Key   string
	Value string
}

type noteData struct {
	Intent      string
	Confidence  string
	Status      string
	StatusColor string
	StatusIcon  template.HTML
	Message     string
	Entities    []noteRow
	Details     []noteRow
	DownloadURL string
	ProcessedAt string
}

// BuildNote formats the classification and outcome into the HTML note body.
func BuildNote(res intent.Result, outcome actions.Outcome, processedAt time.Time) string {
	color := "#ffc107"
	icon := template.HTML("&#9888;")
	if outcome.Status == actions.StatusSuccess {
		color, icon = "#28a745", template.HTML("&#10003;")
	}

	entities := make([]noteRow, 0, len(res.Entities))
	for k, v := range res.Entities {
		entities = append(entities, noteRow{Key: titleKey(k), Value: v})
	}
	sort.Slice(entities, func(i, j int) bool { return entities[i].Key < entities[j].Key })

	details := make([]noteRow, 0, len(outcome.Details))
	for _, d := range outcome.Details {
		details = append(details, noteRow{Key: titleKey(d.Key), Value: d.Value})
	}

	data := noteData{
		Intent:      titleKey(string(res.Intent)),
		Confidence:  fmt.Sprintf("%.0f%%", res.Confidence*100),
		Status:      strings.ToUpper(string(outcome.Status)),
		StatusColor: color,
		StatusIcon:  icon,
		Message:     outcome.Message,
		Entities:    entities,
		Details:     details,
		DownloadURL: outcome.DownloadURL,
		ProcessedAt: processedAt.Format("2006-01-02 15:04:05"),
	}

	var b strings.Builder
	if err := noteTemplate.Execute(&b, data); err != nil {
		// The template is static and the data plain strings; execution
		// cannot fail outside of a programming error.
		return fmt.Sprintf("<p>%s</p>", outcome.Message)
	}
	return b.String()
}

func titleKey(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
