package alerts

import (
	"bytes"
	"html/template"

	"cineadmin/structs"
)

var alertTmpl = template.Must(template.New("alert").Parse(`
<html>
<body style="font-family:Arial,sans-serif;color:#222">
  <h2 style="color:#c0392b">Critical Error Logged</h2>
  <p>An error-level entry was just written to the system log.</p>
  <table cellpadding="6" style="border-collapse:collapse">
    <tr><td><b>Module</b></td><td>{{.Module}}</td></tr>
    {{if .SubModule}}<tr><td><b>Sub-module</b></td><td>{{.SubModule}}</td></tr>{{end}}
    <tr><td><b>Action</b></td><td>{{.Action}}</td></tr>
    <tr><td><b>Performed by</b></td><td>{{.PerformedBy.Name}} ({{.PerformedBy.Email}})</td></tr>
    <tr><td><b>Details</b></td><td>{{.Details}}</td></tr>
    <tr><td><b>Time</b></td><td>{{.Timestamp.Format "2006-01-02 15:04:05 MST"}}</td></tr>
  </table>
  <p style="color:#888;font-size:12px">Chhattisgarh Cinema admin console</p>
</body>
</html>`))

type digestRow struct {
	Module string
	Count  int
}

type digestData struct {
	Date  string
	Total int
	Rows  []digestRow
}

var digestTmpl = template.Must(template.New("digest").Parse(`
<html>
<body style="font-family:Arial,sans-serif;color:#222">
  <h2>Daily Error Digest — {{.Date}}</h2>
  <p>{{.Total}} error-level log entr{{if eq .Total 1}}y{{else}}ies{{end}} were recorded yesterday.</p>
  <table cellpadding="6" border="1" style="border-collapse:collapse">
    <tr><th>Module</th><th>Errors</th></tr>
    {{range .Rows}}<tr><td>{{.Module}}</td><td>{{.Count}}</td></tr>
    {{end}}
  </table>
  <p style="color:#888;font-size:12px">Chhattisgarh Cinema admin console</p>
</body>
</html>`))

func renderAlert(entry structs.SystemLog) (string, error) {
	var buf bytes.Buffer
	if err := alertTmpl.Execute(&buf, entry); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderDigest(data digestData) (string, error) {
	var buf bytes.Buffer
	if err := digestTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
