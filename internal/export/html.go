package export

import (
	"fmt"
	"html/template"
	"os"

	"github.com/abhisek/examsim/internal/analytics"
)

var reportTmpl = template.Must(template.New("report").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Exam Summary</title>
<style>table,td,th{border:1px solid #999;border-collapse:collapse;padding:6px;}</style>
</head>
<body>
<h2>Exam Summary</h2>
<p><b>Timestamp:</b> {{.Timestamp}} &nbsp; <b>User:</b> {{.User}}</p>
<p><b>Score:</b> {{.Correct}}/{{.Total}} ({{.Percentage}}%)</p>
<h3>Per-Domain Performance</h3>
<table>
<tr><th>Domain</th><th>Correct</th><th>Total</th><th>%</th></tr>
{{range .Domains}}<tr><td>{{.Name}}</td><td>{{.Correct}}</td><td>{{.Total}}</td><td>{{.Pct}}%</td></tr>
{{end}}</table>
</body>
</html>
`))

type reportData struct {
	Timestamp  string
	User       string
	Correct    int
	Total      int
	Percentage string
	Domains    []domainRow
}

type domainRow struct {
	Name    string
	Correct int
	Total   int
	Pct     string
}

// WriteHTML renders the session summary as a standalone HTML report.
func WriteHTML(res analytics.SessionResult, path string) error {
	data := reportData{
		Timestamp:  res.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		User:       res.User,
		Correct:    res.Correct,
		Total:      res.Total,
		Percentage: formatPct(res.Percentage),
	}
	for _, d := range sortedDomains(res.PerDomain) {
		st := res.PerDomain[d]
		data.Domains = append(data.Domains, domainRow{
			Name:    d,
			Correct: st.Correct,
			Total:   st.Total,
			Pct:     formatPct(domainPct(st)),
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create html: %w", err)
	}
	defer f.Close()

	if err := reportTmpl.Execute(f, data); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}
