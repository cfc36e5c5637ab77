package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/investlog"
)

//go:embed templates/*.md
var templates embed.FS

// funcs are available in every template.
var funcs = template.FuncMap{
	// cell escapes a value for a markdown table cell.
	"cell": func(v any) string {
		s := fmt.Sprint(v)
		s = strings.ReplaceAll(s, "|", `\|`)
		return strings.ReplaceAll(s, "\n", " ")
	},
}

// RenderSearch renders search results as a markdown table followed by their
// aggregate.
func RenderSearch(r *SearchResult) string {
	partials := map[string]string{
		"search_filters": "search_filters.md",
		"search_table":   "search_table.md",
		"search_summary": "search_summary.md",
	}
	return renderTemplate("search", "search.md", partials, r)
}

// RenderDashboard renders the dashboard report.
func RenderDashboard(d *investlog.Dashboard) string {
	partials := map[string]string{
		"dashboard_totals":     "dashboard_totals.md",
		"dashboard_allocation": "dashboard_allocation.md",
		"dashboard_trend":      "dashboard_trend.md",
		"dashboard_recent":     "dashboard_recent.md",
	}
	return renderTemplate("dashboard", "dashboard.md", partials, d)
}

// RenderRecord renders the detail card of a single record.
func RenderRecord(r investlog.Record) string {
	return renderTemplate("record", "record.md", nil, r)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
