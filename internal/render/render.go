// Package render produces the HTML documents the exporters capture or print:
// the live preview surface, per-section surfaces, the static fallback fragment
// and the print document.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/khrees2412/cvgen/pkg/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	// SurfaceID is the element id of the capturable preview region.
	SurfaceID = "cv-preview"
	// ExcludeAttr marks elements left out of every capture.
	ExcludeAttr = "data-capture-exclude"

	cssPxPerMM = 96 / 25.4
)

// ItemSelectors are the per-entry classes whose counts signal a fully rendered surface.
var ItemSelectors = struct {
	Experience, Education, Skill, Project, Language string
}{
	Experience: ".experience-item",
	Education:  ".education-item",
	Skill:      ".skill-item",
	Project:    ".project-item",
	Language:   ".language-item",
}

var tmpl = template.Must(template.New("render").Funcs(template.FuncMap{
	"techs": func(t []string) string { return strings.Join(t, " • ") },
	"pairs": pairs,
}).ParseFS(templateFS, "templates/*.tmpl"))

// Options sizes the rendered surface.
type Options struct {
	PageWidthMM  float64
	PageHeightMM float64
	PaddingMM    float64
	Format       string
}

// DefaultOptions is an A4 surface with 2mm padding.
func DefaultOptions() Options {
	return Options{PageWidthMM: 210, PageHeightMM: 297, PaddingMM: 2, Format: "a4"}
}

// WidthPx is the surface width in CSS pixels.
func (o Options) WidthPx() float64 {
	return o.PageWidthMM * cssPxPerMM
}

type view struct {
	Doc          models.Document
	SurfaceID    string
	Section      string
	Title        string
	Format       string
	WidthPx      float64
	PaddingPx    float64
	PageWidthMM  float64
	PageHeightMM float64
}

func newView(doc models.Document, opts Options) view {
	title := doc.PersonalInfo.FullName
	if title == "" {
		title = "CV"
	}
	return view{
		Doc:          doc,
		SurfaceID:    SurfaceID,
		Title:        title,
		Format:       strings.ToUpper(opts.Format),
		WidthPx:      opts.WidthPx(),
		PaddingPx:    opts.PaddingMM * cssPxPerMM,
		PageWidthMM:  opts.PageWidthMM,
		PageHeightMM: opts.PageHeightMM,
	}
}

func execute(name string, v view) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, v); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// Surface renders the live preview page. Its capturable region carries SurfaceID
// and every entry carries its section's item class.
func Surface(doc models.Document, opts Options) (string, error) {
	return execute("surface.html.tmpl", newView(doc, opts))
}

// Fragment renders the static, inline-styled document used by the fallback strategy.
func Fragment(doc models.Document, opts Options) (string, error) {
	return execute("fragment.html.tmpl", newView(doc, opts))
}

// PrintDocument renders the standalone print document sized to the page format.
func PrintDocument(doc models.Document, opts Options) (string, error) {
	return execute("print.html.tmpl", newView(doc, opts))
}

// Section is one independently capturable part of the CV.
type Section struct {
	Name string
	HTML string
}

// Sections renders the header and every non-empty section as its own page, in display order.
func Sections(doc models.Document, opts Options) ([]Section, error) {
	names := []string{"header"}
	if len(doc.Experience) > 0 {
		names = append(names, "experience")
	}
	if len(doc.Education) > 0 {
		names = append(names, "education")
	}
	if len(doc.Skills) > 0 {
		names = append(names, "skills")
	}
	if len(doc.Projects) > 0 {
		names = append(names, "projects")
	}
	if len(doc.Languages) > 0 {
		names = append(names, "languages")
	}

	sections := make([]Section, 0, len(names))
	for _, name := range names {
		v := newView(doc, opts)
		v.Section = name
		out, err := execute("section.html.tmpl", v)
		if err != nil {
			return nil, err
		}
		sections = append(sections, Section{Name: name, HTML: out})
	}
	return sections, nil
}

// ExpectedCounts maps each item selector to the number of entries the document holds.
func ExpectedCounts(doc models.Document) map[string]int {
	return map[string]int{
		ItemSelectors.Experience: len(doc.Experience),
		ItemSelectors.Education:  len(doc.Education),
		ItemSelectors.Skill:      len(doc.Skills),
		ItemSelectors.Project:    len(doc.Projects),
		ItemSelectors.Language:   len(doc.Languages),
	}
}

type pair struct {
	Left, Right int
	HasRight    bool
}

// pairs lays n items out two per row.
func pairs(n int) []pair {
	rows := make([]pair, 0, (n+1)/2)
	for i := 0; i < n; i += 2 {
		rows = append(rows, pair{Left: i, Right: i + 1, HasRight: i+1 < n})
	}
	return rows
}
