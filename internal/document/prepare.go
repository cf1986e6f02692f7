package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/khrees2412/cvgen/pkg/models"
)

// PrepareForExport returns a deep copy of doc in which every entry has an id.
// Missing ids become "<kind>-<unix millis>-<index>". doc itself is not touched.
func PrepareForExport(doc models.Document, now time.Time) models.Document {
	ms := now.UnixMilli()
	backfill := func(kind, id string, i int) string {
		if id != "" {
			return id
		}
		return fmt.Sprintf("%s-%d-%d", kind, ms, i)
	}

	out := models.Document{PersonalInfo: doc.PersonalInfo}

	out.Experience = make([]models.Experience, len(doc.Experience))
	for i, e := range doc.Experience {
		e.ID = backfill("experience", e.ID, i)
		out.Experience[i] = e
	}
	out.Education = make([]models.Education, len(doc.Education))
	for i, e := range doc.Education {
		e.ID = backfill("education", e.ID, i)
		out.Education[i] = e
	}
	out.Skills = make([]models.Skill, len(doc.Skills))
	for i, s := range doc.Skills {
		s.ID = backfill("skill", s.ID, i)
		out.Skills[i] = s
	}
	out.Projects = make([]models.Project, len(doc.Projects))
	for i, p := range doc.Projects {
		p.ID = backfill("project", p.ID, i)
		p.Technologies = append([]string{}, p.Technologies...)
		out.Projects[i] = p
	}
	out.Languages = make([]models.Language, len(doc.Languages))
	for i, l := range doc.Languages {
		l.ID = backfill("language", l.ID, i)
		out.Languages[i] = l
	}
	return out
}

// Readiness lists fields an export would render blank. An empty result means
// the document is complete; warnings never block an export.
func Readiness(doc models.Document) []string {
	var warnings []string
	blank := func(s string) bool { return strings.TrimSpace(s) == "" }

	if blank(doc.PersonalInfo.FullName) {
		warnings = append(warnings, "personal info: full name is empty (file will be named CV_<date>.pdf)")
	}
	if blank(doc.PersonalInfo.Email) {
		warnings = append(warnings, "personal info: email is empty")
	}
	if blank(doc.PersonalInfo.Phone) {
		warnings = append(warnings, "personal info: phone is empty")
	}
	if blank(doc.PersonalInfo.Summary) {
		warnings = append(warnings, "personal info: summary is empty")
	}
	for i, e := range doc.Experience {
		if blank(e.Company) || blank(e.Position) {
			warnings = append(warnings, fmt.Sprintf("experience #%d: company and position are required", i+1))
		}
		if blank(e.StartDate) {
			warnings = append(warnings, fmt.Sprintf("experience #%d: start date is empty", i+1))
		}
	}
	for i, e := range doc.Education {
		if blank(e.Institution) || blank(e.Degree) {
			warnings = append(warnings, fmt.Sprintf("education #%d: institution and degree are required", i+1))
		}
	}
	for i, s := range doc.Skills {
		if blank(s.Name) {
			warnings = append(warnings, fmt.Sprintf("skill #%d: name is empty", i+1))
		}
		if !s.Level.Valid() {
			warnings = append(warnings, fmt.Sprintf("skill #%d: unknown level %q", i+1, s.Level))
		}
	}
	for i, p := range doc.Projects {
		if blank(p.Name) {
			warnings = append(warnings, fmt.Sprintf("project #%d: name is empty", i+1))
		}
	}
	for i, l := range doc.Languages {
		if blank(l.Name) {
			warnings = append(warnings, fmt.Sprintf("language #%d: name is empty", i+1))
		}
		if !l.Proficiency.Valid() {
			warnings = append(warnings, fmt.Sprintf("language #%d: unknown proficiency %q", i+1, l.Proficiency))
		}
	}
	return warnings
}
