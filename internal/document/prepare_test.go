package document

import (
	"testing"
	"time"

	"github.com/khrees2412/cvgen/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestPrepareForExportBackfillsIDs(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	doc := models.Document{
		Projects: []models.Project{
			{ID: "keep", Name: "A"},
			{Name: "B", Technologies: []string{"Go"}},
		},
		Languages: []models.Language{{Name: "English", Proficiency: models.ProficiencyNative}},
	}

	out := PrepareForExport(doc, now)

	assert.Equal(t, "keep", out.Projects[0].ID)
	assert.Equal(t, "project-1700000000000-1", out.Projects[1].ID)
	assert.Equal(t, "language-1700000000000-0", out.Languages[0].ID)

	// source untouched
	assert.Empty(t, doc.Projects[1].ID)
	out.Projects[1].Technologies[0] = "Rust"
	assert.Equal(t, "Go", doc.Projects[1].Technologies[0])
}

func TestReadiness(t *testing.T) {
	assert.Empty(t, Readiness(Sample()))

	doc := models.Document{
		Skills:    []models.Skill{{Name: "Go", Level: "Guru"}},
		Languages: []models.Language{{Proficiency: models.ProficiencyBasic}},
	}
	warnings := Readiness(doc)
	assert.Contains(t, warnings, `skill #1: unknown level "Guru"`)
	assert.Contains(t, warnings, "language #1: name is empty")
	assert.Contains(t, warnings, "personal info: summary is empty")
	assert.Len(t, warnings, 6)
}
