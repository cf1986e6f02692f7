package document

import (
	"testing"
	"time"

	"github.com/khrees2412/cvgen/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock returns a session whose clock never advances, so id uniqueness
// depends on the session's own bumping.
func fixedClock(t *testing.T) *Session {
	t.Helper()
	s := NewSession()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return at }
	return s
}

func TestAddGeneratesUniqueIDs(t *testing.T) {
	s := fixedClock(t)

	a := s.AddSkill(models.Skill{Name: "Go"})
	b := s.AddSkill(models.Skill{Name: "SQL"})
	c := s.AddLanguage(models.Language{Name: "English"})

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, b, c)

	doc := s.Snapshot()
	require.Len(t, doc.Skills, 2)
	assert.Equal(t, models.SkillIntermediate, doc.Skills[0].Level)
	assert.Equal(t, models.ProficiencyConversational, doc.Languages[0].Proficiency)
}

func TestRemovePreservesOrder(t *testing.T) {
	s := fixedClock(t)
	ids := []string{
		s.AddExperience(models.Experience{Company: "A"}),
		s.AddExperience(models.Experience{Company: "B"}),
		s.AddExperience(models.Experience{Company: "C"}),
	}

	require.NoError(t, s.RemoveExperience(ids[1]))

	doc := s.Snapshot()
	require.Len(t, doc.Experience, 2)
	assert.Equal(t, "A", doc.Experience[0].Company)
	assert.Equal(t, "C", doc.Experience[1].Company)
	for _, e := range doc.Experience {
		assert.NotEqual(t, ids[1], e.ID)
	}
}

func TestRemoveUnknownID(t *testing.T) {
	s := fixedClock(t)
	s.AddProject(models.Project{Name: "P"})

	err := s.RemoveProject("missing")
	assert.ErrorIs(t, err, ErrEntryNotFound)
	assert.Len(t, s.Snapshot().Projects, 1)
}

func TestUpdateKeepsPositionAndID(t *testing.T) {
	s := fixedClock(t)
	first := s.AddEducation(models.Education{Institution: "MIT"})
	second := s.AddEducation(models.Education{Institution: "CMU"})

	require.NoError(t, s.UpdateEducation(second, func(e *models.Education) {
		e.Institution = "Stanford"
		e.ID = "hijacked"
	}))

	doc := s.Snapshot()
	assert.Equal(t, first, doc.Education[0].ID)
	assert.Equal(t, second, doc.Education[1].ID)
	assert.Equal(t, "Stanford", doc.Education[1].Institution)
}

func TestSnapshotIsNotMutatedByLaterEdits(t *testing.T) {
	s := fixedClock(t)
	id := s.AddProject(models.Project{Name: "P", Technologies: []string{"Go"}})
	before := s.Snapshot()

	require.NoError(t, s.SetTechnologies(id, "Rust, Zig"))
	require.NoError(t, s.UpdateProject(id, func(p *models.Project) { p.Name = "Q" }))

	assert.Equal(t, "P", before.Projects[0].Name)
	assert.Equal(t, []string{"Go"}, before.Projects[0].Technologies)

	p, ok := s.Project(id)
	require.True(t, ok)
	assert.Equal(t, []string{"Rust", "Zig"}, p.Technologies)
}

func TestClearAndLoadSample(t *testing.T) {
	s := NewSession()
	s.LoadSample()
	doc := s.Snapshot()
	assert.Equal(t, "John Doe", doc.PersonalInfo.FullName)
	assert.Len(t, doc.Skills, 6)

	s.Clear()
	assert.True(t, s.Snapshot().IsEmpty())
}

func TestUpdatePersonalInfo(t *testing.T) {
	s := NewSession()
	s.UpdatePersonalInfo(func(p *models.PersonalInfo) { p.FullName = "Ada Lovelace" })
	assert.Equal(t, "Ada Lovelace", s.Snapshot().PersonalInfo.FullName)
}
