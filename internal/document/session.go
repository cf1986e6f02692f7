package document

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/khrees2412/cvgen/pkg/models"
)

// Session owns the single mutable Document of an editing session. Every edit
// replaces the affected sequence instead of mutating it, so a Document handed
// out by Snapshot is never changed afterwards.
type Session struct {
	mu     sync.Mutex
	doc    models.Document
	now    func() time.Time
	lastID int64
}

// NewSession starts a session holding an empty document.
func NewSession() *Session {
	return &Session{doc: Empty(), now: time.Now}
}

// NewSessionFrom starts a session from an existing document.
func NewSessionFrom(doc models.Document) *Session {
	return &Session{doc: doc, now: time.Now}
}

// Empty returns the initial document: blank personal info and empty sequences.
func Empty() models.Document {
	return models.Document{
		Experience: []models.Experience{},
		Education:  []models.Education{},
		Skills:     []models.Skill{},
		Projects:   []models.Project{},
		Languages:  []models.Language{},
	}
}

// Snapshot returns the current document.
func (s *Session) Snapshot() models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Clear resets to the initial empty document.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = Empty()
}

// LoadSample replaces the document with the built-in sample.
func (s *Session) LoadSample() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = Sample()
}

// nextID derives an id from the clock, bumped so ids stay unique within the session.
func (s *Session) nextID() string {
	ms := s.now().UnixMilli()
	if ms <= s.lastID {
		ms = s.lastID + 1
	}
	s.lastID = ms
	return strconv.FormatInt(ms, 10)
}

func (s *Session) UpdatePersonalInfo(fn func(*models.PersonalInfo)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	info := s.doc.PersonalInfo
	fn(&info)
	s.doc.PersonalInfo = info
}

// AddExperience appends e under a freshly generated id and returns that id.
func (s *Session) AddExperience(e models.Experience) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID()
	s.doc.Experience = appendEntry(s.doc.Experience, e)
	return e.ID
}

func (s *Session) UpdateExperience(id string, fn func(*models.Experience)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq, err := replaceEntry(s.doc.Experience, id, func(e models.Experience) models.Experience {
		fn(&e)
		e.ID = id
		return e
	})
	if err != nil {
		return fmt.Errorf("experience %s: %w", id, err)
	}
	s.doc.Experience = seq
	return nil
}

func (s *Session) RemoveExperience(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq, err := removeEntry(s.doc.Experience, id)
	if err != nil {
		return fmt.Errorf("experience %s: %w", id, err)
	}
	s.doc.Experience = seq
	return nil
}

func (s *Session) AddEducation(e models.Education) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID()
	s.doc.Education = appendEntry(s.doc.Education, e)
	return e.ID
}

func (s *Session) UpdateEducation(id string, fn func(*models.Education)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq, err := replaceEntry(s.doc.Education, id, func(e models.Education) models.Education {
		fn(&e)
		e.ID = id
		return e
	})
	if err != nil {
		return fmt.Errorf("education %s: %w", id, err)
	}
	s.doc.Education = seq
	return nil
}

func (s *Session) RemoveEducation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq, err := removeEntry(s.doc.Education, id)
	if err != nil {
		return fmt.Errorf("education %s: %w", id, err)
	}
	s.doc.Education = seq
	return nil
}

// AddSkill appends a skill; an unset level defaults to Intermediate.
func (s *Session) AddSkill(sk models.Skill) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	sk.ID = s.nextID()
	if sk.Level == "" {
		sk.Level = models.SkillIntermediate
	}
	s.doc.Skills = appendEntry(s.doc.Skills, sk)
	return sk.ID
}

func (s *Session) UpdateSkill(id string, fn func(*models.Skill)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq, err := replaceEntry(s.doc.Skills, id, func(sk models.Skill) models.Skill {
		fn(&sk)
		sk.ID = id
		return sk
	})
	if err != nil {
		return fmt.Errorf("skill %s: %w", id, err)
	}
	s.doc.Skills = seq
	return nil
}

func (s *Session) RemoveSkill(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq, err := removeEntry(s.doc.Skills, id)
	if err != nil {
		return fmt.Errorf("skill %s: %w", id, err)
	}
	s.doc.Skills = seq
	return nil
}

func (s *Session) AddProject(p models.Project) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.nextID()
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	s.doc.Projects = appendEntry(s.doc.Projects, p)
	return p.ID
}

func (s *Session) UpdateProject(id string, fn func(*models.Project)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq, err := replaceEntry(s.doc.Projects, id, func(p models.Project) models.Project {
		p.Technologies = append([]string(nil), p.Technologies...)
		fn(&p)
		p.ID = id
		return p
	})
	if err != nil {
		return fmt.Errorf("project %s: %w", id, err)
	}
	s.doc.Projects = seq
	return nil
}

// SetTechnologies stores the comma-separated editing form of a project's technologies.
func (s *Session) SetTechnologies(id, raw string) error {
	return s.UpdateProject(id, func(p *models.Project) {
		p.Technologies = models.ParseTechnologies(raw)
	})
}

func (s *Session) RemoveProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq, err := removeEntry(s.doc.Projects, id)
	if err != nil {
		return fmt.Errorf("project %s: %w", id, err)
	}
	s.doc.Projects = seq
	return nil
}

// AddLanguage appends a language; an unset proficiency defaults to Conversational.
func (s *Session) AddLanguage(l models.Language) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.ID = s.nextID()
	if l.Proficiency == "" {
		l.Proficiency = models.ProficiencyConversational
	}
	s.doc.Languages = appendEntry(s.doc.Languages, l)
	return l.ID
}

func (s *Session) UpdateLanguage(id string, fn func(*models.Language)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq, err := replaceEntry(s.doc.Languages, id, func(l models.Language) models.Language {
		fn(&l)
		l.ID = id
		return l
	})
	if err != nil {
		return fmt.Errorf("language %s: %w", id, err)
	}
	s.doc.Languages = seq
	return nil
}

func (s *Session) RemoveLanguage(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq, err := removeEntry(s.doc.Languages, id)
	if err != nil {
		return fmt.Errorf("language %s: %w", id, err)
	}
	s.doc.Languages = seq
	return nil
}

// Project looks up a project by id.
func (s *Session) Project(id string) (models.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return findEntry(s.doc.Projects, id)
}
