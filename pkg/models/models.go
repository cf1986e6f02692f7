package models

import "time"

// PersonalInfo represents the contact block at the top of a CV
type PersonalInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Website  string `json:"website,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Summary  string `json:"summary"`
}

// Experience represents a work experience entry
type Experience struct {
	ID           string `json:"id"`
	Company      string `json:"company"`
	Position     string `json:"position"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"` // ignored when IsCurrentJob is set
	IsCurrentJob bool   `json:"isCurrentJob"`
	Description  string `json:"description"`
	Location     string `json:"location"`
}

func (e Experience) EntryID() string { return e.ID }

// DateRange returns the rendered period, ending in "Present" for a current job.
func (e Experience) DateRange() string {
	return FormatDateRange(e.StartDate, e.EndDate, e.IsCurrentJob)
}

// Education represents an education entry
type Education struct {
	ID             string `json:"id"`
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	Field          string `json:"field"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	IsCurrentStudy bool   `json:"isCurrentStudy"`
	GPA            string `json:"gpa,omitempty"`
	Location       string `json:"location"`
}

func (e Education) EntryID() string { return e.ID }

func (e Education) DateRange() string {
	return FormatDateRange(e.StartDate, e.EndDate, e.IsCurrentStudy)
}

// Skill represents a single skill with its level
type Skill struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Level SkillLevel `json:"level"`
}

func (s Skill) EntryID() string { return s.ID }

// Project represents a portfolio project
type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url,omitempty"`
	GitHub       string   `json:"github,omitempty"`
}

func (p Project) EntryID() string { return p.ID }

// Language represents a spoken language
type Language struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Proficiency Proficiency `json:"proficiency"`
}

func (l Language) EntryID() string { return l.ID }

// Document is the root aggregate edited in a session and consumed by the exporters
type Document struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Experience   []Experience `json:"experience"`
	Education    []Education  `json:"education"`
	Skills       []Skill      `json:"skills"`
	Projects     []Project    `json:"projects"`
	Languages    []Language   `json:"languages"`
}

// IsEmpty reports whether the document has no entries and no personal details.
func (d Document) IsEmpty() bool {
	return d.PersonalInfo == (PersonalInfo{}) &&
		len(d.Experience) == 0 && len(d.Education) == 0 && len(d.Skills) == 0 &&
		len(d.Projects) == 0 && len(d.Languages) == 0
}

// ExportRecord represents one export attempt stored in the history database
type ExportRecord struct {
	ID           int       `json:"id"`
	RunID        string    `json:"run_id"`
	FileName     string    `json:"file_name"`
	FilePath     string    `json:"file_path"`
	Strategy     string    `json:"strategy"`
	Pages        int       `json:"pages"`
	SizeBytes    int       `json:"size_bytes"`
	Status       string    `json:"status"` // succeeded, failed
	ErrorKind    string    `json:"error_kind"`
	ErrorMessage string    `json:"error_message"`
	DurationMS   int64     `json:"duration_ms"`
	Warnings     []string  `json:"warnings,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

const (
	ExportSucceeded = "succeeded"
	ExportFailed    = "failed"
)
