package models

import (
	"fmt"
	"strings"
)

// SkillLevel is the 4-point ordinal scale used for skills
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
	SkillExpert       SkillLevel = "Expert"
)

// SkillLevels lists the scale in ascending order.
var SkillLevels = []SkillLevel{SkillBeginner, SkillIntermediate, SkillAdvanced, SkillExpert}

// Rank returns 1..4 for known levels and 0 otherwise.
func (l SkillLevel) Rank() int {
	for i, v := range SkillLevels {
		if v == l {
			return i + 1
		}
	}
	return 0
}

func (l SkillLevel) Valid() bool { return l.Rank() > 0 }

// ParseSkillLevel matches a level name case-insensitively.
func ParseSkillLevel(s string) (SkillLevel, error) {
	for _, v := range SkillLevels {
		if strings.EqualFold(string(v), strings.TrimSpace(s)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid skill level %q: must be one of %v", s, SkillLevels)
}

// Proficiency is the 4-point ordinal scale used for languages
type Proficiency string

const (
	ProficiencyBasic          Proficiency = "Basic"
	ProficiencyConversational Proficiency = "Conversational"
	ProficiencyFluent         Proficiency = "Fluent"
	ProficiencyNative         Proficiency = "Native"
)

var Proficiencies = []Proficiency{ProficiencyBasic, ProficiencyConversational, ProficiencyFluent, ProficiencyNative}

func (p Proficiency) Rank() int {
	for i, v := range Proficiencies {
		if v == p {
			return i + 1
		}
	}
	return 0
}

func (p Proficiency) Valid() bool { return p.Rank() > 0 }

func ParseProficiency(s string) (Proficiency, error) {
	for _, v := range Proficiencies {
		if strings.EqualFold(string(v), strings.TrimSpace(s)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid proficiency %q: must be one of %v", s, Proficiencies)
}
