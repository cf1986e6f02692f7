package models

import (
	"strings"
	"time"
)

// PresentLabel is rendered as the end of a current job or study.
const PresentLabel = "Present"

var dateLayouts = []string{"2006-01", "2006-01-02", time.RFC3339}

// FormatDate renders a stored month ("2022-01") as "January 2022".
// Values that do not parse are returned unchanged.
func FormatDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("January 2006")
		}
	}
	return s
}

// FormatDateRange renders "start - end"; the end is PresentLabel whenever current is set,
// regardless of the stored end date.
func FormatDateRange(start, end string, current bool) string {
	endLabel := FormatDate(end)
	if current {
		endLabel = PresentLabel
	}
	return FormatDate(start) + " - " + endLabel
}

// ParseTechnologies splits a comma-separated field, trimming items and dropping empties.
func ParseTechnologies(raw string) []string {
	techs := []string{}
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			techs = append(techs, t)
		}
	}
	return techs
}

// JoinTechnologies is the canonical editable form of a technologies list.
func JoinTechnologies(techs []string) string {
	return strings.Join(techs, ", ")
}
