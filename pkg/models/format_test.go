package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDateRange(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		current  bool
		expected string
	}{
		{
			name:     "closed range",
			start:    "2020-06",
			end:      "2022-01",
			expected: "June 2020 - January 2022",
		},
		{
			name:     "current ignores stored end",
			start:    "2022-01",
			end:      "2023-05",
			current:  true,
			expected: "January 2022 - Present",
		},
		{
			name:     "current with empty end",
			start:    "2022-01",
			current:  true,
			expected: "January 2022 - Present",
		},
		{
			name:     "full date input",
			start:    "2016-09-01",
			end:      "2020-05-31",
			expected: "September 2016 - May 2020",
		},
		{
			name:     "unparseable dates pass through",
			start:    "Spring 2019",
			end:      "",
			expected: "Spring 2019 - ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDateRange(tt.start, tt.end, tt.current))
		})
	}
}

func TestExperienceDateRange(t *testing.T) {
	e := Experience{StartDate: "2021-03", EndDate: "2021-04", IsCurrentJob: true}
	assert.Equal(t, "March 2021 - Present", e.DateRange())

	e.IsCurrentJob = false
	assert.Equal(t, "March 2021 - April 2021", e.DateRange())
}

func TestParseTechnologies(t *testing.T) {
	tests := []struct {
		raw      string
		expected []string
	}{
		{"React, Node.js, MongoDB", []string{"React", "Node.js", "MongoDB"}},
		{"  Go ,,  SQL , ", []string{"Go", "SQL"}},
		{"", []string{}},
		{",,,", []string{}},
		{"Single", []string{"Single"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseTechnologies(tt.raw))
		})
	}
}

func TestTechnologiesRoundTrip(t *testing.T) {
	lists := [][]string{
		{"React", "Node.js", "MongoDB"},
		{"Go"},
		{"C++", "Objective C", "SQL Server"},
	}
	for _, techs := range lists {
		assert.Equal(t, techs, ParseTechnologies(JoinTechnologies(techs)))
	}
}
