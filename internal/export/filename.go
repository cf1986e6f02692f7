package export

import (
	"regexp"
	"time"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9]`)

// Filename is "<name>_<YYYY-MM-DD>.pdf" where every character of name outside
// [A-Za-z0-9] becomes "_" and an empty name becomes "CV". The date is UTC.
func Filename(fullName string, now time.Time) string {
	name := unsafeChars.ReplaceAllString(fullName, "_")
	if name == "" {
		name = "CV"
	}
	return name + "_" + now.UTC().Format("2006-01-02") + ".pdf"
}
