package pagination

import (
	"fmt"
	"sort"
	"strings"
)

// PageFormat is a portrait page size in millimetres.
type PageFormat struct {
	Name     string
	WidthMM  float64
	HeightMM float64
}

var formats = map[string]PageFormat{
	"a3":     {Name: "a3", WidthMM: 297, HeightMM: 420},
	"a4":     {Name: "a4", WidthMM: 210, HeightMM: 297},
	"a5":     {Name: "a5", WidthMM: 148, HeightMM: 210},
	"letter": {Name: "letter", WidthMM: 215.9, HeightMM: 279.4},
	"legal":  {Name: "legal", WidthMM: 215.9, HeightMM: 355.6},
}

// A4 is the default format.
var A4 = formats["a4"]

// LookupFormat resolves a format name case-insensitively.
func LookupFormat(name string) (PageFormat, error) {
	f, ok := formats[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return PageFormat{}, fmt.Errorf("unknown page format %q (valid: %s)", name, strings.Join(FormatNames(), ", "))
	}
	return f, nil
}

// FormatNames lists the supported format names.
func FormatNames() []string {
	names := make([]string, 0, len(formats))
	for n := range formats {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// WidthInches and HeightInches are used by the print path.
func (f PageFormat) WidthInches() float64  { return f.WidthMM / 25.4 }
func (f PageFormat) HeightInches() float64 { return f.HeightMM / 25.4 }
