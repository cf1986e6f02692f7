package cmd

import (
	"fmt"
	"io"
	"sync"
)

const downloadLabel = "Download PDF"

// statusLine is the terminal stand-in for the download button. It is
// disabled while an export runs and restored when the export ends; both
// states redraw the same terminal line.
type statusLine struct {
	mu       sync.Mutex
	w        io.Writer
	label    string
	disabled bool
}

func newStatusLine(w io.Writer) *statusLine {
	return &statusLine{w: w, label: downloadLabel}
}

func (s *statusLine) Disable(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.label = label
	s.disabled = true
	fmt.Fprintf(s.w, "\r\033[K⏳ %s", disabledButtonStyle.Render(s.label))
}

func (s *statusLine) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.label = downloadLabel
	s.disabled = false
	fmt.Fprintf(s.w, "\r\033[K%s\n", buttonStyle.Render(s.label))
}
