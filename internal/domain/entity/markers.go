package entity

import "strings"

const (
	MarkerWaiting = "task-waiting"
	MarkerRunning = "task-running"
	MarkerReady   = "task-ready"
	MarkerFailed  = "task-failed"
)

// MarkerSet is the closed vocabulary of classes that mark a task as non-terminal.
// The zero value matches nothing.
type MarkerSet struct {
	classes []string
}

func NewMarkerSet(classes ...string) MarkerSet {
	seen := make(map[string]bool, len(classes))
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return MarkerSet{classes: out}
}

// ParseMarkerSet accepts a comma or whitespace separated list, e.g. "task-waiting, task-running".
func ParseMarkerSet(s string) MarkerSet {
	return NewMarkerSet(strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})...)
}

func DefaultMarkerSet() MarkerSet {
	return NewMarkerSet(MarkerWaiting, MarkerRunning)
}

func (m MarkerSet) Len() int {
	return len(m.classes)
}

func (m MarkerSet) Classes() []string {
	out := make([]string, len(m.classes))
	copy(out, m.classes)
	return out
}

func (m MarkerSet) Contains(class string) bool {
	for _, c := range m.classes {
		if c == class {
			return true
		}
	}
	return false
}

// Matches reports whether any of the given element classes is a marker.
func (m MarkerSet) Matches(classes []string) bool {
	for _, c := range classes {
		if m.Contains(c) {
			return true
		}
	}
	return false
}

func (m MarkerSet) String() string {
	return strings.Join(m.classes, ",")
}
