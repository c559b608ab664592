package entity

import "sort"

// Anchor is the raw view of one task element as read from the page.
type Anchor struct {
	ElementID string
	TaskID    string
	Checksum  string
}

// TaskRef is a non-terminal task found by one scan. It lives for a single cycle.
type TaskRef struct {
	TaskID    string
	ElementID string
	Checksum  string
}

// ScanResult is keyed by task id.
type ScanResult map[string]TaskRef

func (s ScanResult) Empty() bool {
	return len(s) == 0
}

func (s ScanResult) IDs() []string {
	return sortedKeys(s)
}

// PollResponse maps an identity (element id or task id) to its replacement fragment.
type PollResponse map[string]string

func (r PollResponse) Keys() []string {
	return sortedKeys(r)
}

type ReconcileResult struct {
	Replaced     int
	Reclassified int
	Skipped      int
	Errors       int
}

type PollReport struct {
	RunID        string
	Cycles       int
	Failures     int
	Replaced     int
	Reclassified int
}

func (r *PollReport) Add(res ReconcileResult) {
	r.Replaced += res.Replaced
	r.Reclassified += res.Reclassified
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
