package report

import (
	"fmt"
)

// Severity is a report bucket.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityCaution
	SeverityError
	SeverityVerbose
)

// Severities lists the buckets in output order.
var Severities = []Severity{SeverityInfo, SeverityCaution, SeverityError, SeverityVerbose}

// String returns the bucket name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityCaution:
		return "caution"
	case SeverityError:
		return "error"
	case SeverityVerbose:
		return "verbose"
	default:
		return "unknown"
	}
}

// Report is the diagnostic record of one item.
type Report struct {
	Name     string
	EditorID string
	Playable bool

	buckets [4][]string
}

// New creates an empty report for an item.
func New(name, editorID string, playable bool) *Report {
	return &Report{Name: name, EditorID: editorID, Playable: playable}
}

func (r *Report) add(s Severity, format string, args ...any) {
	r.buckets[s] = append(r.buckets[s], fmt.Sprintf(format, args...))
}

// Info records an informational message (e.g. a rename that happened).
func (r *Report) Info(format string, args ...any) { r.add(SeverityInfo, format, args...) }

// Caution records a degraded but handled situation.
func (r *Report) Caution(format string, args ...any) { r.add(SeverityCaution, format, args...) }

// Error records a failure that aborted a stage for this item.
func (r *Report) Error(format string, args ...any) { r.add(SeverityError, format, args...) }

// Verbose records detail only shown in verbose reports.
func (r *Report) Verbose(format string, args ...any) { r.add(SeverityVerbose, format, args...) }

// Entries returns the messages of one bucket in insertion order.
func (r *Report) Entries(s Severity) []string {
	return r.buckets[s]
}

// Count returns the number of messages in a bucket.
func (r *Report) Count(s Severity) int {
	return len(r.buckets[s])
}

// Empty reports whether no bucket holds a message.
func (r *Report) Empty() bool {
	for _, b := range r.buckets {
		if len(b) > 0 {
			return false
		}
	}
	return true
}
