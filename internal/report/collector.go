package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/roach88/forgepatch/internal/match"
)

// Filter restricts which reports are printed.
type Filter struct {
	// NameContains, when non-empty, limits output to items whose name
	// contains one of the substrings (case-insensitive).
	NameContains []string

	// ShowNonPlayable prints reports of non-playable items too.
	ShowNonPlayable bool

	// Verbose prints the verbose bucket.
	Verbose bool
}

// Summary counts what a collector has seen.
type Summary struct {
	Items    int
	Printed  int
	Cautions int
	Errors   int
}

// Collector renders flushed reports to a writer.
type Collector struct {
	w       io.Writer
	filter  Filter
	summary Summary
}

// NewCollector creates a collector writing to w.
func NewCollector(w io.Writer, filter Filter) *Collector {
	return &Collector{w: w, filter: filter}
}

// Flush renders r if it passes the filter and counts it. The report must
// not be used afterwards.
func (c *Collector) Flush(r *Report) error {
	c.summary.Items++
	c.summary.Cautions += r.Count(SeverityCaution)
	c.summary.Errors += r.Count(SeverityError)

	if !c.admits(r) {
		return nil
	}
	text := c.Render(r)
	if text == "" {
		return nil
	}
	c.summary.Printed++
	_, err := io.WriteString(c.w, text)
	return err
}

// Summary returns the counts so far.
func (c *Collector) Summary() Summary {
	return c.summary
}

func (c *Collector) admits(r *Report) bool {
	if !r.Playable && !c.filter.ShowNonPlayable {
		return false
	}
	if len(c.filter.NameContains) == 0 {
		return true
	}
	for _, s := range c.filter.NameContains {
		if strings.Contains(match.Normalize(r.Name), match.Normalize(s)) {
			return true
		}
	}
	return false
}

// Render formats r as a text block, or "" when nothing would be printed.
func (c *Collector) Render(r *Report) string {
	var b strings.Builder
	for _, s := range Severities {
		if s == SeverityVerbose && !c.filter.Verbose {
			continue
		}
		entries := r.Entries(s)
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %s:\n", s)
		for _, e := range entries {
			fmt.Fprintf(&b, "    - %s\n", e)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return fmt.Sprintf("== %s (%s) ==\n%s", r.Name, r.EditorID, b.String())
}
