// Package display holds the view models handed to renderers. They carry
// only what a renderer needs, already filtered and sorted.
package display

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/rebatch/pkg/errors"
	"github.com/arthur-debert/rebatch/pkg/manifest"
	"github.com/arthur-debert/rebatch/pkg/types"
	"github.com/arthur-debert/rebatch/pkg/view"
)

// Listing is a projected directory listing
type Listing struct {
	Directory string            `json:"directory"`
	Filter    string            `json:"filter,omitempty"`
	Sort      string            `json:"sort"`
	Direction string            `json:"direction"`
	Total     int               `json:"total"`
	Entries   []types.FileEntry `json:"entries"`
}

// NewListing filters and sorts entries for display. Total counts the
// entries before filtering.
func NewListing(dir string, entries []types.FileEntry, filter string, key view.SortKey, d view.Direction) *Listing {
	return &Listing{
		Directory: dir,
		Filter:    filter,
		Sort:      key.String(),
		Direction: d.String(),
		Total:     len(entries),
		Entries:   view.Project(entries, filter, key, d),
	}
}

// SelectedCount returns how many listed entries are in the working set
func (l *Listing) SelectedCount() int {
	n := 0
	for _, e := range l.Entries {
		if e.Selected {
			n++
		}
	}
	return n
}

// ConflictReport is the result of a detection-only run
type ConflictReport struct {
	Operation   types.Operation      `json:"operation"`
	Source      string               `json:"source"`
	Destination string               `json:"destination"`
	Checked     int                  `json:"checked"`
	Conflicts   []types.FileConflict `json:"conflicts"`
}

// PlanReport shows planned names, and where the manifest was written if it was
type PlanReport struct {
	Manifest *manifest.Manifest `json:"manifest"`
	SavedTo  string             `json:"savedTo,omitempty"`
}

// PlanRow is one line of a plan: current name and the name it will carry
type PlanRow struct {
	From string
	To   string
}

// Rows returns the plan as from/to pairs in selection order
func (p *PlanReport) Rows() []PlanRow {
	rows := make([]PlanRow, len(p.Manifest.Entries))
	for i, e := range p.Manifest.Entries {
		to := e.Name
		if e.Target != "" {
			to = e.Target + e.Extension
		}
		rows[i] = PlanRow{From: e.Name, To: to}
	}
	return rows
}

// FormatSize renders a size in KiB with a unit suited to its magnitude
func FormatSize(kib int64) string {
	switch {
	case kib >= 1024*1024:
		return fmt.Sprintf("%.1f GiB", float64(kib)/(1024*1024))
	case kib >= 1024:
		return fmt.Sprintf("%.1f MiB", float64(kib)/1024)
	default:
		return fmt.Sprintf("%d KiB", kib)
	}
}

// FormatTime renders a modification time, empty for the zero time
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

// Summary is a one-line account of a transfer
func Summary(r *types.TransferResult) string {
	prefix := ""
	if r.DryRun {
		prefix = "(dry run) "
	}
	if r.Status == types.StatusAborted {
		return fmt.Sprintf("%s%s aborted: %d conflicts unresolved, nothing changed", prefix, r.Operation, len(r.Conflicts))
	}

	c := r.Counts
	s := fmt.Sprintf("%s%d %s", prefix, c.Transferred, r.Operation.Verb())
	if c.CopiedAside > 0 {
		s += fmt.Sprintf(", %d copied aside", c.CopiedAside)
	}
	if c.Skipped > 0 {
		s += fmt.Sprintf(", %d skipped", c.Skipped)
	}
	if c.Unchanged > 0 {
		s += fmt.Sprintf(", %d unchanged", c.Unchanged)
	}
	if c.Failed > 0 {
		s += fmt.Sprintf(", %d failed", c.Failed)
	}
	return s
}

// ErrorDetails returns the coded error's details as sorted "key: value" lines
func ErrorDetails(err error) []string {
	details := errors.GetErrorDetails(err)
	if len(details) == 0 {
		return nil
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = fmt.Sprintf("%s: %s", k, detailValue(details[k]))
	}
	return lines
}

func detailValue(v interface{}) string {
	switch v := v.(type) {
	case []types.FileConflict:
		names := make([]string, len(v))
		for i, c := range v {
			names[i] = c.DisplayName
		}
		return strings.Join(names, ", ")
	case []string:
		return strings.Join(v, ", ")
	default:
		return fmt.Sprint(v)
	}
}
