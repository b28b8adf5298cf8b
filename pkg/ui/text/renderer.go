// Package text renders plain output without colors
package text

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/arthur-debert/rebatch/pkg/style"
	"github.com/arthur-debert/rebatch/pkg/types"
	"github.com/arthur-debert/rebatch/pkg/ui/display"
)

// Renderer writes plain text
type Renderer struct {
	output io.Writer
	markup *style.MarkupParser
}

// New creates a text renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w, markup: style.NewPlainParser()}
}

// RenderResult renders one of the display view models or a transfer result
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.Listing:
		return r.renderListing(v)
	case *display.ConflictReport:
		return r.renderConflicts(v)
	case *display.PlanReport:
		return r.renderPlan(v)
	case *types.TransferResult:
		return r.renderTransfer(v)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) renderListing(l *display.Listing) error {
	if _, err := fmt.Fprintf(r.output, "%s (%d of %d files, by %s %s)\n",
		l.Directory, len(l.Entries), l.Total, l.Sort, l.Direction); err != nil {
		return err
	}
	if len(l.Entries) == 0 {
		_, err := fmt.Fprintln(r.output, "No files")
		return err
	}

	tw := tabwriter.NewWriter(r.output, 0, 0, 2, ' ', 0)
	for _, e := range l.Entries {
		mark := " "
		if e.Selected {
			mark = "*"
		}
		target := ""
		if e.HasTarget() {
			target = "-> " + e.IntendedName()
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			mark, e.FileName(), target, display.FormatSize(e.SizeKiB), display.FormatTime(e.ModifiedAt))
	}
	return tw.Flush()
}

func (r *Renderer) renderConflicts(c *display.ConflictReport) error {
	if len(c.Conflicts) == 0 {
		_, err := fmt.Fprintf(r.output, "No conflicts for %d files in %s\n", c.Checked, c.Destination)
		return err
	}
	if _, err := fmt.Fprintf(r.output, "%d of %d files would collide in %s:\n",
		len(c.Conflicts), c.Checked, c.Destination); err != nil {
		return err
	}
	for _, fc := range c.Conflicts {
		if _, err := fmt.Fprintf(r.output, "  %s\n", fc.DisplayName); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderPlan(p *display.PlanReport) error {
	tw := tabwriter.NewWriter(r.output, 0, 0, 2, ' ', 0)
	for i, row := range p.Rows() {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t->\t%s\n", i+1, row.From, row.To)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if p.SavedTo != "" {
		_, err := fmt.Fprintf(r.output, "Plan saved to %s\n", p.SavedTo)
		return err
	}
	return nil
}

func (r *Renderer) renderTransfer(t *types.TransferResult) error {
	for _, o := range t.Outcomes {
		line := fmt.Sprintf("%-12s %s", o.Action, o.FileName)
		if o.Destination != "" && o.Action != types.ActionSkipped {
			line += " -> " + o.Destination
		}
		if o.Replaced {
			line += " (replaced)"
		}
		if o.Failed() {
			line += ": " + o.ErrorMessage()
		}
		if _, err := fmt.Fprintln(r.output, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(r.output, display.Summary(t))
	return err
}

// RenderError renders an error and its details
func (r *Renderer) RenderError(err error) error {
	var b strings.Builder
	b.WriteString("Error: " + err.Error())
	for _, line := range display.ErrorDetails(err) {
		b.WriteString("\n  " + line)
	}
	_, werr := fmt.Fprintln(r.output, b.String())
	return werr
}

// RenderMessage renders a message with markup tags stripped
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, r.markup.Render(msg))
	return err
}
