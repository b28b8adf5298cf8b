// Package terminal renders rich output with lipgloss styles and pterm tables
package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/rebatch/pkg/style"
	"github.com/arthur-debert/rebatch/pkg/types"
	"github.com/arthur-debert/rebatch/pkg/ui/display"
	"github.com/pterm/pterm"
)

// Renderer writes styled output
type Renderer struct {
	output io.Writer
	markup *style.MarkupParser
}

// New creates a terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w, markup: style.NewMarkupParser()}
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
	header := r.markup.RenderTemplate("[title]{{dir}}[/title]  [muted]{{shown}} of {{total}} files, by {{sort}} {{direction}}[/muted]", map[string]string{
		"dir":       l.Directory,
		"shown":     strconv.Itoa(len(l.Entries)),
		"total":     strconv.Itoa(l.Total),
		"sort":      l.Sort,
		"direction": l.Direction,
	})
	if _, err := fmt.Fprintln(r.output, header); err != nil {
		return err
	}
	if len(l.Entries) == 0 {
		_, err := fmt.Fprintln(r.output, style.MutedStyle.Render("No files"))
		return err
	}

	data := pterm.TableData{{"", "Name", "Ext", "Target", "Size", "Modified"}}
	for _, e := range l.Entries {
		mark := style.PendingIndicator
		if e.Selected {
			mark = style.SelectedIndicator
		}
		target := ""
		if e.HasTarget() {
			target = style.TargetStyle.Render(e.IntendedName())
		}
		data = append(data, []string{
			mark,
			e.OriginalName,
			e.Extension,
			target,
			display.FormatSize(e.SizeKiB),
			display.FormatTime(e.ModifiedAt),
		})
	}
	return r.table(data)
}

func (r *Renderer) renderConflicts(c *display.ConflictReport) error {
	if len(c.Conflicts) == 0 {
		_, err := fmt.Fprintln(r.output, r.markup.RenderTemplate(
			"{{ok}} No conflicts for {{n}} files in [path]{{dest}}[/path]",
			map[string]string{"ok": style.SuccessIndicator, "n": strconv.Itoa(c.Checked), "dest": c.Destination}))
		return err
	}

	title := r.markup.RenderTemplate("{{warn}} [warning]{{n}} of {{checked}} files would collide[/warning] in [path]{{dest}}[/path]", map[string]string{
		"warn":    style.WarningIndicator,
		"n":       strconv.Itoa(len(c.Conflicts)),
		"checked": strconv.Itoa(c.Checked),
		"dest":    c.Destination,
	})
	if _, err := fmt.Fprintln(r.output, title); err != nil {
		return err
	}
	for _, fc := range c.Conflicts {
		if _, err := fmt.Fprintln(r.output, style.Indent(fc.DisplayName, 1)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderPlan(p *display.PlanReport) error {
	data := pterm.TableData{{"#", "Current", "Planned"}}
	for i, row := range p.Rows() {
		data = append(data, []string{strconv.Itoa(i + 1), row.From, style.TargetStyle.Render(row.To)})
	}
	if err := r.table(data); err != nil {
		return err
	}
	if p.SavedTo != "" {
		_, err := fmt.Fprintln(r.output, r.markup.RenderTemplate(
			"{{ok}} Plan saved to [path]{{path}}[/path]",
			map[string]string{"ok": style.SuccessIndicator, "path": p.SavedTo}))
		return err
	}
	return nil
}

func (r *Renderer) renderTransfer(t *types.TransferResult) error {
	for _, o := range t.Outcomes {
		line := fmt.Sprintf("%s %s", style.ActionIndicator(o.Action), o.FileName)
		if o.Destination != "" && o.Action != types.ActionSkipped {
			line += style.MutedStyle.Render(" → ") + style.PathStyle.Render(o.Destination)
		}
		if o.Replaced {
			line += style.WarningStyle.Render(" (replaced)")
		}
		if o.Failed() {
			line += "\n" + style.Indent(style.ErrorStyle.Render(o.ErrorMessage()), 2)
		}
		if _, err := fmt.Fprintln(r.output, line); err != nil {
			return err
		}
	}
	summary := style.StatusStyle(t.Status).Render(display.Summary(t))
	_, err := fmt.Fprintln(r.output, summary)
	return err
}

func (r *Renderer) table(data pterm.TableData) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.output, out)
	return err
}

// RenderError renders an error with its details
func (r *Renderer) RenderError(err error) error {
	var b strings.Builder
	b.WriteString(style.ErrorIndicator + " " + style.ErrorStyle.Render(err.Error()))
	for _, line := range display.ErrorDetails(err) {
		b.WriteString("\n" + style.Indent(style.MutedStyle.Render(line), 1))
	}
	_, werr := fmt.Fprintln(r.output, b.String())
	return werr
}

// RenderMessage renders a simple message; markup tags are expanded
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, r.markup.Render(msg))
	return err
}
