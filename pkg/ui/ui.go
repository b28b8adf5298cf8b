// Package ui renders command output as rich terminal text, plain text or JSON.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/rebatch/pkg/errors"
	"github.com/arthur-debert/rebatch/pkg/ui/json"
	"github.com/arthur-debert/rebatch/pkg/ui/terminal"
	"github.com/arthur-debert/rebatch/pkg/ui/text"
)

// Renderer is implemented by every output format
type Renderer interface {
	// RenderResult renders a *display.Listing, *display.ConflictReport,
	// *display.PlanReport or *types.TransferResult
	RenderResult(result interface{}) error

	// RenderError renders an error, including its code and details when it has them
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format. FormatAuto inspects output.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
