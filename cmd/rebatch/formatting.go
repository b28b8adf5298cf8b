package rebatch

import (
	"os"
	"strings"
	"text/template"

	"github.com/arthur-debert/rebatch/pkg/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// formatBoldUpper upper-cases s and makes it bold when stdout is a terminal
func formatBoldUpper(s string) string {
	upper := strings.ToUpper(s)
	if !ui.IsTerminal(os.Stdout) {
		return upper
	}
	return pterm.Bold.Sprint(upper)
}

// initTemplateFormatting registers the helpers used by the usage template
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"boldUpper": formatBoldUpper,
	})
}
