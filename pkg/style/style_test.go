package style

import (
	"testing"

	"github.com/arthur-debert/rebatch/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestPlainParser_StripsTags(t *testing.T) {
	p := NewPlainParser()

	assert.Equal(t, "moved 3 files", p.Render("[success]moved[/success] 3 files"))
	assert.Equal(t, "a b c", p.Render("[bold]a [path]b[/path][/bold] c"))
	assert.Equal(t, "no markup here", p.Render("no markup here"))
	assert.Equal(t, "[unknown]kept[/unknown]", p.Render("[unknown]kept[/unknown]"))
}

func TestRenderTemplate(t *testing.T) {
	p := NewPlainParser()
	out := p.RenderTemplate("[title]{{op}}[/title] into [path]{{dest}}[/path]", map[string]string{
		"op":   "copy",
		"dest": "/tmp/out",
	})
	assert.Equal(t, "copy into /tmp/out", out)
}

func TestMarkupParser_AddStyle(t *testing.T) {
	p := NewMarkupParser()
	p.AddStyle("plain", lipgloss.NewStyle())

	assert.Equal(t, "x", p.Render("[plain]x[/plain]"))
}

func TestActionIndicator(t *testing.T) {
	actions := []types.Action{
		types.ActionTransferred,
		types.ActionCopiedAside,
		types.ActionSkipped,
		types.ActionUnchanged,
		types.ActionFailed,
	}
	for _, a := range actions {
		assert.NotEmpty(t, ActionIndicator(a), string(a))
	}
	assert.Equal(t, ErrorIndicator, ActionIndicator(types.ActionFailed))
}
