package style

import (
	"github.com/arthur-debert/rebatch/pkg/types"
	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Italic(true)

	CodeStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)
)

var (
	SelectedStyle = lipgloss.NewStyle().
			Foreground(SelectedColor).
			Bold(true)

	TargetStyle = lipgloss.NewStyle().
			Foreground(TargetColor)

	AsideStyle = lipgloss.NewStyle().
			Foreground(AsideColor)
)

// Indicators
var (
	SuccessIndicator  = SuccessStyle.Render("✓")
	ErrorIndicator    = ErrorStyle.Render("✗")
	WarningIndicator  = WarningStyle.Render("!")
	InfoIndicator     = InfoStyle.Render("•")
	PendingIndicator  = MutedStyle.Render("○")
	SelectedIndicator = SelectedStyle.Render("●")
)

// ActionStyle returns the style used for an outcome's action label
func ActionStyle(a types.Action) lipgloss.Style {
	switch a {
	case types.ActionTransferred:
		return SuccessStyle
	case types.ActionCopiedAside:
		return AsideStyle
	case types.ActionFailed:
		return ErrorStyle
	default:
		return MutedStyle
	}
}

// ActionIndicator returns the glyph shown next to an outcome
func ActionIndicator(a types.Action) string {
	switch a {
	case types.ActionTransferred:
		return SuccessIndicator
	case types.ActionCopiedAside:
		return AsideStyle.Render("+")
	case types.ActionFailed:
		return ErrorIndicator
	case types.ActionSkipped:
		return WarningIndicator
	default:
		return PendingIndicator
	}
}

// StatusStyle returns the style for a batch status
func StatusStyle(s types.Status) lipgloss.Style {
	switch s {
	case types.StatusSuccess:
		return SuccessStyle
	case types.StatusPartialFailure:
		return WarningStyle
	default:
		return ErrorStyle
	}
}

func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}
