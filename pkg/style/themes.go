package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Adaptive palette; lipgloss picks the variant matching the terminal background
var (
	PrimaryColor = lipgloss.AdaptiveColor{Light: "#007ACC", Dark: "#3D9EFF"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#ADB5BD"}
	HeadingColor = lipgloss.AdaptiveColor{Light: "#212529", Dark: "#F8F9FA"}
	BorderColor  = lipgloss.AdaptiveColor{Light: "#DEE2E6", Dark: "#3B3C4F"}

	SuccessColor = lipgloss.AdaptiveColor{Light: "#28A745", Dark: "#4CDD76"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#D39E00", Dark: "#FFD54F"}
	InfoColor    = lipgloss.AdaptiveColor{Light: "#17A2B8", Dark: "#4DD0E1"}
)

// Entry colors
var (
	// SelectedColor marks entries in the working set
	SelectedColor = lipgloss.AdaptiveColor{Light: "#8B5CF6", Dark: "#A78BFA"}

	// TargetColor is used for planned names
	TargetColor = lipgloss.AdaptiveColor{Light: "#0EA5E9", Dark: "#38BDF8"}

	// AsideColor is used for entries written to their "(Copy)" path
	AsideColor = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"}
)
