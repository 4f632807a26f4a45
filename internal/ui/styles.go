package ui

import (
	"grove/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds all application styles, initialized from theme config.
type Styles struct {
	// Colors
	ColorPrimary lipgloss.Color
	ColorAccent  lipgloss.Color
	ColorMuted   lipgloss.Color
	ColorDanger  lipgloss.Color
	ColorWarning lipgloss.Color
	ColorSuccess lipgloss.Color

	// Component styles
	TitleStyle  lipgloss.Style
	HeaderStyle lipgloss.Style

	TaskDoneStyle     lipgloss.Style
	TaskPendingStyle  lipgloss.Style
	TaskSelectedStyle lipgloss.Style
	CheckboxDone      string
	CheckboxPending   string

	PriorityHighStyle   lipgloss.Style
	PriorityMediumStyle lipgloss.Style
	PriorityLowStyle    lipgloss.Style

	DueOverdueStyle lipgloss.Style
	DueTodayStyle   lipgloss.Style
	DueFutureStyle  lipgloss.Style

	TagStyle      lipgloss.Style
	ProgressStyle lipgloss.Style
	RecurStyle    lipgloss.Style

	ColumnTitleStyle lipgloss.Style
	ColumnStyle      lipgloss.Style

	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style

	InputPromptStyle lipgloss.Style
}

// NewStylesFromTheme creates styles using colors from the theme config.
// Empty theme values fall back to the defaults.
func NewStylesFromTheme(theme *config.ThemeConfig) *Styles {
	if theme == nil {
		theme = &config.ThemeConfig{}
	}

	primary := pickColor(theme.Primary, "#7C3AED")
	accent := pickColor(theme.Accent, "#10B981")
	muted := pickColor(theme.Muted, "#6B7280")
	danger := lipgloss.Color("#EF4444")
	warning := lipgloss.Color("#F59E0B")
	success := lipgloss.Color("#10B981")

	return &Styles{
		ColorPrimary: primary,
		ColorAccent:  accent,
		ColorMuted:   muted,
		ColorDanger:  danger,
		ColorWarning: warning,
		ColorSuccess: success,

		TitleStyle:  lipgloss.NewStyle().Bold(true).Foreground(primary),
		HeaderStyle: lipgloss.NewStyle().Foreground(muted),

		TaskDoneStyle:     lipgloss.NewStyle().Strikethrough(true).Foreground(muted),
		TaskPendingStyle:  lipgloss.NewStyle(),
		TaskSelectedStyle: lipgloss.NewStyle().Bold(true).Foreground(primary),
		CheckboxDone:      "[x]",
		CheckboxPending:   "[ ]",

		PriorityHighStyle:   lipgloss.NewStyle().Bold(true).Foreground(danger),
		PriorityMediumStyle: lipgloss.NewStyle().Foreground(warning),
		PriorityLowStyle:    lipgloss.NewStyle().Foreground(muted),

		DueOverdueStyle: lipgloss.NewStyle().Bold(true).Foreground(danger),
		DueTodayStyle:   lipgloss.NewStyle().Foreground(warning),
		DueFutureStyle:  lipgloss.NewStyle().Foreground(muted),

		TagStyle:      lipgloss.NewStyle().Foreground(accent),
		ProgressStyle: lipgloss.NewStyle().Foreground(muted),
		RecurStyle:    lipgloss.NewStyle().Foreground(accent),

		ColumnTitleStyle: lipgloss.NewStyle().Bold(true).Foreground(primary),
		ColumnStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1),

		StatusStyle: lipgloss.NewStyle().Foreground(success),
		ErrorStyle:  lipgloss.NewStyle().Bold(true).Foreground(danger),
		HelpStyle:   lipgloss.NewStyle().Foreground(muted),

		InputPromptStyle: lipgloss.NewStyle().Bold(true).Foreground(accent),
	}
}

func pickColor(value, fallback string) lipgloss.Color {
	if value == "" {
		return lipgloss.Color(fallback)
	}
	return lipgloss.Color(value)
}
