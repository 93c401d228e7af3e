package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Base styles: dark back-office palette, orange accent
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f97316")).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f97316")).
			Bold(true)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	errorBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f87171")).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#7f1d1d")).
				Padding(0, 1)

	// KPI cards on the dashboard
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#1e1e2a")).
			Padding(0, 2)

	cardTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	cardValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	// Refund status colors
	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#facc15"))

	approvedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	rejectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	// Notification overlay
	notifySuccessStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#4ade80"))

	notifyErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f87171"))

	notifyWarningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#facc15"))

	notifyInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#60a5fa"))

	inputLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	borderColor = lipgloss.Color("#1e1e2a")

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(1, 2)
)
