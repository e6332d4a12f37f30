package cmd

import "github.com/charmbracelet/lipgloss"

// LipGloss signature purple/pink palette
var (
	headerColor  = lipgloss.Color("#F780FF") // Bright pink/magenta
	labelColor   = lipgloss.Color("#BD93F9") // Purple
	valueColor   = lipgloss.Color("#E9E9F4") // Light purple/white
	borderColor  = lipgloss.Color("#6272A4") // Muted purple
	accentColor  = lipgloss.Color("#8BE9FD") // Cyan
	successColor = lipgloss.Color("#50FA7B") // Green
	keepColor    = lipgloss.Color("#FFB86C") // Orange
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(headerColor).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(labelColor).Width(20)
	valueStyle  = lipgloss.NewStyle().Foreground(valueColor)
	noteStyle   = lipgloss.NewStyle().Foreground(accentColor).Italic(true)
	removeStyle = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	keepStyle   = lipgloss.NewStyle().Foreground(keepColor).Bold(true)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderColor).Padding(0, 1)
)
