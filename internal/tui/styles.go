package tui

import "github.com/charmbracelet/lipgloss"

var (
	canvasStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f7f7f")).Padding(1, 2)
	statsStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(52)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	readoutStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	playingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	pausedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
)
