package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	GroupHeader = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	EmptyLabel  = lipgloss.NewStyle().Foreground(Faded)

	TaskTitle = lipgloss.NewStyle()
	DoneTitle = lipgloss.NewStyle().Foreground(Secondary).Strikethrough(true)
	Checkbox  = lipgloss.NewStyle().Foreground(Secondary).Padding(0, 1)

	ProjectTag  = lipgloss.NewStyle().Foreground(Blue)
	TaskDivider = lipgloss.NewStyle().Foreground(Faded).Padding(0, 1).Render("∙")

	StatusError = lipgloss.NewStyle().Foreground(Red)
	StatusInfo  = lipgloss.NewStyle().Foreground(Secondary)
)
