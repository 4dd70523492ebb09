package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	tabContainer = lipgloss.NewStyle().Padding(1, 1)
	activeTab    = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	inactiveTab  = lipgloss.NewStyle().Foreground(Secondary)
	tabDivider   = lipgloss.NewStyle().Foreground(Faded)
)

// Tabs is the filter bar across the top of the screen: "All" plus one tab
// per catalog project. Info is rendered right-aligned.
type Tabs struct {
	tabs []string
	i    int

	Width int
	Info  string
}

func NewTabs(tabs []string) Tabs {
	return Tabs{tabs: tabs}
}

// View renders the bar as a single line of styled labels.
func (m Tabs) View() string {
	labels := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		style := inactiveTab
		if i == m.i {
			style = activeTab
		}
		labels[i] = style.Render(t)
	}
	w := lipgloss.Width
	left := strings.Join(labels, tabDivider.Render(" | "))
	right := inactiveTab.Render(m.Info)
	space := lipgloss.NewStyle().Width(m.Width - 2 - w(left) - w(right)).Render("")
	return tabContainer.Render(lipgloss.JoinHorizontal(lipgloss.Center, left, space, right)) + "\n"
}

// Value returns the selected tab index.
func (m Tabs) Value() int {
	return m.i
}

// Len returns the number of tabs.
func (m Tabs) Len() int {
	return len(m.tabs)
}

// Set selects tab i, clamped to the valid range.
func (m *Tabs) Set(i int) {
	if i < 0 {
		i = 0
	}
	if i > len(m.tabs)-1 {
		i = len(m.tabs) - 1
	}
	m.i = i
}
