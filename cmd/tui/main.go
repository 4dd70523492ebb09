package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/okatz/mytasks/internal/ui"
	"github.com/okatz/mytasks/pkg/dateinput"
	"github.com/okatz/mytasks/pkg/project"
	"github.com/okatz/mytasks/pkg/task"
	"github.com/okatz/mytasks/pkg/task/date"
)

var filePath = flag.String("file", defaultDBPath(), "Path to the task database")

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "mytasks.db"
	}
	return filepath.Join(home, ".mytasks.db")
}

func main() {
	flag.Parse()

	store, err := task.Open(*filePath)
	if err != nil {
		log.Fatalf("open task database: %v", err)
	}
	defer store.Close()

	input := textinput.NewModel()
	input.Prompt = ""
	input.Width = 40
	input.Focus()

	catalog := project.Default()
	labels := make([]string, 0, len(catalog)+1)
	labels = append(labels, "All")
	for _, p := range catalog {
		labels = append(labels, p.Name)
	}
	tabs := ui.NewTabs(labels)
	tabs.Info = *filePath

	a := &app{
		view:     task.NewView(store),
		catalog:  catalog,
		input:    input,
		viewport: viewport.Model{},
		tabs:     tabs,
	}

	p := tea.NewProgram(a)
	p.EnterAltScreen()
	defer p.ExitAltScreen()
	if err := p.Start(); err != nil {
		log.Fatalf("run: %v", err)
	}
}

const (
	headerHeight = 3
	footerHeight = 1
)

type mode int

const (
	modeNormal mode = iota
	modeNewDesc
	modeNewDue
	modeNewProject
	modeDue
)

type app struct {
	mode   mode
	loaded bool

	viewport viewport.Model
	input    textinput.Model
	tabs     ui.Tabs

	view    *task.View
	catalog project.Catalog

	cursor        int
	visible       []int64
	lineOf        []int
	content       string
	showCompleted bool

	// pending creation form, filled across modeNewDesc/Due/Project
	newDesc    string
	newDue     *time.Time
	newProject *string

	status  string
	loadErr error
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m *app) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		verticalMargins := headerHeight + footerHeight
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - verticalMargins
		m.tabs.Width = msg.Width
		if !m.loaded {
			m.reload()
			m.loaded = true
		}
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			m.mode = modeNormal
			m.resetForm()
			m.status = ""
		default:
			cmd = m.keyUpdate(msg)
		}
	}
	m.render()
	return m, cmd
}

// handle keys differently based on the current mode
func (m *app) keyUpdate(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch m.mode {
	case modeNewDesc:
		if msg.Type == tea.KeyEnter {
			if strings.TrimSpace(m.input.Value()) == "" {
				m.status = ui.StatusError.Render(task.ErrEmptyDescription.Error())
				return nil
			}
			m.newDesc = m.input.Value()
			m.input.SetValue("")
			m.status = ""
			m.mode = modeNewDue
			return nil
		}
		m.input, cmd = m.input.Update(msg)
	case modeNewDue:
		if msg.Type == tea.KeyEnter {
			due, err := dateinput.Parse(m.input.Value(), time.Now())
			if err != nil {
				m.status = ui.StatusError.Render("unrecognised date, try 'tomorrow' or '21/04'")
				return nil
			}
			m.newDue = due
			m.input.SetValue("")
			m.status = ""
			m.mode = modeNewProject
			return nil
		}
		m.input, cmd = m.input.Update(msg)
	case modeNewProject:
		switch {
		case msg.Type == tea.KeyEnter:
			m.submitNew()
		case msg.String() == " " || msg.String() == "p" || msg.Type == tea.KeyTab:
			m.newProject = m.catalog.Next(m.newProject)
		}
	case modeDue:
		if msg.Type == tea.KeyEnter {
			due, err := dateinput.Parse(m.input.Value(), time.Now())
			if err != nil {
				m.status = ui.StatusError.Render("unrecognised date, try 'tomorrow' or '21/04'")
				return nil
			}
			if t, ok := m.atCursor(); ok {
				f := t.Fields()
				f.DueDate = due
				m.saveTask(t.ID, f)
			}
			m.mode = modeNormal
			return nil
		}
		m.input, cmd = m.input.Update(msg)
	case modeNormal:
		cmd = m.normalKey(msg)
	}
	return cmd
}

func (m *app) normalKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "q":
		return tea.Quit
	case "g":
		m.setCursor(0)
	case "G":
		m.setCursor(len(m.visible))
	case "ctrl+d":
		m.setCursor(m.cursor + 10)
	case "ctrl+u":
		m.setCursor(m.cursor - 10)
	case "j":
		m.setCursor(m.cursor + 1)
	case "k":
		m.setCursor(m.cursor - 1)
	case "o":
		m.mode = modeNewDesc
		m.resetForm()
		m.status = ""
	case "x", " ":
		if t, ok := m.atCursor(); ok {
			f := t.Fields()
			f.Completed = !f.Completed
			m.saveTask(t.ID, f)
		}
	case "d":
		if _, ok := m.atCursor(); ok {
			m.mode = modeDue
			m.input.SetValue("")
		}
	case "p":
		if t, ok := m.atCursor(); ok {
			f := t.Fields()
			f.ProjectID = m.catalog.Next(f.ProjectID)
			m.saveTask(t.ID, f)
		}
	case tea.KeyDelete.String():
		if t, ok := m.atCursor(); ok {
			if err := m.view.Delete(context.Background(), t.ID); err != nil {
				m.status = ui.StatusError.Render("delete failed, task restored: " + err.Error())
			} else {
				m.status = ""
			}
		}
	case "c":
		m.showCompleted = !m.showCompleted
	case "r":
		m.reload()
	default:
		if !strings.HasPrefix(key, "alt+") {
			break
		}
		if n, err := strconv.Atoi(strings.TrimPrefix(key, "alt+")); err == nil && n >= 1 && n <= m.tabs.Len() {
			m.tabs.Set(n - 1)
			m.setCursor(0)
		}
	}
	return nil
}

func (m *app) submitNew() {
	fields := task.Fields{
		Description: m.newDesc,
		DueDate:     m.newDue,
		ProjectID:   m.newProject,
	}
	id, err := m.view.Create(context.Background(), fields)
	if err != nil {
		if id != 0 {
			// the task was persisted but the refetch failed; retrying
			// would duplicate it, so treat this as a read failure
			m.loadErr = err
			m.resetForm()
			m.status = ""
			m.mode = modeNormal
			return
		}
		// the form keeps its content so enter can retry
		m.status = ui.StatusError.Render("create failed: " + err.Error())
		return
	}
	m.resetForm()
	m.status = ""
	m.mode = modeNormal
}

func (m *app) resetForm() {
	m.newDesc = ""
	m.newDue = nil
	m.newProject = nil
	m.input.SetValue("")
}

// saveTask persists a field change through the view; on failure the view has
// already reverted to ground truth, so only the statusline needs updating.
func (m *app) saveTask(id int64, f task.Fields) {
	if err := m.view.Update(context.Background(), id, f); err != nil {
		m.status = ui.StatusError.Render("save failed, changes reverted: " + err.Error())
		return
	}
	m.status = ""
}

func (m *app) reload() {
	m.loadErr = m.view.Load(context.Background())
}

func (m *app) atCursor() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return task.Task{}, false
	}
	return m.view.Get(m.visible[m.cursor])
}

func (m *app) setCursor(value int) {
	if len(m.visible) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = clamp(value, 0, len(m.visible)-1)

	line := m.lineOf[m.cursor]
	if line >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.YOffset = line - m.viewport.Height + 1
	}
	if line < m.viewport.YOffset {
		m.viewport.YOffset = line
	}
}

// render rebuilds the grouped task list and hands it to the viewport.
func (m *app) render() {
	if m.cursor > len(m.visible)-1 {
		m.cursor = max(len(m.visible)-1, 0)
	}
	m.buildLines()
	m.viewport.SetContent(m.content)
}

func (m *app) projectFilter() string {
	if i := m.tabs.Value(); i > 0 {
		return m.catalog[i-1].ID
	}
	return ""
}

func (m *app) buildLines() {
	if m.loadErr != nil {
		m.visible = nil
		m.lineOf = nil
		m.content = "\n" + ui.StatusError.Render("could not load tasks: "+m.loadErr.Error()) +
			"\n\n" + ui.StatusInfo.Render("press r to retry")
		return
	}

	var (
		b    strings.Builder
		line int
	)
	m.visible = m.visible[:0]
	m.lineOf = m.lineOf[:0]
	now := time.Now()
	filter := m.projectFilter()

	for _, g := range m.view.Groups(now) {
		b.WriteString("\n")
		b.WriteString(ui.GroupHeader.Render(g.Name) + "\n")
		line += 2

		tasks := g.Visible(m.showCompleted)
		if filter != "" {
			kept := tasks[:0:0]
			for _, t := range tasks {
				if t.ProjectID != nil && *t.ProjectID == filter {
					kept = append(kept, t)
				}
			}
			tasks = kept
		}

		if len(tasks) == 0 {
			b.WriteString("  " + ui.EmptyLabel.Render(g.NoTasksLabel) + "\n")
			line++
			continue
		}
		for _, t := range tasks {
			selected := len(m.visible) == m.cursor
			m.visible = append(m.visible, t.ID)
			m.lineOf = append(m.lineOf, line)
			b.WriteString(m.viewTask(t, selected, now) + "\n")
			line++
		}
	}
	m.content = b.String()
}

func (m *app) viewTask(t task.Task, selected bool, now time.Time) string {
	check := "[ ]"
	title := ui.TaskTitle
	if t.Completed {
		check = "[x]"
		title = ui.DoneTitle
	}
	if selected {
		title = title.Copy().Background(ui.Faded)
	}
	s := ui.Checkbox.Render(check) + title.Render(t.Description)
	if t.DueDate != nil {
		s += ui.TaskDivider
		s += lipgloss.NewStyle().Foreground(dueColor(*t.DueDate, now)).Render(formatDue(*t.DueDate, now))
	}
	if t.ProjectID != nil {
		s += ui.TaskDivider
		s += ui.ProjectTag.Render(m.catalog.Name(*t.ProjectID))
	}
	return s
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m *app) View() string {
	return m.tabs.View() + m.viewport.View() + "\n" + m.statusline()
}

func (m *app) statusline() string {
	switch m.mode {
	case modeNewDesc:
		return "new task: " + m.input.View()
	case modeNewDue, modeDue:
		preview := "✗"
		if due, err := dateinput.Parse(m.input.Value(), time.Now()); err == nil {
			if due == nil {
				preview = "✓ no due date"
			} else {
				preview = "✓ " + formatDue(*due, time.Now())
			}
		}
		return "due: " + m.input.View() + preview
	case modeNewProject:
		name := "none"
		if m.newProject != nil {
			name = m.catalog.Name(*m.newProject)
		}
		return "project: " + name + ui.StatusInfo.Render("  (space to change, enter to add)")
	}
	return m.status
}

func formatDue(t, now time.Time) string {
	switch d := date.DaysFrom(now, t); {
	case d < -1:
		return strconv.Itoa(-d) + " days ago"
	case d == -1:
		return "yesterday"
	case d == 0:
		return "today"
	case d == 1:
		return "tomorrow"
	case d < 14:
		return strconv.Itoa(d) + " days"
	case d <= 31:
		return strconv.Itoa(d/7) + " weeks"
	default:
		months := d / 31
		suffix := ""
		if months > 1 {
			suffix = "s"
		}
		return strconv.Itoa(months) + " month" + suffix
	}
}

func dueColor(t, now time.Time) lipgloss.Color {
	switch d := date.DaysFrom(now, t); {
	case d <= 2:
		return ui.Red
	case d <= 14:
		return ui.Orange
	default:
		return ui.Faded
	}
}

func clamp(v, low, high int) int {
	return min(high, max(low, v))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
