package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tasklist/app"
	"tasklist/model"
)

const (
	msgEmptyTask = "Please enter a task!"
	msgSaveError = "Error saving tasks. Please try again."
)

type uiMode int

const (
	modeNormal uiMode = iota
	modeAdd
	modeSearch
	modeConfirmDelete
)

// Options tunes the interactive front end.
type Options struct {
	NoticeDuration  time.Duration
	DefaultPriority model.Priority
}

// hideNoticeMsg hides the notice it was scheduled for. A newer notice bumps
// the sequence so stale timers do nothing.
type hideNoticeMsg struct {
	seq int
}

type Model struct {
	svc  *app.Service
	opts Options

	mode     uiMode
	cursor   int
	input    textinput.Model
	priority model.Priority

	confirmID   string
	confirmText string

	status    string
	notice    string
	noticeSeq int

	width  int
	height int
}

func NewModel(svc *app.Service, opts Options) *Model {
	if opts.NoticeDuration <= 0 {
		opts.NoticeDuration = 3 * time.Second
	}
	if !opts.DefaultPriority.Valid() {
		opts.DefaultPriority = model.PriorityLow
	}

	ti := textinput.New()
	ti.CharLimit = 500
	ti.Prompt = ""

	return &Model{
		svc:      svc,
		opts:     opts,
		mode:     modeNormal,
		input:    ti,
		priority: opts.DefaultPriority,
		status:   "Ready",
	}
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(svc *app.Service, opts Options) error {
	_, err := tea.NewProgram(NewModel(svc, opts), tea.WithAltScreen()).Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case hideNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m, m.updateAddMode(msg)
		case modeSearch:
			return m, m.updateSearchMode(msg)
		case modeConfirmDelete:
			return m, m.updateConfirmMode(msg)
		default:
			return m.updateNormalMode(msg)
		}
	}
	return m, nil
}

func (m *Model) updateNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "a":
		cmd = m.startInput(modeAdd, "")
		m.priority = m.opts.DefaultPriority
		m.setStatus("New task: type and press Enter • Tab changes priority • Esc closes")
	case "x", " ", "space":
		cmd = m.toggleSelected()
	case "d":
		m.startDeleteConfirm()
	case "f":
		next := m.svc.Criteria().Filter.Next()
		if err := m.svc.SetFilter(next); err != nil {
			return m, m.showError(err.Error())
		}
		m.cursor = 0
		m.setStatus("Filter: " + string(next))
	case "/":
		cmd = m.startInput(modeSearch, m.svc.Criteria().Search)
		m.setStatus("Search: type to filter • Enter keeps • Esc clears")
	case "esc":
		if strings.TrimSpace(m.svc.Criteria().Search) != "" {
			m.svc.SetSearch("")
			m.cursor = 0
			m.setStatus("Search cleared")
		}
	}
	m.ensureSelection()
	return m, cmd
}

func (m *Model) updateAddMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.stopInput()
		m.setStatus("Ready")
		return nil
	case "tab":
		m.priority = m.priority.Next()
		return nil
	case "enter":
		return m.submitTask()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) submitTask() tea.Cmd {
	task, err := m.svc.Create(m.input.Value(), m.priority)
	switch {
	case errors.Is(err, app.ErrInvalidTask):
		return m.showError(msgEmptyTask)
	case errors.Is(err, app.ErrPersistenceFailed):
		m.resetAddInput()
		m.cursor = 0
		return m.showError(msgSaveError)
	case err != nil:
		return m.showError(err.Error())
	}
	m.resetAddInput()
	m.cursor = 0
	m.ensureSelection()
	m.setStatus(fmt.Sprintf("Added %q", task.Text))
	return nil
}

// resetAddInput keeps the input open for the next task, as after a submit
// the user usually wants to type another one.
func (m *Model) resetAddInput() {
	m.input.Reset()
	m.priority = m.opts.DefaultPriority
}

func (m *Model) updateSearchMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.svc.SetSearch("")
		m.stopInput()
		m.cursor = 0
		m.setStatus("Search cleared")
		return nil
	case "enter":
		m.stopInput()
		m.setStatus("Ready")
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.svc.SetSearch(m.input.Value())
	m.cursor = 0
	m.ensureSelection()
	return cmd
}

func (m *Model) updateConfirmMode(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch strings.ToLower(msg.String()) {
	case "y":
		if err := m.svc.Delete(m.confirmID); err != nil {
			cmd = m.showError(msgSaveError)
		} else {
			m.setStatus("Task deleted")
		}
	case "n", "esc", "enter", "ctrl+c":
		m.setStatus("Delete cancelled")
	default:
		return nil
	}
	m.mode = modeNormal
	m.confirmID = ""
	m.confirmText = ""
	m.ensureSelection()
	return cmd
}

func (m *Model) startInput(mode uiMode, value string) tea.Cmd {
	m.mode = mode
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) stopInput() {
	m.mode = modeNormal
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) toggleSelected() tea.Cmd {
	task, ok := m.selectedTask()
	if !ok {
		m.setStatus("No task selected")
		return nil
	}
	if err := m.svc.ToggleComplete(task.ID); err != nil {
		return m.showError(msgSaveError)
	}
	if task.Completed {
		m.setStatus("Task reopened")
	} else {
		m.setStatus("Task completed")
	}
	return nil
}

func (m *Model) startDeleteConfirm() {
	task, ok := m.selectedTask()
	if !ok {
		m.setStatus("No task selected")
		return
	}
	m.mode = modeConfirmDelete
	m.confirmID = task.ID
	m.confirmText = task.Text
}

func (m *Model) moveCursor(delta int) {
	tasks := m.svc.View().Tasks
	if len(tasks) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(tasks)-1)
}

func (m *Model) ensureSelection() {
	tasks := m.svc.View().Tasks
	if len(tasks) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = clamp(m.cursor, 0, len(tasks)-1)
}

func (m *Model) selectedTask() (model.Task, bool) {
	tasks := m.svc.View().Tasks
	if len(tasks) == 0 {
		return model.Task{}, false
	}
	if m.cursor < 0 || m.cursor >= len(tasks) {
		m.cursor = 0
	}
	return tasks[m.cursor], true
}

func (m *Model) setStatus(text string) {
	m.status = text
}

// showError displays text until the notice duration passes or a newer
// notice replaces it.
func (m *Model) showError(text string) tea.Cmd {
	m.noticeSeq++
	m.notice = text
	seq := m.noticeSeq
	return tea.Tick(m.opts.NoticeDuration, func(time.Time) tea.Msg {
		return hideNoticeMsg{seq: seq}
	})
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	projection := m.svc.View()
	criteria := m.svc.Criteria()
	viewW := m.viewportWidth()

	title := lipgloss.NewStyle().Bold(true).Render("tasklist")
	summary := fmt.Sprintf("total %d • completed %d • pending %d • filter: %s",
		projection.Stats.Total, projection.Stats.Completed, projection.Stats.Pending, criteria.Filter)
	if strings.TrimSpace(criteria.Search) != "" {
		summary += " • search: \"" + strings.TrimSpace(criteria.Search) + "\""
	}
	header := lipgloss.JoinHorizontal(lipgloss.Left,
		title,
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("  "+summary),
	)

	parts := []string{header}
	if m.notice != "" {
		banner := lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("160")).
			Padding(0, 1).
			Render(m.notice)
		parts = append(parts, banner)
	}

	listH := m.height - 4 - len(parts)
	if listH < 3 {
		listH = 3
	}
	parts = append(parts, m.renderTasks(projection.Tasks, projection.EmptyState, viewW, listH))
	parts = append(parts, m.renderFooter(viewW))
	if prompt := m.promptLine(); prompt != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Width(viewW).Render(prompt))
	}
	return strings.Join(parts, "\n")
}

func (m *Model) renderTasks(tasks []model.Task, empty model.EmptyState, width, height int) string {
	lines := make([]string, 0, len(tasks)+1)
	if len(tasks) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render(empty.Message()))
	}

	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	for i := start; i < len(tasks) && i < start+height; i++ {
		t := tasks[i]
		cursor := " "
		if i == m.cursor && m.mode != modeAdd {
			cursor = "▸"
		}
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}

		textStyle := lipgloss.NewStyle()
		if t.Completed {
			textStyle = textStyle.Faint(true)
		}
		if i == m.cursor {
			textStyle = textStyle.Bold(true).Foreground(lipgloss.Color("229"))
		}

		text := truncateRunes(t.Text, width-20)
		line := lipgloss.JoinHorizontal(lipgloss.Left,
			cursor+" ",
			check+" ",
			textStyle.Render(text),
			" ",
			priorityLabel(t.Priority),
		)
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(width - 2).
		Height(height).
		Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter(width int) string {
	left := strings.TrimSpace(m.status)
	if left == "" {
		left = "Ready"
	}
	right := m.contextualHelp()

	leftW := utf8.RuneCountInString(left)
	rightW := utf8.RuneCountInString(right)
	if leftW+rightW+1 > width {
		maxLeft := width - rightW - 1
		if maxLeft < 8 {
			maxLeft = 8
		}
		left = truncateRunes(left, maxLeft)
		leftW = utf8.RuneCountInString(left)
	}
	if leftW+rightW+1 > width {
		right = truncateRunes(right, width-leftW-1)
		rightW = utf8.RuneCountInString(right)
	}
	padding := width - leftW - rightW
	if padding < 1 {
		padding = 1
	}

	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("70"))
	rightStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	return statusStyle.Render(left) + strings.Repeat(" ", padding) + rightStyle.Render(right)
}

func (m *Model) promptLine() string {
	switch m.mode {
	case modeAdd:
		return fmt.Sprintf("New task [%s]: %s", m.priority, m.input.View())
	case modeSearch:
		return "Search (/): " + m.input.View()
	case modeConfirmDelete:
		return fmt.Sprintf("Are you sure you want to delete %q? [y/N]", m.confirmText)
	}
	return ""
}

func (m *Model) contextualHelp() string {
	switch m.mode {
	case modeAdd:
		return "Enter add • Tab priority • Esc close"
	case modeSearch:
		return "Enter keep • Esc clear"
	case modeConfirmDelete:
		return "y confirm • n/Esc cancel"
	}
	return "a add • x done • d delete • f filter • / search • q quit"
}

func (m *Model) viewportWidth() int {
	if m.width > 1 {
		return m.width - 1
	}
	return 1
}

func priorityLabel(p model.Priority) string {
	color := lipgloss.Color("114")
	switch p {
	case model.PriorityMedium:
		color = lipgloss.Color("220")
	case model.PriorityHigh:
		color = lipgloss.Color("203")
	}
	return lipgloss.NewStyle().Foreground(color).Render(string(p))
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	r := []rune(s)
	return string(r[:max-1]) + "…"
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
