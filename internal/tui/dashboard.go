package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"timespent/internal/model"
	"timespent/internal/storage"
)

// tickMsg is sent when the refresh timer ticks.
type tickMsg time.Time

// entriesMsg carries a refreshed entries list.
type entriesMsg []*model.Entry

// DashboardConfig holds configuration for the dashboard.
type DashboardConfig struct {
	EntryRepo       *storage.EntryRepo
	Limit           int
	RefreshInterval time.Duration
}

// DashboardModel is the bubbletea model showing recent entries.
type DashboardModel struct {
	entries []*model.Entry
	repo    *storage.EntryRepo

	width  int
	height int

	limit           int
	refreshInterval time.Duration
}

// NewDashboard creates a dashboard model.
func NewDashboard(cfg DashboardConfig) DashboardModel {
	limit := cfg.Limit
	if limit <= 0 {
		limit = 20
	}
	interval := cfg.RefreshInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return DashboardModel{
		repo:            cfg.EntryRepo,
		limit:           limit,
		refreshInterval: interval,
	}
}

// Init starts the refresh loop.
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.refresh(), m.tick())
}

func (m DashboardModel) tick() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m DashboardModel) refresh() tea.Cmd {
	repo, limit := m.repo, m.limit
	return func() tea.Msg {
		return entriesMsg(repo.Recent(limit))
	}
}

// Update handles messages.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.refresh(), m.tick())

	case entriesMsg:
		m.entries = msg
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.refresh()
		}
	}
	return m, nil
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	var content strings.Builder

	content.WriteString(StyleTitle.Render("timespent"))
	content.WriteString("\n")

	if len(m.entries) == 0 {
		content.WriteString(StyleSubtitle.Render("No entries yet."))
	} else {
		content.WriteString(StyleHeader.Render(fmt.Sprintf(
			"%-6s %-12s %-7s %-7s %-9s %-4s %s",
			"id", "date", "start", "end", "project", "act", "description")))
		content.WriteString("\n")
		for _, e := range m.entries {
			line := fmt.Sprintf("%-6d %-12s %-7s %-7s %-9s %-4s %s",
				e.ID, e.Date, e.Start, e.End,
				StyleProject.Render(fmt.Sprintf("%d", e.ProjectID)),
				e.Activity, truncate(e.Description, 40))
			content.WriteString(line)
			content.WriteString("\n")
		}
	}

	box := StyleBox
	if m.width > 4 {
		box = box.Width(m.width - 4)
	}
	view := box.Render(content.String())
	help := StyleSubtitle.Render("r refresh • q quit")
	return view + "\n" + help + "\n"
}

// Run starts the dashboard program and blocks until it quits.
func Run(cfg DashboardConfig) error {
	p := tea.NewProgram(NewDashboard(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// truncate shortens s to max runes. Descriptions are free text and
// may contain multibyte characters, so slicing by bytes would split
// a rune.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
