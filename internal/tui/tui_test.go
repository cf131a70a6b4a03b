package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"timespent/internal/model"
)

func TestNewDashboardDefaults(t *testing.T) {
	m := NewDashboard(DashboardConfig{})
	assert.Equal(t, 20, m.limit)
	assert.Positive(t, m.refreshInterval)
}

func TestViewEmpty(t *testing.T) {
	m := NewDashboard(DashboardConfig{})
	view := m.View()
	assert.Contains(t, view, "timespent")
	assert.Contains(t, view, "No entries yet.")
}

func TestViewEntries(t *testing.T) {
	m := NewDashboard(DashboardConfig{})
	m.entries = []*model.Entry{
		{ID: 1, Date: "2025-07-01", Start: "09:00", End: "11:30", ProjectID: 42, Activity: "G", Description: "draft"},
	}
	view := m.View()
	assert.Contains(t, view, "2025-07-01")
	assert.Contains(t, view, "draft")
}

func TestUpdateQuit(t *testing.T) {
	m := NewDashboard(DashboardConfig{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.NotNil(t, cmd)
}

func TestUpdateEntriesMsg(t *testing.T) {
	m := NewDashboard(DashboardConfig{})
	entries := []*model.Entry{{ID: 1}}
	updated, _ := m.Update(entriesMsg(entries))
	dm := updated.(DashboardModel)
	assert.Len(t, dm.entries, 1)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactlyten", truncate("exactlyten", 10))
	assert.Equal(t, "longer th…", truncate("longer than ten", 10))

	// cut points count runes, not bytes
	assert.Equal(t, "héllo wör…", truncate("héllo wörld wide", 10))
	assert.Equal(t, "héllo", truncate("héllo", 10))
	assert.Equal(t, "日本語のテキストただし長…", truncate("日本語のテキストただし長すぎる", 12))
}
