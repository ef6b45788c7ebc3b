package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/goodbuddi/internal/editor"
	"github.com/sandeepkv93/goodbuddi/internal/model"
)

func (m Model) handleTodayKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.Today.Editing {
		switch msg.String() {
		case "esc":
			m.Today.Editing = false
			return m, nil
		case "ctrl+s":
			m.commitToday()
			return m, nil
		}
		var changed bool
		m.Today.Buffer, changed = editBuffer(m.Today.Buffer, msg)
		if changed {
			m.Today.Dirty = true
		}
		return m, nil
	}

	switch msg.String() {
	case "e", "i":
		m.Today.Focus = FocusScratchpad
		m.Today.Editing = true
	case "tab":
		if m.Today.Focus == FocusScratchpad {
			m.Today.Focus = FocusEvents
		} else {
			m.Today.Focus = FocusScratchpad
		}
	case "ctrl+s":
		m.commitToday()
	case "up", "k":
		if m.Today.Focus == FocusEvents && m.Today.Cursor > 0 {
			m.Today.Cursor--
		}
	case "down", "j":
		if m.Today.Focus == FocusEvents && m.Today.Cursor < len(m.Today.Plan.Events)-1 {
			m.Today.Cursor++
		}
	case "enter":
		if m.Today.Focus == FocusEvents {
			return m.openActivity()
		}
		m.Today.Editing = true
	case "h", "[":
		m.shiftDay(-1)
	case "l", "]":
		m.shiftDay(1)
	case "t":
		if m.planner != nil {
			m.loadDate(m.planner.Today())
		}
	case "E":
		m.openEndDay()
	case "P":
		m.openPhrases()
	}
	return m, nil
}

func (m *Model) shiftDay(delta int) {
	day, err := model.ParseDateKey(m.Today.Plan.DateKey)
	if err != nil {
		m.setError(err)
		return
	}
	m.loadDate(model.DateKey(day.AddDate(0, 0, delta)))
}

// loadDate switches the Today view to dateKey. Unsaved edits are dropped.
func (m *Model) loadDate(dateKey string) {
	if m.planner == nil {
		return
	}
	plan, err := m.planner.Load(m.ctx, dateKey)
	if err != nil {
		m.setError(err)
		return
	}
	m.Today.Plan = plan
	m.Today.Buffer = editor.NewBuffer(plan.Scratchpad)
	m.Today.Dirty = false
	m.Today.Editing = false
	m.Today.Cursor = 0
	if dateKey == m.planner.Today() {
		m.refreshAlerts(plan)
	}
}

// commitToday parses the scratchpad and stores it as the plan for the shown
// date.
func (m *Model) commitToday() {
	if m.planner == nil {
		return
	}
	plan, err := m.planner.Commit(m.ctx, m.Today.Plan.DateKey, m.Today.Buffer.Text)
	if err != nil {
		m.setError(err)
		return
	}
	m.Today.Plan = plan
	m.Today.Dirty = false
	if m.Today.Cursor >= len(plan.Events) {
		m.Today.Cursor = max(len(plan.Events)-1, 0)
	}
	if plan.DateKey == m.planner.Today() {
		m.refreshAlerts(plan)
	}
	m.loadWeek()
	m.Status = StatusBar{Text: fmt.Sprintf("set for %s: %s", m.dateLabel(plan.DateKey), pluralize(len(plan.Events), "event"))}
}

func (m Model) selectedEvent() (model.Event, bool) {
	events := m.Today.Plan.Events
	if m.Today.Cursor < 0 || m.Today.Cursor >= len(events) {
		return model.Event{}, false
	}
	return events[m.Today.Cursor], true
}

func (m Model) dateLabel(dateKey string) string {
	day, err := model.ParseDateKey(dateKey)
	if err != nil {
		return dateKey
	}
	return model.FormatLongDate(day)
}

func (m Model) greeting() string {
	if m.planner == nil {
		return ""
	}
	name := strings.TrimSpace(m.userName)
	if name == "" {
		name = "friend"
	}
	switch h := m.planner.Now().Hour(); {
	case h < 12:
		return fmt.Sprintf("Good morning, %s", name)
	case h < 17:
		return fmt.Sprintf("Good afternoon, %s", name)
	default:
		return fmt.Sprintf("Good evening, %s", name)
	}
}
