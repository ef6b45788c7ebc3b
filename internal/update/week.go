package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/goodbuddi/internal/editor"
	"github.com/sandeepkv93/goodbuddi/internal/model"
	"github.com/sandeepkv93/goodbuddi/internal/planner"
)

func (m Model) handleWeekKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.Week.Editing {
		switch msg.String() {
		case "esc":
			m.Week.Editing = false
			return m, nil
		case "ctrl+s":
			m.saveWeekDay()
			return m, nil
		}
		var changed bool
		m.Week.Buffer, changed = editBuffer(m.Week.Buffer, msg)
		if changed {
			m.Week.Dirty = true
		}
		return m, nil
	}

	switch msg.String() {
	case "up", "k", "h", "left":
		if m.Week.Cursor > 0 {
			m.Week.Cursor--
		}
	case "down", "j", "l", "right":
		if m.Week.Cursor < len(m.Week.Plans)-1 {
			m.Week.Cursor++
		}
	case "[":
		m.shiftWeek(-1)
	case "]":
		m.shiftWeek(1)
	case "enter":
		m.selectWeekDay(m.Week.Cursor)
	case "ctrl+s":
		m.saveWeekDay()
	case "esc":
		m.clearWeekSelection()
	}
	return m, nil
}

func (m *Model) shiftWeek(delta int) {
	m.Week.Monday = m.Week.Monday.AddDate(0, 0, 7*delta)
	m.clearWeekSelection()
	m.loadWeek()
	m.Status = StatusBar{Text: "week of " + model.FormatWeekRange(m.Week.Monday)}
}

func (m *Model) clearWeekSelection() {
	m.Week.Selected = -1
	m.Week.Editing = false
	m.Week.Dirty = false
	m.Week.Buffer = editor.Buffer{}
}

func (m *Model) selectWeekDay(idx int) {
	if idx < 0 || idx >= len(m.Week.Plans) {
		return
	}
	m.Week.Selected = idx
	m.Week.Buffer = editor.NewBuffer(m.Week.Plans[idx].Scratchpad)
	m.Week.Dirty = false
	m.Week.Editing = true
}

func (m *Model) loadWeek() {
	if m.planner == nil {
		return
	}
	plans, err := m.planner.Week(m.ctx, m.Week.Monday)
	if err != nil {
		m.setError(err)
		return
	}
	m.Week.Plans = plans
	if m.Week.Cursor >= len(plans) {
		m.Week.Cursor = 0
	}
}

func (m *Model) saveWeekDay() {
	if m.planner == nil || m.Week.Selected < 0 || m.Week.Selected >= len(m.Week.Plans) {
		return
	}
	dateKey := m.Week.Plans[m.Week.Selected].DateKey
	plan, err := m.planner.Commit(m.ctx, dateKey, m.Week.Buffer.Text)
	if err != nil {
		m.setError(err)
		return
	}
	m.Week.Dirty = false
	m.loadWeek()
	if dateKey == m.Today.Plan.DateKey && !m.Today.Dirty {
		m.Today.Plan = plan
		m.Today.Buffer = editor.NewBuffer(plan.Scratchpad)
		m.Today.Cursor = 0
	}
	if dateKey == m.planner.Today() {
		m.refreshAlerts(plan)
	}
	m.Status = StatusBar{Text: fmt.Sprintf("saved %s: %s", m.dateLabel(dateKey), pluralize(len(plan.Events), "event"))}
}

func weekPreview(p model.DayPlan) string {
	titles := p.PreviewTitles(planner.PreviewLimit)
	if len(titles) == 0 {
		return "-"
	}
	out := strings.Join(titles, ", ")
	if extra := len(p.Events) - len(titles); extra > 0 {
		out += fmt.Sprintf(" +%d", extra)
	}
	return out
}
