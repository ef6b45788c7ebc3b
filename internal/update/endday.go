package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/goodbuddi/internal/model"
	"github.com/sandeepkv93/goodbuddi/internal/views"
)

func (m *Model) openEndDay() {
	m.Modal = ModalEndDay
	m.EndDay = EndDayState{}
	m.reflectionArea.SetValue("")
	if m.planner != nil {
		r, ok, err := m.planner.Reflection(m.ctx, m.Today.Plan.DateKey)
		if err != nil {
			m.setError(err)
		} else if ok {
			m.reflectionArea.SetValue(r.Exciting)
		}
	}
	m.reflectionArea.Focus()
}

func (m Model) handleEndDayKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Modal = ModalNone
		m.reflectionArea.Blur()
		return m, nil
	case "ctrl+s":
		if m.EndDay.Saved {
			return m, nil
		}
		if m.planner == nil {
			m.setError(errNoPlanner)
			return m, nil
		}
		r, err := m.planner.Reflect(m.ctx, m.Today.Plan, m.reflectionArea.Value())
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.EndDay = EndDayState{Saved: true, Reflection: r}
		m.reflectionArea.Blur()
		m.Status = StatusBar{Text: "reflection saved, see you tomorrow"}
		return m, nil
	}
	if m.EndDay.Saved {
		return m, nil
	}
	var cmd tea.Cmd
	m.reflectionArea, cmd = m.reflectionArea.Update(msg)
	return m, cmd
}

func (m Model) renderEndDayView() string {
	return views.RenderEndDayPanel(views.EndDayPanelData{
		DateLabel:  m.dateLabel(m.Today.Plan.DateKey),
		Completed:  model.CompletedActivityNames(m.Today.Plan.Events),
		EditorView: m.reflectionArea.View(),
		Saved:      m.EndDay.Saved,
		SavedView:  views.RenderMarkdown(m.EndDay.Reflection.Exciting),
	})
}
