package update

import (
	"fmt"

	"github.com/sandeepkv93/goodbuddi/internal/model"
	"github.com/sandeepkv93/goodbuddi/internal/planner"
	"github.com/sandeepkv93/goodbuddi/internal/views"
)

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}

func (m Model) renderTodayView() string {
	day, err := model.ParseDateKey(m.Today.Plan.DateKey)
	label := m.Today.Plan.DateKey
	if err == nil {
		label = model.FormatLongDate(day)
	}
	isToday := m.planner != nil && m.Today.Plan.DateKey == m.planner.Today()
	return views.RenderTodayPanel(views.TodayPanelData{
		DateLabel:  label,
		IsToday:    isToday,
		Greeting:   m.greeting(),
		EditorView: views.RenderEditor(m.Today.Buffer.Text, m.Today.Buffer.Caret(), m.Today.Editing, "• Start typing your day..."),
		Editing:    m.Today.Editing,
		Dirty:      m.Today.Dirty,
	})
}

func (m Model) renderEventList() string {
	cards := make([]views.EventCardData, 0, len(m.Today.Plan.Events))
	for _, ev := range m.Today.Plan.Events {
		card := views.EventCardData{
			ID:        ev.ID,
			Title:     ev.Title,
			Kind:      string(ev.Kind()),
			Completed: ev.Completed,
			Done:      ev.CompletedCount(),
			Total:     len(ev.Activities),
		}
		if ev.Time != nil {
			card.Time = *ev.Time
		}
		if ev.Duration != nil {
			card.Duration = *ev.Duration
		}
		cards = append(cards, card)
	}
	selected := ""
	if ev, ok := m.selectedEvent(); ok {
		selected = ev.ID
	}
	return views.RenderEventList(views.EventListData{
		Events:     cards,
		SelectedID: selected,
		Focused:    m.Today.Focus == FocusEvents,
	})
}

func (m Model) renderWeekView() string {
	days := make([]views.WeekDayData, 0, len(m.Week.Plans))
	for _, p := range m.Week.Plans {
		d := views.WeekDayData{Label: p.DateKey, Titles: p.PreviewTitles(planner.PreviewLimit)}
		d.More = len(p.Events) - len(d.Titles)
		days = append(days, d)
	}
	data := views.WeekPanelData{
		RangeLabel: model.FormatWeekRange(m.Week.Monday),
		TableView:  m.weekTable.View(),
		Days:       days,
		Cursor:     m.Week.Cursor,
	}
	if m.Week.Selected >= 0 && m.Week.Selected < len(m.Week.Plans) {
		data.EditorTitle = fmt.Sprintf("Plan for %s", m.dateLabel(m.Week.Plans[m.Week.Selected].DateKey))
		data.EditorView = views.RenderEditor(m.Week.Buffer.Text, m.Week.Buffer.Caret(), m.Week.Editing, "• Plan this day...")
		data.Editing = m.Week.Editing
		data.Dirty = m.Week.Dirty
	}
	return views.RenderWeekPanel(data)
}

func (m Model) renderOverlay() string {
	switch m.Modal {
	case ModalActivity:
		return m.renderActivityView()
	case ModalEndDay:
		return m.renderEndDayView()
	case ModalPhrases:
		return m.renderPhrasesView()
	}
	return ""
}
