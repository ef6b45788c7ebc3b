package update

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/goodbuddi/internal/model"
	"github.com/sandeepkv93/goodbuddi/internal/timer"
	"github.com/sandeepkv93/goodbuddi/internal/views"
)

var errNoPlanner = errors.New("update: no planner configured")

func (m Model) openActivity() (Model, tea.Cmd) {
	ev, ok := m.selectedEvent()
	if !ok {
		return m, nil
	}
	if len(ev.Activities) == 0 {
		m.Status = StatusBar{Text: fmt.Sprintf("%s has no activities", ev.Title)}
		return m, nil
	}
	m.Modal = ModalActivity
	m.Activity = ActivityState{EventID: ev.ID, tickID: m.Activity.tickID + 1}
	m.armTimer(m.timerMinutes)
	return m, nil
}

func (m *Model) closeActivity() {
	m.Modal = ModalNone
	m.Activity.Countdown.Reset()
	m.Activity.tickID++
}

// armTimer selects a preset and invalidates any in-flight tick.
func (m *Model) armTimer(minutes int) error {
	if err := m.Activity.Countdown.Select(minutes); err != nil {
		return err
	}
	m.Activity.tickID++
	m.Activity.Message = ""
	m.Activity.PresetCursor = -1
	for i, p := range timer.Presets {
		if p == minutes {
			m.Activity.PresetCursor = i
		}
	}
	return nil
}

func (m Model) currentEvent() (model.Event, int, bool) {
	idx, err := model.FindEvent(m.Today.Plan.Events, m.Activity.EventID)
	if err != nil {
		return model.Event{}, -1, false
	}
	return m.Today.Plan.Events[idx], idx, true
}

func (m Model) currentActivity() (model.Activity, bool) {
	if m.Modal != ModalActivity {
		return model.Activity{}, false
	}
	ev, _, ok := m.currentEvent()
	if !ok || m.Activity.Index < 0 || m.Activity.Index >= len(ev.Activities) {
		return model.Activity{}, false
	}
	return ev.Activities[m.Activity.Index], true
}

func (m Model) handleActivityKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	ev, _, ok := m.currentEvent()
	if !ok {
		m.closeActivity()
		return m, nil
	}

	key := msg.String()
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if idx < len(timer.Presets) {
			_ = m.armTimer(timer.Presets[idx])
			m.Status = StatusBar{Text: "timer set to " + timer.PresetLabel(timer.Presets[idx])}
		}
		return m, nil
	}

	switch key {
	case "esc":
		m.closeActivity()
	case " ":
		if m.Activity.Countdown.Toggle() {
			m.Activity.tickID++
			return m, timerTickCmd(m.Activity.tickID)
		}
	case "r":
		m.Activity.Countdown.Reset()
		m.Activity.tickID++
		m.Activity.Message = ""
	case "left", "h":
		if m.Activity.Index > 0 {
			m.Activity.Index--
		}
	case "right", "l":
		if m.Activity.Index < len(ev.Activities)-1 {
			m.Activity.Index++
		}
	case "c":
		m.finishActivity(ev, true)
	case "s":
		m.finishActivity(ev, false)
	}
	return m, nil
}

// finishActivity completes or skips the shown activity, persists it and
// moves on to the next activity or closes the viewer after the last one.
func (m *Model) finishActivity(ev model.Event, complete bool) {
	if m.planner == nil {
		m.setError(errNoPlanner)
		return
	}
	act := ev.Activities[m.Activity.Index]
	var (
		updated model.Event
		err     error
	)
	if complete {
		updated, err = m.planner.CompleteActivity(m.ctx, &m.Today.Plan, ev.ID, act.ID)
	} else {
		updated, err = m.planner.SkipActivity(m.ctx, &m.Today.Plan, ev.ID, act.ID)
	}
	if err != nil {
		m.setError(err)
		return
	}

	verb := "skipped"
	if complete {
		verb = "completed"
	}
	m.logger.Debug("activity_"+verb,
		zap.String("date_key", m.Today.Plan.DateKey),
		zap.String("event_id", ev.ID),
		zap.String("activity_id", act.ID),
	)

	if m.Activity.Index < len(updated.Activities)-1 {
		m.Activity.Index++
		_ = m.armTimer(m.timerMinutes)
		m.Status = StatusBar{Text: fmt.Sprintf("%s %s", verb, act.Name)}
		return
	}
	m.closeActivity()
	if updated.Completed {
		m.Status = StatusBar{Text: fmt.Sprintf("%s is complete", updated.Title)}
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s %s, %d/%d done", verb, act.Name, updated.CompletedCount(), len(updated.Activities))}
}

func (m Model) onTimerTick(msg TimerTickMsg) (Model, tea.Cmd) {
	if m.Modal != ModalActivity || msg.ID != m.Activity.tickID || !m.Activity.Countdown.Running {
		return m, nil
	}
	res := m.Activity.Countdown.Tick()
	for _, pct := range res.Milestones {
		if err := m.player.Milestone(); err != nil {
			m.logger.Warn("milestone_cue_failed", zap.Error(err))
		}
		m.Status = StatusBar{Text: fmt.Sprintf("%d%% of the time is up", pct)}
	}
	if res.Finished {
		if err := m.player.Completion(); err != nil {
			m.logger.Warn("completion_cue_failed", zap.Error(err))
		}
		m.Activity.Message = timer.CompletionMessage
		m.Status = StatusBar{Text: "time's up"}
		return m, nil
	}
	return m, timerTickCmd(m.Activity.tickID)
}

func timerTickCmd(id int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return TimerTickMsg{ID: id} })
}

func renderDetails(details []string) string {
	if len(details) == 0 {
		return ""
	}
	return views.RenderMarkdown(strings.Join(details, " • "))
}

func (m Model) renderActivityView() string {
	ev, _, ok := m.currentEvent()
	act, okAct := m.currentActivity()
	if !ok || !okAct {
		return ""
	}
	presets := make([]string, 0, len(timer.Presets))
	for _, p := range timer.Presets {
		presets = append(presets, timer.PresetLabel(p))
	}
	details := ""
	if len(act.Details) > 0 {
		details = m.detailsViewport.View()
	}
	c := m.Activity.Countdown
	return views.RenderActivityPanel(views.ActivityPanelData{
		EventTitle:   ev.Title,
		Index:        m.Activity.Index,
		Total:        len(ev.Activities),
		Name:         act.Name,
		DetailsView:  details,
		Completed:    act.Completed,
		Skipped:      act.Skipped,
		Timer:        model.FormatTimer(c.RemainingSec),
		TimerClass:   string(c.Class()),
		ProgressView: m.timerProgress.ViewAs(c.Progress()),
		Presets:      presets,
		PresetCursor: m.Activity.PresetCursor,
		Running:      c.Running,
		Message:      m.Activity.Message,
	})
}
