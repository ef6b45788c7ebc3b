package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/goodbuddi/internal/model"
	"github.com/sandeepkv93/goodbuddi/internal/scheduler"
)

const alertLogLimit = 20

// refreshAlerts swaps the scheduled start alerts of plan's date for the
// ones derived from its current events.
func (m *Model) refreshAlerts(plan model.DayPlan) {
	if m.scheduler == nil || m.planner == nil {
		return
	}
	alerts := scheduler.AlertsFor(plan.DateKey, plan.Events, m.alertLead, m.planner.Now())
	if err := m.scheduler.Replace(plan.DateKey, alerts); err != nil {
		m.setError(fmt.Errorf("schedule alerts: %w", err))
		return
	}
	m.logger.Debug("alerts_scheduled", zap.String("date_key", plan.DateKey), zap.Int("count", len(alerts)))
}

func (m Model) onAlertDue(a scheduler.Alert) (Model, tea.Cmd) {
	m.AlertLog = append(m.AlertLog, a)
	if len(m.AlertLog) > alertLogLimit {
		m.AlertLog = m.AlertLog[len(m.AlertLog)-alertLogLimit:]
	}
	text := fmt.Sprintf("starting: %s", a.Title)
	if !a.StartsAt.IsZero() {
		text = fmt.Sprintf("starting: %s at %s", a.Title, a.StartsAt.Format("15:04"))
	}
	m.Status = StatusBar{Text: text}
	if err := m.notifier.Notify("goodbuddi", text); err != nil {
		m.logger.Warn("alert_notify_failed", zap.String("event_id", a.EventID), zap.Error(err))
	}
	if m.scheduler != nil {
		return m, waitForAlertCmd(m.scheduler.C())
	}
	return m, nil
}

func waitForAlertCmd(ch <-chan scheduler.Alert) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		a, ok := <-ch
		if !ok {
			return nil
		}
		return AlertDueMsg{Alert: a}
	}
}
