package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/goodbuddi/internal/editor"
	"github.com/sandeepkv93/goodbuddi/internal/model"
	"github.com/sandeepkv93/goodbuddi/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.scheduler != nil {
		return waitForAlertCmd(m.scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		m.helpModel.Width = typed.Width
		return m, nil
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.setError(typed.Err)
		return m, nil
	case TimerTickMsg:
		return m.onTimerTick(typed)
	case AlertDueMsg:
		return m.onAlertDue(typed.Alert)
	case RolloverMsg:
		m.onRollover(typed)
		return m, nil
	case ScratchpadImportedMsg:
		m.onImported(typed.Plan)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}

	if m.Palette.Active {
		return m.handlePaletteKey(msg), nil
	}

	switch m.Modal {
	case ModalActivity:
		if keyStr == "/" {
			return m.openPalette(), nil
		}
		return m.handleActivityKey(msg)
	case ModalEndDay:
		return m.handleEndDayKey(msg)
	case ModalPhrases:
		return m.handlePhrasesKey(msg)
	}

	if m.editing() {
		if m.CurrentView == ViewWeek {
			return m.handleWeekKey(msg)
		}
		return m.handleTodayKey(msg)
	}

	switch keyStr {
	case "/":
		return m.openPalette(), nil
	case m.Keys.Today:
		m.CurrentView = ViewToday
		return m, nil
	case m.Keys.Week:
		m.CurrentView = ViewWeek
		m.loadWeek()
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}

	if m.CurrentView == ViewWeek {
		return m.handleWeekKey(msg)
	}
	return m.handleTodayKey(msg)
}

func (m Model) editing() bool {
	if m.CurrentView == ViewWeek {
		return m.Week.Editing
	}
	return m.Today.Editing
}

// onRollover moves a Today view that was showing the previous day onto the
// new day and draws a fresh billboard phrase.
func (m *Model) onRollover(msg RolloverMsg) {
	newKey := model.DateKey(msg.At)
	prevKey := model.DateKey(msg.At.AddDate(0, 0, -1))
	m.logger.Info("rollover", zap.String("date_key", newKey))
	if m.Today.Plan.DateKey == prevKey && !m.Today.Dirty {
		m.loadDate(newKey)
	}
	if !m.Week.Editing {
		m.Week.Monday = model.MondayOfWeek(msg.At)
		m.clearWeekSelection()
		m.loadWeek()
	}
	m.Billboard = m.Phrases.Book.Daily(m.rng)
	m.Status = StatusBar{Text: "a new day: " + model.FormatLongDate(msg.At)}
}

func (m *Model) onImported(plan model.DayPlan) {
	if plan.DateKey == m.Today.Plan.DateKey && !m.Today.Dirty && !m.Today.Editing {
		m.Today.Plan = plan
		m.Today.Buffer = editor.NewBuffer(plan.Scratchpad)
		m.Today.Cursor = 0
	}
	if m.planner != nil && plan.DateKey == m.planner.Today() {
		m.refreshAlerts(plan)
	}
	if !m.Week.Editing {
		m.loadWeek()
	}
	m.Status = StatusBar{Text: fmt.Sprintf("imported %s for %s", pluralize(len(plan.Events), "event"), m.dateLabel(plan.DateKey))}
}

func (m Model) View() string {
	m.syncBubbleData()

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	mainPane, sidePane := "", ""
	switch m.CurrentView {
	case ViewWeek:
		mainPane = m.renderWeekView()
	default:
		mainPane = m.renderTodayView()
		sidePane = m.renderEventList()
	}

	overlay := strings.TrimSpace(strings.Join([]string{
		m.renderOverlay(),
		m.renderCommandPalette(),
		m.renderHelpIfVisible(),
	}, "\n"))

	return views.RenderApp(views.AppData{
		Header:        fmt.Sprintf("goodbuddi | view: %s | %s", m.CurrentView, m.Today.Plan.DateKey),
		Billboard:     m.Billboard,
		MainPane:      mainPane,
		SidePane:      sidePane,
		Overlay:       overlay,
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Footer:        fmt.Sprintf("keys: %s today | %s week | / cmd | %s help | %s quit", m.Keys.Today, m.Keys.Week, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewToday, ViewWeek:
		return true
	default:
		return false
	}
}
