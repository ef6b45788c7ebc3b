package update

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/goodbuddi/internal/commands"
	"github.com/sandeepkv93/goodbuddi/internal/export"
	"github.com/sandeepkv93/goodbuddi/internal/model"
	"github.com/sandeepkv93/goodbuddi/internal/timer"
)

func (m Model) openPalette() Model {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.Focus()
	m.commandInput.SetValue("")
	m.Status = StatusBar{Text: "command palette active"}
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.setError(err)
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Goto: func(a commands.GotoArgs) (commands.Result, error) {
			if m.planner == nil {
				return commands.Result{}, errNoPlanner
			}
			key := a.Resolve(m.planner.Now())
			m.CurrentView = ViewToday
			m.Modal = ModalNone
			m.loadDate(key)
			return commands.Result{Message: "showing " + m.dateLabel(key)}, nil
		},
		Timer: func(a commands.TimerArgs) (commands.Result, error) {
			if m.Modal != ModalActivity {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "open an activity to use the timer"}
			}
			if err := m.armTimer(a.Minutes); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "timer set to " + timer.PresetLabel(a.Minutes)}, nil
		},
		Phrase: func(a commands.PhraseArgs) (commands.Result, error) {
			book := m.Phrases.Book
			var (
				next model.PhraseBook
				err  error
			)
			switch a.Action {
			case commands.PhraseAdd:
				next, err = book.Add(a.Text)
			default:
				next, err = book.Pin(a.Index)
			}
			if err != nil {
				return commands.Result{}, err
			}
			m.savePhrases(next)
			if m.Status.IsError {
				return commands.Result{}, m.LastError
			}
			return commands.Result{Message: fmt.Sprintf("phrase %s done", a.Action)}, nil
		},
		Export: func(a commands.ExportArgs) (commands.Result, error) {
			path := strings.TrimSpace(a.Path)
			if path == "" {
				path = m.Today.Plan.DateKey + ".ics"
			}
			if err := writeICSFile(path, m.Today.Plan); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("exported %s to %s", pluralize(len(m.Today.Plan.Events), "event"), path)}, nil
		},
	})
	if err != nil {
		m.setError(err)
		return m
	}
	m.logger.Info("palette_command", zap.String("command", string(cmd.Type)))
	m.Status = StatusBar{Text: res.Message}
	return m
}

func writeICSFile(path string, plan model.DayPlan) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := export.WriteICS(f, plan.DateKey, plan.Events); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
