package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/goodbuddi/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	global := m.toKeyBindings(m.globalBindings())
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: global,
			full:  [][]key.Binding{global},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Today, Action: "today"},
		{Key: m.Keys.Week, Action: "week"},
		{Key: "/", Action: "command"},
		{Key: m.Keys.Help, Action: "help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewToday:
		return []KeyBinding{
			{Key: "e/enter", Action: "edit the scratchpad"},
			{Key: "- tab shift+tab enter", Action: "bullet, indent, outdent, next bullet while editing"},
			{Key: "ctrl+s", Action: "set for the day"},
			{Key: "esc", Action: "stop editing"},
			{Key: "tab", Action: "switch between scratchpad and events"},
			{Key: "j/k enter", Action: "pick an event and open its activities"},
			{Key: "h/l t", Action: "previous / next day, back to today"},
			{Key: "E", Action: "end the day"},
			{Key: "P", Action: "edit light-up phrases"},
		}
	case ViewWeek:
		return []KeyBinding{
			{Key: "h/l j/k", Action: "move between days"},
			{Key: "[ ]", Action: "previous / next week"},
			{Key: "enter", Action: "plan the selected day"},
			{Key: "ctrl+s", Action: "save the day"},
			{Key: "esc", Action: "stop editing / clear selection"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) toKeyBindings(kbs []KeyBinding) []key.Binding {
	out := make([]key.Binding, 0, len(kbs))
	for _, kb := range kbs {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
