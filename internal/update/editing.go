package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/goodbuddi/internal/editor"
)

// editBuffer routes a keystroke through the outline keys first and falls
// back to plain text editing. It reports whether the text changed.
func editBuffer(buf editor.Buffer, msg tea.KeyMsg) (editor.Buffer, bool) {
	before := buf.Text
	if k := editor.KeyFromString(msg.String()); k != editor.KeyOther {
		if e, ok := editor.HandleKey(k, buf); ok {
			buf = buf.Apply(e)
			return buf, buf.Text != before
		}
	}

	switch msg.Type {
	case tea.KeyRunes:
		buf = buf.Insert(string(msg.Runes))
	case tea.KeySpace:
		buf = buf.Insert(" ")
	case tea.KeyBackspace:
		buf = buf.Backspace()
	case tea.KeyDelete:
		buf = buf.Delete()
	case tea.KeyLeft:
		buf = buf.Left()
	case tea.KeyRight:
		buf = buf.Right()
	case tea.KeyUp:
		buf = buf.Up()
	case tea.KeyDown:
		buf = buf.Down()
	case tea.KeyHome, tea.KeyCtrlA:
		buf = buf.Home()
	case tea.KeyEnd, tea.KeyCtrlE:
		buf = buf.End()
	}
	return buf, buf.Text != before
}
