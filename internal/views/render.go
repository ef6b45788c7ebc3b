package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header        string
	Billboard     string
	MainPane      string
	SidePane      string
	Overlay       string
	StatusLine    string
	StatusIsError bool
	Footer        string
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	billboardStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("13")).Padding(0, 1)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	overlayStyle   = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("12")).Padding(0, 1)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	doneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	maybeStyle     = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8"))
	caretStyle     = lipgloss.NewStyle().Reverse(true)
	warningStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	criticalStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

const paneWidth = 58

func RenderApp(data AppData) string {
	lines := []string{headerStyle.Render(data.Header)}
	if strings.TrimSpace(data.Billboard) != "" {
		lines = append(lines, billboardStyle.Render("✦ "+data.Billboard))
	}

	main := panelStyle.Width(paneWidth).Render(data.MainPane)
	if data.SidePane != "" {
		side := panelStyle.Width(paneWidth).Render(data.SidePane)
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, side)
	}
	lines = append(lines, main)

	if data.Overlay != "" {
		lines = append(lines, overlayStyle.Width(paneWidth*2).Render(data.Overlay))
	}
	if data.StatusLine != "" {
		if data.StatusIsError {
			lines = append(lines, errorStyle.Render(data.StatusLine))
		} else {
			lines = append(lines, statusStyle.Render(data.StatusLine))
		}
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

// RenderEditor draws text with a block caret at the given rune offset. Tabs
// are expanded to four spaces so nesting stays visible.
func RenderEditor(text string, caret int, focused bool, placeholder string) string {
	r := []rune(text)
	if caret < 0 {
		caret = 0
	}
	if caret > len(r) {
		caret = len(r)
	}
	if len(r) == 0 && !focused {
		return mutedStyle.Render(placeholder)
	}
	before, after := string(r[:caret]), string(r[caret:])
	if !focused {
		return expandTabs(text)
	}
	under := " "
	if len(after) > 0 {
		first := []rune(after)[0]
		if first != '\n' {
			under = string(first)
			after = string([]rune(after)[1:])
		}
	}
	return expandTabs(before) + caretStyle.Render(under) + expandTabs(after)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
