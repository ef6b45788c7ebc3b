package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type EventCardData struct {
	ID        string
	Title     string
	Time      string
	Duration  string
	Kind      string
	Completed bool
	Done      int
	Total     int
}

type TodayPanelData struct {
	DateLabel  string
	IsToday    bool
	Greeting   string
	EditorView string
	Editing    bool
	Dirty      bool
}

type EventListData struct {
	Events     []EventCardData
	SelectedID string
	Focused    bool
}

type WeekDayData struct {
	Label   string
	Titles  []string
	More    int
	IsToday bool
}

type WeekPanelData struct {
	RangeLabel  string
	TableView   string
	Days        []WeekDayData
	Cursor      int
	EditorTitle string
	EditorView  string
	Editing     bool
	Dirty       bool
}

type ActivityPanelData struct {
	EventTitle   string
	Index        int
	Total        int
	Name         string
	DetailsView  string
	Completed    bool
	Skipped      bool
	Timer        string
	TimerClass   string
	ProgressView string
	Presets      []string
	PresetCursor int
	Running      bool
	Message      string
}

type EndDayPanelData struct {
	DateLabel  string
	Completed  []string
	EditorView string
	Saved      bool
	SavedView  string
}

type PhrasesPanelData struct {
	Phrases   []string
	Pinned    int
	Cursor    int
	Max       int
	Adding    bool
	InputView string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTodayPanel(data TodayPanelData) string {
	var b strings.Builder
	title := data.DateLabel
	if data.IsToday {
		title = "Today · " + title
	}
	b.WriteString(headerStyle.Render(title) + "\n")
	if data.Greeting != "" {
		b.WriteString(data.Greeting + "\n")
	}
	state := "[e]dit"
	if data.Editing {
		state = "editing · [ctrl+s] set for the day · [esc] done"
	}
	if data.Dirty {
		state += " · " + warningStyle.Render("unsaved")
	}
	b.WriteString(mutedStyle.Render(state) + "\n\n")
	b.WriteString(data.EditorView)
	return strings.TrimRight(b.String(), "\n")
}

func RenderEventList(data EventListData) string {
	var b strings.Builder
	b.WriteString("events:\n")
	if len(data.Events) == 0 {
		b.WriteString(mutedStyle.Render("(nothing planned yet)"))
		return b.String()
	}
	for _, ev := range data.Events {
		b.WriteString(renderEventCard(ev, data.Focused && ev.ID == data.SelectedID))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderEventCard(ev EventCardData, selected bool) string {
	cursor := " "
	if selected {
		cursor = ">"
	}
	mark := "○"
	if ev.Completed {
		mark = "✓"
	}
	line := fmt.Sprintf("%s %s %s", cursor, mark, ev.Title)
	var meta []string
	if ev.Time != "" {
		meta = append(meta, "@ "+ev.Time)
	}
	if ev.Duration != "" {
		meta = append(meta, ev.Duration)
	}
	if ev.Total > 0 {
		meta = append(meta, fmt.Sprintf("%d/%d", ev.Done, ev.Total))
	}
	if len(meta) > 0 {
		line += " " + mutedStyle.Render("("+strings.Join(meta, " · ")+")")
	}
	switch {
	case ev.Completed:
		line = doneStyle.Render(line)
	case ev.Kind == "maybe":
		line = maybeStyle.Render(line + " maybe")
	case selected:
		line = selectedStyle.Render(line)
	}
	return line
}

func RenderWeekPanel(data WeekPanelData) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Week of "+data.RangeLabel) + "\n")
	b.WriteString(mutedStyle.Render("[h/l] day · [[/]] week · [enter] plan day") + "\n\n")
	if data.TableView != "" {
		b.WriteString(data.TableView + "\n")
	} else {
		for i, d := range data.Days {
			cursor := " "
			if i == data.Cursor {
				cursor = ">"
			}
			label := d.Label
			if d.IsToday {
				label += " (today)"
			}
			b.WriteString(fmt.Sprintf("%s %s\n", cursor, label))
			for _, t := range d.Titles {
				b.WriteString("    • " + t + "\n")
			}
			if d.More > 0 {
				b.WriteString(mutedStyle.Render(fmt.Sprintf("    +%d more", d.More)) + "\n")
			}
		}
	}
	if data.EditorTitle != "" {
		b.WriteString("\n" + headerStyle.Render(data.EditorTitle))
		hint := "[enter] edit"
		if data.Editing {
			hint = "editing · [ctrl+s] save · [esc] done"
		}
		if data.Dirty {
			hint += " · " + warningStyle.Render("unsaved")
		}
		b.WriteString("\n" + mutedStyle.Render(hint) + "\n")
		b.WriteString(data.EditorView)
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderActivityPanel(data ActivityPanelData) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(data.EventTitle))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  activity %d of %d", data.Index+1, data.Total)) + "\n\n")

	name := data.Name
	switch {
	case data.Completed:
		name = doneStyle.Render("✓ " + name)
	case data.Skipped:
		name = mutedStyle.Render("↷ " + name)
	default:
		name = selectedStyle.Render(name)
	}
	b.WriteString(name + "\n")
	if data.DetailsView != "" {
		b.WriteString(data.DetailsView + "\n")
	}

	b.WriteString("\n")
	presets := make([]string, 0, len(data.Presets))
	for i, p := range data.Presets {
		label := fmt.Sprintf("%d:%s", i+1, p)
		if i == data.PresetCursor {
			label = selectedStyle.Render("[" + label + "]")
		}
		presets = append(presets, label)
	}
	b.WriteString(strings.Join(presets, " ") + "\n")

	state := "paused"
	if data.Running {
		state = "running"
	}
	b.WriteString(fmt.Sprintf("%s %s %s\n", timerStyle(data.TimerClass).Render(data.Timer), data.ProgressView, mutedStyle.Render(state)))
	if data.Message != "" {
		b.WriteString(doneStyle.Render(data.Message) + "\n")
	}
	b.WriteString(mutedStyle.Render("[1-8] preset · [space] start/pause · [r] reset · [c] complete · [s] skip · [←/→] browse · [esc] close"))
	return b.String()
}

func timerStyle(class string) lipgloss.Style {
	switch class {
	case "critical":
		return criticalStyle
	case "warning":
		return warningStyle
	case "running":
		return doneStyle
	default:
		return headerStyle
	}
}

func RenderEndDayPanel(data EndDayPanelData) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("End of day · "+data.DateLabel) + "\n\n")
	if len(data.Completed) == 0 {
		b.WriteString(mutedStyle.Render("No activities completed yet") + "\n")
	}
	for _, name := range data.Completed {
		b.WriteString(doneStyle.Render("✓ "+name) + "\n")
	}
	b.WriteString("\nWhat was exciting about your day?\n")
	if data.Saved {
		b.WriteString(data.SavedView + "\n")
		b.WriteString(mutedStyle.Render("saved · [esc] close"))
		return b.String()
	}
	b.WriteString(data.EditorView + "\n")
	b.WriteString(mutedStyle.Render("[ctrl+s] save · [esc] cancel"))
	return b.String()
}

func RenderPhrasesPanel(data PhrasesPanelData) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Light-up phrases (%d/%d)", len(data.Phrases), data.Max)) + "\n\n")
	for i, p := range data.Phrases {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		pin := " "
		if i == data.Pinned {
			pin = "📌"
		}
		line := fmt.Sprintf("%s %s %d. %s", cursor, pin, i+1, p)
		if i == data.Cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if data.Pinned < 0 {
		b.WriteString(mutedStyle.Render("no pin: a random phrase is picked each day") + "\n")
	}
	if data.Adding {
		b.WriteString("\n" + data.InputView + "\n")
		b.WriteString(mutedStyle.Render("[enter] add · [esc] cancel"))
		return b.String()
	}
	b.WriteString("\n" + mutedStyle.Render("[a] add · [d] delete · [p] pin/unpin · [esc] close"))
	return b.String()
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command: " + inputView
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help · %s view\n%s\n\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
