package views

import (
	"strings"
	"testing"
)

func TestRenderEditorPlacesCaret(t *testing.T) {
	out := RenderEditor("• a\n\t• b", 3, true, "")
	if !strings.Contains(out, "• a") || !strings.Contains(out, "    • b") {
		t.Fatalf("expected expanded outline, got %q", out)
	}
	if got := RenderEditor("", 0, false, "type here"); !strings.Contains(got, "type here") {
		t.Fatalf("expected placeholder, got %q", got)
	}
	if got := RenderEditor("abc", 99, false, ""); got != "abc" {
		t.Fatalf("unfocused editor should render text as is, got %q", got)
	}
}

func TestRenderEndDayListsCompleted(t *testing.T) {
	out := RenderEndDayPanel(EndDayPanelData{DateLabel: "March 11, 2026"})
	if !strings.Contains(out, "No activities completed yet") {
		t.Fatalf("expected empty message, got %q", out)
	}
	out = RenderEndDayPanel(EndDayPanelData{Completed: []string{"outline", "draft"}})
	if !strings.Contains(out, "✓ outline") || !strings.Contains(out, "✓ draft") {
		t.Fatalf("expected completed names, got %q", out)
	}
	if !strings.Contains(out, "What was exciting about your day?") {
		t.Fatalf("expected reflection prompt, got %q", out)
	}
}

func TestRenderEventListMarksState(t *testing.T) {
	out := RenderEventList(EventListData{
		Events: []EventCardData{
			{ID: "1", Title: "Standup", Time: "9:30am", Duration: "15 min", Kind: "timed", Done: 1, Total: 2},
			{ID: "2", Title: "Gym", Kind: "maybe"},
			{ID: "3", Title: "Write", Completed: true, Done: 1, Total: 1},
		},
		SelectedID: "1",
		Focused:    true,
	})
	for _, want := range []string{"> ○ Standup", "@ 9:30am · 15 min · 1/2", "Gym", "maybe", "✓ Write"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
	if got := RenderEventList(EventListData{}); !strings.Contains(got, "nothing planned") {
		t.Fatalf("expected empty list hint, got %q", got)
	}
}

func TestRenderAppOmitsEmptyPanes(t *testing.T) {
	out := RenderApp(AppData{Header: "goodbuddi", MainPane: "main", StatusLine: "ok"})
	if !strings.Contains(out, "goodbuddi") || !strings.Contains(out, "main") || !strings.Contains(out, "ok") {
		t.Fatalf("unexpected app render: %q", out)
	}
	if strings.Contains(out, "✦") {
		t.Fatalf("billboard should be hidden when empty: %q", out)
	}
}
