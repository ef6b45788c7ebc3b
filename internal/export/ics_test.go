package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/goodbuddi/internal/model"
	"github.com/sandeepkv93/goodbuddi/internal/scratchpad"
)

func parseBack(t *testing.T, out string) map[string]*ical.VEvent {
	t.Helper()
	cal, err := ical.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	byTitle := make(map[string]*ical.VEvent)
	for _, ev := range cal.Events() {
		p := ev.GetProperty(ical.ComponentPropertySummary)
		require.NotNil(t, p)
		byTitle[p.Value] = ev
	}
	return byTitle
}

func TestWritePlansMapsEventKinds(t *testing.T) {
	events := scratchpad.Parse("• Standup @ 9:30 AM *30 min\n\t• Share blockers\n\t\t• infra ticket\n" +
		"• Errands\n" +
		"• maybe: Climbing @ 6 PM\n" +
		"• Odd @ 77")

	var buf bytes.Buffer
	stamp := time.Date(2026, 10, 15, 6, 0, 0, 0, time.UTC)
	require.NoError(t, WritePlans(&buf, []model.DayPlan{{DateKey: "2026-10-15", Events: events}}, stamp))
	out := buf.String()
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, productID)

	byTitle := parseBack(t, out)
	require.Len(t, byTitle, 4)

	standup := byTitle["Standup"]
	start, err := standup.GetStartAt()
	require.NoError(t, err)
	end, err := standup.GetEndAt()
	require.NoError(t, err)
	want := time.Date(2026, 10, 15, 9, 30, 0, 0, time.Local)
	assert.True(t, start.Equal(want), "start %v", start)
	assert.Equal(t, 30*time.Minute, end.Sub(start))
	desc := standup.GetProperty(ical.ComponentPropertyDescription)
	require.NotNil(t, desc)
	assert.Contains(t, desc.Value, "Share blockers")
	assert.Contains(t, desc.Value, "infra ticket")

	errands := byTitle["Errands"].GetProperty(ical.ComponentPropertyDtStart)
	require.NotNil(t, errands)
	assert.Equal(t, "20261015", errands.Value)

	climbing := byTitle["Climbing"].GetProperty(ical.ComponentPropertyStatus)
	require.NotNil(t, climbing)
	assert.Equal(t, string(ical.ObjectStatusTentative), climbing.Value)

	odd := byTitle["Odd"].GetProperty(ical.ComponentPropertyDtStart)
	require.NotNil(t, odd)
	assert.Equal(t, "20261015", odd.Value, "unresolvable time falls back to all-day")
}

func TestDescribeMarksProgress(t *testing.T) {
	ev := model.Event{
		ID: "e",
		Activities: []model.Activity{
			{ID: "a", Name: "Done", Completed: true, Details: []string{}},
			{ID: "b", Name: "Skipped", Skipped: true},
			{ID: "c", Name: "Open", Details: []string{"note"}},
		},
	}
	assert.Equal(t, "[x] Done\n[-] Skipped\n[ ] Open\n    • note", describe(ev))
	assert.Equal(t, "", describe(model.Event{ID: "empty"}))
}

func TestWriteICSRejectsBadDateKey(t *testing.T) {
	var buf bytes.Buffer
	err := WriteICS(&buf, "tomorrow", nil)
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}
