package model

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"
)

func TestClockOn(t *testing.T) {
	day := time.Date(2026, 10, 15, 0, 0, 0, 0, time.Local)
	cases := []struct {
		in      string
		hour    int
		minute  int
		wantsOK bool
	}{
		{"2:30 PM", 14, 30, true},
		{"9am", 9, 0, true},
		{"12 AM", 0, 0, true},
		{"12:15 pm", 12, 15, true},
		{"14", 14, 0, true},
		{"7:05", 7, 5, true},
		{"13 PM", 0, 0, false},
		{"25", 0, 0, false},
		{"9:75", 0, 0, false},
	}
	for _, tc := range cases {
		got, ok := ClockOn(tc.in, day)
		if ok != tc.wantsOK {
			t.Fatalf("ClockOn(%q) ok=%v, want %v", tc.in, ok, tc.wantsOK)
		}
		if ok && (got.Hour() != tc.hour || got.Minute() != tc.minute || !SameDay(got, day)) {
			t.Fatalf("ClockOn(%q) = %v", tc.in, got)
		}
	}
}

func TestSpanOf(t *testing.T) {
	if d, ok := SpanOf("1.5 hours"); !ok || d != 90*time.Minute {
		t.Fatalf("unexpected: %v %v", d, ok)
	}
	if d, ok := SpanOf("45 MIN"); !ok || d != 45*time.Minute {
		t.Fatalf("unexpected: %v %v", d, ok)
	}
	if _, ok := SpanOf("3 days"); ok {
		t.Fatal("expected unknown unit to fail")
	}
}

func TestDayPlanPreviewAndCompletedNames(t *testing.T) {
	plan := DayPlan{
		DateKey: "2026-10-15",
		Events: []Event{
			{ID: "1", Title: "One", Activities: []Activity{{ID: "a", Name: "A", Completed: true}, {ID: "b", Name: "B"}}},
			{ID: "2", Title: "Two"},
			{ID: "3", Title: "Three", Activities: []Activity{{ID: "c", Name: "C", Completed: true}}, Completed: true},
			{ID: "4", Title: "Four"},
		},
	}
	if err := plan.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	titles := plan.PreviewTitles(3)
	if len(titles) != 3 || titles[2] != "Three" {
		t.Fatalf("unexpected preview: %v", titles)
	}
	names := CompletedActivityNames(plan.Events)
	if len(names) != 2 || names[0] != "A" || names[1] != "C" {
		t.Fatalf("unexpected completed names: %v", names)
	}
	if got := CompletedActivityNames(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestPhraseBookLimits(t *testing.T) {
	book := DefaultPhraseBook()
	if err := book.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	var err error
	for i := len(book.Phrases); i < MaxPhrases; i++ {
		if book, err = book.Add("more"); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	if _, err := book.Add("one too many"); !errors.Is(err, ErrTooManyPhrases) {
		t.Fatalf("expected ErrTooManyPhrases, got %v", err)
	}

	single := PhraseBook{Phrases: []string{"only"}, Pinned: -1}
	if _, err := single.Remove(0); !errors.Is(err, ErrNoPhrases) {
		t.Fatalf("expected ErrNoPhrases, got %v", err)
	}
}

func TestPhraseBookPinAndRemove(t *testing.T) {
	book := PhraseBook{Phrases: []string{"a", "b", "c"}, Pinned: -1}
	book, err := book.Pin(2)
	if err != nil {
		t.Fatalf("pin: %v", err)
	}
	if got := book.Daily(nil); got != "c" {
		t.Fatalf("expected pinned phrase, got %q", got)
	}
	book, err = book.Remove(0)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if book.Pinned != 1 || book.Daily(nil) != "c" {
		t.Fatalf("pin did not follow phrase: %+v", book)
	}
	book, _ = book.Remove(1)
	if book.Pinned != -1 {
		t.Fatalf("expected pin to be released, got %d", book.Pinned)
	}
	if _, err := book.Pin(5); !errors.Is(err, ErrPhraseIndex) {
		t.Fatalf("expected ErrPhraseIndex, got %v", err)
	}
}

func TestPhraseBookCleanedDropsBlanks(t *testing.T) {
	book := PhraseBook{Phrases: []string{"  ", "keep", "", "pinned"}, Pinned: 3}
	cleaned := book.Cleaned()
	if len(cleaned.Phrases) != 2 || cleaned.Phrases[1] != "pinned" || cleaned.Pinned != 1 {
		t.Fatalf("unexpected cleaned book: %+v", cleaned)
	}
}

func TestPhraseBookDailyRandom(t *testing.T) {
	book := PhraseBook{Phrases: []string{"a", "b", "c"}, Pinned: -1}
	r := rand.New(rand.NewPCG(1, 2))
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[book.Daily(r)] = true
	}
	for p := range seen {
		if p != "a" && p != "b" && p != "c" {
			t.Fatalf("unexpected phrase %q", p)
		}
	}
	if len(seen) < 2 {
		t.Fatalf("expected random spread, got %v", seen)
	}
}
