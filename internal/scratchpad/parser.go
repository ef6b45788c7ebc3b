// Package scratchpad turns the free-form day notes into events.
//
// The mini-syntax is a tab-indented outline of bulleted lines:
//
//	• Event title @ 2:30 PM *1.5 hours
//		• Activity name
//			• detail line
//	• maybe: Another event
//
// Lines that do not fit the outline are dropped without complaint.
package scratchpad

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/sandeepkv93/goodbuddi/internal/model"
)

const defaultDurationUnit = "hours"

var (
	bulletDotPrefix  = regexp.MustCompile(`^\t*•\s*`)
	bulletDashPrefix = regexp.MustCompile(`^\t*-\s*`)
	timePattern      = regexp.MustCompile(`(?i)@\s*(\d{1,2}(?::\d{2})?\s*(?:AM|PM)?)`)
	durationPattern  = regexp.MustCompile(`(?i)\*\s*(\d+(?:\.\d+)?)\s*(hours|hour|hrs|hr|minutes|minute|mins|min)?`)
	maybePattern     = regexp.MustCompile(`(?i)^maybe:\s*`)
)

// Parse reads text as a scratchpad outline and returns its events in
// document order. Every call produces fresh ids.
func Parse(text string) []model.Event {
	return ParseWithIDs(text, uuid.NewString)
}

// ParseWithIDs is Parse with a caller supplied id generator.
func ParseWithIDs(text string, newID func() string) []model.Event {
	events := make([]model.Event, 0)
	current, activity := -1, -1

	for _, raw := range strings.Split(text, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		ln, ok := readLine(raw)
		if !ok || !ln.bullet {
			continue
		}

		switch {
		case ln.indent == 0:
			events = append(events, model.Event{
				ID:         newID(),
				Title:      ln.title,
				Time:       ln.time,
				Duration:   ln.duration,
				IsMaybe:    ln.maybe,
				Activities: make([]model.Activity, 0),
			})
			current, activity = len(events)-1, -1
		case ln.indent == 1 && current >= 0:
			ev := &events[current]
			ev.Activities = append(ev.Activities, model.Activity{
				ID:      newID(),
				Name:    ln.title,
				Details: make([]string, 0),
			})
			activity = len(ev.Activities) - 1
		case ln.indent == 2 && activity >= 0:
			act := &events[current].Activities[activity]
			act.Details = append(act.Details, ln.title)
		}
	}
	return events
}

type line struct {
	indent   int
	bullet   bool
	title    string
	time     *string
	duration *string
	maybe    bool
}

func readLine(raw string) (line, bool) {
	content := bulletDotPrefix.ReplaceAllString(raw, "")
	content = bulletDashPrefix.ReplaceAllString(content, "")
	content = strings.TrimSpace(content)
	if content == "" {
		return line{}, false
	}

	trimmed := strings.TrimSpace(raw)
	ln := line{
		indent: countLeadingTabs(raw),
		bullet: strings.HasPrefix(trimmed, "•") || strings.HasPrefix(trimmed, "-"),
		maybe:  maybePattern.MatchString(content),
	}

	if m := timePattern.FindStringSubmatch(content); m != nil {
		t := strings.TrimSpace(m[1])
		ln.time = &t
	}
	if m := durationPattern.FindStringSubmatch(content); m != nil {
		unit := m[2]
		if unit == "" {
			unit = defaultDurationUnit
		}
		d := m[1] + " " + unit
		ln.duration = &d
	}

	title := removeFirst(timePattern, content)
	title = removeFirst(durationPattern, title)
	title = removeFirst(maybePattern, title)
	ln.title = strings.TrimSpace(title)
	return ln, true
}

func removeFirst(re *regexp.Regexp, s string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + s[loc[1]:]
}

func countLeadingTabs(s string) int {
	n := 0
	for n < len(s) && s[n] == '\t' {
		n++
	}
	return n
}
