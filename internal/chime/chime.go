// Package chime delivers the audible and desktop cues of the activity timer
// and event alerts.
package chime

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

// Player plays the two timer cues.
type Player interface {
	Milestone() error
	Completion() error
}

// Notifier shows a titled message outside the terminal.
type Notifier interface {
	Notify(title, body string) error
}

type NoopPlayer struct{}

func (NoopPlayer) Milestone() error  { return nil }
func (NoopPlayer) Completion() error { return nil }

type NoopNotifier struct{}

func (NoopNotifier) Notify(string, string) error { return nil }

const (
	milestoneBells  = 2
	completionBells = 4
)

// Bell rings the terminal bell: a short double ring for a milestone and a
// longer run for completion.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Milestone() error  { return b.ring(milestoneBells) }
func (b *Bell) Completion() error { return b.ring(completionBells) }

func (b *Bell) ring(n int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := io.WriteString(b.w, strings.Repeat("\a", n))
	return err
}

// ExecNotifier shells out to notify-send on Linux and osascript on macOS.
// Other platforms are silently ignored.
type ExecNotifier struct {
	goos    string
	command func(name string, args ...string) error
}

func NewExecNotifier() ExecNotifier {
	return ExecNotifier{
		goos: runtime.GOOS,
		command: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

func (n ExecNotifier) Notify(title, body string) error {
	switch n.goos {
	case "linux":
		return n.command("notify-send", title, body)
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(body), escapeAppleScript(title))
		return n.command("osascript", "-e", script)
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Desktop turns timer cues into desktop notifications.
type Desktop struct {
	Notifier Notifier
}

func (d Desktop) Milestone() error {
	return d.Notifier.Notify("goodbuddi", "Milestone reached, keep going")
}

func (d Desktop) Completion() error {
	return d.Notifier.Notify("goodbuddi", "Time's up! Keep your momentum going!")
}

// Multi fans a cue out to every player and joins their errors.
type Multi []Player

func (m Multi) Milestone() error {
	var errs []error
	for _, p := range m {
		errs = append(errs, p.Milestone())
	}
	return errors.Join(errs...)
}

func (m Multi) Completion() error {
	var errs []error
	for _, p := range m {
		errs = append(errs, p.Completion())
	}
	return errors.Join(errs...)
}
