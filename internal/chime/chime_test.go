package chime

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestBellRingCounts(t *testing.T) {
	var buf bytes.Buffer
	bell := NewBell(&buf)
	if err := bell.Milestone(); err != nil {
		t.Fatalf("milestone: %v", err)
	}
	if buf.String() != "\a\a" {
		t.Fatalf("unexpected milestone output %q", buf.String())
	}
	buf.Reset()
	if err := bell.Completion(); err != nil {
		t.Fatalf("completion: %v", err)
	}
	if strings.Count(buf.String(), "\a") != 4 {
		t.Fatalf("unexpected completion output %q", buf.String())
	}
}

type recorded struct {
	name string
	args []string
}

func fakeNotifier(goos string, calls *[]recorded) ExecNotifier {
	return ExecNotifier{
		goos: goos,
		command: func(name string, args ...string) error {
			*calls = append(*calls, recorded{name: name, args: args})
			return nil
		},
	}
}

func TestExecNotifierPerPlatform(t *testing.T) {
	var calls []recorded
	if err := fakeNotifier("linux", &calls).Notify("Starting", "Deep work"); err != nil {
		t.Fatalf("linux notify: %v", err)
	}
	if len(calls) != 1 || calls[0].name != "notify-send" || calls[0].args[0] != "Starting" {
		t.Fatalf("unexpected linux calls: %+v", calls)
	}

	calls = nil
	if err := fakeNotifier("darwin", &calls).Notify(`Say "hi"`, "body"); err != nil {
		t.Fatalf("darwin notify: %v", err)
	}
	if len(calls) != 1 || calls[0].name != "osascript" || !strings.Contains(calls[0].args[1], `Say \"hi\"`) {
		t.Fatalf("unexpected darwin calls: %+v", calls)
	}

	calls = nil
	if err := fakeNotifier("plan9", &calls).Notify("x", "y"); err != nil || len(calls) != 0 {
		t.Fatalf("expected silent no-op, got %v %+v", err, calls)
	}
}

type failingPlayer struct{ err error }

func (f failingPlayer) Milestone() error  { return f.err }
func (f failingPlayer) Completion() error { return f.err }

func TestMultiJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	var buf bytes.Buffer
	m := Multi{NewBell(&buf), failingPlayer{err: boom}, NoopPlayer{}}
	err := m.Completion()
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined boom error, got %v", err)
	}
	if buf.Len() != 4 {
		t.Fatalf("bell should still ring, got %q", buf.String())
	}
	if err := (Multi{NoopPlayer{}}).Milestone(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestDesktopPlayerUsesNotifier(t *testing.T) {
	var calls []recorded
	d := Desktop{Notifier: fakeNotifier("linux", &calls)}
	if err := d.Completion(); err != nil {
		t.Fatalf("completion: %v", err)
	}
	if len(calls) != 1 || !strings.Contains(calls[0].args[1], "momentum") {
		t.Fatalf("unexpected calls: %+v", calls)
	}
}
