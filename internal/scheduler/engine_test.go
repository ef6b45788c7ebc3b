package scheduler

import (
	"testing"
	"time"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Alert{ID: "later", TriggerAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Alert{ID: "sooner", TriggerAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitAlert(t, engine.C(), time.Second)
	second := waitAlert(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
}

func TestReplaceSwapsAlertsOfOneDate(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Alert{ID: "old", DateKey: "2026-10-15", TriggerAt: now.Add(40 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule old: %v", err)
	}
	if err := engine.Schedule(Alert{ID: "other-day", DateKey: "2026-10-16", TriggerAt: now.Add(time.Hour)}); err != nil {
		t.Fatalf("schedule other: %v", err)
	}
	if err := engine.Replace("2026-10-15", []Alert{{ID: "new", DateKey: "2026-10-15", TriggerAt: now.Add(20 * time.Millisecond)}}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if engine.Pending() != 2 {
		t.Fatalf("expected 2 pending alerts, got %d", engine.Pending())
	}

	got := waitAlert(t, engine.C(), time.Second)
	if got.ID != "new" {
		t.Fatalf("expected replacement alert, got %s", got.ID)
	}
	select {
	case a := <-engine.C():
		t.Fatalf("replaced alert still fired: %s", a.ID)
	case <-time.After(80 * time.Millisecond):
	}
}

func TestEngineRejectsAfterStop(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()
	if err := engine.Schedule(Alert{ID: "late", TriggerAt: time.Now()}); err != ErrEngineStopped {
		t.Fatalf("expected ErrEngineStopped, got %v", err)
	}
	if _, ok := <-engine.C(); ok {
		t.Fatal("expected closed channel after stop")
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(Alert{
			ID:        "evt",
			TriggerAt: now,
		}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesTriggerTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Alert{ID: "bad"}); err != ErrInvalidTriggerTime {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
}

func waitAlert(t *testing.T, ch <-chan Alert, timeout time.Duration) Alert {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for alert")
		return Alert{}
	}
}
