package daily

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadSchedule(t *testing.T) {
	_, err := New("not a schedule", nil, func(time.Time) {})
	assert.Error(t, err)
}

func TestNextIsMidnight(t *testing.T) {
	r, err := New("0 0 * * *", nil, func(time.Time) {})
	require.NoError(t, err)
	from := time.Date(2026, 3, 11, 21, 15, 0, 0, time.Local)
	assert.Equal(t, time.Date(2026, 3, 12, 0, 0, 0, 0, time.Local), r.Next(from))
}

func TestRunFiresAndStops(t *testing.T) {
	fired := make(chan time.Time, 4)
	r, err := New("@every 1s", nil, func(at time.Time) { fired <- at })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("rollover did not fire")
	}
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
