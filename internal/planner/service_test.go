package planner

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/goodbuddi/internal/model"
	"github.com/sandeepkv93/goodbuddi/internal/storage"
)

var fixedNow = time.Date(2026, 3, 11, 9, 30, 0, 0, time.Local)

func newService(t *testing.T) *Service {
	t.Helper()
	repo, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "planner.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return NewService(repo, WithClock(func() time.Time { return fixedNow }))
}

func TestCommitParsesAndStores(t *testing.T) {
	svc := newService(t)
	ctx := t.Context()

	text := "• Standup @ 9:30am *15 min\n\t• notes\n• maybe: Gym"
	plan, err := svc.Commit(ctx, "2026-03-11", text)
	require.NoError(t, err)
	require.Len(t, plan.Events, 2)
	assert.Equal(t, "Standup", plan.Events[0].Title)
	assert.True(t, plan.Events[1].IsMaybe)

	loaded, err := svc.Load(ctx, "2026-03-11")
	require.NoError(t, err)
	assert.Equal(t, text, loaded.Scratchpad)
	assert.Equal(t, plan.Events, loaded.Events)
}

func TestCommitRejectsBadDateKey(t *testing.T) {
	svc := newService(t)
	_, err := svc.Commit(t.Context(), "11/03/2026", "• x")
	assert.Error(t, err)
}

func TestLoadMissingDayIsEmpty(t *testing.T) {
	svc := newService(t)
	plan, err := svc.Load(t.Context(), "2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01", plan.DateKey)
	assert.NotNil(t, plan.Events)
	assert.Empty(t, plan.Events)
}

func TestWeekFillsGaps(t *testing.T) {
	svc := newService(t)
	ctx := t.Context()
	_, err := svc.Commit(ctx, "2026-03-11", "• Wednesday thing")
	require.NoError(t, err)
	_, err = svc.Commit(ctx, "2026-03-16", "• Next monday")
	require.NoError(t, err)

	week, err := svc.Week(ctx, fixedNow)
	require.NoError(t, err)
	require.Len(t, week, 7)
	assert.Equal(t, "2026-03-09", week[0].DateKey)
	assert.Equal(t, "2026-03-15", week[6].DateKey)
	assert.Equal(t, []string{"Wednesday thing"}, week[2].PreviewTitles(PreviewLimit))
	for i, p := range week {
		if i == 2 {
			continue
		}
		assert.Empty(t, p.Events, p.DateKey)
	}
}

func TestCompleteActivityPersists(t *testing.T) {
	svc := newService(t)
	ctx := t.Context()
	plan, err := svc.Commit(ctx, "2026-03-11", "• Write\n\t• outline\n\t• draft")
	require.NoError(t, err)
	ev := plan.Events[0]

	got, err := svc.CompleteActivity(ctx, &plan, ev.ID, ev.Activities[0].ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)
	_, err = svc.SkipActivity(ctx, &plan, ev.ID, ev.Activities[1].ID)
	require.NoError(t, err)
	got, err = svc.CompleteActivity(ctx, &plan, ev.ID, ev.Activities[1].ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.True(t, plan.Events[0].Completed)

	loaded, err := svc.Load(ctx, "2026-03-11")
	require.NoError(t, err)
	assert.True(t, loaded.Events[0].Completed)
	assert.True(t, loaded.Events[0].Activities[1].Skipped)
}

func TestCompleteActivityUnknownIDsLeavePlanAlone(t *testing.T) {
	svc := newService(t)
	ctx := t.Context()
	plan, err := svc.Commit(ctx, "2026-03-11", "• Write\n\t• outline")
	require.NoError(t, err)

	_, err = svc.CompleteActivity(ctx, &plan, "nope", "nope")
	assert.True(t, errors.Is(err, model.ErrEventNotFound))
	_, err = svc.CompleteActivity(ctx, &plan, plan.Events[0].ID, "nope")
	assert.True(t, errors.Is(err, model.ErrActivityNotFound))
	assert.False(t, plan.Events[0].Activities[0].Completed)
}

func TestReflectCollectsCompletedNames(t *testing.T) {
	svc := newService(t)
	ctx := t.Context()
	plan, err := svc.Commit(ctx, "2026-03-11", "• Write\n\t• outline\n\t• draft")
	require.NoError(t, err)
	_, err = svc.CompleteActivity(ctx, &plan, plan.Events[0].ID, plan.Events[0].Activities[1].ID)
	require.NoError(t, err)

	r, err := svc.Reflect(ctx, plan, "shipping tomorrow")
	require.NoError(t, err)
	assert.Equal(t, []string{"draft"}, r.Completed)

	got, ok, err := svc.Reflection(ctx, "2026-03-11")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "shipping tomorrow", got.Exciting)

	_, ok, err = svc.Reflection(ctx, "2026-03-12")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSavePhrasesDropsBlanks(t *testing.T) {
	svc := newService(t)
	ctx := t.Context()
	saved, err := svc.SavePhrases(ctx, model.PhraseBook{Phrases: []string{"one", "  ", "two"}, Pinned: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, saved.Phrases)
	assert.Equal(t, 1, saved.Pinned)

	book, err := svc.Phrases(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, book)
}
