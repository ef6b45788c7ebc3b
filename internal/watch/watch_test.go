package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	texts []string
}

func (r *recorder) record(_ context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
	return nil
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.texts...)
}

func start(t *testing.T, path string, rec *recorder) {
	t.Helper()
	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- File(ctx, path, nil, rec.record) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	time.Sleep(100 * time.Millisecond)
}

func TestImportsExistingFileOnStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "today.txt")
	require.NoError(t, os.WriteFile(path, []byte("• Existing"), 0o644))

	rec := &recorder{}
	start(t, path, rec)

	assert.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, []string{"• Existing"}, rec.snapshot())
}

func TestImportsWritesAndIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "today.txt")

	rec := &recorder{}
	start(t, path, rec)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("nope"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("• Fresh"), 0o644))

	assert.Eventually(t, func() bool {
		got := rec.snapshot()
		return len(got) > 0 && got[len(got)-1] == "• Fresh"
	}, 3*time.Second, 20*time.Millisecond)
	assert.NotContains(t, rec.snapshot(), "nope")
}

func TestUnchangedContentIsNotReimported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "today.txt")
	require.NoError(t, os.WriteFile(path, []byte("• Same"), 0o644))

	rec := &recorder{}
	start(t, path, rec)
	require.NoError(t, os.WriteFile(path, []byte("• Same"), 0o644))

	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, []string{"• Same"}, rec.snapshot())
}
