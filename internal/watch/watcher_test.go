package watch

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumeaudit/internal/errors"
)

func testLogger() *errors.Logger {
	return errors.NewLoggerWithWriter(&bytes.Buffer{}, slog.LevelError)
}

func startWatcher(t *testing.T, files []string) <-chan []string {
	t.Helper()
	changes := make(chan []string, 8)
	w, err := New(files, 50*time.Millisecond, func(changed []string) { changes <- changed }, testLogger())
	require.NoError(t, err)
	require.NoError(t, w.Start())
	t.Cleanup(func() { _ = w.Stop() })
	return changes
}

func TestWatcher_ReportsChange(t *testing.T) {
	dir := t.TempDir()
	cv := filepath.Join(dir, "cv.json")
	require.NoError(t, os.WriteFile(cv, []byte(`{"name":"Ada"}`), 0600))

	changes := startWatcher(t, []string{cv})

	require.NoError(t, os.WriteFile(cv, []byte(`{"name":"Ada Lovelace"}`), 0600))

	select {
	case changed := <-changes:
		assert.Equal(t, []string{cv}, changed)
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	cv := filepath.Join(dir, "cv.json")
	require.NoError(t, os.WriteFile(cv, []byte(`{}`), 0600))

	changes := startWatcher(t, []string{cv})

	for i := range 5 {
		require.NoError(t, os.WriteFile(cv, bytes.Repeat([]byte(" "), i+3), 0600))
	}

	select {
	case <-changes:
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}
	select {
	case extra := <-changes:
		t.Fatalf("burst reported more than once: %v", extra)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	cv := filepath.Join(dir, "cv.json")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(cv, []byte(`{}`), 0600))

	changes := startWatcher(t, []string{cv})

	require.NoError(t, os.WriteFile(other, []byte("scratch"), 0600))

	select {
	case changed := <-changes:
		t.Fatalf("unexpected change: %v", changed)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_AtomicRename(t *testing.T) {
	dir := t.TempDir()
	cv := filepath.Join(dir, "cv.json")
	require.NoError(t, os.WriteFile(cv, []byte(`{}`), 0600))

	changes := startWatcher(t, []string{cv})

	tmp := filepath.Join(dir, "cv.json.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(`{"name":"Renamed"}`), 0600))
	require.NoError(t, os.Rename(tmp, cv))

	select {
	case changed := <-changes:
		assert.Equal(t, []string{cv}, changed)
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, 0, func([]string) {}, testLogger())
	assert.EqualError(t, err, "no files to watch")

	_, err = New([]string{"cv.json"}, 0, nil, testLogger())
	assert.EqualError(t, err, "change callback is required")

	w, err := New([]string{"cv.json", "./cv.json"}, 0, func([]string) {}, testLogger())
	require.NoError(t, err)
	assert.Len(t, w.Files(), 1)
	assert.Equal(t, DefaultDebounceDelay, w.debounceDelay)
}

func TestWatcher_StartStop(t *testing.T) {
	cv := filepath.Join(t.TempDir(), "cv.json")
	w, err := New([]string{cv}, 0, func([]string) {}, testLogger())
	require.NoError(t, err)

	require.NoError(t, w.Start())
	assert.True(t, w.IsRunning())
	assert.Error(t, w.Start())

	require.NoError(t, w.Stop())
	assert.False(t, w.IsRunning())
	assert.NoError(t, w.Stop())
}
