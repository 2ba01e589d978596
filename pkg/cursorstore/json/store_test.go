package json

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCursorStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cursors.json")

	store, err := NewCursorStore(path, time.Hour)
	require.NoError(t, err)

	require.NoError(t, store.SetCursor("DP-3", "1", 3))
	require.NoError(t, store.SetCursor("eDP-1", "2", 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, store.SaveLooper(ctx), context.Canceled)

	reopened, err := NewCursorStore(path, time.Hour)
	require.NoError(t, err)
	defer reopened.Close()

	cursor, found, err := reopened.GetCursor("DP-3", "1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, cursor)

	_, found, err = reopened.GetCursor("DP-3", "2")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCursorStoreSavesPeriodically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cursors.json")

	store, err := NewCursorStore(path, 10*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, store.SetCursor("DP-3", "4", 2))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.SaveLooper(ctx) }()

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(path)
		return err == nil && len(data) > 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"DP-3":{"4":2}}`, string(data))
}

func TestCursorStoreEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cursors.json")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	store, err := NewCursorStore(path, 0)
	require.NoError(t, err)
	defer store.Close()

	_, found, err := store.GetCursor("DP-3", "1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCursorStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cursors.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewCursorStore(path, 0)
	assert.Error(t, err)
}
