package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/callebjorkell/rgbled/internal/led"
	"github.com/callebjorkell/rgbled/internal/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, content string) (string, chan *Config) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	w := NewWatcher(path, WithDebounce(20*time.Millisecond))
	received := make(chan *Config, 10)
	w.OnReload(func(c *Config) {
		received <- c
	})
	require.NoError(t, w.Start())
	t.Cleanup(func() {
		assert.NoError(t, w.Close())
	})
	return path, received
}

func TestWatcherReload(t *testing.T) {
	path, received := startWatcher(t, "backend: mock\npattern: {type: full, colour: red}\n")

	require.NoError(t, os.WriteFile(path, []byte("backend: mock\npattern: {type: full, colour: blue}\n"), 0o644))

	select {
	case c := <-received:
		e, err := c.Pattern.Effect()
		require.NoError(t, err)
		assert.Equal(t, pattern.Full(led.Blue), e)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for config reload")
	}
}

func TestWatcherReplacedFile(t *testing.T) {
	path, received := startWatcher(t, "backend: mock\n")

	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte("backend: mock\npattern: {type: full, colour: green}\n"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case c := <-received:
		assert.Equal(t, "green", c.Pattern.Colour)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for config reload")
	}
}

func TestWatcherSkipsInvalidConfig(t *testing.T) {
	path, received := startWatcher(t, "backend: mock\n")

	require.NoError(t, os.WriteFile(path, []byte("backend: mock\npattern: {type: strobe}\n"), 0o644))
	select {
	case c := <-received:
		t.Fatalf("invalid config was handed out: %+v", c)
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(path, []byte("backend: mock\npattern: {type: full, colour: white}\n"), 0o644))
	select {
	case c := <-received:
		assert.Equal(t, "white", c.Pattern.Colour)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for config reload")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	path, received := startWatcher(t, "backend: mock\n")

	other := filepath.Join(filepath.Dir(path), "other.yaml")
	require.NoError(t, os.WriteFile(other, []byte("backend: mock\n"), 0o644))

	select {
	case c := <-received:
		t.Fatalf("reloaded on an unrelated file: %+v", c)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherCloseWithoutStart(t *testing.T) {
	w := NewWatcher("config.yaml")
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
