package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{name: "plain name kept", in: "sunset", expected: "sunset"},
		{name: "spaces replaced", in: "my video", expected: "my_video"},
		{name: "path separators replaced", in: "../etc/passwd", expected: "etc_passwd"},
		{name: "leading dots trimmed", in: "..hidden", expected: "hidden"},
		{name: "empty falls back", in: "", expected: "file"},
		{name: "only junk falls back", in: "..__..", expected: "file"},
		{name: "unicode replaced", in: "café☕", expected: "caf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, safeFilename(tt.in))
		})
	}
}

func TestMakeFilename(t *testing.T) {
	name := makeFilename("mp4", "my video")

	assert.True(t, strings.HasSuffix(name, "_my_video.mp4"), "got %q", name)
	// 12 hex chars of uniqueness before the hint.
	parts := strings.SplitN(name, "_", 2)
	assert.Len(t, parts[0], 12)

	t.Run("dotted extension normalized", func(t *testing.T) {
		assert.True(t, strings.HasSuffix(makeFilename(".wav", "x"), ".wav"))
	})

	t.Run("empty extension defaults to bin", func(t *testing.T) {
		assert.True(t, strings.HasSuffix(makeFilename("", "x"), ".bin"))
	})

	t.Run("names are unique", func(t *testing.T) {
		assert.NotEqual(t, makeFilename("png", "a"), makeFilename("png", "a"))
	})
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "http://localhost:8000/")
	require.NoError(t, err)

	payload := []byte{0x00, 0x01, 0xFF, 0xFE, 0x42}
	result, err := store.Store(context.Background(), payload, "mp4", "clip", "video/mp4")
	require.NoError(t, err)

	assert.Empty(t, result.GSURI)
	require.True(t, strings.HasPrefix(result.URL, "http://localhost:8000/static/"), "got %q", result.URL)

	// Dereference the locator the way the static route would and compare bytes.
	name := strings.TrimPrefix(result.URL, "http://localhost:8000/static/")
	srv := httptest.NewServer(http.StripPrefix("/static/", http.FileServer(http.Dir(dir))))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/static/" + name)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	got, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestFileStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "static", "nested")

	_, err := NewFileStore(dir, "http://localhost:8000")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileStoreRequiresDirectory(t *testing.T) {
	_, err := NewFileStore("  ", "http://localhost:8000")
	assert.Error(t, err)
}

func TestFileStoreRespectsCancelledContext(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "http://localhost:8000")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Store(ctx, []byte("data"), "txt", "x", "text/plain")
	assert.ErrorIs(t, err, context.Canceled)
}
