package downloader

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iborrareddy/js-url-checker/src/entity"
	"github.com/Iborrareddy/js-url-checker/src/enum"
)

func testLogger() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newDownloader(t *testing.T, maxBytes int64) (Downloader, string) {
	t.Helper()
	dir := t.TempDir()
	return NewSimpleDownloader(Options{Dir: dir, MaxBytes: maxBytes}, testLogger()), dir
}

func TestSimpleDownloader_Download(t *testing.T) {
	task := entity.URLTask{Index: 0, Raw: "https://cdn.example/assets/app.js"}
	live := entity.Verdict{Kind: enum.VerdictLive}

	t.Run("writes a live verdict to disk", func(t *testing.T) {
		d, dir := newDownloader(t, 1<<20)
		out := d.Download(task, live, []byte("var a=1;"))

		require.True(t, out.Written())
		assert.Equal(t, filepath.Join(dir, "app.js"), out.Path)
		data, err := os.ReadFile(out.Path)
		require.NoError(t, err)
		assert.Equal(t, "var a=1;", string(data))
	})

	t.Run("refuses anything but live", func(t *testing.T) {
		d, dir := newDownloader(t, 1<<20)
		for _, kind := range []enum.VerdictKind{
			enum.VerdictDead, enum.VerdictBlocked, enum.VerdictAmbiguous,
			enum.VerdictRedirected, enum.VerdictCancelled,
		} {
			out := d.Download(task, entity.Verdict{Kind: kind}, []byte("var a=1;"))
			assert.Equal(t, enum.RefusalNotVerifiedJS, out.Refusal, "kind %s", kind)
			assert.False(t, out.Written())
		}
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries, "nothing may reach disk")
	})

	t.Run("redirected verdicts are written only when opted in", func(t *testing.T) {
		dir := t.TempDir()
		d := NewSimpleDownloader(Options{Dir: dir, MaxBytes: 1 << 20, IncludeRedirected: true}, testLogger())
		out := d.Download(task, entity.Verdict{Kind: enum.VerdictRedirected}, []byte("var a=1;"))
		assert.True(t, out.Written())
	})

	t.Run("refuses an html body even on a live verdict", func(t *testing.T) {
		d, _ := newDownloader(t, 1<<20)
		out := d.Download(task, live, []byte("<!DOCTYPE html><html></html>"))
		assert.Equal(t, enum.RefusalNotVerifiedJS, out.Refusal)
	})

	t.Run("refuses oversized bodies", func(t *testing.T) {
		d, _ := newDownloader(t, 4)
		out := d.Download(task, live, []byte("way too large"))
		assert.Equal(t, enum.RefusalTooLarge, out.Refusal)
	})

	t.Run("colliding filenames get a hash suffix", func(t *testing.T) {
		d, dir := newDownloader(t, 1<<20)
		other := entity.URLTask{Index: 1, Raw: "https://mirror.example/assets/app.js"}

		first := d.Download(task, live, []byte("var a=1;"))
		second := d.Download(other, live, []byte("var b=2;"))

		require.True(t, first.Written())
		require.True(t, second.Written())
		assert.NotEqual(t, first.Path, second.Path)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("write failure is a reported outcome, not a panic", func(t *testing.T) {
		// the target dir sits below a regular file, so MkdirAll must fail
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

		d := NewSimpleDownloader(Options{Dir: filepath.Join(blocker, "sub"), MaxBytes: 1 << 20}, testLogger())
		out := d.Download(task, live, []byte("var a=1;"))
		assert.Equal(t, enum.RefusalWriteError, out.Refusal)
	})
}
