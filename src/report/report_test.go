package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iborrareddy/js-url-checker/src/entity"
	"github.com/Iborrareddy/js-url-checker/src/enum"
)

func sampleResults() []entity.CheckedResult {
	return []entity.CheckedResult{
		{
			Task:    entity.URLTask{Index: 0, Raw: "https://a.example/app.js"},
			Verdict: entity.Verdict{Kind: enum.VerdictLive, StatusCode: 200, Attempts: 1},
			Download: &entity.DownloadOutcome{
				Path: "/tmp/out/app.js",
				Size: 42,
			},
		},
		{
			Task:    entity.URLTask{Index: 1, Raw: "https://b.example/missing.js"},
			Verdict: entity.Verdict{Kind: enum.VerdictDead, StatusCode: 404, Attempts: 1},
		},
		{
			Task:    entity.URLTask{Index: 2, Raw: "https://c.example/moved.js"},
			Verdict: entity.Verdict{Kind: enum.VerdictRedirected, StatusCode: 200, FinalURL: "https://c.example/v2/moved.js"},
		},
	}
}

func TestWriteLists(t *testing.T) {
	dir := t.TempDir()
	active := filepath.Join(dir, "active.txt")
	inactive := filepath.Join(dir, "inactive.txt")

	require.NoError(t, WriteLists(active, inactive, sampleResults()))

	a, err := os.ReadFile(active)
	require.NoError(t, err)
	assert.Equal(t, "https://a.example/app.js\nhttps://c.example/moved.js\n", string(a))

	i, err := os.ReadFile(inactive)
	require.NoError(t, err)
	assert.Equal(t, "https://b.example/missing.js\n", string(i))
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, WriteCSV(path, sampleResults()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 4, "header plus one row per input URL")
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "https://a.example/app.js", rows[1][0])
	assert.Equal(t, "live", rows[1][1])
	assert.Equal(t, "/tmp/out/app.js", rows[1][9])
	assert.Equal(t, "dead", rows[2][1])
	assert.Equal(t, "404", rows[2][2])
	assert.Equal(t, "https://c.example/v2/moved.js", rows[3][4])
}
