package locator

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sotola/codex-context/internal/testing/fixtures"
)

const (
	idAlpha = "11111111-2222-3333-4444-555555555555"
	idBeta  = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"
)

func writeSessionAt(t *testing.T, gen *fixtures.Generator, relPath string, modified time.Time, lines []string) string {
	t.Helper()
	if lines == nil {
		lines = []string{fixtures.TokenCountLine("2025-08-01T10:00:00", 100, 100, 272000)}
	}
	path, err := gen.WriteSession(relPath, lines)
	require.NoError(t, err)
	require.NoError(t, os.Chtimes(path, modified, modified))
	return path
}

func TestExtractSessionID(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected string
	}{
		{
			name:     "rollout filename",
			filename: "rollout-2025-08-01T10-00-00-" + idAlpha + ".jsonl",
			expected: idAlpha,
		},
		{
			name:     "uppercase normalized",
			filename: "session-AAAAAAAA-BBBB-CCCC-DDDD-EEEEEEEEEEEE.jsonl",
			expected: idBeta,
		},
		{
			name:     "no uuid",
			filename: "notes.jsonl",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractSessionID(tt.filename))
		})
	}
}

func TestByID(t *testing.T) {
	root := t.TempDir()
	gen := fixtures.NewGenerator(root)
	now := time.Now()

	writeSessionAt(t, gen, "2025/08/01/rollout-"+idAlpha+".jsonl", now.Add(-time.Hour), nil)
	writeSessionAt(t, gen, "2025/08/02/rollout-"+idBeta+".jsonl", now, nil)

	loc := New(root)

	t.Run("full uuid", func(t *testing.T) {
		got, err := loc.ByID(idAlpha)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, idAlpha, got[0].SessionID)
	})

	t.Run("fragment", func(t *testing.T) {
		got, err := loc.ByID("aaaaaaaa")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, idBeta, got[0].SessionID)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := loc.ByID("ffffffff")
		var notFound *NotFoundError
		assert.True(t, errors.As(err, &notFound))
	})
}

func TestLatest(t *testing.T) {
	root := t.TempDir()
	gen := fixtures.NewGenerator(root)
	now := time.Now()

	oldest := writeSessionAt(t, gen, "a/old-"+idAlpha+".jsonl", now.Add(-3*time.Hour), nil)
	middle := writeSessionAt(t, gen, "b/mid-"+idBeta+".jsonl", now.Add(-2*time.Hour), nil)
	newest := writeSessionAt(t, gen, "c/new-"+idAlpha+".jsonl", now.Add(-time.Hour), nil)

	loc := New(root)

	t.Run("trims to n, oldest first", func(t *testing.T) {
		got, err := loc.Latest(2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, middle, got[0].Path)
		assert.Equal(t, newest, got[1].Path)
	})

	t.Run("n larger than available", func(t *testing.T) {
		got, err := loc.Latest(10)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, oldest, got[0].Path)
	})

	t.Run("empty root", func(t *testing.T) {
		empty := New(t.TempDir())
		_, err := empty.Latest(1)
		var notFound *NotFoundError
		assert.True(t, errors.As(err, &notFound))
	})
}

func TestForDay(t *testing.T) {
	root := t.TempDir()
	gen := fixtures.NewGenerator(root)
	now := time.Now()

	// Two files for the same session on the day; only the newer one counts.
	writeSessionAt(t, gen, "2025/08/01/rollout-a-"+idAlpha+".jsonl", now.Add(-2*time.Hour), nil)
	keeper := writeSessionAt(t, gen, "2025/08/01/rollout-b-"+idAlpha+".jsonl", now.Add(-time.Hour), nil)
	writeSessionAt(t, gen, "2025/08/01/rollout-"+idBeta+".jsonl", now.Add(-time.Hour), nil)
	writeSessionAt(t, gen, "2025/08/02/rollout-"+idBeta+".jsonl", now, nil)

	loc := New(root)

	got, err := loc.ForDay("2025-08-01")
	require.NoError(t, err)
	require.Len(t, got, 2)

	paths := []string{got[0].Path, got[1].Path}
	assert.Contains(t, paths, keeper)

	t.Run("underscore separators accepted", func(t *testing.T) {
		got, err := loc.ForDay("2025_08_01")
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("day with no sessions", func(t *testing.T) {
		_, err := loc.ForDay("2024-01-01")
		var notFound *NotFoundError
		assert.True(t, errors.As(err, &notFound))
	})

	t.Run("malformed day", func(t *testing.T) {
		_, err := loc.ForDay("august 1st")
		assert.Error(t, err)
	})
}

func TestSince(t *testing.T) {
	root := t.TempDir()
	gen := fixtures.NewGenerator(root)
	now := time.Now()

	writeSessionAt(t, gen, "old-"+idAlpha+".jsonl", now, []string{
		fixtures.TokenCountLine("2025-08-01T09:00:00", 100, 100, 272000),
	})
	active := writeSessionAt(t, gen, "active-"+idBeta+".jsonl", now, []string{
		fixtures.TokenCountLine("2025-08-01T09:00:00", 100, 100, 272000),
		fixtures.TokenCountLine("2025-08-01T14:30:00", 200, 200, 272000),
	})

	loc := New(root)

	got, err := loc.Since("2025-08-01 12:00")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, active, got[0].Path)

	t.Run("nothing since", func(t *testing.T) {
		_, err := loc.Since("2025-08-02")
		var notFound *NotFoundError
		assert.True(t, errors.As(err, &notFound))
	})
}

func TestModifiedWithin(t *testing.T) {
	root := t.TempDir()
	gen := fixtures.NewGenerator(root)
	now := time.Now()

	writeSessionAt(t, gen, "stale-"+idAlpha+".jsonl", now.Add(-48*time.Hour), nil)
	recent := writeSessionAt(t, gen, "recent-"+idBeta+".jsonl", now.Add(-time.Hour), nil)

	loc := New(root)

	got, err := loc.ModifiedWithin(2 * time.Hour)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, recent, got[0].Path)
}

func TestListAllIgnoresOtherFiles(t *testing.T) {
	root := t.TempDir()
	gen := fixtures.NewGenerator(root)
	now := time.Now()

	writeSessionAt(t, gen, "session-"+idAlpha+".jsonl", now, nil)
	require.NoError(t, os.WriteFile(root+"/notes.txt", []byte("not a session"), 0644))

	loc := New(root)
	got, err := loc.Latest(10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
