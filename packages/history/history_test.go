package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/abdul-hamid-achik/bddrun/packages/core/config"
	"github.com/abdul-hamid-achik/bddrun/packages/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "reports", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestFromSummary(t *testing.T) {
	cfg := config.DefaultRunConfig()
	cfg.Browser = config.BrowserWebkit
	cfg.Markers = "smoke"
	started := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

	r := FromSummary(&report.Summary{
		RunID:     "run-1",
		StartedAt: started,
		Duration:  90 * time.Second,
		ExitCode:  1,
		Config:    cfg,
		Stats:     &report.Stats{Total: 4, Passed: 2, Failed: 1, Broken: 1},
	})

	assert.Equal(t, "run-1", r.ID)
	assert.Equal(t, "webkit", r.Browser)
	assert.Equal(t, "allure", r.Report)
	assert.Equal(t, "smoke", r.Markers)
	assert.Equal(t, 4, r.Total)
	assert.Equal(t, 1, r.Broken)
	assert.False(t, r.Succeeded())
}

func TestStore_RecordAndRecent(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	last, err := s.Last(ctx)
	require.NoError(t, err)
	assert.Nil(t, last)

	for i, code := range []int{0, 1, 0} {
		require.NoError(t, s.Record(ctx, Run{
			ID:        string(rune('a' + i)),
			StartedAt: base.Add(time.Duration(i) * time.Minute),
			Duration:  1500 * time.Millisecond,
			ExitCode:  code,
			Browser:   "chromium",
			Report:    "allure",
			BaseURL:   config.DefaultBaseURL,
			Total:     3,
			Passed:    3 - code,
			Failed:    code,
		}))
	}

	runs, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{runs[0].ID, runs[1].ID, runs[2].ID})
	assert.Equal(t, base.Add(2*time.Minute), runs[0].StartedAt)
	assert.Equal(t, 1500*time.Millisecond, runs[0].Duration)
	assert.Equal(t, 1, runs[1].ExitCode)
	assert.Equal(t, 1, runs[1].Failed)

	last, err = s.Last(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "c", last.ID)
	assert.True(t, last.Succeeded())

	limited, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestStore_DuplicateID(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	r := Run{ID: "dup", StartedAt: time.Now(), Browser: "chromium", Report: "none", BaseURL: config.DefaultBaseURL}

	require.NoError(t, s.Record(ctx, r))
	assert.Error(t, s.Record(ctx, r))
}

func TestStore_InvalidLimit(t *testing.T) {
	s := openStore(t)
	_, err := s.Recent(context.Background(), 0)
	assert.Error(t, err)
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Record(ctx, Run{ID: "persisted", StartedAt: time.Now(), Browser: "firefox", Report: "html", BaseURL: config.DefaultBaseURL}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	last, err := s.Last(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "persisted", last.ID)
}
