package cmd

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/abdul-hamid-achik/bddrun/packages/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCommand(t *testing.T) {
	t.Setenv("BDDRUN_NO_COLOR", "1")
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "history.db")
	settingsPath := filepath.Join(dir, ".bddrun.yaml")
	require.NoError(t, os.WriteFile(settingsPath, []byte("history:\n  enabled: true\n  path: "+dbPath+"\n"), 0644))

	historyConfigFlag, historyLimitFlag, historyOutputFlag = settingsPath, 20, "console"
	t.Cleanup(func() {
		historyConfigFlag, historyLimitFlag, historyOutputFlag = "", 20, "console"
	})

	cmd, out := testCommand()
	cmd.SetContext(context.Background())

	// nothing recorded yet, and listing does not create the database
	require.NoError(t, historyCommand(cmd, nil))
	assert.Equal(t, "No runs recorded\n", out.String())
	assert.NoFileExists(t, dbPath)

	store, err := history.Open(dbPath)
	require.NoError(t, err)
	for i, code := range []int{0, 2} {
		require.NoError(t, store.Record(context.Background(), history.Run{
			ID:        []string{"aaaaaaaa-1", "bbbbbbbb-2"}[i],
			StartedAt: time.Date(2026, 10, 19, 9, i, 0, 0, time.UTC),
			ExitCode:  code,
			Browser:   "chromium",
			Report:    "allure",
			BaseURL:   "https://blankfactor.com/",
		}))
	}
	require.NoError(t, store.Close())

	out.Reset()
	require.NoError(t, historyCommand(cmd, nil))
	assert.Contains(t, out.String(), "bbbbbbbb  ")
	assert.Contains(t, out.String(), "fail(2)")

	out.Reset()
	historyOutputFlag, historyLimitFlag = "json", 1
	require.NoError(t, historyCommand(cmd, nil))
	var runs []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, "bbbbbbbb-2", runs[0]["id"])

	historyOutputFlag = "yaml"
	assert.Error(t, historyCommand(cmd, nil))
}
