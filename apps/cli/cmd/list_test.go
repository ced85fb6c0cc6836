package cmd

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCommand(t *testing.T) {
	t.Setenv("BDDRUN_NO_COLOR", "1")
	t.Cleanup(func() {
		listTagFlag = ""
		listOutputFlag = "console"
	})

	featureDir := filepath.Join("testdata", "features")

	t.Run("console", func(t *testing.T) {
		listTagFlag, listOutputFlag = "", "console"
		cmd, out := testCommand()
		require.NoError(t, listCommand(cmd, []string{featureDir}))
		assert.Contains(t, out.String(), "Run configuration")
		assert.Contains(t, out.String(), "@cli")
	})

	t.Run("json filtered by tag", func(t *testing.T) {
		listTagFlag, listOutputFlag = "help", "json"
		cmd, out := testCommand()
		require.NoError(t, listCommand(cmd, []string{featureDir}))

		var got []map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Len(t, got[0]["scenarios"], 1)
	})

	t.Run("unknown format", func(t *testing.T) {
		listTagFlag, listOutputFlag = "", "xml"
		cmd, _ := testCommand()
		assert.Error(t, listCommand(cmd, []string{featureDir}))
	})

	t.Run("missing path", func(t *testing.T) {
		listTagFlag, listOutputFlag = "", "console"
		cmd, _ := testCommand()
		assert.Error(t, listCommand(cmd, []string{filepath.Join("testdata", "nope")}))
	})
}
