package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	settingsPath := filepath.Join(dir, ".bddrun.yaml")
	require.NoError(t, os.WriteFile(settingsPath, []byte("defaults:\n  browser: firefox\n"), 0644))
	t.Cleanup(func() { validateConfigFlag = "" })

	t.Run("valid", func(t *testing.T) {
		validateConfigFlag = settingsPath
		cmd, out := testCommand()
		require.NoError(t, validateCommand(cmd, []string{filepath.Join("testdata", "features")}))
		assert.Contains(t, out.String(), "Valid: "+settingsPath)
		assert.Contains(t, out.String(), "Valid: "+filepath.Join("testdata", "features", "run.feature"))
	})

	t.Run("invalid settings", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("defaults:\n  browser: netscape\n"), 0644))
		validateConfigFlag = bad

		cmd, _ := testCommand()
		err := validateCommand(cmd, []string{filepath.Join("testdata", "features")})
		assert.Equal(t, ExitConfigError, exitCode(err))
	})

	t.Run("base url the command line would reject", func(t *testing.T) {
		bad := filepath.Join(dir, "bad-url.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("defaults:\n  baseUrl: \"http://exa mple.com\"\n"), 0644))
		validateConfigFlag = bad

		cmd, out := testCommand()
		err := validateCommand(cmd, []string{filepath.Join("testdata", "features")})
		assert.Equal(t, ExitConfigError, exitCode(err))
		assert.NotContains(t, out.String(), "Valid: "+bad)
	})

	t.Run("broken feature", func(t *testing.T) {
		broken := filepath.Join(dir, "features", "broken.feature")
		require.NoError(t, os.MkdirAll(filepath.Dir(broken), 0755))
		require.NoError(t, os.WriteFile(broken, []byte("Feature: broken\n  Scenario: x\n    Given ok\n  Oops\n"), 0644))
		validateConfigFlag = settingsPath

		cmd, out := testCommand()
		err := validateCommand(cmd, []string{filepath.Dir(broken)})
		require.Error(t, err)
		assert.Contains(t, out.String(), "Error in "+broken)
	})

	t.Run("no features", func(t *testing.T) {
		validateConfigFlag = settingsPath
		cmd, _ := testCommand()
		assert.Error(t, validateCommand(cmd, []string{t.TempDir()}))
	})
}
