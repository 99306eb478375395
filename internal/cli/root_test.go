package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalpilot/goalpilot/internal/app"
)

func TestNewRootCommand_NoArgs_LaunchesTUI(t *testing.T) {
	originalFunc := launchTUIFunc
	defer func() {
		launchTUIFunc = originalFunc
	}()

	called := false
	launchTUIFunc = func(_ *app.Container) error {
		called = true
		return nil
	}

	root := NewRootCommand(nil, "test-version")
	root.SetArgs([]string{})
	err := root.Execute()

	assert.NoError(t, err)
	assert.True(t, called, "launchTUIFunc should be called when no arguments are provided")
}

func TestNewRootCommand_TUISubcommand(t *testing.T) {
	originalFunc := launchTUIFunc
	defer func() {
		launchTUIFunc = originalFunc
	}()

	called := false
	launchTUIFunc = func(_ *app.Container) error {
		called = true
		return nil
	}

	f := newCLIFixture(t)
	_, _, err := f.run("tui")

	assert.NoError(t, err)
	assert.True(t, called)
}

func TestNewRootCommand_WithHelp_ShowsHelp(t *testing.T) {
	originalFunc := launchTUIFunc
	defer func() {
		launchTUIFunc = originalFunc
	}()

	called := false
	launchTUIFunc = func(_ *app.Container) error {
		called = true
		return nil
	}

	f := newCLIFixture(t)
	out, _, err := f.run("--help")

	assert.NoError(t, err)
	assert.False(t, called, "launchTUIFunc should not be called with --help")
	assert.Contains(t, out, "Goals and Tasks:")
	assert.Contains(t, out, "serve")
}

func TestNewRootCommand_Version(t *testing.T) {
	f := newCLIFixture(t)

	out, _, err := f.run("--version")

	require.NoError(t, err)
	assert.Contains(t, out, "test")
}

func TestNewRootCommand_PrintsConfigWarnings(t *testing.T) {
	f := newCLIFixture(t)
	require.NoError(t, os.MkdirAll(f.dataDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(f.dataDir, "config.toml"), []byte("[bogus]\nkey = 1\n"), 0o600))

	_, stderr, err := f.run("goal", "list")

	require.NoError(t, err)
	assert.Contains(t, stderr, "Warning: unknown section: bogus")
}

func TestLaunchTUI_RequiresContainer(t *testing.T) {
	assert.Error(t, launchTUI(nil))
}
