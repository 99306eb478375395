package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalpilot/goalpilot/internal/domain"
)

func TestConfigCommand_NoSubcommand_ShowsHelp(t *testing.T) {
	f := newCLIFixture(t)

	out, _, err := f.run("config")

	require.NoError(t, err)
	assert.Contains(t, out, "Available Commands:")
	assert.Contains(t, out, "show")
	assert.Contains(t, out, "template")
	assert.Contains(t, out, "init")
}

func TestConfigShowCommand_DisplaysEffectiveConfig(t *testing.T) {
	f := newCLIFixture(t)
	t.Setenv("OPENROUTER_API_KEY", "sk-secret")

	out, _, err := f.run("config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[Loaded from]")
	assert.Contains(t, out, "(not found)")
	assert.Contains(t, out, "[Effective Config]")
	assert.Regexp(t, `address = ['"]:5000['"]`, out)
	assert.Regexp(t, `timeout = ['"]1m0s['"]`, out)
	assert.Contains(t, out, "********")
	assert.NotContains(t, out, "sk-secret")
}

func TestConfigTemplateCommand_OutputsTemplate(t *testing.T) {
	f := newCLIFixture(t)

	out, _, err := f.run("config", "template")
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, toml.Unmarshal([]byte(out), &parsed))
	assert.Contains(t, parsed, "server")
	assert.Contains(t, parsed, "llm")
}

func TestConfigInitCommand_CreatesLocalConfig(t *testing.T) {
	f := newCLIFixture(t)

	out, _, err := f.run("config", "init")

	require.NoError(t, err)
	path := filepath.Join(f.dataDir, domain.ConfigFileName)
	assert.Contains(t, out, "Created config file: "+path)
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)

	_, _, err = f.run("config", "init")
	assert.ErrorIs(t, err, domain.ErrConfigExists)
}

func TestConfigInitCommand_Global(t *testing.T) {
	f := newCLIFixture(t)

	out, _, err := f.run("config", "init", "--global")

	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join("goalpilot", domain.ConfigFileName))
}

func TestInitCommand(t *testing.T) {
	f := newCLIFixture(t)

	out, _, err := f.run("init")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized goalpilot in "+f.dataDir)

	out, _, err = f.run("init")
	require.NoError(t, err)
	assert.Contains(t, out, "already initialized")
}
