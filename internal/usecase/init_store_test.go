package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalpilot/goalpilot/internal/testutil"
	"github.com/goalpilot/goalpilot/internal/usecase"
)

func TestInitStore_Execute_Success(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), ".goalpilot")
	mock := &testutil.MockStoreInitializer{}

	out, err := usecase.NewInitStore(mock).Execute(context.Background(), usecase.InitStoreInput{DataDir: dataDir})

	require.NoError(t, err)
	assert.Equal(t, dataDir, out.DataDir)
	assert.False(t, out.AlreadyInitialized)
	assert.True(t, mock.Initialized, "Initialize should be called")

	info, err := os.Stat(filepath.Join(dataDir, "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestInitStore_Execute_Rerun(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), ".goalpilot")
	require.NoError(t, os.MkdirAll(dataDir, 0o750))
	mock := &testutil.MockStoreInitializer{}

	out, err := usecase.NewInitStore(mock).Execute(context.Background(), usecase.InitStoreInput{DataDir: dataDir})

	require.NoError(t, err)
	assert.True(t, out.AlreadyInitialized)
	assert.True(t, mock.Initialized)
}

func TestInitStore_Execute_InitializerError(t *testing.T) {
	mock := &testutil.MockStoreInitializer{InitErr: assert.AnError}

	_, err := usecase.NewInitStore(mock).Execute(context.Background(), usecase.InitStoreInput{DataDir: t.TempDir()})

	assert.ErrorIs(t, err, assert.AnError)
}
