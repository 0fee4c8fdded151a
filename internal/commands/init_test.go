package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneta-dev/moneta/internal/config"
	"github.com/moneta-dev/moneta/internal/store"
)

func TestRunInit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(context.Background(), dir))

	// Layout: config, import directories, database.
	_, err := os.Stat(filepath.Join(dir, config.FileName))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "import", "processed"))
	assert.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "moneta.db", cfg.Database.Path)

	// The ledger exists and is seeded with categories.
	st, err := store.Open(filepath.Join(dir, cfg.Database.Path))
	require.NoError(t, err)
	defer st.Close()
	cats, err := st.ListCategories(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, cats)
}

func TestRunInit_RefusesExistingConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(context.Background(), dir))

	err := runInit(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	root := NewRootCommand()

	want := []string{"init", "account", "import", "imports", "profiles", "detect",
		"transactions", "budget", "suggest", "rules", "snapshot"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.NotEqual(t, root, cmd, name)
	}
}
