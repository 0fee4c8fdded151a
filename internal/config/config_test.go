package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Database.Path = "/tmp/ledger.db"
	cfg.Detect.MinConfidence = 0.7
	cfg.Suggest.LookbackMonths = 6

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/ledger.db", got.Database.Path)
	assert.Equal(t, "import", got.Import.Dir)
	assert.InDelta(t, 0.7, got.Detect.MinConfidence, 0.001)
	assert.True(t, got.Ingest.DropZeroAmounts)
	assert.Equal(t, 6, got.Suggest.LookbackMonths)
	assert.InDelta(t, 10, got.Suggest.FloorAmount, 0.001)
	assert.InDelta(t, 5, got.Suggest.RoundTo, 0.001)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "moneta.db", cfg.Database.Path)
	assert.Equal(t, "import", cfg.Import.Dir)
	assert.InDelta(t, 0.5, cfg.Detect.MinConfidence, 0.001)
	assert.True(t, cfg.Ingest.DropZeroAmounts)
	assert.Equal(t, 3, cfg.Suggest.LookbackMonths)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("database: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.Contains(text, "database:"))
	assert.True(t, strings.Contains(text, "min_confidence: 0.5"))
	assert.True(t, strings.Contains(text, "lookback_months: 3"))
}
