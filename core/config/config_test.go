package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every key the tests touch; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	for _, k := range []string{
		"LOG_LEVEL", "LOG_FORMAT",
		"COMPARE_FIELD", "COMPARE_MERGE_POLICY", "COMPARE_PAIR_POLICY",
		"STORAGE_EXTENSIONS", "STORAGE_OUTPUT_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

// TestLoadConfig_Defaults tests that struct tag defaults apply without any environment.
func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "doi", cfg.Compare.Field)
	assert.Equal(t, "strict", cfg.Compare.MergePolicy)
	assert.Equal(t, "casefold", cfg.Compare.PairPolicy)
	assert.Equal(t, []string{".bib", ".bib.gz", ".bib.zst"}, cfg.Storage.Extensions)
	assert.Empty(t, cfg.Storage.OutputFormat)
}

// TestLoadConfig_Environment tests that nested keys map to underscore environment variables.
func TestLoadConfig_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("COMPARE_FIELD", "isbn")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("STORAGE_OUTPUT_FORMAT", "json")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "isbn", cfg.Compare.Field)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Storage.OutputFormat)
}

// TestLoadConfig_DotEnv tests that a .env file in the given directory is applied.
func TestLoadConfig_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	content := "COMPARE_MERGE_POLICY=casefold\nSTORAGE_EXTENSIONS=.bib,.json\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "casefold", cfg.Compare.MergePolicy)
	assert.Equal(t, []string{".bib", ".json"}, cfg.Storage.Extensions)
}
