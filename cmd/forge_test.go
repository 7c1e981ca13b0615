package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const libraryA = `@article{smith2020,
  doi = {10.1000/XYZ},
  title = {Neural Networks Survey}
}

@article{doe2021,
  doi = {10.1000/abc},
  title = {Neural Nets}
}
`

const libraryB = `@inproceedings{smith2020b,
  doi = {10.1000-xyz},
  title = {Neural Networks Survey, again}
}

@misc{nodoi,
  title = {No identifier}
}
`

func writeLibraries(t *testing.T) (string, string, string) {
	t.Helper()
	dir := t.TempDir()
	a := filepath.Join(dir, "a.bib")
	b := filepath.Join(dir, "b.bib")
	require.NoError(t, os.WriteFile(a, []byte(libraryA), 0o644))
	require.NoError(t, os.WriteFile(b, []byte(libraryB), 0o644))
	return dir, a, b
}

// TestMergeCommand tests a merge from files given as arguments.
func TestMergeCommand(t *testing.T) {
	t.Setenv("COMPARE_FIELD", "doi")
	dir, a, b := writeLibraries(t)
	out := filepath.Join(dir, "merged.bib")

	opts = options{}
	RootCmd.SetArgs([]string{"merge", a, b, "-o", out, "--exclude", "xyz"})
	require.NoError(t, RootCmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "@article{doe2021,")
	assert.NotContains(t, string(data), "smith2020")
}

// TestDiffCommandRejectsThreeInputs tests that no output is produced on a configuration error.
func TestDiffCommandRejectsThreeInputs(t *testing.T) {
	t.Setenv("COMPARE_FIELD", "doi")
	dir, a, b := writeLibraries(t)
	out := filepath.Join(dir, "diff.bib")

	opts = options{}
	RootCmd.SetArgs([]string{"diff", a, b, a, "-o", out})
	require.Error(t, RootCmd.Execute())

	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestFieldsOrDefault(t *testing.T) {
	assert.Equal(t, []string{"isbn", "title"}, fieldsOrDefault([]string{"isbn", "title"}, "doi"))
	assert.Equal(t, []string{"doi"}, fieldsOrDefault(nil, "doi"))
	assert.Nil(t, fieldsOrDefault(nil, ""))
}
