package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `
name: reference_add
description: "x + y on the reference operands"
definitions:
  x: [3, 3.1]
  y: 7
program: |
  a = x + y
expect:
  a: {min: 10, max: 10.1}
`

const failingScenario = `
name: wrong_sum
description: "Expects the wrong bounds"
program: |
  a = [1, 2] + 1
expect:
  a: {min: 0, max: 3}
`

const passingGolden = `scenario: reference_add
def x = [3, 3.1]
def y = [7, 7]
1 | a = x + y | a = [10, 10.1]
`

func TestCheckCommand_MissingArgs(t *testing.T) {
	_, err := execute(NewCheckCommand(&RootOptions{Format: "text"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestCheckCommand_NonExistentPath(t *testing.T) {
	_, err := execute(NewCheckCommand(&RootOptions{Format: "text"}), "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenario path not found")
}

func TestCheckCommand_EmptyDir(t *testing.T) {
	out, err := execute(NewCheckCommand(&RootOptions{Format: "text"}), t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")
}

func TestCheckCommand_EmptyDirJSON(t *testing.T) {
	out, err := execute(NewCheckCommand(&RootOptions{Format: "json"}), t.TempDir())
	require.NoError(t, err)

	var result CheckResult
	resp := decodeData(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Empty(t, result.Scenarios)
	assert.Zero(t, result.Total)
}

func TestCheckCommand_Passing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "reference_add.yaml", passingScenario)

	out, err := execute(NewCheckCommand(&RootOptions{Format: "text"}), dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ reference_add\n")
	assert.Contains(t, out, "Summary: 1 passed, 0 failed, 1 total")
	assert.Contains(t, out, "All scenarios passed")
}

func TestCheckCommand_Failing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "reference_add.yaml", passingScenario)
	writeFile(t, dir, "wrong_sum.yaml", failingScenario)

	out, err := execute(NewCheckCommand(&RootOptions{Format: "text"}), dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ wrong_sum\n")
	assert.Contains(t, out, "a: min = 2, expected 0")
	assert.Contains(t, out, "Summary: 1 passed, 1 failed, 2 total")
}

func TestCheckCommand_FailingJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "wrong_sum.yaml", failingScenario)

	out, err := execute(NewCheckCommand(&RootOptions{Format: "json"}), path)
	require.Error(t, err)

	var result CheckResult
	resp := decodeData(t, out, &result)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeScenario, resp.Error.Code)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Scenarios, 1)
	assert.Equal(t, "wrong_sum", result.Scenarios[0].Name)
	assert.NotEmpty(t, result.Scenarios[0].Errors)
}

func TestCheckCommand_Filter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "reference_add.yaml", passingScenario)
	writeFile(t, dir, "wrong_sum.yaml", failingScenario)

	out, err := execute(NewCheckCommand(&RootOptions{Format: "text"}), "--filter", "reference*", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "1 total")
	assert.NotContains(t, out, "wrong_sum")
}

func TestCheckCommand_LoadError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.yaml", "name: broken\nprogram: \"a = 1\"\n")

	out, err := execute(NewCheckCommand(&RootOptions{Format: "text"}), dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestCheckCommand_Golden(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "reference_add.yaml", passingScenario)
	writeFile(t, dir, "golden/reference_add.golden", passingGolden)

	out, err := execute(NewCheckCommand(&RootOptions{Format: "text"}), dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ reference_add\n")
}

func TestCheckCommand_GoldenMismatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "reference_add.yaml", passingScenario)
	writeFile(t, dir, "golden/reference_add.golden", "scenario: reference_add\n")

	out, err := execute(NewCheckCommand(&RootOptions{Format: "text"}), dir)
	require.Error(t, err)
	assert.Contains(t, out, "trace does not match golden file")
}

func TestCheckCommand_Update(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "reference_add.yaml", passingScenario)
	goldenDir := filepath.Join(dir, "out")

	out, err := execute(NewCheckCommand(&RootOptions{Format: "text"}), "--update", "--golden", goldenDir, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ reference_add (golden updated)")

	data, err := os.ReadFile(filepath.Join(goldenDir, "reference_add.golden"))
	require.NoError(t, err)
	assert.Equal(t, passingGolden, string(data))

	out, err = execute(NewCheckCommand(&RootOptions{Format: "text"}), "--golden", goldenDir, dir)
	require.NoError(t, err, out)
}
