package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greg-hacke/exifsheet/imagetest"
	"greg-hacke/exifsheet/pipeline"
	"greg-hacke/exifsheet/report"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 2, exitCode(fmt.Errorf("run: %w", pipeline.ErrNoMatches)))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
}

func TestRunCommandWritesReport(t *testing.T) {
	dir := t.TempDir()
	a := imagetest.WriteFile(t, dir, "a.jpg", imagetest.CameraJPEG("Acme", "X1"))
	output := filepath.Join(dir, "report.csv")

	out, err := execute(t, "--root", dir, "--output", output, "--tags", "Model", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 1 files")

	rows, err := report.Read(output)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Filepath", "Model"}, {report.Hyperlink(a), "X1"}}, rows)
}

func TestRunCommandNoMatches(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "report.xlsx")

	_, err := execute(t, "run", "--root", dir, "--output", output, "--log-level", "error")
	assert.Equal(t, 2, exitCode(err))
	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunCommandRejectsBadFlags(t *testing.T) {
	_, err := execute(t, "--root", t.TempDir(), "--on-error", "retry")
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
}

func TestDumpCommand(t *testing.T) {
	dir := t.TempDir()
	path := imagetest.WriteFile(t, dir, "a.jpg", imagetest.CameraJPEG("Acme", "X1"))

	out, err := execute(t, "dump", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Make")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "X1")

	_, err = execute(t, "dump", filepath.Join(dir, "missing.jpg"))
	assert.Error(t, err)
}

func TestTagsCommand(t *testing.T) {
	out, err := execute(t, "tags", "--group", "GPS")
	require.NoError(t, err)
	assert.Contains(t, out, "GPSLatitude")
	assert.NotContains(t, out, "Model")
}
