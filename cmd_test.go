package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/termlife/patterns"
	"github.com/sheikhrachel/termlife/utils"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestPatternsCommand(t *testing.T) {
	out, _, err := execute(t, "patterns")
	require.NoError(t, err)

	for _, name := range patterns.Names() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "needs 41x14")
	assert.Contains(t, out, utils.PatternRandom)
	assert.Contains(t, out, utils.PatternGuns)
}

func TestRun_TextRenderer(t *testing.T) {
	out, logs, err := execute(t,
		"--renderer", "text",
		"--pattern", "blinker",
		"--width", "5", "--height", "5",
		"--iterations", "2",
		"--frame-delay", "0s",
		"--initial-pause", "0s",
	)
	require.NoError(t, err)

	horizontal := "     \r\n     \r\n *** \r\n     \r\n     "
	vertical := "     \r\n  *  \r\n  *  \r\n  *  \r\n     "
	assert.Equal(t, 2, strings.Count(out, horizontal), "seeded frame and generation two")
	assert.Equal(t, 1, strings.Count(out, vertical))
	assert.True(t, strings.HasSuffix(out, "\r\n"), "cursor left below the grid")

	assert.Contains(t, logs, "seeded pattern")
	assert.Contains(t, logs, "run finished")
}

func TestRun_JSONLogsToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "run.log")

	_, logs, err := execute(t,
		"--renderer", "text",
		"--pattern", "block",
		"--width", "4", "--height", "4",
		"--iterations", "1",
		"--initial-pause", "0s",
		"--log-format", "json",
		"--log-file", logFile,
	)
	require.NoError(t, err)
	assert.Empty(t, logs)

	require.FileExists(t, logFile)
}

func TestRun_PatternTooLarge(t *testing.T) {
	_, _, err := execute(t,
		"--renderer", "text",
		"--pattern", "gosper-gun",
		"--width", "40", "--height", "14",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, patterns.ErrPatternTooLarge)
}

func TestRun_InvalidFlags(t *testing.T) {
	_, _, err := execute(t, "--renderer", "gui")
	assert.ErrorIs(t, err, utils.ErrInvalidConfig)

	_, _, err = execute(t, "--renderer", "text", "--pattern", "nope", "--width", "5", "--height", "5")
	assert.ErrorIs(t, err, patterns.ErrUnknownPattern)

	_, _, err = execute(t, "--iterations", "many")
	assert.Error(t, err)
}
