package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/praetorian-inc/rgrep/pkg/sarif"
	"github.com/praetorian-inc/rgrep/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes a fresh root command with an isolated config lookup.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RGREP_CONFIG", "")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSearch_SingleFile(t *testing.T) {
	file := writeFile(t, filepath.Join(t.TempDir(), "notes.txt"),
		"Text File Line Matcher\nPattern Matcher\nFile Line Matcher\n")

	stdout, stderr, err := runCLI(t, "File Line Matcher", file)
	require.NoError(t, err)

	assert.Equal(t, "1:5 Text File Line Matcher\n3:0 File Line Matcher\n", stdout)
	assert.Empty(t, stderr)
}

func TestSearch_UnicodePattern(t *testing.T) {
	file := writeFile(t, filepath.Join(t.TempDir(), "mixed.txt"),
		"hello world\nversion 42\nno digits here\n多语言\n[bracketed]\n")

	stdout, _, err := runCLI(t, `([\d]+)|([\[].+[\]])|([\u4e00-\u9fa5])`, file)
	require.NoError(t, err)

	assert.Equal(t, "2:8 version 42\n4:0 多语言\n5:0 [bracketed]\n", stdout)
}

func TestSearch_Directory(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, filepath.Join(dir, "a.txt"), "one\nneedle\n")
	writeFile(t, filepath.Join(dir, "b.txt"), "nothing\n")
	c := writeFile(t, filepath.Join(dir, "sub", "c.txt"), "needle first\n")

	stdout, stderr, err := runCLI(t, "needle", dir)
	require.NoError(t, err)

	assert.Equal(t, a+"\n2:0 needle\n"+c+"\n1:0 needle first\n", stdout)
	assert.Empty(t, stderr)
}

func TestSearch_UnreadableFileReported(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	dir := t.TempDir()
	locked := writeFile(t, filepath.Join(dir, "locked.txt"), "needle\n")
	open := writeFile(t, filepath.Join(dir, "open.txt"), "needle\n")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0644) })

	stdout, stderr, err := runCLI(t, "needle", dir)
	require.NoError(t, err)

	assert.Equal(t, open+"\n1:0 needle\n", stdout)
	assert.Contains(t, stderr, "Err at "+locked+": ")
	assert.Contains(t, stderr, "permission denied")
}

func TestSearch_InvalidPatternReportedPerFile(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, filepath.Join(dir, "a.txt"), "x\n")
	b := writeFile(t, filepath.Join(dir, "b.txt"), "y\n")

	stdout, stderr, err := runCLI(t, "(unclosed", dir)
	require.NoError(t, err)

	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Err at "+a+": invalid pattern")
	assert.Contains(t, stderr, "Err at "+b+": invalid pattern")
}

func TestSearch_MissingPath(t *testing.T) {
	_, _, err := runCLI(t, "x", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path does not exist")
}

func TestSearch_WrongArgCount(t *testing.T) {
	_, _, err := runCLI(t, "only-pattern")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestSearch_Debug(t *testing.T) {
	file := writeFile(t, filepath.Join(t.TempDir(), "a.txt"), "x\n")

	stdout, _, err := runCLI(t, "x", file, "--debug")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "1:0 x", lines[0])
	assert.Regexp(t, `^Time elapsed: \d+ ms$`, lines[1])
}

func TestSearch_JSONFormat(t *testing.T) {
	file := writeFile(t, filepath.Join(t.TempDir(), "a.txt"), "alpha\nbeta\n")

	stdout, stderr, err := runCLI(t, "et", file, "--format", "json", "-d")
	require.NoError(t, err)

	var result types.FileResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, file, result.Path)
	require.Len(t, result.Records, 1)
	assert.Equal(t, 2, result.Records[0].LineNumber)
	assert.Equal(t, 1, result.Records[0].MatchStart)
	assert.Equal(t, 3, result.Records[0].MatchEnd)

	// Timing goes to stderr so stdout stays valid JSON.
	assert.Contains(t, stderr, "Time elapsed:")
}

func TestSearch_SARIFFormat(t *testing.T) {
	file := writeFile(t, filepath.Join(t.TempDir(), "a.txt"), "alpha\nbeta\n")

	stdout, _, err := runCLI(t, "a$", file, "--format", "sarif")
	require.NoError(t, err)

	var doc sarif.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	require.Len(t, doc.Runs, 1)
	assert.Len(t, doc.Runs[0].Results, 2)
	assert.Equal(t, "a$", doc.Runs[0].Tool.Driver.Rules[0].ShortDescription.Text)
}

func TestSearch_InvalidFlags(t *testing.T) {
	file := writeFile(t, filepath.Join(t.TempDir(), "a.txt"), "x\n")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"format", []string{"--format", "xml"}, "invalid format"},
		{"color", []string{"--color", "rainbow"}, "invalid color"},
		{"timeout", []string{"--match-timeout", "soon"}, "invalid --match-timeout"},
		{"chunk", []string{"--chunk-lines", "0"}, "chunk_lines must be >= 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, append([]string{"x", file}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSearch_ConfigFileAndFlagPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, filepath.Join(dir, "data", "a.txt"), "needle\n")
	cfgPath := writeFile(t, filepath.Join(dir, "rgrep.yaml"), "format: json\nworkers: 2\n")

	stdout, _, err := runCLI(t, "needle", file, "--config", cfgPath)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)), "config selects json output")

	stdout, _, err = runCLI(t, "needle", file, "--config", cfgPath, "--format", "human")
	require.NoError(t, err)
	assert.Equal(t, "1:0 needle\n", stdout)

	_, _, err = runCLI(t, "needle", file, "--config", filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestSearch_HiddenAndIgnore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".gitignore"), "skip.txt\n")
	skip := writeFile(t, filepath.Join(dir, "skip.txt"), "needle\n")
	hidden := writeFile(t, filepath.Join(dir, ".hidden.txt"), "needle\n")
	keep := writeFile(t, filepath.Join(dir, "keep.txt"), "needle\n")

	stdout, _, err := runCLI(t, "needle", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, keep)
	assert.NotContains(t, stdout, skip)
	assert.NotContains(t, stdout, hidden)

	stdout, _, err = runCLI(t, "needle", dir, "--no-ignore", "--include-hidden")
	require.NoError(t, err)
	assert.Contains(t, stdout, skip)
	assert.Contains(t, stdout, hidden)
}

func TestSearch_LogFile(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, filepath.Join(dir, "a.txt"), "x\n")
	logPath := filepath.Join(dir, "logs", "rgrep.log")

	_, stderr, err := runCLI(t, "x", file, "--verbose", "--log-file", logPath)
	require.NoError(t, err)
	assert.Empty(t, stderr)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "scanning")
	assert.Contains(t, string(data), "search complete")
}

func TestSearch_VerboseLogsToStderr(t *testing.T) {
	file := writeFile(t, filepath.Join(t.TempDir(), "a.txt"), "x\n")

	stdout, stderr, err := runCLI(t, "x", file, "-v")
	require.NoError(t, err)
	assert.Equal(t, "1:0 x\n", stdout)
	assert.Contains(t, stderr, "level=debug")
}
