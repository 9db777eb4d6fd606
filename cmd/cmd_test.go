package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/AnushaPriya2003/anusha/pkg/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	repo := filepath.Join(dir, "repository")
	cfg := `
log:
  level: warn
  file: ` + filepath.Join(dir, "job.log") + `
database:
  path: ` + filepath.Join(dir, "job.db") + `
storage:
  type: localfs
  save-path: ` + repo + `
job:
  disabled: true
  scheduler-expression: "0 0 9 1/1 * ? *"
  number-of-days-purge: 30
  purge-root: /pim
  time-zone: UTC
`
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestResolveConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	configDefault = "job:\n  disabled: true\n"

	_, err := resolveConfig("", false)
	assert.Error(t, err)

	path, err := resolveConfig("", true)
	require.NoError(t, err)
	assert.Equal(t, "config/config.yaml", path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, configDefault, string(data))

	path, err = resolveConfig("", false)
	require.NoError(t, err)
	assert.Equal(t, "config/config.yaml", path)

	path, err = resolveConfig("custom.yaml", false)
	require.NoError(t, err)
	assert.Equal(t, "custom.yaml", path)
}

func TestPurgeCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)

	root := filepath.Join(dir, "repository", "pim")
	old := filepath.Join(root, "2000-01-01")
	today := filepath.Join(root, time.Now().UTC().Format(util.DateLayout))
	for _, d := range []string{old, today} {
		require.NoError(t, os.MkdirAll(d, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(d, "export.csv"), []byte("a,b\n"), 0644))
	}

	out, err := execute(t, "purge", "-c", cfg, "--dry-run")
	require.NoError(t, err, out)
	assert.Contains(t, out, "would delete: 1")
	assert.DirExists(t, old)

	out, err = execute(t, "purge", "-c", cfg, "--dry-run=false")
	require.NoError(t, err, out)
	assert.Contains(t, out, "deleted:     1")
	assert.Contains(t, out, "retained:    1")
	assert.NoDirExists(t, old)
	assert.DirExists(t, today)

	out, err = execute(t, "purge", "-c", cfg, "--dry-run=false", "--root", "/missing")
	require.NoError(t, err, out)
	assert.Contains(t, out, "root does not exist")
}

func TestVerifyConfigCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)

	out, err := execute(t, "verify-config", "-c", cfg, "-n", "3")
	require.NoError(t, err, out)
	assert.Contains(t, out, "job:         disabled")
	assert.Contains(t, out, "0 0 9 1/1 * ? *")
	assert.Equal(t, 3, strings.Count(out, "next run:"))
	assert.Contains(t, out, "T09:00:00Z")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "EMEA PIM CSV Export Job v")
	assert.Contains(t, out, runtime.Version())

	out, err = execute(t, "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name":"EMEA PIM CSV Export Job"`)
	assert.Contains(t, out, `"goVersion":"`+runtime.Version()+`"`)
}

func TestRunOnceCommand(t *testing.T) {
	cfg := writeConfig(t, t.TempDir())

	out, err := execute(t, "run-once", "-c", cfg)
	require.NoError(t, err, out)

	_, err = execute(t, "run-once", "-c", cfg, "-t", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown task")
	assert.Equal(t, 1, exitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 1, exitCode(errors.New("boom")))
	err := fmt.Errorf("wrapped: %w", &exitError{code: exitIncomplete, err: errors.New("partial")})
	assert.Equal(t, exitIncomplete, exitCode(err))
	assert.Equal(t, "wrapped: partial", err.Error())
}

func TestBootstrapLevel(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, bootstrapLevel("", ""))
	assert.Equal(t, zapcore.DebugLevel, bootstrapLevel("", "1"))
	assert.Equal(t, zapcore.WarnLevel, bootstrapLevel("warn", "1"))
	assert.Equal(t, zapcore.DebugLevel, bootstrapLevel("loud", "1"))
}
