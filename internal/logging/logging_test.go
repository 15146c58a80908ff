package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/cristianoliveira/debugmenu/internal/config"
	"github.com/cristianoliveira/debugmenu/internal/logstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTest(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("HOME", tmp)
	config.Load()
	return tmp
}

func readLastLine(t *testing.T, logDir string) map[string]any {
	t.Helper()
	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	data, err := os.ReadFile(filepath.Join(logDir, entries[len(entries)-1].Name()))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestConfigFromGlobal(t *testing.T) {
	setupTest(t)
	t.Setenv("DEBUGMENU_LOGGING_ENABLED", "true")
	t.Setenv("DEBUGMENU_LOGGING_LEVEL", "warn")
	t.Setenv("DEBUGMENU_LOGGING_MAX_FILES", "5")
	config.Load()

	cfg := FromGlobalConfig()
	require.True(t, cfg.Enabled)
	require.Equal(t, "warn", cfg.Level)
	require.Equal(t, 5, cfg.MaxFiles)
	require.Equal(t, os.Getpid(), cfg.PID)
}

func TestDebugAndQuietOverrideLevel(t *testing.T) {
	setupTest(t)
	t.Setenv("DEBUGMENU_QUIET", "true")
	config.Load()
	require.Equal(t, "error", FromGlobalConfig().Level)

	t.Setenv("DEBUGMENU_DEBUG", "true")
	config.Load()
	require.Equal(t, "debug", FromGlobalConfig().Level)
}

func TestLogDir(t *testing.T) {
	tmp := setupTest(t)

	logDir, err := LogDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "debugmenu", "logs"), logDir)
	info, err := os.Stat(logDir)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestInitDisabled(t *testing.T) {
	logger, err := Init(Config{Enabled: false})
	require.NoError(t, err)
	require.IsType(t, noopLogger{}, logger)
	logger.Info("ignored")
	require.NoError(t, logger.Shutdown())
}

func TestInitWritesJSONWithRedaction(t *testing.T) {
	tmp := setupTest(t)
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Command = "run demo"

	logger, err := Init(cfg)
	require.NoError(t, err)
	logger.With("session", "abc").Info("flag changed", "flag", "show-logger", "api_token", "xyz")
	require.NoError(t, logger.Shutdown())

	logDir := filepath.Join(tmp, "debugmenu", "logs")
	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	name := entries[0].Name()
	require.True(t, strings.HasPrefix(name, fileLogPrefix))
	require.Contains(t, name, fmt.Sprintf("_PID%d_", os.Getpid()))
	require.True(t, strings.HasSuffix(name, "_run_demo.log"))

	entry := readLastLine(t, logDir)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "flag changed", entry["msg"])
	assert.Equal(t, "abc", entry["session"])
	assert.Equal(t, "show-logger", entry["flag"])
	assert.Equal(t, redacted, entry["api_token"])
}

func TestNewWriterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, Config{Level: "warn"})

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestRotationKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 4; i++ {
		path := filepath.Join(dir, fmt.Sprintf("%s2025010%d_PID1_x.log", fileLogPrefix, i))
		require.NoError(t, os.WriteFile(path, nil, 0600))
		stamp := time.Now().Add(-time.Duration(4-i) * time.Hour)
		require.NoError(t, os.Chtimes(path, stamp, stamp))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.log"), nil, 0600))

	require.NoError(t, rotate(dir, 2))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{
		fileLogPrefix + "20250102_PID1_x.log",
		fileLogPrefix + "20250103_PID1_x.log",
		"other.log",
	}, names)
}

func TestRedactorSegments(t *testing.T) {
	r := newRedactor()

	require.Equal(t, []any{"PASSWORD", redacted}, r.redact([]any{"PASSWORD", "x"}))
	require.Equal(t, []any{"api-token", redacted}, r.redact([]any{"api-token", "x"}))
	require.Equal(t, []any{"tokenizer", "x"}, r.redact([]any{"tokenizer", "x"}))
	require.Equal(t, []any{"password", redacted, "extra"}, r.redact([]any{"password", "x", "extra"}))
	require.Empty(t, r.redact(nil))
}

func TestTeePublishesToStream(t *testing.T) {
	stream := logstream.New()
	var got []logstream.Entry
	stream.Subscribe(func(e logstream.Entry) { got = append(got, e) })

	var buf bytes.Buffer
	logger := Tee(NewWriter(&buf, Config{Level: "debug"}), stream).With("action", "Quit")
	logger.Warn("input rejected", "password", "hunter2")
	logger.Error("boom")

	require.Len(t, got, 2)
	assert.Equal(t, logstream.SeverityWarning, got[0].Severity)
	assert.Equal(t, "input rejected action=Quit password=[REDACTED]", got[0].Message)
	assert.Equal(t, logstream.SeverityError, got[1].Severity)
	assert.NotEmpty(t, got[1].StackTrace)
	assert.Contains(t, buf.String(), "input rejected")
}

func TestLevelParsing(t *testing.T) {
	require.Equal(t, clog.DebugLevel, parseLevel("debug"))
	require.Equal(t, clog.WarnLevel, parseLevel("warning"))
	require.Equal(t, clog.ErrorLevel, parseLevel("error"))
	require.Equal(t, clog.InfoLevel, parseLevel("unknown"))
}
