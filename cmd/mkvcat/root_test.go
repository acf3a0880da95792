package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.in))
		})
	}
}

func resetGlobals(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		configPath = ""
		jsonOutput = false
		logLevel = ""
		_ = scanCmd.Flags().Set("dry-run", "false")
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	resetGlobals(t)

	path := filepath.Join(t.TempDir(), "mkvcat.toml")
	require.NoError(t, os.WriteFile(path, []byte("[scan]\nroot = \"/srv/media\"\n"), 0644))
	configPath = path

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/srv/media", cfg.Scan.Root)
}

func TestScanCommand(t *testing.T) {
	resetGlobals(t)

	tmp := t.TempDir()
	media := filepath.Join(tmp, "media")
	require.NoError(t, os.MkdirAll(filepath.Join(media, "copies"), 0755))
	for _, name := range []string{
		filepath.Join(media, "Leo (2023) 1080p.mkv"),
		filepath.Join(media, "copies", "Leo (2023) 720p.mkv"),
		filepath.Join(media, "Vikram (2022).mkv"),
	} {
		require.NoError(t, os.WriteFile(name, []byte("data"), 0644))
	}

	catalogPath := filepath.Join(tmp, "out", "Movies.csv")
	dupPath := filepath.Join(tmp, "out", "Duplicates.csv")
	cfgPath := filepath.Join(tmp, "mkvcat.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
[output]
catalog = "`+filepath.ToSlash(catalogPath)+`"
duplicates = "`+filepath.ToSlash(dupPath)+`"

[log]
level = "error"
`), 0644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"scan", "--config", cfgPath, "--json", media})
	require.NoError(t, rootCmd.Execute())

	var sum ScanSummaryJSON
	require.NoError(t, json.Unmarshal(out.Bytes(), &sum))
	assert.Equal(t, 3, sum.Scanned)
	assert.Equal(t, 2, sum.New)
	assert.Equal(t, 2, sum.Duplicates)

	_, err := os.Stat(catalogPath)
	assert.NoError(t, err, "catalog written")
	_, err = os.Stat(dupPath)
	assert.NoError(t, err, "duplicates written")
}

func TestParseCommand(t *testing.T) {
	resetGlobals(t)

	cfgPath := filepath.Join(t.TempDir(), "mkvcat.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[extract]\nextra_languages = [\"Sinhala\"]\n"), 0644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"parse", "--config", cfgPath, "--json", "Film (2019) Sinhala 720p.mkv"})
	require.NoError(t, rootCmd.Execute())

	var got ParseResultJSON
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "Film", got.Title)
	assert.Equal(t, "2019", got.Year)
	assert.Equal(t, "Sinhala", got.Languages)
	assert.Equal(t, "720p", got.Format)
}

func TestConfigInitAndTest(t *testing.T) {
	resetGlobals(t)
	t.Cleanup(func() { _ = configInitCmd.Flags().Set("force", "false") })

	path := filepath.Join(t.TempDir(), "sub", "mkvcat.toml")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "init", path})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Wrote "+path)

	rootCmd.SetArgs([]string{"config", "init", path})
	assert.Error(t, rootCmd.Execute(), "refuses to overwrite without --force")

	out.Reset()
	rootCmd.SetArgs([]string{"config", "test", path})
	require.NoError(t, rootCmd.Execute())
}

func TestConfigInit_WithOverrides(t *testing.T) {
	resetGlobals(t)
	t.Cleanup(func() {
		for _, name := range []string{"root", "catalog", "duplicates"} {
			_ = configInitCmd.Flags().Set(name, "")
		}
	})

	path := filepath.Join(t.TempDir(), "mkvcat.toml")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"config", "init", "--root", "/srv/media", "--catalog", "out/Films.csv", path})
	require.NoError(t, rootCmd.Execute())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "${MKVCAT_ROOT", "resolved values, not the template")

	configPath = path
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/srv/media", cfg.Scan.Root)
	assert.Equal(t, "out/Films.csv", cfg.Output.Catalog)
	assert.Equal(t, "Duplicates.csv", cfg.Output.Duplicates)
	assert.Equal(t, []string{".mkv"}, cfg.Scan.Extensions)
}

func TestConfigInit_RejectsSameTablePaths(t *testing.T) {
	resetGlobals(t)
	t.Cleanup(func() {
		_ = configInitCmd.Flags().Set("catalog", "")
		_ = configInitCmd.Flags().Set("duplicates", "")
	})

	path := filepath.Join(t.TempDir(), "mkvcat.toml")
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"config", "init", "--catalog", "same.csv", "--duplicates", "same.csv", path})
	assert.Error(t, rootCmd.Execute())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
