// ABOUTME: Tests for the fishbone CLI: command dispatch, exit codes, generation, and the startup prompt.
package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/2389-research/fishbone/config"
	"github.com/2389-research/fishbone/diagram"
	"github.com/2389-research/fishbone/generate"
)

// isolate moves the test into an empty directory with private XDG paths and
// returns the absolute path of the bundled English model.
func isolate(t *testing.T) string {
	t.Helper()
	model, err := filepath.Abs(filepath.Join("..", "..", "resource", "model_of_level_en.json"))
	require.NoError(t, err)

	dir := t.TempDir()
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg-config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "xdg-data"))
	return model
}

func run(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = execute(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestVersionCommand(t *testing.T) {
	isolate(t)
	code, out, _ := run(t, "", "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "fishbone dev")
}

func TestVersionIgnoresBrokenConfig(t *testing.T) {
	isolate(t)
	t.Setenv("FISHBONE_LANG", "fr")
	code, _, _ := run(t, "", "version")
	assert.Equal(t, 0, code)
}

func TestRootPrintsHelp(t *testing.T) {
	isolate(t)
	code, out, _ := run(t, "")
	assert.Equal(t, 0, code)
	for _, want := range []string{"fishbone generate", "fishbone serve", "fishbone start", "interactive"} {
		assert.Contains(t, out, want)
	}
}

func TestGenerateList(t *testing.T) {
	isolate(t)
	code, out, _ := run(t, "", "generate", "--list")
	assert.Equal(t, 0, code)
	for _, v := range diagram.Variants() {
		assert.Contains(t, out, string(v))
	}
	assert.Contains(t, out, "both")
}

func TestGenerateEnglishDefaults(t *testing.T) {
	model := isolate(t)
	out := filepath.Join(t.TempDir(), "charts")

	code, stdout, stderr := run(t, "", "generate", "--lang", "en", "--model", model, "--out", out, "--log-level", "error")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Charts generated")

	for _, name := range []string{"ai_sd_maturity_ultra_en.html", "ai_sd_maturity_interactive_en.html"} {
		_, err := os.Stat(filepath.Join(out, name))
		assert.NoError(t, err, name)
	}
	_, err := os.Stat(filepath.Join(out, "ai_sd_maturity_basic_en.html"))
	assert.True(t, os.IsNotExist(err), "en default is ultra + interactive only")

	man, err := generate.ReadManifest(out)
	require.NoError(t, err)
	assert.Len(t, man.Files, 2)
}

func TestGenerateSingleVariantFromEnv(t *testing.T) {
	model := isolate(t)
	out := filepath.Join(t.TempDir(), "charts")
	t.Setenv("FISHBONE_OUT_DIR", out)
	t.Setenv("FISHBONE_LANG", "en")
	t.Setenv("FISHBONE_MODEL", model)

	code, _, stderr := run(t, "", "generate", "-v", "static", "--log-level", "error")
	require.Equal(t, 0, code, stderr)
	_, err := os.Stat(filepath.Join(out, "ai_sd_maturity_static_en.html"))
	assert.NoError(t, err)
}

func TestGenerateErrors(t *testing.T) {
	model := isolate(t)

	code, _, stderr := run(t, "", "generate", "-v", "giant", "--lang", "en", "--model", model)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown variant")

	code, _, stderr = run(t, "", "generate", "--lang", "en", "--model", filepath.Join(t.TempDir(), "missing.json"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error:")

	code, _, stderr = run(t, "", "generate", "--lang", "fr")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown locale")
}

func TestStartDeclineExitsOne(t *testing.T) {
	isolate(t)
	out := filepath.Join(t.TempDir(), "empty")

	code, stdout, stderr := run(t, "n\n", "start", "--out", out)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "Generate charts now? (y/n)")
	assert.Contains(t, stdout, "fishbone generate")
	assert.Empty(t, stderr)
}

func newTestApp(t *testing.T, stdin, model string) (*app, *cobra.Command, *bytes.Buffer) {
	t.Helper()
	a := &app{
		in: strings.NewReader(stdin),
		cfg: &config.Config{
			Lang:   "en",
			Model:  model,
			OutDir: filepath.Join(t.TempDir(), "out"),
		},
		log: zap.NewNop(),
	}
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	cmd.SetContext(context.Background())
	return a, cmd, &buf
}

func TestCheckChartsGeneratesOnYes(t *testing.T) {
	model := isolate(t)
	a, cmd, buf := newTestApp(t, "是\n", model)

	ok, err := a.checkCharts(cmd, false)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, buf.String(), "Found 2 HTML files")
	assert.Contains(t, buf.String(), "ai_sd_maturity_ultra_en.html")
}

func TestCheckChartsListsExisting(t *testing.T) {
	model := isolate(t)
	a, cmd, buf := newTestApp(t, "", model)
	require.NoError(t, os.MkdirAll(a.cfg.OutDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(a.cfg.OutDir, "chart.html"), make([]byte, 1536*1024), 0o644))

	ok, err := a.checkCharts(cmd, false)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, buf.String(), "- chart.html (1.5MB)")
	assert.NotContains(t, buf.String(), "Generate charts now?")
}

func TestCheckChartsReportsManifest(t *testing.T) {
	model := isolate(t)
	a, cmd, _ := newTestApp(t, "", model)
	ok, err := a.checkCharts(cmd, true)
	require.NoError(t, err)
	require.True(t, ok)

	man, err := generate.ReadManifest(a.cfg.OutDir)
	require.NoError(t, err)

	out := a.cfg.OutDir
	a, cmd, buf := newTestApp(t, "", model)
	a.cfg.OutDir = out
	ok, err = a.checkCharts(cmd, false)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, buf.String(), "manifest: 2 charts, build "+man.BuildID)
}

func TestCheckChartsYesFlagSkipsPrompt(t *testing.T) {
	model := isolate(t)
	a, cmd, buf := newTestApp(t, "", model)

	ok, err := a.checkCharts(cmd, true)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotContains(t, buf.String(), "Generate charts now?")
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{" 是 \n", true},
		{"yes", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		assert.Equal(t, tt.want, confirm(strings.NewReader(tt.input), &out, "? "), "input %q", tt.input)
		assert.True(t, strings.HasPrefix(out.String(), "? "))
	}
}

func TestLiveModels(t *testing.T) {
	model := isolate(t)
	models := liveModels(&config.Config{Lang: "en", Model: model})
	assert.Equal(t, map[string]string{"en": model}, models, "bundled zh model is not reachable from the test directory")
}

func TestPrintHelpEnvStatus(t *testing.T) {
	t.Setenv("FISHBONE_LANG", "en")
	t.Setenv("FISHBONE_MODEL", "")
	var buf bytes.Buffer
	printHelp(&buf, "1.2.3")
	out := buf.String()
	assert.Contains(t, out, "fishbone 1.2.3")
	assert.Contains(t, out, "[en]")
	assert.Contains(t, out, "[not set]")
}
