// ABOUTME: Tests for variant selection, chart file writing, and the generation manifest.
package generate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389-research/fishbone/diagram"
	"github.com/2389-research/fishbone/model"
)

const smallModel = `{
  "levels": {
    "L1": {"title": "Start", "description": "d", "features": "f",
           "capabilities": {"Personnel": ["a", "b"]}},
    "L2": {"title": "Grow", "description": "d", "features": ["x", "y"],
           "capabilities": {"Technical": ["c"]}}
  }
}`

func writeModel(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		selection string
		locale    *diagram.Locale
		want      []diagram.Variant
	}{
		{"zh default", "", diagram.Chinese, diagram.Variants()},
		{"en default", "", diagram.English, []diagram.Variant{diagram.Ultra, diagram.Interactive}},
		{"all", "all", diagram.English, diagram.Variants()},
		{"both", "BOTH", diagram.Chinese, []diagram.Variant{diagram.Ultra, diagram.Interactive}},
		{"single", "static", diagram.Chinese, []diagram.Variant{diagram.Static}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.selection, tt.locale)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveUnknown(t *testing.T) {
	_, err := Resolve("giant", diagram.Chinese)
	require.Error(t, err)
	assert.True(t, errors.Is(err, diagram.ErrUnknownVariant))
	assert.Contains(t, err.Error(), `"both"`)
}

func TestLoadSource(t *testing.T) {
	src, err := LoadSource(writeModel(t, "m.json", smallModel))
	require.NoError(t, err)
	assert.Equal(t, model.FormatJSON, src.Format)
	assert.Equal(t, []string{"L1", "L2"}, src.Model.LevelIDs())
	assert.Len(t, src.SHA256(), 64)

	_, err = LoadSource(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadSource(writeModel(t, "bad.json", "{not json"))
	assert.Error(t, err)
}

func TestGenerateWritesChartsAndManifest(t *testing.T) {
	src, err := LoadSource(writeModel(t, "m.json", smallModel))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "nested", "out")
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	g := &Generator{OutDir: out, Locale: diagram.English, now: func() time.Time { return fixed }}

	man, err := g.Generate(context.Background(), src, "both")
	require.NoError(t, err)

	require.Len(t, man.Files, 2)
	assert.Equal(t, "en", man.Locale)
	assert.Equal(t, fixed, man.GeneratedAt)
	assert.Equal(t, src.SHA256(), man.ModelSHA256)
	_, err = ulid.ParseStrict(man.BuildID)
	assert.NoError(t, err)

	for _, f := range man.Files {
		assert.Equal(t, diagram.English.Filename(f.Variant), f.Name)
		data, err := os.ReadFile(filepath.Join(out, f.Name))
		require.NoError(t, err)
		assert.Equal(t, len(data), f.Bytes)
		assert.Contains(t, string(data), "<html")
	}

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-", "temp files must not be left behind")
	}

	read, err := ReadManifest(out)
	require.NoError(t, err)
	assert.Equal(t, man.BuildID, read.BuildID)
	assert.Equal(t, man.Files[0].SHA256, read.Files[0].SHA256)
	assert.Empty(t, read.Files[0].Path, "paths are not serialized")
}

func TestGenerateAllChinese(t *testing.T) {
	src, err := LoadSource(filepath.Join("..", "resource", "model_of_level.json"))
	require.NoError(t, err)

	out := t.TempDir()
	g := &Generator{OutDir: out, Locale: diagram.Chinese}
	man, err := g.Generate(context.Background(), src, "")
	require.NoError(t, err)
	require.Len(t, man.Files, len(diagram.Variants()))

	for _, v := range diagram.Variants() {
		_, err := os.Stat(filepath.Join(out, diagram.Chinese.Filename(v)))
		assert.NoError(t, err, "missing %s", v)
	}
}

func TestGenerateRenderFailure(t *testing.T) {
	src, err := LoadSource(writeModel(t, "m.json", smallModel))
	require.NoError(t, err)

	boom := errors.New("boom")
	out := t.TempDir()
	g := &Generator{
		OutDir: out,
		Locale: diagram.Chinese,
		Render: func(*model.Model, diagram.Variant, *diagram.Locale) ([]byte, error) { return nil, boom },
	}
	_, err = g.Generate(context.Background(), src, "basic")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	_, err = os.Stat(filepath.Join(out, ManifestName))
	assert.True(t, os.IsNotExist(err), "no manifest on failure")
}

func TestGenerateErrors(t *testing.T) {
	src, err := LoadSource(writeModel(t, "m.json", smallModel))
	require.NoError(t, err)

	t.Run("nil locale", func(t *testing.T) {
		g := &Generator{OutDir: t.TempDir()}
		_, err := g.Generate(context.Background(), src, "")
		assert.ErrorIs(t, err, diagram.ErrUnknownLocale)
	})

	t.Run("out dir is a file", func(t *testing.T) {
		file := writeModel(t, "plain", "x")
		g := &Generator{OutDir: file, Locale: diagram.English}
		_, err := g.Generate(context.Background(), src, "basic")
		assert.Error(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		g := &Generator{OutDir: t.TempDir(), Locale: diagram.English}
		_, err := g.Generate(ctx, src, "basic")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWriteFileAtomicReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.html")
	require.NoError(t, writeFileAtomic(path, []byte("one")))
	require.NoError(t, writeFileAtomic(path, []byte("two")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestGenerateBothLocalesShareManifest(t *testing.T) {
	src, err := LoadSource(writeModel(t, "m.json", smallModel))
	require.NoError(t, err)

	out := t.TempDir()
	stub := func(_ *model.Model, v diagram.Variant, l *diagram.Locale) ([]byte, error) {
		return []byte("<html>" + l.Code + " " + string(v) + "</html>"), nil
	}

	zh := &Generator{OutDir: out, Locale: diagram.Chinese, Render: stub}
	_, err = zh.Generate(context.Background(), src, "all")
	require.NoError(t, err)

	en := &Generator{OutDir: out, Locale: diagram.English, Render: stub}
	man, err := en.Generate(context.Background(), src, "both")
	require.NoError(t, err)
	assert.Len(t, man.Written(), 2)

	read, err := ReadManifest(out)
	require.NoError(t, err)
	assert.Equal(t, "en", read.Locale)
	require.Len(t, read.Files, len(diagram.Variants())+2)

	byLocale := map[string]int{}
	for _, f := range read.Files {
		byLocale[f.Locale]++
		assert.NotEmpty(t, f.BuildID, f.Name)
	}
	assert.Equal(t, len(diagram.Variants()), byLocale["zh"])
	assert.Equal(t, 2, byLocale["en"])

	// Regenerating replaces entries instead of duplicating them, and charts
	// removed from disk drop out of the manifest.
	require.NoError(t, os.Remove(filepath.Join(out, diagram.Chinese.Filename(diagram.Basic))))
	_, err = en.Generate(context.Background(), src, "both")
	require.NoError(t, err)

	read, err = ReadManifest(out)
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range read.Files {
		assert.False(t, names[f.Name], "duplicate entry %s", f.Name)
		names[f.Name] = true
	}
	assert.Len(t, read.Files, len(diagram.Variants())+1)
	assert.False(t, names[diagram.Chinese.Filename(diagram.Basic)])
}

func TestGenerateIgnoresCorruptManifest(t *testing.T) {
	src, err := LoadSource(writeModel(t, "m.json", smallModel))
	require.NoError(t, err)

	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(out, ManifestName), []byte("{broken"), 0o644))

	g := &Generator{OutDir: out, Locale: diagram.English}
	man, err := g.Generate(context.Background(), src, "ultra")
	require.NoError(t, err)
	assert.Len(t, man.Files, 1)
}
