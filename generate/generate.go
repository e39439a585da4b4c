// ABOUTME: Generation pipeline: load a model, render the selected variants, write them and a manifest.
// ABOUTME: Output file names are fixed per locale so the viewer can map routes to files.
package generate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/2389-research/fishbone/diagram"
	"github.com/2389-research/fishbone/logging"
	"github.com/2389-research/fishbone/model"
	"github.com/2389-research/fishbone/render"
)

// Selection names accepted besides single variant names.
const (
	SelectAll  = "all"
	SelectBoth = "both"
)

// ManifestName is the file written next to the charts.
const ManifestName = "manifest.json"

// Source is a loaded model together with the bytes it came from.
type Source struct {
	Path   string
	Data   []byte
	Format model.Format
	Model  *model.Model
}

// LoadSource reads and parses the model file at path.
func LoadSource(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	format := model.FormatForPath(path)
	m, err := model.Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Source{Path: path, Data: data, Format: format, Model: m}, nil
}

// SHA256 returns the hex digest of the model bytes.
func (s *Source) SHA256() string {
	sum := sha256.Sum256(s.Data)
	return hex.EncodeToString(sum[:])
}

// DefaultSelection is "all" for zh and "both" for en.
func DefaultSelection(l *diagram.Locale) string {
	if l.Code == diagram.English.Code {
		return SelectBoth
	}
	return SelectAll
}

// Resolve maps a selection to the variants it names. An empty selection uses
// the locale default.
func Resolve(selection string, l *diagram.Locale) ([]diagram.Variant, error) {
	sel := strings.ToLower(strings.TrimSpace(selection))
	if sel == "" {
		sel = DefaultSelection(l)
	}
	switch sel {
	case SelectAll:
		return diagram.Variants(), nil
	case SelectBoth:
		return []diagram.Variant{diagram.Ultra, diagram.Interactive}, nil
	}
	v, err := diagram.ParseVariant(sel)
	if err != nil {
		return nil, fmt.Errorf("%w; or %q / %q", err, SelectAll, SelectBoth)
	}
	return []diagram.Variant{v}, nil
}

// Manifest records the charts in an output directory. The top-level fields
// describe the latest run; Files also keeps earlier entries whose charts are
// still on disk, so zh and en runs into one directory share a manifest.
type Manifest struct {
	BuildID     string    `json:"build_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Locale      string    `json:"locale"`
	ModelPath   string    `json:"model_path"`
	ModelSHA256 string    `json:"model_sha256"`
	Files       []File    `json:"files"`
}

// File describes one generated chart.
type File struct {
	Variant diagram.Variant `json:"variant"`
	Locale  string          `json:"locale"`
	Name    string          `json:"name"`
	Path    string          `json:"-"`
	Bytes   int             `json:"bytes"`
	SHA256  string          `json:"sha256"`

	BuildID     string `json:"build_id"`
	ModelSHA256 string `json:"model_sha256"`
}

// Generator writes charts for one locale into OutDir.
type Generator struct {
	OutDir string
	Locale *diagram.Locale
	Logger *zap.Logger
	// Render overrides the page renderer; tests use it to inject failures.
	Render func(m *model.Model, v diagram.Variant, l *diagram.Locale) ([]byte, error)

	now func() time.Time
}

// Generate renders the selected variants of src and writes them with a manifest.
func (g *Generator) Generate(ctx context.Context, src *Source, selection string) (*Manifest, error) {
	log := logging.OrNop(g.Logger)
	if g.Locale == nil {
		return nil, fmt.Errorf("generate: %w", diagram.ErrUnknownLocale)
	}
	variants, err := Resolve(selection, g.Locale)
	if err != nil {
		return nil, err
	}

	if err := ensureDir(g.OutDir, log); err != nil {
		return nil, err
	}

	renderFn := g.Render
	if renderFn == nil {
		renderFn = func(m *model.Model, v diagram.Variant, l *diagram.Locale) ([]byte, error) {
			return render.Chart(m, v, l, render.Options{})
		}
	}
	now := time.Now
	if g.now != nil {
		now = g.now
	}

	man := &Manifest{
		BuildID:     NewBuildID().String(),
		GeneratedAt: now().UTC(),
		Locale:      g.Locale.Code,
		ModelPath:   src.Path,
		ModelSHA256: src.SHA256(),
	}

	for _, v := range variants {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		log.Info("generating chart", zap.String("variant", string(v)), zap.String("locale", g.Locale.Code))

		data, err := renderFn(src.Model, v, g.Locale)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", v, err)
		}
		name := g.Locale.Filename(v)
		path := filepath.Join(g.OutDir, name)
		if err := writeFileAtomic(path, data); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}

		sum := sha256.Sum256(data)
		man.Files = append(man.Files, File{
			Variant: v,
			Locale:  g.Locale.Code,
			Name:    name,
			Path:    path,
			Bytes:   len(data),
			SHA256:  hex.EncodeToString(sum[:]),

			BuildID:     man.BuildID,
			ModelSHA256: man.ModelSHA256,
		})
		log.Info("chart written", zap.String("path", path), zap.Int("bytes", len(data)))
	}

	man.Files = append(man.Files, retainedFiles(g.OutDir, man.Files, log)...)
	if err := writeManifest(g.OutDir, man); err != nil {
		return nil, err
	}
	return man, nil
}

// Written returns the files produced by the run that wrote the manifest.
func (m *Manifest) Written() []File {
	var out []File
	for _, f := range m.Files {
		if f.BuildID == m.BuildID {
			out = append(out, f)
		}
	}
	return out
}

// retainedFiles returns the entries of the existing manifest in dir that this
// run did not rewrite and whose charts are still present.
func retainedFiles(dir string, written []File, log *zap.Logger) []File {
	prev, err := ReadManifest(dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("ignoring existing manifest", zap.String("dir", dir), zap.Error(err))
		}
		return nil
	}
	seen := make(map[string]bool, len(written))
	for _, f := range written {
		seen[f.Name] = true
	}
	var out []File
	for _, f := range prev.Files {
		if seen[f.Name] || !validName(f.Name) {
			continue
		}
		path := filepath.Join(dir, f.Name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		f.Path = path
		seen[f.Name] = true
		out = append(out, f)
	}
	return out
}

func validName(name string) bool {
	return name != "" && name == filepath.Base(name) && name != "." && name != ".."
}

func ensureDir(dir string, log *zap.Logger) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("output path %s is not a directory", dir)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat output dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	log.Info("created output directory", zap.String("dir", dir))
	return nil
}

func writeManifest(dir string, man *Manifest) error {
	data, err := json.MarshalIndent(man, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(dir, ManifestName), append(data, '\n')); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads the manifest from a chart directory.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, err
	}
	var man Manifest
	if err := json.Unmarshal(data, &man); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &man, nil
}
