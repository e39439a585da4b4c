// ABOUTME: Chart routes: fixed variant URLs, /charts/{name}, /list, and the home page cards.
// ABOUTME: Missing files fall back to an in-memory render when a model is configured for the locale.
package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/2389-research/fishbone/diagram"
	"github.com/2389-research/fishbone/model"
	"github.com/2389-research/fishbone/render"
)

// chartRoute binds a fixed URL to one generated chart and describes its home page card.
type chartRoute struct {
	Path        string
	Locale      *diagram.Locale
	Variant     diagram.Variant
	Icon        string
	Title       string
	Description string
	Button      string
}

var chartRoutes = []chartRoute{
	{
		Path:        "/interactive",
		Locale:      diagram.Chinese,
		Variant:     diagram.Interactive,
		Icon:        "🎯",
		Title:       "Interactive Version",
		Description: "Includes sidebar checkbox functionality to track completed capabilities with progress saving. Best for practical use.",
		Button:      "View Interactive Version",
	},
	{
		Path:        "/ultra",
		Locale:      diagram.Chinese,
		Variant:     diagram.Ultra,
		Icon:        "🌟",
		Title:       "Ultra Clean Layout Version",
		Description: "Uses layered display strategy with the clearest information layout, includes draggable reference lines, suitable for presentation and analysis.",
		Button:      "View Ultra Clean Version",
	},
	{
		Path:        "/interactive_en",
		Locale:      diagram.English,
		Variant:     diagram.Interactive,
		Icon:        "🔍",
		Title:       "Interactive Version",
		Description: "English interactive chart with sidebar checkbox functionality, suitable for international display and use.",
		Button:      "View Interactive (EN)",
	},
	{
		Path:        "/ultra_en",
		Locale:      diagram.English,
		Variant:     diagram.Ultra,
		Icon:        "👁️",
		Title:       "Ultra Clean Layout Version",
		Description: "English ultra clean layout chart with layered display strategy, suitable for international presentation and analysis.",
		Button:      "View Ultra Clean (EN)",
	},
}

// ChartFile is one generated HTML file in the output directory.
type ChartFile struct {
	Name  string
	Path  string
	Bytes int64
}

// SizeMB formats the file size the way /list reports it.
func (f ChartFile) SizeMB() string {
	return fmt.Sprintf("%.1fMB", float64(f.Bytes)/1024/1024)
}

// ListCharts returns the .html files in dir sorted by name. A missing
// directory yields an empty list.
func ListCharts(dir string) ([]ChartFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ChartFile{}, nil
		}
		return nil, err
	}

	files := []ChartFile{}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".html") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, ChartFile{
			Name:  e.Name(),
			Path:  filepath.Join(dir, e.Name()),
			Bytes: info.Size(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

type listedFile struct {
	Name string `json:"name"`
	Size string `json:"size"`
}

type fileList struct {
	Files []listedFile `json:"files"`
	Total int          `json:"total"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	files, err := ListCharts(s.cfg.OutDir)
	if err != nil {
		s.log.Error("list charts", zap.Error(err))
		plainError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	out := fileList{Files: make([]listedFile, 0, len(files)), Total: len(files)}
	for _, f := range files {
		out.Files = append(out.Files, listedFile{Name: f.Name, Size: f.SizeMB()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) chartHandler(route chartRoute) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.serveChart(w, r, route.Locale, route.Variant)
	}
}

// handleChartFile serves any generated chart by file name.
func (s *Server) handleChartFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !validChartName(name) {
		fileNotFound(w)
		return
	}
	if l, v, ok := chartByName(name); ok {
		s.serveChart(w, r, l, v)
		return
	}
	s.serveFile(w, r, filepath.Join(s.cfg.OutDir, name))
}

func validChartName(name string) bool {
	return name != "" &&
		name == filepath.Base(name) &&
		!strings.HasPrefix(name, ".") &&
		!strings.ContainsAny(name, `/\`) &&
		strings.EqualFold(filepath.Ext(name), ".html")
}

// chartByName maps a fixed output file name back to its locale and variant.
func chartByName(name string) (*diagram.Locale, diagram.Variant, bool) {
	for _, l := range diagram.Locales() {
		for _, v := range diagram.Variants() {
			if l.Filename(v) == name {
				return l, v, true
			}
		}
	}
	return nil, "", false
}

func (s *Server) serveChart(w http.ResponseWriter, r *http.Request, l *diagram.Locale, v diagram.Variant) {
	path := filepath.Join(s.cfg.OutDir, l.Filename(v))
	if fileExists(path) {
		http.ServeFile(w, r, path)
		return
	}

	data, ok, err := s.renderLive(r.Context(), l, v)
	if err != nil {
		s.log.Error("live render failed",
			zap.String("locale", l.Code),
			zap.String("variant", string(v)),
			zap.Error(err),
		)
		plainError(w, "render failed", http.StatusInternalServerError)
		return
	}
	if !ok {
		s.metrics.notFound.Inc()
		fileNotFound(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) serveFile(w http.ResponseWriter, r *http.Request, path string) {
	if !fileExists(path) {
		s.metrics.notFound.Inc()
		fileNotFound(w)
		return
	}
	http.ServeFile(w, r, path)
}

// renderLive renders a chart from the locale's configured model. ok is false
// when live mode is off for the locale.
func (s *Server) renderLive(ctx context.Context, l *diagram.Locale, v diagram.Variant) (data []byte, ok bool, err error) {
	if s.cache == nil {
		return nil, false, nil
	}
	path, configured := s.cfg.Models[l.Code]
	if !configured || path == "" {
		return nil, false, nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("read model: %w", err)
	}
	data, err = s.cache.Render(ctx, render.Job{
		Source:  src,
		Format:  model.FormatForPath(path),
		Variant: v,
		Locale:  l,
	})
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *Server) liveEnabled(l *diagram.Locale) bool {
	return s.cache != nil && s.cfg.Models[l.Code] != ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

type homeCard struct {
	chartRoute
	Language  string
	Available bool
}

// HomeData is the data for the home page template.
type HomeData struct {
	Lang  string
	Title string
	Cards []homeCard
	Addr  string
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	data := HomeData{
		Lang:  "en",
		Title: "AI SD Maturity Model Visualization",
		Addr:  s.cfg.Addr,
	}
	for _, route := range chartRoutes {
		exists := fileExists(filepath.Join(s.cfg.OutDir, route.Locale.Filename(route.Variant)))
		data.Cards = append(data.Cards, homeCard{
			chartRoute: route,
			Language:   languageName(route.Locale),
			Available:  exists || s.liveEnabled(route.Locale),
		})
	}
	if err := s.templates.Render(w, "home.html", data); err != nil {
		s.log.Error("render home", zap.Error(err))
		plainError(w, "internal server error", http.StatusInternalServerError)
	}
}

func languageName(l *diagram.Locale) string {
	if l.Code == diagram.English.Code {
		return "English"
	}
	return "Chinese"
}
