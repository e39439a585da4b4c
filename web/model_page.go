// ABOUTME: /model renders the configured maturity model as a readable page.
package web

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/2389-research/fishbone/diagram"
	"github.com/2389-research/fishbone/model"
)

type categoryView struct {
	Name  string
	Color string
	Items []string
}

type levelView struct {
	ID          string
	Title       string
	Description string
	Features    string
	Categories  []categoryView
}

// ModelPageData is the data for the model page template.
type ModelPageData struct {
	Lang             string
	Title            string
	Source           string
	DescriptionLabel string
	FeaturesLabel    string
	Levels           []levelView
}

func (s *Server) handleModel(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("lang")
	if code == "" {
		code = diagram.Chinese.Code
		if s.cfg.Models[code] == "" {
			code = diagram.English.Code
		}
	}
	l, err := diagram.LocaleFor(code)
	if err != nil {
		plainError(w, err.Error(), http.StatusBadRequest)
		return
	}
	path := s.cfg.Models[l.Code]
	if path == "" {
		plainError(w, "Model not configured", http.StatusNotFound)
		return
	}

	m, err := model.Load(path)
	if err != nil {
		s.log.Error("load model", zap.String("path", path), zap.Error(err))
		plainError(w, "model could not be loaded", http.StatusInternalServerError)
		return
	}

	if err := s.templates.Render(w, "model.html", newModelPageData(m, l, path)); err != nil {
		s.log.Error("render model page", zap.Error(err))
		plainError(w, "internal server error", http.StatusInternalServerError)
	}
}

func newModelPageData(m *model.Model, l *diagram.Locale, source string) ModelPageData {
	colors := make(map[string]string)
	for _, c := range l.Palette(m) {
		colors[c.Name] = c.Color
	}

	data := ModelPageData{
		Lang:             l.Code,
		Title:            l.Title(diagram.Ultra),
		Source:           source,
		DescriptionLabel: l.Description,
		FeaturesLabel:    l.Features,
	}
	for _, id := range m.LevelIDs() {
		lvl, _ := m.Level(id)
		view := levelView{
			ID:          id,
			Title:       lvl.Title,
			Description: lvl.Description,
			Features:    lvl.Features.String(),
		}
		if lvl.Capabilities != nil {
			lvl.Capabilities.Range(func(cat string, items []string) bool {
				view.Categories = append(view.Categories, categoryView{Name: cat, Color: colors[cat], Items: items})
				return true
			})
		}
		data.Levels = append(data.Levels, view)
	}
	return data
}
