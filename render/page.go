// ABOUTME: The interactive tracking page: a checkbox sidebar next to the embedded figure div.
// ABOUTME: Capability data is handed to html/template, which JSON-encodes it for the script context.
package render

import (
	"embed"
	"html/template"
	"io"

	"github.com/2389-research/fishbone/diagram"
	"github.com/2389-research/fishbone/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/interactive.html"))

// PageText is the localised sidebar copy.
type PageText struct {
	SidebarTitle string `json:"sidebarTitle"`
	SelectAll    string `json:"selectAll"`
	DeselectAll  string `json:"deselectAll"`
	SaveProgress string `json:"saveProgress"`
	Completed    string `json:"completed"`
	Saved        string `json:"saved"`
}

// PageData is everything the interactive page template needs.
type PageData struct {
	Lang         string
	Title        string
	PlotlyURL    string
	Plot         template.HTML
	Capabilities *model.CapabilityIndex
	Colors       map[string]string
	Total        int
	ProgressKey  string
	// ProgressAPI is the server endpoint mirrored on save. Empty disables syncing.
	ProgressAPI string
	Text        PageText
}

// NewPageData fills PageData for a model in a locale around an already rendered plot div.
func NewPageData(m *model.Model, l *diagram.Locale, plot template.HTML) PageData {
	colors := make(map[string]string)
	for _, c := range l.Palette(m) {
		colors[c.Name] = c.Color
	}
	return PageData{
		Lang:         l.Code,
		Title:        l.PageTitle,
		Plot:         plot,
		Capabilities: m.CapabilityIndex(),
		Colors:       colors,
		Total:        m.CapabilityCount(),
		ProgressKey:  l.ProgressKey,
		ProgressAPI:  ProgressAPIPath(l.ProgressKey),
		Text: PageText{
			SidebarTitle: l.SidebarTitle,
			SelectAll:    l.SelectAll,
			DeselectAll:  l.DeselectAll,
			SaveProgress: l.SaveProgress,
			Completed:    l.CompletedWord,
			Saved:        l.SavedMessage,
		},
	}
}

// ProgressAPIPath is the server route that stores progress under key.
func ProgressAPIPath(key string) string {
	return "/api/progress/" + key
}

// RenderInteractive writes the interactive tracking page.
func RenderInteractive(w io.Writer, data PageData) error {
	if data.PlotlyURL == "" {
		data.PlotlyURL = defaultPlotlyURL
	}
	return pageTemplate.ExecuteTemplate(w, "interactive.html", data)
}
