// ABOUTME: HTML export for figures: a standalone document or an embeddable div plus script.
// ABOUTME: Mirrors what Plotly's own exporter emits, with plotly.js loaded from the CDN.
package figure

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/google/uuid"
)

// DefaultPlotlyURL is the plotly.js bundle referenced by exported pages.
const DefaultPlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

// HTMLOptions controls figure export.
type HTMLOptions struct {
	// DivID is the id of the plot div. A fresh UUID is used when empty.
	DivID string
	// Title is the document <title> for WriteHTML.
	Title string
	// PlotlyURL overrides DefaultPlotlyURL.
	PlotlyURL string
	// IncludePlotlyJS adds the plotly.js <script> tag to the div output. WriteHTML
	// always loads it in <head>.
	IncludePlotlyJS bool
	Config          Config
}

var divTemplate = template.Must(template.New("div").Parse(
	`{{if .IncludeJS}}<script charset="utf-8" src="{{.PlotlyURL}}"></script>
{{end}}<div id="{{.DivID}}" class="plotly-graph-div" style="{{.Style}}"></div>
<script type="text/javascript">
  window.PLOTLYENV = window.PLOTLYENV || {};
  if (document.getElementById({{.DivID}})) {
    Plotly.newPlot({{.DivID}}, {{.Data}}, {{.Layout}}, {{.Config}});
  }
</script>`))

var docTemplate = template.Must(template.New("doc").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8" />
  <title>{{.Title}}</title>
  <script charset="utf-8" src="{{.PlotlyURL}}"></script>
</head>
<body>
  <div>
{{.Div}}
  </div>
</body>
</html>
`))

type divData struct {
	IncludeJS bool
	PlotlyURL string
	DivID     string
	Style     template.CSS
	Data      template.JS
	Layout    template.JS
	Config    template.JS
}

// WriteDiv writes the plot div and the script that draws it. The caller's page
// must load plotly.js unless IncludePlotlyJS is set.
func WriteDiv(w io.Writer, fig *Figure, opts HTMLOptions) error {
	d, err := newDivData(fig, opts)
	if err != nil {
		return err
	}
	d.IncludeJS = opts.IncludePlotlyJS
	return divTemplate.Execute(w, d)
}

// Div renders WriteDiv into a template.HTML value for embedding in other templates.
func Div(fig *Figure, opts HTMLOptions) (template.HTML, error) {
	var buf bytes.Buffer
	if err := WriteDiv(&buf, fig, opts); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// WriteHTML writes a complete standalone HTML document for the figure.
func WriteHTML(w io.Writer, fig *Figure, opts HTMLOptions) error {
	opts.IncludePlotlyJS = false
	div, err := Div(fig, opts)
	if err != nil {
		return err
	}
	title := opts.Title
	if title == "" && fig.Layout != nil && fig.Layout.Title != nil {
		title = fig.Layout.Title.Text
	}
	return docTemplate.Execute(w, struct {
		Title     string
		PlotlyURL string
		Div       template.HTML
	}{
		Title:     title,
		PlotlyURL: plotlyURL(opts),
		Div:       div,
	})
}

func newDivData(fig *Figure, opts HTMLOptions) (divData, error) {
	if fig == nil {
		return divData{}, fmt.Errorf("nil figure")
	}
	data, err := json.Marshal(fig.Data)
	if err != nil {
		return divData{}, fmt.Errorf("marshal traces: %w", err)
	}
	layout, err := json.Marshal(fig.Layout)
	if err != nil {
		return divData{}, fmt.Errorf("marshal layout: %w", err)
	}
	config, err := json.Marshal(opts.Config)
	if err != nil {
		return divData{}, fmt.Errorf("marshal config: %w", err)
	}

	id := opts.DivID
	if id == "" {
		id = uuid.NewString()
	}

	return divData{
		PlotlyURL: plotlyURL(opts),
		DivID:     id,
		Style:     template.CSS(divStyle(fig.Layout)),
		Data:      template.JS(data),
		Layout:    template.JS(layout),
		Config:    template.JS(config),
	}, nil
}

func plotlyURL(opts HTMLOptions) string {
	if opts.PlotlyURL != "" {
		return opts.PlotlyURL
	}
	return DefaultPlotlyURL
}

// divStyle sizes the div to a fixed-size layout, or lets it fill its container.
func divStyle(l *Layout) string {
	if l == nil || l.AutoSize || l.Width == 0 || l.Height == 0 {
		return "height:100%; width:100%;"
	}
	return fmt.Sprintf("height:%dpx; width:%dpx;", l.Height, l.Width)
}
