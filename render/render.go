// ABOUTME: Renders a maturity model as the HTML page of one diagram variant in one locale.
// ABOUTME: The interactive variant is wrapped in the tracking page; the rest are standalone figures.
package render

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/2389-research/fishbone/diagram"
	"github.com/2389-research/fishbone/figure"
	"github.com/2389-research/fishbone/model"
)

const defaultPlotlyURL = figure.DefaultPlotlyURL

// Options tweaks page output.
type Options struct {
	// PlotlyURL overrides the plotly.js bundle location.
	PlotlyURL string
	// Diagram overrides the locale's default diagram options when set.
	Diagram *diagram.Options
	// DivID fixes the plot div id; a fresh UUID is used when empty.
	DivID string
}

// WriteChart renders variant v of m in locale l to w.
func WriteChart(w io.Writer, m *model.Model, v diagram.Variant, l *diagram.Locale, opts Options) error {
	if l == nil {
		return fmt.Errorf("render %s: %w", v, diagram.ErrUnknownLocale)
	}
	dopts := diagram.DefaultOptions(l)
	if opts.Diagram != nil {
		dopts = *opts.Diagram
	}
	fig, err := diagram.BuildWithOptions(v, m, l, dopts)
	if err != nil {
		return fmt.Errorf("render %s: %w", v, err)
	}

	html := figure.HTMLOptions{
		DivID:     opts.DivID,
		Title:     l.Title(v),
		PlotlyURL: opts.PlotlyURL,
		Config:    v.Config(l),
	}
	if v != diagram.Interactive {
		return figure.WriteHTML(w, fig, html)
	}

	div, err := figure.Div(fig, html)
	if err != nil {
		return fmt.Errorf("render %s: %w", v, err)
	}
	page := NewPageData(m, l, div)
	page.PlotlyURL = opts.PlotlyURL
	return RenderInteractive(w, page)
}

// Chart is WriteChart into a byte slice.
func Chart(m *model.Model, v diagram.Variant, l *diagram.Locale, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteChart(&buf, m, v, l, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Source is a RenderFunc that parses the job's model source and renders it.
func Source(ctx context.Context, job Job) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := model.Parse(job.Source, job.Format)
	if err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}
	return Chart(m, job.Variant, job.Locale, Options{})
}
