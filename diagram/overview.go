// ABOUTME: The wide overview layouts: static (all text on the chart), ultra, and interactive.
// ABOUTME: They share spaced-out level columns, capability boxes at branch ends, and level callouts.
package diagram

import (
	"fmt"

	"github.com/2389-research/fishbone/figure"
	"github.com/2389-research/fishbone/model"
)

// overviewSlots are the branch rows of the wide layouts. Row 0 is the trunk.
var overviewSlots = []float64{4, 2, -2, -4, -6}

func buildStatic(m *model.Model, l *Locale, opts Options) *figure.Figure {
	fig := figure.New()
	ls := levelsOf(m)
	xs := positions(len(ls), 2, 3)
	bs := branches(l, m, overviewSlots, 2)
	bottom := lowestY(bs, -8, 2)

	addTrunk(fig, l, 0, last(xs)+0.7, 4)

	titles := make([]string, len(ls))
	for i, lv := range ls {
		titles[i] = esc(lv.Title)
	}
	fig.AddTrace(&figure.Scatter{
		X:            xs,
		Y:            make([]float64, len(xs)),
		Mode:         "markers+text",
		Marker:       &figure.Marker{Size: 15, Color: "red", Symbol: "circle"},
		Text:         titles,
		TextPosition: "top center",
		TextFont:     &figure.Font{Size: 12, Color: "darkred"},
		Name:         l.LevelsName,
		ShowLegend:   figure.Bool(false),
	})

	for _, b := range bs {
		categoryLabel(fig, b, 1, 16, 2)
		for i, lv := range ls {
			caps, ok := lv.Capabilities.Get(b.Category)
			if !ok {
				continue
			}
			branchLine(fig, b, xs[i], 2)
			endPoint(fig, b, xs[i], 10)
			fig.AddAnnotation(&figure.Annotation{
				X:           xs[i],
				Y:           b.Y,
				Text:        bulletList(caps),
				Font:        &figure.Font{Size: 9, Color: "black"},
				BgColor:     "rgba(255, 255, 255, 0.95)",
				BorderColor: b.Color,
				BorderWidth: 1,
				Align:       "left",
				Width:       220,
				XAnchor:     "center",
				YAnchor:     "middle",
			})
		}
	}

	levelCallouts(fig, l, ls, xs, calloutStyle{
		Y:         7,
		AY:        -30,
		ArrowSize: 1,
		FontSize:  8,
		Width:     180,
		BgColor:   "rgba(255, 255, 255, 0.95)",
	})
	referenceLines(fig, l, xs, opts.Reference, refStyle{Y0: bottom, Y1: 10, LabelY: 8.5, LabelAY: -25, FontSize: 11})

	addTitle(fig, l.Title(Static), 22, "")
	fig.Layout.XAxis = levelAxis(l, ls, xs, 0, last(xs)+1)
	fig.Layout.YAxis = gridAxis(&figure.Axis{
		Title:          &figure.Title{Text: l.YAxisTitle},
		ShowTickLabels: figure.Bool(false),
		Range:          []float64{bottom, 10},
	})
	fig.Layout.Width = 1600
	fig.Layout.Height = 1000
	fig.Layout.ShowLegend = figure.Bool(false)
	fig.Layout.Margin = &figure.Margin{L: 80, R: 80, T: 80, B: 80}
	whiteBackground(fig)
	return fig
}

func buildUltra(m *model.Model, l *Locale, opts Options) *figure.Figure {
	fig := figure.New()
	ls := levelsOf(m)
	xs := positions(len(ls), 3, 4)
	bs := branches(l, m, overviewSlots, 2)
	bottom := lowestY(bs, -10, 2)

	addTrunk(fig, l, 0, last(xs)+2.7, 5)
	levelDiamonds(fig, l, xs)

	for _, b := range bs {
		categoryLabel(fig, b, -0.5, 20, 3)
		for i, lv := range ls {
			caps, ok := lv.Capabilities.Get(b.Category)
			if !ok {
				continue
			}
			branchLine(fig, b, xs[i], 3)
			fig.AddAnnotation(capabilityBox(b, xs[i], bulletList(caps), "left", 400))
			hoverTarget(fig, xs[i], b.Y, 80, b.Color, b.Category+"-"+lv.ID, capabilityHover(b, lv.ID, caps))
			endPoint(fig, b, xs[i], 12)
		}
	}

	levelCallouts(fig, l, ls, xs, calloutStyle{
		Y:         9,
		AY:        -40,
		ArrowSize: 1.5,
		FontSize:  9,
		Width:     200,
		Standoff:  10,
		BgColor:   "rgba(255, 248, 248, 0.98)",
		Hover:     true,
	})
	referenceLines(fig, l, xs, opts.Reference, refStyle{Y0: bottom, Y1: 12, LabelY: 11, LabelAY: -30, FontSize: 12})

	addTitle(fig, l.Title(Ultra), 24, "darkblue")
	fig.Layout.XAxis = levelAxis(l, ls, xs, -3, last(xs)+2)
	fig.Layout.XAxis.Title.Font = &figure.Font{Size: 16}
	fig.Layout.XAxis.TickFont = &figure.Font{Size: 14}
	fig.Layout.YAxis = gridAxis(&figure.Axis{
		Title:          &figure.Title{Text: l.YAxisTitle, Font: &figure.Font{Size: 16}},
		TickFont:       &figure.Font{Size: 14},
		ShowTickLabels: figure.Bool(false),
		Range:          []float64{bottom, 12},
	})
	fig.Layout.Width = 1900
	fig.Layout.Height = 1200
	fig.Layout.ShowLegend = figure.Bool(false)
	fig.Layout.Margin = &figure.Margin{L: 200, R: 100, T: 100, B: 100}
	fig.Layout.HoverLabel = arialHoverLabel()
	whiteBackground(fig)
	return fig
}

func buildInteractive(m *model.Model, l *Locale, _ Options) *figure.Figure {
	fig := figure.New()
	ls := levelsOf(m)
	xs := positions(len(ls), 2, 3.5)
	bs := branches(l, m, overviewSlots, 2)
	bottom := lowestY(bs, -8, 2)

	// The y axis title is drawn as a faint rotated annotation so it sits under the labels.
	fig.AddAnnotation(&figure.Annotation{
		X:           -2.5,
		Y:           0,
		Text:        "<b>" + l.YAxisTitle + "</b>",
		Font:        &figure.Font{Size: 14, Color: "rgba(0, 0, 0, 0.5)"},
		XAnchor:     "center",
		YAnchor:     "middle",
		TextAngle:   -90,
		BgColor:     "rgba(255, 255, 255, 0.3)",
		BorderColor: "rgba(128, 128, 128, 0.3)",
		BorderWidth: 1,
	})

	addTrunk(fig, l, -0.5, last(xs)+1.2, 5)
	levelDiamonds(fig, l, xs)

	for _, b := range bs {
		categoryLabel(fig, b, -0.3, 16, 2)
		for i, lv := range ls {
			caps, ok := lv.Capabilities.Get(b.Category)
			if !ok {
				continue
			}
			branchLine(fig, b, xs[i], 3)
			summary := fmt.Sprintf(`<b style="font-size:12px">%s</b><br><i style="font-size:10px">%s</i><br><span style="font-size:8px; color:gray">%s</span>`,
				fmt.Sprintf(l.SummaryFmt, len(caps)), l.HoverHint, l.SidebarHint)
			fig.AddAnnotation(capabilityBox(b, xs[i], summary, "center", 200))
			hoverTarget(fig, xs[i], b.Y, 60, b.Color, b.Category+"-"+lv.ID, capabilityHover(b, lv.ID, caps))
			endPoint(fig, b, xs[i], 12)
		}
	}

	levelCallouts(fig, l, ls, xs, calloutStyle{
		Y:         12,
		AY:        -40,
		ArrowSize: 1.5,
		FontSize:  9,
		Width:     160,
		Standoff:  10,
		BgColor:   "rgba(255, 248, 248, 0.98)",
		Hover:     true,
	})

	addTitle(fig, l.Title(Interactive), 18, "darkblue")
	fig.Layout.XAxis = levelAxis(l, ls, xs, -2.5, last(xs)+1.5)
	fig.Layout.XAxis.Title.Font = &figure.Font{Size: 14}
	fig.Layout.XAxis.TickFont = &figure.Font{Size: 12}
	fig.Layout.YAxis = gridAxis(&figure.Axis{
		Title:          &figure.Title{Text: ""},
		TickFont:       &figure.Font{Size: 12},
		ShowTickLabels: figure.Bool(false),
		Range:          []float64{bottom, 14},
	})
	fig.Layout.AutoSize = true
	fig.Layout.ShowLegend = figure.Bool(false)
	fig.Layout.Margin = &figure.Margin{L: 50, R: 50, T: 60, B: 40}
	fig.Layout.HoverLabel = arialHoverLabel()
	whiteBackground(fig)
	return fig
}

func levelDiamonds(fig *figure.Figure, l *Locale, xs []float64) {
	fig.AddTrace(&figure.Scatter{
		X:          xs,
		Y:          make([]float64, len(xs)),
		Mode:       "markers",
		Marker:     &figure.Marker{Size: 20, Color: "darkred", Symbol: "diamond"},
		Name:       l.LevelsName,
		ShowLegend: figure.Bool(false),
		HoverInfo:  "skip",
	})
}

func capabilityBox(b branch, x float64, text, align string, width float64) *figure.Annotation {
	return &figure.Annotation{
		X:           x,
		Y:           b.Y,
		Text:        text,
		Font:        &figure.Font{Size: 10, Color: "black"},
		BgColor:     "rgba(255, 255, 255, 0.98)",
		BorderColor: b.Color,
		BorderWidth: 2,
		Align:       align,
		Width:       width,
		XAnchor:     "center",
		YAnchor:     "middle",
	}
}
