// ABOUTME: The basic and detailed fishbone layouts: compact x = level index, hover for details.
package diagram

import (
	"fmt"
	"math"

	"github.com/2389-research/fishbone/figure"
	"github.com/2389-research/fishbone/model"
)

func buildBasic(m *model.Model, l *Locale, _ Options) *figure.Figure {
	fig := figure.New()
	ls := levelsOf(m)
	xs := positions(len(ls), 0, 1)
	bs := branches(l, m, []float64{2, 1, 0, -1, -2}, 1)

	addTrunk(fig, l, 0, last(xs)+0.8, 4)

	titles := make([]string, len(ls))
	for i, lv := range ls {
		titles[i] = esc(lv.Title)
	}
	fig.AddTrace(&figure.Scatter{
		X:             xs,
		Y:             make([]float64, len(xs)),
		Mode:          "markers+text",
		Marker:        &figure.Marker{Size: 12, Color: "red", Symbol: "circle"},
		Text:          titles,
		TextPosition:  "top center",
		Name:          l.LevelsName,
		HoverTemplate: noExtra("%{text}<br>" + fmt.Sprintf(l.LevelFmt, "%{x}")),
	})

	tickVals := make([]float64, len(bs))
	tickText := make([]string, len(bs))
	for bi, b := range bs {
		tickVals[bi], tickText[bi] = b.Y, b.Category
		first := true
		for i, lv := range ls {
			caps, ok := lv.Capabilities.Get(b.Category)
			if !ok {
				continue
			}
			fig.AddTrace(&figure.Scatter{
				X:             []float64{xs[i], xs[i]},
				Y:             []float64{0, b.Y},
				Mode:          "lines",
				Line:          &figure.Line{Color: b.Color, Width: 2},
				ShowLegend:    figure.Bool(false),
				HoverTemplate: noExtra(esc(b.Category) + "<br>" + fmt.Sprintf(l.LevelFmt, esc(lv.ID))),
			})
			hover := fmt.Sprintf("<b>%s</b><br>%s<br>%s<br><br>%s<br>%s",
				esc(b.Category),
				fmt.Sprintf(l.LevelFmt, esc(lv.ID)),
				fmt.Sprintf(l.CountFmt, len(caps)),
				l.CapabilitiesHdr,
				bulletList(caps))
			pt := &figure.Scatter{
				X:             []float64{xs[i]},
				Y:             []float64{b.Y},
				Mode:          "markers",
				Marker:        &figure.Marker{Size: 8, Color: b.Color},
				ShowLegend:    figure.Bool(first),
				HoverTemplate: noExtra(hover),
			}
			if first {
				pt.Name = b.Category
			}
			fig.AddTrace(pt)
			first = false
		}
		fig.AddAnnotation(&figure.Annotation{
			X:       -0.5,
			Y:       b.Y,
			Text:    esc(b.Category),
			Font:    &figure.Font{Size: 12, Color: b.Color},
			XAnchor: "right",
		})
	}

	addTitle(fig, l.Title(Basic), 20, "")
	fig.Layout.XAxis = levelAxis(l, ls, xs, -1, math.Max(6, last(xs)+2))
	fig.Layout.YAxis = gridAxis(&figure.Axis{
		Title:    &figure.Title{Text: l.YAxisTitle},
		TickMode: "array",
		TickVals: tickVals,
		TickText: tickText,
		Range:    []float64{lowestY(bs, -3, 1), 3},
	})
	fig.Layout.Width = 1200
	fig.Layout.Height = 800
	fig.Layout.ShowLegend = figure.Bool(true)
	fig.Layout.Legend = &figure.Legend{
		X:           1.02,
		Y:           1,
		BgColor:     "rgba(255, 255, 255, 0.8)",
		BorderColor: "rgba(0, 0, 0, 0.2)",
		BorderWidth: 1,
	}
	whiteBackground(fig)
	return fig
}

func buildDetailed(m *model.Model, l *Locale, _ Options) *figure.Figure {
	fig := figure.New()
	ls := levelsOf(m)
	xs := positions(len(ls), 0, 1)
	bs := branches(l, m, []float64{2.5, 1.2, 0, -1.2, -2.5}, 1.3)

	addTrunk(fig, l, 0, last(xs)+0.8, 5)

	for i, lv := range ls {
		fig.AddTrace(&figure.Scatter{
			X:            []float64{xs[i]},
			Y:            []float64{0},
			Mode:         "markers+text",
			Marker:       &figure.Marker{Size: 15, Color: "darkred", Symbol: "diamond"},
			Text:         []string{lv.ID},
			TextPosition: "top center",
			Name:         fmt.Sprintf(l.LevelFmt, lv.ID),
			HoverTemplate: noExtra(fmt.Sprintf("<b>%s</b><br>%s<br><br>%s %s",
				esc(lv.Title), esc(lv.Description), l.Features, esc(lv.Features.String()))),
		})

		for _, b := range bs {
			caps, ok := lv.Capabilities.Get(b.Category)
			if !ok {
				continue
			}
			branchLine(fig, b, xs[i], 3)
			n := float64(len(caps))
			for j, c := range caps {
				subY := b.Y + (float64(j)-n/2)*0.3*0.3
				fig.AddTrace(&figure.Scatter{
					X:          []float64{xs[i], xs[i] + 0.3},
					Y:          []float64{b.Y, subY},
					Mode:       "lines",
					Line:       &figure.Line{Color: b.Color, Width: 1},
					ShowLegend: figure.Bool(false),
					HoverInfo:  "skip",
				})
				fig.AddTrace(&figure.Scatter{
					X:          []float64{xs[i] + 0.3},
					Y:          []float64{subY},
					Mode:       "markers",
					Marker:     &figure.Marker{Size: 6, Color: b.Color},
					ShowLegend: figure.Bool(false),
					HoverTemplate: noExtra(fmt.Sprintf("<b>%s</b><br>%s<br>%s",
						esc(c), fmt.Sprintf(l.DimensionFmt, esc(b.Category)), fmt.Sprintf(l.LevelFmt, esc(lv.ID)))),
				})
			}
		}
	}

	for _, b := range bs {
		fig.AddAnnotation(&figure.Annotation{
			X:          -0.5,
			Y:          b.Y,
			Text:       "<b>" + esc(b.Category) + "</b>",
			ShowArrow:  true,
			ArrowHead:  2,
			ArrowColor: b.Color,
			Font:       &figure.Font{Size: 14, Color: b.Color},
			XAnchor:    "right",
		})
	}

	addTitle(fig, l.Title(Detailed), 22, "")
	fig.Layout.XAxis = levelAxis(l, ls, xs, -1, math.Max(6, last(xs)+2))
	fig.Layout.YAxis = &figure.Axis{
		Title: &figure.Title{Text: l.YAxisTitle},
		Range: []float64{lowestY(bs, -3.5, 1), 3.5},
	}
	fig.Layout.Width = 1400
	fig.Layout.Height = 1000
	fig.Layout.ShowLegend = figure.Bool(false)
	whiteBackground(fig)
	return fig
}
