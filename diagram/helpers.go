// ABOUTME: Layout helpers shared by the variant builders: slots, trunk, callouts, reference lines.
// ABOUTME: All model text passes through esc before it reaches a Plotly label.
package diagram

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/2389-research/fishbone/figure"
	"github.com/2389-research/fishbone/model"
)

// branch is one category row of the fishbone.
type branch struct {
	Category string
	Color    string
	Y        float64
}

// branches assigns a y slot to every category. The locale's categories take
// the base slots in order; categories only the model knows continue downward
// by step with fallback colours.
func branches(l *Locale, m *model.Model, base []float64, step float64) []branch {
	out := make([]branch, 0, len(l.Categories))
	for i, c := range l.Categories {
		y := nextSlot(base, step, i)
		out = append(out, branch{Category: c.Name, Color: c.Color, Y: y})
	}
	extra := 0
	for _, cat := range m.Categories() {
		if _, ok := l.Color(cat); ok {
			continue
		}
		out = append(out, branch{
			Category: cat,
			Color:    fallbackColors[extra%len(fallbackColors)],
			Y:        nextSlot(base, step, len(l.Categories)+extra),
		})
		extra++
	}
	return out
}

func nextSlot(base []float64, step float64, i int) float64 {
	if i < len(base) {
		return base[i]
	}
	return base[len(base)-1] - step*float64(i-len(base)+1)
}

// lowestY returns the lower y range bound, extended to fit every branch.
func lowestY(bs []branch, floor, pad float64) float64 {
	for _, b := range bs {
		floor = math.Min(floor, b.Y-pad)
	}
	return floor
}

// positions returns n evenly spaced x coordinates.
func positions(n int, start, step float64) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = start + float64(i)*step
	}
	return xs
}

func last(xs []float64) float64 { return xs[len(xs)-1] }

// levelInfo pairs a level identifier with its record, in model order.
type levelInfo struct {
	ID string
	model.Level
}

func levelsOf(m *model.Model) []levelInfo {
	out := make([]levelInfo, 0, m.Levels.Len())
	m.Levels.Range(func(id string, lvl model.Level) bool {
		out = append(out, levelInfo{ID: id, Level: lvl})
		return true
	})
	return out
}

// esc escapes model text for Plotly labels. "%{" becomes "%&#123;" so hover
// templates show it literally instead of substituting a trace field.
func esc(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "%{", "%&#123;")
}

// bulletList renders capabilities as "• item" lines.
func bulletList(caps []string) string {
	lines := make([]string, len(caps))
	for i, c := range caps {
		lines[i] = "• " + esc(c)
	}
	return strings.Join(lines, "<br>")
}

// noExtra closes a hovertemplate without the secondary trace-name box.
func noExtra(s string) string { return s + "<extra></extra>" }

func addTrunk(fig *figure.Figure, l *Locale, x0, x1, width float64) {
	fig.AddTrace(&figure.Scatter{
		X:          []float64{x0, x1},
		Y:          []float64{0, 0},
		Mode:       "lines",
		Line:       &figure.Line{Color: "black", Width: width},
		Name:       l.TrunkName,
		ShowLegend: figure.Bool(false),
		HoverInfo:  "skip",
	})
	fig.AddAnnotation(&figure.Annotation{
		X:       x1,
		Y:       0,
		Text:    "▶",
		Font:    &figure.Font{Size: 20, Color: "black"},
		XAnchor: "left",
		YAnchor: "middle",
	})
}

func addTitle(fig *figure.Figure, text string, size float64, color string) {
	fig.Layout.Title = &figure.Title{
		Text:    text,
		X:       0.5,
		XAnchor: "center",
		Font:    &figure.Font{Size: size, Color: color},
	}
}

func gridAxis(a *figure.Axis) *figure.Axis {
	a.ShowGrid = figure.Bool(true)
	a.GridColor = "lightgray"
	a.GridWidth = 1
	return a
}

func levelAxis(l *Locale, ls []levelInfo, xs []float64, lo, hi float64) *figure.Axis {
	ids := make([]string, len(ls))
	for i, lv := range ls {
		ids[i] = lv.ID
	}
	return gridAxis(&figure.Axis{
		Title:    &figure.Title{Text: l.XAxisTitle},
		TickMode: "array",
		TickVals: xs,
		TickText: ids,
		Range:    []float64{lo, hi},
	})
}

// categoryLabel draws the boxed category name at the left end of a branch.
func categoryLabel(fig *figure.Figure, b branch, x, size, border float64) {
	fig.AddAnnotation(&figure.Annotation{
		X:           x,
		Y:           b.Y,
		Text:        "<b>" + esc(b.Category) + "</b>",
		Font:        &figure.Font{Size: size, Color: b.Color},
		XAnchor:     "right",
		YAnchor:     "middle",
		BgColor:     "rgba(255, 255, 255, 0.95)",
		BorderColor: b.Color,
		BorderWidth: border,
	})
}

func branchLine(fig *figure.Figure, b branch, x, width float64) {
	fig.AddTrace(&figure.Scatter{
		X:          []float64{x, x},
		Y:          []float64{0, b.Y},
		Mode:       "lines",
		Line:       &figure.Line{Color: b.Color, Width: width},
		ShowLegend: figure.Bool(false),
		HoverInfo:  "skip",
	})
}

func endPoint(fig *figure.Figure, b branch, x, size float64) {
	fig.AddTrace(&figure.Scatter{
		X:          []float64{x},
		Y:          []float64{b.Y},
		Mode:       "markers",
		Marker:     &figure.Marker{Size: size, Color: b.Color},
		ShowLegend: figure.Bool(false),
		HoverInfo:  "skip",
	})
}

// hoverTarget is an invisible marker that carries a hover template over an
// annotation, since annotations themselves cannot show hover text.
func hoverTarget(fig *figure.Figure, x, y, size float64, color, name, text string) {
	fig.AddTrace(&figure.Scatter{
		X:             []float64{x},
		Y:             []float64{y},
		Mode:          "markers",
		Marker:        &figure.Marker{Size: size, Color: color, Opacity: figure.Float(0)},
		Name:          name,
		ShowLegend:    figure.Bool(false),
		HoverTemplate: noExtra(text),
	})
}

func capabilityHover(b branch, levelID string, caps []string) string {
	return fmt.Sprintf("<b>%s - %s</b><br><br>%s", esc(b.Category), esc(levelID), bulletList(caps))
}

// calloutStyle tunes the level description boxes above the trunk.
type calloutStyle struct {
	Y         float64
	AY        float64
	ArrowSize float64
	FontSize  float64
	Width     float64
	Standoff  float64
	BgColor   string
	Hover     bool
}

// levelCallouts draws one description box per level, pointing down at y.
func levelCallouts(fig *figure.Figure, l *Locale, ls []levelInfo, xs []float64, st calloutStyle) {
	for i, lv := range ls {
		title := "<b>" + esc(lv.Title) + "</b>"
		if st.Hover {
			hover := fmt.Sprintf("%s<br><br><b>%s</b><br>%s<br><br><b>%s</b><br>%s",
				title, l.Description, esc(lv.Description), l.Features, esc(lv.Features.String()))
			hoverTarget(fig, xs[i], st.Y, 50, "darkred", "Level-"+lv.ID, hover)
		}
		fig.AddAnnotation(&figure.Annotation{
			X:           xs[i],
			Y:           st.Y,
			Text:        fmt.Sprintf("%s<br><br>%s<br><br><b>%s</b> %s", title, esc(lv.Description), l.Features, esc(lv.Features.String())),
			ShowArrow:   true,
			ArrowHead:   2,
			ArrowSize:   st.ArrowSize,
			ArrowColor:  "darkred",
			ArrowWidth:  2,
			AX:          figure.Float(0),
			AY:          figure.Float(st.AY),
			Font:        &figure.Font{Size: st.FontSize, Color: "darkred"},
			BgColor:     st.BgColor,
			BorderColor: "darkred",
			BorderWidth: 2,
			Align:       "left",
			Width:       st.Width,
			Standoff:    st.Standoff,
		})
	}
}

// levelX maps a fractional level position onto the x axis, clamped to the
// levels present.
func levelX(xs []float64, pos float64) float64 {
	maxPos := float64(len(xs) - 1)
	pos = math.Max(0, math.Min(pos, maxPos))
	i := int(math.Floor(pos))
	if i >= len(xs)-1 {
		return xs[len(xs)-1]
	}
	frac := pos - float64(i)
	return xs[i] + frac*(xs[i+1]-xs[i])
}

// refStyle tunes the reference lines and their labels.
type refStyle struct {
	Y0, Y1   float64
	LabelY   float64
	LabelAY  float64
	FontSize float64
}

func referenceLines(fig *figure.Figure, l *Locale, xs []float64, ref ReferenceLines, st refStyle) {
	hint := l.ReferenceHint
	if ref.Editable {
		hint = l.DraggableHint
	}
	lines := []struct {
		pos   float64
		label string
		color string
	}{
		{ref.Industry, l.IndustryLabel, "orange"},
		{ref.Organization, l.OrganizationLabel, "purple"},
	}
	for _, rl := range lines {
		x := levelX(xs, rl.pos)
		fig.AddShape(&figure.Shape{
			Type:     "line",
			X0:       x,
			Y0:       st.Y0,
			X1:       x,
			Y1:       st.Y1,
			Line:     &figure.Line{Color: rl.color, Width: 3, Dash: "dash"},
			Editable: ref.Editable,
			Name:     rl.label,
		})
		fig.AddAnnotation(&figure.Annotation{
			X:           x,
			Y:           st.LabelY,
			Text:        fmt.Sprintf("<b>%s</b><br>%s", rl.label, hint),
			ShowArrow:   true,
			ArrowHead:   2,
			ArrowColor:  rl.color,
			AX:          figure.Float(0),
			AY:          figure.Float(st.LabelAY),
			Font:        &figure.Font{Size: st.FontSize, Color: rl.color},
			BgColor:     "rgba(255, 255, 255, 0.9)",
			BorderColor: rl.color,
			BorderWidth: 2,
		})
	}
}

func whiteBackground(fig *figure.Figure) {
	fig.Layout.PlotBgColor = "white"
	fig.Layout.PaperBgColor = "white"
	fig.Layout.HoverMode = "closest"
}

func arialHoverLabel() *figure.HoverLabel {
	return &figure.HoverLabel{
		BgColor:     "white",
		BorderColor: "gray",
		Font:        &figure.Font{Size: 12, Family: "Arial"},
	}
}
