// ABOUTME: Typed subset of the Plotly.js figure schema used by the fishbone diagrams.
// ABOUTME: Figures marshal to the exact JSON Plotly.newPlot expects, omitting unset attributes.
package figure

// Figure is a Plotly figure: a list of traces plus a layout.
type Figure struct {
	Data   []*Scatter `json:"data"`
	Layout *Layout    `json:"layout"`
}

// New returns an empty figure with an initialized layout.
func New() *Figure {
	return &Figure{Data: []*Scatter{}, Layout: &Layout{}}
}

// AddTrace appends a trace and returns it for further tweaking.
func (f *Figure) AddTrace(t *Scatter) *Scatter {
	if t.Type == "" {
		t.Type = "scatter"
	}
	f.Data = append(f.Data, t)
	return t
}

// AddAnnotation appends an annotation to the layout.
func (f *Figure) AddAnnotation(a *Annotation) *Annotation {
	f.Layout.Annotations = append(f.Layout.Annotations, a)
	return a
}

// AddShape appends a shape to the layout.
func (f *Figure) AddShape(s *Shape) *Shape {
	f.Layout.Shapes = append(f.Layout.Shapes, s)
	return s
}

// Scatter is a scatter trace. Mode selects lines, markers, text, or a "+" combination.
type Scatter struct {
	Type          string    `json:"type"`
	X             []float64 `json:"x"`
	Y             []float64 `json:"y"`
	Mode          string    `json:"mode,omitempty"`
	Name          string    `json:"name,omitempty"`
	Text          []string  `json:"text,omitempty"`
	TextPosition  string    `json:"textposition,omitempty"`
	TextFont      *Font     `json:"textfont,omitempty"`
	Line          *Line     `json:"line,omitempty"`
	Marker        *Marker   `json:"marker,omitempty"`
	ShowLegend    *bool     `json:"showlegend,omitempty"`
	HoverInfo     string    `json:"hoverinfo,omitempty"`
	HoverTemplate string    `json:"hovertemplate,omitempty"`
}

// Line styles a trace line or a shape outline.
type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
	Dash  string  `json:"dash,omitempty"`
}

// Marker styles scatter markers. Opacity is a pointer so an explicit 0 survives.
type Marker struct {
	Size    float64  `json:"size,omitempty"`
	Color   string   `json:"color,omitempty"`
	Symbol  string   `json:"symbol,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`
}

// Font styles text.
type Font struct {
	Size   float64 `json:"size,omitempty"`
	Color  string  `json:"color,omitempty"`
	Family string  `json:"family,omitempty"`
}

// Annotation is a text box placed in data coordinates, optionally with an arrow.
type Annotation struct {
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Text        string   `json:"text"`
	ShowArrow   bool     `json:"showarrow"`
	ArrowHead   int      `json:"arrowhead,omitempty"`
	ArrowSize   float64  `json:"arrowsize,omitempty"`
	ArrowColor  string   `json:"arrowcolor,omitempty"`
	ArrowWidth  float64  `json:"arrowwidth,omitempty"`
	AX          *float64 `json:"ax,omitempty"`
	AY          *float64 `json:"ay,omitempty"`
	Font        *Font    `json:"font,omitempty"`
	BgColor     string   `json:"bgcolor,omitempty"`
	BorderColor string   `json:"bordercolor,omitempty"`
	BorderWidth float64  `json:"borderwidth,omitempty"`
	Align       string   `json:"align,omitempty"`
	Width       float64  `json:"width,omitempty"`
	XAnchor     string   `json:"xanchor,omitempty"`
	YAnchor     string   `json:"yanchor,omitempty"`
	TextAngle   float64  `json:"textangle,omitempty"`
	Standoff    float64  `json:"standoff,omitempty"`
}

// Shape is a layout shape. Only straight lines are used.
type Shape struct {
	Type     string  `json:"type"`
	X0       float64 `json:"x0"`
	Y0       float64 `json:"y0"`
	X1       float64 `json:"x1"`
	Y1       float64 `json:"y1"`
	Line     *Line   `json:"line,omitempty"`
	Editable bool    `json:"editable"`
	Name     string  `json:"name,omitempty"`
}

// Title is a layout or axis title.
type Title struct {
	Text    string  `json:"text"`
	X       float64 `json:"x,omitempty"`
	XAnchor string  `json:"xanchor,omitempty"`
	Font    *Font   `json:"font,omitempty"`
}

// Axis configures an x or y axis.
type Axis struct {
	Title          *Title    `json:"title,omitempty"`
	TickMode       string    `json:"tickmode,omitempty"`
	TickVals       []float64 `json:"tickvals,omitempty"`
	TickText       []string  `json:"ticktext,omitempty"`
	TickFont       *Font     `json:"tickfont,omitempty"`
	ShowTickLabels *bool     `json:"showticklabels,omitempty"`
	Range          []float64 `json:"range,omitempty"`
	ShowGrid       *bool     `json:"showgrid,omitempty"`
	GridColor      string    `json:"gridcolor,omitempty"`
	GridWidth      float64   `json:"gridwidth,omitempty"`
}

// Margin is the plot margin in pixels.
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Legend positions the legend box.
type Legend struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	BgColor     string  `json:"bgcolor,omitempty"`
	BorderColor string  `json:"bordercolor,omitempty"`
	BorderWidth float64 `json:"borderwidth,omitempty"`
}

// HoverLabel styles hover tooltips.
type HoverLabel struct {
	BgColor     string `json:"bgcolor,omitempty"`
	BorderColor string `json:"bordercolor,omitempty"`
	Font        *Font  `json:"font,omitempty"`
}

// Layout is the figure layout.
type Layout struct {
	Title        *Title        `json:"title,omitempty"`
	XAxis        *Axis         `json:"xaxis,omitempty"`
	YAxis        *Axis         `json:"yaxis,omitempty"`
	Width        int           `json:"width,omitempty"`
	Height       int           `json:"height,omitempty"`
	AutoSize     bool          `json:"autosize,omitempty"`
	ShowLegend   *bool         `json:"showlegend,omitempty"`
	Legend       *Legend       `json:"legend,omitempty"`
	PlotBgColor  string        `json:"plot_bgcolor,omitempty"`
	PaperBgColor string        `json:"paper_bgcolor,omitempty"`
	Margin       *Margin       `json:"margin,omitempty"`
	HoverMode    string        `json:"hovermode,omitempty"`
	HoverLabel   *HoverLabel   `json:"hoverlabel,omitempty"`
	Shapes       []*Shape      `json:"shapes,omitempty"`
	Annotations  []*Annotation `json:"annotations,omitempty"`
}

// ImageOptions configures the PNG download button.
type ImageOptions struct {
	Format   string `json:"format"`
	Filename string `json:"filename"`
	Height   int    `json:"height"`
	Width    int    `json:"width"`
	Scale    int    `json:"scale"`
}

// Config is the Plotly.newPlot config object.
type Config struct {
	Editable               bool          `json:"editable"`
	StaticPlot             bool          `json:"staticPlot"`
	DisplayModeBar         *bool         `json:"displayModeBar,omitempty"`
	DisplayLogo            *bool         `json:"displaylogo,omitempty"`
	Responsive             bool          `json:"responsive"`
	ModeBarButtonsToRemove []string      `json:"modeBarButtonsToRemove,omitempty"`
	ToImageButtonOptions   *ImageOptions `json:"toImageButtonOptions,omitempty"`
}

// Bool returns a pointer to b, for the optional boolean attributes.
func Bool(b bool) *bool { return &b }

// Float returns a pointer to f, for attributes where zero is meaningful.
func Float(f float64) *float64 { return &f }
