// ABOUTME: Locales carry every user-visible string, the category palette, and output filenames.
// ABOUTME: Two locales ship: "zh" (the model's native language) and "en".
package diagram

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/2389-research/fishbone/model"
)

// ErrUnknownLocale is returned by LocaleFor for codes that have no locale.
var ErrUnknownLocale = errors.New("unknown locale")

// Category is a capability category with its display colour. The order of a
// locale's categories is the top-to-bottom order of the branches.
type Category struct {
	Name  string
	Color string
}

// Locale holds the strings and conventions of one output language.
type Locale struct {
	Code string

	TrunkName   string
	LevelsName  string
	Titles      map[Variant]string
	XAxisTitle  string
	YAxisTitle  string
	Features    string
	Description string

	// Hover text in the basic and detailed variants.
	LevelFmt        string
	CountFmt        string
	CapabilitiesHdr string
	DimensionFmt    string

	// Reference lines.
	IndustryLabel     string
	OrganizationLabel string
	DraggableHint     string
	ReferenceHint     string

	// Capability box text in the interactive figure.
	SummaryFmt  string
	HoverHint   string
	SidebarHint string

	// Interactive page.
	PageTitle     string
	SidebarTitle  string
	SelectAll     string
	DeselectAll   string
	SaveProgress  string
	CompletedWord string
	SavedMessage  string
	ProgressKey   string

	Categories []Category

	// Defaults for reference lines, in level units.
	Reference ReferenceLines

	// File names per variant. Also the PNG download names (minus extension).
	Files map[Variant]string
}

// Filename returns the output file name of a variant in this locale.
func (l *Locale) Filename(v Variant) string {
	return l.Files[v]
}

// Color returns the palette colour for a category and whether the locale knows it.
func (l *Locale) Color(category string) (string, bool) {
	for _, c := range l.Categories {
		if c.Name == category {
			return c.Color, true
		}
	}
	return "", false
}

// Title returns the figure title of a variant.
func (l *Locale) Title(v Variant) string {
	return l.Titles[v]
}

// fallbackColors colour categories that the locale does not list.
var fallbackColors = []string{"#A29BFE", "#FD79A8", "#FDCB6E", "#74B9FF", "#55EFC4", "#E17055"}

// English is the "en" locale.
var English = &Locale{
	Code:        "en",
	TrunkName:   "AI Maturity Evolution Main Line",
	LevelsName:  "Maturity Levels",
	XAxisTitle:  "Maturity Levels",
	YAxisTitle:  "Capability Dimensions",
	Features:    "Features:",
	Description: "Description:",
	Titles: map[Variant]string{
		Basic:       "AI Maturity Model Fishbone Diagram",
		Detailed:    "AI Maturity Model Detailed Fishbone Diagram",
		Static:      "AI Maturity Model Fishbone Diagram - Static Information Display",
		Ultra:       "AI Software Delivery Capability Maturity Model Overview",
		Interactive: "AI Maturity Model Fishbone Diagram - Interactive Version (Check completed capabilities on the left)",
	},
	LevelFmt:          "Level: %s",
	CountFmt:          "Capability count: %d",
	CapabilitiesHdr:   "Capabilities:",
	DimensionFmt:      "Dimension: %s",
	IndustryLabel:     "Industry Position",
	OrganizationLabel: "Organization Position",
	DraggableHint:     "(Draggable)",
	ReferenceHint:     "(Reference)",
	SummaryFmt:        "%d capabilities",
	HoverHint:         "Hover for details",
	SidebarHint:       "See sidebar for tracking",
	PageTitle:         "AI Maturity Model Fishbone Diagram - Interactive Version",
	SidebarTitle:      "🎯 Capability Completion Tracking",
	SelectAll:         "Select All",
	DeselectAll:       "Deselect All",
	SaveProgress:      "Save Progress",
	CompletedWord:     "Completed",
	SavedMessage:      "Progress saved!",
	ProgressKey:       "ai_maturity_progress_en",
	Categories: []Category{
		{Name: "Personnel", Color: "#FF6B6B"},
		{Name: "Technical", Color: "#45B7D1"},
		{Name: "Process", Color: "#4ECDC4"},
		{Name: "Knowledge Management", Color: "#96CEB4"},
		{Name: "Governance", Color: "#FFEAA7"},
	},
	Reference: ReferenceLines{Industry: 4, Organization: 1.5},
	Files: map[Variant]string{
		Basic:       "ai_sd_maturity_basic_en.html",
		Detailed:    "ai_sd_maturity_detailed_en.html",
		Static:      "ai_sd_maturity_static_en.html",
		Ultra:       "ai_sd_maturity_ultra_en.html",
		Interactive: "ai_sd_maturity_interactive_en.html",
	},
}

// Chinese is the "zh" locale.
var Chinese = &Locale{
	Code:        "zh",
	TrunkName:   "AI成熟度演进主线",
	LevelsName:  "成熟度级别",
	XAxisTitle:  "成熟度级别",
	YAxisTitle:  "能力维度",
	Features:    "特征:",
	Description: "描述:",
	Titles: map[Variant]string{
		Basic:       "AI成熟度模型鱼骨图",
		Detailed:    "AI成熟度模型详细鱼骨图",
		Static:      "AI成熟度模型鱼骨图 - 静态信息展示版（优化布局）",
		Ultra:       "AI软件交付能力成熟度模型全景图",
		Interactive: "AI软件交付成熟度模型 - 交互式版本（左侧可勾选已完成能力）",
	},
	LevelFmt:          "级别: %s",
	CountFmt:          "能力数量: %d",
	CapabilitiesHdr:   "具体能力:",
	DimensionFmt:      "维度: %s",
	IndustryLabel:     "行业位置",
	OrganizationLabel: "组织位置",
	DraggableHint:     "(可拖拽)",
	ReferenceHint:     "(参考)",
	SummaryFmt:        "共%d项能力",
	HoverHint:         "悬停查看详情",
	SidebarHint:       "详见侧边栏",
	PageTitle:         "AI软件交付能力成熟度模型 - 交互式版本",
	SidebarTitle:      "🎯 能力完成度跟踪",
	SelectAll:         "全选",
	DeselectAll:       "全不选",
	SaveProgress:      "保存进度",
	CompletedWord:     "已完成",
	SavedMessage:      "进度已保存！",
	ProgressKey:       "ai_maturity_progress",
	Categories: []Category{
		{Name: "人员能力", Color: "#FF6B6B"},
		{Name: "流程能力", Color: "#4ECDC4"},
		{Name: "技术能力", Color: "#45B7D1"},
		{Name: "知识能力", Color: "#96CEB4"},
		{Name: "治理能力", Color: "#FFEAA7"},
	},
	Reference: ReferenceLines{Industry: 1.5, Organization: 0.5, Editable: true},
	Files: map[Variant]string{
		Basic:       "ai_sd_maturity_basic.html",
		Detailed:    "ai_sd_maturity_detailed.html",
		Static:      "ai_sd_maturity_static.html",
		Ultra:       "ai_sd_maturity_overview_ultra.html",
		Interactive: "ai_sd_maturity_interactive.html",
	},
}

var locales = map[string]*Locale{
	English.Code: English,
	Chinese.Code: Chinese,
}

// LocaleFor returns the locale for a language code such as "en" or "zh".
func LocaleFor(code string) (*Locale, error) {
	if l, ok := locales[strings.ToLower(strings.TrimSpace(code))]; ok {
		return l, nil
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownLocale, code, strings.Join(LocaleCodes(), ", "))
}

// Locales returns every locale, sorted by code.
func Locales() []*Locale {
	out := make([]*Locale, 0, len(locales))
	for _, code := range LocaleCodes() {
		out = append(out, locales[code])
	}
	return out
}

// LocaleCodes returns the available language codes, sorted.
func LocaleCodes() []string {
	codes := make([]string, 0, len(locales))
	for code := range locales {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Palette returns every category drawn for m with its colour, in branch order.
// Categories the locale does not list get fallback colours.
func (l *Locale) Palette(m *model.Model) []Category {
	bs := branches(l, m, []float64{0}, 1)
	out := make([]Category, len(bs))
	for i, b := range bs {
		out[i] = Category{Name: b.Category, Color: b.Color}
	}
	return out
}
