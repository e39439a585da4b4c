// ABOUTME: Tests for chart page rendering and the interactive tracking page template.
package render

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/2389-research/fishbone/diagram"
	"github.com/2389-research/fishbone/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hostileModel = `{
  "levels": {
    "L1": {"title": "One", "description": "d", "features": "f",
      "capabilities": {"Personnel": ["</script><b>boom</b>", "Pairing"], "Security": ["Scanning"]}}
  }
}`

func loadEnglish(t *testing.T) *model.Model {
	t.Helper()
	m, err := model.Load("../resource/model_of_level_en.json")
	require.NoError(t, err)
	return m
}

func TestChartStandaloneVariants(t *testing.T) {
	m := loadEnglish(t)
	for _, v := range []diagram.Variant{diagram.Basic, diagram.Detailed, diagram.Static, diagram.Ultra} {
		out, err := Chart(m, v, diagram.English, Options{DivID: "chart"})
		require.NoError(t, err, v)

		page := string(out)
		assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"), v)
		assert.Contains(t, page, "<title>"+diagram.English.Title(v)+"</title>")
		assert.Contains(t, page, `Plotly.newPlot("chart"`)
		assert.NotContains(t, page, "capabilities-container")
	}
}

func TestChartInteractivePage(t *testing.T) {
	m := loadEnglish(t)
	out, err := Chart(m, diagram.Interactive, diagram.English, Options{DivID: "plot", PlotlyURL: "https://example.test/plotly.js"})
	require.NoError(t, err)

	page := string(out)
	assert.Contains(t, page, `<html lang="en">`)
	assert.Contains(t, page, "<title>AI Maturity Model Fishbone Diagram - Interactive Version</title>")
	assert.Contains(t, page, `<script charset="utf-8" src="https://example.test/plotly.js"></script>`)
	assert.Contains(t, page, "🎯 Capability Completion Tracking")
	assert.Contains(t, page, ">Select All</button>")
	assert.Contains(t, page, ">Deselect All</button>")
	assert.Contains(t, page, ">Save Progress</button>")
	assert.Contains(t, page, "Completed: 0 / 43 (0%)")
	assert.Contains(t, page, `const storageKey = "ai_maturity_progress_en";`)
	assert.Contains(t, page, `<div id="plot" class="plotly-graph-div"`)
	assert.Contains(t, page, `"Personnel":{"L1":[`)
	assert.Equal(t, 1, strings.Count(page, "plotly.js\"></script>"), "plotly.js must be loaded once")
}

func TestChartInteractiveChinese(t *testing.T) {
	m, err := model.Load("../resource/model_of_level.json")
	require.NoError(t, err)

	out, err := Chart(m, diagram.Interactive, diagram.Chinese, Options{})
	require.NoError(t, err)

	page := string(out)
	assert.Contains(t, page, `<html lang="zh">`)
	assert.Contains(t, page, "🎯 能力完成度跟踪")
	assert.Contains(t, page, `const storageKey = "ai_maturity_progress";`)
	assert.Contains(t, page, ">全选</button>")
}

func TestInteractivePageEscapesModelText(t *testing.T) {
	m, err := model.Parse([]byte(hostileModel), model.FormatJSON)
	require.NoError(t, err)

	out, err := Chart(m, diagram.Interactive, diagram.English, Options{})
	require.NoError(t, err)

	page := string(out)
	assert.NotContains(t, page, "</script><b>boom")
	assert.Contains(t, page, "Completed: 0 / 3 (0%)")
	// Unknown categories still get a colour for the sidebar border.
	assert.Contains(t, page, `"Security":"#A29BFE"`)
}

func TestWriteChartErrors(t *testing.T) {
	m := loadEnglish(t)

	_, err := Chart(m, "sketch", diagram.English, Options{})
	assert.True(t, errors.Is(err, diagram.ErrUnknownVariant))

	_, err = Chart(m, diagram.Ultra, nil, Options{})
	assert.True(t, errors.Is(err, diagram.ErrUnknownLocale))
}

func TestChartHonoursDiagramOptions(t *testing.T) {
	m := loadEnglish(t)
	opts := diagram.Options{Reference: diagram.ReferenceLines{Industry: 0, Organization: 0, Editable: true}}
	out, err := Chart(m, diagram.Ultra, diagram.English, Options{Diagram: &opts})
	require.NoError(t, err)
	assert.Contains(t, string(out), "(Draggable)")
}

func TestSourceRendersFromBytes(t *testing.T) {
	data, err := os.ReadFile("../resource/model_of_level_en.json")
	require.NoError(t, err)

	out, err := Source(context.Background(), Job{Source: data, Format: model.FormatJSON, Variant: diagram.Ultra, Locale: diagram.English})
	require.NoError(t, err)
	assert.Contains(t, string(out), diagram.English.Title(diagram.Ultra))

	_, err = Source(context.Background(), Job{Source: []byte("{"), Format: model.FormatJSON, Variant: diagram.Ultra, Locale: diagram.English})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Source(ctx, Job{Source: data, Format: model.FormatJSON, Variant: diagram.Ultra, Locale: diagram.English})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestProgressAPIPath(t *testing.T) {
	assert.Equal(t, "/api/progress/ai_maturity_progress", ProgressAPIPath(diagram.Chinese.ProgressKey))
}
