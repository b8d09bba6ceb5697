package report

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"godist/domain/core"
	"godist/domain/stats"
	"godist/internal/analysis/descriptive"
)

func TestFormatDouble(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{2, "2.0"},
		{-3, "-3.0"},
		{100, "100.0"},
		{0.5, "0.5"},
		{1.0 / 3, "0.3333333333333333"},
		{22.0 / 6, "3.6666666666666665"},
		{0.001, "0.001"},
		{9999999, "9999999.0"},
		{1e7, "1.0E7"},
		{123456789, "1.23456789E8"},
		{0.0001234, "1.234E-4"},
		{-2.5e-10, "-2.5E-10"},
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatDouble(tt.input), "input %v", tt.input)
	}
}

func TestParseFormat(t *testing.T) {
	for input, expected := range map[string]Format{
		"":         FormatText,
		"TEXT":     FormatText,
		"md":       FormatMarkdown,
		"markdown": FormatMarkdown,
		"html":     FormatHTML,
		" json ":   FormatJSON,
	} {
		got, err := ParseFormat(input)
		require.NoError(t, err)
		assert.Equal(t, expected, got)
	}

	_, err := ParseFormat("yaml")
	assert.True(t, stderrors.Is(err, core.ErrUnknownFormat))
}

func duplicatesReport(t *testing.T) *stats.Report {
	t.Helper()
	rep, err := descriptive.NewComputer(descriptive.DefaultOptions()).
		ComputeValues("", []float64{2, 2, 3, 5, 5, 5})
	require.NoError(t, err)
	return rep
}

func TestText_Plain(t *testing.T) {
	rep := duplicatesReport(t)

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(false).Text(&buf, rep))

	expected := "Sample:\n" +
		"2.0 2.0 3.0 5.0 5.0 5.0\n" +
		"Variation series:\n" +
		"2.0 2.0 3.0 5.0 5.0 5.0\n" +
		"Minimum: 2.0\n" +
		"Maximum: 5.0\n" +
		"Range: 3.0\n" +
		"Mean: 3.6666666666666665\n" +
		"Standard deviation: " + FormatDouble(rep.Summary.StdDev) + "\n" +
		"Empirical distribution function:\n" +
		"F(x)=0.0, for x<=2.0\n" +
		"F(x)=0.3333333333333333, for 2.0<x<=3.0\n" +
		"F(x)=0.5, for 3.0<x<=5.0\n" +
		"F(x)=1, for x>5.0\n"
	assert.Equal(t, expected, buf.String()[:len(expected)])
	assert.Contains(t, buf.String(), "Bin width: ")
	assert.Contains(t, buf.String(), "2.0\t2\t")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestText_ColouredHeadings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(true).Text(&buf, duplicatesReport(t)))

	assert.Contains(t, buf.String(), "\x1b[35mMinimum: \x1b[0m2.0\n")
	assert.Contains(t, buf.String(), "F(x)=1, for x>5.0\n")
}

func TestMarkdownAndHTML(t *testing.T) {
	rep := duplicatesReport(t)
	rep.Name = "heights"
	r := NewRenderer(false)

	var md bytes.Buffer
	require.NoError(t, r.Render(&md, FormatMarkdown, rep))
	assert.Contains(t, md.String(), "# Sample report: heights\n")
	assert.Contains(t, md.String(), "| Mean | 3.6666666666666665 |\n")
	assert.Contains(t, md.String(), "| `2.0<x<=3.0` | 0.3333333333333333 |\n")
	assert.Contains(t, md.String(), "| `x>5.0` | 1 |\n")

	var page bytes.Buffer
	require.NoError(t, r.Render(&page, FormatHTML, rep))
	assert.Contains(t, page.String(), "<title>Sample report: heights</title>")
	assert.Contains(t, page.String(), "<table>")
	assert.Contains(t, page.String(), "<code>2.0&lt;x&lt;=3.0</code>")
}

func TestHTML_EscapesReportName(t *testing.T) {
	names := []string{
		"<img src=x onerror=alert(1)>",
		"<script>alert(1)</script>",
		"[click](javascript:alert(1))",
		"</title><img src=x>",
	}

	r := NewRenderer(false)
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			rep := duplicatesReport(t)
			rep.Name = name

			var page bytes.Buffer
			require.NoError(t, r.HTML(&page, rep))
			out := page.String()

			assert.NotContains(t, out, "<img")
			assert.NotContains(t, out, "<script")
			assert.NotContains(t, out, "javascript:alert(1)\"")
			assert.NotContains(t, out, "href=\"javascript")
			assert.Equal(t, 1, strings.Count(out, "</title>"))
		})
	}

	rep := duplicatesReport(t)
	rep.Name = "<img src=x onerror=alert(1)>"
	var page bytes.Buffer
	require.NoError(t, r.HTML(&page, rep))
	assert.Contains(t, page.String(), "&lt;img src=x onerror=alert(1)&gt;")
}

func TestMarkdown_EscapesReportName(t *testing.T) {
	rep := duplicatesReport(t)
	rep.Name = "*bold* [x](y) <b>"

	var md bytes.Buffer
	require.NoError(t, NewRenderer(false).Markdown(&md, rep))
	assert.Contains(t, md.String(), "# Sample report: \\*bold\\* \\[x\\]\\(y\\) \\<b\\>\n")
}

func TestMarkdown_FlagsDegenerateBins(t *testing.T) {
	rep, err := descriptive.NewComputer(descriptive.DefaultOptions()).ComputeValues("c", []float64{1, 1, 1, 1})
	require.NoError(t, err)

	var md bytes.Buffer
	require.NoError(t, NewRenderer(false).Markdown(&md, rep))
	assert.Contains(t, md.String(), "Bin width h = 1.0 (single distinct value)")
	assert.Contains(t, md.String(), "| 1.0 | 4 | 4.0 |")
}

func TestJSON(t *testing.T) {
	rep := duplicatesReport(t)

	var buf bytes.Buffer
	require.NoError(t, NewRenderer(false).Render(&buf, FormatJSON, rep))

	var decoded stats.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, rep.Summary, decoded.Summary)
	assert.Equal(t, rep.ECDF, decoded.ECDF)
	assert.Equal(t, stats.SkipEmitEmpty, decoded.Bins.Policy)
	assert.Contains(t, buf.String(), `"policy": "emit-empty"`)

	assert.Error(t, NewRenderer(false).Render(&buf, Format("pdf"), rep))
}
