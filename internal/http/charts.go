package http

import (
	"fmt"
	"html/template"
	"strings"

	"horas/internal/core"
)

const (
	chartWidth   = 560
	chartHeight  = 220
	chartPadding = 28
)

// barChart renders an inline SVG bar chart. The bar at highlight, if any, is
// drawn in the accent colour.
func barChart(title string, labels []string, values []float64, highlight int) template.HTML {
	if len(values) == 0 {
		return ""
	}
	maxValue := 0.0
	for _, v := range values {
		maxValue = max(maxValue, v)
	}
	plot := float64(chartHeight - 2*chartPadding)
	slot := float64(chartWidth-2*chartPadding) / float64(len(values))

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" class="chart" viewBox="0 0 %d %d" role="img" aria-label="%s">`,
		chartWidth, chartHeight, template.HTMLEscapeString(title))
	fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" class="axis"/>`,
		chartPadding, chartHeight-chartPadding, chartWidth-chartPadding, chartHeight-chartPadding)

	for i, v := range values {
		h := 0.0
		if maxValue > 0 {
			h = v / maxValue * plot
		}
		x := float64(chartPadding) + float64(i)*slot
		y := float64(chartHeight-chartPadding) - h
		class := "bar"
		if i == highlight && v > 0 {
			class = "bar bar-top"
		}
		fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="3" class="%s"/>`,
			x+slot*0.15, y, slot*0.7, h, class)
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" class="value">%s</text>`,
			x+slot/2, y-4, template.HTMLEscapeString(core.FormatHours(v)))
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		fmt.Fprintf(&b, `<text x="%.1f" y="%d" class="label">%s</text>`,
			x+slot/2, chartHeight-chartPadding/3, template.HTMLEscapeString(label))
	}
	b.WriteString(`</svg>`)

	return template.HTML(b.String())
}
