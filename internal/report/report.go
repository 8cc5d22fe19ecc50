package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"fenceline/models"
)

// Markdown renders an analysis as a markdown document: run header, then one
// section per series with fences, counts, the outlier list, and the
// descriptive profile.
func Markdown(analysis *models.Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Outlier analysis %s\n\n", analysis.RunID)
	fmt.Fprintf(&b, "- **Source:** %s\n", analysis.Source)
	fmt.Fprintf(&b, "- **Started:** %s\n", analysis.StartedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "- **Series:** %d\n", analysis.SeriesCount)
	fmt.Fprintf(&b, "- **Total outliers:** %d\n\n", analysis.TotalOutliers())

	for _, r := range analysis.Reports {
		writeSeriesSection(&b, r)
	}

	return b.String()
}

// HTML renders the analysis report as a standalone HTML page.
func HTML(analysis *models.Analysis) []byte {
	md := []byte(Markdown(analysis))

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse(md)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	body := markdown.Render(doc, renderer)

	var page []byte
	page = append(page, []byte(pageHead)...)
	page = append(page, body...)
	page = append(page, []byte(pageFoot)...)
	return page
}

const pageHead = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Outlier analysis</title>
<style>body{font-family:sans-serif;max-width:56rem;margin:2rem auto;padding:0 1rem}table{border-collapse:collapse}td,th{border:1px solid #ccc;padding:0.25rem 0.5rem}</style>
</head><body>
`

const pageFoot = `
</body></html>
`

func writeSeriesSection(b *strings.Builder, r models.SeriesReport) {
	fmt.Fprintf(b, "## %s\n\n", r.Name)

	if r.DroppedNaN > 0 {
		fmt.Fprintf(b, "_%d non-numeric cells dropped._\n\n", r.DroppedNaN)
	}
	if r.Result == nil {
		b.WriteString("No numeric values; nothing to classify.\n\n")
		return
	}

	if r.Result.HasFences() {
		fmt.Fprintf(b, "- **Fences:** [%s, %s]\n",
			formatValue(*r.Result.LowerFence), formatValue(*r.Result.UpperFence))
	} else {
		b.WriteString("- **Fences:** undefined (single value)\n")
	}
	fmt.Fprintf(b, "- **Non-outliers:** %d\n", len(r.Result.NonOutliers))
	fmt.Fprintf(b, "- **Outliers:** %d\n", len(r.Result.Outliers))
	if len(r.Result.Outliers) > 0 {
		fmt.Fprintf(b, "- **Outlier values:** %s\n", formatValues(r.Result.Outliers))
	}
	b.WriteString("\n")

	if r.Summary != nil {
		s := r.Summary
		b.WriteString("| n | mean | stddev | min | median | max | q25 | q75 | skew |\n")
		b.WriteString("|---|------|--------|-----|--------|-----|-----|-----|------|\n")
		fmt.Fprintf(b, "| %d | %s | %s | %s | %s | %s | %s | %s | %s |\n\n",
			s.SampleSize,
			formatValue(s.Mean), formatValue(s.StdDev),
			formatValue(s.Min), formatValue(s.Median), formatValue(s.Max),
			formatValue(s.Q25), formatValue(s.Q75), formatValue(s.Skewness))
	}
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.4g", v)
}

func formatValues(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatValue(v)
	}
	return strings.Join(parts, ", ")
}
