package export

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/san-kum/freefall/internal/storage"
)

// XY is one chart point in data units.
type XY struct {
	X, Y float64
}

type Series struct {
	Name   string
	Color  string
	Dashed bool
	Points []XY
}

const (
	SimulatedColor = "#00ff9c"
	AnalyticColor  = "#ff9f1c"
)

// HeightSeries builds simulated and analytic height-over-time series from
// stored samples.
func HeightSeries(rows []storage.SampleRow) []Series {
	sim := Series{Name: "simulated", Color: SimulatedColor, Points: make([]XY, len(rows))}
	exact := Series{Name: "analytic", Color: AnalyticColor, Dashed: true, Points: make([]XY, len(rows))}
	for i, r := range rows {
		sim.Points[i] = XY{r.Time, r.SimHeight}
		exact.Points[i] = XY{r.Time, r.AnalyticHeight}
	}
	return []Series{sim, exact}
}

// VelocitySeries is HeightSeries for velocity.
func VelocitySeries(rows []storage.SampleRow) []Series {
	sim := Series{Name: "simulated", Color: SimulatedColor, Points: make([]XY, len(rows))}
	exact := Series{Name: "analytic", Color: AnalyticColor, Dashed: true, Points: make([]XY, len(rows))}
	for i, r := range rows {
		sim.Points[i] = XY{r.Time, r.SimVelocity}
		exact.Points[i] = XY{r.Time, r.AnalyticVelocity}
	}
	return []Series{sim, exact}
}

// ChartToSVG draws every series on shared axes. Series with fewer than two
// points are skipped; an empty string means nothing could be drawn.
func ChartToSVG(series []Series, width, height int, title string) string {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	drawable := 0

	for _, s := range series {
		if len(s.Points) < 2 {
			continue
		}
		drawable++
		for _, p := range s.Points {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	if drawable == 0 {
		return ""
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.05
	maxY += rangeY * 0.05
	rangeY = maxY - minY

	const margin = 40.0
	plotW := float64(width) - 2*margin
	plotH := float64(height) - 2*margin

	toX := func(x float64) float64 { return margin + (x-minX)/rangeX*plotW }
	toY := func(y float64) float64 { return margin + plotH - (y-minY)/rangeY*plotH }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="24" fill="#e0e0e0" font-family="monospace" font-size="14">%s</text>
`, margin, html.EscapeString(title)))

	// axes
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="#555555" stroke-width="1" d="M%.1f,%.1f L%.1f,%.1f L%.1f,%.1f"/>
`, margin, margin, margin, margin+plotH, margin+plotW, margin+plotH))
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#888888" font-family="monospace" font-size="10" text-anchor="end">%.1f</text>
<text x="%.1f" y="%.1f" fill="#888888" font-family="monospace" font-size="10" text-anchor="end">%.1f</text>
<text x="%.1f" y="%.1f" fill="#888888" font-family="monospace" font-size="10" text-anchor="end">%.2fs</text>
`, margin-4, margin+4, maxY, margin-4, margin+plotH, minY, margin+plotW, margin+plotH+14, maxX))

	legendY := margin
	for _, s := range series {
		if len(s.Points) < 2 {
			continue
		}

		dash := ""
		if s.Dashed {
			dash = ` stroke-dasharray="6 4"`
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5"%s d="M`, s.Color, dash))
		for i, p := range s.Points {
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", toX(p.X), toY(p.Y)))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", toX(p.X), toY(p.Y)))
			}
		}
		sb.WriteString("\"/>\n")

		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="11" text-anchor="end">%s</text>
`, margin+plotW, legendY, s.Color, html.EscapeString(s.Name)))
		legendY += 14
	}

	sb.WriteString("</svg>")
	return sb.String()
}
