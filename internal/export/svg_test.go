package export

import (
	"strings"
	"testing"

	"github.com/san-kum/freefall/internal/storage"
)

func sampleRows() []storage.SampleRow {
	return []storage.SampleRow{
		{Time: 0, SimHeight: 100, AnalyticHeight: 100},
		{Time: 1, SimHeight: 95.2, SimVelocity: 9.6, AnalyticHeight: 95.3, AnalyticVelocity: 9.5},
		{Time: 2, SimHeight: 81.9, SimVelocity: 17.5, AnalyticHeight: 82.0, AnalyticVelocity: 17.4},
	}
}

func TestChartToSVG(t *testing.T) {
	svg := ChartToSVG(HeightSeries(sampleRows()), 640, 400, "height <m>")

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("expected a complete SVG document")
	}
	if got := strings.Count(svg, `stroke-width="1.5"`); got != 2 {
		t.Errorf("expected 2 series paths, got %d", got)
	}
	if !strings.Contains(svg, "stroke-dasharray") {
		t.Error("analytic series should be dashed")
	}
	if !strings.Contains(svg, "height &lt;m&gt;") {
		t.Error("title should be escaped")
	}
	if !strings.Contains(svg, SimulatedColor) || !strings.Contains(svg, AnalyticColor) {
		t.Error("expected both series colours")
	}
}

func TestChartToSVG_Empty(t *testing.T) {
	if svg := ChartToSVG(nil, 640, 400, "empty"); svg != "" {
		t.Error("expected empty output without series")
	}

	short := []Series{{Name: "one", Points: []XY{{0, 1}}}}
	if svg := ChartToSVG(short, 640, 400, "short"); svg != "" {
		t.Error("expected empty output for single-point series")
	}
}

func TestVelocitySeries(t *testing.T) {
	series := VelocitySeries(sampleRows())
	if len(series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(series))
	}
	if series[0].Points[2].Y != 17.5 || series[1].Points[2].Y != 17.4 {
		t.Errorf("unexpected velocity points %v %v", series[0].Points, series[1].Points)
	}
}
