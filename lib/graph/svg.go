package graph

import (
	"fmt"
	"strconv"
	"strings"
)

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// PathData converts points to an SVG path "d" attribute.
func PathData(points []Point) string {
	var sb strings.Builder
	for i, p := range points {
		if i == 0 {
			sb.WriteString("M ")
		} else {
			sb.WriteString(" L ")
		}
		sb.WriteString(formatNumber(p.X))
		sb.WriteString(" ")
		sb.WriteString(formatNumber(p.Y))
	}
	return sb.String()
}

// RenderSVG draws rows and edges, sized to the given canvas.
func RenderSVG(width, height float64, rows []Row, edges []Edge) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%v" height="%v">`,
		formatNumber(width), formatNumber(height)))
	sb.WriteString("\n")

	for _, e := range edges {
		sb.WriteString(fmt.Sprintf(`<path d="%v" style="stroke:%v;fill:none"/>`, PathData(e.Points), e.Color))
		sb.WriteString("\n")
	}

	for _, r := range rows {
		sb.WriteString(fmt.Sprintf(`<circle cx="%v" cy="%v" r="%v"/>`,
			formatNumber(r.Node.X), formatNumber(r.Node.Y), NodeRadius))
		sb.WriteString("\n")
	}

	sb.WriteString("</svg>\n")

	return sb.String()
}
