package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/montanaflynn/stats"

	"surveyor/internal/blueprint"
	"surveyor/internal/chunker"
)

var (
	summaryHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	summaryKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	summaryDim    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderSummary formats the end-of-run report: surface counts, confidence
// aggregates, and the chunk table.
func RenderSummary(bp *blueprint.Blueprint, chunks []chunker.Chunk, width int) string {
	if width <= 0 {
		width = 80
	}
	var b strings.Builder
	b.WriteString(summaryHeader.Render("blueprint"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %d\n", summaryKey.Render("endpoints"), len(bp.Endpoints))
	fmt.Fprintf(&b, "  %s %d\n", summaryKey.Render("pages    "), len(bp.Pages))
	fmt.Fprintf(&b, "  %s %d\n", summaryKey.Render("locators "), bp.Meta.LocatorCount)

	var confs []float64
	for i := range bp.Endpoints {
		confs = append(confs, bp.Endpoints[i].Confidence)
	}
	for i := range bp.Pages {
		confs = append(confs, bp.Pages[i].Confidence)
	}
	if len(confs) > 0 {
		mean, _ := stats.Mean(confs)
		median, _ := stats.Median(confs)
		fmt.Fprintf(&b, "  %s mean %.2f, median %.2f\n",
			summaryKey.Render("confidence"), mean, median)
	}

	b.WriteString(summaryHeader.Render("chunks"))
	b.WriteString("\n")
	if len(chunks) == 0 {
		b.WriteString(summaryDim.Render("  (none)"))
		b.WriteString("\n")
		return b.String()
	}
	nameWidth := width - 30
	if nameWidth < 16 {
		nameWidth = 16
	}
	for i := range chunks {
		c := &chunks[i]
		kind := "api"
		if c.HasPages {
			kind = "ui"
		}
		fmt.Fprintf(&b, "  %s  %-4s %2d ep %2d pg  %s\n",
			truncatePad(c.OutputName, nameWidth), kind,
			len(c.Endpoints), len(c.Pages),
			summaryDim.Render(string(c.AuthStrategy)))
	}
	return b.String()
}

func truncatePad(value string, width int) string {
	out := truncate(value, width)
	for len(out) < width {
		out += " "
	}
	return out
}
