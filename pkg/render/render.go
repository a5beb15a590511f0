// Package render draws the terminal report: section headers, bordered
// info boxes, aligned tables and the stake distribution charts.
package render

import (
	"fmt"
	"strings"
)

// innerWidth is the content width of every box. All boxes line up at 80
// columns including the borders.
const innerWidth = 78

// KV is one labeled line inside an info box. Order is preserved.
type KV struct {
	Key   string
	Value string
}

// SectionHeader renders a double-rule section title.
func SectionHeader(title string) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(strings.Repeat("═", 80))
	b.WriteString("\n  ")
	b.WriteString(title)
	b.WriteString("\n\n")
	return b.String()
}

// InfoBox renders an ordered set of label/value lines inside a border.
// separators lists 1-based line indexes after which a rule is drawn.
func InfoBox(items []KV, separators ...int) string {
	if len(items) == 0 {
		return ""
	}

	maxLabel := 0
	for _, item := range items {
		if len(item.Key) > maxLabel {
			maxLabel = len(item.Key)
		}
	}
	labelWidth := maxLabel + 3
	valueWidth := innerWidth - labelWidth - 1

	sepAfter := make(map[int]bool, len(separators))
	for _, s := range separators {
		sepAfter[s] = true
	}

	var b strings.Builder
	b.WriteString("┌" + strings.Repeat("─", innerWidth) + "┐\n")
	for i, item := range items {
		fmt.Fprintf(&b, "│ %-*s%-*s │\n", labelWidth-1, item.Key, valueWidth, item.Value)
		if sepAfter[i+1] && i < len(items)-1 {
			b.WriteString("├" + strings.Repeat("─", innerWidth) + "┤\n")
		}
	}
	b.WriteString("└" + strings.Repeat("─", innerWidth) + "┘\n")
	return b.String()
}

// Table renders headers and rows with per-column auto sizing.
func Table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len([]rune(h))
	}
	for _, row := range rows {
		for i := 0; i < len(headers) && i < len(row); i++ {
			if w := len([]rune(row[i])); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		widths[i] += 2
	}

	totalWidth := len(widths) - 1
	for _, w := range widths {
		totalWidth += w
	}

	var b strings.Builder
	b.WriteString("┌" + strings.Repeat("─", totalWidth) + "┐\n")

	b.WriteString("│")
	for i, h := range headers {
		fmt.Fprintf(&b, " %-*s ", widths[i]-2, h)
		if i < len(headers)-1 {
			b.WriteString("│")
		}
	}
	b.WriteString("│\n")

	b.WriteString(rule("├", "┼", "┤", widths))
	for _, row := range rows {
		b.WriteString("│")
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pad := widths[i] - 2 - len([]rune(cell))
			if pad < 0 {
				pad = 0
			}
			b.WriteString(" " + cell + strings.Repeat(" ", pad) + " ")
			if i < len(headers)-1 {
				b.WriteString("│")
			}
		}
		b.WriteString("│\n")
	}
	b.WriteString(rule("└", "┴", "┘", widths))
	return b.String()
}

func rule(left, mid, right string, widths []int) string {
	var b strings.Builder
	b.WriteString(left)
	for i, w := range widths {
		b.WriteString(strings.Repeat("─", w))
		if i < len(widths)-1 {
			b.WriteString(mid)
		}
	}
	b.WriteString(right + "\n")
	return b.String()
}

func boxLine(content string) string {
	pad := innerWidth - len([]rune(content))
	if pad < 0 {
		pad = 0
	}
	return "│" + content + strings.Repeat(" ", pad) + "│\n"
}
