package bidi

import (
	"github.com/mattn/go-runewidth"
)

// LayoutRun is a visual run placed on a horizontal axis, measured in
// terminal cells.
type LayoutRun struct {
	Text      string
	Direction Direction
	Level     uint8
	XOffset   int
	Width     int
}

// VisualLine is the cell layout of one logical line: its runs in display
// order with accumulated horizontal offsets.
type VisualLine struct {
	LogicalLine int
	Runs        []LayoutRun
	Width       int
}

// LayoutLine places the paragraph's visual runs left to right in display
// order, assigning each a cell offset and width.
func LayoutLine(logicalLine int, p *Paragraph) VisualLine {
	line := VisualLine{LogicalLine: logicalLine}
	runes := []rune(p.Text())

	x := 0
	for _, run := range p.visual {
		text := string(runes[run.Start:run.End])
		width := runewidth.StringWidth(text)
		line.Runs = append(line.Runs, LayoutRun{
			Text:      text,
			Direction: run.Direction,
			Level:     run.Level,
			XOffset:   x,
			Width:     width,
		})
		x += width
	}
	line.Width = x
	return line
}
