package ui

import (
	"strconv"
	"strings"
)

// canvas is a plain rune grid the board composites card boxes onto.
type canvas struct {
	w, h  int
	cells [][]rune
}

func newCanvas(w, h int) *canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	cells := make([][]rune, h)
	for i := range cells {
		row := make([]rune, w)
		for j := range row {
			row[j] = ' '
		}
		cells[i] = row
	}
	return &canvas{w: w, h: h, cells: cells}
}

// blit copies a block of text onto the canvas at (x, y), clipping at the
// edges.
func (c *canvas) blit(x, y int, block string) {
	for dy, line := range strings.Split(block, "\n") {
		row := y + dy
		if row < 0 || row >= c.h {
			continue
		}
		for dx, r := range []rune(line) {
			col := x + dx
			if col < 0 || col >= c.w {
				continue
			}
			c.cells[row][col] = r
		}
	}
}

func (c *canvas) String() string {
	lines := make([]string, c.h)
	for i, row := range c.cells {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(lines, "\n")
}

// cardBox draws a bordered box of w×h cells with a centered label and an
// optional corner marker.
func cardBox(w, h int, label string, selected, faceUp bool) string {
	if w < 4 {
		w = 4
	}
	if h < 3 {
		h = 3
	}

	tl, tr, bl, br, hz, vt := '╭', '╮', '╰', '╯', '─', '│'
	if selected {
		tl, tr, bl, br, hz, vt = '┏', '┓', '┗', '┛', '━', '┃'
	}

	var b strings.Builder
	b.WriteRune(tl)
	b.WriteString(strings.Repeat(string(hz), w-2))
	b.WriteRune(tr)
	b.WriteByte('\n')

	inner := w - 2
	labelRow := (h - 2) / 2
	for row := 0; row < h-2; row++ {
		b.WriteRune(vt)
		switch {
		case row == labelRow && faceUp:
			b.WriteString(padCenter(truncate(label, inner), inner, ' '))
		case !faceUp:
			b.WriteString(strings.Repeat("░", inner))
		default:
			b.WriteString(strings.Repeat(" ", inner))
		}
		b.WriteRune(vt)
		b.WriteByte('\n')
	}

	b.WriteRune(bl)
	b.WriteString(strings.Repeat(string(hz), w-2))
	b.WriteRune(br)
	return b.String()
}

// pileBox draws the deck pile with its remaining count.
func pileBox(w, h, count int) string {
	label := "empty"
	if count > 0 {
		label = strconv.Itoa(count)
	}
	return cardBox(w, h, label, false, count > 0)
}

func padCenter(s string, width int, pad rune) string {
	n := width - len([]rune(s))
	if n <= 0 {
		return s
	}
	left := n / 2
	return strings.Repeat(string(pad), left) + s + strings.Repeat(string(pad), n-left)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}
