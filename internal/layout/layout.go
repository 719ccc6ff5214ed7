// Package layout computes card sizes and absolute slot positions for the
// virtual-deck spreads. Compute is a pure function: no state, no randomness,
// recomputed on every resize or spread change.
package layout

// Region is the playable drawing area, in the same units the caller
// renders in (pixels on the web, cells in the terminal client).
type Region struct {
	W float64
	H float64
}

// Slot is one card position within a solved layout.
type Slot struct {
	Left     float64
	Top      float64
	Rotation float64 // degrees, clockwise
}

// Layout is the solved geometry for one spread in one region.
type Layout struct {
	CardW float64
	CardH float64
	Slots []Slot
}

const (
	// Height of a card relative to its width.
	aspectRatio = 1.72

	maxCardWidth = 140.0
	minCardWidth = 36.0

	// Gap between adjacent cards, as a fraction of card width.
	gapFraction = 0.18

	// Above this viewport width the side panels are visible and the
	// solver reserves horizontal bands so cards never render under them.
	wideBreakpoint = 1024.0
	toolbarWidth   = 72.0
	sidebarWidth   = 300.0
)

// Compute solves the layout for a spread within a region. The viewport
// width decides whether side-panel bands are reserved. Identical inputs
// always yield identical output.
func Compute(spreadID string, region Region, viewportW float64) (Layout, error) {
	spec, err := Spread(spreadID)
	if err != nil {
		return Layout{}, err
	}

	offsetX := 0.0
	w, h := region.W, region.H
	if viewportW >= wideBreakpoint {
		offsetX = toolbarWidth
		w -= toolbarWidth + sidebarWidth
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}

	if spec.Grid != nil {
		return solveGrid(*spec.Grid, w, h, offsetX), nil
	}
	return solveTable(spec.Slots, w, h, offsetX), nil
}

// solveGrid picks the largest card size such that the full grid fits both
// axes, then centers it.
func solveGrid(g GridSpec, w, h, offsetX float64) Layout {
	cols, rows := float64(g.Cols), float64(g.Rows)

	byWidth := w / (cols + (cols-1)*gapFraction)
	byHeight := h / (aspectRatio * (rows + (rows-1)*gapFraction))
	cardW := clampCardWidth(minFloat(byWidth, byHeight))
	cardH := cardW * aspectRatio
	gapX := cardW * gapFraction
	gapY := cardH * gapFraction

	totalW := cols*cardW + (cols-1)*gapX
	totalH := rows*cardH + (rows-1)*gapY
	left0 := offsetX + (w-totalW)/2
	top0 := (h - totalH) / 2

	slots := make([]Slot, 0, g.Cols*g.Rows)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			slots = append(slots, Slot{
				Left: left0 + float64(c)*(cardW+gapX),
				Top:  top0 + float64(r)*(cardH+gapY),
			})
		}
	}
	return Layout{CardW: cardW, CardH: cardH, Slots: slots}
}

// solveTable places the hand-specified offsets of an irregular spread.
// Offsets are in card units from the spread's own bounding-box center,
// with inter-card gaps folded into the unit step.
func solveTable(offsets []SlotSpec, w, h, offsetX float64) Layout {
	minX, maxX := offsets[0].X, offsets[0].X
	minY, maxY := offsets[0].Y, offsets[0].Y
	for _, o := range offsets[1:] {
		minX = minFloat(minX, o.X)
		maxX = maxFloat(maxX, o.X)
		minY = minFloat(minY, o.Y)
		maxY = maxFloat(maxY, o.Y)
	}

	step := 1 + gapFraction
	spanX := (maxX-minX)*step + 1 // in card widths
	spanY := (maxY-minY)*step + 1 // in card heights

	cardW := clampCardWidth(minFloat(w/spanX, h/(aspectRatio*spanY)))
	cardH := cardW * aspectRatio

	midX := (minX + maxX) / 2
	midY := (minY + maxY) / 2
	cx := offsetX + w/2
	cy := h / 2

	slots := make([]Slot, len(offsets))
	for i, o := range offsets {
		slots[i] = Slot{
			Left:     cx + (o.X-midX)*cardW*step - cardW/2,
			Top:      cy + (o.Y-midY)*cardH*step - cardH/2,
			Rotation: o.Rot,
		}
	}
	return Layout{CardW: cardW, CardH: cardH, Slots: slots}
}

// clampCardWidth keeps degenerate regions solvable: the result may
// overflow a tiny region, but the layout stays minimally usable.
func clampCardWidth(w float64) float64 {
	if w > maxCardWidth {
		return maxCardWidth
	}
	if w < minCardWidth {
		return minCardWidth
	}
	return w
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
