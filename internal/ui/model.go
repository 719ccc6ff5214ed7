// Package ui renders the virtual-deck board in the terminal: the draw
// pile, the solved spread slots, flying cards, the zoom preview, and the
// login and quota affordances.
package ui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"tarion/internal/anim"
	"tarion/internal/api"
	"tarion/internal/board"
	"tarion/internal/catalog"
	"tarion/internal/events"
	"tarion/internal/gate"
	"tarion/internal/layout"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Terminal cells are roughly half as wide as they are tall; the solver
// works in a virtual pixel space and positions are mapped back to cells.
const (
	cellW = 8.0
	cellH = 16.0

	// Left strip reserved for the draw pile, in cells.
	pileStrip = 14

	framePeriod = 33 * time.Millisecond
)

type (
	frameMsg       time.Time
	startResultMsg struct{ err error }
	quotaFetchedMsg struct{}
)

// boardGeom supplies flight rectangles from the current solved layout.
type boardGeom struct {
	lay  layout.Layout
	deck anim.Rect
}

func (g *boardGeom) DeckRect() anim.Rect { return g.deck }

func (g *boardGeom) SlotRect(i int) anim.Rect {
	if i < 0 || i >= len(g.lay.Slots) {
		return anim.Rect{W: g.lay.CardW, H: g.lay.CardH}
	}
	s := g.lay.Slots[i]
	return anim.Rect{X: s.Left, Y: s.Top, W: g.lay.CardW, H: g.lay.CardH}
}

// Deps wires the page to the rest of the client.
type Deps struct {
	Board   *board.Board
	Gate    *gate.Gate
	Catalog *catalog.Store
	Bus     *events.Bus
	Logger  *zap.Logger

	Locale        string
	ReducedMotion bool
	LoggedIn      func() bool
}

// Model is the board page.
type Model struct {
	deps   Deps
	keys   KeyMap
	styles Styles
	help   help.Model

	width  int
	height int

	geom   *boardGeom
	runner *flightRunner

	sel        int
	requesting bool

	zoomOpen    bool
	zoomForward bool
	zoomIdx     int
	zoomFlight  *anim.Flight

	status    string
	statusErr bool
}

// New builds the board page and registers it as the board's geometry
// and flier.
func New(deps Deps) (*Model, error) {
	m := &Model{
		deps:    deps,
		keys:    DefaultKeyMap(),
		styles:  DefaultStyles(),
		help:    help.New(),
		geom:    &boardGeom{},
		runner:  &flightRunner{reduced: deps.ReducedMotion},
		zoomIdx: -1,
	}
	if err := deps.Board.AttachView(m.geom, m.runner); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.refreshQuotaCmd(), frameTick())
}

func frameTick() tea.Cmd {
	return tea.Tick(framePeriod, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *Model) refreshQuotaCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		m.deps.Gate.Refresh(ctx)
		return quotaFetchedMsg{}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.recomputeLayout()
		return m, nil

	case frameMsg:
		return m.updateFrame(time.Time(msg))

	case quotaFetchedMsg:
		return m, nil

	case startResultMsg:
		m.requesting = false
		if msg.err != nil {
			m.failStatus(msg.err)
			return m, nil
		}
		m.localDraw()
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *Model) updateFrame(now time.Time) (tea.Model, tea.Cmd) {
	m.runner.step(now)

	if m.zoomFlight != nil {
		frame := m.zoomFlight.Step(now)
		if frame.Done {
			m.zoomFlight = nil
			if m.zoomForward {
				m.zoomOpen = true
			} else {
				m.zoomIdx = -1
			}
		}
	}
	return m, frameTick()
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys

	if key.Matches(msg, k.Quit) {
		m.deps.Board.Shutdown()
		return m, tea.Quit
	}

	// The login overlay gates the whole interactive board.
	if !m.deps.LoggedIn() {
		return m, nil
	}

	if m.zoomOpen || m.zoomFlight != nil {
		if key.Matches(msg, k.Close) && m.zoomOpen {
			m.startZoomFlight(false)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, k.Draw):
		return m.handleDraw()
	case key.Matches(msg, k.Undo):
		if err := m.deps.Board.Undo(); err != nil {
			m.failStatus(err)
		} else {
			m.clampSel()
			m.infoStatus("card returned to the pile")
		}
	case key.Matches(msg, k.Flip):
		if err := m.deps.Board.Flip(m.sel); err != nil {
			m.failStatus(err)
		}
	case key.Matches(msg, k.RevealAll):
		m.deps.Board.RevealAll()
	case key.Matches(msg, k.HideAll):
		m.deps.Board.HideAll()
	case key.Matches(msg, k.Next):
		m.moveSel(1)
	case key.Matches(msg, k.Prev):
		m.moveSel(-1)
	case key.Matches(msg, k.Zoom):
		if m.sel < len(m.deps.Board.Placed()) && m.runner.flight == nil {
			m.zoomIdx = m.sel
			m.startZoomFlight(true)
		}
	case key.Matches(msg, k.Spread):
		return m.cycleSpread()
	case key.Matches(msg, k.Clear):
		if err := m.deps.Board.Clear(context.Background()); err != nil {
			m.failStatus(err)
		} else {
			m.sel = 0
			m.infoStatus("table cleared")
		}
	case key.Matches(msg, k.Interpret):
		if err := m.deps.Board.Interpret(context.Background()); err != nil {
			m.failStatus(err)
		} else {
			m.deps.Board.RevealAll()
			m.infoStatus("spread interpreted; next draw starts a new one")
		}
	}
	return m, nil
}

// handleDraw runs the three-phase draw. The quota permission call goes
// through a command so the UI never blocks; the draw proper is local.
func (m *Model) handleDraw() (tea.Model, tea.Cmd) {
	if m.requesting || m.runner.active() {
		return m, nil
	}
	if _, active := m.deps.Gate.ActiveSpread(); !active {
		if !m.deps.Gate.Allows() {
			m.failStatus(api.ErrQuotaExhausted)
			return m, nil
		}
		m.requesting = true
		m.infoStatus("asking the stars for permission…")
		b := m.deps.Board
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_, err := m.deps.Gate.Start(ctx, b.SpreadID(), catalog.DefaultDeckID, m.deps.Locale)
			return startResultMsg{err: err}
		}
	}
	m.localDraw()
	return m, nil
}

// localDraw takes a card once the session-spread is charged; no network
// is involved at this point.
func (m *Model) localDraw() {
	if err := m.deps.Board.TakeFromDeck(context.Background()); err != nil {
		m.failStatus(err)
		return
	}
	m.status = ""
}

func (m *Model) cycleSpread() (tea.Model, tea.Cmd) {
	ids := layout.SpreadIDs()
	cur := m.deps.Board.SpreadID()
	next := ids[0]
	for i, id := range ids {
		if id == cur {
			next = ids[(i+1)%len(ids)]
			break
		}
	}
	if err := m.deps.Board.ChangeSpread(context.Background(), next); err != nil {
		m.failStatus(err)
		return m, nil
	}
	m.sel = 0
	m.recomputeLayout()
	spec := m.deps.Board.Spread()
	m.infoStatus(fmt.Sprintf("spread: %s", spec.DisplayName(m.deps.Locale)))
	return m, nil
}

func (m *Model) startZoomFlight(forward bool) {
	slotRect := m.geom.SlotRect(m.zoomIdx)
	preview := m.previewRect()

	m.zoomForward = forward
	var f *anim.Flight
	if forward {
		f = anim.NewFlight(slotRect, preview, float64(m.height)*cellH,
			anim.ReducedMotion(m.deps.ReducedMotion))
	} else {
		m.zoomOpen = false
		f = anim.NewFlight(preview, slotRect, float64(m.height)*cellH,
			anim.Backward(), anim.ReducedMotion(m.deps.ReducedMotion))
	}
	f.Start(time.Now())
	m.zoomFlight = f
}

// previewRect is the fixed centered destination for zoom flights, sized
// for the current viewport.
func (m *Model) previewRect() anim.Rect {
	w := 3 * m.geom.lay.CardW
	h := 3 * m.geom.lay.CardH
	regionW := float64(m.width) * cellW
	regionH := float64(m.height-chromeRows()) * cellH
	return anim.Rect{X: (regionW - w) / 2, Y: (regionH - h) / 2, W: w, H: h}
}

func (m *Model) moveSel(delta int) {
	n := len(m.deps.Board.Placed())
	if n == 0 {
		return
	}
	m.sel = (m.sel + delta + n) % n
}

func (m *Model) clampSel() {
	if n := len(m.deps.Board.Placed()); m.sel >= n && n > 0 {
		m.sel = n - 1
	} else if n == 0 {
		m.sel = 0
	}
}

func chromeRows() int { return 3 } // banner + status + help

func (m *Model) recomputeLayout() {
	boardCols := m.width - pileStrip
	boardRows := m.height - chromeRows()
	region := layout.Region{
		W: float64(boardCols) * cellW,
		H: float64(boardRows) * cellH,
	}
	lay, err := layout.Compute(m.deps.Board.SpreadID(), region, region.W)
	if err != nil {
		m.deps.Logger.Error("layout solve failed", zap.Error(err))
		return
	}
	m.geom.lay = lay
	m.geom.deck = anim.Rect{
		X: -float64(pileStrip-2) * cellW,
		Y: region.H/2 - lay.CardH/2,
		W: lay.CardW,
		H: lay.CardH,
	}
	m.runner.viewportH = region.H
}

func (m *Model) failStatus(err error) {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		m.status = "session expired — run `tarion login` and try again"
	case errors.Is(err, api.ErrQuotaExhausted):
		m.status = "no spreads left in this period"
	case errors.Is(err, board.ErrBusy), errors.Is(err, board.ErrSpreadFull),
		errors.Is(err, board.ErrPileEmpty), errors.Is(err, board.ErrNoCards):
		m.status = err.Error()
	default:
		m.status = "something went wrong — try again"
		m.deps.Logger.Warn("board action failed", zap.Error(err))
	}
	m.statusErr = true
}

func (m *Model) infoStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading…"
	}

	banner := m.viewBanner()
	boardView := m.viewBoard()
	status := m.viewStatus()
	helpView := m.styles.Help.Render(m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, banner, boardView, status, helpView)
}

func (m *Model) viewBanner() string {
	spec := m.deps.Board.Spread()
	quotaText := "quota: ?"
	if remaining, known := m.deps.Gate.Remaining(); known {
		q, _ := m.deps.Gate.Quota()
		quotaText = fmt.Sprintf("spreads left: %d/%d", remaining, q.Limit)
	}
	line := fmt.Sprintf(" Tarion ✦ %s ✦ %s ✦ %d/%d cards",
		spec.DisplayName(m.deps.Locale), quotaText,
		len(m.deps.Board.Placed()), spec.Cardinality())
	if remaining, known := m.deps.Gate.Remaining(); known && remaining == 0 {
		return m.styles.BannerWarn.Render(line)
	}
	return m.styles.Banner.Render(line)
}

func (m *Model) viewStatus() string {
	if m.requesting {
		return m.styles.Status.Render(" " + m.status)
	}
	if m.statusErr {
		return m.styles.StatusError.Render(" " + m.status)
	}
	return m.styles.Status.Render(" " + m.status)
}

func (m *Model) viewBoard() string {
	rows := m.height - chromeRows()
	c := newCanvas(m.width, rows)

	lay := m.geom.lay
	cw := cellsW(lay.CardW)
	ch := cellsH(lay.CardH)

	// Draw pile.
	pileTop := rows/2 - ch/2
	c.blit(1, pileTop, pileBox(cw, ch, m.deps.Board.VisualPileCount()))

	// Empty slot outlines, then placed cards.
	placed := m.deps.Board.Placed()
	for i, s := range lay.Slots {
		x, y := m.slotCell(s)
		w, h := cw, ch
		if s.Rotation == 90 {
			w, h = cellsW(lay.CardH), cellsH(lay.CardW)
		}
		if i >= len(placed) {
			c.blit(x, y, emptySlot(w, h))
			continue
		}
		card := placed[i]
		label := "✶"
		if card.FaceUp {
			label = m.cardLabel(card)
		}
		if m.zoomIdx == i && (m.zoomOpen || m.zoomFlight != nil) {
			continue // the zoom ghost replaces the slot rendering
		}
		highlight := i == m.sel
		if m.runner.settling() && i == len(placed)-1 {
			highlight = true // landing emphasis until the spring rests
		}
		c.blit(x, y, cardBox(w, h, label, highlight, card.FaceUp))
	}

	// Draw-flight ghost.
	if m.runner.active() {
		fr := m.runner.frame
		cx := m.runner.from.CenterX() + fr.Transform.TranslateX
		cy := m.runner.from.CenterY() + fr.Transform.TranslateY
		gw, gh := maxInt(4, cw/2), maxInt(3, ch/2)
		c.blit(pileStrip+int(math.Round(cx/cellW))-gw/2, int(math.Round(cy/cellH))-gh/2,
			cardBox(gw, gh, "", false, false))
	}

	base := c.String()

	if !m.deps.LoggedIn() {
		return m.overlayCentered(base, m.styles.Overlay.Render(
			"Sign in to consult the deck\n\nRun `tarion login` in another terminal,\nthen restart this session."))
	}
	if m.zoomOpen && m.zoomIdx >= 0 && m.zoomIdx < len(placed) {
		return m.overlayCentered(base, m.viewZoom(placed[m.zoomIdx]))
	}
	return base
}

func (m *Model) viewZoom(card board.PlacedCard) string {
	entry, err := m.deps.Catalog.Card(card.ID)
	if err != nil {
		return m.styles.Zoom.Render("unknown card")
	}
	title := entry.DisplayName(m.deps.Locale)
	if card.Reversed {
		title += " (reversed)"
	}
	meaning := entry.Meaning(m.deps.Locale, card.Reversed)
	w := minInt(m.width-8, 56)
	body := lipgloss.NewStyle().Width(w).Render(meaning)
	return m.styles.Zoom.Render(m.styles.ZoomTitle.Render(title) + "\n\n" + body)
}

func (m *Model) overlayCentered(base, overlay string) string {
	rows := m.height - chromeRows()
	_ = base
	return lipgloss.Place(m.width, rows, lipgloss.Center, lipgloss.Center, overlay)
}

func (m *Model) cardLabel(card board.PlacedCard) string {
	entry, err := m.deps.Catalog.Card(card.ID)
	if err != nil {
		return "?"
	}
	name := entry.DisplayName(m.deps.Locale)
	if card.Reversed {
		name = "↓" + name
	}
	return name
}

// slotCell maps a solved slot position (px space) to canvas cells,
// shifted past the pile strip.
func (m *Model) slotCell(s layout.Slot) (int, int) {
	return pileStrip + int(math.Round(s.Left/cellW)), int(math.Round(s.Top / cellH))
}

func emptySlot(w, h int) string {
	return cardBox(w, h, "", false, true)
}

func cellsW(px float64) int { return maxInt(4, int(math.Round(px/cellW))) }
func cellsH(px float64) int { return maxInt(3, int(math.Round(px/cellH))) }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
