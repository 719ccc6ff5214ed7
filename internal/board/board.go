// Package board is the virtual-deck state machine: the draw pile, the
// cards placed on slots, and the three-phase draw (quota permission,
// flight animation, commit). A Board belongs to one page instance and is
// driven from a single goroutine.
package board

import (
	"context"
	"errors"
	mathrand "math/rand/v2"

	"tarion/internal/anim"
	"tarion/internal/api"
	"tarion/internal/gate"
	"tarion/internal/layout"

	"go.uber.org/zap"
)

var (
	ErrPileEmpty  = errors.New("draw pile is empty")
	ErrSpreadFull = errors.New("every slot is already filled")
	ErrBusy       = errors.New("a card is already in flight")
	ErrNoCards    = errors.New("nothing placed to act on")
)

// State is the draw machine's phase.
type State int

const (
	StateIdle State = iota
	StateRequesting
	StateFlying
	StateBlocked
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequesting:
		return "requesting"
	case StateFlying:
		return "flying"
	case StateBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// Spread completion outcomes reported to the backend.
const (
	OutcomeCleared     = "cleared"
	OutcomeChanged     = "changed"
	OutcomeInterpreted = "interpreted"
	OutcomeAbandoned   = "abandoned"
)

// PlacedCard is a card committed to a slot. Reversed is decided at draw
// time and never changes; FaceUp toggles on user interaction.
type PlacedCard struct {
	ID       string
	FaceUp   bool
	Reversed bool
}

// RNG is the randomness the board needs; substituted in tests.
type RNG interface {
	IntN(n int) int
}

type stdRNG struct{}

func (stdRNG) IntN(n int) int { return mathrand.IntN(n) }

// Geometry supplies the screen rectangles the draw flight needs.
type Geometry interface {
	DeckRect() anim.Rect
	SlotRect(i int) anim.Rect
}

// Flier runs the deck-to-slot animation and reports completion. The UI
// implements it over anim.Flight; tests complete synchronously.
type Flier interface {
	Fly(from, to anim.Rect, rotation float64, onDone func())
}

// Config wires a Board.
type Config struct {
	SpreadID string
	DeckID   string
	Lang     string
	CardIDs  []string
	Gate     *gate.Gate
	Geometry Geometry
	Flier    Flier
	RNG      RNG // nil for real randomness
	Logger   *zap.Logger
}

// Board owns the pile and placed cards for one table.
type Board struct {
	spread   layout.SpreadSpec
	deckID   string
	lang     string
	cardIDs  []string
	pile     *Pile
	placed   []PlacedCard
	visual   int // optimistic pile count shown while a flight runs
	state    State
	gate     *gate.Gate
	geom     Geometry
	flier    Flier
	rng      RNG
	logger   *zap.Logger
	pendingReversed bool
}

func New(cfg Config) (*Board, error) {
	spec, err := layout.Spread(cfg.SpreadID)
	if err != nil {
		return nil, err
	}
	rng := cfg.RNG
	if rng == nil {
		rng = stdRNG{}
	}
	b := &Board{
		spread:  spec,
		deckID:  cfg.DeckID,
		lang:    cfg.Lang,
		cardIDs: cfg.CardIDs,
		pile:    NewPile(cfg.CardIDs),
		gate:    cfg.Gate,
		geom:    cfg.Geometry,
		flier:   cfg.Flier,
		rng:     rng,
		logger:  cfg.Logger,
	}
	b.visual = b.pile.Len()
	return b, nil
}

// AttachView wires the rendering surface's geometry and flight driver.
// The page calls it once during construction, before the first draw.
func (b *Board) AttachView(geom Geometry, flier Flier) error {
	if geom == nil || flier == nil {
		return errors.New("board: nil geometry or flier")
	}
	b.geom = geom
	b.flier = flier
	return nil
}

func (b *Board) State() State          { return b.state }
func (b *Board) SpreadID() string      { return b.spread.ID }
func (b *Board) Spread() layout.SpreadSpec { return b.spread }
func (b *Board) PileLen() int          { return b.pile.Len() }
func (b *Board) VisualPileCount() int  { return b.visual }

// Placed returns a copy of the committed cards, in draw order.
func (b *Board) Placed() []PlacedCard {
	out := make([]PlacedCard, len(b.placed))
	copy(out, b.placed)
	return out
}

// TakeFromDeck runs one draw. It is a no-op (with a sentinel error)
// while a flight is in progress, when the pile is empty, or when every
// slot is filled. The first draw of a fresh spread charges the quota
// through the gate; denial aborts without touching local state.
func (b *Board) TakeFromDeck(ctx context.Context) error {
	if b.state == StateFlying || b.state == StateRequesting {
		return ErrBusy
	}
	if b.pile.Len() == 0 {
		return ErrPileEmpty
	}
	if len(b.placed) >= b.spread.Cardinality() {
		return ErrSpreadFull
	}

	if _, active := b.gate.ActiveSpread(); !active {
		if !b.gate.Allows() {
			b.state = StateBlocked
			return api.ErrQuotaExhausted
		}
		b.state = StateRequesting
		if _, err := b.gate.Start(ctx, b.spread.ID, b.deckID, b.lang); err != nil {
			if errors.Is(err, api.ErrUnauthorized) || errors.Is(err, api.ErrQuotaExhausted) {
				b.state = StateBlocked
			} else {
				// Transient failure; the draw simply did not proceed.
				b.state = StateIdle
			}
			return err
		}
	}

	b.pendingReversed = b.rng.IntN(2) == 1
	tilt := float64(b.rng.IntN(9) - 4)

	b.visual--
	b.state = StateFlying
	from := b.geom.DeckRect()
	to := b.geom.SlotRect(len(b.placed))
	b.flier.Fly(from, to, tilt, b.commitDraw)
	return nil
}

// commitDraw pops the drawn card into the placed list once its flight
// lands.
func (b *Board) commitDraw() {
	id, ok := b.pile.Pop()
	if !ok {
		b.logger.Warn("flight landed on an empty pile, nothing committed")
		b.state = StateIdle
		return
	}
	b.placed = append(b.placed, PlacedCard{ID: id, Reversed: b.pendingReversed})
	b.state = StateIdle
}

// Undo removes the most recently placed card and returns it to the top
// of the pile. The quota attempt already spent on this spread is not
// refunded and the session marker stays.
func (b *Board) Undo() error {
	if b.state == StateFlying || b.state == StateRequesting {
		return ErrBusy
	}
	if len(b.placed) == 0 {
		return ErrNoCards
	}
	last := b.placed[len(b.placed)-1]
	b.placed = b.placed[:len(b.placed)-1]
	b.pile.PushFront(last.ID)
	b.visual++
	b.state = StateIdle
	return nil
}

// Flip toggles one placed card's face.
func (b *Board) Flip(i int) error {
	if i < 0 || i >= len(b.placed) {
		return ErrNoCards
	}
	b.placed[i].FaceUp = !b.placed[i].FaceUp
	return nil
}

// RevealAll turns every placed card face up; HideAll the opposite.
func (b *Board) RevealAll() {
	for i := range b.placed {
		b.placed[i].FaceUp = true
	}
}

func (b *Board) HideAll() {
	for i := range b.placed {
		b.placed[i].FaceUp = false
	}
}

// ChangeSpread completes any active spread, then resets the table for
// the new spread type with a freshly shuffled full pile. Rejected while
// a draw is in flight: the pending commit would land on the new table.
func (b *Board) ChangeSpread(ctx context.Context, spreadID string) error {
	if b.state == StateFlying || b.state == StateRequesting {
		return ErrBusy
	}
	spec, err := layout.Spread(spreadID)
	if err != nil {
		return err
	}
	b.gate.Complete(ctx, OutcomeChanged, len(b.placed))
	b.spread = spec
	b.resetTable()
	return nil
}

// Clear completes any active spread and empties the table.
func (b *Board) Clear(ctx context.Context) error {
	if b.state == StateFlying || b.state == StateRequesting {
		return ErrBusy
	}
	b.gate.Complete(ctx, OutcomeCleared, len(b.placed))
	b.resetTable()
	return nil
}

// Interpret reports the spread as read. The table keeps its cards; a
// later draw starts (and charges) a fresh spread.
func (b *Board) Interpret(ctx context.Context) error {
	if b.state == StateFlying || b.state == StateRequesting {
		return ErrBusy
	}
	b.gate.Complete(ctx, OutcomeInterpreted, len(b.placed))
	return nil
}

// Shutdown fires the best-effort completion beacon; used on page leave.
func (b *Board) Shutdown() {
	b.gate.CompleteBeacon(OutcomeAbandoned, len(b.placed))
}

func (b *Board) resetTable() {
	b.placed = nil
	b.pile = NewPile(b.cardIDs)
	b.visual = b.pile.Len()
	b.state = StateIdle
}
