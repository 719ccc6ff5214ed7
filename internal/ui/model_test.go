package ui

import (
	"testing"
	"time"

	"tarion/internal/api"
	"tarion/internal/board"
	"tarion/internal/catalog"
	"tarion/internal/events"
	"tarion/internal/gate"
	"tarion/internal/testutil"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pageFixture struct {
	svc   *testutil.SpreadAPI
	board *board.Board
	model *Model

	loggedIn bool
}

func newPageFixture(t *testing.T) *pageFixture {
	t.Helper()

	f := &pageFixture{
		svc:      &testutil.SpreadAPI{QuotaResp: api.Quota{Limit: 10, Remaining: 5}},
		loggedIn: true,
	}
	bus := events.NewBus()
	g := gate.New(f.svc, gate.NewMemSession(), bus, zap.NewNop())

	cat := catalog.NewStore()
	ids, err := cat.IDs()
	require.NoError(t, err)

	b, err := board.New(board.Config{
		SpreadID: "three",
		DeckID:   catalog.DefaultDeckID,
		Lang:     "en",
		CardIDs:  ids,
		Gate:     g,
		RNG:      &testutil.SeqRNG{Vals: []int{0, 0}},
		Logger:   zap.NewNop(),
	})
	require.NoError(t, err)
	f.board = b

	m, err := New(Deps{
		Board:         b,
		Gate:          g,
		Catalog:       cat,
		Bus:           bus,
		Logger:        zap.NewNop(),
		Locale:        "en",
		ReducedMotion: true, // flights land on the next frame tick
		LoggedIn:      func() bool { return f.loggedIn },
	})
	require.NoError(t, err)
	f.model = m

	f.model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return f
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// press delivers one key and runs any commands it spawned, feeding their
// messages back like the bubbletea runtime would.
func (f *pageFixture) press(t *testing.T, r rune) {
	t.Helper()
	_, cmd := f.model.Update(keyPress(r))
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		if _, isTick := msg.(frameMsg); isTick {
			return
		}
		_, cmd = f.model.Update(msg)
	}
}

func (f *pageFixture) tick() {
	f.model.Update(frameMsg(time.Now()))
}

func TestDrawKeyPlacesCard(t *testing.T) {
	f := newPageFixture(t)

	f.press(t, 'd')
	f.tick()

	require.Len(t, f.board.Placed(), 1)
	assert.Equal(t, 1, f.svc.StartCalls)
	assert.Equal(t, board.StateIdle, f.board.State())
}

func TestSecondDrawSkipsQuotaCall(t *testing.T) {
	f := newPageFixture(t)

	f.press(t, 'd')
	f.tick()
	f.press(t, 'd')
	f.tick()

	require.Len(t, f.board.Placed(), 2)
	assert.Equal(t, 1, f.svc.StartCalls, "one spread, one charge")
}

func TestKeysIgnoredWhileLoggedOut(t *testing.T) {
	f := newPageFixture(t)
	f.loggedIn = false

	f.press(t, 'd')
	f.tick()

	assert.Empty(t, f.board.Placed())
	assert.Zero(t, f.svc.StartCalls)
}

func TestUndoKeyReturnsCard(t *testing.T) {
	f := newPageFixture(t)

	f.press(t, 'd')
	f.tick()
	f.press(t, 'u')

	assert.Empty(t, f.board.Placed())
	assert.Equal(t, 78, f.board.VisualPileCount())
}

func TestSpreadKeyCyclesAndResets(t *testing.T) {
	f := newPageFixture(t)

	f.press(t, 'd')
	f.tick()
	f.press(t, 's')

	assert.NotEqual(t, "three", f.board.SpreadID())
	assert.Empty(t, f.board.Placed())
	assert.Equal(t, 1, f.svc.CompleteCalls)
	assert.Equal(t, board.OutcomeChanged, f.svc.LastComplete.Outcome)
}

func TestQuitKeyFiresAbandonBeacon(t *testing.T) {
	f := newPageFixture(t)

	f.press(t, 'd')
	f.tick()

	_, cmd := f.model.Update(keyPress('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, 1, f.svc.CompleteCalls)
	assert.Equal(t, board.OutcomeAbandoned, f.svc.LastComplete.Outcome)
}

func TestViewShowsPlacedCount(t *testing.T) {
	f := newPageFixture(t)

	f.press(t, 'd')
	f.tick()

	view := f.model.View()
	assert.Contains(t, view, "1/3 cards")
}
