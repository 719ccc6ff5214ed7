package catalog

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// DefaultDeckID is the deck the board plays with unless configured otherwise.
const DefaultDeckID = "rider_waite"

// Store holds the embedded card catalog, loaded lazily on first use.
type Store struct {
	once  sync.Once
	cards map[string]Card
	order []string
	err   error
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) init() {
	raw, err := dataFS.ReadFile("data/major_arcana.yaml")
	if err != nil {
		s.err = fmt.Errorf("read embedded catalog: %w", err)
		return
	}
	var majors []Card
	if err := yaml.Unmarshal(raw, &majors); err != nil {
		s.err = fmt.Errorf("parse embedded catalog: %w", err)
		return
	}

	all := append(majors, minorArcana()...)
	s.cards = make(map[string]Card, len(all))
	s.order = make([]string, 0, len(all))
	for _, c := range all {
		if _, dup := s.cards[c.ID]; dup {
			s.err = fmt.Errorf("duplicate card id %q in catalog", c.ID)
			return
		}
		s.cards[c.ID] = c
		s.order = append(s.order, c.ID)
	}
}

// Card looks up a single catalog entry by ID.
func (s *Store) Card(id string) (Card, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return Card{}, s.err
	}
	c, ok := s.cards[id]
	if !ok {
		return Card{}, fmt.Errorf("card %q: %w", id, ErrCardNotFound)
	}
	return c, nil
}

// IDs returns every card ID in catalog order (majors first, then suits).
func (s *Store) IDs() ([]string, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return nil, s.err
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out, nil
}

var suits = []struct {
	key   string
	en    string
	theme string
}{
	{"wands", "Wands", "will, creativity and ambition"},
	{"cups", "Cups", "emotion, relationships and intuition"},
	{"swords", "Swords", "intellect, conflict and truth"},
	{"pentacles", "Pentacles", "work, money and the material world"},
}

var ranks = []struct {
	key      string
	en       string
	upright  string
	reversed string
}{
	{"ace", "Ace", "a seed of new energy in", "a blocked or delayed start in"},
	{"two", "Two", "a choice or balance forming in", "indecision or imbalance in"},
	{"three", "Three", "first visible growth in", "setbacks or scattered effort in"},
	{"four", "Four", "stability and consolidation in", "stagnation or clinging in"},
	{"five", "Five", "friction and testing in", "recovery after strife in"},
	{"six", "Six", "harmony and progress in", "nostalgia or uneven exchange in"},
	{"seven", "Seven", "assessment and patience in", "doubt or shortcuts in"},
	{"eight", "Eight", "movement and mastery in", "haste or feeling trapped in"},
	{"nine", "Nine", "near-completion and resilience in", "strain close to the finish in"},
	{"ten", "Ten", "fullness and culmination in", "overload or an ending overdue in"},
	{"page", "Page", "a curious messenger of", "immaturity or stalled news about"},
	{"knight", "Knight", "driven pursuit of", "reckless or scattered pursuit of"},
	{"queen", "Queen", "mature, receptive command of", "insecurity or manipulation around"},
	{"king", "King", "settled authority over", "rigid or domineering control over"},
}

// minorArcana derives the 56 suit cards from the rank/suit tables. The
// majors carry hand-written meanings; the minors compose theirs.
func minorArcana() []Card {
	cards := make([]Card, 0, len(suits)*len(ranks))
	for _, s := range suits {
		for _, r := range ranks {
			cards = append(cards, Card{
				ID:       fmt.Sprintf("minor_arcana.%s.%s", s.key, r.key),
				Name:     map[string]string{"en": fmt.Sprintf("%s of %s", r.en, s.en)},
				Upright:  map[string]string{"en": fmt.Sprintf("Speaks of %s %s.", r.upright, s.theme)},
				Reversed: map[string]string{"en": fmt.Sprintf("Warns of %s %s.", r.reversed, s.theme)},
				Asset:    fmt.Sprintf("%s-%s", s.key, r.key),
			})
		}
	}
	return cards
}
