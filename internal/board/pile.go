package board

import "math/rand/v2"

// Pile is the shuffled draw pile: an ordered stack of card IDs. The head
// is the next card drawn.
type Pile struct {
	cards []string
}

// NewPile creates a shuffled pile from the given card IDs.
func NewPile(ids []string) *Pile {
	p := &Pile{cards: make([]string, len(ids))}
	copy(p.cards, ids)
	p.Shuffle()
	return p
}

func (p *Pile) Shuffle() {
	rand.Shuffle(len(p.cards), func(i, j int) {
		p.cards[i], p.cards[j] = p.cards[j], p.cards[i]
	})
}

// Peek returns the head card without removing it.
func (p *Pile) Peek() (string, bool) {
	if len(p.cards) == 0 {
		return "", false
	}
	return p.cards[0], true
}

// Pop removes and returns the head card.
func (p *Pile) Pop() (string, bool) {
	if len(p.cards) == 0 {
		return "", false
	}
	head := p.cards[0]
	p.cards = p.cards[1:]
	return head, true
}

// PushFront puts a card back on top of the pile (undo).
func (p *Pile) PushFront(id string) {
	p.cards = append([]string{id}, p.cards...)
}

// Len returns the number of cards remaining.
func (p *Pile) Len() int {
	return len(p.cards)
}
