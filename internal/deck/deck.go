// Package deck shuffles prompt cards and deals them into player hands.
package deck

import (
	"github.com/lox/pitango/internal/randutil"
)

// Card is a prompt card held in a hand.
type Card struct {
	Text string `json:"text"`
	Used bool   `json:"used"`
}

// Hand is the ordered set of cards dealt to one player.
type Hand []Card

// Remaining returns the number of unused cards in the hand.
func (h Hand) Remaining() int {
	n := 0
	for _, c := range h {
		if !c.Used {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the hand.
func (h Hand) Clone() Hand {
	if h == nil {
		return nil
	}
	out := make(Hand, len(h))
	copy(out, h)
	return out
}

// Deck is an ordered pile of card texts dealt from the front.
type Deck struct {
	cards []string
	rng   randutil.Source
}

// NewDeck creates a deck over a copy of cards. The caller's slice is never
// reordered by Shuffle.
func NewDeck(cards []string, rng randutil.Source) *Deck {
	own := make([]string, len(cards))
	copy(own, cards)
	return &Deck{cards: own, rng: rng}
}

// Shuffle permutes the remaining cards with Fisher-Yates.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := int(d.rng.Float64() * float64(i+1))
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the top card from the deck
func (d *Deck) Deal() (string, bool) {
	if len(d.cards) == 0 {
		return "", false
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the remaining cards in deal order.
func (d *Deck) Cards() []string {
	out := make([]string, len(d.cards))
	copy(out, d.cards)
	return out
}

// Shuffle returns a shuffled copy of cards drawn from rng.
func Shuffle(cards []string, rng randutil.Source) []string {
	d := NewDeck(cards, rng)
	d.Shuffle()
	return d.cards
}
