package entities

import (
	"encoding/json"

	"github.com/KirkDiggler/villainous-api/internal/pkg/shuffle"
)

// Deck is a draw pile that remembers its starting contents for Reset
type Deck struct {
	zone
	original []*Card
	shuffler shuffle.Shuffler
}

// NewDeck creates a deck holding cards in the given order. A nil shuffler
// falls back to shuffle.Default.
func NewDeck(cards []*Card, shuffler shuffle.Shuffler) *Deck {
	d := &Deck{shuffler: shuffler}
	d.cards = append([]*Card(nil), cards...)
	d.original = append([]*Card(nil), cards...)
	return d
}

// SetShuffler replaces the randomness source. Decks restored from storage
// have none until one is set.
func (d *Deck) SetShuffler(shuffler shuffle.Shuffler) {
	d.shuffler = shuffler
}

// Draw removes and returns the top card, nil when empty
func (d *Deck) Draw() *Card {
	return d.popTop()
}

// DrawMany draws up to n cards, stopping if the deck runs out
func (d *Deck) DrawMany(n int) []*Card {
	var out []*Card
	for i := 0; i < n; i++ {
		card := d.Draw()
		if card == nil {
			break
		}
		out = append(out, card)
	}
	return out
}

// AddTop puts a card on top of the deck
func (d *Deck) AddTop(card *Card) {
	if card != nil {
		d.pushTop(card)
	}
}

// AddBottom puts a card at the bottom of the deck
func (d *Deck) AddBottom(card *Card) {
	if card != nil {
		d.pushBottom(card)
	}
}

// Shuffle randomizes the current order
func (d *Deck) Shuffle() {
	if d.shuffler == nil {
		d.shuffler = shuffle.Default()
	}
	d.shuffler.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Reset restores the starting contents and reshuffles them
func (d *Deck) Reset() {
	d.cards = append([]*Card(nil), d.original...)
	d.Shuffle()
}

type deckJSON struct {
	Cards    []*Card `json:"cards"`
	Original []*Card `json:"original,omitempty"`
}

// MarshalJSON encodes the deck with its reset contents
func (d *Deck) MarshalJSON() ([]byte, error) {
	return json.Marshal(deckJSON{Cards: d.zone.cards, Original: d.original})
}

// UnmarshalJSON restores a deck. The shuffler is not part of the encoding.
func (d *Deck) UnmarshalJSON(data []byte) error {
	var raw deckJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.cards = raw.Cards
	d.original = raw.Original
	return nil
}

// DiscardPile is a Deck that grows from the top
type DiscardPile struct {
	Deck
}

// NewDiscardPile returns an empty pile
func NewDiscardPile(shuffler shuffle.Shuffler) *DiscardPile {
	return &DiscardPile{Deck: Deck{shuffler: shuffler}}
}

// Add places a card on top of the pile
func (p *DiscardPile) Add(card *Card) {
	p.AddTop(card)
}

// TakeAll empties the pile and returns its cards, top first
func (p *DiscardPile) TakeAll() []*Card {
	out := p.cards
	p.cards = nil
	return out
}

// Hand holds the cards a player may play, bounded by a maximum size
type Hand struct {
	zone
	maxSize int
}

// NewHand creates an empty hand. Sizes below 1 fall back to DefaultHandSize.
func NewHand(maxSize int) *Hand {
	if maxSize < 1 {
		maxSize = DefaultHandSize
	}
	return &Hand{maxSize: maxSize}
}

// MaxSize returns the hand limit
func (h *Hand) MaxSize() int {
	return h.maxSize
}

// IsFull reports whether the hand is at its limit
func (h *Hand) IsFull() bool {
	return len(h.cards) >= h.maxSize
}

// Add appends a card, refusing when the hand is full
func (h *Hand) Add(card *Card) bool {
	if card == nil || h.IsFull() {
		return false
	}
	h.pushBottom(card)
	return true
}

// Play removes this exact card from the hand and returns it
func (h *Hand) Play(card *Card) *Card {
	if !h.Remove(card) {
		return nil
	}
	return card
}

// Cheapest returns the lowest-cost card, nil when empty
func (h *Hand) Cheapest() *Card {
	var best *Card
	for _, card := range h.cards {
		if best == nil || card.Cost < best.Cost {
			best = card
		}
	}
	return best
}

// MostExpensive returns the highest-cost card, nil when empty
func (h *Hand) MostExpensive() *Card {
	var best *Card
	for _, card := range h.cards {
		if best == nil || card.Cost > best.Cost {
			best = card
		}
	}
	return best
}

type handJSON struct {
	Cards   []*Card `json:"cards"`
	MaxSize int     `json:"max_size"`
}

// MarshalJSON encodes the hand with its limit
func (h *Hand) MarshalJSON() ([]byte, error) {
	return json.Marshal(handJSON{Cards: h.cards, MaxSize: h.maxSize})
}

// UnmarshalJSON restores a hand
func (h *Hand) UnmarshalJSON(data []byte) error {
	var raw handJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	h.cards = raw.Cards
	h.maxSize = raw.MaxSize
	if h.maxSize < 1 {
		h.maxSize = DefaultHandSize
	}
	return nil
}
