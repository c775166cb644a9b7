package entities

// zone is an ordered pile of cards. Index 0 is the top.
type zone struct {
	cards []*Card
}

// Size returns the number of cards in the zone
func (z *zone) Size() int {
	return len(z.cards)
}

// IsEmpty reports whether the zone has no cards
func (z *zone) IsEmpty() bool {
	return len(z.cards) == 0
}

// Cards returns a copy of the zone contents, top first
func (z *zone) Cards() []*Card {
	out := make([]*Card, len(z.cards))
	copy(out, z.cards)
	return out
}

// Top returns the top card without removing it
func (z *zone) Top() *Card {
	if len(z.cards) == 0 {
		return nil
	}
	return z.cards[0]
}

// PeekTop returns up to n cards from the top without removing them
func (z *zone) PeekTop(n int) []*Card {
	if n > len(z.cards) {
		n = len(z.cards)
	}
	if n <= 0 {
		return nil
	}
	out := make([]*Card, n)
	copy(out, z.cards[:n])
	return out
}

// Contains reports whether this exact card is in the zone
func (z *zone) Contains(card *Card) bool {
	return z.indexOf(card) >= 0
}

// FindByID returns the first card with the given id
func (z *zone) FindByID(id string) *Card {
	for _, card := range z.cards {
		if card.ID == id {
			return card
		}
	}
	return nil
}

// FilterByCost returns cards costing at most maxCost
func (z *zone) FilterByCost(maxCost int) []*Card {
	var out []*Card
	for _, card := range z.cards {
		if card.Cost <= maxCost {
			out = append(out, card)
		}
	}
	return out
}

// ByCategory returns cards of the given category
func (z *zone) ByCategory(category CardCategory) []*Card {
	var out []*Card
	for _, card := range z.cards {
		if card.Category == category {
			out = append(out, card)
		}
	}
	return out
}

// Remove takes this exact card out of the zone
func (z *zone) Remove(card *Card) bool {
	i := z.indexOf(card)
	if i < 0 {
		return false
	}
	z.cards = append(z.cards[:i], z.cards[i+1:]...)
	return true
}

func (z *zone) indexOf(card *Card) int {
	if card == nil {
		return -1
	}
	for i, c := range z.cards {
		if c == card {
			return i
		}
	}
	return -1
}

func (z *zone) pushTop(card *Card) {
	z.cards = append([]*Card{card}, z.cards...)
}

func (z *zone) pushBottom(card *Card) {
	z.cards = append(z.cards, card)
}

func (z *zone) popTop() *Card {
	if len(z.cards) == 0 {
		return nil
	}
	top := z.cards[0]
	z.cards = z.cards[1:]
	return top
}
