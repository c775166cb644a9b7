package entities

import (
	"slices"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/villainous-api/internal/errors"
	"github.com/KirkDiggler/villainous-api/internal/pkg/shuffle"
)

// TurnPhase is where a player stands within their turn
type TurnPhase string

// Turn phases. PhaseDraw is reserved; the turn engine never enters it.
const (
	PhaseMove    TurnPhase = "move"
	PhaseActions TurnPhase = "actions"
	PhaseDraw    TurnPhase = "draw"
	PhaseEnd     TurnPhase = "end"
)

var (
	_ core.Entity = (*Player)(nil)
	_ core.Entity = (*Location)(nil)
)

// Player is one villain at the table. A player owns its zones and board
// exclusively.
type Player struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	VillainID            string       `json:"villain"`
	Power                int          `json:"power"`
	Hand                 *Hand        `json:"hand"`
	VillainDeck          *Deck        `json:"villain_deck"`
	FateDeck             *Deck        `json:"fate_deck"`
	Discard              *DiscardPile `json:"discard"`
	FateDiscard          *DiscardPile `json:"fate_discard"`
	Locations            []*Location  `json:"locations"`
	CurrentLocationIndex int          `json:"current_location"`
	AlliesInPlay         []*Card      `json:"allies_in_play,omitempty"`
	ItemsInPlay          []*Card      `json:"items_in_play,omitempty"`
	ConditionsInPlay     []*Card      `json:"conditions_in_play,omitempty"`
	// FateInPlay holds fate cards an opponent placed on this board
	FateInPlay       []*Card   `json:"fate_in_play,omitempty"`
	DefeatedHeroes   []string  `json:"defeated_heroes,omitempty"`
	HasWon           bool      `json:"has_won"`
	Phase            TurnPhase `json:"phase"`
	ActionsRemaining int       `json:"actions_remaining"`
}

// PlayerConfig holds what a new player is dealt
type PlayerConfig struct {
	ID           string
	Name         string
	VillainID    string
	Locations    []*Location
	VillainCards []*Card
	FateCards    []*Card
	HandSize     int
	Shuffler     shuffle.Shuffler
}

// Validate checks the configuration
func (cfg *PlayerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("id", cfg.ID, vb)
	errors.ValidateRequired("name", cfg.Name, vb)
	errors.ValidateRequired("villain_id", cfg.VillainID, vb)
	if len(cfg.Locations) > BoardSize {
		vb.Fieldf("locations", "must be no more than %d", BoardSize)
	}

	return vb.Build()
}

// NewPlayer builds a player with shuffled decks and an empty hand. The
// board is sorted by position.
func NewPlayer(cfg *PlayerConfig) (*Player, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("player config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid player config")
	}

	locations := slices.Clone(cfg.Locations)
	slices.SortFunc(locations, func(a, b *Location) int {
		return a.Position - b.Position
	})

	p := &Player{
		ID:          cfg.ID,
		Name:        cfg.Name,
		VillainID:   cfg.VillainID,
		Hand:        NewHand(cfg.HandSize),
		VillainDeck: NewDeck(cfg.VillainCards, cfg.Shuffler),
		FateDeck:    NewDeck(cfg.FateCards, cfg.Shuffler),
		Discard:     NewDiscardPile(cfg.Shuffler),
		FateDiscard: NewDiscardPile(cfg.Shuffler),
		Locations:   locations,
		Phase:       PhaseMove,
	}
	p.VillainDeck.Shuffle()
	p.FateDeck.Shuffle()

	return p, nil
}

// GetID implements core.Entity
func (p *Player) GetID() string {
	return p.ID
}

// GetType implements core.Entity
func (p *Player) GetType() string {
	return "player"
}

// SetShuffler points every zone at shuffler. Called after a player is
// restored from storage.
func (p *Player) SetShuffler(shuffler shuffle.Shuffler) {
	p.VillainDeck.SetShuffler(shuffler)
	p.FateDeck.SetShuffler(shuffler)
	p.Discard.SetShuffler(shuffler)
	p.FateDiscard.SetShuffler(shuffler)
}

// CanMoveTo reports whether the villain may move to pos. Any other location
// on the board counts as reachable.
func (p *Player) CanMoveTo(pos int) bool {
	return pos >= 0 && pos < BoardSize &&
		pos != p.CurrentLocationIndex &&
		pos < len(p.Locations)
}

// MoveTo moves the villain if CanMoveTo allows it
func (p *Player) MoveTo(pos int) bool {
	if !p.CanMoveTo(pos) {
		return false
	}
	p.CurrentLocationIndex = pos
	return true
}

// ValidMovePositions lists the positions the villain can move to
func (p *Player) ValidMovePositions() []int {
	var out []int
	for pos := 0; pos < len(p.Locations); pos++ {
		if p.CanMoveTo(pos) {
			out = append(out, pos)
		}
	}
	return out
}

// CurrentLocation returns the location the villain stands on, nil without a
// board.
func (p *Player) CurrentLocation() *Location {
	return p.LocationAt(p.CurrentLocationIndex)
}

// LocationAt returns the location at board index pos
func (p *Player) LocationAt(pos int) *Location {
	if pos < 0 || pos >= len(p.Locations) {
		return nil
	}
	return p.Locations[pos]
}

// LocationByID returns the board location with the given id
func (p *Player) LocationByID(id string) *Location {
	for _, loc := range p.Locations {
		if loc.ID == id {
			return loc
		}
	}
	return nil
}

// GainPower adds amount, never dropping below zero
func (p *Player) GainPower(amount int) {
	p.Power = max(0, p.Power+amount)
}

// SpendPower deducts amount when the player can afford it
func (p *Player) SpendPower(amount int) bool {
	if amount < 0 || p.Power < amount {
		return false
	}
	p.Power -= amount
	return true
}

// DrawCard draws from the villain deck into the hand, or from the fate deck
// back to the caller. An empty deck is first refilled from its discard.
// Returns nil when nothing can be drawn or, for the villain deck, when the
// hand is already full.
func (p *Player) DrawCard(fromFate bool) *Card {
	deck, discard := p.VillainDeck, p.Discard
	if fromFate {
		deck, discard = p.FateDeck, p.FateDiscard
	} else if p.Hand.IsFull() {
		return nil
	}

	if deck.IsEmpty() {
		if discard.IsEmpty() {
			return nil
		}
		for _, card := range discard.TakeAll() {
			deck.AddBottom(card)
		}
		deck.Shuffle()
	}

	card := deck.Draw()
	if card != nil && !fromFate {
		p.Hand.Add(card)
	}
	return card
}

// PlayCard pays for a card in hand and puts it into play. A location
// restriction is only checked when locationID is given. Items played at a
// location on this board are placed there.
func (p *Player) PlayCard(card *Card, locationID string) bool {
	if card == nil || !p.Hand.Contains(card) {
		return false
	}
	if p.Power < card.Cost {
		return false
	}
	if locationID != "" && !card.IsPlayableAt(locationID) {
		return false
	}

	p.SpendPower(card.Cost)
	p.Hand.Play(card)

	switch card.Category {
	case CardCategoryAlly:
		p.AlliesInPlay = append(p.AlliesInPlay, card)
	case CardCategoryItem, CardCategoryItemHero:
		p.ItemsInPlay = append(p.ItemsInPlay, card)
		if loc := p.LocationByID(locationID); loc != nil {
			loc.AddItem(card.ID)
		}
	case CardCategoryCondition:
		p.ConditionsInPlay = append(p.ConditionsInPlay, card)
	default:
		p.Discard.Add(card)
	}

	return true
}

// DiscardCard moves a card from hand to the discard pile
func (p *Player) DiscardCard(card *Card) bool {
	if card == nil || !p.Hand.Remove(card) {
		return false
	}
	p.Discard.Add(card)
	return true
}

// RefillHand draws until the hand holds target cards, the hand is full, or
// the villain deck and discard are both exhausted.
func (p *Player) RefillHand(target int) {
	for p.Hand.Size() < target {
		if p.DrawCard(false) == nil {
			return
		}
	}
}

// TotalStrength sums ally strength. With a location id only allies bound to
// that location count.
func (p *Player) TotalStrength(locationID string) int {
	total := 0
	for _, ally := range p.AlliesInPlay {
		if locationID == "" || ally.LocationRestriction == locationID {
			total += ally.StrengthValue()
		}
	}
	return total
}

// HandSize returns the number of cards in hand
func (p *Player) HandSize() int {
	return p.Hand.Size()
}

// DeckSize returns the cards left in the villain deck
func (p *Player) DeckSize() int {
	return p.VillainDeck.Size()
}

// FindInHand returns the first hand card with the given id
func (p *Player) FindInHand(cardID string) *Card {
	return p.Hand.FindByID(cardID)
}

// FindInPlay returns an in-play ally or item with the given id
func (p *Player) FindInPlay(cardID string) *Card {
	for _, zone := range [][]*Card{p.AlliesInPlay, p.ItemsInPlay} {
		for _, card := range zone {
			if card.ID == cardID {
				return card
			}
		}
	}
	return nil
}

// RecordDefeatedHero notes that heroID was vanquished on this board
func (p *Player) RecordDefeatedHero(heroID string) {
	if !slices.Contains(p.DefeatedHeroes, heroID) {
		p.DefeatedHeroes = append(p.DefeatedHeroes, heroID)
	}
}

// HasDefeated reports whether heroID was vanquished on this board
func (p *Player) HasDefeated(heroID string) bool {
	return slices.Contains(p.DefeatedHeroes, heroID)
}

// HeroLocation returns the board location currently holding heroID
func (p *Player) HeroLocation(heroID string) *Location {
	for _, loc := range p.Locations {
		if loc.HasHero(heroID) {
			return loc
		}
	}
	return nil
}

// ItemLocation returns the board location currently holding itemID
func (p *Player) ItemLocation(itemID string) *Location {
	for _, loc := range p.Locations {
		if loc.HasItem(itemID) {
			return loc
		}
	}
	return nil
}

// TakeFateCard removes a fate card this board holds and returns it
func (p *Player) TakeFateCard(cardID string) *Card {
	for i, card := range p.FateInPlay {
		if card.ID == cardID {
			p.FateInPlay = slices.Delete(p.FateInPlay, i, i+1)
			return card
		}
	}
	return nil
}
