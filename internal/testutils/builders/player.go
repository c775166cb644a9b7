// Package builders provides fluent builders for game test fixtures
package builders

import (
	"github.com/KirkDiggler/villainous-api/internal/entities"
	"github.com/KirkDiggler/villainous-api/internal/testutils"
)

// PlayerBuilder builds players with unshuffled decks
type PlayerBuilder struct {
	cfg       entities.PlayerConfig
	power     int
	hand      []*entities.Card
	location  int
	phase     entities.TurnPhase
	actions   int
	discard   []*entities.Card
	fateTrash []*entities.Card
}

// NewPlayerBuilder starts a maleficent player on a generic board
func NewPlayerBuilder() *PlayerBuilder {
	return &PlayerBuilder{
		cfg: entities.PlayerConfig{
			ID:        "player_1",
			Name:      "Test Villain",
			VillainID: entities.VillainMaleficent,
			Locations: testutils.Board("loc"),
			Shuffler:  testutils.NoShuffle{},
		},
		phase: entities.PhaseMove,
	}
}

// WithID sets the player id
func (b *PlayerBuilder) WithID(id string) *PlayerBuilder {
	b.cfg.ID = id
	return b
}

// WithName sets the display name
func (b *PlayerBuilder) WithName(name string) *PlayerBuilder {
	b.cfg.Name = name
	return b
}

// WithVillain sets the villain id
func (b *PlayerBuilder) WithVillain(villainID string) *PlayerBuilder {
	b.cfg.VillainID = villainID
	return b
}

// WithBoard replaces the board
func (b *PlayerBuilder) WithBoard(locations ...*entities.Location) *PlayerBuilder {
	b.cfg.Locations = locations
	return b
}

// WithVillainDeck sets the villain deck, top first
func (b *PlayerBuilder) WithVillainDeck(cards ...*entities.Card) *PlayerBuilder {
	b.cfg.VillainCards = cards
	return b
}

// WithFateDeck sets the fate deck, top first
func (b *PlayerBuilder) WithFateDeck(cards ...*entities.Card) *PlayerBuilder {
	b.cfg.FateCards = cards
	return b
}

// WithDiscard seeds the discard pile
func (b *PlayerBuilder) WithDiscard(cards ...*entities.Card) *PlayerBuilder {
	b.discard = cards
	return b
}

// WithFateDiscard seeds the fate discard pile
func (b *PlayerBuilder) WithFateDiscard(cards ...*entities.Card) *PlayerBuilder {
	b.fateTrash = cards
	return b
}

// WithHand puts cards straight into the hand
func (b *PlayerBuilder) WithHand(cards ...*entities.Card) *PlayerBuilder {
	b.hand = cards
	return b
}

// WithPower sets starting power
func (b *PlayerBuilder) WithPower(power int) *PlayerBuilder {
	b.power = power
	return b
}

// AtLocation places the villain on board index pos
func (b *PlayerBuilder) AtLocation(pos int) *PlayerBuilder {
	b.location = pos
	return b
}

// InActions puts the player in the action phase with n actions left
func (b *PlayerBuilder) InActions(n int) *PlayerBuilder {
	b.phase = entities.PhaseActions
	b.actions = n
	return b
}

// Build creates the player. It panics on invalid config since fixtures
// are expected to be valid.
func (b *PlayerBuilder) Build() *entities.Player {
	cfg := b.cfg
	p, err := entities.NewPlayer(&cfg)
	if err != nil {
		panic(err)
	}
	for _, card := range b.hand {
		p.Hand.Add(card)
	}
	for _, card := range b.discard {
		p.Discard.Add(card)
	}
	for _, card := range b.fateTrash {
		p.FateDiscard.Add(card)
	}
	p.Power = b.power
	p.CurrentLocationIndex = b.location
	p.Phase = b.phase
	p.ActionsRemaining = b.actions
	return p
}
