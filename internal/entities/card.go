package entities

import (
	"github.com/KirkDiggler/villainous-api/internal/errors"
)

// CardCategory is the printed type of a card
type CardCategory string

// Villain deck categories come first, fate deck categories after
const (
	CardCategoryAlly      CardCategory = "ally"
	CardCategoryItem      CardCategory = "item"
	CardCategoryEffect    CardCategory = "effect"
	CardCategoryCondition CardCategory = "condition"
	CardCategoryHero      CardCategory = "hero"
	CardCategoryEvent     CardCategory = "event"
	CardCategoryItemHero  CardCategory = "item_hero"
)

// AllCardCategories returns every category in declaration order
func AllCardCategories() []CardCategory {
	return []CardCategory{
		CardCategoryAlly,
		CardCategoryItem,
		CardCategoryEffect,
		CardCategoryCondition,
		CardCategoryHero,
		CardCategoryEvent,
		CardCategoryItemHero,
	}
}

// IsValid reports whether c is a known category
func (c CardCategory) IsValid() bool {
	for _, known := range AllCardCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// IsFate reports whether the category belongs in a fate deck
func (c CardCategory) IsFate() bool {
	return c == CardCategoryHero || c == CardCategoryEvent || c == CardCategoryItemHero
}

// EffectTrigger says when an effect fires
type EffectTrigger string

// Effect triggers
const (
	TriggerPlay     EffectTrigger = "play"
	TriggerActivate EffectTrigger = "activate"
	TriggerDiscard  EffectTrigger = "discard"
	TriggerPassive  EffectTrigger = "passive"
)

// IsValid reports whether t is a known trigger
func (t EffectTrigger) IsValid() bool {
	switch t {
	case TriggerPlay, TriggerActivate, TriggerDiscard, TriggerPassive:
		return true
	}
	return false
}

// Effect is a declarative ability printed on a card. The game engine does
// not interpret Parameters itself; it hands the effect to the configured
// effects.Applier.
type Effect struct {
	Description string         `json:"description"`
	Trigger     EffectTrigger  `json:"trigger"`
	Target      string         `json:"target,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// Card is immutable once loaded. Zones hold *Card and compare by pointer,
// so two printed copies of the same card stay distinguishable.
type Card struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	Category            CardCategory `json:"type"`
	Cost                int          `json:"cost"`
	Description         string       `json:"description,omitempty"`
	Effects             []Effect     `json:"effects,omitempty"`
	Strength            *int         `json:"strength,omitempty"`
	LocationRestriction string       `json:"location_restriction,omitempty"`
	VillainSet          string       `json:"villain_set,omitempty"`
	Expansion           string       `json:"expansion,omitempty"`
}

// CardConfig holds the fields used to build a Card
type CardConfig struct {
	ID                  string
	Name                string
	Category            CardCategory
	Cost                int
	Description         string
	Effects             []Effect
	Strength            *int
	LocationRestriction string
	VillainSet          string
	Expansion           string
}

// Validate checks the configuration
func (cfg *CardConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("id", cfg.ID, vb)
	errors.ValidateRequired("name", cfg.Name, vb)
	if !cfg.Category.IsValid() {
		vb.InvalidField("type", string(cfg.Category))
	}
	errors.ValidateMin("cost", cfg.Cost, 0, vb)
	if cfg.Strength != nil {
		errors.ValidateMin("strength", *cfg.Strength, 0, vb)
	}
	for _, effect := range cfg.Effects {
		if !effect.Trigger.IsValid() {
			vb.InvalidField("effects.trigger", string(effect.Trigger))
		}
	}

	return vb.Build()
}

// NewCard validates cfg and builds a Card
func NewCard(cfg *CardConfig) (*Card, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("card config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid card %q", cfg.ID)
	}

	return &Card{
		ID:                  cfg.ID,
		Name:                cfg.Name,
		Category:            cfg.Category,
		Cost:                cfg.Cost,
		Description:         cfg.Description,
		Effects:             cfg.Effects,
		Strength:            cfg.Strength,
		LocationRestriction: cfg.LocationRestriction,
		VillainSet:          cfg.VillainSet,
		Expansion:           cfg.Expansion,
	}, nil
}

// StrengthValue returns the printed strength, 0 when the card has none
func (c *Card) StrengthValue() int {
	if c.Strength == nil {
		return 0
	}
	return *c.Strength
}

// IsAlly reports whether the card is an ally
func (c *Card) IsAlly() bool { return c.Category == CardCategoryAlly }

// IsHero reports whether the card is a fate hero
func (c *Card) IsHero() bool { return c.Category == CardCategoryHero }

// IsItem reports whether the card is an item, including fate items
func (c *Card) IsItem() bool {
	return c.Category == CardCategoryItem || c.Category == CardCategoryItemHero
}

// IsCondition reports whether the card is a condition
func (c *Card) IsCondition() bool { return c.Category == CardCategoryCondition }

// IsPlayableAt reports whether the card may be played at locationID.
// Cards without a restriction are playable anywhere.
func (c *Card) IsPlayableAt(locationID string) bool {
	return c.LocationRestriction == "" || c.LocationRestriction == locationID
}

// EffectsFor returns the effects with the given trigger
func (c *Card) EffectsFor(trigger EffectTrigger) []Effect {
	var out []Effect
	for _, effect := range c.Effects {
		if effect.Trigger == trigger {
			out = append(out, effect)
		}
	}
	return out
}

// Copy returns a shallow copy. Effects and Strength are shared since cards
// are never mutated.
func (c *Card) Copy() *Card {
	clone := *c
	return &clone
}

// IntPtr is a helper for optional card and action values
func IntPtr(v int) *int {
	return &v
}
