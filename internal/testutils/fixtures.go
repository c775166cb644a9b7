package testutils

import (
	"fmt"

	"github.com/KirkDiggler/villainous-api/internal/entities"
)

// NoShuffle keeps every zone in the order it was built
type NoShuffle struct{}

// Shuffle does nothing
func (NoShuffle) Shuffle(int, func(i, j int)) {}

// Ally returns an ally card
func Ally(id string, cost, strength int) *entities.Card {
	return &entities.Card{
		ID:       id,
		Name:     id,
		Category: entities.CardCategoryAlly,
		Cost:     cost,
		Strength: entities.IntPtr(strength),
	}
}

// Item returns an item card
func Item(id string, cost int) *entities.Card {
	return &entities.Card{ID: id, Name: id, Category: entities.CardCategoryItem, Cost: cost}
}

// Condition returns a condition card
func Condition(id string, cost int) *entities.Card {
	return &entities.Card{ID: id, Name: id, Category: entities.CardCategoryCondition, Cost: cost}
}

// EffectCard returns an immediate effect card
func EffectCard(id string, cost int, effects ...entities.Effect) *entities.Card {
	return &entities.Card{
		ID:       id,
		Name:     id,
		Category: entities.CardCategoryEffect,
		Cost:     cost,
		Effects:  effects,
	}
}

// Hero returns a fate hero card
func Hero(id string, strength int) *entities.Card {
	return &entities.Card{
		ID:       id,
		Name:     id,
		Category: entities.CardCategoryHero,
		Strength: entities.IntPtr(strength),
	}
}

// Cards returns n cheap effect cards named prefix_1..prefix_n
func Cards(prefix string, n int) []*entities.Card {
	out := make([]*entities.Card, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, EffectCard(fmt.Sprintf("%s_%d", prefix, i), 1))
	}
	return out
}

// Action builds a board action; value 0 means no value
func Action(t entities.ActionType, value int, blocked bool) entities.Action {
	action := entities.Action{Type: t, BlockedByHeroes: blocked}
	if value > 0 {
		action.Value = entities.IntPtr(value)
	}
	return action
}

// Location builds an empty location with the given actions
func Location(id string, position int, actions ...entities.Action) *entities.Location {
	return &entities.Location{
		ID:       id,
		Name:     id,
		Position: position,
		Actions:  actions,
	}
}

// Board returns four locations named prefix_0..prefix_3. Every location can
// gain 2 power and play a card; position 0 can also fate, vanquish and move.
func Board(prefix string) []*entities.Location {
	return []*entities.Location{
		Location(fmt.Sprintf("%s_0", prefix), 0,
			Action(entities.ActionGainPower, 2, false),
			Action(entities.ActionFate, 0, true),
			Action(entities.ActionVanquish, 0, false),
			Action(entities.ActionMoveItem, 0, false),
		),
		Location(fmt.Sprintf("%s_1", prefix), 1,
			Action(entities.ActionGainPower, 2, false),
			Action(entities.ActionPlayCard, 0, true),
			Action(entities.ActionDiscard, 0, false),
			Action(entities.ActionMoveHero, 0, false),
		),
		Location(fmt.Sprintf("%s_2", prefix), 2,
			Action(entities.ActionGainPower, 3, true),
			Action(entities.ActionPlayCard, 0, false),
			Action(entities.ActionActivate, 0, false),
		),
		Location(fmt.Sprintf("%s_3", prefix), 3,
			Action(entities.ActionGainPower, 1, false),
			Action(entities.ActionPlayCard, 0, false),
		),
	}
}
