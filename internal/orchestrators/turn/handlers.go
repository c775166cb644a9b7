package turn

import (
	"context"
	"maps"

	"github.com/KirkDiggler/villainous-api/internal/entities"
	"github.com/KirkDiggler/villainous-api/internal/errors"
)

func (m *Manager) gainPower(_ context.Context, p *entities.Player, loc *entities.Location, _ *Params) *Result {
	action := loc.AvailableAction(entities.ActionGainPower)
	if action == nil || action.Value == nil {
		return fail(errors.CodeFailedPrecondition, "gain power at %s is misconfigured", loc.Name)
	}

	p.GainPower(*action.Value)
	return succeed(map[string]any{
		"power_gained": *action.Value,
		"total_power":  p.Power,
	}, "%s gains %d power", p.Name, *action.Value)
}

func (m *Manager) playCard(ctx context.Context, p *entities.Player, loc *entities.Location, params *Params) *Result {
	if params.CardID == "" {
		return fail(errors.CodeInvalidArgument, "card_id is required")
	}
	card := p.FindInHand(params.CardID)
	if card == nil {
		return fail(errors.CodeNotFound, "card %s is not in hand", params.CardID)
	}

	at := loc
	if params.TargetLocation != nil {
		at = p.LocationAt(*params.TargetLocation)
		if at == nil {
			return fail(errors.CodeInvalidArgument, "no location at position %d", *params.TargetLocation)
		}
	}

	if p.Power < card.Cost {
		return fail(errors.CodeFailedPrecondition, "%s costs %d, %s has %d power", card.Name, card.Cost, p.Name, p.Power)
	}
	if !card.IsPlayableAt(at.ID) {
		return fail(errors.CodeFailedPrecondition, "%s can only be played at %s", card.Name, card.LocationRestriction)
	}
	if !p.PlayCard(card, at.ID) {
		return fail(errors.CodeFailedPrecondition, "cannot play %s", card.Name)
	}

	data := map[string]any{
		"card":            card.ID,
		"location":        at.ID,
		"power_remaining": p.Power,
	}
	maps.Copy(data, m.resolve(ctx, p, card, entities.TriggerPlay))
	return succeed(data, "%s plays %s", p.Name, card.Name)
}

func (m *Manager) activate(ctx context.Context, p *entities.Player, _ *entities.Location, params *Params) *Result {
	id := params.TargetID
	if id == "" {
		id = params.CardID
	}
	if id == "" {
		return fail(errors.CodeInvalidArgument, "target_id is required")
	}
	card := p.FindInPlay(id)
	if card == nil {
		return fail(errors.CodeNotFound, "%s has no ally or item %s in play", p.Name, id)
	}

	data := map[string]any{"activated_card": card.ID}
	maps.Copy(data, m.resolve(ctx, p, card, entities.TriggerActivate))
	return succeed(data, "%s activates %s", p.Name, card.Name)
}

func (m *Manager) discard(ctx context.Context, p *entities.Player, _ *entities.Location, params *Params) *Result {
	ids := params.CardIDs
	if len(ids) == 0 && params.CardID != "" {
		ids = []string{params.CardID}
	}
	if len(ids) == 0 {
		return fail(errors.CodeInvalidArgument, "card_ids is required")
	}

	var cards []*entities.Card
	for _, id := range ids {
		if card := p.FindInHand(id); card != nil && p.DiscardCard(card) {
			cards = append(cards, card)
		}
	}
	if len(cards) == 0 {
		return fail(errors.CodeNotFound, "none of the cards are in hand")
	}

	discarded := make([]string, 0, len(cards))
	data := map[string]any{}
	for _, card := range cards {
		discarded = append(discarded, card.ID)
		maps.Copy(data, m.resolve(ctx, p, card, entities.TriggerDiscard))
	}
	data["discarded_cards"] = discarded
	return succeed(data, "%s discards %d card(s)", p.Name, len(discarded))
}

// vanquish removes a hero without comparing strength to any defense value.
// The strength that would have been committed is still reported.
func (m *Manager) vanquish(_ context.Context, p *entities.Player, loc *entities.Location, params *Params) *Result {
	heroID := params.HeroID
	if heroID == "" {
		heroID = params.TargetID
	}
	if heroID == "" {
		return fail(errors.CodeInvalidArgument, "hero_id is required")
	}
	if !loc.HasHero(heroID) {
		return fail(errors.CodeNotFound, "hero %s is not at %s", heroID, loc.Name)
	}

	strength := p.TotalStrength(loc.ID)
	loc.RemoveHero(heroID)
	p.RecordDefeatedHero(heroID)
	if card := p.TakeFateCard(heroID); card != nil {
		p.FateDiscard.Add(card)
	}

	return succeed(map[string]any{
		"vanquished_hero": heroID,
		"strength_used":   strength,
		"location":        loc.ID,
	}, "%s vanquishes %s at %s", p.Name, heroID, loc.Name)
}

// fate is the only action that touches another player's board. The first
// card drawn is placed as a hero on the target's board, the second is
// discarded.
func (m *Manager) fate(_ context.Context, p *entities.Player, _ *entities.Location, params *Params) *Result {
	target := params.TargetPlayer
	if target == nil {
		return fail(errors.CodeInvalidArgument, "target player is required")
	}
	if target.ID == p.ID {
		return fail(errors.CodeInvalidArgument, "%s cannot fate themselves", p.Name)
	}

	at := target.CurrentLocation()
	if params.TargetLocation != nil {
		at = target.LocationAt(*params.TargetLocation)
	}
	if at == nil {
		return fail(errors.CodeInvalidArgument, "%s has no such location", target.Name)
	}
	if target.FateDeck.IsEmpty() && target.FateDiscard.IsEmpty() {
		return fail(errors.CodeResourceExhausted, "%s has no fate cards", target.Name)
	}

	drawn := make([]*entities.Card, 0, entities.FateDrawCount)
	for range entities.FateDrawCount {
		card := target.DrawCard(true)
		if card == nil {
			break
		}
		drawn = append(drawn, card)
	}

	played := drawn[0]
	at.AddHero(played.ID)
	target.FateInPlay = append(target.FateInPlay, played)

	data := map[string]any{
		"target":      target.ID,
		"played_card": played.ID,
		"location":    at.ID,
	}
	if len(drawn) > 1 {
		target.FateDiscard.Add(drawn[1])
		data["discarded_card"] = drawn[1].ID
	}

	return succeed(data, "%s fates %s with %s at %s", p.Name, target.Name, played.Name, at.Name)
}

func (m *Manager) moveItem(_ context.Context, p *entities.Player, _ *entities.Location, params *Params) *Result {
	if params.ItemID == "" {
		return fail(errors.CodeInvalidArgument, "item_id is required")
	}
	from := p.ItemLocation(params.ItemID)
	if from == nil {
		return fail(errors.CodeNotFound, "item %s is not on the board", params.ItemID)
	}
	to, res := relocationTarget(p, from, params)
	if res != nil {
		return res
	}

	from.RemoveItem(params.ItemID)
	to.AddItem(params.ItemID)
	return succeed(map[string]any{
		"item": params.ItemID,
		"from": from.Position,
		"to":   to.Position,
	}, "%s moves %s from %s to %s", p.Name, params.ItemID, from.Name, to.Name)
}

func (m *Manager) moveHero(_ context.Context, p *entities.Player, _ *entities.Location, params *Params) *Result {
	if params.HeroID == "" {
		return fail(errors.CodeInvalidArgument, "hero_id is required")
	}
	from := p.HeroLocation(params.HeroID)
	if from == nil {
		return fail(errors.CodeNotFound, "hero %s is not on the board", params.HeroID)
	}
	to, res := relocationTarget(p, from, params)
	if res != nil {
		return res
	}

	from.RemoveHero(params.HeroID)
	to.AddHero(params.HeroID)
	return succeed(map[string]any{
		"hero": params.HeroID,
		"from": from.Position,
		"to":   to.Position,
	}, "%s moves %s from %s to %s", p.Name, params.HeroID, from.Name, to.Name)
}

func relocationTarget(p *entities.Player, from *entities.Location, params *Params) (*entities.Location, *Result) {
	if params.TargetLocation == nil {
		return nil, fail(errors.CodeInvalidArgument, "target location is required")
	}
	pos := *params.TargetLocation
	to := p.LocationAt(pos)
	if to == nil {
		return nil, fail(errors.CodeInvalidArgument, "no location at position %d", pos)
	}
	if to == from {
		return nil, fail(errors.CodeInvalidArgument, "already at %s", from.Name)
	}
	return to, nil
}
