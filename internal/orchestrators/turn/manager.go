// Package turn runs a single player's turn: move, spend the actions of the
// new location, end.
package turn

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/villainous-api/internal/effects"
	"github.com/KirkDiggler/villainous-api/internal/entities"
	"github.com/KirkDiggler/villainous-api/internal/errors"
)

type handler func(ctx context.Context, p *entities.Player, loc *entities.Location, params *Params) *Result

// Config holds the dependencies for the turn manager
type Config struct {
	EffectApplier effects.Applier
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.EffectApplier == nil {
		vb.RequiredField("EffectApplier")
	}

	return vb.Build()
}

// Manager is the turn state machine. It holds no game state of its own and
// is safe to share between games.
type Manager struct {
	effects  effects.Applier
	handlers map[entities.ActionType]handler
}

// NewManager creates a turn manager with a handler for every action type
func NewManager(cfg *Config) (*Manager, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	m := &Manager{effects: cfg.EffectApplier}
	m.handlers = map[entities.ActionType]handler{
		entities.ActionGainPower: m.gainPower,
		entities.ActionPlayCard:  m.playCard,
		entities.ActionActivate:  m.activate,
		entities.ActionDiscard:   m.discard,
		entities.ActionVanquish:  m.vanquish,
		entities.ActionFate:      m.fate,
		entities.ActionMoveItem:  m.moveItem,
		entities.ActionMoveHero:  m.moveHero,
	}
	for _, at := range entities.AllActionTypes() {
		if _, ok := m.handlers[at]; !ok {
			return nil, errors.Internalf("no handler for action %s", at)
		}
	}

	return m, nil
}

// StartTurn opens the move phase
func (m *Manager) StartTurn(p *entities.Player) *Result {
	if p.Phase != entities.PhaseMove {
		return fail(errors.CodeFailedPrecondition, "%s is not in the move phase", p.Name)
	}
	p.ActionsRemaining = 0
	return succeed(nil, "%s starts their turn", p.Name)
}

// Move relocates the villain and opens the action phase. The action budget
// is the number of uncovered actions at arrival and is not recounted when
// heroes come or go.
func (m *Manager) Move(p *entities.Player, pos int) *Result {
	if p.Phase != entities.PhaseMove {
		return fail(errors.CodeFailedPrecondition, "not in the move phase")
	}
	if !p.CanMoveTo(pos) {
		return fail(errors.CodeInvalidArgument, "cannot move to position %d", pos)
	}

	from := p.CurrentLocation()
	p.MoveTo(pos)
	to := p.CurrentLocation()

	p.Phase = entities.PhaseActions
	p.ActionsRemaining = len(to.AvailableActions())

	slog.Debug("villain moved",
		"player_id", p.ID,
		"from", from.ID,
		"to", to.ID,
		"actions", p.ActionsRemaining,
	)

	return succeed(map[string]any{
		"old_position":      from.Position,
		"new_position":      pos,
		"actions_available": p.ActionsRemaining,
	}, "%s moves from %s to %s", p.Name, from.Name, to.Name)
}

// CanPerformAction reports whether actionType could be attempted right now
func (m *Manager) CanPerformAction(p *entities.Player, actionType entities.ActionType) bool {
	if p.Phase != entities.PhaseActions || p.ActionsRemaining <= 0 {
		return false
	}
	loc := p.CurrentLocation()
	return loc != nil && loc.CanPerform(actionType)
}

// AvailableActions lists the action types the player can attempt now
func (m *Manager) AvailableActions(p *entities.Player) []entities.ActionType {
	if p.Phase != entities.PhaseActions || p.ActionsRemaining <= 0 {
		return nil
	}
	loc := p.CurrentLocation()
	if loc == nil {
		return nil
	}

	var out []entities.ActionType
	for _, action := range loc.AvailableActions() {
		out = append(out, action.Type)
	}
	return out
}

// ValidMovePositions lists where the player may move, empty outside the
// move phase
func (m *Manager) ValidMovePositions(p *entities.Player) []int {
	if p.Phase != entities.PhaseMove {
		return nil
	}
	return p.ValidMovePositions()
}

// PerformAction spends one action. A failed handler costs nothing.
func (m *Manager) PerformAction(ctx context.Context, p *entities.Player, actionType entities.ActionType, params *Params) *Result {
	if p.Phase != entities.PhaseActions {
		return fail(errors.CodeFailedPrecondition, "not in the action phase")
	}
	if p.ActionsRemaining <= 0 {
		return fail(errors.CodeFailedPrecondition, "no actions remaining")
	}
	loc := p.CurrentLocation()
	if loc == nil {
		return fail(errors.CodeFailedPrecondition, "no current location")
	}
	h, ok := m.handlers[actionType]
	if !ok {
		return fail(errors.CodeInvalidArgument, "unknown action %s", actionType)
	}
	if !loc.CanPerform(actionType) {
		return fail(errors.CodeFailedPrecondition, "action %s is not available at %s", actionType, loc.Name)
	}
	if params == nil {
		params = &Params{}
	}

	result := h(ctx, p, loc, params)
	if !result.Success {
		return result
	}

	p.ActionsRemaining--
	if p.ActionsRemaining <= 0 {
		p.Phase = entities.PhaseEnd
	}
	return result
}

// EndTurn refills the hand and resets the player for their next turn. It
// may be called from any phase.
func (m *Manager) EndTurn(p *entities.Player) *Result {
	p.RefillHand(p.Hand.MaxSize())
	p.Phase = entities.PhaseMove
	p.ActionsRemaining = 0
	return succeed(map[string]any{"hand_size": p.Hand.Size()}, "%s ends their turn", p.Name)
}

// resolve runs card's effects for trigger and folds their outcomes into p.
// Effect failures are logged and reported but do not undo the action.
func (m *Manager) resolve(ctx context.Context, p *entities.Player, card *entities.Card, trigger entities.EffectTrigger) map[string]any {
	triggered := card.EffectsFor(trigger)
	if len(triggered) == 0 {
		return nil
	}

	report := map[string]any{}
	var notes []string
	powerBefore := p.Power
	drawn := 0

	for _, effect := range triggered {
		out, err := m.effects.Apply(ctx, &effects.EffectContext{
			Player:  p,
			Card:    card,
			Effect:  effect,
			Trigger: trigger,
		})
		if err != nil {
			slog.Warn("effect failed",
				"player_id", p.ID,
				"card_id", card.ID,
				"trigger", trigger,
				"error", err,
			)
			report["effect_error"] = errors.GetMessage(err)
			continue
		}
		if out.IsEmpty() {
			continue
		}
		p.GainPower(out.PowerDelta)
		for i := 0; i < out.Draw; i++ {
			if p.DrawCard(false) == nil {
				break
			}
			drawn++
		}
		notes = append(notes, out.Notes...)
	}

	if delta := p.Power - powerBefore; delta != 0 {
		report["effect_power"] = delta
	}
	if drawn > 0 {
		report["effect_draw"] = drawn
	}
	if len(notes) > 0 {
		report["effect_notes"] = notes
	}
	return report
}
