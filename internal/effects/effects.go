// Package effects applies card effects. The turn engine hands every
// triggered effect to an Applier and folds the returned Outcome back into
// the player's state.
package effects

import (
	"context"

	"github.com/KirkDiggler/villainous-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_applier.go -package=effectsmock github.com/KirkDiggler/villainous-api/internal/effects Applier

// Applier resolves one effect
type Applier interface {
	Apply(ctx context.Context, in *EffectContext) (*Outcome, error)
}

// EffectContext is what an effect may read. Player is the card owner.
type EffectContext struct {
	Player  *entities.Player
	Card    *entities.Card
	Effect  entities.Effect
	Trigger entities.EffectTrigger
}

// Outcome is the state change an effect asks for
type Outcome struct {
	PowerDelta int      `json:"power_delta,omitempty"`
	Draw       int      `json:"draw,omitempty"`
	Notes      []string `json:"notes,omitempty"`
}

// IsEmpty reports whether the outcome changes nothing
func (o *Outcome) IsEmpty() bool {
	return o == nil || (o.PowerDelta == 0 && o.Draw == 0 && len(o.Notes) == 0)
}

// Noop resolves every effect to nothing
type Noop struct{}

// Apply returns an empty outcome
func (Noop) Apply(context.Context, *EffectContext) (*Outcome, error) {
	return &Outcome{}, nil
}
