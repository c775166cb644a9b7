package entities

import (
	"slices"

	"github.com/KirkDiggler/villainous-api/internal/errors"
)

// ActionType names a board action symbol
type ActionType string

// Board actions
const (
	ActionGainPower ActionType = "gain_power"
	ActionPlayCard  ActionType = "play_card"
	ActionActivate  ActionType = "activate"
	ActionFate      ActionType = "fate"
	ActionMoveItem  ActionType = "move_item"
	ActionMoveHero  ActionType = "move_hero"
	ActionVanquish  ActionType = "vanquish"
	ActionDiscard   ActionType = "discard"
)

// AllActionTypes lists every board action. The turn engine must handle each.
func AllActionTypes() []ActionType {
	return []ActionType{
		ActionGainPower,
		ActionPlayCard,
		ActionActivate,
		ActionFate,
		ActionMoveItem,
		ActionMoveHero,
		ActionVanquish,
		ActionDiscard,
	}
}

// ParseActionType converts a wire value into an ActionType
func ParseActionType(s string) (ActionType, bool) {
	for _, at := range AllActionTypes() {
		if string(at) == s {
			return at, true
		}
	}
	return "", false
}

// IsValid reports whether a is a known action
func (a ActionType) IsValid() bool {
	_, ok := ParseActionType(string(a))
	return ok
}

// Action is one symbol on a location. Actions with BlockedByHeroes set are
// covered once any hero stands at the location.
type Action struct {
	Type            ActionType `json:"type"`
	Value           *int       `json:"value,omitempty"`
	Description     string     `json:"description,omitempty"`
	BlockedByHeroes bool       `json:"blocked_by_heroes"`
}

// Location is one of the four spaces of a villain's board. Heroes and items
// are tracked by card id; each id appears at most once.
type Location struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Position      int      `json:"position"`
	Description   string   `json:"description,omitempty"`
	ImagePath     string   `json:"image_path,omitempty"`
	Actions       []Action `json:"actions"`
	HeroesPresent []string `json:"heroes_present,omitempty"`
	ItemsPresent  []string `json:"items_present,omitempty"`
}

// LocationConfig holds the fields used to build a Location
type LocationConfig struct {
	ID          string
	Name        string
	Position    int
	Description string
	ImagePath   string
	Actions     []Action
}

// Validate checks the configuration
func (cfg *LocationConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("id", cfg.ID, vb)
	errors.ValidateRequired("name", cfg.Name, vb)
	errors.ValidateRange("position", cfg.Position, 0, BoardSize-1, vb)
	if len(cfg.Actions) > MaxLocationActions {
		vb.Fieldf("actions", "must be no more than %d", MaxLocationActions)
	}
	for _, action := range cfg.Actions {
		if !action.Type.IsValid() {
			vb.InvalidField("actions.type", string(action.Type))
		}
	}

	return vb.Build()
}

// NewLocation validates cfg and builds an empty Location
func NewLocation(cfg *LocationConfig) (*Location, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("location config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid location %q", cfg.ID)
	}

	return &Location{
		ID:          cfg.ID,
		Name:        cfg.Name,
		Position:    cfg.Position,
		Description: cfg.Description,
		ImagePath:   cfg.ImagePath,
		Actions:     slices.Clone(cfg.Actions),
	}, nil
}

// GetID implements core.Entity
func (l *Location) GetID() string {
	return l.ID
}

// GetType implements core.Entity
func (l *Location) GetType() string {
	return "location"
}

// HasHeroes reports whether any hero is present
func (l *Location) HasHeroes() bool {
	return len(l.HeroesPresent) > 0
}

// HasHero reports whether the hero id is present
func (l *Location) HasHero(heroID string) bool {
	return slices.Contains(l.HeroesPresent, heroID)
}

// HasItem reports whether the item id is present
func (l *Location) HasItem(itemID string) bool {
	return slices.Contains(l.ItemsPresent, itemID)
}

// AddHero places a hero. Adding a hero already present is a no-op.
func (l *Location) AddHero(heroID string) {
	if !l.HasHero(heroID) {
		l.HeroesPresent = append(l.HeroesPresent, heroID)
	}
}

// RemoveHero removes a hero, reporting whether it was present
func (l *Location) RemoveHero(heroID string) bool {
	i := slices.Index(l.HeroesPresent, heroID)
	if i < 0 {
		return false
	}
	l.HeroesPresent = slices.Delete(l.HeroesPresent, i, i+1)
	return true
}

// AddItem places an item. Adding an item already present is a no-op.
func (l *Location) AddItem(itemID string) {
	if !l.HasItem(itemID) {
		l.ItemsPresent = append(l.ItemsPresent, itemID)
	}
}

// RemoveItem removes an item, reporting whether it was present
func (l *Location) RemoveItem(itemID string) bool {
	i := slices.Index(l.ItemsPresent, itemID)
	if i < 0 {
		return false
	}
	l.ItemsPresent = slices.Delete(l.ItemsPresent, i, i+1)
	return true
}

// AvailableActions returns the actions not covered by heroes, in printed
// order.
func (l *Location) AvailableActions() []Action {
	heroes := l.HasHeroes()
	out := make([]Action, 0, len(l.Actions))
	for _, action := range l.Actions {
		if heroes && action.BlockedByHeroes {
			continue
		}
		out = append(out, action)
	}
	return out
}

// ActionOfType returns the first printed action of type t, covered or not
func (l *Location) ActionOfType(t ActionType) *Action {
	for i := range l.Actions {
		if l.Actions[i].Type == t {
			action := l.Actions[i]
			return &action
		}
	}
	return nil
}

// CanPerform reports whether an action of type t is currently available
func (l *Location) CanPerform(t ActionType) bool {
	return l.AvailableAction(t) != nil
}

// AvailableAction returns the first available action of type t
func (l *Location) AvailableAction(t ActionType) *Action {
	for _, action := range l.AvailableActions() {
		if action.Type == t {
			return &action
		}
	}
	return nil
}

// Clone returns a deep copy, used to give every player a private board
func (l *Location) Clone() *Location {
	clone := *l
	clone.Actions = slices.Clone(l.Actions)
	clone.HeroesPresent = slices.Clone(l.HeroesPresent)
	clone.ItemsPresent = slices.Clone(l.ItemsPresent)
	return &clone
}
