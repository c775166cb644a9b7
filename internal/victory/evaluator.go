package victory

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/KirkDiggler/villainous-api/internal/entities"
)

// PowerGoal is Prince John's target
const PowerGoal = 20

// Evaluator looks up each player's Condition by villain id. It is safe for
// concurrent use and shared by every game the server runs.
type Evaluator struct {
	mu         sync.RWMutex
	conditions map[string]Condition
}

// NewEvaluator returns an evaluator loaded with the base villains
func NewEvaluator() *Evaluator {
	return &Evaluator{conditions: Defaults()}
}

// Defaults returns the objectives of the base villains
func Defaults() map[string]Condition {
	return map[string]Condition{
		entities.VillainMaleficent: &CurseEveryLocation{
			Text:     "Start your turn with a Curse at each of your four locations",
			Marker:   HasPrefix("maleficent_curse"),
			CountKey: "cursed_locations",
		},
		entities.VillainJafar: &ArtifactAndFoe{
			Text:        "Have the Magic Lamp at the Cave of Wonders and defeat Aladdin",
			IsLocation:  LocationIDContains("cave_of_wonders"),
			IsArtifact:  Contains("magic_lamp"),
			IsFoe:       Contains("aladdin"),
			ArtifactKey: "magic_lamp",
			FoeKey:      "aladdin",
			LocationKey: "lamp",
		},
		entities.VillainCaptainHook: &DefeatFoeAtLocation{
			Text:        "Defeat Peter Pan at the Jolly Roger",
			IsLocation:  LocationIDContains("jolly_roger"),
			IsFoe:       Contains("peter_pan"),
			FoeKey:      "peter_pan",
			LocationKey: "jolly_roger",
		},
		entities.VillainPrinceJohn: &PowerThreshold{
			Text:   "Start your turn with at least 20 Power",
			Target: PowerGoal,
		},
		entities.VillainQueenOfHearts: &CurseEveryLocation{
			Text:     "Have a Severed Head at each of your four locations",
			Marker:   Contains("severed_head"),
			CountKey: "locations_with_heads",
		},
		entities.VillainUrsula: &ItemsAtLocation{
			Text: "Have the Trident and the Crown at Ursula's Lair",
			IsLocation: AnyLocation(
				LocationIDContains("ursula_palace"),
				LocationNameContains("palace"),
			),
			Items: []NamedItem{
				{Key: "trident", Match: Contains("trident")},
				{Key: "crown", Match: Contains("crown")},
			},
			LocationKey: "palace",
		},
	}
}

// RegisterCustom installs or replaces the condition for villainID
func (e *Evaluator) RegisterCustom(villainID string, c Condition) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.conditions[villainID] = c
	slog.Debug("registered victory condition", "villain", villainID)
}

// Condition returns the condition registered for villainID
func (e *Evaluator) Condition(villainID string) (Condition, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	c, ok := e.conditions[villainID]
	return c, ok
}

// Villains lists villains with a registered condition, sorted
func (e *Evaluator) Villains() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]string, 0, len(e.conditions))
	for id := range e.conditions {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// CheckVictory evaluates the player's objective. A met objective marks the
// player as the winner, so checking may declare victory.
func (e *Evaluator) CheckVictory(p *entities.Player) bool {
	c, ok := e.Condition(p.VillainID)
	if !ok {
		return false
	}
	if !c.CheckVictory(p) {
		return false
	}
	p.HasWon = true
	return true
}

// Progress reports the player's objective with its description attached
func (e *Evaluator) Progress(p *entities.Player) Progress {
	c, ok := e.Condition(p.VillainID)
	if !ok {
		return Progress{
			"description": "no victory condition defined",
			"villain":     p.VillainID,
		}
	}

	progress := c.Progress(p)
	progress["description"] = c.Description()
	progress["villain"] = p.VillainID
	return progress
}

// Description returns the objective text for villainID
func (e *Evaluator) Description(villainID string) string {
	c, ok := e.Condition(villainID)
	if !ok {
		return "no victory condition defined"
	}
	return c.Description()
}
