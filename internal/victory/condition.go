// Package victory decides when a villain has met their objective.
//
// Each villain maps to a Condition. The built-in conditions are five
// archetypes parameterized with the identifiers of the base villains; all of
// them are pure reads of the player's board and power.
package victory

import (
	"strings"

	"github.com/KirkDiggler/villainous-api/internal/entities"
)

// Progress is a structured, JSON-friendly report on a player's objective
type Progress map[string]any

// Condition is one villain's objective
type Condition interface {
	Description() string
	CheckVictory(p *entities.Player) bool
	Progress(p *entities.Player) Progress
}

// Matcher tests a card id
type Matcher func(id string) bool

// Contains matches ids containing marker, ignoring case
func Contains(marker string) Matcher {
	marker = strings.ToLower(marker)
	return func(id string) bool {
		return strings.Contains(strings.ToLower(id), marker)
	}
}

// HasPrefix matches ids starting with prefix, case sensitive
func HasPrefix(prefix string) Matcher {
	return func(id string) bool {
		return strings.HasPrefix(id, prefix)
	}
}

// LocationMatcher tests a board location
type LocationMatcher func(loc *entities.Location) bool

// LocationIDContains matches locations whose id contains marker, ignoring
// case
func LocationIDContains(marker string) LocationMatcher {
	match := Contains(marker)
	return func(loc *entities.Location) bool {
		return match(loc.ID)
	}
}

// AnyLocation matches when any of the matchers does
func AnyLocation(matchers ...LocationMatcher) LocationMatcher {
	return func(loc *entities.Location) bool {
		for _, m := range matchers {
			if m(loc) {
				return true
			}
		}
		return false
	}
}

// LocationNameContains matches locations whose name contains marker,
// ignoring case
func LocationNameContains(marker string) LocationMatcher {
	match := Contains(marker)
	return func(loc *entities.Location) bool {
		return match(loc.Name)
	}
}

func findLocation(p *entities.Player, match LocationMatcher) *entities.Location {
	for _, loc := range p.Locations {
		if match(loc) {
			return loc
		}
	}
	return nil
}

func holdsItem(loc *entities.Location, match Matcher) bool {
	if loc == nil {
		return false
	}
	for _, id := range loc.ItemsPresent {
		if match(id) {
			return true
		}
	}
	return false
}

func hostsHero(loc *entities.Location, match Matcher) bool {
	for _, id := range loc.HeroesPresent {
		if match(id) {
			return true
		}
	}
	return false
}

func boardHostsHero(p *entities.Player, match Matcher) bool {
	for _, loc := range p.Locations {
		if hostsHero(loc, match) {
			return true
		}
	}
	return false
}

func vanquished(p *entities.Player, match Matcher) bool {
	for _, id := range p.DefeatedHeroes {
		if match(id) {
			return true
		}
	}
	return false
}

func locationName(loc *entities.Location) string {
	if loc == nil {
		return "not found"
	}
	return loc.Name
}

func count(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
