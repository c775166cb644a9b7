package victory

import (
	"github.com/KirkDiggler/villainous-api/internal/entities"
)

// CurseEveryLocation wins with a marked item on all four locations
type CurseEveryLocation struct {
	Text     string
	Marker   Matcher
	CountKey string
}

// Description returns the objective text
func (c *CurseEveryLocation) Description() string { return c.Text }

// CheckVictory requires a full board with a marker at each location
func (c *CurseEveryLocation) CheckVictory(p *entities.Player) bool {
	if len(p.Locations) != entities.BoardSize {
		return false
	}
	for _, loc := range p.Locations {
		if !holdsItem(loc, c.Marker) {
			return false
		}
	}
	return true
}

// Progress reports marked locations
func (c *CurseEveryLocation) Progress(p *entities.Player) Progress {
	marked := 0
	status := make(map[string]bool, len(p.Locations))
	for _, loc := range p.Locations {
		has := holdsItem(loc, c.Marker)
		status[loc.Name] = has
		if has {
			marked++
		}
	}

	percentage := 0.0
	if len(p.Locations) > 0 {
		percentage = float64(marked) / entities.BoardSize * 100
	}

	return Progress{
		c.CountKey:        marked,
		"total_locations": len(p.Locations),
		"location_status": status,
		"percentage":      percentage,
	}
}

// ArtifactAndFoe wins with an artifact at a named location while a foe is
// nowhere on the board
type ArtifactAndFoe struct {
	Text        string
	IsLocation  LocationMatcher
	IsArtifact  Matcher
	IsFoe       Matcher
	ArtifactKey string
	FoeKey      string
	LocationKey string
}

// Description returns the objective text
func (c *ArtifactAndFoe) Description() string { return c.Text }

// CheckVictory reports whether the artifact is in place and the foe absent
func (c *ArtifactAndFoe) CheckVictory(p *entities.Player) bool {
	loc := findLocation(p, c.IsLocation)
	if loc == nil {
		return false
	}
	return holdsItem(loc, c.IsArtifact) && !boardHostsHero(p, c.IsFoe)
}

// Progress reports both halves of the objective
func (c *ArtifactAndFoe) Progress(p *entities.Player) Progress {
	loc := findLocation(p, c.IsLocation)
	hasArtifact := holdsItem(loc, c.IsArtifact)
	foeGone := !boardHostsHero(p, c.IsFoe)

	return Progress{
		"has_" + c.ArtifactKey:      hasArtifact,
		c.FoeKey + "_defeated":      foeGone,
		c.FoeKey + "_vanquished":    vanquished(p, c.IsFoe),
		c.LocationKey + "_location": locationName(loc),
		"objectives_completed":      count(hasArtifact, foeGone),
	}
}

// DefeatFoeAtLocation wins when a named location exists without the foe on
// it. A foe that never arrived counts the same as one who was defeated.
type DefeatFoeAtLocation struct {
	Text        string
	IsLocation  LocationMatcher
	IsFoe       Matcher
	FoeKey      string
	LocationKey string
}

// Description returns the objective text
func (c *DefeatFoeAtLocation) Description() string { return c.Text }

// CheckVictory reports whether the location is free of the foe
func (c *DefeatFoeAtLocation) CheckVictory(p *entities.Player) bool {
	loc := findLocation(p, c.IsLocation)
	if loc == nil {
		return false
	}
	return !hostsHero(loc, c.IsFoe)
}

// Progress reports where the foe stands
func (c *DefeatFoeAtLocation) Progress(p *entities.Player) Progress {
	loc := findLocation(p, c.IsLocation)
	present := loc != nil && hostsHero(loc, c.IsFoe)

	return Progress{
		c.LocationKey + "_found": loc != nil,
		c.FoeKey + "_present":    present,
		c.FoeKey + "_defeated":   !present,
		c.FoeKey + "_vanquished": vanquished(p, c.IsFoe),
		"location":               locationName(loc),
	}
}

// PowerThreshold wins with at least Target power
type PowerThreshold struct {
	Text   string
	Target int
}

// Description returns the objective text
func (c *PowerThreshold) Description() string { return c.Text }

// CheckVictory compares power against the target
func (c *PowerThreshold) CheckVictory(p *entities.Player) bool {
	return p.Power >= c.Target
}

// Progress reports power against the target
func (c *PowerThreshold) Progress(p *entities.Player) Progress {
	percentage := 100.0
	if c.Target > 0 {
		percentage = min(100, float64(p.Power)/float64(c.Target)*100)
	}
	return Progress{
		"current_power": p.Power,
		"target_power":  c.Target,
		"power_needed":  max(0, c.Target-p.Power),
		"percentage":    percentage,
	}
}

// NamedItem is one item an ItemsAtLocation objective needs
type NamedItem struct {
	Key   string
	Match Matcher
}

// ItemsAtLocation wins with every listed item at one named location
type ItemsAtLocation struct {
	Text        string
	IsLocation  LocationMatcher
	Items       []NamedItem
	LocationKey string
}

// Description returns the objective text
func (c *ItemsAtLocation) Description() string { return c.Text }

// CheckVictory reports whether all items sit at the location together
func (c *ItemsAtLocation) CheckVictory(p *entities.Player) bool {
	loc := findLocation(p, c.IsLocation)
	if loc == nil {
		return false
	}
	for _, item := range c.Items {
		if !holdsItem(loc, item.Match) {
			return false
		}
	}
	return true
}

// Progress reports which items are in place
func (c *ItemsAtLocation) Progress(p *entities.Player) Progress {
	loc := findLocation(p, c.IsLocation)
	progress := Progress{
		c.LocationKey + "_found":    loc != nil,
		c.LocationKey + "_location": locationName(loc),
		"items_needed":              len(c.Items),
	}

	collected := 0
	for _, item := range c.Items {
		has := holdsItem(loc, item.Match)
		progress["has_"+item.Key] = has
		if has {
			collected++
		}
	}
	progress["items_collected"] = collected

	return progress
}
