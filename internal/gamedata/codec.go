package gamedata

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/KirkDiggler/villainous-api/internal/entities"
	"github.com/KirkDiggler/villainous-api/internal/errors"
)

type boardFile struct {
	Locations []locationRecord `json:"locations"`
}

type locationRecord struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Position    int               `json:"position"`
	Description string            `json:"description,omitempty"`
	ImagePath   string            `json:"image_path,omitempty"`
	Actions     []entities.Action `json:"actions"`
}

type cardFile struct {
	Cards []cardRecord `json:"cards"`
}

type cardRecord struct {
	ID                  string                `json:"id"`
	Name                string                `json:"name"`
	Type                entities.CardCategory `json:"type"`
	Cost                int                   `json:"cost"`
	Description         string                `json:"description"`
	Effects             []entities.Effect     `json:"effects"`
	Strength            *int                  `json:"strength,omitempty"`
	LocationRestriction string                `json:"location_restriction,omitempty"`
	VillainSet          string                `json:"villain_set,omitempty"`
	Expansion           string                `json:"expansion,omitempty"`
}

// DecodeBoard parses a board file. Any invalid location fails the whole
// board.
func DecodeBoard(raw []byte) ([]*entities.Location, error) {
	var file boardFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed board file")
	}

	board := make([]*entities.Location, 0, len(file.Locations))
	for _, rec := range file.Locations {
		loc, err := entities.NewLocation(&entities.LocationConfig{
			ID:          rec.ID,
			Name:        rec.Name,
			Position:    rec.Position,
			Description: rec.Description,
			ImagePath:   rec.ImagePath,
			Actions:     rec.Actions,
		})
		if err != nil {
			return nil, err
		}
		board = append(board, loc)
	}

	slices.SortFunc(board, func(a, b *entities.Location) int {
		return a.Position - b.Position
	})
	return board, nil
}

// DecodeCards parses a card file. Any invalid card fails the whole file.
func DecodeCards(raw []byte) ([]*entities.Card, error) {
	var file cardFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed card file")
	}

	cards := make([]*entities.Card, 0, len(file.Cards))
	for _, rec := range file.Cards {
		expansion := rec.Expansion
		if expansion == "" {
			expansion = "base"
		}
		card, err := entities.NewCard(&entities.CardConfig{
			ID:                  rec.ID,
			Name:                rec.Name,
			Category:            rec.Type,
			Cost:                rec.Cost,
			Description:         rec.Description,
			Effects:             rec.Effects,
			Strength:            rec.Strength,
			LocationRestriction: rec.LocationRestriction,
			VillainSet:          rec.VillainSet,
			Expansion:           expansion,
		})
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// SaveBoard writes locations in the board file format
func SaveBoard(w io.Writer, locations []*entities.Location) error {
	file := boardFile{Locations: make([]locationRecord, 0, len(locations))}
	for _, loc := range locations {
		file.Locations = append(file.Locations, locationRecord{
			ID:          loc.ID,
			Name:        loc.Name,
			Position:    loc.Position,
			Description: loc.Description,
			ImagePath:   loc.ImagePath,
			Actions:     loc.Actions,
		})
	}

	if err := writeJSON(w, file); err != nil {
		return errors.Wrap(err, "failed to write board")
	}
	return nil
}

// SaveCards writes cards in the card file format
func SaveCards(w io.Writer, cards []*entities.Card) error {
	file := cardFile{Cards: make([]cardRecord, 0, len(cards))}
	for _, card := range cards {
		effects := card.Effects
		if effects == nil {
			effects = []entities.Effect{}
		}
		file.Cards = append(file.Cards, cardRecord{
			ID:                  card.ID,
			Name:                card.Name,
			Type:                card.Category,
			Cost:                card.Cost,
			Description:         card.Description,
			Effects:             effects,
			Strength:            card.Strength,
			LocationRestriction: card.LocationRestriction,
			VillainSet:          card.VillainSet,
			Expansion:           card.Expansion,
		})
	}

	if err := writeJSON(w, file); err != nil {
		return errors.Wrap(err, "failed to write cards")
	}
	return nil
}

// ValidateBoard checks that a board is playable: exactly four locations on
// positions 0 to 3, each with one to four actions.
func ValidateBoard(locations []*entities.Location) error {
	vb := errors.NewValidationBuilder()

	if len(locations) != entities.BoardSize {
		vb.Fieldf("locations", "must have exactly %d locations, found %d", entities.BoardSize, len(locations))
	}

	seen := make(map[int]bool, len(locations))
	for _, loc := range locations {
		field := fmt.Sprintf("locations[%s]", loc.ID)
		if loc.Position < 0 || loc.Position >= entities.BoardSize {
			vb.Fieldf(field, "position %d is out of range", loc.Position)
		} else if seen[loc.Position] {
			vb.Fieldf(field, "position %d is taken", loc.Position)
		}
		seen[loc.Position] = true

		switch n := len(loc.Actions); {
		case n == 0:
			vb.Field(field, "has no actions")
		case n > entities.MaxLocationActions:
			vb.Fieldf(field, "has too many actions (%d > %d)", n, entities.MaxLocationActions)
		}
	}

	return vb.Build()
}
