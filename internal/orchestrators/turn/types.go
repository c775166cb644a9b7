package turn

import (
	"fmt"

	"github.com/KirkDiggler/villainous-api/internal/entities"
	"github.com/KirkDiggler/villainous-api/internal/errors"
)

// Result reports a turn step. Rule violations come back as a failed Result
// and leave game state untouched.
type Result struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Code    errors.Code    `json:"code,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// Params carries the optional arguments of an action. Each action reads
// only the fields it needs.
type Params struct {
	CardID         string
	CardIDs        []string
	TargetID       string
	HeroID         string
	ItemID         string
	TargetLocation *int
	TargetPlayer   *entities.Player
}

func succeed(data map[string]any, format string, args ...any) *Result {
	return &Result{Success: true, Message: fmt.Sprintf(format, args...), Data: data}
}

func fail(code errors.Code, format string, args ...any) *Result {
	return &Result{Code: code, Message: fmt.Sprintf(format, args...)}
}
