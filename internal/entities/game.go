package entities

import (
	"fmt"
	"slices"

	"github.com/KirkDiggler/villainous-api/internal/errors"
	"github.com/KirkDiggler/villainous-api/internal/pkg/shuffle"
)

// GameStatus is the lifecycle state of a game
type GameStatus string

// Game lifecycle
const (
	GameStatusWaiting    GameStatus = "waiting"
	GameStatusInProgress GameStatus = "in_progress"
	GameStatusFinished   GameStatus = "finished"
)

// VictoryChecker decides whether a player has met their objective.
// Checking may declare victory by setting HasWon.
type VictoryChecker interface {
	CheckVictory(p *Player) bool
}

// Game is one table: its seated players, whose turn it is and the log
type Game struct {
	ID                 string     `json:"id"`
	Players            []*Player  `json:"players"`
	CurrentPlayerIndex int        `json:"current_player"`
	TurnNumber         int        `json:"turn_number"`
	Status             GameStatus `json:"state"`
	WinnerID           string     `json:"winner,omitempty"`
	MinPlayers         int        `json:"min_players"`
	MaxPlayers         int        `json:"max_players"`
	Seated             bool       `json:"seated"`
	NextSeat           int        `json:"next_seat"`
	ActionLog          []string   `json:"action_log,omitempty"`
}

// GameConfig holds table limits for a new game
type GameConfig struct {
	ID         string
	MinPlayers int
	MaxPlayers int
}

// Validate checks the configuration
func (cfg *GameConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("id", cfg.ID, vb)
	errors.ValidateRange("min_players", cfg.MinPlayers, 1, DefaultMaxPlayers, vb)
	errors.ValidateRange("max_players", cfg.MaxPlayers, cfg.MinPlayers, DefaultMaxPlayers, vb)

	return vb.Build()
}

// NewGame creates a waiting game. Zero limits take the defaults.
func NewGame(cfg *GameConfig) (*Game, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("game config is required")
	}
	limits := *cfg
	if limits.MinPlayers == 0 {
		limits.MinPlayers = DefaultMinPlayers
	}
	if limits.MaxPlayers == 0 {
		limits.MaxPlayers = DefaultMaxPlayers
	}
	if err := limits.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid game config")
	}

	return &Game{
		ID:         limits.ID,
		TurnNumber: 1,
		Status:     GameStatusWaiting,
		MinPlayers: limits.MinPlayers,
		MaxPlayers: limits.MaxPlayers,
	}, nil
}

// IsFinished reports whether the game has ended
func (g *Game) IsFinished() bool {
	return g.Status == GameStatusFinished
}

// Log appends an entry prefixed with the turn number
func (g *Game) Log(format string, args ...any) {
	g.ActionLog = append(g.ActionLog, fmt.Sprintf("Turn %d: %s", g.TurnNumber, fmt.Sprintf(format, args...)))
}

// NextPlayerID returns the id the next seated player will get. Seat numbers
// are never reused, so a table that loses a player can still refill.
func (g *Game) NextPlayerID() string {
	seat := max(g.NextSeat, len(g.Players)) + 1
	id := fmt.Sprintf("player_%d", seat)
	for g.PlayerByID(id) != nil {
		seat++
		id = fmt.Sprintf("player_%d", seat)
	}
	return id
}

// HasVillain reports whether a seated player already plays villainID
func (g *Game) HasVillain(villainID string) bool {
	for _, p := range g.Players {
		if p.VillainID == villainID {
			return true
		}
	}
	return false
}

// AddPlayer seats a player while the game is waiting
func (g *Game) AddPlayer(p *Player) error {
	if p == nil {
		return errors.InvalidArgument("player is required")
	}
	if g.Status != GameStatusWaiting {
		return errors.FailedPrecondition("players can only join a waiting game")
	}
	if len(g.Players) >= g.MaxPlayers {
		return errors.ResourceExhausted("game is full").WithMeta("max_players", g.MaxPlayers)
	}
	if g.HasVillain(p.VillainID) {
		return errors.AlreadyExistsf("villain %s is already taken", p.VillainID)
	}
	if g.PlayerByID(p.ID) != nil {
		return errors.AlreadyExistsf("player %s already seated", p.ID)
	}

	g.NextSeat = max(g.NextSeat, len(g.Players)) + 1
	g.Players = append(g.Players, p)
	g.Log("%s joins as %s", p.Name, p.VillainID)
	return nil
}

// RemovePlayer unseats a player while the game is waiting
func (g *Game) RemovePlayer(playerID string) error {
	if g.Status != GameStatusWaiting {
		return errors.FailedPrecondition("players can only leave a waiting game")
	}

	for i, p := range g.Players {
		if p.ID == playerID {
			g.Players = slices.Delete(g.Players, i, i+1)
			g.Log("%s leaves the game", p.Name)
			return nil
		}
	}
	return errors.NotFoundf("player %s not found", playerID)
}

// SeatPlayers randomizes turn order once. Later calls do nothing.
func (g *Game) SeatPlayers(shuffler shuffle.Shuffler) {
	if g.Seated || shuffler == nil {
		return
	}
	shuffler.Shuffle(len(g.Players), func(i, j int) {
		g.Players[i], g.Players[j] = g.Players[j], g.Players[i]
	})
	g.Seated = true
}

// Start deals opening hands and hands the first turn to seat 0
func (g *Game) Start() error {
	if g.Status != GameStatusWaiting {
		return errors.FailedPrecondition("game already started")
	}
	if len(g.Players) < g.MinPlayers {
		return errors.FailedPreconditionf("need at least %d players, have %d", g.MinPlayers, len(g.Players))
	}

	for _, p := range g.Players {
		p.RefillHand(p.Hand.MaxSize())
		p.Phase = PhaseMove
		p.ActionsRemaining = 0
	}

	g.Status = GameStatusInProgress
	g.CurrentPlayerIndex = 0
	g.Log("the game begins")
	return nil
}

// End finishes the game. winner may be nil.
func (g *Game) End(winner *Player) error {
	if g.IsFinished() {
		return errors.FailedPrecondition("game is already finished")
	}

	g.Status = GameStatusFinished
	if winner == nil {
		g.Log("the game ends without a winner")
		return nil
	}

	winner.HasWon = true
	g.WinnerID = winner.ID
	g.Log("%s (%s) wins the game", winner.Name, winner.VillainID)
	return nil
}

// NextTurn closes the current seat, advances to the next one and then
// checks every player's objective. The first winner in seat order ends the
// game and is returned.
func (g *Game) NextTurn(checker VictoryChecker) (*Player, error) {
	if g.Status != GameStatusInProgress {
		return nil, errors.FailedPrecondition("game is not in progress")
	}

	if current := g.CurrentPlayer(); current != nil {
		current.RefillHand(current.Hand.MaxSize())
		current.Phase = PhaseMove
		current.ActionsRemaining = 0
	}

	g.CurrentPlayerIndex = (g.CurrentPlayerIndex + 1) % len(g.Players)
	if g.CurrentPlayerIndex == 0 {
		g.TurnNumber++
	}

	winner := g.CheckVictory(checker)
	if winner != nil {
		if err := g.End(winner); err != nil {
			return nil, err
		}
	}
	return winner, nil
}

// CheckVictory returns the first player in seat order meeting their
// objective
func (g *Game) CheckVictory(checker VictoryChecker) *Player {
	if checker == nil {
		return nil
	}
	for _, p := range g.Players {
		if checker.CheckVictory(p) {
			return p
		}
	}
	return nil
}

// CurrentPlayer returns the player whose turn it is
func (g *Game) CurrentPlayer() *Player {
	if g.CurrentPlayerIndex < 0 || g.CurrentPlayerIndex >= len(g.Players) {
		return nil
	}
	return g.Players[g.CurrentPlayerIndex]
}

// IsPlayerTurn reports whether playerID holds the current seat
func (g *Game) IsPlayerTurn(playerID string) bool {
	current := g.CurrentPlayer()
	return current != nil && current.ID == playerID
}

// PlayerByID finds a seated player
func (g *Game) PlayerByID(playerID string) *Player {
	for _, p := range g.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// Winner returns the winning player, nil while undecided
func (g *Game) Winner() *Player {
	if g.WinnerID == "" {
		return nil
	}
	return g.PlayerByID(g.WinnerID)
}

// SetShuffler re-attaches randomness to every player's zones
func (g *Game) SetShuffler(shuffler shuffle.Shuffler) {
	for _, p := range g.Players {
		p.SetShuffler(shuffler)
	}
}

// PlayerSnapshot is the public view of one seat
type PlayerSnapshot struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Villain          string    `json:"villain"`
	Power            int       `json:"power"`
	HandSize         int       `json:"hand_size"`
	Location         int       `json:"location"`
	HasWon           bool      `json:"has_won"`
	Phase            TurnPhase `json:"phase"`
	ActionsRemaining int       `json:"actions_remaining"`
}

// Snapshot is the serializable public state of a game
type Snapshot struct {
	ID            string           `json:"id"`
	State         GameStatus       `json:"state"`
	TurnNumber    int              `json:"turn_number"`
	CurrentPlayer int              `json:"current_player"`
	Players       []PlayerSnapshot `json:"players"`
	Winner        *string          `json:"winner"`
}

// Snapshot captures the public state
func (g *Game) Snapshot() *Snapshot {
	snap := &Snapshot{
		ID:            g.ID,
		State:         g.Status,
		TurnNumber:    g.TurnNumber,
		CurrentPlayer: g.CurrentPlayerIndex,
		Players:       make([]PlayerSnapshot, 0, len(g.Players)),
	}
	for _, p := range g.Players {
		snap.Players = append(snap.Players, PlayerSnapshot{
			ID:               p.ID,
			Name:             p.Name,
			Villain:          p.VillainID,
			Power:            p.Power,
			HandSize:         p.HandSize(),
			Location:         p.CurrentLocationIndex,
			HasWon:           p.HasWon,
			Phase:            p.Phase,
			ActionsRemaining: p.ActionsRemaining,
		})
	}
	if g.WinnerID != "" {
		winner := g.WinnerID
		snap.Winner = &winner
	}
	return snap
}
