package gamedata

import (
	"embed"
	"encoding/json"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/KirkDiggler/villainous-api/internal/entities"
	"github.com/KirkDiggler/villainous-api/internal/errors"
)

//go:generate mockgen -destination=mock/mock_loader.go -package=gamedatamock github.com/KirkDiggler/villainous-api/internal/gamedata Loader

//go:embed data
var embedded embed.FS

const (
	boardSuffix   = "_board.json"
	villainSuffix = "_villain.json"
	fateSuffix    = "_fate.json"
)

// CardSet is the two decks that belong to a villain
type CardSet struct {
	VillainCards []*entities.Card
	FateCards    []*entities.Card
}

// IsEmpty reports whether the set has no cards at all
func (s *CardSet) IsEmpty() bool {
	return s == nil || (len(s.VillainCards) == 0 && len(s.FateCards) == 0)
}

// Loader provides boards and card sets. Every call returns fresh copies the
// caller may mutate.
type Loader interface {
	LoadBoard(villainID string) ([]*entities.Location, error)
	LoadCardSet(villainID string) (*CardSet, error)
}

// Config configures a FileLoader
type Config struct {
	// FS holds the data. Defaults to the embedded data set.
	FS        fs.FS
	BoardsDir string
	CardsDir  string
}

// FileLoader reads boards and cards from an fs.FS and caches what it reads
type FileLoader struct {
	fsys      fs.FS
	boardsDir string
	cardsDir  string

	mu      sync.RWMutex
	boards  map[string][]*entities.Location
	villain map[string][]*entities.Card
	fate    map[string][]*entities.Card
	byID    map[string]*entities.Card
}

// NewFileLoader creates a loader. A nil config loads the embedded data.
func NewFileLoader(cfg *Config) (*FileLoader, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	fsys := cfg.FS
	if fsys == nil {
		sub, err := fs.Sub(embedded, "data")
		if err != nil {
			return nil, errors.Wrap(err, "failed to open embedded data")
		}
		fsys = sub
	}

	l := &FileLoader{
		fsys:      fsys,
		boardsDir: cfg.BoardsDir,
		cardsDir:  cfg.CardsDir,
	}
	if l.boardsDir == "" {
		l.boardsDir = "boards"
	}
	if l.cardsDir == "" {
		l.cardsDir = "cards"
	}
	l.ClearCache()

	return l, nil
}

// Default returns a loader over the embedded data set
func Default() *FileLoader {
	l, err := NewFileLoader(nil)
	if err != nil {
		panic(err)
	}
	return l
}

// ClearCache drops everything read so far
func (l *FileLoader) ClearCache() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.boards = make(map[string][]*entities.Location)
	l.villain = make(map[string][]*entities.Card)
	l.fate = make(map[string][]*entities.Card)
	l.byID = make(map[string]*entities.Card)
}

// LoadBoard returns the villain's board sorted by position
func (l *FileLoader) LoadBoard(villainID string) ([]*entities.Location, error) {
	if villainID == "" {
		return nil, errors.InvalidArgument("villain id is required")
	}

	l.mu.RLock()
	board, ok := l.boards[villainID]
	l.mu.RUnlock()

	if !ok {
		board = l.readBoard(path.Join(l.boardsDir, villainID+boardSuffix))

		l.mu.Lock()
		l.boards[villainID] = board
		l.mu.Unlock()
	}

	out := make([]*entities.Location, 0, len(board))
	for _, loc := range board {
		out = append(out, loc.Clone())
	}
	return out, nil
}

// LoadCardSet returns the villain and fate decks of a villain
func (l *FileLoader) LoadCardSet(villainID string) (*CardSet, error) {
	if villainID == "" {
		return nil, errors.InvalidArgument("villain id is required")
	}

	return &CardSet{
		VillainCards: copyCards(l.cards(l.villain, path.Join(l.cardsDir, villainID+villainSuffix), villainID)),
		FateCards:    copyCards(l.cards(l.fate, path.Join(l.cardsDir, villainID+fateSuffix), villainID)),
	}, nil
}

// CardByID returns a copy of any card loaded so far
func (l *FileLoader) CardByID(cardID string) (*entities.Card, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	card, ok := l.byID[cardID]
	if !ok {
		return nil, false
	}
	return card.Copy(), true
}

// VillainIDs lists the villains that have a villain deck, sorted
func (l *FileLoader) VillainIDs() []string {
	matches, err := fs.Glob(l.fsys, path.Join(l.cardsDir, "*"+villainSuffix))
	if err != nil {
		slog.Warn("failed to list villain decks", "dir", l.cardsDir, "error", err)
		return nil
	}

	ids := make([]string, 0, len(matches))
	for _, match := range matches {
		ids = append(ids, strings.TrimSuffix(path.Base(match), villainSuffix))
	}
	slices.Sort(ids)
	return ids
}

func (l *FileLoader) cards(cache map[string][]*entities.Card, file, villainID string) []*entities.Card {
	l.mu.RLock()
	cards, ok := cache[villainID]
	l.mu.RUnlock()
	if ok {
		return cards
	}

	cards = l.readCards(file)

	l.mu.Lock()
	defer l.mu.Unlock()
	cache[villainID] = cards
	for _, card := range cards {
		l.byID[card.ID] = card
	}
	return cards
}

func (l *FileLoader) readBoard(file string) []*entities.Location {
	raw, ok := l.read(file)
	if !ok {
		return nil
	}

	board, err := DecodeBoard(raw)
	if err != nil {
		slog.Error("invalid board file", "file", file, "error", err)
		return nil
	}
	return board
}

func (l *FileLoader) readCards(file string) []*entities.Card {
	raw, ok := l.read(file)
	if !ok {
		return nil
	}

	cards, err := DecodeCards(raw)
	if err != nil {
		slog.Error("invalid card file", "file", file, "error", err)
		return nil
	}
	return cards
}

func (l *FileLoader) read(file string) ([]byte, bool) {
	raw, err := fs.ReadFile(l.fsys, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Info("data file not found", "file", file)
		} else {
			slog.Warn("failed to read data file", "file", file, "error", err)
		}
		return nil, false
	}
	return raw, true
}

func copyCards(cards []*entities.Card) []*entities.Card {
	out := make([]*entities.Card, 0, len(cards))
	for _, card := range cards {
		out = append(out, card.Copy())
	}
	return out
}

// Static serves fixed boards and card sets, keyed by villain id
type Static struct {
	Boards   map[string][]*entities.Location
	CardSets map[string]*CardSet
}

// LoadBoard returns copies of the registered board
func (s *Static) LoadBoard(villainID string) ([]*entities.Location, error) {
	board := s.Boards[villainID]
	out := make([]*entities.Location, 0, len(board))
	for _, loc := range board {
		out = append(out, loc.Clone())
	}
	slices.SortFunc(out, func(a, b *entities.Location) int { return a.Position - b.Position })
	return out, nil
}

// LoadCardSet returns copies of the registered cards
func (s *Static) LoadCardSet(villainID string) (*CardSet, error) {
	set, ok := s.CardSets[villainID]
	if !ok {
		return &CardSet{}, nil
	}
	return &CardSet{
		VillainCards: copyCards(set.VillainCards),
		FateCards:    copyCards(set.FateCards),
	}, nil
}

// writeJSON is shared by the Save helpers
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
