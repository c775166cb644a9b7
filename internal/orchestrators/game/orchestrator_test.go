package game_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/villainous-api/internal/effects"
	"github.com/KirkDiggler/villainous-api/internal/entities"
	"github.com/KirkDiggler/villainous-api/internal/errors"
	"github.com/KirkDiggler/villainous-api/internal/gamedata"
	"github.com/KirkDiggler/villainous-api/internal/orchestrators/game"
	"github.com/KirkDiggler/villainous-api/internal/orchestrators/turn"
	"github.com/KirkDiggler/villainous-api/internal/pkg/idgen"
	"github.com/KirkDiggler/villainous-api/internal/repositories/games"
	gamesmock "github.com/KirkDiggler/villainous-api/internal/repositories/games/mock"
	"github.com/KirkDiggler/villainous-api/internal/testutils"
	"github.com/KirkDiggler/villainous-api/internal/victory"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctx          context.Context
	repo         games.Repository
	orchestrator game.Service
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func staticLoader() *gamedata.Static {
	jafarBoard := testutils.Board("jafar")
	jafarBoard[3].ID = "jafar_cave_of_wonders"
	jafarBoard[3].Name = "Cave of Wonders"

	return &gamedata.Static{
		Boards: map[string][]*entities.Location{
			entities.VillainMaleficent: testutils.Board("mal"),
			entities.VillainJafar:      jafarBoard,
			entities.VillainUrsula:     testutils.Board("ursula"),
		},
		CardSets: map[string]*gamedata.CardSet{
			entities.VillainMaleficent: {
				VillainCards: testutils.Cards("mal", 6),
				FateCards:    []*entities.Card{testutils.Hero("flora", 2), testutils.Hero("fauna", 2)},
			},
			entities.VillainJafar: {
				VillainCards: append([]*entities.Card{testutils.Item("jafar_magic_lamp", 0)}, testutils.Cards("jafar", 5)...),
				FateCards:    []*entities.Card{testutils.Hero("jafar_aladdin", 3)},
			},
		},
	}
}

func newTurnManager() *turn.Manager {
	m, err := turn.NewManager(&turn.Config{EffectApplier: effects.Noop{}})
	if err != nil {
		panic(err)
	}
	return m
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.useLoader(staticLoader())
}

func (s *OrchestratorTestSuite) useLoader(loader gamedata.Loader) {
	s.repo = games.NewInMemory()

	var err error
	s.orchestrator, err = game.NewOrchestrator(&game.Config{
		Repository:  s.repo,
		Loader:      loader,
		TurnManager: newTurnManager(),
		Victory:     victory.NewEvaluator(),
		IDGenerator: idgen.NewSequential("game"),
		Shuffler:    testutils.NoShuffle{},
	})
	s.Require().NoError(err)
}

// startTwoPlayerGame seats maleficent as player_1 and jafar as player_2
func (s *OrchestratorTestSuite) startTwoPlayerGame() string {
	return s.startGame(entities.VillainMaleficent, entities.VillainJafar)
}

// startGame seats villains in order as player_1, player_2, ...
func (s *OrchestratorTestSuite) startGame(villains ...string) string {
	created, err := s.orchestrator.CreateGame(s.ctx, &game.CreateGameInput{})
	s.Require().NoError(err)

	for _, villain := range villains {
		_, err := s.orchestrator.AddPlayer(s.ctx, &game.AddPlayerInput{
			GameID:    created.GameID,
			Name:      villain,
			VillainID: villain,
		})
		s.Require().NoError(err)
	}

	_, err = s.orchestrator.StartGame(s.ctx, &game.StartGameInput{GameID: created.GameID})
	s.Require().NoError(err)
	return created.GameID
}

func (s *OrchestratorTestSuite) move(gameID, playerID string, pos int) *turn.Result {
	out, err := s.orchestrator.Move(s.ctx, &game.MoveInput{GameID: gameID, PlayerID: playerID, Position: pos})
	s.Require().NoError(err)
	return out.Result
}

func (s *OrchestratorTestSuite) act(gameID, playerID string, action entities.ActionType, params game.ActionParams) *game.PerformActionOutput {
	out, err := s.orchestrator.PerformAction(s.ctx, &game.PerformActionInput{
		GameID:   gameID,
		PlayerID: playerID,
		Action:   action,
		Params:   params,
	})
	s.Require().NoError(err)
	return out
}

func (s *OrchestratorTestSuite) endTurn(gameID, playerID string) *game.EndTurnOutput {
	out, err := s.orchestrator.EndTurn(s.ctx, &game.EndTurnInput{GameID: gameID, PlayerID: playerID})
	s.Require().NoError(err)
	return out
}

func (s *OrchestratorTestSuite) state(gameID string) *game.GetStateOutput {
	out, err := s.orchestrator.GetState(s.ctx, &game.GetStateInput{GameID: gameID})
	s.Require().NoError(err)
	return out
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidation() {
	_, err := game.NewOrchestrator(&game.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "Repository")

	_, err = game.NewOrchestrator(nil)
	s.Error(err)
}

func (s *OrchestratorTestSuite) TestStartGameDealsHands() {
	gameID := s.startTwoPlayerGame()

	out := s.state(gameID)
	s.Equal(entities.GameStatusInProgress, out.State.State)
	s.Equal(1, out.State.TurnNumber)
	s.Equal(0, out.State.CurrentPlayer)
	s.Nil(out.State.Winner)
	s.Require().Len(out.State.Players, 2)
	s.Equal("player_1", out.State.Players[0].ID)
	for _, p := range out.State.Players {
		s.Equal(4, p.HandSize)
		s.Equal(entities.PhaseMove, p.Phase)
	}
}

func (s *OrchestratorTestSuite) TestTurnFlow() {
	gameID := s.startTwoPlayerGame()

	res := s.move(gameID, "player_1", 3)
	s.Require().True(res.Success, res.Message)
	s.Equal(2, res.Data["actions_available"])

	out := s.act(gameID, "player_1", entities.ActionGainPower, game.ActionParams{})
	s.Require().True(out.Result.Success)
	s.Equal(1, out.State.Players[0].Power)

	out = s.act(gameID, "player_1", entities.ActionPlayCard, game.ActionParams{CardID: "mal_1"})
	s.Require().True(out.Result.Success, out.Result.Message)
	s.Equal(0, out.State.Players[0].Power)
	s.Equal(3, out.State.Players[0].HandSize)
	s.Equal(entities.PhaseEnd, out.State.Players[0].Phase)
	s.Empty(out.WinnerID)

	end := s.endTurn(gameID, "player_1")
	s.True(end.Result.Success)
	s.Equal("player_2", end.NextPlayerID)
	s.Equal(1, end.State.CurrentPlayer)
	s.Equal(4, end.State.Players[0].HandSize)
	s.Equal(entities.PhaseMove, end.State.Players[0].Phase)

	s.Require().True(s.move(gameID, "player_2", 1).Success)
	end = s.endTurn(gameID, "player_2")
	s.Equal("player_1", end.NextPlayerID)
	s.Equal(2, end.State.TurnNumber)

	log, err := s.orchestrator.GetActionLog(s.ctx, &game.GetActionLogInput{GameID: gameID})
	s.Require().NoError(err)
	s.Contains(log.Entries, "Turn 1: the game begins")
	s.Contains(log.Entries, "Turn 1: maleficent gains 1 power")
}

func (s *OrchestratorTestSuite) TestOnlyCurrentPlayerActs() {
	gameID := s.startTwoPlayerGame()

	_, err := s.orchestrator.Move(s.ctx, &game.MoveInput{GameID: gameID, PlayerID: "player_2", Position: 1})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))

	_, err = s.orchestrator.EndTurn(s.ctx, &game.EndTurnInput{GameID: gameID, PlayerID: "player_2"})
	s.True(errors.IsFailedPrecondition(err))

	_, err = s.orchestrator.Move(s.ctx, &game.MoveInput{GameID: gameID, PlayerID: "player_9", Position: 1})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestFailedStepIsNotStored() {
	gameID := s.startTwoPlayerGame()
	before := s.state(gameID)

	out := s.act(gameID, "player_1", entities.ActionGainPower, game.ActionParams{})
	s.False(out.Result.Success)
	s.Equal(errors.CodeFailedPrecondition, out.Result.Code)

	res := s.move(gameID, "player_1", 0)
	s.False(res.Success)

	after := s.state(gameID)
	s.Equal(before.State, after.State)
	s.Equal(before.Game.ActionLog, after.Game.ActionLog)
}

func (s *OrchestratorTestSuite) TestUnknownAction() {
	gameID := s.startTwoPlayerGame()

	_, err := s.orchestrator.PerformAction(s.ctx, &game.PerformActionInput{
		GameID:   gameID,
		PlayerID: "player_1",
		Action:   "steal",
	})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestFateAcrossBoards() {
	gameID := s.startTwoPlayerGame()

	s.Require().True(s.move(gameID, "player_1", 3).Success)
	s.endTurn(gameID, "player_1")
	s.Require().True(s.move(gameID, "player_2", 1).Success)
	s.endTurn(gameID, "player_2")

	s.Require().True(s.move(gameID, "player_1", 0).Success)

	out := s.act(gameID, "player_1", entities.ActionFate, game.ActionParams{TargetPlayerID: "player_9"})
	s.False(out.Result.Success)
	s.Equal(errors.CodeNotFound, out.Result.Code)

	out = s.act(gameID, "player_1", entities.ActionFate, game.ActionParams{TargetPlayerID: "player_2"})
	s.Require().True(out.Result.Success, out.Result.Message)

	full := s.state(gameID).Game
	jafar := full.PlayerByID("player_2")
	s.True(jafar.Locations[1].HasHero("jafar_aladdin"))
	s.True(jafar.FateDeck.IsEmpty())

	progress, err := s.orchestrator.GetVictoryProgress(s.ctx, &game.GetVictoryProgressInput{
		GameID:   gameID,
		PlayerID: "player_2",
	})
	s.Require().NoError(err)
	s.Equal(false, progress.Progress["aladdin_defeated"])
	s.Equal(false, progress.Progress["has_magic_lamp"])
	s.NotEmpty(progress.Description)
}

func (s *OrchestratorTestSuite) TestActionCanWinTheGame() {
	gameID := s.startTwoPlayerGame()

	s.Require().True(s.move(gameID, "player_1", 3).Success)
	s.endTurn(gameID, "player_1")

	s.Require().True(s.move(gameID, "player_2", 3).Success)
	out := s.act(gameID, "player_2", entities.ActionPlayCard, game.ActionParams{CardID: "jafar_magic_lamp"})
	s.Require().True(out.Result.Success, out.Result.Message)
	s.Equal("player_2", out.WinnerID)
	s.Equal(entities.GameStatusFinished, out.State.State)
	s.Require().NotNil(out.State.Winner)
	s.Equal("player_2", *out.State.Winner)
	s.True(out.State.Players[1].HasWon)

	// finished games are read-only
	_, err := s.orchestrator.EndTurn(s.ctx, &game.EndTurnInput{GameID: gameID, PlayerID: "player_2"})
	s.True(errors.IsFailedPrecondition(err))
	_, err = s.orchestrator.EndGame(s.ctx, &game.EndGameInput{GameID: gameID})
	s.True(errors.IsFailedPrecondition(err))
	_, err = s.orchestrator.AddPlayer(s.ctx, &game.AddPlayerInput{GameID: gameID, Name: "u", VillainID: entities.VillainUrsula})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestMoveItemWinsForUrsula() {
	loader := staticLoader()
	palaceBoard := testutils.Board("ursula")
	palaceBoard[0].ID = "ursula_palace"
	palaceBoard[0].Name = "Ursula's Lair"
	loader.Boards[entities.VillainUrsula] = palaceBoard
	loader.CardSets[entities.VillainUrsula] = &gamedata.CardSet{
		VillainCards: append([]*entities.Card{
			testutils.Item("ursula_trident", 0),
			testutils.Item("ursula_crown", 0),
		}, testutils.Cards("ursula", 4)...),
	}
	s.useLoader(loader)
	gameID := s.startGame(entities.VillainUrsula, entities.VillainJafar)

	s.Require().True(s.move(gameID, "player_1", 2).Success)
	out := s.act(gameID, "player_1", entities.ActionPlayCard, game.ActionParams{CardID: "ursula_trident"})
	s.Require().True(out.Result.Success, out.Result.Message)
	out = s.act(gameID, "player_1", entities.ActionPlayCard, game.ActionParams{
		CardID:         "ursula_crown",
		TargetLocation: entities.IntPtr(3),
	})
	s.Require().True(out.Result.Success, out.Result.Message)
	s.Empty(out.WinnerID)
	s.endTurn(gameID, "player_1")

	s.Require().True(s.move(gameID, "player_2", 1).Success)
	s.endTurn(gameID, "player_2")

	s.Require().True(s.move(gameID, "player_1", 0).Success)
	out = s.act(gameID, "player_1", entities.ActionMoveItem, game.ActionParams{
		ItemID:         "ursula_trident",
		TargetLocation: entities.IntPtr(0),
	})
	s.Require().True(out.Result.Success, out.Result.Message)
	s.Empty(out.WinnerID)

	out = s.act(gameID, "player_1", entities.ActionMoveItem, game.ActionParams{
		ItemID:         "ursula_crown",
		TargetLocation: entities.IntPtr(0),
	})
	s.Require().True(out.Result.Success, out.Result.Message)
	s.Equal("player_1", out.WinnerID)
	s.Equal(entities.GameStatusFinished, out.State.State)
	s.Require().NotNil(out.State.Winner)
	s.Equal("player_1", *out.State.Winner)
}

func (s *OrchestratorTestSuite) TestMoveItemWinsForMaleficent() {
	loader := staticLoader()
	loader.CardSets[entities.VillainMaleficent] = &gamedata.CardSet{
		VillainCards: append([]*entities.Card{
			testutils.Item("maleficent_curse_1", 0),
			testutils.Item("maleficent_curse_2", 0),
			testutils.Item("maleficent_curse_3", 0),
			testutils.Item("maleficent_curse_4", 0),
		}, testutils.Cards("mal", 2)...),
	}
	s.useLoader(loader)
	gameID := s.startTwoPlayerGame()

	play := func(cardID string, at *int) {
		out := s.act(gameID, "player_1", entities.ActionPlayCard, game.ActionParams{CardID: cardID, TargetLocation: at})
		s.Require().True(out.Result.Success, out.Result.Message)
		s.Empty(out.WinnerID)
	}

	// two curses share the second location, the first stays empty
	s.Require().True(s.move(gameID, "player_1", 2).Success)
	play("maleficent_curse_1", nil)
	play("maleficent_curse_2", nil)
	play("maleficent_curse_3", entities.IntPtr(3))
	s.endTurn(gameID, "player_1")

	s.Require().True(s.move(gameID, "player_2", 1).Success)
	s.endTurn(gameID, "player_2")

	s.Require().True(s.move(gameID, "player_1", 3).Success)
	play("maleficent_curse_4", entities.IntPtr(1))
	s.endTurn(gameID, "player_1")

	s.Require().True(s.move(gameID, "player_2", 2).Success)
	s.endTurn(gameID, "player_2")
	s.Equal(entities.GameStatusInProgress, s.state(gameID).State.State)

	s.Require().True(s.move(gameID, "player_1", 0).Success)
	out := s.act(gameID, "player_1", entities.ActionMoveItem, game.ActionParams{
		ItemID:         "maleficent_curse_2",
		TargetLocation: entities.IntPtr(0),
	})
	s.Require().True(out.Result.Success, out.Result.Message)
	s.Equal("player_1", out.WinnerID)
	s.Equal(entities.GameStatusFinished, out.State.State)
	s.True(out.State.Players[0].HasWon)
}

func (s *OrchestratorTestSuite) TestRemovedSeatCanBeRefilled() {
	created, err := s.orchestrator.CreateGame(s.ctx, &game.CreateGameInput{})
	s.Require().NoError(err)
	add := func(villain string) string {
		out, err := s.orchestrator.AddPlayer(s.ctx, &game.AddPlayerInput{
			GameID:    created.GameID,
			Name:      villain,
			VillainID: villain,
		})
		s.Require().NoError(err)
		return out.PlayerID
	}

	s.Equal("player_1", add(entities.VillainMaleficent))
	s.Equal("player_2", add(entities.VillainJafar))
	_, err = s.orchestrator.RemovePlayer(s.ctx, &game.RemovePlayerInput{GameID: created.GameID, PlayerID: "player_1"})
	s.Require().NoError(err)

	s.Equal("player_3", add(entities.VillainUrsula))
	s.Equal("player_4", add(entities.VillainMaleficent))

	_, err = s.orchestrator.StartGame(s.ctx, &game.StartGameInput{GameID: created.GameID})
	s.Require().NoError(err)
	s.Len(s.state(created.GameID).State.Players, 3)
}

func (s *OrchestratorTestSuite) TestAddPlayerRejections() {
	created, err := s.orchestrator.CreateGame(s.ctx, &game.CreateGameInput{MaxPlayers: 2})
	s.Require().NoError(err)
	add := func(villain string) error {
		_, err := s.orchestrator.AddPlayer(s.ctx, &game.AddPlayerInput{
			GameID:    created.GameID,
			Name:      villain,
			VillainID: villain,
		})
		return err
	}

	s.Require().NoError(add(entities.VillainMaleficent))
	s.True(errors.IsAlreadyExists(add(entities.VillainMaleficent)))
	s.True(errors.IsFailedPrecondition(add(entities.VillainPrinceJohn)), "no board")
	s.Require().NoError(add(entities.VillainJafar))
	s.True(errors.IsResourceExhausted(add(entities.VillainUrsula)))

	_, err = s.orchestrator.AddPlayer(s.ctx, &game.AddPlayerInput{GameID: created.GameID})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.AddPlayer(s.ctx, &game.AddPlayerInput{GameID: "missing", Name: "x", VillainID: "x"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestRemovePlayer() {
	created, err := s.orchestrator.CreateGame(s.ctx, &game.CreateGameInput{})
	s.Require().NoError(err)
	added, err := s.orchestrator.AddPlayer(s.ctx, &game.AddPlayerInput{
		GameID:    created.GameID,
		Name:      "Mal",
		VillainID: entities.VillainMaleficent,
	})
	s.Require().NoError(err)
	s.Equal("player_1", added.PlayerID)

	_, err = s.orchestrator.RemovePlayer(s.ctx, &game.RemovePlayerInput{GameID: created.GameID, PlayerID: "player_7"})
	s.True(errors.IsNotFound(err))

	out, err := s.orchestrator.RemovePlayer(s.ctx, &game.RemovePlayerInput{GameID: created.GameID, PlayerID: "player_1"})
	s.Require().NoError(err)
	s.Empty(out.State.Players)
}

func (s *OrchestratorTestSuite) TestStartNeedsPlayers() {
	created, err := s.orchestrator.CreateGame(s.ctx, &game.CreateGameInput{})
	s.Require().NoError(err)
	_, err = s.orchestrator.AddPlayer(s.ctx, &game.AddPlayerInput{
		GameID:    created.GameID,
		Name:      "Mal",
		VillainID: entities.VillainMaleficent,
	})
	s.Require().NoError(err)

	_, err = s.orchestrator.StartGame(s.ctx, &game.StartGameInput{GameID: created.GameID})
	s.True(errors.IsFailedPrecondition(err))

	out := s.state(created.GameID)
	s.Equal(entities.GameStatusWaiting, out.State.State)
	s.False(out.Game.Seated)
}

func (s *OrchestratorTestSuite) TestEndGameWithoutWinner() {
	gameID := s.startTwoPlayerGame()

	_, err := s.orchestrator.EndGame(s.ctx, &game.EndGameInput{GameID: gameID, WinnerID: "player_9"})
	s.True(errors.IsNotFound(err))

	out, err := s.orchestrator.EndGame(s.ctx, &game.EndGameInput{GameID: gameID})
	s.Require().NoError(err)
	s.Equal(entities.GameStatusFinished, out.State.State)
	s.Nil(out.State.Winner)
}

func (s *OrchestratorTestSuite) TestListGames() {
	s.startTwoPlayerGame()
	_, err := s.orchestrator.CreateGame(s.ctx, &game.CreateGameInput{})
	s.Require().NoError(err)

	all, err := s.orchestrator.ListGames(s.ctx, &game.ListGamesInput{})
	s.Require().NoError(err)
	s.Len(all.Games, 2)

	waiting, err := s.orchestrator.ListGames(s.ctx, &game.ListGamesInput{Status: entities.GameStatusWaiting})
	s.Require().NoError(err)
	s.Require().Len(waiting.Games, 1)
	s.Equal("game_2", waiting.Games[0].ID)
}

type RepositoryFailureTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	repo         *gamesmock.MockRepository
	orchestrator game.Service
}

func TestRepositoryFailureSuite(t *testing.T) {
	suite.Run(t, new(RepositoryFailureTestSuite))
}

func (s *RepositoryFailureTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = gamesmock.NewMockRepository(s.ctrl)

	var err error
	s.orchestrator, err = game.NewOrchestrator(&game.Config{
		Repository:  s.repo,
		Loader:      staticLoader(),
		TurnManager: newTurnManager(),
		Victory:     victory.NewEvaluator(),
		IDGenerator: idgen.NewSequential("game"),
		Shuffler:    testutils.NoShuffle{},
	})
	s.Require().NoError(err)
}

func (s *RepositoryFailureTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RepositoryFailureTestSuite) TestCreateFailure() {
	s.repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, errors.Internal("disk full"))

	_, err := s.orchestrator.CreateGame(context.Background(), &game.CreateGameInput{})
	s.Require().Error(err)
	s.True(errors.IsInternal(err))
}

func (s *RepositoryFailureTestSuite) TestUpdateFailure() {
	g, err := entities.NewGame(&entities.GameConfig{ID: "game_1"})
	s.Require().NoError(err)

	s.repo.EXPECT().
		Get(gomock.Any(), games.GetInput{ID: "game_1"}).
		Return(&games.GetOutput{Game: g}, nil)
	s.repo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input games.UpdateInput) (*games.UpdateOutput, error) {
			s.Len(input.Game.Players, 1)
			return nil, errors.Internal("connection reset")
		})

	_, err = s.orchestrator.AddPlayer(context.Background(), &game.AddPlayerInput{
		GameID:    "game_1",
		Name:      "Mal",
		VillainID: entities.VillainMaleficent,
	})
	s.Require().Error(err)
	s.True(errors.IsInternal(err))
}

func (s *RepositoryFailureTestSuite) TestNotFoundPassesThrough() {
	s.repo.EXPECT().
		Get(gomock.Any(), games.GetInput{ID: "nope"}).
		Return(nil, errors.NotFound("game nope not found"))

	_, err := s.orchestrator.GetState(context.Background(), &game.GetStateInput{GameID: "nope"})
	s.True(errors.IsNotFound(err))
}
