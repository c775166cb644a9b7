package turn_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/villainous-api/internal/effects"
	effectsmock "github.com/KirkDiggler/villainous-api/internal/effects/mock"
	"github.com/KirkDiggler/villainous-api/internal/entities"
	"github.com/KirkDiggler/villainous-api/internal/errors"
	"github.com/KirkDiggler/villainous-api/internal/orchestrators/turn"
	"github.com/KirkDiggler/villainous-api/internal/testutils"
	"github.com/KirkDiggler/villainous-api/internal/testutils/builders"
)

type ManagerTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	effects *effectsmock.MockApplier
	manager *turn.Manager
	ctx     context.Context
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerTestSuite))
}

func (s *ManagerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.effects = effectsmock.NewMockApplier(s.ctrl)
	s.ctx = context.Background()

	var err error
	s.manager, err = turn.NewManager(&turn.Config{EffectApplier: s.effects})
	s.Require().NoError(err)
}

func (s *ManagerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func snapshot(p *entities.Player) string {
	raw, err := json.Marshal(p)
	if err != nil {
		panic(err)
	}
	return string(raw)
}

func (s *ManagerTestSuite) TestNewManagerRequiresApplier() {
	_, err := turn.NewManager(&turn.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = turn.NewManager(nil)
	s.Error(err)
}

func (s *ManagerTestSuite) TestPhaseMachine() {
	p := builders.NewPlayerBuilder().Build()

	// Actions are refused before moving
	res := s.manager.PerformAction(s.ctx, p, entities.ActionGainPower, nil)
	s.False(res.Success)
	s.Equal(errors.CodeFailedPrecondition, res.Code)
	s.Empty(s.manager.AvailableActions(p))

	s.True(s.manager.StartTurn(p).Success)
	s.ElementsMatch([]int{1, 2, 3}, s.manager.ValidMovePositions(p))

	// Can't stay put
	res = s.manager.Move(p, 0)
	s.False(res.Success)
	s.Equal(entities.PhaseMove, p.Phase)

	res = s.manager.Move(p, 3)
	s.Require().True(res.Success)
	s.Equal(entities.PhaseActions, p.Phase)
	s.Equal(2, p.ActionsRemaining)
	s.Equal(0, res.Data["old_position"])
	s.Equal(3, res.Data["new_position"])
	s.Equal(2, res.Data["actions_available"])
	s.Empty(s.manager.ValidMovePositions(p))

	// Second move in the same turn
	s.False(s.manager.Move(p, 1).Success)
	s.False(s.manager.StartTurn(p).Success)

	s.Require().True(s.manager.PerformAction(s.ctx, p, entities.ActionGainPower, nil).Success)
	s.Equal(1, p.ActionsRemaining)
	s.Equal(entities.PhaseActions, p.Phase)

	// Only one gain power action at this location but the budget allows
	// it to be repeated
	s.Require().True(s.manager.PerformAction(s.ctx, p, entities.ActionGainPower, nil).Success)
	s.Equal(0, p.ActionsRemaining)
	s.Equal(entities.PhaseEnd, p.Phase)
	s.Equal(2, p.Power)

	res = s.manager.PerformAction(s.ctx, p, entities.ActionGainPower, nil)
	s.False(res.Success)

	s.True(s.manager.EndTurn(p).Success)
	s.Equal(entities.PhaseMove, p.Phase)
	s.Equal(0, p.ActionsRemaining)
}

func (s *ManagerTestSuite) TestMoveBudgetIsSnapshot() {
	p := builders.NewPlayerBuilder().AtLocation(3).Build()
	p.Locations[1].AddHero("hero")

	res := s.manager.Move(p, 1)
	s.Require().True(res.Success)
	s.Equal(3, p.ActionsRemaining)

	p.Locations[1].RemoveHero("hero")
	s.Equal(3, p.ActionsRemaining)
}

func (s *ManagerTestSuite) TestGainPowerScenario() {
	loc := testutils.Location("lair", 0, testutils.Action(entities.ActionGainPower, 2, false))
	board := testutils.Board("loc")
	board[0] = loc
	p := builders.NewPlayerBuilder().WithBoard(board...).WithPower(3).InActions(2).Build()

	res := s.manager.PerformAction(s.ctx, p, entities.ActionGainPower, nil)

	s.Require().True(res.Success)
	s.Equal(5, p.Power)
	s.Equal(1, p.ActionsRemaining)
	s.Equal(2, res.Data["power_gained"])
	s.Equal(5, res.Data["total_power"])
}

func (s *ManagerTestSuite) TestGainPowerMisconfigured() {
	board := testutils.Board("loc")
	board[0] = testutils.Location("lair", 0, testutils.Action(entities.ActionGainPower, 0, false))
	p := builders.NewPlayerBuilder().WithBoard(board...).InActions(1).Build()
	before := snapshot(p)

	res := s.manager.PerformAction(s.ctx, p, entities.ActionGainPower, nil)

	s.False(res.Success)
	s.Contains(res.Message, "misconfigured")
	s.Equal(before, snapshot(p))
}

func (s *ManagerTestSuite) TestBlockedActionScenario() {
	p := builders.NewPlayerBuilder().InActions(3).Build()
	p.Locations[0].AddHero("prince_phillip")
	target := builders.NewPlayerBuilder().WithID("player_2").WithFateDeck(testutils.Hero("hero", 2)).Build()

	s.NotContains(s.manager.AvailableActions(p), entities.ActionFate)
	s.False(s.manager.CanPerformAction(p, entities.ActionFate))
	before := snapshot(p)

	res := s.manager.PerformAction(s.ctx, p, entities.ActionFate, &turn.Params{TargetPlayer: target})

	s.False(res.Success)
	s.Equal(errors.CodeFailedPrecondition, res.Code)
	s.Equal(before, snapshot(p))
	s.Equal(3, p.ActionsRemaining)
}

func (s *ManagerTestSuite) TestUnknownAction() {
	p := builders.NewPlayerBuilder().InActions(1).Build()

	res := s.manager.PerformAction(s.ctx, p, entities.ActionType("steal"), nil)

	s.False(res.Success)
	s.Equal(errors.CodeInvalidArgument, res.Code)
}

func (s *ManagerTestSuite) TestPlayCard() {
	card := testutils.EffectCard("poisoned_apple", 2, entities.Effect{
		Description: "gain 1 power",
		Trigger:     entities.TriggerPlay,
	})
	p := builders.NewPlayerBuilder().WithHand(card).WithPower(3).AtLocation(3).InActions(2).Build()

	s.effects.EXPECT().
		Apply(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *effects.EffectContext) (*effects.Outcome, error) {
			s.Equal("poisoned_apple", in.Card.ID)
			s.Equal(entities.TriggerPlay, in.Trigger)
			return &effects.Outcome{PowerDelta: 1, Notes: []string{"bonus"}}, nil
		})

	res := s.manager.PerformAction(s.ctx, p, entities.ActionPlayCard, &turn.Params{CardID: "poisoned_apple"})

	s.Require().True(res.Success, res.Message)
	s.Equal(2, p.Power)
	s.Equal(0, p.Hand.Size())
	s.Equal(1, p.Discard.Size())
	s.Equal("poisoned_apple", res.Data["card"])
	s.Equal(1, res.Data["power_remaining"])
	s.Equal(1, res.Data["effect_power"])
	s.Equal([]string{"bonus"}, res.Data["effect_notes"])
	s.Equal(1, p.ActionsRemaining)
}

func (s *ManagerTestSuite) TestPlayCardUnaffordable() {
	p := builders.NewPlayerBuilder().
		WithHand(testutils.Ally("raven", 2, 1)).
		WithPower(1).
		AtLocation(3).
		InActions(2).
		Build()
	before := snapshot(p)

	res := s.manager.PerformAction(s.ctx, p, entities.ActionPlayCard, &turn.Params{CardID: "raven"})

	s.False(res.Success)
	s.Equal(errors.CodeFailedPrecondition, res.Code)
	s.Equal(before, snapshot(p))
	s.Equal(2, p.ActionsRemaining)
}

func (s *ManagerTestSuite) TestPlayCardMissing() {
	p := builders.NewPlayerBuilder().AtLocation(3).InActions(1).Build()

	res := s.manager.PerformAction(s.ctx, p, entities.ActionPlayCard, &turn.Params{})
	s.Equal(errors.CodeInvalidArgument, res.Code)

	res = s.manager.PerformAction(s.ctx, p, entities.ActionPlayCard, &turn.Params{CardID: "nope"})
	s.Equal(errors.CodeNotFound, res.Code)
}

func (s *ManagerTestSuite) TestPlayItemAtTargetLocation() {
	p := builders.NewPlayerBuilder().
		WithHand(testutils.Item("spindle", 1)).
		WithPower(1).
		AtLocation(3).
		InActions(1).
		Build()

	res := s.manager.PerformAction(s.ctx, p, entities.ActionPlayCard, &turn.Params{
		CardID:         "spindle",
		TargetLocation: entities.IntPtr(1),
	})

	s.Require().True(res.Success, res.Message)
	s.True(p.Locations[1].HasItem("spindle"))
	s.Len(p.ItemsInPlay, 1)
	s.Equal(entities.PhaseEnd, p.Phase)
}

func (s *ManagerTestSuite) TestEffectFailureKeepsAction() {
	card := testutils.EffectCard("curse", 0, entities.Effect{Trigger: entities.TriggerPlay})
	p := builders.NewPlayerBuilder().WithHand(card).AtLocation(3).InActions(1).Build()

	s.effects.EXPECT().
		Apply(gomock.Any(), gomock.Any()).
		Return(nil, errors.Internal("boom"))

	res := s.manager.PerformAction(s.ctx, p, entities.ActionPlayCard, &turn.Params{CardID: "curse"})

	s.Require().True(res.Success)
	s.Equal("boom", res.Data["effect_error"])
	s.Equal(1, p.Discard.Size())
}

func (s *ManagerTestSuite) TestEffectDraw() {
	card := testutils.EffectCard("dark_ritual", 0, entities.Effect{Trigger: entities.TriggerPlay})
	p := builders.NewPlayerBuilder().
		WithHand(card).
		WithVillainDeck(testutils.Cards("deck", 3)...).
		AtLocation(3).
		InActions(1).
		Build()

	s.effects.EXPECT().
		Apply(gomock.Any(), gomock.Any()).
		Return(&effects.Outcome{Draw: 2}, nil)

	res := s.manager.PerformAction(s.ctx, p, entities.ActionPlayCard, &turn.Params{CardID: "dark_ritual"})

	s.Require().True(res.Success)
	s.Equal(2, p.Hand.Size())
	s.Equal(2, res.Data["effect_draw"])
}

func (s *ManagerTestSuite) TestActivate() {
	ally := testutils.Ally("goon", 1, 2)
	ally.Effects = []entities.Effect{{Description: "gain 1", Trigger: entities.TriggerActivate}}
	p := builders.NewPlayerBuilder().AtLocation(2).InActions(2).Build()
	p.AlliesInPlay = append(p.AlliesInPlay, ally)

	s.effects.EXPECT().
		Apply(gomock.Any(), gomock.Any()).
		Return(&effects.Outcome{PowerDelta: 1}, nil)

	res := s.manager.PerformAction(s.ctx, p, entities.ActionActivate, &turn.Params{TargetID: "goon"})
	s.Require().True(res.Success)
	s.Equal("goon", res.Data["activated_card"])
	s.Equal(1, p.Power)

	res = s.manager.PerformAction(s.ctx, p, entities.ActionActivate, &turn.Params{TargetID: "ghost"})
	s.False(res.Success)
	s.Equal(errors.CodeNotFound, res.Code)
	s.Equal(1, p.ActionsRemaining)
}

func (s *ManagerTestSuite) TestDiscard() {
	hand := testutils.Cards("hand", 3)
	p := builders.NewPlayerBuilder().WithHand(hand...).AtLocation(1).InActions(3).Build()

	res := s.manager.PerformAction(s.ctx, p, entities.ActionDiscard, &turn.Params{
		CardIDs: []string{"hand_1", "missing", "hand_3"},
	})

	s.Require().True(res.Success)
	s.Equal([]string{"hand_1", "hand_3"}, res.Data["discarded_cards"])
	s.Equal(1, p.Hand.Size())
	s.Equal(2, p.Discard.Size())

	before := snapshot(p)
	res = s.manager.PerformAction(s.ctx, p, entities.ActionDiscard, &turn.Params{CardIDs: []string{"missing"}})
	s.False(res.Success)
	s.Equal(before, snapshot(p))

	res = s.manager.PerformAction(s.ctx, p, entities.ActionDiscard, &turn.Params{})
	s.Equal(errors.CodeInvalidArgument, res.Code)
}

func (s *ManagerTestSuite) TestVanquish() {
	hero := testutils.Hero("prince_phillip", 3)
	p := builders.NewPlayerBuilder().InActions(2).Build()
	p.Locations[0].AddHero(hero.ID)
	p.FateInPlay = append(p.FateInPlay, hero)
	ally := testutils.Ally("goon", 1, 2)
	ally.LocationRestriction = p.Locations[0].ID
	p.AlliesInPlay = append(p.AlliesInPlay, ally, testutils.Ally("elsewhere", 1, 4))

	res := s.manager.PerformAction(s.ctx, p, entities.ActionVanquish, &turn.Params{HeroID: "prince_phillip"})

	s.Require().True(res.Success, res.Message)
	s.False(p.Locations[0].HasHeroes())
	s.True(p.HasDefeated("prince_phillip"))
	s.Empty(p.FateInPlay)
	s.Equal(1, p.FateDiscard.Size())
	s.Equal("prince_phillip", res.Data["vanquished_hero"])
	s.Equal(2, res.Data["strength_used"])
}

func (s *ManagerTestSuite) TestVanquishMissingHero() {
	p := builders.NewPlayerBuilder().InActions(1).Build()
	p.Locations[1].AddHero("flora")
	before := snapshot(p)

	res := s.manager.PerformAction(s.ctx, p, entities.ActionVanquish, &turn.Params{HeroID: "flora"})

	s.False(res.Success)
	s.Equal(errors.CodeNotFound, res.Code)
	s.Equal(before, snapshot(p))
}

func (s *ManagerTestSuite) TestFateScenario() {
	p := builders.NewPlayerBuilder().InActions(1).Build()
	target := builders.NewPlayerBuilder().
		WithID("player_2").
		WithVillain(entities.VillainJafar).
		WithFateDeck(testutils.Hero("aladdin", 3), testutils.Hero("genie", 5)).
		AtLocation(2).
		Build()

	res := s.manager.PerformAction(s.ctx, p, entities.ActionFate, &turn.Params{TargetPlayer: target})

	s.Require().True(res.Success, res.Message)
	s.True(target.FateDeck.IsEmpty())
	s.Equal(1, target.FateDiscard.Size())
	s.True(target.Locations[2].HasHero("aladdin"))
	s.Equal("aladdin", res.Data["played_card"])
	s.Equal("genie", res.Data["discarded_card"])

	heroes := 0
	for _, loc := range target.Locations {
		heroes += len(loc.HeroesPresent)
	}
	s.Equal(1, heroes)
	s.False(p.Locations[0].HasHeroes())
}

func (s *ManagerTestSuite) TestFateTargetLocation() {
	p := builders.NewPlayerBuilder().InActions(1).Build()
	target := builders.NewPlayerBuilder().
		WithID("player_2").
		WithFateDeck(testutils.Hero("aladdin", 3)).
		Build()

	res := s.manager.PerformAction(s.ctx, p, entities.ActionFate, &turn.Params{
		TargetPlayer:   target,
		TargetLocation: entities.IntPtr(3),
	})

	s.Require().True(res.Success)
	s.True(target.Locations[3].HasHero("aladdin"))
	s.NotContains(res.Data, "discarded_card")
}

func (s *ManagerTestSuite) TestFateRejections() {
	p := builders.NewPlayerBuilder().InActions(1).Build()
	empty := builders.NewPlayerBuilder().WithID("player_2").Build()

	res := s.manager.PerformAction(s.ctx, p, entities.ActionFate, &turn.Params{})
	s.Equal(errors.CodeInvalidArgument, res.Code)

	res = s.manager.PerformAction(s.ctx, p, entities.ActionFate, &turn.Params{TargetPlayer: p})
	s.Equal(errors.CodeInvalidArgument, res.Code)

	before := snapshot(empty)
	res = s.manager.PerformAction(s.ctx, p, entities.ActionFate, &turn.Params{TargetPlayer: empty})
	s.Equal(errors.CodeResourceExhausted, res.Code)
	s.Equal(before, snapshot(empty))
	s.Equal(1, p.ActionsRemaining)
}

func (s *ManagerTestSuite) TestFateRecyclesDiscard() {
	p := builders.NewPlayerBuilder().InActions(1).Build()
	target := builders.NewPlayerBuilder().
		WithID("player_2").
		WithFateDiscard(testutils.Hero("aladdin", 3)).
		Build()

	res := s.manager.PerformAction(s.ctx, p, entities.ActionFate, &turn.Params{TargetPlayer: target})

	s.Require().True(res.Success)
	s.True(target.Locations[0].HasHero("aladdin"))
	s.True(target.FateDiscard.IsEmpty())
}

func (s *ManagerTestSuite) TestMoveItem() {
	p := builders.NewPlayerBuilder().InActions(2).Build()
	p.Locations[2].AddItem("spindle")

	res := s.manager.PerformAction(s.ctx, p, entities.ActionMoveItem, &turn.Params{
		ItemID:         "spindle",
		TargetLocation: entities.IntPtr(3),
	})

	s.Require().True(res.Success, res.Message)
	s.False(p.Locations[2].HasItem("spindle"))
	s.True(p.Locations[3].HasItem("spindle"))
	s.Equal(2, res.Data["from"])
	s.Equal(3, res.Data["to"])
}

func (s *ManagerTestSuite) TestMoveItemRejections() {
	p := builders.NewPlayerBuilder().InActions(2).Build()
	p.Locations[2].AddItem("spindle")
	before := snapshot(p)

	cases := []*turn.Params{
		{TargetLocation: entities.IntPtr(1)},
		{ItemID: "ghost", TargetLocation: entities.IntPtr(1)},
		{ItemID: "spindle"},
		{ItemID: "spindle", TargetLocation: entities.IntPtr(2)},
		{ItemID: "spindle", TargetLocation: entities.IntPtr(4)},
	}
	for _, params := range cases {
		res := s.manager.PerformAction(s.ctx, p, entities.ActionMoveItem, params)
		s.False(res.Success)
	}
	s.Equal(before, snapshot(p))
}

func (s *ManagerTestSuite) TestMoveHero() {
	p := builders.NewPlayerBuilder().AtLocation(1).InActions(1).Build()
	p.Locations[0].AddHero("flora")

	res := s.manager.PerformAction(s.ctx, p, entities.ActionMoveHero, &turn.Params{
		HeroID:         "flora",
		TargetLocation: entities.IntPtr(3),
	})

	s.Require().True(res.Success, res.Message)
	s.False(p.Locations[0].HasHeroes())
	s.True(p.Locations[3].HasHero("flora"))
	s.Equal(entities.PhaseEnd, p.Phase)
}

func (s *ManagerTestSuite) TestEndTurnRefills() {
	p := builders.NewPlayerBuilder().
		WithVillainDeck(testutils.Cards("deck", 6)...).
		InActions(2).
		Build()

	res := s.manager.EndTurn(p)

	s.True(res.Success)
	s.Equal(4, p.Hand.Size())
	s.Equal(4, res.Data["hand_size"])
	s.Equal(entities.PhaseMove, p.Phase)
}
