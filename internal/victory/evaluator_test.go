package victory_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/villainous-api/internal/entities"
	"github.com/KirkDiggler/villainous-api/internal/testutils"
	"github.com/KirkDiggler/villainous-api/internal/testutils/builders"
	"github.com/KirkDiggler/villainous-api/internal/victory"
)

type EvaluatorTestSuite struct {
	suite.Suite
	evaluator *victory.Evaluator
}

func TestEvaluatorSuite(t *testing.T) {
	suite.Run(t, new(EvaluatorTestSuite))
}

func (s *EvaluatorTestSuite) SetupTest() {
	s.evaluator = victory.NewEvaluator()
}

func board(ids ...string) []*entities.Location {
	out := make([]*entities.Location, 0, len(ids))
	for i, id := range ids {
		out = append(out, testutils.Location(id, i, testutils.Action(entities.ActionGainPower, 1, false)))
	}
	return out
}

func (s *EvaluatorTestSuite) TestRegistersBaseVillains() {
	s.Equal([]string{
		"captain_hook", "jafar", "maleficent", "prince_john", "queen_of_hearts", "ursula",
	}, s.evaluator.Villains())
	s.Equal("Defeat Peter Pan at the Jolly Roger", s.evaluator.Description(entities.VillainCaptainHook))
	s.Equal("no victory condition defined", s.evaluator.Description("gaston"))
}

func (s *EvaluatorTestSuite) TestPowerThreshold() {
	p := builders.NewPlayerBuilder().WithVillain(entities.VillainPrinceJohn).WithPower(19).Build()

	s.False(s.evaluator.CheckVictory(p))
	s.False(p.HasWon)

	p.GainPower(1)
	s.True(s.evaluator.CheckVictory(p))
	s.True(p.HasWon)

	progress := s.evaluator.Progress(p)
	s.Equal(20, progress["current_power"])
	s.Equal(0, progress["power_needed"])
	s.Equal(100.0, progress["percentage"])
	s.Equal("prince_john", progress["villain"])
}

func (s *EvaluatorTestSuite) TestCurseEveryLocation() {
	p := builders.NewPlayerBuilder().WithVillain(entities.VillainMaleficent).Build()

	for i := 0; i < 3; i++ {
		p.LocationAt(i).AddItem("maleficent_curse_green_fire")
	}
	p.LocationAt(3).AddItem("MALEFICENT_CURSE_upper")
	s.False(s.evaluator.CheckVictory(p))

	progress := s.evaluator.Progress(p)
	s.Equal(3, progress["cursed_locations"])
	s.Equal(75.0, progress["percentage"])
	s.Equal(false, progress["location_status"].(map[string]bool)["loc_3"])

	p.LocationAt(3).AddItem("maleficent_curse_dreamless_sleep")
	s.True(s.evaluator.CheckVictory(p))
}

func (s *EvaluatorTestSuite) TestCurseNeedsFullBoard() {
	p := builders.NewPlayerBuilder().
		WithVillain(entities.VillainQueenOfHearts).
		WithBoard(board("a", "b", "c")...).
		Build()
	for _, loc := range p.Locations {
		loc.AddItem("Severed_Head_card")
	}

	s.False(s.evaluator.CheckVictory(p))
	s.Equal(3, s.evaluator.Progress(p)["locations_with_heads"])

	empty := builders.NewPlayerBuilder().WithVillain(entities.VillainQueenOfHearts).WithBoard().Build()
	s.Equal(0.0, s.evaluator.Progress(empty)["percentage"])
}

func (s *EvaluatorTestSuite) TestArtifactAndFoe() {
	p := builders.NewPlayerBuilder().
		WithVillain(entities.VillainJafar).
		WithBoard(board("palace_gates", "throne_room", "cave_of_wonders", "secret_chamber")...).
		Build()

	s.False(s.evaluator.CheckVictory(p))

	p.LocationAt(2).AddItem("jafar_magic_lamp")
	p.LocationAt(0).AddHero("aladdin")
	s.False(s.evaluator.CheckVictory(p))

	progress := s.evaluator.Progress(p)
	s.Equal(true, progress["has_magic_lamp"])
	s.Equal(false, progress["aladdin_defeated"])
	s.Equal(1, progress["objectives_completed"])
	s.Equal("cave_of_wonders", progress["lamp_location"])

	p.LocationAt(0).RemoveHero("aladdin")
	p.RecordDefeatedHero("aladdin")
	s.True(s.evaluator.CheckVictory(p))
	s.Equal(true, s.evaluator.Progress(p)["aladdin_vanquished"])
}

func (s *EvaluatorTestSuite) TestArtifactNeedsLocation() {
	p := builders.NewPlayerBuilder().WithVillain(entities.VillainJafar).Build()
	p.LocationAt(0).AddItem("magic_lamp")

	s.False(s.evaluator.CheckVictory(p))
	s.Equal("not found", s.evaluator.Progress(p)["lamp_location"])
}

func (s *EvaluatorTestSuite) TestDefeatFoeAtLocation() {
	p := builders.NewPlayerBuilder().
		WithVillain(entities.VillainCaptainHook).
		WithBoard(board("jolly_roger", "skull_rock", "mermaid_lagoon", "hangmans_tree")...).
		Build()

	p.LocationAt(0).AddHero("peter_pan")
	p.LocationAt(1).AddHero("tinker_bell")
	s.False(s.evaluator.CheckVictory(p))
	s.Equal(true, s.evaluator.Progress(p)["peter_pan_present"])

	p.LocationAt(0).RemoveHero("peter_pan")
	p.LocationAt(1).AddHero("peter_pan")
	s.True(s.evaluator.CheckVictory(p))

	progress := s.evaluator.Progress(p)
	s.Equal(true, progress["jolly_roger_found"])
	s.Equal(true, progress["peter_pan_defeated"])
	s.Equal(false, progress["peter_pan_vanquished"])
	s.Equal("jolly_roger", progress["location"])
}

func (s *EvaluatorTestSuite) TestItemsAtLocation() {
	p := builders.NewPlayerBuilder().WithVillain(entities.VillainUrsula).Build()
	p.LocationAt(1).Name = "Ursula's Palace"

	p.LocationAt(1).AddItem("ursula_trident")
	p.LocationAt(2).AddItem("ursula_crown")
	s.False(s.evaluator.CheckVictory(p))

	progress := s.evaluator.Progress(p)
	s.Equal(true, progress["palace_found"])
	s.Equal(1, progress["items_collected"])
	s.Equal(2, progress["items_needed"])
	s.Equal(false, progress["has_crown"])

	p.LocationAt(1).AddItem("ursula_crown")
	s.True(s.evaluator.CheckVictory(p))
}

func (s *EvaluatorTestSuite) TestRegisterCustom() {
	p := builders.NewPlayerBuilder().WithVillain("gaston").WithPower(5).Build()
	s.False(s.evaluator.CheckVictory(p))
	s.Equal("no victory condition defined", s.evaluator.Progress(p)["description"])

	s.evaluator.RegisterCustom("gaston", &victory.PowerThreshold{Text: "Five power", Target: 5})
	s.True(s.evaluator.CheckVictory(p))
	s.Equal("Five power", s.evaluator.Progress(p)["description"])
}
