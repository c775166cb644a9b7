package idgen_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/villainous-api/internal/pkg/idgen"
)

type IDGenTestSuite struct {
	suite.Suite
}

func TestIDGenSuite(t *testing.T) {
	suite.Run(t, new(IDGenTestSuite))
}

func (s *IDGenTestSuite) TestUUIDGenerator() {
	gen := idgen.NewUUID("game")
	first := gen.Generate()
	second := gen.Generate()

	s.True(strings.HasPrefix(first, "game_"))
	s.NotEqual(first, second)
	s.Len(idgen.NewUUID("").Generate(), 36)
}

func (s *IDGenTestSuite) TestSequentialGenerator() {
	gen := idgen.NewSequential("game")
	s.Equal("game_1", gen.Generate())
	s.Equal("game_2", gen.Generate())
	s.Equal("1", idgen.NewSequential("").Generate())
}

func (s *IDGenTestSuite) TestSequentialGeneratorConcurrent() {
	gen := idgen.NewSequential("g")
	seen := sync.Map{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, dup := seen.LoadOrStore(gen.Generate(), true)
			s.False(dup)
		}()
	}
	wg.Wait()
}
