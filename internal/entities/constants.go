package entities

// Villain ids. Each villain has its own board, decks and objective.
const (
	VillainMaleficent    = "maleficent"
	VillainJafar         = "jafar"
	VillainCaptainHook   = "captain_hook"
	VillainPrinceJohn    = "prince_john"
	VillainQueenOfHearts = "queen_of_hearts"
	VillainUrsula        = "ursula"
)

// AllVillains lists the villains shipped with the base data set
func AllVillains() []string {
	return []string{
		VillainMaleficent,
		VillainJafar,
		VillainCaptainHook,
		VillainPrinceJohn,
		VillainQueenOfHearts,
		VillainUrsula,
	}
}

// Table limits
const (
	BoardSize          = 4
	MaxLocationActions = 4
	DefaultHandSize    = 4
	DefaultMaxPlayers  = 6
	DefaultMinPlayers  = 2
	FateDrawCount      = 2
)
