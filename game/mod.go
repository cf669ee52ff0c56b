package game

// Player ids. Player 0 always moves first.
const (
	NumPlayers = 2

	// NoPlayer marks an unset outcome and an empty cell occupant.
	NoPlayer = -1
)

// MaxGameLength bounds any legal game: two placement plies, then every
// move-build raises exactly one cell by one level and no cell can be
// raised past the dome.
const MaxGameLength = NumPlayers*2 + NumCells*(NumFloors+1)

// Utility bounds of the zero-sum outcome.
const (
	MinUtility = -1.0
	MaxUtility = 1.0
)

type StateHash uint64

// State is the capability surface the searcher plays against. Play must
// leave the receiver untouched and return an independent successor, so
// that search goroutines can branch from a shared position.
type State interface {
	Player() int
	Winner() int
	LegalMoves() []Action
	Play(Action) State
	Hash() StateHash
}

// Evaluate scores a non-terminal state in [-1, 1] from the current
// player's perspective, positive meaning favorable.
type Evaluate func(State) float64
