package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"

	"golang.org/x/exp/slices"
)

// GameState holds one match: the packed board, each player's worker pair
// in canonical (sorted) order, the turn and placement counters, the
// outcome, and the cached legal action list for the player about to move.
// It is mutated in place by Apply; independent copies come from Clone.
type GameState struct {
	board         [NumCells]Cell
	workers       [NumPlayers][2]int
	current       int
	outcome       int
	workersPlaced int
	legal         []Action
}

// NewGameState returns the opening position: empty board, no workers
// placed, player 0 to move.
func NewGameState() *GameState {
	gs := &GameState{outcome: NoPlayer}
	gs.setLegalActions()
	return gs
}

// Player returns the player about to move, or NoPlayer on a finished game.
func (gs *GameState) Player() int {
	if gs.IsTerminal() {
		return NoPlayer
	}
	return gs.current
}

// Winner returns the winning player, or NoPlayer while the game is live.
func (gs *GameState) Winner() int {
	return gs.outcome
}

// WorkersPlaced returns how many workers are on the board: 0, 2 or 4.
func (gs *GameState) WorkersPlaced() int {
	return gs.workersPlaced
}

// CellAt returns the packed value of one board cell.
func (gs *GameState) CellAt(cell int) Cell {
	return gs.board[cell]
}

// WorkerCells returns the player's worker pair in canonical order. Only
// meaningful once that player has placed.
func (gs *GameState) WorkerCells(player int) [2]int {
	return gs.workers[player]
}

// IsTerminal reports whether the game is over. The cached legal action
// list is the single source of truth: it is emptied exactly when an
// outcome is recorded.
func (gs *GameState) IsTerminal() bool {
	return gs.outcome != NoPlayer
}

// Returns gives each player's terminal reward: +1 for the winner, -1 for
// the loser, both 0 while the game is live.
func (gs *GameState) Returns() []float64 {
	returns := make([]float64, NumPlayers)
	if gs.outcome != NoPlayer {
		returns[gs.outcome] = MaxUtility
		returns[1-gs.outcome] = MinUtility
	}
	return returns
}

// LegalMoves returns the legal actions for the player about to move, in
// the deterministic enumeration order of the generator. The slice is
// owned by the state and valid until the next Apply.
func (gs *GameState) LegalMoves() []Action {
	return gs.legal
}

// Apply plays the given action, mutating the state in place: board and
// worker positions update, the turn passes, and the legal action list is
// regenerated for the next player. An id outside the declared range or
// absent from the current legal set is a driver bug and is rejected with
// an error before any mutation.
func (gs *GameState) Apply(action Action) error {
	if action < 0 || action >= NumDistinctActions {
		return fmt.Errorf("action %d outside [0, %d)", action, NumDistinctActions)
	}
	if !slices.Contains(gs.legal, action) {
		return fmt.Errorf("action %v is illegal in the current position", action)
	}
	gs.apply(action)
	return nil
}

// Play returns the successor of playing action on a copy of the state,
// leaving the receiver untouched. Legality is not re-checked: the searcher
// only plays actions drawn from LegalMoves.
func (gs *GameState) Play(action Action) State {
	next := gs.Clone()
	next.apply(action)
	return next
}

// Clone returns a fully independent deep copy, including the cached legal
// action list.
func (gs *GameState) Clone() *GameState {
	clone := *gs
	clone.legal = slices.Clone(gs.legal)
	return &clone
}

func (gs *GameState) apply(action Action) {
	if gs.workersPlaced < 2*NumPlayers {
		cellA, cellB := action.PlacementCells()
		gs.board[cellA] = gs.board[cellA].withWorker(gs.current)
		gs.board[cellB] = gs.board[cellB].withWorker(gs.current)
		gs.workers[gs.current] = [2]int{cellA, cellB}
		gs.workersPlaced += 2
	} else {
		gs.moveAndBuild(action)
	}
	gs.current = 1 - gs.current
	gs.setLegalActions()
}

func (gs *GameState) moveAndBuild(action Action) {
	workerID := action.WorkerID()
	move := directions[action.MoveDirection()]
	build := directions[action.BuildDirection()]

	// Legality was verified at generation time, so the destination and
	// build site follow by plain index arithmetic.
	from := gs.workers[gs.current][workerID]
	to := from + move.dr*NumCols + move.dc
	site := to + build.dr*NumCols + build.dc

	gs.board[from] = gs.board[from].vacated()
	gs.board[to] = gs.board[to].withWorker(gs.current)
	gs.board[site] = gs.board[site].raised()

	gs.workers[gs.current][workerID] = to
	if gs.workers[gs.current][0] > gs.workers[gs.current][1] {
		gs.workers[gs.current][0], gs.workers[gs.current][1] =
			gs.workers[gs.current][1], gs.workers[gs.current][0]
	}

	// A climb onto the top floor wins immediately, before the opponent's
	// legal actions are even generated.
	if gs.board[to].Height() == NumFloors {
		gs.outcome = gs.current
	}
}

// setLegalActions regenerates the cached legal action list for the player
// about to move. A live position with no legal action is a stalemate loss
// for that player; a previously recorded win is never overridden.
func (gs *GameState) setLegalActions() {
	gs.legal = gs.legal[:0]
	if gs.outcome != NoPlayer {
		return
	}
	if gs.workersPlaced < 2*NumPlayers {
		gs.placementActions()
	} else {
		gs.moveBuildActions()
	}
	if len(gs.legal) == 0 {
		gs.outcome = 1 - gs.current
	}
}

func (gs *GameState) placementActions() {
	for id, pair := range placementCells {
		// Occupant tag only: a built-up but vacated tower stays a legal
		// placement target.
		if !gs.board[pair[0]].Occupied() && !gs.board[pair[1]].Occupied() {
			gs.legal = append(gs.legal, Action(id))
		}
	}
}

func (gs *GameState) moveBuildActions() {
	// A worker already on the top floor means the position is transient
	// (the win is recorded on arrival); no moves from it.
	if gs.board[gs.workers[gs.current][0]].Height() >= NumFloors ||
		gs.board[gs.workers[gs.current][1]].Height() >= NumFloors {
		return
	}
	for workerID := 0; workerID < 2; workerID++ {
		from := gs.workers[gs.current][workerID]
		fromRow, fromCol := Coord(from)
		for moveDir, move := range directions {
			toRow, toCol := fromRow+move.dr, fromCol+move.dc
			if toRow < 0 || toRow >= NumRows || toCol < 0 || toCol >= NumCols {
				continue
			}
			to := CellIndex(toRow, toCol)
			// Workers step down any distance but climb at most one floor.
			if gs.board[to].Occupied() || gs.board[to].Height() > gs.board[from].Height()+1 {
				continue
			}
			for buildDir, build := range directions {
				siteRow, siteCol := toRow+build.dr, toCol+build.dc
				if siteRow < 0 || siteRow >= NumRows || siteCol < 0 || siteCol >= NumCols {
					continue
				}
				site := CellIndex(siteRow, siteCol)
				if gs.board[site].Height() == NumFloors+1 {
					continue
				}
				// An occupied site is only buildable when it is the
				// worker's own origin, vacated by this very move.
				if gs.board[site].Occupied() && buildDir != opposite[moveDir] {
					continue
				}
				gs.legal = append(gs.legal, EncodeMoveBuild(workerID, moveDir, buildDir))
			}
		}
	}
}

// Hash returns an fnv64a digest of the position, used by the searcher to
// recognize nodes across plies.
func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()
	binary.Write(hasher, binary.LittleEndian, int64(gs.current))
	binary.Write(hasher, binary.LittleEndian, int64(gs.workersPlaced))
	cells := make([]byte, NumCells)
	for i, c := range gs.board {
		cells[i] = byte(c)
	}
	hasher.Write(cells)
	return StateHash(hasher.Sum64())
}

// String renders the board one glyph per cell, rows separated by
// newlines. Display only; nothing internal consumes it.
func (gs *GameState) String() string {
	var b strings.Builder
	b.Grow(NumCells + NumRows - 1)
	for row := 0; row < NumRows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < NumCols; col++ {
			b.WriteByte(gs.board[CellIndex(row, col)].Glyph())
		}
	}
	return b.String()
}
