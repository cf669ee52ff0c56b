package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// newPlayingState builds a mid-game position directly: heights by cell,
// both worker pairs (canonical order), and the player to move.
func newPlayingState(heights map[int]int, workers [NumPlayers][2]int, current int) *GameState {
	gs := &GameState{
		outcome:       NoPlayer,
		workersPlaced: 2 * NumPlayers,
		workers:       workers,
		current:       current,
	}
	for cell, h := range heights {
		gs.board[cell] = Cell(h)
	}
	for player := 0; player < NumPlayers; player++ {
		for _, cell := range workers[player] {
			gs.board[cell] = gs.board[cell].withWorker(player)
		}
	}
	gs.setLegalActions()
	return gs
}

func TestNewGameState(t *testing.T) {
	gs := NewGameState()

	require.Equal(t, 0, gs.Player())
	require.Equal(t, 0, gs.WorkersPlaced())
	require.False(t, gs.IsTerminal())
	require.Equal(t, []float64{0, 0}, gs.Returns())

	legal := gs.LegalMoves()
	require.Len(t, legal, NumPlacementActions, "every pair of empty cells is a legal placement")
	for _, action := range legal {
		require.Equal(t, PlacementAction, action.Kind())
	}
}

func TestPlacementPhase(t *testing.T) {
	gs := NewGameState()

	// Player 0 places at (0,0) and (0,1)
	first := EncodePlacement(CellIndex(0, 0), CellIndex(0, 1))
	require.Contains(t, gs.LegalMoves(), first)
	require.NoError(t, gs.Apply(first))

	require.Equal(t, 2, gs.WorkersPlaced())
	require.Equal(t, 1, gs.Player())
	require.Equal(t, 0, gs.CellAt(CellIndex(0, 0)).Occupant())
	require.Equal(t, 0, gs.CellAt(CellIndex(0, 1)).Occupant())
	require.Equal(t, [2]int{0, 1}, gs.WorkerCells(0))

	// Two cells are gone: 23 remain, C(23,2) pairs stay legal
	require.Len(t, gs.LegalMoves(), 23*22/2)
	for _, action := range gs.LegalMoves() {
		cellA, cellB := action.PlacementCells()
		require.False(t, gs.CellAt(cellA).Occupied())
		require.False(t, gs.CellAt(cellB).Occupied())
	}

	// Player 1 places at (4,4) and (4,3); the pair canonicalizes
	second := EncodePlacement(CellIndex(4, 3), CellIndex(4, 4))
	require.Contains(t, gs.LegalMoves(), second)
	require.NoError(t, gs.Apply(second))

	require.Equal(t, 4, gs.WorkersPlaced())
	require.Equal(t, [2]int{23, 24}, gs.WorkerCells(1))
	require.Equal(t, 0, gs.Player())

	require.NotEmpty(t, gs.LegalMoves())
	for _, action := range gs.LegalMoves() {
		require.Equal(t, MoveBuildAction, action.Kind(), "placement is over after 4 workers")
	}
}

func TestApplyRejectsBadActions(t *testing.T) {
	gs := NewGameState()

	require.Error(t, gs.Apply(Action(-1)))
	require.Error(t, gs.Apply(Action(NumDistinctActions)))
	require.Error(t, gs.Apply(EncodeMoveBuild(0, 0, 0)), "move-build is illegal during placement")

	// The failed applies must not have touched the state
	require.Equal(t, 0, gs.Player())
	require.Len(t, gs.LegalMoves(), NumPlacementActions)
}

func TestMoveAndBuild(t *testing.T) {
	// Player 0's worker 0 stands on a height-1 cell at (1,1)
	gs := newPlayingState(
		map[int]int{CellIndex(1, 1): 1},
		[NumPlayers][2]int{{CellIndex(1, 1), CellIndex(3, 3)}, {CellIndex(4, 0), CellIndex(4, 4)}},
		0,
	)

	// Move east to (1,2), build back west onto the vacated origin
	action := EncodeMoveBuild(0, 4, 3)
	require.Contains(t, gs.LegalMoves(), action)
	require.NoError(t, gs.Apply(action))

	origin := gs.CellAt(CellIndex(1, 1))
	require.False(t, origin.Occupied(), "origin is vacated")
	require.Equal(t, 2, origin.Height(), "height preserved on vacate, then raised by the build")

	dest := gs.CellAt(CellIndex(1, 2))
	require.Equal(t, 0, dest.Occupant())
	require.Equal(t, 0, dest.Height(), "moving does not build")

	require.Equal(t, [2]int{CellIndex(1, 2), CellIndex(3, 3)}, gs.WorkerCells(0))
	require.Equal(t, 1, gs.Player())
	require.False(t, gs.IsTerminal())
}

func TestWorkerPairRecanonicalized(t *testing.T) {
	gs := newPlayingState(
		map[int]int{},
		[NumPlayers][2]int{{CellIndex(1, 1), CellIndex(1, 2)}, {CellIndex(4, 0), CellIndex(4, 4)}},
		0,
	)

	// Worker 0 at cell 6 steps south to cell 11, past its partner at cell 7
	action := EncodeMoveBuild(0, 6, 1)
	require.Contains(t, gs.LegalMoves(), action)
	require.NoError(t, gs.Apply(action))

	require.Equal(t, [2]int{CellIndex(1, 2), CellIndex(2, 1)}, gs.WorkerCells(0),
		"pair must stay sorted after the move")
}

func TestWinByReachingTopFloor(t *testing.T) {
	gs := newPlayingState(
		map[int]int{CellIndex(2, 2): 2, CellIndex(2, 3): 3},
		[NumPlayers][2]int{{CellIndex(2, 2), CellIndex(3, 3)}, {CellIndex(0, 0), CellIndex(4, 0)}},
		0,
	)

	// Climb from height 2 onto the height-3 cell, build anywhere legal
	action := EncodeMoveBuild(0, 4, 3)
	require.Contains(t, gs.LegalMoves(), action)
	require.NoError(t, gs.Apply(action))

	require.True(t, gs.IsTerminal())
	require.Equal(t, 0, gs.Winner())
	require.Equal(t, NoPlayer, gs.Player())
	require.Equal(t, []float64{MaxUtility, MinUtility}, gs.Returns())
	require.Empty(t, gs.LegalMoves())
}

func TestStalemateLosesForMover(t *testing.T) {
	// Both of player 0's workers are boxed in by height-2 towers: from
	// ground level every destination is a two-floor climb.
	heights := map[int]int{}
	for _, cell := range []int{1, 5, 6, 3, 8, 9} {
		heights[cell] = 2
	}
	gs := newPlayingState(
		heights,
		[NumPlayers][2]int{{CellIndex(0, 0), CellIndex(0, 4)}, {CellIndex(4, 0), CellIndex(4, 4)}},
		0,
	)

	require.Empty(t, gs.LegalMoves())
	require.True(t, gs.IsTerminal())
	require.Equal(t, 1, gs.Winner(), "the stalemated mover loses")
	require.Equal(t, []float64{MinUtility, MaxUtility}, gs.Returns())
}

func TestVacatedOriginBuildException(t *testing.T) {
	gs := newPlayingState(
		map[int]int{},
		[NumPlayers][2]int{{CellIndex(2, 2), CellIndex(4, 4)}, {CellIndex(0, 4), CellIndex(2, 0)}},
		0,
	)

	// Worker 0 steps west from (2,2) to (2,1). Building back east onto the
	// origin is legal even though the origin still reads occupied during
	// generation; building onto the opponent's worker at (2,0) is not.
	ontoOrigin := EncodeMoveBuild(0, 3, 4)
	ontoOpponent := EncodeMoveBuild(0, 3, 3)
	require.Contains(t, gs.LegalMoves(), ontoOrigin)
	require.NotContains(t, gs.LegalMoves(), ontoOpponent)
}

func TestClimbAtMostOneFloor(t *testing.T) {
	gs := newPlayingState(
		map[int]int{CellIndex(2, 3): 2, CellIndex(2, 1): 1},
		[NumPlayers][2]int{{CellIndex(2, 2), CellIndex(4, 4)}, {CellIndex(0, 0), CellIndex(0, 4)}},
		0,
	)

	for _, action := range gs.LegalMoves() {
		if action.WorkerID() != 0 {
			continue
		}
		require.NotEqual(t, 4, action.MoveDirection(),
			"two-floor climb from ground onto (2,3) must be illegal")
	}

	// One floor up is fine
	require.Contains(t, gs.LegalMoves(), EncodeMoveBuild(0, 3, 4))
}

func TestDomedCellUnbuildable(t *testing.T) {
	gs := newPlayingState(
		map[int]int{CellIndex(1, 1): NumFloors + 1},
		[NumPlayers][2]int{{CellIndex(2, 2), CellIndex(4, 4)}, {CellIndex(0, 4), CellIndex(4, 0)}},
		0,
	)

	for _, action := range gs.LegalMoves() {
		if action.WorkerID() != 0 {
			continue
		}
		move := directions[action.MoveDirection()]
		build := directions[action.BuildDirection()]
		to := CellIndex(2, 2) + move.dr*NumCols + move.dc
		site := to + build.dr*NumCols + build.dc
		require.NotEqual(t, CellIndex(1, 1), to, "domed cell is unoccupiable")
		require.NotEqual(t, CellIndex(1, 1), site, "domed cell is unbuildable")
	}
}

func TestCloneIndependence(t *testing.T) {
	gs := NewGameState()
	require.NoError(t, gs.Apply(EncodePlacement(CellIndex(0, 0), CellIndex(0, 1))))
	require.NoError(t, gs.Apply(EncodePlacement(CellIndex(4, 3), CellIndex(4, 4))))
	require.NoError(t, gs.Apply(gs.LegalMoves()[0]))

	clone := gs.Clone()
	require.Equal(t, gs.LegalMoves(), clone.LegalMoves())
	require.Equal(t, gs.Player(), clone.Player())
	require.Equal(t, gs.String(), clone.String())
	require.Equal(t, gs.Hash(), clone.Hash())

	before := gs.Hash()
	beforeLegal := append([]Action(nil), gs.LegalMoves()...)
	require.NoError(t, clone.Apply(clone.LegalMoves()[0]))

	require.Equal(t, before, gs.Hash(), "mutating the clone must not touch the original")
	require.Equal(t, beforeLegal, gs.LegalMoves())
	require.NotEqual(t, gs.Hash(), clone.Hash())
}

func TestPlayLeavesReceiverUntouched(t *testing.T) {
	gs := NewGameState()
	before := gs.Hash()

	next := gs.Play(gs.LegalMoves()[0]).(*GameState)

	require.Equal(t, before, gs.Hash())
	require.Equal(t, 0, gs.Player())
	require.Equal(t, 1, next.Player())
	require.NotEqual(t, gs.Hash(), next.Hash())
}

func TestRandomPlayoutInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 20; trial++ {
		gs := NewGameState()
		var heights [NumCells]int
		steps := 0

		for !gs.IsTerminal() {
			legal := gs.LegalMoves()
			require.NotEmpty(t, legal)
			require.NoError(t, gs.Apply(legal[rng.Intn(len(legal))]))
			steps++
			require.LessOrEqual(t, steps, MaxGameLength)

			for cell := 0; cell < NumCells; cell++ {
				h := gs.CellAt(cell).Height()
				require.GreaterOrEqual(t, h, heights[cell], "height never decreases")
				require.LessOrEqual(t, h, NumFloors+1, "height never exceeds the dome")
				heights[cell] = h
			}
		}

		require.Contains(t, []int{0, 1}, gs.Winner())
		returns := gs.Returns()
		require.Equal(t, 0.0, returns[0]+returns[1], "zero-sum outcome")
	}
}

func TestRender(t *testing.T) {
	gs := NewGameState()
	require.Equal(t, "00000\n00000\n00000\n00000\n00000", gs.String())

	mid := newPlayingState(
		map[int]int{CellIndex(0, 2): 3, CellIndex(1, 1): 1},
		[NumPlayers][2]int{{CellIndex(1, 1), CellIndex(2, 2)}, {CellIndex(4, 3), CellIndex(4, 4)}},
		0,
	)
	require.Equal(t, "00300\n0b000\n00a00\n00000\n000AA", mid.String())
}
