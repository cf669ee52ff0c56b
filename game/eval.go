package game

// EvaluateHeight scores a position by how high each side's workers stand,
// returning a value in [-1, 1] from the current player's perspective.
// Elevation is the dominant resource in this game: a worker one step below
// the top threatens to win, and height advantage compounds because
// climbing is limited to one floor per move.
func EvaluateHeight(s State) float64 {
	gs := s.(*GameState)
	if gs.workersPlaced < 2*NumPlayers || gs.IsTerminal() {
		return 0
	}
	var elevation [NumPlayers]float64
	for player := 0; player < NumPlayers; player++ {
		for _, cell := range gs.workers[player] {
			elevation[player] += float64(gs.board[cell].Height())
		}
	}
	return normalize(elevation[gs.current], elevation[1-gs.current])
}

// normalize converts two non-negative tallies into a single score between
// -1 and 1.
func normalize(value, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	// [a/(a+b)-0.5]*2 = (a-b)/(a+b)
	return (value - otherValue) / total
}
