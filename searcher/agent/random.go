package agent

import (
	"golang.org/x/exp/rand"

	"santorini/experiments/metrics"
	"santorini/game"
	"santorini/searcher"
)

type randomAgent struct{}

// NewRandomAgent returns a baseline agent picking uniformly among legal
// moves.
func NewRandomAgent() Agent {
	return randomAgent{}
}

func (randomAgent) FindMove(state game.State, updates []searcher.Segment) (game.Action, metrics.SearchMetric) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		panic("no legal moves to pick from")
	}
	return moves[rand.Intn(len(moves))], metrics.SearchMetric{}
}
