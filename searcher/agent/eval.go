package agent

import (
	"santorini/experiments/metrics"
	"santorini/game"
	"santorini/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns an agent for actual game play: it searches
// from the given position and commits to the most-visited move.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(state game.State, updates []searcher.Segment) (game.Action, metrics.SearchMetric) {
	policy, metric := a.mcts.Simulate(state, updates)
	return findMax(policy), metric
}

func findMax(policy map[game.Action]float64) game.Action {
	var maxMove game.Action
	maxShare := -1.0
	for move, share := range policy {
		if share > maxShare {
			maxShare = share
			maxMove = move
		}
	}
	return maxMove
}
