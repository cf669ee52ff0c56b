package searcher

import "math"

// ucb1 balances a node's mean reward against how undersampled it is
// relative to its parent.
func ucb1(rewards, visits, c2LnN float64) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}
	return rewards/visits + math.Sqrt(c2LnN/visits)
}
