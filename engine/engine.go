package engine

import "santorini/experiments/metrics"

// Engine runs one full game between agents.
type Engine interface {
	// Run starts a game till there's a winner or the move limit is reached
	Run() (winner int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
