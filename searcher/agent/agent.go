package agent

import (
	"santorini/experiments/metrics"
	"santorini/game"
	"santorini/searcher"
)

// Agent picks one move per turn. updates lists the plies played since the
// agent's previous turn, so a tree-search agent can carry its tree over.
type Agent interface {
	FindMove(state game.State, updates []searcher.Segment) (game.Action, metrics.SearchMetric)
}
