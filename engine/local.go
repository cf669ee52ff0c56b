package engine

import (
	"time"

	"github.com/rs/zerolog/log"

	"santorini/experiments/metrics"
	"santorini/game"
	"santorini/searcher"
	"santorini/searcher/agent"
)

// LocalEngine drives one in-process game between two agents, feeding each
// agent the plies played since its previous turn so search trees survive
// across moves.
type LocalEngine struct {
	State  *game.GameState
	Agents []agent.Agent
}

func NewLocalEngine(agents []agent.Agent) *LocalEngine {
	if len(agents) != game.NumPlayers {
		panic("need exactly one agent per player")
	}
	return &LocalEngine{
		State:  game.NewGameState(),
		Agents: agents,
	}
}

// Run executes the entire game loop until the game is decided. MaxGameLength
// bounds the loop; a legal game always terminates within it.
func (e *LocalEngine) Run() (int, metrics.GameMetric, []metrics.MoveMetric) {
	lineages := make([][]searcher.Segment, len(e.Agents))

	startingPlayer := e.State.Player()
	startTime := time.Now()
	log.Info().Msgf("player %d is starting", startingPlayer)

	var moveMetrics []metrics.MoveMetric
	step := 0
	for !e.State.IsTerminal() && step < game.MaxGameLength {
		player := e.State.Player()

		move, metric := e.Agents[player].FindMove(e.State, lineages[player])
		lineages[player] = lineages[player][:0]

		if err := e.State.Apply(move); err != nil {
			log.Panic().Err(err).Msgf("agent for player %d returned a bad move", player)
		}

		segment := searcher.Segment{Move: move, StateHash: e.State.Hash()}
		for i := range lineages {
			lineages[i] = append(lineages[i], segment)
		}

		step++
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player,
			SearchMetric: metric,
		})
		log.Debug().Msgf("step %d: player %d played %v", step, player, move)
	}

	endTime := time.Now()
	winner := e.State.Winner()
	log.Info().Msgf("game over after %d moves, winner: player %d", step, winner)

	gameMetric := metrics.GameMetric{
		StartingPlayer: startingPlayer,
		Winner:         winner,
		StartTime:      startTime,
		EndTime:        endTime,
		Duration:       endTime.Sub(startTime),
		TotalMoves:     step,
	}
	return winner, gameMetric, moveMetrics
}
