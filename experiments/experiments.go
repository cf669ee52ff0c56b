package experiments

import (
	"time"

	"github.com/rs/zerolog/log"

	"santorini/engine"
	"santorini/experiments/metrics"
	"santorini/searcher"
	"santorini/searcher/agent"
)

const (
	NumGames   = 30 // Per match up
	TimeBudget = 50 * time.Millisecond
)

var parallelConfigs = []metrics.AgentConfig{
	{ID: 1, Goroutines: 1, Duration: TimeBudget},
	{ID: 2, Goroutines: 4, Duration: TimeBudget},
	{ID: 3, Goroutines: 8, Duration: TimeBudget},
	{ID: 4, Goroutines: 16, Duration: TimeBudget},
	{ID: 5, Goroutines: 32, Duration: TimeBudget},
	{ID: 6, Goroutines: 64, Duration: TimeBudget},
}

// RunParallelizationExperiment pits each parallel configuration against the
// sequential baseline and records per-game and per-move metrics.
func RunParallelizationExperiment() {
	baseline := metrics.AgentConfig{ID: 0, Goroutines: 1, Duration: TimeBudget}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range parallelConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	runExperiment("parallelization", append(parallelConfigs, baseline), matchUps)
}

// RunCutoffExperiment compares full random playouts against rollouts
// truncated at various depths and scored by the height heuristic.
func RunCutoffExperiment() {
	baseline := metrics.AgentConfig{ID: 0, Goroutines: 8, Duration: TimeBudget} // Full playouts
	cutoffConfigs := []metrics.AgentConfig{
		{ID: 1, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 5},
		{ID: 2, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 15},
		{ID: 3, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 30},
		{ID: 4, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 60},
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range cutoffConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	runExperiment("cutoff", append(cutoffConfigs, baseline), matchUps)
}

func runExperiment(name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) {
	log.Info().Msgf("starting %s experiment...", name)

	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	count := 0

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent %d and agent %d...",
			mi+1, len(matchUps), config1.ID, config2.ID)

		for i := 0; i < NumGames; i++ {
			count++
			agents := []agent.Agent{
				agentFromConfig(config1),
				agentFromConfig(config2),
			}
			e := engine.NewLocalEngine(agents)
			winner, gameMetric, moveMetrics := e.Run()

			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("matchup %d game %d of %d won by player %d", mi+1, i+1, NumGames, winner)
		}
	}

	writer, err := metrics.NewWriter(name)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create metrics writer")
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		log.Fatal().Err(err).Msg("failed to write agent configs")
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		log.Fatal().Err(err).Msg("failed to write game records")
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		log.Fatal().Err(err).Msg("failed to write move records")
	}

	log.Info().Msgf("finished %s experiment: %d games recorded", name, len(gameRecords))
}

func agentFromConfig(config metrics.AgentConfig) agent.Agent {
	options := []searcher.Option{searcher.WithMetrics()}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	return agent.NewEvaluationAgent(searcher.NewMCTS(config.Goroutines, options...))
}
