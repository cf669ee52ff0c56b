package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"santorini/config"
	"santorini/engine"
	"santorini/experiments"
	"santorini/game"
	"santorini/searcher"
	"santorini/searcher/agent"
)

func main() {
	mode := flag.String("mode", "selfplay", "selfplay, experiment or play")
	cfgPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.InitConfig(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msgf("bad log level %q", cfg.LogLevel)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch *mode {
	case "selfplay":
		runSelfPlay(cfg)
	case "experiment":
		experiments.RunParallelizationExperiment()
		experiments.RunCutoffExperiment()
	case "play":
		runHumanGame(cfg)
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
}

func runSelfPlay(cfg *config.Config) {
	for i := 0; i < cfg.Games; i++ {
		agents := []agent.Agent{
			agent.NewEvaluationAgent(newMCTS(cfg)),
			agent.NewEvaluationAgent(newMCTS(cfg)),
		}
		e := engine.NewLocalEngine(agents)
		winner, gameMetric, _ := e.Run()
		log.Info().Msgf("game %d of %d: player %d won in %d moves (%s)",
			i+1, cfg.Games, winner, gameMetric.TotalMoves, gameMetric.Duration)
	}
}

// runHumanGame plays the human (player 0) against a search agent, reading
// action strings like "P0001" or "0M6B4" from stdin.
func runHumanGame(cfg *config.Config) {
	state := game.NewGameState()
	opponent := agent.NewEvaluationAgent(newMCTS(cfg))
	scanner := bufio.NewScanner(os.Stdin)

	var lineage []searcher.Segment
	for !state.IsTerminal() {
		fmt.Println(state)
		if state.Player() == 0 {
			move, ok := readMove(scanner, state)
			if !ok {
				return
			}
			if err := state.Apply(move); err != nil {
				fmt.Println(err)
				continue
			}
			lineage = append(lineage, searcher.Segment{Move: move, StateHash: state.Hash()})
		} else {
			move, _ := opponent.FindMove(state, lineage)
			lineage = lineage[:0]
			if err := state.Apply(move); err != nil {
				log.Fatal().Err(err).Msg("agent returned a bad move")
			}
			fmt.Printf("opponent plays %v\n", move)
			lineage = append(lineage, searcher.Segment{Move: move, StateHash: state.Hash()})
		}
	}
	fmt.Println(state)
	fmt.Printf("player %d wins\n", state.Winner())
}

func readMove(scanner *bufio.Scanner, state *game.GameState) (game.Action, bool) {
	for {
		fmt.Print("your move: ")
		if !scanner.Scan() {
			return 0, false
		}
		move, err := game.ParseAction(scanner.Text())
		if err != nil {
			fmt.Println(err)
			continue
		}
		return move, true
	}
}

func newMCTS(cfg *config.Config) *searcher.MCTS {
	options := []searcher.Option{}
	if cfg.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(cfg.Episodes))
	} else {
		options = append(options, searcher.WithDuration(cfg.SearchDuration()))
	}
	if cfg.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(cfg.Cutoff))
	}
	return searcher.NewMCTS(cfg.Goroutines, options...)
}
