package searcher

import "math"

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

// Use rewards to estimate the chance of winning
const Win = 1.0
const Loss = 0.0

// MaxCutoff effectively disables the rollout depth cutoff.
const MaxCutoff = math.MaxInt
