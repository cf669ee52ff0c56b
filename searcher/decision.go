package searcher

import (
	"math"
	"sync"

	"golang.org/x/exp/slices"

	"santorini/game"
)

// decision is one tree node: a position where a player picks among legal
// moves. Every move in this game is deterministic, so decisions are the
// only node kind. Stats are guarded per node for tree parallelization; a
// temporary loss is applied on the way down so concurrent episodes spread
// over different branches.
type decision struct {
	sync.RWMutex
	parent     *decision
	player     int
	hash       game.StateHash
	unexplored []game.Action
	children   map[game.Action]*decision
	rewards    float64
	visits     float64
}

func newDecision(parent *decision, state game.State) *decision {
	return &decision{
		parent:     parent,
		player:     state.Player(),
		hash:       state.Hash(),
		unexplored: slices.Clone(state.LegalMoves()),
		children:   map[game.Action]*decision{},
	}
}

// SelectOrExpand walks one step: on a fully expanded node it selects the
// max-UCB child (selected = true), on an expandable node it adds one child
// (selected = false, rollout starts there), and on a terminal node it
// returns itself unchanged.
func (d *decision) SelectOrExpand(state game.State) (*decision, game.State, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.unexplored) == 0 && len(d.children) == 0 { // Terminal node
		return d, state, false
	}

	if len(d.unexplored) > 0 { // Expandable node
		move := d.unexplored[len(d.unexplored)-1]
		d.unexplored = d.unexplored[:len(d.unexplored)-1]
		childState := state.Play(move)
		child := newDecision(d, childState)
		child.applyLoss()
		d.children[move] = child
		return child, childState, false
	}

	// Fully expanded node
	move, child := d.pickChild()
	child.applyLoss()
	return child, state.Play(move), true
}

func (d *decision) pickChild() (game.Action, *decision) {
	if d.visits == 0 {
		panic("node has children but no visits")
	}
	normalizer := CSquared * math.Log(d.visits)

	var maxMove game.Action
	var maxChild *decision
	maxScore := math.Inf(-1)
	for move, child := range d.children {
		score := child.score(normalizer)
		if score > maxScore {
			maxScore = score
			maxMove = move
			maxChild = child
		}
	}
	return maxMove, maxChild
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) reverseLoss() {
	d.rewards -= Loss
	d.visits--
}

func (d *decision) score(c2LnN float64) float64 {
	d.RLock()
	defer d.RUnlock()

	return ucb1(d.rewards, d.visits, c2LnN)
}

// Backup folds one episode result into the node and returns its parent.
// The reward is credited from the perspective of the player who moved
// into this node, so that pickChild maximizes from the chooser's side.
func (d *decision) Backup(player int, score float64) *decision {
	d.Lock()
	defer d.Unlock()

	mover := d.player
	if d.parent != nil { // Non-root node
		d.reverseLoss()
		mover = d.parent.player
	}
	if mover == player {
		d.rewards += score
	} else {
		d.rewards += Win - score
	}
	d.visits++

	return d.parent
}

// Policy reports each explored move's share of the root's visits.
func (d *decision) Policy() map[game.Action]float64 {
	d.RLock()
	defer d.RUnlock()

	policy := make(map[game.Action]float64, len(d.children))
	if d.visits == 0 {
		return policy
	}
	for move, child := range d.children {
		child.RLock()
		policy[move] = child.visits / d.visits
		child.RUnlock()
	}
	return policy
}
