// Package optim fits contact parameters to observed behavior, the
// usual route when stiffnesses and kinetic friction are not measured
// directly.
package optim

import (
	"context"
	"math"
)

// Objective scores one candidate parameter set; lower is better.
// Returning an error discards the candidate without aborting the search.
type Objective func(ctx context.Context, params map[string]float64) (float64, error)

// GridSearch exhaustively evaluates the cross product of per-parameter
// value grids.
type GridSearch struct {
	names []string
	grids [][]float64
}

func NewGridSearch(names []string, grids [][]float64) *GridSearch {
	return &GridSearch{names: names, grids: grids}
}

// Range returns n evenly spaced values across [lo, hi].
func Range(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	vals := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range vals {
		vals[i] = lo + float64(i)*step
	}
	return vals
}

// Search returns the best-scoring parameter set and its cost. The
// context aborts the remaining grid.
func (g *GridSearch) Search(ctx context.Context, obj Objective) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.walk(ctx, 0, make(map[string]float64), obj, &best, &bestParams)
	if err != nil {
		return bestParams, best, err
	}
	return bestParams, best, nil
}

func (g *GridSearch) walk(ctx context.Context, depth int, current map[string]float64,
	obj Objective, best *float64, bestParams *map[string]float64) error {

	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.names) {
		cost, err := obj(ctx, current)
		if err != nil {
			return nil // invalid candidate, keep searching
		}
		if cost < *best {
			*best = cost
			copied := make(map[string]float64, len(current))
			for k, v := range current {
				copied[k] = v
			}
			*bestParams = copied
		}
		return nil
	}

	for _, v := range g.grids[depth] {
		current[g.names[depth]] = v
		if err := g.walk(ctx, depth+1, current, obj, best, bestParams); err != nil {
			return err
		}
	}
	delete(current, g.names[depth])
	return nil
}
