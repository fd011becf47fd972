package milp

import "math"

// Options tunes the branch-and-bound search. The zero value is usable:
// NewModel callers that don't care get DefaultNodeBudget.
type Options struct {
	// NodeBudget caps the number of branch-and-bound nodes explored before
	// giving up and returning Undefined. Zero means DefaultNodeBudget.
	NodeBudget int
}

// DefaultNodeBudget bounds the search for the integer programs this package
// solves (daily routing, demand smoothing); both are small enough in
// practice that the budget is rarely approached.
const DefaultNodeBudget = 50000

// Solve runs the LP relaxation of m, and if every Integer/Binary variable
// already lands on an integer value, returns it directly; otherwise it
// branches depth-first on the most-fractional such variable until it finds
// the best integer-feasible solution or exhausts the node budget.
func Solve(m *Model, opts Options) Solution {
	budget := opts.NodeBudget
	if budget <= 0 {
		budget = DefaultNodeBudget
	}

	s := &search{model: m, budget: budget, bestObj: math.Inf(1)}
	root := m.initialBounds()
	// Every branch only tightens bounds, so an unbounded problem shows up as
	// an unbounded root relaxation.
	if status, _, _ := m.relax(root); status == Undefined {
		return Solution{Status: Undefined}
	}
	s.explore(root)

	// A budget-exhausted search may have already found an incumbent, but it
	// hasn't explored enough of the tree to certify optimality: report
	// Undefined rather than hand back a possibly-suboptimal Optimal result.
	if s.nodesExhausted {
		return Solution{Status: Undefined}
	}
	if s.best == nil {
		return Solution{Status: Infeasible}
	}
	values := make(map[string]float64, len(m.Vars))
	for i, v := range m.Vars {
		values[v.Name] = s.best[i]
	}
	return Solution{Status: Optimal, Objective: s.bestObj, Values: values}
}

type search struct {
	model          *Model
	budget         int
	nodes          int
	nodesExhausted bool
	bestObj        float64
	best           []float64
}

// explore is one branch-and-bound node: solve the relaxation under b, prune
// against the incumbent, and either accept an integer-feasible solution or
// branch on the most-fractional candidate variable.
func (s *search) explore(b bounds) {
	if s.nodes >= s.budget {
		s.nodesExhausted = true
		return
	}
	s.nodes++

	status, obj, values := s.model.relax(b)
	if status != Optimal {
		return
	}
	if obj >= s.bestObj-epsilon && s.best != nil {
		return // can't possibly improve on the incumbent
	}

	branchVar := s.mostFractional(values)
	if branchVar == -1 {
		s.bestObj = obj
		s.best = append([]float64(nil), values...)
		return
	}

	floorBound := cloneBounds(b)
	floorBound.upper[branchVar] = math.Floor(values[branchVar])
	if floorBound.upper[branchVar] >= b.lower[branchVar]-epsilon {
		s.explore(floorBound)
	}

	ceilBound := cloneBounds(b)
	ceilBound.lower[branchVar] = math.Ceil(values[branchVar])
	if ceilBound.lower[branchVar] <= b.upper[branchVar]+epsilon {
		s.explore(ceilBound)
	}
}

// mostFractional returns the index of the integer/binary variable farthest
// from an integer value, or -1 if every such variable is already integral.
func (s *search) mostFractional(values []float64) int {
	best := -1
	bestDist := epsilon
	for i, v := range s.model.Vars {
		if !v.Integer {
			continue
		}
		frac := values[i] - math.Floor(values[i])
		dist := math.Min(frac, 1-frac)
		if dist > bestDist {
			bestDist = dist
			best = i
		}
	}
	return best
}

func cloneBounds(b bounds) bounds {
	return bounds{
		lower: append([]float64(nil), b.lower...),
		upper: append([]float64(nil), b.upper...),
	}
}
