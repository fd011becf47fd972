// Package routing builds and solves the daily vehicle-routing integer
// program (C2): for a fixed fleet size, decide whether that fleet can
// service a day's demand within the shift length, and at what mileage.
package routing

import (
	"fmt"
	"math"

	"github.com/portomove/haulerplan/internal/config"
	"github.com/portomove/haulerplan/internal/milp"
	"github.com/portomove/haulerplan/internal/parameters"
)

// subsetBigM bounds intra-subset traversal count in R7/R8; the route-count
// bound matrix already caps any single arc well below this.
const subsetBigM = 100

// Arc names one decision variable's location pair and hauler.
type Arc struct {
	From, To, Hauler int
}

// Result is the router's output: the solver status, total mileage, and the
// per-arc traversal counts for every hauler that has at least one nonzero
// arc. Policy (what to do about Infeasible/Undefined) lives in the driver.
type Result struct {
	Status    milp.Status
	Objective float64
	Counts    map[Arc]int
	SubsetY   map[subsetHauler]int
}

type subsetHauler struct {
	Subset int // index into Day.Subsets
	Hauler int
}

// Solve builds the R1-R8 integer program for one day and fleet size and
// solves it via internal/milp.
func Solve(cfg config.Fixed, day parameters.Day, fleetSize int) (Result, error) {
	if fleetSize <= 0 {
		return Result{Status: milp.Infeasible}, nil
	}
	n := len(day.Locations)
	endIdx := n - 1
	m := milp.NewModel("daily-route")

	xName := func(i, j, k int) string { return fmt.Sprintf("x_%d_%d_%d", i, j, k) }
	yName := func(s, k int) string { return fmt.Sprintf("y_%d_%d", s, k) }

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			for k := 0; k < fleetSize; k++ {
				m.AddVar(milp.Var{Name: xName(i, j, k), Lower: 0, Upper: float64(day.Bound[i][j]), Integer: true})
			}
		}
	}
	for s := range day.Subsets {
		for k := 0; k < fleetSize; k++ {
			m.AddVar(milp.Var{Name: yName(s, k), Binary: true})
		}
	}

	var objective []milp.Term
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j || day.Travel[i][j] == 0 {
				continue
			}
			for k := 0; k < fleetSize; k++ {
				objective = append(objective, milp.Term{Var: xName(i, j, k), Coeff: float64(day.Travel[i][j])})
			}
		}
	}
	m.SetObjective(objective)

	// R1: every hauler departs the start hub.
	for k := 0; k < fleetSize; k++ {
		var terms []milp.Term
		for j := 1; j < n; j++ {
			terms = append(terms, milp.Term{Var: xName(0, j, k), Coeff: 1})
		}
		m.AddConstraint(milp.Constraint{Name: fmt.Sprintf("r1_%d", k), Terms: terms, Sense: milp.GE, RHS: 1})
	}

	// R2: flow conservation at customers.
	for h := 1; h < endIdx; h++ {
		for k := 0; k < fleetSize; k++ {
			var terms []milp.Term
			for i := 0; i < n; i++ {
				if i != h {
					terms = append(terms, milp.Term{Var: xName(i, h, k), Coeff: 1})
				}
			}
			for j := 0; j < n; j++ {
				if j != h {
					terms = append(terms, milp.Term{Var: xName(h, j, k), Coeff: -1})
				}
			}
			m.AddConstraint(milp.Constraint{Name: fmt.Sprintf("r2_%d_%d", h, k), Terms: terms, Sense: milp.EQ, RHS: 0})
		}
	}

	// R3: each hauler ends at end hub exactly once.
	for k := 0; k < fleetSize; k++ {
		var terms []milp.Term
		for i := 0; i < endIdx; i++ {
			terms = append(terms, milp.Term{Var: xName(i, endIdx, k), Coeff: 1})
		}
		m.AddConstraint(milp.Constraint{Name: fmt.Sprintf("r3_%d", k), Terms: terms, Sense: milp.EQ, RHS: 1})
	}

	// R4: shift-length cap.
	for k := 0; k < fleetSize; k++ {
		var terms []milp.Term
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				per := cfg.Handle + math.Floor(float64(day.Travel[i][j])/cfg.TravelRate)
				terms = append(terms, milp.Term{Var: xName(i, j, k), Coeff: per})
			}
		}
		m.AddConstraint(milp.Constraint{Name: fmt.Sprintf("r4_%d", k), Terms: terms, Sense: milp.LE, RHS: cfg.DayLength + cfg.Handle})
	}

	// R5: demand satisfaction at customers.
	for i := 1; i < endIdx; i++ {
		var terms []milp.Term
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			for k := 0; k < fleetSize; k++ {
				terms = append(terms, milp.Term{Var: xName(i, j, k), Coeff: 1})
			}
		}
		m.AddConstraint(milp.Constraint{Name: fmt.Sprintf("r5_%d", i), Terms: terms, Sense: milp.EQ, RHS: math.Abs(day.Demand[i])})
	}

	// R6: arc-count upper bounds.
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			var terms []milp.Term
			for k := 0; k < fleetSize; k++ {
				terms = append(terms, milp.Term{Var: xName(i, j, k), Coeff: 1})
			}
			m.AddConstraint(milp.Constraint{Name: fmt.Sprintf("r6_%d_%d", i, j), Terms: terms, Sense: milp.LE, RHS: float64(day.Bound[i][j])})
		}
	}

	// R7/R8: subset indicator coupling and exit, for subtour elimination.
	for s, subset := range day.Subsets {
		inSet := make(map[int]bool, len(subset))
		for _, idx := range subset {
			inSet[idx] = true
		}
		for k := 0; k < fleetSize; k++ {
			var within []milp.Term
			for _, i := range subset {
				for _, j := range subset {
					if i == j {
						continue
					}
					within = append(within, milp.Term{Var: xName(i, j, k), Coeff: 1})
				}
			}
			within = append(within, milp.Term{Var: yName(s, k), Coeff: -subsetBigM})
			m.AddConstraint(milp.Constraint{Name: fmt.Sprintf("r7_%d_%d", s, k), Terms: within, Sense: milp.LE, RHS: 0})

			var exit []milp.Term
			for _, i := range subset {
				for j := 0; j < n; j++ {
					if inSet[j] {
						continue
					}
					exit = append(exit, milp.Term{Var: xName(i, j, k), Coeff: 1})
				}
			}
			exit = append(exit, milp.Term{Var: yName(s, k), Coeff: -1})
			m.AddConstraint(milp.Constraint{Name: fmt.Sprintf("r8_%d_%d", s, k), Terms: exit, Sense: milp.GE, RHS: 0})
		}
	}

	sol := milp.Solve(m, milp.Options{})
	result := Result{Status: sol.Status, Objective: sol.Objective}
	if sol.Status != milp.Optimal {
		return result, nil
	}

	result.Counts = make(map[Arc]int)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			for k := 0; k < fleetSize; k++ {
				if c := sol.IntValue(xName(i, j, k)); c > 0 {
					result.Counts[Arc{From: i, To: j, Hauler: k}] = c
				}
			}
		}
	}
	result.SubsetY = make(map[subsetHauler]int)
	for s := range day.Subsets {
		for k := 0; k < fleetSize; k++ {
			if v := sol.IntValue(yName(s, k)); v > 0 {
				result.SubsetY[subsetHauler{Subset: s, Hauler: k}] = v
			}
		}
	}
	return result, nil
}
