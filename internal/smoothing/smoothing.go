// Package smoothing implements the demand smoother (C4): a min-max integer
// program that redistributes each site's demand across a sliding window of
// days, tried over several candidate period lengths, keeping the solution
// with lowest daily-load variance.
package smoothing

import (
	"fmt"
	"math"

	"github.com/portomove/haulerplan/internal/config"
	"github.com/portomove/haulerplan/internal/milp"
	"github.com/portomove/haulerplan/internal/model"
)

// Result is the smoother's output: the chosen period length, the smoothed
// demand matrix (same shape as the input, signs preserved), and the
// per-day totals used to compute the winning variance.
type Result struct {
	Period    int
	Demand    *model.DemandMatrix
	DayTotals []float64
	Variance  float64
}

// Smooth tries every candidate period in cfg.Periods and returns the
// feasible one with lowest daily-load variance. It fails only when every
// candidate is infeasible on some slice.
func Smooth(cfg config.Fixed, raw *model.DemandMatrix) (Result, error) {
	var best Result
	haveBest := false

	for _, period := range cfg.Periods {
		smoothed, ok, err := smoothPeriod(cfg, raw, period)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			continue
		}
		totals := dayTotals(smoothed)
		variance := varianceOf(totals)
		if !haveBest || variance < best.Variance {
			best = Result{Period: period, Demand: smoothed, DayTotals: totals, Variance: variance}
			haveBest = true
		}
	}
	if !haveBest {
		return Result{}, fmt.Errorf("smoothing: every candidate period %v was infeasible on some slice", cfg.Periods)
	}
	return best, nil
}

// smoothPeriod partitions the horizon into consecutive slices of length
// period (the final slice shrinks to the remainder), solves each slice
// independently, and assembles the re-signed result. ok is false if any
// slice fails to solve Optimal.
func smoothPeriod(cfg config.Fixed, raw *model.DemandMatrix, period int) (*model.DemandMatrix, bool, error) {
	numDays := len(raw.Days)
	out := model.NewDemandMatrix(raw.Sites, raw.Days)

	for start := 0; start < numDays; start += period {
		end := start + period
		if end > numDays {
			end = numDays
		}
		sliceLen := end - start

		solved, ok, err := solveSlice(cfg, raw, start, sliceLen)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, nil
		}
		for i := range raw.Sites {
			for l := 0; l < sliceLen; l++ {
				out.Value[i][start+l] = solved[i][l]
			}
		}
	}
	return out, true, nil
}

// solveSlice builds and solves the min-max IP for one slice of sliceLen
// days starting at column `start` of raw. Returns the re-signed per-site
// per-local-day result.
func solveSlice(cfg config.Fixed, raw *model.DemandMatrix, start, sliceLen int) ([][]float64, bool, error) {
	numSites := len(raw.Sites)

	// flex[i][l] = candidate local days the event at (i,l) may land on.
	// transform[i][l'] = -1 if l' is reachable by any drop-off's flex set
	// for site i, else +1.
	flex := make([][][]int, numSites)
	transform := make([][]int, numSites)
	for i := range transform {
		transform[i] = make([]int, sliceLen)
		for l := range transform[i] {
			transform[i][l] = 1
		}
	}

	for i := 0; i < numSites; i++ {
		flex[i] = make([][]int, sliceLen)
		for l := 0; l < sliceLen; l++ {
			d := raw.Value[i][start+l]
			switch {
			case d < 0:
				w := minInt(cfg.Window, l+1)
				var set []int
				for lp := l - w + 1; lp <= l; lp++ {
					set = append(set, lp)
					transform[i][lp] = -1
				}
				flex[i][l] = set
			case d > 0:
				w := minInt(cfg.Window, sliceLen-l)
				var set []int
				for lp := l; lp <= l+w-1; lp++ {
					set = append(set, lp)
				}
				flex[i][l] = set
			default:
				flex[i][l] = nil
			}
		}
	}

	m := milp.NewModel("smoothing-slice")
	wName := func(i, l int) string { return fmt.Sprintf("w_%d_%d", i, l) }
	const zName = "z"

	for i := 0; i < numSites; i++ {
		for l := 0; l < sliceLen; l++ {
			m.AddVar(milp.Var{Name: wName(i, l), Lower: 0, Upper: math.Inf(1), Integer: true})
		}
	}
	m.AddVar(milp.Var{Name: zName, Lower: 0, Upper: math.Inf(1), Integer: true})
	m.SetObjective([]milp.Term{{Var: zName, Coeff: 1}})

	for i := 0; i < numSites; i++ {
		for l := 0; l < sliceLen; l++ {
			d := raw.Value[i][start+l]
			if d == 0 {
				continue
			}
			var terms []milp.Term
			for _, lp := range flex[i][l] {
				terms = append(terms, milp.Term{Var: wName(i, lp), Coeff: 1})
			}
			m.AddConstraint(milp.Constraint{Name: fmt.Sprintf("conserve_%d_%d", i, l), Terms: terms, Sense: milp.EQ, RHS: math.Abs(d)})
		}
	}

	for l := 0; l < sliceLen; l++ {
		var terms []milp.Term
		for i := 0; i < numSites; i++ {
			terms = append(terms, milp.Term{Var: wName(i, l), Coeff: 1})
		}
		terms = append(terms, milp.Term{Var: zName, Coeff: -1})
		m.AddConstraint(milp.Constraint{Name: fmt.Sprintf("cap_%d", l), Terms: terms, Sense: milp.LE, RHS: 0})
	}

	sol := milp.Solve(m, milp.Options{})
	if sol.Status != milp.Optimal {
		return nil, false, nil
	}

	result := make([][]float64, numSites)
	for i := 0; i < numSites; i++ {
		result[i] = make([]float64, sliceLen)
		for l := 0; l < sliceLen; l++ {
			mag := float64(sol.IntValue(wName(i, l)))
			result[i][l] = mag * float64(transform[i][l])
		}
	}
	return result, true, nil
}

func dayTotals(d *model.DemandMatrix) []float64 {
	totals := make([]float64, len(d.Days))
	for l := range d.Days {
		var sum float64
		for i := range d.Sites {
			sum += math.Abs(d.Value[i][l])
		}
		totals[l] = sum
	}
	return totals
}

func varianceOf(totals []float64) float64 {
	if len(totals) == 0 {
		return 0
	}
	var mean float64
	for _, t := range totals {
		mean += t
	}
	mean /= float64(len(totals))
	var variance float64
	for _, t := range totals {
		variance += (t - mean) * (t - mean)
	}
	return variance / float64(len(totals))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
