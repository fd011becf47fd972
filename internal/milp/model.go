// Package milp implements a small mixed-integer linear programming engine:
// a big-M simplex relaxation wrapped in a branch-and-bound search over
// integer and binary variables.
//
// No LP/MILP/constraint-solver library appears anywhere in the retrieved
// reference pack (grepped for mip|lp_solve|gurobi|highs|or-tools|glpk|
// lpsolve|scip|simplex across every example repo and file); the hauler
// router and demand smoother are themselves integer programs in the source
// this was distilled from (solved there via pulp+CBC), so this engine
// stands in for that missing dependency. See DESIGN.md for the
// standard-library justification.
package milp

import "fmt"

// Sense is the comparison operator of a linear constraint.
type Sense int

const (
	LE Sense = iota
	GE
	EQ
)

// Var is one decision variable of the model.
type Var struct {
	Name    string
	Lower   float64
	Upper   float64 // +Inf for unbounded above
	Integer bool
	Binary  bool // implies Integer, Lower=0, Upper=1
}

// Term is one coefficient*variable pair inside a constraint or the objective.
type Term struct {
	Var   string
	Coeff float64
}

// Constraint is a single linear constraint: sum(Terms) Sense RHS.
type Constraint struct {
	Name  string
	Terms []Term
	Sense Sense
	RHS   float64
}

// Status is the outcome of a solve attempt.
type Status int

const (
	Optimal Status = iota
	Infeasible
	Undefined // node budget exhausted, or LP relaxation unbounded
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "Optimal"
	case Infeasible:
		return "Infeasible"
	default:
		return "Undefined"
	}
}

// Model is a minimize-objective mixed integer program.
type Model struct {
	Name        string
	Vars        []Var
	Constraints []Constraint
	Objective   []Term // minimized

	index map[string]int // Var name -> position in Vars
}

// NewModel creates an empty model.
func NewModel(name string) *Model {
	return &Model{Name: name, index: make(map[string]int)}
}

// AddVar registers a decision variable and returns its name for convenience.
func (m *Model) AddVar(v Var) string {
	if v.Binary {
		v.Integer = true
		v.Lower = 0
		v.Upper = 1
	}
	if _, exists := m.index[v.Name]; exists {
		panic(fmt.Sprintf("milp: duplicate variable %q", v.Name))
	}
	m.index[v.Name] = len(m.Vars)
	m.Vars = append(m.Vars, v)
	return v.Name
}

// AddConstraint appends a constraint to the model.
func (m *Model) AddConstraint(c Constraint) {
	m.Constraints = append(m.Constraints, c)
}

// SetObjective replaces the objective row.
func (m *Model) SetObjective(terms []Term) {
	m.Objective = terms
}

func (m *Model) varIndex(name string) int {
	idx, ok := m.index[name]
	if !ok {
		panic(fmt.Sprintf("milp: unknown variable %q", name))
	}
	return idx
}

// Solution holds the result of a Solve call.
type Solution struct {
	Status    Status
	Objective float64
	Values    map[string]float64
}

// Value returns the value assigned to name as the relaxation produced it,
// without rounding; use IntValue for integer and binary variables.
func (s Solution) Value(name string) float64 {
	return s.Values[name]
}

// IntValue rounds a solution value to the nearest integer — safe to call on
// any variable that was declared Integer or Binary.
func (s Solution) IntValue(name string) int {
	v := s.Values[name]
	if v >= 0 {
		return int(v + 0.5)
	}
	return -int(-v + 0.5)
}
