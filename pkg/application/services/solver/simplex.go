package solver

import (
	"math"

	"github.com/gtnh-planner/factoryplan/pkg/application/services/planning"
)

const simplexEpsilon = 1e-9

// Simplex is a dense, tableau-based single-phase Big-M simplex solver. Every
// declared variable is non-negative in the tableau; planning.Real
// variables (SOURCE_<x>, which carries a non-positive convention) are
// split into a difference of two non-negative columns, v = vPos - vNeg.
// Equality and >= rows get an artificial variable penalized by BigM in the
// objective so that feasibility of the original system is equivalent to
// driving every artificial variable out of the basis.
type Simplex struct {
	MaxIterations int
	BigM          float64
}

// NewSimplex returns a solver with defaults suited to the coefficient
// scale this module's builder produces (the 50000x source tax term).
func NewSimplex() *Simplex {
	return &Simplex{MaxIterations: 20000, BigM: 1e8}
}

type varColumns struct {
	pos int
	neg int // -1 when the variable is NonNegativeReal (single column)
}

func (s *Simplex) Solve(cs *planning.ConstraintSystem) (Solution, error) {
	vars := cs.Vars()

	colOf := make(map[planning.VarRef]varColumns, len(vars))
	numVarCols := 0
	for _, v := range vars {
		domain, _ := cs.DomainOf(v)
		if domain == planning.Real {
			colOf[v] = varColumns{pos: numVarCols, neg: numVarCols + 1}
			numVarCols += 2
		} else {
			colOf[v] = varColumns{pos: numVarCols, neg: -1}
			numVarCols++
		}
	}

	type rowBuild struct {
		coeffs   []float64
		rhs      float64
		relation planning.Relation
	}

	rowBuilds := make([]rowBuild, len(cs.Constraints))
	for i, c := range cs.Constraints {
		coeffs := make([]float64, numVarCols)
		for _, term := range c.LHS.Terms {
			cols := colOf[term.Var]
			coeffs[cols.pos] += term.Coeff
			if cols.neg >= 0 {
				coeffs[cols.neg] -= term.Coeff
			}
		}
		rhs := c.RHS - c.LHS.Const
		relation := c.Relation
		if rhs < 0 {
			for j := range coeffs {
				coeffs[j] = -coeffs[j]
			}
			rhs = -rhs
			switch relation {
			case planning.LessEq:
				relation = planning.GreaterEq
			case planning.GreaterEq:
				relation = planning.LessEq
			}
		}
		rowBuilds[i] = rowBuild{coeffs: coeffs, rhs: rhs, relation: relation}
	}

	slackCol := make([]int, len(rowBuilds))
	artCol := make([]int, len(rowBuilds))
	extraCols := 0
	for i := range slackCol {
		slackCol[i] = -1
		artCol[i] = -1
	}
	for i, rb := range rowBuilds {
		switch rb.relation {
		case planning.Eq:
			artCol[i] = numVarCols + extraCols
			extraCols++
		case planning.LessEq:
			slackCol[i] = numVarCols + extraCols
			extraCols++
		case planning.GreaterEq:
			slackCol[i] = numVarCols + extraCols
			extraCols++
			artCol[i] = numVarCols + extraCols
			extraCols++
		}
	}
	totalCols := numVarCols + extraCols

	rows := make([][]float64, len(rowBuilds))
	basis := make([]int, len(rowBuilds))
	for i, rb := range rowBuilds {
		row := make([]float64, totalCols+1)
		copy(row[:numVarCols], rb.coeffs)
		if slackCol[i] >= 0 {
			if rb.relation == planning.LessEq {
				row[slackCol[i]] = 1
			} else {
				row[slackCol[i]] = -1
			}
		}
		if artCol[i] >= 0 {
			row[artCol[i]] = 1
		}
		row[totalCols] = rb.rhs
		rows[i] = row
		if artCol[i] >= 0 {
			basis[i] = artCol[i]
		} else {
			basis[i] = slackCol[i]
		}
	}

	bigM := s.BigM
	if bigM <= 0 {
		bigM = 1e8
	}

	costs := make([]float64, totalCols)
	for _, term := range cs.Objective.Terms {
		cols := colOf[term.Var]
		costs[cols.pos] += term.Coeff
		if cols.neg >= 0 {
			costs[cols.neg] -= term.Coeff
		}
	}
	for i := range rowBuilds {
		if artCol[i] >= 0 {
			costs[artCol[i]] = bigM
		}
	}

	objRow := make([]float64, totalCols+1)
	copy(objRow[:totalCols], costs)

	for i := range rows {
		if c := costs[basis[i]]; c != 0 {
			addScaledRow(objRow, rows[i], -c)
		}
	}

	maxIter := s.MaxIterations
	if maxIter <= 0 {
		maxIter = 20000
	}

	status := Optimal
	detail := ""

iterate:
	for iter := 0; iter < maxIter; iter++ {
		entering := -1
		for j := 0; j < totalCols; j++ {
			if objRow[j] < -simplexEpsilon {
				entering = j
				break
			}
		}
		if entering == -1 {
			break iterate
		}

		pivotRow := -1
		bestRatio := math.Inf(1)
		for i, row := range rows {
			if row[entering] > simplexEpsilon {
				ratio := row[totalCols] / row[entering]
				if ratio < bestRatio-simplexEpsilon ||
					(ratio < bestRatio+simplexEpsilon && (pivotRow == -1 || basis[i] < basis[pivotRow])) {
					bestRatio = ratio
					pivotRow = i
				}
			}
		}
		if pivotRow == -1 {
			status = Unbounded
			detail = "no bounding row found for entering variable during simplex iteration"
			break iterate
		}

		pivotValue := rows[pivotRow][entering]
		for j := range rows[pivotRow] {
			rows[pivotRow][j] /= pivotValue
		}
		for i := range rows {
			if i == pivotRow {
				continue
			}
			if factor := rows[i][entering]; factor != 0 {
				addScaledRow(rows[i], rows[pivotRow], -factor)
			}
		}
		if factor := objRow[entering]; factor != 0 {
			addScaledRow(objRow, rows[pivotRow], -factor)
		}
		basis[pivotRow] = entering

		if iter == maxIter-1 {
			status = Error
			detail = "simplex did not converge within the iteration limit"
		}
	}

	if status == Optimal {
		for i, col := range artCol {
			if col >= 0 && basis[i] == col && rows[i][totalCols] > 1e-6 {
				status = Infeasible
				detail = "an artificial variable remained basic and nonzero at optimality"
				break
			}
		}
	}

	if status != Optimal {
		return Solution{Status: status, Detail: detail}, nil
	}

	colValue := make([]float64, totalCols)
	for i, row := range rows {
		colValue[basis[i]] = row[totalCols]
	}

	values := make(map[planning.VarRef]float64, len(vars))
	for _, v := range vars {
		cols := colOf[v]
		val := colValue[cols.pos]
		if cols.neg >= 0 {
			val -= colValue[cols.neg]
		}
		values[v] = val
	}

	return Solution{Status: Optimal, Values: values}, nil
}

func addScaledRow(dst, src []float64, factor float64) {
	for j := range dst {
		dst[j] += factor * src[j]
	}
}
