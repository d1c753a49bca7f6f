package ast

import "math"

// MergeRowNumRanges folds the row number bounds of a top-level WHERE
// conjunction into a single CondRowNumRange.
//
// The merge only fires when the conjunction holds at least one lower bound
// (rownum > n, rownum >= n) and at least one upper bound (rownum < n,
// rownum <= n). The tightest bounds win and are converted to inclusive
// values. The range takes the place of the first bound and the remaining
// operands keep their order. Equality and inequality comparisons are left
// alone, as are nested subqueries.
//
// sel is not modified; when nothing merges, sel itself is returned.
func MergeRowNumRanges(sel *Select) *Select {
	if sel == nil {
		return nil
	}
	and, ok := sel.Where.(*And)
	if !ok {
		return sel
	}

	var (
		lower, upper       int64 = math.MinInt64, math.MaxInt64
		hasLower, hasUpper bool
		first              = -1
	)
	for i, op := range and.Operands {
		rn, ok := op.(*CondRowNum)
		if !ok {
			continue
		}
		v := int64(rn.Value)
		switch rn.Op {
		case ">":
			lower, hasLower = max(lower, v+1), true
		case ">=":
			lower, hasLower = max(lower, v), true
		case "<":
			upper, hasUpper = min(upper, v-1), true
		case "<=":
			upper, hasUpper = min(upper, v), true
		default:
			continue
		}
		if first < 0 {
			first = i
		}
	}
	if !hasLower || !hasUpper {
		return sel
	}
	if lower > math.MaxInt32 || upper < math.MinInt32 {
		return sel
	}

	rng := &CondRowNumRange{Lower: int32(lower), Upper: int32(upper)}
	operands := make([]Expression, 0, len(and.Operands))
	for i, op := range and.Operands {
		if i == first {
			operands = append(operands, rng)
			continue
		}
		if isRowNumBound(op) {
			continue
		}
		operands = append(operands, op)
	}

	merged := *sel
	if len(operands) == 1 {
		merged.Where = operands[0]
	} else {
		merged.Where = &And{Operands: operands}
	}
	return &merged
}

func isRowNumBound(e Expression) bool {
	rn, ok := e.(*CondRowNum)
	if !ok {
		return false
	}
	switch rn.Op {
	case ">", ">=", "<", "<=":
		return true
	}
	return false
}
