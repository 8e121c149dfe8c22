package stabiliser

import (
	"fmt"

	"github.com/theapemachine/errnie"
)

/*
Tableau owns an ordered list of stabiliser generators and partitions them into
rows that carry an X pivot and rows that are Z-only. Before Reduce the
partition is provisional: any row with a nonzero X mask counts as an X row.

The partitions are indices into the owned slice, never copies of the rows, and
Reduce replaces rows, partitions and pivots together.
*/
type Tableau struct {
	n       int
	paulis  []Pauli
	xRows   []int
	zRows   []int
	pivots  []int
	reduced bool
}

/*
NewTableau copies the generators into a new tableau. Only the shape is checked
here; commutation and independence surface when Reduce runs.
*/
func NewTableau(paulis []Pauli) (*Tableau, error) {
	if len(paulis) == 0 {
		return nil, fmt.Errorf("%w: no generators", ErrInvalidStabiliserSet)
	}

	n := paulis[0].Qubits()
	for i, p := range paulis {
		if p.Qubits() != n {
			return nil, fmt.Errorf(
				"%w: generator %d acts on %d qubits, expected %d",
				ErrInvalidStabiliserSet, i, p.Qubits(), n,
			)
		}
	}

	t := &Tableau{
		n:      n,
		paulis: append([]Pauli(nil), paulis...),
	}
	t.xRows, t.zRows = classify(t.paulis)
	t.pivots = make([]int, len(t.paulis))
	for i := range t.pivots {
		t.pivots[i] = -1
	}

	return t, nil
}

// classify splits rows on whether their X mask is empty, keeping row order.
func classify(rows []Pauli) (xRows, zRows []int) {
	xRows = make([]int, 0, len(rows))
	zRows = make([]int, 0, len(rows))

	for i, p := range rows {
		if p.X() != 0 {
			xRows = append(xRows, i)
		} else {
			zRows = append(zRows, i)
		}
	}

	return xRows, zRows
}

/*
Reduce runs Gaussian elimination over GF(2) on the generators, carrying the
scalar factor through every row product.

The X pass walks qubits left to right, takes the lowest unassigned row with an
X component on the qubit as its pivot and clears that X bit from every other
row, so no other row has an X component on an X pivot qubit. The Z pass does
the same on the Z-only rows that remain, so the Z block ends in reduced
echelon form as well. Rows keep their positions.

A second call is a no-op. On error the tableau is left as it was.
*/
func (t *Tableau) Reduce() error {
	if t.reduced {
		return nil
	}

	if err := t.validate(); err != nil {
		return err
	}

	var (
		rows   = append([]Pauli(nil), t.paulis...)
		pivots = make([]int, len(rows))
		isX    = make([]bool, len(rows))
	)

	for i := range pivots {
		pivots[i] = -1
	}

	for q := 0; q < t.n; q++ {
		b := uint(t.n - 1 - q)
		p := firstUnassigned(rows, pivots, func(r Pauli) uint64 { return r.x >> b & 1 })
		if p < 0 {
			continue
		}

		pivots[p], isX[p] = q, true

		for i := range rows {
			if i != p && rows[i].x>>b&1 == 1 {
				rows[i] = rows[i].mul(rows[p])
			}
		}
	}

	for q := 0; q < t.n; q++ {
		b := uint(t.n - 1 - q)
		p := firstUnassigned(rows, pivots, func(r Pauli) uint64 { return r.z >> b & 1 })
		if p < 0 {
			continue
		}

		pivots[p] = q

		for i := range rows {
			if i != p && !isX[i] && rows[i].z>>b&1 == 1 {
				rows[i] = rows[i].mul(rows[p])
			}
		}
	}

	for i, r := range rows {
		switch {
		case pivots[i] >= 0 && !isX[i] && r.phase != 0:
			return fmt.Errorf("%w: Z row %d reduces to %v, which has no +1 eigenstate", ErrInvalidStabiliserSet, i, r)
		case pivots[i] >= 0:
		case r.x == 0 && r.z == 0 && !r.IsIdentity():
			return fmt.Errorf("%w: generator %d reduces to the non-identity scalar %v", ErrInvalidStabiliserSet, i, r)
		default:
			return fmt.Errorf("%w: generator %d is dependent on the others", ErrInvalidStabiliserSet, i)
		}
	}

	xRows := make([]int, 0, len(rows))
	zRows := make([]int, 0, len(rows))

	for i := range rows {
		if isX[i] {
			xRows = append(xRows, i)
		} else {
			zRows = append(zRows, i)
		}
	}

	t.paulis, t.xRows, t.zRows, t.pivots = rows, xRows, zRows, pivots
	t.reduced = true

	errnie.Info("Reduce - %d qubits, x rows %v, z rows %v", t.n, t.xRows, t.zRows)

	return nil
}

func firstUnassigned(rows []Pauli, pivots []int, has func(Pauli) uint64) int {
	for i, r := range rows {
		if pivots[i] < 0 && has(r) == 1 {
			return i
		}
	}
	return -1
}

// validate checks the preconditions elimination relies on.
func (t *Tableau) validate() error {
	if len(t.paulis) != t.n {
		return fmt.Errorf(
			"%w: %d generators for %d qubits", ErrInvalidStabiliserSet, len(t.paulis), t.n,
		)
	}

	for i, p := range t.paulis {
		if !p.Hermitian() {
			return fmt.Errorf("%w: generator %d (%v) is not Hermitian", ErrInvalidStabiliserSet, i, p)
		}

		for j := i + 1; j < len(t.paulis); j++ {
			if !p.Commutes(t.paulis[j]) {
				return fmt.Errorf(
					"%w: generators %d and %d anticommute", ErrInvalidStabiliserSet, i, j,
				)
			}
		}
	}

	return nil
}

func (t *Tableau) Qubits() int { return t.n }
func (t *Tableau) Len() int { return len(t.paulis) }
func (t *Tableau) Reduced() bool { return t.reduced }

// Paulis returns a copy of the owned generators in row order.
func (t *Tableau) Paulis() []Pauli {
	return append([]Pauli(nil), t.paulis...)
}

// XRows returns the indices of the X rows in ascending row order.
func (t *Tableau) XRows() []int {
	return append([]int(nil), t.xRows...)
}

// ZRows returns the indices of the Z-only rows in ascending row order.
func (t *Tableau) ZRows() []int {
	return append([]int(nil), t.zRows...)
}

func (t *Tableau) XStabilisers() []Pauli {
	return t.pick(t.xRows)
}

func (t *Tableau) ZStabilisers() []Pauli {
	return t.pick(t.zRows)
}

func (t *Tableau) pick(rows []int) []Pauli {
	out := make([]Pauli, len(rows))
	for i, r := range rows {
		out[i] = t.paulis[r]
	}
	return out
}

/*
Pivot returns the qubit a row was pivoted on. The second value is false for
rows of a tableau that has not been reduced.
*/
func (t *Tableau) Pivot(row int) (int, bool) {
	if row < 0 || row >= len(t.pivots) || t.pivots[row] < 0 {
		return 0, false
	}
	return t.pivots[row], true
}

// Clone returns an independent copy that shares no slices with t.
func (t *Tableau) Clone() *Tableau {
	return &Tableau{
		n:       t.n,
		paulis:  append([]Pauli(nil), t.paulis...),
		xRows:   append([]int(nil), t.xRows...),
		zRows:   append([]int(nil), t.zRows...),
		pivots:  append([]int(nil), t.pivots...),
		reduced: t.reduced,
	}
}
