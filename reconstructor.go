package stabiliser

import (
	"fmt"
	"math"
	"math/bits"
	"time"

	"github.com/theapemachine/errnie"
	"golang.org/x/sync/errgroup"
)

// MaxStateVectorQubits keeps 2^n 16-byte amplitudes addressable by an int.
const MaxStateVectorQubits = bits.UintSize - 6

/*
Reconstructor turns a stabiliser tableau into the dense amplitude vector of
the state it stabilises. One Reconstructor may serve many tableaux; it keeps
no per-tableau state beyond its Metrics.
*/
type Reconstructor struct {
	config  *Config
	metrics *Metrics
}

func NewReconstructor(config *Config) *Reconstructor {
	config = config.withDefaults()

	errnie.Info(
		"NewReconstructor - workers %d, parallel threshold %d, chunk size %d",
		config.Workers,
		config.ParallelThreshold,
		config.ChunkSize,
	)

	return &Reconstructor{
		config:  config,
		metrics: NewMetrics(),
	}
}

func (r *Reconstructor) Metrics() *Metrics {
	return r.metrics
}

/*
StateVector returns the unit-norm vector stabilised by every generator of t,
reducing t first if it has not been reduced yet.

With k X rows the state is the uniform superposition of P_S|b⟩ over all 2^k
products P_S of X rows, where |b⟩ is the basis state fixed by the Z rows. Each
P_S lands on a different basis index because the X pivots are distinct, so
exactly 2^k entries are nonzero, each of magnitude 2^{-k/2}. Entry b itself is
the real positive one.

Memory is 2^n complex128 values and time is O(2^k · k). Callers must keep n
small enough for the vector to fit. Tableaux wider than MaxStateVectorQubits
are refused with ErrStateTooLarge because the vector's byte size would not
even fit in an int.
*/
func (r *Reconstructor) StateVector(t *Tableau) (Amplitudes, error) {
	startTime := time.Now()

	if t.Qubits() > MaxStateVectorQubits {
		return nil, fmt.Errorf(
			"%w: %d qubits, at most %d", ErrStateTooLarge, t.Qubits(), MaxStateVectorQubits,
		)
	}

	if !t.Reduced() {
		err := t.Reduce()
		r.metrics.recordReduction(err)

		if err != nil {
			return nil, err
		}
	}

	var (
		base    = t.basis()
		xs      = t.XStabilisers()
		subsets = 1 << uint(len(xs))
		amps    = make(Amplitudes, 1<<uint(t.n))
		scale   = 1 / math.Sqrt(float64(subsets))
	)

	fill := func(from, to int) {
		for s := from; s < to; s++ {
			p := Identity(t.n)
			for j, x := range xs {
				if s>>uint(j)&1 == 1 {
					p = p.mul(x)
				}
			}

			target := base ^ p.x
			v := p.unit().complex() * complex(scale, 0)
			if bits.OnesCount64(p.z&target)%2 == 1 {
				v = -v
			}

			amps[target] = v
		}
	}

	parallel := subsets >= r.config.ParallelThreshold && r.config.Workers > 1

	if parallel {
		var g errgroup.Group
		g.SetLimit(r.config.Workers)

		for from := 0; from < subsets; from += r.config.ChunkSize {
			from, to := from, min(from+r.config.ChunkSize, subsets)

			g.Go(func() error {
				fill(from, to)
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		fill(0, subsets)
	}

	r.metrics.recordReconstruction(startTime, len(amps), len(xs), parallel)

	errnie.Info(
		"StateVector - %d qubits, %d x rows, %d nonzero amplitudes, parallel %v",
		t.n, len(xs), subsets, parallel,
	)

	return amps, nil
}

/*
basis returns the computational basis state the Z rows pin down. Each Z row is
in reduced echelon form, so setting its pivot bit to the row's sign satisfies
it and every other bit can stay zero.
*/
func (t *Tableau) basis() uint64 {
	var base uint64

	for _, row := range t.zRows {
		if t.paulis[row].sign == 1 {
			base |= 1 << uint(t.n-1-t.pivots[row])
		}
	}

	return base
}

// StateVector reconstructs with a default Reconstructor.
func StateVector(t *Tableau) (Amplitudes, error) {
	return NewReconstructor(nil).StateVector(t)
}
