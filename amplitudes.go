package stabiliser

import (
	"math"
	"math/bits"
	"math/cmplx"
	"math/rand/v2"
)

/*
Amplitudes is a dense state vector in the computational basis. Index bit n-1-q
holds the basis value of qubit q, so the leftmost qubit is the most
significant bit.
*/
type Amplitudes []complex128

// Qubits returns log2 of the vector length, or -1 when it is not a power of two.
func (a Amplitudes) Qubits() int {
	if len(a) == 0 || len(a)&(len(a)-1) != 0 {
		return -1
	}
	return bits.TrailingZeros(uint(len(a)))
}

func (a Amplitudes) Norm() float64 {
	var total float64
	for _, amplitude := range a {
		total += real(amplitude)*real(amplitude) + imag(amplitude)*imag(amplitude)
	}
	return math.Sqrt(total)
}

// Support lists the basis indices with a nonzero amplitude, in index order.
func (a Amplitudes) Support() []int {
	support := make([]int, 0)
	for i, amplitude := range a {
		if amplitude != 0 {
			support = append(support, i)
		}
	}
	return support
}

func (a Amplitudes) Probabilities() []float64 {
	probs := make([]float64, len(a))
	totalProb := 0.0

	for i, amplitude := range a {
		prob := cmplx.Abs(amplitude)
		prob *= prob
		probs[i] = prob
		totalProb += prob
	}

	if totalProb > 0 {
		for i := range probs {
			probs[i] /= totalProb
		}
	}

	return probs
}

/*
Measure samples a basis index with the Born-rule distribution. It does not
collapse the receiver. A nil source falls back to the package generator.
*/
func (a Amplitudes) Measure(r *rand.Rand) int {
	if len(a) == 0 {
		return -1
	}

	draw := rand.Float64
	if r != nil {
		draw = r.Float64
	}

	var (
		x              = draw()
		cumulativeProb float64
		last           int
	)

	for i, prob := range a.Probabilities() {
		if prob == 0 {
			continue
		}

		last = i
		cumulativeProb += prob
		if x < cumulativeProb {
			return i
		}
	}

	return last
}

// Equal compares entry by entry, allowing each to differ by tolerance.
func (a Amplitudes) Equal(b Amplitudes, tolerance float64) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if cmplx.Abs(a[i]-b[i]) > tolerance {
			return false
		}
	}

	return true
}
