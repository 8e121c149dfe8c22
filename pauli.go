package stabiliser

import (
	"fmt"
	"math/bits"
	"strings"
)

// MaxQubits is the widest operator a uint64 mask pair can hold.
const MaxQubits = 64

/*
Pauli is an n-qubit Pauli string with an overall scalar factor.

Qubit q (counted left to right in tensor notation) lives in mask bit n-1-q,
and the operator is i^phase · (−1)^sign · ⊗ Z^z X^x. A qubit with both bits
set therefore carries ZX = iY, which String accounts for when it prints Y.

Pauli is a value type. Nothing mutates it after NewPauli returns.
*/
type Pauli struct {
	n     int
	x     uint64
	z     uint64
	sign  uint8
	phase uint8
}

/*
NewPauli validates and builds a Pauli. Masks must be below 2^n, and sign and
phase are single bits.
*/
func NewPauli(n int, x, z uint64, sign, ph uint8) (Pauli, error) {
	if n < 1 || n > MaxQubits {
		return Pauli{}, fmt.Errorf("%w: qubit count %d outside 1..%d", ErrInvalidPauliConstruction, n, MaxQubits)
	}

	if x&^maskFor(n) != 0 {
		return Pauli{}, fmt.Errorf("%w: x mask %#b does not fit %d qubits", ErrInvalidPauliConstruction, x, n)
	}

	if z&^maskFor(n) != 0 {
		return Pauli{}, fmt.Errorf("%w: z mask %#b does not fit %d qubits", ErrInvalidPauliConstruction, z, n)
	}

	if sign > 1 || ph > 1 {
		return Pauli{}, fmt.Errorf("%w: sign %d and phase %d must be 0 or 1", ErrInvalidPauliConstruction, sign, ph)
	}

	return Pauli{n: n, x: x, z: z, sign: sign, phase: ph}, nil
}

// Identity returns the n-qubit identity with a +1 factor.
func Identity(n int) Pauli {
	return Pauli{n: n}
}

func maskFor(n int) uint64 {
	if n >= MaxQubits {
		return ^uint64(0)
	}
	return uint64(1)<<uint(n) - 1
}

func (p Pauli) Qubits() int { return p.n }
func (p Pauli) X() uint64 { return p.x }
func (p Pauli) Z() uint64 { return p.z }
func (p Pauli) Sign() uint8 { return p.sign }
func (p Pauli) Phase() uint8 { return p.phase }
func (p Pauli) unit() phase { return phaseOf(p.sign, p.phase) }
func (p Pauli) bit(q int) int { return p.n - 1 - q }

// Equal is exact structural equality. No global phase is factored out.
func (p Pauli) Equal(q Pauli) bool {
	return p == q
}

/*
Commutes reports whether the symplectic inner product of p and q vanishes.
Operators of different width never commute.
*/
func (p Pauli) Commutes(q Pauli) bool {
	if p.n != q.n {
		return false
	}
	return bits.OnesCount64(p.x&q.z^p.z&q.x)%2 == 0
}

/*
Multiply returns p·q. The masks XOR, and moving X^{x_p} past Z^{z_q} costs a
factor (−1) per shared qubit, which is the whole of the single-qubit
multiplication table under the ZX = iY convention.
*/
func (p Pauli) Multiply(q Pauli) (Pauli, error) {
	if p.n != q.n {
		return Pauli{}, fmt.Errorf("%w: %d and %d qubits", ErrQubitMismatch, p.n, q.n)
	}

	return p.mul(q), nil
}

func (p Pauli) mul(q Pauli) Pauli {
	u := p.unit().add(q.unit()).add(phase(2 * (bits.OnesCount64(p.x&q.z) % 2)))
	sign, ph := u.split()

	return Pauli{n: p.n, x: p.x ^ q.x, z: p.z ^ q.z, sign: sign, phase: ph}
}

/*
Hermitian reports whether p equals its own adjoint. Only Hermitian operators
have real eigenvalues, so only they can stabilise a state.
*/
func (p Pauli) Hermitian() bool {
	return int(p.phase) == bits.OnesCount64(p.x&p.z)%2
}

// Weight is the number of qubits the operator acts on non-trivially.
func (p Pauli) Weight() int {
	return bits.OnesCount64(p.x | p.z)
}

func (p Pauli) IsIdentity() bool {
	return p.x == 0 && p.z == 0 && p.unit() == phaseOne
}

/*
String writes p in tensor notation with the scalar in front, for example
"-iXYZ". Each Y absorbs one factor of i from the stored ZX pair.
*/
func (p Pauli) String() string {
	var (
		sb strings.Builder
		ys = phase(bits.OnesCount64(p.x&p.z) % 4)
	)

	for q := 0; q < p.n; q++ {
		b := p.bit(q)
		switch [2]uint64{p.x >> b & 1, p.z >> b & 1} {
		case [2]uint64{1, 0}:
			sb.WriteByte('X')
		case [2]uint64{0, 1}:
			sb.WriteByte('Z')
		case [2]uint64{1, 1}:
			sb.WriteByte('Y')
		default:
			sb.WriteByte('I')
		}
	}

	return p.unit().add(ys).prefix() + sb.String()
}

/*
ParsePauli reads the notation String produces. The scalar prefix is optional
and may be any of "+", "-", "i", "+i", "-i".
*/
func ParsePauli(s string) (Pauli, error) {
	var (
		rest = strings.TrimSpace(s)
		u    = phaseOne
	)

	switch {
	case strings.HasPrefix(rest, "-"):
		u, rest = phaseMinusOne, rest[1:]
	case strings.HasPrefix(rest, "+"):
		rest = rest[1:]
	}

	if strings.HasPrefix(rest, "i") {
		u, rest = u.add(phaseI), rest[1:]
	}

	if len(rest) == 0 || len(rest) > MaxQubits {
		return Pauli{}, fmt.Errorf("%w: %q", ErrInvalidPauliString, s)
	}

	var (
		n    = len(rest)
		x, z uint64
		ys   int
	)

	for q, c := range rest {
		b := uint(n - 1 - q)
		switch c {
		case 'I':
		case 'X':
			x |= 1 << b
		case 'Z':
			z |= 1 << b
		case 'Y':
			x |= 1 << b
			z |= 1 << b
			ys++
		default:
			return Pauli{}, fmt.Errorf("%w: unexpected %q in %q", ErrInvalidPauliString, c, s)
		}
	}

	// iY = ZX, so every Y hands one factor of -i back to the scalar.
	sign, ph := u.add(phase(4-ys%4) % 4).split()

	return NewPauli(n, x, z, sign, ph)
}

/*
Apply returns p|ψ⟩ for a dense vector of length 2^n. Basis state |b⟩ goes to
|b ⊕ x⟩ with coefficient i^k · (−1)^{z·(b ⊕ x)}, since X acts before Z.
*/
func (p Pauli) Apply(amps Amplitudes) (Amplitudes, error) {
	if len(amps) != 1<<uint(p.n) {
		return nil, fmt.Errorf("%w: vector of length %d for %d qubits", ErrQubitMismatch, len(amps), p.n)
	}

	var (
		out = make(Amplitudes, len(amps))
		c   = p.unit().complex()
	)

	for b, a := range amps {
		if a == 0 {
			continue
		}

		t := uint64(b) ^ p.x
		v := c * a

		if bits.OnesCount64(p.z&t)%2 == 1 {
			v = -v
		}

		out[t] = v
	}

	return out, nil
}
