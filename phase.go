package stabiliser

/*
phase is a scalar factor i^k stored as k mod 4. The public (sign, phase) pair
of a Pauli maps onto it as i^phase · (−1)^sign, so sign contributes two units.
*/
type phase uint8

const (
	phaseOne phase = iota
	phaseI
	phaseMinusOne
	phaseMinusI
)

func phaseOf(sign, ph uint8) phase {
	return phase((ph + 2*sign) % 4)
}

func (p phase) add(q phase) phase {
	return (p + q) % 4
}

// split decomposes the unit back into the (sign, phase) bit pair.
func (p phase) split() (sign, ph uint8) {
	return uint8(p>>1) & 1, uint8(p) & 1
}

func (p phase) complex() complex128 {
	switch p % 4 {
	case phaseI:
		return complex(0, 1)
	case phaseMinusOne:
		return complex(-1, 0)
	case phaseMinusI:
		return complex(0, -1)
	default:
		return complex(1, 0)
	}
}

// prefix renders the unit the way it is written in front of a Pauli string.
func (p phase) prefix() string {
	return [...]string{"+", "+i", "-", "-i"}[p%4]
}
