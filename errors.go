package stabiliser

import "errors"

var (
	// ErrInvalidPauliConstruction is returned when a mask does not fit the
	// declared qubit count or a phase bit is out of range.
	ErrInvalidPauliConstruction = errors.New("invalid pauli construction")

	// ErrInvalidStabiliserSet is returned when a generator list cannot be
	// reduced to n independent, commuting, Hermitian generators.
	ErrInvalidStabiliserSet = errors.New("invalid stabiliser set")

	// ErrQubitMismatch is returned when two operators of different width meet.
	ErrQubitMismatch = errors.New("qubit count mismatch")

	// ErrInvalidPauliString is returned by ParsePauli for text it cannot read.
	ErrInvalidPauliString = errors.New("invalid pauli string")

	// ErrStateTooLarge is returned when a dense vector could not be addressed.
	ErrStateTooLarge = errors.New("state vector too large")
)
