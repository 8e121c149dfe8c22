package stabiliser

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func mustPauli(n int, x, z uint64, sign, ph uint8) Pauli {
	p, err := NewPauli(n, x, z, sign, ph)
	if err != nil {
		panic(err)
	}
	return p
}

func mustParse(s string) Pauli {
	p, err := ParsePauli(s)
	if err != nil {
		panic(err)
	}
	return p
}

func TestNewPauli(t *testing.T) {
	Convey("Given the fields of a Pauli operator", t, func() {
		Convey("When the masks fit the qubit count", func() {
			p, err := NewPauli(2, 0b10, 0b01, 0, 1)

			Convey("Then every field should be kept", func() {
				So(err, ShouldBeNil)
				So(p.Qubits(), ShouldEqual, 2)
				So(p.X(), ShouldEqual, uint64(0b10))
				So(p.Z(), ShouldEqual, uint64(0b01))
				So(p.Sign(), ShouldEqual, uint8(0))
				So(p.Phase(), ShouldEqual, uint8(1))
			})
		})

		Convey("When the x mask is too wide", func() {
			_, err := NewPauli(2, 0b100, 0, 0, 0)

			Convey("Then construction should fail", func() {
				So(errors.Is(err, ErrInvalidPauliConstruction), ShouldBeTrue)
			})
		})

		Convey("When the z mask is too wide", func() {
			_, err := NewPauli(3, 0, 0b1000, 0, 0)

			Convey("Then construction should fail", func() {
				So(errors.Is(err, ErrInvalidPauliConstruction), ShouldBeTrue)
			})
		})

		Convey("When the phase bits are out of range", func() {
			_, err := NewPauli(1, 0, 1, 2, 0)
			So(errors.Is(err, ErrInvalidPauliConstruction), ShouldBeTrue)
		})

		Convey("When the qubit count is out of range", func() {
			_, err := NewPauli(0, 0, 0, 0, 0)
			So(errors.Is(err, ErrInvalidPauliConstruction), ShouldBeTrue)

			_, err = NewPauli(MaxQubits+1, 0, 0, 0, 0)
			So(errors.Is(err, ErrInvalidPauliConstruction), ShouldBeTrue)
		})

		Convey("When all 64 qubits are used", func() {
			p, err := NewPauli(MaxQubits, ^uint64(0), 1, 0, 0)
			So(err, ShouldBeNil)
			So(p.Weight(), ShouldEqual, 64)
		})
	})
}

func TestPauliEqual(t *testing.T) {
	Convey("Given a Pauli operator", t, func() {
		p := mustPauli(3, 0b101, 0b011, 1, 0)

		Convey("It should equal itself and an identical copy", func() {
			So(p.Equal(p), ShouldBeTrue)
			So(p.Equal(mustPauli(3, 0b101, 0b011, 1, 0)), ShouldBeTrue)
		})

		Convey("It should differ from operators that only change the scalar", func() {
			So(p.Equal(mustPauli(3, 0b101, 0b011, 0, 0)), ShouldBeFalse)
			So(p.Equal(mustPauli(3, 0b101, 0b011, 1, 1)), ShouldBeFalse)
		})

		Convey("It should differ from a wider operator with the same masks", func() {
			So(p.Equal(mustPauli(4, 0b101, 0b011, 1, 0)), ShouldBeFalse)
		})
	})
}

func TestCommutes(t *testing.T) {
	Convey("Given single and two qubit operators", t, func() {
		x := mustParse("X")
		y := mustParse("Y")
		z := mustParse("Z")

		Convey("Distinct single qubit Paulis should anticommute", func() {
			So(x.Commutes(z), ShouldBeFalse)
			So(x.Commutes(y), ShouldBeFalse)
			So(y.Commutes(z), ShouldBeFalse)
		})

		Convey("Every operator should commute with itself and the identity", func() {
			for _, p := range []Pauli{x, y, z} {
				So(p.Commutes(p), ShouldBeTrue)
				So(p.Commutes(Identity(1)), ShouldBeTrue)
			}
		})

		Convey("Two anticommuting factors should cancel", func() {
			So(mustParse("XX").Commutes(mustParse("ZZ")), ShouldBeTrue)
			So(mustParse("XZ").Commutes(mustParse("ZX")), ShouldBeTrue)
			So(mustParse("XI").Commutes(mustParse("ZZ")), ShouldBeFalse)
		})

		Convey("Operators of different width should not commute", func() {
			So(mustParse("Z").Commutes(mustParse("ZI")), ShouldBeFalse)
		})
	})
}

func TestMultiply(t *testing.T) {
	Convey("Given the single qubit multiplication table", t, func() {
		cases := []struct{ a, b, want string }{
			{"I", "X", "+X"},
			{"X", "X", "+I"},
			{"Y", "Y", "+I"},
			{"Z", "Z", "+I"},
			{"X", "Z", "-iY"},
			{"Z", "X", "+iY"},
			{"X", "Y", "+iZ"},
			{"Y", "X", "-iZ"},
			{"Y", "Z", "+iX"},
			{"Z", "Y", "-iX"},
			{"-X", "iZ", "-Y"},
		}

		for _, c := range cases {
			got, err := mustParse(c.a).Multiply(mustParse(c.b))
			So(err, ShouldBeNil)
			So(got.String(), ShouldEqual, c.want)
		}
	})

	Convey("Given multi qubit operators", t, func() {
		a := mustParse("XYZ")
		b := mustParse("ZZX")
		c := mustParse("-iYIX")

		Convey("Phases should accumulate across qubits", func() {
			got, err := a.Multiply(b)
			So(err, ShouldBeNil)
			// X·Z = -iY, Y·Z = iX, Z·X = iY
			So(got.String(), ShouldEqual, "+iYXY")
		})

		Convey("Composition should be associative", func() {
			ab, _ := a.Multiply(b)
			abc, _ := ab.Multiply(c)
			bc, _ := b.Multiply(c)
			abc2, _ := a.Multiply(bc)
			So(abc.Equal(abc2), ShouldBeTrue)
		})

		Convey("Reversing anticommuting factors should flip the sign only", func() {
			ab, _ := mustParse("XI").Multiply(mustParse("ZZ"))
			ba, _ := mustParse("ZZ").Multiply(mustParse("XI"))
			So(ab.X(), ShouldEqual, ba.X())
			So(ab.Z(), ShouldEqual, ba.Z())
			So(ab.Sign(), ShouldNotEqual, ba.Sign())
			So(ab.Phase(), ShouldEqual, ba.Phase())
		})

		Convey("Operators of different width should be rejected", func() {
			_, err := a.Multiply(mustParse("XX"))
			So(errors.Is(err, ErrQubitMismatch), ShouldBeTrue)
		})
	})
}

func TestPauliString(t *testing.T) {
	Convey("Given Pauli strings", t, func() {
		Convey("X⊗Z should put the X on the high bit", func() {
			p := mustParse("XZ")
			So(p.Equal(mustPauli(2, 0b10, 0b01, 0, 0)), ShouldBeTrue)
		})

		Convey("A Y should be stored as ZX with a factor of -i", func() {
			p := mustParse("Y")
			So(p.X(), ShouldEqual, uint64(1))
			So(p.Z(), ShouldEqual, uint64(1))
			So(p.Sign(), ShouldEqual, uint8(1))
			So(p.Phase(), ShouldEqual, uint8(1))
			So(p.Hermitian(), ShouldBeTrue)
		})

		Convey("Formatting then parsing should give the same operator", func() {
			for _, s := range []string{"+IXYZ", "-YY", "+iZ", "-iXYI", "+IIII"} {
				p := mustParse(s)
				So(p.String(), ShouldEqual, s)
				So(mustParse(p.String()).Equal(p), ShouldBeTrue)
			}
		})

		Convey("The n=5 generators should print as Hermitian strings", func() {
			So(mustPauli(5, 0b00011, 0b00001, 0, 1).String(), ShouldEqual, "-IIIXY")
			So(mustPauli(5, 0b10000, 0b01000, 1, 0).String(), ShouldEqual, "-XZIII")
		})

		Convey("Malformed strings should be rejected", func() {
			for _, s := range []string{"", "+", "-i", "XQ", "ix"} {
				_, err := ParsePauli(s)
				So(errors.Is(err, ErrInvalidPauliString), ShouldBeTrue)
			}
		})
	})
}

func TestHermitian(t *testing.T) {
	Convey("Given operators with different scalars", t, func() {
		So(mustParse("XYZ").Hermitian(), ShouldBeTrue)
		So(mustParse("-YY").Hermitian(), ShouldBeTrue)
		So(mustParse("iZ").Hermitian(), ShouldBeFalse)
		So(mustParse("iY").Hermitian(), ShouldBeFalse)
		So(Identity(3).IsIdentity(), ShouldBeTrue)
		So(mustParse("-III").IsIdentity(), ShouldBeFalse)
	})
}

func TestApply(t *testing.T) {
	Convey("Given single qubit basis states", t, func() {
		zero := Amplitudes{1, 0}
		one := Amplitudes{0, 1}

		Convey("X should flip and Z should mark |1⟩", func() {
			out, err := mustParse("X").Apply(zero)
			So(err, ShouldBeNil)
			So(out, ShouldResemble, one)

			out, _ = mustParse("Z").Apply(one)
			So(out, ShouldResemble, Amplitudes{0, -1})
		})

		Convey("Y should act as iX on |0⟩ and -iX on |1⟩", func() {
			out, _ := mustParse("Y").Apply(zero)
			So(out, ShouldResemble, Amplitudes{0, complex(0, 1)})

			out, _ = mustParse("Y").Apply(one)
			So(out, ShouldResemble, Amplitudes{complex(0, -1), 0})
		})

		Convey("A vector of the wrong length should be rejected", func() {
			_, err := mustParse("XX").Apply(zero)
			So(errors.Is(err, ErrQubitMismatch), ShouldBeTrue)
		})
	})
}
