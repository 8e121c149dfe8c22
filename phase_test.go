package stabiliser

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPhase(t *testing.T) {
	Convey("Given every (sign, phase) pair", t, func() {
		want := map[[2]uint8]complex128{
			{0, 0}: 1,
			{0, 1}: complex(0, 1),
			{1, 0}: -1,
			{1, 1}: complex(0, -1),
		}

		for pair, c := range want {
			u := phaseOf(pair[0], pair[1])

			sign, ph := u.split()
			So([2]uint8{sign, ph}, ShouldResemble, pair)
			So(u.complex(), ShouldEqual, c)
		}
	})

	Convey("Given units added together", t, func() {
		So(phaseI.add(phaseI), ShouldEqual, phaseMinusOne)
		So(phaseMinusI.add(phaseI), ShouldEqual, phaseOne)
		So(phaseMinusOne.add(phaseMinusI), ShouldEqual, phaseI)
		So(phaseMinusI.prefix(), ShouldEqual, "-i")
	})
}
