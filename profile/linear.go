package profile

import (
	"fmt"
	"math"
	"time"

	"github.com/NASA-AMMOS/aerie-sub004/interval"
)

// LinearEquation is the line through (InitialTime, InitialValue) with Rate units per second.
type LinearEquation struct {
	InitialTime  interval.Duration
	InitialValue float64
	Rate         float64
}

func NewLinearEquation(initialTime interval.Duration, initialValue, rate float64) LinearEquation {
	return LinearEquation{
		InitialTime:  initialTime,
		InitialValue: initialValue,
		Rate:         rate,
	}
}

func ConstantEquation(v float64) LinearEquation {
	return LinearEquation{InitialValue: v}
}

func (e LinearEquation) ValueAt(t interval.Duration) float64 {
	if e.Rate == 0 {
		return e.InitialValue
	}

	return e.InitialValue + e.Rate*secondsBetween(e.InitialTime, t)
}

func (e LinearEquation) IsConstant() bool {
	return e.Rate == 0
}

// ShiftInitialTime re-anchors the same line at t.
func (e LinearEquation) ShiftInitialTime(t interval.Duration) LinearEquation {
	return LinearEquation{
		InitialTime:  t,
		InitialValue: e.ValueAt(t),
		Rate:         e.Rate,
	}
}

// Equal reports whether both equations describe the same line.
func (e LinearEquation) Equal(o LinearEquation) bool {
	return e.Rate == o.Rate && floatEqual(e.ValueAt(o.InitialTime), o.InitialValue)
}

func (e LinearEquation) Plus(o LinearEquation) LinearEquation {
	return LinearEquation{
		InitialTime:  e.InitialTime,
		InitialValue: e.InitialValue + o.ValueAt(e.InitialTime),
		Rate:         e.Rate + o.Rate,
	}
}

func (e LinearEquation) Negate() LinearEquation {
	return e.Scale(-1)
}

func (e LinearEquation) Minus(o LinearEquation) LinearEquation {
	return e.Plus(o.Negate())
}

func (e LinearEquation) Scale(c float64) LinearEquation {
	return LinearEquation{
		InitialTime:  e.InitialTime,
		InitialValue: e.InitialValue * c,
		Rate:         e.Rate * c,
	}
}

// Intersection returns the instant at which both lines take the same value. It reports false for
// parallel lines; crossings beyond the representable range saturate.
func (e LinearEquation) Intersection(o LinearEquation) (interval.Duration, bool) {
	if e.Rate == o.Rate {
		return 0, false
	}

	offset := (o.ValueAt(e.InitialTime) - e.InitialValue) / (e.Rate - o.Rate)

	return addSeconds(e.InitialTime, offset), true
}

func (e LinearEquation) String() string {
	if e.IsConstant() {
		return fmt.Sprintf("%g", e.InitialValue)
	}

	return fmt.Sprintf("%g %+g/s (t - %v)", e.InitialValue, e.Rate, e.InitialTime)
}

// secondsBetween subtracts in float64 so instants near the ends of time do not overflow.
func secondsBetween(from, to interval.Duration) float64 {
	return (float64(to) - float64(from)) / float64(time.Second)
}

func addSeconds(t interval.Duration, s float64) interval.Duration {
	r := float64(t) + s*float64(time.Second)

	switch {
	case math.IsNaN(r):
		return t
	case r >= float64(interval.MaxDuration):
		return interval.MaxDuration
	case r <= float64(interval.MinDuration):
		return interval.MinDuration
	}

	return interval.Duration(math.Round(r))
}

func floatEqual(a, b float64) bool {
	if a == b {
		return true
	}

	const epsilon = 1e-9

	return math.Abs(a-b) <= epsilon*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}
