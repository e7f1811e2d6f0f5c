package interval

import (
	"cmp"
	"fmt"
	"math"
	"time"
)

// Duration is an offset on the time axis.
type Duration = time.Duration

const (
	MinDuration Duration = math.MinInt64
	MaxDuration Duration = math.MaxInt64
)

type Inclusivity int

const (
	Inclusive Inclusivity = iota
	Exclusive
)

func (i Inclusivity) Opposite() Inclusivity {
	if i == Inclusive {
		return Exclusive
	}

	return Inclusive
}

// MoreRestrictiveThan reports whether i excludes a shared endpoint that o includes.
func (i Inclusivity) MoreRestrictiveThan(o Inclusivity) bool {
	return i == Exclusive && o == Inclusive
}

func (i Inclusivity) String() string {
	if i == Inclusive {
		return "Inclusive"
	}

	return "Exclusive"
}

// Interval is a range over the duration axis with independent endpoint inclusivity. The zero
// value is the closed singleton [0s, 0s]. Intervals with Start > End are representable and empty.
type Interval struct {
	Start            Duration
	End              Duration
	StartInclusivity Inclusivity
	EndInclusivity   Inclusivity
}

// Forever covers the whole representable axis.
var Forever = Interval{Start: MinDuration, End: MaxDuration}

func Between(start, end Duration, startInclusivity, endInclusivity Inclusivity) Interval {
	return Interval{
		Start:            start,
		End:              end,
		StartInclusivity: startInclusivity,
		EndInclusivity:   endInclusivity,
	}
}

func BetweenClosed(start, end Duration) Interval {
	return Between(start, end, Inclusive, Inclusive)
}

func BetweenClosedOpen(start, end Duration) Interval {
	return Between(start, end, Inclusive, Exclusive)
}

func At(t Duration) Interval {
	return Between(t, t, Inclusive, Inclusive)
}

func (i Interval) IsEmpty() bool {
	if i.Start > i.End {
		return true
	}

	return i.Start == i.End && (i.StartInclusivity == Exclusive || i.EndInclusivity == Exclusive)
}

func (i Interval) IsPoint() bool {
	return i.Start == i.End && i.StartInclusivity == Inclusive && i.EndInclusivity == Inclusive
}

func (i Interval) IncludesStart() bool {
	return i.StartInclusivity == Inclusive
}

func (i Interval) IncludesEnd() bool {
	return i.EndInclusivity == Inclusive
}

// Duration returns End - Start, or zero for empty intervals.
func (i Interval) Duration() Duration {
	if i.IsEmpty() {
		return 0
	}

	return i.End - i.Start
}

// Intersect returns the overlap of i and o. The result may be empty.
func (i Interval) Intersect(o Interval) Interval {
	start, startInclusivity := i.Start, i.StartInclusivity

	switch c := cmp.Compare(i.Start, o.Start); {
	case c < 0:
		start, startInclusivity = o.Start, o.StartInclusivity
	case c == 0 && o.StartInclusivity.MoreRestrictiveThan(i.StartInclusivity):
		startInclusivity = o.StartInclusivity
	}

	end, endInclusivity := i.End, i.EndInclusivity

	switch c := cmp.Compare(i.End, o.End); {
	case c > 0:
		end, endInclusivity = o.End, o.EndInclusivity
	case c == 0 && o.EndInclusivity.MoreRestrictiveThan(i.EndInclusivity):
		endInclusivity = o.EndInclusivity
	}

	return Between(start, end, startInclusivity, endInclusivity)
}

// Union returns the smallest interval covering both i and o. The second value is false when a
// gap separates them.
func (i Interval) Union(o Interval) (Interval, bool) {
	if i.IsEmpty() {
		return o, true
	}

	if o.IsEmpty() {
		return i, true
	}

	first, second := i, o
	if i.CompareStarts(o) > 0 {
		first, second = o, i
	}

	if first.CompareEndToStart(second) < 0 {
		return Interval{}, false
	}

	end, endInclusivity := first.End, first.EndInclusivity
	if first.CompareEnds(second) < 0 {
		end, endInclusivity = second.End, second.EndInclusivity
	}

	return Between(first.Start, end, first.StartInclusivity, endInclusivity), true
}

// Subtract removes o from i, returning up to two non-empty pieces in order.
func (i Interval) Subtract(o Interval) []Interval {
	intersection := i.Intersect(o)
	if intersection.IsEmpty() {
		if i.IsEmpty() {
			return nil
		}

		return []Interval{i}
	}

	var result []Interval

	before := Between(i.Start, intersection.Start, i.StartInclusivity, intersection.StartInclusivity.Opposite())
	if !before.IsEmpty() {
		result = append(result, before)
	}

	after := Between(intersection.End, i.End, intersection.EndInclusivity.Opposite(), i.EndInclusivity)
	if !after.IsEmpty() {
		result = append(result, after)
	}

	return result
}

// CompareStarts orders intervals by start; an inclusive start sorts before an exclusive one at the
// same instant.
func (i Interval) CompareStarts(o Interval) int {
	if c := cmp.Compare(i.Start, o.Start); c != 0 {
		return c
	}

	if i.StartInclusivity == o.StartInclusivity {
		return 0
	}

	if i.StartInclusivity == Inclusive {
		return -1
	}

	return 1
}

// CompareEnds orders intervals by end; an inclusive end sorts after an exclusive one at the same
// instant.
func (i Interval) CompareEnds(o Interval) int {
	if c := cmp.Compare(i.End, o.End); c != 0 {
		return c
	}

	if i.EndInclusivity == o.EndInclusivity {
		return 0
	}

	if i.EndInclusivity == Inclusive {
		return 1
	}

	return -1
}

// CompareEndToStart returns -1 if a gap separates the end of i from the start of o, 0 if they
// meet with neither gap nor overlap, and 1 if they overlap.
func (i Interval) CompareEndToStart(o Interval) int {
	if c := cmp.Compare(i.End, o.Start); c != 0 {
		return c
	}

	switch {
	case i.EndInclusivity == Inclusive && o.StartInclusivity == Inclusive:
		return 1
	case i.EndInclusivity == Exclusive && o.StartInclusivity == Exclusive:
		return -1
	default:
		return 0
	}
}

// Contains reports whether o lies entirely within i. Empty intervals are contained everywhere.
func (i Interval) Contains(o Interval) bool {
	if o.IsEmpty() {
		return true
	}

	return i.CompareStarts(o) <= 0 && i.CompareEnds(o) >= 0
}

func (i Interval) ContainsTime(t Duration) bool {
	return i.Contains(At(t))
}

// ShiftBy translates the start by fromStart and the end by fromEnd, which defaults to fromStart.
// Shifting saturates at MinDuration and MaxDuration.
func (i Interval) ShiftBy(fromStart Duration, fromEnd ...Duration) Interval {
	endShift := fromStart
	if len(fromEnd) > 0 {
		endShift = fromEnd[0]
	}

	return Between(addSaturating(i.Start, fromStart), addSaturating(i.End, endShift),
		i.StartInclusivity, i.EndInclusivity)
}

// Equal compares intervals as sets, so every empty interval equals every other.
func (i Interval) Equal(o Interval) bool {
	if i.IsEmpty() || o.IsEmpty() {
		return i.IsEmpty() && o.IsEmpty()
	}

	return i == o
}

func (i Interval) String() string {
	left, right := "[", "]"
	if i.StartInclusivity == Exclusive {
		left = "("
	}

	if i.EndInclusivity == Exclusive {
		right = ")"
	}

	return fmt.Sprintf("%s%v, %v%s", left, i.Start, i.End, right)
}

func addSaturating(t, d Duration) Duration {
	switch {
	case t == MaxDuration || t == MinDuration:
		return t
	case d > 0 && t > MaxDuration-d:
		return MaxDuration
	case d < 0 && t < MinDuration-d:
		return MinDuration
	default:
		return t + d
	}
}

// GetInterval, Bound and MapInterval let a bare Interval be carried in span collections.
func (i Interval) GetInterval() Interval {
	return i
}

func (i Interval) Bound(bounds Interval) (Interval, bool) {
	r := i.Intersect(bounds)

	return r, !r.IsEmpty()
}

func (i Interval) MapInterval(f func(Interval) Interval) Interval {
	return f(i)
}
