package timeline

import (
	"fmt"
	"slices"

	"github.com/NASA-AMMOS/aerie-sub004/interval"
)

// SortSegments orders segments by start, then by end. Two segments covering the same interval
// with unequal values have no defined order and produce ErrUnsortable.
func SortSegments[V any](segments []Segment[V], equal EqualFunc[V]) (err error) {
	slices.SortStableFunc(segments, func(a, b Segment[V]) int {
		if c := a.Interval.CompareStarts(b.Interval); c != 0 {
			return c
		}

		c := a.Interval.CompareEnds(b.Interval)
		if c == 0 && err == nil && !equal(a.Value, b.Value) {
			err = fmt.Errorf("%w: %v and %v", ErrUnsortable, a, b)
		}

		return c
	})

	return
}

// Coalesce merges touching or overlapping segments that hold equal values. Where two overlapping
// segments disagree, the later one in the list keeps the overlap and the earlier one is cut
// short. The input must be sorted with SortSegments; the slice is reused for the result.
func Coalesce[V any](segments []Segment[V], equal EqualFunc[V]) []Segment[V] {
	if len(segments) == 0 {
		return segments
	}

	n := 0
	buffer := segments[0]

	for _, next := range segments[1:] {
		comparison := buffer.Interval.CompareEndToStart(next.Interval)
		if comparison < 0 {
			segments[n] = buffer
			n++
			buffer = next

			continue
		}

		if equal(buffer.Value, next.Value) {
			if buffer.Interval.CompareEnds(next.Interval) < 0 {
				buffer.Interval = interval.Between(buffer.Interval.Start, next.Interval.End,
					buffer.Interval.StartInclusivity, next.Interval.EndInclusivity)
			}

			continue
		}

		if comparison > 0 {
			buffer.Interval = interval.Between(buffer.Interval.Start, next.Interval.Start,
				buffer.Interval.StartInclusivity, next.Interval.StartInclusivity.Opposite())
		}

		if !buffer.Interval.IsEmpty() {
			segments[n] = buffer
			n++
		}

		buffer = next
	}

	segments[n] = buffer
	n++

	return segments[:n]
}

// SortAndCoalesce brings an arbitrary list into canonical form.
func SortAndCoalesce[V any](segments []Segment[V], equal EqualFunc[V]) ([]Segment[V], error) {
	if err := SortSegments(segments, equal); err != nil {
		return nil, err
	}

	return Coalesce(segments, equal), nil
}

// Map2Arrays merges two sorted, coalesced segment lists under op. Wherever one segment starts
// before the other, its leading part goes through op.Left or op.Right alone and the remainder is
// queued again; where both are present, op.Combine sees the shorter of the two and the rest of
// the longer one is queued again. The result is sorted and coalesced under equal.
func Map2Arrays[L, R, O any](left []Segment[L], right []Segment[R], op BinaryOperation[L, R, O],
	equal EqualFunc[O]) []Segment[O] {
	result := make([]Segment[O], 0, len(left)+len(right))

	emit := func(o O, ok bool, i interval.Interval) {
		if ok && !i.IsEmpty() {
			result = append(result, Segment[O]{Value: o, Interval: i})
		}
	}

	var (
		leftIndex, rightIndex int
		leftRest              *Segment[L]
		rightRest             *Segment[R]
	)

	for {
		var (
			l        Segment[L]
			r        Segment[R]
			hasLeft  bool
			hasRight bool
		)

		if leftRest != nil {
			l, hasLeft = *leftRest, true
			leftRest = nil
		} else if leftIndex < len(left) {
			l, hasLeft = left[leftIndex], true
			leftIndex++
		}

		if rightRest != nil {
			r, hasRight = *rightRest, true
			rightRest = nil
		} else if rightIndex < len(right) {
			r, hasRight = right[rightIndex], true
			rightIndex++
		}

		if !hasLeft && !hasRight {
			break
		}

		if !hasLeft {
			o, ok := op.Right(r.Value, r.Interval)
			emit(o, ok, r.Interval)

			continue
		}

		if !hasRight {
			o, ok := op.Left(l.Value, l.Interval)
			emit(o, ok, l.Interval)

			continue
		}

		li, ri := l.Interval, r.Interval

		switch startComparison := li.CompareStarts(ri); {
		case startComparison < 0:
			if li.CompareEndToStart(ri) < 1 {
				o, ok := op.Left(l.Value, li)
				emit(o, ok, li)
			} else {
				head := interval.Between(li.Start, ri.Start, li.StartInclusivity, ri.StartInclusivity.Opposite())
				o, ok := op.Left(l.Value, head)
				emit(o, ok, head)

				rest := l.WithInterval(interval.Between(ri.Start, li.End, ri.StartInclusivity, li.EndInclusivity))
				leftRest = &rest
			}

			rightRest = &r
		case startComparison > 0:
			if ri.CompareEndToStart(li) < 1 {
				o, ok := op.Right(r.Value, ri)
				emit(o, ok, ri)
			} else {
				head := interval.Between(ri.Start, li.Start, ri.StartInclusivity, li.StartInclusivity.Opposite())
				o, ok := op.Right(r.Value, head)
				emit(o, ok, head)

				rest := r.WithInterval(interval.Between(li.Start, ri.End, li.StartInclusivity, ri.EndInclusivity))
				rightRest = &rest
			}

			leftRest = &l
		default:
			switch endComparison := li.CompareEnds(ri); {
			case endComparison < 0:
				o, ok := op.Combine(l.Value, r.Value, li)
				emit(o, ok, li)

				rest := r.WithInterval(interval.Between(li.End, ri.End, li.EndInclusivity.Opposite(), ri.EndInclusivity))
				rightRest = &rest
			case endComparison > 0:
				o, ok := op.Combine(l.Value, r.Value, ri)
				emit(o, ok, ri)

				rest := l.WithInterval(interval.Between(ri.End, li.End, ri.EndInclusivity.Opposite(), li.EndInclusivity))
				leftRest = &rest
			default:
				o, ok := op.Combine(l.Value, r.Value, li)
				emit(o, ok, li)
			}
		}
	}

	return Coalesce(result, equal)
}
