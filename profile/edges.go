package profile

import (
	"context"

	"github.com/NASA-AMMOS/aerie-sub004/interval"
	"github.com/NASA-AMMOS/aerie-sub004/timeline"
)

// Edges produces a Windows holding op's result at every segment boundary and false in between.
//
// At the start of a segment that touches its predecessor, Combine(previous, current) is used; a
// segment that follows a gap uses Right(current). A segment that is not followed by a touching one
// gets Left(current) at its end. No edge is placed at the bounds themselves, because the value on
// the far side is unknown there.
func (p Profile[V]) Edges(op timeline.BinaryOperation[V, V, bool]) Windows {
	return NewWindows(timeline.Func[timeline.Segment[bool]](func(ctx context.Context, bounds interval.Interval) ([]timeline.Segment[bool], error) {
		segments, err := p.Collect(ctx, bounds)
		if err != nil {
			return nil, err
		}

		result := make([]timeline.Segment[bool], 0, 3*len(segments))

		emit := func(v bool, ok bool, i interval.Interval) {
			if ok && !i.IsEmpty() {
				result = append(result, timeline.NewSegment(v, i))
			}
		}

		for idx, s := range segments {
			i := s.Interval
			startInclusivity, endInclusivity := i.StartInclusivity, i.EndInclusivity

			startEdge := i.Start != bounds.Start
			if startEdge {
				at := interval.At(i.Start)

				if idx > 0 && segments[idx-1].Interval.CompareEndToStart(i) == 0 {
					v, ok := op.Combine(segments[idx-1].Value, s.Value, at)
					emit(v, ok, at)
				} else {
					v, ok := op.Right(s.Value, at)
					emit(v, ok, at)
				}

				startInclusivity = interval.Exclusive
			}

			endEdge := false

			if idx+1 < len(segments) && i.CompareEndToStart(segments[idx+1].Interval) == 0 {
				endInclusivity = interval.Exclusive
			} else if i.End != bounds.End && !(startEdge && i.IsPoint()) {
				endEdge = true
				endInclusivity = interval.Exclusive
			}

			emit(false, true, interval.Between(i.Start, i.End, startInclusivity, endInclusivity))

			if endEdge {
				at := interval.At(i.End)
				v, ok := op.Left(s.Value, at)
				emit(v, ok, at)
			}
		}

		return timeline.Coalesce(result, timeline.Equals[bool]), nil
	}))
}

// Changes is true at every boundary where the value differs on either side.
func (p Profile[V]) Changes() Windows {
	return p.Edges(timeline.Cases(
		func(V, interval.Interval) (bool, bool) {
			return false, false
		},
		func(V, interval.Interval) (bool, bool) {
			return false, false
		},
		func(l, r V, _ interval.Interval) (bool, bool) {
			return !p.equal(l, r), true
		},
	))
}

// Transitions is true exactly where the value switches from `from` to `to`. At a boundary next to
// a gap it is false if the known side rules the transition out and absent otherwise.
func (p Profile[V]) Transitions(from, to V) Windows {
	return p.Edges(timeline.Cases(
		func(l V, _ interval.Interval) (bool, bool) {
			if p.equal(l, from) {
				return false, false
			}

			return false, true
		},
		func(r V, _ interval.Interval) (bool, bool) {
			if p.equal(r, to) {
				return false, false
			}

			return false, true
		},
		func(l, r V, _ interval.Interval) (bool, bool) {
			return p.equal(l, from) && p.equal(r, to), true
		},
	))
}
