package profile

import (
	"context"

	"github.com/NASA-AMMOS/aerie-sub004/interval"
	"github.com/NASA-AMMOS/aerie-sub004/timeline"
)

// MapValues transforms each value, keeping segment boundaries.
func MapValues[V any, W comparable](p Profile[V], f func(s timeline.Segment[V]) W) Profile[W] {
	return MapValuesEx(p, f, timeline.Equals[W])
}

func MapValuesEx[V, W any](p Profile[V], f func(s timeline.Segment[V]) W, equal timeline.EqualFunc[W]) Profile[W] {
	return UnsafeMap(p, func(s timeline.Segment[V]) timeline.Segment[W] {
		return timeline.NewSegment(f(s), s.Interval)
	}, nil, equal)
}

func tryMapValues[V, W any](p Profile[V], f func(s timeline.Segment[V]) (W, error), equal timeline.EqualFunc[W]) Profile[W] {
	return UnsafeFlatMap(p, func(s timeline.Segment[V], _ interval.Interval) ([]timeline.Segment[W], error) {
		w, err := f(s)
		if err != nil {
			return nil, err
		}

		return []timeline.Segment[W]{timeline.NewSegment(w, s.Interval)}, nil
	}, nil, equal)
}

// Map2Values merges two profiles under op. Both are evaluated concurrently.
func Map2Values[L, R, O any](left Profile[L], right Profile[R], op timeline.BinaryOperation[L, R, O],
	equal timeline.EqualFunc[O]) Profile[O] {
	return NewWithEqual(timeline.Map2Segments(left.segments, right.segments, op, equal), equal)
}

// The Unsafe functions are the primitives the typed combinators are built from. boundsMap
// rewrites the query before the input is evaluated (nil keeps it); results are clipped to the
// original query, sorted and coalesced, so f must put them where they belong.

func UnsafeMap[V, W any](p Profile[V], f func(s timeline.Segment[V]) timeline.Segment[W], boundsMap timeline.BoundsMap,
	equal timeline.EqualFunc[W]) Profile[W] {
	return UnsafeFlatMap(p, func(s timeline.Segment[V], _ interval.Interval) ([]timeline.Segment[W], error) {
		return []timeline.Segment[W]{f(s)}, nil
	}, boundsMap, equal)
}

func UnsafeFlatMap[V, W any](p Profile[V], f func(s timeline.Segment[V], bounds interval.Interval) ([]timeline.Segment[W], error),
	boundsMap timeline.BoundsMap, equal timeline.EqualFunc[W]) Profile[W] {
	tl := timeline.FlatMap(p.segments, f, boundsMap)

	return NewWithEqual(canonical(tl, equal), equal)
}

func UnsafeMap2[L, R, W any](left Profile[L], right Profile[R],
	f func(l []timeline.Segment[L], r []timeline.Segment[R], bounds interval.Interval) ([]timeline.Segment[W], error),
	boundsMap timeline.BoundsMap, equal timeline.EqualFunc[W]) Profile[W] {
	tl := timeline.Map2(left.segments, right.segments, f, boundsMap)

	return NewWithEqual(canonical(tl, equal), equal)
}

func UnsafeFlatMap2[L, R, W any](left Profile[L], right Profile[R],
	f func(l []timeline.Segment[L], r []timeline.Segment[R], bounds interval.Interval) (Profile[W], error),
	boundsMap timeline.BoundsMap, equal timeline.EqualFunc[W]) Profile[W] {
	tl := timeline.FlatMap2(left.segments, right.segments,
		func(l []timeline.Segment[L], r []timeline.Segment[R], bounds interval.Interval) (timeline.Timeline[timeline.Segment[W]], error) {
			p, err := f(l, r, bounds)
			if err != nil {
				return nil, err
			}

			return p.segments, nil
		}, boundsMap)

	return NewWithEqual(canonical(tl, equal), equal)
}

// canonical clips, sorts and coalesces whatever tl produced.
func canonical[V any](tl timeline.Timeline[timeline.Segment[V]], equal timeline.EqualFunc[V]) timeline.Timeline[timeline.Segment[V]] {
	return timeline.Func[timeline.Segment[V]](func(ctx context.Context, bounds interval.Interval) ([]timeline.Segment[V], error) {
		segments, err := timeline.Bounded(tl).Evaluate(ctx, bounds)
		if err != nil {
			return nil, err
		}

		return timeline.SortAndCoalesce(segments, equal)
	})
}
