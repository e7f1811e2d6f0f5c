package timeline

import (
	"context"

	"github.com/NASA-AMMOS/aerie-sub004/interval"
	"golang.org/x/sync/errgroup"
)

// Timeline lazily produces the values that fall within bounds. Segment timelines return their
// segments sorted by start, clipped to bounds and coalesced. A Timeline keeps no state between
// calls unless it is wrapped by Cache.
type Timeline[T any] interface {
	Evaluate(ctx context.Context, bounds interval.Interval) ([]T, error)
}

// Func adapts an ordinary function to the Timeline interface.
type Func[T any] func(ctx context.Context, bounds interval.Interval) ([]T, error)

func (f Func[T]) Evaluate(ctx context.Context, bounds interval.Interval) ([]T, error) {
	return f(ctx, bounds)
}

// BoundsMap rewrites the query bounds before an input timeline is evaluated.
type BoundsMap func(interval.Interval) interval.Interval

func SameBounds(bounds interval.Interval) interval.Interval {
	return bounds
}

func Empty[T any]() Timeline[T] {
	return Func[T](func(context.Context, interval.Interval) ([]T, error) {
		return nil, nil
	})
}

// Static serves a fixed list of segments, clipped to each query.
func Static[V any](segments []Segment[V], equal EqualFunc[V]) Timeline[Segment[V]] {
	held := append([]Segment[V]{}, segments...)

	return Func[Segment[V]](func(_ context.Context, bounds interval.Interval) ([]Segment[V], error) {
		result := make([]Segment[V], 0, len(held))

		for _, s := range held {
			if b, ok := s.Bound(bounds); ok {
				result = append(result, b)
			}
		}

		return SortAndCoalesce(result, equal)
	})
}

// Map transforms every value of tl. boundsMap widens or moves the query before tl is evaluated;
// the caller is responsible for f producing results that fit the original bounds.
func Map[T, U any](tl Timeline[T], f func(t T, bounds interval.Interval) (U, error), boundsMap BoundsMap) Timeline[U] {
	return FlatMap(tl, func(t T, bounds interval.Interval) ([]U, error) {
		u, err := f(t, bounds)
		if err != nil {
			return nil, err
		}

		return []U{u}, nil
	}, boundsMap)
}

// FlatMap expands every value of tl into any number of results.
func FlatMap[T, U any](tl Timeline[T], f func(t T, bounds interval.Interval) ([]U, error), boundsMap BoundsMap) Timeline[U] {
	if boundsMap == nil {
		boundsMap = SameBounds
	}

	return Func[U](func(ctx context.Context, bounds interval.Interval) ([]U, error) {
		ts, err := tl.Evaluate(ctx, boundsMap(bounds))
		if err != nil {
			return nil, err
		}

		result := make([]U, 0, len(ts))

		for _, t := range ts {
			us, err := f(t, bounds)
			if err != nil {
				return nil, err
			}

			result = append(result, us...)
		}

		return result, nil
	})
}

// Map2 evaluates two timelines concurrently and hands both results to f.
func Map2[L, R, U any](left Timeline[L], right Timeline[R],
	f func(l []L, r []R, bounds interval.Interval) ([]U, error), boundsMap BoundsMap) Timeline[U] {
	if boundsMap == nil {
		boundsMap = SameBounds
	}

	return Func[U](func(ctx context.Context, bounds interval.Interval) ([]U, error) {
		ls, rs, err := evaluateBoth(ctx, left, right, boundsMap(bounds))
		if err != nil {
			return nil, err
		}

		return f(ls, rs, bounds)
	})
}

// FlatMap2 is Map2 where f produces a timeline that is then evaluated on the original bounds.
func FlatMap2[L, R, U any](left Timeline[L], right Timeline[R],
	f func(l []L, r []R, bounds interval.Interval) (Timeline[U], error), boundsMap BoundsMap) Timeline[U] {
	if boundsMap == nil {
		boundsMap = SameBounds
	}

	return Func[U](func(ctx context.Context, bounds interval.Interval) ([]U, error) {
		ls, rs, err := evaluateBoth(ctx, left, right, boundsMap(bounds))
		if err != nil {
			return nil, err
		}

		tl, err := f(ls, rs, bounds)
		if err != nil {
			return nil, err
		}

		return tl.Evaluate(ctx, bounds)
	})
}

func evaluateBoth[L, R any](ctx context.Context, left Timeline[L], right Timeline[R],
	bounds interval.Interval) (ls []L, rs []R, err error) {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() (e error) {
		ls, e = left.Evaluate(gCtx, bounds)

		return
	})

	g.Go(func() (e error) {
		rs, e = right.Evaluate(gCtx, bounds)

		return
	})

	err = g.Wait()

	return
}

// Map2Segments merges two segment timelines with Map2Arrays.
func Map2Segments[L, R, O any](left Timeline[Segment[L]], right Timeline[Segment[R]], op BinaryOperation[L, R, O],
	equal EqualFunc[O]) Timeline[Segment[O]] {
	return Map2(left, right, func(l []Segment[L], r []Segment[R], _ interval.Interval) ([]Segment[O], error) {
		return Map2Arrays(l, r, op, equal), nil
	}, nil)
}

// Bounded clips every segment of tl to the query, dropping what falls outside.
func Bounded[V any](tl Timeline[Segment[V]]) Timeline[Segment[V]] {
	return Func[Segment[V]](func(ctx context.Context, bounds interval.Interval) ([]Segment[V], error) {
		segments, err := tl.Evaluate(ctx, bounds)
		if err != nil {
			return nil, err
		}

		result := make([]Segment[V], 0, len(segments))

		for _, s := range segments {
			if b, ok := s.Bound(bounds); ok {
				result = append(result, b)
			}
		}

		return result, nil
	})
}
