package profile

import (
	"context"
	"fmt"
	"slices"

	"github.com/NASA-AMMOS/aerie-sub004/interval"
	"github.com/NASA-AMMOS/aerie-sub004/timeline"
)

// Intervallic is anything that occupies an interval and can be clipped or moved.
type Intervallic[S any] interface {
	GetInterval() interval.Interval
	Bound(bounds interval.Interval) (S, bool)
	MapInterval(f func(interval.Interval) interval.Interval) S
}

// Spans is a timeline of possibly overlapping items ordered by start. Unlike a profile it is
// never coalesced.
type Spans[S Intervallic[S]] struct {
	spans timeline.Timeline[S]
}

func NewSpans[S Intervallic[S]](spans timeline.Timeline[S]) Spans[S] {
	return Spans[S]{
		spans: spans,
	}
}

// SpansFrom clips items to each query.
func SpansFrom[S Intervallic[S]](items ...S) Spans[S] {
	items = slices.Clone(items)
	sortSpans(items)

	return NewSpans[S](timeline.Func[S](func(_ context.Context, bounds interval.Interval) ([]S, error) {
		return boundSpans(items, bounds), nil
	}))
}

func sortSpans[S Intervallic[S]](items []S) {
	slices.SortStableFunc(items, func(a, b S) int {
		return a.GetInterval().CompareStarts(b.GetInterval())
	})
}

func boundSpans[S Intervallic[S]](items []S, bounds interval.Interval) []S {
	result := make([]S, 0, len(items))

	for _, item := range items {
		if b, ok := item.Bound(bounds); ok {
			result = append(result, b)
		}
	}

	return result
}

func sortedSpans[S Intervallic[S]](tl timeline.Timeline[S]) timeline.Timeline[S] {
	return timeline.Func[S](func(ctx context.Context, bounds interval.Interval) ([]S, error) {
		items, err := tl.Evaluate(ctx, bounds)
		if err != nil {
			return nil, err
		}

		sortSpans(items)

		return items, nil
	})
}

func (s Spans[S]) Timeline() timeline.Timeline[S] {
	return s.spans
}

func (s Spans[S]) Collect(ctx context.Context, bounds interval.Interval) ([]S, error) {
	return s.spans.Evaluate(ctx, bounds)
}

// Add merges the spans of o into s.
func (s Spans[S]) Add(o Spans[S]) Spans[S] {
	return NewSpans(timeline.Map2(s.spans, o.spans, func(l []S, r []S, _ interval.Interval) ([]S, error) {
		result := make([]S, 0, len(l)+len(r))
		result = append(result, l...)
		result = append(result, r...)

		sortSpans(result)

		return result, nil
	}, nil))
}

func (s Spans[S]) AddAll(items ...S) Spans[S] {
	return s.Add(SpansFrom(items...))
}

func (s Spans[S]) Filter(predicate func(item S) bool) Spans[S] {
	return NewSpans(timeline.FlatMap(s.spans, func(item S, _ interval.Interval) ([]S, error) {
		if predicate(item) {
			return []S{item}, nil
		}

		return nil, nil
	}, nil))
}

// Map transforms every span. Results are clipped to the query and reordered.
func (s Spans[S]) Map(f func(item S) S) Spans[S] {
	return MapSpans(s, f)
}

func MapSpans[S Intervallic[S], T Intervallic[T]](s Spans[S], f func(item S) T) Spans[T] {
	return NewSpans(sortedSpans(timeline.FlatMap(s.spans, func(item S, bounds interval.Interval) ([]T, error) {
		if b, ok := f(item).Bound(bounds); ok {
			return []T{b}, nil
		}

		return nil, nil
	}, nil)))
}

// ShiftBy moves every span d later in time.
func (s Spans[S]) ShiftBy(d interval.Duration) Spans[S] {
	return NewSpans(timeline.Map(s.spans, func(item S, _ interval.Interval) (S, error) {
		return item.MapInterval(func(i interval.Interval) interval.Interval {
			return i.ShiftBy(d)
		}), nil
	}, shiftBounds(d)))
}

func (s Spans[S]) Select(i interval.Interval) Spans[S] {
	return NewSpans(selectTimeline(s.spans, i))
}

// Starts shrinks every span to the instant it starts.
func (s Spans[S]) Starts() Spans[S] {
	return s.Map(func(item S) S {
		return item.MapInterval(func(i interval.Interval) interval.Interval {
			return interval.At(i.Start)
		})
	})
}

// Ends shrinks every span to the instant it ends.
func (s Spans[S]) Ends() Spans[S] {
	return s.Map(func(item S) S {
		return item.MapInterval(func(i interval.Interval) interval.Interval {
			return interval.At(i.End)
		})
	})
}

func (s Spans[S]) Inspect(f timeline.Inspector[S]) Spans[S] {
	return NewSpans(timeline.Inspect(s.spans, f))
}

func (s Spans[S]) Cache(options ...timeline.CacheOption) Spans[S] {
	return NewSpans[S](timeline.Cache(s.spans, options...))
}

type splitOptions struct {
	strict        bool
	internalStart interval.Inclusivity
	internalEnd   interval.Inclusivity
}

type SplitOption func(o *splitOptions)

// StrictSplitOption rejects spans that touch the query bounds, since they may have been clipped.
func StrictSplitOption() SplitOption {
	return func(o *splitOptions) {
		o.strict = true
	}
}

// InternalInclusivityOption sets the inclusivity of the cut points between pieces.
func InternalInclusivityOption(start, end interval.Inclusivity) SplitOption {
	return func(o *splitOptions) {
		o.internalStart = start
		o.internalEnd = end
	}
}

// Split cuts every span into n pieces of equal length, the last piece absorbing any remainder.
// Spans that cannot be split fail the evaluation with ErrSplit.
func (s Spans[S]) Split(n int, options ...SplitOption) (Spans[S], error) {
	if n < 1 {
		return Spans[S]{}, fmt.Errorf("%w: %d pieces", ErrSplit, n)
	}

	opts := &splitOptions{
		internalStart: interval.Inclusive,
		internalEnd:   interval.Exclusive,
	}

	for _, o := range options {
		o(opts)
	}

	if n == 1 {
		return s, nil
	}

	return NewSpans(sortedSpans(timeline.FlatMap(s.spans, func(item S, bounds interval.Interval) ([]S, error) {
		return splitSpan(item, n, bounds, opts)
	}, nil))), nil
}

func splitSpan[S Intervallic[S]](item S, n int, bounds interval.Interval, opts *splitOptions) ([]S, error) {
	i := item.GetInterval()

	if opts.strict && (i.Start == bounds.Start || i.End == bounds.End) {
		return nil, fmt.Errorf("%w: %v touches the bounds %v", ErrSplit, i, bounds)
	}

	if i.Start == i.End {
		return nil, fmt.Errorf("%w: %v is instantaneous", ErrSplit, i)
	}

	// unsigned so that spans longer than MaxDuration still divide correctly
	width := (uint64(i.End) - uint64(i.Start)) / uint64(n)
	if width == 0 {
		return nil, fmt.Errorf("%w: %v is too short for %d pieces", ErrSplit, i, n)
	}

	result := make([]S, 0, n)

	for k := 0; k < n; k++ {
		start := i.Start + interval.Duration(uint64(k)*width)
		end := i.End
		startInclusivity, endInclusivity := i.StartInclusivity, i.EndInclusivity

		if k > 0 {
			startInclusivity = opts.internalStart
		}

		if k < n-1 {
			end = i.Start + interval.Duration(uint64(k+1)*width)
			endInclusivity = opts.internalEnd
		}

		piece := interval.Between(start, end, startInclusivity, endInclusivity)

		result = append(result, item.MapInterval(func(interval.Interval) interval.Interval {
			return piece
		}))
	}

	return result, nil
}

// CombineIntoProfile folds overlapping spans into a profile. Spans are taken in batches of
// non-overlapping ones and each batch is merged into the accumulated profile with op, the span
// being the left operand.
func CombineIntoProfile[S Intervallic[S], V any](s Spans[S], op timeline.BinaryOperation[S, V, V],
	equal timeline.EqualFunc[V]) Profile[V] {
	return NewWithEqual(timeline.Bounded[V](timeline.Func[timeline.Segment[V]](func(ctx context.Context, bounds interval.Interval) ([]timeline.Segment[V], error) {
		items, err := s.Collect(ctx, bounds)
		if err != nil {
			return nil, err
		}

		remaining := make([]S, 0, len(items))

		for _, item := range items {
			if !item.GetInterval().IsEmpty() {
				remaining = append(remaining, item)
			}
		}

		sortSpans(remaining)

		var acc []timeline.Segment[V]

		for len(remaining) > 0 {
			batch := make([]timeline.Segment[S], 0, len(remaining))
			rest := make([]S, 0, len(remaining))

			for _, item := range remaining {
				i := item.GetInterval()

				if len(batch) == 0 || batch[len(batch)-1].Interval.CompareEndToStart(i) < 1 {
					batch = append(batch, timeline.NewSegment(item, i))
				} else {
					rest = append(rest, item)
				}
			}

			acc = timeline.Map2Arrays(batch, acc, op, equal)
			remaining = rest
		}

		return acc, nil
	})), equal)
}

// CountActive is the number of spans active at each instant. Instants covered by no span have no
// value.
func (s Spans[S]) CountActive() Real {
	return realOf(CombineIntoProfile(s, timeline.Cases(
		func(S, interval.Interval) (LinearEquation, bool) {
			return ConstantEquation(1), true
		},
		func(acc LinearEquation, _ interval.Interval) (LinearEquation, bool) {
			return acc, true
		},
		func(_ S, acc LinearEquation, _ interval.Interval) (LinearEquation, bool) {
			return ConstantEquation(acc.InitialValue + 1), true
		},
	), LinearEquation.Equal))
}

// IntoWindows is true wherever at least one span is active.
func (s Spans[S]) IntoWindows() Windows {
	return windowsOf(CombineIntoProfile(s, timeline.Cases(
		func(S, interval.Interval) (bool, bool) {
			return true, true
		},
		func(bool, interval.Interval) (bool, bool) {
			return true, true
		},
		func(S, bool, interval.Interval) (bool, bool) {
			return true, true
		},
	), timeline.Equals[bool]))
}
