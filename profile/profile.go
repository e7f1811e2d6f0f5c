package profile

import (
	"context"
	"fmt"

	"github.com/NASA-AMMOS/aerie-sub004/interval"
	"github.com/NASA-AMMOS/aerie-sub004/resource"
	"github.com/NASA-AMMOS/aerie-sub004/timeline"
)

// Kind names the shape of a profile's values.
type Kind int

const (
	KindOther Kind = iota
	KindWindows
	KindReal
)

func (k Kind) String() string {
	switch k {
	case KindWindows:
		return "Windows"
	case KindReal:
		return "Real"
	default:
		return "Other"
	}
}

// Profile is a lazily evaluated, coalesced segment timeline.
type Profile[V any] struct {
	segments timeline.Timeline[timeline.Segment[V]]
	equal    timeline.EqualFunc[V]
}

func New[V comparable](segments timeline.Timeline[timeline.Segment[V]]) Profile[V] {
	return NewWithEqual(segments, timeline.Equals[V])
}

func NewWithEqual[V any](segments timeline.Timeline[timeline.Segment[V]], equal timeline.EqualFunc[V]) Profile[V] {
	return Profile[V]{
		segments: segments,
		equal:    equal,
	}
}

// Constant holds v over whatever bounds it is asked for.
func Constant[V comparable](v V) Profile[V] {
	return constant(v, timeline.Equals[V])
}

func constant[V any](v V, equal timeline.EqualFunc[V]) Profile[V] {
	return NewWithEqual[V](timeline.Func[timeline.Segment[V]](func(_ context.Context, bounds interval.Interval) ([]timeline.Segment[V], error) {
		if bounds.IsEmpty() {
			return nil, nil
		}

		return []timeline.Segment[V]{timeline.NewSegment(v, bounds)}, nil
	}), equal)
}

func FromSegments[V comparable](segments ...timeline.Segment[V]) Profile[V] {
	return NewWithEqual(timeline.Static(segments, timeline.Equals[V]), timeline.Equals[V])
}

func Empty[V comparable]() Profile[V] {
	return New(timeline.Empty[timeline.Segment[V]]())
}

// Resource reads the named resource through fetcher on every evaluation.
func Resource[V any](fetcher resource.Fetcher, name string, decode resource.Decoder[V],
	equal timeline.EqualFunc[V]) Profile[V] {
	return NewWithEqual(resource.Segments(fetcher, name, decode, equal), equal)
}

func (p Profile[V]) Segments() timeline.Timeline[timeline.Segment[V]] {
	return p.segments
}

func (p Profile[V]) EqualFunc() timeline.EqualFunc[V] {
	return p.equal
}

func (p Profile[V]) Kind() Kind {
	return KindOther
}

func (p Profile[V]) Collect(ctx context.Context, bounds interval.Interval) ([]timeline.Segment[V], error) {
	return p.segments.Evaluate(ctx, bounds)
}

// ValueAt returns the value held at t. The second value is false where the profile has a gap.
func (p Profile[V]) ValueAt(ctx context.Context, t interval.Duration) (v V, ok bool, err error) {
	segments, err := p.Collect(ctx, interval.At(t))
	if err != nil {
		return
	}

	switch len(segments) {
	case 0:
		return
	case 1:
		v, ok = segments[0].Value, true
	default:
		err = fmt.Errorf("%w: %d segments at %v", ErrMultipleValues, len(segments), t)
	}

	return
}

// Set overlays v on i.
func (p Profile[V]) Set(v V, i interval.Interval) Profile[V] {
	return p.SetProfile(NewWithEqual(timeline.Static([]timeline.Segment[V]{timeline.NewSegment(v, i)}, p.equal), p.equal))
}

// SetProfile overlays o: wherever o has a value, it wins.
func (p Profile[V]) SetProfile(o Profile[V]) Profile[V] {
	return Map2Values(p, o, timeline.Overlay[V](), p.equal)
}

// AssignGaps fills the gaps of p with def.
func (p Profile[V]) AssignGaps(def Profile[V]) Profile[V] {
	return def.SetProfile(p)
}

// Unset removes i from every segment.
func (p Profile[V]) Unset(i interval.Interval) Profile[V] {
	return UnsafeFlatMap(p, func(s timeline.Segment[V], _ interval.Interval) ([]timeline.Segment[V], error) {
		pieces := s.Interval.Subtract(i)
		result := make([]timeline.Segment[V], 0, len(pieces))

		for _, piece := range pieces {
			result = append(result, s.WithInterval(piece))
		}

		return result, nil
	}, nil, p.equal)
}

func (p Profile[V]) Filter(predicate func(s timeline.Segment[V]) bool) Profile[V] {
	return UnsafeFlatMap(p, func(s timeline.Segment[V], _ interval.Interval) ([]timeline.Segment[V], error) {
		if predicate(s) {
			return []timeline.Segment[V]{s}, nil
		}

		return nil, nil
	}, nil, p.equal)
}

// ShiftBy moves the profile d later in time.
func (p Profile[V]) ShiftBy(d interval.Duration) Profile[V] {
	return UnsafeMap(p, func(s timeline.Segment[V]) timeline.Segment[V] {
		return s.WithInterval(s.Interval.ShiftBy(d))
	}, shiftBounds(d), p.equal)
}

func shiftBounds(d interval.Duration) timeline.BoundsMap {
	return func(bounds interval.Interval) interval.Interval {
		return bounds.ShiftBy(-d)
	}
}

// Select restricts the profile to i.
func (p Profile[V]) Select(i interval.Interval) Profile[V] {
	return NewWithEqual(selectTimeline(p.segments, i), p.equal)
}

func selectTimeline[T any](tl timeline.Timeline[T], i interval.Interval) timeline.Timeline[T] {
	return timeline.Func[T](func(ctx context.Context, bounds interval.Interval) ([]T, error) {
		b := bounds.Intersect(i)
		if b.IsEmpty() {
			return nil, nil
		}

		return tl.Evaluate(ctx, b)
	})
}

// Inspect calls f with every evaluation result.
func (p Profile[V]) Inspect(f timeline.Inspector[timeline.Segment[V]]) Profile[V] {
	return NewWithEqual(timeline.Inspect(p.segments, f), p.equal)
}

// Cache memoizes evaluations by query bounds.
func (p Profile[V]) Cache(options ...timeline.CacheOption) Profile[V] {
	return NewWithEqual[V](timeline.Cache(p.segments, options...), p.equal)
}

// IntoSpans reinterprets the segments as spans.
func (p Profile[V]) IntoSpans() Spans[timeline.Segment[V]] {
	return NewSpans(p.segments)
}
