package timeline

import (
	"fmt"

	"github.com/NASA-AMMOS/aerie-sub004/interval"
)

// Segment binds a value to the interval over which it holds.
type Segment[V any] struct {
	Value    V
	Interval interval.Interval
}

func NewSegment[V any](v V, i interval.Interval) Segment[V] {
	return Segment[V]{Value: v, Interval: i}
}

// Bound clips the segment to bounds. The second value is false when nothing is left.
func (s Segment[V]) Bound(bounds interval.Interval) (Segment[V], bool) {
	i := s.Interval.Intersect(bounds)
	if i.IsEmpty() {
		return Segment[V]{}, false
	}

	return Segment[V]{Value: s.Value, Interval: i}, true
}

func (s Segment[V]) MapInterval(f func(interval.Interval) interval.Interval) Segment[V] {
	return Segment[V]{Value: s.Value, Interval: f(s.Interval)}
}

func (s Segment[V]) WithInterval(i interval.Interval) Segment[V] {
	return Segment[V]{Value: s.Value, Interval: i}
}

func (s Segment[V]) GetInterval() interval.Interval {
	return s.Interval
}

func (s Segment[V]) String() string {
	return fmt.Sprintf("%v: %v", s.Interval, s.Value)
}

// EqualFunc decides whether two values may be coalesced into one segment.
type EqualFunc[V any] func(a, b V) bool

func Equals[V comparable](a, b V) bool {
	return a == b
}
