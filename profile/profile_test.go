package profile

import (
	"context"
	"testing"
	"time"

	"github.com/NASA-AMMOS/aerie-sub004/interval"
	"github.com/NASA-AMMOS/aerie-sub004/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const s = time.Second

func co(start, end interval.Duration) interval.Interval {
	return interval.BetweenClosedOpen(start, end)
}

func open(start, end interval.Duration) interval.Interval {
	return interval.Between(start, end, interval.Exclusive, interval.Exclusive)
}

func seg[V any](v V, start, end interval.Duration) timeline.Segment[V] {
	return timeline.NewSegment(v, co(start, end))
}

func TestCollectClipsToBounds(t *testing.T) {
	p := FromSegments(seg(1, 0, 10*s), seg(2, 10*s, 20*s))

	got, err := p.Collect(context.Background(), co(5*s, 15*s))
	require.Nil(t, err)
	assert.Equal(t, []timeline.Segment[int]{seg(1, 5*s, 10*s), seg(2, 10*s, 15*s)}, got)
}

func TestSetUnsetValueAt(t *testing.T) {
	ctx := context.Background()
	p := FromSegments(seg(1, 0, 20*s)).Set(7, co(5*s, 10*s))

	got, err := p.Collect(ctx, co(0, 20*s))
	require.Nil(t, err)
	assert.Equal(t, []timeline.Segment[int]{seg(1, 0, 5*s), seg(7, 5*s, 10*s), seg(1, 10*s, 20*s)}, got)

	v, ok, err := p.ValueAt(ctx, 7*s)
	require.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok, err = p.ValueAt(ctx, 30*s)
	require.Nil(t, err)
	assert.False(t, ok)

	got, err = p.Unset(co(5*s, 10*s)).Collect(ctx, co(0, 20*s))
	require.Nil(t, err)
	assert.Equal(t, []timeline.Segment[int]{seg(1, 0, 5*s), seg(1, 10*s, 20*s)}, got)
}

func TestValueAtMultipleValues(t *testing.T) {
	p := New[int](timeline.Func[timeline.Segment[int]](func(context.Context, interval.Interval) ([]timeline.Segment[int], error) {
		return []timeline.Segment[int]{seg(1, 0, 10*s), seg(2, 0, 10*s)}, nil
	}))

	_, _, err := p.ValueAt(context.Background(), 5*s)
	assert.ErrorIs(t, err, ErrMultipleValues)
}

func TestShiftBySelect(t *testing.T) {
	ctx := context.Background()
	p := FromSegments(seg("a", 0, 10*s))

	got, err := p.ShiftBy(5*s).Collect(ctx, co(0, 20*s))
	require.Nil(t, err)
	assert.Equal(t, []timeline.Segment[string]{seg("a", 5*s, 15*s)}, got)

	got, err = p.Select(co(2*s, 4*s)).Collect(ctx, co(0, 20*s))
	require.Nil(t, err)
	assert.Equal(t, []timeline.Segment[string]{seg("a", 2*s, 4*s)}, got)

	got, err = p.Select(co(30*s, 40*s)).Collect(ctx, co(0, 20*s))
	require.Nil(t, err)
	assert.Empty(t, got)
}

func TestMapValuesFilter(t *testing.T) {
	ctx := context.Background()
	p := FromSegments(seg(1, 0, 5*s), seg(2, 5*s, 10*s), seg(3, 10*s, 15*s))

	odd, err := MapValues(p, func(s timeline.Segment[int]) bool {
		return s.Value%2 == 1
	}).Collect(ctx, co(0, 15*s))
	require.Nil(t, err)
	assert.Equal(t, []timeline.Segment[bool]{seg(true, 0, 5*s), seg(false, 5*s, 10*s), seg(true, 10*s, 15*s)}, odd)

	same, err := MapValues(p, func(timeline.Segment[int]) string {
		return "x"
	}).Collect(ctx, co(0, 15*s))
	require.Nil(t, err)
	assert.Equal(t, []timeline.Segment[string]{seg("x", 0, 15*s)}, same)

	got, err := p.Filter(func(s timeline.Segment[int]) bool {
		return s.Value != 2
	}).Collect(ctx, co(0, 15*s))
	require.Nil(t, err)
	assert.Equal(t, []timeline.Segment[int]{seg(1, 0, 5*s), seg(3, 10*s, 15*s)}, got)
}

func TestAssignGaps(t *testing.T) {
	got, err := FromSegments(seg(1, 5*s, 10*s)).AssignGaps(Constant(0)).Collect(context.Background(), co(0, 15*s))
	require.Nil(t, err)
	assert.Equal(t, []timeline.Segment[int]{seg(0, 0, 5*s), seg(1, 5*s, 10*s), seg(0, 10*s, 15*s)}, got)
}

func TestChangesAndTransitions(t *testing.T) {
	ctx := context.Background()
	p := FromSegments(seg("a", 0, 5*s), seg("b", 5*s, 10*s), seg("c", 12*s, 15*s))

	got, err := p.Changes().Collect(ctx, co(0, 15*s))
	require.Nil(t, err)
	assert.Equal(t, []timeline.Segment[bool]{
		seg(false, 0, 5*s),
		timeline.NewSegment(true, interval.At(5*s)),
		timeline.NewSegment(false, open(5*s, 10*s)),
		timeline.NewSegment(false, open(12*s, 15*s)),
	}, got)

	got, err = p.Transitions("a", "b").Collect(ctx, co(0, 15*s))
	require.Nil(t, err)
	assert.Equal(t, []timeline.Segment[bool]{
		seg(false, 0, 5*s),
		timeline.NewSegment(true, interval.At(5*s)),
		timeline.NewSegment(false, interval.Between(5*s, 10*s, interval.Exclusive, interval.Inclusive)),
		seg(false, 12*s, 15*s),
	}, got)
}

func TestMap2ValuesConcurrentInputs(t *testing.T) {
	left := FromSegments(seg(1, 0, 10*s))
	right := FromSegments(seg(10, 5*s, 15*s))

	sum := Map2Values(left, right, timeline.CombineOrIdentity(func(l, r int, _ interval.Interval) (int, bool) {
		return l + r, true
	}), timeline.Equals[int])

	got, err := sum.Collect(context.Background(), co(0, 20*s))
	require.Nil(t, err)
	assert.Equal(t, []timeline.Segment[int]{seg(1, 0, 5*s), seg(11, 5*s, 10*s), seg(10, 10*s, 15*s)}, got)
}

func TestCacheAndInspect(t *testing.T) {
	ctx := context.Background()
	calls := 0

	p := FromSegments(seg(1, 0, 10*s)).Inspect(func(interval.Interval, []timeline.Segment[int]) {
		calls++
	}).Cache()

	for i := 0; i < 3; i++ {
		got, err := p.Collect(ctx, co(0, 5*s))
		require.Nil(t, err)
		assert.Equal(t, []timeline.Segment[int]{seg(1, 0, 5*s)}, got)
	}

	assert.Equal(t, 1, calls)
}

func TestKinds(t *testing.T) {
	assert.Equal(t, KindOther, Constant(1).Kind())
	assert.Equal(t, KindWindows, WindowsValue(true).Kind())
	assert.Equal(t, KindReal, RealValue(1).Kind())
	assert.Equal(t, "Real", KindReal.String())
}
