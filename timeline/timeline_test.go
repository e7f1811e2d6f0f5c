package timeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/NASA-AMMOS/aerie-sub004/interval"
	"github.com/sgostarter/i/l"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticClipsToBounds(t *testing.T) {
	tl := Static([]Segment[int]{seg(2, 5*s, 15*s), seg(1, 0, 5*s)}, Equals[int])

	bounds := interval.Between(2*s, 10*s, interval.Exclusive, interval.Inclusive)
	got, err := tl.Evaluate(context.Background(), bounds)
	require.Nil(t, err)
	assert.Equal(t, []Segment[int]{
		NewSegment(1, interval.Between(2*s, 5*s, interval.Exclusive, interval.Exclusive)),
		NewSegment(2, interval.BetweenClosed(5*s, 10*s)),
	}, got)

	for _, segment := range got {
		assert.True(t, bounds.Contains(segment.Interval))
	}
}

func TestMapAndFlatMap(t *testing.T) {
	tl := Static([]Segment[int]{seg(1, 0, 5*s), seg(2, 5*s, 10*s)}, Equals[int])

	doubled := Map[Segment[int], Segment[int]](tl, func(v Segment[int], _ interval.Interval) (Segment[int], error) {
		return NewSegment(v.Value*2, v.Interval), nil
	}, nil)

	got, err := doubled.Evaluate(context.Background(), interval.BetweenClosedOpen(0, 10*s))
	require.Nil(t, err)
	assert.Equal(t, []Segment[int]{seg(2, 0, 5*s), seg(4, 5*s, 10*s)}, got)

	boom := errors.New("boom")
	failing := FlatMap[Segment[int], Segment[int]](tl, func(Segment[int], interval.Interval) ([]Segment[int], error) {
		return nil, boom
	}, nil)

	_, err = failing.Evaluate(context.Background(), interval.BetweenClosedOpen(0, 10*s))
	assert.ErrorIs(t, err, boom)
}

func TestMapBoundsRemap(t *testing.T) {
	var seen interval.Interval

	tl := Func[int](func(_ context.Context, bounds interval.Interval) ([]int, error) {
		seen = bounds

		return []int{1}, nil
	})

	shifted := Map[int, int](tl, func(v int, _ interval.Interval) (int, error) {
		return v, nil
	}, func(bounds interval.Interval) interval.Interval {
		return bounds.ShiftBy(-time.Minute)
	})

	_, err := shifted.Evaluate(context.Background(), interval.BetweenClosed(time.Minute, 2*time.Minute))
	require.Nil(t, err)
	assert.Equal(t, interval.BetweenClosed(0, time.Minute), seen)
}

func TestMap2EvaluatesConcurrently(t *testing.T) {
	var wg sync.WaitGroup

	wg.Add(2)

	waiting := func(v int) Timeline[Segment[int]] {
		return Func[Segment[int]](func(ctx context.Context, bounds interval.Interval) ([]Segment[int], error) {
			wg.Done()
			wg.Wait()

			return []Segment[int]{NewSegment(v, bounds)}, nil
		})
	}

	merged := Map2Segments(waiting(1), waiting(2), CombineOrIdentity(func(l, r int, _ interval.Interval) (int, bool) {
		return l + r, true
	}), Equals[int])

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := merged.Evaluate(ctx, interval.BetweenClosedOpen(0, s))
	require.Nil(t, err)
	assert.Equal(t, []Segment[int]{seg(3, 0, s)}, got)
}

func TestMap2PropagatesFailure(t *testing.T) {
	boom := errors.New("fetch failed")

	failing := Func[Segment[int]](func(context.Context, interval.Interval) ([]Segment[int], error) {
		return nil, boom
	})

	merged := Map2Segments(Static([]Segment[int]{seg(1, 0, s)}, Equals[int]), failing, Overlay[int](), Equals[int])

	_, err := merged.Evaluate(context.Background(), interval.BetweenClosedOpen(0, s))
	assert.ErrorIs(t, err, boom)
}

func TestFlatMap2(t *testing.T) {
	left := Static([]Segment[int]{seg(1, 0, 2*s)}, Equals[int])
	right := Static([]Segment[int]{seg(5, 1*s, 3*s)}, Equals[int])

	tl := FlatMap2(left, right, func(l []Segment[int], r []Segment[int], _ interval.Interval) (Timeline[Segment[int]], error) {
		return Static(append(append([]Segment[int]{}, l...), r...), Equals[int]), nil
	}, nil)

	got, err := tl.Evaluate(context.Background(), interval.BetweenClosedOpen(0, 3*s))
	require.Nil(t, err)
	assert.Equal(t, []Segment[int]{seg(1, 0, 1*s), seg(5, 1*s, 3*s)}, got)
}

func TestCacheRemembersBounds(t *testing.T) {
	var calls int32

	tl := Func[Segment[int]](func(_ context.Context, bounds interval.Interval) ([]Segment[int], error) {
		atomic.AddInt32(&calls, 1)

		return []Segment[int]{NewSegment(1, bounds)}, nil
	})

	cached := Cache[Segment[int]](tl, CacheLoggerOption(l.NewNopLoggerWrapper()))

	for i := 0; i < 3; i++ {
		got, err := cached.Evaluate(context.Background(), interval.BetweenClosedOpen(0, s))
		require.Nil(t, err)
		assert.Equal(t, []Segment[int]{seg(1, 0, s)}, got)

		got[0].Value = 100
	}

	_, err := cached.Evaluate(context.Background(), interval.BetweenClosed(0, s))
	require.Nil(t, err)

	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
	assert.Equal(t, 2, cached.Len())

	cached.Flush()
	assert.Equal(t, 0, cached.Len())
}

func TestCacheDoesNotRememberFailures(t *testing.T) {
	var calls int32

	boom := errors.New("boom")

	tl := Func[int](func(context.Context, interval.Interval) ([]int, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, boom
		}

		return []int{1}, nil
	})

	cached := Cache[int](tl)

	_, err := cached.Evaluate(context.Background(), interval.At(0))
	assert.ErrorIs(t, err, boom)

	got, err := cached.Evaluate(context.Background(), interval.At(0))
	assert.Nil(t, err)
	assert.Equal(t, []int{1}, got)
}

func TestCacheSharedEvaluationSurvivesCancel(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	tl := Func[int](func(ctx context.Context, _ interval.Interval) ([]int, error) {
		close(started)
		<-release

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		return []int{1}, nil
	})

	cached := Cache[int](tl)

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)

	go func() {
		_, err := cached.Evaluate(firstCtx, interval.At(0))
		firstErr <- err
	}()

	<-started

	type result struct {
		ts  []int
		err error
	}

	second := make(chan result, 1)

	go func() {
		ts, err := cached.Evaluate(context.Background(), interval.At(0))
		second <- result{ts, err}
	}()

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)

	r := <-second
	require.Nil(t, r.err)
	assert.Equal(t, []int{1}, r.ts)
}

func TestInspect(t *testing.T) {
	var counts []int

	tl := Inspect(Static([]Segment[int]{seg(1, 0, s), seg(2, 2*s, 3*s)}, Equals[int]),
		func(_ interval.Interval, ts []Segment[int]) {
			counts = append(counts, len(ts))
		})

	logged := Inspect(tl, LogInspector[Segment[int]](nil, "ut"))

	_, err := logged.Evaluate(context.Background(), interval.BetweenClosedOpen(0, 3*s))
	require.Nil(t, err)
	_, err = logged.Evaluate(context.Background(), interval.BetweenClosedOpen(0, s))
	require.Nil(t, err)

	assert.Equal(t, []int{2, 1}, counts)
}
