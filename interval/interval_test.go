package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntervalIsEmpty(t *testing.T) {
	tests := []struct {
		id   int
		i    Interval
		want bool
	}{
		{1, BetweenClosed(0, time.Minute), false},
		{2, At(time.Minute), false},
		{3, Between(time.Minute, time.Minute, Inclusive, Exclusive), true},
		{4, Between(time.Minute, time.Minute, Exclusive, Inclusive), true},
		{5, BetweenClosed(time.Minute, 0), true},
		{6, Interval{}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.i.IsEmpty(), "test %d", tt.id)
	}
}

func TestIntervalIntersectSubtract(t *testing.T) {
	a := BetweenClosed(0, 10*time.Minute)
	b := Between(5*time.Minute, 15*time.Minute, Exclusive, Inclusive)

	assert.Equal(t, Between(5*time.Minute, 10*time.Minute, Exclusive, Inclusive), a.Intersect(b))
	assert.Equal(t, []Interval{BetweenClosed(0, 5*time.Minute)}, a.Subtract(b))
	assert.Equal(t, "[0s, 10m0s]", a.String())
	assert.Equal(t, "(5m0s, 15m0s]", b.String())
}

func TestIntervalIntersectTies(t *testing.T) {
	a := Between(0, time.Minute, Inclusive, Inclusive)
	b := Between(0, time.Minute, Exclusive, Exclusive)

	assert.Equal(t, b, a.Intersect(b))
	assert.Equal(t, b, b.Intersect(a))

	c := BetweenClosed(2*time.Minute, 3*time.Minute)
	assert.True(t, a.Intersect(c).IsEmpty())
}

func TestIntervalSubtractMiddle(t *testing.T) {
	a := BetweenClosedOpen(0, 10*time.Second)
	b := BetweenClosed(3*time.Second, 4*time.Second)

	assert.Equal(t, []Interval{
		BetweenClosedOpen(0, 3*time.Second),
		Between(4*time.Second, 10*time.Second, Exclusive, Exclusive),
	}, a.Subtract(b))

	assert.Nil(t, a.Subtract(BetweenClosed(-time.Second, 20*time.Second)))
	assert.Equal(t, []Interval{a}, a.Subtract(BetweenClosed(20*time.Second, 30*time.Second)))
}

func TestIntervalSubtractIntersectCoverage(t *testing.T) {
	s := time.Second
	as := []Interval{
		BetweenClosed(0, 10*s),
		BetweenClosedOpen(0, 10*s),
		Between(0, 10*s, Exclusive, Exclusive),
		At(5 * s),
	}
	bs := []Interval{
		Between(5*s, 15*s, Exclusive, Inclusive),
		BetweenClosed(2*s, 3*s),
		At(0),
		BetweenClosedOpen(-5*s, 5*s),
		At(5 * s),
	}

	for _, a := range as {
		for _, b := range bs {
			pieces := append(a.Subtract(b), a.Intersect(b))

			var covered []Interval

			for _, p := range pieces {
				if !p.IsEmpty() {
					covered = append(covered, p)
				}
			}

			for x := -1 * s; x <= 11*s; x += s / 2 {
				n := 0

				for _, p := range covered {
					if p.ContainsTime(x) {
						n++
					}
				}

				if a.ContainsTime(x) {
					assert.Equal(t, 1, n, "%v - %v at %v", a, b, x)
				} else {
					assert.Equal(t, 0, n, "%v - %v at %v", a, b, x)
				}
			}
		}
	}
}

func TestIntervalUnion(t *testing.T) {
	s := time.Second

	u, ok := BetweenClosedOpen(0, 5*s).Union(BetweenClosedOpen(5*s, 8*s))
	assert.True(t, ok)
	assert.Equal(t, BetweenClosedOpen(0, 8*s), u)

	u, ok = BetweenClosedOpen(3*s, 8*s).Union(BetweenClosed(0, 5*s))
	assert.True(t, ok)
	assert.Equal(t, BetweenClosedOpen(0, 8*s), u)

	_, ok = BetweenClosedOpen(0, 5*s).Union(Between(5*s, 8*s, Exclusive, Exclusive))
	assert.False(t, ok)

	_, ok = BetweenClosed(0, 4*s).Union(BetweenClosed(5*s, 8*s))
	assert.False(t, ok)

	u, ok = BetweenClosed(5*s, 1*s).Union(At(3 * s))
	assert.True(t, ok)
	assert.Equal(t, At(3*s), u)
}

func TestIntervalCompareEndToStart(t *testing.T) {
	s := time.Second
	tests := []struct {
		id   int
		x    Interval
		y    Interval
		want int
	}{
		{1, BetweenClosed(0, 1*s), BetweenClosed(2*s, 3*s), -1},
		{2, BetweenClosedOpen(0, 2*s), BetweenClosed(2*s, 3*s), 0},
		{3, BetweenClosed(0, 2*s), Between(2*s, 3*s, Exclusive, Inclusive), 0},
		{4, BetweenClosed(0, 2*s), BetweenClosed(2*s, 3*s), 1},
		{5, BetweenClosedOpen(0, 2*s), Between(2*s, 3*s, Exclusive, Inclusive), -1},
		{6, BetweenClosed(0, 5*s), BetweenClosed(2*s, 3*s), 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.x.CompareEndToStart(tt.y), "test %d", tt.id)
	}
}

func TestIntervalCompareStartsEnds(t *testing.T) {
	s := time.Second
	closed := BetweenClosed(0, s)
	open := Between(0, s, Exclusive, Exclusive)

	assert.Equal(t, -1, closed.CompareStarts(open))
	assert.Equal(t, 1, open.CompareStarts(closed))
	assert.Equal(t, 0, closed.CompareStarts(closed))
	assert.Equal(t, 1, closed.CompareEnds(open))
	assert.Equal(t, -1, open.CompareEnds(closed))
	assert.Equal(t, -1, closed.CompareStarts(BetweenClosed(s, 2*s)))
}

func TestIntervalContains(t *testing.T) {
	s := time.Second
	i := BetweenClosedOpen(0, 10*s)

	assert.True(t, i.ContainsTime(0))
	assert.True(t, i.ContainsTime(9*s))
	assert.False(t, i.ContainsTime(10*s))
	assert.True(t, i.Contains(BetweenClosedOpen(2*s, 10*s)))
	assert.False(t, i.Contains(BetweenClosed(2*s, 10*s)))
	assert.True(t, i.Contains(BetweenClosed(20*s, 10*s)))
}

func TestIntervalShiftBy(t *testing.T) {
	s := time.Second
	i := BetweenClosedOpen(0, 10*s)

	assert.Equal(t, BetweenClosedOpen(5*s, 15*s), i.ShiftBy(5*s))
	assert.Equal(t, BetweenClosedOpen(-1*s, 12*s), i.ShiftBy(-1*s, 2*s))
	assert.Equal(t, Forever, Forever.ShiftBy(time.Hour))
	assert.Equal(t, 10*s, i.Duration())
}

func TestIntervalEqual(t *testing.T) {
	assert.True(t, BetweenClosed(2, 1).Equal(Between(0, 0, Exclusive, Exclusive)))
	assert.False(t, BetweenClosed(0, 1).Equal(BetweenClosedOpen(0, 1)))
	assert.True(t, At(3).Equal(BetweenClosed(3, 3)))
}
