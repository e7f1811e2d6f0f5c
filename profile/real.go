package profile

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/NASA-AMMOS/aerie-sub004/interval"
	"github.com/NASA-AMMOS/aerie-sub004/resource"
	"github.com/NASA-AMMOS/aerie-sub004/timeline"
)

// Real is a piecewise-linear numeric profile.
type Real struct {
	Profile[LinearEquation]
}

func NewReal(segments timeline.Timeline[timeline.Segment[LinearEquation]]) Real {
	return realOf(NewWithEqual(segments, LinearEquation.Equal))
}

func realOf(p Profile[LinearEquation]) Real {
	return Real{p}
}

// RealValue holds v over whatever bounds it is asked for.
func RealValue(v float64) Real {
	return realOf(constant(ConstantEquation(v), LinearEquation.Equal))
}

func RealFromSegments(segments ...timeline.Segment[LinearEquation]) Real {
	return NewReal(timeline.Static(segments, LinearEquation.Equal))
}

// RealResource reads a resource whose values are either plain numbers or {initial, rate} maps
// anchored at the start of their sample.
func RealResource(fetcher resource.Fetcher, name string) Real {
	return realOf(Resource[LinearEquation](fetcher, name, decodeLinearEquation, LinearEquation.Equal))
}

func decodeLinearEquation(raw any, t interval.Duration) (LinearEquation, error) {
	if v, err := resource.DecodeFloat64(raw, t); err == nil {
		return ConstantEquation(v), nil
	}

	vs, err := resource.DecodeFields(raw, "initial", "rate")
	if err != nil {
		return LinearEquation{}, err
	}

	return NewLinearEquation(t, vs[0], vs[1]), nil
}

func (r Real) Kind() Kind {
	return KindReal
}

// NumberAt returns the numeric value at t.
func (r Real) NumberAt(ctx context.Context, t interval.Duration) (v float64, ok bool, err error) {
	e, ok, err := r.ValueAt(ctx, t)
	if err != nil || !ok {
		return
	}

	v = e.ValueAt(t)

	return
}

func (r Real) Plus(o Real) Real {
	return realOf(Map2Values(r.Profile, o.Profile, timeline.CombineOrUndefined(
		func(a, b LinearEquation, _ interval.Interval) (LinearEquation, bool) {
			return a.Plus(b), true
		}), LinearEquation.Equal))
}

func (r Real) Minus(o Real) Real {
	return realOf(Map2Values(r.Profile, o.Profile, timeline.CombineOrUndefined(
		func(a, b LinearEquation, _ interval.Interval) (LinearEquation, bool) {
			return a.Minus(b), true
		}), LinearEquation.Equal))
}

func (r Real) Negate() Real {
	return realOf(MapValuesEx(r.Profile, func(s timeline.Segment[LinearEquation]) LinearEquation {
		return s.Value.Negate()
	}, LinearEquation.Equal))
}

// Times fails on evaluation where both operands vary, since the product would be quadratic.
func (r Real) Times(o Real) Real {
	return map2Real(r, o, func(a, b LinearEquation) (LinearEquation, error) {
		switch {
		case a.IsConstant():
			return b.Scale(a.InitialValue), nil
		case b.IsConstant():
			return a.Scale(b.InitialValue), nil
		}

		return LinearEquation{}, ErrNonLinear
	})
}

// DividedBy fails on evaluation where the divisor varies or is zero.
func (r Real) DividedBy(o Real) Real {
	return map2Real(r, o, func(a, b LinearEquation) (LinearEquation, error) {
		if !b.IsConstant() {
			return LinearEquation{}, ErrNonLinear
		}

		if b.InitialValue == 0 {
			return LinearEquation{}, ErrDivisionByZero
		}

		return a.Scale(1 / b.InitialValue), nil
	})
}

// Pow fails on evaluation unless the result stays linear.
func (r Real) Pow(o Real) Real {
	return map2Real(r, o, func(a, b LinearEquation) (LinearEquation, error) {
		if !b.IsConstant() {
			return LinearEquation{}, ErrNonLinear
		}

		switch {
		case b.InitialValue == 0:
			return ConstantEquation(1), nil
		case b.InitialValue == 1:
			return a, nil
		case a.IsConstant():
			return ConstantEquation(math.Pow(a.InitialValue, b.InitialValue)), nil
		}

		return LinearEquation{}, ErrNonLinear
	})
}

// Root takes the n-th root; varying segments fail on evaluation.
func (r Real) Root(n int) (Real, error) {
	if n < 1 {
		return Real{}, fmt.Errorf("%w: root %d", ErrInvalidRoot, n)
	}

	return realOf(tryMapValues(r.Profile, func(s timeline.Segment[LinearEquation]) (LinearEquation, error) {
		if n == 1 {
			return s.Value, nil
		}

		if !s.Value.IsConstant() {
			return LinearEquation{}, ErrNonLinear
		}

		return ConstantEquation(math.Pow(s.Value.InitialValue, 1/float64(n))), nil
	}, LinearEquation.Equal)), nil
}

func (r Real) Sqrt() Real {
	root, _ := r.Root(2)

	return root
}

// Abs splits varying segments where they cross zero.
func (r Real) Abs() Real {
	return realOf(UnsafeFlatMap(r.Profile, func(s timeline.Segment[LinearEquation], _ interval.Interval) ([]timeline.Segment[LinearEquation], error) {
		result := make([]timeline.Segment[LinearEquation], 0, 2)

		for _, piece := range splitAtCrossing(s.Interval, s.Value, ConstantEquation(0)) {
			e := s.Value
			if piece.sign < 0 {
				e = e.Negate()
			}

			result = append(result, timeline.NewSegment(e, piece.interval))
		}

		return result, nil
	}, nil, LinearEquation.Equal))
}

// Rate is the derivative in units per second.
func (r Real) Rate() Real {
	return realOf(MapValuesEx(r.Profile, func(s timeline.Segment[LinearEquation]) LinearEquation {
		return ConstantEquation(s.Value.Rate)
	}, LinearEquation.Equal))
}

// Integrate accumulates a piecewise-constant profile from zero at the query start. A value v
// adds v every unit of time. The profile must cover the query without gaps.
func (r Real) Integrate(unit interval.Duration) (Real, error) {
	if unit <= 0 {
		return Real{}, ErrInvalidUnit
	}

	scale := float64(time.Second) / float64(unit)

	return NewReal(timeline.Func[timeline.Segment[LinearEquation]](func(ctx context.Context, bounds interval.Interval) ([]timeline.Segment[LinearEquation], error) {
		if bounds.IsEmpty() {
			return nil, nil
		}

		segments, err := r.Collect(ctx, bounds)
		if err != nil {
			return nil, err
		}

		if len(segments) == 0 || bounds.CompareStarts(segments[0].Interval) != 0 ||
			bounds.CompareEnds(segments[len(segments)-1].Interval) != 0 {
			return nil, fmt.Errorf("%w: integrating over %v", ErrGap, bounds)
		}

		result := make([]timeline.Segment[LinearEquation], 0, len(segments))
		acc := 0.0

		for idx, s := range segments {
			if !s.Value.IsConstant() {
				return nil, fmt.Errorf("%w: %v at %v", ErrNotPiecewiseConstant, s.Value, s.Interval)
			}

			if idx > 0 && segments[idx-1].Interval.CompareEndToStart(s.Interval) != 0 {
				return nil, fmt.Errorf("%w: before %v", ErrGap, s.Interval)
			}

			result = append(result, timeline.NewSegment(
				NewLinearEquation(s.Interval.Start, acc, s.Value.InitialValue*scale), s.Interval))

			acc += s.Value.InitialValue * (float64(s.Interval.End) - float64(s.Interval.Start)) / float64(unit)
		}

		return timeline.Coalesce(result, LinearEquation.Equal), nil
	})), nil
}

// Compare is true wherever cmp accepts the sign of r - o (-1, 0 or 1). Varying segments are split
// at the instant the operands cross.
func (r Real) Compare(o Real, cmp func(sign int) bool) Windows {
	type pair struct {
		l, r LinearEquation
	}

	return windowsOf(UnsafeMap2(r.Profile, o.Profile,
		func(ls []timeline.Segment[LinearEquation], rs []timeline.Segment[LinearEquation], _ interval.Interval) ([]timeline.Segment[bool], error) {
			pairs := timeline.Map2Arrays(ls, rs, timeline.CombineOrUndefined(
				func(a, b LinearEquation, _ interval.Interval) (pair, bool) {
					return pair{a, b}, true
				}), func(a, b pair) bool {
				return a.l.Equal(b.l) && a.r.Equal(b.r)
			})

			result := make([]timeline.Segment[bool], 0, len(pairs))

			for _, p := range pairs {
				for _, piece := range splitAtCrossing(p.Interval, p.Value.l, p.Value.r) {
					result = append(result, timeline.NewSegment(cmp(piece.sign), piece.interval))
				}
			}

			return result, nil
		}, nil, timeline.Equals[bool]))
}

func (r Real) LessThan(o Real) Windows {
	return r.Compare(o, func(sign int) bool { return sign < 0 })
}

func (r Real) LessThanOrEqual(o Real) Windows {
	return r.Compare(o, func(sign int) bool { return sign <= 0 })
}

func (r Real) GreaterThan(o Real) Windows {
	return r.Compare(o, func(sign int) bool { return sign > 0 })
}

func (r Real) GreaterThanOrEqual(o Real) Windows {
	return r.Compare(o, func(sign int) bool { return sign >= 0 })
}

func (r Real) EqualTo(o Real) Windows {
	return r.Compare(o, func(sign int) bool { return sign == 0 })
}

func (r Real) NotEqualTo(o Real) Windows {
	return r.Compare(o, func(sign int) bool { return sign != 0 })
}

// Changes is true at discontinuities and wherever the rate is nonzero.
func (r Real) Changes() Windows {
	edges := r.Edges(timeline.Cases(
		func(LinearEquation, interval.Interval) (bool, bool) {
			return false, false
		},
		func(LinearEquation, interval.Interval) (bool, bool) {
			return false, false
		},
		func(a, b LinearEquation, i interval.Interval) (bool, bool) {
			return a.Rate != 0 || b.Rate != 0 || !floatEqual(a.ValueAt(i.Start), b.ValueAt(i.Start)), true
		},
	))

	varying := windowsOf(MapValues(r.Profile, func(s timeline.Segment[LinearEquation]) bool {
		return !s.Value.IsConstant()
	}))

	return windowsOf(Map2Values(edges.Profile, varying.Profile, timeline.CombineOrIdentity(
		func(a, b bool, _ interval.Interval) (bool, bool) {
			return a || b, true
		}), timeline.Equals[bool]))
}

// ShiftBy moves the profile d later in time, equations included.
func (r Real) ShiftBy(d interval.Duration) Real {
	return realOf(UnsafeMap(r.Profile, func(s timeline.Segment[LinearEquation]) timeline.Segment[LinearEquation] {
		e := s.Value
		e.InitialTime += d

		return timeline.NewSegment(e, s.Interval.ShiftBy(d))
	}, shiftBounds(d), LinearEquation.Equal))
}

func (r Real) Set(e LinearEquation, i interval.Interval) Real {
	return realOf(r.Profile.Set(e, i))
}

func (r Real) SetProfile(o Real) Real {
	return realOf(r.Profile.SetProfile(o.Profile))
}

func (r Real) AssignGaps(def Real) Real {
	return realOf(r.Profile.AssignGaps(def.Profile))
}

func (r Real) Unset(i interval.Interval) Real {
	return realOf(r.Profile.Unset(i))
}

func (r Real) Filter(predicate func(s timeline.Segment[LinearEquation]) bool) Real {
	return realOf(r.Profile.Filter(predicate))
}

func (r Real) Select(i interval.Interval) Real {
	return realOf(r.Profile.Select(i))
}

func (r Real) Inspect(f timeline.Inspector[timeline.Segment[LinearEquation]]) Real {
	return realOf(r.Profile.Inspect(f))
}

func (r Real) Cache(options ...timeline.CacheOption) Real {
	return realOf(r.Profile.Cache(options...))
}

func map2Real(l, r Real, f func(a, b LinearEquation) (LinearEquation, error)) Real {
	return realOf(UnsafeMap2(l.Profile, r.Profile,
		func(ls []timeline.Segment[LinearEquation], rs []timeline.Segment[LinearEquation], _ interval.Interval) ([]timeline.Segment[LinearEquation], error) {
			var err error

			result := timeline.Map2Arrays(ls, rs, timeline.CombineOrUndefined(
				func(a, b LinearEquation, i interval.Interval) (LinearEquation, bool) {
					if err != nil {
						return LinearEquation{}, false
					}

					v, e := f(a, b)
					if e != nil {
						err = fmt.Errorf("%w at %v", e, i)

						return LinearEquation{}, false
					}

					return v, true
				}), LinearEquation.Equal)
			if err != nil {
				return nil, err
			}

			return result, nil
		}, nil, LinearEquation.Equal))
}

type signedPiece struct {
	interval interval.Interval
	sign     int
}

// splitAtCrossing cuts i where l and r cross and reports the sign of l - r on every piece.
func splitAtCrossing(i interval.Interval, l, r LinearEquation) []signedPiece {
	diff := l.Minus(r)

	if diff.IsConstant() {
		return []signedPiece{{interval: i, sign: signOf(diff.InitialValue)}}
	}

	tc, _ := diff.Intersection(ConstantEquation(0))
	after := 1

	if diff.Rate < 0 {
		after = -1
	}

	candidates := []signedPiece{
		{interval: interval.Between(i.Start, tc, i.StartInclusivity, interval.Exclusive), sign: -after},
		{interval: interval.At(tc), sign: 0},
		{interval: interval.Between(tc, i.End, interval.Exclusive, i.EndInclusivity), sign: after},
	}

	result := make([]signedPiece, 0, len(candidates))

	for _, c := range candidates {
		c.interval = c.interval.Intersect(i)
		if !c.interval.IsEmpty() {
			result = append(result, c)
		}
	}

	return result
}

func signOf(v float64) int {
	switch {
	case floatEqual(v, 0):
		return 0
	case v < 0:
		return -1
	default:
		return 1
	}
}
