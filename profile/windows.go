package profile

import (
	"context"

	"github.com/NASA-AMMOS/aerie-sub004/interval"
	"github.com/NASA-AMMOS/aerie-sub004/resource"
	"github.com/NASA-AMMOS/aerie-sub004/timeline"
)

// Windows is a boolean profile.
type Windows struct {
	Profile[bool]
}

func NewWindows(segments timeline.Timeline[timeline.Segment[bool]]) Windows {
	return Windows{New(segments)}
}

func windowsOf(p Profile[bool]) Windows {
	return Windows{p}
}

// WindowsValue holds b over whatever bounds it is asked for.
func WindowsValue(b bool) Windows {
	return windowsOf(Constant(b))
}

// WindowsOn is true on the given intervals and false everywhere else.
func WindowsOn(intervals ...interval.Interval) Windows {
	segments := make([]timeline.Segment[bool], 0, len(intervals))

	for _, i := range intervals {
		segments = append(segments, timeline.NewSegment(true, i))
	}

	return WindowsValue(false).SetProfile(windowsOf(FromSegments(segments...)))
}

func WindowsResource(fetcher resource.Fetcher, name string) Windows {
	return windowsOf(Resource[bool](fetcher, name, resource.DecodeBool, timeline.Equals[bool]))
}

func (w Windows) Kind() Kind {
	return KindWindows
}

func (w Windows) Not() Windows {
	return windowsOf(MapValues(w.Profile, func(s timeline.Segment[bool]) bool {
		return !s.Value
	}))
}

// And is false wherever either side is false, even if the other side has a gap there.
func (w Windows) And(o Windows) Windows {
	return windowsOf(Map2Values(w.Profile, o.Profile, timeline.Cases(
		falseDominates, falseDominates,
		func(l, r bool, _ interval.Interval) (bool, bool) {
			return l && r, true
		},
	), timeline.Equals[bool]))
}

// Or is true wherever either side is true, even if the other side has a gap there.
func (w Windows) Or(o Windows) Windows {
	return windowsOf(Map2Values(w.Profile, o.Profile, timeline.Cases(
		trueDominates, trueDominates,
		func(l, r bool, _ interval.Interval) (bool, bool) {
			return l || r, true
		},
	), timeline.Equals[bool]))
}

func falseDominates(v bool, _ interval.Interval) (bool, bool) {
	return false, !v
}

func trueDominates(v bool, _ interval.Interval) (bool, bool) {
	return true, v
}

// Add overlays o onto w.
func (w Windows) Add(o Windows) Windows {
	return w.SetProfile(o)
}

type durationOptions struct {
	tooShort func(d interval.Duration) bool
	tooLong  func(d interval.Duration) bool
}

type DurationOption func(o *durationOptions)

func MinDurationOption(limit interval.Duration) DurationOption {
	return func(o *durationOptions) {
		o.tooShort = func(d interval.Duration) bool {
			return d < limit
		}
	}
}

func MaxDurationOption(limit interval.Duration) DurationOption {
	return func(o *durationOptions) {
		o.tooLong = func(d interval.Duration) bool {
			return d > limit
		}
	}
}

// FalsifyByDuration turns true segments outside the duration limits false. A true segment cut by
// the query bounds may continue beyond them, so it is only falsified for being too long.
func (w Windows) FalsifyByDuration(options ...DurationOption) Windows {
	opts := &durationOptions{}

	for _, o := range options {
		o(opts)
	}

	return windowsOf(UnsafeFlatMap(w.Profile, func(s timeline.Segment[bool], bounds interval.Interval) ([]timeline.Segment[bool], error) {
		if !s.Value {
			return []timeline.Segment[bool]{s}, nil
		}

		d := s.Interval.Duration()
		cut := s.Interval.Start == bounds.Start || s.Interval.End == bounds.End

		if (opts.tooLong != nil && opts.tooLong(d)) || (!cut && opts.tooShort != nil && opts.tooShort(d)) {
			return []timeline.Segment[bool]{timeline.NewSegment(false, s.Interval)}, nil
		}

		return []timeline.Segment[bool]{s}, nil
	}, nil, timeline.Equals[bool]))
}

// ShorterThan keeps only true segments lasting less than d.
func (w Windows) ShorterThan(d interval.Duration) Windows {
	return w.FalsifyByDuration(func(o *durationOptions) {
		o.tooLong = func(x interval.Duration) bool {
			return x >= d
		}
	})
}

// LongerThan keeps only true segments lasting more than d.
func (w Windows) LongerThan(d interval.Duration) Windows {
	return w.FalsifyByDuration(func(o *durationOptions) {
		o.tooShort = func(x interval.Duration) bool {
			return x <= d
		}
	})
}

func (w Windows) Starts() Windows {
	return w.Transitions(false, true)
}

func (w Windows) Ends() Windows {
	return w.Transitions(true, false)
}

// AccumulatedDuration counts, in units of unit, how long w has been true since the query start.
func (w Windows) AccumulatedDuration(unit interval.Duration) (Real, error) {
	return realOf(MapValuesEx(w.Profile, func(s timeline.Segment[bool]) LinearEquation {
		if s.Value {
			return ConstantEquation(1)
		}

		return ConstantEquation(0)
	}, LinearEquation.Equal)).Integrate(unit)
}

// HighlightTrue returns the intervals on which w is true.
func (w Windows) HighlightTrue() Spans[interval.Interval] {
	return NewSpans[interval.Interval](timeline.Func[interval.Interval](func(ctx context.Context, bounds interval.Interval) ([]interval.Interval, error) {
		segments, err := w.Collect(ctx, bounds)
		if err != nil {
			return nil, err
		}

		result := make([]interval.Interval, 0, len(segments))

		for _, s := range segments {
			if s.Value {
				result = append(result, s.Interval)
			}
		}

		return result, nil
	}))
}

func (w Windows) Set(v bool, i interval.Interval) Windows {
	return windowsOf(w.Profile.Set(v, i))
}

func (w Windows) SetProfile(o Windows) Windows {
	return windowsOf(w.Profile.SetProfile(o.Profile))
}

func (w Windows) AssignGaps(def Windows) Windows {
	return windowsOf(w.Profile.AssignGaps(def.Profile))
}

func (w Windows) Unset(i interval.Interval) Windows {
	return windowsOf(w.Profile.Unset(i))
}

func (w Windows) Filter(predicate func(s timeline.Segment[bool]) bool) Windows {
	return windowsOf(w.Profile.Filter(predicate))
}

func (w Windows) ShiftBy(d interval.Duration) Windows {
	return windowsOf(w.Profile.ShiftBy(d))
}

func (w Windows) Select(i interval.Interval) Windows {
	return windowsOf(w.Profile.Select(i))
}

func (w Windows) Inspect(f timeline.Inspector[timeline.Segment[bool]]) Windows {
	return windowsOf(w.Profile.Inspect(f))
}

func (w Windows) Cache(options ...timeline.CacheOption) Windows {
	return windowsOf(w.Profile.Cache(options...))
}
