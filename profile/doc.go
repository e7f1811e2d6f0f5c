/*
Package profile implements lazily evaluated, time-indexed piecewise data.

A Profile[V] is a segment timeline together with the equality used to coalesce its values.
Windows (booleans) and Real (piecewise-linear numbers) are distinct types built on Profile, so a
boolean profile can never be mistaken for a numeric one. Spans[S] holds interval-bearing values
that may overlap and are never coalesced.

Nothing is computed until Collect is called with query bounds. Every combinator returns a new
value and leaves its inputs untouched:

	on := profile.WindowsOn(interval.BetweenClosedOpen(0, 5*time.Minute))
	busy := profile.NewWindows(fetched).And(on.Not())
	segments, err := busy.Collect(ctx, interval.BetweenClosedOpen(0, time.Hour))

Evaluation fails with ErrMultipleValues and timeline.ErrUnsortable when a timeline breaks the
ordering contract, and with errors wrapping commerr.ErrInvalidArgument (ErrNonLinear,
ErrNotPiecewiseConstant, ErrGap, ErrSplit) when the data cannot support an operation.
*/
package profile
