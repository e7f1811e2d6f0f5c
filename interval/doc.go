/*
Package interval implements ranges over a signed duration axis whose endpoints are independently
inclusive or exclusive.

The ordering helpers CompareStarts, CompareEnds and CompareEndToStart agree with Intersect, Union
and Subtract; the merge algorithms in package timeline rely on that agreement.

An Interval is never invalid. Reversed or degenerate ranges are simply empty:

	interval.Between(5*time.Minute, 5*time.Minute, interval.Inclusive, interval.Exclusive).IsEmpty() // true
*/
package interval
