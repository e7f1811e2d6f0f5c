package timeline

import "github.com/NASA-AMMOS/aerie-sub004/interval"

// BinaryOperation combines two segment streams. Left is called where only the left stream has a
// value, Right where only the right one has, Combine where both overlap. Returning false means
// "no value here" and drops the piece.
type BinaryOperation[L, R, O any] struct {
	Left    func(l L, i interval.Interval) (O, bool)
	Right   func(r R, i interval.Interval) (O, bool)
	Combine func(l L, r R, i interval.Interval) (O, bool)
}

func Cases[L, R, O any](left func(L, interval.Interval) (O, bool), right func(R, interval.Interval) (O, bool),
	combine func(L, R, interval.Interval) (O, bool)) BinaryOperation[L, R, O] {
	return BinaryOperation[L, R, O]{
		Left:    left,
		Right:   right,
		Combine: combine,
	}
}

// SingleFunction builds an operation out of one function; an absent operand is passed as nil.
func SingleFunction[L, R, O any](f func(l *L, r *R, i interval.Interval) (O, bool)) BinaryOperation[L, R, O] {
	return BinaryOperation[L, R, O]{
		Left: func(l L, i interval.Interval) (O, bool) {
			return f(&l, nil, i)
		},
		Right: func(r R, i interval.Interval) (O, bool) {
			return f(nil, &r, i)
		},
		Combine: func(l L, r R, i interval.Interval) (O, bool) {
			return f(&l, &r, i)
		},
	}
}

// CombineOrUndefined keeps only the regions where both operands have a value.
func CombineOrUndefined[L, R, O any](f func(l L, r R, i interval.Interval) (O, bool)) BinaryOperation[L, R, O] {
	return BinaryOperation[L, R, O]{
		Left: func(L, interval.Interval) (o O, ok bool) {
			return
		},
		Right: func(R, interval.Interval) (o O, ok bool) {
			return
		},
		Combine: f,
	}
}

// CombineOrIdentity passes a lone operand through unchanged.
func CombineOrIdentity[V any](f func(l, r V, i interval.Interval) (V, bool)) BinaryOperation[V, V, V] {
	return BinaryOperation[V, V, V]{
		Left:    keep[V],
		Right:   keep[V],
		Combine: f,
	}
}

func keep[V any](v V, _ interval.Interval) (V, bool) {
	return v, true
}

// Overlay is the CombineOrIdentity operation in which the right operand wins.
func Overlay[V any]() BinaryOperation[V, V, V] {
	return CombineOrIdentity(func(_, r V, _ interval.Interval) (V, bool) {
		return r, true
	})
}
