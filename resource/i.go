package resource

import (
	"context"

	"github.com/NASA-AMMOS/aerie-sub004/interval"
)

// RawSegment is a resource sample as stored by the data layer. Value is undecoded.
type RawSegment struct {
	Interval interval.Interval
	Value    any
}

// Fetcher supplies the raw samples of a named resource that overlap bounds. Implementations own
// their retry policy; errors are passed through to whoever evaluates the timeline.
type Fetcher interface {
	Fetch(ctx context.Context, name string, bounds interval.Interval) ([]RawSegment, error)
}

// Store is a Fetcher that also accepts new samples.
type Store interface {
	Fetcher
	Append(ctx context.Context, name string, segments ...RawSegment) error
}

type FetcherFunc func(ctx context.Context, name string, bounds interval.Interval) ([]RawSegment, error)

func (f FetcherFunc) Fetch(ctx context.Context, name string, bounds interval.Interval) ([]RawSegment, error) {
	return f(ctx, name, bounds)
}

// Decoder turns a raw value into a typed one. t is the start of the raw segment.
type Decoder[V any] func(raw any, t interval.Duration) (V, error)
