package resource

import (
	"context"
	"fmt"

	"github.com/NASA-AMMOS/aerie-sub004/interval"
	"github.com/NASA-AMMOS/aerie-sub004/timeline"
)

// Segments exposes a fetched resource as a segment timeline: every call fetches the raw samples
// overlapping the bounds, decodes them, and returns them sorted, clipped and coalesced.
func Segments[V any](fetcher Fetcher, name string, decode Decoder[V],
	equal timeline.EqualFunc[V]) timeline.Timeline[timeline.Segment[V]] {
	return timeline.Func[timeline.Segment[V]](func(ctx context.Context, bounds interval.Interval) ([]timeline.Segment[V], error) {
		raws, err := fetcher.Fetch(ctx, name, bounds)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", name, err)
		}

		segments := make([]timeline.Segment[V], 0, len(raws))

		for _, raw := range raws {
			v, err := decode(raw.Value, raw.Interval.Start)
			if err != nil {
				return nil, fmt.Errorf("decode %s at %v: %w", name, raw.Interval, err)
			}

			if s, ok := timeline.NewSegment(v, raw.Interval).Bound(bounds); ok {
				segments = append(segments, s)
			}
		}

		return timeline.SortAndCoalesce(segments, equal)
	})
}
