package resource

import (
	"context"
	"sync"

	"github.com/NASA-AMMOS/aerie-sub004/interval"
)

// MemFetcher serves resources held in memory.
type MemFetcher struct {
	lock      sync.RWMutex
	resources map[string][]RawSegment
}

func NewMemFetcher() *MemFetcher {
	return &MemFetcher{
		resources: make(map[string][]RawSegment),
	}
}

func (impl *MemFetcher) Set(name string, segments ...RawSegment) {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	impl.resources[name] = append([]RawSegment{}, segments...)
}

func (impl *MemFetcher) Add(name string, segments ...RawSegment) {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	impl.resources[name] = append(impl.resources[name], segments...)
}

func (impl *MemFetcher) Append(_ context.Context, name string, segments ...RawSegment) error {
	impl.Add(name, segments...)

	return nil
}

func (impl *MemFetcher) Fetch(_ context.Context, name string, bounds interval.Interval) ([]RawSegment, error) {
	impl.lock.RLock()
	defer impl.lock.RUnlock()

	segments, ok := impl.resources[name]
	if !ok {
		return nil, ErrNotFound
	}

	return overlapping(segments, bounds), nil
}

func overlapping(segments []RawSegment, bounds interval.Interval) []RawSegment {
	result := make([]RawSegment, 0, len(segments))

	for _, s := range segments {
		if !s.Interval.Intersect(bounds).IsEmpty() {
			result = append(result, s)
		}
	}

	return result
}
