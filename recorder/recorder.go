package recorder

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/NASA-AMMOS/aerie-sub004/interval"
	"github.com/NASA-AMMOS/aerie-sub004/resource"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libeasygo/routineman"
	"github.com/sgostarter/libeasygo/timespan"
)

// Recorder turns live value updates into raw resource segments. Each value holds from the instant
// it was set until the next update; Flush closes everything before a cut-off and appends it to the
// store, carrying the latest value over into the next bucket.
type Recorder struct {
	logger l.Wrapper
	cfg    Config
	store  resource.Store
	now    func() time.Time

	flushSpan  *timespan.TimeSpan
	routineMan routineman.RoutineMan

	lock    sync.Mutex
	changes map[string][]change
}

type change struct {
	at interval.Duration
	v  any
}

func NewRecorder(cfg Config, store resource.Store, opts ...Option) *Recorder {
	o := &options{}

	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = l.NewNopLoggerWrapper()
	}

	if o.now == nil {
		o.now = time.Now
	}

	if store == nil {
		o.logger.Fatal("no store")
	}

	cfg.init()

	return &Recorder{
		logger:     o.logger.WithFields(l.StringField(l.ClsKey, "recorder")),
		cfg:        cfg,
		store:      store,
		now:        o.now,
		flushSpan:  timespan.NewTimeSpan(cfg.FlushInterval),
		routineMan: routineman.NewRoutineMan(context.Background(), o.logger),
		changes:    make(map[string][]change),
	}
}

// Start launches the routine that flushes every time a FlushInterval bucket closes.
func (impl *Recorder) Start() {
	impl.routineMan.StartRoutine(impl.flushRoutine, "flushRoutine")
}

func (impl *Recorder) TriggerStop() {
	impl.routineMan.TriggerStop()
}

func (impl *Recorder) Wait() {
	impl.routineMan.Wait()
}

func (impl *Recorder) offset(t time.Time) interval.Duration {
	return t.Sub(impl.cfg.Epoch)
}

// Update records that resource name holds v from now on.
func (impl *Recorder) Update(name string, v any) {
	impl.UpdateAt(name, impl.offset(impl.now()), v)
}

// UpdateAt records that resource name holds v from at on.
func (impl *Recorder) UpdateAt(name string, at interval.Duration, v any) {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	impl.changes[name] = append(impl.changes[name], change{
		at: at,
		v:  v,
	})
}

// Flush appends every segment that ends at or before until to the store. A resource whose append
// fails keeps its pending changes, so the next Flush retries them.
func (impl *Recorder) Flush(ctx context.Context, until interval.Duration) error {
	closed := impl.closedSegments(until)

	var errs []error

	for name, segments := range closed {
		if err := impl.store.Append(ctx, name, segments...); err != nil {
			impl.logger.WithFields(l.ErrorField(err), l.StringField("name", name)).Error("append segments failed")

			errs = append(errs, err)

			continue
		}

		impl.advance(name, until)
	}

	return errors.Join(errs...)
}

func compareChanges(a, b change) int {
	switch {
	case a.at < b.at:
		return -1
	case a.at > b.at:
		return 1
	default:
		return 0
	}
}

// closedSegments builds the segments before until without touching the pending changes.
func (impl *Recorder) closedSegments(until interval.Duration) map[string][]resource.RawSegment {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	closed := make(map[string][]resource.RawSegment)

	for name, changes := range impl.changes {
		slices.SortStableFunc(changes, compareChanges)

		var segments []resource.RawSegment

		for idx, c := range changes {
			if c.at >= until {
				break
			}

			end := until
			if idx+1 < len(changes) && changes[idx+1].at < until {
				end = changes[idx+1].at
			}

			if end > c.at {
				segments = append(segments, resource.RawSegment{
					Interval: interval.BetweenClosedOpen(c.at, end),
					Value:    c.v,
				})
			}
		}

		if len(segments) > 0 {
			closed[name] = segments
		}
	}

	return closed
}

// advance drops the changes of name stored up to until and carries the latest one over to until.
func (impl *Recorder) advance(name string, until interval.Duration) {
	impl.lock.Lock()
	defer impl.lock.Unlock()

	changes := impl.changes[name]
	slices.SortStableFunc(changes, compareChanges)

	lastIdx := -1

	for idx, c := range changes {
		if c.at >= until {
			break
		}

		lastIdx = idx
	}

	if lastIdx < 0 {
		return
	}

	carried := changes[lastIdx]
	carried.at = until

	impl.changes[name] = append([]change{carried}, changes[lastIdx+1:]...)
}

func (impl *Recorder) flushRoutine(ctx context.Context, _ func() bool) {
	label := impl.flushSpan.GetCurrentLabel()

	sleepDuration := time.Second * 10
	if impl.cfg.FlushInterval/2 < sleepDuration {
		sleepDuration = impl.cfg.FlushInterval / 2
	}

	loop := true

	for loop {
		select {
		case <-ctx.Done():
			loop = false

			continue
		case <-time.After(sleepDuration):
			newLabel := impl.flushSpan.GetCurrentLabel()
			if newLabel == label {
				continue
			}

			label = newLabel

			t, _ := impl.flushSpan.Label2Time(newLabel)

			_ = impl.Flush(ctx, impl.offset(t))
		}
	}
}
