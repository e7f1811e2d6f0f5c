package timeline

import (
	"context"

	"github.com/NASA-AMMOS/aerie-sub004/interval"
	"github.com/sgostarter/i/l"
)

// Inspector observes evaluation results. It must not modify them.
type Inspector[T any] func(bounds interval.Interval, ts []T)

func Inspect[T any](tl Timeline[T], f Inspector[T]) Timeline[T] {
	return Func[T](func(ctx context.Context, bounds interval.Interval) ([]T, error) {
		ts, err := tl.Evaluate(ctx, bounds)
		if err != nil {
			return nil, err
		}

		f(bounds, ts)

		return ts, nil
	})
}

// LogInspector reports how many values each evaluation of the named timeline produced.
func LogInspector[T any](logger l.Wrapper, name string) Inspector[T] {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField("timeline", name))

	return func(bounds interval.Interval, ts []T) {
		logger.WithFields(l.StringField("bounds", bounds.String()), l.IntField("count", len(ts))).Debug("evaluated")
	}
}
