package recorder

import (
	"time"

	"github.com/sgostarter/i/l"
)

type options struct {
	logger l.Wrapper
	now    func() time.Time
}

type Option func(o *options)

func LoggerOption(logger l.Wrapper) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// ClockOption replaces time.Now for stamping updates.
func ClockOption(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}
