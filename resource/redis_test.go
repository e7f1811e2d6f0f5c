package resource

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/NASA-AMMOS/aerie-sub004/interval"
	"github.com/NASA-AMMOS/aerie-sub004/timeline"
	"github.com/go-redis/redis/v8"
	"github.com/sgostarter/libconfig/ut"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRedis(dsn string) (cli *redis.Client, err error) {
	options, err := redis.ParseURL(dsn)
	if err != nil {
		return
	}

	cli = redis.NewClient(options)

	ctx, cf := context.WithTimeout(context.Background(), 3*time.Second)
	defer cf()

	err = cli.Ping(ctx).Err()

	return
}

func TestRedisFetcher(t *testing.T) {
	if os.Getenv("UT_REDIS") == "" {
		t.Skip("UT_REDIS not set")
	}

	cfg := ut.SetupUTConfig4Redis(t)
	redisCli, err := initRedis(cfg.RedisDSN)
	require.Nil(t, err)

	f := NewRedisFetcher(redisCli, "ut", nil)
	ctx := context.Background()

	_ = f.Del(ctx, "power")

	_, err = f.Fetch(ctx, "power", interval.Forever)
	assert.ErrorIs(t, err, ErrNotFound)

	err = f.Put(ctx, "power",
		RawSegment{Interval: interval.BetweenClosedOpen(0, 10*s), Value: 1.0},
		RawSegment{Interval: interval.BetweenClosedOpen(10*s, 20*s), Value: 2.0},
		RawSegment{Interval: interval.BetweenClosedOpen(30*s, 40*s), Value: 3.0},
	)
	require.Nil(t, err)

	got, err := Segments(f, "power", DecodeFloat64, timeline.Equals[float64]).
		Evaluate(ctx, interval.BetweenClosedOpen(5*s, 30*s))
	require.Nil(t, err)
	assert.Equal(t, []timeline.Segment[float64]{
		timeline.NewSegment(1.0, interval.BetweenClosedOpen(5*s, 10*s)),
		timeline.NewSegment(2.0, interval.BetweenClosedOpen(10*s, 20*s)),
	}, got)

	_ = f.Del(ctx, "power")
}
