package resource

import (
	"context"
	"strconv"

	"github.com/NASA-AMMOS/aerie-sub004/interval"
	"github.com/go-redis/redis/v8"
	"github.com/sgostarter/i/l"
)

// RedisFetcher keeps each resource in a sorted set scored by segment start, one YAML-encoded
// raw segment per member.
type RedisFetcher struct {
	logger      l.Wrapper
	redisCli    *redis.Client
	redisKeyPre string
}

func NewRedisFetcher(redisCli *redis.Client, redisKeyPre string, logger l.Wrapper) *RedisFetcher {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	return &RedisFetcher{
		logger:      logger.WithFields(l.StringField(l.ClsKey, "redisFetcher")),
		redisCli:    redisCli,
		redisKeyPre: redisKeyPre,
	}
}

func (impl *RedisFetcher) resourceRedisKey(name string) string {
	if impl.redisKeyPre == "" {
		return name
	}

	return impl.redisKeyPre + ":" + name
}

func (impl *RedisFetcher) Fetch(ctx context.Context, name string, bounds interval.Interval) ([]RawSegment, error) {
	key := impl.resourceRedisKey(name)

	exists, err := impl.redisCli.Exists(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	if exists == 0 {
		return nil, ErrNotFound
	}

	// float64 conversion is monotonic, so every member starting at or before bounds.End scores
	// at or below this limit.
	members, err := impl.redisCli.ZRangeByScore(ctx, key, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatFloat(float64(bounds.End), 'f', -1, 64),
	}).Result()
	if err != nil {
		return nil, err
	}

	segments := make([]RawSegment, 0, len(members))

	for _, member := range members {
		s, err := unmarshalRawSegment([]byte(member))
		if err != nil {
			impl.logger.WithFields(l.ErrorField(err), l.StringField("name", name)).Error("parse member failed")

			return nil, err
		}

		segments = append(segments, s)
	}

	return overlapping(segments, bounds), nil
}

// Put stores segments under name alongside whatever is already there.
func (impl *RedisFetcher) Put(ctx context.Context, name string, segments ...RawSegment) error {
	if len(segments) == 0 {
		return nil
	}

	members := make([]*redis.Z, 0, len(segments))

	for _, s := range segments {
		d, err := marshalRawSegment(s)
		if err != nil {
			return err
		}

		members = append(members, &redis.Z{
			Score:  float64(s.Interval.Start),
			Member: string(d),
		})
	}

	return impl.redisCli.ZAdd(ctx, impl.resourceRedisKey(name), members...).Err()
}

func (impl *RedisFetcher) Append(ctx context.Context, name string, segments ...RawSegment) error {
	return impl.Put(ctx, name, segments...)
}

func (impl *RedisFetcher) Del(ctx context.Context, name string) error {
	return impl.redisCli.Del(ctx, impl.resourceRedisKey(name)).Err()
}
