package redis

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const defaultHistoryCap = 200

// HistoryStore keeps one sorted set per viewer, scored by watch time, so a
// rewatched video moves to the front instead of appearing twice.
type HistoryStore struct {
	client *redis.Client
	cap    int64
}

func NewHistoryStore(client *redis.Client, cap int64) *HistoryStore {
	if cap <= 0 {
		cap = defaultHistoryCap
	}
	return &HistoryStore{client: client, cap: cap}
}

func historyKey(viewer string) string {
	return "history:" + viewer
}

// Record marks videoID as watched now and trims the oldest entries past cap.
func (h *HistoryStore) Record(ctx context.Context, viewer, videoID string) error {
	key := historyKey(viewer)
	_, err := h.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, key, redis.Z{Score: float64(time.Now().UnixMilli()), Member: videoID})
		pipe.ZRemRangeByRank(ctx, key, 0, -(h.cap + 1))
		return nil
	})
	return errors.Wrap(err, "record watch history")
}

// List returns watched video ids, most recent first.
func (h *HistoryStore) List(ctx context.Context, viewer string) ([]string, error) {
	ids, err := h.client.ZRevRange(ctx, historyKey(viewer), 0, h.cap-1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "list watch history")
	}
	return ids, nil
}

func (h *HistoryStore) Clear(ctx context.Context, viewer string) error {
	return errors.Wrap(h.client.Del(ctx, historyKey(viewer)).Err(), "clear watch history")
}
