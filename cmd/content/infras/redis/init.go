package redis

import (
	"context"

	"VidTube.com/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/redis/go-redis/v9"
)

var redisDB *redis.Client

// Init connects the watch history client. A failed ping is logged only,
// the client reconnects on use.
func Init() *HistoryStore {
	redisDB = redis.NewClient(&redis.Options{
		Addr:     config.ConfigInfo.Redis.Addr,
		Password: config.ConfigInfo.Redis.Password,
		DB:       config.ConfigInfo.Redis.DB,
	})

	pong, err := redisDB.Ping(context.Background()).Result()
	if err != nil {
		hlog.Info("Could not connect to redis : ", err)
	} else {
		hlog.Info("Connected to redis : ", pong)
	}
	return NewHistoryStore(redisDB, config.ConfigInfo.Redis.HistoryCap)
}
