// Package lock 提供覆盖整个名册的粗粒度锁
// 一次完整的排班以及对名册的修改都必须持有这把锁
package lock

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLocked = errors.New("名册正在被其他操作占用")

// 只有持有者才能释放锁，避免锁过期后误删其他实例的锁
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client     *redis.Client
	key        string
	expiration time.Duration
}

func NewRedisLocker(client *redis.Client, key string, expiration time.Duration) *RedisLocker {
	return &RedisLocker{
		client:     client,
		key:        key,
		expiration: expiration,
	}
}

// Lock 尝试获取锁，锁已被占用时立即返回 ErrLocked
func (l *RedisLocker) Lock(ctx context.Context) (func(), error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, l.key, token, l.expiration).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLocked
	}

	unlock := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Err(); err != nil {
			slog.Error("无法释放名册锁", slog.String("key", l.key), slog.String("error", err.Error()))
		}
	}

	return unlock, nil
}
