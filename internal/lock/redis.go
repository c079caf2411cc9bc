package lock

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	leaseTTL     = 10 * time.Second
	pollInterval = 50 * time.Millisecond
)

// releaseScript só apaga a chave se o token ainda for nosso
// (evita liberar o lease de outra requisição após expiração).
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker implementa o lock por barbeiro com lease no redis,
// para deploys com mais de uma instância da API.
type RedisLocker struct {
	client *redis.Client
}

func NewRedisLocker(redisUrl string) (*RedisLocker, error) {
	opts, err := redis.ParseURL(redisUrl)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &RedisLocker{client: client}, nil
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	redisKey := "booking_lock:" + key

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, leaseTTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pollInterval):
		}
	}

	release := func() {
		if err := releaseScript.Run(context.Background(), l.client, []string{redisKey}, token).Err(); err != nil {
			log.Println("booking lock release error:", err)
		}
	}

	return release, nil
}
