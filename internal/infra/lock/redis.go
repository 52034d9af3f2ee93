package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var ErrBusy = errors.New("lock busy")

// releaseScript apaga a chave apenas se ela ainda pertence ao token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker serializa reservas concorrentes do mesmo dia entre instâncias.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	prefix string
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		wait:   ttl,
		prefix: "salon:booking-lock:",
	}
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// Acquire tenta obter a trava até o tempo de espera esgotar.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	fullKey := l.prefix + key
	token := uuid.NewString()

	deadline := time.Now().Add(l.wait)
	backoff := 25 * time.Millisecond

	for {
		ok, err := l.client.SetNX(ctx, fullKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}

		if time.Now().After(deadline) {
			return nil, ErrBusy
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		if backoff < 200*time.Millisecond {
			backoff *= 2
		}
	}

	release := func() {
		// contexto próprio: a liberação deve acontecer mesmo com ctx cancelado
		rctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = releaseScript.Run(rctx, l.client, []string{fullKey}, token).Err()
	}

	return release, nil
}
