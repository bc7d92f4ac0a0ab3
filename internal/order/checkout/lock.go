package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrCheckoutInProgress is returned when another checkout already holds
// the principal's lock.
var ErrCheckoutInProgress = errors.New("checkout already in progress")

// Locker serializes checkouts per principal. Acquire returns a release
// function on success and ErrCheckoutInProgress when the lock is held.
type Locker interface {
	Acquire(ctx context.Context, userEmail string) (release func(), err error)
}

// RedisLocker implements Locker with SET NX PX. The TTL bounds how long
// a crashed checkout can block its principal.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl}
}

// releaseScript deletes the lock only when it still holds our token, so
// an expired lock reacquired by another checkout is never released here.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (l *RedisLocker) Acquire(ctx context.Context, userEmail string) (func(), error) {
	key := "checkout:lock:" + userEmail
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire checkout lock: %w", err)
	}
	if !ok {
		return nil, ErrCheckoutInProgress
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err()
	}
	return release, nil
}

// MemoryLocker implements Locker for tests and single-node deployments
// without Redis.
type MemoryLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{held: make(map[string]bool)}
}

func (l *MemoryLocker) Acquire(_ context.Context, userEmail string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held[userEmail] {
		return nil, ErrCheckoutInProgress
	}
	l.held[userEmail] = true

	release := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, userEmail)
	}
	return release, nil
}
