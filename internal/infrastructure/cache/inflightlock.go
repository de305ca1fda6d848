package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nitrodesk/nitrodesk/internal/shared/id"
	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

// inflightKeyPrefix namespaces per-customer delivery locks.
// Format: nitrodesk:inflight:{customer_id}
const inflightKeyPrefix = "nitrodesk:inflight:"

// InflightLock marks a customer as "delivery in progress" so that two dispatch
// cycles never message the same customer concurrently. Locks expire after ttl
// even when never released, so a crashed process cannot wedge a customer.
type InflightLock interface {
	// TryAcquire returns false when another holder owns the lock.
	TryAcquire(ctx context.Context, customerID string, ttl time.Duration) (release func(), ok bool, err error)
}

// releaseScript deletes the key only when it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisInflightLock is shared by every process pointing at the same redis.
type RedisInflightLock struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisInflightLock(client *redis.Client, log logger.Interface) *RedisInflightLock {
	return &RedisInflightLock{client: client, logger: log}
}

func (l *RedisInflightLock) buildKey(customerID string) string {
	return inflightKeyPrefix + customerID
}

// TryAcquire uses SET NX so check-and-set is atomic across instances.
func (l *RedisInflightLock) TryAcquire(ctx context.Context, customerID string, ttl time.Duration) (func(), bool, error) {
	key := l.buildKey(customerID)
	token, err := id.Generate(16)
	if err != nil {
		return nil, false, fmt.Errorf("failed to generate lock token: %w", err)
	}

	acquired, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire inflight lock: %w", err)
	}
	if !acquired {
		return nil, false, nil
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		// A lock that fails to release stays held until ttl elapses.
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			l.logger.Warnw("failed to release in-flight lock",
				"customer_id", customerID,
				"ttl", ttl,
				"error", err,
			)
		}
	}
	return release, true, nil
}

// MemoryInflightLock is the single-process fallback used when redis is not configured.
type MemoryInflightLock struct {
	mu    sync.Mutex
	held  map[string]memoryLease
	now   func() time.Time
	epoch uint64
}

type memoryLease struct {
	expiresAt time.Time
	epoch     uint64
}

func NewMemoryInflightLock() *MemoryInflightLock {
	return &MemoryInflightLock{
		held: make(map[string]memoryLease),
		now:  time.Now,
	}
}

func (l *MemoryInflightLock) TryAcquire(_ context.Context, customerID string, ttl time.Duration) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if lease, ok := l.held[customerID]; ok && now.Before(lease.expiresAt) {
		return nil, false, nil
	}

	l.epoch++
	mine := l.epoch
	l.held[customerID] = memoryLease{expiresAt: now.Add(ttl), epoch: mine}

	release := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if lease, ok := l.held[customerID]; ok && lease.epoch == mine {
			delete(l.held, customerID)
		}
	}
	return release, true, nil
}
