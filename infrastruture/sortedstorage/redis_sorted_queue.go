package sortedstorage

import (
	"context"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// RedisSortedQueue manages a sorted queue in Redis with TTL support.
// Implements i.SortedQueue.
type RedisSortedQueue struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisSortedQueue initializes a RedisSortedQueue with the provided Redis client and TTL.
// A non-positive ttlSeconds leaves queues without expiry.
func NewRedisSortedQueue(client *redis.Client, ttlSeconds int) *RedisSortedQueue {
	queue := &RedisSortedQueue{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	queue.locker = redsync.New(pool)
	return queue
}

// Enqueue adds a member to the sorted queue with a given score and sets expiration if necessary.
func (rsq *RedisSortedQueue) Enqueue(ctx context.Context, queueKey string, score float64, member string) error {
	_, err := rsq.client.ZAdd(ctx, queueKey, redis.Z{Score: score, Member: member}).Result()
	if err != nil {
		return err
	}

	if rsq.ttl <= 0 {
		return nil
	}

	// Set expiration only if it's not already set
	ttl, err := rsq.client.TTL(ctx, queueKey).Result()
	if err == nil && ttl == -1 {
		_ = rsq.client.Expire(ctx, queueKey, rsq.ttl).Err()
	}

	return nil
}

// Dequeue removes and retrieves up to `amount` members with the lowest scores.
// The pop runs under a distributed lock so two instances never hand out
// the same member.
func (rsq *RedisSortedQueue) Dequeue(ctx context.Context, queueKey string, amount int64) ([]string, error) {
	mutex := rsq.locker.NewMutex(queueKey + ":dequeue_lock")
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	popped, err := rsq.client.ZPopMin(ctx, queueKey, amount).Result()
	if err != nil {
		return nil, err
	}

	members := make([]string, 0, len(popped))
	for _, p := range popped {
		if member, ok := p.Member.(string); ok {
			members = append(members, member)
		}
	}

	return members, nil
}

// Count returns the number of members in the sorted queue.
func (rsq *RedisSortedQueue) Count(ctx context.Context, queueKey string) (int64, error) {
	return rsq.client.ZCard(ctx, queueKey).Result()
}
