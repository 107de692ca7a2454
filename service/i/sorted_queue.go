package i

import "context"

// SortedQueue is a scored queue of members shared between service instances.
type SortedQueue interface {
	// Enqueue adds member to the queue under key with the given score.
	Enqueue(ctx context.Context, key string, score float64, member string) error

	// Dequeue removes and returns up to amount members with the lowest scores.
	Dequeue(ctx context.Context, key string, amount int64) ([]string, error)

	// Count returns the number of members queued under key.
	Count(ctx context.Context, key string) (int64, error)
}
