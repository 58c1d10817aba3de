package i

import "context"

// SortedQueue is a score-ordered queue with atomic batched pops.
type SortedQueue interface {
	// Enqueue adds a member to the queue under the given key with a score.
	Enqueue(ctx context.Context, queueKey string, score float64, member string) error

	// DequeTops removes and returns up to `amount` members with the
	// lowest scores, or none when fewer are queued.
	DequeTops(ctx context.Context, queueKey string, amount int64) ([]string, error)

	// Count returns the number of members queued under the key.
	Count(ctx context.Context, queueKey string) int64
}
