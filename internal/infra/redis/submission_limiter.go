package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrWithWindow bumps the counter and gives it a TTL whenever it has none,
// in one atomic step. A key left without a TTL is repaired on its next hit.
var incrWithWindow = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if redis.call("PTTL", KEYS[1]) < 0 then
    redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// SubmissionLimiter counts DSA attempts per (user, problem) in a fixed window
// keyed contest:throttle:dsa:{userID}:{problemID}.
//
// Counters are shared by every API instance pointing at the same Redis.
type SubmissionLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewSubmissionLimiter(client *redis.Client, limit int, window time.Duration) *SubmissionLimiter {
	return &SubmissionLimiter{client: client, limit: limit, window: window}
}

func (l *SubmissionLimiter) Allow(ctx context.Context, userID, problemID string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}
	key := l.key(userID, problemID)

	n, err := incrWithWindow.Run(ctx, l.client, []string{key}, l.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("incr %s: %w", key, err)
	}
	return n <= int64(l.limit), nil
}

func (l *SubmissionLimiter) key(userID, problemID string) string {
	return "contest:throttle:dsa:" + userID + ":" + problemID
}
