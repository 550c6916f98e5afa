package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = 15 * time.Minute
)

// attemptScript increments the counter and starts the window on the first
// attempt only, returning the new count.
var attemptScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// SigninLimiter counts sign-in attempts per email in a fixed window.
// Key format: signin:attempts:<email>
type SigninLimiter struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

// NewSigninLimiter creates a limiter; non-positive settings fall back to
// 5 attempts per 15 minutes.
func NewSigninLimiter(client *redis.Client, maxAttempts int, window time.Duration) *SigninLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &SigninLimiter{client: client, maxAttempts: int64(maxAttempts), window: window}
}

// Attempt counts one attempt for email and reports whether it is within the
// limit. Counting and checking happen in one script run.
func (l *SigninLimiter) Attempt(ctx context.Context, email string) (bool, error) {
	n, err := attemptScript.Run(ctx, l.client, []string{l.key(email)}, l.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("signin limiter: %w", err)
	}
	return n <= l.maxAttempts, nil
}

// Reset clears the counter after a successful sign-in.
func (l *SigninLimiter) Reset(ctx context.Context, email string) error {
	if err := l.client.Del(ctx, l.key(email)).Err(); err != nil {
		return fmt.Errorf("signin limiter: %w", err)
	}
	return nil
}

func (l *SigninLimiter) key(email string) string {
	return "signin:attempts:" + strings.ToLower(strings.TrimSpace(email))
}
