package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	loginWindow      = time.Minute
	loginMaxPerEmail = 10
)

// LoginLimiter imposes a server-side fixed-window cap on login attempts per
// email. The browser-side lockout resets on reload, so it cannot be the only
// brute-force defence; this limiter backs it up at the service boundary.
//
// Redis failures fail open: authentication availability wins over throttling.
// Key format: login_attempts:<email>
type LoginLimiter struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewLoginLimiter(client *redis.Client, log zerolog.Logger) *LoginLimiter {
	return &LoginLimiter{client: client, log: log}
}

// Allow counts the attempt and reports whether it is within the window cap.
func (l *LoginLimiter) Allow(ctx context.Context, email string) bool {
	key := l.key(email)

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.log.Warn().Err(err).Str("email", email).Msg("login limiter unavailable, allowing attempt")
		return true
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, loginWindow).Err(); err != nil {
			l.log.Warn().Err(err).Str("email", email).Msg("failed to set limiter window")
		}
	}
	return n <= loginMaxPerEmail
}

// Reset clears the window after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) {
	if err := l.client.Del(ctx, l.key(email)).Err(); err != nil {
		l.log.Warn().Err(err).Str("email", email).Msg("failed to reset login limiter")
	}
}

func (l *LoginLimiter) key(email string) string {
	return fmt.Sprintf("login_attempts:%s", email)
}
