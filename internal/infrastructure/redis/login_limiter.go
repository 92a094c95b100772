package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Proyectos-api/internal/application/auth"
)

var _ auth.LoginThrottle = (*LoginLimiter)(nil)

// LoginLimiter cuenta intentos fallidos de login por email.
// Key: login:fail:<email>. Expira lockFor después del primer fallo de la ventana.
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int
	lockFor     time.Duration
}

// NewLoginLimiter construye el limitador. maxAttempts <= 0 desactiva el bloqueo.
func NewLoginLimiter(client *redis.Client, maxAttempts int, lockFor time.Duration) *LoginLimiter {
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, lockFor: lockFor}
}

// Allow informa si el email aún no alcanzó el máximo de fallos.
func (l *LoginLimiter) Allow(ctx context.Context, email string) (bool, error) {
	if l.maxAttempts <= 0 {
		return true, nil
	}
	n, err := l.client.Get(ctx, l.key(email)).Int()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return true, fmt.Errorf("login limiter get: %w", err)
	}
	return n < l.maxAttempts, nil
}

// Fail suma un fallo. El TTL se fija con el primero, así la ventana no se extiende.
func (l *LoginLimiter) Fail(ctx context.Context, email string) error {
	key := l.key(email)
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("login limiter fail: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.lockFor).Err(); err != nil {
			return fmt.Errorf("login limiter expire: %w", err)
		}
	}
	return nil
}

// Reset borra el contador tras un login correcto.
func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	if err := l.client.Del(ctx, l.key(email)).Err(); err != nil {
		return fmt.Errorf("login limiter reset: %w", err)
	}
	return nil
}

func (l *LoginLimiter) key(email string) string {
	return "login:fail:" + email
}
