package http

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/suplegear-api/internal/application/dto"
)

// RateLimiterStore contador con expiración (Redis en producción).
type RateLimiterStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RateLimitPolicy ventana y límites por IP y por email de una superficie de auth.
type RateLimitPolicy struct {
	name       string
	window     time.Duration
	ipLimit    int
	emailLimit int
}

// NewRateLimitPolicy construye la política; límite 0 desactiva ese contador.
func NewRateLimitPolicy(name string, window time.Duration, ipLimit, emailLimit int) RateLimitPolicy {
	return RateLimitPolicy{
		name:       strings.ToLower(strings.TrimSpace(name)),
		window:     window,
		ipLimit:    ipLimit,
		emailLimit: emailLimit,
	}
}

func (p RateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.emailLimit > 0)
}

func (p RateLimitPolicy) normalizedName() string {
	if p.name == "" {
		return "auth"
	}
	return p.name
}

func (p RateLimitPolicy) ipKey(ip string) string {
	return fmt.Sprintf("rl:ip:%s:%s", p.normalizedName(), ip)
}

func (p RateLimitPolicy) emailKey(hash string) string {
	return fmt.Sprintf("rl:email:%s:%s", p.normalizedName(), hash)
}

// RateLimit limita intentos por IP y por email (hash sha256, nunca en claro).
// Sin store o con la política desactivada no hace nada. Si el store falla se deja pasar la petición.
func RateLimit(policy RateLimitPolicy, store RateLimiterStore, log zerolog.Logger) fiber.Handler {
	if !policy.enabled() || store == nil {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		if ip := c.IP(); policy.ipLimit > 0 && ip != "" {
			ok, count, err := allow(ctx, store, policy.ipKey(ip), policy.window, int64(policy.ipLimit))
			if err != nil {
				log.Warn().Err(err).Str("policy", policy.normalizedName()).Msg("auth.rate_limit.store_error")
				return c.Next()
			}
			if !ok {
				return rateLimited(c, log, policy, "ip", count, policy.ipLimit)
			}
		}

		if policy.emailLimit > 0 {
			if email := extractEmail(c.Body()); email != "" {
				ok, count, err := allow(ctx, store, policy.emailKey(hashValue(email)), policy.window, int64(policy.emailLimit))
				if err != nil {
					log.Warn().Err(err).Str("policy", policy.normalizedName()).Msg("auth.rate_limit.store_error")
					return c.Next()
				}
				if !ok {
					return rateLimited(c, log, policy, "email", count, policy.emailLimit)
				}
			}
		}
		return c.Next()
	}
}

func allow(ctx context.Context, store RateLimiterStore, key string, window time.Duration, limit int64) (bool, int64, error) {
	count, err := store.IncrWithTTL(ctx, key, window)
	if err != nil {
		return false, 0, err
	}
	return count <= limit, count, nil
}

func rateLimited(c *fiber.Ctx, log zerolog.Logger, policy RateLimitPolicy, scope string, count int64, limit int) error {
	log.Warn().
		Str("scope", scope).
		Str("policy", policy.normalizedName()).
		Int64("attempts", count).
		Int("limit", limit).
		Int("window_seconds", int(policy.window.Seconds())).
		Str("request_id", requestID(c)).
		Msg("auth.rate_limit.blocked")
	c.Set(fiber.HeaderRetryAfter, fmt.Sprintf("%d", int(policy.window.Seconds())))
	return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: codeRateLimited, Message: "demasiados intentos, intente más tarde"})
}

func extractEmail(payload []byte) string {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(body.Email))
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
