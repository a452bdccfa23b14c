package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/angelmondragon/burgershop-backend/api/responses"
	pkgerrors "github.com/angelmondragon/burgershop-backend/pkg/errors"
	"github.com/angelmondragon/burgershop-backend/pkg/logger"
)

// RateLimiter counts hits for a scope inside a fixed window. pkg/redis.Client
// satisfies it and namespaces the scope into its own key.
type RateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// RateLimitPolicy defines the throttling parameters for a traffic surface.
type RateLimitPolicy struct {
	name    string
	window  time.Duration
	ipLimit int
}

func NewRateLimitPolicy(name string, window time.Duration, ipLimit int) RateLimitPolicy {
	return RateLimitPolicy{
		name:    strings.ToLower(strings.TrimSpace(name)),
		window:  window,
		ipLimit: ipLimit,
	}
}

func (p RateLimitPolicy) enabled() bool {
	return p.window > 0 && p.ipLimit > 0
}

func (p RateLimitPolicy) normalizedName() string {
	if p.name == "" {
		return "admin"
	}
	return p.name
}

func (p RateLimitPolicy) ipScope(ip string) string {
	if ip == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", p.normalizedName(), ip)
}

// AdminRateLimit caps password attempts per client IP. A nil store disables
// throttling, which is the case when redis is not configured.
func AdminRateLimit(policy RateLimitPolicy, store RateLimiter, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ip := clientIP(r)
			scope := policy.ipScope(ip)
			if scope == "" {
				next.ServeHTTP(w, r)
				return
			}

			allowed, count, err := store.FixedWindowAllow(ctx, scope, int64(policy.ipLimit), policy.window)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
				return
			}
			if !allowed {
				respondRateLimited(ctx, logg, w, policy, ip, count)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func respondRateLimited(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, policy RateLimitPolicy, ip string, count int64) {
	if logg != nil {
		logCtx := logg.WithFields(ctx, map[string]any{
			"policy":         policy.normalizedName(),
			"ip":             ip,
			"attempts":       count,
			"limit":          policy.ipLimit,
			"window_seconds": int(policy.window.Seconds()),
		})
		logg.Warn(logCtx, "admin.rate_limit.blocked")
	}
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many admin login attempts"))
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
