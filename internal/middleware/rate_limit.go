package middleware

import (
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"ecodrip-server/internal/config"
	"ecodrip-server/internal/modules/common/httpx"
	"ecodrip-server/internal/observability/metrics"
	platformservice "ecodrip-server/internal/platform/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type RateScope string

const (
	RateScopeAuth   RateScope = "auth"
	RateScopeUpload RateScope = "upload"
)

type IPRateLimiter struct {
	ips sync.Map
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

type client struct {
	limiter  *rate.Limiter
	// unix nanoseconds; written by requests, read by the sweeper
	lastSeen atomic.Int64
}

func (c *client) touch() {
	c.lastSeen.Store(time.Now().UnixNano())
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{
		r: r,
		b: b,
	}

	go i.cleanupLoop()

	return i
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.touch()
		return c.limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	// Double check
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.touch()
		return c.limiter
	}

	limiter := rate.NewLimiter(i.r, i.b)
	c := &client{limiter: limiter}
	c.touch()
	i.ips.Store(ip, c)

	return limiter
}

func (i *IPRateLimiter) cleanupLoop() {
	for {
		time.Sleep(1 * time.Minute)
		i.sweep(3 * time.Minute)
	}
}

// sweep drops limiters that have been idle longer than idle.
func (i *IPRateLimiter) sweep(idle time.Duration) {
	i.ips.Range(func(key, value interface{}) bool {
		client := value.(*client)
		if time.Since(time.Unix(0, client.lastSeen.Load())) > idle {
			i.ips.Delete(key)
		}
		return true
	})
}

func scopeLimits(scope RateScope, cfg config.RateLimitConfig) (float64, int) {
	switch scope {
	case RateScopeUpload:
		return cfg.UploadRPS, cfg.UploadBurst
	default:
		return cfg.AuthRPS, cfg.AuthBurst
	}
}

// RateLimitMiddleware limits requests per client IP for one route group.
// Limits are re-read from config on each request. With Redis available the
// window is shared across instances; otherwise an in-process limiter is used.
func RateLimitMiddleware(scope RateScope) gin.HandlerFunc {
	var limiter *IPRateLimiter
	var once sync.Once

	return func(c *gin.Context) {
		cfg := config.Get().RateLimit
		if !cfg.Enabled {
			c.Next()
			return
		}

		currentRPS, currentBurst := scopeLimits(scope, cfg)
		ip := c.ClientIP()

		if redisClient := platformservice.GetRedisClient(); redisClient != nil {
			allowed, err := allowByRedisRateLimit(c.Request.Context(), redisClient, string(scope), ip, currentRPS, currentBurst)
			if err == nil {
				if !allowed {
					rejectRateLimited(c, scope)
					return
				}
				c.Next()
				return
			}
			log.Printf("⚠️ Redis rate limit failed, using in-memory limiter: %v", err)
		}

		once.Do(func() {
			limiter = NewIPRateLimiter(rate.Limit(currentRPS), currentBurst)
		})

		l := limiter.getLimiter(ip)

		// Pick up config changes
		if l.Limit() != rate.Limit(currentRPS) {
			l.SetLimit(rate.Limit(currentRPS))
		}
		if l.Burst() != currentBurst {
			l.SetBurst(currentBurst)
		}

		if !l.Allow() {
			rejectRateLimited(c, scope)
			return
		}
		c.Next()
	}
}

func rejectRateLimited(c *gin.Context, scope RateScope) {
	metrics.ObserveRateLimited(string(scope))
	httpx.AbortFail(c, http.StatusTooManyRequests, "Too many requests, please try again later")
}
