package ratelimiter

import (
	"sync"
	"time"

	"github.com/SeakMengs/ConfPortal/internal/config"
	"github.com/SeakMengs/ConfPortal/internal/util"
	"go.uber.org/zap"
)

func NewRateLimiter(cfg config.RateLimiterConfig, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	// For unit test
	if logger == nil {
		logger = util.NewLogger()
	}

	return NewFixedWindowLimiter(cfg, logger)
}

type window struct {
	start time.Time
	count int
}

// FixedWindowRateLimiter counts requests per key in windows of cfg.TimeFrame.
type FixedWindowRateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	frame   time.Duration
	logger  *zap.SugaredLogger
	now     func() time.Time
}

func NewFixedWindowLimiter(cfg config.RateLimiterConfig, logger *zap.SugaredLogger) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		windows: make(map[string]*window),
		limit:   cfg.RequestsPerTimeFrame,
		frame:   cfg.TimeFrame,
		logger:  logger,
		now:     time.Now,
	}
}

// Allow records a request for key. When the window is full it returns false
// and how long until the next window opens.
func (rl *FixedWindowRateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || now.Sub(w.start) >= rl.frame {
		rl.windows[key] = &window{start: now, count: 1}
		rl.sweep(now)
		return true, 0
	}

	if w.count >= rl.limit {
		rl.logger.Debugf("Rate limit reached for key: %s", key)
		return false, w.start.Add(rl.frame).Sub(now)
	}

	w.count++
	return true, 0
}

// sweep drops expired windows once the map grows. Caller holds mu.
func (rl *FixedWindowRateLimiter) sweep(now time.Time) {
	if len(rl.windows) < 1024 {
		return
	}

	for key, w := range rl.windows {
		if now.Sub(w.start) >= rl.frame {
			delete(rl.windows, key)
		}
	}
}
