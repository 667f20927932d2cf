package bot

import (
	"sync"
	"time"

	"poolbot/internal/config"

	"golang.org/x/time/rate"
)

// limiterIdleTTL через сколько простоя лимитер пользователя удаляется
const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// userLimiter хранит по одному rate.Limiter на пользователя Telegram.
// Записи без активности дольше idleTTL вычищаются при обращениях.
type userLimiter struct {
	mu        sync.Mutex
	limiters  map[int64]*limiterEntry
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// newUserLimiter возвращает nil, если ограничение выключено.
func newUserLimiter(cfg config.RateLimitConfig) *userLimiter {
	if cfg.PerMinute <= 0 {
		return nil
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &userLimiter{
		limiters:  make(map[int64]*limiterEntry),
		limit:     rate.Every(time.Minute / time.Duration(cfg.PerMinute)),
		burst:     burst,
		idleTTL:   limiterIdleTTL,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *userLimiter) get(userID int64, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.sweep(now)
	}

	entry, exists := l.limiters[userID]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[userID] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// sweep удаляет лимитеры, простаивающие дольше idleTTL. Вызывается под mu.
func (l *userLimiter) sweep(now time.Time) {
	for id, entry := range l.limiters {
		if now.Sub(entry.lastSeen) >= l.idleTTL {
			delete(l.limiters, id)
		}
	}
	l.lastSweep = now
}

func (l *userLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func (l *userLimiter) Allow(userID int64) bool {
	if l == nil {
		return true
	}
	now := l.now()
	return l.get(userID, now).AllowN(now, 1)
}
