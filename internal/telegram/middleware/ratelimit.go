package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/futig/app-builder/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	// inactiveUserTTL drops buckets of users who stopped writing.
	inactiveUserTTL = time.Hour
	warningInterval = 30 * time.Second
)

// userLimit tracks rate limit state for a single user
type userLimit struct {
	mu            sync.Mutex
	tokens        float64
	lastRefill    time.Time
	lastWarningAt time.Time
}

// RateLimiterMiddleware implements token bucket rate limiting per user.
// Every text message can trigger a model call, so bursts are capped.
type RateLimiterMiddleware struct {
	limits     *cache.Cache
	mu         sync.Mutex
	maxTokens  float64
	refillRate float64 // tokens per second
	logger     *zap.Logger
	sender     Sender
	now        func() time.Time
}

func NewRateLimiterMiddleware(requestsPerMinute, burst int, logger *zap.Logger, sender Sender) *RateLimiterMiddleware {
	return &RateLimiterMiddleware{
		limits:     cache.New(inactiveUserTTL, inactiveUserTTL/6),
		maxTokens:  float64(burst),
		refillRate: float64(requestsPerMinute) / 60.0,
		logger:     logger,
		sender:     sender,
		now:        time.Now,
	}
}

// Handle drops the update when the user is over the limit
func (rl *RateLimiterMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	userID, chatID := updateIDs(update)
	if userID == 0 {
		next(update)
		return
	}

	if !rl.allowRequest(userID, chatID) {
		rl.logger.Warn("rate limit exceeded",
			zap.Int64("user_id", userID),
			zap.Int64("chat_id", chatID),
		)
		return
	}

	next(update)
}

func (rl *RateLimiterMiddleware) allowRequest(userID, chatID int64) bool {
	limit := rl.userLimit(userID)

	limit.mu.Lock()
	defer limit.mu.Unlock()

	now := rl.now()

	limit.tokens = min(limit.tokens+now.Sub(limit.lastRefill).Seconds()*rl.refillRate, rl.maxTokens)
	limit.lastRefill = now

	if limit.tokens >= 1.0 {
		limit.tokens -= 1.0
		return true
	}

	if chatID != 0 && now.Sub(limit.lastWarningAt) > warningInterval {
		limit.lastWarningAt = now
		rl.sendWarning(chatID)
	}

	return false
}

func (rl *RateLimiterMiddleware) userLimit(userID int64) *userLimit {
	key := strconv.FormatInt(userID, 10)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if item, ok := rl.limits.Get(key); ok {
		rl.limits.SetDefault(key, item)
		return item.(*userLimit)
	}

	limit := &userLimit{
		tokens:     rl.maxTokens,
		lastRefill: rl.now(),
	}
	rl.limits.SetDefault(key, limit)
	return limit
}

func (rl *RateLimiterMiddleware) sendWarning(chatID int64) {
	if _, err := rl.sender.Send(tgbotapi.NewMessage(chatID, render.ErrRateLimited)); err != nil {
		rl.logger.Error("failed to send rate limit warning",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}
