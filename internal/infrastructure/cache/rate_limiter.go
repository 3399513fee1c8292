package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitResult はレート制限チェックの結果を表します
type RateLimitResult struct {
	Allowed   bool      // リクエストが許可されたか
	Remaining int64     // 残りリクエスト数
	RetryAt   time.Time // 次に許可される時刻
}

// RateLimitPolicy はスコープごとの制限値です
type RateLimitPolicy struct {
	Scope    string
	Requests int64
	Window   time.Duration
}

// RateLimiter はスライディングウィンドウ方式のレート制限を提供します
type RateLimiter struct {
	client *redis.Client
}

// NewRateLimiter は新しいRateLimiterを作成します
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Luaスクリプトでアトミックに処理します
var slidingWindowScript = redis.NewScript(`
    local key = KEYS[1]
    local now = tonumber(ARGV[1])
    local window = tonumber(ARGV[2])
    local limit = tonumber(ARGV[3])
    local member = ARGV[4]

    redis.call('ZREMRANGEBYSCORE', key, 0, now - window)

    local count = redis.call('ZCARD', key)

    if count < limit then
        redis.call('ZADD', key, now, member)
        redis.call('PEXPIRE', key, window)
        return {1, limit - count - 1, now + window}
    end

    local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
    return {0, 0, tonumber(oldest[2]) + window}
`)

// Allow はリクエストが許可されるかチェックします
func (r *RateLimiter) Allow(ctx context.Context, identifier string, policy RateLimitPolicy) (*RateLimitResult, error) {
	now := time.Now().UnixMilli()
	member := fmt.Sprintf("%d:%d", now, time.Now().UnixNano())

	result, err := slidingWindowScript.Run(ctx, r.client,
		[]string{RateLimitKey(policy.Scope, identifier)},
		now, policy.Window.Milliseconds(), policy.Requests, member,
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if len(result) != 3 {
		return nil, fmt.Errorf("unexpected rate limit result: %v", result)
	}

	return &RateLimitResult{
		Allowed:   result[0] == 1,
		Remaining: result[1],
		RetryAt:   time.UnixMilli(result[2]),
	}, nil
}
