package cache

import (
	"fmt"

	"github.com/google/uuid"
)

// KeyPrefix はRedisキーのプレフィックスを定義します
type KeyPrefix string

const (
	// レート制限
	PrefixRateLimit KeyPrefix = "linkdrop:ratelimit" // linkdrop:ratelimit:{scope}:{identifier}

	// キャッシュ
	PrefixCache KeyPrefix = "linkdrop:cache" // linkdrop:cache:{namespace}:{key}
)

// RateLimitKey はレート制限キーを生成します
func RateLimitKey(scope, identifier string) string {
	return fmt.Sprintf("%s:%s:%s", PrefixRateLimit, scope, identifier)
}

// CacheKey は汎用キャッシュキーを生成します
func CacheKey(namespace, key string) string {
	return fmt.Sprintf("%s:%s:%s", PrefixCache, namespace, key)
}

// OwnerKey は所有者ユーザー単位のキャッシュキー部分を生成します
func OwnerKey(userID uuid.UUID) string {
	return "owner:" + userID.String()
}
