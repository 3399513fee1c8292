package di

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Hiro-mackay/linkdrop/internal/domain/service"
	"github.com/Hiro-mackay/linkdrop/internal/infrastructure/cache"
	"github.com/Hiro-mackay/linkdrop/internal/infrastructure/database"
	"github.com/Hiro-mackay/linkdrop/internal/infrastructure/storage"
	"github.com/Hiro-mackay/linkdrop/pkg/config"
	"github.com/Hiro-mackay/linkdrop/pkg/jwt"
	"github.com/Hiro-mackay/linkdrop/pkg/logger"
)

// workspaceCacheNamespace はワークスペース解決キャッシュの名前空間です
const workspaceCacheNamespace = "workspace"

// Container はアプリケーションの依存関係を保持するDIコンテナです
type Container struct {
	// Infrastructure
	PgClient    *database.PostgresClient
	RedisClient *cache.RedisClient
	TxManager   *database.TxManager
	MinIOClient *storage.MinIOClient

	// Services
	Verifier       *jwt.Verifier
	RateLimiter    *cache.RateLimiter
	Breaker        *storage.Breaker
	StorageService service.StorageService
	Fetcher        service.ObjectFetcher

	// Storage Repositories (for tests and direct access)
	StorageRepos *StorageRepositories

	// Storage UseCases
	Storage *StorageUseCases

	// config
	config *config.Config
}

// Options はContainer作成時のオプションを定義します
type Options struct {
	PostgresPool   *pgxpool.Pool
	RedisClient    *redis.Client
	StorageService service.StorageService
}

// NewContainer は新しいContainerを作成します
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	return NewContainerWithOptions(ctx, cfg, Options{})
}

// NewContainerWithOptions はオプションを指定してContainerを作成します
func NewContainerWithOptions(ctx context.Context, cfg *config.Config, opts Options) (*Container, error) {
	c := &Container{
		config: cfg,
	}

	// PostgreSQL
	if opts.PostgresPool != nil {
		c.TxManager = database.NewTxManager(opts.PostgresPool)
	} else {
		logger.Info(ctx, "connecting to PostgreSQL...")
		pgClient, err := database.NewPostgresClient(ctx, cfg.Database.URL, database.DBConfigFrom(cfg.Database))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		c.PgClient = pgClient
		c.TxManager = database.NewTxManager(pgClient.Pool())
		logger.Info(ctx, "connected to PostgreSQL")

		if cfg.Database.MigrateOnStart {
			if err := pgClient.Migrate(ctx); err != nil {
				c.Close()
				return nil, fmt.Errorf("failed to migrate: %w", err)
			}
			logger.Info(ctx, "schema applied")
		}
	}

	// Redis (任意。無い場合はレート制限とキャッシュを無効化)
	redisClient := opts.RedisClient
	if redisClient == nil && cfg.Redis.URL != "" {
		logger.Info(ctx, "connecting to Redis...")
		rc, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.RedisClient = rc
		redisClient = rc.Client()
		logger.Info(ctx, "connected to Redis")
	}
	if redisClient != nil && cfg.RateLimit.Enabled {
		c.RateLimiter = cache.NewRateLimiter(redisClient)
	}

	// JWT Verifier
	verifier, err := jwt.NewVerifier(jwt.Config{
		SecretKey: cfg.JWT.SecretKey,
		Issuer:    cfg.JWT.Issuer,
		Audience:  cfg.JWT.Audience,
		Expiry:    cfg.JWT.AccessTokenExpiry,
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to create JWT verifier: %w", err)
	}
	c.Verifier = verifier

	// Object Storage
	c.Breaker = storage.NewBreaker("storage", cfg.Breaker)
	if opts.StorageService != nil {
		c.StorageService = opts.StorageService
	} else {
		logger.Info(ctx, "connecting to object storage...")
		minioClient, err := storage.NewMinIOClient(cfg.Storage)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
		}
		if err := minioClient.EnsureBucket(ctx); err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to ensure bucket: %w", err)
		}
		c.MinIOClient = minioClient
		c.StorageService = storage.NewStorageService(minioClient, c.Breaker)
		logger.Info(ctx, "connected to object storage",
			"endpoint", cfg.Storage.Endpoint,
			"bucket", cfg.Storage.BucketName,
		)
	}
	c.Fetcher = storage.NewHTTPObjectFetcher(cfg.Archive.FetchRetries)

	// Repositories
	var workspaceCache *cache.Cache
	if redisClient != nil {
		workspaceCache = cache.NewCache(redisClient, workspaceCacheNamespace, cache.WorkspaceCacheTTL)
	}
	c.StorageRepos = NewStorageRepositories(c.TxManager, workspaceCache)

	// UseCases
	c.Storage = NewStorageUseCases(c.StorageRepos, c.TxManager, c.StorageService, c.Fetcher, cfg)

	return c, nil
}

// Config は読み込み済みの設定を返します
func (c *Container) Config() *config.Config {
	return c.config
}

// Close はリソースをクリーンアップします
func (c *Container) Close() error {
	var errs []error

	if c.PgClient != nil {
		c.PgClient.Close()
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %v", errs)
	}
	return nil
}
