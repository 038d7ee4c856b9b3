package app

import (
	"context"
	"fmt"
	"time"

	"Catalog/internal/cache"
	"Catalog/internal/config"
	"Catalog/internal/logger"
	"Catalog/internal/repo"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type App struct {
	cfg    config.Config
	log    *logger.Logger
	repo   *repo.PGCourseRepo
	redis  *redis.Client
	router *gin.Engine
}

// New connects to Postgres (and Redis when configured), makes sure the
// courses table exists and builds the router.
func New(ctx context.Context, cfg config.Config, log *logger.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	db, err := newPostgres(ctx, cfg.PG)
	if err != nil {
		return nil, err
	}
	a.repo = repo.NewPGCourseRepo(db, log.With("component", "repo"))

	if err := a.repo.EnsureSchema(ctx); err != nil {
		a.repo.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	var courseCache *cache.CourseCache
	if cfg.Redis.Enabled() {
		rdb, err := newRedis(ctx, cfg.Redis)
		if err != nil {
			a.repo.Close()
			return nil, err
		}
		a.redis = rdb
		courseCache = cache.NewCourseCache(rdb, cfg.Redis.ListTTL.Duration())
		log.Info("course list cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.ListTTL.Duration())
	} else {
		log.Info("course list cache disabled")
	}

	a.router = newRouter(cfg, log, a.repo, courseCache)
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

// Close releases Redis and the storage pool. Failures are logged, never returned.
func (a *App) Close(ctx context.Context) error {
	_ = ctx
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("redis close failed", "error", err)
		}
	}
	if a.repo != nil {
		a.repo.Close()
	}
	return nil
}

func newPostgres(ctx context.Context, cfg config.PGConfig) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pg parse config: %w", err)
	}
	pcfg.MaxConns = cfg.MaxConns
	pcfg.MinConns = cfg.MinConns
	pcfg.MaxConnIdleTime = 5 * time.Minute
	pcfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}

	return pool, nil
}

func newRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

func newRouter(cfg config.Config, log *logger.Logger, courses repo.CourseRepo, courseCache *cache.CourseCache) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))

	Setup(r, cfg, log, courses, courseCache)
	return r
}
