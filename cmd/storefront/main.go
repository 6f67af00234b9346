package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fjod/go_cart/storefront/internal/catalog"
	"github.com/fjod/go_cart/storefront/internal/config"
	"github.com/fjod/go_cart/storefront/internal/events"
	h "github.com/fjod/go_cart/storefront/internal/http"
	"github.com/fjod/go_cart/storefront/internal/logger"
	"github.com/fjod/go_cart/storefront/internal/snapshot"
	"github.com/fjod/go_cart/storefront/internal/visitor"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	logg := logger.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logg)

	ctx := context.Background()

	products, closeCatalog, err := openCatalog(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}
	defer closeCatalog()

	backend, closeSnapshots, err := openSnapshots(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open snapshot store: %v", err)
	}
	defer closeSnapshots()
	snapshots := snapshot.NewBreakerStore(backend, snapshot.BreakerSettings{Name: cfg.SnapshotBackend}, logg)

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaTopic, logg, cfg.KafkaBrokers...)
		defer func() {
			if err := kp.Close(); err != nil {
				logg.Error("failed to close kafka publisher", "error", err)
			}
		}()
		publisher = kp
		logg.Info("publishing cart activity", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	}

	registry := visitor.NewRegistry(snapshots, publisher, logg, visitor.Settings{
		Namespace:  cfg.SnapshotNamespace,
		ToastTTL:   cfg.ToastTTL,
		EntryDelay: cfg.EntryDelay,
		IdleTTL:    cfg.VisitorIdleTTL,
	})
	defer registry.Close()

	router := h.NewRouter(h.RouterDeps{
		Catalog:        products,
		Visitors:       registry,
		Sessions:       h.NewCookieStore(cfg.SessionSecret),
		Log:            logg,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logg.Info("storefront listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("shutting down storefront")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("server forced to shutdown", "error", err)
	}
	logg.Info("storefront stopped")
}

func openCatalog(ctx context.Context, cfg *config.Config) (catalog.Catalog, func(), error) {
	switch cfg.CatalogBackend {
	case "static":
		c, err := catalog.NewStatic(catalog.DefaultProducts())
		return c, func() {}, err
	case "sqlite":
		c, err := catalog.NewSQLiteCatalog(cfg.CatalogDBPath)
		if err != nil {
			return nil, nil, err
		}
		if err := c.RunMigrations(); err != nil {
			c.Close()
			return nil, nil, err
		}
		if err := c.Seed(ctx, catalog.DefaultProducts()); err != nil {
			c.Close()
			return nil, nil, err
		}
		return c, func() { c.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown catalog backend %q", cfg.CatalogBackend)
	}
}

func openSnapshots(ctx context.Context, cfg *config.Config) (snapshot.Store, func(), error) {
	switch cfg.SnapshotBackend {
	case "memory":
		return snapshot.NewMemoryStore(), func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("redis connection failed: %w", err)
		}
		return snapshot.NewRedisStore(client, cfg.SnapshotTTL), func() { client.Close() }, nil
	case "mongo":
		db, err := snapshot.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName, snapshot.MongoSettings{
			ConnectTimeout: cfg.MongoConnTimeout,
			MaxPoolSize:    uint64(cfg.MongoMaxPoolSize),
			MinPoolSize:    uint64(cfg.MongoMinPoolSize),
		})
		if err != nil {
			return nil, nil, err
		}
		store := snapshot.NewMongoStore(db)
		if err := store.CreateIndexes(ctx); err != nil {
			db.Client().Disconnect(ctx)
			return nil, nil, err
		}
		return store, func() { db.Client().Disconnect(context.Background()) }, nil
	default:
		return nil, nil, fmt.Errorf("unknown snapshot backend %q", cfg.SnapshotBackend)
	}
}
