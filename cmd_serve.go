package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"foodees-api/access"
	"foodees-api/cart"
	"foodees-api/config"
	"foodees-api/handlers"
	"foodees-api/metrics"
	"foodees-api/middleware"
	"foodees-api/routes"
	"foodees-api/storage"
	"foodees-api/store"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var seedOnServe bool

// foodees serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, db, err := boot()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st := store.New(db)
		if seedOnServe {
			if err := seedDemo(ctx, st, log, seedWithOrders); err != nil {
				return err
			}
		}

		carts, closeCarts, err := newCartStore(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer closeCarts()

		svc := access.New(st, access.WithLogger(log))
		h := handlers.New(svc, carts, storage.NewLocalDisk(cfg.ImageDir, "images"), cfg.JWTSecret, cfg.TokenTTL, log)

		gin.SetMode(cfg.GinMode)
		r := gin.New()
		r.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.CORS(), metrics.Middleware())

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		routes.SetupRoutes(r, h, routes.Deps{
			Secret:   cfg.JWTSecret,
			Sessions: svc,
			ImageDir: cfg.ImageDir,
			Ping:     sqlDB.PingContext,
		})

		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}
		errCh := make(chan error, 1)
		go func() {
			log.WithField("addr", srv.Addr).Info("server listening")
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&seedOnServe, "seed", false, "insert demo data before serving")
	serveCmd.Flags().BoolVar(&seedWithOrders, "with-orders", false, "with --seed, also place sample orders")
}

// newCartStore picks Redis when REDIS_ADDR is set, memory otherwise.
func newCartStore(ctx context.Context, cfg config.Config, log *logrus.Logger) (cart.Store, func(), error) {
	if cfg.RedisAddr == "" {
		log.Info("carts kept in memory")
		return cart.NewMemoryStore(), func() {}, nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
	}
	log.WithField("addr", cfg.RedisAddr).Info("carts kept in redis")
	return cart.NewRedisStore(rdb, cfg.TokenTTL), func() { rdb.Close() }, nil
}
