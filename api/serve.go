package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v2"

	"github.com/rogerio-castellano/loja-api/internal/db"
	api "github.com/rogerio-castellano/loja-api/internal/http"
	"github.com/rogerio-castellano/loja-api/internal/http/ban"
	"github.com/rogerio-castellano/loja-api/internal/http/handlers"
	rl "github.com/rogerio-castellano/loja-api/internal/http/rate_limiter"
	"github.com/rogerio-castellano/loja-api/internal/logging"
	"github.com/rogerio-castellano/loja-api/internal/redissvc"
	"github.com/rogerio-castellano/loja-api/internal/repo"
	"github.com/rogerio-castellano/loja-api/internal/service"
)

const visitorCleanupInterval = time.Minute

func serve(c *cli.Context) error {
	ctx := c.Context
	memory := c.Bool("memory")

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if memory {
		err = cfg.Validate("Database.URL")
	} else {
		err = cfg.Validate()
	}
	if err != nil {
		return err
	}

	logger := logging.NewLogger(cfg.Log)

	var productRepo repo.ProductRepository
	var pinger handlers.Pinger
	if memory {
		logger.Warn().Msg("using in-memory product store, data will not survive a restart")
		productRepo = repo.NewInMemoryProductRepository()
	} else {
		database, err := db.Connect(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer database.Close()

		if c.Bool("migrate") {
			if err := db.MigrateUp(database, logger); err != nil {
				return err
			}
		}

		prometheus.MustRegister(collectors.NewDBStatsCollector(database, "loja"))
		productRepo = repo.NewPostgresProductRepository(database, cfg.Database.QueryTimeout)
		pinger = database
	}

	handlers.SetProductService(service.NewProductService(productRepo))
	handlers.SetPinger(pinger)

	routerCfg := api.RouterConfig{
		Logger:            logger,
		AllowedOrigins:    cfg.CORS.AllowedOrigins,
		TrustProxyHeaders: cfg.Server.TrustProxyHeaders,
	}
	if cfg.Auth.Enabled {
		routerCfg.AuthSecret = []byte(cfg.Auth.JWTSecret)
	}

	var limiter *rl.Limiter
	if cfg.RateLimit.Enabled {
		var store ban.Store = ban.NewMemoryStore()
		if cfg.Redis.Addr != "" {
			rs, err := redissvc.Connect(ctx, cfg.Redis)
			if err != nil {
				return err
			}
			defer rs.Close()
			store = ban.NewRedisStore(rs)
		}

		limiter = rl.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.VisitorTTL)
		routerCfg.Limiter = limiter
		routerCfg.Guard = ban.NewGuard(store, ban.Policy{
			Strikes:  cfg.Ban.Strikes,
			Window:   cfg.Ban.Window,
			Duration: cfg.Ban.Duration,
		}, logger)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.NewRouter(routerCfg),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	var g run.Group
	g.Add(run.SignalHandler(ctx, os.Interrupt, syscall.SIGTERM))
	g.Add(func() error {
		logger.Info().Str("addr", srv.Addr).Msg("server running")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}, func(error) {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown failed")
		}
	})
	if limiter != nil {
		cleanupCtx, cancel := context.WithCancel(ctx)
		g.Add(func() error {
			return limiter.Run(cleanupCtx, visitorCleanupInterval)
		}, func(error) {
			cancel()
		})
	}

	err = g.Run()
	var sig run.SignalError
	if errors.As(err, &sig) {
		logger.Info().Str("signal", sig.Signal.String()).Msg("server stopped")
		return nil
	}
	return err
}
