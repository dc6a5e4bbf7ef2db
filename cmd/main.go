package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lmstudio-node/internal/cache"
	"lmstudio-node/internal/config"
	"lmstudio-node/internal/handler"
	"lmstudio-node/internal/lmstudio"
	"lmstudio-node/internal/metrics"
	"lmstudio-node/internal/node"

	_ "lmstudio-node/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title LM Studio Chat Node API
// @version 1.0
// @description Sidecar service exposing the LM Studio chat-completion node to a graph host.
// @BasePath /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := log.Default()

	rest := lmstudio.NewRESTTransport()

	// SDK binding presence is decided once here and injected; the node
	// never re-checks it.
	var sdk lmstudio.Transport
	if cfg.LMStudio.SDKEnable {
		client := openai.NewClient(
			option.WithAPIKey(cfg.LMStudio.APIKey),
			option.WithBaseURL(cfg.LMStudio.BaseURL+"/v1"),
		)
		sdk = lmstudio.NewSDKTransport(client)
		logger.Println("LM Studio SDK binding enabled")
	} else {
		logger.Println("LM Studio SDK binding disabled, using REST API only")
	}

	chatNode := node.New(logger, sdk, rest)

	if cfg.CacheEnable {
		redisCache := cache.NewRedisCache(cfg.RedisConfig)
		chatNode.SetCacheClient(redisCache)
		logger.Println("set redis as cache")
	}

	h := handler.NewNodeHandler(chatNode)

	r := chi.NewRouter()
	r.Use([]func(http.Handler) http.Handler{
		middleware.Logger,
		middleware.Recoverer,
		middleware.Throttle(cfg.Server.ThrottleLimit),
		middleware.Timeout(cfg.Server.Timeout),
		metrics.Middleware,
	}...)

	r.Post("/invoke", h.Invoke)
	r.Get("/schema", h.Schema)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Printf("server started :%s\n", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Println("server stopped")
}
