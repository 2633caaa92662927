package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"stakehub/internal/app"
	"stakehub/internal/config"
	"stakehub/internal/logging"
	"stakehub/internal/transport/rest"
	"stakehub/internal/transport/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("startup failed", zap.Error(err))
	}
	defer a.Close(context.Background())

	log.Info("assistant configured", zap.String("model", cfg.AI.Model), zap.Bool("enabled", a.Assistant.IsAvailable()))

	// Initialize WebSocket hub
	wsHub := ws.NewHub(log)
	defer wsHub.Close()

	// Inject broadcaster (wsHub implements service.Broadcaster)
	a.SetBroadcaster(wsHub)

	router := rest.NewRouter(&rest.Container{
		HTTP:                cfg.HTTP,
		AuthService:         a.Auth,
		StakeholderService:  a.Stakeholders,
		EngagementService:   a.Engagements,
		RelationshipService: a.Relationships,
		InsightService:      a.Insights,
		DashboardService:    a.Dashboard,
		WSHub:               wsHub,
		Log:                 log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr), zap.String("username", cfg.Auth.Username))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("listen failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	log.Info("server exited")
}
