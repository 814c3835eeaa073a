package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/autoful/console-gateway/config"
	"github.com/autoful/console-gateway/internal/auth"
	"github.com/autoful/console-gateway/internal/bootstrap"
	"github.com/autoful/console-gateway/internal/gateway"
	"github.com/autoful/console-gateway/internal/identity"
	"github.com/autoful/console-gateway/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	rdb, err := bootstrap.RedisFromConfig(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("open redis: %v", err)
	}
	defer rdb.Close()

	idpClient := identity.NewClient(identity.ClientConfig{APIKey: cfg.Firebase.APIKey})
	supplier := identity.NewSupplier(idpClient, identity.NewRedisSessionStorage(rdb))

	// The Admin SDK verifier is optional: without credentials, restored
	// sessions are trusted on subject-id match alone.
	var verifier session.TokenVerifier
	if cfg.Firebase.CredentialsPath != "" {
		v, err := identity.NewVerifier(ctx, cfg.Firebase.CredentialsPath)
		if err != nil {
			log.Fatalf("init firebase verifier: %v", err)
		}
		verifier = v
	}

	store := session.NewStore()
	bridge := session.NewBridge(store, session.NewRedisPersistence(rdb), supplier, verifier)
	bridge.Run(ctx)
	defer bridge.Close()

	if err := supplier.Restore(ctx); err != nil {
		log.Printf("[warn] operation=restore_session error=%v", err)
	}

	refresher := identity.NewRefresher(supplier)
	if err := refresher.Start(); err != nil {
		log.Fatalf("start refresher: %v", err)
	}
	defer refresher.Stop()

	gw := gateway.NewClient(cfg.Backend.BaseURL, supplier, cfg.Backend.Timeout)
	authService := auth.NewService(supplier, gw, store)

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    "console-gateway",
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.App.AllowedOrigins,
		Redis:          rdb,
		Store:          store,
		AuthService:    authService,
		Gateway:        gw,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
