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

	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/logger"
	producthandler "storefront/internal/product/handler"
	productrepo "storefront/internal/product/repository"
	productservice "storefront/internal/product/service"
	"storefront/internal/security"
	"storefront/internal/server"
	sessionhandler "storefront/internal/session/handler"
	sessionrepo "storefront/internal/session/repository"
	sessionservice "storefront/internal/session/service"
	userhandler "storefront/internal/user/handler"
	userrepo "storefront/internal/user/repository"
	userservice "storefront/internal/user/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog := logger.New(cfg.LogLevel, cfg.Env)
	defer zlog.Sync() //nolint:errcheck

	privateKey, err := security.ParsePrivateKey(cfg.JWTPrivateKey)
	if err != nil {
		zlog.Fatal("JWT_PRIVATE_KEY", zap.Error(err))
	}
	publicKey, err := security.ParsePublicKey(cfg.JWTPublicKey)
	if err != nil {
		zlog.Fatal("JWT_PUBLIC_KEY", zap.Error(err))
	}
	codec, err := security.NewTokenCodec(privateKey, publicKey)
	if err != nil {
		zlog.Fatal("token codec", zap.Error(err))
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("db", zap.Error(err))
	}
	defer conn.Close()

	users := userrepo.NewPostgresRepository(conn)
	sessions := sessionrepo.NewPostgresRepository(conn)
	products := productrepo.NewPostgresRepository(conn)

	userSvc := userservice.NewService(users, security.NewHasher(cfg.BcryptCost))
	sessionMgr := sessionservice.NewManager(sessions, users, codec, cfg.AccessTTL(), cfg.RefreshTTL())
	productSvc := productservice.NewService(products)

	router := server.NewRouter(zlog, codec, sessionMgr,
		userhandler.NewHandler(userSvc, zlog),
		sessionhandler.NewHandler(sessionMgr, userSvc, zlog),
		producthandler.NewHandler(productSvc, zlog),
	)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down HTTP server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("shutdown", zap.Error(err))
	}
	zlog.Info("HTTP server stopped")
}
