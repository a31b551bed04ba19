package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"devconnect/internal/httpapi"
	"devconnect/internal/jwttoken"
	"devconnect/internal/platform/config"
	"devconnect/internal/platform/httpserver"
	"devconnect/internal/platform/logger"
	"devconnect/internal/platform/metrics"
	platformmongo "devconnect/internal/platform/mongo"
	posthandler "devconnect/internal/post/handler"
	postservice "devconnect/internal/post/service"
	poststore "devconnect/internal/post/store"
	profilehandler "devconnect/internal/profile/handler"
	profileservice "devconnect/internal/profile/service"
	profilestore "devconnect/internal/profile/store"
	"devconnect/internal/upload"
	userhandler "devconnect/internal/user/handler"
	userservice "devconnect/internal/user/service"
	userstore "devconnect/internal/user/store"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the per-context service
// packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := platformmongo.New(ctx, cfg)
	cancel()
	if err != nil {
		log.Error("mongo connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Close(shutdownCtx)
	}()

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelIndex()

	users, err := userstore.NewMongo(indexCtx, db.Database())
	if err != nil {
		log.Error("user store init failed", "error", err)
		os.Exit(1)
	}
	profiles, err := profilestore.NewMongo(indexCtx, db.Database())
	if err != nil {
		log.Error("profile store init failed", "error", err)
		os.Exit(1)
	}
	posts, err := poststore.NewMongo(indexCtx, db.Database())
	if err != nil {
		log.Error("post store init failed", "error", err)
		os.Exit(1)
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	tokens := jwttoken.NewService(cfg.JWTSigningKey)

	userSvc := userservice.New(users, tokens, m)
	profileSvc := profileservice.New(profiles, users, posts)
	postSvc := postservice.New(posts, users, m)

	profilePics := upload.NewSink(filepath.Join(cfg.PublicDir, "images"))
	postPics := upload.NewSink(filepath.Join(cfg.PublicDir, "Posts"))

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:    log,
		Verifier:  tokens,
		Users:     userhandler.New(userSvc, log),
		Profiles:  profilehandler.New(profileSvc, profilePics, log),
		Posts:     posthandler.New(postSvc, postPics, log),
		PublicDir: cfg.PublicDir,
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting devconnect server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
