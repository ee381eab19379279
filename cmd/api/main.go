package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"animal-shelter/internal/adapters/objectstore/disk"
	"animal-shelter/internal/adapters/objectstore/s3"
	pg "animal-shelter/internal/adapters/storage/postgres"
	"animal-shelter/internal/platform/config"
	"animal-shelter/internal/platform/logger"
	"animal-shelter/internal/ports/objectstore"
	"animal-shelter/internal/router"
)

// @title Animal Shelter API
// @version 1.0
// @description Fichas de gatos del refugio con fotos en un object store.
// @BasePath /
func main() {
	cfg := config.FromEnv()
	log := logger.NewFromEnv()

	ctx := context.Background()

	var db *sql.DB
	if cfg.DBDSN != "" {
		opened, err := pg.Open(ctx, cfg.DBDSN)
		if err != nil {
			log.Error("cannot open postgres", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		if err := pg.Migrate(ctx, opened); err != nil {
			log.Error("migrations failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		db = opened
	} else {
		log.Warn("DB_DSN not set, using in-memory store", nil)
	}

	var gw objectstore.Gateway
	switch cfg.StorageBackend {
	case config.BackendS3:
		g, err := s3.New(ctx, cfg.S3, log)
		if err != nil {
			log.Error("cannot init s3 gateway", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		gw = g
	case config.BackendDisk:
		g, err := disk.New(cfg.PhotosDir)
		if err != nil {
			log.Error("cannot init disk gateway", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		gw = g
	default:
		log.Warn("photo storage disabled", nil)
	}

	photosDir := ""
	if cfg.StorageBackend == config.BackendDisk {
		photosDir = cfg.PhotosDir
	}

	r := router.NewRouter(router.Options{
		DB:        db,
		Gateway:   gw,
		PhotosDir: photosDir,
		Log:       log,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	log.Info("starting server", map[string]any{
		"addr":    cfg.Addr,
		"backend": string(cfg.StorageBackend),
	})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
