package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"videothingy/trailer-portal/config"
	"videothingy/trailer-portal/handlers"
	"videothingy/trailer-portal/internal/guard"
	"videothingy/trailer-portal/internal/store"
	"videothingy/trailer-portal/internal/upload"
	"videothingy/trailer-portal/views"
)

const shutdownTimeout = 10 * time.Second

func main() {
	settings, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := config.NewLogger(settings.LogLevel)
	if settings.DotenvLoaded {
		logger.Info("Loaded environment from .env")
	} else {
		logger.Debug("No .env file found, using process environment")
	}

	// Initialize Supabase client
	client, err := config.NewSupabaseClient(settings)
	if err != nil {
		logger.Fatalf("Failed to initialize Supabase: %v", err)
	}

	videos := store.NewVideoStore(client, logger)
	blobs, err := newBlobStore(settings, client.Storage, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize blob store: %v", err)
	}

	var opts []upload.Option
	if settings.UploadTempDir != "" {
		opts = append(opts, upload.WithTempDir(settings.UploadTempDir))
	}
	pipeline := upload.NewPipeline(videos, blobs, logger, opts...)

	renderer, err := views.New()
	if err != nil {
		logger.Fatalf("Failed to parse templates: %v", err)
	}

	hosts := hostPolicy(settings, logger)
	h := handlers.NewApplicationHandler(videos, blobs, pipeline, renderer, logger, settings)
	app := handlers.NewApp(h, hosts)

	go func() {
		logger.WithFields(logrus.Fields{
			"addr":        settings.Addr(),
			"version":     settings.Version,
			"host_policy": hosts.Mode(),
			"admin":       settings.AdminKey != "",
		}).Info("Starting trailer portal")
		if err := app.Listen(settings.Addr()); err != nil {
			logger.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
	}
}

func newBlobStore(settings *config.Settings, storage store.StorageClient, logger *logrus.Logger) (store.BlobStore, error) {
	if !settings.UsesMinio() {
		return store.NewSupabaseBlobs(storage, settings.SupabaseBucket, logger), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.WithField("endpoint", settings.MinioEndpoint).Info("Using S3-compatible blob store")
	blobs, err := store.NewMinioBlobs(ctx, store.MinioOptions{
		Endpoint:   settings.MinioEndpoint,
		AccessKey:  settings.MinioAccessKey,
		SecretKey:  settings.MinioSecretKey,
		Bucket:     settings.SupabaseBucket,
		UseSSL:     settings.MinioUseSSL,
		PublicBase: settings.MinioPublicBase,
	}, logger)
	if err != nil {
		return nil, err
	}
	return blobs, nil
}

func hostPolicy(settings *config.Settings, logger *logrus.Logger) guard.HostPolicy {
	allowed := guard.ParseHostList(settings.AllowedHosts)
	switch {
	case len(allowed) > 0:
		if settings.CanonicalHost != "" {
			logger.Warn("Both ALLOWED_HOSTS and CANONICAL_HOST are set, using ALLOWED_HOSTS")
		}
		return guard.AllowList(allowed)
	case settings.CanonicalHost != "":
		return guard.Canonical(settings.CanonicalHost)
	default:
		return guard.HostPolicy{}
	}
}
