package main

import (
	"context"
	"strings"

	cloudstorage "cloud.google.com/go/storage"
	"go.uber.org/zap"

	"finitefield.org/glb-gallery/internal/content"
	"finitefield.org/glb-gallery/internal/gallery"
	"finitefield.org/glb-gallery/internal/manifest"
	"finitefield.org/glb-gallery/internal/platform/config"
	"finitefield.org/glb-gallery/internal/platform/storage"
)

// runtime is the state shared by every sub-command.
type runtime struct {
	state   *gallery.State
	store   storage.Store
	notice  content.Notice
	storage *cloudstorage.Client
}

// bootstrap loads the manifest and opens the asset store. Nothing here is fatal: an
// unreachable manifest yields an empty gallery and a missing store disables downloads.
func bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) *runtime {
	rt := &runtime{}

	if cfg.Assets.Bucket != "" || strings.HasPrefix(strings.ToLower(cfg.Manifest.Ref), "gs://") {
		client, err := storage.NewClient(ctx, cfg.Assets.CredentialsFile)
		if err != nil {
			logger.Error("failed to initialise storage client", zap.Error(err))
		} else {
			rt.storage = client
		}
	}

	switch {
	case cfg.Assets.Bucket != "" && rt.storage != nil:
		store, err := storage.NewBucketStore(rt.storage, cfg.Assets.Bucket, storage.WithPrefix(cfg.Assets.Prefix))
		if err != nil {
			logger.Error("failed to open asset bucket", zap.String("bucket", cfg.Assets.Bucket), zap.Error(err))
		} else {
			rt.store = store
		}
	case cfg.Assets.Bucket == "":
		store, err := storage.NewDirStore(cfg.Assets.Dir)
		if err != nil {
			logger.Warn("asset directory unavailable", zap.String("dir", cfg.Assets.Dir), zap.Error(err))
		} else {
			rt.store = store
		}
	}

	src, err := manifest.OpenSource(cfg.Manifest.Ref, manifest.WithStorageClient(rt.storage))
	if err != nil {
		logger.Error("invalid manifest reference", zap.String("manifest", cfg.Manifest.Ref), zap.Error(err))
	}
	rt.state = gallery.Initialize(ctx, src, gallery.WithKind(cfg.Manifest.Kind), gallery.WithLogger(logger))

	notice, err := content.LoadNotice(cfg.Notice.File)
	if err != nil {
		logger.Warn("notice file unreadable; using default", zap.Error(err))
		notice = content.DefaultNotice()
	}
	rt.notice = notice
	return rt
}

func (rt *runtime) Close(logger *zap.Logger) {
	if rt.storage == nil {
		return
	}
	if err := rt.storage.Close(); err != nil {
		logger.Warn("storage close error", zap.Error(err))
	}
}
