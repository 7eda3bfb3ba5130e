// Package bootstrap provides dependency initialization for the CLI.
package bootstrap

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/maauso/vinylsplit/internal/album"
	"github.com/maauso/vinylsplit/internal/audio"
	"github.com/maauso/vinylsplit/internal/config"
	"github.com/maauso/vinylsplit/internal/export"
	"github.com/maauso/vinylsplit/internal/musicbrainz"
	"github.com/maauso/vinylsplit/internal/pipeline"
	"github.com/maauso/vinylsplit/internal/storage"
)

// Dependencies holds all initialized dependencies for the commands.
type Dependencies struct {
	FFmpeg   *audio.FFmpeg
	Source   album.Source
	Store    storage.Store
	Pipeline *pipeline.Service
}

// NewDependencies creates and initializes all dependencies for the
// application. The album source is the cache file when it exists on
// disk, MusicBrainz otherwise.
func NewDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	store, err := initStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	ffmpeg := audio.NewFFmpeg(cfg.FFmpegPath)
	source := initSource(cfg, logger)

	exporter := export.NewExporter(ffmpeg, store, logger, cfg.MaxConcurrentExports)
	svc := pipeline.NewService(source, ffmpeg, exporter, logger)

	return &Dependencies{
		FFmpeg:   ffmpeg,
		Source:   source,
		Store:    store,
		Pipeline: svc,
	}, nil
}

// NewMusicBrainz creates the MusicBrainz client from the configuration.
func NewMusicBrainz(cfg *config.Config) *musicbrainz.Client {
	var opts []musicbrainz.ClientOption
	if cfg.MusicBrainzURL != "" {
		opts = append(opts, musicbrainz.WithBaseURL(cfg.MusicBrainzURL))
	}
	if cfg.MusicBrainzUserAgent != "" {
		opts = append(opts, musicbrainz.WithUserAgent(cfg.MusicBrainzUserAgent))
	}
	return musicbrainz.NewClient(opts...)
}

// initSource prefers the local cache file over a network lookup.
func initSource(cfg *config.Config, logger *slog.Logger) album.Source {
	if _, err := os.Stat(cfg.AlbumCacheFile); err == nil {
		logger.Info("using album cache file",
			slog.String("path", cfg.AlbumCacheFile),
		)
		return album.NewCacheFile(cfg.AlbumCacheFile)
	}

	logger.Info("album cache file not found, using MusicBrainz",
		slog.String("path", cfg.AlbumCacheFile),
	)
	return NewMusicBrainz(cfg)
}

// initStore creates the appropriate publication backend based on
// configuration.
func initStore(cfg *config.Config, logger *slog.Logger) (storage.Store, error) {
	if cfg.S3Enabled() {
		s3Cfg := storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		}
		s3Store, err := storage.NewS3Store(s3Cfg)
		if err != nil {
			return nil, fmt.Errorf("create S3 store: %w", err)
		}
		logger.Info("S3 store configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
		)
		return s3Store, nil
	}

	localStore, err := storage.NewLocalStore(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("create local store: %w", err)
	}
	logger.Info("local store configured",
		slog.String("output_dir", cfg.OutputDir),
	)
	return localStore, nil
}
