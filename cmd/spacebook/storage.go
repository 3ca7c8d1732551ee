package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"spacebook/internal/kvstore"
)

// newKVStore opens the key-value backend named by the configuration.
// The file backend is the default; redis and postgres are for
// deployments where state outlives the host.
func newKVStore(ctx context.Context, cfg Config) (kvstore.Store, error) {
	switch cfg.StorageBackend {
	case "file":
		log.Info().Str("path", cfg.StateFile).Msg("using file storage")
		return kvstore.NewFileStore(cfg.StateFile)

	case "redis":
		log.Info().Str("addr", cfg.RedisAddr).Msg("using redis storage")
		return kvstore.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	case "postgres":
		log.Info().Msg("using postgres storage")
		db, err := openDatabase(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return kvstore.NewPostgresStore(ctx, db)

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
