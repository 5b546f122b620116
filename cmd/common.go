package cmd

import (
	"context"
	"fmt"

	"github.com/edward9487/minecraft-mod-converter/config"
	"github.com/edward9487/minecraft-mod-converter/db"
	"github.com/edward9487/minecraft-mod-converter/list"
	"github.com/edward9487/minecraft-mod-converter/logger"
	"github.com/edward9487/minecraft-mod-converter/modrinth"
	"github.com/edward9487/minecraft-mod-converter/resolver"
	"github.com/edward9487/minecraft-mod-converter/share"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// bootstrap handles shared initialization logic for commands: loads the
// configuration and the working list from disk.
func bootstrap(path string) (config.Config, *list.Store, *list.State) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logger.Log.Fatalw("Failed to load configuration", zap.Error(err))
	}

	store := list.NewStore(afero.NewOsFs(), cfg.ListPath)
	state, err := store.Load(cfg.MinecraftVersion, cfg.MinecraftLoader)
	if err != nil {
		logger.Log.Fatalw("Failed to load mod list", zap.Error(err))
	}

	return cfg, store, state
}

// newResolver builds the Modrinth-backed resolver.
func newResolver(cfg config.Config) *resolver.Resolver {
	client, err := modrinth.NewClient(cfg)
	if err != nil {
		logger.Log.Fatalw("Failed to create Modrinth client", zap.Error(err))
	}
	return resolver.New(client, logger.Log, cfg.ResolveConcurrency)
}

// newShareCodec selects the configured share backend once at startup and
// wraps it in the codec. Business logic never branches on the environment.
func newShareCodec(cfg config.Config) *share.Codec {
	store, err := newShareStore(cfg)
	if err != nil {
		logger.Log.Fatalw("Failed to open share store",
			zap.String("backend", cfg.ShareBackend), zap.Error(err))
	}
	return share.NewCodec(store, logger.Log)
}

func newShareStore(cfg config.Config) (share.Store, error) {
	switch cfg.ShareBackend {
	case config.BackendSQLite:
		gdb, err := db.OpenDatabase(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		return db.NewShareStore(gdb), nil
	case config.BackendRedis:
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		cl := redis.NewClient(opt)
		if _, err := cl.Ping(context.Background()).Result(); err != nil {
			return nil, fmt.Errorf("cannot reach redis: %w", err)
		}
		return share.NewRedisStore(cl), nil
	case config.BackendFile:
		return share.NewFileStore(afero.NewOsFs(), cfg.SharesDir()), nil
	default:
		return nil, fmt.Errorf("unknown share backend %q", cfg.ShareBackend)
	}
}

// shareURL renders the share link carried as a query parameter on the
// application URL, or just the code when no base URL is configured.
func shareURL(cfg config.Config, code string) string {
	if cfg.ShareBaseURL == "" {
		return code
	}
	return cfg.ShareBaseURL + "?list=" + code
}

// saveState persists the working list and dies loudly if that fails.
func saveState(store *list.Store, state *list.State) {
	if err := store.Save(state); err != nil {
		logger.Log.Fatalw("Failed to save mod list", zap.Error(err))
	}
}
