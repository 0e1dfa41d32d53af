// Command server runs the funko catalog socket server: a TLS listener
// speaking the line-delimited JSON protocol, backed by MongoDB, with an
// LRU+TTL cache, mutation notifications, and an admin HTTP listener for
// health and metrics.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/madirex/funko-server/internal/api"
	"github.com/madirex/funko-server/internal/backup"
	"github.com/madirex/funko-server/internal/cache"
	"github.com/madirex/funko-server/internal/core/domain"
	"github.com/madirex/funko-server/internal/core/service"
	mongodb "github.com/madirex/funko-server/internal/infrastructure/db/mongo"
	redisdb "github.com/madirex/funko-server/internal/infrastructure/db/redis"
	"github.com/madirex/funko-server/internal/notify"
	"github.com/madirex/funko-server/internal/pkg/config"
	"github.com/madirex/funko-server/internal/server"
	"github.com/madirex/funko-server/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// No logger yet; this is the one place a bare exit is acceptable.
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	log.Info().Str("env", cfg.Env).Msg("funko catalog server starting")

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer mongoClient.Disconnect(context.Background())

	repo := mongodb.NewFunkoRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	directory := service.NewUserDirectory()
	if err := seedUsers(directory); err != nil {
		log.Fatal().Err(err).Msg("user seeding failed")
	}

	auth := service.NewAuthService(directory, cfg.TokenSecret, cfg.TokenTTL)
	funkoCache := cache.New(cfg.CacheSize, cfg.CacheTTL, cfg.CacheSweepInterval, log)
	hub := notify.NewHub(cfg.HubBuffer, log)
	backupSvc := backup.NewJSONBackup(log)
	svc := service.NewFunkoService(repo, funkoCache, hub, backupSvc, log)
	defer svc.Shutdown()

	// The bulk preload must finish before any connection is accepted.
	if cfg.CSVPath != "" {
		if err := preloadCatalog(ctx, cfg.CSVPath, repo, log); err != nil {
			log.Fatal().Err(err).Msg("catalog preload failed")
		}
	}

	if cfg.Redis.Addr != "" {
		redisClient, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer redisClient.Close()
		relay := redisdb.NewRelay(redisClient, hub, cfg.Redis.Channel, log)
		go relay.Run(ctx)
	}

	admin := api.NewRouter()
	go func() {
		log.Info().Str("addr", cfg.AdminAddr).Msg("admin listener starting")
		if err := admin.Start(cfg.AdminAddr); err != nil {
			log.Warn().Err(err).Msg("admin listener stopped")
		}
	}()
	defer admin.Shutdown(context.Background())

	listener, err := server.NewTLSListener(cfg.Port, cfg.TLSCertFile, cfg.TLSKeyFile)
	if err != nil {
		log.Fatal().Err(err).Msg("tls listener failed")
	}

	acceptor := server.NewAcceptor(listener, server.Deps{
		Service:             svc,
		Auth:                auth,
		Users:               directory,
		Logger:              log,
		DeleteRequiresAdmin: cfg.DeleteRequiresAdmin,
	})
	if err := acceptor.Serve(ctx); err != nil {
		log.Fatal().Err(err).Msg("acceptor failed")
	}
	log.Info().Msg("funko catalog server stopped")
}

// seedUsers installs the fixed credential set. There is no registration flow;
// the directory is immutable once serving begins.
func seedUsers(directory *service.UserDirectory) error {
	seeds := []struct {
		id, username, password string
		role                   domain.Role
	}{
		{"1", "Madi", "madi1234", domain.RoleAdmin},
		{"2", "Alex", "alex1234", domain.RoleUser},
	}
	for _, s := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		directory.Add(domain.User{
			ID:           s.id,
			Username:     s.username,
			PasswordHash: string(hash),
			Role:         s.role,
		})
	}
	return nil
}

// preloadCatalog bulk-imports the CSV seed into the store. Funkos already
// present under the same id are replaced rather than duplicated.
func preloadCatalog(ctx context.Context, path string, repo *mongodb.FunkoRepository, log zerolog.Logger) error {
	funkos, err := backup.ReadCSV(path, log)
	if err != nil {
		return err
	}
	for _, f := range funkos {
		if _, err := repo.FindByID(ctx, f.ID); err == nil {
			if _, err := repo.Update(ctx, f.ID, f); err != nil {
				return err
			}
			continue
		}
		if _, err := repo.Save(ctx, f); err != nil {
			return err
		}
	}
	log.Info().Int("funkos", len(funkos)).Str("path", path).Msg("catalog preloaded")
	return nil
}
