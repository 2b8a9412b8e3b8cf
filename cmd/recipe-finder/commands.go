package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"recipe-finder/internal/account"
	"recipe-finder/internal/cache"
	"recipe-finder/internal/config"
	"recipe-finder/internal/database"
	"recipe-finder/internal/favorites"
	"recipe-finder/internal/metrics"
	"recipe-finder/internal/session"
	"recipe-finder/internal/shopping"
	"recipe-finder/internal/spoonacular"
	"recipe-finder/internal/web"
)

const shutdownTimeout = 10 * time.Second

func newApp() *cli.Command {
	daysFlag := func(value int, usage string) *cli.IntFlag {
		return &cli.IntFlag{
			Name:    "days",
			Aliases: []string{"d"},
			Usage:   usage,
			Value:   value,
		}
	}

	return &cli.Command{
		Name:   "recipe-finder",
		Usage:  "search recipes by ingredient and build shopping lists",
		Action: serveAction,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the web server",
				Action: serveAction,
			},
			{
				Name:   "migrate",
				Usage:  "apply database migrations and exit",
				Action: migrateAction,
			},
			{
				Name:   "cache-purge",
				Usage:  "remove expired responses from the SQLite cache",
				Action: cachePurgeAction,
			},
			{
				Name:   "metrics-cleanup",
				Usage:  "remove old API call metric records",
				Flags:  []cli.Flag{daysFlag(30, "keep records for the last N days")},
				Action: metricsCleanupAction,
			},
			{
				Name:   "usage",
				Usage:  "print daily recipe API usage",
				Flags:  []cli.Flag{daysFlag(7, "report the last N days")},
				Action: usageAction,
			},
		},
	}
}

// openDB loads the configuration and opens the migrated database.
func openDB() (*config.Config, *database.DB, error) {
	cfg, err := config.NewFromEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, db, nil
}

func serveAction(ctx context.Context, _ *cli.Command) error {
	cfg, db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	store, closeStore, err := newCacheStore(ctx, cfg, db)
	if err != nil {
		return err
	}
	defer closeStore()

	metricsStore := metrics.NewStore(db.SQL)
	recipes := spoonacular.NewClient(cfg,
		spoonacular.WithFetcher(spoonacular.NewCachingFetcher(spoonacular.NewHTTPFetcher(spoonacular.RequestTimeout), store)),
		spoonacular.WithRecorder(metricsStore),
	)

	accountRepo := account.NewRepository(db.SQL)
	shoppingRepo := shopping.NewRepository(db.SQL)

	server, err := web.NewServer(cfg, web.Services{
		Accounts:  account.NewService(accountRepo),
		Recipes:   recipes,
		Favorites: favorites.NewRepository(db.SQL),
		Shopping:  shoppingRepo,
		Generator: shopping.NewGenerator(recipes, shoppingRepo),
		Metrics:   metricsStore,
		Sessions:  session.NewManager(cfg.SessionSecret, cfg.SessionTTL, cfg.SecureCookies, accountRepo),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize web server: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("recipe finder listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server exited")
	return nil
}

// newCacheStore picks Redis when REDIS_ADDR is set and the SQLite table
// otherwise. The returned func releases the backend.
func newCacheStore(ctx context.Context, cfg *config.Config, db *database.DB) (cache.Store, func(), error) {
	if cfg.RedisAddr == "" {
		log.Info("using sqlite response cache")
		return cache.NewSQLStore(db.SQL), func() {}, nil
	}

	client, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	log.Info("using redis response cache")
	return cache.NewRedisStore(client), func() { client.Close() }, nil
}

func migrateAction(ctx context.Context, _ *cli.Command) error {
	cfg, err := config.NewFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := database.RunMigrations(cfg.DatabasePath); err != nil {
		return err
	}
	fmt.Printf("Database %s is up to date.\n", cfg.DatabasePath)
	return nil
}

func cachePurgeAction(ctx context.Context, _ *cli.Command) error {
	_, db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	removed, err := cache.NewSQLStore(db.SQL).Purge(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Removed %s expired cache %s.\n", humanize.Comma(removed), plural(removed, "entry", "entries"))
	return nil
}

func metricsCleanupAction(ctx context.Context, cmd *cli.Command) error {
	days := cmd.Int("days")
	if days <= 0 {
		return fmt.Errorf("--days must be positive, got %d", days)
	}

	_, db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	affected, err := metrics.NewStore(db.SQL).Cleanup(ctx, days)
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}
	fmt.Printf("Successfully removed %s old metric %s.\n", humanize.Comma(affected), plural(affected, "record", "records"))
	return nil
}

func usageAction(ctx context.Context, cmd *cli.Command) error {
	days := cmd.Int("days")
	if days <= 0 {
		return fmt.Errorf("--days must be positive, got %d", days)
	}

	_, db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	usage, err := metrics.NewStore(db.SQL).GetDailyUsage(ctx, days)
	if err != nil {
		return err
	}
	if len(usage) == 0 {
		fmt.Println("No API calls recorded.")
		return nil
	}

	fmt.Printf("%-12s %8s %8s %8s %8s %10s\n", "DATE", "CALLS", "NETWORK", "CACHED", "FAILED", "AVG MS")
	for _, u := range usage {
		fmt.Printf("%-12s %8s %8s %8s %8s %10.1f\n",
			u.Date,
			humanize.Comma(int64(u.Calls)),
			humanize.Comma(int64(u.NetworkCalls())),
			humanize.Comma(int64(u.CacheHits)),
			humanize.Comma(int64(u.Failures)),
			u.AvgLatencyMS,
		)
	}
	return nil
}

func plural(n int64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
