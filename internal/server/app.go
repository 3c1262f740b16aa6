// Package server wires configuration, storage, services and transports into
// the running SMHome backend and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/smhome/internal/logging"
	"github.com/dmitrijs2005/smhome/internal/server/auth"
	"github.com/dmitrijs2005/smhome/internal/server/config"
	"github.com/dmitrijs2005/smhome/internal/server/metrics"
	"github.com/dmitrijs2005/smhome/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/smhome/internal/server/rest"
	"github.com/dmitrijs2005/smhome/internal/server/services"
	"github.com/dmitrijs2005/smhome/internal/server/storage"

	gs "github.com/dmitrijs2005/smhome/internal/server/grpc"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const healthProbeInterval = 10 * time.Second

var (
	openDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("pgx", dsn)
	}
	newImageStorage = func(ctx context.Context, o storage.Options) (services.ImageResolver, error) {
		return storage.NewS3ImageStorage(ctx, o)
	}
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	handler     http.Handler
}

func NewApp(c *config.Config) (*App, error) {

	logger, err := logging.New(c.LogLevel, c.LogFormat, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if c.SecretKey == config.DefaultSecretKey {
		logger.Warn(context.Background(), "using the default token secret; set SMHOME_SECRET_KEY outside development")
	}

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	hasher, err := auth.NewBcryptHasher(c.BcryptCost)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	tokens := auth.NewTokenIssuer([]byte(c.SecretKey), c.AccessTokenValidityDuration)

	// left as a nil interface when image storage is off
	var images services.ImageResolver
	if c.ImageStorageEnabled() {
		images, err = newImageStorage(context.Background(), storage.Options{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("image storage init error: %w", err)
		}
	}

	rm := repomanager.NewPostgresRepositoryManager()

	handler := rest.NewRouter(rest.Options{
		Users:          services.NewUserService(db, rm, hasher, tokens),
		Sessions:       services.NewSessionService(db, rm, tokens),
		Catalog:        services.NewCatalogService(db, rm, images),
		Cart:           services.NewCartService(db, rm, images),
		Favorites:      services.NewFavoriteService(db, rm, images),
		DB:             db,
		Metrics:        metrics.NewHTTP(),
		Logger:         logger,
		CORSOrigins:    c.CORSAllowedOrigins,
		RequestTimeout: c.RequestTimeout,
	})

	return &App{config: c, logger: logger, db: db, repomanager: rm, handler: handler}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	s := rest.NewServer(app.config.EndpointAddrHTTP, app.handler, app.logger, app.config.ShutdownTimeout)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return err
	}
	return nil
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.db, healthProbeInterval)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return err
	}
	return nil
}

// Run migrates the schema and serves until ctx is cancelled, a termination
// signal arrives or a listener fails. The database is closed on return.
func (app *App) Run(ctx context.Context) error {
	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(context.Background(), "db close error", "err", err)
		}
	}()

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	collect := func(err error) {
		if err != nil {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		collect(app.startHTTPServer(ctx, cancelFunc))
	}()

	if app.config.EndpointAddrGRPC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			collect(app.startGRPCServer(ctx, cancelFunc))
		}()
	}

	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
	return errors.Join(errs...)
}
