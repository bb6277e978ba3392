// Package server wires configuration, storage, services and the HTTP API
// together and runs them until the process is told to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/carvingsite/internal/dbx"
	"github.com/dmitrijs2005/carvingsite/internal/logging"
	"github.com/dmitrijs2005/carvingsite/internal/server/auth"
	"github.com/dmitrijs2005/carvingsite/internal/server/config"
	"github.com/dmitrijs2005/carvingsite/internal/server/images"
	"github.com/dmitrijs2005/carvingsite/internal/server/mailer"
	"github.com/dmitrijs2005/carvingsite/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/carvingsite/internal/server/rest"
	"github.com/dmitrijs2005/carvingsite/internal/server/services"
	"github.com/dmitrijs2005/carvingsite/internal/server/storage"
)

// Signal plumbing, replaceable in tests.
var (
	notifySignals = signal.Notify
	stopSignals   = signal.Stop
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *rest.Server
}

// NewApp validates c, opens and migrates the database and builds the HTTP
// server. The returned App owns the database pool.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	dialect, err := dbx.DialectByName(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	db, err := dbx.Open(ctx, dialect, c.DatabaseDSN, dbx.PoolOptions{
		MaxOpenConns:    c.DBMaxOpenConns,
		ConnMaxIdleTime: c.DBConnMaxIdleTime,
		ConnMaxLifetime: c.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db}
	if err := app.build(ctx, dialect); err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func (app *App) build(ctx context.Context, dialect dbx.Dialect) error {
	c := app.config

	rm := repomanager.NewRepositoryManager(dialect)
	if err := rm.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	store, imagesDir, err := newObjectStore(ctx, c)
	if err != nil {
		return err
	}

	tokens, err := auth.NewTokenService(c.SecretKey, c.TokenValidityDuration)
	if err != nil {
		return err
	}

	var m services.Mailer
	if c.MailEnabled() {
		sm, err := mailer.New(mailer.Config{
			Host:     c.SMTPHost,
			Port:     c.SMTPPort,
			Username: c.SMTPUser,
			Password: c.SMTPPassword,
			From:     c.MailFrom,
		})
		if err != nil {
			return fmt.Errorf("mailer: %w", err)
		}
		m = sm
	} else {
		app.logger.Warn(ctx, "SMTP is not configured, contact form disabled")
	}

	h := rest.NewHandlers(app.logger,
		services.NewAuthService(tokens, c.AdminUsername, c.AdminPasswordHash),
		services.NewEventService(app.db, rm, store),
		services.NewGalleryService(app.db, rm, store),
		images.NewIngester(store, images.Options{
			MaxWidth:  c.ImageMaxWidth,
			MaxHeight: c.ImageMaxHeight,
			Quality:   c.ImageQuality,
			MaxPixels: c.ImageMaxPixels,
		}),
		services.NewContactService(m, c.ContactRecipient),
		app.db,
	)
	h.ImagesDir = imagesDir
	h.MaxUploadBytes = c.MaxUploadBytes

	app.server = rest.NewServer(c.HTTPAddr, app.logger, h.Router(), c.ShutdownTimeout)
	return nil
}

// newObjectStore also returns the directory to serve under /images/,
// which is empty for remote backends.
func newObjectStore(ctx context.Context, c *config.Config) (storage.ObjectStore, string, error) {
	switch c.StorageBackend {
	case config.StorageS3:
		s, err := storage.NewS3(ctx, storage.S3Config{
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			return nil, "", err
		}
		return s, "", nil
	default:
		l, err := storage.NewLocal(c.ImagesRoot)
		if err != nil {
			return nil, "", err
		}
		return l, c.ImagesRoot, nil
	}
}

// initSignalHandler cancels the app on SIGINT, SIGTERM or SIGQUIT. The
// subscription ends with ctx either way.
func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	notifySignals(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer stopSignals(sigs)

		select {
		case sig := <-sigs:
			app.logger.Info(ctx, "Received signal, shutting down", "signal", sig.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is canceled or a termination signal arrives, then
// closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "Closing database", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
