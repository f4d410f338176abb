package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/transellia/admin-console/internal/admin/client"
	"github.com/transellia/admin-console/internal/admin/config"
	"github.com/transellia/admin-console/internal/admin/guard"
	"github.com/transellia/admin-console/internal/admin/services"
	"github.com/transellia/admin-console/internal/admin/session"
	"github.com/transellia/admin-console/internal/admin/storage"
	"github.com/transellia/admin-console/internal/cryptox"
	"github.com/transellia/admin-console/internal/logging"
)

const defaultPageSize = 10

// localWiper wipes what the app keeps on disk.
type localWiper interface {
	Wipe(ctx context.Context) error
}

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB

	localData     localWiper
	store         *session.Store
	authService   services.AuthService
	userService   services.UserService
	subscriptions services.SubscriptionService
	guard         *guard.Guard

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
}

// NewApp opens local storage and wires the session, API client, services and
// guard. The caller must call Close.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	key, err := cryptox.LoadOrCreateKey(c.KeyFile)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load session key: %w", err)
	}

	persister := session.NewSQLitePersister(db, key)
	store := session.NewStore(persister, logger)
	api := client.New(c.BaseURL, c.APIKey, store,
		client.WithTimeout(c.RequestTimeout),
		client.WithRateLimit(c.RateLimit),
		client.WithLogger(logger),
	)

	return &App{
		config:        c,
		logger:        logger,
		db:            db,
		localData:     persister,
		store:         store,
		authService:   services.NewAuthService(api, store, logger),
		userService:   services.NewUserService(api),
		subscriptions: services.NewSubscriptionService(api),
		guard:         guard.New(store),
		reader:        bufio.NewReader(os.Stdin),
		out:           os.Stdout,
		now:           time.Now,
	}, nil
}

// Run rehydrates the session, asks for credentials when there is no session
// and then serves commands until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	a.store.Init(ctx)

	stop := a.guard.Watch(func(d guard.Decision) {
		a.logger.Debug(ctx, "route decision changed", "decision", d.String())
	})
	defer stop()

	fmt.Fprintln(a.out, "Transellia admin console (type 'help' for commands)")
	if !a.isLoggedIn() {
		_ = a.Login(ctx)
	}
	runREPL(ctx, a, a.status, a.reader)
}

// Close releases the local database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.store.Snapshot().IsAuthenticated
}

func (a *App) enter(view string) guard.Outcome {
	return a.guard.Enter(view)
}

func (a *App) status() string {
	snap := a.store.Snapshot()
	if !snap.IsAuthenticated || snap.User == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", snap.User.Name)
}

// fail reports err to the user and returns it.
func (a *App) fail(err error) error {
	fmt.Fprintln(a.out, "Error:", describeError(err))
	return err
}
