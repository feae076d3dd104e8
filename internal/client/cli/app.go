package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/cateringplus/internal/client/client"
	"github.com/dmitrijs2005/cateringplus/internal/client/config"
	"github.com/dmitrijs2005/cateringplus/internal/client/format"
	"github.com/dmitrijs2005/cateringplus/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/cateringplus/internal/client/repositories/session"
	"github.com/dmitrijs2005/cateringplus/internal/client/services"
	"github.com/dmitrijs2005/cateringplus/internal/logging"
	"github.com/redis/go-redis/v9"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	session  *services.SessionService
	catalog  *services.CatalogService
	cart     *services.CartService
	checkout *services.CheckoutService
	money    *format.Money

	reader *bufio.Reader
	out    io.Writer

	closers []func() error
}

// NewApp opens local storage, resolves the device id and builds the
// services on top of one HTTP gateway.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	a := &App{config: c, log: log, reader: bufio.NewReader(os.Stdin), out: os.Stdout}

	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}
	a.closers = append(a.closers, db.Close)

	deviceID, err := services.EnsureDeviceID(ctx, db, c.DeviceID)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("error resolving device id: %w", err)
	}

	repo, err := a.sessionRepository(ctx, db)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	// the gateway reads the token from the session store at send time
	var sess *services.SessionService
	tokens := client.TokenFunc(func() string {
		if sess == nil {
			return ""
		}
		return sess.Token()
	})

	api, err := client.NewHTTPClient(client.Options{
		BaseURL: c.APIBaseURL,
		Timeout: c.RequestTimeout,
		Identity: client.Identity{
			DeviceOS:    c.DeviceOS,
			AppVersion:  c.AppVersion,
			BuildNumber: c.BuildNumber,
			DeviceID:    deviceID,
			Lang:        c.Lang,
		},
		Tokens: tokens,
		Logger: log,
	})
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	sess = services.NewSessionService(ctx, api, repo, log)
	a.session = sess
	a.catalog = services.NewCatalogService(api, log)
	a.cart = services.NewCartService(api, log)
	a.checkout = services.NewCheckoutService(api, a.cart, log)
	a.money = format.NewMoney(c.Lang, c.CurrencySymbol)

	return a, nil
}

func (a *App) sessionRepository(ctx context.Context, db *sql.DB) (session.Repository, error) {
	switch a.config.SessionBackend {
	case config.SessionBackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: a.config.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("error connecting to redis at %s: %w", a.config.RedisAddr, err)
		}
		a.closers = append(a.closers, rdb.Close)
		return session.NewRedisRepository(rdb, a.config.RedisKeyPrefix), nil
	default:
		return session.NewMetadataRepository(metadata.NewSQLiteRepository(db)), nil
	}
}

// Run greets the user and blocks in the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to CateringPlus CLI (type 'help' for commands)")
	if s := a.session.Current(); s.IsAuthenticated() {
		printlnFn("Logged in as " + a.displayName())
	}
	runREPL(ctx, a, a.displayName, a.reader)
}

// Close releases local storage and the Redis connection, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.session.Current().IsAuthenticated()
}

func (a *App) displayName() string {
	s := a.session.Current()
	switch {
	case !s.IsAuthenticated():
		return ""
	case s.UserName != "":
		return s.UserName
	case s.UserID != "":
		return "user " + s.UserID
	default:
		return "logged in"
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
