package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/vilarbucks/vilarbucks/internal/client/client"
	"github.com/vilarbucks/vilarbucks/internal/client/config"
	"github.com/vilarbucks/vilarbucks/internal/client/models"
	"github.com/vilarbucks/vilarbucks/internal/client/services"
	"github.com/vilarbucks/vilarbucks/internal/client/storage"
	"github.com/vilarbucks/vilarbucks/internal/filex"
	"github.com/vilarbucks/vilarbucks/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// sessionService is what the CLI needs from services.Session.
type sessionService interface {
	Hydrate(ctx context.Context)
	Login(ctx context.Context, email, password string) bool
	Register(ctx context.Context, email, password, displayName string) bool
	Logout(ctx context.Context)
	Refresh(ctx context.Context) error
	CurrentUser() *models.User
	IsAuthenticated() bool
}

type taskService interface {
	List(ctx context.Context) ([]models.Task, error)
	Complete(ctx context.Context, taskID int64) (*models.TaskCompletion, error)
}

type apiClient interface {
	Ping(ctx context.Context) error
	Close() error
}

type App struct {
	config  *config.Config
	session sessionService
	tasks   taskService
	api     apiClient
	db      *sql.DB
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer

	modeMu sync.RWMutex
	mode   Mode
}

// NewApp opens the local database, builds the API client and the services
// on top of them. The session is not hydrated yet; Run does that.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	dbPath, err := filex.EnsureParentDir(c.DBPath)
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(ctx, dbPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", dbPath, "error", err)
		return nil, err
	}

	api, err := client.NewHTTPClient(c.APIBaseURL, c.HTTPTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	session := services.NewSession(api, storage.NewSQLiteSessionStore(db), log)
	tasks := services.NewTaskService(api, session, log)

	return &App{
		config:  c,
		session: session,
		tasks:   tasks,
		api:     api,
		db:      db,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.log.Info(context.Background(), "switched mode", "mode", mode)
	}
}

// Run restores the previous session, starts the background jobs and runs
// the REPL until the user quits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	a.session.Hydrate(ctx)
	if u := a.session.CurrentUser(); u != nil {
		printlnFn(fmt.Sprintf("Welcome back, %s!", u.Name))
	}

	sched, err := a.startBackgroundJobs(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := sched.Shutdown(); err != nil {
			a.log.Warn(ctx, "scheduler shutdown", "error", err)
		}
	}()

	printlnFn("Welcome to Vilarbucks CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

// Close releases the API client and the database.
func (a *App) Close() error {
	var errs []error
	if a.api != nil {
		errs = append(errs, a.api.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// getStatus renders the prompt decoration, e.g. "(Ann 12.50 online)".
func (a *App) getStatus() string {
	s := ""
	if u := a.session.CurrentUser(); u != nil {
		s = fmt.Sprintf("%s %s ", u.Name, u.Balance.StringFixed(2))
	}
	if m := a.Mode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
