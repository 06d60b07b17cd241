package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/agroscanai/agroscan-cli/internal/client/alerts"
	"github.com/agroscanai/agroscan-cli/internal/client/api"
	"github.com/agroscanai/agroscan-cli/internal/client/config"
	"github.com/agroscanai/agroscan-cli/internal/client/models"
	"github.com/agroscanai/agroscan-cli/internal/client/repositories/state"
	"github.com/agroscanai/agroscan-cli/internal/client/services"
	"github.com/agroscanai/agroscan-cli/internal/client/session"
	"github.com/agroscanai/agroscan-cli/internal/client/watchdog"
	"github.com/agroscanai/agroscan-cli/internal/filex"
	"github.com/agroscanai/agroscan-cli/internal/logging"

	_ "modernc.org/sqlite"
)

// dataDirName is the subdirectory (under the working directory) that holds
// the state database when the configured path is a bare file name.
const dataDirName = "data"

// sessionCtl is the slice of the session manager the CLI layer uses.
// The concrete *session.Manager satisfies it; tests can provide a fake.
type sessionCtl interface {
	Initialize(ctx context.Context)
	IsAuthenticated() bool
	Current() models.Session
	Logout(ctx context.Context, reason string)
	Subscribe(fn func(session.Event)) func()
}

// App wires the AgroScan client together: transport, session manager,
// services, alert center and the inactivity watchdog.
type App struct {
	config  *config.Config
	session sessionCtl
	auth    services.AuthService
	scans   services.ScanService
	alerts  *alerts.Center
	feed    *watchdog.Feed
	monitor *watchdog.Monitor
	logger  logging.Logger
	db      *sql.DB
	reader  *bufio.Reader

	unsubSession func()
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	logger := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	dbPath, err := resolveStatePath(c.StateDBPath)
	if err != nil {
		return nil, err
	}

	db, err := state.Open(ctx, dbPath)
	if err != nil {
		logger.Error(ctx, "error initializing state database", "error", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.APIBaseURL, c.HTTPTimeout)
	center := alerts.NewCenter(c.AlertTTL)
	sess := session.NewManager(db, center, logger, c.InactivityTimeout)

	feed := watchdog.NewFeed()
	monitor := watchdog.NewMonitor(sess, feed, c.InactivityTimeout, logger)

	app := &App{
		config:  c,
		session: sess,
		auth:    services.NewAuthService(apiClient, sess, center, logger),
		scans:   services.NewScanService(apiClient, sess, center, logger),
		alerts:  center,
		feed:    feed,
		monitor: monitor,
		logger:  logger,
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
	}

	// Keep the transport's bearer token in lockstep with the session. This
	// also covers a session restored during Initialize.
	app.unsubSession = sess.Subscribe(func(e session.Event) {
		switch e.Kind {
		case session.EventLogin:
			apiClient.SetToken(e.Session.Token)
		case session.EventLogout:
			apiClient.SetToken("")
		}
	})

	return app, nil
}

// resolveStatePath places a bare file name inside the ensured data
// subdirectory; explicit paths are used as given.
func resolveStatePath(path string) (string, error) {
	if filepath.Dir(path) != "." {
		return path, nil
	}
	dir, err := filex.EnsureSubdDir(dataDirName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, path), nil
}

// Run restores the persisted session, starts the inactivity watchdog and
// enters the REPL. It blocks until the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.session.Initialize(ctx)
	a.monitor.Start(ctx)

	printlnFn("AgroScan CLI (type 'help' for commands)")
	a.showAlert()

	if cur := a.session.Current(); cur.IsAuthenticated() {
		a.scans.FetchHistory(ctx, cur.UserEmail)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// Close releases background resources. Safe to call once after Run.
func (a *App) Close() {
	if a.monitor != nil {
		a.monitor.Close()
	}
	if a.unsubSession != nil {
		a.unsubSession()
	}
	if a.alerts != nil {
		a.alerts.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) getStatus() string {
	cur := a.session.Current()
	if cur.UserEmail != "" && a.session.IsAuthenticated() {
		return fmt.Sprintf("(%s)", cur.UserEmail)
	}
	return ""
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// noteActivity feeds one activity signal to the watchdog. The REPL calls it
// for every line the user types.
func (a *App) noteActivity() {
	a.feed.Emit(watchdog.SignalKeyPress)
}

// showAlert prints and consumes the pending notice, if any.
func (a *App) showAlert() {
	if al := a.alerts.Take(); !al.Empty() {
		printlnFn(al.Text)
	}
}
