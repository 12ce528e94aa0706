// Package commands implements the vendorctl command tree. Every command
// bootstraps the same app: state store, backend client, session controller and
// language controller, then resolves the session before running.
package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"github.com/tajerhq/vendorctl/internal/api"
	"github.com/tajerhq/vendorctl/internal/guard"
	"github.com/tajerhq/vendorctl/internal/lang"
	"github.com/tajerhq/vendorctl/internal/logger"
	"github.com/tajerhq/vendorctl/internal/session"
	"github.com/tajerhq/vendorctl/internal/storage"
)

type Globals struct {
	Debug   bool
	Version string
}

// ConnFlags are shared by every command that talks to the backend.
type ConnFlags struct {
	Server   string `help:"Backend API URL (overrides the config file)" env:"VENDORCTL_SERVER"`
	StateDir string `help:"Custom state directory (default: ~/.vendorctl/)"`
}

// app wires the layers together for one command invocation.
type app struct {
	cfg     *Config
	store   *storage.Store
	client  *api.Client
	session *session.Controller
	lang    *lang.Controller
	log     zerolog.Logger
}

// newApp builds the full stack and resolves the session state, so commands
// can consult the guards immediately.
func newApp(ctx context.Context, globals *Globals, flags ConnFlags) (*app, error) {
	log := logger.Setup(globals.Debug)

	store, err := storage.NewStore(flags.StateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}

	cfg, err := LoadConfig(filepath.Join(store.Dir(), configFileName))
	if err != nil {
		return nil, err
	}
	if flags.Server != "" {
		cfg.Server = flags.Server
	}
	if cfg.Server == "" {
		return nil, fmt.Errorf("no server configured: pass --server or set server in %s", filepath.Join(store.Dir(), configFileName))
	}

	cacheDir := ""
	if cfg.Cache {
		cacheDir = filepath.Join(store.Dir(), "cache")
	}

	client, err := api.New(api.Config{
		BaseURL:  cfg.Server,
		Timeout:  cfg.Timeout,
		CacheDir: cacheDir,
		OnAuthExpired: func() {
			log.Warn().Msg("session expired, log in again")
		},
		Logger: log,
	}, store)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		store:   store,
		client:  client,
		session: session.New(client, store, log),
		lang:    lang.New(store, client, log),
		log:     log,
	}

	if err := a.session.CheckAuthStatus(ctx); err != nil {
		if errors.Is(err, session.ErrRoleRejected) {
			return nil, fmt.Errorf("%s", a.lang.T("unauthorized", nil))
		}
		return nil, err
	}

	return a, nil
}

// requirePrivate gates commands behind the private-route guard: the caller
// must be authenticated, otherwise the user is pointed at the login flow.
func (a *app) requirePrivate(command string) error {
	decision := guard.Private(a.session.State(), command)
	switch decision.Action {
	case guard.Render:
		return nil
	case guard.Redirect:
		return fmt.Errorf("%s: run `vendorctl login` first", a.lang.T("not_logged_in", nil))
	default:
		return fmt.Errorf("session state is still resolving, try again")
	}
}

// requirePublic gates the login and register flows: an authenticated user is
// sent to the dashboard instead.
func (a *app) requirePublic() error {
	decision := guard.Public(a.session.State())
	switch decision.Action {
	case guard.Render:
		return nil
	case guard.Redirect:
		user := a.session.User()
		return fmt.Errorf("%s: run `vendorctl logout` first",
			a.lang.T("already_logged_in", map[string]string{"user": user.Username}))
	default:
		return fmt.Errorf("session state is still resolving, try again")
	}
}

// confirm asks a yes/no question on stdin. Defaults to no.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// newTable returns a tabwriter on stdout; callers must Flush.
func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func roleToString(role api.Role) string {
	switch role {
	case api.RoleAdmin:
		return "Admin"
	case api.RoleVendor:
		return "Vendor"
	case api.RoleCustomer:
		return "Customer"
	default:
		return "Unknown"
	}
}
