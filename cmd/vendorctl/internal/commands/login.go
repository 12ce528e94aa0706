package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tajerhq/vendorctl/internal/api"
	"github.com/tajerhq/vendorctl/internal/session"
)

// LoginCmd exchanges credentials for a session. The identifier is pre-filled
// from the remembered value when --remember was used before.
type LoginCmd struct {
	ConnFlags
	Identifier string `arg:"" optional:"" help:"Email, username or phone"`
	Password   string `help:"Password (prompted when omitted)" env:"VENDORCTL_PASSWORD"`
	Remember   bool   `help:"Remember the identifier for the next login" default:"false"`
}

func (l *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, l.ConnFlags)
	if err != nil {
		return err
	}

	if err := a.requirePublic(); err != nil {
		return err
	}

	identifier := l.Identifier
	if identifier == "" {
		if remembered, ok := a.store.RememberedIdentifier(); ok {
			identifier = prompt(fmt.Sprintf("Identifier [%s]", remembered))
			if identifier == "" {
				identifier = remembered
			}
		} else {
			identifier = prompt("Identifier")
		}
	}
	if identifier == "" {
		return errors.New("an identifier is required")
	}

	password := l.Password
	if password == "" {
		password = prompt("Password")
	}
	if password == "" {
		return errors.New("a password is required")
	}

	resp, err := a.session.Login(ctx, api.Credentials{Identifier: identifier, Password: password}, l.Remember)
	if err != nil {
		if errors.Is(err, session.ErrRoleRejected) {
			return fmt.Errorf("%s", a.lang.T("unauthorized", nil))
		}
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			return fmt.Errorf("%s: %s", a.lang.T("login_failed", nil), apiErr.Message)
		}
		return err
	}

	figure.NewFigure("tajer", "", true).Print()
	fmt.Println()
	fmt.Println(a.lang.T("welcome", map[string]string{"user": a.session.User().Username}))
	fmt.Println(a.lang.T("login_success", nil))

	a.log.Debug().Int64("userId", resp.UserID).Msg("session established")

	return nil
}

// LogoutCmd ends the session. Local state is always cleared, even when the
// backend cannot be reached.
type LogoutCmd struct {
	ConnFlags
}

func (l *LogoutCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, l.ConnFlags)
	if err != nil {
		return err
	}

	a.session.Logout(ctx)

	fmt.Println(a.lang.T("logout_success", nil))
	return nil
}

// WhoamiCmd prints the current session.
type WhoamiCmd struct {
	ConnFlags
}

func (w *WhoamiCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, w.ConnFlags)
	if err != nil {
		return err
	}

	if err := a.requirePrivate("whoami"); err != nil {
		return err
	}

	user := a.session.User()

	table := newTable()
	fmt.Fprintf(table, "User ID\t%d\n", user.UserID)
	fmt.Fprintf(table, "Username\t%s\n", user.Username)
	fmt.Fprintf(table, "Role\t%s\n", roleToString(user.UserRole))
	if user.Email != "" {
		fmt.Fprintf(table, "Email\t%s\n", user.Email)
	}
	if user.PhoneNumber != "" {
		fmt.Fprintf(table, "Phone\t%s\n", user.PhoneNumber)
	}
	if user.FacilityName != "" {
		fmt.Fprintf(table, "Facility\t%s\n", user.FacilityName)
	}
	if expiry, ok := tokenExpiry(a.store.AccessToken()); ok {
		fmt.Fprintf(table, "Token expires\t%s\n", expiry.Format(time.RFC3339))
	}
	fmt.Fprintf(table, "Language\t%s\n", a.lang.Current())

	return table.Flush()
}

// tokenExpiry peeks at the bearer token's exp claim without verifying the
// signature; the backend is the authority, this is display only.
func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}

func prompt(label string) string {
	fmt.Printf("%s: ", label)

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return ""
	}

	return strings.TrimSpace(answer)
}
