package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/transellia/admin-console/internal/admin/session"
	"github.com/transellia/admin-console/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

var errNotLoggedIn = errors.New("not logged in")

// Login prompts for credentials and signs in through the auth service. A
// failed attempt is reported to the user and returned as an error.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if email == "" || len(password) == 0 {
		fmt.Fprintln(a.out, "Please enter both email and password.")
		return errors.New("missing credentials")
	}

	res := a.authService.Login(ctx, email, string(password))
	if !res.Success {
		fmt.Fprintln(a.out, res.Message)
		return errors.New(res.Message)
	}

	snap := a.store.Snapshot()
	fmt.Fprintf(a.out, "Welcome, %s!\n", snap.User.Name)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Forget signs out and removes everything kept in the local database. The
// next start asks for credentials again.
func (a *App) Forget(ctx context.Context) error {
	if !confirm(a.reader, "Sign out and remove all local session data?", a.out) {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	a.authService.Logout(ctx)
	if err := a.localData.Wipe(ctx); err != nil {
		a.logger.Error(ctx, "failed to wipe local data", "error", err)
		return a.fail(err)
	}
	fmt.Fprintln(a.out, "Local session data removed.")
	return nil
}

// WhoAmI prints the signed-in administrator and when the token expires.
func (a *App) WhoAmI(ctx context.Context) error {
	snap := a.store.Snapshot()
	if snap.User == nil {
		return a.fail(errNotLoggedIn)
	}

	fmt.Fprintf(a.out, "%s <%s>\nrole: %s\nid:   %s\n", snap.User.Name, snap.User.Email, snap.User.Role, snap.User.ID)

	exp, ok := session.TokenExpiry(snap.Token)
	switch {
	case !ok:
		fmt.Fprintln(a.out, "token: no expiry")
	case exp.Before(a.now()):
		fmt.Fprintf(a.out, "token: expired at %s\n", exp.Local().Format(time.RFC1123))
	default:
		fmt.Fprintf(a.out, "token: valid until %s\n", exp.Local().Format(time.RFC1123))
	}
	return nil
}
