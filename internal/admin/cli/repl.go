package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/transellia/admin-console/internal/admin/guard"
	"github.com/transellia/admin-console/internal/logging"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	enter(view string) guard.Outcome
	isLoggedIn() bool

	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Forget(ctx context.Context) error

	Users(ctx context.Context, args []string) error
	User(ctx context.Context, args []string) error
	AddUser(ctx context.Context) error
	EditUser(ctx context.Context, args []string) error
	DelUser(ctx context.Context, args []string) error
	SetSub(ctx context.Context, args []string) error

	Subs(ctx context.Context, args []string) error
	Sub(ctx context.Context, args []string) error
	AddSub(ctx context.Context) error
	EditSub(ctx context.Context, args []string) error
	DelSub(ctx context.Context, args []string) error
}

type command struct {
	view string
	run  func(a execIface, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"logout": {guard.ViewDashboard, func(a execIface, ctx context.Context, _ []string) error { return a.Logout(ctx) }},
	"whoami": {guard.ViewDashboard, func(a execIface, ctx context.Context, _ []string) error { return a.WhoAmI(ctx) }},
	"forget": {guard.ViewDashboard, func(a execIface, ctx context.Context, _ []string) error { return a.Forget(ctx) }},

	"users":    {guard.ViewUsers, execIface.Users},
	"user":     {guard.ViewUsers, execIface.User},
	"adduser":  {guard.ViewUsers, func(a execIface, ctx context.Context, _ []string) error { return a.AddUser(ctx) }},
	"edituser": {guard.ViewUsers, execIface.EditUser},
	"deluser":  {guard.ViewUsers, execIface.DelUser},
	"setsub":   {guard.ViewUsers, execIface.SetSub},

	"subs":    {guard.ViewSubscriptions, execIface.Subs},
	"sub":     {guard.ViewSubscriptions, execIface.Sub},
	"addsub":  {guard.ViewSubscriptions, func(a execIface, ctx context.Context, _ []string) error { return a.AddSub(ctx) }},
	"editsub": {guard.ViewSubscriptions, execIface.EditSub},
	"delsub":  {guard.ViewSubscriptions, execIface.DelSub},
}

const (
	helpLoggedOut = "Available commands: login, help, exit"
	helpLoggedIn  = `Available commands:
  whoami                         show the signed-in administrator
  users [page] [search]          list users
  user <id>                      show one user
  adduser                        create a user
  edituser <id>                  change a user's email, profile or role
  deluser <id>                   delete a user
  setsub <userID> <subID|none>   assign or remove a user's plan
  subs [page] [search]           list subscription plans
  sub <id>                       show one plan
  addsub                         create a plan
  editsub <id>                   change a plan
  delsub <id>                    delete a plan
  forget                         sign out and wipe local session data
  logout, help, exit`
)

// runREPL reads commands line by line from reader and dispatches them to a.
//
// Commands bound to a protected view run only when the guard allows it. A
// redirect sends the user to the login prompt; while the session is still
// rehydrating nothing runs. The loop exits on EOF or on "exit" / "quit".
//
// Handlers get a context tagged with the command name for logging. Errors
// returned by handlers are ignored here; handlers report their own.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("admin %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "login":
			_ = a.Login(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			c, ok := commands[cmd]
			if !ok {
				printlnFn("Unknown command:", cmd)
				continue
			}
			switch a.enter(c.view).Decision {
			case guard.Allow:
				_ = c.run(a, logging.ContextWith(ctx, "command", cmd), args)
			case guard.Redirect:
				printlnFn("Please log in first.")
				_ = a.Login(ctx)
			default:
				printlnFn("Session is still loading, try again.")
			}
		}
	}
}
