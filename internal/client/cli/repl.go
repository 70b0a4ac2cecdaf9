package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Fprintln

const (
	helpLoggedOut = "Available commands: register, login, clearcache, wipe, help, exit"
	helpLoggedIn  = "Available commands: profile, edit, refresh, delete, clearcache, wipe, logout, status, help, exit"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Profile(ctx context.Context) error
	Edit(ctx context.Context) error
	Refresh(ctx context.Context) error
	Delete(ctx context.Context) error
	ClearCache(ctx context.Context) error
	Wipe(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL reads commands from console and dispatches them to a until the
// input ends or the user types "exit" or "quit".
//
// The prompt carries the status from statusFn:
//
//	ureg (alice online)> _
//
// Command handlers report to the user themselves, so their errors are only
// inspected for cancellation (Ctrl-C inside a form).
func runREPL(ctx context.Context, a execIface, statusFn func() string, console Console) {
	out := console.Stdout()
	say := func(args ...any) { _, _ = printlnFn(out, args...) }

	for ctx.Err() == nil {
		prompt := "ureg> "
		if s := statusFn(); s != "" {
			prompt = fmt.Sprintf("ureg %s> ", s)
		}

		line, err := console.ReadLine(prompt)
		if errors.Is(err, errCancelled) {
			say("Use 'exit' or 'quit' to leave.")
			continue
		}
		if err != nil {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		console.AddHistory(line)
		cmd := strings.ToLower(parts[0])

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				say(helpLoggedIn)
			} else {
				say(helpLoggedOut)
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "profile":
			cmdErr = a.Profile(ctx)

		case "edit":
			cmdErr = a.Edit(ctx)

		case "refresh":
			cmdErr = a.Refresh(ctx)

		case "delete":
			cmdErr = a.Delete(ctx)

		case "clearcache":
			cmdErr = a.ClearCache(ctx)

		case "wipe":
			cmdErr = a.Wipe(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "status":
			cmdErr = a.Status(ctx)

		case "exit", "quit":
			say("Bye!")
			return

		default:
			say("Unknown command:", cmd)
		}

		if errors.Is(cmdErr, errCancelled) {
			say("Cancelled.")
		}
	}
}
