package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Filter(ctx context.Context, value string) error
	Refresh(ctx context.Context) error
	Reset(ctx context.Context) error
	Show(ctx context.Context, arg string) error
	Create(ctx context.Context) error
	Edit(ctx context.Context, arg string) error
	Delete(ctx context.Context, arg string) error
}

// runREPL reads a line, parses the first token as the command and dispatches
// to a. Unknown commands are reported back. The loop exits on EOF or on
// "exit"/"quit". Handlers print their own errors; the loop stays resilient
// and only does I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "uadm %s> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
				// fall through and run the final command
			} else {
				return
			}
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Available commands: (l)ist, search <term>, filter <any|active|inactive>, reset, refresh, show <id>, create, edit <id>, delete <id>, whoami, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "search":
			_ = a.Search(ctx, strings.Join(args, " "))

		case "filter":
			if len(args) == 0 {
				fmt.Fprintln(w, "Usage: filter <any|active|inactive>")
				continue
			}
			_ = a.Filter(ctx, args[0])

		case "reset":
			_ = a.Reset(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "show":
			if len(args) == 0 {
				fmt.Fprintln(w, "Usage: show <id>")
				continue
			}
			_ = a.Show(ctx, args[0])

		case "create":
			_ = a.Create(ctx)

		case "edit":
			if len(args) == 0 {
				fmt.Fprintln(w, "Usage: edit <id>")
				continue
			}
			_ = a.Edit(ctx, args[0])

		case "delete":
			if len(args) == 0 {
				fmt.Fprintln(w, "Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if err != nil {
			// EOF after a trailing command without newline
			return
		}
	}
}
