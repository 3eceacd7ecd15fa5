package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/msomdec/moviedb/internal/domain"
)

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	refresh(ctx context.Context) bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Forgot(ctx context.Context) error
	Logout(ctx context.Context) error

	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	EditTitle(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	DeleteTitle(ctx context.Context, args []string) error
	Import(ctx context.Context, args []string) error
	Imports(ctx context.Context) error
	Catalog(ctx context.Context, args []string) error
	Copy(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Commands: register, login, forgot, help, exit"
	helpLoggedIn  = `Commands:
  list [genre=<text>] [sort=title|year|imdb_rating|personal_rating|watch_date] [desc]
  show <id>             show one movie
  add                   add a movie
  edit <id>             edit a movie
  edittitle <title>     edit every movie with this exact title
  delete <id>           delete a movie
  deltitle <title>      delete every movie with this exact title
  import <path>         import a CSV or XLSX file
  imports               list past imports
  catalog [query]       search the reference catalog
  copy <n>              edit catalog result n and add it to your list
  logout, help, exit`
)

// runREPL reads one command per line and dispatches it. The loop ends on
// input EOF, on "exit" or "quit", or when ctx is cancelled.
func runREPL(ctx context.Context, a execIface, statusFn func() string, readLine func() (string, error), w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprint(w, statusFn())
		line, err := readLine()
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpLoggedIn)
			} else {
				fmt.Fprintln(w, helpLoggedOut)
			}
			continue
		}

		if !a.isLoggedIn() {
			switch cmd {
			case "register":
				report(w, a.Register(ctx))
			case "login":
				report(w, a.Login(ctx))
			case "forgot":
				report(w, a.Forgot(ctx))
			default:
				fmt.Fprintln(w, "Unknown command:", cmd)
			}
			continue
		}

		if !a.refresh(ctx) {
			continue
		}

		switch cmd {
		case "l", "list":
			report(w, a.List(ctx, args))
		case "show":
			report(w, a.Show(ctx, args))
		case "add":
			report(w, a.Add(ctx))
		case "edit":
			report(w, a.Edit(ctx, args))
		case "edittitle":
			report(w, a.EditTitle(ctx, args))
		case "delete":
			report(w, a.Delete(ctx, args))
		case "deltitle":
			report(w, a.DeleteTitle(ctx, args))
		case "import":
			report(w, a.Import(ctx, args))
		case "imports":
			report(w, a.Imports(ctx))
		case "catalog":
			report(w, a.Catalog(ctx, args))
		case "copy":
			report(w, a.Copy(ctx, args))
		case "logout":
			report(w, a.Logout(ctx))
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}

var expectedErrors = []error{
	domain.ErrNotFound,
	domain.ErrInvalidInput,
	domain.ErrUnauthorized,
	domain.ErrDuplicateUser,
	domain.ErrInvalidCredentials,
	domain.ErrInvalidRecovery,
	domain.ErrTooManyAttempts,
	domain.ErrCatalogUnavailable,
	domain.ErrUnsupportedFormat,
}

// report prints a command failure on one line. Errors outside the domain
// taxonomy are logged as well.
func report(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, "Error:", err)
	for _, e := range expectedErrors {
		if errors.Is(err, e) {
			return
		}
	}
	slog.Error("command failed", "error", err)
}
