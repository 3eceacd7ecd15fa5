// Package cli is the interactive terminal front end. It holds the logged-in
// session and drives the auth, movie, import and catalog services.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/msomdec/moviedb/internal/domain"
	"github.com/msomdec/moviedb/internal/service"
	"golang.org/x/term"
)

// Services bundles the services the front end drives.
type Services struct {
	Auth    *service.AuthService
	Movies  *service.MovieService
	Imports *service.ImportService
	Catalog *service.CatalogService
}

type App struct {
	svc     Services
	reader  *bufio.Reader
	out     io.Writer
	inputFd int // -1 unless stdin is a terminal

	session *domain.Session

	catalog     []domain.CatalogEntry
	lastResults []domain.CatalogEntry
}

// NewApp creates an App reading commands from in and writing to out.
func NewApp(svc Services, in io.Reader, out io.Writer) *App {
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &App{svc: svc, reader: bufio.NewReader(in), out: out, inputFd: fd}
}

// Run starts the REPL and returns when the user exits, input ends, or ctx
// is cancelled.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Movie list tracker. Type help for commands.")
	runREPL(ctx, a, a.status, func() (string, error) { return readLine(a.reader) }, a.out)
}

func (a *App) status() string {
	if a.session == nil {
		return "moviedb> "
	}
	return fmt.Sprintf("moviedb (%s)> ", a.session.Username)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

// refresh re-validates the session token and logs out when it has expired.
func (a *App) refresh(ctx context.Context) bool {
	if a.session == nil {
		return false
	}
	if !a.session.Expired(time.Now()) {
		sess, err := a.svc.Auth.Resume(ctx, a.session.Token)
		if err == nil {
			a.session = sess
			return true
		}
		if !errors.Is(err, domain.ErrUnauthorized) {
			slog.Error("failed to resume session", "error", err)
		}
	}
	a.session = nil
	a.lastResults = nil
	fmt.Fprintln(a.out, "Your session has expired. Please log in again.")
	return false
}

func (a *App) ask(prompt string) (string, error) {
	return GetSimpleText(a.reader, prompt, a.out)
}

func (a *App) askSecret(prompt string) (string, error) {
	return GetPassword(a.reader, prompt, a.out, a.inputFd)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
