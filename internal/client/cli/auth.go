package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/legalwriter/internal/client/client"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for a username (unless given as the first argument) and a
// password, and opens a backend session. The password is wiped by the
// auth service once sent.
func (app *App) Login(ctx context.Context, args []string) error {
	var (
		userName string
		err      error
	)
	if len(args) > 0 {
		userName = args[0]
	} else {
		userName, err = getSimpleText(app.reader, "Enter username", app.out)
		if err != nil {
			return err
		}
	}

	password, err := getPassword(app.out)
	if err != nil {
		return err
	}

	if err := app.authService.Login(ctx, userName, password); err != nil {
		return fmt.Errorf("login unsuccessful: %w", err)
	}

	app.userName = userName
	fmt.Fprintln(app.out, "Login successful")
	return nil
}

// Logout drops the session locally; the backend keeps no logout state.
func (app *App) Logout(ctx context.Context, _ []string) error {
	// cleared first so the session hook stays quiet
	app.userName = ""
	app.history = nil
	if err := app.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(app.out, "Logged out")
	return nil
}

func (app *App) Status(_ context.Context, _ []string) error {
	user := app.userName
	if user == "" {
		user = "(not logged in)"
	}
	mode := string(app.Mode)
	if mode == "" {
		mode = "unknown"
	}
	fmt.Fprintf(app.out, "user: %s\nbackend: %s (%s)\naccess token valid: %t\n",
		user, app.config.BaseURL(), mode, app.authService.IsAuthenticated())
	return nil
}

func (app *App) Stats(_ context.Context, _ []string) error {
	s, err := app.metrics.Summary()
	if err != nil {
		return err
	}
	if s == "" {
		s = "no requests yet"
	}
	fmt.Fprintln(app.out, s)
	return nil
}

// report prints a command error and tracks backend reachability from it.
func (app *App) report(err error) {
	switch client.KindOf(err) {
	case client.KindNone:
		return
	case client.KindNetwork:
		app.setMode(ModeOffline)
	case client.KindAPI, client.KindAuth:
		app.setMode(ModeOnline)
	}
	fmt.Fprintln(app.out, "error:", err)
}
