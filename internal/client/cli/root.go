package cli

import (
	"context"
	"fmt"
	"log"
)

func (app *App) getStatus() string {
	s := ""
	if app.userName != "" {
		s = app.userName + " "
	}
	if app.Mode != "" {
		s = s + string(app.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root greets the user, asks for credentials when no session was restored
// and hands over to the REPL.
func (app *App) Root(ctx context.Context) {
	log.Println("Welcome to legalwriter CLI (type 'help' for commands)")

	if !app.isLoggedIn() {
		app.report(app.Login(ctx, nil))
	}

	runREPL(ctx, app, app.getStatus, app.reader)
}
