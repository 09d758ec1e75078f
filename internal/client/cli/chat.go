package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/legalwriter/internal/client/models"
)

// Chat sends one message to the assistant. Earlier turns for the same
// project are sent along as history until logout. Extra arguments after
// the project id select context ids, as listed by 'contexts'.
func (app *App) Chat(ctx context.Context, args []string) error {
	ids, err := parseIDs(args, "chat <project id> [context id...]", "project id")
	if err != nil {
		return err
	}
	projectID := ids[0]

	message, err := GetMultiline(app.reader, "Your message", app.out)
	if err != nil {
		return err
	}

	reply, err := app.api.Chat(ctx, models.ChatRequest{
		Project:  projectID,
		Message:  message,
		Contexts: args[1:],
		History:  app.history[projectID],
	})
	if err != nil {
		return err
	}
	app.setMode(ModeOnline)

	if app.history == nil {
		app.history = map[int64][]models.ChatMessage{}
	}
	app.history[projectID] = append(app.history[projectID],
		models.ChatMessage{Role: models.RoleUser, Content: message},
		models.ChatMessage{Role: models.RoleAssistant, Content: reply.Content},
	)

	fmt.Fprintln(app.out, strings.TrimSpace(reply.Content))
	return nil
}

func (app *App) Contexts(ctx context.Context, args []string) error {
	ids, err := parseIDs(args, "contexts <project id>", "project id")
	if err != nil {
		return err
	}

	contexts, err := app.api.GetAvailableContexts(ctx, ids[0])
	if err != nil {
		return err
	}
	app.setMode(ModeOnline)

	if len(contexts) == 0 {
		fmt.Fprintln(app.out, "No contexts available")
		return nil
	}
	for _, c := range contexts {
		fmt.Fprintf(app.out, "%s\t%s\t%s\n", c.ID, c.Type, c.Title)
	}
	return nil
}
