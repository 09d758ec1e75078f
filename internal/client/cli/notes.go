package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/legalwriter/internal/client/models"
)

func (app *App) Notes(ctx context.Context, args []string) error {
	ids, err := parseIDs(args, "notes <project id>", "project id")
	if err != nil {
		return err
	}

	notes, err := app.api.GetNotes(ctx, ids[0])
	if err != nil {
		return err
	}
	app.setMode(ModeOnline)

	if len(notes) == 0 {
		fmt.Fprintln(app.out, "No notes")
		return nil
	}
	for _, n := range notes {
		title := n.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(app.out, "%d\t%s\t%s\n", n.ID, title, preview(n.Content, 60))
	}
	return nil
}

func (app *App) AddNote(ctx context.Context, args []string) error {
	ids, err := parseIDs(args, "addnote <project id>", "project id")
	if err != nil {
		return err
	}

	title, err := getSimpleText(app.reader, "Enter title (optional)", app.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(app.reader, "Enter note", app.out)
	if err != nil {
		return err
	}

	note, err := app.api.CreateNote(ctx, models.NewNote{Project: ids[0], Title: title, Content: content})
	if err != nil {
		return err
	}
	app.setMode(ModeOnline)

	fmt.Fprintf(app.out, "Created note %d\n", note.ID)
	return nil
}

func (app *App) DelNote(ctx context.Context, args []string) error {
	ids, err := parseIDs(args, "delnote <note id>", "note id")
	if err != nil {
		return err
	}

	if err := app.api.DeleteNote(ctx, ids[0]); err != nil {
		return err
	}
	app.setMode(ModeOnline)

	fmt.Fprintf(app.out, "Deleted note %d\n", ids[0])
	return nil
}
