package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/legalwriter/internal/client/models"
)

func (app *App) Docs(ctx context.Context, args []string) error {
	ids, err := parseIDs(args, "docs <project id>", "project id")
	if err != nil {
		return err
	}

	docs, err := app.api.GetDocuments(ctx, ids[0])
	if err != nil {
		return err
	}
	app.setMode(ModeOnline)

	if len(docs) == 0 {
		fmt.Fprintln(app.out, "No documents")
		return nil
	}
	for _, d := range docs {
		fmt.Fprintf(app.out, "%d\t%s\t%s\t%s\n", d.ID, d.Title, formatTime(d.UpdatedAt), preview(d.Content, 60))
	}
	return nil
}

func (app *App) NewDoc(ctx context.Context, args []string) error {
	ids, err := parseIDs(args, "newdoc <project id>", "project id")
	if err != nil {
		return err
	}

	title, err := getSimpleText(app.reader, "Enter title", app.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(app.reader, "Enter content", app.out)
	if err != nil {
		return err
	}

	doc, err := app.api.CreateDocument(ctx, models.NewDocument{Project: ids[0], Title: title, Content: content})
	if err != nil {
		return err
	}
	app.setMode(ModeOnline)

	fmt.Fprintf(app.out, "Created document %d\n", doc.ID)
	return nil
}
