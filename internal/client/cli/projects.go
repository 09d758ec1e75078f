package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/legalwriter/internal/client/models"
)

func (app *App) Projects(ctx context.Context, _ []string) error {
	projects, err := app.api.GetProjects(ctx)
	if err != nil {
		return err
	}
	app.setMode(ModeOnline)

	if len(projects) == 0 {
		fmt.Fprintln(app.out, "No projects yet, create one with 'newproject'")
		return nil
	}
	for _, p := range projects {
		fmt.Fprintf(app.out, "%d\t%s\t%s\t%s\n", p.ID, p.Title, p.Status, formatTime(p.UpdatedAt))
	}
	return nil
}

func (app *App) Project(ctx context.Context, args []string) error {
	ids, err := parseIDs(args, "project <id>", "project id")
	if err != nil {
		return err
	}

	p, err := app.api.GetProject(ctx, ids[0])
	if err != nil {
		return err
	}
	app.setMode(ModeOnline)

	fmt.Fprintf(app.out, "#%d %s [%s]\n", p.ID, p.Title, p.Status)
	if p.Description != "" {
		fmt.Fprintln(app.out, p.Description)
	}
	fmt.Fprintf(app.out, "created %s, updated %s\n", formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
	fmt.Fprintf(app.out, "%d documents, %d notes, %d resources\n", len(p.Documents), len(p.Notes), len(p.Resources))
	return nil
}

func (app *App) NewProject(ctx context.Context, _ []string) error {
	title, err := getSimpleText(app.reader, "Enter title", app.out)
	if err != nil {
		return err
	}
	description, err := getSimpleText(app.reader, "Enter description (optional)", app.out)
	if err != nil {
		return err
	}

	p, err := app.api.CreateProject(ctx, models.NewProject{Title: title, Description: description})
	if err != nil {
		return err
	}
	app.setMode(ModeOnline)

	fmt.Fprintf(app.out, "Created project %d\n", p.ID)
	return nil
}
