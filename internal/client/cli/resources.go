package cli

import (
	"context"
	"fmt"
	"strings"
)

func (app *App) Resources(ctx context.Context, args []string) error {
	ids, err := parseIDs(args, "resources <project id>", "project id")
	if err != nil {
		return err
	}

	resources, err := app.api.GetResources(ctx, ids[0])
	if err != nil {
		return err
	}
	app.setMode(ModeOnline)

	if len(resources) == 0 {
		fmt.Fprintln(app.out, "No resources")
		return nil
	}
	for _, r := range resources {
		state := "uploaded"
		switch {
		case r.Summary != nil && *r.Summary != "":
			state = "summarized"
		case r.ContentExtracted != nil && *r.ContentExtracted != "":
			state = "extracted"
		case r.ExtractionError != nil && *r.ExtractionError != "":
			state = "extraction failed"
		}
		fmt.Fprintf(app.out, "%d\t%s\t%s\t%d bytes\t%s\n", r.ID, r.Title, r.FileType, r.FileSize, state)
	}
	return nil
}

func (app *App) Upload(ctx context.Context, args []string) error {
	const usage = "upload <project id> <path|s3://bucket/key>"
	ids, err := parseIDs(args, usage, "project id")
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("usage: %s", usage)
	}

	description, err := getSimpleText(app.reader, "Enter description (optional)", app.out)
	if err != nil {
		return err
	}

	// paths may contain spaces
	location := strings.Join(args[1:], " ")
	r, err := app.researchService.Upload(ctx, ids[0], location, description)
	if err != nil {
		return err
	}
	app.setMode(ModeOnline)

	fmt.Fprintf(app.out, "Uploaded resource %d (%s)\n", r.ID, r.FileType)
	return nil
}

func (app *App) Extract(ctx context.Context, args []string) error {
	ids, err := parseIDs(args, "extract <resource id>", "resource id")
	if err != nil {
		return err
	}

	r, err := app.api.ExtractResourceContent(ctx, ids[0])
	if err != nil {
		return err
	}
	app.setMode(ModeOnline)

	switch {
	case r.ExtractionError != nil && *r.ExtractionError != "":
		fmt.Fprintf(app.out, "Extraction failed: %s\n", *r.ExtractionError)
	case r.ContentExtracted != nil:
		fmt.Fprintf(app.out, "Extracted %d characters\n", len([]rune(*r.ContentExtracted)))
	default:
		fmt.Fprintln(app.out, "Nothing extracted")
	}
	return nil
}

// Summarize stores the resource summary as a note named after the citation.
func (app *App) Summarize(ctx context.Context, args []string) error {
	ids, err := parseIDs(args, "summarize <resource id> <project id>", "resource id", "project id")
	if err != nil {
		return err
	}

	note, err := app.researchService.SummarizeToNote(ctx, ids[1], ids[0])
	if err != nil {
		return err
	}
	app.setMode(ModeOnline)

	fmt.Fprintf(app.out, "Saved note %d %q\n%s\n", note.ID, note.Title, note.Content)
	return nil
}
