package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// command is the signature every REPL command shares; args excludes the
// command word itself.
type command func(ctx context.Context, args []string) error

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	report(err error)

	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error
	Projects(ctx context.Context, args []string) error
	Project(ctx context.Context, args []string) error
	NewProject(ctx context.Context, args []string) error
	Docs(ctx context.Context, args []string) error
	NewDoc(ctx context.Context, args []string) error
	Notes(ctx context.Context, args []string) error
	AddNote(ctx context.Context, args []string) error
	DelNote(ctx context.Context, args []string) error
	Resources(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	Extract(ctx context.Context, args []string) error
	Summarize(ctx context.Context, args []string) error
	Chat(ctx context.Context, args []string) error
	Contexts(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: login, status, stats, exit"
	helpLoggedIn  = "Available commands: projects, project <id>, newproject, docs <pid>, newdoc <pid>, " +
		"notes <pid>, addnote <pid>, delnote <id>, resources <pid>, upload <pid> <path|s3://bucket/key>, " +
		"extract <rid>, summarize <rid> <pid>, chat <pid>, contexts <pid>, status, stats, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the legalwriter CLI.
//
// It reads a line from reader, parses the first token as the command and
// the rest as its arguments, and dispatches to methods on 'a'. Commands
// other than login, status, stats and help require a session. The loop
// exits on EOF, on context cancellation or when the user types "exit" or
// "quit".
//
// Errors returned by command handlers go through a.report, which prints
// them and keeps the REPL running.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	public := map[string]command{
		"login":  a.Login,
		"status": a.Status,
		"stats":  a.Stats,
	}
	private := map[string]command{
		"logout":     a.Logout,
		"projects":   a.Projects,
		"project":    a.Project,
		"newproject": a.NewProject,
		"docs":       a.Docs,
		"newdoc":     a.NewDoc,
		"notes":      a.Notes,
		"addnote":    a.AddNote,
		"delnote":    a.DelNote,
		"resources":  a.Resources,
		"upload":     a.Upload,
		"extract":    a.Extract,
		"summarize":  a.Summarize,
		"chat":       a.Chat,
		"contexts":   a.Contexts,
	}

	for ctx.Err() == nil {
		printlnFn(fmt.Sprintf("lw %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if fn, ok := public[cmd]; ok {
			a.report(fn(ctx, args))
			continue
		}
		if fn, ok := private[cmd]; ok {
			if !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}
			a.report(fn(ctx, args))
			continue
		}
		printlnFn("Unknown command:", cmd)
	}
}
