package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool

	calls    []string
	args     [][]string
	reported []error
	failOn   string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) report(err error) {
	if err != nil {
		f.reported = append(f.reported, err)
	}
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	if name == f.failOn {
		return errors.New(name + " failed")
	}
	return nil
}

func (f *fakeExec) Login(_ context.Context, args []string) error {
	f.loggedIn = true
	return f.record("login", args)
}
func (f *fakeExec) Logout(_ context.Context, args []string) error {
	f.loggedIn = false
	return f.record("logout", args)
}
func (f *fakeExec) Status(_ context.Context, a []string) error     { return f.record("status", a) }
func (f *fakeExec) Projects(_ context.Context, a []string) error   { return f.record("projects", a) }
func (f *fakeExec) Project(_ context.Context, a []string) error    { return f.record("project", a) }
func (f *fakeExec) NewProject(_ context.Context, a []string) error { return f.record("newproject", a) }
func (f *fakeExec) Docs(_ context.Context, a []string) error       { return f.record("docs", a) }
func (f *fakeExec) NewDoc(_ context.Context, a []string) error     { return f.record("newdoc", a) }
func (f *fakeExec) Notes(_ context.Context, a []string) error      { return f.record("notes", a) }
func (f *fakeExec) AddNote(_ context.Context, a []string) error    { return f.record("addnote", a) }
func (f *fakeExec) DelNote(_ context.Context, a []string) error    { return f.record("delnote", a) }
func (f *fakeExec) Resources(_ context.Context, a []string) error  { return f.record("resources", a) }
func (f *fakeExec) Upload(_ context.Context, a []string) error     { return f.record("upload", a) }
func (f *fakeExec) Extract(_ context.Context, a []string) error    { return f.record("extract", a) }
func (f *fakeExec) Summarize(_ context.Context, a []string) error  { return f.record("summarize", a) }
func (f *fakeExec) Chat(_ context.Context, a []string) error       { return f.record("chat", a) }
func (f *fakeExec) Contexts(_ context.Context, a []string) error   { return f.record("contexts", a) }
func (f *fakeExec) Stats(_ context.Context, a []string) error      { return f.record("stats", a) }

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	lines := capturePrintln(t)

	input := strings.Join([]string{
		"help",
		"projects",
		"login alice",
		"help",
		"projects",
		"upload 3 s3://cases/lease.pdf",
		"summarize 7 3",
		"",
		"foobar",
		"logout",
		"notes 1",
		"exit",
		"status",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)))

	require.Equal(t, []string{"login", "projects", "upload", "summarize", "logout"}, exec.calls)
	require.Equal(t, []string{"alice"}, exec.args[0])
	require.Equal(t, []string{"3", "s3://cases/lease.pdf"}, exec.args[2])

	require.Contains(t, *lines, helpLoggedOut)
	require.Contains(t, *lines, helpLoggedIn)
	require.Contains(t, *lines, "Please login first")
	require.Contains(t, *lines, "Unknown command: foobar")
	require.Equal(t, "Bye!", (*lines)[len(*lines)-1])
}

func TestRunREPL_ReportsErrorsAndKeepsGoing(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{loggedIn: true, failOn: "docs"}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("docs 1\nstats\n")))

	require.Equal(t, []string{"docs", "stats"}, exec.calls)
	require.Len(t, exec.reported, 1)
	require.EqualError(t, exec.reported[0], "docs failed")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("stats")))

	require.Equal(t, []string{"stats"}, exec.calls)
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	capturePrintln(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{loggedIn: true}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("projects\n")))

	require.Empty(t, exec.calls)
}
