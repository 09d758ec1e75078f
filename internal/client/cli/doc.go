// Package cli provides the interactive legalwriter command-line client.
//
// It wires configuration, the persisted session, the API facade and the
// research services into a REPL. The prompt shows who is logged in and
// whether the backend was reachable on the last call.
//
// Key features:
//   - Login / Logout, with the session surviving restarts
//   - Projects, documents and notes
//   - Resource upload from local files or S3, extraction and summaries
//   - Chat with the assistant over project context
//   - Request and refresh counters (stats)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
