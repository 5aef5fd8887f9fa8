// Package cli provides the interactive todokeeper command-line client.
//
// It wires configuration, the local session database, API services and a
// read-eval-print loop. A session saved by an earlier run is resumed on
// start; otherwise the user signs up or signs in from the prompt.
//
// Commands:
//   - signup, signin, profile, logout
//   - list [completed=true|false] [search=text] [sort=field] [order=asc|desc] [limit=n] [offset=n]
//   - show <id>, add, edit <id>, toggle <id>, delete <id>
//   - help, exit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
