// Package cli provides the interactive catering command-line client.
//
// It wires configuration, local storage, the API gateway and the client
// services, and runs a REPL over them. Every command is a thin view: it
// calls one service operation, prints the resulting state, and turns any
// error into a single line before prompting again.
//
// Key features:
//   - Login / Logout / WhoAmI
//   - Browse categories and products
//   - Add to cart, change quantities, remove lines
//   - List delivery addresses and check out
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, NewApp and runREPL for details.
package cli
