// Package cli provides the interactive admin console.
//
// It wires configuration, the encrypted local session, the API client, the
// services and the route guard, then runs a REPL whose commands are the
// console's views. Every command that shows protected data goes through the
// guard first; when the session is logged out the user is sent to the login
// prompt instead.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
