// Package session is the single source of truth for who is logged in.
//
// A Store holds the current Snapshot (user, bearer token, authenticated and
// loading flags). Identity changes go through two atomic operations, Login and
// Logout, and are written through a Persister on every change; the loading flag
// is transient and never persisted. On start the Store is loading until Init
// has read the persisted snapshot once.
//
// Invariant: IsAuthenticated is true if and only if both User and Token are set.
// Every mutation path recomputes or checks it, so no reader can observe an
// authenticated snapshot without an identity.
//
// Readers (the route guard, the API client's header builder, feature services)
// use Snapshot, Token and Subscribe. Only the auth service calls Login/Logout.
package session
