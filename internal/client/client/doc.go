// Package client contains the transport side of the todokeeper terminal
// client: the Client contract with its HTTP implementation, the error values
// callers match with errors.Is (ErrUnauthorized, ErrNotFound, ErrConflict,
// ErrBadRequest, ErrUnavailable) and bootstrap of the local SQLite session
// database (InitDatabase, RunMigrations).
package client
