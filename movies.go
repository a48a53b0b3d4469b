// Package movies provides a small movie catalog: a server that lists and
// full-text searches movies stored in SQLite, and a search client that keeps
// a local replica of the catalog and falls back to the server until the
// replica is ready.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, http/, bolt/).
package movies
