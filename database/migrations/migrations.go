// Package migrations contains all database migration files.
// Each migration file uses init() to call migration.Register().
// The CLI imports this package blank so every migration is registered
// at startup.
package migrations
