// Package migrations contains the database migration files. Each file
// registers itself via init(); cmd/vypar imports this package so every
// migration is known at CLI startup.
package migrations
