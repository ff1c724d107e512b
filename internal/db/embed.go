package db

import "embed"

// EmbedMigrations holds the goose migration files compiled into the binary;
// RunMigrations reads them through goose's base FS, never from disk.
//
//go:embed migrations/*.sql
var EmbedMigrations embed.FS
