package storage

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// Migrate brings the schema up to date by running every up script in
// lexical order. The scripts are idempotent, so migrating an already
// current database is a no-op.
func (r *SQLiteRepository) Migrate() error {
	names, err := migrationScripts(".up.sql")
	if err != nil {
		return err
	}
	return r.runScripts(names)
}

// Rollback tears the schema down again, newest script first.
func (r *SQLiteRepository) Rollback() error {
	names, err := migrationScripts(".down.sql")
	if err != nil {
		return err
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return r.runScripts(names)
}

func migrationScripts(suffix string) ([]string, error) {
	entries, err := migrationsFS.ReadDir(migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), suffix) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (r *SQLiteRepository) runScripts(names []string) error {
	for _, name := range names {
		script, err := migrationsFS.ReadFile(migrationsDir + "/" + name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := r.db.Exec(string(script)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}
