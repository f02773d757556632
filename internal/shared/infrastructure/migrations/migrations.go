// Package migrations applies the embedded schema for each database driver.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/database"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

const createVersionTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    name       TEXT PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
)`

// Migration is one embedded .up.sql file.
type Migration struct {
	Name string
	SQL  string
}

// List returns the migrations for driver in name order.
func List(driver database.Driver) ([]Migration, error) {
	if !driver.IsValid() {
		return nil, fmt.Errorf("%w: %s", database.ErrUnsupportedDriver, driver)
	}

	dir := driver.String()
	entries, err := fs.ReadDir(files, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	migrations := make([]Migration, 0, len(names))
	for _, name := range names {
		body, err := fs.ReadFile(files, dir+"/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		migrations = append(migrations, Migration{Name: name, SQL: string(body)})
	}
	return migrations, nil
}

// Run applies every migration not yet recorded in schema_migrations and
// returns the names it applied. Each migration runs in its own transaction.
func Run(ctx context.Context, conn database.Connection) ([]string, error) {
	migrations, err := List(conn.Driver())
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(ctx, createVersionTable); err != nil {
		return nil, fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	applied, err := appliedNames(ctx, conn)
	if err != nil {
		return nil, err
	}

	uow := database.NewUnitOfWork(conn)
	var ran []string
	for _, m := range migrations {
		if applied[m.Name] {
			continue
		}
		if err := apply(ctx, uow, conn, m); err != nil {
			return ran, err
		}
		ran = append(ran, m.Name)
	}
	return ran, nil
}

func apply(ctx context.Context, uow *database.GenericUnitOfWork, conn database.Connection, m Migration) error {
	txCtx, err := uow.Begin(ctx)
	if err != nil {
		return err
	}
	exec := database.ExecutorFromContext(txCtx, conn)

	for _, stmt := range statements(m.SQL) {
		if _, err := exec.Exec(txCtx, stmt); err != nil {
			_ = uow.Rollback(txCtx)
			return fmt.Errorf("failed to execute migration %s: %w", m.Name, err)
		}
	}
	if _, err := exec.Exec(txCtx, `INSERT INTO schema_migrations (name, applied_at) VALUES (?, ?)`, m.Name, time.Now().UTC()); err != nil {
		_ = uow.Rollback(txCtx)
		return fmt.Errorf("failed to record migration %s: %w", m.Name, err)
	}
	return uow.Commit(txCtx)
}

func appliedNames(ctx context.Context, conn database.Connection) (map[string]bool, error) {
	rows, err := conn.Query(ctx, `SELECT name FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

// statements splits a migration file on ";". The schema has no semicolons
// inside literals or bodies.
func statements(sql string) []string {
	var out []string
	for _, part := range strings.Split(sql, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
