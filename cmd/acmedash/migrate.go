package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/acmedash/internal/config"
	migrations "github.com/dropDatabas3/acmedash/migrations/postgres"
)

// newMigrateCmd aplica las migraciones embebidas contra storage.dsn.
// `migrate up` (default) aplica los *_up.sql pendientes en orden; `migrate down`
// revierte el último aplicado.
func newMigrateCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Aplica las migraciones de PostgreSQL",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "up"
			if len(args) == 1 {
				action = strings.ToLower(args[0])
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Storage.DSN == "" {
				return fmt.Errorf("migrate: falta storage.dsn (o DATABASE_URL)")
			}

			ctx := cmd.Context()
			pool, err := pgxpool.New(ctx, cfg.Storage.DSN)
			if err != nil {
				return fmt.Errorf("migrate: pool: %w", err)
			}
			defer pool.Close()

			if err := ensureMigrationsTable(ctx, pool); err != nil {
				return err
			}

			switch action {
			case "up":
				return migrateUp(ctx, pool)
			case "down":
				return migrateDown(ctx, pool)
			default:
				return fmt.Errorf("migrate: acción desconocida %q", action)
			}
		},
	}
}

func ensureMigrationsTable(ctx context.Context, pool *pgxpool.Pool) error {
	const q = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version     TEXT PRIMARY KEY,
    applied_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`
	_, err := pool.Exec(ctx, q)
	return err
}

// listVersions devuelve las versiones embebidas (prefijo antes de "_up.sql"),
// ordenadas ascendente.
func listVersions() ([]string, error) {
	entries, err := migrations.FS.ReadDir(".")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if name := e.Name(); strings.HasSuffix(name, "_up.sql") {
			out = append(out, strings.TrimSuffix(name, "_up.sql"))
		}
	}
	sort.Strings(out)
	return out, nil
}

func appliedVersions(ctx context.Context, pool *pgxpool.Pool) (map[string]bool, error) {
	rows, err := pool.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := map[string]bool{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

func migrateUp(ctx context.Context, pool *pgxpool.Pool) error {
	versions, err := listVersions()
	if err != nil {
		return err
	}
	applied, err := appliedVersions(ctx, pool)
	if err != nil {
		return err
	}

	n := 0
	for _, v := range versions {
		if applied[v] {
			continue
		}
		sql, err := migrations.FS.ReadFile(v + "_up.sql")
		if err != nil {
			return err
		}
		tx, err := pool.Begin(ctx)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, string(sql)); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("migrate: %s: %w", v, err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, v); err != nil {
			_ = tx.Rollback(ctx)
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return err
		}
		fmt.Println("applied", v)
		n++
	}
	if n == 0 {
		fmt.Println("nothing to apply")
	}
	return nil
}

func migrateDown(ctx context.Context, pool *pgxpool.Pool) error {
	applied, err := appliedVersions(ctx, pool)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		fmt.Println("nothing to revert")
		return nil
	}

	var versions []string
	for v := range applied {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	last := versions[len(versions)-1]

	sql, err := migrations.FS.ReadFile(last + "_down.sql")
	if err != nil {
		return fmt.Errorf("migrate: falta %s_down.sql: %w", last, err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, string(sql)); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("migrate: revert %s: %w", last, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM schema_migrations WHERE version = $1`, last); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	fmt.Println("reverted", last)
	return nil
}
