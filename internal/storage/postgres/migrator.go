package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	migrationsGlob    = "sql/migrations/*.sql"
	migrationLockKey  = int64(10824701)
	migrationTableDDL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version BIGINT PRIMARY KEY,
    name TEXT NOT NULL,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
)

var (
	//go:embed sql/migrations/*.sql
	migrationsFS embed.FS

	migrationFilePattern = regexp.MustCompile(`^(\d+)_([a-zA-Z0-9_]+)\.(up|down)\.sql$`)
)

type migrationDirection string

const (
	migrationUp   migrationDirection = "up"
	migrationDown migrationDirection = "down"
)

type migration struct {
	Version int64
	Name    string
	UpSQL   string
	DownSQL string
}

type migrationBuilder struct {
	version int64
	name    string
	upSQL   string
	downSQL string
}

// MigrateUp применяет up-миграции.
// steps=0 означает "применить все доступные".
func (s *Store) MigrateUp(ctx context.Context, steps int) error {
	return s.migrate(ctx, migrationUp, steps)
}

// MigrateDown откатывает миграции.
// steps<=0 интерпретируется как 1 шаг для безопасного поведения.
func (s *Store) MigrateDown(ctx context.Context, steps int) error {
	if steps <= 0 {
		steps = 1
	}
	return s.migrate(ctx, migrationDown, steps)
}

// MigrationStatus возвращает текущую версию и количество применённых миграций.
func (s *Store) MigrationStatus(ctx context.Context) (int64, int, error) {
	if s == nil || s.pool == nil {
		return 0, 0, errStoreNotInitialized
	}

	queryCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return migrationStatus(queryCtx, s.pool)
}

func (s *Store) migrate(ctx context.Context, direction migrationDirection, steps int) error {
	if s == nil || s.pool == nil {
		return errStoreNotInitialized
	}

	migrations, err := loadMigrationsFromFS(migrationsFS)
	if err != nil {
		return err
	}

	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire db connection: %w", err)
	}
	defer conn.Release()

	return migrateLocked(ctx, conn, migrations, direction, steps)
}

func migrationStatus(ctx context.Context, db DBTX) (int64, int, error) {
	if _, err := db.Exec(ctx, migrationTableDDL); err != nil {
		return 0, 0, fmt.Errorf("ensure migration table: %w", err)
	}

	var (
		version int64
		count   int
	)
	if err := db.QueryRow(ctx, `
		SELECT COALESCE(MAX(version), 0), COUNT(*)
		FROM schema_migrations
	`).Scan(&version, &count); err != nil {
		return 0, 0, fmt.Errorf("query migration status: %w", err)
	}

	return version, count, nil
}

// migrateLocked выполняет миграции под advisory lock на одном соединении,
// чтобы параллельно стартующие инстансы не применяли их дважды.
func migrateLocked(ctx context.Context, conn DBTX, migrations []migration, direction migrationDirection, steps int) error {
	lockCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := conn.Exec(lockCtx, "SELECT pg_advisory_lock($1)", migrationLockKey); err != nil {
		return fmt.Errorf("acquire migration lock: %w", err)
	}
	defer func() {
		_, _ = conn.Exec(context.Background(), "SELECT pg_advisory_unlock($1)", migrationLockKey)
	}()

	if _, err := conn.Exec(ctx, migrationTableDDL); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	switch direction {
	case migrationUp:
		return applyUp(ctx, conn, migrations, steps)
	case migrationDown:
		return applyDown(ctx, conn, migrations, steps)
	default:
		return fmt.Errorf("unsupported migration direction: %s", direction)
	}
}

func applyUp(ctx context.Context, conn DBTX, migrations []migration, steps int) error {
	applied, err := loadAppliedVersions(ctx, conn)
	if err != nil {
		return err
	}

	appliedSteps := 0
	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := applyOne(ctx, conn, m, migrationUp); err != nil {
			return err
		}
		appliedSteps++
		if steps > 0 && appliedSteps >= steps {
			break
		}
	}

	return nil
}

func applyDown(ctx context.Context, conn DBTX, migrations []migration, steps int) error {
	versionMap := make(map[int64]migration, len(migrations))
	for _, m := range migrations {
		versionMap[m.Version] = m
	}

	versions, err := loadAppliedVersionsDesc(ctx, conn, steps)
	if err != nil {
		return err
	}

	for _, version := range versions {
		m, ok := versionMap[version]
		if !ok {
			return fmt.Errorf("cannot rollback unknown migration version %d", version)
		}
		if err := applyOne(ctx, conn, m, migrationDown); err != nil {
			return err
		}
	}

	return nil
}

func applyOne(ctx context.Context, conn DBTX, m migration, direction migrationDirection) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migration tx (%s %d): %w", direction, m.Version, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	body := m.UpSQL
	if direction == migrationDown {
		body = m.DownSQL
	}
	if _, err := tx.Exec(ctx, body); err != nil {
		return fmt.Errorf("execute %s migration %d_%s: %w", direction, m.Version, m.Name, err)
	}

	if direction == migrationUp {
		_, err = tx.Exec(ctx, `
			INSERT INTO schema_migrations (version, name, applied_at)
			VALUES ($1, $2, NOW())
		`, m.Version, m.Name)
	} else {
		_, err = tx.Exec(ctx, `DELETE FROM schema_migrations WHERE version = $1`, m.Version)
	}
	if err != nil {
		return fmt.Errorf("record %s migration %d_%s: %w", direction, m.Version, m.Name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit %s migration %d_%s: %w", direction, m.Version, m.Name, err)
	}

	return nil
}

func loadAppliedVersions(ctx context.Context, conn DBTX) (map[int64]bool, error) {
	rows, err := conn.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("query applied migrations: %w", err)
	}
	defer rows.Close()

	result := make(map[int64]bool)
	for rows.Next() {
		var version int64
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("scan applied migration version: %w", err)
		}
		result[version] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applied migrations: %w", err)
	}

	return result, nil
}

func loadAppliedVersionsDesc(ctx context.Context, conn DBTX, limit int) ([]int64, error) {
	rows, err := conn.Query(ctx, `
		SELECT version
		FROM schema_migrations
		ORDER BY version DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query applied migrations desc: %w", err)
	}
	defer rows.Close()

	versions := make([]int64, 0, limit)
	for rows.Next() {
		var version int64
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("scan applied migration desc: %w", err)
		}
		versions = append(versions, version)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applied migrations desc: %w", err)
	}

	return versions, nil
}

func loadMigrationsFromFS(fsys fs.FS) ([]migration, error) {
	files, err := fs.Glob(fsys, migrationsGlob)
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("no migration files found")
	}

	builders := make(map[int64]*migrationBuilder)
	for _, file := range files {
		base := filepath.Base(file)
		matches := migrationFilePattern.FindStringSubmatch(base)
		if len(matches) != 4 {
			return nil, fmt.Errorf("invalid migration file name: %s", base)
		}

		version, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", base, err)
		}
		name := matches[2]
		direction := matches[3]

		bodyRaw, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("read migration file %s: %w", file, err)
		}
		body := strings.TrimSpace(string(bodyRaw))
		if body == "" {
			return nil, fmt.Errorf("migration file is empty: %s", base)
		}

		builder, ok := builders[version]
		if !ok {
			builder = &migrationBuilder{version: version, name: name}
			builders[version] = builder
		} else if builder.name != name {
			return nil, fmt.Errorf("migration name mismatch for version %d: %s vs %s", version, builder.name, name)
		}

		switch direction {
		case "up":
			if builder.upSQL != "" {
				return nil, fmt.Errorf("duplicate up migration for version %d", version)
			}
			builder.upSQL = body
		case "down":
			if builder.downSQL != "" {
				return nil, fmt.Errorf("duplicate down migration for version %d", version)
			}
			builder.downSQL = body
		default:
			return nil, fmt.Errorf("unsupported migration direction in file: %s", base)
		}
	}

	versions := make([]int64, 0, len(builders))
	for version := range builders {
		versions = append(versions, version)
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i] < versions[j] })

	migrations := make([]migration, 0, len(versions))
	for _, version := range versions {
		b := builders[version]
		if b.upSQL == "" || b.downSQL == "" {
			return nil, fmt.Errorf("migration %d_%s must have both up and down files", b.version, b.name)
		}
		migrations = append(migrations, migration{
			Version: b.version,
			Name:    b.name,
			UpSQL:   b.upSQL,
			DownSQL: b.downSQL,
		})
	}

	return migrations, nil
}
