package database

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var (
	migrationNameRe = regexp.MustCompile(`^(\d{8})_.+\.sql$`)
	addsColumnRe    = regexp.MustCompile(`(?m)^--\s*adds-column:\s*(\w+)\.(\w+)\s*$`)
)

// migration represents a database migration
type migration struct {
	filename string
	name     string
	sql      string
	// table and column are set when the migration adds a column; it only
	// applies to databases created before GORM knew about that column.
	table  string
	column string
}

// RunMigrations runs all pending database migrations
func RunMigrations(db *gorm.DB) error {
	if err := createMigrationsTable(db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	migrations, err := getMigrations()
	if err != nil {
		return fmt.Errorf("failed to get migrations: %w", err)
	}

	applied, err := getAppliedMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, m := range migrations {
		if applied[m.name] {
			continue
		}

		if err := applyMigration(db, m); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", m.filename, err)
		}
	}

	return nil
}

// createMigrationsTable creates the schema_migrations table if it doesn't exist
func createMigrationsTable(db *gorm.DB) error {
	return db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name TEXT PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`).Error
}

// getMigrations reads all migration files from the migrations directory
func getMigrations() ([]migration, error) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var migrations []migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		content, err := migrationsFS.ReadFile(path.Join("migrations", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", entry.Name(), err)
		}

		m := migration{
			filename: entry.Name(),
			name:     extractMigrationName(entry.Name()),
			sql:      string(content),
		}
		if match := addsColumnRe.FindStringSubmatch(m.sql); match != nil {
			m.table, m.column = match[1], match[2]
		}
		migrations = append(migrations, m)
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].name < migrations[j].name
	})

	return migrations, nil
}

// extractMigrationName extracts the migration name from filename
// Expected format: YYYYMMDD_description.sql
func extractMigrationName(filename string) string {
	matches := migrationNameRe.FindStringSubmatch(filename)
	if len(matches) < 2 {
		return filename
	}
	return matches[1]
}

// getAppliedMigrations returns a map of already applied migration names
func getAppliedMigrations(db *gorm.DB) (map[string]bool, error) {
	var names []string
	if err := db.Table("schema_migrations").Pluck("name", &names).Error; err != nil {
		return nil, err
	}

	applied := make(map[string]bool, len(names))
	for _, name := range names {
		applied[name] = true
	}
	return applied, nil
}

// applyMigration runs a single migration and records it
func applyMigration(db *gorm.DB, m migration) error {
	if err := checkMigrationPrerequisites(db, m); err != nil {
		// Fresh databases get the column from AutoMigrate; record the
		// migration so it never runs against them.
		if ignoreErr := db.Exec("INSERT OR IGNORE INTO schema_migrations (name) VALUES (?)", m.name).Error; ignoreErr != nil {
			return fmt.Errorf("failed to record skipped migration %s: %w", m.filename, ignoreErr)
		}
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, stmt := range splitStatements(m.sql) {
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return tx.Exec("INSERT INTO schema_migrations (name) VALUES (?)", m.name).Error
	})
}

// checkMigrationPrerequisites returns an error when a column-adding
// migration does not apply: the table is missing or already has the column
func checkMigrationPrerequisites(db *gorm.DB, m migration) error {
	if m.table == "" {
		return nil
	}

	var count int64
	if err := db.Raw("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", m.table).Scan(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%s table does not exist yet", m.table)
	}

	if err := db.Raw("SELECT COUNT(*) FROM pragma_table_info(?) WHERE name=?", m.table, m.column).Scan(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errors.New(m.column + " column already exists")
	}

	return nil
}

// splitStatements splits a migration into statements, dropping comments
func splitStatements(sql string) []string {
	var lines []string
	for _, line := range strings.Split(sql, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		lines = append(lines, line)
	}

	var stmts []string
	for _, stmt := range strings.Split(strings.Join(lines, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
