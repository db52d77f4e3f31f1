package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
)

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// MigrationFiles lists the *.up.sql or *.down.sql files in dir in the order
// they must run: ascending for up, descending for down.
func MigrationFiles(dir string, direction Direction) ([]string, error) {
	if direction != Up && direction != Down {
		return nil, fmt.Errorf("unknown migration direction %q", direction)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migration directory: %w", err)
	}

	suffix := fmt.Sprintf(".%s.sql", direction)
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), suffix) {
			files = append(files, entry.Name())
		}
	}

	slices.Sort(files)
	if direction == Down {
		slices.Reverse(files)
	}
	return files, nil
}

// Migrate runs every migration file for direction and returns how many ran.
// It stops at the first failing file.
func Migrate(ctx context.Context, db *sql.DB, dir string, direction Direction, log logrus.FieldLogger) (int, error) {
	files, err := MigrationFiles(dir, direction)
	if err != nil {
		return 0, err
	}

	for i, filename := range files {
		content, err := os.ReadFile(filepath.Join(dir, filename))
		if err != nil {
			return i, fmt.Errorf("read migration file %s: %w", filename, err)
		}

		log.WithField("file", filename).Info("running migration")
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return i, fmt.Errorf("execute migration %s: %w", filename, err)
		}
	}

	return len(files), nil
}
