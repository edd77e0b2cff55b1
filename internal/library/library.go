// Package library handles SQLite persistence of exercise texts.
package library

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/torusk/Dvorak-Typing/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Library wraps SQLite access for stored exercises.
type Library struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Library, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	lib := &Library{db: db}
	if err := lib.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return lib, nil
}

// Close closes the underlying database.
func (l *Library) Close() error {
	return l.db.Close()
}

func (l *Library) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS exercises (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			body TEXT NOT NULL,
			source_path TEXT NOT NULL,
			imported_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_exercises_name ON exercises(name);`,
	}
	for _, stmt := range stmts {
		if _, err := l.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ImportExercises stores exercise blocks, replacing any with the same
// name. It returns the number of exercises written.
func (l *Library) ImportExercises(ctx context.Context, exercises []model.Exercise, sourcePath string) (int, error) {
	if len(exercises) == 0 {
		return 0, nil
	}
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO exercises (name, body, source_path, imported_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			body = excluded.body,
			source_path = excluded.source_path,
			imported_at = excluded.imported_at`)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()

	now := time.Now().Format(time.RFC3339Nano)
	for _, ex := range exercises {
		if _, err = stmt.ExecContext(ctx, ex.Name, ex.Text, sourcePath, now); err != nil {
			return 0, err
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return len(exercises), nil
}

// ListExercises returns stored exercise metadata ordered by name.
func (l *Library) ListExercises(ctx context.Context) ([]model.ExerciseInfo, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, name, body, source_path, imported_at FROM exercises ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.ExerciseInfo
	for rows.Next() {
		var (
			info       model.ExerciseInfo
			body       string
			importedAt string
		)
		if err := rows.Scan(&info.ID, &info.Name, &body, &info.SourcePath, &importedAt); err != nil {
			return nil, err
		}
		info.Words = len(strings.Fields(body))
		parsed, err := time.Parse(time.RFC3339Nano, importedAt)
		if err != nil {
			return nil, err
		}
		info.ImportedAt = parsed
		result = append(result, info)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetExercise fetches a stored exercise by name.
func (l *Library) GetExercise(ctx context.Context, name string) (model.Exercise, error) {
	row := l.db.QueryRowContext(ctx,
		`SELECT name, body FROM exercises WHERE name = ?`, name)
	var ex model.Exercise
	if err := row.Scan(&ex.Name, &ex.Text); err != nil {
		if err == sql.ErrNoRows {
			return model.Exercise{}, fmt.Errorf("exercise %q not found", name)
		}
		return model.Exercise{}, err
	}
	return ex, nil
}
