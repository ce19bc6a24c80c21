package sqlite

import (
	"fmt"
	"path/filepath"

	"github.com/robalyx/stemdata/internal/export/types"
	"github.com/robalyx/stemdata/internal/vocabulary"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// batchSize is the number of rows inserted per transaction.
const batchSize = 1000

// Exporter handles exporting the vocabulary to a SQLite database.
type Exporter struct {
	outDir string
}

// New creates a new SQLite exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// Files returns the names of the files written by Export.
func (e *Exporter) Files() []string {
	return []string{types.SQLiteDB}
}

// Export writes flexions and invariant words to their own tables. The rank column
// is the 1-based position in the ranked output.
func (e *Exporter) Export(vocab *vocabulary.Vocabulary) error {
	// Remove existing files if they exist
	if err := types.RemoveExisting(e.outDir, e.Files()...); err != nil {
		return err
	}

	// Open database
	conn, err := sqlite.OpenConn(filepath.Join(e.outDir, types.SQLiteDB), sqlite.OpenCreate|sqlite.OpenReadWrite)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	defer conn.Close()

	// Create tables
	err = sqlitex.ExecuteScript(conn, `
		CREATE TABLE flexions (
			flexion TEXT PRIMARY KEY,
			count INTEGER NOT NULL,
			rank INTEGER NOT NULL
		);
		CREATE TABLE invariants (
			word TEXT PRIMARY KEY,
			rank INTEGER NOT NULL
		);
	`, nil)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	flexionRows := make([][]any, 0, len(vocab.Flexions))
	for i, entry := range vocab.Flexions {
		flexionRows = append(flexionRows, []any{entry.Value, entry.Count, i + 1})
	}

	if err := insertRows(conn, "INSERT INTO flexions (flexion, count, rank) VALUES (?, ?, ?)", flexionRows); err != nil {
		return fmt.Errorf("failed to export flexions: %w", err)
	}

	invariantRows := make([][]any, 0, len(vocab.Invariants))
	for i, word := range vocab.Invariants {
		invariantRows = append(invariantRows, []any{word, i + 1})
	}

	if err := insertRows(conn, "INSERT INTO invariants (word, rank) VALUES (?, ?)", invariantRows); err != nil {
		return fmt.Errorf("failed to export invariants: %w", err)
	}

	return nil
}

// insertRows inserts rows in batches, one transaction per batch.
func insertRows(conn *sqlite.Conn, query string, rows [][]any) error {
	for i := 0; i < len(rows); i += batchSize {
		end := min(i+batchSize, len(rows))

		// Begin transaction
		if err := sqlitex.Execute(conn, "BEGIN TRANSACTION", nil); err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		// Insert batch
		for _, args := range rows[i:end] {
			if err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{Args: args}); err != nil {
				_ = sqlitex.Execute(conn, "ROLLBACK", nil)
				return fmt.Errorf("failed to insert record: %w", err)
			}
		}

		// Commit transaction
		if err := sqlitex.Execute(conn, "COMMIT", nil); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
	}

	return nil
}
