package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookcatalog/internal/database"
	"github.com/mrlokans/bookcatalog/internal/database/books"
)

const sampleCSV = `title,author,isbn,genre,publication_date,pages,available
Dune,Frank Herbert,9780441013593,sci_fi,1965-08-01,412,true
The Hobbit,J.R.R. Tolkien,9780547928227,fiction,1937-09-21,310,false
Broken,Nobody,123,fiction,2020-01-01,10,true
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "books.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func countBooks(t *testing.T, dbPath string) int64 {
	t.Helper()
	db, err := database.Open(dbPath, database.Options{LogLevel: "silent"})
	require.NoError(t, err)
	defer db.Close()

	count, err := books.NewRepository(db.DB).CountBooks(context.Background())
	require.NoError(t, err)
	return count
}

func TestImportCSVCommand_ParseFlags(t *testing.T) {
	t.Run("requires file", func(t *testing.T) {
		cmd := NewImportCSVCommand()
		err := cmd.ParseFlags([]string{"-dry-run"})
		assert.EqualError(t, err, "required flag -file not provided")
	})

	t.Run("parses all flags", func(t *testing.T) {
		cmd := NewImportCSVCommand()
		err := cmd.ParseFlags([]string{"-file", "books.csv", "-db", "catalog.db", "-dry-run"})
		require.NoError(t, err)
		assert.Equal(t, "books.csv", cmd.FilePath)
		assert.Equal(t, "catalog.db", cmd.DatabasePath)
		assert.True(t, cmd.DryRun)
		assert.False(t, cmd.Verbose)
	})
}

func TestImportCSVCommand_Run(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	var out bytes.Buffer

	cmd := &ImportCSVCommand{
		FilePath:     writeCSV(t, sampleCSV),
		DatabasePath: dbPath,
		Out:          &out,
	}
	require.NoError(t, cmd.Run(context.Background()))

	report := out.String()
	assert.Contains(t, report, "Rows processed: 3")
	assert.Contains(t, report, "Books created: 2")
	assert.Contains(t, report, "1 rows failed:")
	assert.Contains(t, report, "line 4:")
	assert.Equal(t, int64(2), countBooks(t, dbPath))
}

func TestImportCSVCommand_DryRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	var out bytes.Buffer

	cmd := &ImportCSVCommand{
		FilePath:     writeCSV(t, sampleCSV),
		DatabasePath: dbPath,
		DryRun:       true,
		Out:          &out,
	}
	require.NoError(t, cmd.Run(context.Background()))

	assert.Contains(t, out.String(), "Valid rows: 2")
	assert.Contains(t, out.String(), "Dry run complete.")
	assert.Equal(t, int64(0), countBooks(t, dbPath))
}

func TestImportCSVCommand_MissingFile(t *testing.T) {
	cmd := &ImportCSVCommand{
		FilePath:     filepath.Join(t.TempDir(), "missing.csv"),
		DatabasePath: filepath.Join(t.TempDir(), "catalog.db"),
		Out:          &bytes.Buffer{},
	}
	err := cmd.Run(context.Background())
	assert.ErrorContains(t, err, "failed to open CSV file")
}
