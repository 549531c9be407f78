package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrlokans/bookcatalog/internal/audit"
	"github.com/mrlokans/bookcatalog/internal/config"
	"github.com/mrlokans/bookcatalog/internal/database"
	auditrepo "github.com/mrlokans/bookcatalog/internal/database/audit"
	"github.com/mrlokans/bookcatalog/internal/database/books"
	"github.com/mrlokans/bookcatalog/internal/forms"
	"github.com/mrlokans/bookcatalog/internal/logging"
	"github.com/mrlokans/bookcatalog/internal/services"
)

// ImportCSVCommand bulk-creates books from a CSV file.
type ImportCSVCommand struct {
	FilePath     string
	DatabasePath string
	Verbose      bool
	DryRun       bool

	// Out receives the report. Defaults to stdout.
	Out io.Writer
}

func NewImportCSVCommand() *ImportCSVCommand {
	return &ImportCSVCommand{Out: os.Stdout}
}

func (cmd *ImportCSVCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-csv", flag.ContinueOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to the CSV file (required)")
	fs.StringVar(&cmd.DatabasePath, "db", defaultDatabasePath(), "Path to the catalog database file")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Validate rows without writing anything")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-csv -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import books from a CSV file into the catalog.\n\n")
		fmt.Fprintf(os.Stderr, "The first line must be a header. Recognised columns:\n")
		fmt.Fprintf(os.Stderr, "  %s\n", strings.Join(services.ImportColumns, ","))
		fmt.Fprintf(os.Stderr, "genre and available are optional and default to other and true.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Check a file before importing it:\n")
		fmt.Fprintf(os.Stderr, "  %s import-csv -file books.csv -dry-run\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Import into a specific database:\n")
		fmt.Fprintf(os.Stderr, "  %s import-csv -file books.csv -db /data/book-catalog.db\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}

	return nil
}

func (cmd *ImportCSVCommand) Run(ctx context.Context) error {
	out := cmd.Out
	if out == nil {
		out = os.Stdout
	}

	if cmd.Verbose {
		logging.Init("debug", logging.FormatConsole)
	}

	fmt.Fprintln(out, "CSV Import")
	fmt.Fprintln(out, "==========")

	if cmd.DryRun {
		fmt.Fprintln(out, "DRY RUN MODE - No changes will be made")
		fmt.Fprintln(out)
	}

	file, err := os.Open(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(out, "File: %s\n", cmd.FilePath)

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	fmt.Fprintf(out, "Database: %s\n", absDBPath)

	db, err := database.NewDatabase(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	validator, err := forms.New()
	if err != nil {
		return fmt.Errorf("failed to create validator: %w", err)
	}

	auditService := audit.NewService(auditrepo.NewRepository(db.DB))
	catalog := services.NewCatalogService(books.NewRepository(db.DB), validator, auditService)
	importer := services.NewImportService(catalog)

	fmt.Fprintln(out, "\nImporting books...")

	result, err := importer.ImportCSV(ctx, file, cmd.DryRun)
	if err != nil {
		return fmt.Errorf("failed to import CSV: %w", err)
	}

	fmt.Fprintln(out, "\n=== Import Summary ===")
	fmt.Fprintf(out, "Rows processed: %d\n", result.RowsProcessed)
	if cmd.DryRun {
		fmt.Fprintf(out, "Valid rows: %d\n", result.RowsProcessed-result.RowsFailed)
	} else {
		fmt.Fprintf(out, "Books created: %d\n", result.BooksCreated)
	}

	if len(result.Errors) > 0 {
		fmt.Fprintf(out, "\n%d rows failed:\n", len(result.Errors))
		for _, rowErr := range result.Errors {
			fmt.Fprintf(out, "  [ERROR] %s\n", rowErr.Error())
		}
	}

	if cmd.DryRun {
		fmt.Fprintln(out, "\nDry run complete. Use without -dry-run to import.")
		return nil
	}

	fmt.Fprintln(out, "\nImport complete!")
	return nil
}

// defaultDatabasePath honours DATABASE_PATH so the CLI writes where the server reads.
func defaultDatabasePath() string {
	if path := os.Getenv("DATABASE_PATH"); path != "" {
		return path
	}
	return config.DefaultDatabasePath
}
