package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

// ImportColumns lists the CSV header names, in their canonical order.
var ImportColumns = []string{"title", "author", "isbn", "genre", "publication_date", "pages", "available"}

var requiredColumns = []string{"title", "author", "isbn", "publication_date", "pages"}

// ImportService bulk-creates books from CSV through the catalog service, so
// every row goes through the same validation and integrity checks as the web form.
type ImportService struct {
	catalog *CatalogService
}

// NewImportService creates a new ImportService.
func NewImportService(catalog *CatalogService) *ImportService {
	return &ImportService{catalog: catalog}
}

// ImportCSV reads a header row followed by one book per line. Failing rows are
// collected in the result and do not stop the import. With dryRun set, rows are
// validated but nothing is written.
func (s *ImportService) ImportCSV(ctx context.Context, r io.Reader, dryRun bool) (ImportResult, error) {
	var result ImportResult

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return result, fmt.Errorf("failed to read header: %w", err)
	}

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, h := range requiredColumns {
		if _, ok := headerIndex[h]; !ok {
			return result, fmt.Errorf("missing required header: %s", h)
		}
	}

	lineNum := 1
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		result.RowsProcessed++
		if err != nil {
			lineNum = errorLine(err, lineNum+1)
			result.fail(lineNum, err)
			continue
		}
		// Quoted fields may span lines, so ask the reader where the record began.
		lineNum, _ = reader.FieldPos(0)

		values := url.Values{}
		for _, column := range ImportColumns {
			if i, ok := headerIndex[column]; ok && i < len(record) {
				values.Set(column, record[i])
			}
		}

		form, err := s.catalog.Validator().Decode(values)
		if err != nil {
			result.fail(lineNum, err)
			continue
		}

		if dryRun {
			if err := s.catalog.CheckBook(ctx, form); err != nil {
				result.fail(lineNum, err)
			}
			continue
		}

		book, err := s.catalog.ImportBook(ctx, form)
		if err != nil {
			result.fail(lineNum, err)
			continue
		}
		result.BooksCreated++
		log.Debug().Uint("book_id", book.ID).Int("line", lineNum).Msg("Imported book")
	}

	return result, nil
}

// errorLine reports where a malformed record starts, or fallback when unknown.
func errorLine(err error, fallback int) int {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) && parseErr.StartLine > 0 {
		return parseErr.StartLine
	}
	return fallback
}

func (r *ImportResult) fail(line int, err error) {
	r.RowsFailed++
	r.Errors = append(r.Errors, RowError{Line: line, Err: err})
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}
