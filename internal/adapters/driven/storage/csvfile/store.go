// Package csvfile persists the analyzed-opinion dataset as an append-only
// CSV file.
//
// The dataset doubles as the run ledger: ids already present in the file are
// never analyzed again. Appends are row-atomic, each Append opens the file,
// writes one flushed and synced record and closes it again, so an interrupted
// run never leaves a torn row behind and every completed row survives.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/docket-cli/internal/core/domain"
	"github.com/custodia-labs/docket-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.DatasetStore = (*Store)(nil)

// DefaultFilename is the dataset file used when no path is configured.
const DefaultFilename = "supreme_court_decisions.csv"

// idColumn is the header name of the column holding the opinion id.
const idColumn = "opinion_id"

// Columns is the dataset header, in persisted order. External consumers read
// the file by these names, so the layout is stable and new columns only ever
// go at the end.
var Columns = []string{
	"opinion_id",
	"cluster_id",
	"date_filed",
	"case_name",
	"author",
	"type",
	"citation",
	"page_count",
	"url",
	"download_url",
	"classification",
	"confidence",
	"tags",
	"notes",
	"summary",
	"reasoning",
	"text_length",
	"analyzed_date",
}

// Store provides dataset access over a single CSV file path.
type Store struct {
	path string
}

// NewStore creates a dataset store for the given CSV path. An empty path
// defaults to supreme_court_decisions.csv in the working directory.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultFilename
	}
	return &Store{path: path}
}

// Path returns the dataset file path.
func (s *Store) Path() string {
	return s.path
}

// KnownIDs scans the dataset and returns the set of opinion ids it already
// holds. A dataset that does not exist yet yields an empty set. Rows whose id
// cell does not parse are skipped rather than failing the scan.
func (s *Store) KnownIDs(ctx context.Context) (map[int64]struct{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	known := make(map[int64]struct{})

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return known, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Older layouts may carry fewer columns; the scan only needs the id.
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return known, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading dataset header: %w", err)
	}

	// Strip a BOM left behind by spreadsheet editors.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	idCol := slices.Index(header, idColumn)
	if idCol < 0 {
		return nil, fmt.Errorf("dataset %s has no %s column", s.path, idColumn)
	}

	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading dataset: %w", err)
		}
		if idCol >= len(record) {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSpace(record[idCol]), 10, 64)
		if err != nil {
			continue
		}
		known[id] = struct{}{}
	}

	return known, nil
}

// Append writes one row, creating the dataset and its header on the first
// write. Existing content is never rewritten.
func (s *Store) Append(ctx context.Context, row *domain.Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if row == nil {
		return fmt.Errorf("%w: nil row", domain.ErrInvalidInput)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("creating dataset directory: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("checking dataset: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(Columns); err != nil {
			return fmt.Errorf("writing dataset header: %w", err)
		}
	}
	if err := w.Write(encode(row)); err != nil {
		return fmt.Errorf("writing dataset row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing dataset: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("syncing dataset: %w", err)
	}

	return nil
}

// encode renders one row in Columns order.
func encode(row *domain.Row) []string {
	return []string{
		strconv.FormatInt(row.OpinionID, 10),
		formatID(row.ClusterID),
		formatDate(row.DateFiled),
		row.CaseName,
		row.Author,
		string(row.Type),
		row.Citation,
		formatCount(row.PageCount),
		row.URL,
		row.DownloadURL,
		string(row.Classification),
		string(row.Confidence),
		row.TagsCell(),
		row.NotesCell(),
		row.Summary,
		row.Reasoning,
		strconv.Itoa(row.TextLength),
		formatDate(row.AnalyzedAt),
	}
}

// formatDate renders dates as YYYY-MM-DD. Unknown dates stay blank.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

// formatID renders optional numeric ids. Zero means the listing did not carry
// the value, so the cell stays blank.
func formatID(id int64) string {
	if id <= 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func formatCount(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}
