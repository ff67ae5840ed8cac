// Package csvfile provides a local CSV row source, useful for offline
// builds and for exercising the pipeline without spreadsheet access.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/townpages/townpages-cli/internal/core/domain"
	"github.com/townpages/townpages-cli/internal/core/ports/driven"
	"github.com/townpages/townpages-cli/internal/logger"
)

// Expected header names, compared after trimming and lowercasing.
const (
	colName        = "company name"
	colCategory    = "category"
	colDescription = "description"
	colFeatured    = "featured"
	colEmail       = "email"
	colPhone       = "phone"
	colWebsite     = "website"
	colRegions     = "regions"
)

var _ driven.RowSource = (*Source)(nil)

// Source reads directory rows from a CSV file on disk. The file uses
// the same column contract as the spreadsheet source: a header row
// followed by one row per listing.
type Source struct {
	path    string
	watcher *fsnotify.Watcher
}

// New creates a CSV row source for the given file path.
func New(path string) *Source {
	return &Source{path: path}
}

// Type returns the source type identifier.
func (s *Source) Type() string { return "csv-file" }

// Capabilities returns what this source supports.
func (s *Source) Capabilities() driven.SourceCapabilities {
	return driven.SourceCapabilities{
		SupportsValidation: true,
		SupportsWatch:      true,
	}
}

// Validate checks the file exists and carries a usable header row.
func (s *Source) Validate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, s.path)
		}
		return fmt.Errorf("opening %s: %w", s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("reading header of %s: %w", s.path, err)
	}
	_, err = headerIndex(header)
	return err
}

// FetchRows reads the complete row set from the file.
func (s *Source) FetchRows(ctx context.Context) ([]domain.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, s.path)
		}
		return nil, fmt.Errorf("opening %s: %w", s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s is empty", s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", s.path, err)
	}
	cols, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	var rows []domain.RawRow
	ordinal := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.path, err)
		}
		if emptyRecord(record) {
			continue
		}
		ordinal++
		rows = append(rows, recordToRaw(record, cols, ordinal))
	}
	logger.Debug("csv: read %d rows from %s", len(rows), s.path)
	return rows, nil
}

// Watch emits a signal whenever the CSV file changes on disk. The
// channel is closed when ctx is cancelled. Watching the parent
// directory rather than the file itself survives editors that replace
// the file on save.
func (s *Source) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	s.watcher = watcher

	target := filepath.Clean(s.path)
	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				select {
				case changes <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("csv watcher: %v", err)
			}
		}
	}()
	return changes, nil
}

// Close stops any active watcher.
func (s *Source) Close() error {
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

// headerIndex maps recognized column names to their positions.
func headerIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if name == "" {
			continue
		}
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	for _, required := range []string{colName, colCategory, colRegions} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("header row is missing required column %q", required)
		}
	}
	return cols, nil
}

// recordToRaw builds a RawRow from one CSV record. ordinal is the
// 1-based position among data rows.
func recordToRaw(record []string, cols map[string]int, ordinal int) domain.RawRow {
	return domain.RawRow{
		Index:       ordinal,
		Name:        field(record, cols, colName),
		Category:    field(record, cols, colCategory),
		Description: field(record, cols, colDescription),
		Featured:    parseFeatured(field(record, cols, colFeatured)),
		Email:       field(record, cols, colEmail),
		Phone:       field(record, cols, colPhone),
		Website:     field(record, cols, colWebsite),
		Regions:     field(record, cols, colRegions),
	}
}

func field(record []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// parseFeatured interprets checkbox-ish cell values.
func parseFeatured(val string) bool {
	switch strings.ToLower(val) {
	case "true", "yes", "y", "1", "x", "checked":
		return true
	default:
		return false
	}
}

func emptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
