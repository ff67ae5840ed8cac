package sheets

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/townpages/townpages-cli/internal/connectors/google"
	"github.com/townpages/townpages-cli/internal/core/domain"
	"github.com/townpages/townpages-cli/internal/core/ports/driven"
	"github.com/townpages/townpages-cli/internal/logger"
)

// Recognized header names, compared after trimming and lowercasing.
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

// Ensure Source implements the interface.
var _ driven.RowSource = (*Source)(nil)

// Source reads directory rows from a Google Sheets spreadsheet.
// Pages of rows are fetched concurrently but merged in sheet order, so
// the row sequence handed to the pipeline is stable across runs.
type Source struct {
	svc     *sheetsapi.Service
	cfg     Config
	limiter *google.RateLimiter
}

// New creates a Sheets row source.
func New(svc *sheetsapi.Service, cfg Config) *Source {
	return &Source{
		svc:     svc,
		cfg:     cfg.withDefaults(),
		limiter: google.NewRateLimiter(),
	}
}

// Type returns the source type identifier.
func (s *Source) Type() string { return "google-sheets" }

// Capabilities returns what this source supports.
func (s *Source) Capabilities() driven.SourceCapabilities {
	return driven.SourceCapabilities{
		RequiresAuth:       true,
		SupportsValidation: true,
		SupportsPagination: true,
	}
}

// Validate checks the spreadsheet is reachable with the configured
// credentials by fetching its metadata.
func (s *Source) Validate(ctx context.Context) error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := s.svc.Spreadsheets.Get(s.cfg.SpreadsheetID).
		Fields("properties(title)").
		Context(ctx).Do()
	switch {
	case err == nil:
		return nil
	case google.IsUnauthorized(err):
		return fmt.Errorf("%w (check sheets.api_key or sheets.credentials_file)", s.apiErr(err))
	case google.IsNotFound(err):
		return fmt.Errorf("%w (check sheets.spreadsheet_id)", s.apiErr(err))
	default:
		return s.apiErr(err)
	}
}

// FetchRows retrieves the complete row set for one build run.
// Returns an error and no rows on any page failure: a partial fetch
// must never produce an artifact with incomplete regional coverage.
func (s *Source) FetchRows(ctx context.Context) ([]domain.RawRow, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	sheetName, rowCount, err := s.sheetExtent(ctx)
	if err != nil {
		return nil, err
	}

	header, err := s.fetchHeader(ctx, sheetName)
	if err != nil {
		return nil, err
	}
	cols, err := headerIndex(header)
	if err != nil {
		return nil, err
	}

	if rowCount <= 1 {
		return nil, nil
	}

	// Fetch data windows concurrently, merging in sheet order.
	windows := buildWindows(2, rowCount, s.cfg.PageSize)
	pages := make([][][]interface{}, len(windows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrency)
	for i, w := range windows {
		g.Go(func() error {
			if err := s.limiter.Wait(gctx); err != nil {
				return err
			}
			rng := fmt.Sprintf("%s!A%d:Z%d", quoteSheet(sheetName), w.first, w.last)
			resp, err := s.svc.Spreadsheets.Values.Get(s.cfg.SpreadsheetID, rng).
				ValueRenderOption("UNFORMATTED_VALUE").
				Context(gctx).Do()
			if err != nil {
				return fmt.Errorf("fetching rows %d-%d: %w", w.first, w.last, s.apiErr(err))
			}
			pages[i] = resp.Values
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var rows []domain.RawRow
	ordinal := 0
	for _, page := range pages {
		for _, cells := range page {
			if emptyRow(cells) {
				continue
			}
			ordinal++
			rows = append(rows, rowToRaw(cells, cols, ordinal))
		}
	}
	logger.Debug("sheets: fetched %d rows in %d pages", len(rows), len(windows))
	return rows, nil
}

// Watch is not supported for spreadsheets.
func (s *Source) Watch(context.Context) (<-chan struct{}, error) {
	return nil, domain.ErrWatchUnsupported
}

// Close releases resources.
func (s *Source) Close() error { return nil }

// apiErr wraps an API error into the connector's sentinel taxonomy.
// A quota response additionally arms the limiter's backoff so the
// next Wait holds off before retrying.
func (s *Source) apiErr(err error) error {
	if google.IsRateLimited(err) {
		s.limiter.RecordRateLimitError(google.RetryAfter(err))
	}
	return google.WrapError(err)
}

// sheetExtent resolves the sheet to read and its grid row count.
func (s *Source) sheetExtent(ctx context.Context) (string, int64, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", 0, err
	}
	meta, err := s.svc.Spreadsheets.Get(s.cfg.SpreadsheetID).
		Fields("sheets(properties(title,gridProperties(rowCount)))").
		Context(ctx).Do()
	if err != nil {
		return "", 0, fmt.Errorf("fetching spreadsheet metadata: %w", s.apiErr(err))
	}
	if len(meta.Sheets) == 0 {
		return "", 0, fmt.Errorf("spreadsheet %s has no sheets", s.cfg.SpreadsheetID)
	}

	for _, sheet := range meta.Sheets {
		props := sheet.Properties
		if props == nil {
			continue
		}
		if s.cfg.SheetName == "" || props.Title == s.cfg.SheetName {
			var rowCount int64
			if props.GridProperties != nil {
				rowCount = props.GridProperties.RowCount
			}
			return props.Title, rowCount, nil
		}
	}
	return "", 0, fmt.Errorf("sheet %q not found in spreadsheet %s", s.cfg.SheetName, s.cfg.SpreadsheetID)
}

// fetchHeader reads the first row of the sheet.
func (s *Source) fetchHeader(ctx context.Context, sheetName string) ([]interface{}, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	resp, err := s.svc.Spreadsheets.Values.Get(s.cfg.SpreadsheetID, quoteSheet(sheetName)+"!1:1").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetching header row: %w", s.apiErr(err))
	}
	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheetName)
	}
	return resp.Values[0], nil
}

// quoteSheet wraps a sheet title in single quotes for use in an A1
// range. Titles containing spaces or punctuation require quoting;
// quoting unconditionally is always valid.
func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// window is one page of data rows, by absolute sheet row numbers.
type window struct {
	first, last int64
}

// buildWindows splits [first, last] into pageSize-row windows.
func buildWindows(first, last, pageSize int64) []window {
	var windows []window
	for start := first; start <= last; start += pageSize {
		end := start + pageSize - 1
		if end > last {
			end = last
		}
		windows = append(windows, window{first: start, last: end})
	}
	return windows
}

// headerIndex maps recognized column names to their positions.
// Header comparison trims whitespace and ignores case.
func headerIndex(header []interface{}) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(fmt.Sprint(cell)))
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

// rowToRaw builds a RawRow from one row of cells. ordinal is the
// 1-based position among data rows (the header is excluded).
func rowToRaw(cells []interface{}, cols map[string]int, ordinal int) domain.RawRow {
	return domain.RawRow{
		Index:       ordinal,
		Name:        cellString(cells, cols, colName),
		Category:    cellString(cells, cols, colCategory),
		Description: cellString(cells, cols, colDescription),
		Featured:    parseFeatured(cellString(cells, cols, colFeatured)),
		Email:       cellString(cells, cols, colEmail),
		Phone:       cellString(cells, cols, colPhone),
		Website:     cellString(cells, cols, colWebsite),
		Regions:     cellString(cells, cols, colRegions),
	}
}

// cellString extracts a trimmed string cell by column name.
func cellString(cells []interface{}, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(cells[idx]))
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

// emptyRow reports whether every cell is blank.
func emptyRow(cells []interface{}) bool {
	for _, cell := range cells {
		if strings.TrimSpace(fmt.Sprint(cell)) != "" {
			return false
		}
	}
	return true
}
