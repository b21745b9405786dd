// Package ingest implements the short-interest backfill: fetching the
// regulator's published per-date files and writing their rows through the same
// validated path the API uses. The loop is fire-and-forget relative to the
// request that starts it; its lifecycle is tracked in job-status records and
// per-iteration events.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stock-tracking-backend/internal/domain/shared"
)

// Source produces the pre-parsed short-interest rows published for one
// reporting date. A nil slice with nil error means no file was published for
// that date (weekends, holidays).
type Source interface {
	FetchForDate(ctx context.Context, date time.Time) ([]map[string]any, error)
}

// csvColumns is the fixed layout of the regulator's files.
var csvColumns = []string{"ticker_no", "reporter_name", "short_positions", "short_ratio_bps"}

// HTTPSource fetches <base>/<YYYY-MM-DD>.csv and parses it into row documents.
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) FetchForDate(ctx context.Context, date time.Time) ([]map[string]any, error) {
	url := fmt.Sprintf("%s/%s.csv", s.baseURL, date.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build source request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// No disclosure file for this date.
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source returned status %d for %s", resp.StatusCode, url)
	}

	rows, err := ParseFile(resp.Body, date)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", url, err)
	}
	return rows, nil
}

// ParseFile reads one published CSV file into row documents ready for
// validation. The header must match the fixed column layout exactly; any
// malformed content is an UnexpectedFile error.
func ParseFile(r io.Reader, date time.Time) ([]map[string]any, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(csvColumns)

	header, err := reader.Read()
	if err != nil {
		return nil, shared.NewUnexpectedFile("file has no header row")
	}
	for i, col := range csvColumns {
		if header[i] != col {
			return nil, shared.NewUnexpectedFile(fmt.Sprintf("unexpected header column %q, want %q", header[i], col))
		}
	}

	var rows []map[string]any
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, shared.NewUnexpectedFile(fmt.Sprintf("malformed record: %v", err))
		}

		row := map[string]any{"reporting_date": date.Format("2006-01-02")}
		for i, col := range csvColumns {
			row[col] = record[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}
