package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stock-tracking-backend/internal/domain/shared"
)

const sampleCSV = `ticker_no,reporter_name,short_positions,short_ratio_bps
7203,Example Capital LLP,1200000,62
6758,Another Fund Ltd,800000,51
`

func TestParseFile(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("ParsesRowsWithReportingDate", func(t *testing.T) {
		rows, err := ParseFile(strings.NewReader(sampleCSV), date)

		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, map[string]any{
			"reporting_date":  "2024-03-15",
			"ticker_no":       "7203",
			"reporter_name":   "Example Capital LLP",
			"short_positions": "1200000",
			"short_ratio_bps": "62",
		}, rows[0])
	})

	t.Run("HeaderOnlyIsEmpty", func(t *testing.T) {
		header := "ticker_no,reporter_name,short_positions,short_ratio_bps\n"
		rows, err := ParseFile(strings.NewReader(header), date)

		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("WrongHeaderIsUnexpectedFile", func(t *testing.T) {
		bad := "symbol,reporter_name,short_positions,short_ratio_bps\n7203,X,1,1\n"
		_, err := ParseFile(strings.NewReader(bad), date)

		var domainErr *shared.Error
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.KindUnexpectedFile, domainErr.Kind)
	})

	t.Run("RaggedRecordIsUnexpectedFile", func(t *testing.T) {
		bad := "ticker_no,reporter_name,short_positions,short_ratio_bps\n7203,X,1\n"
		_, err := ParseFile(strings.NewReader(bad), date)

		var domainErr *shared.Error
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.KindUnexpectedFile, domainErr.Kind)
	})

	t.Run("EmptyFileIsUnexpectedFile", func(t *testing.T) {
		_, err := ParseFile(strings.NewReader(""), date)

		var domainErr *shared.Error
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.KindUnexpectedFile, domainErr.Kind)
	})
}

func TestHTTPSource_FetchForDate(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("FetchesAndParses", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/2024-03-15.csv", r.URL.Path)
			fmt.Fprint(w, sampleCSV)
		}))
		defer server.Close()

		source := NewHTTPSource(server.URL, time.Second)
		rows, err := source.FetchForDate(ctx, date)

		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("MissingFileMeansNoRows", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		source := NewHTTPSource(server.URL, time.Second)
		rows, err := source.FetchForDate(ctx, date)

		assert.NoError(t, err)
		assert.Nil(t, rows)
	})

	t.Run("ServerErrorPropagates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		source := NewHTTPSource(server.URL, time.Second)
		_, err := source.FetchForDate(ctx, date)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 500")
	})
}
