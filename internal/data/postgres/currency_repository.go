package postgres

import (
	"context"
	"fmt"
	"log/slog"
)

// CurrencyRepository reads the currency metadata the money registry caches at
// startup.
type CurrencyRepository struct {
	db     DB
	logger *slog.Logger
}

func NewCurrencyRepository(logger *slog.Logger, db DB) *CurrencyRepository {
	return &CurrencyRepository{db: db, logger: logger}
}

// DecimalPlaces returns ISO code -> minor-unit exponent for every currency row.
func (r *CurrencyRepository) DecimalPlaces(ctx context.Context) (map[string]int32, error) {
	rows, err := r.db.Query(ctx, `SELECT iso_code, decimal_places FROM currencies`)
	if err != nil {
		r.logger.Error("Failed to load currencies", "error", err)
		return nil, fmt.Errorf("failed to load currencies: %w", err)
	}
	defer rows.Close()

	decimals := make(map[string]int32)
	for rows.Next() {
		var code string
		var places int32
		if err := rows.Scan(&code, &places); err != nil {
			return nil, err
		}
		decimals[code] = places
	}
	return decimals, rows.Err()
}
