package money

import (
	"errors"
	"fmt"
	"sync"

	gomoney "github.com/Rhymond/go-money"
)

// ErrRegistryEmpty is returned when the currency metadata has not been loaded
// yet. Readers fail fast rather than blocking or guessing decimal places.
var ErrRegistryEmpty = errors.New("currency registry is empty")

// Registry caches ISO code -> decimal places, loaded once at process start from
// the currencies table and read-mostly afterwards. Codes missing from the
// table fall back to the go-money ISO-4217 registry.
type Registry struct {
	mu       sync.RWMutex
	decimals map[string]int32
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Load replaces the cached metadata. Called once during bootstrap.
func (r *Registry) Load(decimals map[string]int32) {
	copied := make(map[string]int32, len(decimals))
	for code, d := range decimals {
		copied[code] = d
	}
	r.mu.Lock()
	r.decimals = copied
	r.mu.Unlock()
}

// DecimalPlaces resolves the minor-unit exponent for an ISO code.
func (r *Registry) DecimalPlaces(code string) (int32, error) {
	r.mu.RLock()
	decimals := r.decimals
	r.mu.RUnlock()

	if decimals == nil {
		return 0, ErrRegistryEmpty
	}
	if d, ok := decimals[code]; ok {
		return d, nil
	}
	if cur := gomoney.GetCurrency(code); cur != nil {
		return int32(cur.Fraction), nil
	}
	return 0, fmt.Errorf("unknown currency code %q", code)
}

// FromMinorUnits builds a Money for code, resolving its decimal places from
// the cached metadata.
func (r *Registry) FromMinorUnits(units int64, code string) (Money, error) {
	d, err := r.DecimalPlaces(code)
	if err != nil {
		return Money{}, err
	}
	return FromMinorUnits(units, d, code), nil
}
