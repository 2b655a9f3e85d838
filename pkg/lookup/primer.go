package lookup

import (
	"context"
	"fmt"
	"sync"
)

// Fetcher is the subset of the API client the primer needs. Defined here,
// rather than imported from pkg/client, so pkg/lookup has no dependency on
// pkg/client's auth/retry machinery — any client satisfying this interface
// (the real one, or a test double) can prime tables.
type Fetcher interface {
	ListLanguages(ctx context.Context) ([]LanguageRecord, error)
	ListCurrencies(ctx context.Context) ([]CurrencyRecord, error)
	SystemLanguageID(ctx context.Context) (string, error)
}

// Prime fetches languages, currencies, and the system language id and
// builds an immutable Tables (spec.md §4.H). Called once, after auth and
// before pipeline launch.
func Prime(ctx context.Context, f Fetcher) (*Tables, error) {
	languages, err := f.ListLanguages(ctx)
	if err != nil {
		return nil, fmt.Errorf("lookup: fetch languages: %w", err)
	}
	currencies, err := f.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("lookup: fetch currencies: %w", err)
	}
	systemLang, err := f.SystemLanguageID(ctx)
	if err != nil {
		return nil, fmt.Errorf("lookup: fetch system language id: %w", err)
	}
	return New(languages, currencies, systemLang), nil
}

var (
	globalTables *Tables
	tablesMutex  sync.RWMutex
	primeOnce    sync.Once
)

// Initialize primes the global Tables singleton once per process, the way
// pkg/config.Initialize primes the global Config. Subsequent calls are
// no-ops; callers needing a fresh prime (tests, hot-reload) should build
// their own Tables via New/Prime and hold it directly instead.
func Initialize(ctx context.Context, f Fetcher) error {
	var initErr error
	primeOnce.Do(func() {
		t, err := Prime(ctx, f)
		if err != nil {
			initErr = err
			return
		}
		tablesMutex.Lock()
		globalTables = t
		tablesMutex.Unlock()
	})
	return initErr
}

// Get returns the global Tables, or nil if Initialize has not succeeded.
func Get() *Tables {
	tablesMutex.RLock()
	defer tablesMutex.RUnlock()
	return globalTables
}

// MustGet returns the global Tables, panicking if priming hasn't happened.
// For code paths that only run after a successful Initialize; the
// script host does not use it, it receives its Tables as a NewHost
// argument.
func MustGet() *Tables {
	t := Get()
	if t == nil {
		panic("lookup: tables not initialized: call Initialize first")
	}
	return t
}
