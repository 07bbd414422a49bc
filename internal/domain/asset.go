package domain

import (
	"fmt"
	"strings"
	"sync"
)

// AssetType identifies a single asset held in the ledger, e.g. "USD" or "APPL".
type AssetType string

// Pair is a tradable asset pair. Orders on the pair exchange Base for Quote:
// a BUY spends Quote to acquire Base, a SELL does the reverse.
type Pair struct {
	ID    string // canonical "<BASE>_<QUOTE>"
	Base  AssetType
	Quote AssetType
}

// ParsePair parses a pair spec of the form "APPL_USD".
func ParsePair(s string) (Pair, error) {
	parts := strings.Split(s, "_")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Pair{}, fmt.Errorf("pair must have the form BASE_QUOTE, got %q", s)
	}
	if parts[0] == parts[1] {
		return Pair{}, fmt.Errorf("pair base and quote must differ, got %q", s)
	}
	return Pair{
		ID:    parts[0] + "_" + parts[1],
		Base:  AssetType(parts[0]),
		Quote: AssetType(parts[1]),
	}, nil
}

// PairRegistry tracks the tradable pairs and, transitively, the known asset
// types. Pairs are fixed at startup; lookups are safe for concurrent use.
type PairRegistry struct {
	mu     sync.RWMutex
	pairs  map[string]Pair
	assets map[AssetType]bool
	def    string // default pair for requests that omit one
}

// NewPairRegistry creates a registry containing the given pairs. The first
// pair becomes the default.
func NewPairRegistry(pairs []Pair) *PairRegistry {
	r := &PairRegistry{
		pairs:  make(map[string]Pair),
		assets: make(map[AssetType]bool),
	}
	for i, p := range pairs {
		if i == 0 {
			r.def = p.ID
		}
		r.pairs[p.ID] = p
		r.assets[p.Base] = true
		r.assets[p.Quote] = true
	}
	return r
}

// Get returns the pair with the given ID, or ErrInvalidPair.
func (r *PairRegistry) Get(id string) (Pair, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pairs[id]
	if !ok {
		return Pair{}, ErrInvalidPair
	}
	return p, nil
}

// Default returns the default pair. The registry is never empty in a
// configured process.
func (r *PairRegistry) Default() Pair {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pairs[r.def]
}

// AssetExists returns true if the asset type belongs to any registered pair.
func (r *PairRegistry) AssetExists(asset AssetType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.assets[asset]
}

// Pairs returns the IDs of all registered pairs.
func (r *PairRegistry) Pairs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.pairs))
	for id := range r.pairs {
		ids = append(ids, id)
	}
	return ids
}
