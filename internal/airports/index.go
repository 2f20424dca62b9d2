// Package airports resolves city names to IATA airport codes from static
// JSON mapping files.
package airports

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// File names expected under the data directory. Both files share the shape
// country -> city -> ordered list of airport codes.
const (
	DomesticFile      = "airport_codes.json"
	InternationalFile = "international_airport_codes.json"
)

// Index maps lowercase city names to a single airport code. It is populated
// once on first use and is safe for concurrent lookups afterwards.
type Index struct {
	mu     sync.RWMutex
	loaded bool
	codes  map[string]string

	domesticPath      string
	internationalPath string
	logger            *log.Logger
}

// NewIndex creates an index backed by the JSON files in dataDir. Nothing is
// read until the first lookup.
func NewIndex(dataDir string, logger *log.Logger) *Index {
	if logger == nil {
		logger = log.Default()
	}
	return &Index{
		codes:             make(map[string]string),
		domesticPath:      filepath.Join(dataDir, DomesticFile),
		internationalPath: filepath.Join(dataDir, InternationalFile),
		logger:            logger.With("component", "airports"),
	}
}

// EnsureLoaded populates the index if it has not been populated yet. Missing
// files shrink the index; malformed files are logged and skipped. Loading
// never fails the caller.
func (i *Index) EnsureLoaded() {
	i.mu.RLock()
	loaded := i.loaded
	i.mu.RUnlock()
	if loaded {
		return
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.loaded {
		return
	}

	i.loadFile(i.domesticPath)
	i.loadFile(i.internationalPath)
	i.loaded = true
	i.logger.Debug("airport codes loaded", "cities", len(i.codes))
}

// loadFile merges one mapping file into the index. The first file loaded and
// the first code listed for a city win; later entries never overwrite.
// Callers must hold the write lock.
func (i *Index) loadFile(path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			i.logger.Warn("cannot read airport codes", "path", path, "err", err)
		}
		return
	}

	var byCountry map[string]map[string][]string
	if err := json.Unmarshal(raw, &byCountry); err != nil {
		i.logger.Warn("malformed airport codes file", "path", path, "err", err)
		return
	}

	for _, cities := range byCountry {
		for city, codes := range cities {
			if len(codes) == 0 {
				continue
			}
			key := strings.ToLower(city)
			if _, ok := i.codes[key]; !ok {
				i.codes[key] = codes[0]
			}
		}
	}
}

// Lookup returns the airport code for a city, case-insensitively. An unknown
// city returns ok=false, never an error.
func (i *Index) Lookup(city string) (string, bool) {
	i.EnsureLoaded()

	i.mu.RLock()
	defer i.mu.RUnlock()
	code, ok := i.codes[strings.ToLower(strings.TrimSpace(city))]
	return code, ok
}

// Len reports how many cities are indexed, loading the index if needed.
func (i *Index) Len() int {
	i.EnsureLoaded()

	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.codes)
}
