package locationsrepo

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tetrisdev/SPTServer/internal/entities/locations"
	"github.com/tetrisdev/SPTServer/internal/errors"
)

// LocationData is the on-disk shape of one map's loot tables.
type LocationData struct {
	ID         string                `json:"id"`
	StaticLoot *locations.StaticLoot `json:"staticLoot,omitempty"`
	LooseLoot  *locations.LooseLoot  `json:"looseLoot,omitempty"`
}

// InMemoryRepository implements Repository over tables resident in memory.
type InMemoryRepository struct {
	mu              sync.RWMutex
	statics         map[string]*locations.StaticLoot
	loose           map[string]*locations.LooseLoot
	containerTables map[string]*locations.ContainerLootTable
}

// NewInMemory creates a repository from already-loaded map data and
// per-container-type loot tables.
func NewInMemory(maps []LocationData, containerTables map[string]*locations.ContainerLootTable) *InMemoryRepository {
	r := &InMemoryRepository{
		statics:         make(map[string]*locations.StaticLoot),
		loose:           make(map[string]*locations.LooseLoot),
		containerTables: make(map[string]*locations.ContainerLootTable),
	}

	for i := range maps {
		m := maps[i]
		if m.StaticLoot != nil {
			r.statics[m.ID] = m.StaticLoot
		}
		if m.LooseLoot != nil {
			r.loose[m.ID] = m.LooseLoot
		}
	}
	for id, table := range containerTables {
		r.containerTables[id] = table
	}
	return r
}

// containerTablesFile is the one non-map file in a location data directory.
const containerTablesFile = "containers.json"

// LoadDirectory reads every map's loot tables from a directory of JSON
// files: one file per map plus containers.json for the per-container-type
// tables.
func LoadDirectory(dir string) (*InMemoryRepository, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read location data directory %s", dir)
	}

	var maps []LocationData
	containerTables := make(map[string]*locations.ContainerLootTable)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		raw, err := os.ReadFile(path) // #nosec G304 // operator-supplied data path
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", path)
		}

		if entry.Name() == containerTablesFile {
			if err := json.Unmarshal(raw, &containerTables); err != nil {
				return nil, errors.Wrapf(err, "failed to parse %s", path)
			}
			continue
		}

		var m LocationData
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s", path)
		}
		if m.ID == "" {
			m.ID = strings.TrimSuffix(entry.Name(), ".json")
		}
		maps = append(maps, m)
	}

	return NewInMemory(maps, containerTables), nil
}

// Ensure InMemoryRepository implements Repository.
var _ Repository = (*InMemoryRepository)(nil)

// GetStaticLoot returns a map's static-container table.
func (r *InMemoryRepository) GetStaticLoot(_ context.Context, locationID string) (*locations.StaticLoot, error) {
	if locationID == "" {
		return nil, errors.InvalidArgument("location id is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	loot, ok := r.statics[locationID]
	if !ok {
		return nil, errors.NotFoundf("no static loot table for location %s", locationID)
	}
	return loot, nil
}

// GetContainerLootTable returns the loot table for a container type.
func (r *InMemoryRepository) GetContainerLootTable(_ context.Context, containerTemplateID string) (*locations.ContainerLootTable, error) {
	if containerTemplateID == "" {
		return nil, errors.InvalidArgument("container template id is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	table, ok := r.containerTables[containerTemplateID]
	if !ok {
		return nil, errors.NotFoundf("no loot table for container type %s", containerTemplateID)
	}
	return table, nil
}

// GetLooseLoot returns a map's loose-loot table.
func (r *InMemoryRepository) GetLooseLoot(_ context.Context, locationID string) (*locations.LooseLoot, error) {
	if locationID == "" {
		return nil, errors.InvalidArgument("location id is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	loot, ok := r.loose[locationID]
	if !ok {
		return nil, errors.NotFoundf("no loose loot table for location %s", locationID)
	}
	return loot, nil
}

// ListLocations returns every map id with at least one loot table.
func (r *InMemoryRepository) ListLocations(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	for id := range r.statics {
		seen[id] = true
	}
	for id := range r.loose {
		seen[id] = true
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
