package templates

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/tetrisdev/SPTServer/internal/entities/items"
	"github.com/tetrisdev/SPTServer/internal/errors"
)

// Database is the on-disk shape of the template database file.
type Database struct {
	Templates []items.Template `json:"templates"`
	Presets   []items.Preset   `json:"presets"`
	Ammo      AmmoTable        `json:"ammo"`
}

// InMemoryRepository implements Repository over tables resident in memory.
// All lookups are read-only after construction.
type InMemoryRepository struct {
	mu        sync.RWMutex
	templates map[string]*items.Template
	presets   map[string]*items.Preset
	ammo      AmmoTable
}

// NewInMemory creates a repository from an already-loaded database.
func NewInMemory(db *Database) *InMemoryRepository {
	r := &InMemoryRepository{
		templates: make(map[string]*items.Template),
		presets:   make(map[string]*items.Preset),
		ammo:      make(AmmoTable),
	}
	if db == nil {
		return r
	}

	for i := range db.Templates {
		tpl := db.Templates[i]
		r.templates[tpl.ID] = &tpl
	}
	// Presets are keyed by the weapon template they configure.
	for i := range db.Presets {
		preset := db.Presets[i]
		r.presets[preset.RootTemplateID] = &preset
	}
	for caliber, weights := range db.Ammo {
		r.ammo[caliber] = weights
	}
	return r
}

// LoadFile reads a template database from a JSON file.
func LoadFile(path string) (*InMemoryRepository, error) {
	raw, err := os.ReadFile(path) // #nosec G304 // operator-supplied data path
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read template database %s", path)
	}

	var db Database
	if err := json.Unmarshal(raw, &db); err != nil {
		return nil, errors.Wrapf(err, "failed to parse template database %s", path)
	}

	return NewInMemory(&db), nil
}

// Ensure InMemoryRepository implements Repository.
var _ Repository = (*InMemoryRepository)(nil)

// GetTemplate returns the template for an item id.
func (r *InMemoryRepository) GetTemplate(_ context.Context, templateID string) (*items.Template, error) {
	if templateID == "" {
		return nil, errors.InvalidArgument("template id is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	tpl, ok := r.templates[templateID]
	if !ok {
		return nil, errors.NotFoundf("no template with id %s", templateID)
	}
	return tpl, nil
}

// GetDefaultPreset returns the default preset for a weapon template.
func (r *InMemoryRepository) GetDefaultPreset(_ context.Context, weaponTemplateID string) (*items.Preset, error) {
	if weaponTemplateID == "" {
		return nil, errors.InvalidArgument("weapon template id is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	preset, ok := r.presets[weaponTemplateID]
	if !ok {
		return nil, errors.NotFoundf("no default preset for weapon %s", weaponTemplateID)
	}
	return preset, nil
}

// GetAmmoTable returns the static ammo table.
func (r *InMemoryRepository) GetAmmoTable(_ context.Context) (AmmoTable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ammo, nil
}
