// Package templates provides the item-template lookup collaborator: item
// metadata, default weapon presets, and the static ammo table.
package templates

import (
	"context"

	"github.com/tetrisdev/SPTServer/internal/entities/items"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=templatesmock github.com/tetrisdev/SPTServer/internal/repositories/templates Repository

// AmmoWeight is one weighted cartridge candidate within a caliber.
type AmmoWeight struct {
	TemplateID string  `json:"templateId"`
	Weight     float64 `json:"weight"`
}

// AmmoTable maps a caliber to its weighted cartridge candidates. Magazine
// fills draw from it.
type AmmoTable map[string][]AmmoWeight

// Repository is the read-only item-template lookup the generation pass
// consumes.
type Repository interface {
	// GetTemplate returns the template for an item id, or a NOT_FOUND
	// error.
	GetTemplate(ctx context.Context, templateID string) (*items.Template, error)

	// GetDefaultPreset returns a weapon's default equipment preset, or a
	// NOT_FOUND error when the weapon has none.
	GetDefaultPreset(ctx context.Context, weaponTemplateID string) (*items.Preset, error)

	// GetAmmoTable returns the static ammo table.
	GetAmmoTable(ctx context.Context) (AmmoTable, error)
}
