// Package locationsrepo provides the content-database collaborator for
// per-map loot tables: static container placements, container loot tables,
// and loose-loot spawn tables.
package locationsrepo

import (
	"context"

	"github.com/tetrisdev/SPTServer/internal/entities/locations"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=locationsmock github.com/tetrisdev/SPTServer/internal/repositories/locations Repository

// Repository is the read-only map-table lookup the generation pass consumes.
type Repository interface {
	// GetStaticLoot returns a map's static-container table, or a NOT_FOUND
	// error when the map has none.
	GetStaticLoot(ctx context.Context, locationID string) (*locations.StaticLoot, error)

	// GetContainerLootTable returns the loot table for a container type, or
	// a NOT_FOUND error.
	GetContainerLootTable(ctx context.Context, containerTemplateID string) (*locations.ContainerLootTable, error)

	// GetLooseLoot returns a map's loose-loot table, or a NOT_FOUND error
	// when the map has none.
	GetLooseLoot(ctx context.Context, locationID string) (*locations.LooseLoot, error)

	// ListLocations returns the ids of every known map.
	ListLocations(ctx context.Context) ([]string, error)
}
