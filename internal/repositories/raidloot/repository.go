// Package raidloot persists generated loot layouts for the lifetime of a
// raid, so repeated location loads within one raid see the same layout.
package raidloot

//go:generate mockgen -destination=mock/mock_repository.go -package=raidlootmock github.com/tetrisdev/SPTServer/internal/repositories/raidloot Repository

import (
	"context"

	"github.com/tetrisdev/SPTServer/internal/entities/raids"
)

// CreateInput holds the layout to cache.
type CreateInput struct {
	Layout *raids.LootLayout
}

// CreateOutput is the result of caching a layout.
type CreateOutput struct{}

// GetInput identifies a cached layout by raid.
type GetInput struct {
	RaidID string
}

// GetOutput holds a cached layout.
type GetOutput struct {
	Layout *raids.LootLayout
}

// DeleteInput identifies the layout to evict.
type DeleteInput struct {
	RaidID string
}

// DeleteOutput is the result of evicting a layout.
type DeleteOutput struct{}

// Repository defines the interface for raid loot layout persistence.
type Repository interface {
	// Create caches a layout for its raid, replacing any previous one.
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves the cached layout for a raid.
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete evicts the cached layout for a raid.
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}
