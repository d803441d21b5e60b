// Package locations defines the per-map loot tables the generation pass
// consumes: static container placements, spawn grouping, and the loose-loot
// spawn point table.
package locations

import (
	"github.com/tetrisdev/SPTServer/internal/entities/items"
)

// StaticContainer is one fixed-position lootable object on a map.
type StaticContainer struct {
	// ID is the container instance id, unique within the map.
	ID string `json:"id"`

	// TemplateID is the container type (crate, safe, weapon box).
	TemplateID string `json:"templateId"`

	// Probability is the chance this container spawns, in [0, 1].
	// Containers at probability 1 are guaranteed.
	Probability float64 `json:"probability"`

	// AlwaysSpawn forces the container regardless of probability.
	AlwaysSpawn bool `json:"alwaysSpawn,omitempty"`

	// GroupID assigns the container to a spawn group. Containers without a
	// group fall into the synthetic empty-string group.
	GroupID string `json:"groupId,omitempty"`
}

// SpawnGroup bounds how many of a group's candidate containers spawn.
type SpawnGroup struct {
	GroupID       string `json:"groupId"`
	MinContainers int    `json:"minContainers"`
	MaxContainers int    `json:"maxContainers"`
}

// StaticLoot is a map's static-container table.
type StaticLoot struct {
	Containers []StaticContainer `json:"containers"`
	Groups     []SpawnGroup      `json:"groups"`

	// ForcedItems lists template ids force-included per container instance.
	ForcedItems map[string][]string `json:"forcedItems,omitempty"`
}

// CountProbability is one entry of a container type's item-count
// distribution.
type CountProbability struct {
	Count       int     `json:"count"`
	Probability float64 `json:"probability"`
}

// ContainerLootTable drives what, and how much, spawns inside containers of
// one container type.
type ContainerLootTable struct {
	// ItemCounts is the weighted distribution of how many items spawn.
	ItemCounts []CountProbability `json:"itemCounts"`

	// ItemWeights maps candidate item template ids to relative
	// probabilities.
	ItemWeights map[string]float64 `json:"itemWeights"`
}

// ItemWeight is one weighted candidate item key of a spawn point.
type ItemWeight struct {
	TemplateID string  `json:"templateId"`
	Weight     float64 `json:"weight"`
}

// Position is a world-space spawn position.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// SpawnPoint is one map-defined location where loose loot may appear. It is
// consumed at most once per generation pass; its template root id is
// rewritten before emission.
type SpawnPoint struct {
	// LocationID identifies the physical position; at most one spawn point
	// per LocationID appears in a pass's output.
	LocationID string `json:"locationId"`

	// Probability is the chance the point spawns, in [0, 1].
	Probability float64 `json:"probability"`

	Position Position `json:"position"`

	// Template is the item tree attached to the point in the source table,
	// root first. The generation pass substitutes it with a freshly built
	// composition.
	Template []items.Node `json:"template"`

	// ItemWeights are the candidate item keys for the point's single draw.
	ItemWeights []ItemWeight `json:"itemWeights"`
}

// SpawnCountDistribution holds the normal-distribution parameters of a
// map's desired loose-spawn-point count.
type SpawnCountDistribution struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
}

// LooseLoot is a map's loose-loot table.
type LooseLoot struct {
	SpawnCount  SpawnCountDistribution `json:"spawnCount"`
	SpawnPoints []SpawnPoint           `json:"spawnPoints"`

	// ForcedSpawnPoints are emitted before any probabilistic selection.
	ForcedSpawnPoints []SpawnPoint `json:"forcedSpawnPoints"`
}
