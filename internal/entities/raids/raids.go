// Package raids holds the generated per-raid loot layout, the unit cached
// between a generation pass and the client's location load.
package raids

import (
	"github.com/tetrisdev/SPTServer/internal/entities/items"
	"github.com/tetrisdev/SPTServer/internal/entities/locations"
)

// ContainerLoot is one populated static container in a cached layout.
type ContainerLoot struct {
	ContainerID string       `json:"containerId"`
	TemplateID  string       `json:"templateId"`
	Items       []items.Node `json:"items"`
}

// SpawnPointLoot is one populated loose-loot spawn point in a cached layout.
type SpawnPointLoot struct {
	LocationID string             `json:"locationId"`
	Position   locations.Position `json:"position"`
	Items      []items.Node       `json:"items"`
}

// LootLayout is the full generated loot for one raid on one map.
type LootLayout struct {
	RaidID      string           `json:"raidId"`
	LocationID  string           `json:"locationId"`
	GeneratedAt int64            `json:"generatedAt"`
	Containers  []ContainerLoot  `json:"containers"`
	LooseLoot   []SpawnPointLoot `json:"looseLoot"`
}
