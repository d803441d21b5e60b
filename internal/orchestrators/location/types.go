package location

import (
	"github.com/tetrisdev/SPTServer/internal/entities/items"
	"github.com/tetrisdev/SPTServer/internal/entities/locations"
)

// GenerateLootInput defines the request for one map's loot generation pass.
type GenerateLootInput struct {
	LocationID string
}

// GenerateLootOutput is the populated loot layout for one map, ready to be
// embedded into the client-facing map payload.
type GenerateLootOutput struct {
	Containers []*ContainerLoot
	LooseLoot  []*SpawnPointLoot
}

// ContainerLoot is one spawned static container with its placed contents.
// Items starts with the container root node.
type ContainerLoot struct {
	ContainerID string       `json:"containerId"`
	TemplateID  string       `json:"templateId"`
	Items       []items.Node `json:"items"`
}

// SpawnPointLoot is one populated loose-loot spawn point. Items starts with
// the composed item's root node.
type SpawnPointLoot struct {
	LocationID string             `json:"locationId"`
	Position   locations.Position `json:"position"`
	Items      []items.Node       `json:"items"`
}

// GenerationConfig is the immutable configuration of a generation pass. It
// is passed in at orchestrator construction; nothing mutates it afterwards.
type GenerationConfig struct {
	// RandomizationEnabled gates weighted container selection globally.
	// When off, every candidate container spawns.
	RandomizationEnabled bool

	// RandomizationDisabledLocations lists maps exempt from container
	// randomization even when it is globally enabled.
	RandomizationDisabledLocations []string

	// GroupMinMultiplier and GroupMaxMultiplier scale a spawn group's
	// declared min/max container counts before the target-count roll.
	GroupMinMultiplier float64
	GroupMaxMultiplier float64

	// StaticLootMultiplier scales per-container item counts per map.
	// Maps absent from the table use 1.
	StaticLootMultiplier map[string]float64

	// LooseLootMultiplier scales the desired loose spawn point count per
	// map. Maps absent from the table use 1.
	LooseLootMultiplier map[string]float64

	// AllowDuplicateItems permits the same non-currency template to be
	// drawn more than once into one container. Currency denominations may
	// always recur.
	AllowDuplicateItems bool

	// MinFillStaticMagazinePercent and MinFillLooseMagazinePercent are the
	// minimum magazine fill fractions for static-container and loose-loot
	// placements.
	MinFillStaticMagazinePercent float64
	MinFillLooseMagazinePercent  float64

	// PlacementFailureBudget is how many consecutive grid placement
	// failures a container tolerates before its remaining items are
	// dropped.
	PlacementFailureBudget int

	// ContainerTypeExemptions lists container template ids that always
	// spawn regardless of probability.
	ContainerTypeExemptions []string

	// SpawnPointBlacklist lists blocked loose-loot spawn point location
	// ids per map.
	SpawnPointBlacklist map[string][]string

	// SingleSpawnTemplates lists, per map, forced-loot template ids that
	// must spawn at exactly one of their candidate positions.
	SingleSpawnTemplates map[string][]string
}

// DefaultGenerationConfig returns the stock generation configuration.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		RandomizationEnabled:         true,
		GroupMinMultiplier:           1.0,
		GroupMaxMultiplier:           1.0,
		AllowDuplicateItems:          false,
		MinFillStaticMagazinePercent: 0.25,
		MinFillLooseMagazinePercent:  0.5,
		PlacementFailureBudget:       3,
	}
}

func (c *GenerationConfig) staticMultiplier(locationID string) float64 {
	if m, ok := c.StaticLootMultiplier[locationID]; ok {
		return m
	}
	return 1
}

func (c *GenerationConfig) looseMultiplier(locationID string) float64 {
	if m, ok := c.LooseLootMultiplier[locationID]; ok {
		return m
	}
	return 1
}

func (c *GenerationConfig) randomizationDisabledFor(locationID string) bool {
	if !c.RandomizationEnabled {
		return true
	}
	for _, id := range c.RandomizationDisabledLocations {
		if id == locationID {
			return true
		}
	}
	return false
}

func (c *GenerationConfig) containerTypeExempt(templateID string) bool {
	for _, id := range c.ContainerTypeExemptions {
		if id == templateID {
			return true
		}
	}
	return false
}

func (c *GenerationConfig) spawnPointBlacklisted(locationID, spawnPointID string) bool {
	for _, id := range c.SpawnPointBlacklist[locationID] {
		if id == spawnPointID {
			return true
		}
	}
	return false
}

func (c *GenerationConfig) singleSpawnTemplate(locationID, templateID string) bool {
	for _, id := range c.SingleSpawnTemplates[locationID] {
		if id == templateID {
			return true
		}
	}
	return false
}
