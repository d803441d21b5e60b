// Package location implements the per-map loot generation orchestrator: it
// composes the weighted sampler, the container grid allocator, and the item
// composition builder into the full static-container and loose-loot
// generation pass the raid-location-loading flow consumes.
package location

//go:generate mockgen -destination=mock/mock_service.go -package=locationmock github.com/tetrisdev/SPTServer/internal/orchestrators/location Service

import (
	"context"
	"log/slog"

	"github.com/tetrisdev/SPTServer/internal/errors"
	"github.com/tetrisdev/SPTServer/internal/loot/composer"
	"github.com/tetrisdev/SPTServer/internal/pkg/idgen"
	"github.com/tetrisdev/SPTServer/internal/pkg/random"
	locationsrepo "github.com/tetrisdev/SPTServer/internal/repositories/locations"
	"github.com/tetrisdev/SPTServer/internal/repositories/templates"
	"github.com/tetrisdev/SPTServer/internal/services/seasonal"
)

// Service defines the interface for loot generation operations.
type Service interface {
	// GenerateLoot runs one full generation pass for a map and returns the
	// populated static-container and loose-loot lists.
	GenerateLoot(ctx context.Context, input *GenerateLootInput) (*GenerateLootOutput, error)
}

// Config holds the dependencies for the location loot orchestrator.
type Config struct {
	TemplateRepo templates.Repository
	LocationRepo locationsrepo.Repository
	Seasonal     seasonal.Service
	Random       random.Source
	IDGenerator  idgen.Generator

	// Generation defaults to DefaultGenerationConfig when nil.
	Generation *GenerationConfig
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.TemplateRepo == nil {
		vb.RequiredField("TemplateRepo")
	}
	if c.LocationRepo == nil {
		vb.RequiredField("LocationRepo")
	}
	if c.Seasonal == nil {
		vb.RequiredField("Seasonal")
	}
	if c.Random == nil {
		vb.RequiredField("Random")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Generation != nil {
		if c.Generation.MinFillStaticMagazinePercent < 0 || c.Generation.MinFillStaticMagazinePercent > 1 {
			vb.InvalidField("Generation.MinFillStaticMagazinePercent", "must be between 0 and 1")
		}
		if c.Generation.MinFillLooseMagazinePercent < 0 || c.Generation.MinFillLooseMagazinePercent > 1 {
			vb.InvalidField("Generation.MinFillLooseMagazinePercent", "must be between 0 and 1")
		}
		if c.Generation.PlacementFailureBudget < 1 {
			vb.InvalidField("Generation.PlacementFailureBudget", "must be at least 1")
		}
	}

	return vb.Build()
}

type orchestrator struct {
	templateRepo templates.Repository
	locationRepo locationsrepo.Repository
	seasonal     seasonal.Service
	rnd          random.Source
	idGen        idgen.Generator
	builder      *composer.Builder
	generation   GenerationConfig
}

// NewOrchestrator creates a location loot orchestrator with the provided
// dependencies. The orchestrator serves one pass at a time; concurrent map
// loads need independent instances because the random source is ordered.
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	builder, err := composer.New(&composer.Config{
		Templates:   cfg.TemplateRepo,
		Random:      cfg.Random,
		IDGenerator: cfg.IDGenerator,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create composition builder")
	}

	generation := DefaultGenerationConfig()
	if cfg.Generation != nil {
		generation = *cfg.Generation
	}

	return &orchestrator{
		templateRepo: cfg.TemplateRepo,
		locationRepo: cfg.LocationRepo,
		seasonal:     cfg.Seasonal,
		rnd:          cfg.Random,
		idGen:        cfg.IDGenerator,
		builder:      builder,
		generation:   generation,
	}, nil
}

// GenerateLoot runs one generation pass. Statics are generated before loose
// loot, guaranteed entries before randomized ones, forced entries before
// probabilistic ones; the call order against the random source is part of
// the contract, so a fixed seed reproduces the layout.
func (o *orchestrator) GenerateLoot(ctx context.Context, input *GenerateLootInput) (*GenerateLootOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.LocationID == "" {
		return nil, errors.InvalidArgument("location id is required")
	}

	ammo, err := o.templateRepo.GetAmmoTable(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load ammo table")
	}
	seasonalBlacklist := o.seasonal.InactiveItemBlacklist()

	slog.Info("starting loot generation pass",
		"location", input.LocationID,
		"active_event", o.seasonal.ActiveEvent(),
	)

	out := &GenerateLootOutput{
		Containers: []*ContainerLoot{},
		LooseLoot:  []*SpawnPointLoot{},
	}

	staticTable, err := o.locationRepo.GetStaticLoot(ctx, input.LocationID)
	switch {
	case errors.IsNotFound(err):
		// Missing content data: continue with an empty substitute.
		slog.Error("no static loot table for location",
			"location", input.LocationID,
		)
	case err != nil:
		return nil, errors.Wrap(err, "failed to load static loot table")
	default:
		out.Containers, err = o.placeStaticContainers(ctx, input.LocationID, staticTable, ammo, seasonalBlacklist)
		if err != nil {
			return nil, err
		}
	}

	looseTable, err := o.locationRepo.GetLooseLoot(ctx, input.LocationID)
	switch {
	case errors.IsNotFound(err):
		slog.Error("no loose loot table for location",
			"location", input.LocationID,
		)
	case err != nil:
		return nil, errors.Wrap(err, "failed to load loose loot table")
	default:
		out.LooseLoot, err = o.placeLooseLoot(ctx, input.LocationID, looseTable, ammo, seasonalBlacklist)
		if err != nil {
			return nil, err
		}
	}

	slog.Info("loot generation pass complete",
		"location", input.LocationID,
		"containers", len(out.Containers),
		"loose_spawns", len(out.LooseLoot),
	)
	return out, nil
}
