package location

import (
	"context"
	"log/slog"
	"math"

	"github.com/tetrisdev/SPTServer/internal/entities/locations"
	"github.com/tetrisdev/SPTServer/internal/errors"
	"github.com/tetrisdev/SPTServer/internal/loot/composer"
	"github.com/tetrisdev/SPTServer/internal/loot/sampler"
	"github.com/tetrisdev/SPTServer/internal/repositories/templates"
)

// placeLooseLoot selects loose-loot spawn points for a map and populates
// each with one sampled item composition. Forced points are emitted before
// any probabilistic selection.
func (o *orchestrator) placeLooseLoot(
	ctx context.Context,
	locationID string,
	table *locations.LooseLoot,
	ammo templates.AmmoTable,
	seasonalBlacklist map[string]bool,
) ([]*SpawnPointLoot, error) {
	chosen := o.selectForcedSpawnPoints(locationID, table.ForcedSpawnPoints, seasonalBlacklist)

	desired := o.desiredSpawnCount(locationID, table.SpawnCount)

	var guaranteed, probabilistic []locations.SpawnPoint
	for _, sp := range table.SpawnPoints {
		if o.generation.spawnPointBlacklisted(locationID, sp.LocationID) {
			continue
		}
		if sp.Probability >= 1 {
			guaranteed = append(guaranteed, sp)
		} else {
			probabilistic = append(probabilistic, sp)
		}
	}
	chosen = append(chosen, guaranteed...)

	remaining := desired - len(guaranteed)
	if remaining > 0 {
		byID := make(map[string]locations.SpawnPoint, len(probabilistic))
		entries := make([]sampler.Entry[string], 0, len(probabilistic))
		for _, sp := range probabilistic {
			byID[sp.LocationID] = sp
			entries = append(entries, sampler.Entry[string]{Value: sp.LocationID, Weight: sp.Probability})
		}

		ids, err := sampler.New(o.rnd, entries).Draw(remaining, false)
		if err != nil && !errors.Is(err, sampler.ErrEmptyPool) {
			return nil, err
		}
		if len(ids) < remaining {
			slog.Warn("loose loot spawn points under-supplied",
				"location", locationID,
				"requested", remaining,
				"found", len(ids),
			)
		}
		for _, id := range ids {
			chosen = append(chosen, byID[id])
		}
	}

	// One spawn per physical location: first occurrence wins.
	seen := make(map[string]bool, len(chosen))
	deduped := chosen[:0]
	for _, sp := range chosen {
		if seen[sp.LocationID] {
			continue
		}
		seen[sp.LocationID] = true
		deduped = append(deduped, sp)
	}

	out := make([]*SpawnPointLoot, 0, len(deduped))
	for _, sp := range deduped {
		loot, err := o.populateSpawnPoint(ctx, locationID, sp, ammo, seasonalBlacklist)
		if err != nil {
			return nil, err
		}
		if loot != nil {
			out = append(out, loot)
		}
	}
	return out, nil
}

// selectForcedSpawnPoints emits forced points. Template ids on the map's
// single-spawn override list are special: among all forced candidates
// sharing the template, exactly one position is chosen by weighted draw.
// Every other forced point is emitted unconditionally, minus seasonal
// exclusions.
func (o *orchestrator) selectForcedSpawnPoints(
	locationID string,
	forced []locations.SpawnPoint,
	seasonalBlacklist map[string]bool,
) []locations.SpawnPoint {
	var chosen []locations.SpawnPoint
	singleSpawn := make(map[string][]locations.SpawnPoint)

	for _, sp := range forced {
		if len(sp.Template) == 0 {
			slog.Warn("forced spawn point has no template, skipping",
				"location", locationID,
				"spawn_point", sp.LocationID,
			)
			continue
		}
		tplID := sp.Template[0].TemplateID
		if seasonalBlacklist[tplID] {
			continue
		}
		if o.generation.singleSpawnTemplate(locationID, tplID) {
			singleSpawn[tplID] = append(singleSpawn[tplID], sp)
			continue
		}
		chosen = append(chosen, sp)
	}

	// Deterministic processing order for the override draws.
	for _, sp := range forced {
		if len(sp.Template) == 0 {
			continue
		}
		tplID := sp.Template[0].TemplateID
		candidates, ok := singleSpawn[tplID]
		if !ok {
			continue
		}
		delete(singleSpawn, tplID)

		byID := make(map[string]locations.SpawnPoint, len(candidates))
		entries := make([]sampler.Entry[string], 0, len(candidates))
		for _, c := range candidates {
			byID[c.LocationID] = c
			entries = append(entries, sampler.Entry[string]{Value: c.LocationID, Weight: c.Probability})
		}

		// Always-include path: a lone zero-weight candidate still spawns.
		id, err := sampler.New(o.rnd, entries).DrawOneAny()
		if err != nil {
			continue
		}
		chosen = append(chosen, byID[id])
	}

	return chosen
}

// desiredSpawnCount rolls the target loose spawn point count from the
// table's normal distribution, scaled by the per-map multiplier.
func (o *orchestrator) desiredSpawnCount(locationID string, dist locations.SpawnCountDistribution) int {
	drawn := o.rnd.NormFloat64()*dist.StdDev + dist.Mean
	count := int(math.Round(o.generation.looseMultiplier(locationID) * drawn))
	if count < 0 {
		return 0
	}
	return count
}

// populateSpawnPoint draws one item key from the point's weighted
// distribution and substitutes the point's template with the built
// composition. A point whose candidates are all excluded yields nil, not an
// error.
func (o *orchestrator) populateSpawnPoint(
	ctx context.Context,
	locationID string,
	sp locations.SpawnPoint,
	ammo templates.AmmoTable,
	seasonalBlacklist map[string]bool,
) (*SpawnPointLoot, error) {
	entries := make([]sampler.Entry[string], 0, len(sp.ItemWeights))
	for _, iw := range sp.ItemWeights {
		if seasonalBlacklist[iw.TemplateID] {
			continue
		}
		entries = append(entries, sampler.Entry[string]{Value: iw.TemplateID, Weight: iw.Weight})
	}

	tplID, err := sampler.New(o.rnd, entries).DrawOne()
	if err != nil {
		slog.Warn("spawn point has no drawable items",
			"location", locationID,
			"spawn_point", sp.LocationID,
		)
		return nil, nil
	}

	// The attached subtree only substitutes when the draw picked the same
	// root template the table attached it for.
	attached := sp.Template
	if len(sp.Template) > 0 && sp.Template[0].TemplateID != tplID {
		attached = nil
	}

	comp, err := o.builder.Build(ctx, tplID, composer.BuildOptions{
		MagazineFillPercent: o.generation.MinFillLooseMagazinePercent,
		AmmoTable:           ammo,
		Attached:            attached,
	})
	if err != nil {
		if errors.IsNotFound(err) {
			slog.Warn("skipping spawn point with missing template",
				"location", locationID,
				"spawn_point", sp.LocationID,
				"template", tplID,
			)
			return nil, nil
		}
		return nil, err
	}

	return &SpawnPointLoot{
		LocationID: sp.LocationID,
		Position:   sp.Position,
		Items:      comp.Items,
	}, nil
}
