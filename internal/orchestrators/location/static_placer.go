package location

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/tetrisdev/SPTServer/internal/entities/items"
	"github.com/tetrisdev/SPTServer/internal/entities/locations"
	"github.com/tetrisdev/SPTServer/internal/errors"
	"github.com/tetrisdev/SPTServer/internal/loot/composer"
	"github.com/tetrisdev/SPTServer/internal/loot/grid"
	"github.com/tetrisdev/SPTServer/internal/loot/sampler"
	"github.com/tetrisdev/SPTServer/internal/repositories/templates"
)

// slotMain is the slot id container contents occupy under the container
// root.
const slotMain = "main"

// placeStaticContainers selects which containers spawn on a map and
// populates each. Guaranteed containers are processed before any randomized
// selection so the random call order stays reproducible.
func (o *orchestrator) placeStaticContainers(
	ctx context.Context,
	locationID string,
	table *locations.StaticLoot,
	ammo templates.AmmoTable,
	seasonalBlacklist map[string]bool,
) ([]*ContainerLoot, error) {
	var guaranteed, randomizable []locations.StaticContainer
	for _, c := range table.Containers {
		if c.Probability >= 1 || c.AlwaysSpawn || o.generation.containerTypeExempt(c.TemplateID) {
			guaranteed = append(guaranteed, c)
		} else {
			randomizable = append(randomizable, c)
		}
	}

	chosen := guaranteed
	if o.generation.randomizationDisabledFor(locationID) {
		chosen = append(chosen, randomizable...)
	} else {
		chosen = append(chosen, o.selectRandomizedContainers(locationID, table, randomizable)...)
	}

	out := make([]*ContainerLoot, 0, len(chosen))
	for _, c := range chosen {
		loot, err := o.addLoot(ctx, locationID, c, table.ForcedItems[c.ID], ammo, seasonalBlacklist)
		if err != nil {
			if errors.IsNotFound(err) {
				// Missing container template or loot table: skip this one
				// container, keep the pass alive.
				slog.Error("skipping container with missing content data",
					"location", locationID,
					"container", c.ID,
					"error", err,
				)
				continue
			}
			return nil, err
		}
		out = append(out, loot)
	}
	return out, nil
}

// selectRandomizedContainers applies the grouped probability rules: each
// declared group rolls a target count and draws that many members from its
// weighted pool; the synthetic empty-string group instead rolls every member
// as an independent Bernoulli trial. The Bernoulli special case matches the
// client's expectation for ungrouped containers with partial probabilities.
func (o *orchestrator) selectRandomizedContainers(
	locationID string,
	table *locations.StaticLoot,
	randomizable []locations.StaticContainer,
) []locations.StaticContainer {
	byGroup := make(map[string][]locations.StaticContainer)
	for _, c := range randomizable {
		byGroup[c.GroupID] = append(byGroup[c.GroupID], c)
	}

	declared := make(map[string]locations.SpawnGroup, len(table.Groups))
	for _, g := range table.Groups {
		declared[g.GroupID] = g
	}

	var chosen []locations.StaticContainer

	// Declared groups first, in table order.
	for _, group := range table.Groups {
		members := byGroup[group.GroupID]
		if len(members) == 0 {
			continue
		}
		delete(byGroup, group.GroupID)

		minCount := int(math.Round(float64(group.MinContainers) * o.generation.GroupMinMultiplier))
		maxCount := int(math.Round(float64(group.MaxContainers) * o.generation.GroupMaxMultiplier))
		if maxCount < minCount {
			maxCount = minCount
		}
		target := o.rnd.IntInRange(minCount, maxCount)
		if target <= 0 {
			continue
		}

		byID := make(map[string]locations.StaticContainer, len(members))
		entries := make([]sampler.Entry[string], 0, len(members))
		for _, m := range members {
			byID[m.ID] = m
			entries = append(entries, sampler.Entry[string]{Value: m.ID, Weight: m.Probability})
		}

		ids, err := sampler.New(o.rnd, entries).Draw(target, false)
		if err != nil {
			slog.Warn("container group has no drawable members",
				"location", locationID,
				"group", group.GroupID,
			)
			continue
		}
		if len(ids) < target {
			slog.Warn("container group under-supplied",
				"location", locationID,
				"group", group.GroupID,
				"requested", target,
				"found", len(ids),
			)
		}
		for _, id := range ids {
			chosen = append(chosen, byID[id])
		}
	}

	// Everything left is either the synthetic empty-string group or a
	// member of an undeclared group; both roll independent Bernoulli
	// trials on their own probability, in table order.
	for _, c := range randomizable {
		members, ok := byGroup[c.GroupID]
		if !ok || len(members) == 0 {
			continue
		}
		if c.GroupID != "" {
			slog.Warn("container references undeclared spawn group",
				"location", locationID,
				"container", c.ID,
				"group", c.GroupID,
			)
		}
		if o.rnd.Float64() < c.Probability {
			chosen = append(chosen, c)
		}
	}

	return chosen
}

// addLoot populates one container: rolls an item count, draws item keys from
// the container type's weighted table, appends forced items, then builds and
// places each composition into the container grid.
func (o *orchestrator) addLoot(
	ctx context.Context,
	locationID string,
	container locations.StaticContainer,
	forcedItems []string,
	ammo templates.AmmoTable,
	seasonalBlacklist map[string]bool,
) (*ContainerLoot, error) {
	containerTpl, err := o.templateRepo.GetTemplate(ctx, container.TemplateID)
	if err != nil {
		return nil, err
	}

	rootID := o.idGen.Generate()
	loot := &ContainerLoot{
		ContainerID: container.ID,
		TemplateID:  container.TemplateID,
		Items: []items.Node{{
			ID:         rootID,
			TemplateID: container.TemplateID,
		}},
	}

	lootTable, err := o.locationRepo.GetContainerLootTable(ctx, container.TemplateID)
	if err != nil {
		if errors.IsNotFound(err) {
			// No table for this container type: emit the empty container.
			slog.Error("no loot table for container type",
				"location", locationID,
				"container_type", container.TemplateID,
			)
			return loot, nil
		}
		return nil, err
	}

	count := o.rollItemCount(locationID, container.TemplateID, lootTable)
	keys, err := o.drawItemKeys(ctx, lootTable, count, seasonalBlacklist)
	if err != nil {
		return nil, err
	}
	keys = append(keys, forcedItems...)

	g := grid.New(containerTpl.GridWidth, containerTpl.GridHeight)
	failures := 0
	for _, key := range keys {
		comp, err := o.builder.Build(ctx, key, composer.BuildOptions{
			MagazineFillPercent: o.generation.MinFillStaticMagazinePercent,
			AmmoTable:           ammo,
		})
		if err != nil {
			if errors.IsNotFound(err) {
				slog.Warn("skipping container item with missing template",
					"container", container.ID,
					"template", key,
				)
				continue
			}
			return nil, err
		}

		slot, ok := g.FindSlot(comp.Width, comp.Height)
		if !ok {
			failures++
			if failures >= o.generation.PlacementFailureBudget {
				// Acceptable loss: the rest of this container's pending
				// items are dropped.
				slog.Warn("container grid exhausted, dropping remaining items",
					"container", container.ID,
					"free_cells", g.FreeCells(),
				)
				break
			}
			continue
		}
		failures = 0
		g.Fill(slot, comp.Width, comp.Height)

		rotation := items.RotationHorizontal
		if slot.Rotated {
			rotation = items.RotationVertical
		}
		root := comp.Root()
		root.ParentID = rootID
		root.SlotID = slotMain
		root.Location = &items.Location{X: slot.X, Y: slot.Y, Rotation: rotation}

		loot.Items = append(loot.Items, comp.Items...)
	}

	return loot, nil
}

// rollItemCount draws the container's item count from its declared
// distribution, scaled by the per-map static loot multiplier.
func (o *orchestrator) rollItemCount(locationID, containerType string, table *locations.ContainerLootTable) int {
	entries := make([]sampler.Entry[int], 0, len(table.ItemCounts))
	for _, cp := range table.ItemCounts {
		entries = append(entries, sampler.Entry[int]{Value: cp.Count, Weight: cp.Probability})
	}

	count, err := sampler.New(o.rnd, entries).DrawOne()
	if err != nil {
		slog.Warn("container type has no item count distribution",
			"location", locationID,
			"container_type", containerType,
		)
		return 0
	}

	scaled := int(math.Round(float64(count) * o.generation.staticMultiplier(locationID)))
	if scaled < 0 {
		return 0
	}
	return scaled
}

// drawItemKeys draws count item keys from the table's weighted candidates.
// Drawn entries stay out of the pool unless duplicates are allowed, with
// currency denominations always re-inserted: the duplicate lock never
// applies to money.
func (o *orchestrator) drawItemKeys(
	ctx context.Context,
	table *locations.ContainerLootTable,
	count int,
	seasonalBlacklist map[string]bool,
) ([]string, error) {
	if count <= 0 {
		return nil, nil
	}

	// Map iteration order is random; the pool must be built in a stable
	// order or a fixed seed would not reproduce the layout.
	ids := make([]string, 0, len(table.ItemWeights))
	for id := range table.ItemWeights {
		if seasonalBlacklist[id] {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	entries := make([]sampler.Entry[string], 0, len(ids))
	for _, id := range ids {
		entries = append(entries, sampler.Entry[string]{Value: id, Weight: table.ItemWeights[id]})
	}
	pool := sampler.New(o.rnd, entries)

	keys := make([]string, 0, count)
	for len(keys) < count {
		entry, err := pool.TakeOne()
		if err != nil {
			slog.Warn("container item pool under-supplied",
				"requested", count,
				"found", len(keys),
			)
			break
		}
		keys = append(keys, entry.Value)

		if o.generation.AllowDuplicateItems {
			pool.Add(entry)
			continue
		}
		tpl, err := o.templateRepo.GetTemplate(ctx, entry.Value)
		if err == nil && tpl.Category == items.CategoryCurrency {
			pool.Add(entry)
		}
	}
	return keys, nil
}
