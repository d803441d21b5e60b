package location_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tetrisdev/SPTServer/internal/entities/items"
	"github.com/tetrisdev/SPTServer/internal/entities/locations"
	"github.com/tetrisdev/SPTServer/internal/orchestrators/location"
	locationsrepo "github.com/tetrisdev/SPTServer/internal/repositories/locations"
)

func looseOnlyMap(table *locations.LooseLoot) []locationsrepo.LocationData {
	return []locationsrepo.LocationData{{
		ID:        testMap,
		LooseLoot: table,
	}}
}

func spawnPointIDs(out *location.GenerateLootOutput) []string {
	ids := make([]string, 0, len(out.LooseLoot))
	for _, sp := range out.LooseLoot {
		ids = append(ids, sp.LocationID)
	}
	return ids
}

func foodPoint(id string, probability float64) locations.SpawnPoint {
	return locations.SpawnPoint{
		LocationID:  id,
		Probability: probability,
		ItemWeights: []locations.ItemWeight{{TemplateID: tplFood, Weight: 1}},
	}
}

func TestLoosePlacer_GuaranteedPointsAlwaysSpawn(t *testing.T) {
	maps := looseOnlyMap(&locations.LooseLoot{
		SpawnCount: locations.SpawnCountDistribution{Mean: 1, StdDev: 0},
		SpawnPoints: []locations.SpawnPoint{
			foodPoint("sp_sure", 1),
			foodPoint("sp_maybe_1", 0.2),
			foodPoint("sp_maybe_2", 0.2),
		},
	})

	for seed := int64(0); seed < 30; seed++ {
		svc := newTestOrchestrator(t, seed, nil, maps, nil)
		out, err := svc.GenerateLoot(context.Background(), &location.GenerateLootInput{LocationID: testMap})
		require.NoError(t, err)
		assert.Contains(t, spawnPointIDs(out), "sp_sure", "seed %d", seed)
	}
}

func TestLoosePlacer_ShortfallCapsAtAvailablePoints(t *testing.T) {
	// Desired count 10, only 3 probabilistic candidates: the pass emits all
	// 3 and moves on rather than failing.
	maps := looseOnlyMap(&locations.LooseLoot{
		SpawnCount: locations.SpawnCountDistribution{Mean: 10, StdDev: 0},
		SpawnPoints: []locations.SpawnPoint{
			foodPoint("sp_1", 0.5),
			foodPoint("sp_2", 0.5),
			foodPoint("sp_3", 0.5),
		},
	})

	svc := newTestOrchestrator(t, 7, nil, maps, nil)
	out, err := svc.GenerateLoot(context.Background(), &location.GenerateLootInput{LocationID: testMap})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"sp_1", "sp_2", "sp_3"}, spawnPointIDs(out))
}

func TestLoosePlacer_ForcedSingleSpawnPicksExactlyOne(t *testing.T) {
	forced := make([]locations.SpawnPoint, 0, 3)
	weights := []float64{0.5, 0.3, 0.2}
	for i, w := range weights {
		forced = append(forced, locations.SpawnPoint{
			LocationID:  []string{"pos_a", "pos_b", "pos_c"}[i],
			Probability: w,
			Template: []items.Node{
				{ID: "quest_root", TemplateID: tplFood},
			},
			ItemWeights: []locations.ItemWeight{{TemplateID: tplFood, Weight: 1}},
		})
	}
	maps := looseOnlyMap(&locations.LooseLoot{
		ForcedSpawnPoints: forced,
	})

	gen := location.DefaultGenerationConfig()
	gen.SingleSpawnTemplates = map[string][]string{testMap: {tplFood}}

	picked := make(map[string]int)
	for seed := int64(0); seed < 60; seed++ {
		svc := newTestOrchestrator(t, seed, &gen, maps, nil)
		out, err := svc.GenerateLoot(context.Background(), &location.GenerateLootInput{LocationID: testMap})
		require.NoError(t, err)

		ids := spawnPointIDs(out)
		require.Len(t, ids, 1, "seed %d", seed)
		picked[ids[0]]++
	}

	// All three candidates must be reachable, heaviest most often.
	assert.Len(t, picked, 3)
	assert.Greater(t, picked["pos_a"], picked["pos_c"])
}

func TestLoosePlacer_ForcedPointsSpawnUnconditionally(t *testing.T) {
	maps := looseOnlyMap(&locations.LooseLoot{
		ForcedSpawnPoints: []locations.SpawnPoint{
			{
				LocationID:  "quest_spot",
				Probability: 0.01,
				Template:    []items.Node{{ID: "q_root", TemplateID: tplFood}},
				ItemWeights: []locations.ItemWeight{{TemplateID: tplFood, Weight: 1}},
			},
		},
	})

	for seed := int64(0); seed < 20; seed++ {
		svc := newTestOrchestrator(t, seed, nil, maps, nil)
		out, err := svc.GenerateLoot(context.Background(), &location.GenerateLootInput{LocationID: testMap})
		require.NoError(t, err)
		assert.Contains(t, spawnPointIDs(out), "quest_spot", "seed %d", seed)
	}
}

func TestLoosePlacer_ForcedPointWithoutTemplateSkipped(t *testing.T) {
	maps := looseOnlyMap(&locations.LooseLoot{
		ForcedSpawnPoints: []locations.SpawnPoint{
			{LocationID: "broken", Probability: 1},
		},
	})

	svc := newTestOrchestrator(t, 2, nil, maps, nil)
	out, err := svc.GenerateLoot(context.Background(), &location.GenerateLootInput{LocationID: testMap})
	require.NoError(t, err)
	assert.Empty(t, out.LooseLoot)
}

func TestLoosePlacer_DeduplicatesByPhysicalLocation(t *testing.T) {
	// The forced point and a guaranteed probabilistic point share one
	// physical location; the forced one wins.
	maps := looseOnlyMap(&locations.LooseLoot{
		ForcedSpawnPoints: []locations.SpawnPoint{
			{
				LocationID:  "shared_spot",
				Probability: 1,
				Template:    []items.Node{{ID: "f_root", TemplateID: tplFood}},
				ItemWeights: []locations.ItemWeight{{TemplateID: tplFood, Weight: 1}},
			},
		},
		SpawnCount: locations.SpawnCountDistribution{Mean: 1, StdDev: 0},
		SpawnPoints: []locations.SpawnPoint{
			{
				LocationID:  "shared_spot",
				Probability: 1,
				ItemWeights: []locations.ItemWeight{{TemplateID: tplMoney, Weight: 1}},
			},
		},
	})

	for seed := int64(0); seed < 10; seed++ {
		svc := newTestOrchestrator(t, seed, nil, maps, nil)
		out, err := svc.GenerateLoot(context.Background(), &location.GenerateLootInput{LocationID: testMap})
		require.NoError(t, err)

		require.Len(t, out.LooseLoot, 1, "seed %d", seed)
		assert.Equal(t, tplFood, out.LooseLoot[0].Items[0].TemplateID, "seed %d", seed)
	}
}

func TestLoosePlacer_BlacklistedSpawnPointsExcluded(t *testing.T) {
	maps := looseOnlyMap(&locations.LooseLoot{
		SpawnCount: locations.SpawnCountDistribution{Mean: 2, StdDev: 0},
		SpawnPoints: []locations.SpawnPoint{
			foodPoint("sp_banned", 1),
			foodPoint("sp_fine", 1),
		},
	})

	gen := location.DefaultGenerationConfig()
	gen.SpawnPointBlacklist = map[string][]string{testMap: {"sp_banned"}}

	svc := newTestOrchestrator(t, 3, &gen, maps, nil)
	out, err := svc.GenerateLoot(context.Background(), &location.GenerateLootInput{LocationID: testMap})
	require.NoError(t, err)
	assert.Equal(t, []string{"sp_fine"}, spawnPointIDs(out))
}

func TestLoosePlacer_SeasonalForcedPointExcluded(t *testing.T) {
	maps := looseOnlyMap(&locations.LooseLoot{
		ForcedSpawnPoints: []locations.SpawnPoint{
			{
				LocationID:  "festive_spot",
				Probability: 1,
				Template:    []items.Node{{ID: "x_root", TemplateID: tplFestive}},
				ItemWeights: []locations.ItemWeight{{TemplateID: tplFestive, Weight: 1}},
			},
		},
	})

	svc := newTestOrchestrator(t, 4, nil, maps, nil)
	out, err := svc.GenerateLoot(context.Background(), &location.GenerateLootInput{LocationID: testMap})
	require.NoError(t, err)
	assert.Empty(t, out.LooseLoot)
}

func TestLoosePlacer_SeasonalItemWeightExcluded(t *testing.T) {
	// The festive item dominates the weights but is out of season, so the
	// fallback candidate is always drawn.
	maps := looseOnlyMap(&locations.LooseLoot{
		SpawnCount: locations.SpawnCountDistribution{Mean: 1, StdDev: 0},
		SpawnPoints: []locations.SpawnPoint{
			{
				LocationID:  "sp_1",
				Probability: 1,
				ItemWeights: []locations.ItemWeight{
					{TemplateID: tplFestive, Weight: 1000},
					{TemplateID: tplFood, Weight: 1},
				},
			},
		},
	})

	for seed := int64(0); seed < 20; seed++ {
		svc := newTestOrchestrator(t, seed, nil, maps, nil)
		out, err := svc.GenerateLoot(context.Background(), &location.GenerateLootInput{LocationID: testMap})
		require.NoError(t, err)

		require.Len(t, out.LooseLoot, 1, "seed %d", seed)
		assert.Equal(t, tplFood, out.LooseLoot[0].Items[0].TemplateID, "seed %d", seed)
	}
}

func TestLoosePlacer_AttachedTemplateOnlySubstitutesOnMatch(t *testing.T) {
	// The forced point's attached subtree names food; the weights only offer
	// money, so the built composition must be a fresh money node, not the
	// attached food tree.
	maps := looseOnlyMap(&locations.LooseLoot{
		ForcedSpawnPoints: []locations.SpawnPoint{
			{
				LocationID:  "sp_mismatch",
				Probability: 1,
				Template:    []items.Node{{ID: "f_root", TemplateID: tplFood}},
				ItemWeights: []locations.ItemWeight{{TemplateID: tplMoney, Weight: 1}},
			},
		},
	})

	svc := newTestOrchestrator(t, 5, nil, maps, nil)
	out, err := svc.GenerateLoot(context.Background(), &location.GenerateLootInput{LocationID: testMap})
	require.NoError(t, err)

	require.Len(t, out.LooseLoot, 1)
	root := out.LooseLoot[0].Items[0]
	assert.Equal(t, tplMoney, root.TemplateID)
	assert.NotEqual(t, "f_root", root.ID)
}

func TestLoosePlacer_LooseMultiplierScalesDesiredCount(t *testing.T) {
	maps := looseOnlyMap(&locations.LooseLoot{
		SpawnCount: locations.SpawnCountDistribution{Mean: 4, StdDev: 0},
		SpawnPoints: []locations.SpawnPoint{
			foodPoint("sp_1", 0.5),
			foodPoint("sp_2", 0.5),
			foodPoint("sp_3", 0.5),
			foodPoint("sp_4", 0.5),
		},
	})

	gen := location.DefaultGenerationConfig()
	gen.LooseLootMultiplier = map[string]float64{testMap: 0}

	svc := newTestOrchestrator(t, 6, &gen, maps, nil)
	out, err := svc.GenerateLoot(context.Background(), &location.GenerateLootInput{LocationID: testMap})
	require.NoError(t, err)
	assert.Empty(t, out.LooseLoot)
}
