package composer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tetrisdev/SPTServer/internal/entities/items"
	"github.com/tetrisdev/SPTServer/internal/errors"
	"github.com/tetrisdev/SPTServer/internal/loot/composer"
	"github.com/tetrisdev/SPTServer/internal/pkg/idgen"
	"github.com/tetrisdev/SPTServer/internal/pkg/random"
	"github.com/tetrisdev/SPTServer/internal/repositories/templates"
)

const (
	tplRoubles   = "tpl_roubles"
	tplRifle     = "tpl_rifle"
	tplBareRifle = "tpl_bare_rifle"
	tplBadRifle  = "tpl_bad_rifle"
	tplMag30     = "tpl_mag_30"
	tplBall556   = "tpl_556_ball"
	tplTracer556 = "tpl_556_tracer"
	tplAmmoBox   = "tpl_556_box"
	tplCanMeat   = "tpl_can_meat"
)

func testDatabase() *templates.Database {
	return &templates.Database{
		Templates: []items.Template{
			{
				ID: tplRoubles, Category: items.CategoryCurrency,
				Width: 1, Height: 1,
				StackMinRandom: 50, StackMaxRandom: 5000, StackMaxSize: 500000,
			},
			{
				ID: tplBall556, Category: items.CategoryAmmoStack,
				Width: 1, Height: 1, Caliber: "556x45",
				StackMinRandom: 10, StackMaxRandom: 60, StackMaxSize: 60,
			},
			{
				ID: tplTracer556, Category: items.CategoryAmmoStack,
				Width: 1, Height: 1, Caliber: "556x45",
				StackMinRandom: 10, StackMaxRandom: 60, StackMaxSize: 60,
			},
			{
				ID: tplAmmoBox, Category: items.CategoryAmmoBox,
				Width: 1, Height: 2,
				AmmoBoxContents: []items.AmmoBoxContent{
					{TemplateID: tplBall556, Count: 150},
				},
			},
			{
				ID: tplMag30, Category: items.CategoryMagazine,
				Width: 1, Height: 2, Caliber: "556x45", MagazineCapacity: 30,
			},
			{
				ID: tplRifle, Category: items.CategoryWeapon,
				Width: 4, Height: 1, Caliber: "556x45",
			},
			{
				ID: tplBareRifle, Category: items.CategoryWeapon,
				Width: 4, Height: 1, Caliber: "556x45",
			},
			{
				ID: tplBadRifle, Category: items.CategoryWeapon,
				Width: 4, Height: 1, Caliber: "556x45",
			},
			{
				ID: tplCanMeat, Category: items.CategoryGeneric,
				Width: 1, Height: 1,
			},
		},
		Presets: []items.Preset{
			{
				ID:             "preset_rifle_default",
				RootTemplateID: tplRifle,
				Items: []items.Node{
					{ID: "p_root", TemplateID: tplRifle},
					{ID: "p_stock", TemplateID: "tpl_stock", ParentID: "p_root", SlotID: "mod_stock"},
					{ID: "p_mag", TemplateID: tplMag30, ParentID: "p_root", SlotID: items.SlotMagazine},
				},
			},
			{
				ID:             "preset_rifle_broken",
				RootTemplateID: tplBadRifle,
				Items: []items.Node{
					{ID: "b_root", TemplateID: tplBadRifle},
					{ID: "b_stock", TemplateID: "tpl_stock", ParentID: "b_missing", SlotID: "mod_stock"},
				},
			},
		},
		Ammo: templates.AmmoTable{
			"556x45": {
				{TemplateID: tplBall556, Weight: 3},
				{TemplateID: tplTracer556, Weight: 1},
			},
		},
	}
}

func newTestBuilder(t *testing.T, seed int64) *composer.Builder {
	t.Helper()

	b, err := composer.New(&composer.Config{
		Templates:   templates.NewInMemory(testDatabase()),
		Random:      random.NewSeeded(seed),
		IDGenerator: idgen.NewSequential("item"),
	})
	require.NoError(t, err)
	return b
}

func defaultOptions() composer.BuildOptions {
	return composer.BuildOptions{
		MagazineFillPercent: 0.4,
		AmmoTable:           testDatabase().Ammo,
	}
}

func TestBuild_CurrencyStackRange(t *testing.T) {
	b := newTestBuilder(t, 1)
	ctx := context.Background()

	for i := 0; i < 200; i++ {
		comp, err := b.Build(ctx, tplRoubles, defaultOptions())
		require.NoError(t, err)
		require.Len(t, comp.Items, 1)

		assert.GreaterOrEqual(t, comp.Items[0].StackCount, 50)
		assert.LessOrEqual(t, comp.Items[0].StackCount, 5000)
		assert.Equal(t, 1, comp.Width)
		assert.Equal(t, 1, comp.Height)
	}
}

func TestBuild_AmmoBoxRecipeSplitIntoStacks(t *testing.T) {
	b := newTestBuilder(t, 2)

	comp, err := b.Build(context.Background(), tplAmmoBox, defaultOptions())
	require.NoError(t, err)

	// 150 rounds at a stack limit of 60 split into 60+60+30.
	require.Len(t, comp.Items, 4)
	root := comp.Root()
	assert.Equal(t, tplAmmoBox, root.TemplateID)

	total := 0
	for _, child := range comp.Items[1:] {
		assert.Equal(t, root.ID, child.ParentID)
		assert.Equal(t, items.SlotCartridges, child.SlotID)
		assert.Equal(t, tplBall556, child.TemplateID)
		assert.LessOrEqual(t, child.StackCount, 60)
		total += child.StackCount
	}
	assert.Equal(t, 150, total)
}

func TestBuild_MagazineFillBound(t *testing.T) {
	b := newTestBuilder(t, 3)
	ctx := context.Background()
	opts := defaultOptions()

	for i := 0; i < 200; i++ {
		comp, err := b.Build(ctx, tplMag30, opts)
		require.NoError(t, err)
		require.Len(t, comp.Items, 2)

		cartridge := comp.Items[1]
		assert.Equal(t, comp.Root().ID, cartridge.ParentID)
		// 40% minimum fill of a 30-round magazine.
		assert.GreaterOrEqual(t, cartridge.StackCount, 12)
		assert.LessOrEqual(t, cartridge.StackCount, 30)
	}
}

func TestBuild_MagazineWithoutCandidatesStaysEmpty(t *testing.T) {
	b := newTestBuilder(t, 4)

	comp, err := b.Build(context.Background(), tplMag30, composer.BuildOptions{
		MagazineFillPercent: 0.4,
		AmmoTable:           templates.AmmoTable{},
	})
	require.NoError(t, err)
	assert.Len(t, comp.Items, 1)
}

func TestBuild_WeaponExpandsPresetWithFreshIDs(t *testing.T) {
	b := newTestBuilder(t, 5)

	comp, err := b.Build(context.Background(), tplRifle, defaultOptions())
	require.NoError(t, err)

	// Preset tree plus a cartridge stack in the magazine.
	require.Len(t, comp.Items, 4)

	ids := make(map[string]bool)
	for _, n := range comp.Items {
		assert.NotContains(t, []string{"p_root", "p_stock", "p_mag"}, n.ID,
			"preset ids must be remapped")
		assert.False(t, ids[n.ID], "duplicate id %s", n.ID)
		ids[n.ID] = true
	}

	// Parent integrity: every non-root node points at an id in the tree.
	assert.Empty(t, comp.Items[0].ParentID)
	for _, n := range comp.Items[1:] {
		assert.True(t, ids[n.ParentID], "node %s has dangling parent %s", n.ID, n.ParentID)
	}

	// The magazine slot got a cartridge of the weapon's caliber.
	cartridge := comp.Items[len(comp.Items)-1]
	assert.Equal(t, items.SlotCartridges, cartridge.SlotID)
	assert.Contains(t, []string{tplBall556, tplTracer556}, cartridge.TemplateID)
	assert.GreaterOrEqual(t, cartridge.StackCount, 12)
	assert.LessOrEqual(t, cartridge.StackCount, 30)

	// Composite items report the root template's declared footprint.
	assert.Equal(t, 4, comp.Width)
	assert.Equal(t, 1, comp.Height)
}

func TestBuild_WeaponWithoutPresetFallsBackToBareNode(t *testing.T) {
	b := newTestBuilder(t, 6)

	comp, err := b.Build(context.Background(), tplBareRifle, defaultOptions())
	require.NoError(t, err)
	require.Len(t, comp.Items, 1)
	assert.Equal(t, tplBareRifle, comp.Items[0].TemplateID)
}

func TestBuild_CorruptPresetFailsWithDataLoss(t *testing.T) {
	b := newTestBuilder(t, 7)

	_, err := b.Build(context.Background(), tplBadRifle, defaultOptions())
	require.Error(t, err)
	assert.True(t, errors.IsDataLoss(err))
}

func TestBuild_GenericBareNode(t *testing.T) {
	b := newTestBuilder(t, 8)

	comp, err := b.Build(context.Background(), tplCanMeat, defaultOptions())
	require.NoError(t, err)
	require.Len(t, comp.Items, 1)
	assert.Equal(t, tplCanMeat, comp.Items[0].TemplateID)
	assert.NotEmpty(t, comp.Items[0].ID)
}

func TestBuild_GenericCopiesAttachedSubtree(t *testing.T) {
	b := newTestBuilder(t, 9)

	opts := defaultOptions()
	opts.Attached = []items.Node{
		{ID: "sp_root", TemplateID: tplCanMeat},
		{ID: "sp_child", TemplateID: tplRoubles, ParentID: "sp_root", SlotID: "main"},
	}

	comp, err := b.Build(context.Background(), tplCanMeat, opts)
	require.NoError(t, err)
	require.Len(t, comp.Items, 2)

	assert.NotEqual(t, "sp_root", comp.Items[0].ID, "root id must be rewritten")
	assert.Equal(t, comp.Items[0].ID, comp.Items[1].ParentID)
	// Non-root ids stay untouched by the root reparent.
	assert.Equal(t, "sp_child", comp.Items[1].ID)
	// The source template is untouched.
	assert.Equal(t, "sp_root", opts.Attached[0].ID)
}

func TestBuild_UnknownTemplate(t *testing.T) {
	b := newTestBuilder(t, 10)

	_, err := b.Build(context.Background(), "tpl_missing", defaultOptions())
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestReparent(t *testing.T) {
	tree := []items.Node{
		{ID: "old_root", TemplateID: "a"},
		{ID: "c1", TemplateID: "b", ParentID: "old_root"},
		{ID: "c2", TemplateID: "c", ParentID: "c1"},
	}

	composer.Reparent(tree, "new_root")

	assert.Equal(t, "new_root", tree[0].ID)
	assert.Equal(t, "new_root", tree[1].ParentID)
	// Grandchild references its own parent, not the root; untouched.
	assert.Equal(t, "c1", tree[2].ParentID)
}
