// Package composer builds ready-to-place item compositions from template
// ids: currency and ammo stacks, ammo boxes with their fixed cartridge
// recipe, magazines with a partial random fill, weapons expanded from their
// default preset, and plain generic items.
package composer

import (
	"context"
	"log/slog"
	"math"

	"github.com/tetrisdev/SPTServer/internal/entities/items"
	"github.com/tetrisdev/SPTServer/internal/errors"
	"github.com/tetrisdev/SPTServer/internal/loot/sampler"
	"github.com/tetrisdev/SPTServer/internal/pkg/idgen"
	"github.com/tetrisdev/SPTServer/internal/pkg/random"
	"github.com/tetrisdev/SPTServer/internal/repositories/templates"
)

// Composition is a built item tree, root first, with the bounding footprint
// the placer needs. The footprint is always the root template's declared
// size, never a geometric union of children.
type Composition struct {
	Items  []items.Node
	Width  int
	Height int
}

// Root returns the composition's base node.
func (c *Composition) Root() *items.Node {
	return &c.Items[0]
}

// BuildOptions carries the per-call context of one composition build.
type BuildOptions struct {
	// MagazineFillPercent is the minimum fill fraction applied to magazine
	// builds; static-container and loose-loot placements use different
	// defaults.
	MagazineFillPercent float64

	// AmmoTable supplies weighted cartridge candidates per caliber for
	// magazine fills.
	AmmoTable templates.AmmoTable

	// Attached is the item subtree already present in a loose-loot spawn
	// point's template. Generic builds copy it instead of creating a bare
	// node.
	Attached []items.Node
}

// Config holds the dependencies for the composition builder.
type Config struct {
	Templates   templates.Repository
	Random      random.Source
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Templates == nil {
		vb.RequiredField("Templates")
	}
	if c.Random == nil {
		vb.RequiredField("Random")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// Builder builds item compositions. One builder serves one generation pass;
// it is not safe for concurrent use because it shares the pass's random
// source.
type Builder struct {
	templates templates.Repository
	rnd       random.Source
	idGen     idgen.Generator
}

// New creates a composition builder with the provided dependencies.
func New(cfg *Config) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Builder{
		templates: cfg.Templates,
		rnd:       cfg.Random,
		idGen:     cfg.IDGenerator,
	}, nil
}

// Build constructs the composition for a template id. Category dispatch is
// resolved once from template metadata. A missing template surfaces as a
// NOT_FOUND error the caller may absorb; a structurally broken weapon preset
// surfaces as DATA_LOSS and must abort the pass.
func (b *Builder) Build(ctx context.Context, templateID string, opts BuildOptions) (*Composition, error) {
	tpl, err := b.templates.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	var nodes []items.Node
	switch tpl.Category {
	case items.CategoryCurrency, items.CategoryAmmoStack:
		nodes = b.buildStack(tpl)
	case items.CategoryAmmoBox:
		nodes, err = b.buildAmmoBox(ctx, tpl)
	case items.CategoryMagazine:
		nodes, err = b.buildMagazine(tpl, tpl.Caliber, opts)
	case items.CategoryWeapon:
		nodes, err = b.buildWeapon(ctx, tpl, opts)
	default:
		nodes = b.buildGeneric(tpl, opts)
	}
	if err != nil {
		return nil, err
	}

	return &Composition{
		Items:  nodes,
		Width:  tpl.Width,
		Height: tpl.Height,
	}, nil
}

// buildStack creates a single node with a stack count drawn uniformly from
// the template's declared range.
func (b *Builder) buildStack(tpl *items.Template) []items.Node {
	minStack := tpl.StackMinRandom
	if minStack < 1 {
		minStack = 1
	}
	maxStack := tpl.StackMaxRandom
	if maxStack < minStack {
		maxStack = minStack
	}

	return []items.Node{{
		ID:         b.idGen.Generate(),
		TemplateID: tpl.ID,
		StackCount: b.rnd.IntInRange(minStack, maxStack),
	}}
}

// buildAmmoBox expands a box into its fixed internal cartridge contents,
// splitting each recipe line into stacks no larger than the cartridge's
// stack limit.
func (b *Builder) buildAmmoBox(ctx context.Context, tpl *items.Template) ([]items.Node, error) {
	root := items.Node{
		ID:         b.idGen.Generate(),
		TemplateID: tpl.ID,
	}
	nodes := []items.Node{root}

	for _, content := range tpl.AmmoBoxContents {
		cartridge, err := b.templates.GetTemplate(ctx, content.TemplateID)
		if err != nil {
			return nil, errors.Wrapf(err, "ammo box %s references unknown cartridge", tpl.ID)
		}

		stackMax := cartridge.StackMaxSize
		if stackMax < 1 {
			stackMax = 1
		}

		remaining := content.Count
		for remaining > 0 {
			count := remaining
			if count > stackMax {
				count = stackMax
			}
			nodes = append(nodes, items.Node{
				ID:         b.idGen.Generate(),
				TemplateID: content.TemplateID,
				ParentID:   root.ID,
				SlotID:     items.SlotCartridges,
				StackCount: count,
			})
			remaining -= count
		}
	}

	return nodes, nil
}

// buildMagazine creates a magazine filled with one compatible cartridge type
// up to the configured minimum fill fraction. An empty candidate list leaves
// the magazine empty with a diagnostic, not an error.
func (b *Builder) buildMagazine(tpl *items.Template, caliber string, opts BuildOptions) ([]items.Node, error) {
	root := items.Node{
		ID:         b.idGen.Generate(),
		TemplateID: tpl.ID,
	}
	nodes := []items.Node{root}

	cartridgeID, ok := b.pickCartridge(caliber, opts.AmmoTable)
	if !ok {
		slog.Warn("no compatible cartridge for magazine, leaving empty",
			"magazine", tpl.ID,
			"caliber", caliber,
		)
		return nodes, nil
	}

	capacity := tpl.MagazineCapacity
	if capacity < 1 {
		capacity = 1
	}
	minFill := int(math.Ceil(opts.MagazineFillPercent * float64(capacity)))
	if minFill < 1 {
		minFill = 1
	}
	if minFill > capacity {
		minFill = capacity
	}

	nodes = append(nodes, items.Node{
		ID:         b.idGen.Generate(),
		TemplateID: cartridgeID,
		ParentID:   root.ID,
		SlotID:     items.SlotCartridges,
		StackCount: b.rnd.IntInRange(minFill, capacity),
	})
	return nodes, nil
}

// pickCartridge draws a cartridge template proportionally from the caliber's
// weighted candidates.
func (b *Builder) pickCartridge(caliber string, table templates.AmmoTable) (string, bool) {
	candidates := table[caliber]
	if len(candidates) == 0 {
		return "", false
	}

	entries := make([]sampler.Entry[string], 0, len(candidates))
	for _, c := range candidates {
		entries = append(entries, sampler.Entry[string]{Value: c.TemplateID, Weight: c.Weight})
	}

	id, err := sampler.New(b.rnd, entries).DrawOne()
	if err != nil {
		return "", false
	}
	return id, true
}

// buildWeapon resolves the weapon's default preset, clones it with fresh
// ids, and fills its magazine slot following the magazine rule under the
// weapon's caliber constraint. A weapon without a preset falls back to the
// bare node; a preset that cannot be remapped is corrupt content data and
// fails the build.
func (b *Builder) buildWeapon(ctx context.Context, tpl *items.Template, opts BuildOptions) ([]items.Node, error) {
	preset, err := b.templates.GetDefaultPreset(ctx, tpl.ID)
	if err != nil {
		if errors.IsNotFound(err) {
			slog.Warn("weapon has no default preset, spawning bare",
				"weapon", tpl.ID,
			)
			return []items.Node{{
				ID:         b.idGen.Generate(),
				TemplateID: tpl.ID,
			}}, nil
		}
		return nil, err
	}

	nodes, err := b.remapTree(preset.Items)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss,
			"default preset for weapon "+tpl.ID+" is structurally broken")
	}

	magazine := findBySlot(nodes, items.SlotMagazine)
	if magazine == nil {
		return nodes, nil
	}

	magTpl, err := b.templates.GetTemplate(ctx, magazine.TemplateID)
	if err != nil {
		return nil, errors.Wrapf(err, "preset %s references unknown magazine", preset.ID)
	}

	cartridgeID, ok := b.pickCartridge(tpl.Caliber, opts.AmmoTable)
	if !ok {
		slog.Warn("no compatible cartridge for weapon magazine, leaving empty",
			"weapon", tpl.ID,
			"caliber", tpl.Caliber,
		)
		return nodes, nil
	}

	capacity := magTpl.MagazineCapacity
	if capacity < 1 {
		capacity = 1
	}
	minFill := int(math.Ceil(opts.MagazineFillPercent * float64(capacity)))
	if minFill < 1 {
		minFill = 1
	}
	if minFill > capacity {
		minFill = capacity
	}

	nodes = append(nodes, items.Node{
		ID:         b.idGen.Generate(),
		TemplateID: cartridgeID,
		ParentID:   magazine.ID,
		SlotID:     items.SlotCartridges,
		StackCount: b.rnd.IntInRange(minFill, capacity),
	})
	return nodes, nil
}

// buildGeneric copies the subtree attached to the source spawn point when
// one exists, otherwise creates a bare single node.
func (b *Builder) buildGeneric(tpl *items.Template, opts BuildOptions) []items.Node {
	if len(opts.Attached) == 0 {
		return []items.Node{{
			ID:         b.idGen.Generate(),
			TemplateID: tpl.ID,
		}}
	}

	cloned := make([]items.Node, 0, len(opts.Attached))
	for _, n := range opts.Attached {
		cloned = append(cloned, n.Clone())
	}
	Reparent(cloned, b.idGen.Generate())
	return cloned
}

// findBySlot returns the first node occupying the named slot.
func findBySlot(nodes []items.Node, slotID string) *items.Node {
	for i := range nodes {
		if nodes[i].SlotID == slotID {
			return &nodes[i]
		}
	}
	return nil
}
