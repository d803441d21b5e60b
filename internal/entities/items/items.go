// Package items defines the item data model shared by the loot engine:
// templates (authoritative static item definitions), nodes (placed item
// instances forming parent/child trees), and weapon presets.
package items

// Category is the closed set of item categories the composition builder
// dispatches on. It is resolved once from template metadata instead of
// chasing base-class id chains at build time.
type Category string

// Item categories.
const (
	CategoryGeneric   Category = "generic"
	CategoryCurrency  Category = "currency"
	CategoryAmmoStack Category = "ammo"
	CategoryAmmoBox   Category = "ammo_box"
	CategoryMagazine  Category = "magazine"
	CategoryWeapon    Category = "weapon"
)

// IsValid checks if the category is one of the known values.
func (c Category) IsValid() bool {
	switch c {
	case CategoryGeneric, CategoryCurrency, CategoryAmmoStack,
		CategoryAmmoBox, CategoryMagazine, CategoryWeapon:
		return true
	default:
		return false
	}
}

// Rotation is the orientation of an item placed in a container grid.
type Rotation string

// Placement rotations.
const (
	RotationHorizontal Rotation = "Horizontal"
	RotationVertical   Rotation = "Vertical"
)

// Location is a placed item's position within its parent container grid.
type Location struct {
	X        int      `json:"x"`
	Y        int      `json:"y"`
	Rotation Rotation `json:"r"`
}

// Node is one item instance in a generated tree. A tree is rooted at a
// single base node; every descendant references an ancestor via ParentID.
// A container's item list always starts with the container root itself.
type Node struct {
	ID         string    `json:"_id"`
	TemplateID string    `json:"_tpl"`
	ParentID   string    `json:"parentId,omitempty"`
	SlotID     string    `json:"slotId,omitempty"`
	Location   *Location `json:"location,omitempty"`
	StackCount int       `json:"stackCount,omitempty"`
}

// Clone returns a copy of the node with its own Location value.
func (n Node) Clone() Node {
	out := n
	if n.Location != nil {
		loc := *n.Location
		out.Location = &loc
	}
	return out
}

// AmmoBoxContent is one line of an ammo box's fixed internal recipe.
type AmmoBoxContent struct {
	TemplateID string `json:"templateId"`
	Count      int    `json:"count"`
}

// Template is the authoritative static definition of an item type.
type Template struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`

	// Grid footprint in cells. Composite items always report the declared
	// footprint of their root template, never a union of children.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Stack range drawn when the item spawns as loot (currency, ammo).
	StackMinRandom int `json:"stackMinRandom,omitempty"`
	StackMaxRandom int `json:"stackMaxRandom,omitempty"`

	// Maximum units a single stack may hold.
	StackMaxSize int `json:"stackMaxSize,omitempty"`

	// Caliber of an ammo template, or the accepted ammo caliber of a
	// weapon or magazine template.
	Caliber string `json:"caliber,omitempty"`

	// Cartridge capacity of a magazine template.
	MagazineCapacity int `json:"magazineCapacity,omitempty"`

	// Fixed internal contents of an ammo box template.
	AmmoBoxContents []AmmoBoxContent `json:"ammoBoxContents,omitempty"`

	// Internal grid of a container template.
	GridWidth  int `json:"gridWidth,omitempty"`
	GridHeight int `json:"gridHeight,omitempty"`
}

// Preset is a predefined attachment configuration for a weapon. Items holds
// the full mod tree with the weapon as its first node.
type Preset struct {
	ID             string `json:"id"`
	RootTemplateID string `json:"rootTemplateId"`
	Items          []Node `json:"items"`
}

// SlotMagazine is the slot id a weapon's magazine occupies in its mod tree.
const SlotMagazine = "mod_magazine"

// SlotCartridges is the slot id cartridges occupy inside a magazine or box.
const SlotCartridges = "cartridges"
