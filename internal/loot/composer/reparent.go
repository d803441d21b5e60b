package composer

import (
	"fmt"

	"github.com/tetrisdev/SPTServer/internal/entities/items"
)

// Reparent rewrites a tree's root id in place: the first node receives
// newRootID and every other node whose ParentID equals the old root id is
// repointed at it. Non-root ids and non-matching parent references are
// untouched. The tree must be root-first and non-empty.
func Reparent(tree []items.Node, newRootID string) {
	if len(tree) == 0 {
		return
	}

	oldRootID := tree[0].ID
	tree[0].ID = newRootID
	for i := 1; i < len(tree); i++ {
		if tree[i].ParentID == oldRootID {
			tree[i].ParentID = newRootID
		}
	}
}

// remapTree returns a copy of a preset tree in which every node carries a
// fresh id and every parent reference is rewritten consistently. The root
// keeps an empty ParentID. A node referencing a parent outside the tree
// means the preset data is corrupt.
func (b *Builder) remapTree(tree []items.Node) ([]items.Node, error) {
	if len(tree) == 0 {
		return nil, fmt.Errorf("preset tree is empty")
	}

	fresh := make(map[string]string, len(tree))
	for i := range tree {
		if _, dup := fresh[tree[i].ID]; dup {
			return nil, fmt.Errorf("preset tree has duplicate node id %s", tree[i].ID)
		}
		fresh[tree[i].ID] = b.idGen.Generate()
	}

	out := make([]items.Node, 0, len(tree))
	for i, n := range tree {
		node := n.Clone()
		node.ID = fresh[n.ID]
		if i == 0 {
			node.ParentID = ""
		} else {
			parent, ok := fresh[n.ParentID]
			if !ok {
				return nil, fmt.Errorf("node %s references missing parent %s", n.ID, n.ParentID)
			}
			node.ParentID = parent
		}
		out = append(out, node)
	}
	return out, nil
}
