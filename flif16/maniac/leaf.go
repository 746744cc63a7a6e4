package maniac

import "github.com/cocosip/go-flif16/flif16/rac"

func (t *Tree) context(id uint32) *rac.ChanceContext {
	n := &t.Nodes[id]
	if n.LeafID < 0 {
		n.LeafID = int32(len(t.Leaves))
		t.Leaves = append(t.Leaves, rac.NewChanceContext())
	}
	return t.Leaves[n.LeafID]
}

// Lookup navigates the tree from root using a per-pixel property vector,
// returning the leaf chance context to use for this symbol (§4.7). It
// mutates node state: internal nodes count down their shared-context
// budget and, on exhaustion, split into two independently-adapting leaf
// contexts — the chosen child is warm-started from the parent's current
// context, the other materializes its own default context lazily on its
// own first visit.
func (t *Tree) Lookup(prop []int32) *rac.ChanceContext {
	id := uint32(0)
	for {
		n := &t.Nodes[id]

		if n.Property == -1 {
			return t.context(id)
		}

		if n.Count > 0 {
			n.Count--
			return t.context(id)
		}

		descend := func() uint32 {
			if prop[n.Property] > n.SplitVal {
				return n.ChildID
			}
			return n.ChildID + 1
		}

		if n.Count < 0 {
			id = descend()
			continue
		}

		// Count == 0: split. Clone the shared context into the chosen
		// child, commit to descending through this node from now on.
		cur := t.context(id)
		n.Count = -1
		childID := descend()
		child := &t.Nodes[childID]
		child.LeafID = int32(len(t.Leaves))
		t.Leaves = append(t.Leaves, cur.Clone())
		id = childID
	}
}
