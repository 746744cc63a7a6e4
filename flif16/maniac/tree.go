// Package maniac implements FLIF16's MANIAC tree: a per-plane
// arithmetic-coded decision tree read once from the stream (Reader) and
// then consulted per-pixel to pick a leaf chance context (Tree.Lookup),
// with lazy leaf-context materialization.
package maniac

import "github.com/cocosip/go-flif16/flif16/rac"

// Tree-construction limits, from the reference decoder.
const (
	TreeMinCount = 1
	TreeMaxCount = 512
	baseSize     = 160
)

// PropRange is a property's admissible [Min, Max] window, scoped during
// tree construction as the reader descends into narrower subtrees.
type PropRange struct {
	Min, Max int32
}

// Node is one MANIAC tree node. Property == -1 marks a leaf. LeafID == -1
// means no chance context has been materialized for this node yet.
type Node struct {
	Property int32
	Count    int32
	SplitVal int32
	ChildID  uint32
	LeafID   int32
}

// Tree is a decoded per-plane MANIAC tree plus its lazily-grown leaf
// chance-context arena.
type Tree struct {
	Nodes  []Node
	Leaves []*rac.ChanceContext
}

func newTree() *Tree {
	t := &Tree{
		Nodes:  make([]Node, 1, baseSize),
		Leaves: make([]*rac.ChanceContext, 0, baseSize),
	}
	t.Nodes[0] = Node{LeafID: -1}
	return t
}

// stackEntry is one pending subtree frame in the pre-order tree-read work
// stack, mirroring the reference decoder's FLIF16MANIACStack.
type stackEntry struct {
	id      uint32
	p       int32 // split property this frame will restore on revisit
	min     int32 // pending min to apply on first visit (mode 1, 2)
	max     int32 // pending max to apply on first visit (mode 1 only)
	max2    int32 // value to restore into p's Max once this subtree is done
	mode    int   // 0 = root, 1 = right child (value <= split), 2 = left child (value > split)
	visited bool
}

// Reader is the resumable MANIAC tree reader (ff_flif16_read_maniac_tree).
// A single Reader decodes exactly one plane's tree; construct a fresh one
// per plane.
type Reader struct {
	ranges []PropRange
	stack  []stackEntry
	tree   *Tree

	segment int // 1 = dispatch stack top, 2 = read property, 3 = read count, 4 = read split, 5 = finalize

	oldp           int32
	oldmin, oldmax int32
	splitVal       int32

	propRead  *rac.GNZInt
	countRead *rac.GNZInt
	splitRead *rac.GNZInt
}

// NewReader starts a tree read over the given base property ranges (one
// entry per property index for this plane).
func NewReader(baseRanges []PropRange) *Reader {
	ranges := append([]PropRange(nil), baseRanges...)
	return &Reader{
		ranges:  ranges,
		stack:   []stackEntry{{id: 0, mode: 0}},
		tree:    newTree(),
		segment: 1,
	}
}

// Step advances the tree read as far as currently-buffered bytes allow.
// On success it returns the finished Tree with a nil error; callers must
// retry with the same three chance contexts on ErrNeedMoreData.
func (r *Reader) Step(d *rac.Decoder, ct *rac.ChanceTable, propCtx, countCtx, splitCtx *rac.ChanceContext) (*Tree, error) {
	for {
		if r.segment == 1 {
			if len(r.stack) == 0 {
				return r.tree, nil
			}
			top := &r.stack[len(r.stack)-1]
			if !top.visited {
				switch top.mode {
				case 1:
					r.ranges[top.p].Min = top.min
					r.ranges[top.p].Max = top.max
				case 2:
					r.ranges[top.p].Min = top.min
				}
				top.visited = true
				r.segment = 2
			} else {
				r.ranges[top.p].Max = top.max2
				r.stack = r.stack[:len(r.stack)-1]
				r.segment = 1
				continue
			}
		}

		if r.segment == 2 {
			top := &r.stack[len(r.stack)-1]
			if r.propRead == nil {
				r.propRead = rac.NewGNZInt(0, int32(len(r.ranges)))
			}
			v, err := r.propRead.Step(d, ct, propCtx)
			if err != nil {
				return nil, err
			}
			r.propRead = nil
			property := v - 1
			r.tree.Nodes[top.id].Property = property

			if property == -1 {
				r.stack = r.stack[:len(r.stack)-1]
				r.segment = 1
				continue
			}

			r.oldp = property
			r.oldmin = r.ranges[property].Min
			r.oldmax = r.ranges[property].Max
			if r.oldmin >= r.oldmax {
				return nil, ErrDegenerateRange
			}
			r.segment = 3
		}

		if r.segment == 3 {
			top := &r.stack[len(r.stack)-1]
			if r.countRead == nil {
				r.countRead = rac.NewGNZInt(TreeMinCount, TreeMaxCount)
			}
			v, err := r.countRead.Step(d, ct, countCtx)
			if err != nil {
				return nil, err
			}
			r.countRead = nil
			r.tree.Nodes[top.id].Count = v
			r.segment = 4
		}

		if r.segment == 4 {
			top := &r.stack[len(r.stack)-1]
			if r.splitRead == nil {
				r.splitRead = rac.NewGNZInt(r.oldmin, r.oldmax-1)
			}
			v, err := r.splitRead.Step(d, ct, splitCtx)
			if err != nil {
				return nil, err
			}
			r.splitRead = nil
			r.tree.Nodes[top.id].SplitVal = v
			r.splitVal = v
			r.segment = 5
		}

		// segment 5: allocate children, push work frames, loop.
		top := &r.stack[len(r.stack)-1]
		childID := uint32(len(r.tree.Nodes))
		r.tree.Nodes[top.id].ChildID = childID
		r.tree.Nodes = append(r.tree.Nodes, Node{LeafID: -1}, Node{LeafID: -1})

		top.p = r.oldp
		top.max2 = r.oldmax

		r.stack = append(r.stack,
			stackEntry{id: childID + 1, p: r.oldp, min: r.oldmin, max: r.splitVal, mode: 1},
			stackEntry{id: childID, p: r.oldp, min: r.splitVal + 1, mode: 2},
		)
		r.segment = 1
	}
}
