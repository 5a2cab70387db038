package domain

import "strings"

// Tree is a labeled node with an ordered sequence of exclusively owned children.
// Rule templates held by a grammar are never mutated; the generator clones them
// before installing them into a tree under construction.
type Tree struct {
	Label    Label   `json:"label" yaml:"label"`
	Children []*Tree `json:"children,omitempty" yaml:"children,omitempty"`
}

// NewTree creates a node with the given children.
// Each node gets its own child slice, so appending to one node never affects another.
func NewTree(label Label, children ...*Tree) *Tree {
	owned := make([]*Tree, len(children))
	copy(owned, children)
	return &Tree{Label: label, Children: owned}
}

// Leaf creates a childless node.
func Leaf(label Label) *Tree {
	return NewTree(label)
}

// IsLeaf reports whether the node has no children.
func (t *Tree) IsLeaf() bool {
	return len(t.Children) == 0
}

// Clone returns a deep copy of the tree.
// It walks with an explicit stack so arbitrarily deep trees can be copied.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return nil
	}

	root := NewTree(t.Label, t.Children...)
	type frame struct{ dst *Tree }
	stack := []frame{{root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for i, child := range f.dst.Children {
			cp := NewTree(child.Label, child.Children...)
			f.dst.Children[i] = cp
			stack = append(stack, frame{cp})
		}
	}
	return root
}

// Size returns the total number of nodes, including the root.
func (t *Tree) Size() int {
	if t == nil {
		return 0
	}
	size := 1
	for _, c := range t.Children {
		size += c.Size()
	}
	return size
}

// Depth returns the number of nodes on the longest root-to-leaf path.
func (t *Tree) Depth() int {
	if t == nil {
		return 0
	}
	deepest := 0
	for _, c := range t.Children {
		if d := c.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// Leaves returns the leaf labels in left-to-right order.
func (t *Tree) Leaves() []Label {
	var out []Label
	stack := []*Tree{t}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.IsLeaf() {
			out = append(out, n.Label)
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return out
}

// String renders a leaf as its label and an internal node as label(child1, child2, ...).
func (t *Tree) String() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t *Tree) write(sb *strings.Builder) {
	sb.WriteString(string(t.Label))
	if t.IsLeaf() {
		return
	}
	sb.WriteByte('(')
	for i, c := range t.Children {
		if i > 0 {
			sb.WriteString(", ")
		}
		c.write(sb)
	}
	sb.WriteByte(')')
}
