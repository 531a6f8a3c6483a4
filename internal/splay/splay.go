// Package splay implements the beach line's ordered sequence store: a
// splay tree whose nodes are simultaneously threaded into a doubly linked
// list in key order, so that predecessor/successor access from a node
// handle is O(1) regardless of tree shape.
package splay

// Node is a tree node and, simultaneously, a node of the in-order linked
// list. Prev/Next always reflect the node's position in key order even
// while the tree itself is mid-rotation.
type Node[K comparable, V any] struct {
	Key   K
	Value V

	Left, Right, Parent *Node[K, V]
	Prev, Next          *Node[K, V]
}

// SetLeft attaches child as n's left subtree, fixing up child's parent
// pointer. child may be nil.
func (n *Node[K, V]) SetLeft(child *Node[K, V]) {
	n.Left = child
	if child != nil {
		child.Parent = n
	}
}

// SetRight attaches child as n's right subtree, fixing up child's parent
// pointer. child may be nil.
func (n *Node[K, V]) SetRight(child *Node[K, V]) {
	n.Right = child
	if child != nil {
		child.Parent = n
	}
}

// Rightmost walks to the rightmost descendant of the subtree rooted at n.
func (n *Node[K, V]) Rightmost() *Node[K, V] {
	node := n
	for node.Right != nil {
		node = node.Right
	}
	return node
}

// Leftmost walks to the leftmost descendant of the subtree rooted at n.
func (n *Node[K, V]) Leftmost() *Node[K, V] {
	node := n
	for node.Left != nil {
		node = node.Left
	}
	return node
}

// Tree is a splay tree keyed by an injected total order, with nodes also
// linked in key order. The zero value is not usable; construct with New.
type Tree[K comparable, V any] struct {
	Root *Node[K, V]
	Less func(a, b K) bool
}

// New constructs an empty tree ordered by less.
func New[K comparable, V any](less func(a, b K) bool) *Tree[K, V] {
	return &Tree[K, V]{Less: less}
}

func (t *Tree[K, V]) rotateLeft(node, stopParent *Node[K, V]) {
	y := node.Right
	if y != nil {
		node.Right = y.Left
		if y.Left != nil {
			y.Left.Parent = node
		}
		y.Parent = node.Parent
	}
	if node.Parent == stopParent && stopParent == nil {
		t.Root = y
	} else if node == node.Parent.Left {
		node.Parent.Left = y
	} else {
		node.Parent.Right = y
	}
	if y != nil {
		y.Left = node
	}
	node.Parent = y
}

func (t *Tree[K, V]) rotateRight(node, stopParent *Node[K, V]) {
	x := node.Left
	if x != nil {
		node.Left = x.Right
		if x.Right != nil {
			x.Right.Parent = node
		}
		x.Parent = node.Parent
	}
	if node.Parent == stopParent && stopParent == nil {
		t.Root = x
	} else if node == node.Parent.Left {
		node.Parent.Left = x
	} else {
		node.Parent.Right = x
	}
	if x != nil {
		x.Right = node
	}
	node.Parent = x
}

// Splay rotates node up to become the child of stopParent (nil meaning
// the tree root), via the standard zig/zig-zig/zig-zag discipline.
func (t *Tree[K, V]) Splay(node, stopParent *Node[K, V]) {
	if node == nil {
		return
	}
	for node.Parent != stopParent {
		parent := node.Parent
		parentIsLeft := parent.Left == node

		if parent.Parent == stopParent {
			if parentIsLeft {
				t.rotateRight(parent, stopParent)
			} else {
				t.rotateLeft(parent, stopParent)
			}
			continue
		}

		grandparentIsLeft := parent.Parent.Left == parent

		switch {
		case parentIsLeft && grandparentIsLeft:
			t.rotateRight(parent.Parent, stopParent)
			t.rotateRight(parent, stopParent)
		case parentIsLeft && !grandparentIsLeft:
			t.rotateRight(parent, stopParent)
			t.rotateLeft(node.Parent, stopParent)
		case !parentIsLeft && !grandparentIsLeft:
			t.rotateLeft(parent.Parent, stopParent)
			t.rotateLeft(parent, stopParent)
		default:
			t.rotateLeft(parent, stopParent)
			t.rotateRight(node.Parent, stopParent)
		}
	}
}

// Insert performs a BST insert keyed by Less, threads the new node into
// the linked list between its in-order neighbours, and — if splay is
// true — splays it to the root.
func (t *Tree[K, V]) Insert(key K, value V, splay bool) *Node[K, V] {
	newNode := &Node[K, V]{Key: key, Value: value}

	var parent *Node[K, V]
	x := t.Root
	for x != nil {
		parent = x
		if t.Less(key, x.Key) {
			x = x.Left
		} else {
			x = x.Right
		}
	}

	newNode.Parent = parent
	switch {
	case parent == nil:
		t.Root = newNode
	case t.Less(key, parent.Key):
		parent.Left = newNode
		newNode.Next = parent
		newNode.Prev = parent.Prev
		if parent.Prev != nil {
			parent.Prev.Next = newNode
		}
		parent.Prev = newNode
	default:
		parent.Right = newNode
		newNode.Prev = parent
		newNode.Next = parent.Next
		if parent.Next != nil {
			parent.Next.Prev = newNode
		}
		parent.Next = newNode
	}

	if splay {
		t.Splay(newNode, nil)
	}
	return newNode
}

// Search finds the node with the given key by plain BST descent, without
// splaying.
func (t *Tree[K, V]) Search(key K) *Node[K, V] {
	node := t.Root
	for node != nil {
		if node.Key == key {
			return node
		}
		if t.Less(node.Key, key) {
			node = node.Right
		} else {
			node = node.Left
		}
	}
	return nil
}

// Get finds the node with the given key and splays it to the root on a
// hit.
func (t *Tree[K, V]) Get(key K) *Node[K, V] {
	node := t.Search(key)
	if node != nil {
		t.Splay(node, nil)
	}
	return node
}

func (t *Tree[K, V]) replace(x, y *Node[K, V]) {
	switch {
	case x == t.Root:
		t.Root = y
		if y != nil {
			y.Parent = nil
		}
	case x == x.Parent.Left:
		x.Parent.SetLeft(y)
	default:
		x.Parent.SetRight(y)
	}
}

// join merges two subtrees — every key in left must precede every key in
// right — into one, by splaying left's rightmost node to the root of the
// merged subtree and hanging right off its right child. stopParent bounds
// the splay to the subrange being joined.
func (t *Tree[K, V]) join(left, right, stopParent *Node[K, V]) *Node[K, V] {
	newRoot := left.Rightmost()
	t.Splay(newRoot, stopParent)
	newRoot.SetRight(right)
	return newRoot
}

// RemoveNode unlinks node from both the list and the tree. If splay is
// true, the node's former parent (the parent of the subtree that took the
// node's place) is splayed to the tree root; pass false during a bulk removal
// sequence that will explicitly splay its own anchors afterward.
func (t *Tree[K, V]) RemoveNode(node *Node[K, V], splay bool) {
	if node == nil {
		return
	}

	if node.Prev != nil {
		node.Prev.Next = node.Next
	}
	if node.Next != nil {
		node.Next.Prev = node.Prev
	}

	stopParent := node.Parent

	var newRoot *Node[K, V]
	switch {
	case node.Left == nil:
		newRoot = node.Right
	case node.Right == nil:
		newRoot = node.Left
	default:
		// left.Rightmost() splays bounded at node itself — node.Left's
		// parent chain never leaves node's own subtree — so node stays
		// fixed in place throughout and t.replace below sees a clean
		// swap-in rather than a mid-splay-stale reference.
		newRoot = t.join(node.Left, node.Right, node)
	}

	t.replace(node, newRoot)

	if splay {
		t.Splay(stopParent, nil)
	}

	node.Left, node.Right, node.Parent = nil, nil, nil
}

// WedgeBefore splices newNode into the linked list immediately before
// anchor, without touching tree structure.
func WedgeBefore[K comparable, V any](anchor, newNode *Node[K, V]) {
	newNode.Next = anchor
	newNode.Prev = anchor.Prev
	if anchor.Prev != nil {
		anchor.Prev.Next = newNode
	}
	anchor.Prev = newNode
}

// WedgeAfter splices newNode into the linked list immediately after
// anchor, without touching tree structure.
func WedgeAfter[K comparable, V any](anchor, newNode *Node[K, V]) {
	newNode.Prev = anchor
	newNode.Next = anchor.Next
	if anchor.Next != nil {
		anchor.Next.Prev = newNode
	}
	anchor.Next = newNode
}
