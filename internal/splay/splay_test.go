package splay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func less(a, b int) bool { return a < b }

func inOrder(root *Node[int, string]) []int {
	if root == nil {
		return nil
	}
	start := root
	for start.Left != nil || start.Prev != nil {
		if start.Prev != nil {
			start = start.Prev
		} else {
			break
		}
	}
	// walk to the true leftmost via the linked list instead, which is
	// simpler and exercises the augmentation under test.
	node := root
	for node.Prev != nil {
		node = node.Prev
	}
	var out []int
	for node != nil {
		out = append(out, node.Key)
		node = node.Next
	}
	return out
}

func TestInsertMaintainsListOrder(t *testing.T) {
	tree := New[int, string](less)
	for _, k := range []int{5, 3, 8, 1, 4, 7, 9} {
		tree.Insert(k, "", true)
	}

	assert.Equal(t, []int{1, 3, 4, 5, 7, 8, 9}, inOrder(tree.Root))
}

func TestInsertWithoutSplayKeepsBSTShape(t *testing.T) {
	tree := New[int, string](less)
	tree.Insert(5, "root", false)
	tree.Insert(3, "left", false)
	tree.Insert(8, "right", false)

	require.NotNil(t, tree.Root)
	assert.Equal(t, 5, tree.Root.Key)
	assert.Equal(t, 3, tree.Root.Left.Key)
	assert.Equal(t, 8, tree.Root.Right.Key)
}

func TestGetSplaysToRoot(t *testing.T) {
	tree := New[int, string](less)
	for _, k := range []int{5, 3, 8, 1, 4, 7, 9} {
		tree.Insert(k, "", false)
	}

	node := tree.Get(1)
	require.NotNil(t, node)
	assert.Equal(t, 1, tree.Root.Key)
	assert.Equal(t, []int{1, 3, 4, 5, 7, 8, 9}, inOrder(tree.Root))
}

func TestRemoveNodeUnlinksFromListAndTree(t *testing.T) {
	tree := New[int, string](less)
	nodes := map[int]*Node[int, string]{}
	for _, k := range []int{5, 3, 8, 1, 4, 7, 9} {
		nodes[k] = tree.Insert(k, "", true)
	}

	tree.RemoveNode(nodes[4], true)

	assert.Equal(t, []int{1, 3, 5, 7, 8, 9}, inOrder(tree.Root))
	assert.Nil(t, tree.Search(4))
	for _, k := range []int{1, 3, 5, 7, 8, 9} {
		assert.NotNil(t, tree.Search(k))
	}
}

// TestRemoveNodeWithTwoChildrenNonRoot builds a plain BST shape (no
// splaying on insert) where the removed node is internal — not the root —
// and has two non-nil children, so join's splay bound (the removed node
// itself) differs from the removed node's own parent, which a wrong bound
// would use instead. Root-removal alone can't catch a wrong splay bound:
// a root's Parent is nil either way.
func TestRemoveNodeWithTwoChildrenNonRoot(t *testing.T) {
	tree := New[int, string](less)
	nodes := map[int]*Node[int, string]{}
	for _, k := range []int{5, 3, 8, 1, 4, 7, 9} {
		nodes[k] = tree.Insert(k, "", false)
	}

	require.NotNil(t, nodes[3].Left)
	require.NotNil(t, nodes[3].Right)
	require.NotNil(t, nodes[3].Parent)

	tree.RemoveNode(nodes[3], true)

	assert.Equal(t, []int{1, 4, 5, 7, 8, 9}, inOrder(tree.Root))
	assert.Nil(t, tree.Search(3))

	var seen []int
	node := tree.Root
	for node.Prev != nil {
		node = node.Prev
	}
	for node != nil {
		seen = append(seen, node.Key)
		assert.NotEqual(t, node, node.Left, "node must not become its own child")
		assert.NotEqual(t, node, node.Right, "node must not become its own child")
		if node.Parent != nil {
			assert.True(t, node.Parent.Left == node || node.Parent.Right == node,
				"node's parent must actually point back at it")
		}
		node = node.Next
	}
	assert.Equal(t, []int{1, 4, 5, 7, 8, 9}, seen)
}

func TestRemoveNodeWithoutSplayStillUnlinksPointers(t *testing.T) {
	tree := New[int, string](less)
	var a, b, c *Node[int, string]
	a = tree.Insert(1, "", false)
	b = tree.Insert(2, "", false)
	c = tree.Insert(3, "", false)

	tree.RemoveNode(b, false)

	assert.Nil(t, a.Next.Left)
	assert.Equal(t, c, a.Next)
	assert.Equal(t, a, c.Prev)
}
