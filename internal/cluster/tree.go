// Package cluster reads the hierarchical clustering tree produced by CLUTO
// (-fulltree) and turns it into an ordering of addresses.
package cluster

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const noNode = -1

type node struct {
	parent      int
	left, right int
}

// A Tree is a binary tree whose nodes are numbered by their line in the tree
// file. Leaves carry the row ids of the clustered matrix.
type Tree struct {
	nodes []node
	root  int
}

// ReadTree parses a tree file. Each non-empty line describes one node; its
// first field is the index of the parent node, or -1 for the root. Further
// fields (similarity, size) are ignored. The first child seen for a parent
// becomes its left child.
func ReadTree(rd io.Reader) (*Tree, error) {
	var parents []int

	sc := bufio.NewScanner(rd)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		p, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		if p < noNode {
			return nil, errors.Errorf("line %d: invalid parent %d", line, p)
		}
		parents = append(parents, p)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "Scan")
	}

	return newTree(parents)
}

func newTree(parents []int) (*Tree, error) {
	t := &Tree{
		nodes: make([]node, len(parents)),
		root:  noNode,
	}
	for i := range t.nodes {
		t.nodes[i] = node{parent: parents[i], left: noNode, right: noNode}
	}

	for i, p := range parents {
		if p == noNode {
			if t.root != noNode {
				return nil, errors.Errorf("node %d: second root, %d is already the root", i, t.root)
			}
			t.root = i
			continue
		}
		if p >= len(parents) || p == i {
			return nil, errors.Errorf("node %d: parent %d does not exist", i, p)
		}

		parent := &t.nodes[p]
		switch {
		case parent.left == noNode:
			parent.left = i
		case parent.right == noNode:
			parent.right = i
		default:
			return nil, errors.Errorf("node %d: parent %d already has children %d and %d",
				i, p, parent.left, parent.right)
		}
	}

	if t.root == noNode {
		return nil, errors.New("tree has no root")
	}
	return t, nil
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Root returns the index of the root node.
func (t *Tree) Root() int {
	return t.root
}

// IsLeaf reports whether node n has no children.
func (t *Tree) IsLeaf(n int) bool {
	return t.nodes[n].left == noNode && t.nodes[n].right == noNode
}

// LeafOrder returns the leaves reachable from the root, left to right.
func (t *Tree) LeafOrder() []int {
	var leaves []int

	stack := []int{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		nd := t.nodes[n]
		if t.IsLeaf(n) {
			leaves = append(leaves, n)
			continue
		}
		if nd.right != noNode {
			stack = append(stack, nd.right)
		}
		if nd.left != noNode {
			stack = append(stack, nd.left)
		}
	}
	return leaves
}

// Remap translates leaf ids into addresses using mapping, where mapping[i]
// is the address of row i of the clustered matrix.
func Remap(leaves []int, mapping []uint64) ([]uint64, error) {
	res := make([]uint64, 0, len(leaves))
	for _, l := range leaves {
		if l < 0 || l >= len(mapping) {
			return nil, errors.Errorf("leaf %d has no entry in a mapping of %d addresses", l, len(mapping))
		}
		res = append(res, mapping[l])
	}
	return res, nil
}
