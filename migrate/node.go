package migrate

import (
	"github.com/David-HERS/HDF5-Data-Migrator/container"
	"github.com/David-HERS/HDF5-Data-Migrator/tree"
	"github.com/pkg/errors"
)

// Entry pairs a child node with the object created for it. Object is nil for files
// that no adapter recognized.
type Entry struct {
	Node   *Node
	Object container.Object
}

// Node is a tree node together with the container group that mirrors it.
type Node struct {
	*tree.Node

	container *container.File
	group     *container.Group
	entries   []Entry
	expanded  bool

	// Default criteria of Keys. Nil criteria always hold.
	DataCriteria   func(name string) bool
	ObjectCriteria func(obj container.Object) bool
}

func newNode(node *tree.Node, group *container.Group) *Node {
	return &Node{Node: node, group: group}
}

// Container returns the container of a traversal root, nil for any other node.
func (node *Node) Container() *container.File { return node.container }

// Group returns the group created for a directory node, nil for files.
func (node *Node) Group() *container.Group { return node.group }

// Entries returns one entry per retained child, in traversal order. It is empty for
// nodes at the depth bound.
func (node *Node) Entries() []Entry { return node.entries }

// Expanded reports whether the children of the node were stored.
func (node *Node) Expanded() bool { return node.expanded }

// Keys lists the object names below the node's group. Without options
// container.DefaultMaxRecursion applies; a criterion left nil in the option falls back
// to the node's own.
func (node *Node) Keys(option ...container.KeyOption) ([]string, error) {
	if node.group == nil {
		return nil, errors.Errorf("%s is not a directory node", node.Path())
	}

	opt := container.KeyOption{MaxRecursion: container.DefaultMaxRecursion}
	if len(option) > 0 {
		opt = option[0]
	}

	if opt.DataCriteria == nil {
		opt.DataCriteria = node.DataCriteria
	}
	if opt.ObjectCriteria == nil {
		opt.ObjectCriteria = node.ObjectCriteria
	}

	return container.Keys(node.group, opt)
}

// Walk visits the node and its expanded descendants in pre-order.
func (node *Node) Walk(fn func(node *Node) error) error {
	if err := fn(node); err != nil {
		return err
	}

	for _, entry := range node.entries {
		if err := entry.Node.Walk(fn); err != nil {
			return err
		}
	}

	return nil
}
