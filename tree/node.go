package tree

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Glyphs used by Render.
const (
	PrefixMiddle       = "├──"
	PrefixLast         = "└──"
	ParentPrefixMiddle = "│   "
	ParentPrefixLast   = "    "
)

// Predicate decides whether a directory entry is retained. It receives the entry path.
type Predicate func(path string) bool

// Everything is the default predicate, it retains every entry.
func Everything(string) bool { return true }

// Node represents a file or directory positioned in a logical tree.
type Node struct {
	path     string
	info     os.FileInfo
	parent   *Node // navigation only, never owns the parent
	depth    int
	isLast   bool
	children []string
}

// NewNode resolves path and positions it below parent. A nil parent makes the node a
// traversal root at depth 0.
func NewNode(path string, parent *Node, isLast bool) (*Node, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &InvalidPathError{Path: path, Err: err}
	}

	node := &Node{
		path:   path,
		info:   info,
		parent: parent,
		isLast: isLast,
	}
	if parent != nil {
		node.depth = parent.depth + 1
	}

	return node, nil
}

func (node *Node) Path() string       { return node.path }
func (node *Node) Parent() *Node      { return node.parent }
func (node *Node) Depth() int         { return node.depth }
func (node *Node) IsLast() bool       { return node.isLast }
func (node *Node) IsDir() bool        { return node.info.IsDir() }
func (node *Node) Info() os.FileInfo  { return node.info }
func (node *Node) Children() []string { return node.children }

// Name returns the final path segment.
func (node *Node) Name() string {
	return filepath.Base(node.path)
}

// DisplayName returns Name suffixed with a slash for directories.
func (node *Node) DisplayName() string {
	if node.IsDir() {
		return node.Name() + "/"
	}
	return node.Name()
}

// ListChildren lists the retained children of a directory node and stores them on the
// node. It is a no-op for files.
func (node *Node) ListChildren(predicate Predicate) error {
	if !node.IsDir() {
		return nil
	}

	children, err := ReadChildren(node.path, predicate)
	if err != nil {
		return err
	}

	node.children = children
	return nil
}

// Render returns the node as a single display line: the depth tag, then for non-root
// nodes one indent unit per intermediate ancestor and a branch glyph, then the display name.
func (node *Node) Render() string {
	tag := "[" + strconv.Itoa(node.depth) + "]:"
	if node.parent == nil {
		return tag + node.DisplayName()
	}

	prefix := PrefixMiddle
	if node.isLast {
		prefix = PrefixLast
	}
	parts := []string{prefix + " " + node.DisplayName()}

	for parent := node.parent; parent != nil && parent.parent != nil; parent = parent.parent {
		if parent.isLast {
			parts = append(parts, ParentPrefixLast)
		} else {
			parts = append(parts, ParentPrefixMiddle)
		}
	}

	var sb strings.Builder
	sb.WriteString(tag)
	for i := len(parts) - 1; i >= 0; i-- {
		sb.WriteString(parts[i])
	}

	return sb.String()
}

func (node *Node) String() string {
	return node.Render()
}

// ReadChildren lists the entries of dir accepted by predicate, sorted case-insensitively
// by their path.
func ReadChildren(dir string, predicate Predicate) ([]string, error) {
	if predicate == nil {
		predicate = Everything
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to read directory %s", dir)
	}

	children := make([]string, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if predicate(path) {
			children = append(children, path)
		}
	}

	sort.SliceStable(children, func(i, j int) bool {
		return strings.ToLower(children[i]) < strings.ToLower(children[j])
	})

	return children, nil
}
