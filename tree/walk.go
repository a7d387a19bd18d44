package tree

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

// DefaultMaxDepth is the preview depth used when Walk is called without options.
const DefaultMaxDepth = 2

var errWalkerDone = errors.New("walker is exhausted")

// WalkOption configures a Walker. A node at depth d is expanded only while d < MaxDepth.
type WalkOption struct {
	Predicate Predicate
	MaxDepth  int
}

func (opt *WalkOption) normalize() error {
	if opt.Predicate == nil {
		opt.Predicate = Everything
	}
	if opt.MaxDepth < 0 {
		return errors.Errorf("max depth must not be negative, got %d", opt.MaxDepth)
	}
	return nil
}

type frame struct {
	node *Node
	next int
}

// Walker lazily enumerates the filtered tree below a root directory in pre-order.
// It is single-pass: once Next reports false the walker cannot be restarted.
type Walker struct {
	root    string
	opt     WalkOption
	stack   []*frame
	current *Node
	started bool
	done    bool
}

// Walk validates root and returns a walker positioned before the root node.
func Walk(root string, option ...WalkOption) (*Walker, error) {
	opt := WalkOption{MaxDepth: DefaultMaxDepth}
	if len(option) > 0 {
		opt = option[0]
	}
	if err := opt.normalize(); err != nil {
		return nil, err
	}

	if err := CheckRoot(root); err != nil {
		return nil, err
	}

	return &Walker{root: root, opt: opt}, nil
}

// CheckRoot fails with PathNotFoundError unless root is an existing directory.
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return &PathNotFoundError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return &PathNotFoundError{Path: root, Err: errors.New("not a directory")}
	}
	return nil
}

// Next advances the walker to the next node. It returns false once the tree is exhausted.
func (w *Walker) Next() (bool, error) {
	if w.done {
		return false, nil
	}

	if !w.started {
		w.started = true
		node, err := w.enter(w.root, nil, false)
		if err != nil {
			w.done = true
			return false, err
		}
		w.current = node
		return true, nil
	}

	for len(w.stack) > 0 {
		top := w.stack[len(w.stack)-1]
		children := top.node.children
		if top.node.depth >= w.opt.MaxDepth || top.next >= len(children) {
			w.stack = w.stack[:len(w.stack)-1]
			continue
		}

		path := children[top.next]
		top.next++

		node, err := w.enter(path, top.node, top.next == len(children))
		if err != nil {
			w.done = true
			return false, err
		}
		w.current = node
		return true, nil
	}

	w.current = nil
	w.done = true
	return false, nil
}

// enter creates the node for path and, for a directory, lists its children and pushes
// it so that its subtree is visited next.
func (w *Walker) enter(path string, parent *Node, isLast bool) (*Node, error) {
	node, err := NewNode(path, parent, isLast)
	if err != nil {
		return nil, err
	}

	if node.IsDir() {
		if err := node.ListChildren(w.opt.Predicate); err != nil {
			return nil, &InvalidPathError{Path: path, Err: err}
		}
		w.stack = append(w.stack, &frame{node: node})
	}

	return node, nil
}

// Current returns the node the walker is positioned on.
func (w *Walker) Current() *Node {
	return w.current
}

// Collect drains the walker into a slice.
func (w *Walker) Collect() ([]*Node, error) {
	if w.done {
		return nil, errWalkerDone
	}

	var nodes []*Node
	for {
		ok, err := w.Next()
		if err != nil {
			return nodes, err
		}
		if !ok {
			return nodes, nil
		}
		nodes = append(nodes, w.current)
	}
}

// Fprint drains the walker and writes one rendered line per node.
func (w *Walker) Fprint(out io.Writer) error {
	if w.done {
		return errWalkerDone
	}

	for {
		ok, err := w.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if _, err := fmt.Fprintln(out, w.current.Render()); err != nil {
			return err
		}
	}
}
