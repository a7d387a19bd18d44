// Package migrate mirrors a directory tree into a container: directories become groups
// and recognized files become datasets named after them.
package migrate

import (
	"path/filepath"
	"time"

	"github.com/David-HERS/HDF5-Data-Migrator/adapter"
	"github.com/David-HERS/HDF5-Data-Migrator/common"
	"github.com/David-HERS/HDF5-Data-Migrator/common/util"
	"github.com/David-HERS/HDF5-Data-Migrator/container"
	"github.com/David-HERS/HDF5-Data-Migrator/tree"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultMaxDepth is the build depth used when Build is called without options.
const DefaultMaxDepth = 5

const progressInterval = 30 * time.Second

// BuildOption configures a build. A node at depth d is stored with its children only
// while d < MaxDepth.
type BuildOption struct {
	Predicate tree.Predicate
	MaxDepth  int
	// Name of the container, defaults to the final segment of the root.
	Name string
	// KeepOpen leaves the container open on the returned node, the caller must close it.
	KeepOpen bool
}

func (opt *BuildOption) normalize() error {
	if opt.Predicate == nil {
		opt.Predicate = tree.Everything
	}
	if opt.MaxDepth < 0 {
		return errors.Errorf("max depth must not be negative, got %d", opt.MaxDepth)
	}
	return nil
}

// Builder stores directory trees into containers using the adapters of a registry.
type Builder struct {
	registry *adapter.Registry
	logger   *logrus.Logger
}

// NewBuilder returns a Builder. A nil registry means adapter.DefaultRegistry().
func NewBuilder(registry *adapter.Registry, opts ...common.LogOption) *Builder {
	if registry == nil {
		registry = adapter.DefaultRegistry()
	}

	return &Builder{
		registry: registry,
		logger:   common.NewLogger(opts...),
	}
}

// Destination returns the container path for root. An explicit name gets
// container.DefaultExt only when it has no extension; the name derived from the final
// segment of root always gets it, so that dotted directory names never collide with
// the directory itself.
func Destination(root, name string) string {
	if name != "" {
		return container.Filename(name)
	}

	name = filepath.Base(filepath.Clean(root))
	if abs, err := filepath.Abs(root); err == nil {
		name = filepath.Base(abs)
	}
	return name + container.DefaultExt
}

// Build mirrors root into a new container and returns the root node. Unless KeepOpen
// is set the container is closed, and thus committed, before Build returns.
//
// A file that fails to decode or to be stored aborts the build with a
// ContainerWriteError. Objects created until then are kept and the container is
// closed.
func (b *Builder) Build(root string, option ...BuildOption) (*Node, error) {
	opt := BuildOption{MaxDepth: DefaultMaxDepth}
	if len(option) > 0 {
		opt = option[0]
	}
	if err := opt.normalize(); err != nil {
		return nil, err
	}

	if err := tree.CheckRoot(root); err != nil {
		return nil, err
	}

	rootNode, err := tree.NewNode(root, nil, false)
	if err != nil {
		return nil, err
	}

	dest := Destination(root, opt.Name)
	file, err := container.Create(dest)
	if err != nil {
		return nil, &ContainerWriteError{Path: root, Container: dest, Err: err}
	}

	logger := b.logger.WithFields(logrus.Fields{
		"root":      root,
		"container": dest,
		"maxDepth":  opt.MaxDepth,
	})
	logger.Info("Begin to build container")

	node := newNode(rootNode, file.Root())
	node.container = file

	progress := util.NewProgress(b.logger, progressInterval)
	if err := b.populate(node, file, &opt, progress); err != nil {
		if closeErr := file.Close(); closeErr != nil {
			logger.WithError(closeErr).Warn("Failed to close container after build failure")
		}
		return nil, err
	}

	if !opt.KeepOpen {
		if err := file.Close(); err != nil {
			return nil, &ContainerWriteError{Path: root, Container: dest, Err: err}
		}
	}

	logger.WithField("datasets", progress.Count()).Info("Completed to build container")

	return node, nil
}

// BuildWith builds root, hands the open root node to fn and closes the container on
// every exit path.
func (b *Builder) BuildWith(root string, opt BuildOption, fn func(node *Node) error) error {
	opt.KeepOpen = true

	node, err := b.Build(root, opt)
	if err != nil {
		return err
	}

	err = fn(node)

	if node.container.Closed() {
		return err
	}

	if closeErr := node.container.Close(); closeErr != nil && err == nil {
		return &ContainerWriteError{Path: root, Container: node.container.Path(), Err: closeErr}
	}

	return err
}

// populate lists the children of a directory node and, below the depth bound, stores
// each of them into the node's group.
func (b *Builder) populate(node *Node, file *container.File, opt *BuildOption, progress *util.Progress) error {
	if !node.IsDir() {
		return nil
	}

	if err := node.ListChildren(opt.Predicate); err != nil {
		return &tree.InvalidPathError{Path: node.Path(), Err: err}
	}

	if node.Depth() >= opt.MaxDepth {
		return nil
	}
	node.expanded = true

	children := node.Children()
	for i, path := range children {
		child, err := tree.NewNode(path, node.Node, i == len(children)-1)
		if err != nil {
			return err
		}

		entry := Entry{Node: newNode(child, nil)}

		if child.IsDir() {
			group, err := node.group.CreateGroup(child.Name())
			if err != nil {
				return &ContainerWriteError{Path: path, Container: file.Path(), Err: err}
			}
			entry.Node.group = group
			entry.Object = group

			if err := b.populate(entry.Node, file, opt, progress); err != nil {
				return err
			}
		} else {
			dataset, err := b.store(node.group, child)
			if err != nil {
				return &ContainerWriteError{Path: path, Container: file.Path(), Err: err}
			}
			if dataset != nil {
				entry.Object = dataset
				progress.Done("Stored dataset", logrus.Fields{"name": dataset.Name(), "shape": dataset.Shape()})
			}
		}

		node.entries = append(node.entries, entry)
	}

	return nil
}

// store decodes a file with the adapter registered for its extension and stores it
// under its file name. It returns nil without error for unrecognized extensions.
func (b *Builder) store(group *container.Group, node *tree.Node) (*container.Dataset, error) {
	decoder, ok := b.registry.Lookup(node.Path())
	if !ok {
		b.logger.WithField("file", node.Path()).Warn("No adapter for file extension, skipped")
		return nil, nil
	}

	arr, err := decoder.Decode(node.Path())
	if err != nil {
		return nil, err
	}

	return group.CreateDataset(node.Name(), arr)
}
