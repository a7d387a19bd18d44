package container

import (
	"path"
	"strings"

	"github.com/google/btree"
	"github.com/pkg/errors"
)

type member struct {
	key    string
	object Object
}

// Group is a named container node holding groups and datasets.
type Group struct {
	name    string
	file    *File
	members *btree.BTreeG[member]
}

var _ Object = (*Group)(nil)

func newGroup(file *File, name string) *Group {
	return &Group{
		name: name,
		file: file,
		members: btree.NewG(2, func(a, b member) bool {
			return a.key < b.key
		}),
	}
}

func (g *Group) Name() string { return g.name }
func (g *Group) Kind() Kind   { return KindGroup }

// File returns the container the group belongs to.
func (g *Group) File() *File { return g.file }

// Len returns the number of direct members.
func (g *Group) Len() int { return g.members.Len() }

// CreateGroup creates an empty sub-group called name.
func (g *Group) CreateGroup(name string) (*Group, error) {
	if err := g.prepare(name); err != nil {
		return nil, err
	}

	sub := newGroup(g.file, join(g.name, name))
	g.members.ReplaceOrInsert(member{name, sub})

	return sub, nil
}

// CreateDataset creates a dataset called name holding arr.
func (g *Group) CreateDataset(name string, arr *Array) (*Dataset, error) {
	if arr == nil {
		return nil, errors.Errorf("no data for dataset %q", name)
	}
	if err := g.prepare(name); err != nil {
		return nil, err
	}

	dataset, err := newDataset(join(g.name, name), arr)
	if err != nil {
		return nil, err
	}
	g.members.ReplaceOrInsert(member{name, dataset})

	return dataset, nil
}

func (g *Group) prepare(name string) error {
	if err := g.file.checkWritable(); err != nil {
		return err
	}
	if err := validateName(name); err != nil {
		return err
	}
	if _, found := g.members.Get(member{key: name}); found {
		return errors.WithMessagef(ErrExists, "failed to create %q in %q", name, g.name)
	}
	return nil
}

// Member returns the direct member called name.
func (g *Group) Member(name string) (Object, bool) {
	m, found := g.members.Get(member{key: name})
	if !found {
		return nil, false
	}
	return m.object, true
}

// Members returns the direct members in ascending name order.
func (g *Group) Members() []Object {
	objects := make([]Object, 0, g.members.Len())
	g.members.Ascend(func(m member) bool {
		objects = append(objects, m.object)
		return true
	})
	return objects
}

// Get resolves path to an object, or returns nil when nothing is found. Absolute paths
// are resolved from the root group of the container, relative ones from g.
func (g *Group) Get(p string) Object {
	obj, err := g.Locate(p)
	if err != nil {
		return nil
	}
	return obj
}

// Locate is like Get but reports why the path could not be resolved.
func (g *Group) Locate(p string) (Object, error) {
	if g.file.closed {
		return nil, ErrClosed
	}

	if strings.HasPrefix(p, "/") {
		return g.file.lookup(path.Clean(p))
	}

	return g.file.lookup(join(g.name, p))
}

// locate walks the parts of a cleaned relative path down from g.
func (g *Group) locate(parts []string) (Object, error) {
	if len(parts) == 0 {
		return g, nil
	}

	obj, found := g.Member(parts[0])
	if !found {
		return nil, errors.WithMessagef(ErrNotFound, "path not found: '%s'", join(g.name, parts[0]))
	}
	if len(parts) == 1 {
		return obj, nil
	}

	sub, ok := obj.(*Group)
	if !ok {
		return nil, errors.Errorf("cannot locate '%s': '%s' is not a group", parts[1], obj.Name())
	}

	return sub.locate(parts[1:])
}

func splitPath(p string) []string {
	var parts []string
	for _, part := range strings.Split(p, "/") {
		if len(part) > 0 && part != "." {
			parts = append(parts, part)
		}
	}
	return parts
}

// Walk visits g and every object below it depth-first, members in name order.
func (g *Group) Walk(fn func(obj Object) error) error {
	if err := fn(g); err != nil {
		return err
	}

	var err error
	g.members.Ascend(func(m member) bool {
		if sub, ok := m.object.(*Group); ok {
			err = sub.Walk(fn)
		} else {
			err = fn(m.object)
		}
		return err == nil
	})

	return err
}
