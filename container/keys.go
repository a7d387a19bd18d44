package container

import "github.com/pkg/errors"

// DefaultMaxRecursion bounds Keys when it is called without options.
const DefaultMaxRecursion = 10

// KeyOption filters and bounds Keys. Nil criteria always hold.
type KeyOption struct {
	DataCriteria   func(name string) bool
	ObjectCriteria func(obj Object) bool
	MaxRecursion   int
}

// Keys lists the names of obj and of the objects below it. A group's members are
// listed while the recursion budget, taken as an absolute value, is positive: datasets
// are always recorded and sub-groups are descended with one less. A name is kept only
// if both criteria hold, the object criteria being evaluated on the object the name
// resolves to.
func Keys(obj Object, option ...KeyOption) ([]string, error) {
	opt := KeyOption{MaxRecursion: DefaultMaxRecursion}
	if len(option) > 0 {
		opt = option[0]
	}

	var file *File
	switch v := obj.(type) {
	case *File:
		file = v
		obj = v.Group
	case *Group:
		file = v.file
	case *Dataset:
	case nil:
		return nil, errors.New("no object to list keys of")
	}

	if file != nil && file.closed {
		return nil, ErrClosed
	}

	names := allKeys(obj, abs(opt.MaxRecursion))

	result := make([]string, 0, len(names))
	for _, name := range names {
		if opt.DataCriteria != nil && !opt.DataCriteria(name) {
			continue
		}

		if opt.ObjectCriteria != nil {
			resolved := obj
			if file != nil {
				resolved = file.Get(name)
			}
			if !opt.ObjectCriteria(resolved) {
				continue
			}
		}

		result = append(result, name)
	}

	return result, nil
}

func allKeys(obj Object, deep int) []string {
	keys := []string{obj.Name()}

	g, ok := obj.(*Group)
	if !ok || deep == 0 {
		return keys
	}

	for _, member := range g.Members() {
		switch v := member.(type) {
		case *Group:
			keys = append(keys, allKeys(v, deep-1)...)
		case *Dataset:
			keys = append(keys, v.name)
		}
	}

	return keys
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
