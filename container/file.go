package container

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

// DefaultExt is appended to container names that carry no extension.
const DefaultExt = ".h5c"

const lookupCacheSize = 1024

// File is a container resource. Its embedded Group is the root group "/".
type File struct {
	*Group

	path     string
	writable bool
	closed   bool
	cache    *lru.Cache[string, Object]
}

// Filename appends DefaultExt to name unless it already has an extension.
func Filename(name string) string {
	if filepath.Ext(name) == "" {
		return name + DefaultExt
	}
	return name
}

func newFile(name string, writable bool) *File {
	// only fails for a non-positive size
	cache, _ := lru.New[string, Object](lookupCacheSize)

	file := &File{
		path:     name,
		writable: writable,
		cache:    cache,
	}
	file.Group = newGroup(file, "/")

	return file
}

// Create creates a writable container at name, truncating any existing file. The
// content is committed to disk by Close.
func Create(name string) (*File, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create container %s", name)
	}
	if err := f.Close(); err != nil {
		return nil, errors.WithMessagef(err, "failed to create container %s", name)
	}

	return newFile(name, true), nil
}

// Open reads a committed container for read-only access.
func Open(name string) (*File, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to read container %s", name)
	}

	file := newFile(name, false)
	if err := file.UnmarshalBinary(data); err != nil {
		return nil, errors.WithMessagef(err, "failed to decode container %s", name)
	}

	return file, nil
}

// Path returns the location of the container on disk.
func (f *File) Path() string { return f.path }

// Root returns the root group.
func (f *File) Root() *Group { return f.Group }

func (f *File) Writable() bool { return f.writable }
func (f *File) Closed() bool   { return f.closed }

// Close releases the container. A writable container is encoded and written to disk
// first, whatever it holds at that point.
func (f *File) Close() error {
	if f.closed {
		return ErrClosed
	}
	f.closed = true
	f.cache.Purge()

	if !f.writable {
		return nil
	}

	data, err := f.MarshalBinary()
	if err != nil {
		return errors.WithMessage(err, "failed to encode container")
	}

	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return errors.WithMessagef(err, "failed to write container %s", f.path)
	}

	return nil
}

func (f *File) checkWritable() error {
	if f.closed {
		return ErrClosed
	}
	if !f.writable {
		return ErrReadOnly
	}
	return nil
}

// lookup resolves a cleaned absolute name. Objects are never removed, so resolved
// names stay valid in the cache.
func (f *File) lookup(name string) (Object, error) {
	name = path.Clean(name)
	if obj, ok := f.cache.Get(name); ok {
		return obj, nil
	}

	obj, err := f.Group.locate(splitPath(strings.TrimPrefix(name, "/")))
	if err != nil {
		return nil, err
	}

	f.cache.Add(name, obj)
	return obj, nil
}
