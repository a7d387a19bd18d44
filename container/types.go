package container

import (
	"path"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrExists is returned when a group or dataset name is already taken in a group.
	ErrExists = errors.New("object already exists")

	// ErrNotFound is returned when a path does not resolve to an object.
	ErrNotFound = errors.New("object not found")

	// ErrClosed is returned when a closed container is used.
	ErrClosed = errors.New("container is closed")

	// ErrReadOnly is returned when a read-only container is modified.
	ErrReadOnly = errors.New("container is read-only")
)

// Kind tells groups and datasets apart.
type Kind string

const (
	KindGroup   Kind = "group"
	KindDataset Kind = "dataset"
)

// Object is a named node of a container.
type Object interface {
	// Name returns the absolute path of the object within its container.
	Name() string
	Kind() Kind
}

// DType is the element type of an array as stored on disk.
type DType string

const (
	Float64 DType = "float64"
	Uint8   DType = "uint8"
)

// Array is a row-major N-dimensional array. Values are held as float64 in memory
// whatever the stored element type.
type Array struct {
	Shape []int
	DType DType
	Data  []float64
}

// NewArray validates that data fills shape exactly.
func NewArray(dtype DType, shape []int, data []float64) (*Array, error) {
	switch dtype {
	case Float64, Uint8:
	default:
		return nil, errors.Errorf("unsupported dtype %q", dtype)
	}

	size := 1
	for _, dim := range shape {
		if dim < 0 {
			return nil, errors.Errorf("negative dimension in shape %v", shape)
		}
		size *= dim
	}

	if size != len(data) {
		return nil, errors.Errorf("shape %v expects %d values, got %d", shape, size, len(data))
	}

	return &Array{Shape: shape, DType: dtype, Data: data}, nil
}

// Size returns the number of elements.
func (arr *Array) Size() int {
	return len(arr.Data)
}

// Base returns the final segment of an object name.
func Base(name string) string {
	if name == "/" {
		return name
	}
	return path.Base(name)
}

func join(parent, name string) string {
	return path.Join(parent, name)
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.Contains(name, "/") {
		return errors.Errorf("invalid object name %q", name)
	}
	return nil
}
