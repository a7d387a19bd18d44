package container_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/David-HERS/HDF5-Data-Migrator/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMatrix(t *testing.T, rows, cols int, values ...float64) *container.Array {
	arr, err := container.NewArray(container.Float64, []int{rows, cols}, values)
	require.NoError(t, err)
	return arr
}

// sample creates a container with /a.dat, /sub/img.png and an empty /sub/empty group.
func sample(t *testing.T) *container.File {
	file, err := container.Create(filepath.Join(t.TempDir(), "sample.h5c"))
	require.NoError(t, err)

	_, err = file.CreateDataset("a.dat", newMatrix(t, 2, 2, 1, 2, 3, 4))
	require.NoError(t, err)

	sub, err := file.CreateGroup("sub")
	require.NoError(t, err)

	pixels, err := container.NewArray(container.Uint8, []int{1, 2, 3}, []float64{0, 1, 2, 253, 254, 255})
	require.NoError(t, err)
	_, err = sub.CreateDataset("img.png", pixels)
	require.NoError(t, err)

	_, err = sub.CreateGroup("empty")
	require.NoError(t, err)

	return file
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "data.h5c", container.Filename("data"))
	assert.Equal(t, "data.h5", container.Filename("data.h5"))
	assert.Equal(t, filepath.Join("out", "x.h5c"), container.Filename(filepath.Join("out", "x")))
}

func TestNewArrayValidatesShape(t *testing.T) {
	_, err := container.NewArray(container.Float64, []int{2, 2}, []float64{1, 2, 3})
	assert.Error(t, err)

	_, err = container.NewArray("complex128", []int{1}, []float64{1})
	assert.Error(t, err)

	arr, err := container.NewArray(container.Float64, []int{0}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, arr.Size())
}

func TestCreateGroupAndDatasetNames(t *testing.T) {
	file := sample(t)
	defer file.Close()

	assert.Equal(t, "/", file.Name())
	assert.Equal(t, container.KindGroup, file.Kind())

	obj := file.Get("/sub/img.png")
	require.NotNil(t, obj)
	assert.Equal(t, "/sub/img.png", obj.Name())
	assert.Equal(t, container.KindDataset, obj.Kind())

	sub := file.Get("sub").(*container.Group)
	assert.Equal(t, "/sub", sub.Name())
	assert.Equal(t, 2, sub.Len())
	assert.Same(t, obj, sub.Get("img.png"))
	assert.Same(t, obj, sub.Get("/sub/img.png"))
	assert.Same(t, file.Group, sub.Get(".."))

	assert.Nil(t, file.Get("/missing"))
	assert.Nil(t, file.Get("/a.dat/below"))

	_, err := file.Locate("/sub/nope")
	assert.ErrorIs(t, err, container.ErrNotFound)
}

func TestCreateNameCollision(t *testing.T) {
	file := sample(t)
	defer file.Close()

	_, err := file.CreateGroup("sub")
	assert.ErrorIs(t, err, container.ErrExists)

	_, err = file.CreateDataset("a.dat", newMatrix(t, 1, 1, 9))
	assert.ErrorIs(t, err, container.ErrExists)

	_, err = file.CreateGroup("a/b")
	assert.Error(t, err)
}

func TestMembersAreOrderedByName(t *testing.T) {
	file, err := container.Create(filepath.Join(t.TempDir(), "order.h5c"))
	require.NoError(t, err)
	defer file.Close()

	for _, name := range []string{"c", "a", "b"} {
		_, err := file.CreateGroup(name)
		require.NoError(t, err)
	}

	var names []string
	for _, obj := range file.Members() {
		names = append(names, obj.Name())
	}
	assert.Equal(t, []string{"/a", "/b", "/c"}, names)
}

func TestCloseCommitsAndReopen(t *testing.T) {
	file := sample(t)
	require.NoError(t, file.Close())
	assert.ErrorIs(t, file.Close(), container.ErrClosed)

	_, err := file.CreateGroup("late")
	assert.ErrorIs(t, err, container.ErrClosed)

	reopened, err := container.Open(file.Path())
	require.NoError(t, err)
	defer reopened.Close()

	assert.False(t, reopened.Writable())

	matrix := reopened.Get("/a.dat").(*container.Dataset)
	assert.Equal(t, []int{2, 2}, matrix.Shape())
	assert.Equal(t, container.Float64, matrix.DType())
	assert.Equal(t, []float64{1, 2, 3, 4}, matrix.Array().Data)

	dense, err := matrix.Dense()
	require.NoError(t, err)
	assert.Equal(t, 4.0, dense.At(1, 1))

	pixels := reopened.Get("/sub/img.png").(*container.Dataset)
	assert.Equal(t, []int{1, 2, 3}, pixels.Shape())
	assert.Equal(t, container.Uint8, pixels.DType())
	assert.Equal(t, []float64{0, 1, 2, 253, 254, 255}, pixels.Array().Data)
	assert.Nil(t, file.Get("/sub/img.png"), "closed containers resolve nothing")

	_, err = pixels.Dense()
	assert.Error(t, err)

	empty := reopened.Get("/sub/empty").(*container.Group)
	assert.Equal(t, 0, empty.Len())

	_, err = reopened.CreateGroup("new")
	assert.ErrorIs(t, err, container.ErrReadOnly)
}

func TestChecksumsSurviveReopen(t *testing.T) {
	file := sample(t)
	expected := file.Get("/a.dat").(*container.Dataset).Checksum()
	require.NoError(t, file.Close())

	reopened, err := container.Open(file.Path())
	require.NoError(t, err)
	assert.Equal(t, expected, reopened.Get("/a.dat").(*container.Dataset).Checksum())
}

func TestEmptyContainerRoundTrip(t *testing.T) {
	name := filepath.Join(t.TempDir(), "empty.h5c")
	file, err := container.Create(name)
	require.NoError(t, err)
	require.NoError(t, file.Close())

	reopened, err := container.Open(name)
	require.NoError(t, err)
	assert.Equal(t, 0, reopened.Len())
}

func TestOpenMissing(t *testing.T) {
	_, err := container.Open(filepath.Join(t.TempDir(), "nope.h5c"))
	assert.Error(t, err)
}

func TestCreateInMissingDirectory(t *testing.T) {
	_, err := container.Create(filepath.Join(t.TempDir(), "no", "such", "dir.h5c"))
	assert.Error(t, err)
}

func TestDecodeInvalidMagicBytes(t *testing.T) {
	file := sample(t)
	data, err := file.MarshalBinary()
	require.NoError(t, err)

	data[0] ^= 0xFF

	var decoded container.File
	err = decoded.UnmarshalBinary(data)
	require.Error(t, err)
	assert.Equal(t, "invalid magic bytes", err.Error())
}

func TestDecodeInvalidVersion(t *testing.T) {
	file := sample(t)
	data, err := file.MarshalBinary()
	require.NoError(t, err)

	data[len(container.CodecMagicBytes)] ^= 0xFF

	var decoded container.File
	err = decoded.UnmarshalBinary(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported codec version")
}

func TestOpenDetectsCorruptedData(t *testing.T) {
	file := sample(t)
	require.NoError(t, file.Close())

	data, err := os.ReadFile(file.Path())
	require.NoError(t, err)
	data[len(data)-1] ^= 0xFF
	require.NoError(t, os.WriteFile(file.Path(), data, 0644))

	_, err = container.Open(file.Path())
	assert.Error(t, err)
}
