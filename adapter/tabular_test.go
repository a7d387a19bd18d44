package adapter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/David-HERS/HDF5-Data-Migrator/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestTabularDecode(t *testing.T) {
	tabular := &adapter.Tabular{Comments: adapter.DefaultComments}

	tests := []struct {
		name    string
		content string
		shape   []int
		data    []float64
	}{
		{"matrix", "1 2\n3 4\n", []int{2, 2}, []float64{1, 2, 3, 4}},
		{"single row", "1 2 3\n", []int{3}, []float64{1, 2, 3}},
		{"single column", "1\n2\n3\n", []int{3}, []float64{1, 2, 3}},
		{"scalar", "42\n", []int{}, []float64{42}},
		{"empty", "", []int{0}, nil},
		{"comments and blanks", "# header\n\n1 2 # trailing\n0001:AREA1:1-Channel(X) 9 9\n3 4\n", []int{2, 2}, []float64{1, 2, 3, 4}},
		{"tabs and exponents", "1e3\t-2.5\n0.5\t7\n", []int{2, 2}, []float64{1000, -2.5, 0.5, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arr, err := tabular.Decode(writeFile(t, "data.dat", tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.shape, arr.Shape)
			assert.Equal(t, len(tt.data), arr.Size())
			if len(tt.data) > 0 {
				assert.Equal(t, tt.data, arr.Data)
			}
		})
	}
}

func TestTabularDelimiter(t *testing.T) {
	tabular := &adapter.Tabular{Delimiter: ","}

	arr, err := tabular.Decode(writeFile(t, "data.csv", "1, 2\n3 ,4\n"))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, arr.Shape)
	assert.Equal(t, []float64{1, 2, 3, 4}, arr.Data)
}

func TestTabularErrors(t *testing.T) {
	tabular := &adapter.Tabular{Comments: adapter.DefaultComments}

	_, err := tabular.Decode(writeFile(t, "bad.dat", "1 2\nx y\n"))
	assert.ErrorContains(t, err, `invalid number "x"`)

	_, err = tabular.Decode(writeFile(t, "ragged.dat", "1 2\n3\n"))
	assert.ErrorContains(t, err, "expected 2 columns, got 1")

	_, err = tabular.Decode(filepath.Join(t.TempDir(), "missing.dat"))
	assert.Error(t, err)
}

func TestTabularParse(t *testing.T) {
	tabular := &adapter.Tabular{}

	m, err := tabular.Parse(writeFile(t, "data.dat", "1 2 3\n4 5 6\n"))
	require.NoError(t, err)
	rows, cols := m.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, 6.0, m.At(1, 2))

	_, err = tabular.Parse(writeFile(t, "empty.dat", "# nothing\n"))
	assert.ErrorIs(t, err, adapter.ErrNoData)
}
