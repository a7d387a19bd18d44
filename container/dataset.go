package container

import (
	"encoding/binary"
	"math"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Dataset is a named container node holding a fixed-shape numeric array.
type Dataset struct {
	name     string
	array    *Array
	encoded  []byte
	checksum common.Hash
}

var _ Object = (*Dataset)(nil)

func newDataset(name string, arr *Array) (*Dataset, error) {
	checked, err := NewArray(arr.DType, arr.Shape, arr.Data)
	if err != nil {
		return nil, errors.WithMessagef(err, "invalid array for dataset %q", name)
	}

	encoded := encodeArray(checked)
	return &Dataset{
		name:     name,
		array:    checked,
		encoded:  encoded,
		checksum: crypto.Keccak256Hash(encoded),
	}, nil
}

func (d *Dataset) Name() string          { return d.name }
func (d *Dataset) Kind() Kind            { return KindDataset }
func (d *Dataset) Shape() []int          { return d.array.Shape }
func (d *Dataset) DType() DType          { return d.array.DType }
func (d *Dataset) Checksum() common.Hash { return d.checksum }

// Array returns the stored array. It must not be modified.
func (d *Dataset) Array() *Array { return d.array }

// Dense returns a 1-D or 2-D dataset as a matrix. A 1-D dataset becomes a single row.
func (d *Dataset) Dense() (*mat.Dense, error) {
	shape := d.array.Shape
	switch len(shape) {
	case 1:
		if shape[0] == 0 {
			return nil, errors.Errorf("dataset %q is empty", d.name)
		}
		return mat.NewDense(1, shape[0], append([]float64(nil), d.array.Data...)), nil
	case 2:
		if shape[0] == 0 || shape[1] == 0 {
			return nil, errors.Errorf("dataset %q is empty", d.name)
		}
		return mat.NewDense(shape[0], shape[1], append([]float64(nil), d.array.Data...)), nil
	default:
		return nil, errors.Errorf("dataset %q has %d dimensions, matrix requires 1 or 2", d.name, len(shape))
	}
}

// FromDense converts a matrix into a float64 array of shape [rows, cols].
func FromDense(m mat.Matrix) *Array {
	rows, cols := m.Dims()
	data := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data = append(data, m.At(i, j))
		}
	}
	return &Array{Shape: []int{rows, cols}, DType: Float64, Data: data}
}

func encodeArray(arr *Array) []byte {
	switch arr.DType {
	case Uint8:
		buf := make([]byte, len(arr.Data))
		for i, v := range arr.Data {
			buf[i] = uint8(v)
		}
		return buf
	default:
		buf := make([]byte, 8*len(arr.Data))
		for i, v := range arr.Data {
			binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v))
		}
		return buf
	}
}

func decodeArray(dtype DType, shape []int, buf []byte) (*Array, error) {
	var data []float64
	switch dtype {
	case Uint8:
		data = make([]float64, len(buf))
		for i, b := range buf {
			data[i] = float64(b)
		}
	case Float64:
		if len(buf)%8 != 0 {
			return nil, errors.Errorf("float64 data of %d bytes is not aligned", len(buf))
		}
		data = make([]float64, len(buf)/8)
		for i := range data {
			data[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[8*i:]))
		}
	}

	return NewArray(dtype, shape, data)
}
