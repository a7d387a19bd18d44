package adapter

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/David-HERS/HDF5-Data-Migrator/container"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// DefaultComments are the comment markers of the acquisition software exports.
var DefaultComments = []string{"0001:AREA1:1-Channel(X)", "#"}

// ErrNoData is returned by Tabular.Parse for files without any data row.
var ErrNoData = errors.New("no data rows")

const maxLineSize = 16 * 1024 * 1024

// Tabular parses whitespace separated numeric text into a rectangular array. Anything
// after a comment marker is ignored, as are blank lines.
type Tabular struct {
	Comments  []string
	Delimiter string // empty for any run of whitespace
}

var _ Adapter = (*Tabular)(nil)

// Decode parses the file and squeezes single-row and single-column tables to one
// dimension. A file without data gives an empty one-dimensional array.
func (t *Tabular) Decode(path string) (*container.Array, error) {
	rows, cols, data, err := t.read(path)
	if err != nil {
		return nil, err
	}

	var shape []int
	switch {
	case rows == 0:
		shape = []int{0}
	case rows == 1 && cols == 1:
		shape = []int{}
	case rows == 1:
		shape = []int{cols}
	case cols == 1:
		shape = []int{rows}
	default:
		shape = []int{rows, cols}
	}

	return container.NewArray(container.Float64, shape, data)
}

// Parse reads the file as a matrix.
func (t *Tabular) Parse(path string) (*mat.Dense, error) {
	rows, cols, data, err := t.read(path)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, errors.WithMessagef(ErrNoData, "failed to parse %s", path)
	}
	return mat.NewDense(rows, cols, data), nil
}

func (t *Tabular) read(path string) (rows, cols int, data []float64, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, errors.WithMessage(err, "failed to open tabular file")
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for lineNo := 1; scanner.Scan(); lineNo++ {
		fields := t.fields(t.stripComments(scanner.Text()))
		if len(fields) == 0 {
			continue
		}

		if rows == 0 {
			cols = len(fields)
		} else if len(fields) != cols {
			return 0, 0, nil, errors.Errorf("%s:%d: expected %d columns, got %d", path, lineNo, cols, len(fields))
		}

		for _, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return 0, 0, nil, errors.Errorf("%s:%d: invalid number %q", path, lineNo, field)
			}
			data = append(data, v)
		}
		rows++
	}

	if err := scanner.Err(); err != nil {
		return 0, 0, nil, errors.WithMessagef(err, "failed to read %s", path)
	}

	return rows, cols, data, nil
}

func (t *Tabular) stripComments(line string) string {
	for _, marker := range t.Comments {
		if marker == "" {
			continue
		}
		if i := strings.Index(line, marker); i >= 0 {
			line = line[:i]
		}
	}
	return line
}

func (t *Tabular) fields(line string) []string {
	if t.Delimiter == "" {
		return strings.Fields(line)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	parts := strings.Split(line, t.Delimiter)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
