package vectorize

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/cjweir/TextMAP/pkg/textmap/internalerr"
)

// builder accumulates (row, column) -> value cells and emits a CSR matrix
// with rows and column indices in sorted order, so identical counts always
// produce byte-identical matrices.
type builder struct {
	rows, cols int
	cells      map[[2]int]float64
}

func newBuilder(rows, cols int) *builder {
	return &builder{rows: rows, cols: cols, cells: make(map[[2]int]float64)}
}

func (b *builder) add(row, col int, v float64) {
	b.cells[[2]int{row, col}] += v
}

func (b *builder) build() *sparse.CSR {
	keys := make([][2]int, 0, len(b.cells))
	for key, v := range b.cells {
		if v == 0 {
			continue
		}
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})

	ia := make([]int, b.rows+1)
	ja := make([]int, 0, len(keys))
	data := make([]float64, 0, len(keys))
	k := 0
	for row := 0; row < b.rows; row++ {
		for k < len(keys) && keys[k][0] == row {
			ja = append(ja, keys[k][1])
			data = append(data, b.cells[keys[k]])
			k++
		}
		ia[row+1] = len(ja)
	}
	return sparse.NewCSR(b.rows, b.cols, ia, ja, data)
}

// eachNonZero visits every non-zero cell of m, using the sparse fast path
// when the matrix supports it.
func eachNonZero(m mat.Matrix, fn func(i, j int, v float64)) {
	if doer, ok := m.(mat.NonZeroDoer); ok {
		doer.DoNonZero(fn)
		return
	}
	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := m.At(i, j); v != 0 {
				fn(i, j, v)
			}
		}
	}
}

// NormalizeRowsL1 scales each row of m so its absolute values sum to one,
// returning a new matrix. Zero rows stay zero.
func NormalizeRowsL1(m mat.Matrix) *sparse.CSR {
	rows, cols := m.Dims()
	sums := make([]float64, rows)
	eachNonZero(m, func(i, j int, v float64) {
		sums[i] += math.Abs(v)
	})

	out := newBuilder(rows, cols)
	eachNonZero(m, func(i, j int, v float64) {
		if sums[i] != 0 {
			out.add(i, j, v/sums[i])
		}
	})
	return out.build()
}

// StackRows places top above bottom. Column counts must match.
func StackRows(top, bottom mat.Matrix) (*sparse.CSR, error) {
	topRows, topCols := top.Dims()
	bottomRows, bottomCols := bottom.Dims()
	if topCols != bottomCols {
		return nil, fmt.Errorf("vectorize: stack rows: column counts %d and %d differ: %w",
			topCols, bottomCols, internalerr.ErrInvalidInput)
	}

	out := newBuilder(topRows+bottomRows, topCols)
	eachNonZero(top, func(i, j int, v float64) {
		out.add(i, j, v)
	})
	eachNonZero(bottom, func(i, j int, v float64) {
		out.add(topRows+i, j, v)
	})
	return out.build(), nil
}

// WriteMatrixMarket writes m in Matrix Market coordinate format with
// one-based indices, cells in row-major order.
func WriteMatrixMarket(w io.Writer, m mat.Matrix) error {
	rows, cols := m.Dims()

	type cell struct {
		i, j int
		v    float64
	}
	var cells []cell
	eachNonZero(m, func(i, j int, v float64) {
		cells = append(cells, cell{i: i, j: j, v: v})
	})
	sort.Slice(cells, func(a, b int) bool {
		if cells[a].i != cells[b].i {
			return cells[a].i < cells[b].i
		}
		return cells[a].j < cells[b].j
	})

	if _, err := fmt.Fprintf(w, "%%%%MatrixMarket matrix coordinate real general\n"); err != nil {
		return fmt.Errorf("vectorize: write matrix market header: %w", err)
	}
	if _, err := fmt.Fprintf(w, "%d %d %d\n", rows, cols, len(cells)); err != nil {
		return fmt.Errorf("vectorize: write matrix market size: %w", err)
	}
	for _, c := range cells {
		if _, err := fmt.Fprintf(w, "%d %d %s\n", c.i+1, c.j+1, strconv.FormatFloat(c.v, 'g', -1, 64)); err != nil {
			return fmt.Errorf("vectorize: write matrix market entry: %w", err)
		}
	}
	return nil
}

// WriteCSV writes m as labeled CSV: a header of column labels after an
// empty corner cell, then one row label plus values per row. Label counts
// must match the matrix dimensions.
func WriteCSV(w io.Writer, m mat.Matrix, rowLabels, colLabels []string) error {
	rows, cols := m.Dims()
	if len(rowLabels) != rows || len(colLabels) != cols {
		return fmt.Errorf("vectorize: write csv: labels (%d, %d) do not match matrix (%d, %d): %w",
			len(rowLabels), len(colLabels), rows, cols, internalerr.ErrInvalidInput)
	}

	cw := csv.NewWriter(w)
	header := make([]string, 0, cols+1)
	header = append(header, "")
	header = append(header, colLabels...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("vectorize: write csv header: %w", err)
	}
	record := make([]string, cols+1)
	for i := 0; i < rows; i++ {
		record[0] = rowLabels[i]
		for j := 0; j < cols; j++ {
			record[j+1] = strconv.FormatFloat(m.At(i, j), 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("vectorize: write csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("vectorize: flush csv: %w", err)
	}
	return nil
}
