// Package basis learns low-rank feature bases from word co-occurrence
// structure and re-expresses count matrices in them.
package basis

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/cjweir/TextMAP/pkg/textmap/internalerr"
)

// Converter factorizes a words-by-context representation with a thin
// singular value decomposition and projects matrices whose columns are
// words onto the resulting components. The learned basis has one row per
// word, scaled by the singular values.
type Converter struct {
	components int
	index      map[string]int
	basis      *mat.Dense
	fitted     bool
}

// NewConverter builds a converter targeting the given number of
// components.
func NewConverter(components int) (*Converter, error) {
	if components < 1 {
		return nil, fmt.Errorf("basis: components %d: %w", components, internalerr.ErrInvalidConfig)
	}
	return &Converter{components: components}, nil
}

// Components returns the configured component count.
func (c *Converter) Components() int {
	return c.components
}

// Fit factorizes rep, a words-by-context matrix whose rows are named by
// rowLabels. The component count is capped at the number of singular
// values rep yields.
func (c *Converter) Fit(rep mat.Matrix, rowLabels []string) error {
	rows, _ := rep.Dims()
	if rows == 0 {
		return fmt.Errorf("basis: empty representation: %w", internalerr.ErrInvalidInput)
	}
	if rows != len(rowLabels) {
		return fmt.Errorf("basis: %d rows for %d labels: %w", rows, len(rowLabels), internalerr.ErrInvalidInput)
	}

	var svd mat.SVD
	if ok := svd.Factorize(rep, mat.SVDThin); !ok {
		return fmt.Errorf("basis: singular value decomposition failed to converge")
	}
	var u mat.Dense
	svd.UTo(&u)
	values := svd.Values(nil)

	k := c.components
	if k > len(values) {
		k = len(values)
	}

	b := mat.NewDense(rows, k, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < k; j++ {
			b.Set(i, j, u.At(i, j)*values[j])
		}
	}

	c.index = make(map[string]int, len(rowLabels))
	for i, word := range rowLabels {
		c.index[word] = i
	}
	c.basis = b
	c.fitted = true
	return nil
}

// Basis returns the learned words-by-components matrix.
func (c *Converter) Basis() (*mat.Dense, error) {
	if !c.fitted {
		return nil, fmt.Errorf("basis: basis matrix: %w", internalerr.ErrNotFitted)
	}
	return c.basis, nil
}

// ChangeBasis re-expresses rep, whose columns are the words named by
// columnLabels, in the learned components. Columns naming words the
// converter never saw contribute nothing.
func (c *Converter) ChangeBasis(rep mat.Matrix, columnLabels []string) (*mat.Dense, error) {
	if !c.fitted {
		return nil, fmt.Errorf("basis: change of basis: %w", internalerr.ErrNotFitted)
	}
	rows, cols := rep.Dims()
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("basis: empty representation: %w", internalerr.ErrInvalidInput)
	}
	if cols != len(columnLabels) {
		return nil, fmt.Errorf("basis: %d columns for %d labels: %w", cols, len(columnLabels), internalerr.ErrInvalidInput)
	}

	_, k := c.basis.Dims()
	aligned := mat.NewDense(cols, k, nil)
	for j, label := range columnLabels {
		if row, ok := c.index[label]; ok {
			aligned.SetRow(j, c.basis.RawRowView(row))
		}
	}

	var out mat.Dense
	out.Mul(rep, aligned)
	return &out, nil
}
