package causal

import "fmt"

// IndexedCoefficients is a CoefficientSource that selects, for each sample,
// one row of a coefficient table through an index map.
type IndexedCoefficients struct {
	table [][]float64
	width int

	n1, n2, n3 int
	index      []int // flat, i1 fastest
}

// NewIndexed1 returns a source for 1-D arrays: sample i1 uses
// table[index[i1]].
func NewIndexed1(table [][]float64, index []int) (*IndexedCoefficients, error) {
	ic, err := newIndexed(table)
	if err != nil {
		return nil, err
	}
	for i1, k := range index {
		if err := ic.checkRow(k, i1, 0, 0); err != nil {
			return nil, err
		}
	}
	ic.n1, ic.n2, ic.n3 = len(index), 1, 1
	ic.index = append([]int(nil), index...)
	return ic, nil
}

// NewIndexed2 returns a source for 2-D arrays: sample (i1, i2) uses
// table[index[i2][i1]]. index must be rectangular.
func NewIndexed2(table [][]float64, index [][]int) (*IndexedCoefficients, error) {
	ic, err := newIndexed(table)
	if err != nil {
		return nil, err
	}
	n1, n2 := 0, len(index)
	if n2 > 0 {
		n1 = len(index[0])
	}
	for i2, row := range index {
		if len(row) != n1 {
			return nil, fmt.Errorf("%w: index is not rectangular", ErrDimensionMismatch)
		}
		for i1, k := range row {
			if err := ic.checkRow(k, i1, i2, 0); err != nil {
				return nil, err
			}
		}
		ic.index = append(ic.index, row...)
	}
	ic.n1, ic.n2, ic.n3 = n1, n2, 1
	return ic, nil
}

// NewIndexed3 returns a source for 3-D arrays: sample (i1, i2, i3) uses
// table[index[i3][i2][i1]]. index must be rectangular.
func NewIndexed3(table [][]float64, index [][][]int) (*IndexedCoefficients, error) {
	ic, err := newIndexed(table)
	if err != nil {
		return nil, err
	}
	n1, n2, n3 := 0, 0, len(index)
	if n3 > 0 {
		n2 = len(index[0])
		if n2 > 0 {
			n1 = len(index[0][0])
		}
	}
	for i3, plane := range index {
		if len(plane) != n2 {
			return nil, fmt.Errorf("%w: index is not rectangular", ErrDimensionMismatch)
		}
		for i2, row := range plane {
			if len(row) != n1 {
				return nil, fmt.Errorf("%w: index is not rectangular", ErrDimensionMismatch)
			}
			for i1, k := range row {
				if err := ic.checkRow(k, i1, i2, i3); err != nil {
					return nil, err
				}
			}
			ic.index = append(ic.index, row...)
		}
	}
	ic.n1, ic.n2, ic.n3 = n1, n2, n3
	return ic, nil
}

func newIndexed(table [][]float64) (*IndexedCoefficients, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: empty coefficient table", ErrInvalidArgument)
	}
	width := len(table[0])
	rows := make([][]float64, len(table))
	for k, row := range table {
		if len(row) != width {
			return nil, fmt.Errorf("%w: table row %d has %d coefficients, row 0 has %d",
				ErrDimensionMismatch, k, len(row), width)
		}
		rows[k] = append([]float64(nil), row...)
	}
	return &IndexedCoefficients{table: rows, width: width}, nil
}

func (ic *IndexedCoefficients) checkRow(k, i1, i2, i3 int) error {
	if k < 0 || k >= len(ic.table) {
		return fmt.Errorf("%w: index %d at sample (%d,%d,%d) outside table of %d rows",
			ErrInvalidArgument, k, i1, i2, i3, len(ic.table))
	}
	return nil
}

// CoefficientsAt copies the table row selected for (i1, i2, i3) into a.
func (ic *IndexedCoefficients) CoefficientsAt(i1, i2, i3 int, a []float64) {
	copy(a, ic.table[ic.index[i1+ic.n1*(i2+ic.n2*i3)]])
}

// Shape returns the extents covered by the index map.
func (ic *IndexedCoefficients) Shape() (n1, n2, n3 int) { return ic.n1, ic.n2, ic.n3 }

// Width returns the number of coefficients per table row.
func (ic *IndexedCoefficients) Width() int { return ic.width }

// Rows returns the number of table rows.
func (ic *IndexedCoefficients) Rows() int { return len(ic.table) }
