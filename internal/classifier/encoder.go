package classifier

import (
	"fmt"
	"slices"
)

// LabelEncoder maps string values to dense integer codes in sorted order.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

// FitLabels builds an encoder over the distinct values, sorted lexically.
func FitLabels(values []string) *LabelEncoder {
	classes := slices.Clone(values)
	slices.Sort(classes)
	classes = slices.Compact(classes)

	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	return &LabelEncoder{classes: classes, index: index}
}

// Classes returns the known values in code order.
func (e *LabelEncoder) Classes() []string {
	return slices.Clone(e.classes)
}

// Transform returns the code of a value.
func (e *LabelEncoder) Transform(value string) (int, error) {
	i, ok := e.index[value]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnseenLabel, value)
	}
	return i, nil
}

// Inverse returns the value of a code.
func (e *LabelEncoder) Inverse(code int) (string, error) {
	if code < 0 || code >= len(e.classes) {
		return "", fmt.Errorf("%w: code %d", ErrUnseenLabel, code)
	}
	return e.classes[code], nil
}

// TableEncoder encodes string tables column by column.
type TableEncoder struct {
	columns []*LabelEncoder
}

// FitTable fits one LabelEncoder per column of rows.
func FitTable(rows [][]string) (*TableEncoder, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}

	width := len(rows[0])
	values := make([][]string, width)
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShapeMismatch, i, len(row), width)
		}
		for j, v := range row {
			values[j] = append(values[j], v)
		}
	}

	enc := &TableEncoder{columns: make([]*LabelEncoder, width)}
	for j := range values {
		enc.columns[j] = FitLabels(values[j])
	}
	return enc, nil
}

// Width returns the number of columns.
func (e *TableEncoder) Width() int {
	return len(e.columns)
}

// Transform encodes rows into feature vectors.
func (e *TableEncoder) Transform(rows [][]string) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != len(e.columns) {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShapeMismatch, i, len(row), len(e.columns))
		}
		vec := make([]float64, len(row))
		for j, v := range row {
			code, err := e.columns[j].Transform(v)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i, j, err)
			}
			vec[j] = float64(code)
		}
		out[i] = vec
	}
	return out, nil
}
