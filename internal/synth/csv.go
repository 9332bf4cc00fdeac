package synth

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/logisticsnet/logisticsnet/internal/planner"
)

// ErrMalformedDataset indicates a CSV that does not follow the dataset layout.
var ErrMalformedDataset = errors.New("malformed dataset")

// WriteCSV writes the rows with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads rows written by WriteCSV.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrMalformedDataset, err)
	}
	if !slices.Equal(header, Header) {
		return nil, fmt.Errorf("%w: unexpected header %v", ErrMalformedDataset, header)
	}

	var rows []Row
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDataset, err)
		}

		row, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedDataset, line, err)
		}
		rows = append(rows, row)
	}
}

func parseRecord(record []string) (Row, error) {
	var row Row
	copy(row.Stops[:], record[:planner.MaxWaypoints])

	fragile, err := strconv.ParseBool(record[5])
	if err != nil {
		return Row{}, fmt.Errorf("is_fragile: %w", err)
	}
	cold, err := strconv.ParseBool(record[6])
	if err != nil {
		return Row{}, fmt.Errorf("needs_cold_storage: %w", err)
	}

	row.Fragile = fragile
	row.NeedsColdStorage = cold
	row.ProductType = planner.ProductType(record[7])
	row.BestFirstStop = record[8]
	return row, nil
}
