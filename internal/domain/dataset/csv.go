package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV renders the matrix with the header as the first record. Invalid
// cells become empty fields, which is what the downstream training tooling
// reads as NaN.
func WriteCSV(w io.Writer, m Matrix) error {
	out := csv.NewWriter(w)

	if err := out.Write(m.Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, 0, len(m.Header))
	for _, row := range m.Rows {
		record = record[:0]
		record = append(record, strconv.FormatInt(row.GameID, 10))
		for _, cell := range row.Cells {
			if !cell.Valid {
				record = append(record, "")
				continue
			}
			record = append(record, strconv.FormatFloat(cell.Float64, 'g', -1, 64))
		}
		record = append(record, row.Label)
		if err := out.Write(record); err != nil {
			return fmt.Errorf("write csv row game_id=%d: %w", row.GameID, err)
		}
	}

	out.Flush()
	if err := out.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}
