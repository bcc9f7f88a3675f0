package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes the header line followed by one line per row. Fields are
// quoted as needed, so reasons containing commas or newlines survive.
func WriteCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Headers); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		if err := writer.Write(r.cells()); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
