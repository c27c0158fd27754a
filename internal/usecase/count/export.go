package count

import (
	"encoding/csv"
	"io"
	"strconv"

	"bicocont/internal/domain/count"
)

// ExportFilename is the download name of the history export.
const ExportFilename = "bicocont_history.csv"

var exportHeader = []string{"timestamp", "code", "name", "deposit", "sap", "physical", "diff", "user"}

// WriteCSV writes rows as ';'-separated text with a header row and no index column.
func WriteCSV(w io.Writer, rows []count.Count) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, c := range rows {
		rec := []string{
			c.Timestamp,
			c.Code,
			c.Name,
			c.Deposit,
			strconv.FormatInt(c.SAP, 10),
			strconv.FormatInt(c.Physical, 10),
			strconv.FormatInt(c.Diff, 10),
			c.User,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
