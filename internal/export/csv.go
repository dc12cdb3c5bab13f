// Package export writes the visitor table as a CSV download.
package export

import (
	"bufio"
	"io"
	"strings"
	"time"

	"visitor-cli/pkg/models"
)

// Header is the fixed first row of every export.
var Header = []string{"Name", "Email", "Phone", "Purpose", "Message", "Check-in Time"}

// DisplayTimeLayout is how check-in times appear in exports and tables.
const DisplayTimeLayout = "2006-01-02 15:04:05"

// FileName returns visitors_<YYYY-MM-DD>.csv for the given day.
func FileName(now time.Time) string {
	return "visitors_" + now.Format(models.DateLayout) + ".csv"
}

// CheckinDisplay formats the check-in in local time, falling back to the raw value.
func CheckinDisplay(v models.Visitor) string {
	if !v.HasCheckin {
		return v.CheckinRaw
	}
	return v.Checkin.Local().Format(DisplayTimeLayout)
}

// WriteCSV writes the header and one row per record. Every field is quoted.
func WriteCSV(w io.Writer, records []models.Visitor) error {
	bw := bufio.NewWriter(w)
	writeRow(bw, Header)
	for _, v := range records {
		writeRow(bw, []string{
			v.Name,
			v.Email,
			v.Phone,
			string(v.Purpose),
			v.Message,
			CheckinDisplay(v),
		})
	}
	return bw.Flush()
}

// encoding/csv only quotes when needed; the export quotes unconditionally.
func writeRow(w *bufio.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(f, `"`, `""`))
		w.WriteByte('"')
	}
	w.WriteByte('\n')
}
