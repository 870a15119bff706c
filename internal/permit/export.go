package permit

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

const exportTimeFormat = "2006-01-02 15:04"

var exportHeader = []string{
	"Request ID",
	"Employee ID",
	"Employee Name",
	"Department",
	"Grade",
	"Vehicle Type",
	"License Plate",
	"Usage Start",
	"Usage End",
	"Purpose",
	"Status",
	"HR Comments",
	"Approved By",
	"Approved At",
	"Submitted At",
}

// WriteCSV streams the export records as CSV, one row per permit. Optional
// fields render as empty cells; the status column is capitalized.
func WriteCSV(w io.Writer, records []*ExportRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(exportHeader); err != nil {
		return err
	}

	for _, rec := range records {
		row := []string{
			strconv.FormatInt(rec.RequestID, 10),
			rec.EmployeeCode,
			rec.EmployeeName,
			rec.Department,
			rec.Grade,
			rec.VehicleType,
			rec.LicensePlate,
			rec.UsageStart.Format(exportTimeFormat),
			rec.UsageEnd.Format(exportTimeFormat),
			stringOrEmpty(rec.Purpose),
			CapitalizeStatus(rec.Status),
			stringOrEmpty(rec.HRComments),
			stringOrEmpty(rec.ApproverName),
			timeOrEmpty(rec.ApprovedAt),
			rec.SubmittedAt.Format(exportTimeFormat),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportFilename names the CSV attachment after the export moment.
func ExportFilename(now time.Time) string {
	return "vehicle_permits_" + now.Format("2006-01-02_15-04-05") + ".csv"
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func timeOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(exportTimeFormat)
}
