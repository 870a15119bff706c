package permit_test

import (
	"bytes"
	"encoding/csv"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/permit-management/internal/permit"
)

var _ = Describe("CSV Export", func() {
	var records []*permit.ExportRecord

	BeforeEach(func() {
		purpose := "Client visit"
		comments := "Approved for the week"
		approver := "HR Reviewer"
		approvedAt := time.Date(2024, 3, 12, 9, 30, 0, 0, time.UTC)

		records = []*permit.ExportRecord{
			{
				RequestID:    1,
				EmployeeCode: "EMP001",
				EmployeeName: "Budi Santoso",
				Department:   "Engineering",
				Grade:        "Senior",
				VehicleType:  "Sedan",
				LicensePlate: "B 1234 XYZ",
				UsageStart:   time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC),
				UsageEnd:     time.Date(2024, 3, 15, 17, 0, 0, 0, time.UTC),
				Purpose:      &purpose,
				Status:       permit.StatusApproved,
				HRComments:   &comments,
				ApproverName: &approver,
				ApprovedAt:   &approvedAt,
				SubmittedAt:  time.Date(2024, 3, 10, 14, 5, 0, 0, time.UTC),
			},
			{
				RequestID:    2,
				EmployeeCode: "EMP002",
				EmployeeName: "Siti Rahma",
				Department:   "Finance",
				Grade:        "Staff",
				VehicleType:  "Van",
				LicensePlate: "B 5678 ABC",
				UsageStart:   time.Date(2024, 3, 20, 8, 0, 0, 0, time.UTC),
				UsageEnd:     time.Date(2024, 3, 21, 17, 0, 0, 0, time.UTC),
				Status:       permit.StatusPending,
				SubmittedAt:  time.Date(2024, 3, 18, 10, 0, 0, 0, time.UTC),
			},
		}
	})

	parseCSV := func(buf *bytes.Buffer) [][]string {
		rows, err := csv.NewReader(buf).ReadAll()
		Expect(err).ToNot(HaveOccurred())
		return rows
	}

	It("should write the header followed by one row per record", func() {
		var buf bytes.Buffer
		err := permit.WriteCSV(&buf, records)
		Expect(err).ToNot(HaveOccurred())

		rows := parseCSV(&buf)
		Expect(rows).To(HaveLen(3))
		Expect(rows[0]).To(Equal([]string{
			"Request ID", "Employee ID", "Employee Name", "Department", "Grade",
			"Vehicle Type", "License Plate", "Usage Start", "Usage End", "Purpose",
			"Status", "HR Comments", "Approved By", "Approved At", "Submitted At",
		}))
	})

	It("should capitalize the status column", func() {
		var buf bytes.Buffer
		Expect(permit.WriteCSV(&buf, records)).To(Succeed())

		rows := parseCSV(&buf)
		Expect(rows[1][10]).To(Equal("Approved"))
		Expect(rows[2][10]).To(Equal("Pending"))
	})

	It("should format timestamps at minute precision", func() {
		var buf bytes.Buffer
		Expect(permit.WriteCSV(&buf, records)).To(Succeed())

		rows := parseCSV(&buf)
		Expect(rows[1][7]).To(Equal("2024-03-15 08:00"))
		Expect(rows[1][13]).To(Equal("2024-03-12 09:30"))
		Expect(rows[1][14]).To(Equal("2024-03-10 14:05"))
	})

	It("should leave optional columns empty when unset", func() {
		var buf bytes.Buffer
		Expect(permit.WriteCSV(&buf, records)).To(Succeed())

		rows := parseCSV(&buf)
		pendingRow := rows[2]
		Expect(pendingRow[9]).To(Equal(""))  // purpose
		Expect(pendingRow[11]).To(Equal("")) // hr comments
		Expect(pendingRow[12]).To(Equal("")) // approver
		Expect(pendingRow[13]).To(Equal("")) // approved at
	})

	It("should write only the header for an empty export", func() {
		var buf bytes.Buffer
		Expect(permit.WriteCSV(&buf, nil)).To(Succeed())

		rows := parseCSV(&buf)
		Expect(rows).To(HaveLen(1))
	})

	Describe("ExportFilename", func() {
		It("should embed the export moment in the filename", func() {
			now := time.Date(2024, 3, 15, 8, 30, 45, 0, time.UTC)
			Expect(permit.ExportFilename(now)).To(Equal("vehicle_permits_2024-03-15_08-30-45.csv"))
		})
	})
})
