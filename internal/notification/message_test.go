package notification_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/permit-management/internal/employee"
	"github.com/frahmantamala/permit-management/internal/notification"
	"github.com/frahmantamala/permit-management/internal/permit"
)

var _ = Describe("Message templates", func() {
	var (
		p   *permit.Permit
		emp *employee.Employee
	)

	BeforeEach(func() {
		emp = &employee.Employee{
			ID:         1,
			EmployeeID: "EMP001",
			Name:       "Budi Santoso",
			Department: "Engineering",
			Grade:      "Senior",
		}
		p = &permit.Permit{
			ID:           42,
			EmployeeID:   1,
			VehicleType:  "Sedan",
			LicensePlate: "B 1234 XYZ",
			UsageStart:   time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC),
			UsageEnd:     time.Date(2024, 3, 15, 17, 0, 0, 0, time.UTC),
			Status:       permit.StatusPending,
		}
	})

	Describe("HRMessage", func() {
		It("should include employee identity and permit details", func() {
			msg := notification.HRMessage(p, emp, "http://localhost:3000/review")

			Expect(msg).To(ContainSubstring("New Vehicle Permit Request"))
			Expect(msg).To(ContainSubstring("Budi Santoso"))
			Expect(msg).To(ContainSubstring("Engineering"))
			Expect(msg).To(ContainSubstring("Sedan"))
			Expect(msg).To(ContainSubstring("B 1234 XYZ"))
			Expect(msg).To(ContainSubstring("Mar 15, 2024 08:00 - Mar 15, 2024 17:00"))
		})

		It("should embed a review deep link with the permit id", func() {
			msg := notification.HRMessage(p, emp, "http://localhost:3000/review")
			Expect(msg).To(ContainSubstring("http://localhost:3000/review?permit=42"))
		})

		It("should show the placeholder when no purpose was given", func() {
			msg := notification.HRMessage(p, emp, "http://localhost:3000/review")
			Expect(msg).To(ContainSubstring("*Purpose:* Not specified"))
		})

		It("should show the purpose when present", func() {
			purpose := "Client visit"
			p.Purpose = &purpose

			msg := notification.HRMessage(p, emp, "http://localhost:3000/review")
			Expect(msg).To(ContainSubstring("*Purpose:* Client visit"))
		})
	})

	Describe("EmployeeMessage", func() {
		It("should announce an approval with the approved closing line", func() {
			p.Status = permit.StatusApproved

			msg := notification.EmployeeMessage(p)

			Expect(msg).To(ContainSubstring("✅ *Vehicle Permit Approved*"))
			Expect(msg).To(ContainSubstring("*Request ID:* #42"))
			Expect(msg).To(ContainSubstring("has been approved"))
			Expect(msg).NotTo(ContainSubstring("rejected"))
		})

		It("should announce a rejection with the contact-HR closing line", func() {
			p.Status = permit.StatusRejected

			msg := notification.EmployeeMessage(p)

			Expect(msg).To(ContainSubstring("❌ *Vehicle Permit Rejected*"))
			Expect(msg).To(ContainSubstring("has been rejected"))
			Expect(msg).To(ContainSubstring("contact HR"))
		})

		It("should include HR comments only when present", func() {
			p.Status = permit.StatusRejected
			msg := notification.EmployeeMessage(p)
			Expect(msg).NotTo(ContainSubstring("HR Comments"))

			comments := "Vehicle unavailable that week"
			p.HRComments = &comments
			msg = notification.EmployeeMessage(p)
			Expect(msg).To(ContainSubstring("*HR Comments:* Vehicle unavailable that week"))
		})
	})
})
