package notification

import (
	"fmt"
	"strings"

	"github.com/frahmantamala/permit-management/internal/employee"
	"github.com/frahmantamala/permit-management/internal/permit"
)

const messageTimeFormat = "Jan 02, 2006 15:04"

// HRMessage renders the submission alert sent to the HR contact, including
// a deep link into the review dashboard.
func HRMessage(p *permit.Permit, emp *employee.Employee, reviewBaseURL string) string {
	reviewURL := fmt.Sprintf("%s?permit=%d", reviewBaseURL, p.ID)

	var b strings.Builder
	b.WriteString("🚗 *New Vehicle Permit Request*\n\n")
	b.WriteString(fmt.Sprintf("📋 *Employee:* %s\n", emp.Name))
	b.WriteString(fmt.Sprintf("🏢 *Department:* %s\n", emp.Department))
	b.WriteString(fmt.Sprintf("🚙 *Vehicle:* %s\n", p.VehicleType))
	b.WriteString(fmt.Sprintf("🔢 *License:* %s\n", p.LicensePlate))
	b.WriteString(fmt.Sprintf("📅 *Duration:* %s - %s\n",
		p.UsageStart.Format(messageTimeFormat),
		p.UsageEnd.Format(messageTimeFormat)))
	b.WriteString(fmt.Sprintf("📝 *Purpose:* %s\n\n", p.PurposeOrDefault()))
	b.WriteString(fmt.Sprintf("🔗 *Review & Approve:* %s\n\n", reviewURL))
	b.WriteString("Please review and approve/reject this request.")

	return b.String()
}

// EmployeeMessage renders the decision notice sent to the permit owner.
// The closing line differs by outcome.
func EmployeeMessage(p *permit.Permit) string {
	emoji := "❌"
	if p.Status == permit.StatusApproved {
		emoji = "✅"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s *Vehicle Permit %s*\n\n", emoji, permit.CapitalizeStatus(p.Status)))
	b.WriteString(fmt.Sprintf("📋 *Request ID:* #%d\n", p.ID))
	b.WriteString(fmt.Sprintf("🚙 *Vehicle:* %s\n", p.VehicleType))
	b.WriteString(fmt.Sprintf("🔢 *License:* %s\n", p.LicensePlate))
	b.WriteString(fmt.Sprintf("📅 *Duration:* %s - %s\n\n",
		p.UsageStart.Format(messageTimeFormat),
		p.UsageEnd.Format(messageTimeFormat)))

	if p.HRComments != nil && *p.HRComments != "" {
		b.WriteString(fmt.Sprintf("💬 *HR Comments:* %s\n\n", *p.HRComments))
	}

	if p.Status == permit.StatusApproved {
		b.WriteString("🎉 Your vehicle permit has been approved! You can proceed with your vehicle usage as planned.")
	} else {
		b.WriteString("❗ Your vehicle permit has been rejected. Please contact HR for more information.")
	}

	return b.String()
}
