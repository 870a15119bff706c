package notification_test

import (
	"context"
	"log/slog"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/permit-management/internal"
	"github.com/frahmantamala/permit-management/internal/core/events"
	"github.com/frahmantamala/permit-management/internal/employee"
	"github.com/frahmantamala/permit-management/internal/notification"
	"github.com/frahmantamala/permit-management/internal/permit"
)

type stubPermitReader struct {
	permits map[int64]*permit.Permit
}

func (s *stubPermitReader) GetPermit(id int64) (*permit.Permit, error) {
	p, exists := s.permits[id]
	if !exists {
		return nil, internal.ErrPermitNotFound
	}
	return p, nil
}

type stubEmployeeReader struct {
	employees map[int64]*employee.Employee
}

func (s *stubEmployeeReader) GetEmployee(id int64) (*employee.Employee, error) {
	emp, exists := s.employees[id]
	if !exists {
		return nil, internal.ErrEmployeeNotFound
	}
	return emp, nil
}

var _ = Describe("EventHandler", func() {
	var (
		repo      *mockNotificationRepository
		gateway   *mockGateway
		handler   *notification.EventHandler
		permits   *stubPermitReader
		employees *stubEmployeeReader
		ctx       context.Context
	)

	BeforeEach(func() {
		repo = newMockNotificationRepository()
		gateway = newMockGateway()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		ctx = context.Background()

		cfg := internal.NotificationConfig{
			HRPhone:          "+1234567890",
			DefaultRecipient: "+0987654321",
			DispatchMode:     internal.DispatchModeInline,
			SendTimeout:      time.Second,
			ReviewBaseURL:    "http://localhost:3000/review",
		}
		dispatcher := notification.NewDispatcher(repo, gateway, cfg, logger)

		phone := "+628111111111"
		permits = &stubPermitReader{permits: map[int64]*permit.Permit{
			42: {
				ID:           42,
				EmployeeID:   1,
				VehicleType:  "Sedan",
				LicensePlate: "B 1234 XYZ",
				UsageStart:   time.Now().Add(24 * time.Hour),
				UsageEnd:     time.Now().Add(48 * time.Hour),
				Status:       permit.StatusPending,
			},
		}}
		employees = &stubEmployeeReader{employees: map[int64]*employee.Employee{
			1: {
				ID:         1,
				EmployeeID: "EMP001",
				Name:       "Budi Santoso",
				Department: "Engineering",
				Grade:      "Senior",
				Phone:      &phone,
				IsActive:   true,
			},
		}}

		handler = notification.NewEventHandler(dispatcher, permits, employees, logger)
	})

	Describe("HandlePermitSubmitted", func() {
		It("should dispatch the HR alert for the submitted permit", func() {
			event := events.NewPermitSubmittedEvent(42, 1, "Sedan")

			Expect(handler.HandlePermitSubmitted(ctx, event)).To(Succeed())

			Expect(repo.notifications).To(HaveLen(1))
			Expect(gateway.sentTo()).To(Equal([]string{"+1234567890"}))
		})

		It("should fail when the permit cannot be loaded", func() {
			event := events.NewPermitSubmittedEvent(9999, 1, "Sedan")

			Expect(handler.HandlePermitSubmitted(ctx, event)).ToNot(Succeed())
			Expect(repo.notifications).To(BeEmpty())
		})
	})

	Describe("HandlePermitDecided", func() {
		It("should dispatch the decision notice to the permit owner", func() {
			permits.permits[42].Status = permit.StatusApproved
			event := events.NewPermitDecidedEvent(42, 7, permit.StatusApproved)

			Expect(handler.HandlePermitDecided(ctx, event)).To(Succeed())

			Expect(repo.notifications).To(HaveLen(1))
			Expect(gateway.sentTo()).To(Equal([]string{"+628111111111"}))
		})

		It("should fail when the employee cannot be loaded", func() {
			permits.permits[42].EmployeeID = 99
			event := events.NewPermitDecidedEvent(42, 7, permit.StatusApproved)

			Expect(handler.HandlePermitDecided(ctx, event)).ToNot(Succeed())
			Expect(repo.notifications).To(BeEmpty())
		})
	})
})
