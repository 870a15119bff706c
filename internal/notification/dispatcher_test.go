package notification_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/permit-management/internal"
	"github.com/frahmantamala/permit-management/internal/employee"
	"github.com/frahmantamala/permit-management/internal/notification"
	"github.com/frahmantamala/permit-management/internal/permit"
)

func TestNotification(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Notification Suite")
}

// Mock repository for testing; safe for concurrent worker access.
type mockNotificationRepository struct {
	mu            sync.Mutex
	notifications map[int64]*notification.Notification
	createError   error
	nextID        int64
}

func newMockNotificationRepository() *mockNotificationRepository {
	return &mockNotificationRepository{
		notifications: make(map[int64]*notification.Notification),
		nextID:        1,
	}
}

func (m *mockNotificationRepository) Create(n *notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createError != nil {
		return m.createError
	}
	n.ID = m.nextID
	m.nextID++
	n.CreatedAt = time.Now()
	stored := *n
	m.notifications[n.ID] = &stored
	return nil
}

func (m *mockNotificationRepository) MarkSent(id int64, sentAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, exists := m.notifications[id]
	if !exists {
		return errors.New("notification not found")
	}
	n.Status = notification.StatusSent
	n.SentAt = &sentAt
	return nil
}

func (m *mockNotificationRepository) MarkFailed(id int64, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, exists := m.notifications[id]
	if !exists {
		return errors.New("notification not found")
	}
	n.Status = notification.StatusFailed
	n.ErrorMessage = &reason
	return nil
}

func (m *mockNotificationRepository) ListByPermitID(permitID int64) ([]*notification.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*notification.Notification, 0)
	for _, n := range m.notifications {
		if n.PermitID == permitID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (m *mockNotificationRepository) get(id int64) *notification.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, exists := m.notifications[id]
	if !exists {
		return nil
	}
	copied := *n
	return &copied
}

// Mock gateway with a scripted outcome.
type mockGateway struct {
	mu         sync.Mutex
	result     notification.DeliveryResult
	recipients []string
	messages   []string
}

func newMockGateway() *mockGateway {
	return &mockGateway{result: notification.DeliveryResult{Delivered: true}}
}

func (m *mockGateway) Send(ctx context.Context, recipient, message string) notification.DeliveryResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recipients = append(m.recipients, recipient)
	m.messages = append(m.messages, message)
	return m.result
}

func (m *mockGateway) sentTo() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.recipients...)
}

var _ = Describe("Dispatcher", func() {
	var (
		repo    *mockNotificationRepository
		gateway *mockGateway
		cfg     internal.NotificationConfig
		logger  *slog.Logger
		ctx     context.Context

		testPermit   *permit.Permit
		testEmployee *employee.Employee
	)

	BeforeEach(func() {
		repo = newMockNotificationRepository()
		gateway = newMockGateway()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		ctx = context.Background()

		cfg = internal.NotificationConfig{
			HRPhone:          "+1234567890",
			DefaultRecipient: "+0987654321",
			DispatchMode:     internal.DispatchModeInline,
			SendTimeout:      time.Second,
			MaxWorkers:       2,
			QueueSize:        10,
			ReviewBaseURL:    "http://localhost:3000/review",
		}

		phone := "+628111111111"
		testEmployee = &employee.Employee{
			ID:         1,
			EmployeeID: "EMP001",
			Name:       "Budi Santoso",
			Department: "Engineering",
			Grade:      "Senior",
			Phone:      &phone,
			IsActive:   true,
		}
		testPermit = &permit.Permit{
			ID:           42,
			EmployeeID:   1,
			VehicleType:  "Sedan",
			LicensePlate: "B 1234 XYZ",
			UsageStart:   time.Now().Add(24 * time.Hour),
			UsageEnd:     time.Now().Add(48 * time.Hour),
			Status:       permit.StatusPending,
		}
	})

	Describe("inline mode", func() {
		It("should record exactly one sent notification per HR alert", func() {
			d := notification.NewDispatcher(repo, gateway, cfg, logger)

			n, err := d.NotifyHR(ctx, testPermit, testEmployee)

			Expect(err).ToNot(HaveOccurred())
			Expect(n.Status).To(Equal(notification.StatusSent))
			Expect(n.SentAt).ToNot(BeNil())
			Expect(repo.notifications).To(HaveLen(1))
			Expect(gateway.sentTo()).To(Equal([]string{"+1234567890"}))

			stored := repo.get(n.ID)
			Expect(stored.Status).To(Equal(notification.StatusSent))
			Expect(stored.Type).To(Equal(notification.KindHRNotification))
		})

		It("should mark the record failed with the gateway reason", func() {
			gateway.result = notification.DeliveryResult{Delivered: false, Reason: "timeout"}
			d := notification.NewDispatcher(repo, gateway, cfg, logger)

			n, err := d.NotifyHR(ctx, testPermit, testEmployee)

			Expect(err).ToNot(HaveOccurred())
			Expect(n.Status).To(Equal(notification.StatusFailed))
			Expect(n.ErrorMessage).ToNot(BeNil())
			Expect(*n.ErrorMessage).To(Equal("timeout"))

			stored := repo.get(n.ID)
			Expect(stored.Status).To(Equal(notification.StatusFailed))
			Expect(*stored.ErrorMessage).To(Equal("timeout"))
		})

		It("should send the decision notice to the employee's own phone", func() {
			testPermit.Status = permit.StatusApproved
			d := notification.NewDispatcher(repo, gateway, cfg, logger)

			n, err := d.NotifyEmployee(ctx, testPermit, testEmployee)

			Expect(err).ToNot(HaveOccurred())
			Expect(n.RecipientPhone).To(Equal("+628111111111"))
			Expect(n.Type).To(Equal(notification.KindEmployeeNotification))
		})

		It("should fall back to the default recipient when the employee has no phone", func() {
			testEmployee.Phone = nil
			testPermit.Status = permit.StatusRejected
			d := notification.NewDispatcher(repo, gateway, cfg, logger)

			n, err := d.NotifyEmployee(ctx, testPermit, testEmployee)

			Expect(err).ToNot(HaveOccurred())
			Expect(n.RecipientPhone).To(Equal("+0987654321"))
		})

		It("should fail the dispatch only when the record cannot be written", func() {
			repo.createError = errors.New("db down")
			d := notification.NewDispatcher(repo, gateway, cfg, logger)

			n, err := d.NotifyHR(ctx, testPermit, testEmployee)

			Expect(err).To(HaveOccurred())
			Expect(n).To(BeNil())
			Expect(gateway.sentTo()).To(BeEmpty())
		})
	})

	Describe("async mode", func() {
		BeforeEach(func() {
			cfg.DispatchMode = internal.DispatchModeAsync
		})

		It("should return the pending record immediately and deliver on a worker", func() {
			d := notification.NewDispatcher(repo, gateway, cfg, logger)
			defer d.Close()

			n, err := d.NotifyHR(ctx, testPermit, testEmployee)

			Expect(err).ToNot(HaveOccurred())
			Expect(n.Status).To(Equal(notification.StatusPending))

			Eventually(func() string {
				stored := repo.get(n.ID)
				return stored.Status
			}, time.Second, 10*time.Millisecond).Should(Equal(notification.StatusSent))
		})

		It("should record worker-side delivery failures against the stored row", func() {
			gateway.result = notification.DeliveryResult{Delivered: false, Reason: "provider returned status 500"}
			d := notification.NewDispatcher(repo, gateway, cfg, logger)
			defer d.Close()

			n, err := d.NotifyEmployee(ctx, testPermit, testEmployee)
			Expect(err).ToNot(HaveOccurred())

			Eventually(func() string {
				return repo.get(n.ID).Status
			}, time.Second, 10*time.Millisecond).Should(Equal(notification.StatusFailed))

			stored := repo.get(n.ID)
			Expect(*stored.ErrorMessage).To(Equal("provider returned status 500"))
		})
	})
})
