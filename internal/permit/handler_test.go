package permit_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/permit-management/internal"
	"github.com/frahmantamala/permit-management/internal/permit"
	"github.com/frahmantamala/permit-management/internal/transport"
)

// Stub service with scripted responses for handler tests.
type stubPermitService struct {
	submitResult *permit.Permit
	submitError  error
	decideResult *permit.Permit
	decideError  error
	getResult    *permit.Permit
	getError     error
}

func (s *stubPermitService) Submit(ctx context.Context, dto permit.SubmitPermitDTO) (*permit.Permit, error) {
	return s.submitResult, s.submitError
}

func (s *stubPermitService) Decide(ctx context.Context, permitID int64, dto permit.DecidePermitDTO) (*permit.Permit, error) {
	return s.decideResult, s.decideError
}

func (s *stubPermitService) GetPermit(id int64) (*permit.Permit, error) {
	return s.getResult, s.getError
}

func (s *stubPermitService) ListPermits(q permit.ListQuery) ([]*permit.Permit, *permit.Stats, error) {
	return []*permit.Permit{}, &permit.Stats{}, nil
}

func (s *stubPermitService) ExportPermits(q permit.ExportQuery) ([]*permit.ExportRecord, error) {
	return []*permit.ExportRecord{}, nil
}

type stubPolicy struct {
	err error
}

func (s *stubPolicy) CanDecide(ctx context.Context, deciderID int64) error {
	return s.err
}

type stubNotificationReader struct {
	records []permit.NotificationRecord
	err     error
}

func (s *stubNotificationReader) ListForPermit(permitID int64) ([]permit.NotificationRecord, error) {
	return s.records, s.err
}

var _ = Describe("PermitHandler", func() {
	var (
		service       *stubPermitService
		policy        *stubPolicy
		notifications *stubNotificationReader
		router        *chi.Mux
	)

	samplePermit := func(status string) *permit.Permit {
		return &permit.Permit{
			ID:           42,
			EmployeeID:   1,
			VehicleType:  "Sedan",
			LicensePlate: "B 1234 XYZ",
			UsageStart:   time.Now().Add(24 * time.Hour),
			UsageEnd:     time.Now().Add(48 * time.Hour),
			Status:       status,
		}
	}

	BeforeEach(func() {
		service = &stubPermitService{}
		policy = &stubPolicy{}
		notifications = &stubNotificationReader{}

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		handler := permit.NewHandler(transport.NewBaseHandler(logger), service, policy, notifications)

		router = chi.NewRouter()
		router.Post("/permits", handler.SubmitPermit)
		router.Put("/permits/{id}/decision", handler.DecidePermit)
		router.Get("/permits/{id}", handler.GetPermit)
		router.Get("/permits", handler.ListPermits)
	})

	Describe("POST /permits", func() {
		It("should answer 201 with the created permit", func() {
			service.submitResult = samplePermit(permit.StatusPending)

			body := `{"employee_id":"EMP001","vehicle_type":"Sedan","license_plate":"B 1234 XYZ","usage_start":"2030-01-01T08:00:00Z","usage_end":"2030-01-02T08:00:00Z"}`
			req := httptest.NewRequest(http.MethodPost, "/permits", bytes.NewBufferString(body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusCreated))

			var result permit.Permit
			Expect(json.Unmarshal(rec.Body.Bytes(), &result)).To(Succeed())
			Expect(result.Status).To(Equal(permit.StatusPending))
		})

		It("should answer 400 for a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/permits", bytes.NewBufferString("{not json"))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should answer 404 when the employee is unknown", func() {
			service.submitError = internal.ErrEmployeeNotFound

			body := `{"employee_id":"EMP999","vehicle_type":"Sedan","license_plate":"B 1234 XYZ","usage_start":"2030-01-01T08:00:00Z","usage_end":"2030-01-02T08:00:00Z"}`
			req := httptest.NewRequest(http.MethodPost, "/permits", bytes.NewBufferString(body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("PUT /permits/{id}/decision", func() {
		decisionBody := `{"status":"approved","decided_by":7}`

		It("should answer 200 with the decided permit", func() {
			service.decideResult = samplePermit(permit.StatusApproved)

			req := httptest.NewRequest(http.MethodPut, "/permits/42/decision", bytes.NewBufferString(decisionBody))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("should answer 403 when the decider is not allowed", func() {
			policy.err = internal.ErrDecisionDenied

			req := httptest.NewRequest(http.MethodPut, "/permits/42/decision", bytes.NewBufferString(decisionBody))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusForbidden))
		})

		It("should answer 404 for an unknown permit", func() {
			service.decideError = internal.ErrPermitNotFound

			req := httptest.NewRequest(http.MethodPut, "/permits/42/decision", bytes.NewBufferString(decisionBody))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})

		It("should answer 409 for an already-decided permit", func() {
			service.decideError = internal.ErrInvalidTransition

			req := httptest.NewRequest(http.MethodPut, "/permits/42/decision", bytes.NewBufferString(decisionBody))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusConflict))
		})

		It("should answer 400 for a status outside approved/rejected", func() {
			req := httptest.NewRequest(http.MethodPut, "/permits/42/decision", bytes.NewBufferString(`{"status":"maybe","decided_by":7}`))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /permits/{id}", func() {
		It("should embed the notification audit trail", func() {
			service.getResult = samplePermit(permit.StatusApproved)
			sentAt := time.Now()
			notifications.records = []permit.NotificationRecord{
				{ID: 1, Type: "hr_notification", Status: "sent", SentAt: &sentAt},
				{ID: 2, Type: "employee_notification", Status: "failed"},
			}

			req := httptest.NewRequest(http.MethodGet, "/permits/42", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var detail permit.PermitDetailResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &detail)).To(Succeed())
			Expect(detail.Permit.ID).To(Equal(int64(42)))
			Expect(detail.Notifications).To(HaveLen(2))
		})

		It("should still answer 200 when the notification trail cannot be loaded", func() {
			service.getResult = samplePermit(permit.StatusApproved)
			notifications.err = context.DeadlineExceeded

			req := httptest.NewRequest(http.MethodGet, "/permits/42", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var detail permit.PermitDetailResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &detail)).To(Succeed())
			Expect(detail.Notifications).To(BeEmpty())
		})

		It("should answer 404 for an unknown permit", func() {
			service.getError = internal.ErrPermitNotFound

			req := httptest.NewRequest(http.MethodGet, "/permits/42", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GET /permits", func() {
		It("should answer 400 for a malformed from_date", func() {
			req := httptest.NewRequest(http.MethodGet, "/permits?from_date=15-03-2024", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should answer 200 with permits and stats", func() {
			req := httptest.NewRequest(http.MethodGet, "/permits?status=pending&limit=5", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var resp permit.PermitsResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Limit).To(Equal(5))
		})
	})
})
