package permit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/frahmantamala/permit-management/internal"
	"github.com/frahmantamala/permit-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Submit(ctx context.Context, dto SubmitPermitDTO) (*Permit, error)
	Decide(ctx context.Context, permitID int64, dto DecidePermitDTO) (*Permit, error)
	GetPermit(id int64) (*Permit, error)
	ListPermits(q ListQuery) ([]*Permit, *Stats, error)
	ExportPermits(q ExportQuery) ([]*ExportRecord, error)
}

// DecisionPolicy is the authorization hook consulted before a decision is
// forwarded to the lifecycle engine. Who may decide is the integrating
// system's call; the engine itself only checks state.
type DecisionPolicy interface {
	CanDecide(ctx context.Context, deciderID int64) error
}

// NotificationRecord is the audit-view projection of a delivery attempt,
// embedded in the single-permit response.
type NotificationRecord struct {
	ID             int64      `json:"id"`
	RecipientPhone string     `json:"recipient_phone"`
	Type           string     `json:"type"`
	Status         string     `json:"status"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	ErrorMessage   *string    `json:"error_message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// NotificationReader lists the delivery attempts recorded for a permit.
type NotificationReader interface {
	ListForPermit(permitID int64) ([]NotificationRecord, error)
}

type PermitDetailResponse struct {
	Permit        *Permit              `json:"permit"`
	Notifications []NotificationRecord `json:"notifications"`
}

type Handler struct {
	*transport.BaseHandler
	Service       ServiceAPI
	Policy        DecisionPolicy
	Notifications NotificationReader
}

func NewHandler(base *transport.BaseHandler, service ServiceAPI, policy DecisionPolicy, notifications NotificationReader) *Handler {
	return &Handler{
		BaseHandler:   base,
		Service:       service,
		Policy:        policy,
		Notifications: notifications,
	}
}

func (h *Handler) SubmitPermit(w http.ResponseWriter, r *http.Request) {
	var dto SubmitPermitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SubmitPermit: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	permit, err := h.Service.Submit(r.Context(), dto)
	if err != nil {
		h.Logger.Error("SubmitPermit: service error", "error", err, "employee_id", dto.EmployeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("SubmitPermit: permit created",
		"permit_id", permit.ID,
		"employee_id", dto.EmployeeID,
		"status", permit.Status)

	h.WriteJSON(w, http.StatusCreated, permit)
}

func (h *Handler) DecidePermit(w http.ResponseWriter, r *http.Request) {
	permitID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid permit ID")
		return
	}

	var dto DecidePermitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("DecidePermit: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.Logger.Error("DecidePermit: validation error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Policy.CanDecide(r.Context(), dto.DecidedBy); err != nil {
		h.Logger.Warn("DecidePermit: decision denied",
			"permit_id", permitID,
			"decided_by", dto.DecidedBy,
			"error", err)
		h.HandleServiceError(w, err)
		return
	}

	permit, err := h.Service.Decide(r.Context(), permitID, dto)
	if err != nil {
		h.Logger.Error("DecidePermit: service error", "error", err, "permit_id", permitID, "decided_by", dto.DecidedBy)

		switch err {
		case internal.ErrPermitNotFound:
			h.WriteError(w, http.StatusNotFound, "permit not found")
		case internal.ErrInvalidTransition:
			h.WriteError(w, http.StatusConflict, "permit has already been decided")
		default:
			h.HandleServiceError(w, err)
		}
		return
	}

	h.Logger.Info("DecidePermit: decision applied",
		"permit_id", permitID,
		"status", permit.Status,
		"decided_by", dto.DecidedBy)

	h.WriteJSON(w, http.StatusOK, permit)
}

func (h *Handler) GetPermit(w http.ResponseWriter, r *http.Request) {
	permitID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid permit ID")
		return
	}

	permit, err := h.Service.GetPermit(permitID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	notifications, err := h.Notifications.ListForPermit(permitID)
	if err != nil {
		h.Logger.Error("GetPermit: failed to load notifications", "error", err, "permit_id", permitID)
		notifications = []NotificationRecord{}
	}

	h.WriteJSON(w, http.StatusOK, PermitDetailResponse{
		Permit:        permit,
		Notifications: notifications,
	})
}

func (h *Handler) ListPermits(w http.ResponseWriter, r *http.Request) {
	q := ListQuery{
		Status: r.URL.Query().Get("status"),
		Limit:  15,
		Offset: 0,
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			q.Limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			q.Offset = o
		}
	}

	var err error
	if q.FromDate, err = parseDateParam(r, "from_date"); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid from_date, expected YYYY-MM-DD")
		return
	}
	if q.ToDate, err = parseDateParam(r, "to_date"); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid to_date, expected YYYY-MM-DD")
		return
	}

	permits, stats, err := h.Service.ListPermits(q)
	if err != nil {
		h.Logger.Error("ListPermits: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list permits")
		return
	}

	h.WriteJSON(w, http.StatusOK, PermitsResponse{
		Permits: permits,
		Stats:   stats,
		Limit:   q.Limit,
		Offset:  q.Offset,
	})
}

func (h *Handler) ExportPermits(w http.ResponseWriter, r *http.Request) {
	var q ExportQuery
	var err error

	if q.FromDate, err = parseDateParam(r, "from_date"); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid from_date, expected YYYY-MM-DD")
		return
	}
	if q.ToDate, err = parseDateParam(r, "to_date"); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid to_date, expected YYYY-MM-DD")
		return
	}

	records, err := h.Service.ExportPermits(q)
	if err != nil {
		h.Logger.Error("ExportPermits: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to export permits")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExportFilename(time.Now())))
	w.WriteHeader(http.StatusOK)

	if err := WriteCSV(w, records); err != nil {
		h.Logger.Error("ExportPermits: failed to stream CSV", "error", err)
	}
}

func parseDateParam(r *http.Request, name string) (*time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
