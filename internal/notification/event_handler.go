package notification

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/permit-management/internal/core/events"
	"github.com/frahmantamala/permit-management/internal/employee"
	"github.com/frahmantamala/permit-management/internal/permit"
)

// PermitReader loads the permit a lifecycle event refers to.
type PermitReader interface {
	GetPermit(id int64) (*permit.Permit, error)
}

// EmployeeReader resolves the permit owner's contact details.
type EmployeeReader interface {
	GetEmployee(id int64) (*employee.Employee, error)
}

// EventHandler bridges permit lifecycle events to notification dispatch.
// Handler errors only surface when the notification record itself cannot
// be written; a delivery that fails at the gateway is recorded and done.
type EventHandler struct {
	dispatcher *Dispatcher
	permits    PermitReader
	employees  EmployeeReader
	logger     *slog.Logger
}

func NewEventHandler(dispatcher *Dispatcher, permits PermitReader, employees EmployeeReader, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		dispatcher: dispatcher,
		permits:    permits,
		employees:  employees,
		logger:     logger,
	}
}

// RegisterHandlers subscribes the notification side-channel to the bus.
func (h *EventHandler) RegisterHandlers(bus *events.EventBus) {
	bus.Subscribe(events.EventTypePermitSubmitted, h.HandlePermitSubmitted)
	bus.Subscribe(events.EventTypePermitDecided, h.HandlePermitDecided)
}

func (h *EventHandler) HandlePermitSubmitted(ctx context.Context, event events.Event) error {
	submitted, ok := event.(*events.PermitSubmittedEvent)
	if !ok {
		h.logger.Error("unexpected event payload", "event_type", event.EventType())
		return nil
	}

	p, emp, err := h.load(submitted.PermitID)
	if err != nil {
		return err
	}

	if _, err := h.dispatcher.NotifyHR(ctx, p, emp); err != nil {
		return err
	}
	return nil
}

func (h *EventHandler) HandlePermitDecided(ctx context.Context, event events.Event) error {
	decided, ok := event.(*events.PermitDecidedEvent)
	if !ok {
		h.logger.Error("unexpected event payload", "event_type", event.EventType())
		return nil
	}

	p, emp, err := h.load(decided.PermitID)
	if err != nil {
		return err
	}

	if _, err := h.dispatcher.NotifyEmployee(ctx, p, emp); err != nil {
		return err
	}
	return nil
}

func (h *EventHandler) load(permitID int64) (*permit.Permit, *employee.Employee, error) {
	p, err := h.permits.GetPermit(permitID)
	if err != nil {
		h.logger.Error("cannot load permit for notification", "permit_id", permitID, "error", err)
		return nil, nil, err
	}

	emp, err := h.employees.GetEmployee(p.EmployeeID)
	if err != nil {
		h.logger.Error("cannot load employee for notification",
			"permit_id", permitID,
			"employee_id", p.EmployeeID,
			"error", err)
		return nil, nil, err
	}

	return p, emp, nil
}
