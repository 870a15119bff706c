package permit

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/permit-management/internal"
	"github.com/frahmantamala/permit-management/internal/core/events"
	"github.com/frahmantamala/permit-management/internal/employee"
)

// Repository defines the data access methods for permits. DecideIfPending
// is the atomic check-and-set behind the pending -> terminal transition: it
// must only apply the update when the row is still pending and report how
// many rows were touched.
type Repository interface {
	Create(p *Permit) error
	GetByID(id int64) (*Permit, error)
	List(q ListQuery) ([]*Permit, error)
	CountByStatus() (*Stats, error)
	DecideIfPending(id int64, status string, comments *string, decidedBy int64, decidedAt time.Time) (int64, error)
	ListForExport(q ExportQuery) ([]*ExportRecord, error)
}

// EmployeeDirectory is the read-only lookup the lifecycle engine consumes.
type EmployeeDirectory interface {
	LookupByEmployeeID(employeeID string) (*employee.Employee, error)
}

// EventPublisher decouples notification dispatch from the lifecycle
// transition. Events are raised only after the transition is durably
// committed; whether delivery happens on the request path or on a worker
// is the dispatcher's concern.
type EventPublisher interface {
	PublishSync(ctx context.Context, event events.Event) error
}

// Service is the permit lifecycle engine.
type Service struct {
	repo      Repository
	directory EmployeeDirectory
	publisher EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(repo Repository, directory EmployeeDirectory, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Submit validates and persists a new permit in pending status, then raises
// the submitted event so HR gets notified. Delivery outcome never affects
// the submission: once the permit row is committed, the caller gets it back.
func (s *Service) Submit(ctx context.Context, dto SubmitPermitDTO) (*Permit, error) {
	if err := dto.Validate(s.now()); err != nil {
		s.logger.Error("permit validation failed", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}

	emp, err := s.directory.LookupByEmployeeID(dto.EmployeeID)
	if err != nil {
		s.logger.Warn("submit rejected: unknown or inactive employee", "employee_id", dto.EmployeeID)
		return nil, internal.ErrEmployeeNotFound
	}

	permit := &Permit{
		EmployeeID:   emp.ID,
		VehicleType:  dto.VehicleType,
		LicensePlate: dto.LicensePlate,
		UsageStart:   dto.UsageStart,
		UsageEnd:     dto.UsageEnd,
		Purpose:      dto.Purpose,
		Status:       StatusPending,
	}

	if err := s.repo.Create(permit); err != nil {
		s.logger.Error("failed to create permit", "error", err, "employee_id", dto.EmployeeID)
		return nil, internal.NewInternalError("failed to create permit", err)
	}

	s.logger.Info("permit submitted",
		"permit_id", permit.ID,
		"employee_id", emp.EmployeeID,
		"vehicle_type", permit.VehicleType,
		"usage_start", permit.UsageStart)

	s.publish(ctx, events.NewPermitSubmittedEvent(permit.ID, permit.EmployeeID, permit.VehicleType))

	return permit, nil
}

// Decide applies the terminal decision to a pending permit. The transition
// is a conditional update on status; when it touches no rows the permit is
// either missing or already decided, and a second decision attempt always
// fails rather than silently passing.
func (s *Service) Decide(ctx context.Context, permitID int64, dto DecidePermitDTO) (*Permit, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("decision validation failed", "error", err, "permit_id", permitID)
		return nil, err
	}

	decidedAt := s.now()
	affected, err := s.repo.DecideIfPending(permitID, dto.Status, dto.HRComments, dto.DecidedBy, decidedAt)
	if err != nil {
		s.logger.Error("failed to apply decision", "error", err, "permit_id", permitID)
		return nil, internal.NewInternalError("failed to apply decision", err)
	}

	if affected == 0 {
		if _, err := s.repo.GetByID(permitID); err != nil {
			s.logger.Warn("decision on unknown permit", "permit_id", permitID)
			return nil, internal.ErrPermitNotFound
		}
		s.logger.Warn("decision on already-decided permit",
			"permit_id", permitID,
			"decided_by", dto.DecidedBy,
			"attempted_status", dto.Status)
		return nil, internal.ErrInvalidTransition
	}

	permit, err := s.repo.GetByID(permitID)
	if err != nil {
		s.logger.Error("failed to reload permit after decision", "error", err, "permit_id", permitID)
		return nil, internal.NewInternalError("failed to reload permit", err)
	}

	s.logger.Info("permit decided",
		"permit_id", permitID,
		"status", dto.Status,
		"decided_by", dto.DecidedBy)

	s.publish(ctx, events.NewPermitDecidedEvent(permitID, dto.DecidedBy, dto.Status))

	return permit, nil
}

func (s *Service) GetPermit(id int64) (*Permit, error) {
	permit, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Warn("permit not found", "permit_id", id)
		return nil, internal.ErrPermitNotFound
	}
	return permit, nil
}

// ListPermits returns the filtered page together with the global summary
// counts shown on the HR dashboard.
func (s *Service) ListPermits(q ListQuery) ([]*Permit, *Stats, error) {
	permits, err := s.repo.List(q)
	if err != nil {
		s.logger.Error("failed to list permits", "error", err)
		return nil, nil, err
	}

	stats, err := s.repo.CountByStatus()
	if err != nil {
		s.logger.Error("failed to count permits", "error", err)
		return nil, nil, err
	}

	return permits, stats, nil
}

func (s *Service) ExportPermits(q ExportQuery) ([]*ExportRecord, error) {
	records, err := s.repo.ListForExport(q)
	if err != nil {
		s.logger.Error("failed to export permits", "error", err)
		return nil, err
	}
	return records, nil
}

// publish raises a lifecycle event without ever failing the transition:
// subscriber errors are logged and dropped.
func (s *Service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.PublishSync(ctx, event); err != nil {
		s.logger.Error("lifecycle event dispatch failed",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"error", err)
	}
}
