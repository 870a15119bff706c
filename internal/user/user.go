package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/permit-management/internal"
)

const (
	PermissionDecidePermits = "decide_permits"
	PermissionAdmin         = "admin"
)

// User is an HR or admin account that can act on permits. Employees never
// log in; they are directory records, not users.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository defines the read side needed for authorization checks.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	HasPermission(ctx context.Context, userID int64, permission string) (bool, error)
}

// PermissionPolicy allows a decision only from an active user holding the
// decide_permits permission (or admin).
type PermissionPolicy struct {
	repo   Repository
	logger *slog.Logger
}

func NewPermissionPolicy(repo Repository, logger *slog.Logger) *PermissionPolicy {
	return &PermissionPolicy{
		repo:   repo,
		logger: logger,
	}
}

func (p *PermissionPolicy) CanDecide(ctx context.Context, deciderID int64) error {
	u, err := p.repo.GetByID(ctx, deciderID)
	if err != nil {
		p.logger.Warn("decision attempted by unknown user", "user_id", deciderID)
		return internal.ErrDecisionDenied
	}

	if !u.IsActive {
		p.logger.Warn("decision attempted by inactive user", "user_id", deciderID)
		return internal.ErrDecisionDenied
	}

	for _, perm := range []string{PermissionDecidePermits, PermissionAdmin} {
		ok, err := p.repo.HasPermission(ctx, deciderID, perm)
		if err != nil {
			p.logger.Error("permission check failed", "user_id", deciderID, "permission", perm, "error", err)
			return internal.NewInternalError("permission check failed", err)
		}
		if ok {
			return nil
		}
	}

	p.logger.Warn("decision attempted without permission", "user_id", deciderID)
	return internal.ErrDecisionDenied
}

// AllowAllPolicy skips authorization entirely. Meant for deployments that
// put the service behind their own gateway-level auth.
type AllowAllPolicy struct{}

func (AllowAllPolicy) CanDecide(ctx context.Context, deciderID int64) error {
	return nil
}
