package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/freelance-market/backend/internal/apperr"
	"github.com/freelance-market/backend/internal/events"
	"github.com/freelance-market/backend/internal/metrics"
	"github.com/freelance-market/backend/internal/models"
	"github.com/freelance-market/backend/internal/rbac"
)

// RegistryService is the identity registry: it binds a wallet address to a
// display name and a declared role, once.
type RegistryService struct {
	users     UserStore
	audit     AuditLogger
	publisher events.Publisher
	log       *zap.Logger
}

func NewRegistryService(users UserStore, audit AuditLogger, publisher events.Publisher, log *zap.Logger) *RegistryService {
	return &RegistryService{users: users, audit: audit, publisher: publisher, log: log}
}

// Register creates the identity record for the calling address. The role is
// immutable afterwards; re-registration fails AlreadyExists.
func (s *RegistryService) Register(ctx context.Context, address, name, role string) (user *models.User, err error) {
	defer func() { metrics.Observe("register_user", err) }()

	if !rbac.IsValidRole(role) {
		return nil, fmt.Errorf("%w: role must be %q or %q", apperr.ErrValidation, rbac.RoleClient, rbac.RoleFreelancer)
	}

	u := &models.User{Address: address, Name: name, Role: role}
	if err = u.Validate(); err != nil {
		return nil, err
	}

	if err = s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	_ = s.audit.Log(ctx, models.AuditLog{
		ActorUserID: &u.ID,
		ActorType:   "user",
		Action:      "user_registered",
		EntityType:  "user",
		EntityID:    &u.ID,
		Meta:        map[string]any{"role": u.Role},
	})
	_ = s.publisher.Publish(ctx, events.StreamJob, events.Event{
		Type:    events.EventUserRegistered,
		Payload: map[string]any{"user_id": u.ID.String(), "role": u.Role},
	})

	s.log.Info("user registered", zap.String("user_id", u.ID.String()), zap.String("role", u.Role))
	return u, nil
}

// Profile returns the caller's own identity record.
func (s *RegistryService) Profile(ctx context.Context, address string) (*models.User, error) {
	return s.users.GetByAddress(ctx, address)
}
