package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/freelance-market/backend/internal/apperr"
	"github.com/freelance-market/backend/internal/models"
	"github.com/freelance-market/backend/internal/rbac"
)

// resolveCaller is the authorization guard run by every mutating operation
// before any state changes: it resolves the caller's identity record and
// checks the role grants the permission. An unregistered caller is
// indistinguishable from a wrong-role caller.
func resolveCaller(ctx context.Context, users UserStore, address, permission string) (*models.User, error) {
	u, err := users.GetByAddress(ctx, address)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%w: caller is not registered", apperr.ErrUnauthorized)
		}
		return nil, err
	}
	if !rbac.HasPermission(u.Role, permission) {
		return nil, fmt.Errorf("%w: role %q cannot %s", apperr.ErrUnauthorized, u.Role, permission)
	}
	return u, nil
}
