package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/freelance-market/backend/internal/apperr"
	"github.com/freelance-market/backend/internal/models"
)

// WalletService exposes the spendable balance attached to each identity.
// External deposit settlement (the on-chain side) is out of scope; Deposit
// credits the internal ledger directly.
type WalletService struct {
	users UserStore
	audit AuditLogger
	log   *zap.Logger
}

func NewWalletService(users UserStore, audit AuditLogger, log *zap.Logger) *WalletService {
	return &WalletService{users: users, audit: audit, log: log}
}

func (s *WalletService) Balance(ctx context.Context, address string) (*models.User, error) {
	return s.users.GetByAddress(ctx, address)
}

func (s *WalletService) Deposit(ctx context.Context, address string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: deposit amount must be positive", apperr.ErrValidation)
	}

	u, err := s.users.GetByAddress(ctx, address)
	if err != nil {
		return 0, err
	}

	balance, err := s.users.Credit(ctx, u.ID, amount)
	if err != nil {
		return 0, err
	}

	_ = s.audit.Log(ctx, models.AuditLog{
		ActorUserID: &u.ID,
		ActorType:   "user",
		Action:      "wallet_deposit",
		EntityType:  "user",
		EntityID:    &u.ID,
		Meta:        map[string]any{"amount": amount},
	})

	s.log.Info("wallet credited", zap.String("user_id", u.ID.String()), zap.Int64("amount", amount))
	return balance, nil
}
