package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/freelance-market/backend/internal/http/dto"
	"github.com/freelance-market/backend/internal/middleware"
	"github.com/freelance-market/backend/internal/services"
)

type WalletHandler struct {
	walletService *services.WalletService
	log           *zap.Logger
}

func NewWalletHandler(walletService *services.WalletService, log *zap.Logger) *WalletHandler {
	return &WalletHandler{walletService: walletService, log: log}
}

// GET /me/wallet
func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	user, err := h.walletService.Balance(c.Context(), middleware.GetAddress(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.WalletResponse{
		Address: user.Address,
		Balance: user.Balance,
	}})
}

// Deposit credits the caller's spendable balance.
// POST /me/wallet/deposit
func (h *WalletHandler) Deposit(c *fiber.Ctx) error {
	var req dto.DepositRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	address := middleware.GetAddress(c)
	balance, err := h.walletService.Deposit(c.Context(), address, req.Amount)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.WalletResponse{
		Address: address,
		Balance: balance,
	}})
}
