package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/freelance-market/backend/internal/auth"
	"github.com/freelance-market/backend/internal/config"
	"github.com/freelance-market/backend/internal/http/dto"
	"github.com/freelance-market/backend/internal/repositories"
)

// AuthHandler runs the wallet challenge flow: the caller requests a
// one-shot payload for their address, signs it with the wallet key, and
// exchanges the signature for a bearer token.
type AuthHandler struct {
	challenges *repositories.ChallengeRepo
	cfg        *config.Config
	log        *zap.Logger
}

func NewAuthHandler(challenges *repositories.ChallengeRepo, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{challenges: challenges, cfg: cfg, log: log}
}

// Challenge issues a fresh signing payload for a wallet address.
// POST /auth/challenge
func (h *AuthHandler) Challenge(c *fiber.Ctx) error {
	var req dto.ChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.Address == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "address is required"})
	}
	if _, err := auth.DecodeAddress(req.Address); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid wallet address"})
	}

	challenge, err := h.challenges.Create(c.Context(), req.Address, h.cfg.ChallengeTTL)
	if err != nil {
		h.log.Error("failed to create auth challenge", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}

	return c.JSON(dto.ChallengeResponse{
		Payload:   challenge.Payload,
		ExpiresAt: challenge.ExpiresAt.Format(time.RFC3339),
	})
}

// Verify consumes the challenge, checks the ed25519 signature and returns
// a JWT bound to the address. The payload is single-use.
// POST /auth/verify
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var req dto.VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.Address == "" || req.Payload == "" || req.Signature == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "address, payload and signature are required"})
	}

	if _, err := h.challenges.Consume(c.Context(), req.Address, req.Payload); err != nil {
		h.log.Debug("challenge consume failed", zap.String("address", req.Address), zap.Error(err))
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "unknown or expired challenge"})
	}

	if err := auth.VerifyChallenge(req.Address, req.Payload, req.Signature); err != nil {
		h.log.Debug("signature verification failed", zap.String("address", req.Address), zap.Error(err))
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "signature verification failed"})
	}

	token, err := auth.GenerateJWT(h.cfg.JWTSecret, req.Address, h.cfg.JWTExpiration)
	if err != nil {
		h.log.Error("failed to generate jwt", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}

	return c.JSON(dto.AuthResponse{Token: token})
}
