package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/freelance-market/backend/internal/config"
	"github.com/freelance-market/backend/internal/db"
	"github.com/freelance-market/backend/internal/metrics"
	"github.com/freelance-market/backend/internal/repositories"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Repos
	escrowRepo := repositories.NewEscrowRepo(pool)
	challengeRepo := repositories.NewChallengeRepo(pool)

	log.Info("worker started")

	// Run jobs on tickers
	reconcileTicker := time.NewTicker(cfg.ReconcileInterval)
	challengeGCTicker := time.NewTicker(cfg.ChallengeGCInterval)
	defer reconcileTicker.Stop()
	defer challengeGCTicker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-reconcileTicker.C:
			runEscrowReconcile(ctx, escrowRepo, log)
		case <-challengeGCTicker.C:
			runChallengeGC(ctx, challengeRepo, log)
		case <-sigCh:
			log.Info("shutting down worker")
			cancel()
			return
		case <-ctx.Done():
			return
		}
	}
}

// runEscrowReconcile sweeps held vaults whose balance drifted from the job
// amount. Drift means a write path bypassed the release transaction, so
// the sweep only reports; it never repairs balances on its own.
func runEscrowReconcile(ctx context.Context, escrowRepo *repositories.EscrowRepo, log *zap.Logger) {
	mismatched, err := escrowRepo.ListMismatched(ctx)
	if err != nil {
		log.Error("escrow reconcile query failed", zap.Error(err))
		return
	}

	for _, m := range mismatched {
		metrics.EscrowMismatches.Inc()
		log.Error("escrow vault balance mismatch",
			zap.String("job_id", m.JobID.String()),
			zap.String("vault", m.Vault),
			zap.Int64("balance", m.Balance),
			zap.Int64("expected", m.Amount),
		)
	}
	if len(mismatched) == 0 {
		log.Debug("escrow reconcile clean")
	}
}

func runChallengeGC(ctx context.Context, challengeRepo *repositories.ChallengeRepo, log *zap.Logger) {
	deleted, err := challengeRepo.DeleteExpired(ctx)
	if err != nil {
		log.Error("challenge cleanup failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		log.Info("expired auth challenges removed", zap.Int64("count", deleted))
	}
}
