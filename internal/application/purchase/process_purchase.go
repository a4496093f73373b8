package purchase

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"transaction-risk-engine/internal/application/dto"
	"transaction-risk-engine/internal/domain/purchase"
	"transaction-risk-engine/internal/domain/risk"
	"transaction-risk-engine/internal/pkg/metrics"
)

// ProcessPurchaseUseCase is the main ingestion flow: it assigns the purchase
// an id and timestamp, obtains a risk verdict, and records the purchase in
// both the repository and the user's history. The decision engine only reads
// history; appending the processed purchase happens here.
type ProcessPurchaseUseCase struct {
	engine          *risk.DecisionEngine
	history         purchase.HistoryStore
	purchases       purchase.Repository
	verdicts        risk.VerdictRepository
	logger          *zap.Logger
	decisionTimeout time.Duration

	lastID atomic.Int64
}

// NewProcessPurchaseUseCase wires the processing flow. verdicts may be nil
// when no database is configured.
func NewProcessPurchaseUseCase(
	engine *risk.DecisionEngine,
	history purchase.HistoryStore,
	purchases purchase.Repository,
	verdicts risk.VerdictRepository,
	logger *zap.Logger,
	decisionTimeout time.Duration,
) *ProcessPurchaseUseCase {
	return &ProcessPurchaseUseCase{
		engine:          engine,
		history:         history,
		purchases:       purchases,
		verdicts:        verdicts,
		logger:          logger,
		decisionTimeout: decisionTimeout,
	}
}

// Execute processes one purchase end to end and returns it with its verdict.
func (uc *ProcessPurchaseUseCase) Execute(ctx context.Context, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	p, err := req.ToPurchase()
	if err != nil {
		return nil, err
	}
	p.ID = uc.lastID.Add(1)
	p.Timestamp = time.Now().UTC()

	decideCtx, cancel := context.WithTimeout(ctx, uc.decisionTimeout)
	verdict, err := uc.engine.Decide(decideCtx, p)
	cancel()
	if err != nil {
		return nil, err
	}

	metrics.ObserveDecision(verdict)

	if err := uc.history.Append(ctx, *p); err != nil {
		uc.logger.Warn("failed to append purchase to history",
			zap.Int64("purchase_id", p.ID),
			zap.Int64("user_id", p.UserID),
			zap.Error(err))
	}

	if err := uc.purchases.Save(ctx, p); err != nil {
		uc.logger.Warn("failed to save purchase",
			zap.Int64("purchase_id", p.ID),
			zap.Error(err))
	}

	if uc.verdicts != nil {
		if err := uc.verdicts.Create(ctx, verdict); err != nil {
			uc.logger.Warn("failed to persist verdict",
				zap.String("verdict_id", verdict.ID.String()),
				zap.Int64("purchase_id", p.ID),
				zap.Error(err))
		}
	}

	return &dto.PurchaseResponse{Purchase: p, Verdict: verdict}, nil
}

// GetPurchase retrieves a processed purchase by id.
func (uc *ProcessPurchaseUseCase) GetPurchase(ctx context.Context, id int64) (*purchase.Purchase, error) {
	return uc.purchases.GetByID(ctx, id)
}
