package risk

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"transaction-risk-engine/internal/application/dto"
	"transaction-risk-engine/internal/domain/risk"
	"transaction-risk-engine/internal/pkg/metrics"
)

// AnalyzePurchaseUseCase runs risk decisions without recording the purchase.
// It backs the standalone analyze endpoints used by batch review tooling.
type AnalyzePurchaseUseCase struct {
	engine          *risk.DecisionEngine
	verdicts        risk.VerdictRepository
	logger          *zap.Logger
	decisionTimeout time.Duration
}

// NewAnalyzePurchaseUseCase wires the use case. verdicts may be nil when no
// database is configured; verdicts are then not persisted.
func NewAnalyzePurchaseUseCase(
	engine *risk.DecisionEngine,
	verdicts risk.VerdictRepository,
	logger *zap.Logger,
	decisionTimeout time.Duration,
) *AnalyzePurchaseUseCase {
	return &AnalyzePurchaseUseCase{
		engine:          engine,
		verdicts:        verdicts,
		logger:          logger,
		decisionTimeout: decisionTimeout,
	}
}

// Execute analyzes one purchase and returns its verdict.
func (uc *AnalyzePurchaseUseCase) Execute(ctx context.Context, req dto.AnalyzePurchaseRequest) (*risk.Verdict, error) {
	p, err := req.ToPurchase()
	if err != nil {
		return nil, err
	}

	decideCtx, cancel := context.WithTimeout(ctx, uc.decisionTimeout)
	defer cancel()

	verdict, err := uc.engine.Decide(decideCtx, p)
	if err != nil {
		return nil, err
	}

	metrics.ObserveDecision(verdict)
	uc.record(ctx, verdict)

	return verdict, nil
}

// ExecuteBatch analyzes each purchase concurrently and aggregates a summary.
// One failing purchase fails the batch.
func (uc *AnalyzePurchaseUseCase) ExecuteBatch(ctx context.Context, req dto.BatchAnalyzeRequest) (*dto.BatchAnalyzeResponse, error) {
	verdicts := make([]*risk.Verdict, len(req.Purchases))

	g, gctx := errgroup.WithContext(ctx)
	for i, item := range req.Purchases {
		g.Go(func() error {
			v, err := uc.Execute(gctx, item)
			if err != nil {
				return err
			}
			verdicts[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := dto.BatchSummary{Total: len(verdicts)}
	for _, v := range verdicts {
		if v.Fraud {
			summary.Fraudulent++
		} else {
			summary.Legitimate++
		}
	}

	return &dto.BatchAnalyzeResponse{Verdicts: verdicts, Summary: summary}, nil
}

// GetVerdict retrieves a stored verdict by id.
func (uc *AnalyzePurchaseUseCase) GetVerdict(ctx context.Context, id string) (*risk.Verdict, error) {
	if uc.verdicts == nil {
		return nil, risk.ErrVerdictNotFound
	}
	return uc.verdicts.GetByID(ctx, id)
}

// ListUserVerdicts returns a page of a user's verdicts, newest first.
func (uc *AnalyzePurchaseUseCase) ListUserVerdicts(ctx context.Context, userID int64, limit, offset int) ([]risk.Verdict, error) {
	if uc.verdicts == nil {
		return nil, risk.ErrVerdictNotFound
	}
	return uc.verdicts.ListByUserID(ctx, userID, limit, offset)
}

// VerdictsEnabled reports whether verdict persistence is configured.
func (uc *AnalyzePurchaseUseCase) VerdictsEnabled() bool {
	return uc.verdicts != nil
}

// record persists the verdict best-effort. A storage failure must never undo
// a decision that was already made.
func (uc *AnalyzePurchaseUseCase) record(ctx context.Context, v *risk.Verdict) {
	if uc.verdicts == nil {
		return
	}
	if err := uc.verdicts.Create(ctx, v); err != nil {
		uc.logger.Warn("failed to persist verdict",
			zap.String("verdict_id", v.ID.String()),
			zap.Int64("purchase_id", v.PurchaseID),
			zap.Error(err))
	}
}
