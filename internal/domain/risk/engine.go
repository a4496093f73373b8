package risk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"transaction-risk-engine/internal/domain/purchase"
)

// Classifier predicts a label for an encoded feature vector.
type Classifier interface {
	Predict(features []float64) (Label, error)
	Trained() bool
}

// FeatureEncoder turns a purchase and its historical profile into the feature
// vector the classifier was trained on. Training and serving must use the
// same encoder instance or predictions are meaningless.
type FeatureEncoder interface {
	Encode(p purchase.Purchase, profile HistoricalProfile) []float64
}

// Thresholds are the tunable limits of the rule factors.
type Thresholds struct {
	SuspiciousAmount decimal.Decimal
	HighFrequency    float64
	UnusualHourStart int
	UnusualHourEnd   int
}

// DefaultThresholds returns the production defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SuspiciousAmount: decimal.NewFromInt(2000),
		HighFrequency:    0.6,
		UnusualHourStart: 2,
		UnusualHourEnd:   5,
	}
}

const (
	// travelWindow bounds how close together two purchases at different
	// merchants must be before the pair is considered physically implausible.
	travelWindow = 2 * time.Hour

	// unusualPatternCutoff is the profile score above which the pattern
	// factor fires on its own.
	unusualPatternCutoff = 0.7
)

// DecisionEngine produces a fraud verdict for each purchase by combining the
// trained classifier with statistical and behavioral rule factors. It reads
// history but never writes it; recording the processed purchase is the
// caller's responsibility.
type DecisionEngine struct {
	history    purchase.HistoryReader
	analyzer   *HistoryAnalyzer
	encoder    FeatureEncoder
	classifier Classifier
	thresholds Thresholds
	logger     *zap.Logger
}

// NewDecisionEngine wires a decision engine. The classifier must already be
// trained; an engine is never constructed half-ready.
func NewDecisionEngine(
	history purchase.HistoryReader,
	analyzer *HistoryAnalyzer,
	encoder FeatureEncoder,
	classifier Classifier,
	thresholds Thresholds,
	logger *zap.Logger,
) (*DecisionEngine, error) {
	if history == nil {
		return nil, ErrMissingHistoryReader
	}
	if encoder == nil {
		return nil, ErrMissingEncoder
	}
	if classifier == nil {
		return nil, ErrMissingClassifier
	}
	if !classifier.Trained() {
		return nil, ErrClassifierNotTrained
	}
	if analyzer == nil {
		analyzer = NewHistoryAnalyzer()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &DecisionEngine{
		history:    history,
		analyzer:   analyzer,
		encoder:    encoder,
		classifier: classifier,
		thresholds: thresholds,
		logger:     logger,
	}, nil
}

// Ready reports whether the engine can serve decisions.
func (e *DecisionEngine) Ready() bool {
	return e.classifier != nil && e.classifier.Trained()
}

// Decide evaluates a purchase and returns its verdict. The purchase's Fraud
// flag is set to match the verdict. Inference failures degrade to the
// amount-only fallback rather than surfacing to the caller; only purchase
// validation and history infrastructure errors propagate.
func (e *DecisionEngine) Decide(ctx context.Context, p *purchase.Purchase) (*Verdict, error) {
	if p == nil {
		return nil, ErrNilPurchase
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	history, err := e.history.Get(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			e.logger.Warn("history lookup timed out, using fallback verdict",
				zap.Int64("user_id", p.UserID),
				zap.Int64("purchase_id", p.ID))
			return e.finish(p, e.fallbackVerdict(p), start), nil
		}
		return nil, fmt.Errorf("%w: %v", ErrHistoryLookup, err)
	}

	if len(history) == 0 {
		return e.finish(p, e.firstPurchaseVerdict(p), start), nil
	}

	verdict, err := e.evaluate(history, p)
	if err != nil {
		e.logger.Error("risk evaluation failed, using fallback verdict",
			zap.Int64("user_id", p.UserID),
			zap.Int64("purchase_id", p.ID),
			zap.Error(err))
		verdict = e.fallbackVerdict(p)
	}

	return e.finish(p, verdict, start), nil
}

// evaluate runs the full factor table for an established user. A panic in any
// collaborator is converted to an error so the caller can fall back.
func (e *DecisionEngine) evaluate(history []purchase.Purchase, p *purchase.Purchase) (verdict *Verdict, err error) {
	defer func() {
		if r := recover(); r != nil {
			verdict = nil
			err = fmt.Errorf("risk evaluation panicked: %v", r)
		}
	}()

	profile := e.analyzer.Analyze(history, *p)

	label, err := e.classifier.Predict(e.encoder.Encode(*p, profile))
	if err != nil {
		return nil, fmt.Errorf("classifier prediction: %w", err)
	}

	results := make([]RuleResult, 0, 5)
	for _, rule := range e.rules(history, *p, profile, label) {
		fired, reason := rule.evaluate()
		results = append(results, RuleResult{Factor: rule.factor, Fired: fired, Reason: reason})
	}

	return NewVerdict(p.ID, p.UserID, Fraudulent(results), results), nil
}

type ruleEvaluator struct {
	factor   Factor
	evaluate func() (bool, string)
}

// rules returns the factor table in its fixed evaluation order.
func (e *DecisionEngine) rules(history []purchase.Purchase, p purchase.Purchase, profile HistoricalProfile, label Label) []ruleEvaluator {
	return []ruleEvaluator{
		{FactorClassifier, func() (bool, string) {
			if label == LabelFraudulent {
				return true, "model classified purchase as fraudulent"
			}
			return false, ""
		}},
		{FactorStatisticalSuspicion, func() (bool, string) {
			return e.statisticallySuspicious(p, profile)
		}},
		{FactorHighFrequency, func() (bool, string) {
			if profile.FrequencyScore > e.thresholds.HighFrequency {
				return true, fmt.Sprintf("frequency score %.2f exceeds %.2f", profile.FrequencyScore, e.thresholds.HighFrequency)
			}
			return false, ""
		}},
		{FactorImpossibleTravel, func() (bool, string) {
			return e.impossibleTravel(history, p)
		}},
		{FactorUnusualPattern, func() (bool, string) {
			if profile.UnusualPatternScore > unusualPatternCutoff {
				return true, fmt.Sprintf("unusual pattern score %.2f exceeds %.2f", profile.UnusualPatternScore, unusualPatternCutoff)
			}
			return false, ""
		}},
	}
}

// statisticallySuspicious fires when at least two of three statistical
// signals hold: amount beyond two standard deviations above the mean, an hour
// the user rarely transacts in, and a high trailing frequency.
func (e *DecisionEngine) statisticallySuspicious(p purchase.Purchase, profile HistoricalProfile) (bool, string) {
	signals := 0

	if p.Amount.InexactFloat64() > profile.AverageAmount+2*profile.StdDeviation {
		signals++
	}
	if profile.TypicalHours[p.Hour()] < 2 {
		signals++
	}
	if profile.FrequencyScore > e.thresholds.HighFrequency {
		signals++
	}

	if signals >= 2 {
		return true, fmt.Sprintf("%d of 3 statistical signals present", signals)
	}
	return false, ""
}

// impossibleTravel fires when the previous purchase was minutes to a couple
// of hours ago at a different merchant, which a cardholder cannot plausibly
// reach in person.
func (e *DecisionEngine) impossibleTravel(history []purchase.Purchase, p purchase.Purchase) (bool, string) {
	last := history[len(history)-1]

	elapsed := p.Timestamp.Sub(last.Timestamp)
	if elapsed >= 0 && elapsed < travelWindow && last.MerchantName != p.MerchantName {
		return true, fmt.Sprintf("previous purchase at %q only %s earlier", last.MerchantName, elapsed)
	}
	return false, ""
}

// firstPurchaseVerdict handles users with no history. With nothing to profile
// the classifier is skipped; a single conservative signal is enough to flag.
func (e *DecisionEngine) firstPurchaseVerdict(p *purchase.Purchase) *Verdict {
	results := []RuleResult{
		{Factor: FactorHighAmount},
		{Factor: FactorUnusualHour},
	}

	if p.Amount.GreaterThan(e.thresholds.SuspiciousAmount) {
		results[0].Fired = true
		results[0].Reason = fmt.Sprintf("first purchase of %s exceeds %s", p.Amount, e.thresholds.SuspiciousAmount)
	}
	hour := p.Hour()
	if hour >= e.thresholds.UnusualHourStart && hour <= e.thresholds.UnusualHourEnd {
		results[1].Fired = true
		results[1].Reason = fmt.Sprintf("first purchase at hour %d", hour)
	}

	verdict := NewVerdict(p.ID, p.UserID, CountFired(results) > 0, results)
	verdict.FirstPurchase = true
	return verdict
}

// fallbackVerdict is the degraded path used when evaluation cannot complete.
// It flags on amount alone and is always marked so downstream consumers can
// tell it apart from a full decision.
func (e *DecisionEngine) fallbackVerdict(p *purchase.Purchase) *Verdict {
	fired := p.Amount.GreaterThan(e.thresholds.SuspiciousAmount)

	result := RuleResult{Factor: FactorHighAmount, Fired: fired}
	if fired {
		result.Reason = fmt.Sprintf("amount %s exceeds %s", p.Amount, e.thresholds.SuspiciousAmount)
	}

	verdict := NewVerdict(p.ID, p.UserID, fired, []RuleResult{result})
	verdict.Fallback = true
	return verdict
}

func (e *DecisionEngine) finish(p *purchase.Purchase, v *Verdict, start time.Time) *Verdict {
	p.Fraud = v.Fraud
	v.LatencyMs = time.Since(start).Milliseconds()

	e.logger.Info("risk decision",
		zap.Int64("purchase_id", p.ID),
		zap.Int64("user_id", p.UserID),
		zap.Bool("fraud", v.Fraud),
		zap.Int("fired_factors", v.FiredCount),
		zap.Bool("first_purchase", v.FirstPurchase),
		zap.Bool("fallback", v.Fallback),
		zap.Int64("latency_ms", v.LatencyMs))

	return v
}
