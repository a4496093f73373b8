package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"transaction-risk-engine/internal/domain/risk"
)

// VerdictModel is the persistence shape of a risk verdict. Factor results are
// stored as a JSON document rather than a join table; they are only ever read
// back whole.
type VerdictModel struct {
	ID            string    `gorm:"type:uuid;primaryKey"`
	PurchaseID    int64     `gorm:"index;not null"`
	UserID        int64     `gorm:"index;not null"`
	Fraud         bool      `gorm:"index;not null"`
	Factors       string    `gorm:"type:jsonb"`
	FiredCount    int       `gorm:"not null"`
	FirstPurchase bool      `gorm:"not null"`
	Fallback      bool      `gorm:"not null"`
	ProcessedAt   time.Time `gorm:"index;not null"`
	LatencyMs     int64     `gorm:"not null"`
}

// TableName sets the table for gorm.
func (VerdictModel) TableName() string {
	return "risk_verdicts"
}

// VerdictRepository persists verdicts in Postgres.
type VerdictRepository struct {
	db *gorm.DB
}

// NewVerdictRepository creates a verdict repository on an established client.
func NewVerdictRepository(client *Client) *VerdictRepository {
	return &VerdictRepository{db: client.db}
}

// Create stores a verdict.
func (r *VerdictRepository) Create(ctx context.Context, v *risk.Verdict) error {
	model, err := toModel(v)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("create verdict %s: %w", v.ID, err)
	}
	return nil
}

// GetByID retrieves a verdict by its identifier.
func (r *VerdictRepository) GetByID(ctx context.Context, id string) (*risk.Verdict, error) {
	var model VerdictModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, risk.ErrVerdictNotFound
		}
		return nil, fmt.Errorf("read verdict %s: %w", id, err)
	}
	return toDomain(&model)
}

// GetByPurchaseID retrieves the verdict recorded for a purchase.
func (r *VerdictRepository) GetByPurchaseID(ctx context.Context, purchaseID int64) (*risk.Verdict, error) {
	var model VerdictModel
	err := r.db.WithContext(ctx).First(&model, "purchase_id = ?", purchaseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, risk.ErrVerdictNotFound
		}
		return nil, fmt.Errorf("read verdict for purchase %d: %w", purchaseID, err)
	}
	return toDomain(&model)
}

// ListByUserID returns a user's verdicts, newest first.
func (r *VerdictRepository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]risk.Verdict, error) {
	var models []VerdictModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("processed_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list verdicts for user %d: %w", userID, err)
	}

	verdicts := make([]risk.Verdict, 0, len(models))
	for i := range models {
		v, err := toDomain(&models[i])
		if err != nil {
			return nil, err
		}
		verdicts = append(verdicts, *v)
	}
	return verdicts, nil
}

// CountFraudulent counts a user's fraudulent verdicts since the given time.
func (r *VerdictRepository) CountFraudulent(ctx context.Context, userID int64, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&VerdictModel{}).
		Where("user_id = ? AND fraud = ? AND processed_at >= ?", userID, true, since).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count fraudulent verdicts for user %d: %w", userID, err)
	}
	return count, nil
}

func toModel(v *risk.Verdict) (*VerdictModel, error) {
	factors, err := json.Marshal(v.Factors)
	if err != nil {
		return nil, fmt.Errorf("encode verdict factors: %w", err)
	}
	return &VerdictModel{
		ID:            v.ID.String(),
		PurchaseID:    v.PurchaseID,
		UserID:        v.UserID,
		Fraud:         v.Fraud,
		Factors:       string(factors),
		FiredCount:    v.FiredCount,
		FirstPurchase: v.FirstPurchase,
		Fallback:      v.Fallback,
		ProcessedAt:   v.ProcessedAt,
		LatencyMs:     v.LatencyMs,
	}, nil
}

func toDomain(m *VerdictModel) (*risk.Verdict, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, fmt.Errorf("parse verdict id %q: %w", m.ID, err)
	}

	var factors []risk.RuleResult
	if m.Factors != "" {
		if err := json.Unmarshal([]byte(m.Factors), &factors); err != nil {
			return nil, fmt.Errorf("decode verdict factors: %w", err)
		}
	}

	return &risk.Verdict{
		ID:            id,
		PurchaseID:    m.PurchaseID,
		UserID:        m.UserID,
		Fraud:         m.Fraud,
		Factors:       factors,
		FiredCount:    m.FiredCount,
		FirstPurchase: m.FirstPurchase,
		Fallback:      m.Fallback,
		ProcessedAt:   m.ProcessedAt,
		LatencyMs:     m.LatencyMs,
	}, nil
}
