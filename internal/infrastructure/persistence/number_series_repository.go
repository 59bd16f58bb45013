package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NumberSeriesRepository allocates gapless document numbers of the form
// TYPE/YYMM/NNNNN (e.g. CN/2509/00001). Each tenant, document type and
// month gets its own counter; the counter restarts at 1 each month.
type NumberSeriesRepository struct {
	db *gorm.DB
}

// NewNumberSeriesRepository creates a new NumberSeriesRepository
func NewNumberSeriesRepository(db *gorm.DB) *NumberSeriesRepository {
	return &NumberSeriesRepository{db: db}
}

// Next allocates the next number for a tenant and document type.
// The allocation is a single atomic upsert, so two concurrent requests
// never observe the same value even across processes.
func (r *NumberSeriesRepository) Next(ctx context.Context, tenantID uuid.UUID, docType string) (string, error) {
	period := time.Now().Format("0601") // YYMM

	var lastNumber int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO document_number_series (tenant_id, doc_type, period, last_number, updated_at)
		VALUES (?, ?, ?, 1, ?)
		ON CONFLICT (tenant_id, doc_type, period)
		DO UPDATE SET last_number = document_number_series.last_number + 1, updated_at = ?
		RETURNING last_number`,
		tenantID, docType, period, time.Now(), time.Now(),
	).Scan(&lastNumber).Error
	if err != nil {
		return "", fmt.Errorf("failed to allocate %s number: %w", docType, err)
	}

	return fmt.Sprintf("%s/%s/%05d", docType, period, lastNumber), nil
}
