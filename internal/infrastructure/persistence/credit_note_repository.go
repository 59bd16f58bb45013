package persistence

import (
	"context"
	"errors"

	"github.com/gemsuite/backend/internal/domain/billing"
	"github.com/gemsuite/backend/internal/domain/shared"
	"github.com/gemsuite/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCreditNoteRepository implements billing.CreditNoteRepository using GORM
type GormCreditNoteRepository struct {
	db     *gorm.DB
	series *NumberSeriesRepository
}

// NewGormCreditNoteRepository creates a new GormCreditNoteRepository
func NewGormCreditNoteRepository(db *gorm.DB) *GormCreditNoteRepository {
	return &GormCreditNoteRepository{
		db:     db,
		series: NewNumberSeriesRepository(db),
	}
}

// FindByIDForTenant finds a credit note by ID within a tenant
func (r *GormCreditNoteRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.CreditNote, error) {
	var model models.CreditNoteModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists credit notes for a tenant, newest first
func (r *GormCreditNoteRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter billing.CreditNoteFilter) ([]billing.CreditNote, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.CreditNoteModel{}).
		Where("tenant_id = ?", tenantID)

	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.SortBy, CreditNoteSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.SortOrder)

	var rows []models.CreditNoteModel
	if err := query.
		Preload("Items").
		Order(sortField + " " + sortOrder).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	notes := make([]billing.CreditNote, len(rows))
	for i := range rows {
		notes[i] = *rows[i].ToDomain()
	}
	return notes, total, nil
}

// Save creates or updates a credit note and its items
func (r *GormCreditNoteRepository) Save(ctx context.Context, note *billing.CreditNote) error {
	var model models.CreditNoteModel
	model.FromDomain(note)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Save the note without auto-saving associations
		if err := tx.Omit("Items").Save(&model).Error; err != nil {
			return err
		}

		// Handle items: delete removed items and save/update existing ones
		currentItemIDs := make([]uuid.UUID, len(model.Items))
		for i, item := range model.Items {
			currentItemIDs[i] = item.ID
		}

		if len(currentItemIDs) > 0 {
			if err := tx.Where("credit_note_id = ? AND id NOT IN ?", model.ID, currentItemIDs).
				Delete(&models.CreditNoteItemModel{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("credit_note_id = ?", model.ID).
				Delete(&models.CreditNoteItemModel{}).Error; err != nil {
				return err
			}
		}

		for i := range model.Items {
			model.Items[i].CreditNoteID = model.ID
			if err := tx.Save(&model.Items[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// CreditedQuantityForInvoiceItem sums the quantity already credited against
// an invoice line across all non-cancelled credit notes
func (r *GormCreditNoteRepository) CreditedQuantityForInvoiceItem(ctx context.Context, tenantID, invoiceItemID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.CreditNoteItemModel{}).
		Select("SUM(credit_note_items.quantity)").
		Joins("JOIN credit_notes ON credit_notes.id = credit_note_items.credit_note_id").
		Where("credit_notes.tenant_id = ?", tenantID).
		Where("credit_note_items.original_invoice_item_id = ?", invoiceItemID).
		Where("credit_notes.status <> ?", string(billing.CreditNoteStatusCancelled)).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// GenerateCreditNoteNumber allocates the next CN/YYMM/NNNNN number
func (r *GormCreditNoteRepository) GenerateCreditNoteNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	return r.series.Next(ctx, tenantID, "CN")
}

// Ensure GormCreditNoteRepository implements CreditNoteRepository
var _ billing.CreditNoteRepository = (*GormCreditNoteRepository)(nil)
