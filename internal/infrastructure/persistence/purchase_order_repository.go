package persistence

import (
	"context"
	"errors"

	"github.com/gemsuite/backend/internal/domain/procurement"
	"github.com/gemsuite/backend/internal/domain/shared"
	"github.com/gemsuite/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPurchaseOrderRepository implements procurement.PurchaseOrderRepository
// using GORM
type GormPurchaseOrderRepository struct {
	db     *gorm.DB
	series *NumberSeriesRepository
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{
		db:     db,
		series: NewNumberSeriesRepository(db),
	}
}

// FindByIDForTenant finds a purchase order by ID within a tenant
func (r *GormPurchaseOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	var model models.PurchaseOrderModel
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

// FindAllForTenant lists purchase orders for a tenant, newest first
func (r *GormPurchaseOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter procurement.PurchaseOrderFilter) ([]procurement.PurchaseOrder, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.PurchaseOrderModel{}).
		Where("tenant_id = ?", tenantID)

	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.VendorID != nil {
		query = query.Where("vendor_id = ?", *filter.VendorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.SortBy, PurchaseOrderSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.SortOrder)

	var rows []models.PurchaseOrderModel
	if err := query.
		Preload("Items").
		Order(sortField + " " + sortOrder).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]procurement.PurchaseOrder, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, total, nil
}

// Save creates or updates a purchase order and its items
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, po *procurement.PurchaseOrder) error {
	var model models.PurchaseOrderModel
	model.FromDomain(po)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveOrder(tx, &model)
	})
}

// SaveReceipt persists a goods receipt in one transaction: the updated
// order (status and received quantities) together with the new GRN
func (r *GormPurchaseOrderRepository) SaveReceipt(ctx context.Context, po *procurement.PurchaseOrder, grn *procurement.GoodsReceivedNote) error {
	var poModel models.PurchaseOrderModel
	poModel.FromDomain(po)

	var grnModel models.GoodsReceivedNoteModel
	grnModel.FromDomain(grn)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.saveOrder(tx, &poModel); err != nil {
			return err
		}

		if err := tx.Omit("Items").Create(&grnModel).Error; err != nil {
			return err
		}
		for i := range grnModel.Items {
			grnModel.Items[i].GRNID = grnModel.ID
			if err := tx.Create(&grnModel.Items[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// FindGRNsForOrder lists the receipts recorded against an order, oldest first
func (r *GormPurchaseOrderRepository) FindGRNsForOrder(ctx context.Context, tenantID, poID uuid.UUID) ([]procurement.GoodsReceivedNote, error) {
	var rows []models.GoodsReceivedNoteModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND purchase_order_id = ?", tenantID, poID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	grns := make([]procurement.GoodsReceivedNote, len(rows))
	for i := range rows {
		grns[i] = *rows[i].ToDomain()
	}
	return grns, nil
}

// GeneratePONumber allocates the next PO/YYMM/NNNNN number
func (r *GormPurchaseOrderRepository) GeneratePONumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	return r.series.Next(ctx, tenantID, "PO")
}

// GenerateGRNNumber allocates the next GRN/YYMM/NNNNN number
func (r *GormPurchaseOrderRepository) GenerateGRNNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	return r.series.Next(ctx, tenantID, "GRN")
}

// saveOrder saves the order and reconciles its items within a transaction
func (r *GormPurchaseOrderRepository) saveOrder(tx *gorm.DB, model *models.PurchaseOrderModel) error {
	if err := tx.Omit("Items").Save(model).Error; err != nil {
		return err
	}

	currentItemIDs := make([]uuid.UUID, len(model.Items))
	for i, item := range model.Items {
		currentItemIDs[i] = item.ID
	}

	if len(currentItemIDs) > 0 {
		if err := tx.Where("purchase_order_id = ? AND id NOT IN ?", model.ID, currentItemIDs).
			Delete(&models.PurchaseOrderItemModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("purchase_order_id = ?", model.ID).
			Delete(&models.PurchaseOrderItemModel{}).Error; err != nil {
			return err
		}
	}

	for i := range model.Items {
		model.Items[i].PurchaseOrderID = model.ID
		if err := tx.Save(&model.Items[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

// Ensure GormPurchaseOrderRepository implements PurchaseOrderRepository
var _ procurement.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
