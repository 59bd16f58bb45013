package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gemsuite/backend/internal/domain/procurement"
	"github.com/gemsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockPurchaseOrderRepository creates a GormPurchaseOrderRepository with a mocked SQL connection
func newMockPurchaseOrderRepository(t *testing.T) (*GormPurchaseOrderRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormPurchaseOrderRepository(gormDB), mock, mockDB
}

func TestGormPurchaseOrderRepository_FindByIDForTenant(t *testing.T) {
	t.Run("finds existing purchase order with items", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseOrderRepository(t)
		defer mockDB.Close()

		poID := uuid.New()
		tenantID := uuid.New()
		itemID := uuid.New()

		poRows := sqlmock.NewRows([]string{"id", "tenant_id", "po_number", "vendor_name", "status", "total"}).
			AddRow(poID, tenantID, "PO/2509/00001", "Rajesh Gems", "sent", decimal.NewFromInt(50000))

		itemRows := sqlmock.NewRows([]string{"id", "purchase_order_id", "description", "quantity_ordered", "quantity_received", "unit"}).
			AddRow(itemID, poID, "Loose Diamonds 0.5ct", decimal.NewFromInt(10), decimal.NewFromInt(4), "pcs")

		mock.ExpectQuery(`SELECT \* FROM "purchase_orders" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, poID, 1).
			WillReturnRows(poRows)
		mock.ExpectQuery(`SELECT \* FROM "purchase_order_items" WHERE "purchase_order_items"\."purchase_order_id" = \$1`).
			WithArgs(poID).
			WillReturnRows(itemRows)

		po, err := repo.FindByIDForTenant(context.Background(), tenantID, poID)

		assert.NoError(t, err)
		require.NotNil(t, po)
		assert.Equal(t, "PO/2509/00001", po.PONumber)
		assert.Equal(t, procurement.POStatusSent, po.Status)
		require.Len(t, po.Items, 1)
		assert.True(t, po.Items[0].QuantityReceived.Equal(decimal.NewFromInt(4)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing purchase order", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseOrderRepository(t)
		defer mockDB.Close()

		poID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "purchase_orders" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, poID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		po, err := repo.FindByIDForTenant(context.Background(), tenantID, poID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Nil(t, po)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPurchaseOrderRepository_FindAllForTenant(t *testing.T) {
	t.Run("filters by status and vendor", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseOrderRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		vendorID := uuid.New()
		poID := uuid.New()
		status := procurement.POStatusPartial

		mock.ExpectQuery(`SELECT count\(\*\) FROM "purchase_orders" WHERE tenant_id = \$1 AND status = \$2 AND vendor_id = \$3`).
			WithArgs(tenantID, "partial", vendorID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		poRows := sqlmock.NewRows([]string{"id", "tenant_id", "po_number", "vendor_id", "status"}).
			AddRow(poID, tenantID, "PO/2509/00007", vendorID, "partial")
		mock.ExpectQuery(`SELECT \* FROM "purchase_orders" WHERE tenant_id = \$1 AND status = \$2 AND vendor_id = \$3 ORDER BY created_at DESC LIMIT .*`).
			WithArgs(tenantID, "partial", vendorID, 10).
			WillReturnRows(poRows)
		mock.ExpectQuery(`SELECT \* FROM "purchase_order_items" WHERE "purchase_order_items"\."purchase_order_id" = \$1`).
			WithArgs(poID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "purchase_order_id"}))

		orders, total, err := repo.FindAllForTenant(context.Background(), tenantID, procurement.PurchaseOrderFilter{
			Status:   &status,
			VendorID: &vendorID,
			Page:     1,
			PageSize: 10,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, orders, 1)
		assert.Equal(t, "PO/2509/00007", orders[0].PONumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPurchaseOrderRepository_FindGRNsForOrder(t *testing.T) {
	t.Run("lists receipts oldest first", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseOrderRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		poID := uuid.New()
		grnID := uuid.New()

		grnRows := sqlmock.NewRows([]string{"id", "tenant_id", "grn_number", "purchase_order_id", "po_number"}).
			AddRow(grnID, tenantID, "GRN/2509/00001", poID, "PO/2509/00001")
		mock.ExpectQuery(`SELECT \* FROM "goods_received_notes" WHERE tenant_id = \$1 AND purchase_order_id = \$2 ORDER BY created_at ASC`).
			WithArgs(tenantID, poID).
			WillReturnRows(grnRows)
		mock.ExpectQuery(`SELECT \* FROM "grn_items" WHERE "grn_items"\."grn_id" = \$1`).
			WithArgs(grnID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "grn_id"}))

		grns, err := repo.FindGRNsForOrder(context.Background(), tenantID, poID)

		assert.NoError(t, err)
		require.Len(t, grns, 1)
		assert.Equal(t, "GRN/2509/00001", grns[0].GRNNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice when no receipts exist", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseOrderRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		poID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "goods_received_notes" WHERE tenant_id = \$1 AND purchase_order_id = \$2 ORDER BY created_at ASC`).
			WithArgs(tenantID, poID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id"}))

		grns, err := repo.FindGRNsForOrder(context.Background(), tenantID, poID)

		assert.NoError(t, err)
		assert.Empty(t, grns)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPurchaseOrderRepository_GenerateNumbers(t *testing.T) {
	t.Run("allocates PO numbers from the PO series", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseOrderRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		period := time.Now().Format("0601")

		mock.ExpectQuery(`INSERT INTO document_number_series`).
			WithArgs(tenantID, "PO", period, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"last_number"}).AddRow(1))

		number, err := repo.GeneratePONumber(context.Background(), tenantID)

		assert.NoError(t, err)
		assert.Equal(t, "PO/"+period+"/00001", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("allocates GRN numbers from the GRN series", func(t *testing.T) {
		repo, mock, mockDB := newMockPurchaseOrderRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		period := time.Now().Format("0601")

		mock.ExpectQuery(`INSERT INTO document_number_series`).
			WithArgs(tenantID, "GRN", period, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"last_number"}).AddRow(12))

		number, err := repo.GenerateGRNNumber(context.Background(), tenantID)

		assert.NoError(t, err)
		assert.Equal(t, "GRN/"+period+"/00012", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
