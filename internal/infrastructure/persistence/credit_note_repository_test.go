package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gemsuite/backend/internal/domain/billing"
	"github.com/gemsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockCreditNoteRepository creates a GormCreditNoteRepository with a mocked SQL connection
func newMockCreditNoteRepository(t *testing.T) (*GormCreditNoteRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormCreditNoteRepository(gormDB), mock, mockDB
}

func TestGormCreditNoteRepository_FindByIDForTenant(t *testing.T) {
	t.Run("finds existing credit note with items", func(t *testing.T) {
		repo, mock, mockDB := newMockCreditNoteRepository(t)
		defer mockDB.Close()

		noteID := uuid.New()
		tenantID := uuid.New()
		itemID := uuid.New()

		noteRows := sqlmock.NewRows([]string{"id", "tenant_id", "credit_note_number", "return_reason", "status", "grand_total"}).
			AddRow(noteID, tenantID, "CN/2509/00001", "defective", "pending", decimal.NewFromInt(1180))

		itemRows := sqlmock.NewRows([]string{"id", "credit_note_id", "description", "quantity", "total_amount"}).
			AddRow(itemID, noteID, "Gold Ring 22K", decimal.NewFromInt(1), decimal.NewFromInt(1180))

		mock.ExpectQuery(`SELECT \* FROM "credit_notes" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, noteID, 1).
			WillReturnRows(noteRows)
		mock.ExpectQuery(`SELECT \* FROM "credit_note_items" WHERE "credit_note_items"\."credit_note_id" = \$1`).
			WithArgs(noteID).
			WillReturnRows(itemRows)

		note, err := repo.FindByIDForTenant(context.Background(), tenantID, noteID)

		assert.NoError(t, err)
		require.NotNil(t, note)
		assert.Equal(t, noteID, note.ID)
		assert.Equal(t, "CN/2509/00001", note.CreditNoteNumber)
		assert.Equal(t, billing.CreditNoteStatusPending, note.Status)
		require.Len(t, note.Items, 1)
		assert.Equal(t, "Gold Ring 22K", note.Items[0].Description)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing credit note", func(t *testing.T) {
		repo, mock, mockDB := newMockCreditNoteRepository(t)
		defer mockDB.Close()

		noteID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "credit_notes" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, noteID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		note, err := repo.FindByIDForTenant(context.Background(), tenantID, noteID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Nil(t, note)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCreditNoteRepository_FindAllForTenant(t *testing.T) {
	t.Run("filters by status and paginates", func(t *testing.T) {
		repo, mock, mockDB := newMockCreditNoteRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		noteID := uuid.New()
		status := billing.CreditNoteStatusApproved

		countRows := sqlmock.NewRows([]string{"count"}).AddRow(1)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "credit_notes" WHERE tenant_id = \$1 AND status = \$2`).
			WithArgs(tenantID, "approved").
			WillReturnRows(countRows)

		noteRows := sqlmock.NewRows([]string{"id", "tenant_id", "credit_note_number", "status"}).
			AddRow(noteID, tenantID, "CN/2509/00002", "approved")
		mock.ExpectQuery(`SELECT \* FROM "credit_notes" WHERE tenant_id = \$1 AND status = \$2 ORDER BY created_at DESC LIMIT .*`).
			WithArgs(tenantID, "approved", 20).
			WillReturnRows(noteRows)
		mock.ExpectQuery(`SELECT \* FROM "credit_note_items" WHERE "credit_note_items"\."credit_note_id" = \$1`).
			WithArgs(noteID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "credit_note_id"}))

		notes, total, err := repo.FindAllForTenant(context.Background(), tenantID, billing.CreditNoteFilter{
			Status:   &status,
			Page:     1,
			PageSize: 20,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, notes, 1)
		assert.Equal(t, "CN/2509/00002", notes[0].CreditNoteNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies date range filters", func(t *testing.T) {
		repo, mock, mockDB := newMockCreditNoteRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		from := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 9, 30, 23, 59, 59, 0, time.UTC)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "credit_notes" WHERE tenant_id = \$1 AND created_at >= \$2 AND created_at <= \$3`).
			WithArgs(tenantID, from, to).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT \* FROM "credit_notes" WHERE tenant_id = \$1 AND created_at >= \$2 AND created_at <= \$3 ORDER BY created_at DESC`).
			WithArgs(tenantID, from, to).
			WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id"}))

		notes, total, err := repo.FindAllForTenant(context.Background(), tenantID, billing.CreditNoteFilter{
			From: &from,
			To:   &to,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, notes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCreditNoteRepository_CreditedQuantityForInvoiceItem(t *testing.T) {
	t.Run("sums quantities across non-cancelled notes", func(t *testing.T) {
		repo, mock, mockDB := newMockCreditNoteRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		invoiceItemID := uuid.New()

		mock.ExpectQuery(`SELECT SUM\(credit_note_items\.quantity\) FROM "credit_note_items" JOIN credit_notes ON credit_notes\.id = credit_note_items\.credit_note_id WHERE credit_notes\.tenant_id = \$1 AND credit_note_items\.original_invoice_item_id = \$2 AND credit_notes\.status <> \$3`).
			WithArgs(tenantID, invoiceItemID, "cancelled").
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("3.000"))

		qty, err := repo.CreditedQuantityForInvoiceItem(context.Background(), tenantID, invoiceItemID)

		assert.NoError(t, err)
		assert.True(t, qty.Equal(decimal.NewFromInt(3)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns zero when nothing credited", func(t *testing.T) {
		repo, mock, mockDB := newMockCreditNoteRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		invoiceItemID := uuid.New()

		mock.ExpectQuery(`SELECT SUM\(credit_note_items\.quantity\) FROM "credit_note_items"`).
			WithArgs(tenantID, invoiceItemID, "cancelled").
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(nil))

		qty, err := repo.CreditedQuantityForInvoiceItem(context.Background(), tenantID, invoiceItemID)

		assert.NoError(t, err)
		assert.True(t, qty.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCreditNoteRepository_GenerateCreditNoteNumber(t *testing.T) {
	t.Run("formats allocated number as CN/YYMM/NNNNN", func(t *testing.T) {
		repo, mock, mockDB := newMockCreditNoteRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		period := time.Now().Format("0601")

		mock.ExpectQuery(`INSERT INTO document_number_series`).
			WithArgs(tenantID, "CN", period, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"last_number"}).AddRow(42))

		number, err := repo.GenerateCreditNoteNumber(context.Background(), tenantID)

		assert.NoError(t, err)
		assert.Equal(t, "CN/"+period+"/00042", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
