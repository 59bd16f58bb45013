package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentNumberSeriesModel holds one monotonic counter per tenant, document
// type and period. Numbers are allocated with an atomic upsert so two
// concurrent requests never observe the same value.
type DocumentNumberSeriesModel struct {
	TenantID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocType    string    `gorm:"type:varchar(10);primaryKey"`
	Period     string    `gorm:"type:varchar(4);primaryKey"` // YYMM
	LastNumber int64     `gorm:"not null;default:0"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for DocumentNumberSeriesModel
func (DocumentNumberSeriesModel) TableName() string {
	return "document_number_series"
}
