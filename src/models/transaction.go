package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is one ledger entry. A user holds at most one transaction per
// product and date, enforced by idx_transactions_user_product_date.
type Transaction struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey;column:id"`
	UserARN           int64           `gorm:"column:user_arn;not null;uniqueIndex:idx_transactions_user_product_date,priority:1"`
	Product           string          `gorm:"column:product;size:100;not null;uniqueIndex:idx_transactions_user_product_date,priority:2"`
	AssetClass        string          `gorm:"column:asset_class;size:100;not null"`
	DateOfTransaction time.Time       `gorm:"column:date_of_transaction;not null;uniqueIndex:idx_transactions_user_product_date,priority:3"`
	Units             decimal.Decimal `gorm:"column:units;type:numeric(14,4);not null"`
	Amount            decimal.Decimal `gorm:"column:amount;type:numeric(14,4);not null"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Transaction) TableName() string {
	return "transactions"
}
