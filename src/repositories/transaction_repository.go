package repositories

import (
	"context"

	"advisor/src/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransactionRepository interface {
	GetByUserARN(ctx context.Context, userARN int64) ([]models.Transaction, error)
	Upsert(ctx context.Context, t *models.Transaction) error
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) GetByUserARN(ctx context.Context, userARN int64) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.WithContext(ctx).
		Where("user_arn = ?", userARN).
		Order("date_of_transaction, product").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// Upsert inserts the transaction or, when the user already holds one for the
// same product and date, overwrites its asset class, units and amount. The
// conflict target is the unique index so the write is a single statement.
func (r *transactionRepo) Upsert(ctx context.Context, t *models.Transaction) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_arn"},
			{Name: "product"},
			{Name: "date_of_transaction"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"asset_class", "units", "amount", "updated_at"}),
	}).Create(t).Error
}
