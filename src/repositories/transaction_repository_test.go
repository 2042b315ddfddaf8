package repositories_test

import (
	"context"
	"testing"
	"time"

	"advisor/src/database/testdb"
	"advisor/src/models"
	"advisor/src/repositories"
	"advisor/src/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUser(t *testing.T, repo repositories.UserRepository, arn int64, email string) *models.User {
	t.Helper()
	user := &models.User{ARNNumber: arn, Email: email, FirstName: "Test", Password: "hash", IsActive: true}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestTransactionRepository(t *testing.T) {
	db := testdb.SetupTestDB(t)
	repo := repositories.NewTransactionRepository(db)
	user := createUser(t, repositories.NewUserRepository(db), 54321, "user@example.com")
	ctx := context.Background()
	date := time.Date(2024, 1, 23, 0, 0, 0, 0, utils.IST)

	t.Run("Upsert creates a new transaction", func(t *testing.T) {
		err := repo.Upsert(ctx, &models.Transaction{
			UserARN:           user.ARNNumber,
			Product:           "PRODUCT__1",
			AssetClass:        "Equity",
			DateOfTransaction: date,
			Units:             decimal.NewFromInt(10),
			Amount:            decimal.NewFromInt(1000),
		})
		require.NoError(t, err)

		transactions, err := repo.GetByUserARN(ctx, user.ARNNumber)
		require.NoError(t, err)
		require.Len(t, transactions, 1)
		assert.Equal(t, "PRODUCT__1", transactions[0].Product)
		assert.True(t, decimal.NewFromInt(1000).Equal(transactions[0].Amount))
	})

	t.Run("Upsert on the same key updates in place", func(t *testing.T) {
		err := repo.Upsert(ctx, &models.Transaction{
			UserARN:           user.ARNNumber,
			Product:           "PRODUCT__1",
			AssetClass:        "Debt",
			DateOfTransaction: date,
			Units:             decimal.NewFromInt(12),
			Amount:            decimal.NewFromInt(2000),
		})
		require.NoError(t, err)

		stored := testdb.FindTransactions(t, db, user.ARNNumber, "PRODUCT__1", date)
		require.Len(t, stored, 1)
		assert.Equal(t, "Debt", stored[0].AssetClass)
		assert.True(t, decimal.NewFromInt(12).Equal(stored[0].Units))
		assert.True(t, decimal.NewFromInt(2000).Equal(stored[0].Amount))
	})

	t.Run("Different date is a different transaction", func(t *testing.T) {
		err := repo.Upsert(ctx, &models.Transaction{
			UserARN:           user.ARNNumber,
			Product:           "PRODUCT__1",
			AssetClass:        "Equity",
			DateOfTransaction: date.AddDate(0, 0, 1),
			Units:             decimal.NewFromInt(1),
			Amount:            decimal.NewFromInt(10),
		})
		require.NoError(t, err)

		transactions, err := repo.GetByUserARN(ctx, user.ARNNumber)
		require.NoError(t, err)
		assert.Len(t, transactions, 2)
	})

	t.Run("GetByUserARN for user without transactions", func(t *testing.T) {
		transactions, err := repo.GetByUserARN(ctx, 99999)
		require.NoError(t, err)
		assert.Empty(t, transactions)
	})
}
