package services_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"advisor/src/database/testdb"
	"advisor/src/models"
	"advisor/src/repositories"
	"advisor/src/services"
	"advisor/src/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupImporter(t *testing.T) (*services.TransactionImportService, repositories.TransactionRepository, *gorm.DB, int64) {
	t.Helper()
	db := testdb.SetupTestDB(t)
	user := &models.User{ARNNumber: 54321, Email: "user@example.com", FirstName: "Test", Password: "hash", IsActive: true}
	require.NoError(t, repositories.NewUserRepository(db).Create(context.Background(), user))

	repo := repositories.NewTransactionRepository(db)
	return services.NewTransactionImportService(repo, services.NewSpreadsheetService()), repo, db, user.ARNNumber
}

func TestImportTransactions(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2024, 1, 23, 0, 0, 0, 0, utils.IST)

	t.Run("Import creates one transaction per row", func(t *testing.T) {
		importer, repo, db, arn := setupImporter(t)
		file := buildWorkbook(t,
			ledgerHeader(),
			[]interface{}{"PRODUCT__1", "Equity", "2024-01-23", 1000, 10},
			[]interface{}{"PRODUCT__2", "Debt", "2024-01-23", 250.5, 2.25},
		)

		result, err := importer.Import(ctx, arn, file)
		require.NoError(t, err)
		assert.Equal(t, arn, result.UserARN)
		assert.Equal(t, 2, result.Rows)

		transactions, err := repo.GetByUserARN(ctx, arn)
		require.NoError(t, err)
		require.Len(t, transactions, 2)

		stored := testdb.FindTransactions(t, db, arn, "PRODUCT__2", date)
		require.Len(t, stored, 1)
		assert.Equal(t, "Debt", stored[0].AssetClass)
		assert.True(t, decimal.RequireFromString("250.5").Equal(stored[0].Amount))
		assert.True(t, decimal.RequireFromString("2.25").Equal(stored[0].Units))
	})

	t.Run("Importing the same file twice is idempotent", func(t *testing.T) {
		importer, repo, _, arn := setupImporter(t)
		rows := [][]interface{}{
			ledgerHeader(),
			{"PRODUCT__1", "Equity", "2024-01-23", 1000, 10},
			{"PRODUCT__1", "Equity", "2024-04-01", 500, 5},
		}

		_, err := importer.Import(ctx, arn, buildWorkbook(t, rows...))
		require.NoError(t, err)
		first, err := repo.GetByUserARN(ctx, arn)
		require.NoError(t, err)

		_, err = importer.Import(ctx, arn, buildWorkbook(t, rows...))
		require.NoError(t, err)
		second, err := repo.GetByUserARN(ctx, arn)
		require.NoError(t, err)

		require.Len(t, second, len(first))
		for i := range first {
			assert.Equal(t, first[i].ID, second[i].ID)
			assert.True(t, first[i].Amount.Equal(second[i].Amount))
		}
	})

	t.Run("Re-import overwrites instead of duplicating", func(t *testing.T) {
		importer, _, db, arn := setupImporter(t)

		_, err := importer.Import(ctx, arn, buildWorkbook(t,
			ledgerHeader(),
			[]interface{}{"PRODUCT__1", "Equity", "2024-01-23", 1000, 10},
		))
		require.NoError(t, err)

		_, err = importer.Import(ctx, arn, buildWorkbook(t,
			ledgerHeader(),
			[]interface{}{"PRODUCT__1", "Alternate", "2024-01-23", 2000, 20},
		))
		require.NoError(t, err)

		stored := testdb.FindTransactions(t, db, arn, "PRODUCT__1", date)
		require.Len(t, stored, 1)
		assert.Equal(t, "Alternate", stored[0].AssetClass)
		assert.True(t, decimal.NewFromInt(2000).Equal(stored[0].Amount))
		assert.True(t, decimal.NewFromInt(20).Equal(stored[0].Units))
	})

	t.Run("Later duplicate rows win", func(t *testing.T) {
		importer, repo, _, arn := setupImporter(t)

		_, err := importer.Import(ctx, arn, buildWorkbook(t,
			ledgerHeader(),
			[]interface{}{"PRODUCT__1", "Equity", "2024-01-23", 1000, 10},
			[]interface{}{"PRODUCT__1", "Debt", "2024-01-23", 3000, 30},
		))
		require.NoError(t, err)

		transactions, err := repo.GetByUserARN(ctx, arn)
		require.NoError(t, err)
		require.Len(t, transactions, 1)
		assert.Equal(t, "Debt", transactions[0].AssetClass)
		assert.True(t, decimal.NewFromInt(3000).Equal(transactions[0].Amount))
	})

	t.Run("Missing column writes nothing", func(t *testing.T) {
		importer, repo, _, arn := setupImporter(t)

		_, err := importer.Import(ctx, arn, buildWorkbook(t,
			[]interface{}{"Product", "Asset Class", "Date", "Amount"},
			[]interface{}{"PRODUCT__1", "Equity", "2024-01-23", 1000},
		))
		var missing *services.MissingColumnsError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, []string{"Units"}, missing.Missing)
		assert.Equal(t, utils.RequiredLedgerColumns, missing.Required)

		transactions, err := repo.GetByUserARN(ctx, arn)
		require.NoError(t, err)
		assert.Empty(t, transactions)
	})

	t.Run("Malformed row stops the import and keeps earlier rows", func(t *testing.T) {
		importer, repo, _, arn := setupImporter(t)

		_, err := importer.Import(ctx, arn, buildWorkbook(t,
			ledgerHeader(),
			[]interface{}{"PRODUCT__1", "Equity", "2024-01-23", 1000, 10},
			[]interface{}{"PRODUCT__2", "Debt", "2024-01-23", "lots", 10},
			[]interface{}{"PRODUCT__3", "Debt", "2024-01-23", 10, 1},
		))
		var importErr *services.ImportError
		require.True(t, errors.As(err, &importErr))
		assert.Equal(t, 3, importErr.Row)
		assert.Contains(t, importErr.Error(), "Amount")

		transactions, err := repo.GetByUserARN(ctx, arn)
		require.NoError(t, err)
		require.Len(t, transactions, 1)
		assert.Equal(t, "PRODUCT__1", transactions[0].Product)
	})

	t.Run("Excel serial dates are read in IST", func(t *testing.T) {
		importer, _, db, arn := setupImporter(t)

		_, err := importer.Import(ctx, arn, buildWorkbook(t,
			ledgerHeader(),
			[]interface{}{"PRODUCT__1", "Equity", 45314, 1000, 10},
		))
		require.NoError(t, err)

		assert.Len(t, testdb.FindTransactions(t, db, arn, "PRODUCT__1", date), 1)
	})

	t.Run("Bare year in the Date column is rejected", func(t *testing.T) {
		importer, repo, _, arn := setupImporter(t)

		_, err := importer.Import(ctx, arn, buildWorkbook(t,
			ledgerHeader(),
			[]interface{}{"PRODUCT__1", "Equity", "2024-01-23", 1000, 10},
			[]interface{}{"PRODUCT__2", "Equity", "2024", 1000, 10},
			[]interface{}{"PRODUCT__3", "Equity", 2024, 1000, 10},
		))
		var importErr *services.ImportError
		require.True(t, errors.As(err, &importErr))
		assert.Equal(t, 3, importErr.Row)
		assert.Contains(t, importErr.Error(), "2024")

		transactions, err := repo.GetByUserARN(ctx, arn)
		require.NoError(t, err)
		require.Len(t, transactions, 1)
		assert.Equal(t, "PRODUCT__1", transactions[0].Product)
	})

	t.Run("Unreadable upload", func(t *testing.T) {
		importer, _, _, arn := setupImporter(t)

		_, err := importer.Import(ctx, arn, bytes.NewBufferString("not a workbook"))
		var importErr *services.ImportError
		assert.True(t, errors.As(err, &importErr))
	})
}
