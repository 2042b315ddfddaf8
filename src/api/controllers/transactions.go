package controllers

import (
	"context"
	"io"

	"advisor/src/models"
	"advisor/src/repositories"
	"advisor/src/schemas"
	"advisor/src/services"

	"github.com/xuri/excelize/v2"
)

type TransactionsControllerI interface {
	ImportTransactions(ctx context.Context, user *models.User, file io.Reader) (*schemas.ImportResponse, error)
	GetTransactions(ctx context.Context, user *models.User) (*schemas.TransactionsResponse, error)
	GetSummary(ctx context.Context, user *models.User) (*schemas.SummaryResponse, error)
	GenerateTemplate(ctx context.Context) (*excelize.File, error)
}

type TransactionsController struct {
	TransactionRepo repositories.TransactionRepository
	Importer        services.TransactionImportServiceI
	Summarizer      services.SummaryServiceI
	Spreadsheets    services.SpreadsheetServiceI
}

func NewTransactionsController(
	transactionRepo repositories.TransactionRepository,
	importer services.TransactionImportServiceI,
	summarizer services.SummaryServiceI,
	spreadsheets services.SpreadsheetServiceI,
) *TransactionsController {
	return &TransactionsController{
		TransactionRepo: transactionRepo,
		Importer:        importer,
		Summarizer:      summarizer,
		Spreadsheets:    spreadsheets,
	}
}

func (c *TransactionsController) ImportTransactions(ctx context.Context, user *models.User, file io.Reader) (*schemas.ImportResponse, error) {
	result, err := c.Importer.Import(ctx, user.ARNNumber, file)
	if err != nil {
		return nil, err
	}
	return &schemas.ImportResponse{Success: services.ImportSuccessMessage, User: result.UserARN}, nil
}

func (c *TransactionsController) GetTransactions(ctx context.Context, user *models.User) (*schemas.TransactionsResponse, error) {
	transactions, err := c.TransactionRepo.GetByUserARN(ctx, user.ARNNumber)
	if err != nil {
		return nil, err
	}

	response := &schemas.TransactionsResponse{Success: make([]schemas.TransactionResponse, 0, len(transactions))}
	for _, t := range transactions {
		response.Success = append(response.Success, schemas.TransactionResponse{
			ID:                t.ID.String(),
			User:              t.UserARN,
			Product:           t.Product,
			AssetClass:        t.AssetClass,
			DateOfTransaction: t.DateOfTransaction,
			Units:             t.Units.StringFixed(4),
			Amount:            t.Amount.StringFixed(4),
		})
	}
	return response, nil
}

func (c *TransactionsController) GetSummary(ctx context.Context, user *models.User) (*schemas.SummaryResponse, error) {
	totals, err := c.Summarizer.Summarize(ctx, user.ARNNumber)
	if err != nil {
		return nil, err
	}

	summary := make(schemas.FinancialYearSummary, 0, len(totals))
	for _, total := range totals {
		summary = append(summary, schemas.FinancialYearEntry{
			FinancialYear: total.FinancialYear,
			Totals: schemas.AssetClassTotals{
				Equity:    total.Equity.InexactFloat64(),
				Debt:      total.Debt.InexactFloat64(),
				Alternate: total.Alternate.InexactFloat64(),
			},
		})
	}
	return &schemas.SummaryResponse{Success: summary}, nil
}

func (c *TransactionsController) GenerateTemplate(_ context.Context) (*excelize.File, error) {
	return c.Spreadsheets.Template()
}
