package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"advisor/src/models"
	"advisor/src/repositories"
	"advisor/src/utils"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const ImportSuccessMessage = "Data uploaded for the user."

// MissingColumnsError is returned before any row is processed when the sheet
// header lacks one of the required ledger columns.
type MissingColumnsError struct {
	Required []string
	Missing  []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("Missing required columns: %s", strings.Join(e.Missing, ", "))
}

// ImportError aborts an import. Row is the 1-based sheet row (the header is
// row 1) or 0 when the failure is not tied to a row. Rows written before the
// failure stay written.
type ImportError struct {
	Row int
	Err error
}

func (e *ImportError) Error() string {
	if e.Row == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

type ImportResult struct {
	UserARN int64
	Rows    int
}

type TransactionImportServiceI interface {
	Import(ctx context.Context, userARN int64, file io.Reader) (*ImportResult, error)
}

type TransactionImportService struct {
	transactionRepo repositories.TransactionRepository
	spreadsheets    SpreadsheetServiceI
}

func NewTransactionImportService(transactionRepo repositories.TransactionRepository, spreadsheets SpreadsheetServiceI) *TransactionImportService {
	return &TransactionImportService{
		transactionRepo: transactionRepo,
		spreadsheets:    spreadsheets,
	}
}

// Import upserts every row of the ledger in sheet order, keyed on
// (user, product, date). The first failing row stops the import.
func (s *TransactionImportService) Import(ctx context.Context, userARN int64, file io.Reader) (*ImportResult, error) {
	logger := utils.LoggerFromContext(ctx).WithField("arn", userARN)

	sheet, err := s.spreadsheets.ReadLedger(file)
	if err != nil {
		logger.WithError(err).Warn("Unreadable ledger upload")
		return nil, &ImportError{Err: err}
	}

	if missing := missingColumns(sheet.Columns); len(missing) > 0 {
		return nil, &MissingColumnsError{
			Required: append([]string(nil), utils.RequiredLedgerColumns...),
			Missing:  missing,
		}
	}

	for i, record := range sheet.Records {
		row := i + 2
		transaction, err := transactionFromRecord(userARN, record)
		if err != nil {
			logger.WithFields(logrus.Fields{"row": row}).WithError(err).Warn("Invalid ledger row")
			return nil, &ImportError{Row: row, Err: err}
		}
		if err := s.transactionRepo.Upsert(ctx, transaction); err != nil {
			logger.WithFields(logrus.Fields{"row": row}).WithError(err).Warn("Failed to store ledger row")
			return nil, &ImportError{Row: row, Err: fmt.Errorf("failed to store transaction: %w", err)}
		}
	}

	logger.WithField("rows", len(sheet.Records)).Info("Ledger imported")
	return &ImportResult{UserARN: userARN, Rows: len(sheet.Records)}, nil
}

func missingColumns(columns []string) []string {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	var missing []string
	for _, required := range utils.RequiredLedgerColumns {
		if !present[required] {
			missing = append(missing, required)
		}
	}
	return missing
}

func transactionFromRecord(userARN int64, record map[string]string) (*models.Transaction, error) {
	product := strings.TrimSpace(record[utils.ColumnProduct])
	if product == "" {
		return nil, fmt.Errorf("%s is empty", utils.ColumnProduct)
	}
	if len(product) > 100 {
		return nil, fmt.Errorf("%s is longer than 100 characters", utils.ColumnProduct)
	}

	date, err := ParseLedgerCellDate(record[utils.ColumnDate])
	if err != nil {
		return nil, err
	}

	units, err := parseDecimal(utils.ColumnUnits, record[utils.ColumnUnits])
	if err != nil {
		return nil, err
	}
	amount, err := parseDecimal(utils.ColumnAmount, record[utils.ColumnAmount])
	if err != nil {
		return nil, err
	}

	return &models.Transaction{
		UserARN:           userARN,
		Product:           product,
		AssetClass:        strings.TrimSpace(record[utils.ColumnAssetClass]),
		DateOfTransaction: date,
		Units:             units,
		Amount:            amount,
	}, nil
}

func parseDecimal(column, value string) (decimal.Decimal, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if value == "" {
		return decimal.Zero, fmt.Errorf("%s is empty", column)
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s %q is not a number", column, value)
	}
	return d.Round(4), nil
}
