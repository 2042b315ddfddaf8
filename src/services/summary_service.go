package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"advisor/src/models"
	"advisor/src/repositories"
	"advisor/src/utils"

	"github.com/shopspring/decimal"
)

// FinancialYearTotals holds the amount summed per asset class for one
// financial year.
type FinancialYearTotals struct {
	FinancialYear string
	Equity        decimal.Decimal
	Debt          decimal.Decimal
	Alternate     decimal.Decimal
}

type SummaryServiceI interface {
	Summarize(ctx context.Context, userARN int64) ([]FinancialYearTotals, error)
}

type SummaryService struct {
	transactionRepo repositories.TransactionRepository
}

func NewSummaryService(transactionRepo repositories.TransactionRepository) *SummaryService {
	return &SummaryService{transactionRepo: transactionRepo}
}

func (s *SummaryService) Summarize(ctx context.Context, userARN int64) ([]FinancialYearTotals, error) {
	transactions, err := s.transactionRepo.GetByUserARN(ctx, userARN)
	if err != nil {
		return nil, err
	}
	return SummarizeTransactions(transactions), nil
}

// SummarizeTransactions buckets transactions by financial year, newest year
// first. Every year holding a transaction gets a bucket; amounts with an
// unrecognized asset class are left out of its totals.
func SummarizeTransactions(transactions []models.Transaction) []FinancialYearTotals {
	buckets := make(map[time.Time]*FinancialYearTotals)
	for _, t := range transactions {
		start := utils.FinancialYearStart(t.DateOfTransaction)
		bucket, exists := buckets[start]
		if !exists {
			bucket = &FinancialYearTotals{FinancialYear: utils.FinancialYearOf(start)}
			buckets[start] = bucket
		}

		class, ok := canonicalAssetClass(t.AssetClass)
		if !ok {
			continue
		}
		switch class {
		case utils.AssetClassEquity:
			bucket.Equity = bucket.Equity.Add(t.Amount)
		case utils.AssetClassDebt:
			bucket.Debt = bucket.Debt.Add(t.Amount)
		case utils.AssetClassAlternate:
			bucket.Alternate = bucket.Alternate.Add(t.Amount)
		}
	}

	totals := make([]FinancialYearTotals, 0, len(buckets))
	for _, bucket := range buckets {
		totals = append(totals, *bucket)
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].FinancialYear > totals[j].FinancialYear
	})
	return totals
}

func canonicalAssetClass(value string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "equity":
		return utils.AssetClassEquity, true
	case "debt":
		return utils.AssetClassDebt, true
	case "alternate":
		return utils.AssetClassAlternate, true
	}
	return "", false
}
