package schemas

import (
	"bytes"
	"encoding/json"
	"time"
)

type TransactionResponse struct {
	ID                string    `json:"id"`
	User              int64     `json:"user"`
	Product           string    `json:"product"`
	AssetClass        string    `json:"asset_class"`
	DateOfTransaction time.Time `json:"date_of_transaction"`
	Units             string    `json:"units"`
	Amount            string    `json:"amount"`
}

type TransactionsResponse struct {
	Success []TransactionResponse `json:"success"`
}

type ImportResponse struct {
	Success string `json:"Success"`
	User    int64  `json:"user"`
}

type AssetClassTotals struct {
	Equity    float64 `json:"Equity"`
	Debt      float64 `json:"Debt"`
	Alternate float64 `json:"Alternate"`
}

type FinancialYearEntry struct {
	FinancialYear string
	Totals        AssetClassTotals
}

// FinancialYearSummary serializes as a JSON object whose keys keep the slice
// order, so a newest-first slice stays newest-first on the wire.
type FinancialYearSummary []FinancialYearEntry

func (s FinancialYearSummary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.FinancialYear)
		if err != nil {
			return nil, err
		}
		totals, err := json.Marshal(entry.Totals)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(totals)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type SummaryResponse struct {
	Success FinancialYearSummary `json:"success"`
}
