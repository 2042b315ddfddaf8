package utils

const ShortSlashDateLayout = "2006/01/02"
const ShortDashDateLayout = "2006-01-02"

// Asset classes a transaction can be summarized under.
const (
	AssetClassEquity    = "Equity"
	AssetClassDebt      = "Debt"
	AssetClassAlternate = "Alternate"
)

// Spreadsheet columns required by the ledger import.
const (
	ColumnProduct    = "Product"
	ColumnAssetClass = "Asset Class"
	ColumnDate       = "Date"
	ColumnAmount     = "Amount"
	ColumnUnits      = "Units"
)

// RequiredLedgerColumns lists the import header in template order.
var RequiredLedgerColumns = []string{
	ColumnProduct,
	ColumnAssetClass,
	ColumnDate,
	ColumnAmount,
	ColumnUnits,
}

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
