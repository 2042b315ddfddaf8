package utils

import (
	"fmt"
	"strings"
	"time"
)

// IST is the fixed UTC+5:30 zone used for ledger dates and financial years.
var IST = time.FixedZone("IST", 5*60*60+30*60)

// FinancialYearStartMonth is the first month of the Indian financial year.
const FinancialYearStartMonth = time.April

// FinancialYearOf returns the label of the financial year containing t,
// e.g. "FY24-25" for any instant from 2024-04-01 00:00 IST up to but
// excluding 2025-04-01 00:00 IST.
func FinancialYearOf(t time.Time) string {
	local := t.In(IST)
	startYear := local.Year()
	if local.Month() < FinancialYearStartMonth {
		startYear--
	}
	return fmt.Sprintf("FY%02d-%02d", yearSuffix(startYear), yearSuffix(startYear+1))
}

// FinancialYearStart returns 00:00 IST on April 1 of the financial year that
// contains t.
func FinancialYearStart(t time.Time) time.Time {
	local := t.In(IST)
	startYear := local.Year()
	if local.Month() < FinancialYearStartMonth {
		startYear--
	}
	return time.Date(startYear, FinancialYearStartMonth, 1, 0, 0, 0, 0, IST)
}

func yearSuffix(year int) int {
	suffix := year % 100
	if suffix < 0 {
		suffix += 100
	}
	return suffix
}

var ledgerDateLayouts = []string{
	ShortDashDateLayout,
	ShortSlashDateLayout,
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"02-01-2006",
	"02/01/2006",
	"02-01-2006 15:04:05",
	"02/01/2006 15:04:05",
	time.RFC3339,
}

// ParseLedgerDate parses a textual spreadsheet date. Dates without an
// explicit offset are read as IST wall-clock time.
func ParseLedgerDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range ledgerDateLayouts {
		if t, err := time.ParseInLocation(layout, value, IST); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
