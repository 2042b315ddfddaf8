package services

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"advisor/src/utils"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

const templateSheet = "Transactions"

var ErrEmptyWorkbook = errors.New("workbook has no sheets")

// LedgerSheet is the first sheet of an uploaded workbook. Records are keyed by
// header name and keep the sheet's row order.
type LedgerSheet struct {
	Columns []string
	Records []map[string]string
}

type SpreadsheetServiceI interface {
	ReadLedger(r io.Reader) (*LedgerSheet, error)
	Template() (*excelize.File, error)
}

type SpreadsheetService struct{}

func NewSpreadsheetService() *SpreadsheetService {
	return &SpreadsheetService{}
}

// ReadLedger reads raw cell values of the first sheet. Blank rows are dropped
// and short rows are padded to the header width before being loaded into a
// dataframe.
func (s *SpreadsheetService) ReadLedger(r io.Reader) (*LedgerSheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("unable to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return &LedgerSheet{}, nil
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.TrimSpace(name)
	}
	if len(header) == 0 {
		return &LedgerSheet{}, nil
	}

	columns := make([][]string, len(header))
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		for i := range header {
			value := ""
			if i < len(row) {
				value = strings.TrimSpace(row[i])
			}
			columns[i] = append(columns[i], value)
		}
	}

	df := buildDataFrame(header, columns)
	if df.Err != nil {
		return nil, fmt.Errorf("unable to load spreadsheet rows: %w", df.Err)
	}

	// Records renders elements as text, so a cell holding "NaN" keeps its
	// value instead of reading as missing.
	sheet := &LedgerSheet{Columns: header}
	for _, row := range df.Records()[1:] {
		record := make(map[string]string, len(header))
		for i, value := range row {
			record[header[i]] = value
		}
		sheet.Records = append(sheet.Records, record)
	}
	return sheet, nil
}

func buildDataFrame(header []string, columns [][]string) dataframe.DataFrame {
	cols := make([]series.Series, len(header))
	for i, name := range header {
		values := columns[i]
		if values == nil {
			values = []string{}
		}
		cols[i] = series.New(values, series.String, name)
	}
	return dataframe.New(cols...)
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Template builds an empty workbook carrying the required ledger header.
func (s *SpreadsheetService) Template() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", templateSheet); err != nil {
		f.Close()
		return nil, err
	}
	for i, column := range utils.RequiredLedgerColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellValue(templateSheet, cell, column); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// earliestSerialYear bounds Excel serial dates. A bare number that converts
// to an earlier year, such as "2024" (1905-07-16), is not a ledger date.
const earliestSerialYear = 1950

// ParseLedgerCellDate accepts either a raw Excel serial date or one of the
// textual layouts understood by utils.ParseLedgerDate. Serial dates carry no
// zone and are read as IST wall-clock time.
func ParseLedgerCellDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("date is empty")
	}
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if serial < 1 {
			return time.Time{}, fmt.Errorf("invalid date %q", value)
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
		}
		if t.Year() < earliestSerialYear {
			return time.Time{}, fmt.Errorf("invalid date %q: serial resolves to %s", value, t.Format(utils.ShortDashDateLayout))
		}
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, utils.IST), nil
	}
	return utils.ParseLedgerDate(value)
}
