package payroll

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"

	payrollerrors "capbot/internal/payroll/errors"
	"capbot/internal/shared/brformat"
	"capbot/internal/shared/textnorm"
)

var requiredColumns = []string{
	"employee_id",
	"name",
	"competency",
	"base_salary",
	"bonus",
	"benefits_vt_vr",
	"other_earnings",
	"deductions_inss",
	"deductions_irrf",
	"other_deductions",
	"net_pay",
	"payment_date",
}

// LoadRecords reads the payroll table from a CSV or XLSX file. Any row that
// fails numeric or date coercion aborts the whole load.
func LoadRecords(path string) ([]PayrollRecord, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx":
		rows, err = readXLSX(path)
	default:
		err = fmt.Errorf("unsupported data source extension %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, payrollerrors.DataLoad(err)
	}

	records, err := rowsToRecords(rows)
	if err != nil {
		return nil, payrollerrors.DataLoad(err)
	}
	return records, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Keep every column as raw text, coercion happens per field so a bad
	// cell can be reported with its line number.
	df := dataframe.ReadCSV(f, dataframe.DetectTypes(false), dataframe.WithLazyQuotes(true))
	if df.Err != nil {
		return nil, df.Err
	}
	return df.Records(), nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %q has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// rowsToRecords converts header+data rows, deriving the normalized name key,
// the canonical competency and the 1-based source line (header is line 1).
func rowsToRecords(rows [][]string) ([]PayrollRecord, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("data source is empty")
	}

	colIdx := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		colIdx[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	records := make([]PayrollRecord, 0, len(rows)-1)
	seen := make(map[string]int)

	for i, row := range rows[1:] {
		line := i + 2

		cell := func(col string) string {
			idx := colIdx[col]
			if idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		competency, ok := ParseCompetency(cell("competency"))
		if !ok {
			return nil, fmt.Errorf("line %d: invalid competency %q", line, cell("competency"))
		}

		paymentDate, err := brformat.ParseISODate(cell("payment_date"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec := PayrollRecord{
			EmployeeID:  cell("employee_id"),
			Name:        cell("name"),
			Competency:  competency,
			PaymentDate: paymentDate,
			nameKey:     textnorm.NameKey(cell("name")),
			sourceLine:  line,
		}

		for col, dst := range map[string]*int64{
			"base_salary":      &rec.BaseSalary,
			"bonus":            &rec.Bonus,
			"benefits_vt_vr":   &rec.BenefitsVTVR,
			"other_earnings":   &rec.OtherEarnings,
			"deductions_inss":  &rec.DeductionsINSS,
			"deductions_irrf":  &rec.DeductionsIRRF,
			"other_deductions": &rec.OtherDeductions,
			"net_pay":          &rec.NetPay,
		} {
			v, err := brformat.ParseAmount(cell(col))
			if err != nil {
				return nil, fmt.Errorf("line %d: column %s: invalid amount %q", line, col, cell(col))
			}
			*dst = v
		}

		key := rec.EmployeeID + "|" + rec.Competency
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("line %d: duplicate of line %d for (%s, %s)", line, prev, rec.EmployeeID, rec.Competency)
		}
		seen[key] = line

		records = append(records, rec)
	}

	return records, nil
}
