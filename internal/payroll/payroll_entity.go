package payroll

import (
	"time"

	"capbot/internal/shared/brformat"
)

// PayrollRecord is one employee's pay for one competency, loaded in bulk at
// startup and immutable afterwards. Money fields are centavos to avoid
// floating-point drift in sums and comparisons.
type PayrollRecord struct {
	EmployeeID      string
	Name            string
	Competency      string // canonical YYYY-MM
	BaseSalary      int64
	Bonus           int64
	BenefitsVTVR    int64
	OtherEarnings   int64
	DeductionsINSS  int64
	DeductionsIRRF  int64
	OtherDeductions int64
	NetPay          int64
	PaymentDate     time.Time

	// Derived at load time.
	nameKey    string
	sourceLine int // 1-based position in the source, header is line 1
}

// SourceLine reports where the record came from in the tabular source.
func (r PayrollRecord) SourceLine() int {
	return r.sourceLine
}

// RecordSnapshot is the JSON shape of a record as carried by Evidence and
// the read-only payroll endpoint.
type RecordSnapshot struct {
	EmployeeID      string `json:"employee_id"`
	Name            string `json:"name"`
	Competency      string `json:"competency"`
	BaseSalary      int64  `json:"base_salary"`
	Bonus           int64  `json:"bonus"`
	BenefitsVTVR    int64  `json:"benefits_vt_vr"`
	OtherEarnings   int64  `json:"other_earnings"`
	DeductionsINSS  int64  `json:"deductions_inss"`
	DeductionsIRRF  int64  `json:"deductions_irrf"`
	OtherDeductions int64  `json:"other_deductions"`
	NetPay          int64  `json:"net_pay"`
	PaymentDate     string `json:"payment_date"`
}

// Snapshot copies the record's field values. Evidence must never hold a
// live reference into the store.
func (r PayrollRecord) Snapshot() RecordSnapshot {
	return RecordSnapshot{
		EmployeeID:      r.EmployeeID,
		Name:            r.Name,
		Competency:      r.Competency,
		BaseSalary:      r.BaseSalary,
		Bonus:           r.Bonus,
		BenefitsVTVR:    r.BenefitsVTVR,
		OtherEarnings:   r.OtherEarnings,
		DeductionsINSS:  r.DeductionsINSS,
		DeductionsIRRF:  r.DeductionsIRRF,
		OtherDeductions: r.OtherDeductions,
		NetPay:          r.NetPay,
		PaymentDate:     r.PaymentDate.Format("2006-01-02"),
	}
}

// Evidence points an answer back at the record that justifies it.
// Created per query, never persisted.
type Evidence struct {
	EmployeeID string         `json:"employee_id"`
	Competency string         `json:"competency"`
	RecordData RecordSnapshot `json:"record_data"`
	SourceLine int            `json:"source_line"`
}

// Source is the citation string consumed by prompts and responses.
func (e Evidence) Source() string {
	return e.EmployeeID + ", " + e.Competency
}

func newEvidence(r PayrollRecord) Evidence {
	return Evidence{
		EmployeeID: r.EmployeeID,
		Competency: r.Competency,
		RecordData: r.Snapshot(),
		SourceLine: r.sourceLine,
	}
}

// DeductionType is the closed set of deduction columns a query can ask for.
type DeductionType string

const (
	DeductionINSS DeductionType = "inss"
	DeductionIRRF DeductionType = "irrf"
)

var deductionAccessors = map[DeductionType]func(PayrollRecord) int64{
	DeductionINSS: func(r PayrollRecord) int64 { return r.DeductionsINSS },
	DeductionIRRF: func(r PayrollRecord) int64 { return r.DeductionsIRRF },
}

// FormattedPaymentDate renders the payment date for answers (dd/mm/yyyy).
func (r PayrollRecord) FormattedPaymentDate() string {
	return brformat.DateBR(r.PaymentDate)
}
