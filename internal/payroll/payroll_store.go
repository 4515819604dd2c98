package payroll

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	payrollerrors "capbot/internal/payroll/errors"
	"capbot/internal/shared/textnorm"
)

// Store holds the payroll table loaded at startup. It is read-only after
// construction, concurrent readers need no locking.
type Store struct {
	records []PayrollRecord
}

func NewStore(records []PayrollRecord) *Store {
	return &Store{records: records}
}

// NewStoreFromFile loads the tabular source and builds the store.
func NewStoreFromFile(path string) (*Store, error) {
	records, err := LoadRecords(path)
	if err != nil {
		return nil, err
	}
	return NewStore(records), nil
}

func (s *Store) Len() int {
	return len(s.records)
}

// SearchEmployee matches a name against the store with a three-tier
// fallback: exact normalized match, substring match, then per-token
// substring match skipping tokens of two characters or fewer. The first
// tier that yields anything wins; within a tier results keep store order.
func (s *Store) SearchEmployee(name string) []PayrollRecord {
	key := textnorm.NameKey(name)
	if key == "" {
		return nil
	}

	var exact []PayrollRecord
	for _, rec := range s.records {
		if rec.nameKey == key {
			exact = append(exact, rec)
		}
	}
	if len(exact) > 0 {
		return exact
	}

	var partial []PayrollRecord
	for _, rec := range s.records {
		if strings.Contains(rec.nameKey, key) {
			partial = append(partial, rec)
		}
	}
	if len(partial) > 0 {
		return partial
	}

	for _, token := range strings.Fields(key) {
		if utf8.RuneCountInString(token) <= 2 {
			continue
		}
		var byToken []PayrollRecord
		for _, rec := range s.records {
			if strings.Contains(rec.nameKey, token) {
				byToken = append(byToken, rec)
			}
		}
		if len(byToken) > 0 {
			return byToken
		}
	}

	return nil
}

// SearchByCompetency returns every record for a period expression, empty
// when the expression is unparseable.
func (s *Store) SearchByCompetency(raw string) []PayrollRecord {
	competency, ok := ParseCompetency(raw)
	if !ok {
		return nil
	}

	var matches []PayrollRecord
	for _, rec := range s.records {
		if rec.Competency == competency {
			matches = append(matches, rec)
		}
	}
	return matches
}

// SearchEmployeeCompetency intersects the name search with a competency
// filter. At most one record under the dataset's uniqueness invariant.
func (s *Store) SearchEmployeeCompetency(name, rawCompetency string) []PayrollRecord {
	employees := s.SearchEmployee(name)
	if len(employees) == 0 {
		return nil
	}

	competency, ok := ParseCompetency(rawCompetency)
	if !ok {
		return nil
	}

	var filtered []PayrollRecord
	for _, rec := range employees {
		if rec.Competency == competency {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// GetNetPay returns the net pay for one employee and competency, with the
// evidence that backs it.
func (s *Store) GetNetPay(name, competency string) (int64, Evidence, error) {
	records := s.SearchEmployeeCompetency(name, competency)
	if len(records) == 0 {
		return 0, Evidence{}, payrollerrors.ErrRecordNotFound
	}

	rec := records[0]
	return rec.NetPay, newEvidence(rec), nil
}

// GetDeduction returns one deduction column for an employee and competency.
// An unrecognized deduction type is a caller error, not a zero value.
func (s *Store) GetDeduction(name, competency string, typ DeductionType) (int64, Evidence, error) {
	accessor, ok := deductionAccessors[typ]
	if !ok {
		return 0, Evidence{}, payrollerrors.ErrUnknownDeduction
	}

	records := s.SearchEmployeeCompetency(name, competency)
	if len(records) == 0 {
		return 0, Evidence{}, payrollerrors.ErrRecordNotFound
	}

	rec := records[0]
	return accessor(rec), newEvidence(rec), nil
}

// GetPaymentDate returns when an employee was paid for a competency.
func (s *Store) GetPaymentDate(name, competency string) (time.Time, Evidence, error) {
	records := s.SearchEmployeeCompetency(name, competency)
	if len(records) == 0 {
		return time.Time{}, Evidence{}, payrollerrors.ErrRecordNotFound
	}

	rec := records[0]
	return rec.PaymentDate, newEvidence(rec), nil
}

// GetTotalPeriod sums net pay over the employee's records inside the closed
// period, one Evidence per contributing record in store order.
func (s *Store) GetTotalPeriod(name, startRaw, endRaw string) (int64, []Evidence, error) {
	employees := s.SearchEmployee(name)
	if len(employees) == 0 {
		return 0, nil, payrollerrors.ErrRecordNotFound
	}

	start, okStart := ParseCompetency(startRaw)
	end, okEnd := ParseCompetency(endRaw)
	if !okStart || !okEnd {
		return 0, nil, payrollerrors.ErrRecordNotFound
	}
	period := Period{Start: start, End: end}

	var (
		total    int64
		evidence []Evidence
	)
	for _, rec := range employees {
		if period.Contains(rec.Competency) {
			total += rec.NetPay
			evidence = append(evidence, newEvidence(rec))
		}
	}
	if len(evidence) == 0 {
		return 0, nil, payrollerrors.ErrRecordNotFound
	}

	return total, evidence, nil
}

// GetMaxBonus scans the employee's records for the highest bonus. The
// threshold starts at zero and the comparison is strict, so ties keep the
// first record and an employee whose best bonus is zero or negative is
// reported as not found. Pinned behavior, see the store tests.
func (s *Store) GetMaxBonus(name string) (int64, string, Evidence, error) {
	employees := s.SearchEmployee(name)
	if len(employees) == 0 {
		return 0, "", Evidence{}, payrollerrors.ErrRecordNotFound
	}

	var (
		maxBonus int64
		best     *PayrollRecord
	)
	for i := range employees {
		if employees[i].Bonus > maxBonus {
			maxBonus = employees[i].Bonus
			best = &employees[i]
		}
	}
	if best == nil {
		return 0, "", Evidence{}, payrollerrors.ErrRecordNotFound
	}

	return maxBonus, best.Competency, newEvidence(*best), nil
}

// EmployeeNames lists distinct display names in store order.
func (s *Store) EmployeeNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, rec := range s.records {
		if !seen[rec.Name] {
			seen[rec.Name] = true
			names = append(names, rec.Name)
		}
	}
	return names
}

// CompetenciesFor lists the sorted distinct competencies of one employee.
func (s *Store) CompetenciesFor(name string) []string {
	records := s.SearchEmployee(name)
	if len(records) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var competencies []string
	for _, rec := range records {
		if !seen[rec.Competency] {
			seen[rec.Competency] = true
			competencies = append(competencies, rec.Competency)
		}
	}
	sort.Strings(competencies)
	return competencies
}
