package payroll

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Portuguese month names and abbreviations. March carries both the accented
// and unaccented spelling, queries arrive both ways.
var monthTable = map[string]string{
	"jan": "01", "janeiro": "01",
	"fev": "02", "fevereiro": "02",
	"mar": "03", "marco": "03", "março": "03",
	"abr": "04", "abril": "04",
	"mai": "05", "maio": "05",
	"jun": "06", "junho": "06",
	"jul": "07", "julho": "07",
	"ago": "08", "agosto": "08",
	"set": "09", "setembro": "09",
	"out": "10", "outubro": "10",
	"nov": "11", "novembro": "11",
	"dez": "12", "dezembro": "12",
}

var (
	reYearMonth     = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	reYearSlashMon  = regexp.MustCompile(`^(\d{4})/(\d{2})$`)
	reMonSlashYear  = regexp.MustCompile(`^(\d{2})/(\d{4})$`)
	reNameSlashYear = regexp.MustCompile(`^([\pL]+)/(\d{2,4})$`)
	reYearSpaceName = regexp.MustCompile(`^(\d{4})\s+([\pL]+)$`)
)

// ParseCompetency canonicalizes a free-form period expression to YYYY-MM.
// ok is false for anything unrecognized, including out-of-range months; the
// caller treats that as "ask the user", never as an error.
func ParseCompetency(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	if m := reYearMonth.FindStringSubmatch(s); m != nil {
		return buildCompetency(m[1], m[2])
	}
	if m := reYearSlashMon.FindStringSubmatch(s); m != nil {
		return buildCompetency(m[1], m[2])
	}
	if m := reMonSlashYear.FindStringSubmatch(s); m != nil {
		return buildCompetency(m[2], m[1])
	}

	lower := strings.ToLower(s)
	if m := reNameSlashYear.FindStringSubmatch(lower); m != nil {
		month, ok := monthTable[m[1]]
		if !ok {
			return "", false
		}
		year := m[2]
		if len(year) == 2 {
			year = "20" + year
		}
		return year + "-" + month, true
	}
	if m := reYearSpaceName.FindStringSubmatch(lower); m != nil {
		month, ok := monthTable[m[2]]
		if !ok {
			return "", false
		}
		return m[1] + "-" + month, true
	}

	return "", false
}

func buildCompetency(year, month string) (string, bool) {
	n, err := strconv.Atoi(month)
	if err != nil || n < 1 || n > 12 {
		return "", false
	}
	return fmt.Sprintf("%s-%02d", year, n), true
}

// Period is a closed interval of canonical competencies. The canonical form
// is zero-padded and year-first, so lexicographic comparison is ordering.
type Period struct {
	Start string
	End   string
}

// Contains reports whether a canonical competency falls inside the period.
func (p Period) Contains(competency string) bool {
	return p.Start <= competency && competency <= p.End
}

// MonthNumber resolves a Portuguese month name or abbreviation ("mar",
// "março") to its zero-padded number.
func MonthNumber(name string) (string, bool) {
	m, ok := monthTable[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}
