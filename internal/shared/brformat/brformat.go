// Package brformat formats and parses Brazilian-locale currency and dates.
// Money is handled in centavos (int64) end to end so no float rounding can
// leak into answers.
package brformat

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidAmount = errors.New("invalid monetary amount")

// Currency renders centavos as "R$ 1.234,56".
func Currency(centavos int64) string {
	sign := ""
	if centavos < 0 {
		sign = "-"
		centavos = -centavos
	}

	reais := centavos / 100
	cents := centavos % 100

	digits := strconv.FormatInt(reais, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	return fmt.Sprintf("%sR$ %s,%02d", sign, b.String(), cents)
}

// ParseAmount converts a decimal string with '.' as the decimal separator
// ("7725.00", "7725.5", "7725") into centavos. More than two decimal places
// is rejected, payroll values are cent-precise.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		intPart = s[:idx]
		fracPart = s[idx+1:]
	}
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > 2 {
		return 0, ErrInvalidAmount
	}
	for len(fracPart) < 2 {
		fracPart += "0"
	}

	reais, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	cents, err := strconv.ParseInt(fracPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	total := reais*100 + cents
	if neg {
		total = -total
	}
	return total, nil
}

// StripCurrency undoes Currency: "R$ 7.725,00" back to centavos.
func StripCurrency(s string) (int64, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	v, err := ParseAmount(s)
	if err != nil {
		return 0, err
	}
	if neg {
		v = -v
	}
	return v, nil
}

// DateBR renders a calendar date in dd/mm/yyyy.
func DateBR(t time.Time) string {
	return t.Format("02/01/2006")
}

// ParseISODate accepts "2006-01-02" and RFC3339 timestamps, which is how
// payment dates arrive from the tabular source.
func ParseISODate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
}
