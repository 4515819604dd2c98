package payroll_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"capbot/internal/payroll"
)

func TestParseCompetency(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2025-05", "2025-05", true},
		{"2025/05", "2025-05", true},
		{"05/2025", "2025-05", true},
		{"maio/2025", "2025-05", true},
		{"mai/25", "2025-05", true},
		{"Março/2025", "2025-03", true},
		{"marco/2025", "2025-03", true},
		{"2025 janeiro", "2025-01", true},
		{"  2025-01  ", "2025-01", true},
		{"2025-13", "", false},
		{"2025-00", "", false},
		{"13/2025", "", false},
		{"competencia", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := payroll.ParseCompetency(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPeriodContains(t *testing.T) {
	p := payroll.Period{Start: "2025-01", End: "2025-03"}

	assert.True(t, p.Contains("2025-01"))
	assert.True(t, p.Contains("2025-02"))
	assert.True(t, p.Contains("2025-03"))
	assert.False(t, p.Contains("2024-12"))
	assert.False(t, p.Contains("2025-04"))
}

func TestMonthNumber(t *testing.T) {
	m, ok := payroll.MonthNumber("Março")
	assert.True(t, ok)
	assert.Equal(t, "03", m)

	_, ok = payroll.MonthNumber("smarch")
	assert.False(t, ok)
}
