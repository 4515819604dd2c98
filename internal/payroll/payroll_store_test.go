package payroll_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capbot/internal/payroll"
	payrollerrors "capbot/internal/payroll/errors"
)

const sampleCSV = `employee_id,name,competency,base_salary,bonus,benefits_vt_vr,other_earnings,deductions_inss,deductions_irrf,other_deductions,net_pay,payment_date
E001,Ana Souza,2025-01,8000,500,600,0,880.0,495.0,0,7725.0,2025-01-28
E001,Ana Souza,2025-05,8000,1200,650,0,880.0,551.25,0,8418.75,2025-05-28
E002,Bruno Lima,2025-01,6000,500,600,0,660.0,345.0,0,6095.0,2025-01-28
E002,Bruno Lima,2025-06,6000,300,650,0,660.0,333.75,0,5956.25,2025-06-28
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "payroll.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newTestStore(t *testing.T) *payroll.Store {
	t.Helper()
	store, err := payroll.NewStoreFromFile(writeCSV(t, sampleCSV))
	require.NoError(t, err)
	return store
}

func TestStore_SearchEmployee(t *testing.T) {
	store := newTestStore(t)

	t.Run("exact match ignores case and spacing", func(t *testing.T) {
		records := store.SearchEmployee("  ana souza ")
		require.Len(t, records, 2)
		assert.Equal(t, "Ana Souza", records[0].Name)
	})

	t.Run("substring match on partial name", func(t *testing.T) {
		records := store.SearchEmployee("Souza")
		require.Len(t, records, 2)
		assert.Equal(t, "E001", records[0].EmployeeID)
	})

	t.Run("token match when full string misses", func(t *testing.T) {
		// "Bruno Santos" matches nothing as a whole, the "bruno" token does.
		records := store.SearchEmployee("Bruno Santos")
		require.Len(t, records, 2)
		assert.Equal(t, "Bruno Lima", records[0].Name)
	})

	t.Run("short tokens never match on their own", func(t *testing.T) {
		// "li" would substring-match Bruno Lima, but as a token of a
		// longer miss it is too short to count.
		assert.Empty(t, store.SearchEmployee("Li Carvalho"))
	})

	t.Run("unknown name", func(t *testing.T) {
		assert.Empty(t, store.SearchEmployee("Carlos Pereira"))
	})

	t.Run("empty name", func(t *testing.T) {
		assert.Empty(t, store.SearchEmployee("   "))
	})
}

func TestStore_GetNetPay(t *testing.T) {
	store := newTestStore(t)

	t.Run("found", func(t *testing.T) {
		netPay, evidence, err := store.GetNetPay("Ana Souza", "2025-05")
		require.NoError(t, err)
		assert.Equal(t, int64(841875), netPay)
		assert.Equal(t, "E001", evidence.EmployeeID)
		assert.Equal(t, "2025-05", evidence.Competency)
		assert.Equal(t, 3, evidence.SourceLine)
		assert.Equal(t, "E001, 2025-05", evidence.Source())
	})

	t.Run("competency format variants resolve", func(t *testing.T) {
		for _, raw := range []string{"2025-05", "05/2025", "maio/2025", "mai/25"} {
			netPay, _, err := store.GetNetPay("Ana Souza", raw)
			require.NoError(t, err, raw)
			assert.Equal(t, int64(841875), netPay, raw)
		}
	})

	t.Run("no record for competency", func(t *testing.T) {
		_, _, err := store.GetNetPay("Ana Souza", "2025-03")
		assert.ErrorIs(t, err, payrollerrors.ErrRecordNotFound)
	})

	t.Run("unknown employee", func(t *testing.T) {
		_, _, err := store.GetNetPay("Carlos", "2025-01")
		assert.ErrorIs(t, err, payrollerrors.ErrRecordNotFound)
	})
}

func TestStore_GetDeduction(t *testing.T) {
	store := newTestStore(t)

	t.Run("inss", func(t *testing.T) {
		v, _, err := store.GetDeduction("Ana Souza", "2025-01", payroll.DeductionINSS)
		require.NoError(t, err)
		assert.Equal(t, int64(88000), v)
	})

	t.Run("irrf", func(t *testing.T) {
		v, _, err := store.GetDeduction("Bruno Lima", "2025-06", payroll.DeductionIRRF)
		require.NoError(t, err)
		assert.Equal(t, int64(33375), v)
	})

	t.Run("unknown type is an error, not zero", func(t *testing.T) {
		_, _, err := store.GetDeduction("Ana Souza", "2025-01", payroll.DeductionType("fgts"))
		assert.ErrorIs(t, err, payrollerrors.ErrUnknownDeduction)
	})
}

func TestStore_GetPaymentDate(t *testing.T) {
	store := newTestStore(t)

	date, evidence, err := store.GetPaymentDate("Bruno Lima", "2025-06")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-28", date.Format("2006-01-02"))
	assert.Equal(t, "E002", evidence.EmployeeID)
}

func TestStore_GetTotalPeriod(t *testing.T) {
	store := newTestStore(t)

	t.Run("sums records inside the closed interval", func(t *testing.T) {
		total, evidence, err := store.GetTotalPeriod("Ana Souza", "2025-01", "2025-05")
		require.NoError(t, err)
		assert.Equal(t, int64(772500+841875), total)
		require.Len(t, evidence, 2)
		assert.Equal(t, "2025-01", evidence[0].Competency)
		assert.Equal(t, "2025-05", evidence[1].Competency)
	})

	t.Run("single month period", func(t *testing.T) {
		total, evidence, err := store.GetTotalPeriod("Bruno Lima", "2025-06", "2025-06")
		require.NoError(t, err)
		assert.Equal(t, int64(595625), total)
		assert.Len(t, evidence, 1)
	})

	t.Run("no records in period", func(t *testing.T) {
		_, _, err := store.GetTotalPeriod("Ana Souza", "2024-01", "2024-12")
		assert.ErrorIs(t, err, payrollerrors.ErrRecordNotFound)
	})

	t.Run("unparseable bound", func(t *testing.T) {
		_, _, err := store.GetTotalPeriod("Ana Souza", "sempre", "2025-05")
		assert.ErrorIs(t, err, payrollerrors.ErrRecordNotFound)
	})
}

func TestStore_GetMaxBonus(t *testing.T) {
	store := newTestStore(t)

	t.Run("highest bonus wins", func(t *testing.T) {
		bonus, competency, evidence, err := store.GetMaxBonus("Ana Souza")
		require.NoError(t, err)
		assert.Equal(t, int64(120000), bonus)
		assert.Equal(t, "2025-05", competency)
		assert.Equal(t, "E001", evidence.EmployeeID)
	})

	t.Run("tie keeps the first record", func(t *testing.T) {
		csv := `employee_id,name,competency,base_salary,bonus,benefits_vt_vr,other_earnings,deductions_inss,deductions_irrf,other_deductions,net_pay,payment_date
E003,Carla Dias,2025-01,5000,400,0,0,500,200,0,4700,2025-01-28
E003,Carla Dias,2025-02,5000,400,0,0,500,200,0,4700,2025-02-28
`
		store, err := payroll.NewStoreFromFile(writeCSV(t, csv))
		require.NoError(t, err)

		_, competency, _, err := store.GetMaxBonus("Carla Dias")
		require.NoError(t, err)
		assert.Equal(t, "2025-01", competency)
	})

	t.Run("all-zero bonuses report not found", func(t *testing.T) {
		csv := `employee_id,name,competency,base_salary,bonus,benefits_vt_vr,other_earnings,deductions_inss,deductions_irrf,other_deductions,net_pay,payment_date
E004,Davi Rocha,2025-01,5000,0,0,0,500,200,0,4300,2025-01-28
`
		store, err := payroll.NewStoreFromFile(writeCSV(t, csv))
		require.NoError(t, err)

		_, _, _, err = store.GetMaxBonus("Davi Rocha")
		assert.ErrorIs(t, err, payrollerrors.ErrRecordNotFound)
	})
}

func TestStore_EmployeeNames(t *testing.T) {
	store := newTestStore(t)

	assert.Equal(t, []string{"Ana Souza", "Bruno Lima"}, store.EmployeeNames())
}

func TestStore_CompetenciesFor(t *testing.T) {
	store := newTestStore(t)

	t.Run("sorted distinct competencies", func(t *testing.T) {
		assert.Equal(t, []string{"2025-01", "2025-05"}, store.CompetenciesFor("ana"))
	})

	t.Run("unknown employee", func(t *testing.T) {
		assert.Empty(t, store.CompetenciesFor("Carlos"))
	})
}
