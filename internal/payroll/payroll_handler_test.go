package payroll_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capbot/internal/payroll"
	payrollerrors "capbot/internal/payroll/errors"
)

type fakePayrollService struct {
	GetRecordFn func(ctx context.Context, name, competency string) (payroll.RecordResponse, error)
}

func (f *fakePayrollService) GetRecord(ctx context.Context, name, competency string) (payroll.RecordResponse, error) {
	return f.GetRecordFn(ctx, name, competency)
}

func setupRouter(svc payroll.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	payroll.RegisterRoutes(r.Group("/v1"), payroll.NewHandler(svc))
	return r
}

func TestPayrollHandler_GetRecord(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		router := setupRouter(&fakePayrollService{
			GetRecordFn: func(_ context.Context, name, competency string) (payroll.RecordResponse, error) {
				assert.Equal(t, "ana", name)
				assert.Equal(t, "2025-05", competency)
				return payroll.RecordResponse{
					Employee:   "Ana Souza",
					Competency: "2025-05",
					SourceLine: 3,
				}, nil
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/v1/payroll/ana/2025-05", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"ok":true`)
		assert.Contains(t, w.Body.String(), "Ana Souza")
		assert.Contains(t, w.Body.String(), `"source_line":3`)
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		router := setupRouter(&fakePayrollService{
			GetRecordFn: func(_ context.Context, _, _ string) (payroll.RecordResponse, error) {
				return payroll.RecordResponse{}, payrollerrors.ErrRecordNotFound
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/v1/payroll/carlos/2025-01", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), `"ok":false`)
	})
}

func TestPayrollService_GetRecord(t *testing.T) {
	store := newTestStore(t)
	svc := payroll.NewService(store)

	t.Run("resolves fuzzy name and competency format", func(t *testing.T) {
		resp, err := svc.GetRecord(context.Background(), "ana", "maio/2025")
		require.NoError(t, err)
		assert.Equal(t, "Ana Souza", resp.Employee)
		assert.Equal(t, "2025-05", resp.Competency)
		assert.Equal(t, int64(841875), resp.Data.NetPay)
		assert.Equal(t, 3, resp.SourceLine)
	})

	t.Run("missing record", func(t *testing.T) {
		_, err := svc.GetRecord(context.Background(), "ana", "2025-12")
		assert.ErrorIs(t, err, payrollerrors.ErrRecordNotFound)
	})
}
